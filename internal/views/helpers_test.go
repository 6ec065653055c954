package views

import (
	"storepulse/internal/dataprocessing"
	"storepulse/pkg/contracts/domain"
)

func record(idx int, name string, lat, lng, visits, pred float64, gap, cluster domain.Optional[float64], income domain.Optional[string]) domain.Record {
	return domain.Record{
		Index:         idx,
		LocationName:  name,
		Latitude:      lat,
		Longitude:     lng,
		VisitCount:    visits,
		HuffPredicted: pred,
		Gap:           gap,
		Cluster:       cluster,
		IncomeGroup:   income,
	}
}

func sampleRecords() []domain.Record {
	return []domain.Record{
		record(0, "Star Market", 42.34, -71.09, 150, 100, domain.Some(50.0), domain.Some(0.0), domain.Some("High")),
		record(1, "Stop & Shop", 42.30, -71.05, 80, 78, domain.Some(2.0), domain.Some(1.0), domain.Some("Low")),
		record(2, "Whole Foods", 42.36, -71.07, 40, 90, domain.Some(-50.0), domain.Some(2.0), domain.Missing[string]()),
		record(3, "Roche Bros", 42.38, -71.03, 60, 60, domain.Missing[float64](), domain.Missing[float64](), domain.Some("Medium")),
	}
}

func sampleResult() dataprocessing.Result {
	ds := &domain.Dataset{Records: sampleRecords(), HasCluster: true, HasIncomeGroup: true}
	opts := dataprocessing.Options(ds)
	return dataprocessing.Run(ds, opts, dataprocessing.DefaultFilterState(opts))
}
