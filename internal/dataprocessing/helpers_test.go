package dataprocessing

import (
	"storepulse/pkg/contracts/domain"
)

// store builds a record with the optional columns given as *T (nil = missing)
func store(idx int, name string, visits, pred float64, gap *float64, cluster *float64, income *string) domain.Record {
	r := domain.Record{
		Index:         idx,
		LocationName:  name,
		Latitude:      42.35,
		Longitude:     -71.06,
		VisitCount:    visits,
		HuffPredicted: pred,
	}
	if gap != nil {
		r.Gap = domain.Some(*gap)
	}
	if cluster != nil {
		r.Cluster = domain.Some(*cluster)
	}
	if income != nil {
		r.IncomeGroup = domain.Some(*income)
	}
	return r
}

func f(v float64) *float64 { return &v }
func s(v string) *string   { return &v }

// sampleDataset mirrors testutil.SampleStoreRows
func sampleDataset() *domain.Dataset {
	return &domain.Dataset{
		HasCluster:     true,
		HasIncomeGroup: true,
		Records: []domain.Record{
			store(0, "Star Market Fenway", 150, 100, f(50), f(0), s("High")),
			store(1, "Stop & Shop Dorchester", 80, 78, f(2), f(1), s("Low")),
			store(2, "Whole Foods Charles River", 40, 90, f(-50), f(2), s("High")),
			store(3, "Roche Bros Downtown", 60, 60, nil, f(1), s("Medium")),
			store(4, "Trader Joe's Back Bay", 120, 99.99, f(20.01), f(0), s("Medium")),
			store(5, "Market Basket Chelsea", 70, 90, f(-20), f(3), s("Low")),
		},
	}
}

func names(records []domain.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.LocationName
	}
	return out
}
