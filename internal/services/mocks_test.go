package services

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/mock"

	api "storepulse/pkg/contracts/api/v1"
	"storepulse/pkg/contracts/domain"
)

// MockDatasetLoader is a mock for DatasetLoader
type MockDatasetLoader struct {
	mock.Mock
}

func (m *MockDatasetLoader) Load(ctx context.Context, path, sheet string) (*domain.Dataset, error) {
	args := m.Called(path, sheet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dataset), args.Error(1)
}

// MockDatasetInspector is a mock for DatasetInspector
type MockDatasetInspector struct {
	mock.Mock
}

func (m *MockDatasetInspector) DatasetInfo(ctx context.Context) (*api.DatasetInfo, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.DatasetInfo), args.Error(1)
}

type fixedClients int

func (c fixedClients) ClientCount() int { return int(c) }

type tagValidator struct {
	v *validator.Validate
}

func newTagValidator() *tagValidator {
	return &tagValidator{v: validator.New()}
}

func (t *tagValidator) ValidateStruct(v interface{}) error {
	return t.v.Struct(v)
}

func f(v float64) domain.Optional[float64] { return domain.Some(v) }
func s(v string) domain.Optional[string]   { return domain.Some(v) }

func sampleDataset() *domain.Dataset {
	rec := func(i int, name string, visits, pred float64, gap, cluster domain.Optional[float64], income domain.Optional[string]) domain.Record {
		return domain.Record{
			Index: i, LocationName: name, Latitude: 42.35, Longitude: -71.06,
			VisitCount: visits, HuffPredicted: pred, Gap: gap, Cluster: cluster, IncomeGroup: income,
		}
	}
	return &domain.Dataset{
		Source:         "stores.xlsx",
		Sheet:          "Sheet1",
		HasCluster:     true,
		HasIncomeGroup: true,
		TotalRows:      5,
		DroppedRows:    1,
		Records: []domain.Record{
			rec(0, "Star Market", 150, 100, f(50), f(0), s("High")),
			rec(1, "Stop & Shop", 80, 78, f(2), f(1), s("Low")),
			rec(2, "Whole Foods", 40, 90, f(-50), f(2), s("High")),
			rec(4, "Roche Bros", 60, 60, domain.Missing[float64](), f(1), s("Medium")),
		},
	}
}
