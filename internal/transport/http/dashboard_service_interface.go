package http

import (
	"context"
	"io"

	api "storepulse/pkg/contracts/api/v1"
	"storepulse/pkg/contracts/domain"
)

// DashboardServiceInterface defines the dashboard operations the handlers need
type DashboardServiceInterface interface {
	Options(ctx context.Context) (api.OptionsResponse, error)
	View(ctx context.Context, source string, req api.ViewRequest) (domain.DashboardView, error)
	Export(ctx context.Context, source string, req api.ViewRequest, w io.Writer) (int, error)
	GeoJSON(ctx context.Context, source string, req api.ViewRequest) ([]byte, error)
}

// StructValidator validates tagged request structs
type StructValidator interface {
	ValidateStruct(v interface{}) error
}
