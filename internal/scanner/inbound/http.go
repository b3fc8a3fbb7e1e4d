package inbound

import (
	"context"

	"github.com/shandysiswandi/phishguard/internal/pkg/router"
	"github.com/shandysiswandi/phishguard/internal/scanner/usecase"
)

type uc interface {
	Classify(ctx context.Context, in usecase.ClassifyInput) (*usecase.ClassifyOutput, error)
}

// RegisterHTTPEndpoint mounts the scanner routes. auth guards every route.
func RegisterHTTPEndpoint(r *router.Router, uc uc, auth router.Middleware) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/scanner/classify", end.Classify, auth)
}
