package router

import (
	"net/http"

	"github.com/samber/lo"

	"github.com/shandysiswandi/phishguard/internal/pkg/config"
)

// middlewareMaintenance answers 503 for routes listed in
// app.maintenance.endpoints. A "*" entry blocks every route except /health.
func middlewareMaintenance(cfg config.Config) Middleware {
	var blocked map[string]struct{}
	if cfg != nil {
		blocked = lo.SliceToMap(cfg.GetArray("app.maintenance.endpoints"), func(e string) (string, struct{}) {
			return e, struct{}{}
		})
	}
	_, all := blocked["*"]

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := matchedRoutePath(r)
			if _, hit := blocked[route]; hit || (all && route != "/health") {
				writeJSON(w, errorResponse{Message: "service is under maintenance"}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
