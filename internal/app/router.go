package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/gestionpet/gestionpet/internal/masterdata/materials"
	"github.com/gestionpet/gestionpet/internal/masterdata/suppliers"
	"github.com/gestionpet/gestionpet/internal/observability"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	SupplierHandler *suppliers.Handler
	MaterialHandler *materials.Handler
	Metrics         *observability.Metrics
}

// NewRouter constructs the chi.Router with the API defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	mount := func(r chi.Router) {
		if params.SupplierHandler != nil {
			params.SupplierHandler.MountRoutes(r)
		}
		if params.MaterialHandler != nil {
			params.MaterialHandler.MountRoutes(r)
		}
	}
	if params.Config != nil && params.Config.APIPrefix != "" {
		r.Route(params.Config.APIPrefix, mount)
	} else {
		mount(r)
	}

	return r
}
