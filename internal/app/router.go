package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/voltquote/voltquote/internal/quoting/margins"
	"github.com/voltquote/voltquote/internal/quoting/quotes"
	"github.com/voltquote/voltquote/internal/quoting/templates"
	"github.com/voltquote/voltquote/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	QuoteHandler    *quotes.Handler
	TemplateHandler *templates.Handler
	MarginHandler   *margins.Handler
	JobHandler      *jobs.Handler
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		params.QuoteHandler.MountRoutes(r)
		if params.TemplateHandler != nil {
			params.TemplateHandler.MountRoutes(r)
		}
		if params.MarginHandler != nil {
			params.MarginHandler.MountRoutes(r)
		}
		if params.JobHandler != nil {
			r.Route("/jobs", params.JobHandler.MountRoutes)
		}
	})

	return r
}
