package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"postcraft/internal/http/handlers"
	"postcraft/internal/infra"
	"postcraft/internal/middleware"
)

func NewRouter(app *handlers.App, logger infra.Logger, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(logger),
		chimw.Recoverer,
		middleware.CORS(allowedOrigins),
	)

	// Health & docs
	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", app.Analyze)
		r.Post("/analyze/retry", app.RetryAnalyze)
		r.Post("/product-analyze", app.ProductAnalyze)
		r.Post("/product-analyze/retry", app.RetryProductAnalyze)
		r.Post("/analysis/cancel", app.CancelAnalysis)

		r.Post("/prompt", app.Prompt)
		r.Post("/settings/batch", app.BatchApply)

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", app.ListTemplates)
			r.Post("/clear", app.ClearTemplate)
			r.Post("/{id}/apply", app.ApplyTemplate)
		})

		r.Route("/product-prompts", func(r chi.Router) {
			r.Post("/", app.ProductPrompts)
			r.Post("/export", app.ExportProductPrompts)
		})
	})

	return r
}
