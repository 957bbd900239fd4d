package server

import (
	"log/slog"
	"net/http"

	"github.com/cleanarchmvc/catalog/app/catalog"
	"github.com/cleanarchmvc/catalog/app/categories"
	"github.com/cleanarchmvc/catalog/app/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the catalog routes, health check and metrics endpoint.
func NewRouter(log *slog.Logger, m *metrics.Metrics, cats *categories.CategoryHandler, products *catalog.CatalogHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RouteSpan)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(m.Middleware)

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", cats.HandleGetAll)
		r.Post("/", cats.HandleCreate)
		r.Get("/{id}", cats.HandleGet)
		r.Put("/{id}", cats.HandleUpdate)
		r.Delete("/{id}", cats.HandleDelete)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", products.HandleGet)
		r.Post("/", products.HandleCreate)
		r.Get("/{id}", products.HandleGetProduct)
		r.Get("/{id}/category", products.HandleGetProductCategory)
		r.Put("/{id}", products.HandleUpdate)
		r.Delete("/{id}", products.HandleDelete)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	return r
}
