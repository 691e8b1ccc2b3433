package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/ping", PingHandler)

	r.Route("/scans", func(r chi.Router) {
		r.Get("/", app.ListScansHandler)
		r.Post("/", app.CreateScanHandler)
		r.Get("/{id}", app.GetScanHandler)
		r.Delete("/{id}", app.DeleteScanHandler)
		r.Get("/{id}/labels/{label}", app.FindByLabelHandler)
		r.Get("/{id}/images/{camera}/{index}", app.StreamImageHandler)
		r.Get("/{id}/headers/{camera}/{index}", app.StreamHeaderHandler)
	})

	return r
}
