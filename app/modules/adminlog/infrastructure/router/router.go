package adminlogrouter

import (
	"net/http"

	adminloghandlers "github.com/Black-And-White-Club/hackathon-admin/app/modules/adminlog/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

// BasePath is where the admin routes are mounted.
const BasePath = "/admin"

// Configure mounts the admin action log routes behind the given middlewares.
func Configure(router chi.Router, handlers adminloghandlers.Handlers, middlewares ...func(http.Handler) http.Handler) {
	router.Route(BasePath, func(r chi.Router) {
		for _, mw := range middlewares {
			r.Use(mw)
		}
		r.Get("/actions", handlers.HandleListActions)
	})
}
