package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.config.CORS.AllowedOrigins,
		AllowedMethods:   h.config.CORS.AllowedMethods,
		AllowedHeaders:   h.config.CORS.AllowedHeaders,
		AllowCredentials: h.config.CORS.AllowCredentials,
		MaxAge:           h.config.CORS.MaxAge,
	}))

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/public/version", h.getServerVersion)
		r.Get("/actuator/health", h.health)
	})

	// routes requiring a verified bearer token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/users", func(r chi.Router) {
			r.Get("/", h.listUsers)
			r.Post("/", h.createUser)
			r.Get("/{id}", h.getUserByID)
			r.Put("/{id}", h.updateUser)
			r.Delete("/{id}", h.deleteUser)
			r.Get("/username/{username}", h.getUserByUsername)
			r.Get("/exists/username/{username}", h.existsByUsername)
			r.Get("/exists/email/{email}", h.existsByEmail)
		})

		// the management surface requires the admin role on top of a token
		r.Group(func(r chi.Router) {
			r.Use(h.requireAdmin)
			r.Get("/actuator/info", h.info)
		})
	})

	return router
}
