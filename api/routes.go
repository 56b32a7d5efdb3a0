package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts the JSON API under /api. Reads are public, writes
// need a verified admin.
func setupRoutes(r chi.Router, handlers *routeHandlers, auth authMiddleware) {
	r.Get("/healthz", handlers.healthHandler.getHealth())

	r.Route("/api", func(r chi.Router) {
		r.Use(limitBody)
		r.Use(auth.identify)

		// Public endpoints
		r.Get("/categories", handlers.categoryHandler.getAllCategories())
		r.Get("/clients", handlers.clientHandler.getAllClients())
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/testimonials", handlers.testimonialHandler.getTestimonials())
		r.Post("/testimonials/submit", handlers.testimonialHandler.submitTestimonial())
		r.Get("/settings", handlers.settingsHandler.getSettings())
		r.Post("/contact", handlers.contactHandler.submitContact())
		r.Post("/auth/signup", handlers.authHandler.signup())
		r.Post("/auth/login", handlers.authHandler.login())

		// Any signed in user
		r.With(auth.authenticate).Get("/auth/me", handlers.authHandler.me())

		// Verified admins
		r.Group(func(r chi.Router) {
			r.Use(auth.authenticate)
			r.Use(auth.requireAdmin)

			r.Post("/categories", handlers.categoryHandler.createCategory())
			r.Patch("/categories/{id}", handlers.categoryHandler.updateCategory())
			r.Delete("/categories/{id}", handlers.categoryHandler.deleteCategory())

			r.Post("/clients", handlers.clientHandler.createClient())
			r.Patch("/clients/{id}", handlers.clientHandler.updateClient())
			r.Delete("/clients/{id}", handlers.clientHandler.deleteClient())

			r.Post("/projects", handlers.projectHandler.createProject())
			r.Patch("/projects/{id}", handlers.projectHandler.updateProject())
			r.Delete("/projects/{id}", handlers.projectHandler.deleteProject())

			r.Post("/testimonials", handlers.testimonialHandler.createTestimonial())
			r.Patch("/testimonials/{id}", handlers.testimonialHandler.updateTestimonial())
			r.Delete("/testimonials/{id}", handlers.testimonialHandler.deleteTestimonial())

			r.Post("/settings", handlers.settingsHandler.createSettings())
			r.Patch("/settings/{id}", handlers.settingsHandler.updateSettings())

			r.Get("/users", handlers.userHandler.getAllUsers())
			r.Patch("/users/{id}/verify-admin", handlers.userHandler.verifyAdmin())

			r.Get("/contact", handlers.contactHandler.getAllContactMessages())
			r.Post("/seed", handlers.seedHandler.seed())
			r.Post("/uploads", handlers.uploadHandler.uploadImage())
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			auth.responder.WriteError(w, errNoRoute(r))
		})
	})
}
