package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the route table. Every intent is a distinct route with its own
// typed payload; there is no form-style dispatch on submitted field names.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Get("/api/version", h.getServerVersion)
	})

	// routes behind JWT authentication
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/user/logout", h.logout)
		r.Post("/api/user/password", h.changePassword)
		r.Delete("/api/user", h.deleteAccount)

		r.Get("/api/notes", h.listNotes)
		r.Get("/api/notes/hidden", h.listHiddenNotes)
		r.Post("/api/notes", h.createNote)
		r.Put("/api/notes/{noteID}", h.updateNote)
		r.Delete("/api/notes/{noteID}", h.deleteNote)
		r.Post("/api/notes/{noteID}/images", h.uploadImages)
		r.Delete("/api/images/{imageID}", h.deleteImage)

		r.Get("/api/profile", h.getProfile)
		r.Put("/api/profile", h.updateProfile)
		r.Post("/api/profile/pin", h.setPin)
		r.Put("/api/profile/pin", h.resetPin)
		r.Post("/api/profile/pin/verify", h.verifyPin)
	})

	return router
}
