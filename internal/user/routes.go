package user

import (
	"github.com/go-chi/chi/v5"

	"github.com/Pineapplelles/habit-pulse/internal/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", auth.NewHandler().Logout)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)
		r.Get("/me", h.GetUser)
	})

	return r
}
