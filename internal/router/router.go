package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Pineapplelles/habit-pulse/internal/auth"
	"github.com/Pineapplelles/habit-pulse/internal/calendar"
	"github.com/Pineapplelles/habit-pulse/internal/goal"
	"github.com/Pineapplelles/habit-pulse/internal/middlewares"
	"github.com/Pineapplelles/habit-pulse/internal/user"
)

type RouterConfig struct {
	UserHandler     *user.Handler
	GoalHandler     *goal.Handler
	CalendarHandler *calendar.Handler
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Mount("/auth", user.Routes(cfg.UserHandler))

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/goals", goal.Routes(cfg.GoalHandler))

		r.Get("/goals/calendar", cfg.CalendarHandler.Range)
		r.Get("/goals/calendar/{date}", cfg.CalendarHandler.Day)
	})

	return r
}
