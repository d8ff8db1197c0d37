package calendar

import "github.com/Pineapplelles/habit-pulse/internal/goal"

type Container struct {
	Handler *Handler
	Service Service
}

func NewContainer(goals goal.GoalRepository, completions goal.CompletionRepository) *Container {
	service := NewService(goals, completions)
	handler := NewHandler(service)

	return &Container{
		Handler: handler,
		Service: service,
	}
}
