package goal

import "gorm.io/gorm"

type Container struct {
	Handler     *Handler
	Service     Service
	Repo        GoalRepository
	Completions CompletionRepository
}

func NewContainer(db *gorm.DB) *Container {
	repo := NewRepository(db)
	completions := NewCompletionRepository(db)
	service := NewService(repo, completions)
	handler := NewHandler(service)

	return &Container{
		Handler:     handler,
		Service:     service,
		Repo:        repo,
		Completions: completions,
	}
}
