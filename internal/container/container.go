package container

import (
	"context"
	"log"
	"os"

	"github.com/Pineapplelles/habit-pulse/internal/auth"
	"github.com/Pineapplelles/habit-pulse/internal/calendar"
	"github.com/Pineapplelles/habit-pulse/internal/config"
	"github.com/Pineapplelles/habit-pulse/internal/goal"
	"github.com/Pineapplelles/habit-pulse/internal/user"
)

type Container struct {
	UserContainer     *user.UserContainer
	GoalContainer     *goal.Container
	CalendarContainer *calendar.Container
}

func New() *Container {
	config.Init()
	auth.Init()

	dsn := os.Getenv("DATABASE_DSN")
	err := config.Connect(context.Background(), dsn,
		&user.User{},
		&goal.Goal{},
		&goal.Completion{},
	)
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	userContainer := user.NewUserContainer(config.DB)
	goalContainer := goal.NewContainer(config.DB)
	calendarContainer := calendar.NewContainer(goalContainer.Repo, goalContainer.Completions)

	return &Container{
		UserContainer:     userContainer,
		GoalContainer:     goalContainer,
		CalendarContainer: calendarContainer,
	}
}
