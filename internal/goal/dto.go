package goal

import (
	"time"

	util "github.com/Pineapplelles/habit-pulse/internal/utils"
	"github.com/google/uuid"
)

type CreateGoalDTO struct {
	Name              string         `json:"name"`
	IsMeasurable      bool           `json:"isMeasurable"`
	TargetValue       int            `json:"targetValue"`
	Unit              string         `json:"unit"`
	ScheduleDays      WeekdaySet     `json:"scheduleDays"`
	IntervalDays      *int           `json:"intervalDays"`
	IntervalStartDate *util.DateOnly `json:"intervalStartDate"`
}

type UpdateGoalDTO struct {
	Name              *string        `json:"name"`
	IsMeasurable      *bool          `json:"isMeasurable"`
	TargetValue       *int           `json:"targetValue"`
	Unit              *string        `json:"unit"`
	ScheduleDays      WeekdaySet     `json:"scheduleDays"`
	IntervalDays      *int           `json:"intervalDays"`
	IntervalStartDate *util.DateOnly `json:"intervalStartDate"`
	SortOrder         *int           `json:"sortOrder"`
	IsActive          *bool          `json:"isActive"`
}

type ReorderGoalsDTO struct {
	GoalIDs []uuid.UUID `json:"goalIds"`
}

type GoalResponse struct {
	ID                uuid.UUID      `json:"id"`
	Name              string         `json:"name"`
	IsMeasurable      bool           `json:"isMeasurable"`
	TargetValue       int            `json:"targetValue"`
	Unit              string         `json:"unit"`
	TargetMinutes     int            `json:"targetMinutes"` // legacy clients
	ScheduleDays      WeekdaySet     `json:"scheduleDays"`
	IntervalDays      *int           `json:"intervalDays"`
	IntervalStartDate *util.DateOnly `json:"intervalStartDate"`
	SortOrder         int            `json:"sortOrder"`
	IsActive          bool           `json:"isActive"`
	CreatedAt         time.Time      `json:"createdAt"`
}

type GoalWithStatusResponse struct {
	GoalResponse
	IsCompletedToday bool `json:"isCompletedToday"`
}

type ToggleResponse struct {
	IsCompleted bool `json:"isCompleted"`
}
