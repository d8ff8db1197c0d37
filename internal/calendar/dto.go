package calendar

import (
	util "github.com/Pineapplelles/habit-pulse/internal/utils"
	"github.com/google/uuid"
)

type DaySummary struct {
	Date           util.DateOnly `json:"date"`
	TotalScheduled int           `json:"totalScheduled"`
	Completed      int           `json:"completed"`
}

// GoalItem is the display subset of a goal carried in day details.
type GoalItem struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	IsMeasurable bool      `json:"isMeasurable"`
	TargetValue  int       `json:"targetValue"`
	Unit         string    `json:"unit"`
}

type DayDetail struct {
	DaySummary
	Done    []GoalItem `json:"done"`
	NotDone []GoalItem `json:"notDone"`
}
