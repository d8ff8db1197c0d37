package goal

import (
	"time"

	"github.com/Pineapplelles/habit-pulse/internal/user"
	util "github.com/Pineapplelles/habit-pulse/internal/utils"
	"github.com/google/uuid"
)

type Goal struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID  `gorm:"column:user_id;not null;index" json:"userId"`
	User         user.User  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Name         string     `gorm:"size:100;not null" json:"name"`
	IsMeasurable bool       `gorm:"default:false" json:"isMeasurable"`
	TargetValue  int        `gorm:"default:0" json:"targetValue"`
	Unit         string     `gorm:"size:20;default:minutes" json:"unit"`
	ScheduleDays WeekdaySet `gorm:"type:integer[];default:'{0,1,2,3,4,5,6}'" json:"scheduleDays"`

	// Interval-based recurrence. When both fields are set they take
	// precedence over ScheduleDays; see IsDueOn.
	IntervalDays      *int           `json:"intervalDays"`
	IntervalStartDate *util.DateOnly `json:"intervalStartDate"`

	SortOrder   int          `gorm:"default:0" json:"sortOrder"`
	IsActive    bool         `gorm:"default:true" json:"isActive"`
	CreatedAt   time.Time    `json:"createdAt"`
	Completions []Completion `gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE;" json:"-"`
}

// Completion marks a goal as done on one calendar day. The unique index on
// (goal_id, completed_on) is what keeps concurrent toggles from
// double-inserting.
type Completion struct {
	ID          uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid()" json:"id"`
	GoalID      uuid.UUID     `gorm:"column:goal_id;not null;uniqueIndex:idx_goal_completed_on" json:"goalId"`
	CompletedOn util.DateOnly `gorm:"not null;uniqueIndex:idx_goal_completed_on" json:"completedOn"`
	CreatedAt   time.Time     `json:"createdAt"`
}
