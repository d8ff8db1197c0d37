package goal

import (
	"errors"

	util "github.com/Pineapplelles/habit-pulse/internal/utils"
)

var ErrInvalidSchedule = errors.New("goal needs either schedule days or a positive interval with a start date")

// IsDueOn reports whether g recurs on date. Interval mode applies whenever
// both IntervalDays and IntervalStartDate are set, regardless of what
// ScheduleDays holds; otherwise the date's weekday decides. The predicate is
// pure and ignores IsActive, so callers can evaluate history for goals that
// have since been deactivated.
func IsDueOn(g *Goal, date util.DateOnly) bool {
	if g.IntervalDays != nil && g.IntervalStartDate != nil {
		daysSinceStart := date.DayNumber() - g.IntervalStartDate.DayNumber()
		return daysSinceStart >= 0 && daysSinceStart%*g.IntervalDays == 0
	}

	return g.ScheduleDays.Contains(date.WeekdayIndex())
}

// validateSchedule enforces the recurrence invariant at write time: either
// a complete interval pair with a positive step, or a valid weekday set.
// An interval step without an anchor leaves the goal in weekday mode, so
// the weekday set must stand on its own in that case. IsDueOn assumes
// input that already passed this check.
func validateSchedule(days WeekdaySet, intervalDays *int, intervalStart *util.DateOnly) error {
	if intervalDays != nil && *intervalDays <= 0 {
		return ErrInvalidSchedule
	}
	if intervalDays != nil && intervalStart != nil {
		return nil
	}
	if !days.Valid() {
		return ErrInvalidSchedule
	}
	return nil
}
