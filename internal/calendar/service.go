package calendar

import (
	"context"
	"errors"

	"github.com/Pineapplelles/habit-pulse/internal/auth"
	"github.com/Pineapplelles/habit-pulse/internal/config"
	"github.com/Pineapplelles/habit-pulse/internal/goal"
	util "github.com/Pineapplelles/habit-pulse/internal/utils"
	"github.com/google/uuid"
)

// maxRangeDays bounds range queries so a single request cannot trigger an
// unbounded per-goal-per-day evaluation. 366 covers a whole leap year.
const maxRangeDays = 366

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInvalidRange  = errors.New("endDate must not precede startDate")
	ErrRangeTooLarge = errors.New("date range must not exceed 366 days")
)

type Service interface {
	Range(ctx context.Context, start, end util.DateOnly) ([]DaySummary, error)
	Day(ctx context.Context, day util.DateOnly) (*DayDetail, error)
}

type service struct {
	goals       goal.GoalRepository
	completions goal.CompletionRepository
}

func NewService(goals goal.GoalRepository, completions goal.CompletionRepository) Service {
	return &service{goals: goals, completions: completions}
}

// Range walks every date in the inclusive range and reports, per day, how
// many active goals were due and how many of those have a completion.
// Inactive goals never count, even on dates where their recurrence matches.
func (s *service) Range(ctx context.Context, start, end util.DateOnly) ([]DaySummary, error) {
	log := config.WithContext(ctx)
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if end.Before(start) {
		return nil, ErrInvalidRange
	}
	rangeDays := end.DayNumber() - start.DayNumber() + 1
	if rangeDays > maxRangeDays {
		return nil, ErrRangeTooLarge
	}

	active, err := s.activeGoals(userID)
	if err != nil {
		log.WithError(err).Error("Failed to load goals for calendar range")
		return nil, err
	}

	completions, err := s.completions.ListByUserInRange(userID, start, end)
	if err != nil {
		log.WithError(err).Error("Failed to load completions for calendar range")
		return nil, err
	}

	// (goal, day number) pairs with a completion record.
	completed := make(map[uuid.UUID]map[int]bool, len(active))
	for _, c := range completions {
		days := completed[c.GoalID]
		if days == nil {
			days = make(map[int]bool)
			completed[c.GoalID] = days
		}
		days[c.CompletedOn.DayNumber()] = true
	}

	summaries := make([]DaySummary, 0, rangeDays)
	for d := start; !d.After(end); d = d.AddDays(1) {
		summary := DaySummary{Date: d}
		for _, g := range active {
			if !goal.IsDueOn(g, d) {
				continue
			}
			summary.TotalScheduled++
			if completed[g.ID][d.DayNumber()] {
				summary.Completed++
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Day partitions the active goals due on one date into done and not done,
// both ordered by rank.
func (s *service) Day(ctx context.Context, day util.DateOnly) (*DayDetail, error) {
	log := config.WithContext(ctx)
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	active, err := s.activeGoals(userID)
	if err != nil {
		log.WithError(err).Error("Failed to load goals for day detail")
		return nil, err
	}

	completions, err := s.completions.ListByUserOnDate(userID, day)
	if err != nil {
		log.WithError(err).Error("Failed to load completions for day detail")
		return nil, err
	}
	completedIDs := make(map[uuid.UUID]bool, len(completions))
	for _, c := range completions {
		completedIDs[c.GoalID] = true
	}

	detail := DayDetail{
		DaySummary: DaySummary{Date: day},
		Done:       []GoalItem{},
		NotDone:    []GoalItem{},
	}
	for _, g := range active {
		if !goal.IsDueOn(g, day) {
			continue
		}
		detail.TotalScheduled++
		item := toItem(g)
		if completedIDs[g.ID] {
			detail.Completed++
			detail.Done = append(detail.Done, item)
		} else {
			detail.NotDone = append(detail.NotDone, item)
		}
	}
	return &detail, nil
}

// activeGoals preserves the repository's rank ordering.
func (s *service) activeGoals(userID uuid.UUID) ([]*goal.Goal, error) {
	goals, err := s.goals.FindAllByUser(userID)
	if err != nil {
		return nil, err
	}
	active := make([]*goal.Goal, 0, len(goals))
	for _, g := range goals {
		if g.IsActive {
			active = append(active, g)
		}
	}
	return active, nil
}

func userIDFromContext(ctx context.Context) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	return userID, nil
}

func toItem(g *goal.Goal) GoalItem {
	return GoalItem{
		ID:           g.ID,
		Name:         g.Name,
		IsMeasurable: g.IsMeasurable,
		TargetValue:  g.TargetValue,
		Unit:         g.Unit,
	}
}
