package goal

import (
	"context"
	"errors"

	"github.com/Pineapplelles/habit-pulse/internal/auth"
	"github.com/Pineapplelles/habit-pulse/internal/config"
	util "github.com/Pineapplelles/habit-pulse/internal/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidID    = errors.New("invalid id format")
	ErrNameRequired = errors.New("name is required")
)

type Service interface {
	List(ctx context.Context, todayOnly bool, today util.DateOnly) ([]GoalWithStatusResponse, error)
	Get(ctx context.Context, id string) (*GoalResponse, error)
	Create(ctx context.Context, dto CreateGoalDTO) (*GoalResponse, error)
	Update(ctx context.Context, id string, dto UpdateGoalDTO) (*GoalResponse, error)
	Delete(ctx context.Context, id string) error
	Toggle(ctx context.Context, id string, day util.DateOnly) (*ToggleResponse, error)
	Reorder(ctx context.Context, dto ReorderGoalsDTO) error
}

type service struct {
	repo        GoalRepository
	completions CompletionRepository
}

func NewService(repo GoalRepository, completions CompletionRepository) Service {
	return &service{repo: repo, completions: completions}
}

func getUserIDFromContext(ctx context.Context, log logrus.FieldLogger, action string) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.WithError(err).Warnf("Attempt to %s without authentication", action)
		return uuid.Nil, ErrUnauthorized
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		log.WithError(err).Warn("Malformed user id in token claims")
		return uuid.Nil, ErrUnauthorized
	}
	return userID, nil
}

func parseUUID(log logrus.FieldLogger, id string, entityName string) (uuid.UUID, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).Warnf("Invalid %s ID", entityName)
		return uuid.Nil, ErrInvalidID
	}
	return parsedID, nil
}

// List returns the user's goals ordered by rank. With todayOnly set only
// active goals due on the given day are included; otherwise every goal is
// returned, inactive ones included. Each entry is annotated with whether a
// completion exists for the given day.
func (s *service) List(ctx context.Context, todayOnly bool, today util.DateOnly) ([]GoalWithStatusResponse, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "list goals")
	if err != nil {
		return nil, err
	}

	goals, err := s.repo.FindAllByUser(userID)
	if err != nil {
		log.WithError(err).Error("Failed to list goals")
		return nil, err
	}

	completedToday, err := s.completedGoalIDs(userID, today)
	if err != nil {
		log.WithError(err).Error("Failed to load today's completions")
		return nil, err
	}

	responses := make([]GoalWithStatusResponse, 0, len(goals))
	for _, g := range goals {
		if todayOnly && !(g.IsActive && IsDueOn(g, today)) {
			continue
		}
		responses = append(responses, GoalWithStatusResponse{
			GoalResponse:     *toResponse(g),
			IsCompletedToday: completedToday[g.ID],
		})
	}
	return responses, nil
}

func (s *service) Get(ctx context.Context, id string) (*GoalResponse, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "get goal")
	if err != nil {
		return nil, err
	}

	goalID, err := parseUUID(log, id, "goal")
	if err != nil {
		return nil, err
	}

	g, err := s.findOwned(log, goalID, userID)
	if err != nil {
		return nil, err
	}
	return toResponse(g), nil
}

func (s *service) Create(ctx context.Context, dto CreateGoalDTO) (*GoalResponse, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "create goal")
	if err != nil {
		return nil, err
	}

	if dto.Name == "" {
		return nil, ErrNameRequired
	}

	days := dto.ScheduleDays
	if days == nil {
		days = EveryDay()
	}
	if err := validateSchedule(days, dto.IntervalDays, dto.IntervalStartDate); err != nil {
		return nil, err
	}

	maxOrder, err := s.repo.MaxSortOrder(userID)
	if err != nil {
		log.WithError(err).Error("Failed to read current sort order")
		return nil, err
	}

	unit := dto.Unit
	if unit == "" {
		unit = "minutes"
	}

	g := Goal{
		UserID:            userID,
		Name:              dto.Name,
		IsMeasurable:      dto.IsMeasurable,
		TargetValue:       dto.TargetValue,
		Unit:              unit,
		ScheduleDays:      days,
		IntervalDays:      dto.IntervalDays,
		IntervalStartDate: dto.IntervalStartDate,
		SortOrder:         maxOrder + 1,
		IsActive:          true,
	}

	if err := s.repo.Create(&g); err != nil {
		log.WithError(err).Error("Failed to create goal")
		return nil, err
	}

	log.WithField("goal_id", g.ID).Info("Goal created")
	return toResponse(&g), nil
}

// Update applies only the supplied fields. Interval fields are never
// cleared implicitly: sending neither leaves the stored pair untouched,
// so a goal switched to interval mode keeps its weekday set around (and
// interval mode keeps precedence until the client overwrites it).
func (s *service) Update(ctx context.Context, id string, dto UpdateGoalDTO) (*GoalResponse, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "update goal")
	if err != nil {
		return nil, err
	}

	goalID, err := parseUUID(log, id, "goal")
	if err != nil {
		return nil, err
	}

	g, err := s.findOwned(log, goalID, userID)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		if *dto.Name == "" {
			return nil, ErrNameRequired
		}
		g.Name = *dto.Name
	}
	if dto.IsMeasurable != nil {
		g.IsMeasurable = *dto.IsMeasurable
	}
	if dto.TargetValue != nil {
		g.TargetValue = *dto.TargetValue
	}
	if dto.Unit != nil {
		g.Unit = *dto.Unit
	}
	if dto.ScheduleDays != nil {
		g.ScheduleDays = dto.ScheduleDays
	}
	if dto.IntervalDays != nil {
		g.IntervalDays = dto.IntervalDays
	}
	if dto.IntervalStartDate != nil {
		g.IntervalStartDate = dto.IntervalStartDate
	}
	if dto.SortOrder != nil {
		g.SortOrder = *dto.SortOrder
	}
	if dto.IsActive != nil {
		g.IsActive = *dto.IsActive
	}

	if err := validateSchedule(g.ScheduleDays, g.IntervalDays, g.IntervalStartDate); err != nil {
		return nil, err
	}

	if err := s.repo.Update(g); err != nil {
		log.WithError(err).Error("Failed to update goal")
		return nil, err
	}

	log.WithField("goal_id", g.ID).Info("Goal updated")
	return toResponse(g), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "delete goal")
	if err != nil {
		return err
	}

	goalID, err := parseUUID(log, id, "goal")
	if err != nil {
		return err
	}

	if err := s.repo.Delete(goalID, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.WithFields(logrus.Fields{
				"goal_id": id,
				"user_id": userID,
			}).Warn("Goal not found or does not belong to user for deletion")
			return ErrGoalNotFound
		}
		log.WithError(err).Error("Failed to delete goal")
		return err
	}

	log.WithField("goal_id", id).Info("Goal deleted")
	return nil
}

// Toggle flips the completion record for (goal, day) and returns the new
// state. A concurrent toggle that wins the insert race trips the unique
// index; in that case the current state is re-read and returned instead of
// surfacing the conflict.
func (s *service) Toggle(ctx context.Context, id string, day util.DateOnly) (*ToggleResponse, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "toggle completion")
	if err != nil {
		return nil, err
	}

	goalID, err := parseUUID(log, id, "goal")
	if err != nil {
		return nil, err
	}

	g, err := s.findOwned(log, goalID, userID)
	if err != nil {
		return nil, err
	}

	done, err := s.completions.Exists(g.ID, day)
	if err != nil {
		log.WithError(err).Error("Failed to check completion state")
		return nil, err
	}

	if done {
		if err := s.completions.Delete(g.ID, day); err != nil {
			log.WithError(err).Error("Failed to remove completion")
			return nil, err
		}
		return &ToggleResponse{IsCompleted: false}, nil
	}

	if err := s.completions.Insert(g.ID, day); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			current, existsErr := s.completions.Exists(g.ID, day)
			if existsErr != nil {
				log.WithError(existsErr).Error("Failed to re-read completion state after conflict")
				return nil, existsErr
			}
			log.WithFields(logrus.Fields{
				"goal_id": g.ID,
				"date":    day.String(),
			}).Warn("Concurrent toggle detected, converged on stored state")
			return &ToggleResponse{IsCompleted: current}, nil
		}
		log.WithError(err).Error("Failed to insert completion")
		return nil, err
	}

	return &ToggleResponse{IsCompleted: true}, nil
}

// Reorder assigns rank = list position for the supplied goals. Partial
// lists reposition only the supplied subset; IDs the user does not own are
// skipped without reporting which ones.
func (s *service) Reorder(ctx context.Context, dto ReorderGoalsDTO) error {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "reorder goals")
	if err != nil {
		return err
	}

	if len(dto.GoalIDs) == 0 {
		return nil
	}

	if err := s.repo.UpdateSortOrders(userID, dto.GoalIDs); err != nil {
		log.WithError(err).Error("Failed to reorder goals")
		return err
	}

	log.WithField("count", len(dto.GoalIDs)).Info("Goals reordered")
	return nil
}

func (s *service) findOwned(log logrus.FieldLogger, goalID, userID uuid.UUID) (*Goal, error) {
	g, err := s.repo.FindByIDAndUser(goalID, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.WithFields(logrus.Fields{
				"goal_id": goalID,
				"user_id": userID,
			}).Warn("Goal not found or does not belong to user")
			return nil, ErrGoalNotFound
		}
		log.WithError(err).Error("Error finding goal by ID")
		return nil, err
	}
	return g, nil
}

func (s *service) completedGoalIDs(userID uuid.UUID, day util.DateOnly) (map[uuid.UUID]bool, error) {
	completions, err := s.completions.ListByUserOnDate(userID, day)
	if err != nil {
		return nil, err
	}
	ids := make(map[uuid.UUID]bool, len(completions))
	for _, c := range completions {
		ids[c.GoalID] = true
	}
	return ids, nil
}

func toResponse(g *Goal) *GoalResponse {
	targetMinutes := 0
	if g.Unit == "minutes" {
		targetMinutes = g.TargetValue
	}
	return &GoalResponse{
		ID:                g.ID,
		Name:              g.Name,
		IsMeasurable:      g.IsMeasurable,
		TargetValue:       g.TargetValue,
		Unit:              g.Unit,
		TargetMinutes:     targetMinutes,
		ScheduleDays:      g.ScheduleDays,
		IntervalDays:      g.IntervalDays,
		IntervalStartDate: g.IntervalStartDate,
		SortOrder:         g.SortOrder,
		IsActive:          g.IsActive,
		CreatedAt:         g.CreatedAt,
	}
}
