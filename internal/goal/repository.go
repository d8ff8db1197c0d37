package goal

import (
	"errors"

	util "github.com/Pineapplelles/habit-pulse/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type GoalRepository interface {
	Create(g *Goal) error
	FindAllByUser(userID uuid.UUID) ([]*Goal, error)
	FindByIDAndUser(id, userID uuid.UUID) (*Goal, error)
	MaxSortOrder(userID uuid.UUID) (int, error)
	Update(g *Goal) error
	UpdateSortOrders(userID uuid.UUID, orderedIDs []uuid.UUID) error
	Delete(id, userID uuid.UUID) error
}

type CompletionRepository interface {
	Exists(goalID uuid.UUID, day util.DateOnly) (bool, error)
	Insert(goalID uuid.UUID, day util.DateOnly) error
	Delete(goalID uuid.UUID, day util.DateOnly) error
	ListByUserOnDate(userID uuid.UUID, day util.DateOnly) ([]*Completion, error)
	ListByUserInRange(userID uuid.UUID, start, end util.DateOnly) ([]*Completion, error)
}

type goalRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(g *Goal) error {
	return r.db.Create(g).Error
}

func (r *goalRepository) FindAllByUser(userID uuid.UUID) ([]*Goal, error) {
	var goals []*Goal
	err := r.db.
		Where("user_id = ?", userID).
		Order("sort_order").
		Order("created_at").
		Find(&goals).Error
	if err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *goalRepository) FindByIDAndUser(id, userID uuid.UUID) (*Goal, error) {
	var g Goal
	err := r.db.First(&g, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

// MaxSortOrder returns -1 when the user has no goals, so the first goal
// created lands at rank 0.
func (r *goalRepository) MaxSortOrder(userID uuid.UUID) (int, error) {
	var max *int
	err := r.db.Model(&Goal{}).
		Where("user_id = ?", userID).
		Select("MAX(sort_order)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}

func (r *goalRepository) Update(g *Goal) error {
	return r.db.Save(g).Error
}

// UpdateSortOrders assigns rank = position for each supplied goal in a
// single transaction. Goals outside the list keep their rank; IDs that do
// not belong to the user match no row and are skipped without error.
func (r *goalRepository) UpdateSortOrders(userID uuid.UUID, orderedIDs []uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			err := tx.Model(&Goal{}).
				Where("id = ? AND user_id = ?", id, userID).
				Update("sort_order", i).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the goal and its completion history together. Ownership
// is checked inside the transaction so completions of a foreign goal can
// never be touched.
func (r *goalRepository) Delete(id, userID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var g Goal
		if err := tx.Select("id").First(&g, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Where("goal_id = ?", id).Delete(&Completion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Goal{}, "id = ?", id).Error
	})
}

type completionRepository struct {
	db *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) CompletionRepository {
	return &completionRepository{db: db}
}

func (r *completionRepository) Exists(goalID uuid.UUID, day util.DateOnly) (bool, error) {
	var count int64
	err := r.db.Model(&Completion{}).
		Where("goal_id = ? AND completed_on = ?", goalID, day).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *completionRepository) Insert(goalID uuid.UUID, day util.DateOnly) error {
	return r.db.Create(&Completion{GoalID: goalID, CompletedOn: day}).Error
}

func (r *completionRepository) Delete(goalID uuid.UUID, day util.DateOnly) error {
	return r.db.
		Where("goal_id = ? AND completed_on = ?", goalID, day).
		Delete(&Completion{}).Error
}

func (r *completionRepository) ListByUserOnDate(userID uuid.UUID, day util.DateOnly) ([]*Completion, error) {
	var completions []*Completion
	err := r.db.
		Joins("JOIN goals ON goals.id = completions.goal_id").
		Where("goals.user_id = ? AND completions.completed_on = ?", userID, day).
		Find(&completions).Error
	if err != nil {
		return nil, err
	}
	return completions, nil
}

func (r *completionRepository) ListByUserInRange(userID uuid.UUID, start, end util.DateOnly) ([]*Completion, error) {
	var completions []*Completion
	err := r.db.
		Joins("JOIN goals ON goals.id = completions.goal_id").
		Where("goals.user_id = ? AND completions.completed_on BETWEEN ? AND ?", userID, start, end).
		Find(&completions).Error
	if err != nil {
		return nil, err
	}
	return completions, nil
}
