package goal_test

import (
	"sort"
	"time"

	"github.com/Pineapplelles/habit-pulse/internal/goal"
	util "github.com/Pineapplelles/habit-pulse/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeStore backs in-memory implementations of GoalRepository and
// CompletionRepository, mirroring the storage contracts the services rely
// on: ownership-scoped lookups, rank ordering, and the unique (goal, day)
// constraint.
type fakeStore struct {
	goals       []*goal.Goal
	completions []goal.Completion

	// staleReads makes the next n Exists calls report "not completed"
	// regardless of state, to simulate a racing toggle reading stale data.
	staleReads int
}

type fakeGoalRepo struct{ *fakeStore }

type fakeCompletionRepo struct{ *fakeStore }

func newFakeRepos() (fakeGoalRepo, fakeCompletionRepo, *fakeStore) {
	store := &fakeStore{}
	return fakeGoalRepo{store}, fakeCompletionRepo{store}, store
}

func (f fakeGoalRepo) Create(g *goal.Goal) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	g.CreatedAt = time.Now()
	f.goals = append(f.goals, g)
	return nil
}

func (f fakeGoalRepo) FindAllByUser(userID uuid.UUID) ([]*goal.Goal, error) {
	var out []*goal.Goal
	for _, g := range f.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (f fakeGoalRepo) FindByIDAndUser(id, userID uuid.UUID) (*goal.Goal, error) {
	for _, g := range f.goals {
		if g.ID == id && g.UserID == userID {
			return g, nil
		}
	}
	return nil, goal.ErrNotFound
}

func (f fakeGoalRepo) MaxSortOrder(userID uuid.UUID) (int, error) {
	max := -1
	for _, g := range f.goals {
		if g.UserID == userID && g.SortOrder > max {
			max = g.SortOrder
		}
	}
	return max, nil
}

func (f fakeGoalRepo) Update(updated *goal.Goal) error {
	for i, g := range f.goals {
		if g.ID == updated.ID {
			f.goals[i] = updated
			return nil
		}
	}
	return goal.ErrNotFound
}

func (f fakeGoalRepo) UpdateSortOrders(userID uuid.UUID, orderedIDs []uuid.UUID) error {
	for i, id := range orderedIDs {
		for _, g := range f.goals {
			if g.ID == id && g.UserID == userID {
				g.SortOrder = i
			}
		}
	}
	return nil
}

func (f fakeGoalRepo) Delete(id, userID uuid.UUID) error {
	for i, g := range f.goals {
		if g.ID == id && g.UserID == userID {
			f.goals = append(f.goals[:i], f.goals[i+1:]...)

			kept := f.completions[:0]
			for _, c := range f.completions {
				if c.GoalID != id {
					kept = append(kept, c)
				}
			}
			f.completions = kept
			return nil
		}
	}
	return goal.ErrNotFound
}

func (f fakeCompletionRepo) Exists(goalID uuid.UUID, day util.DateOnly) (bool, error) {
	if f.staleReads > 0 {
		f.staleReads--
		return false, nil
	}
	for _, c := range f.completions {
		if c.GoalID == goalID && c.CompletedOn.Equal(day) {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeCompletionRepo) Insert(goalID uuid.UUID, day util.DateOnly) error {
	for _, c := range f.completions {
		if c.GoalID == goalID && c.CompletedOn.Equal(day) {
			return gorm.ErrDuplicatedKey
		}
	}
	f.completions = append(f.completions, goal.Completion{
		ID:          uuid.New(),
		GoalID:      goalID,
		CompletedOn: day,
	})
	return nil
}

func (f fakeCompletionRepo) Delete(goalID uuid.UUID, day util.DateOnly) error {
	for i, c := range f.completions {
		if c.GoalID == goalID && c.CompletedOn.Equal(day) {
			f.completions = append(f.completions[:i], f.completions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f fakeCompletionRepo) ListByUserOnDate(userID uuid.UUID, day util.DateOnly) ([]*goal.Completion, error) {
	return f.ListByUserInRange(userID, day, day)
}

func (f fakeCompletionRepo) ListByUserInRange(userID uuid.UUID, start, end util.DateOnly) ([]*goal.Completion, error) {
	owned := make(map[uuid.UUID]bool)
	for _, g := range f.goals {
		if g.UserID == userID {
			owned[g.ID] = true
		}
	}

	var out []*goal.Completion
	for i := range f.completions {
		c := f.completions[i]
		if owned[c.GoalID] && !c.CompletedOn.Before(start) && !c.CompletedOn.After(end) {
			out = append(out, &f.completions[i])
		}
	}
	return out, nil
}
