package goal_test

import (
	"context"
	"testing"
	"time"

	"github.com/Pineapplelles/habit-pulse/internal/auth"
	"github.com/Pineapplelles/habit-pulse/internal/goal"
	util "github.com/Pineapplelles/habit-pulse/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testUserID  = uuid.New()
	otherUserID = uuid.New()
)

func userCtx(userID uuid.UUID) context.Context {
	return auth.WithClaims(context.Background(), &auth.Claims{UserID: userID.String()})
}

func newTestService(t *testing.T) (goal.Service, *fakeStore) {
	t.Helper()
	repo, completions, store := newFakeRepos()
	return goal.NewService(repo, completions), store
}

func mustCreate(t *testing.T, s goal.Service, ctx context.Context, dto goal.CreateGoalDTO) *goal.GoalResponse {
	t.Helper()
	resp, err := s.Create(ctx, dto)
	require.NoError(t, err)
	return resp
}

func TestCreateGoal(t *testing.T) {
	s, _ := newTestService(t)
	ctx := userCtx(testUserID)

	first := mustCreate(t, s, ctx, goal.CreateGoalDTO{Name: "Read"})
	assert.Equal(t, 0, first.SortOrder, "first goal starts at rank 0")
	assert.Equal(t, goal.EveryDay(), first.ScheduleDays, "schedule days default to the whole week")
	assert.Equal(t, "minutes", first.Unit)
	assert.True(t, first.IsActive)

	second := mustCreate(t, s, ctx, goal.CreateGoalDTO{Name: "Run", ScheduleDays: goal.WeekdaySet{1, 3, 5}})
	assert.Equal(t, 1, second.SortOrder, "ranks grow from the current maximum")

	t.Run("NameRequired", func(t *testing.T) {
		_, err := s.Create(ctx, goal.CreateGoalDTO{})
		assert.ErrorIs(t, err, goal.ErrNameRequired)
	})

	t.Run("RejectsNonPositiveInterval", func(t *testing.T) {
		zero := 0
		anchor := util.NewDateOnly(2025, time.January, 1)
		_, err := s.Create(ctx, goal.CreateGoalDTO{
			Name:              "Stretch",
			IntervalDays:      &zero,
			IntervalStartDate: &anchor,
		})
		assert.ErrorIs(t, err, goal.ErrInvalidSchedule)
	})

	t.Run("RejectsEmptyWeekdaySet", func(t *testing.T) {
		_, err := s.Create(ctx, goal.CreateGoalDTO{Name: "Stretch", ScheduleDays: goal.WeekdaySet{}})
		assert.ErrorIs(t, err, goal.ErrInvalidSchedule)
	})

	t.Run("AcceptsIntervalPair", func(t *testing.T) {
		three := 3
		anchor := util.NewDateOnly(2025, time.January, 1)
		resp := mustCreate(t, s, ctx, goal.CreateGoalDTO{
			Name:              "Water plants",
			IntervalDays:      &three,
			IntervalStartDate: &anchor,
		})
		require.NotNil(t, resp.IntervalDays)
		assert.Equal(t, 3, *resp.IntervalDays)
	})
}

func TestUpdateGoal(t *testing.T) {
	s, _ := newTestService(t)
	ctx := userCtx(testUserID)

	created := mustCreate(t, s, ctx, goal.CreateGoalDTO{Name: "Read", TargetValue: 30})

	t.Run("PartialUpdateKeepsOtherFields", func(t *testing.T) {
		name := "Read fiction"
		resp, err := s.Update(ctx, created.ID.String(), goal.UpdateGoalDTO{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Read fiction", resp.Name)
		assert.Equal(t, 30, resp.TargetValue, "unsupplied fields stay put")
		assert.Equal(t, goal.EveryDay(), resp.ScheduleDays)
	})

	t.Run("SwitchToIntervalKeepsWeekdays", func(t *testing.T) {
		two := 2
		anchor := util.NewDateOnly(2025, time.March, 1)
		resp, err := s.Update(ctx, created.ID.String(), goal.UpdateGoalDTO{
			IntervalDays:      &two,
			IntervalStartDate: &anchor,
		})
		require.NoError(t, err)
		require.NotNil(t, resp.IntervalDays)
		assert.Equal(t, goal.EveryDay(), resp.ScheduleDays, "weekday fields are never cleared on a mode switch")
	})

	t.Run("RejectsInvalidResultingSchedule", func(t *testing.T) {
		_, err := s.Update(ctx, created.ID.String(), goal.UpdateGoalDTO{ScheduleDays: goal.WeekdaySet{9}})
		assert.ErrorIs(t, err, goal.ErrInvalidSchedule)
	})

	t.Run("ForeignGoalLooksMissing", func(t *testing.T) {
		active := false
		_, err := s.Update(userCtx(otherUserID), created.ID.String(), goal.UpdateGoalDTO{IsActive: &active})
		assert.ErrorIs(t, err, goal.ErrGoalNotFound)
	})
}

func TestToggle(t *testing.T) {
	day := util.NewDateOnly(2025, time.June, 2)

	t.Run("OnOffOn", func(t *testing.T) {
		s, _ := newTestService(t)
		ctx := userCtx(testUserID)
		g := mustCreate(t, s, ctx, goal.CreateGoalDTO{Name: "Read"})

		resp, err := s.Toggle(ctx, g.ID.String(), day)
		require.NoError(t, err)
		assert.True(t, resp.IsCompleted)

		resp, err = s.Toggle(ctx, g.ID.String(), day)
		require.NoError(t, err)
		assert.False(t, resp.IsCompleted)

		resp, err = s.Toggle(ctx, g.ID.String(), day)
		require.NoError(t, err)
		assert.True(t, resp.IsCompleted)
	})

	t.Run("IndependentDates", func(t *testing.T) {
		s, store := newTestService(t)
		ctx := userCtx(testUserID)
		g := mustCreate(t, s, ctx, goal.CreateGoalDTO{Name: "Read"})

		_, err := s.Toggle(ctx, g.ID.String(), day)
		require.NoError(t, err)
		_, err = s.Toggle(ctx, g.ID.String(), day.AddDays(1))
		require.NoError(t, err)

		assert.Len(t, store.completions, 2, "each date gets its own record")
	})

	t.Run("UnknownGoal", func(t *testing.T) {
		s, _ := newTestService(t)
		_, err := s.Toggle(userCtx(testUserID), uuid.NewString(), day)
		assert.ErrorIs(t, err, goal.ErrGoalNotFound)
	})

	t.Run("ForeignGoalLooksMissing", func(t *testing.T) {
		s, _ := newTestService(t)
		g := mustCreate(t, s, userCtx(testUserID), goal.CreateGoalDTO{Name: "Read"})

		_, err := s.Toggle(userCtx(otherUserID), g.ID.String(), day)
		assert.ErrorIs(t, err, goal.ErrGoalNotFound)
	})

	t.Run("ConcurrentInsertConverges", func(t *testing.T) {
		s, store := newTestService(t)
		ctx := userCtx(testUserID)
		g := mustCreate(t, s, ctx, goal.CreateGoalDTO{Name: "Read"})

		// A racing toggle already inserted the record, but this call's
		// existence check read stale state. The insert trips the unique
		// constraint and the service converges on the stored state.
		_, err := s.Toggle(ctx, g.ID.String(), day)
		require.NoError(t, err)
		store.staleReads = 1

		resp, err := s.Toggle(ctx, g.ID.String(), day)
		require.NoError(t, err)
		assert.True(t, resp.IsCompleted, "conflict resolves to the state on disk")
		assert.Len(t, store.completions, 1, "no duplicate record is created")
	})
}

func TestReorder(t *testing.T) {
	s, _ := newTestService(t)
	ctx := userCtx(testUserID)

	a := mustCreate(t, s, ctx, goal.CreateGoalDTO{Name: "A"})
	b := mustCreate(t, s, ctx, goal.CreateGoalDTO{Name: "B"})
	c := mustCreate(t, s, ctx, goal.CreateGoalDTO{Name: "C"})

	rankOf := func(t *testing.T, id uuid.UUID) int {
		t.Helper()
		list, err := s.List(ctx, false, util.Today())
		require.NoError(t, err)
		for _, g := range list {
			if g.ID == id {
				return g.SortOrder
			}
		}
		t.Fatalf("goal %s not found", id)
		return -1
	}

	t.Run("FullList", func(t *testing.T) {
		err := s.Reorder(ctx, goal.ReorderGoalsDTO{GoalIDs: []uuid.UUID{c.ID, a.ID, b.ID}})
		require.NoError(t, err)
		assert.Equal(t, 0, rankOf(t, c.ID))
		assert.Equal(t, 1, rankOf(t, a.ID))
		assert.Equal(t, 2, rankOf(t, b.ID))
	})

	t.Run("SubsetLeavesOmittedRanksAlone", func(t *testing.T) {
		before := rankOf(t, b.ID)
		err := s.Reorder(ctx, goal.ReorderGoalsDTO{GoalIDs: []uuid.UUID{a.ID, c.ID}})
		require.NoError(t, err)
		assert.Equal(t, 0, rankOf(t, a.ID))
		assert.Equal(t, 1, rankOf(t, c.ID))
		assert.Equal(t, before, rankOf(t, b.ID))
	})

	t.Run("ForeignIDsSilentlyIgnored", func(t *testing.T) {
		foreign := mustCreate(t, s, userCtx(otherUserID), goal.CreateGoalDTO{Name: "X"})
		err := s.Reorder(ctx, goal.ReorderGoalsDTO{GoalIDs: []uuid.UUID{foreign.ID, a.ID}})
		require.NoError(t, err)
		assert.Equal(t, 1, rankOf(t, a.ID), "positions still follow list order")

		foreignList, err := s.List(userCtx(otherUserID), false, util.Today())
		require.NoError(t, err)
		require.Len(t, foreignList, 1)
		assert.Equal(t, 0, foreignList[0].SortOrder, "foreign goal rank untouched")
	})

	t.Run("Idempotent", func(t *testing.T) {
		order := goal.ReorderGoalsDTO{GoalIDs: []uuid.UUID{b.ID, c.ID, a.ID}}
		require.NoError(t, s.Reorder(ctx, order))
		require.NoError(t, s.Reorder(ctx, order))
		assert.Equal(t, 0, rankOf(t, b.ID))
		assert.Equal(t, 1, rankOf(t, c.ID))
		assert.Equal(t, 2, rankOf(t, a.ID))
	})
}

func TestList(t *testing.T) {
	monday := util.NewDateOnly(2025, time.June, 2)

	s, _ := newTestService(t)
	ctx := userCtx(testUserID)

	mwf := mustCreate(t, s, ctx, goal.CreateGoalDTO{Name: "Gym", ScheduleDays: goal.WeekdaySet{1, 3, 5}})
	tue := mustCreate(t, s, ctx, goal.CreateGoalDTO{Name: "Laundry", ScheduleDays: goal.WeekdaySet{2}})
	paused := mustCreate(t, s, ctx, goal.CreateGoalDTO{Name: "Paused"})
	inactive := false
	_, err := s.Update(ctx, paused.ID.String(), goal.UpdateGoalDTO{IsActive: &inactive})
	require.NoError(t, err)

	_, err = s.Toggle(ctx, mwf.ID.String(), monday)
	require.NoError(t, err)

	t.Run("TodayOnly", func(t *testing.T) {
		list, err := s.List(ctx, true, monday)
		require.NoError(t, err)
		require.Len(t, list, 1, "only active goals due today")
		assert.Equal(t, mwf.ID, list[0].ID)
		assert.True(t, list[0].IsCompletedToday)
	})

	t.Run("AllGoals", func(t *testing.T) {
		list, err := s.List(ctx, false, monday)
		require.NoError(t, err)
		require.Len(t, list, 3, "full listing includes inactive and not-due goals")

		byID := make(map[uuid.UUID]goal.GoalWithStatusResponse)
		for _, g := range list {
			byID[g.ID] = g
		}
		assert.True(t, byID[mwf.ID].IsCompletedToday)
		assert.False(t, byID[tue.ID].IsCompletedToday)
		assert.False(t, byID[paused.ID].IsActive)
	})

	t.Run("UnknownUserGetsEmptyList", func(t *testing.T) {
		list, err := s.List(userCtx(uuid.New()), true, monday)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestDeleteGoal(t *testing.T) {
	s, store := newTestService(t)
	ctx := userCtx(testUserID)

	g := mustCreate(t, s, ctx, goal.CreateGoalDTO{Name: "Read"})
	day := util.NewDateOnly(2025, time.June, 2)
	_, err := s.Toggle(ctx, g.ID.String(), day)
	require.NoError(t, err)
	require.Len(t, store.completions, 1)

	t.Run("ForeignGoalLooksMissing", func(t *testing.T) {
		err := s.Delete(userCtx(otherUserID), g.ID.String())
		assert.ErrorIs(t, err, goal.ErrGoalNotFound)
	})

	t.Run("CascadesCompletions", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, g.ID.String()))
		assert.Empty(t, store.goals)
		assert.Empty(t, store.completions, "completion history goes with the goal")
	})

	t.Run("SecondDeleteIsNotFound", func(t *testing.T) {
		err := s.Delete(ctx, g.ID.String())
		assert.ErrorIs(t, err, goal.ErrGoalNotFound)
	})
}
