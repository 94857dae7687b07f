package gateway_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/questkit/pkg/gateway"
	"github.com/dmitrymomot/questkit/pkg/gateway/gatewaytest"
)

func TestClient_Workouts(t *testing.T) {
	t.Parallel()

	srv := gatewaytest.New(t, gatewaytest.WithExercises(
		gateway.Exercise{ID: 1, Name: "Push-up", Category: "strength", MuscleGroup: "chest", Difficulty: "beginner", Sets: 3, Reps: 15},
		gateway.Exercise{ID: 2, Name: "Squat", Category: "strength", MuscleGroup: "legs", Difficulty: "beginner", Sets: 4, Reps: 12},
		gateway.Exercise{ID: 3, Name: "Run", Category: "cardio", MuscleGroup: "legs", Difficulty: "intermediate", Duration: 30},
	))
	u := srv.SeedUser("hunter@example.com", "secret123", "Jin")
	token := srv.IssueToken(u.ID)
	c := newClient(t, srv.BaseURL(), &token)
	ctx := context.Background()

	t.Run("list exercises with filter", func(t *testing.T) {
		all, err := c.ListExercises(ctx, gateway.ExerciseFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 3)

		legs, err := c.ListExercises(ctx, gateway.ExerciseFilter{Category: "strength", MuscleGroup: "legs"})
		require.NoError(t, err)
		require.Len(t, legs, 1)
		assert.Equal(t, "Squat", legs[0].Name)
		assert.Equal(t, "strength", srv.LastRequest().URL.Query().Get("category"))
	})

	t.Run("get exercise", func(t *testing.T) {
		ex, err := c.GetExercise(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "Run", ex.Name)

		_, err = c.GetExercise(ctx, 99)
		gerr, ok := gateway.AsError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, gerr.StatusCode)
		assert.Equal(t, "Exercise not found", gerr.Message)
	})

	t.Run("plans", func(t *testing.T) {
		plans, err := c.ListWorkoutPlans(ctx)
		require.NoError(t, err)
		assert.Empty(t, plans)

		created, err := c.CreateWorkoutPlan(ctx, gateway.WorkoutPlan{Name: "Push Day", DaysPerWeek: 3, Duration: 45})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, u.ID, created.UserID)

		plans, err = c.ListWorkoutPlans(ctx)
		require.NoError(t, err)
		assert.Len(t, plans, 1)
	})

	t.Run("logs newest first with limit", func(t *testing.T) {
		for i := range 3 {
			_, err := c.CreateWorkoutLog(ctx, gateway.WorkoutLog{ExerciseID: 1, SetsCompleted: i + 1, WorkoutDate: "2026-10-19"})
			require.NoError(t, err)
		}
		logs, err := c.ListWorkoutLogs(ctx, 2)
		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Equal(t, 3, logs[0].SetsCompleted)
		assert.Equal(t, "2", srv.LastRequest().URL.Query().Get("limit"))
	})

	t.Run("null data on list is empty", func(t *testing.T) {
		srv.FailNext(http.StatusOK, `{"success":true,"data":null}`)
		logs, err := c.ListWorkoutLogs(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, logs)
	})
}
