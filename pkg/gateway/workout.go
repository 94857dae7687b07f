package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Exercise is a catalog exercise.
type Exercise struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	MuscleGroup  string `json:"muscle_group"`
	Difficulty   string `json:"difficulty"`
	Sets         int    `json:"sets"`
	Reps         int    `json:"reps"`
	Duration     int    `json:"duration"`
	RestTime     int    `json:"rest_time"`
	CaloriesBurn int    `json:"calories_burn"`
}

// WorkoutPlan is a user's weekly plan.
type WorkoutPlan struct {
	ID          int64      `json:"id,omitempty"`
	UserID      int64      `json:"user_id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	DaysPerWeek int        `json:"days_per_week"`
	Duration    int        `json:"duration"`
	Exercises   []Exercise `json:"exercises,omitempty"`
	CreatedAt   time.Time  `json:"created_at,omitzero"`
	UpdatedAt   time.Time  `json:"updated_at,omitzero"`
}

// WorkoutLog records a completed exercise session.
type WorkoutLog struct {
	ID             int64     `json:"id,omitempty"`
	UserID         int64     `json:"user_id,omitempty"`
	ExerciseID     int64     `json:"exercise_id"`
	WorkoutDate    string    `json:"workout_date"`
	SetsCompleted  int       `json:"sets_completed"`
	RepsCompleted  int       `json:"reps_completed"`
	Duration       int       `json:"duration"`
	CaloriesBurned int       `json:"calories_burned"`
	Notes          string    `json:"notes"`
	Exercise       *Exercise `json:"exercise,omitempty"`
	CreatedAt      time.Time `json:"created_at,omitzero"`
	UpdatedAt      time.Time `json:"updated_at,omitzero"`
}

// ExerciseFilter narrows ListExercises. Empty fields are not sent.
type ExerciseFilter struct {
	Category    string
	MuscleGroup string
}

func (f ExerciseFilter) values() url.Values {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.MuscleGroup != "" {
		q.Set("muscle_group", f.MuscleGroup)
	}
	return q
}

// ListExercises returns catalog exercises matching f.
func (c *Client) ListExercises(ctx context.Context, f ExerciseFilter) ([]Exercise, error) {
	var out []Exercise
	err := c.do(ctx, request{op: OpListExercises, method: http.MethodGet, path: "/exercises", query: f.values(), auth: true, nullable: true}, &out)
	return out, err
}

// GetExercise returns a single exercise.
func (c *Client) GetExercise(ctx context.Context, id int64) (Exercise, error) {
	var out Exercise
	path := "/exercises/" + strconv.FormatInt(id, 10)
	err := c.do(ctx, request{op: OpGetExercise, method: http.MethodGet, path: path, auth: true}, &out)
	return out, err
}

// ListWorkoutPlans returns the current user's plans.
func (c *Client) ListWorkoutPlans(ctx context.Context) ([]WorkoutPlan, error) {
	var out []WorkoutPlan
	err := c.do(ctx, request{op: OpListPlans, method: http.MethodGet, path: "/workout-plans", auth: true, nullable: true}, &out)
	return out, err
}

// CreateWorkoutPlan stores a new plan and returns it as saved.
func (c *Client) CreateWorkoutPlan(ctx context.Context, plan WorkoutPlan) (WorkoutPlan, error) {
	var out WorkoutPlan
	err := c.do(ctx, request{op: OpCreatePlan, method: http.MethodPost, path: "/workout-plans", body: plan, auth: true}, &out)
	return out, err
}

// ListWorkoutLogs returns recent logs. A non-positive limit lets the server decide.
func (c *Client) ListWorkoutLogs(ctx context.Context, limit int) ([]WorkoutLog, error) {
	var q url.Values
	if limit > 0 {
		q = url.Values{"limit": []string{strconv.Itoa(limit)}}
	}
	var out []WorkoutLog
	err := c.do(ctx, request{op: OpListLogs, method: http.MethodGet, path: "/workout-logs", query: q, auth: true, nullable: true}, &out)
	return out, err
}

// CreateWorkoutLog records a session and returns it as saved.
func (c *Client) CreateWorkoutLog(ctx context.Context, log WorkoutLog) (WorkoutLog, error) {
	var out WorkoutLog
	err := c.do(ctx, request{op: OpCreateLog, method: http.MethodPost, path: "/workout-logs", body: log, auth: true}, &out)
	return out, err
}
