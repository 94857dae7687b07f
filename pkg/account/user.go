package account

import "time"

// Gender values accepted by the API.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// FitnessGoal values accepted by the API.
type FitnessGoal string

const (
	GoalLoseWeight       FitnessGoal = "lose_weight"
	GoalGainMuscle       FitnessGoal = "gain_muscle"
	GoalMaintain         FitnessGoal = "maintain"
	GoalImproveEndurance FitnessGoal = "improve_endurance"
)

// ActivityLevel values accepted by the API.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// Valid reports whether g is a known gender.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Valid reports whether f is a known fitness goal.
func (f FitnessGoal) Valid() bool {
	switch f {
	case GoalLoseWeight, GoalGainMuscle, GoalMaintain, GoalImproveEndurance:
		return true
	}
	return false
}

// Valid reports whether a is a known activity level.
func (a ActivityLevel) Valid() bool {
	switch a {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive:
		return true
	}
	return false
}

// User is the account record returned by the API and persisted in the
// session store.
type User struct {
	ID            int64          `json:"id"`
	Email         string         `json:"email"`
	Name          string         `json:"name"`
	Age           *int           `json:"age,omitempty"`
	Gender        *Gender        `json:"gender,omitempty"`
	Height        *float64       `json:"height,omitempty"`
	Weight        *float64       `json:"weight,omitempty"`
	FitnessGoal   *FitnessGoal   `json:"fitness_goal,omitempty"`
	ActivityLevel *ActivityLevel `json:"activity_level,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Clone returns a deep copy of u. Nil in, nil out.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Age = clonePtr(u.Age)
	c.Gender = clonePtr(u.Gender)
	c.Height = clonePtr(u.Height)
	c.Weight = clonePtr(u.Weight)
	c.FitnessGoal = clonePtr(u.FitnessGoal)
	c.ActivityLevel = clonePtr(u.ActivityLevel)
	return &c
}

// LoginCredentials is the body of POST /auth/login.
type LoginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterCredentials is the body of POST /auth/register.
type RegisterCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// ProfileUpdate is the partial body of PUT /user/profile.
// Nil fields are left untouched by the server.
type ProfileUpdate struct {
	Name          *string        `json:"name,omitempty"`
	Age           *int           `json:"age,omitempty"`
	Gender        *Gender        `json:"gender,omitempty"`
	Height        *float64       `json:"height,omitempty"`
	Weight        *float64       `json:"weight,omitempty"`
	FitnessGoal   *FitnessGoal   `json:"fitness_goal,omitempty"`
	ActivityLevel *ActivityLevel `json:"activity_level,omitempty"`
}

// Empty reports whether the update carries no fields.
func (p ProfileUpdate) Empty() bool {
	return p.Name == nil && p.Age == nil && p.Gender == nil && p.Height == nil &&
		p.Weight == nil && p.FitnessGoal == nil && p.ActivityLevel == nil
}

// Apply returns a copy of u with the non-nil fields of p written over it.
// UpdatedAt is not touched; the server owns timestamps.
func (p ProfileUpdate) Apply(u User) User {
	out := *u.Clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Age != nil {
		out.Age = clonePtr(p.Age)
	}
	if p.Gender != nil {
		out.Gender = clonePtr(p.Gender)
	}
	if p.Height != nil {
		out.Height = clonePtr(p.Height)
	}
	if p.Weight != nil {
		out.Weight = clonePtr(p.Weight)
	}
	if p.FitnessGoal != nil {
		out.FitnessGoal = clonePtr(p.FitnessGoal)
	}
	if p.ActivityLevel != nil {
		out.ActivityLevel = clonePtr(p.ActivityLevel)
	}
	return out
}

// Ptr returns a pointer to v. Handy for building ProfileUpdate literals.
func Ptr[T any](v T) *T {
	return &v
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
