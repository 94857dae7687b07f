package account

import (
	"strconv"
	"strings"
)

// ParseProfileForm builds a ProfileUpdate from raw form values keyed by the
// JSON field names. Unknown keys are ignored and empty values are skipped.
//
// Numeric fields (age, height, weight) that do not parse, or parse to a
// negative number, are set to 0 and reported; enum fields with unknown values
// are dropped and reported. The returned update is always usable.
func ParseProfileForm(values map[string]string) (ProfileUpdate, []ValidationError) {
	var (
		p    ProfileUpdate
		errs []ValidationError
	)

	if v, ok := nonEmpty(values, "name"); ok {
		p.Name = Ptr(v)
	}

	if v, ok := nonEmpty(values, "age"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			errs = append(errs, ValidationError{Field: "age", Value: v, Msg: "not a non-negative integer, using 0"})
			n = 0
		}
		p.Age = Ptr(n)
	}

	for _, field := range []string{"height", "weight"} {
		v, ok := nonEmpty(values, field)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			errs = append(errs, ValidationError{Field: field, Value: v, Msg: "not a non-negative number, using 0"})
			f = 0
		}
		if field == "height" {
			p.Height = Ptr(f)
		} else {
			p.Weight = Ptr(f)
		}
	}

	if v, ok := nonEmpty(values, "gender"); ok {
		if g := Gender(v); g.Valid() {
			p.Gender = &g
		} else {
			errs = append(errs, ValidationError{Field: "gender", Value: v, Msg: "unknown value, ignored"})
		}
	}

	if v, ok := nonEmpty(values, "fitness_goal"); ok {
		if g := FitnessGoal(v); g.Valid() {
			p.FitnessGoal = &g
		} else {
			errs = append(errs, ValidationError{Field: "fitness_goal", Value: v, Msg: "unknown value, ignored"})
		}
	}

	if v, ok := nonEmpty(values, "activity_level"); ok {
		if a := ActivityLevel(v); a.Valid() {
			p.ActivityLevel = &a
		} else {
			errs = append(errs, ValidationError{Field: "activity_level", Value: v, Msg: "unknown value, ignored"})
		}
	}

	return p, errs
}

func nonEmpty(values map[string]string, key string) (string, bool) {
	v := strings.TrimSpace(values[key])
	return v, v != ""
}
