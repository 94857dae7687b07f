package account

import "fmt"

// ValidationError describes a form field that could not be parsed and was
// coerced to a default value.
type ValidationError struct {
	Field string
	Value string
	Msg   string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("account: field %q: %s (got %q)", e.Field, e.Msg, e.Value)
}
