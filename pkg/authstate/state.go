package authstate

import "github.com/dmitrymomot/questkit/pkg/account"

// Phase is the coarse session phase.
type Phase int

const (
	Unauthenticated Phase = iota
	Authenticating
	Authenticated
)

func (p Phase) String() string {
	switch p {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	}
	return "unknown"
}

// State is an immutable snapshot of the session.
type State struct {
	User            *account.User
	Token           string
	IsAuthenticated bool
	IsLoading       bool
	Error           string
	Phase           Phase
	// Version increases with every published change.
	Version uint64
}
