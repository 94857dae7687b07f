package progression

import "errors"

var (
	ErrUnknownRank       = errors.New("progression: unknown rank")
	ErrUnknownStatus     = errors.New("progression: unknown status")
	ErrUnknownDifficulty = errors.New("progression: unknown difficulty")
	ErrInvalidCatalog    = errors.New("progression: invalid catalog")
)
