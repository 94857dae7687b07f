package progression

import (
	"fmt"
	"strings"
)

// Rank is a hunter rank. Ranks are ordered: RankE < RankD < ... < RankS.
type Rank int

const (
	RankE Rank = iota
	RankD
	RankC
	RankB
	RankA
	RankS
)

var rankNames = [...]string{"E", "D", "C", "B", "A", "S"}

// Level thresholds: a level at or above rankThresholds[i] reaches rank i+1.
var rankThresholds = [...]int{10, 25, 50, 75, 100}

// Ranks lists every rank in ascending order.
func Ranks() []Rank {
	return []Rank{RankE, RankD, RankC, RankB, RankA, RankS}
}

// RankFromLevel maps a level to its rank. Negative levels count as 0.
func RankFromLevel(level int) Rank {
	r := RankE
	for _, t := range rankThresholds {
		if level < t {
			break
		}
		r++
	}
	return r
}

// MinLevel returns the lowest level that maps to r.
func (r Rank) MinLevel() int {
	if r <= RankE || !r.Valid() {
		return 0
	}
	return rankThresholds[r-1]
}

// Valid reports whether r is a defined rank.
func (r Rank) Valid() bool {
	return r >= RankE && r <= RankS
}

func (r Rank) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Rank(%d)", int(r))
	}
	return rankNames[r]
}

// Label returns the badge text, e.g. "S-Rank".
func (r Rank) Label() string {
	return r.String() + "-Rank"
}

// ParseRank parses "S", "s" or "S-Rank".
func ParseRank(s string) (Rank, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	v = strings.TrimSuffix(v, "-RANK")
	for i, name := range rankNames {
		if v == name {
			return Rank(i), nil
		}
	}
	return RankE, fmt.Errorf("%w: %q", ErrUnknownRank, s)
}

// MarshalText encodes the rank letter.
func (r Rank) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRank, int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText accepts anything ParseRank does.
func (r *Rank) UnmarshalText(b []byte) error {
	v, err := ParseRank(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
