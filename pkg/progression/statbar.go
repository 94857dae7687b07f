package progression

import (
	"fmt"
	"iter"
	"time"
)

// StatKind selects the bar styling.
type StatKind string

const (
	StatHP      StatKind = "hp"
	StatStamina StatKind = "stamina"
	StatMana    StatKind = "mana"
	StatXP      StatKind = "xp"
)

// StatBar is a labelled current/max gauge.
type StatBar struct {
	Label   string
	Kind    StatKind
	Current int
	Max     int
}

// Percent returns the fill in [0, 100]; 0 when Max is not positive.
func (b StatBar) Percent() float64 {
	return PercentComplete(float64(b.Current), float64(b.Max))
}

// Values is the "current / max" caption.
func (b StatBar) Values() string {
	return fmt.Sprintf("%d / %d", b.Current, b.Max)
}

// Frames returns the animated values shown while the bar fills.
func (b StatBar) Frames(duration, tick time.Duration) iter.Seq[int] {
	return Interpolate(b.Current, duration, tick)
}
