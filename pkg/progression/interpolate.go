package progression

import (
	"iter"
	"math/bits"
	"time"
)

// Steps returns how many ticks fit in duration, at least 1.
func Steps(duration, tick time.Duration) int {
	if tick <= 0 || duration < tick {
		return 1
	}
	return int(duration / tick)
}

// Interpolate yields the displayed values of a counter ramping linearly from
// 0 to target: one value per tick, Steps(duration, tick) values in total,
// never above target and ending exactly at target. Negative targets are
// treated as 0.
//
// The sequence is lazy and can be ranged over any number of times.
func Interpolate(target int, duration, tick time.Duration) iter.Seq[int] {
	target = max(target, 0)
	steps := Steps(duration, tick)
	return func(yield func(int) bool) {
		for i := 1; i <= steps; i++ {
			v := target
			if i < steps {
				v = scale(target, i, steps)
			}
			if !yield(v) {
				return
			}
		}
	}
}

// scale returns target*i/steps for 0 <= i < steps with a 128-bit intermediate
// product. The quotient is below target, so it always fits.
func scale(target, i, steps int) int {
	hi, lo := bits.Mul64(uint64(target), uint64(i))
	q, _ := bits.Div64(hi, lo, uint64(steps))
	return int(q)
}
