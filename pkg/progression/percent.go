package progression

import "math"

// PercentComplete returns current/total as a percentage in [0, 100].
// A non-positive total, or a NaN input, yields 0.
func PercentComplete(current, total float64) float64 {
	if total <= 0 || math.IsNaN(total) || math.IsNaN(current) {
		return 0
	}
	return clamp(current/total*100, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
