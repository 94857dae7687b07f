package progression_test

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/questkit/pkg/progression"
)

func TestInterpolate(t *testing.T) {
	t.Parallel()

	t.Run("ten steps to one hundred", func(t *testing.T) {
		t.Parallel()
		got := slices.Collect(progression.Interpolate(100, time.Second, 100*time.Millisecond))
		assert.Equal(t, []int{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}, got)
	})

	t.Run("strictly increasing and never above target", func(t *testing.T) {
		t.Parallel()
		got := slices.Collect(progression.Interpolate(1234, time.Second, time.Second/60))
		assert.Len(t, got, 60)
		assert.Equal(t, 1234, got[len(got)-1])
		for i, v := range got {
			assert.LessOrEqual(t, v, 1234)
			if i > 0 {
				assert.Greater(t, v, got[i-1])
			}
		}
	})

	t.Run("uneven division ends exactly at target", func(t *testing.T) {
		t.Parallel()
		got := slices.Collect(progression.Interpolate(10, 300*time.Millisecond, 100*time.Millisecond))
		assert.Equal(t, []int{3, 6, 10}, got)
	})

	t.Run("restartable", func(t *testing.T) {
		t.Parallel()
		seq := progression.Interpolate(50, time.Second, 250*time.Millisecond)
		assert.Equal(t, slices.Collect(seq), slices.Collect(seq))
	})

	t.Run("early stop", func(t *testing.T) {
		t.Parallel()
		var got []int
		for v := range progression.Interpolate(100, time.Second, 100*time.Millisecond) {
			got = append(got, v)
			if len(got) == 3 {
				break
			}
		}
		assert.Equal(t, []int{10, 20, 30}, got)
	})

	t.Run("degenerate timing yields the target once", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []int{7}, slices.Collect(progression.Interpolate(7, 0, 0)))
		assert.Equal(t, []int{7}, slices.Collect(progression.Interpolate(7, 10*time.Millisecond, time.Second)))
	})

	t.Run("large targets stay within bounds", func(t *testing.T) {
		t.Parallel()
		cases := []struct {
			target         int
			duration, tick time.Duration
		}{
			{1 << 50, time.Second, time.Microsecond},
			{math.MaxInt, time.Second, time.Millisecond},
		}
		for _, tc := range cases {
			prev, n := 0, 0
			for v := range progression.Interpolate(tc.target, tc.duration, tc.tick) {
				n++
				require.GreaterOrEqual(t, v, prev, "target %d step %d", tc.target, n)
				require.LessOrEqual(t, v, tc.target, "target %d step %d", tc.target, n)
				prev = v
			}
			assert.Equal(t, progression.Steps(tc.duration, tc.tick), n)
			assert.Equal(t, tc.target, prev)
		}
	})

	t.Run("negative target clamps to zero", func(t *testing.T) {
		t.Parallel()
		got := slices.Collect(progression.Interpolate(-5, time.Second, 500*time.Millisecond))
		assert.Equal(t, []int{0, 0}, got)
	})
}

func TestStatBar_Frames(t *testing.T) {
	t.Parallel()
	bar := progression.StatBar{Current: 60, Max: 100}
	got := slices.Collect(bar.Frames(time.Second, 200*time.Millisecond))
	assert.Equal(t, []int{12, 24, 36, 48, 60}, got)
}
