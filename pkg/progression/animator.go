package progression

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/questkit/pkg/logger"
)

// Default animation timing: 60 frames over one second.
const (
	DefaultAnimationDuration = time.Second
	DefaultAnimationTick     = time.Second / 60
)

// AnimatorOption configures an Animator.
type AnimatorOption func(*Animator)

// WithTiming sets the ramp duration and tick interval.
func WithTiming(duration, tick time.Duration) AnimatorOption {
	return func(a *Animator) {
		if duration > 0 {
			a.duration = duration
		}
		if tick > 0 {
			a.tick = tick
		}
	}
}

// WithAnimatorLogger sets the logger.
func WithAnimatorLogger(l *slog.Logger) AnimatorOption {
	return func(a *Animator) {
		if l != nil {
			a.logger = l
		}
	}
}

type animation struct {
	mu       sync.Mutex
	canceled bool
	cancel   context.CancelFunc
	done     chan struct{}
}

// stop cancels the animation. Once stop returns the callback is not invoked
// again.
func (an *animation) stop() {
	an.cancel()
	an.mu.Lock()
	an.canceled = true
	an.mu.Unlock()
}

// Animator runs Interpolate ramps on a ticker, at most one per key.
// Starting a key that is already running cancels the previous ramp first.
type Animator struct {
	duration time.Duration
	tick     time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	running map[string]*animation
	closed  bool
	wg      sync.WaitGroup
}

// NewAnimator creates an Animator with the default timing.
func NewAnimator(opts ...AnimatorOption) *Animator {
	a := &Animator{
		duration: DefaultAnimationDuration,
		tick:     DefaultAnimationTick,
		logger:   logger.Discard(),
		running:  make(map[string]*animation),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With(logger.Component("progression.animator"))
	return a
}

// Start ramps key from 0 to target, calling fn with each value. fn runs on
// the animator's goroutine and must not call Start or Stop for the same key.
// The returned channel is closed when the ramp finishes or is canceled.
func (a *Animator) Start(ctx context.Context, key string, target int, fn func(int)) <-chan struct{} {
	ctx, cancel := context.WithCancel(ctx)
	an := &animation{cancel: cancel, done: make(chan struct{})}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		cancel()
		close(an.done)
		return an.done
	}
	prev := a.running[key]
	a.running[key] = an
	a.wg.Add(1)
	a.mu.Unlock()

	if prev != nil {
		prev.stop()
		a.logger.Debug("animation replaced", logger.Key(key))
	}

	go a.run(ctx, key, an, target, fn)
	return an.done
}

func (a *Animator) run(ctx context.Context, key string, an *animation, target int, fn func(int)) {
	defer a.wg.Done()
	defer close(an.done)
	defer func() {
		a.mu.Lock()
		if a.running[key] == an {
			delete(a.running, key)
		}
		a.mu.Unlock()
		an.cancel()
	}()

	ticker := time.NewTicker(a.tick)
	defer ticker.Stop()

	for v := range Interpolate(target, a.duration, a.tick) {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		an.mu.Lock()
		if an.canceled {
			an.mu.Unlock()
			return
		}
		fn(v)
		an.mu.Unlock()
	}
}

// Stop cancels the ramp for key, if any.
func (a *Animator) Stop(key string) {
	a.mu.Lock()
	an := a.running[key]
	delete(a.running, key)
	a.mu.Unlock()

	if an != nil {
		an.stop()
	}
}

// Running reports whether key has an active ramp.
func (a *Animator) Running(key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.running[key]
	return ok
}

// Close cancels every ramp and waits for their goroutines to exit.
// Later Start calls return an already closed channel.
func (a *Animator) Close() {
	a.mu.Lock()
	a.closed = true
	all := make([]*animation, 0, len(a.running))
	for key, an := range a.running {
		all = append(all, an)
		delete(a.running, key)
	}
	a.mu.Unlock()

	for _, an := range all {
		an.stop()
	}
	a.wg.Wait()
}
