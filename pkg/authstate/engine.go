package authstate

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/questkit/pkg/account"
	"github.com/dmitrymomot/questkit/pkg/gateway"
	"github.com/dmitrymomot/questkit/pkg/logger"
)

// Engine holds the current session. Safe for concurrent use.
type Engine struct {
	gw     Gateway
	store  SessionStore
	logger *slog.Logger

	mu           sync.Mutex
	token        string
	user         *account.User
	errMsg       string
	errOp        string
	inflight     int
	authInflight int
	issued       uint64 // last Login/Register sequence handed out
	settled      uint64 // results at or below this sequence are stale
	epoch        uint64 // bumped whenever the session identity changes
	version      uint64
	phase        Phase

	subMu     sync.RWMutex
	subs      map[uint64]func(State)
	nextSubID uint64

	profile singleflight.Group
}

// New creates an Engine. It starts unauthenticated; call CheckAuth to load a
// persisted session.
// Panics if gw or store is nil.
func New(gw Gateway, store SessionStore, opts ...Option) *Engine {
	if gw == nil {
		panic(ErrNoGateway)
	}
	if store == nil {
		panic(ErrNoStore)
	}
	e := &Engine{
		gw:     gw,
		store:  store,
		logger: logger.Discard(),
		subs:   make(map[uint64]func(State)),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(logger.Component("authstate"))
	return e
}

// State returns the current session snapshot.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phaseLocked()
}

// Token returns the current bearer token, empty when signed out.
// Suitable as a gateway.TokenSource.
func (e *Engine) Token(context.Context) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.token
}

// Subscribe registers fn to receive every published state. Notifications
// from concurrent operations may arrive out of order; compare State.Version.
// fn runs on the goroutine that made the change and must not block.
func (e *Engine) Subscribe(fn func(State)) (unsubscribe func()) {
	e.subMu.Lock()
	id := e.nextSubID
	e.nextSubID++
	e.subs[id] = fn
	e.subMu.Unlock()

	return sync.OnceFunc(func() {
		e.subMu.Lock()
		delete(e.subs, id)
		e.subMu.Unlock()
	})
}

// Login signs in with creds. On success the session is persisted and then
// published; on failure State.Error holds the message, the previous session is
// kept and the error is returned.
func (e *Engine) Login(ctx context.Context, creds account.LoginCredentials) error {
	seq := e.beginAuth(ctx, gateway.OpLogin)
	res, err := e.gw.Login(ctx, creds)
	return e.settleAuth(ctx, gateway.OpLogin, seq, res, err)
}

// Register creates an account and signs in. Same semantics as Login.
func (e *Engine) Register(ctx context.Context, creds account.RegisterCredentials) error {
	seq := e.beginAuth(ctx, gateway.OpRegister)
	res, err := e.gw.Register(ctx, creds)
	return e.settleAuth(ctx, gateway.OpRegister, seq, res, err)
}

// Logout clears the stored session and resets to the unauthenticated
// default. In-flight calls are invalidated. Never touches the network.
func (e *Engine) Logout(ctx context.Context) {
	_ = e.mutate(func() error {
		e.endSessionLocked(ctx)
		e.logger.InfoContext(ctx, "logged out")
		return nil
	})
}

// CheckAuth loads the persisted session into memory and reports whether it
// is authenticated. A half-written store (token without user, user without
// token, or an unreadable user record) counts as signed out and is cleared.
func (e *Engine) CheckAuth(ctx context.Context) bool {
	var ok bool
	_ = e.mutate(func() error {
		snap := e.store.Load(ctx)
		if snap.Complete() {
			if snap.Token != e.token {
				e.epoch++
			}
			e.token = snap.Token
			e.user = snap.User
			ok = true
			return nil
		}

		if snap.Token != "" || snap.User != nil {
			e.logger.WarnContext(ctx, "discarding incomplete stored session",
				slog.Bool("has_token", snap.Token != ""),
				slog.Bool("has_user", snap.User != nil),
			)
			if err := e.store.Clear(ctx); err != nil {
				e.logger.ErrorContext(ctx, "failed to clear incomplete session", logger.Error(err))
			}
		}
		if e.token != "" {
			e.epoch++
		}
		e.token = ""
		e.user = nil
		return nil
	})
	return ok
}

// Refresh is an alias for CheckAuth.
func (e *Engine) Refresh(ctx context.Context) bool {
	return e.CheckAuth(ctx)
}

// UpdateUser replaces the current user record, writing storage first.
// The token and the last error are left alone.
func (e *Engine) UpdateUser(ctx context.Context, u account.User) error {
	return e.mutate(func() error {
		if e.token == "" {
			return ErrNotAuthenticated
		}
		next := u.Clone()
		if err := e.store.SaveUser(ctx, next); err != nil {
			e.logger.ErrorContext(ctx, "failed to persist user", logger.UserID(u.ID), logger.Error(err))
			return errors.Join(ErrPersistSession, err)
		}
		e.user = next
		return nil
	})
}

// ClearError drops the last error message.
func (e *Engine) ClearError() {
	_ = e.mutate(func() error {
		e.errMsg = ""
		e.errOp = ""
		return nil
	})
}

// RefreshProfile fetches the full profile and writes it through.
// Concurrent calls within one session share a single request. The shared
// request ignores caller cancellation and is bounded by the gateway timeout;
// a caller whose ctx ends stops waiting without affecting the others.
func (e *Engine) RefreshProfile(ctx context.Context) (account.User, error) {
	epoch, err := e.beginSession(ctx, gateway.OpGetProfile)
	if err != nil {
		return account.User{}, err
	}

	key := "profile:" + strconv.FormatUint(epoch, 10)
	detached := context.WithoutCancel(ctx)
	ch := e.profile.DoChan(key, func() (any, error) {
		return e.gw.GetProfile(detached)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		e.abandonSession(ctx, gateway.OpGetProfile)
		return account.User{}, ctx.Err()
	case res = <-ch:
	}

	u, _ := res.Val.(account.User)
	err = e.settleSession(ctx, gateway.OpGetProfile, epoch, res.Err, func(ctx context.Context) error {
		return e.applyUserLocked(ctx, u)
	})
	if err != nil {
		return account.User{}, err
	}
	return u, nil
}

// SaveProfile sends a partial profile update and writes the returned record
// through.
func (e *Engine) SaveProfile(ctx context.Context, upd account.ProfileUpdate) (account.User, error) {
	epoch, err := e.beginSession(ctx, gateway.OpUpdateProfile)
	if err != nil {
		return account.User{}, err
	}
	u, err := e.gw.UpdateProfile(ctx, upd)
	err = e.settleSession(ctx, gateway.OpUpdateProfile, epoch, err, func(ctx context.Context) error {
		return e.applyUserLocked(ctx, u)
	})
	if err != nil {
		return account.User{}, err
	}
	return u, nil
}

// DeleteAccount removes the account on the server and then logs out.
func (e *Engine) DeleteAccount(ctx context.Context) error {
	epoch, err := e.beginSession(ctx, gateway.OpDeleteAccount)
	if err != nil {
		return err
	}
	err = e.gw.DeleteAccount(ctx)
	return e.settleSession(ctx, gateway.OpDeleteAccount, epoch, err, func(ctx context.Context) error {
		e.endSessionLocked(ctx)
		e.logger.InfoContext(ctx, "account deleted")
		return nil
	})
}

func (e *Engine) beginAuth(ctx context.Context, op string) uint64 {
	var seq uint64
	_ = e.mutate(func() error {
		e.issued++
		seq = e.issued
		e.inflight++
		e.authInflight++
		e.errMsg = ""
		e.errOp = ""
		return nil
	})
	e.logger.DebugContext(ctx, "auth call started", logger.Operation(op), logger.Sequence(seq))
	return seq
}

func (e *Engine) settleAuth(ctx context.Context, op string, seq uint64, res gateway.AuthResult, callErr error) error {
	return e.mutate(func() error {
		e.inflight--
		e.authInflight--

		if seq <= e.settled {
			e.logger.DebugContext(ctx, "discarding stale auth result",
				logger.Operation(op),
				logger.Sequence(seq),
				slog.Uint64("settled", e.settled),
			)
			if callErr != nil {
				return callErr
			}
			return ErrSuperseded
		}
		e.settled = seq

		if callErr != nil {
			e.setErrorLocked(op, gateway.Message(callErr))
			e.logger.WarnContext(ctx, "auth call failed",
				logger.Operation(op),
				logger.Sequence(seq),
				logger.Error(callErr),
			)
			return callErr
		}

		// The server already issued the token; finish persisting even if the
		// caller gave up.
		user := res.User
		if err := e.store.Save(context.WithoutCancel(ctx), res.Token, &user); err != nil {
			e.setErrorLocked(op, MessagePersistFailed)
			e.logger.ErrorContext(ctx, "failed to persist session",
				logger.Operation(op),
				logger.UserID(user.ID),
				logger.Error(err),
			)
			return errors.Join(ErrPersistSession, err)
		}

		e.token = res.Token
		e.user = &user
		e.epoch++
		e.logger.InfoContext(ctx, "signed in", logger.Operation(op), logger.UserID(user.ID))
		return nil
	})
}

// beginSession marks a token-bound call as in flight and returns the epoch it
// belongs to.
func (e *Engine) beginSession(ctx context.Context, op string) (uint64, error) {
	var epoch uint64
	err := e.mutate(func() error {
		if e.token == "" {
			return ErrNotAuthenticated
		}
		e.inflight++
		epoch = e.epoch
		return nil
	})
	if err != nil {
		return 0, err
	}
	e.logger.DebugContext(ctx, "session call started", logger.Operation(op))
	return epoch, nil
}

// abandonSession releases a token-bound call whose caller stopped waiting.
func (e *Engine) abandonSession(ctx context.Context, op string) {
	_ = e.mutate(func() error {
		e.inflight--
		return nil
	})
	e.logger.DebugContext(ctx, "session call abandoned", logger.Operation(op))
}

// settleSession finishes a token-bound call. apply runs under the lock only
// when the call succeeded and the session is unchanged.
func (e *Engine) settleSession(ctx context.Context, op string, epoch uint64, callErr error, apply func(context.Context) error) error {
	return e.mutate(func() error {
		e.inflight--

		if epoch != e.epoch {
			e.logger.DebugContext(ctx, "discarding result from previous session", logger.Operation(op))
			if callErr != nil {
				return callErr
			}
			return ErrSuperseded
		}

		if callErr != nil {
			if gateway.IsUnauthorized(callErr) {
				e.logger.WarnContext(ctx, "session rejected by server, logging out",
					logger.Operation(op),
					logger.Error(callErr),
				)
				e.endSessionLocked(ctx)
				e.setErrorLocked(op, MessageSessionExpired)
				return errors.Join(ErrSessionExpired, callErr)
			}
			e.setErrorLocked(op, gateway.Message(callErr))
			e.logger.WarnContext(ctx, "session call failed", logger.Operation(op), logger.Error(callErr))
			return callErr
		}

		if err := apply(context.WithoutCancel(ctx)); err != nil {
			e.setErrorLocked(op, MessagePersistFailed)
			return err
		}
		if e.errOp == op {
			e.errMsg = ""
			e.errOp = ""
		}
		return nil
	})
}

func (e *Engine) applyUserLocked(ctx context.Context, u account.User) error {
	next := u.Clone()
	if err := e.store.SaveUser(ctx, next); err != nil {
		e.logger.ErrorContext(ctx, "failed to persist user", logger.UserID(u.ID), logger.Error(err))
		return errors.Join(ErrPersistSession, err)
	}
	e.user = next
	return nil
}

// endSessionLocked clears storage and memory and invalidates every call in
// flight.
func (e *Engine) endSessionLocked(ctx context.Context) {
	e.settled = e.issued
	e.epoch++
	if err := e.store.Clear(ctx); err != nil {
		e.logger.ErrorContext(ctx, "failed to clear stored session", logger.Error(err))
	}
	e.token = ""
	e.user = nil
	e.errMsg = ""
	e.errOp = ""
}

func (e *Engine) setErrorLocked(op, msg string) {
	e.errMsg = msg
	e.errOp = op
}

// mutate runs fn under the lock, then publishes the resulting state.
func (e *Engine) mutate(fn func() error) error {
	e.mu.Lock()
	err := fn()
	e.version++
	if p := e.phaseLocked(); p != e.phase {
		e.logger.Debug("phase changed", slog.String("from", e.phase.String()), logger.Phase(p.String()))
		e.phase = p
	}
	st := e.snapshotLocked()
	e.mu.Unlock()

	e.notify(st)
	return err
}

func (e *Engine) notify(st State) {
	e.subMu.RLock()
	fns := make([]func(State), 0, len(e.subs))
	for _, fn := range e.subs {
		fns = append(fns, fn)
	}
	e.subMu.RUnlock()

	for _, fn := range fns {
		fn(st)
	}
}

func (e *Engine) phaseLocked() Phase {
	switch {
	case e.authInflight > 0:
		return Authenticating
	case e.token != "":
		return Authenticated
	default:
		return Unauthenticated
	}
}

func (e *Engine) snapshotLocked() State {
	return State{
		User:            e.user.Clone(),
		Token:           e.token,
		IsAuthenticated: e.token != "",
		IsLoading:       e.inflight > 0,
		Error:           e.errMsg,
		Phase:           e.phaseLocked(),
		Version:         e.version,
	}
}
