// Package authstate owns the client-side authentication session.
//
// An Engine is the single source of truth for the current user, token,
// loading flag and last error. It calls the API through a Gateway and
// persists the session through a SessionStore, always writing storage before
// publishing the new in-memory state.
//
// # Phases
//
//	Unauthenticated --Login/Register--> Authenticating --ok--> Authenticated
//	       ^                                  |                     |
//	       +-------------- failure -----------+                     |
//	       +------------- Logout / 401 / DeleteAccount -------------+
//
// Authenticating is reported while any Login or Register is in flight, from
// either side of the session.
//
// # Ordering
//
// Mutations are serialized. Every Login and Register gets a sequence number;
// when a call settles after a newer one has already settled, or after Logout,
// its result is dropped and the caller gets ErrSuperseded (or its own error).
// Profile calls are bound to the session they started in and are dropped in
// the same way if the session changed meanwhile.
//
// # Errors
//
// Failures are reported twice: the user-facing message is kept in
// State.Error for rendering and the error is returned for control flow. A
// 401 from any call made with a token ends the session (ErrSessionExpired).
//
// Basic usage:
//
//	engine := authstate.New(client, store, authstate.WithLogger(log))
//	engine.CheckAuth(ctx)
//	if err := engine.Login(ctx, creds); err != nil {
//	    fmt.Println(engine.State().Error)
//	}
package authstate
