// Package logger builds the *slog.Logger instances used across questkit.
//
// New assembles a text or JSON handler from functional options, wraps it with
// a decorator that pulls request scoped values (request id, operation) out of
// context.Context, and returns the resulting logger. Attribute helpers in
// attr.go keep key names consistent between the gateway, the session store and
// the state engine, so log lines from one login attempt can be joined on
// request_id or seq.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment("development", "questctl"),
//	    logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.InfoContext(ctx, "login settled",
//	    logger.Operation("login"),
//	    logger.Sequence(seq),
//	    logger.Duration(time.Since(start)),
//	)
//
// Components that accept a logger default to Discard() so that library code
// stays silent unless the application opts in.
//
// # Configuration
//
// Config carries LOG_FORMAT, LOG_LEVEL and APP_ENV tags and can be turned into
// options with NewFromConfig.
package logger
