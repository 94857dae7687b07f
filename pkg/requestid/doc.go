// Package requestid carries request correlation ids through a context.Context.
//
// The gateway client stamps every outgoing call with an X-Request-ID header.
// When the caller already placed an id in the context (for example a CLI
// invocation that spans several calls) that id is reused, otherwise a fresh
// UUID is generated. The same id ends up on *gateway.Error values and, via
// LoggerExtractor, on every log record written with that context.
//
// Middleware is the server-side counterpart used by test servers: it accepts a
// valid incoming header, echoes it back and stores it in the request context.
//
//	ctx := requestid.WithContext(ctx, "cli-login-1")
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	log.InfoContext(ctx, "logging in") // request_id=cli-login-1
package requestid
