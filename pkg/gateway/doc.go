// Package gateway is the HTTP client for the fitness API.
//
// Each method performs exactly one request and never retries. Responses use
// the API envelope
//
//	{"success": true, "message": "...", "data": ...}
//
// and are unwrapped into typed results. The client holds no session state:
// the bearer token for authenticated endpoints is pulled from a TokenSource on
// every call, which lets the state engine own the token.
//
// # Errors
//
// Every failure is returned as *Error:
//
//   - transport failures (no response) have StatusCode 0 and wrap ErrNetwork;
//   - non-2xx responses, or 2xx responses with "success": false, carry the
//     status code and the server's message;
//   - undecodable bodies wrap ErrInvalidResponse.
//
// Error.Message is always safe to show to a user: it prefers the server's
// "message", then its "error" field, and falls back to a generic text for the
// operation ("Login failed. Please try again."). IsUnauthorized reports 401
// responses so callers can drop an expired session.
//
// # Usage
//
//	client, err := gateway.New("https://api.example.com/api",
//	    gateway.WithTimeout(5*time.Second),
//	    gateway.WithTokenSource(func(ctx context.Context) string { return token }),
//	)
//	res, err := client.Login(ctx, account.LoginCredentials{Email: e, Password: p})
//	if err != nil {
//	    fmt.Println(gateway.Message(err))
//	}
//
// Every request carries an X-Request-ID header. An id placed in the context
// with requestid.WithContext is reused, otherwise a UUID is generated; the same
// id is attached to the returned *Error. Debug log records carry it when the
// logger was built with requestid.LoggerExtractor.
package gateway
