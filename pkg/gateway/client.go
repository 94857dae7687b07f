package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/questkit/pkg/logger"
	"github.com/dmitrymomot/questkit/pkg/requestid"
)

// Operation names used in *Error.Op and log records.
const (
	OpLogin         = "login"
	OpRegister      = "register"
	OpGetProfile    = "get_profile"
	OpUpdateProfile = "update_profile"
	OpDeleteAccount = "delete_account"
	OpListExercises = "list_exercises"
	OpGetExercise   = "get_exercise"
	OpListPlans     = "list_workout_plans"
	OpCreatePlan    = "create_workout_plan"
	OpListLogs      = "list_workout_logs"
	OpCreateLog     = "create_workout_log"
)

const defaultUserAgent = "questkit/1.0"

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

var fallbackMessages = map[string]string{
	OpLogin:         "Login failed. Please try again.",
	OpRegister:      "Registration failed. Please try again.",
	OpGetProfile:    "Failed to load profile. Please try again.",
	OpUpdateProfile: "Failed to update profile. Please try again.",
	OpDeleteAccount: "Failed to delete account. Please try again.",
}

func fallbackMessage(op string) string {
	if msg, ok := fallbackMessages[op]; ok {
		return msg
	}
	return "Request failed. Please try again."
}

// envelope is the API response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// Client talks to the fitness API. Safe for concurrent use.
type Client struct {
	base        *url.URL
	http        *http.Client
	timeout     time.Duration
	userAgent   string
	headers     http.Header
	tokenSource TokenSource
	logger      *slog.Logger
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Join(ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		base: u,
		http: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		timeout:   10 * time.Second,
		userAgent: defaultUserAgent,
		headers:   make(http.Header),
		logger:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(logger.Component("gateway"))
	return c, nil
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// request describes a single API call.
type request struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
	auth   bool
	// nullable accepts a missing or null data field, leaving out untouched.
	nullable bool
}

// do performs req and decodes the envelope's data into out (which may be nil).
func (c *Client) do(ctx context.Context, req request, out any) error {
	ctx, requestID := requestid.Ensure(ctx)
	fail := func(status int, msg string, cause error) *Error {
		if msg == "" {
			msg = fallbackMessage(req.op)
		}
		return &Error{Op: req.op, StatusCode: status, Message: msg, RequestID: requestID, Err: cause}
	}

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return fail(0, "", fmt.Errorf("failed to marshal request body: %w", err))
		}
		body = bytes.NewReader(payload)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.endpoint(req.path, req.query), body)
	if err != nil {
		return fail(0, "", fmt.Errorf("failed to create request: %w", err))
	}
	for k, vals := range c.headers {
		for _, v := range vals {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(requestid.Header, requestID)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.auth && c.tokenSource != nil {
		if token := c.tokenSource(ctx); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.DebugContext(ctx, "request failed",
			logger.Operation(req.op),
			logger.Duration(time.Since(start)),
			logger.Error(err),
		)
		return fail(0, "", fmt.Errorf("%w: %w", ErrNetwork, err))
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fail(resp.StatusCode, "", fmt.Errorf("%w: failed to read body: %w", ErrNetwork, err))
	}

	c.logger.DebugContext(ctx, "request completed",
		logger.Operation(req.op),
		logger.StatusCode(resp.StatusCode),
		logger.Duration(time.Since(start)),
	)

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := ""
		if decodeErr == nil {
			msg = firstNonEmpty(env.Message, env.Error)
		}
		return fail(resp.StatusCode, msg, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	if decodeErr != nil {
		return fail(resp.StatusCode, "", fmt.Errorf("%w: %w", ErrInvalidResponse, decodeErr))
	}
	if !env.Success {
		return fail(resp.StatusCode, firstNonEmpty(env.Message, env.Error), errors.New("request was not successful"))
	}

	if out == nil {
		return nil
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		if req.nullable {
			return nil
		}
		return fail(resp.StatusCode, "", fmt.Errorf("%w: missing data", ErrInvalidResponse))
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fail(resp.StatusCode, "", fmt.Errorf("%w: %w", ErrInvalidResponse, err))
	}
	return nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = c.base.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
