// Package gatewaytest provides an in-memory fitness API for tests.
//
// The server implements the routes the gateway client calls, signs HS256
// tokens with an adjustable clock and hashes passwords with bcrypt, so tests
// can exercise expired sessions and bad credentials against real HTTP.
package gatewaytest

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/questkit/pkg/account"
	"github.com/dmitrymomot/questkit/pkg/gateway"
	"github.com/dmitrymomot/questkit/pkg/requestid"
)

type userRecord struct {
	user account.User
	hash []byte
}

type injectedFailure struct {
	status int
	body   string
}

// Server is a fake fitness API backed by httptest.Server.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	secret    []byte
	ttl       time.Duration
	now       time.Time
	nextID    int64
	users     map[int64]*userRecord
	emails    map[string]int64
	exercises []gateway.Exercise
	plans     []gateway.WorkoutPlan
	logs      []gateway.WorkoutLog
	failures  []injectedFailure
	requests  []*http.Request
}

// Option configures a Server.
type Option func(*Server)

// WithTokenTTL sets the lifetime of issued tokens.
func WithTokenTTL(d time.Duration) Option {
	return func(s *Server) { s.ttl = d }
}

// WithExercises seeds the exercise catalog.
func WithExercises(ex ...gateway.Exercise) Option {
	return func(s *Server) { s.exercises = append(s.exercises, ex...) }
}

// New starts a server and closes it when the test ends.
func New(t testing.TB, opts ...Option) *Server {
	t.Helper()
	s := &Server{
		secret: []byte(uuid.NewString()),
		ttl:    time.Hour,
		now:    time.Now().UTC().Truncate(time.Second),
		nextID: 1,
		users:  make(map[int64]*userRecord),
		emails: make(map[string]int64),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

// BaseURL returns the API root to pass to gateway.New.
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

// Advance moves the server clock forward, expiring tokens older than the TTL.
func (s *Server) Advance(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.Add(d)
}

// FailNext makes the next request return status with the raw body.
// Calls queue up in order.
func (s *Server) FailNext(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, injectedFailure{status: status, body: body})
}

// SeedUser registers an account directly and returns it.
func (s *Server) SeedUser(email, password, name string) account.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.createUser(email, password, name)
	if err != nil {
		panic(err)
	}
	return u
}

// IssueToken signs a token for userID using the current clock.
func (s *Server) IssueToken(userID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sign(userID)
}

// User returns the stored record for id.
func (s *Server) User(id int64) (account.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		return account.User{}, false
	}
	return *rec.user.Clone(), true
}

// Requests returns copies of the requests received so far.
func (s *Server) Requests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*http.Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request, or nil.
func (s *Server) LastRequest() *http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	return s.requests[len(s.requests)-1]
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)
	r.Use(requestid.Middleware)
	r.Use(s.injectFailures)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Get("/user/profile", s.handleGetProfile)
			r.Put("/user/profile", s.handleUpdateProfile)
			r.Delete("/user/account", s.handleDeleteAccount)
			r.Get("/exercises", s.handleListExercises)
			r.Get("/exercises/{id}", s.handleGetExercise)
			r.Get("/workout-plans", s.handleListPlans)
			r.Post("/workout-plans", s.handleCreatePlan)
			r.Get("/workout-logs", s.handleListLogs)
			r.Post("/workout-logs", s.handleCreateLog)
		})
	})
	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Clone(r.Context()))
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		var f *injectedFailure
		if len(s.failures) > 0 {
			f = &s.failures[0]
			s.failures = s.failures[1:]
		}
		s.mu.Unlock()
		if f != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(f.body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// createUser must be called with s.mu held.
func (s *Server) createUser(email, password, name string) (account.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, exists := s.emails[email]; exists {
		return account.User{}, errEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return account.User{}, err
	}
	u := account.User{
		ID:        s.nextID,
		Email:     email,
		Name:      name,
		CreatedAt: s.now,
		UpdatedAt: s.now,
	}
	s.nextID++
	s.users[u.ID] = &userRecord{user: u, hash: hash}
	s.emails[email] = u.ID
	return u, nil
}

// sign must be called with s.mu held.
func (s *Server) sign(userID int64) string {
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(s.now),
		ExpiresAt: jwt.NewNumericDate(s.now.Add(s.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		panic(err)
	}
	return signed
}

func (s *Server) parse(token string) (int64, error) {
	s.mu.Lock()
	now := s.now
	s.mu.Unlock()

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(claims.Subject, 10, 64)
}

var errEmailTaken = errors.New("email already registered")

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func writeOK(w http.ResponseWriter, status int, msg string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: msg, Data: data})
}

func writeFail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Message: msg})
}
