package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/questkit/pkg/gateway"
	"github.com/dmitrymomot/questkit/pkg/gateway/gatewaytest"
	"github.com/dmitrymomot/questkit/pkg/logger"
	"github.com/dmitrymomot/questkit/pkg/session"
)

type harness struct {
	app    *app
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func (h *harness) run(t *testing.T, args ...string) int {
	t.Helper()
	h.stdout.Reset()
	h.stderr.Reset()
	return h.app.Run(context.Background(), args)
}

func testConfig(baseURL string, sess session.Config) appConfig {
	return appConfig{
		Log: logger.Config{Format: logger.FormatText, Level: "error", Environment: "test"},
		Gateway: gateway.Config{
			BaseURL:   baseURL,
			Timeout:   2 * time.Second,
			UserAgent: "questctl/test",
		},
		Session: sess,
	}
}

func newHarness(t *testing.T, cfg appConfig) *harness {
	t.Helper()
	var stdout, stderr bytes.Buffer
	a, err := newApp(context.Background(), cfg, &stdout, &stderr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return &harness{app: a, stdout: &stdout, stderr: &stderr}
}

func memorySession() session.Config {
	cfg := session.DefaultConfig()
	cfg.Backend = session.BackendMemory
	return cfg
}

func TestRun_Usage(t *testing.T) {
	t.Parallel()
	h := newHarness(t, testConfig("http://localhost:1/api", memorySession()))

	assert.Equal(t, exitUsage, h.run(t))
	assert.Contains(t, h.stdout.String(), "usage: questctl")

	assert.Equal(t, exitOK, h.run(t, "help"))

	assert.Equal(t, exitUsage, h.run(t, "dance"))
	assert.Contains(t, h.stderr.String(), `unknown command "dance"`)

	assert.Equal(t, exitUsage, h.run(t, "login", "-email", "x@example.com"))
}

func TestRun_Rank(t *testing.T) {
	t.Parallel()
	h := newHarness(t, testConfig("http://localhost:1/api", memorySession()))

	require.Equal(t, exitOK, h.run(t, "rank", "42"))
	assert.Equal(t, "C-Rank\nB-Rank at level 50 (8 to go)\n", h.stdout.String())

	require.Equal(t, exitOK, h.run(t, "rank", "150"))
	assert.Equal(t, "S-Rank\n", h.stdout.String())

	assert.Equal(t, exitUsage, h.run(t, "rank", "high"))
	assert.Equal(t, exitUsage, h.run(t, "rank"))
}

func TestRun_SessionFlow(t *testing.T) {
	t.Parallel()

	srv := gatewaytest.New(t, gatewaytest.WithExercises(
		gateway.Exercise{ID: 1, Name: "Push-up", Category: "strength", MuscleGroup: "chest", Difficulty: "easy"},
	))
	h := newHarness(t, testConfig(srv.BaseURL(), memorySession()))

	require.Equal(t, exitError, h.run(t, "whoami"))
	assert.Contains(t, h.stderr.String(), "not signed in")

	require.Equal(t, exitOK, h.run(t, "register", "-email", "jin@example.com", "-password", "secret123", "-name", "Jin"))
	assert.Contains(t, h.stdout.String(), "Welcome, Jin")

	require.Equal(t, exitOK, h.run(t, "logout"))
	require.Equal(t, exitError, h.run(t, "login", "-email", "jin@example.com", "-password", "nope"))
	assert.Contains(t, h.stderr.String(), "Invalid email or password")

	require.Equal(t, exitOK, h.run(t, "login", "-email", "jin@example.com", "-password", "secret123"))
	assert.Contains(t, h.stdout.String(), "Signed in as jin@example.com")

	require.Equal(t, exitOK, h.run(t, "profile", "age=31", "weight=abc", "activity_level=very_active"))
	assert.Contains(t, h.stderr.String(), "warning:")
	assert.Contains(t, h.stdout.String(), "age:            31")
	assert.Contains(t, h.stdout.String(), "weight:         0.0 kg")
	assert.Contains(t, h.stdout.String(), "activity level: Very Active")

	require.Equal(t, exitOK, h.run(t, "whoami", "-refresh", "-json"))
	assert.Contains(t, h.stdout.String(), `"activity_level": "very_active"`)

	require.Equal(t, exitOK, h.run(t, "exercises"))
	assert.Contains(t, h.stdout.String(), "Push-up")
	assert.Contains(t, h.stdout.String(), "★☆☆☆☆")

	require.Equal(t, exitOK, h.run(t, "logs", "-limit", "5"))
	assert.Equal(t, "5", srv.LastRequest().URL.Query().Get("limit"))

	srv.Advance(48 * time.Hour)
	require.Equal(t, exitError, h.run(t, "whoami", "-refresh"))
	assert.Contains(t, h.stderr.String(), "session has expired")
	assert.False(t, h.app.engine.State().IsAuthenticated)

	require.Equal(t, exitError, h.run(t, "exercises"))
	assert.Contains(t, h.stderr.String(), "not signed in")
}

func TestRun_DeleteAccount(t *testing.T) {
	t.Parallel()

	srv := gatewaytest.New(t)
	srv.SeedUser("jin@example.com", "secret123", "Jin")
	h := newHarness(t, testConfig(srv.BaseURL(), memorySession()))

	require.Equal(t, exitOK, h.run(t, "login", "-email", "jin@example.com", "-password", "secret123"))
	assert.Equal(t, exitUsage, h.run(t, "delete-account"))
	assert.True(t, h.app.engine.State().IsAuthenticated)

	require.Equal(t, exitOK, h.run(t, "delete-account", "-yes"))
	assert.False(t, h.app.engine.State().IsAuthenticated)
}

func TestRun_FileBackendPersists(t *testing.T) {
	t.Parallel()

	srv := gatewaytest.New(t)
	srv.SeedUser("jin@example.com", "secret123", "Jin")

	sess := session.DefaultConfig()
	sess.FilePath = filepath.Join(t.TempDir(), "nested", "session.json")
	cfg := testConfig(srv.BaseURL(), sess)

	first := newHarness(t, cfg)
	require.Equal(t, exitOK, first.run(t, "login", "-email", "jin@example.com", "-password", "secret123"))
	require.Equal(t, exitOK, first.run(t, "ping"))

	second := newHarness(t, cfg)
	require.Equal(t, exitOK, second.run(t, "whoami"))
	assert.Contains(t, second.stdout.String(), "Jin <jin@example.com>")
	assert.Contains(t, second.stdout.String(), "activity level: Not set")

	require.Equal(t, exitOK, second.run(t, "logout"))
	third := newHarness(t, cfg)
	assert.Equal(t, exitError, third.run(t, "whoami"))
}

func TestRun_Board(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
quests:
  - {id: q1, title: Push-ups, rank: E, xp_reward: 50, type: daily, difficulty: easy, progress: 5, total: 10}
  - {id: q2, title: Plank, rank: D, xp_reward: 70, type: weekly, difficulty: medium, status: completed}
dungeons:
  - {id: d1, name: Cardio Cave, rank: D, type: solo, floors: 5, recommended_level: 5, difficulty: hard, rewards: {xp: 100, coins: 1}}
  - {id: d2, name: Iron Tower, rank: S, type: guild, floors: 9, recommended_level: 90, status: locked, difficulty: nightmare, rewards: {xp: 900, coins: 9}}
`), 0o600))

	h := newHarness(t, testConfig("http://localhost:1/api", memorySession()))

	require.Equal(t, exitOK, h.run(t, "board", "-level", "12", path))
	out := h.stdout.String()
	assert.Contains(t, out, "Level 12  D-Rank")
	assert.Contains(t, out, "Quests:   1 actionable, 1 completed of 2 (avg progress 50%)")
	assert.Contains(t, out, "Dungeons: 1 actionable, 0 completed, 1 blocked of 2")
	assert.Contains(t, out, "Daily Quest")
	assert.Contains(t, out, "GUILD RAID")
	assert.Contains(t, out, "LOCKED")
	assert.Contains(t, out, "Recommended: d1")
	assert.Contains(t, out, "Pending XP: 150")

	require.Equal(t, exitOK, h.run(t, "board", "-animate", path))
	assert.Contains(t, h.stdout.String(), "\rPending XP: 150\n")

	assert.Equal(t, exitError, h.run(t, "board", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Equal(t, exitUsage, h.run(t, "board"))
}

func TestNewApp_UnknownBackend(t *testing.T) {
	t.Parallel()

	sess := session.DefaultConfig()
	sess.Backend = "floppy"
	_, err := newApp(context.Background(), testConfig("http://localhost:1/api", sess), &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, session.ErrUnknownBackend)
}
