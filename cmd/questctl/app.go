package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dmitrymomot/questkit/pkg/authstate"
	"github.com/dmitrymomot/questkit/pkg/gateway"
	"github.com/dmitrymomot/questkit/pkg/logger"
	"github.com/dmitrymomot/questkit/pkg/redis"
	"github.com/dmitrymomot/questkit/pkg/requestid"
	"github.com/dmitrymomot/questkit/pkg/session"
)

const serviceName = "questctl"

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type appConfig struct {
	Log     logger.Config
	Gateway gateway.Config
	Session session.Config
	Redis   redis.Config
}

type app struct {
	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger

	client  *gateway.Client
	engine  *authstate.Engine
	storage session.Storage
	health  func(context.Context) error
	closers []func() error
}

func newApp(ctx context.Context, cfg appConfig, stdout, stderr io.Writer) (*app, error) {
	log := logger.NewFromConfig(cfg.Log, serviceName,
		logger.WithOutput(stderr),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)

	a := &app{stdout: stdout, stderr: stderr, log: log}

	storage, err := a.openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.storage = storage

	store := session.NewFromConfig(storage, cfg.Session, session.WithLogger(log))

	var engine *authstate.Engine
	client, err := gateway.NewFromConfig(cfg.Gateway,
		gateway.WithLogger(log),
		gateway.WithTokenSource(func(ctx context.Context) string { return engine.Token(ctx) }),
	)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	engine = authstate.New(client, store, authstate.WithLogger(log))
	engine.CheckAuth(ctx)

	a.client = client
	a.engine = engine
	return a, nil
}

func (a *app) openStorage(ctx context.Context, cfg appConfig) (session.Storage, error) {
	switch cfg.Session.Backend {
	case session.BackendMemory:
		return session.NewMemoryStorage(), nil
	case session.BackendFile, "":
		fs := session.NewFileStorage(cfg.Session.FilePath)
		a.health = func(ctx context.Context) error {
			_, err := fs.Get(ctx, "")
			return err
		}
		return fs, nil
	case session.BackendRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.health = redis.Healthcheck(client)
		storage := redis.NewStorageWithConfig(client, cfg.Redis)
		a.closers = append(a.closers, storage.Close)
		return storage, nil
	}
	return nil, fmt.Errorf("%w: %q", session.ErrUnknownBackend, cfg.Session.Backend)
}

// Close releases backend connections.
func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}
