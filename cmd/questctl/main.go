// Command questctl drives a fitness API session from the terminal.
//
// Usage:
//
//	questctl <command> [flags] [args]
//
// Commands:
//
//	login      -email E -password P     sign in and persist the session
//	register   -email E -password P -name N
//	logout                              forget the stored session
//	whoami     [-refresh]               print the signed-in user
//	profile    key=value ...            update profile fields
//	delete-account -yes                 delete the account and log out
//	exercises  [-category C] [-muscle M]
//	logs       [-limit N]
//	rank       <level>                  print the rank for a level
//	board      [-level N] [-animate] <catalog.yaml>
//	ping                                check the session backend
//
// Configuration comes from the environment and an optional .env file:
// API_BASE_URL, API_TIMEOUT, SESSION_BACKEND (memory|file|redis),
// SESSION_FILE, REDIS_URL, LOG_LEVEL, LOG_FORMAT, APP_ENV.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/questkit/pkg/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintf(stderr, "questctl: %v\n", err)
		return exitError
	}

	app, err := newApp(ctx, cfg, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "questctl: %v\n", err)
		return exitError
	}
	defer app.Close()

	return app.Run(ctx, args)
}
