// Package main runs the checkers rules server: an HTTP API answering per-piece
// move and capture legality, with an optional SQLite probe log.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"checkers/internal/logging"
	"checkers/internal/service"
	"checkers/internal/storage"
	transport "checkers/internal/transport/http"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const gracefulShutdownTimeout = 5 * time.Second

func main() {
	// .env is optional; real environment variables take precedence
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: cannot load .env: %v\n", err)
	}

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("checkersd failed")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "checkersd",
		Usage: "Checkers move and capture legality server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "zerolog level (trace, debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"CHECKERS_LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:    "log-pretty",
				Usage:   "human readable console logs",
				EnvVars: []string{"CHECKERS_LOG_PRETTY"},
			},
		},
		Before: func(c *cli.Context) error {
			return logging.Configure(c.String("log-level"), c.Bool("log-pretty"))
		},
		Commands: []*cli.Command{
			serveCommand(),
			dbCommand(),
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-host",
				Usage:   "API server host",
				Value:   "localhost",
				EnvVars: []string{"CHECKERS_API_HOST"},
			},
			&cli.IntFlag{
				Name:    "api-port",
				Aliases: []string{"p"},
				Usage:   "API server port",
				Value:   8080,
				EnvVars: []string{"CHECKERS_API_PORT"},
			},
			&cli.BoolFlag{
				Name:    "dev",
				Usage:   "development mode (relaxed rate limits, WAL journal)",
				EnvVars: []string{"CHECKERS_DEV"},
			},
			&cli.StringFlag{
				Name:    "storage-path",
				Usage:   "SQLite probe log path (persistence disabled if empty)",
				EnvVars: []string{"CHECKERS_STORAGE_PATH"},
			},
			&cli.StringFlag{
				Name:    "pid",
				Usage:   "optional path to write PID file",
				EnvVars: []string{"CHECKERS_PID"},
			},
			&cli.BoolFlag{
				Name:  "pid-lock",
				Usage: "lock PID file to allow only one instance (requires --pid)",
			},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	if c.Bool("pid-lock") && c.String("pid") == "" {
		return fmt.Errorf("--pid-lock requires --pid")
	}

	if path := c.String("pid"); path != "" {
		pid, err := acquirePIDFile(path, c.Bool("pid-lock"))
		if err != nil {
			return fmt.Errorf("failed to manage PID file: %w", err)
		}
		defer func() {
			if err := pid.Release(); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("PID file cleanup failed")
			}
		}()
		log.Info().Str("path", path).Bool("lock", c.Bool("pid-lock")).Msg("PID file created")
	}

	dev := c.Bool("dev")

	var store *storage.Store
	if path := c.String("storage-path"); path != "" {
		var err error
		store, err = storage.NewStore(path, dev)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		if err := store.InitDB(); err != nil {
			store.Close()
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
		log.Info().Str("path", path).Msg("probe storage enabled")
	} else {
		log.Info().Msg("probe storage disabled (use --storage-path to enable)")
	}

	svc := service.New(store)
	defer func() {
		if err := svc.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close storage cleanly")
		}
	}()

	app := transport.NewFiberApp(svc, dev)
	addr := fmt.Sprintf("%s:%d", c.String("api-host"), c.Int("api-port"))

	listenErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", "http://"+addr).
			Bool("dev", dev).
			Msg("checkers API listening")
		listenErr <- app.Listen(addr)
	}()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-listenErr:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
	return nil
}
