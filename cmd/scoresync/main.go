package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/scoreline/score-sync/internal/auth"
	"github.com/scoreline/score-sync/internal/config"
	"github.com/scoreline/score-sync/internal/db"
	"github.com/scoreline/score-sync/internal/repository"
	"github.com/scoreline/score-sync/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:  "scoresync",
		Usage: "one-shot score sync and database maintenance",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Usage: "log at debug level"},
		},
		Commands: []*cli.Command{
			runCommand(),
			migrateCommand(),
			tokenCommand(),
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(c *cli.Context) (*zap.Logger, error) {
	if c.Bool("verbose") {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "run the score sync job once and print its report",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "snapshot", Usage: "read feed records from a JSON file instead of the provider", TakesFile: true},
			&cli.StringFlag{Name: "notify-mode", Usage: "delta or every_poll (overrides NOTIFY_MODE)"},
		},
		Action: func(c *cli.Context) error {
			logger, err := newLogger(c)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			src, err := prepareRun(cfg, runOptions{
				Snapshot:   c.String("snapshot"),
				NotifyMode: c.String("notify-mode"),
			})
			if err != nil {
				return err
			}

			pool, err := db.Connect(c.Context, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			svc := service.NewScoreSyncService(
				repository.NewPgMatchRepository(pool),
				repository.NewPgFavoriteRepository(pool),
				repository.NewPgNotificationRepository(pool),
				service.SyncOptions{Mode: cfg.NotifyMode, Budget: cfg.SyncBudget},
				logger,
			)

			report, err := svc.Run(c.Context, src)
			if err != nil {
				return err
			}

			out, err := sonic.ConfigDefault.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, string(out))

			if !report.Success {
				return cli.Exit("score sync failed: "+report.Error, 1)
			}
			return nil
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply all pending migrations",
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}
					if err := db.Migrate(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, "migrations applied")
					return nil
				},
			},
			{
				Name:  "rollback",
				Usage: "revert the most recent migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "steps", Value: 1, Usage: "number of migrations to revert"},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}
					steps := c.Int("steps")
					if steps < 1 {
						return fmt.Errorf("--steps must be positive")
					}
					if err := db.Rollback(cfg.DatabaseURL, cfg.MigrationsDir, steps); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "rolled back %d migration(s)\n", steps)
					return nil
				},
			},
		},
	}
}

// tokenCommand mints a bearer token for calling the job endpoint from a
// platform scheduler.
func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "print a signed bearer token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "secret", EnvVars: []string{"JWT_SECRET"}, Required: true},
			&cli.StringFlag{Name: "sub", Value: "scheduler"},
			&cli.StringFlag{Name: "role", Value: auth.RoleService},
			&cli.DurationFlag{Name: "ttl", Value: 24 * time.Hour},
		},
		Action: func(c *cli.Context) error {
			tok, err := auth.NewVerifier(c.String("secret")).Sign(c.String("sub"), c.String("role"), c.Duration("ttl"))
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, tok)
			return nil
		},
	}
}
