// Command structbot runs the structure maker Telegram bot.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/srchub/structbot/internal/bot"
	"github.com/srchub/structbot/internal/config"
	"github.com/srchub/structbot/internal/database"
	"github.com/srchub/structbot/internal/logger"
	"github.com/srchub/structbot/internal/session"
	"github.com/srchub/structbot/internal/storage"
	"github.com/srchub/structbot/internal/telegram"
	"github.com/srchub/structbot/internal/telegram/middleware"
	"github.com/srchub/structbot/internal/telegram/router"
	"github.com/srchub/structbot/internal/telegram/sender"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	root := &cobra.Command{
		Use:           "structbot",
		Short:         "Telegram bot that generates bypass structure snippets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var configPath string
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Start the bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}
	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file (default $CONFIG_PATH or config.yaml)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("structbot %s (commit %s, built %s)\n", version, commit, date)
		},
	}

	root.AddCommand(runCmd, versionCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(cfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			fmt.Fprintln(os.Stderr, "logger shutdown:", err)
		}
	}()

	if err := database.RunMigrations(cfg.Database); err != nil {
		return err
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	b, err := telegram.NewBot(cfg)
	if err != nil {
		return err
	}

	store := storage.New(db)
	sessions := session.NewManager()
	gate := bot.NewGate(b, cfg.Telegram.Channel)
	handlers := bot.New(b, store, sessions, gate, cfg)

	reg := telegram.NewRegistry()
	if err := handlers.Register(reg); err != nil {
		return fmt.Errorf("register handlers: %w", err)
	}

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		OwnerID: cfg.Telegram.OwnerID,
	})
	routes = append(routes, router.CallbackRoute(reg))
	routes = append(routes, router.TextRoute(handlers, reg))

	var middlewares []telegram.Middleware
	if cfg.RateLimit.IntervalMS > 0 {
		exclude := make(map[string]struct{}, len(cfg.RateLimit.ExcludeUpdates))
		for _, kind := range cfg.RateLimit.ExcludeUpdates {
			exclude[kind] = struct{}{}
		}
		middlewares = append(middlewares, telegram.Middleware{
			Name: "rate_limit",
			Use: middleware.RateLimit(middleware.RateLimitOptions{
				Interval: time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond,
				Exclude:  exclude,
			}),
		})
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	startedAt := time.Now()
	return telegram.Run(ctx, b, telegram.RunOptions{
		Config:            cfg,
		Registry:          reg,
		Routes:            routes,
		Middlewares:       middlewares,
		DispatcherOptions: sender.Options{},
		OnStart: func(ctx context.Context, rt telegram.Runtime) error {
			logger.Info(ctx, "app", "ready",
				slog.String("mode", cfg.Telegram.RunMode),
				slog.Duration("startup_duration", logger.Took(startedAt)),
			)
			return nil
		},
		OnStop: func(ctx context.Context, rt telegram.Runtime) error {
			logger.Info(ctx, "app", "shutdown")
			return nil
		},
	})
}
