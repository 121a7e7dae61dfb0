package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/tsymba/refurbwatch/internal/config"
	"github.com/tsymba/refurbwatch/internal/dispatch"
	"github.com/tsymba/refurbwatch/internal/notifier"
	"github.com/tsymba/refurbwatch/internal/parser"
	"github.com/tsymba/refurbwatch/internal/repository/sqlite"
	"github.com/tsymba/refurbwatch/internal/services/watcher"

	_ "github.com/mattn/go-sqlite3"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// .env is optional, for local runs.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	htmlParser, err := parser.NewParser(logger, cfg.URL, cfg.BaseURL, cfg.CacheSize)
	if err != nil {
		log.Fatalf("Failed to init parser: %v", err)
	}

	pool := dispatch.NewPool(logger, cfg.Workers, cfg.QueueSize)

	// The notification stack (subscription store + Telegram bot) is only
	// brought up when dispatch is enabled.
	var (
		ntf   notifier.Notifier
		tgBot *notifier.Bot
		wtc   *watcher.Watcher
	)
	if cfg.Notify {
		repo, repoErr := sqlite.NewRepository(ctx, logger, cfg.StoragePath)
		if repoErr != nil {
			log.Fatalf("Failed to init repository: %v", repoErr)
		}
		defer repo.Close()

		tgBot, err = notifier.NewBot(logger, repo, cfg.Tg.Token, cfg.Tg.Timeout, func() int {
			if wtc == nil {
				return 0
			}
			return wtc.SeenCount()
		})
		if err != nil {
			log.Fatalf("Failed to init bot: %v", err)
		}
		ntf = tgBot
	}

	wtc = watcher.NewWatcher(logger, htmlParser, ntf, pool, cfg)

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.",
		"url", cfg.URL, "terms", cfg.Terms, "interval", cfg.PollInterval)

	// Start the bot in a goroutine; the watcher owns the main goroutine.
	if tgBot != nil {
		go tgBot.Start()
	}

	wtc.Run(ctx)

	// Log that a shutdown signal has been received.
	logger.Info("Shutdown signal received. Stopping application...")

	// Stop the bot and drain the dispatch pool gracefully.
	if tgBot != nil {
		tgBot.Stop()
	}
	pool.Stop()

	// Log graceful shutdown completion.
	logger.Info("Application stopped gracefully.")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
