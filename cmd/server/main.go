package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	// the default timezone must resolve even on scratch images
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"shorashim.app/game/internal/app"
	"shorashim.app/game/internal/config"
)

func main() {
	_ = godotenv.Load()

	var handler slog.Handler = slog.NewJSONHandler(os.Stderr, nil)
	if config.Development() {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level: slog.LevelDebug,
		})
	}
	logger := slog.New(handler)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.New(logger).Start(ctx); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
