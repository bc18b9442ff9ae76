package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"shorashim.app/game/internal/bank"
	"shorashim.app/game/internal/config"
	"shorashim.app/game/internal/daily"
	"shorashim.app/game/internal/dictionary"
	"shorashim.app/game/internal/middleware"
	"shorashim.app/game/internal/puzzle"
)

type App struct {
	logger   *slog.Logger
	router   *http.ServeMux
	dict     *dictionary.Dictionary
	bank     *bank.Bank
	selector *daily.Selector
}

func New(logger *slog.Logger) *App {
	router := http.NewServeMux()

	app := &App{
		logger: logger,
		router: router,
	}

	return app
}

// Start loads the dictionary and the puzzle bank, verifies the bank
// against the dictionary and serves until ctx is cancelled. A bank
// that fails verification never serves.
func (a *App) Start(ctx context.Context) error {
	cfg, err := config.NewApp()
	if err != nil {
		return fmt.Errorf("unable to read config: %w", err)
	}

	dict, err := a.loadDictionary(cfg)
	if err != nil {
		return fmt.Errorf("unable to load dictionary: %w", err)
	}

	a.dict = dict

	b, err := bank.LoadFile(cfg.BankPath)
	if err != nil {
		return fmt.Errorf("unable to load puzzle bank: %w", err)
	}

	if err := b.Verify(puzzle.NewValidator(dict)); err != nil {
		return fmt.Errorf("puzzle bank %s failed verification: %w", cfg.BankPath, err)
	}

	a.bank = b

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("unable to resolve timezone %s: %w", cfg.Timezone, err)
	}

	a.selector = daily.NewSelector(b, loc)

	a.loadRoutes()

	server := &http.Server{
		Addr:         cfg.Addr(),
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler: middleware.Wrap(
			a.router,
			middleware.Cors(cfg.AllowedOrigins),
			middleware.Logging(a.logger),
		),
	}

	a.logger.Info(
		"server listening",
		slog.String("addr", server.Addr),
		slog.Int("puzzles", b.TotalPuzzles),
		slog.Int("roots", dict.Len()),
		slog.String("timezone", loc.String()),
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}

func (a *App) loadDictionary(cfg *config.App) (*dictionary.Dictionary, error) {
	if cfg.DictionaryPath != "" {
		return dictionary.LoadFile(cfg.DictionaryPath)
	}
	return dictionary.Default()
}
