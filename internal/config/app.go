package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// App holds the server configuration. Every field comes from the
// environment; defaults make a bare `go run ./cmd/server` work against
// a bank in the working directory.
type App struct {
	Host           string   `env:"APP_HOST"`
	Port           string   `env:"APP_PORT" envDefault:"8080"`
	BankPath       string   `env:"PUZZLE_BANK" envDefault:"puzzles.json"`
	DictionaryPath string   `env:"DICTIONARY"`
	Timezone       string   `env:"TIMEZONE" envDefault:"Asia/Jerusalem"`
	AllowedOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
}

// NewApp reads the server configuration from the environment. An empty
// DictionaryPath means the bundled dictionary.
func NewApp() (*App, error) {
	var cfg App
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

func (c *App) Addr() string {
	return c.Host + ":" + c.Port
}

// Location resolves the configured timezone. Dates flip to the next
// daily puzzle at midnight in this zone.
func (c *App) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
