// Package config reads the ASSAY_ environment of the server and CLI.
package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/lithictech/go-assay/api"
	"github.com/lithictech/go-assay/logctx"
	pkgerrors "github.com/pkg/errors"
)

// Prefix is prepended to every variable name.
const Prefix = "ASSAY_"

type Config struct {
	Port int `env:"PORT" envDefault:"8080"`
	Log  logctx.Config
	// Profiles is the path of a YAML or TOML profile file.
	Profiles    string   `env:"PROFILES"`
	CorsOrigins []string `env:"CORS_ORIGINS"`
	// DatabaseURL enables the record validators.
	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"sqlite3"`
	DatabaseURL    string `env:"DATABASE_URL"`
	// PasswordChecks enables the breached password validator.
	PasswordChecks bool   `env:"PASSWORD_CHECKS"`
	PasswordAPI    string `env:"PASSWORD_API"`
	// Parallelism bounds concurrent checks in CLI batches.
	Parallelism int    `env:"PARALLELISM" envDefault:"4"`
	Version     string `env:"VERSION" envDefault:"dev"`
	Debug       api.DebugMiddlewareConfig
}

// Load reads dotenv files (default ".env"; missing files are fine)
// into the process environment, then parses it.
// Variables already set in the environment win over dotenv files.
func Load(dotenvFiles ...string) (Config, error) {
	if err := godotenv.Load(dotenvFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, pkgerrors.Wrap(err, "loading dotenv")
	}
	return parse(env.Options{Prefix: Prefix})
}

// FromMap parses environ instead of the process environment.
// Keys include the prefix, like ASSAY_PORT.
func FromMap(environ map[string]string) (Config, error) {
	return parse(env.Options{Prefix: Prefix, Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, pkgerrors.Wrap(err, "parsing environment")
	}
	if cfg.Parallelism <= 0 {
		return Config{}, pkgerrors.Errorf("%sPARALLELISM must be positive, got %d", Prefix, cfg.Parallelism)
	}
	return cfg, nil
}
