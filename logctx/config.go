package logctx

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phsym/console-slog"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh/terminal"
)

// Config describes how to build a logger.
// Fields carry env tags so it can be embedded in an env-parsed config.
type Config struct {
	// Level is a slog level name ('debug', 'info', 'warn', 'error'), any case.
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	// Format is empty, 'json', 'text' or 'console'.
	// If empty, use 'json' if File is set, console if on a TTY,
	// or 'json' otherwise.
	Format string `env:"LOG_FORMAT"`
	// File is the filename to append logs to.
	File string `env:"LOG_FILE"`
	// Out overrides where logs are written.
	Out io.Writer
	// MakeHandler can wrap or replace the derived handler,
	// for example with NewTracingHandler.
	MakeHandler func(*slog.HandlerOptions, slog.Handler) slog.Handler
	// Fields are added to every record.
	Fields []any
}

func NewLogger(cfg Config) (*slog.Logger, error) {
	// Stderr for a TTY, stdout otherwise so logs stream like any 12 factor app.
	out := cfg.Out
	if out == nil {
		switch {
		case cfg.File != "":
			file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
			if err != nil {
				return nil, errors.Wrap(err, "opening log file")
			}
			out = file
		case IsTty():
			out = os.Stderr
		default:
			out = os.Stdout
		}
	}

	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	hopts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(out, hopts)
	case "text":
		handler = slog.NewTextHandler(out, hopts)
	case "console":
		handler = console.NewHandler(out, &console.HandlerOptions{Level: hopts.Level})
	case "":
		if cfg.File == "" && cfg.Out == nil && IsTty() {
			handler = console.NewHandler(out, &console.HandlerOptions{Level: hopts.Level})
		} else {
			handler = slog.NewJSONHandler(out, hopts)
		}
	default:
		return nil, errors.Errorf("unknown log format %q", cfg.Format)
	}
	if cfg.MakeHandler != nil {
		handler = cfg.MakeHandler(hopts, handler)
	}

	logger := slog.New(handler)
	if len(cfg.Fields) > 0 {
		logger = logger.With(cfg.Fields...)
	}
	return logger, nil
}

func IsTty() bool {
	return terminal.IsTerminal(int(os.Stdout.Fd()))
}

// ParseLevel parses a level name. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, errors.Wrapf(err, "parsing log level")
	}
	return level, nil
}
