// Package web parses web service flags and launches the localized web server.
package web

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/louisbranch/localeshell/internal/platform/config"
	entrypoint "github.com/louisbranch/localeshell/internal/platform/cmd"
	"github.com/louisbranch/localeshell/internal/services/web"
	"github.com/louisbranch/localeshell/internal/services/web/platform/logctx"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr      string   `env:"LOCALESHELL_HTTP_ADDR" envDefault:"localhost:8080"`
	Locales       []string `env:"LOCALESHELL_LOCALES" envDefault:"en,fr,ko" envSeparator:","`
	DefaultLocale string   `env:"LOCALESHELL_DEFAULT_LOCALE" envDefault:"en"`
	LogFormat     string   `env:"LOCALESHELL_LOG_FORMAT" envDefault:"text"`
	LogLevel      string   `env:"LOCALESHELL_LOG_LEVEL" envDefault:"info"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	if fs == nil {
		return Config{}, errors.New("flag parser is required")
	}
	locales := strings.Join(cfg.Locales, ",")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&locales, "locales", locales, "Comma-separated supported locales")
	fs.StringVar(&cfg.DefaultLocale, "default-locale", cfg.DefaultLocale, "Locale used when negotiation finds no match")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log output format (text or json)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Minimum log level")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Locales = config.SplitList(locales)
	if _, err := logctx.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web server.
func Run(ctx context.Context, cfg Config) error {
	level, err := logctx.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := slog.New(logctx.NewHandler(os.Stderr, cfg.LogFormat, level)).
		With("service", entrypoint.ServiceWeb)
	slog.SetDefault(logger)

	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceWeb, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		server, err := web.NewServer(web.Config{
			HTTPAddr:      cfg.HTTPAddr,
			Locales:       cfg.Locales,
			DefaultLocale: cfg.DefaultLocale,
			Logger:        logger,
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
