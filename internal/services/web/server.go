package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	platformi18n "github.com/louisbranch/localeshell/internal/platform/i18n"
	"github.com/louisbranch/localeshell/internal/platform/i18n/catalog"
	"github.com/louisbranch/localeshell/internal/platform/timeouts"
	module "github.com/louisbranch/localeshell/internal/services/web/module"
	"github.com/louisbranch/localeshell/internal/services/web/modules/public"
	"github.com/louisbranch/localeshell/internal/services/web/pages"
	"github.com/louisbranch/localeshell/internal/services/web/platform/httpx"
	"github.com/louisbranch/localeshell/internal/services/web/platform/logctx"
	"github.com/louisbranch/localeshell/internal/services/web/routepath"
	"github.com/louisbranch/localeshell/internal/services/web/static"
)

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr string
	// Locales lists the supported locale tokens in display order.
	Locales       []string
	DefaultLocale string
	// Logger is the base logger for request scopes. Defaults to slog.Default().
	Logger *slog.Logger
}

// Server hosts the localized web HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     *slog.Logger
}

// NewHandler builds the root HTTP handler: static assets, health and the
// locale-guarded page routes behind the request middleware chain.
func NewHandler(config Config) (http.Handler, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	routing, err := platformi18n.NewRouting(config.Locales, config.DefaultLocale)
	if err != nil {
		return nil, fmt.Errorf("build routing table: %w", err)
	}
	messages, err := catalog.LoadEmbedded()
	if err != nil {
		return nil, fmt.Errorf("load message catalog: %w", err)
	}
	for _, locale := range routing.Locales() {
		if !messages.HasLocale(locale) {
			logger.Warn("locale has no message file, falling back to base copy",
				"locale", locale, "base", catalog.BaseLocale)
		}
	}

	mux := http.NewServeMux()
	mux.Handle(http.MethodGet+" "+routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServerFS(static.FS)))
	mux.HandleFunc(http.MethodGet+" "+routepath.Health, func(w http.ResponseWriter, _ *http.Request) {
		_ = httpx.WriteText(w, http.StatusOK, "ok")
	})

	modules := []module.Module{
		public.New(public.Config{Routing: routing, Messages: messages, Pages: pages.Default()}),
	}
	for _, m := range modules {
		mount, err := m.Mount()
		if err != nil {
			return nil, fmt.Errorf("mount module %s: %w", m.ID(), err)
		}
		mux.Handle(mount.Prefix, mount.Handler)
		logger.Debug("module mounted", "module", m.ID(), "prefix", mount.Prefix)
	}

	handler := httpx.Chain(mux,
		httpx.RequestID(),
		logctx.Middleware(logger),
		httpx.RecoverPanic(),
	)
	return otelhttp.NewHandler(handler, "web",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	), nil
}

// NewServer builds a configured web server.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	handler, err := NewHandler(config)
	if err != nil {
		return nil, fmt.Errorf("build handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
			ErrorLog:          slog.NewLogLogger(config.Logger.Handler(), slog.LevelWarn),
		},
		logger: config.Logger,
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	s.logger.Info("web listening", "addr", s.httpAddr, logctx.KeyLogType, string(logctx.TypeSystem))
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close force-closes the listener and any open connections.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	if err := s.httpServer.Close(); err != nil {
		s.logger.Warn("close http server", "error", err)
	}
}
