// Package public serves the locale-prefixed pages inside the localized shell.
package public

import (
	"errors"
	"net/http"

	platformi18n "github.com/louisbranch/localeshell/internal/platform/i18n"
	"github.com/louisbranch/localeshell/internal/services/web/layout"
	module "github.com/louisbranch/localeshell/internal/services/web/module"
	"github.com/louisbranch/localeshell/internal/services/web/pages"
	"github.com/louisbranch/localeshell/internal/services/web/routepath"
)

// Translator resolves UI copy for a locale.
type Translator interface {
	T(locale string, key string) string
}

// Config carries the module's collaborators.
type Config struct {
	Routing  platformi18n.Routing
	Messages Translator
	Pages    *pages.Registry
	// Stylesheets and Scripts default to the embedded static assets.
	Stylesheets []string
	Scripts     []string
}

// Module provides the root redirect and locale-prefixed page routes.
type Module struct {
	cfg Config
}

// New returns a public pages module.
func New(cfg Config) Module {
	return Module{cfg: cfg}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (m Module) ID() string {
	return "public"
}

// Mount wires public routes under the root prefix.
func (m Module) Mount() (module.Mount, error) {
	cfg := m.cfg
	if len(cfg.Routing.Locales()) == 0 {
		return module.Mount{}, errors.New("public module: routing table is required")
	}
	if cfg.Messages == nil {
		return module.Mount{}, errors.New("public module: message catalog is required")
	}
	if cfg.Pages == nil {
		cfg.Pages = pages.Default()
	}
	if cfg.Stylesheets == nil {
		cfg.Stylesheets = []string{routepath.Stylesheet}
	}
	if cfg.Scripts == nil {
		cfg.Scripts = []string{routepath.ProgressScript}
	}

	h := handlers{
		routing:  cfg.Routing,
		messages: cfg.Messages,
		pages:    cfg.Pages,
		layout: layout.Layout{
			Locales:     cfg.Routing,
			Messages:    cfg.Messages,
			Stylesheets: cfg.Stylesheets,
			Scripts:     cfg.Scripts,
		},
	}
	mux := http.NewServeMux()
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}

func registerRoutes(mux *http.ServeMux, h handlers) {
	mux.HandleFunc(http.MethodGet+" "+routepath.RootExact, h.handleRoot)
	mux.HandleFunc(http.MethodGet+" "+routepath.LocalePattern, h.handleLocaleRoot)
	mux.HandleFunc(http.MethodGet+" "+routepath.LocalePagePattern, h.handlePage)
}

