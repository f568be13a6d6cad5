// Package catalog loads localized UI copy for the web shell.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"sort"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

// BaseLocale is the canonical source locale for catalogs.
const BaseLocale = "en"

// Message keys used by the shell and its pages.
const (
	KeySkipNavigation = "shell.skip_navigation"
	KeyProgress       = "shell.progress"
	KeyNotFoundTitle  = "notfound.title"
	KeyNotFoundBody   = "notfound.body"
	KeyNotFoundHome   = "notfound.home"
	KeyHomeTitle      = "home.title"
	KeyHomeBody       = "home.body"
	KeyAboutTitle     = "about.title"
	KeyAboutBody      = "about.body"
	KeyLanguages      = "nav.languages"
)

//go:embed locales/active.*.toml
var embeddedCatalogFS embed.FS

// Catalog is a go-i18n bundle with base-locale fallback.
type Catalog struct {
	bundle  *i18n.Bundle
	locales []string
	keys    map[string][]string
}

// LoadEmbedded loads catalog files embedded in this package.
func LoadEmbedded() (*Catalog, error) {
	return LoadFromFS(embeddedCatalogFS)
}

// LoadFromFS loads locales/active.<locale>.toml files from catalogFS.
//
// Every locale must define the same keys as BaseLocale.
func LoadFromFS(catalogFS fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(catalogFS, "locales/active.*.toml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	bundle := i18n.NewBundle(language.MustParse(BaseLocale))
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	c := &Catalog{bundle: bundle, keys: map[string][]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(catalogFS, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		locale := localeFromPath(p)
		var raw map[string]string
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		keys := make([]string, 0, len(raw))
		for key, value := range raw {
			if strings.TrimSpace(key) == "" {
				return nil, fmt.Errorf("catalog %s: message key cannot be blank", p)
			}
			if strings.TrimSpace(value) == "" {
				return nil, fmt.Errorf("catalog %s: message %q is empty", p, key)
			}
			keys = append(keys, key)
		}
		sort.Strings(keys)
		if _, err := bundle.ParseMessageFileBytes(data, p); err != nil {
			return nil, fmt.Errorf("register catalog %s: %w", p, err)
		}
		c.locales = append(c.locales, locale)
		c.keys[locale] = keys
	}

	baseKeys, ok := c.keys[BaseLocale]
	if !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	for _, locale := range c.locales {
		if !slices.Equal(baseKeys, c.keys[locale]) {
			return nil, fmt.Errorf("catalog locale %s: keys differ from base locale %s", locale, BaseLocale)
		}
	}
	return c, nil
}

// HasLocale reports whether a catalog file exists for locale.
func (c *Catalog) HasLocale(locale string) bool {
	if c == nil {
		return false
	}
	return slices.Contains(c.locales, strings.TrimSpace(locale))
}

// Locales returns the loaded locale identifiers in sorted order.
func (c *Catalog) Locales() []string {
	if c == nil {
		return nil
	}
	out := slices.Clone(c.locales)
	sort.Strings(out)
	return out
}

// T renders key for locale, falling back to BaseLocale and then to the key.
func (c *Catalog) T(locale string, key string) string {
	if c == nil || key == "" {
		return key
	}
	langs := make([]string, 0, 2)
	if locale = strings.TrimSpace(locale); locale != "" {
		langs = append(langs, locale)
	}
	langs = append(langs, BaseLocale)
	msg, err := i18n.NewLocalizer(c.bundle, langs...).Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil || msg == "" {
		return key
	}
	return msg
}

// Localizer binds a catalog to one locale.
type Localizer struct {
	catalog *Catalog
	locale  string
}

// For returns a Localizer for locale.
func (c *Catalog) For(locale string) Localizer {
	return Localizer{catalog: c, locale: locale}
}

// T renders key in the bound locale.
func (l Localizer) T(key string) string {
	return l.catalog.T(l.locale, key)
}

// Locale returns the bound locale.
func (l Localizer) Locale() string {
	return l.locale
}

func localeFromPath(p string) string {
	base := strings.TrimSuffix(path.Base(p), ".toml")
	return strings.TrimPrefix(base, "active.")
}
