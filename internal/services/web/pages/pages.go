// Package pages holds the content rendered inside the localized shell.
package pages

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/a-h/templ"

	"github.com/louisbranch/localeshell/internal/platform/i18n/catalog"
	"github.com/louisbranch/localeshell/internal/services/web/templates"
)

// Translator resolves UI copy for a locale.
type Translator interface {
	T(locale string, key string) string
}

// Page is one routable page below a locale.
type Page struct {
	// Slug is the path below the locale root; empty for the home page.
	Slug     string
	TitleKey string
	BodyKey  string
}

// Registry maps slugs to pages.
type Registry struct {
	pages map[string]Page
	order []string
}

// NewRegistry validates pages and indexes them by slug.
func NewRegistry(pages ...Page) (*Registry, error) {
	if len(pages) == 0 {
		return nil, errors.New("at least one page is required")
	}
	r := &Registry{pages: make(map[string]Page, len(pages))}
	for _, page := range pages {
		page.Slug = NormalizeSlug(page.Slug)
		if strings.TrimSpace(page.TitleKey) == "" {
			return nil, fmt.Errorf("page %q: title key is required", page.Slug)
		}
		if _, dup := r.pages[page.Slug]; dup {
			return nil, fmt.Errorf("duplicate page slug %q", page.Slug)
		}
		r.pages[page.Slug] = page
		r.order = append(r.order, page.Slug)
	}
	return r, nil
}

// Default returns the built-in home and about pages.
func Default() *Registry {
	r, err := NewRegistry(
		Page{Slug: "", TitleKey: catalog.KeyHomeTitle, BodyKey: catalog.KeyHomeBody},
		Page{Slug: "about", TitleKey: catalog.KeyAboutTitle, BodyKey: catalog.KeyAboutBody},
	)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the page registered for slug.
func (r *Registry) Lookup(slug string) (Page, bool) {
	if r == nil {
		return Page{}, false
	}
	page, ok := r.pages[NormalizeSlug(slug)]
	return page, ok
}

// Slugs returns registered slugs in registration order.
func (r *Registry) Slugs() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.order)
}

// NormalizeSlug trims surrounding whitespace and slashes.
func NormalizeSlug(slug string) string {
	return strings.Trim(strings.TrimSpace(slug), "/")
}

// Title returns the localized page title.
func (p Page) Title(tr Translator, locale string) string {
	return tr.T(locale, p.TitleKey)
}

// Body renders the page's main content followed by extra components.
func (p Page) Body(tr Translator, locale string, extra ...templ.Component) templ.Component {
	lead := ""
	if p.BodyKey != "" {
		lead = tr.T(locale, p.BodyKey)
	}
	return templates.MainContent(p.Title(tr, locale), lead, extra...)
}
