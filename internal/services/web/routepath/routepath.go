// Package routepath stores canonical HTTP paths for the web service.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root              = "/"
	RootExact         = "/{$}"
	Health            = "/up"
	StaticPrefix      = "/static/"
	Stylesheet        = StaticPrefix + "globals.css"
	ProgressScript    = StaticPrefix + "progress.js"
	LocalePattern     = "/{locale}"
	LocalePagePattern = "/{locale}/{page...}"
)

// LocaleRoot returns the home path for a locale, for example "/fr/".
func LocaleRoot(locale string) string {
	return "/" + url.PathEscape(strings.TrimSpace(locale)) + "/"
}

// LocalePage returns the path of a page slug under a locale.
// An empty slug addresses the locale home.
func LocalePage(locale string, slug string) string {
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if slug == "" {
		return LocaleRoot(locale)
	}
	parts := strings.Split(slug, "/")
	for idx, part := range parts {
		parts[idx] = url.PathEscape(part)
	}
	return LocaleRoot(locale) + strings.Join(parts, "/")
}
