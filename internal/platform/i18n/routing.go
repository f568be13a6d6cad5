// Package i18n defines the supported-locale routing table.
package i18n

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Routing is the read-only table of locales the web surface serves.
//
// Membership is exact: a locale token must equal one of the configured
// strings byte for byte. Tags are kept alongside for negotiation.
type Routing struct {
	locales       []string
	tags          []language.Tag
	defaultLocale string
	matcher       language.Matcher
	matchIndex    []int
}

// NewRouting validates locales and builds a routing table.
func NewRouting(locales []string, defaultLocale string) (Routing, error) {
	if len(locales) == 0 {
		return Routing{}, errors.New("at least one locale is required")
	}
	defaultLocale = strings.TrimSpace(defaultLocale)

	seen := make(map[string]struct{}, len(locales))
	r := Routing{
		locales: make([]string, 0, len(locales)),
		tags:    make([]language.Tag, 0, len(locales)),
	}
	for _, locale := range locales {
		locale = strings.TrimSpace(locale)
		if locale == "" {
			return Routing{}, errors.New("locale must not be empty")
		}
		if _, dup := seen[locale]; dup {
			return Routing{}, fmt.Errorf("duplicate locale %q", locale)
		}
		tag, err := language.Parse(locale)
		if err != nil {
			return Routing{}, fmt.Errorf("parse locale %q: %w", locale, err)
		}
		seen[locale] = struct{}{}
		r.locales = append(r.locales, locale)
		r.tags = append(r.tags, tag)
	}

	if defaultLocale == "" {
		defaultLocale = r.locales[0]
	}
	defaultIdx := slices.Index(r.locales, defaultLocale)
	if defaultIdx < 0 {
		return Routing{}, fmt.Errorf("default locale %q is not a supported locale", defaultLocale)
	}
	r.defaultLocale = defaultLocale

	// The matcher falls back to its first entry, so the default goes first.
	matchTags := make([]language.Tag, 0, len(r.tags))
	r.matchIndex = make([]int, 0, len(r.tags))
	matchTags = append(matchTags, r.tags[defaultIdx])
	r.matchIndex = append(r.matchIndex, defaultIdx)
	for idx, tag := range r.tags {
		if idx == defaultIdx {
			continue
		}
		matchTags = append(matchTags, tag)
		r.matchIndex = append(r.matchIndex, idx)
	}
	r.matcher = language.NewMatcher(matchTags)
	return r, nil
}

// HasLocale reports whether token is one of the supported locales.
func (r Routing) HasLocale(token string) bool {
	return slices.Contains(r.locales, token)
}

// Locales returns the supported locales in configuration order.
func (r Routing) Locales() []string {
	return slices.Clone(r.locales)
}

// Default returns the default locale.
func (r Routing) Default() string {
	return r.defaultLocale
}

// Tag returns the parsed language tag for a supported locale.
func (r Routing) Tag(token string) (language.Tag, bool) {
	idx := slices.Index(r.locales, token)
	if idx < 0 {
		return language.Und, false
	}
	return r.tags[idx], true
}

// Negotiate picks the best supported locale for an Accept-Language header.
// It returns the default locale when nothing matches.
func (r Routing) Negotiate(acceptLanguage string) string {
	if r.matcher == nil {
		return r.defaultLocale
	}
	acceptLanguage = strings.TrimSpace(acceptLanguage)
	if acceptLanguage == "" {
		return r.defaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return r.defaultLocale
	}
	_, idx, confidence := r.matcher.Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(r.matchIndex) {
		return r.defaultLocale
	}
	return r.locales[r.matchIndex[idx]]
}

// LanguageOption represents a supported locale in a language switcher.
type LanguageOption struct {
	Locale string
	Label  string
	Active bool
}

// LanguageOptions lists supported locales with the active one marked.
// Labels default to the locale's self-name (for example "français").
func (r Routing) LanguageOptions(active string) []LanguageOption {
	options := make([]LanguageOption, 0, len(r.locales))
	for idx, locale := range r.locales {
		options = append(options, LanguageOption{
			Locale: locale,
			Label:  SelfName(r.tags[idx]),
			Active: locale == active,
		})
	}
	return options
}
