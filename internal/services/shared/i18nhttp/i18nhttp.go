// Package i18nhttp resolves locale preferences carried by HTTP requests.
package i18nhttp

import (
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/localeshell/internal/services/web/routepath"
)

// LocaleCookieName stores the user's last visited locale.
const LocaleCookieName = "ls_locale"

// Routing is the subset of the routing table used to resolve preferences.
type Routing interface {
	HasLocale(token string) bool
	Negotiate(acceptLanguage string) string
}

// ResolveLocale picks the locale for a request without a locale segment:
// a supported cookie wins, then Accept-Language negotiation.
func ResolveLocale(r *http.Request, routing Routing) string {
	if r == nil || routing == nil {
		return ""
	}
	if cookie, err := r.Cookie(LocaleCookieName); err == nil {
		if value := strings.TrimSpace(cookie.Value); routing.HasLocale(value) {
			return value
		}
	}
	return routing.Negotiate(r.Header.Get("Accept-Language"))
}

// SetLocaleCookie persists the locale on the response.
func SetLocaleCookie(w http.ResponseWriter, locale string) {
	if w == nil || strings.TrimSpace(locale) == "" {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LocaleCookieName,
		Value:    locale,
		Path:     routepath.Root,
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// RedirectToLocale sends a temporary redirect to path under the resolved
// locale, preserving the query string.
func RedirectToLocale(w http.ResponseWriter, r *http.Request, routing Routing, slug string) {
	locale := ResolveLocale(r, routing)
	target := routepath.LocalePage(locale, slug)
	if r != nil && r.URL != nil && r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	w.Header().Set("Vary", "Accept-Language, Cookie")
	http.Redirect(w, r, target, http.StatusTemporaryRedirect)
}
