// Package weberror renders localized error responses for the web service.
package weberror

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/louisbranch/localeshell/internal/platform/i18n/catalog"
	apperrors "github.com/louisbranch/localeshell/internal/services/web/platform/errors"
	"github.com/louisbranch/localeshell/internal/services/web/platform/httpx"
	"github.com/louisbranch/localeshell/internal/services/web/platform/logctx"
	"github.com/louisbranch/localeshell/internal/services/web/routepath"
	"github.com/louisbranch/localeshell/internal/services/web/templates"
)

// Translator resolves UI copy for a locale.
type Translator interface {
	T(locale string, key string) string
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(tr Translator, locale string, err error) string {
	if err == nil {
		return ""
	}
	if tr != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(tr.T(locale, key)); localized != "" && localized != key {
				return localized
			}
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	return http.StatusText(statusCode)
}

// WriteNotFound writes the standalone not-found document in locale.
func WriteNotFound(w http.ResponseWriter, r *http.Request, tr Translator, locale string) {
	if w == nil {
		return
	}
	translate := func(key string) string {
		if tr == nil {
			return key
		}
		return tr.T(locale, key)
	}
	doc := templates.NotFoundDocument(templates.NotFoundOptions{
		Locale:     locale,
		Title:      translate(catalog.KeyNotFoundTitle),
		Message:    translate(catalog.KeyNotFoundBody),
		HomeLabel:  translate(catalog.KeyNotFoundHome),
		HomeURL:    routepath.LocaleRoot(locale),
		Stylesheet: routepath.Stylesheet,
	})
	var buf bytes.Buffer
	if err := doc.Render(httpx.RequestContext(r), &buf); err != nil {
		logctx.FromContext(httpx.RequestContext(r)).Error("render not found document", "error", err)
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	_ = httpx.WriteHTML(w, http.StatusNotFound, buf.Bytes())
}

// WriteError maps err to a response. Not-found errors get the not-found
// document; everything else gets a generic localized message so internal
// error text never reaches the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error, tr Translator, locale string) {
	if w == nil || err == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode == http.StatusNotFound {
		WriteNotFound(w, r, tr, locale)
		return
	}
	logger := logctx.FromContext(httpx.RequestContext(r))
	if statusCode >= http.StatusInternalServerError {
		logger.Error("request failed", "error", err, "status", statusCode)
	} else {
		logger.Warn("request rejected", "error", err, "status", statusCode)
	}
	_ = httpx.WriteText(w, statusCode, PublicMessage(tr, locale, err))
}
