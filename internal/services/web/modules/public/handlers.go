package public

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/a-h/templ"

	platformi18n "github.com/louisbranch/localeshell/internal/platform/i18n"
	"github.com/louisbranch/localeshell/internal/platform/i18n/catalog"
	"github.com/louisbranch/localeshell/internal/services/shared/i18nhttp"
	"github.com/louisbranch/localeshell/internal/services/web/layout"
	"github.com/louisbranch/localeshell/internal/services/web/pages"
	apperrors "github.com/louisbranch/localeshell/internal/services/web/platform/errors"
	"github.com/louisbranch/localeshell/internal/services/web/platform/httpx"
	"github.com/louisbranch/localeshell/internal/services/web/platform/logctx"
	"github.com/louisbranch/localeshell/internal/services/web/platform/weberror"
	"github.com/louisbranch/localeshell/internal/services/web/routepath"
	"github.com/louisbranch/localeshell/internal/services/web/templates"
)

var errPageNotFound = apperrors.EK(apperrors.KindNotFound, catalog.KeyNotFoundTitle, "page not found")

type handlers struct {
	routing  platformi18n.Routing
	messages Translator
	pages    *pages.Registry
	layout   layout.Layout
}

func (h handlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	i18nhttp.RedirectToLocale(w, r, h.routing, "")
}

func (h handlers) handleLocaleRoot(w http.ResponseWriter, r *http.Request) {
	locale := r.PathValue(layout.LocaleParam)
	if err := layout.Guard(h.routing, locale); err != nil {
		h.writeError(w, r, err)
		return
	}
	http.Redirect(w, r, routepath.LocaleRoot(locale), http.StatusPermanentRedirect)
}

func (h handlers) handlePage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := h.layout.Render(r.Context(), &buf, layout.RequestParams{Request: r}, func(locale string) (layout.Content, error) {
		page, ok := h.pages.Lookup(r.PathValue("page"))
		if !ok {
			return layout.Content{}, errPageNotFound
		}
		return h.content(page, locale), nil
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	i18nhttp.SetLocaleCookie(w, r.PathValue(layout.LocaleParam))
	if err := httpx.WriteHTML(w, http.StatusOK, buf.Bytes()); err != nil {
		logctx.FromContext(r.Context()).Warn("write page response", "error", err)
	}
}

func (h handlers) content(page pages.Page, locale string) layout.Content {
	options := h.routing.LanguageOptions(locale)
	links := make([]templates.LanguageLink, 0, len(options))
	alternates := make([]layout.Alternate, 0, len(options))
	for _, option := range options {
		url := routepath.LocalePage(option.Locale, page.Slug)
		links = append(links, templates.LanguageLink{
			Locale: option.Locale,
			Label:  option.Label,
			URL:    url,
			Active: option.Active,
		})
		if !option.Active {
			alternates = append(alternates, layout.Alternate{Locale: option.Locale, URL: url})
		}
	}
	var nav templ.Component = templates.LanguageNav(h.messages.T(locale, catalog.KeyLanguages), links)
	return layout.Content{
		Title:      page.Title(h.messages, locale),
		Alternates: alternates,
		Body:       page.Body(h.messages, locale, nav),
	}
}

// writeError answers in the requested locale when it is supported, and in the
// visitor's preferred locale otherwise.
func (h handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	locale := r.PathValue(layout.LocaleParam)
	if !h.routing.HasLocale(locale) {
		locale = i18nhttp.ResolveLocale(r, h.routing)
	}
	logger := logctx.FromContext(r.Context())
	if errors.Is(err, layout.ErrUnsupportedLocale) || errors.Is(err, errPageNotFound) {
		logger.Debug("locale page not found", "error", err)
	}
	weberror.WriteError(w, r, err, h.messages, locale)
}
