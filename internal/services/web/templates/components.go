// Package templates renders the web shell's leaf components and standalone
// documents.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/louisbranch/localeshell/internal/services/web/platform/logctx"
)

// MainContentID is the fragment the skip-navigation link targets. Pages must
// render their primary region with this id.
const MainContentID = "main-content"

// ProgressBarID identifies the progress indicator for static/progress.js.
const ProgressBarID = "progress-bar"

// SkipNavigation renders a link that jumps past the shell to the main content.
func SkipNavigation(locale string, label string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		logctx.FromContext(ctx).Debug("render skip navigation", "component", "skip_navigation")
		hw := &htmlWriter{w: w}
		hw.raw(`<a class="skip-navigation"`)
		hw.attr("href", "#"+MainContentID)
		hw.attr("data-locale", locale)
		hw.raw(">")
		hw.text(label)
		hw.raw("</a>")
		return hw.err
	})
}

// ProgressBar renders the navigation progress indicator. It starts idle and
// hidden; static/progress.js drives it during page transitions.
func ProgressBar(label string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		logctx.FromContext(ctx).Debug("render progress bar", "component", "progress_bar")
		hw := &htmlWriter{w: w}
		hw.raw(`<div class="progress-bar" role="progressbar" aria-hidden="true" aria-valuemin="0" aria-valuemax="100" data-state="idle"`)
		hw.attr("id", ProgressBarID)
		hw.attr("aria-label", label)
		hw.raw(`><div class="progress-bar__fill"></div></div>`)
		return hw.err
	})
}

// LogContextScope renders its children with a child logging scope derived
// from the context's logger and carrying attrs. It emits no markup.
func LogContextScope(attrs ...any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		children := templ.GetChildren(ctx)
		scoped, logger := logctx.With(templ.ClearChildren(ctx), attrs...)
		logger.Debug("log context scope opened")
		return children.Render(scoped, w)
	})
}

// LanguageLink is one entry in a language switcher.
type LanguageLink struct {
	Locale string
	Label  string
	URL    string
	Active bool
}

// LanguageNav renders a language switcher.
func LanguageNav(label string, links []LanguageLink) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if len(links) == 0 {
			return nil
		}
		hw := &htmlWriter{w: w}
		hw.raw(`<nav class="language-nav"`)
		hw.attr("aria-label", label)
		hw.raw("><ul>")
		for _, link := range links {
			hw.raw("<li><a")
			hw.attr("href", link.URL)
			hw.attr("hreflang", link.Locale)
			hw.attr("lang", link.Locale)
			if link.Active {
				hw.raw(` aria-current="true"`)
			}
			hw.raw(">")
			hw.text(link.Label)
			hw.raw("</a></li>")
		}
		hw.raw("</ul></nav>")
		return hw.err
	})
}

// MainContent renders the page's primary region with a heading, a lead
// paragraph and any extra components.
func MainContent(heading string, lead string, extra ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<main class="page"`)
		hw.attr("id", MainContentID)
		hw.raw(` tabindex="-1"><h1>`)
		hw.text(heading)
		hw.raw("</h1>")
		if lead != "" {
			hw.raw("<p>")
			hw.text(lead)
			hw.raw("</p>")
		}
		if hw.err != nil {
			return hw.err
		}
		for _, component := range extra {
			if component == nil {
				continue
			}
			if err := component.Render(ctx, w); err != nil {
				return err
			}
		}
		hw.raw("</main>")
		return hw.err
	})
}
