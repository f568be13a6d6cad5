package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// NotFoundOptions configures the standalone not-found document.
type NotFoundOptions struct {
	Locale     string
	Title      string
	Message    string
	HomeLabel  string
	HomeURL    string
	Stylesheet string
}

// NotFoundDocument renders a complete HTML document for missing resources.
// It does not use the localized shell.
func NotFoundDocument(opts NotFoundOptions) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw("<!doctype html><html")
		hw.attr("lang", opts.Locale)
		hw.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><meta name="robots" content="noindex"><title>`)
		hw.text(opts.Title)
		hw.raw("</title>")
		if opts.Stylesheet != "" {
			hw.raw(`<link rel="stylesheet"`)
			hw.attr("href", opts.Stylesheet)
			hw.raw(">")
		}
		hw.raw(`</head><body><main class="page page--not-found"`)
		hw.attr("id", MainContentID)
		hw.raw("><h1>")
		hw.text(opts.Title)
		hw.raw("</h1><p>")
		hw.text(opts.Message)
		hw.raw("</p>")
		if opts.HomeURL != "" {
			hw.raw("<a")
			hw.attr("href", opts.HomeURL)
			hw.raw(">")
			hw.text(opts.HomeLabel)
			hw.raw("</a>")
		}
		hw.raw("</main></body></html>")
		return hw.err
	})
}
