package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/louisbranch/localeshell/internal/services/web/platform/logctx"
	"github.com/louisbranch/localeshell/internal/services/web/templates"
)

// Alternate links the current page in another supported locale.
type Alternate struct {
	Locale string
	URL    string
}

// ShellOptions configures one shell render.
type ShellOptions struct {
	Locale              string
	Title               string
	SkipNavigationLabel string
	ProgressLabel       string
	Stylesheets         []string
	Scripts             []string
	Alternates          []Alternate
}

// Shell renders the document shell around the children carried by ctx:
//
//	html[lang] > head, log context scope > body > skip navigation, progress bar, children
func Shell(opts ShellOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		children := templ.GetChildren(ctx)
		ctx = templ.ClearChildren(ctx)

		if err := writeHead(w, opts); err != nil {
			return err
		}

		body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			if _, err := io.WriteString(w, "<body>"); err != nil {
				return err
			}
			if err := templates.SkipNavigation(opts.Locale, opts.SkipNavigationLabel).Render(ctx, w); err != nil {
				return err
			}
			if err := templates.ProgressBar(opts.ProgressLabel).Render(ctx, w); err != nil {
				return err
			}
			if err := children.Render(ctx, w); err != nil {
				return err
			}
			_, err := io.WriteString(w, "</body>")
			return err
		})
		scope := templates.LogContextScope(logctx.KeyScope, "layout", logctx.KeyLocale, opts.Locale)
		if err := scope.Render(templ.WithChildren(ctx, body), w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</html>")
		return err
	})
}

func writeHead(w io.Writer, opts ShellOptions) error {
	var err error
	write := func(s string) {
		if err == nil {
			_, err = io.WriteString(w, s)
		}
	}
	attr := func(name string, value string) {
		write(" " + name + `="` + templ.EscapeString(value) + `"`)
	}

	write("<!doctype html><html")
	attr("lang", opts.Locale)
	write(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
	write(templ.EscapeString(opts.Title))
	write("</title>")
	for _, alt := range opts.Alternates {
		write(`<link rel="alternate"`)
		attr("hreflang", alt.Locale)
		attr("href", alt.URL)
		write(">")
	}
	for _, href := range opts.Stylesheets {
		write(`<link rel="stylesheet"`)
		attr("href", href)
		write(">")
	}
	for _, src := range opts.Scripts {
		write("<script")
		attr("src", src)
		write(" defer></script>")
	}
	write("</head>")
	return err
}
