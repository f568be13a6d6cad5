package layout

import (
	"context"
	"errors"
	"io"

	"github.com/a-h/templ"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/localeshell/internal/platform/branding"
	"github.com/louisbranch/localeshell/internal/platform/i18n/catalog"
)

const tracerName = "github.com/louisbranch/localeshell/internal/services/web/layout"

// Translator resolves UI copy for a locale.
type Translator interface {
	T(locale string, key string) string
}

// Content is the page rendered inside the shell.
type Content struct {
	Title      string
	Alternates []Alternate
	Body       templ.Component
}

// ContentFunc resolves page content for a validated locale.
type ContentFunc func(locale string) (Content, error)

// Layout binds the guard and shell to a routing table and message catalog.
type Layout struct {
	Locales     LocaleSet
	Messages    Translator
	Stylesheets []string
	Scripts     []string
}

// Render resolves the locale token, guards it, resolves content and renders
// the shell. Nothing is written to w unless every step before the shell
// succeeds.
func (l Layout) Render(ctx context.Context, w io.Writer, params Params, content ContentFunc) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := otel.Tracer(tracerName).Start(ctx, "layout.render", trace.WithSpanKind(trace.SpanKindInternal))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	token, err := ResolveParams(ctx, params)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.String("layout.locale", token))
	if err := Guard(l.Locales, token); err != nil {
		return err
	}
	if content == nil {
		return errors.New("content resolver is required")
	}
	page, err := content(token)
	if err != nil {
		return err
	}

	body := page.Body
	if body == nil {
		body = templ.NopComponent
	}
	return Shell(l.Options(token, page)).Render(templ.WithChildren(ctx, body), w)
}

// Options builds localized shell options for a validated locale.
func (l Layout) Options(locale string, page Content) ShellOptions {
	return ShellOptions{
		Locale:              locale,
		Title:               branding.ComposeTitle(page.Title),
		SkipNavigationLabel: l.translate(locale, catalog.KeySkipNavigation),
		ProgressLabel:       l.translate(locale, catalog.KeyProgress),
		Stylesheets:         l.Stylesheets,
		Scripts:             l.Scripts,
		Alternates:          page.Alternates,
	}
}

func (l Layout) translate(locale string, key string) string {
	if l.Messages == nil {
		return key
	}
	return l.Messages.T(locale, key)
}
