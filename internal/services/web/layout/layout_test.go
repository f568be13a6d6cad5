package layout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	platformi18n "github.com/louisbranch/localeshell/internal/platform/i18n"
	apperrors "github.com/louisbranch/localeshell/internal/services/web/platform/errors"
	"github.com/louisbranch/localeshell/internal/services/web/platform/logctx"
	"github.com/louisbranch/localeshell/internal/services/web/templates"
)

type fakeTranslator map[string]map[string]string

func (f fakeTranslator) T(locale string, key string) string {
	if msg, ok := f[locale][key]; ok {
		return msg
	}
	return key
}

var testMessages = fakeTranslator{
	"en": {"shell.skip_navigation": "Skip to main content", "shell.progress": "Loading"},
	"fr": {"shell.skip_navigation": "Aller au contenu principal", "shell.progress": "Chargement"},
}

func testLayout(t *testing.T) Layout {
	t.Helper()
	routing, err := platformi18n.NewRouting([]string{"en", "fr"}, "en")
	if err != nil {
		t.Fatalf("NewRouting() = %v", err)
	}
	return Layout{
		Locales:     routing,
		Messages:    testMessages,
		Stylesheets: []string{"/static/globals.css"},
		Scripts:     []string{"/static/progress.js"},
	}
}

func pageContent(locale string) (Content, error) {
	return Content{
		Title: "Home",
		Body:  templates.MainContent("Hello "+locale, "lead"),
	}, nil
}

func render(t *testing.T, l Layout, ctx context.Context, token string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := l.Render(ctx, &buf, StaticParams(token), pageContent); err != nil {
		t.Fatalf("Render(%q) = %v", token, err)
	}
	return buf.String()
}

func parseDocument(t *testing.T, doc string) *html.Node {
	t.Helper()
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return root
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func elementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

func TestRenderSupportedLocaleSetsLang(t *testing.T) {
	t.Parallel()

	l := testLayout(t)
	for _, token := range []string{"en", "fr"} {
		doc := parseDocument(t, render(t, l, context.Background(), token))
		root := findElement(doc, "html")
		if got := attrValue(root, "lang"); got != token {
			t.Fatalf("html lang = %q, want %q", got, token)
		}
		skip := findElement(doc, "a")
		if got := attrValue(skip, "data-locale"); got != token {
			t.Fatalf("skip navigation locale = %q, want %q", got, token)
		}
	}
}

func TestRenderFrenchUsesLocalizedAffordances(t *testing.T) {
	t.Parallel()

	out := render(t, testLayout(t), context.Background(), "fr")
	if !strings.Contains(out, `<html lang="fr">`) {
		t.Fatalf("expected lang=fr root, got %q", out)
	}
	if !strings.Contains(out, `data-locale="fr">Aller au contenu principal</a>`) {
		t.Fatalf("expected localized skip navigation, got %q", out)
	}
	if !strings.Contains(out, `aria-label="Chargement"`) {
		t.Fatalf("expected localized progress label, got %q", out)
	}
	if !strings.Contains(out, "<title>Home | ") {
		t.Fatalf("expected composed title, got %q", out)
	}
}

func TestRenderUnsupportedLocaleWritesNothing(t *testing.T) {
	t.Parallel()

	l := testLayout(t)
	for _, token := range []string{"de", "FR", "fr-CA", ""} {
		var buf bytes.Buffer
		called := false
		err := l.Render(context.Background(), &buf, StaticParams(token), func(string) (Content, error) {
			called = true
			return Content{}, nil
		})
		if !errors.Is(err, ErrUnsupportedLocale) {
			t.Fatalf("Render(%q) error = %v, want ErrUnsupportedLocale", token, err)
		}
		if got := apperrors.HTTPStatus(err); got != http.StatusNotFound {
			t.Fatalf("HTTPStatus = %d, want %d", got, http.StatusNotFound)
		}
		if buf.Len() != 0 {
			t.Fatalf("Render(%q) wrote %q, want nothing", token, buf.String())
		}
		if called {
			t.Fatalf("Render(%q) resolved content for an unsupported locale", token)
		}
	}
}

func TestRenderContentErrorWritesNothing(t *testing.T) {
	t.Parallel()

	want := apperrors.E(apperrors.KindNotFound, "no such page")
	var buf bytes.Buffer
	err := testLayout(t).Render(context.Background(), &buf, StaticParams("en"), func(string) (Content, error) {
		return Content{}, want
	})
	if !errors.Is(err, want) {
		t.Fatalf("Render() error = %v, want %v", err, want)
	}
	if buf.Len() != 0 {
		t.Fatalf("Render() wrote %q, want nothing", buf.String())
	}
}

func TestShellOrdersAffordancesBeforeChildren(t *testing.T) {
	t.Parallel()

	doc := parseDocument(t, render(t, testLayout(t), context.Background(), "en"))
	body := findElement(doc, "body")
	if body == nil {
		t.Fatal("expected body element")
	}
	children := elementChildren(body)
	if len(children) != 3 {
		t.Fatalf("body children = %d, want 3", len(children))
	}
	if children[0].Data != "a" || attrValue(children[0], "class") != "skip-navigation" {
		t.Fatalf("first body child = <%s class=%q>, want skip navigation", children[0].Data, attrValue(children[0], "class"))
	}
	if got := attrValue(children[0], "href"); got != "#"+templates.MainContentID {
		t.Fatalf("skip navigation href = %q", got)
	}
	if attrValue(children[1], "id") != templates.ProgressBarID {
		t.Fatalf("second body child id = %q, want %q", attrValue(children[1], "id"), templates.ProgressBarID)
	}
	if children[2].Data != "main" || attrValue(children[2], "id") != templates.MainContentID {
		t.Fatalf("third body child = <%s id=%q>, want page content", children[2].Data, attrValue(children[2], "id"))
	}
}

func TestShellHeadCarriesAssetsAndAlternates(t *testing.T) {
	t.Parallel()

	l := testLayout(t)
	var buf bytes.Buffer
	err := l.Render(context.Background(), &buf, StaticParams("en"), func(string) (Content, error) {
		return Content{
			Title:      "About",
			Alternates: []Alternate{{Locale: "fr", URL: "/fr/about"}},
		}, nil
	})
	if err != nil {
		t.Fatalf("Render() = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`<link rel="alternate" hreflang="fr" href="/fr/about">`,
		`<link rel="stylesheet" href="/static/globals.css">`,
		`<script src="/static/progress.js" defer></script>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in head, got %q", want, out)
		}
	}
}

type scopeProbe struct {
	logger *slog.Logger
}

func (p *scopeProbe) Render(ctx context.Context, w io.Writer) error {
	p.logger = logctx.FromContext(ctx)
	p.logger.Debug("child rendered")
	_, err := io.WriteString(w, `<main id="main-content"></main>`)
	return err
}

func TestShellScopesLoggerOverAffordancesAndChildren(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := logctx.WithLogger(context.Background(), base)

	probe := &scopeProbe{}
	var buf bytes.Buffer
	err := testLayout(t).Render(ctx, &buf, StaticParams("fr"), func(string) (Content, error) {
		return Content{Title: "Probe", Body: probe}, nil
	})
	if err != nil {
		t.Fatalf("Render() = %v", err)
	}
	if probe.logger == nil || probe.logger == base {
		t.Fatal("children did not receive a scoped logger")
	}

	seen := map[string]bool{}
	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		record := map[string]any{}
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		if record[logctx.KeyScope] != "layout" || record[logctx.KeyLocale] != "fr" {
			t.Fatalf("record outside layout scope: %v", record)
		}
		seen[record["msg"].(string)] = true
	}
	for _, msg := range []string{"render skip navigation", "render progress bar", "child rendered"} {
		if !seen[msg] {
			t.Fatalf("expected scoped record %q, got %v", msg, seen)
		}
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	t.Parallel()

	l := testLayout(t)
	first := render(t, l, context.Background(), "fr")
	second := render(t, l, context.Background(), "fr")
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("render output changed between runs (-first +second):\n%s", diff)
	}
}

func TestShellEscapesUserFacingText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := ShellOptions{Locale: `en"x`, Title: "<script>", SkipNavigationLabel: "a&b"}
	if err := Shell(opts).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Shell().Render() = %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<script>") || strings.Contains(out, `lang="en"x"`) {
		t.Fatalf("expected escaped output, got %q", out)
	}
	if !strings.Contains(out, "a&amp;b") {
		t.Fatalf("expected escaped label, got %q", out)
	}
}

func TestShellWithoutChildrenRendersEmptyBody(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Shell(ShellOptions{Locale: "en"}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Shell().Render() = %v", err)
	}
	if !strings.HasSuffix(buf.String(), "</div></div></body></html>") {
		t.Fatalf("unexpected document tail: %q", buf.String())
	}
}

func TestResolveParams(t *testing.T) {
	t.Parallel()

	if _, err := ResolveParams(context.Background(), nil); err == nil {
		t.Fatal("expected nil params error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ResolveParams(ctx, StaticParams("en")); !errors.Is(err, context.Canceled) {
		t.Fatalf("ResolveParams(canceled) = %v, want context.Canceled", err)
	}

	token, err := ResolveParams(context.Background(), StaticParams("fr"))
	if err != nil || token != "fr" {
		t.Fatalf("ResolveParams() = %q, %v, want fr, nil", token, err)
	}
}

type failingParams struct{}

func (failingParams) Locale(context.Context) (string, error) {
	return "", errors.New("boom")
}

func TestRenderPropagatesParamErrorsWithoutNotFound(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := testLayout(t).Render(context.Background(), &buf, failingParams{}, pageContent)
	if err == nil || errors.Is(err, ErrUnsupportedLocale) {
		t.Fatalf("Render() error = %v, want param resolution error", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("Render() wrote %q", buf.String())
	}
}

func TestRequestParamsReadsPathValue(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/fr/", nil)
	req.SetPathValue(LocaleParam, "fr")
	token, err := ResolveParams(context.Background(), RequestParams{Request: req})
	if err != nil || token != "fr" {
		t.Fatalf("ResolveParams() = %q, %v, want fr, nil", token, err)
	}
	if _, err := ResolveParams(context.Background(), RequestParams{}); err == nil {
		t.Fatal("expected missing request error")
	}
}

func TestGuardRejectsNilSet(t *testing.T) {
	t.Parallel()

	if err := Guard(nil, "en"); !errors.Is(err, ErrUnsupportedLocale) {
		t.Fatalf("Guard(nil) = %v, want ErrUnsupportedLocale", err)
	}
}

func TestRenderNilBodyRendersShellOnly(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := testLayout(t).Render(context.Background(), &buf, StaticParams("en"), func(string) (Content, error) {
		return Content{Title: "Empty"}, nil
	})
	if err != nil {
		t.Fatalf("Render() = %v", err)
	}
	if !strings.Contains(buf.String(), "<body>") {
		t.Fatalf("expected shell body, got %q", buf.String())
	}
}

var _ templ.Component = (*scopeProbe)(nil)
