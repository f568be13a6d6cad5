package i18n

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
)

func mustRouting(t *testing.T, locales []string, def string) Routing {
	t.Helper()
	r, err := NewRouting(locales, def)
	if err != nil {
		t.Fatalf("NewRouting(%v, %q) = %v", locales, def, err)
	}
	return r
}

func TestNewRoutingRejectsInvalidTables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		locales []string
		def     string
	}{
		{name: "empty", locales: nil, def: ""},
		{name: "blank entry", locales: []string{"en", " "}, def: "en"},
		{name: "duplicate", locales: []string{"en", "en"}, def: "en"},
		{name: "unparseable", locales: []string{"en", "not a tag!"}, def: "en"},
		{name: "default missing", locales: []string{"en", "fr"}, def: "de"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewRouting(tc.locales, tc.def); err == nil {
				t.Fatalf("NewRouting(%v, %q) error = nil, want error", tc.locales, tc.def)
			}
		})
	}
}

func TestNewRoutingDefaultsToFirstLocale(t *testing.T) {
	t.Parallel()

	r := mustRouting(t, []string{"fr", "en"}, "")
	if got := r.Default(); got != "fr" {
		t.Fatalf("Default() = %q, want %q", got, "fr")
	}
}

func TestHasLocaleIsExact(t *testing.T) {
	t.Parallel()

	r := mustRouting(t, []string{"en", "fr"}, "en")
	tests := []struct {
		token string
		want  bool
	}{
		{token: "en", want: true},
		{token: "fr", want: true},
		{token: "de", want: false},
		{token: "FR", want: false},
		{token: "fr-CA", want: false},
		{token: " fr", want: false},
		{token: "", want: false},
	}
	for _, tc := range tests {
		if got := r.HasLocale(tc.token); got != tc.want {
			t.Fatalf("HasLocale(%q) = %t, want %t", tc.token, got, tc.want)
		}
	}
}

func TestLocalesReturnsCopy(t *testing.T) {
	t.Parallel()

	r := mustRouting(t, []string{"en", "fr"}, "en")
	locales := r.Locales()
	locales[0] = "xx"
	if diff := cmp.Diff([]string{"en", "fr"}, r.Locales()); diff != "" {
		t.Fatalf("Locales mutated (-want +got):\n%s", diff)
	}
}

func TestTag(t *testing.T) {
	t.Parallel()

	r := mustRouting(t, []string{"en", "fr"}, "en")
	tag, ok := r.Tag("fr")
	if !ok || tag != language.French {
		t.Fatalf("Tag(fr) = %v, %t, want %v, true", tag, ok, language.French)
	}
	if _, ok := r.Tag("de"); ok {
		t.Fatal("Tag(de) ok = true, want false")
	}
}

func TestNegotiate(t *testing.T) {
	t.Parallel()

	r := mustRouting(t, []string{"en", "fr", "ko"}, "en")
	tests := []struct {
		header string
		want   string
	}{
		{header: "", want: "en"},
		{header: "fr-CA,fr;q=0.9,en;q=0.5", want: "fr"},
		{header: "ko-KR", want: "ko"},
		{header: "de-DE", want: "en"},
		{header: "de;q=0.9,fr;q=0.2", want: "fr"},
		{header: ";;;", want: "en"},
	}
	for _, tc := range tests {
		if got := r.Negotiate(tc.header); got != tc.want {
			t.Fatalf("Negotiate(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}

func TestNegotiateFallsBackToConfiguredDefault(t *testing.T) {
	t.Parallel()

	r := mustRouting(t, []string{"en", "fr"}, "fr")
	if got := r.Negotiate("ja"); got != "fr" {
		t.Fatalf("Negotiate(ja) = %q, want %q", got, "fr")
	}
}

func TestLanguageOptions(t *testing.T) {
	t.Parallel()

	r := mustRouting(t, []string{"en", "fr"}, "en")
	got := r.LanguageOptions("fr")
	want := []LanguageOption{
		{Locale: "en", Label: "English", Active: false},
		{Locale: "fr", Label: "français", Active: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("LanguageOptions mismatch (-want +got):\n%s", diff)
	}
}
