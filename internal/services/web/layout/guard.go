// Package layout guards the locale route segment and composes the localized
// document shell around page content.
package layout

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/louisbranch/localeshell/internal/platform/i18n/catalog"
	apperrors "github.com/louisbranch/localeshell/internal/services/web/platform/errors"
)

// LocaleParam names the route wildcard holding the locale token.
const LocaleParam = "locale"

// ErrUnsupportedLocale reports a locale token outside the supported set.
// It maps to a not-found response.
var ErrUnsupportedLocale = apperrors.EK(apperrors.KindNotFound, catalog.KeyNotFoundTitle, "unsupported locale")

// LocaleSet is the membership test the guard consults.
type LocaleSet interface {
	HasLocale(token string) bool
}

// Params supplies the locale token for one render.
type Params interface {
	Locale(ctx context.Context) (string, error)
}

// StaticParams is a locale token known ahead of the render.
type StaticParams string

// Locale returns the token.
func (p StaticParams) Locale(context.Context) (string, error) {
	return string(p), nil
}

// RequestParams reads the locale token from a routed request's path.
type RequestParams struct {
	Request *http.Request
	// Name overrides the wildcard name. Defaults to LocaleParam.
	Name string
}

// Locale returns the path value for the locale wildcard.
func (p RequestParams) Locale(context.Context) (string, error) {
	if p.Request == nil {
		return "", errors.New("request is required")
	}
	name := p.Name
	if name == "" {
		name = LocaleParam
	}
	return p.Request.PathValue(name), nil
}

// ResolveParams resolves the locale token before the guard runs.
func ResolveParams(ctx context.Context, params Params) (string, error) {
	if params == nil {
		return "", errors.New("params are required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	token, err := params.Locale(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve locale param: %w", err)
	}
	return token, nil
}

// Guard checks token against the supported set. A miss returns an error
// wrapping ErrUnsupportedLocale.
func Guard(locales LocaleSet, token string) error {
	if locales == nil || !locales.HasLocale(token) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLocale, token)
	}
	return nil
}
