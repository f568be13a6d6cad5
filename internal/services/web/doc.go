// Package web serves the localized site: every page below a supported locale
// is rendered inside the shared document shell, and unsupported locales get a
// standalone not-found document.
package web
