// Package branding holds product naming shared by page titles and logs.
package branding

import "strings"

// AppName is the product name appended to document titles.
const AppName = "Localeshell"

// ComposeTitle joins a page title with the product name.
//
// An empty page title yields the product name alone, and a title that
// already ends with the product name is returned unchanged.
func ComposeTitle(pageTitle string) string {
	pageTitle = strings.TrimSpace(pageTitle)
	if pageTitle == "" {
		return AppName
	}
	if pageTitle == AppName || strings.HasSuffix(pageTitle, " | "+AppName) {
		return pageTitle
	}
	if trimmed, ok := strings.CutSuffix(pageTitle, " - "+AppName); ok {
		pageTitle = strings.TrimSpace(trimmed)
	}
	return pageTitle + " | " + AppName
}
