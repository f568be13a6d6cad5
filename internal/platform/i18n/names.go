package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// SelfName returns the name of a language in that language.
func SelfName(tag language.Tag) string {
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return tag.String()
}
