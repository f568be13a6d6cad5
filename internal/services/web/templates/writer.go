package templates

import (
	"io"

	"github.com/a-h/templ"
)

// htmlWriter accumulates the first write error so markup can be emitted
// as a flat sequence of writes.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (hw *htmlWriter) raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with the value escaped.
func (hw *htmlWriter) attr(name string, value string) {
	hw.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}
