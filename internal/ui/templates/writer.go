package templates

import (
	"io"

	"github.com/a-h/templ"
)

// htmlWriter writes html fragments, recording the first write error.
// Subsequent writes are skipped once an error has occurred.
type htmlWriter struct {
	w   io.Writer
	err error
}

func newHTMLWriter(w io.Writer) *htmlWriter {
	return &htmlWriter{w: w}
}

// raw writes trusted markup
func (hw *htmlWriter) raw(s ...string) {
	for _, v := range s {
		if hw.err != nil {
			return
		}
		_, hw.err = io.WriteString(hw.w, v)
	}
}

// text writes escaped text (also safe for quoted attribute values)
func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

func (hw *htmlWriter) attr(name, value string) {
	hw.raw(" ", name, "=\"")
	hw.text(value)
	hw.raw("\"")
}
