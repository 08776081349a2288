// Package templates holds the HTML components of the quotation desk.
// Components are templ.Components so handlers render them the same way
// whether they are a full page or an HTMX partial.
package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// htmlWriter writes markup and remembers the first write error.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newHTMLWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// printf writes format with args as given. Callers escape dynamic values.
func (h *htmlWriter) printf(format string, args ...any) {
	if h.err != nil {
		return
	}
	_, h.err = fmt.Fprintf(h.w, format, args...)
}

// text writes s escaped.
func (h *htmlWriter) text(s string) {
	h.raw(esc(s))
}

func (h *htmlWriter) render(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

func esc(s string) string {
	return templ.EscapeString(s)
}

// href returns an escaped attribute value for a URL, dropping unsafe schemes.
func href(u string) string {
	return esc(string(templ.URL(u)))
}

// multiline escapes s and keeps its line breaks.
func multiline(s string) string {
	return strings.ReplaceAll(esc(s), "\n", "<br>")
}

func selected(ok bool) string {
	if ok {
		return " selected"
	}
	return ""
}

func checked(ok bool) string {
	if ok {
		return " checked"
	}
	return ""
}
