// Package templates holds the templ components of the web GUI. The .templ
// files are the source; each *_templ.go file renders the same markup and is
// replaced by `go generate`.
package templates

//go:generate go tool templ generate

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter writes markup to w and remembers the first error, so component
// bodies can be written as straight-line code.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

// raw writes trusted markup.
func (hw *htmlWriter) raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

// text writes escaped text content.
func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (hw *htmlWriter) attr(name, value string) {
	hw.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// flag writes a boolean attribute when on is true.
func (hw *htmlWriter) flag(name string, on bool) {
	if on {
		hw.raw(" " + name)
	}
}

// render writes a child component.
func (hw *htmlWriter) render(c templ.Component) {
	if hw.err != nil || c == nil {
		return
	}
	hw.err = c.Render(hw.ctx, hw.w)
}

// component adapts a write function into a templ.Component.
func component(fn func(hw *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newWriter(ctx, w)
		fn(hw)
		return hw.err
	})
}
