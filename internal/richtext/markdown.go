package richtext

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var mdRenderer = goldmark.New(goldmark.WithExtensions(extension.Strikethrough))

// FromMarkdown converts a pasted markdown description to editor HTML.
// Returns empty string for empty input.
func FromMarkdown(src string) string {
	if src == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(src), &buf); err != nil {
		return Sanitize(src)
	}

	return Sanitize(buf.String())
}
