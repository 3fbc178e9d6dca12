package richtext

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var editorPolicy = newEditorPolicy()

// newEditorPolicy allows exactly the markup the description editor produces.
func newEditorPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	// Chrome's contenteditable wraps new lines in div.
	p.AllowElements("p", "div", "br", "strong", "b", "em", "i", "u", "s", "strike", "del",
		"h1", "h2", "h3", "ul", "ol", "li", "blockquote", "code", "pre")
	p.AllowStyles("text-align").
		MatchingEnum("left", "center", "right", "justify").
		OnElements("p", "div", "h1", "h2", "h3", "li", "blockquote")
	p.AllowAttrs("href").OnElements("a")
	p.AllowElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireNoFollowOnLinks(true)
	return p
}

// Sanitize strips everything the editor cannot produce. Input without any
// visible text sanitises to the empty string.
func Sanitize(src string) string {
	clean := strings.TrimSpace(editorPolicy.Sanitize(src))
	if IsBlank(clean) {
		return ""
	}
	return clean
}

// IsBlank reports whether the HTML carries no visible text.
func IsBlank(src string) bool {
	return strings.TrimSpace(PlainText(src)) == ""
}
