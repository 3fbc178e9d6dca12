package richtext

import (
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

var markTags = map[string]Format{
	"strong": FormatBold,
	"b":      FormatBold,
	"em":     FormatItalic,
	"i":      FormatItalic,
	"u":      FormatUnderline,
	"s":      FormatStrike,
	"strike": FormatStrike,
	"del":    FormatStrike,
}

var alignFormats = map[string]Format{
	"left":    FormatAlignLeft,
	"center":  FormatAlignCenter,
	"right":   FormatAlignRight,
	"justify": FormatAlignJustify,
}

var voidTags = map[string]bool{
	"br": true, "img": true, "hr": true, "input": true, "wbr": true,
}

type openElement struct {
	tag   string
	align string
}

// ActiveFormats returns the formats in effect for the character before the
// caret, where caret counts runes of visible text. A caret at 0 reads the
// first character. Paragraphs without an explicit alignment are left aligned.
func ActiveFormats(src string, caret int) map[Format]bool {
	if caret < 0 {
		caret = 0
	}

	var stack []openElement
	var found []openElement
	pos := 0
	matched := false

	z := html.NewTokenizer(strings.NewReader(src))
	for !matched {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return formatsOf(nil)
			}
			// Caret beyond the text: report the formatting at the end.
			return formatsOf(found)
		case html.StartTagToken:
			tok := z.Token()
			if voidTags[tok.Data] {
				continue
			}
			stack = append(stack, openElement{tag: tok.Data, align: alignOf(tok.Attr)})
		case html.EndTagToken:
			tok := z.Token()
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].tag == tok.Data {
					stack = stack[:i]
					break
				}
			}
		case html.TextToken:
			n := utf8.RuneCount(z.Text())
			if n == 0 {
				continue
			}
			start, end := pos, pos+n
			pos = end
			found = append(found[:0], stack...)
			if (caret > start && caret <= end) || (caret == 0 && start == 0) {
				matched = true
			}
		}
	}

	return formatsOf(found)
}

func formatsOf(stack []openElement) map[Format]bool {
	active := map[Format]bool{}
	align := ""
	for _, el := range stack {
		if f, ok := markTags[el.tag]; ok {
			active[f] = true
		}
		if el.align != "" {
			align = el.align
		}
	}

	if f, ok := alignFormats[align]; ok {
		active[f] = true
	} else {
		active[FormatAlignLeft] = true
	}

	return active
}

// alignOf extracts a text-align declaration from a style attribute.
func alignOf(attrs []html.Attribute) string {
	for _, a := range attrs {
		if a.Key != "style" {
			continue
		}
		for _, decl := range strings.Split(a.Val, ";") {
			prop, val, ok := strings.Cut(decl, ":")
			if !ok || strings.TrimSpace(strings.ToLower(prop)) != "text-align" {
				continue
			}
			return strings.TrimSpace(strings.ToLower(val))
		}
	}
	return ""
}

// PlainText returns the visible text of an HTML fragment.
func PlainText(src string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(src))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}
