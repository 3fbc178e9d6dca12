package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize_KeepsEditorMarkup(t *testing.T) {
	got := Sanitize(`<p style="text-align: center"><strong>Gold</strong> <u>ring</u></p>`)

	assert.Contains(t, got, "<strong>Gold</strong>")
	assert.Contains(t, got, "<u>ring</u>")
	assert.Contains(t, got, "text-align")
}

func TestSanitize_KeepsLineBlocks(t *testing.T) {
	got := Sanitize(`<div>first line</div><div style="text-align: right">second line</div>`)

	assert.Contains(t, got, "<div>first line</div>")
	assert.Contains(t, got, "second line</div>")
	assert.Contains(t, got, "text-align")
	assert.True(t, ActiveFormats(got, 15)[FormatAlignRight])
}

func TestSanitize_StripsScript(t *testing.T) {
	got := Sanitize(`<p>hi</p><script>alert("xss")</script>`)

	assert.NotContains(t, got, "<script>")
	assert.Contains(t, got, "hi")
}

func TestSanitize_DropsUnknownStyles(t *testing.T) {
	got := Sanitize(`<p style="color: red">plain</p>`)

	assert.NotContains(t, got, "color")
}

func TestSanitize_BlankDocument(t *testing.T) {
	assert.Equal(t, "", Sanitize("<p></p>"))
	assert.Equal(t, "", Sanitize("<p> <br></p>"))
	assert.Equal(t, "", Sanitize(""))
}

func TestFromMarkdown(t *testing.T) {
	assert.Equal(t, "", FromMarkdown(""))
	assert.Contains(t, FromMarkdown("**bold**"), "<strong>bold</strong>")
	assert.Contains(t, FromMarkdown("~~gone~~"), "<del>gone</del>")
}

func TestActiveFormats(t *testing.T) {
	doc := `<p>plain <strong>bold <em>both</em></strong></p><p style="text-align: right"><s>struck</s></p>`

	tests := []struct {
		name     string
		caret    int
		active   []Format
		inactive []Format
	}{
		{
			name:     "start of document",
			caret:    0,
			active:   []Format{FormatAlignLeft},
			inactive: []Format{FormatBold, FormatItalic, FormatAlignRight},
		},
		{
			name:     "inside bold run",
			caret:    8,
			active:   []Format{FormatBold, FormatAlignLeft},
			inactive: []Format{FormatItalic},
		},
		{
			name:   "inside nested italic",
			caret:  13,
			active: []Format{FormatBold, FormatItalic},
		},
		{
			name:     "right aligned strike",
			caret:    17,
			active:   []Format{FormatStrike, FormatAlignRight},
			inactive: []Format{FormatBold, FormatAlignLeft},
		},
		{
			name:   "caret past the end",
			caret:  500,
			active: []Format{FormatStrike, FormatAlignRight},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ActiveFormats(doc, tt.caret)
			for _, f := range tt.active {
				assert.True(t, got[f], "expected %s active", f)
			}
			for _, f := range tt.inactive {
				assert.False(t, got[f], "expected %s inactive", f)
			}
		})
	}
}

func TestActiveFormats_VoidElementsDoNotNest(t *testing.T) {
	got := ActiveFormats(`<p>line<br>next <u>under</u></p>`, 11)

	assert.True(t, got[FormatUnderline])
}

func TestToolbar_FixedOrder(t *testing.T) {
	buttons := Toolbar(map[Format]bool{FormatItalic: true})

	require.Len(t, buttons, 8)
	assert.Equal(t, FormatBold, buttons[0].Format)
	assert.Equal(t, FormatAlignJustify, buttons[7].Format)
	assert.True(t, buttons[2].Active)
	assert.False(t, buttons[0].Active)
}

func TestField_SetContentAndUpdate(t *testing.T) {
	f := NewField("")
	assert.Equal(t, "", f.HTML())
	assert.Equal(t, DefaultContent, f.EditorHTML())

	emitted := f.Update(`<p><b>Shiny</b></p><img src=x onerror=alert(1)>`)
	assert.Equal(t, emitted, f.HTML())
	assert.NotContains(t, emitted, "onerror")

	f.SetContent("<p>replaced</p>")
	assert.Equal(t, "<p>replaced</p>", f.HTML())
	assert.True(t, f.Toolbar(3)[4].Active, "default alignment is left")
}
