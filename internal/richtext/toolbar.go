// Package richtext backs the description editor: it sanitises the HTML the
// browser editor emits, derives the toolbar's active state from the caret
// position and converts pasted markdown.
package richtext

// Format is a toolbar entry of the description editor.
type Format string

const (
	FormatBold         Format = "bold"
	FormatUnderline    Format = "underline"
	FormatItalic       Format = "italic"
	FormatStrike       Format = "strike"
	FormatAlignLeft    Format = "align-left"
	FormatAlignCenter  Format = "align-center"
	FormatAlignRight   Format = "align-right"
	FormatAlignJustify Format = "align-justify"
)

// Button is a rendered toolbar entry.
type Button struct {
	Format  Format
	Icon    string // tabler icon class
	Command string // editor.js command name
	Active  bool
}

// toolbarLayout is the fixed toolbar order.
var toolbarLayout = []Button{
	{Format: FormatBold, Icon: "tabler-bold", Command: "bold"},
	{Format: FormatUnderline, Icon: "tabler-underline", Command: "underline"},
	{Format: FormatItalic, Icon: "tabler-italic", Command: "italic"},
	{Format: FormatStrike, Icon: "tabler-strikethrough", Command: "strikeThrough"},
	{Format: FormatAlignLeft, Icon: "tabler-align-left", Command: "justifyLeft"},
	{Format: FormatAlignCenter, Icon: "tabler-align-center", Command: "justifyCenter"},
	{Format: FormatAlignRight, Icon: "tabler-align-right", Command: "justifyRight"},
	{Format: FormatAlignJustify, Icon: "tabler-align-justified", Command: "justifyFull"},
}

// Toolbar returns the fixed toolbar with each button's active flag taken
// from active.
func Toolbar(active map[Format]bool) []Button {
	buttons := make([]Button, len(toolbarLayout))
	for i, b := range toolbarLayout {
		b.Active = active[b.Format]
		buttons[i] = b
	}
	return buttons
}
