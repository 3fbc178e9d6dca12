package richtext

const (
	// Placeholder is shown by the browser editor while the document is empty.
	Placeholder = "Write something here..."

	// DefaultContent seeds the editor when the bound record has no description.
	DefaultContent = "<p>Write your description here...</p>"
)

// Field is the server-side half of the description editor. It holds the
// sanitised HTML most recently emitted by the browser editor.
type Field struct {
	content string
}

// NewField creates a Field bound to the given initial HTML.
func NewField(initial string) *Field {
	f := &Field{}
	f.SetContent(initial)
	return f
}

// SetContent replaces the document, e.g. when the dialog is rebound to a
// different record.
func (f *Field) SetContent(src string) {
	f.content = Sanitize(src)
}

// Update accepts an edit emitted by the browser editor and returns the value
// to store in the form state.
func (f *Field) Update(src string) string {
	f.content = Sanitize(src)
	return f.content
}

// HTML returns the stored document.
func (f *Field) HTML() string {
	return f.content
}

// EditorHTML returns the document to load into the browser editor, falling
// back to DefaultContent for an empty document.
func (f *Field) EditorHTML() string {
	if f.content == "" {
		return DefaultContent
	}
	return f.content
}

// Toolbar returns the toolbar state for a caret position in the stored document.
func (f *Field) Toolbar(caret int) []Button {
	return Toolbar(ActiveFormats(f.content, caret))
}
