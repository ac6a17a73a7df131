// Package fix provides text edit types and application logic for auto-fixing.
package fix

// TextEdit replaces the half-open byte range [StartOffset, EndOffset) with
// NewText.
type TextEdit struct {
	StartOffset int
	EndOffset   int
	NewText     string
}

// EditBuilder accumulates the TextEdits a rule wants to apply to one file.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder returns an empty EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{Edits: make([]TextEdit, 0)}
}

// ReplaceRange records replacing [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{StartOffset: start, EndOffset: end, NewText: newText})
}

// Insert records inserting text at offset, leaving existing bytes untouched.
func (b *EditBuilder) Insert(offset int, text string) {
	b.ReplaceRange(offset, offset, text)
}

// Delete records removing [start, end) entirely.
func (b *EditBuilder) Delete(start, end int) {
	b.ReplaceRange(start, end, "")
}
