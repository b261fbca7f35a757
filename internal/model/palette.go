package model

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// PaletteEntry describes a component kind offered by the builder sidebar.
type PaletteEntry struct {
	Type        FieldType `json:"type"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

var palette = []PaletteEntry{
	{Type: FieldTypeText, Name: "Text Input", Description: "Single line text input"},
	{Type: FieldTypeTextarea, Name: "Text Area", Description: "Multi-line text input"},
	{Type: FieldTypeSelect, Name: "Select", Description: "Dropdown selection"},
	{Type: FieldTypeCheckbox, Name: "Checkbox", Description: "Multiple choice selection"},
	{Type: FieldTypeRadio, Name: "Radio Group", Description: "Single choice selection"},
	{Type: FieldTypeNumber, Name: "Number", Description: "Numeric input"},
	{Type: FieldTypeEmail, Name: "Email", Description: "Email address input"},
	{Type: FieldTypePhone, Name: "Phone", Description: "Phone number input"},
	{Type: FieldTypeDate, Name: "Date", Description: "Date picker"},
	{Type: FieldTypeFile, Name: "File Upload", Description: "File upload input"},
}

// DefaultPlaceholder is assigned to components created from the palette.
const DefaultPlaceholder = "Enter your answer..."

// Palette returns the component kinds in sidebar order.
func Palette() []PaletteEntry {
	out := make([]PaletteEntry, len(palette))
	copy(out, palette)
	return out
}

// DefaultLabel derives the initial label for a new component, e.g.
// "textarea" becomes "Textarea Field".
func DefaultLabel(t FieldType) string {
	name := strings.TrimSpace(string(t))
	if name == "" {
		return "Field"
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:] + " Field"
}

// DefaultOptions returns the seed options for choice components.
func DefaultOptions() []string {
	return []string{"Option 1", "Option 2"}
}

// NewComponent builds a component of type t with the defaults applied when a
// palette entry is dropped on the canvas.
func NewComponent(id string, t FieldType) Component {
	c := Component{
		ID:          id,
		Type:        t,
		Label:       DefaultLabel(t),
		Placeholder: StringPtr(DefaultPlaceholder),
	}
	if t.HasOptions() {
		c.Options = DefaultOptions()
	}
	return c
}
