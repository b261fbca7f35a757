package model

// FieldType enumerates the component kinds the builder palette offers.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeNumber   FieldType = "number"
	FieldTypeEmail    FieldType = "email"
	FieldTypePhone    FieldType = "phone"
	FieldTypeDate     FieldType = "date"
	FieldTypeFile     FieldType = "file"
)

// Valid reports whether t is one of the known field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeSelect, FieldTypeCheckbox,
		FieldTypeRadio, FieldTypeNumber, FieldTypeEmail, FieldTypePhone,
		FieldTypeDate, FieldTypeFile:
		return true
	}
	return false
}

// HasOptions reports whether components of this type carry an option list.
func (t FieldType) HasOptions() bool {
	return t == FieldTypeSelect || t == FieldTypeCheckbox || t == FieldTypeRadio
}

// Theme is the colour scheme applied to the published form.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// Valid reports whether th is a known theme.
func (th Theme) Valid() bool {
	return th == ThemeLight || th == ThemeDark || th == ThemeAuto
}

// Component is a single field definition placed on the form canvas. Optional
// attributes are pointers so snapshots keep "absent" distinct from zero.
type Component struct {
	ID                string           `json:"id" yaml:"id"`
	Type              FieldType        `json:"type" yaml:"type"`
	Label             string           `json:"label" yaml:"label"`
	Placeholder       *string          `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required          bool             `json:"required" yaml:"required"`
	Options           []string         `json:"options,omitempty" yaml:"options,omitempty"`
	ValidationRules   []ValidationRule `json:"validationRules,omitempty" yaml:"validationRules,omitempty"`
	Rows              *int             `json:"rows,omitempty" yaml:"rows,omitempty"`
	AcceptedFileTypes *string          `json:"acceptedFileTypes,omitempty" yaml:"acceptedFileTypes,omitempty"`
}

// FormSettings holds the form-level configuration. There is exactly one per
// form.
type FormSettings struct {
	Title          string `json:"title" yaml:"title"`
	Description    string `json:"description" yaml:"description"`
	RequireLogin   bool   `json:"requireLogin" yaml:"requireLogin"`
	CollectEmail   bool   `json:"collectEmail" yaml:"collectEmail"`
	Theme          Theme  `json:"theme,omitempty" yaml:"theme,omitempty"`
	SuccessMessage string `json:"successMessage,omitempty" yaml:"successMessage,omitempty"`
	RedirectURL    string `json:"redirectUrl,omitempty" yaml:"redirectUrl,omitempty"`
}

// DefaultSuccessMessage is shown after submission unless the author changes it.
const DefaultSuccessMessage = "Thank you for your submission!"

// DefaultFormSettings returns the settings of a freshly created form.
func DefaultFormSettings() FormSettings {
	return FormSettings{
		Theme:          ThemeAuto,
		SuccessMessage: DefaultSuccessMessage,
	}
}

// FormState is the structural aggregate captured by history snapshots. The
// selection is a weak reference by id; an empty SelectedID means none.
type FormState struct {
	Components []Component  `json:"components"`
	SelectedID string       `json:"selectedComponent,omitempty"`
	Settings   FormSettings `json:"formSettings"`
}

// NewFormState returns the empty-form initial state using settings.
func NewFormState(settings FormSettings) FormState {
	return FormState{
		Components: []Component{},
		Settings:   settings,
	}
}

// IndexOf returns the position of the component with id, or -1.
func (s FormState) IndexOf(id string) int {
	for i := range s.Components {
		if s.Components[i].ID == id {
			return i
		}
	}
	return -1
}

// Selected resolves the selection against the current component list.
func (s FormState) Selected() (Component, bool) {
	if s.SelectedID == "" {
		return Component{}, false
	}
	idx := s.IndexOf(s.SelectedID)
	if idx < 0 {
		return Component{}, false
	}
	return CloneComponent(s.Components[idx]), true
}

// StringPtr is a small helper for populating optional string attributes.
func StringPtr(v string) *string { return &v }

// IntPtr is a small helper for populating optional integer attributes.
func IntPtr(v int) *int { return &v }
