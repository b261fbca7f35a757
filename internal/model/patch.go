package model

// ComponentPatch carries a partial update. Nil fields are left untouched;
// Options and ValidationRules point at the full replacement list.
type ComponentPatch struct {
	Type              *FieldType
	Label             *string
	Placeholder       *string
	Required          *bool
	Options           *[]string
	ValidationRules   *[]ValidationRule
	Rows              *int
	AcceptedFileTypes *string
}

// Empty reports whether the patch changes nothing.
func (p ComponentPatch) Empty() bool {
	return p.Type == nil && p.Label == nil && p.Placeholder == nil &&
		p.Required == nil && p.Options == nil && p.ValidationRules == nil &&
		p.Rows == nil && p.AcceptedFileTypes == nil
}

// Apply merges the patch into a copy of c. The id is never patched.
func (p ComponentPatch) Apply(c Component) Component {
	out := CloneComponent(c)
	if p.Type != nil {
		out.Type = *p.Type
	}
	if p.Label != nil {
		out.Label = *p.Label
	}
	if p.Placeholder != nil {
		out.Placeholder = StringPtr(*p.Placeholder)
	}
	if p.Required != nil {
		out.Required = *p.Required
	}
	if p.Options != nil {
		out.Options = cloneStrings(*p.Options)
	}
	if p.ValidationRules != nil {
		out.ValidationRules = cloneRules(*p.ValidationRules)
	}
	if p.Rows != nil {
		out.Rows = IntPtr(*p.Rows)
	}
	if p.AcceptedFileTypes != nil {
		out.AcceptedFileTypes = StringPtr(*p.AcceptedFileTypes)
	}
	return out
}

// SettingsPatch carries a partial update of FormSettings.
type SettingsPatch struct {
	Title          *string
	Description    *string
	RequireLogin   *bool
	CollectEmail   *bool
	Theme          *Theme
	SuccessMessage *string
	RedirectURL    *string
}

// Apply merges the patch into s.
func (p SettingsPatch) Apply(s FormSettings) FormSettings {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.RequireLogin != nil {
		s.RequireLogin = *p.RequireLogin
	}
	if p.CollectEmail != nil {
		s.CollectEmail = *p.CollectEmail
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.SuccessMessage != nil {
		s.SuccessMessage = *p.SuccessMessage
	}
	if p.RedirectURL != nil {
		s.RedirectURL = *p.RedirectURL
	}
	return s
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneRules(in []ValidationRule) []ValidationRule {
	if in == nil {
		return nil
	}
	out := make([]ValidationRule, len(in))
	copy(out, in)
	return out
}
