package html

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

const (
	fallbackTitle     = "Form Preview"
	defaultRows       = 4
	emailPlaceholder  = "example@email.com"
	phonePlaceholder  = "+1 (555) 123-4567"
	controlKindInput  = "input"
	controlKindChoice = "select"
	controlKindText   = "textarea"
	controlKindCheck  = "checkbox"
	controlKindRadio  = "radio"
)

type formView struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Theme       string               `json:"theme"`
	Empty       bool                 `json:"empty"`
	Components  []componentView      `json:"components"`
	FormErrors  []string             `json:"form_errors"`
	Hidden      []render.HiddenField `json:"hidden"`
}

type componentView struct {
	ID          string       `json:"id"`
	Type        string       `json:"type"`
	Kind        string       `json:"kind"`
	InputType   string       `json:"input_type"`
	Label       string       `json:"label"`
	Placeholder string       `json:"placeholder"`
	Required    bool         `json:"required"`
	Rows        int          `json:"rows"`
	Accept      string       `json:"accept"`
	Value       string       `json:"value"`
	Options     []optionView `json:"options"`
	Hints       []string     `json:"hints"`
	Errors      []string     `json:"errors"`
}

type optionView struct {
	ID       string `json:"id"`
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type themeView struct {
	Name         string `json:"name"`
	Variant      string `json:"variant"`
	CSSVarsStyle string `json:"css_vars_style"`
}

func buildFormView(form model.FormState, options render.RenderOptions) formView {
	title := sanitizeText(form.Settings.Title)
	if title == "" {
		title = fallbackTitle
	}
	themeName := string(form.Settings.Theme)
	if !form.Settings.Theme.Valid() {
		themeName = string(model.ThemeAuto)
	}

	view := formView{
		Title:       title,
		Description: sanitizeText(form.Settings.Description),
		Theme:       themeName,
		Empty:       len(form.Components) == 0,
		Components:  make([]componentView, 0, len(form.Components)),
		FormErrors:  render.MergeFormErrors(options.FormErrors),
		Hidden:      render.SortedHiddenFields(options.Hidden),
	}
	for _, c := range form.Components {
		view.Components = append(view.Components, buildComponentView(c, options))
	}
	return view
}

func buildComponentView(c model.Component, options render.RenderOptions) componentView {
	view := componentView{
		ID:       c.ID,
		Type:     string(c.Type),
		Label:    sanitizeText(c.Label),
		Required: c.Required,
		Hints:    ruleHints(c.ValidationRules),
		Errors:   render.MergeFormErrors(options.Errors[c.ID]),
	}
	if c.Placeholder != nil {
		view.Placeholder = sanitizeText(*c.Placeholder)
	}
	value := options.Values[c.ID]

	switch c.Type {
	case model.FieldTypeTextarea:
		view.Kind = controlKindText
		view.Rows = defaultRows
		if c.Rows != nil && *c.Rows > 0 {
			view.Rows = *c.Rows
		}
		view.Value = scalarValue(value)
	case model.FieldTypeSelect:
		view.Kind = controlKindChoice
		view.Options = optionViews(c, selectedSet(value))
	case model.FieldTypeCheckbox:
		view.Kind = controlKindCheck
		view.Options = optionViews(c, selectedSet(value))
	case model.FieldTypeRadio:
		view.Kind = controlKindRadio
		view.Options = optionViews(c, selectedSet(value))
	default:
		view.Kind = controlKindInput
		view.InputType = inputType(c.Type)
		view.Value = scalarValue(value)
		switch c.Type {
		case model.FieldTypeEmail:
			if view.Placeholder == "" {
				view.Placeholder = emailPlaceholder
			}
		case model.FieldTypePhone:
			if view.Placeholder == "" {
				view.Placeholder = phonePlaceholder
			}
		case model.FieldTypeDate:
			view.Placeholder = ""
		case model.FieldTypeFile:
			view.Placeholder = ""
			view.Value = ""
			if c.AcceptedFileTypes != nil {
				view.Accept = sanitizeText(*c.AcceptedFileTypes)
			}
		}
	}
	return view
}

func inputType(t model.FieldType) string {
	switch t {
	case model.FieldTypeNumber:
		return "number"
	case model.FieldTypeEmail:
		return "email"
	case model.FieldTypePhone:
		return "tel"
	case model.FieldTypeDate:
		return "date"
	case model.FieldTypeFile:
		return "file"
	default:
		return "text"
	}
}

func optionViews(c model.Component, selected map[string]bool) []optionView {
	out := make([]optionView, 0, len(c.Options))
	for i, option := range c.Options {
		out = append(out, optionView{
			ID:       fmt.Sprintf("%s-%d", c.ID, i),
			Value:    sanitizeText(option),
			Label:    sanitizeText(option),
			Selected: selected[option],
		})
	}
	return out
}

func selectedSet(value any) map[string]bool {
	out := make(map[string]bool)
	switch v := value.(type) {
	case string:
		out[v] = true
	case []string:
		for _, item := range v {
			out[item] = true
		}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				out[s] = true
			}
		}
	}
	return out
}

func scalarValue(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

// ruleHints lists the descriptive rules shown under a field.
func ruleHints(rules []model.ValidationRule) []string {
	hints := make([]string, 0, len(rules))
	for _, rule := range rules {
		var label string
		switch rule.Kind {
		case model.RuleMinLength:
			label = "Min"
		case model.RuleMaxLength:
			label = "Max"
		case model.RulePattern:
			label = "Pattern"
		default:
			continue
		}
		hints = append(hints, label+": "+sanitizeText(rule.Value.String()))
	}
	return hints
}

func buildThemeView(cfg *theme.RendererConfig) themeView {
	if cfg == nil {
		return themeView{}
	}
	return themeView{
		Name:         cfg.Theme,
		Variant:      cfg.Variant,
		CSSVarsStyle: cssVarsStyle(cfg.CSSVars),
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(".fb-form {")
	for _, key := range keys {
		name := sanitizeCSSToken(key)
		value := sanitizeCSSToken(vars[key])
		if name == "" || value == "" {
			continue
		}
		b.WriteString(" ")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString(";")
	}
	b.WriteString(" }")
	return b.String()
}

// sanitizeCSSToken drops characters that could close the declaration or the
// style element.
func sanitizeCSSToken(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '"', '\'', '\\':
			return -1
		}
		return r
	}, s))
}
