package model

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestCloneState_DoesNotAlias(t *testing.T) {
	original := FormState{
		Components: []Component{
			{
				ID:          "select_1",
				Type:        FieldTypeSelect,
				Label:       "Colour",
				Placeholder: StringPtr("Pick one"),
				Options:     []string{"Red", "Blue"},
				ValidationRules: []ValidationRule{
					{Kind: RuleCustom, Value: StringValue("x"), Message: "m"},
				},
				Rows: IntPtr(3),
			},
		},
		SelectedID: "select_1",
		Settings:   DefaultFormSettings(),
	}

	clone := CloneState(original)
	if diff := cmp.Diff(original, clone); diff != "" {
		t.Fatalf("clone mismatch (-want +got):\n%s", diff)
	}

	clone.Components[0].Options[0] = "Green"
	*clone.Components[0].Placeholder = "changed"
	*clone.Components[0].Rows = 9
	clone.Components[0].ValidationRules[0].Message = "changed"

	if got := original.Components[0].Options[0]; got != "Red" {
		t.Fatalf("options aliased, got %q", got)
	}
	if got := *original.Components[0].Placeholder; got != "Pick one" {
		t.Fatalf("placeholder aliased, got %q", got)
	}
	if got := *original.Components[0].Rows; got != 3 {
		t.Fatalf("rows aliased, got %d", got)
	}
	if got := original.Components[0].ValidationRules[0].Message; got != "m" {
		t.Fatalf("rules aliased, got %q", got)
	}
}

func TestCloneState_PreservesEmptyVersusNil(t *testing.T) {
	empty := NewFormState(DefaultFormSettings())
	if got := CloneState(empty).Components; got == nil {
		t.Fatalf("expected empty component list to stay non-nil")
	}
	if got := CloneComponents(nil); got != nil {
		t.Fatalf("expected nil list to stay nil, got %#v", got)
	}
}

func TestComponentPatch_Apply(t *testing.T) {
	base := NewComponent("text_1", FieldTypeText)
	label := "Full name"
	required := true
	options := []string{"a"}

	patched := ComponentPatch{Label: &label, Required: &required, Options: &options}.Apply(base)
	options[0] = "mutated"

	want := Component{
		ID:          "text_1",
		Type:        FieldTypeText,
		Label:       "Full name",
		Placeholder: StringPtr(DefaultPlaceholder),
		Required:    true,
		Options:     []string{"a"},
	}
	if diff := cmp.Diff(want, patched); diff != "" {
		t.Fatalf("patched component mismatch (-want +got):\n%s", diff)
	}
	if base.Label != "Text Field" {
		t.Fatalf("base component mutated: %q", base.Label)
	}
	if !(ComponentPatch{}).Empty() {
		t.Fatalf("expected zero patch to be empty")
	}
}

func TestSettingsPatch_Apply(t *testing.T) {
	title := "Contact"
	theme := ThemeDark
	got := SettingsPatch{Title: &title, Theme: &theme}.Apply(DefaultFormSettings())

	want := FormSettings{
		Title:          "Contact",
		Theme:          ThemeDark,
		SuccessMessage: DefaultSuccessMessage,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestNewComponent_PaletteDefaults(t *testing.T) {
	tests := []struct {
		typ     FieldType
		label   string
		options []string
	}{
		{FieldTypeText, "Text Field", nil},
		{FieldTypeTextarea, "Textarea Field", nil},
		{FieldTypeSelect, "Select Field", []string{"Option 1", "Option 2"}},
		{FieldTypeCheckbox, "Checkbox Field", []string{"Option 1", "Option 2"}},
		{FieldTypeRadio, "Radio Field", []string{"Option 1", "Option 2"}},
		{FieldTypeFile, "File Field", nil},
	}
	for _, tt := range tests {
		c := NewComponent("id", tt.typ)
		if c.Label != tt.label {
			t.Errorf("%s: label = %q, want %q", tt.typ, c.Label, tt.label)
		}
		if diff := cmp.Diff(tt.options, c.Options); diff != "" {
			t.Errorf("%s: options mismatch (-want +got):\n%s", tt.typ, diff)
		}
		if c.Placeholder == nil || *c.Placeholder != DefaultPlaceholder {
			t.Errorf("%s: unexpected placeholder %v", tt.typ, c.Placeholder)
		}
	}
	if len(Palette()) != 10 {
		t.Fatalf("expected ten palette entries, got %d", len(Palette()))
	}
}

func TestValidationRule_JSONScalarsAndLegacyKinds(t *testing.T) {
	raw := `[
		{"type":"min","value":3,"message":"too short"},
		{"kind":"pattern","value":"^[a-z]+$","message":"letters only"}
	]`
	var rules []ValidationRule
	if err := json.Unmarshal([]byte(raw), &rules); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []ValidationRule{
		{Kind: RuleMinLength, Value: NumberValue(3), Message: "too short"},
		{Kind: RulePattern, Value: StringValue("^[a-z]+$"), Message: "letters only"},
	}
	if diff := cmp.Diff(want, rules); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}

	out, err := json.Marshal(rules[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(out); got != `{"kind":"minLength","value":3,"message":"too short"}` {
		t.Fatalf("unexpected encoding: %s", got)
	}
}

func TestValidationRule_YAML(t *testing.T) {
	raw := "- kind: maxLength\n  value: 10\n  message: too long\n- kind: custom\n  value: \"10\"\n  message: quoted\n"
	var rules []ValidationRule
	if err := yaml.Unmarshal([]byte(raw), &rules); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !rules[0].Value.IsNumber || rules[0].Value.Number != 10 {
		t.Fatalf("expected numeric value, got %+v", rules[0].Value)
	}
	if rules[1].Value.IsNumber || rules[1].Value.Text != "10" {
		t.Fatalf("expected quoted value to stay textual, got %+v", rules[1].Value)
	}
	if n, ok := rules[1].Value.Int(); !ok || n != 10 {
		t.Fatalf("expected numeric string to convert, got %d %v", n, ok)
	}
}

func TestComponent_UnmarshalDropsWrongTypedFields(t *testing.T) {
	raw := `{"id":"text_1","type":"text","label":"Name","required":"yes","rows":"3","placeholder":null,"extra":1}`
	var c Component
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := Component{ID: "text_1", Type: FieldTypeText, Label: "Name"}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("component mismatch (-want +got):\n%s", diff)
	}

	if err := json.Unmarshal([]byte(`[1]`), &c); err == nil {
		t.Fatalf("expected a non-object component to fail")
	}
}

func TestFormSettings_UnmarshalKeepsReceiverValues(t *testing.T) {
	settings := DefaultFormSettings()
	if err := yaml.Unmarshal([]byte("title: Hello\ntheme: [dark]\nrequireLogin: true\n"), &settings); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := DefaultFormSettings()
	want.Title = "Hello"
	want.RequireLogin = true
	if diff := cmp.Diff(want, settings); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestFormState_Selected(t *testing.T) {
	state := FormState{
		Components: []Component{NewComponent("a", FieldTypeText)},
		SelectedID: "a",
	}
	if c, ok := state.Selected(); !ok || c.ID != "a" {
		t.Fatalf("expected selection to resolve, got %+v %v", c, ok)
	}
	state.SelectedID = "missing"
	if _, ok := state.Selected(); ok {
		t.Fatalf("expected dangling selection to resolve to none")
	}
}
