package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func TestValidate_ValidForm(t *testing.T) {
	result := Validate(testsupport.ContactForm())
	if !result.Valid {
		t.Fatalf("expected contact form to be valid, got %v", result.Errors)
	}
	if result.Errors == nil || len(result.Errors) != 0 {
		t.Fatalf("expected empty, non-nil error list, got %#v", result.Errors)
	}
}

func TestValidate_EmptyForm(t *testing.T) {
	result := Validate(model.NewFormState(model.DefaultFormSettings()))

	want := Result{
		Valid:  false,
		Errors: []string{MsgTitleRequired, MsgComponentRequired},
	}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_SelectWithoutOptions(t *testing.T) {
	// Title, count and options checks run in that order. The count check
	// only fires for an empty form, so this form reports title then options.
	state := model.FormState{
		Settings: model.FormSettings{Title: "   "},
		Components: []model.Component{
			{ID: "select_1", Type: model.FieldTypeSelect, Label: "Colour"},
		},
	}
	want := []string{MsgTitleRequired, "Colour must have at least one option"}
	if diff := cmp.Diff(want, Validate(state).Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_PerComponentRules(t *testing.T) {
	state := model.FormState{
		Settings: model.FormSettings{Title: "Survey"},
		Components: []model.Component{
			{ID: "text_1", Type: model.FieldTypeText, Label: "Name"},
			{ID: "radio_2", Type: model.FieldTypeRadio, Label: " ", Options: []string{}},
			{ID: "checkbox_3", Type: model.FieldTypeCheckbox, Label: "Extras"},
			{ID: "select_4", Type: model.FieldTypeSelect, Label: "Size", Options: []string{"S"}},
		},
	}

	want := []string{
		"Component 2 is missing a label",
		"  must have at least one option",
		"Extras must have at least one option",
	}
	result := Validate(state)
	if result.Valid {
		t.Fatalf("expected invalid form")
	}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	state := testsupport.ContactForm()
	before := model.CloneState(state)
	_ = Validate(state)
	testsupport.AssertState(t, before, state)
}
