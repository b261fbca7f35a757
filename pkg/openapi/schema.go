package openapi

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ErrInvalidSubmission wraps schema violations reported by ValidateSubmission.
var ErrInvalidSubmission = errors.New("openapi: submission does not match form")

// SubmissionSchema builds the object schema a submission of state must satisfy.
func SubmissionSchema(state model.FormState) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Title = state.Settings.Title
	schema.Description = state.Settings.Description
	schema.AdditionalProperties = openapi3.AdditionalProperties{Has: openapi3.BoolPtr(false)}

	required := make([]string, 0)
	for _, component := range state.Components {
		schema.WithProperty(component.ID, propertySchema(component))
		if component.Required {
			required = append(required, component.ID)
		}
	}
	if len(required) > 0 {
		schema.Required = required
	}
	return schema
}

// ValidateSubmission checks answers, keyed by component id, against the
// submission schema of state. Every violation is reported.
func ValidateSubmission(state model.FormState, answers map[string]any) error {
	if answers == nil {
		answers = map[string]any{}
	}
	if err := SubmissionSchema(state).VisitJSON(answers, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSubmission, err)
	}
	return nil
}

func propertySchema(c model.Component) *openapi3.Schema {
	var prop *openapi3.Schema

	switch c.Type {
	case model.FieldTypeNumber:
		prop = openapi3.NewFloat64Schema()
	case model.FieldTypeEmail:
		prop = openapi3.NewStringSchema().WithFormat("email")
	case model.FieldTypeDate:
		prop = openapi3.NewStringSchema().WithFormat("date")
	case model.FieldTypeFile:
		prop = openapi3.NewStringSchema().WithFormat("binary")
	case model.FieldTypeSelect, model.FieldTypeRadio:
		prop = choiceSchema(c.Options)
	case model.FieldTypeCheckbox:
		prop = openapi3.NewArraySchema().WithItems(choiceSchema(c.Options))
		if c.Required {
			prop.WithMinItems(1)
		}
	default:
		prop = openapi3.NewStringSchema()
	}

	prop.Title = c.Label
	if c.Placeholder != nil {
		prop.Description = *c.Placeholder
	}
	if acceptsTextRules(c.Type) {
		applyRules(prop, c)
	}
	return prop
}

// acceptsTextRules reports whether length and pattern rules bind the answer.
func acceptsTextRules(t model.FieldType) bool {
	switch t {
	case model.FieldTypeText, model.FieldTypeTextarea, model.FieldTypeEmail, model.FieldTypePhone:
		return true
	}
	return false
}

func applyRules(prop *openapi3.Schema, c model.Component) {
	if c.Required {
		prop.WithMinLength(1)
	}
	for _, rule := range c.ValidationRules {
		switch rule.Kind {
		case model.RuleMinLength:
			if n, ok := rule.Value.Int(); ok && n > 0 && uint64(n) > prop.MinLength {
				prop.WithMinLength(int64(n))
			}
		case model.RuleMaxLength:
			if n, ok := rule.Value.Int(); ok && n >= 0 {
				prop.WithMaxLength(int64(n))
			}
		case model.RulePattern:
			pattern := rule.Value.String()
			if _, err := regexp.Compile(pattern); err == nil && pattern != "" {
				prop.WithPattern(pattern)
			}
		}
	}
}

// choiceSchema restricts a string to options. An empty option list leaves it
// unrestricted.
func choiceSchema(options []string) *openapi3.Schema {
	prop := openapi3.NewStringSchema()
	if len(options) == 0 {
		return prop
	}
	values := make([]any, 0, len(options))
	for _, option := range options {
		values = append(values, option)
	}
	return prop.WithEnum(values...)
}
