package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// RuleKind identifies a descriptive validation constraint.
type RuleKind string

const (
	RuleMinLength RuleKind = "minLength"
	RuleMaxLength RuleKind = "maxLength"
	RulePattern   RuleKind = "pattern"
	RuleCustom    RuleKind = "custom"
)

// legacy kinds written by earlier builder versions.
const (
	legacyRuleMin = "min"
	legacyRuleMax = "max"
)

// NormalizeRuleKind maps legacy aliases onto canonical kinds. Unknown kinds are
// returned unchanged so imports stay lossless.
func NormalizeRuleKind(kind string) RuleKind {
	switch kind {
	case legacyRuleMin:
		return RuleMinLength
	case legacyRuleMax:
		return RuleMaxLength
	}
	return RuleKind(kind)
}

// ValidationRule is attached to a component and surfaced to the author. The
// engine never executes it against live input.
type ValidationRule struct {
	Kind    RuleKind  `json:"kind" yaml:"kind"`
	Value   RuleValue `json:"value" yaml:"value"`
	Message string    `json:"message" yaml:"message"`
}

// UnmarshalJSON accepts both the canonical "kind" key and the legacy "type"
// key, normalising min/max aliases. Fields of the wrong shape are dropped.
func (r *ValidationRule) UnmarshalJSON(data []byte) error {
	fields, err := jsonFields(data)
	if err != nil {
		return err
	}
	var kind, legacy string
	out := ValidationRule{}
	for key, raw := range fields {
		switch key {
		case "kind":
			lenientJSON(raw, &kind)
		case "type":
			lenientJSON(raw, &legacy)
		case "value":
			lenientJSON(raw, &out.Value)
		case "message":
			lenientJSON(raw, &out.Message)
		}
	}
	if kind == "" {
		kind = legacy
	}
	out.Kind = NormalizeRuleKind(kind)
	*r = out
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML documents.
func (r *ValidationRule) UnmarshalYAML(node *yaml.Node) error {
	var kind, legacy string
	out := ValidationRule{}
	err := yamlFields(node, func(key string, value *yaml.Node) {
		switch key {
		case "kind":
			lenientNode(value, &kind)
		case "type":
			lenientNode(value, &legacy)
		case "value":
			lenientNode(value, &out.Value)
		case "message":
			lenientNode(value, &out.Message)
		}
	})
	if err != nil {
		return err
	}
	if kind == "" {
		kind = legacy
	}
	out.Kind = NormalizeRuleKind(kind)
	*r = out
	return nil
}

var errRuleValueType = errors.New("model: rule value must be a string or a number")

// RuleValue holds either a string or a number and round-trips as the same
// JSON scalar it was decoded from. Fields are exported so structural clones
// keep them.
type RuleValue struct {
	Text     string
	Number   float64
	IsNumber bool
}

// StringValue builds a textual rule value.
func StringValue(v string) RuleValue { return RuleValue{Text: v} }

// NumberValue builds a numeric rule value.
func NumberValue(v float64) RuleValue { return RuleValue{Number: v, IsNumber: true} }

// Int returns the value as an integer when it is numeric or a numeric string.
func (v RuleValue) Int() (int, bool) {
	if v.IsNumber {
		return int(v.Number), true
	}
	n, err := strconv.Atoi(v.Text)
	if err != nil {
		return 0, false
	}
	return n, true
}

// String renders the value for display.
func (v RuleValue) String() string {
	if v.IsNumber {
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	}
	return v.Text
}

// MarshalJSON emits the scalar form.
func (v RuleValue) MarshalJSON() ([]byte, error) {
	if v.IsNumber {
		return json.Marshal(v.Number)
	}
	return json.Marshal(v.Text)
}

// UnmarshalJSON accepts JSON strings, numbers and null.
func (v *RuleValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*v = RuleValue{}
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = StringValue(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("%w: %s", errRuleValueType, string(trimmed))
	}
	*v = NumberValue(n)
	return nil
}

// MarshalYAML emits the scalar form.
func (v RuleValue) MarshalYAML() (any, error) {
	if v.IsNumber {
		return v.Number, nil
	}
	return v.Text, nil
}

// UnmarshalYAML accepts YAML scalars; !!int and !!float become numbers.
func (v *RuleValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errRuleValueType
	}
	switch node.Tag {
	case "!!int", "!!float":
		n, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s", errRuleValueType, node.Value)
		}
		*v = NumberValue(n)
	case "!!null":
		*v = RuleValue{}
	default:
		*v = StringValue(node.Value)
	}
	return nil
}
