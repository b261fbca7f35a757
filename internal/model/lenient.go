package model

import (
	"encoding/json"
	"errors"

	"gopkg.in/yaml.v3"
)

// Imported documents are decoded field by field: a value that does not fit
// its Go type is dropped and the rest of the record is kept.

var errNotMapping = errors.New("model: expected a mapping")

// lenientJSON stores raw into dst only when it decodes cleanly.
func lenientJSON[T any](raw json.RawMessage, dst *T) {
	var v T
	if err := json.Unmarshal(raw, &v); err == nil {
		*dst = v
	}
}

// lenientNode is the YAML counterpart of lenientJSON.
func lenientNode[T any](node *yaml.Node, dst *T) {
	var v T
	if err := node.Decode(&v); err == nil {
		*dst = v
	}
}

// isJSONObject reports whether raw holds a JSON object.
func isJSONObject(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '{':
			return true
		}
		return false
	}
	return false
}

// resolveNode follows YAML aliases and document wrappers.
func resolveNode(node *yaml.Node) *yaml.Node {
	for node != nil {
		switch node.Kind {
		case yaml.AliasNode:
			node = node.Alias
		case yaml.DocumentNode:
			if len(node.Content) == 0 {
				return nil
			}
			node = node.Content[0]
		default:
			return node
		}
	}
	return nil
}

// isYAMLMapping reports whether node, after alias resolution, is a mapping.
func isYAMLMapping(node *yaml.Node) bool {
	n := resolveNode(node)
	return n != nil && n.Kind == yaml.MappingNode
}

func jsonFields(data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// yamlFields walks a mapping node as key/value pairs.
func yamlFields(node *yaml.Node, fn func(key string, value *yaml.Node)) error {
	n := resolveNode(node)
	if n == nil || n.Kind != yaml.MappingNode {
		return errNotMapping
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		fn(n.Content[i].Value, n.Content[i+1])
	}
	return nil
}

// UnmarshalJSON decodes a component, skipping fields of the wrong shape.
func (c *Component) UnmarshalJSON(data []byte) error {
	fields, err := jsonFields(data)
	if err != nil {
		return err
	}
	out := Component{}
	for key, raw := range fields {
		switch key {
		case "id":
			lenientJSON(raw, &out.ID)
		case "type":
			lenientJSON(raw, &out.Type)
		case "label":
			lenientJSON(raw, &out.Label)
		case "placeholder":
			lenientJSON(raw, &out.Placeholder)
		case "required":
			lenientJSON(raw, &out.Required)
		case "options":
			out.Options = jsonStrings(raw)
		case "validationRules":
			out.ValidationRules = jsonRules(raw)
		case "rows":
			lenientJSON(raw, &out.Rows)
		case "acceptedFileTypes":
			lenientJSON(raw, &out.AcceptedFileTypes)
		}
	}
	*c = out
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML documents.
func (c *Component) UnmarshalYAML(node *yaml.Node) error {
	out := Component{}
	err := yamlFields(node, func(key string, value *yaml.Node) {
		switch key {
		case "id":
			lenientNode(value, &out.ID)
		case "type":
			lenientNode(value, &out.Type)
		case "label":
			lenientNode(value, &out.Label)
		case "placeholder":
			lenientNode(value, &out.Placeholder)
		case "required":
			lenientNode(value, &out.Required)
		case "options":
			out.Options = yamlStrings(value)
		case "validationRules":
			out.ValidationRules = yamlRules(value)
		case "rows":
			lenientNode(value, &out.Rows)
		case "acceptedFileTypes":
			lenientNode(value, &out.AcceptedFileTypes)
		}
	})
	if err != nil {
		return err
	}
	*c = out
	return nil
}

// UnmarshalJSON decodes settings over the receiver's current values,
// skipping fields of the wrong shape.
func (s *FormSettings) UnmarshalJSON(data []byte) error {
	fields, err := jsonFields(data)
	if err != nil {
		return err
	}
	out := *s
	for key, raw := range fields {
		switch key {
		case "title":
			lenientJSON(raw, &out.Title)
		case "description":
			lenientJSON(raw, &out.Description)
		case "requireLogin":
			lenientJSON(raw, &out.RequireLogin)
		case "collectEmail":
			lenientJSON(raw, &out.CollectEmail)
		case "theme":
			lenientJSON(raw, &out.Theme)
		case "successMessage":
			lenientJSON(raw, &out.SuccessMessage)
		case "redirectUrl":
			lenientJSON(raw, &out.RedirectURL)
		}
	}
	*s = out
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML documents.
func (s *FormSettings) UnmarshalYAML(node *yaml.Node) error {
	out := *s
	err := yamlFields(node, func(key string, value *yaml.Node) {
		switch key {
		case "title":
			lenientNode(value, &out.Title)
		case "description":
			lenientNode(value, &out.Description)
		case "requireLogin":
			lenientNode(value, &out.RequireLogin)
		case "collectEmail":
			lenientNode(value, &out.CollectEmail)
		case "theme":
			lenientNode(value, &out.Theme)
		case "successMessage":
			lenientNode(value, &out.SuccessMessage)
		case "redirectUrl":
			lenientNode(value, &out.RedirectURL)
		}
	})
	if err != nil {
		return err
	}
	*s = out
	return nil
}

// jsonStrings keeps the string entries of a JSON array. Anything that is not
// an array yields nil.
func jsonStrings(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
		}
	}
	return out
}

func jsonRules(raw json.RawMessage) []ValidationRule {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil
	}
	out := make([]ValidationRule, 0, len(items))
	for _, item := range items {
		if !isJSONObject(item) {
			continue
		}
		var rule ValidationRule
		if err := json.Unmarshal(item, &rule); err == nil {
			out = append(out, rule)
		}
	}
	return out
}

func yamlStrings(node *yaml.Node) []string {
	n := resolveNode(node)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		item = resolveNode(item)
		if item == nil || item.Kind != yaml.ScalarNode || item.ShortTag() != "!!str" {
			continue
		}
		out = append(out, item.Value)
	}
	return out
}

func yamlRules(node *yaml.Node) []ValidationRule {
	n := resolveNode(node)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]ValidationRule, 0, len(n.Content))
	for _, item := range n.Content {
		if !isYAMLMapping(item) {
			continue
		}
		var rule ValidationRule
		if err := item.Decode(&rule); err == nil {
			out = append(out, rule)
		}
	}
	return out
}
