package snapshot

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// EncodeYAML renders doc as YAML, for hand-edited fixtures.
func EncodeYAML(doc Document) ([]byte, error) {
	if doc.Components == nil {
		doc.Components = []model.Component{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("snapshot: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("snapshot: encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeYAML parses a YAML document with the same acceptance rule as Decode.
func DecodeYAML(raw []byte) (Document, error) {
	var envelope struct {
		Components   yaml.Node `yaml:"components"`
		FormSettings yaml.Node `yaml:"formSettings"`
		Version      any       `yaml:"version"`
		Timestamp    any       `yaml:"timestamp"`
	}
	if err := yaml.Unmarshal(raw, &envelope); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return Document{}, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
		}
		return Document{}, fmt.Errorf("%w: %v", ErrUnparsable, err)
	}
	list := resolve(&envelope.Components)
	settingsNode := resolve(&envelope.FormSettings)
	if list == nil || list.Kind != yaml.SequenceNode || settingsNode == nil || settingsNode.Kind != yaml.MappingNode {
		return Document{}, ErrInvalidStructure
	}

	components := make([]model.Component, 0, len(list.Content))
	for _, item := range list.Content {
		if n := resolve(item); n == nil || n.Kind != yaml.MappingNode {
			continue
		}
		var c model.Component
		if err := item.Decode(&c); err != nil {
			continue
		}
		components = append(components, c)
	}

	var settings model.FormSettings
	if err := settingsNode.Decode(&settings); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}

	doc := Document{
		Components:   components,
		FormSettings: settings,
	}
	if s, ok := envelope.Version.(string); ok {
		doc.Version = s
	}
	if s, ok := envelope.Timestamp.(string); ok {
		doc.Timestamp = s
	}
	return doc, nil
}

// resolve follows aliases. A missing key leaves a zero node, reported as nil.
func resolve(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node == nil || node.Kind == 0 {
		return nil
	}
	return node
}
