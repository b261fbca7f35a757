// Package snapshot encodes and decodes the canonical form document used for
// file export, clipboard copies and imports.
//
//	{
//	  "components": [ ... ],
//	  "formSettings": { ... },
//	  "version": "1.0",
//	  "timestamp": "2024-03-05T14:30:00.000Z"
//	}
//
// Decoding accepts any document whose components key holds a list and whose
// formSettings key holds an object. Field-level shape is not checked: values
// of the wrong type are dropped and the rest of the document is kept.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

const (
	// Version is written into every exported document.
	Version = "1.0"
	// TimestampLayout is ISO-8601 with millisecond precision in UTC.
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

var (
	// ErrUnparsable reports text that is not a JSON (or YAML) document.
	ErrUnparsable = errors.New("snapshot: unparsable document")
	// ErrInvalidStructure reports a document missing components or formSettings.
	ErrInvalidStructure = errors.New("snapshot: invalid form data structure")
)

// Document is the canonical export shape.
type Document struct {
	Components   []model.Component  `json:"components" yaml:"components"`
	FormSettings model.FormSettings `json:"formSettings" yaml:"formSettings"`
	Version      string             `json:"version" yaml:"version"`
	Timestamp    string             `json:"timestamp" yaml:"timestamp"`
}

// NewDocument builds a document stamped with now. Inputs are copied.
func NewDocument(components []model.Component, settings model.FormSettings, now time.Time) Document {
	list := model.CloneComponents(components)
	if list == nil {
		list = []model.Component{}
	}
	return Document{
		Components:   list,
		FormSettings: settings,
		Version:      Version,
		Timestamp:    now.UTC().Format(TimestampLayout),
	}
}

// Export renders the canonical JSON text, indented by two spaces.
func Export(components []model.Component, settings model.FormSettings, now time.Time) ([]byte, error) {
	return Encode(NewDocument(components, settings, now))
}

// Encode renders doc as indented JSON.
func Encode(doc Document) ([]byte, error) {
	if doc.Components == nil {
		doc.Components = []model.Component{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode: %w", err)
	}
	return data, nil
}

// Decode parses raw JSON text. It returns ErrUnparsable for malformed text and
// ErrInvalidStructure when components is not a list or formSettings is not
// an object. Inside those, fields of the wrong shape are dropped and entries
// of components that are not objects are skipped.
func Decode(raw []byte) (Document, error) {
	var envelope struct {
		Components   json.RawMessage `json:"components"`
		FormSettings json.RawMessage `json:"formSettings"`
		Version      json.RawMessage `json:"version"`
		Timestamp    json.RawMessage `json:"timestamp"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(raw), &envelope); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return Document{}, fmt.Errorf("%w: %v", ErrUnparsable, err)
		}
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}
	if jsonKind(envelope.Components) != '[' || jsonKind(envelope.FormSettings) != '{' {
		return Document{}, ErrInvalidStructure
	}

	var items []json.RawMessage
	if err := json.Unmarshal(envelope.Components, &items); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}
	components := make([]model.Component, 0, len(items))
	for _, item := range items {
		if jsonKind(item) != '{' {
			continue
		}
		var c model.Component
		if err := json.Unmarshal(item, &c); err != nil {
			continue
		}
		components = append(components, c)
	}

	var settings model.FormSettings
	if err := json.Unmarshal(envelope.FormSettings, &settings); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}

	return Document{
		Components:   components,
		FormSettings: settings,
		Version:      looseString(envelope.Version),
		Timestamp:    looseString(envelope.Timestamp),
	}, nil
}

// Filename returns the conventional export file name, form-<unix-millis>.json.
func Filename(now time.Time) string {
	return fmt.Sprintf("form-%d.json", now.UnixMilli())
}

// looseString reads an informational string field, ignoring other shapes.
func looseString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// jsonKind returns the first significant byte of raw, or 0 when raw is empty.
func jsonKind(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
