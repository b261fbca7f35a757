package render

import (
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ErrorMapping splits an error payload into per-component and form-level
// messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MapErrorPayload assigns messages to components. Keys may be bare component
// ids or JSON-pointer style paths ("/text_1", "#/body/text_1/0"); the first
// segment naming a component wins. Anything else becomes a form-level message
// so nothing is lost.
func MapErrorPayload(form model.FormState, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}

	known := make(map[string]struct{}, len(form.Components))
	for _, c := range form.Components {
		known[c.ID] = struct{}{}
	}

	for _, key := range sortedKeys(payload) {
		messages := normalizeMessages(payload[key])
		if len(messages) == 0 {
			continue
		}
		if id, ok := matchComponent(key, known); ok {
			mapping.Fields[id] = normalizeMessages(append(mapping.Fields[id], messages...))
			continue
		}
		mapping.Form = append(mapping.Form, messages...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// MergeFormErrors concatenates message lists, trimming blanks and dropping
// duplicates in order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func matchComponent(key string, known map[string]struct{}) (string, bool) {
	segments := strings.FieldsFunc(strings.TrimSpace(key), func(r rune) bool {
		return r == '/' || r == '.' || r == '#' || r == '$' || r == '[' || r == ']'
	})
	for _, segment := range segments {
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		if _, ok := known[segment]; ok {
			return segment, true
		}
	}
	return "", false
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
