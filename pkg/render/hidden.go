package render

import (
	"sort"
	"strings"
)

// HiddenField is a hidden input emitted alongside the visible fields.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SortedHiddenFields trims names, drops empty ones and returns the fields in
// name order for deterministic output.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}

	out := make([]HiddenField, 0, len(fields))
	seen := make(map[string]int, len(fields))
	for _, name := range sortedKeys(fields) {
		key := strings.TrimSpace(name)
		if key == "" {
			continue
		}
		if idx, ok := seen[key]; ok {
			out[idx].Value = fields[name]
			continue
		}
		seen[key] = len(out)
		out = append(out, HiddenField{Name: key, Value: fields[name]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) == 0 {
		return nil
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
