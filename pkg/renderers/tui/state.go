package tui

import "github.com/mohae/deepcopy"

// State holds answers keyed by component id, seeded from prefilled values,
// plus any messages to surface before a component is prompted.
type State struct {
	values map[string]any
	errors map[string][]string
}

// NewState copies prefill and errs into a fresh State.
func NewState(prefill map[string]any, errs map[string][]string) *State {
	values := make(map[string]any, len(prefill))
	for key, value := range prefill {
		values[key] = deepcopy.Copy(value)
	}
	errors := make(map[string][]string, len(errs))
	for key, messages := range errs {
		errors[key] = append([]string(nil), messages...)
	}
	return &State{values: values, errors: errors}
}

// Values returns a copy of the collected answers.
func (s *State) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	for key, value := range s.values {
		out[key] = deepcopy.Copy(value)
	}
	return out
}

// ErrorsFor returns the messages attached to id.
func (s *State) ErrorsFor(id string) []string {
	return s.errors[id]
}

// Value returns the answer stored for id.
func (s *State) Value(id string) (any, bool) {
	v, ok := s.values[id]
	return v, ok
}

// Set stores an answer for id.
func (s *State) Set(id string, value any) {
	s.values[id] = value
}

// Unset drops the answer for id so optional blanks are left out.
func (s *State) Unset(id string) {
	delete(s.values, id)
}
