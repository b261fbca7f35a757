// Package history keeps the linear undo/redo stack of form snapshots.
//
// Snapshots are taken before a mutation is applied, so the state the mutation
// produces is not recorded until the next snapshot, or until an undo needs it
// as the redo target. Every entry is a structural copy: nothing stored here
// aliases the live state handed in or the states handed out.
package history

import (
	"github.com/goliatone/go-formbuilder/pkg/model"
)

const (
	// DefaultLimit is the maximum number of entries retained.
	DefaultLimit = 50
	// MinLimit keeps room for one undo step.
	MinLimit = 2
)

// Option configures a Store.
type Option func(*Store)

// WithLimit overrides the entry cap. Values below MinLimit are raised to it.
func WithLimit(limit int) Option {
	return func(s *Store) {
		if limit <= 0 {
			return
		}
		if limit < MinLimit {
			limit = MinLimit
		}
		s.limit = limit
	}
}

// Store holds the snapshot entries and the cursor. It is not safe for
// concurrent use; the builder serialises access.
type Store struct {
	entries []model.FormState
	cursor  int
	limit   int
	// pending is set once the live state has moved past entries[cursor]
	// through an operation and has not been recorded yet.
	pending bool
}

// New seeds a store with the initial state as its only entry.
func New(initial model.FormState, options ...Option) *Store {
	s := &Store{limit: DefaultLimit}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	s.Reset(initial)
	return s
}

// Reset discards every entry and re-seeds the store with state.
func (s *Store) Reset(state model.FormState) {
	s.entries = []model.FormState{model.CloneState(state)}
	s.cursor = 0
	s.pending = false
}

// Snapshot records pre, the state about to be mutated. Entries after the
// cursor are pruned: once a new edit follows an undo, the undone future is
// unreachable.
func (s *Store) Snapshot(pre model.FormState) {
	s.entries = s.entries[:s.cursor+1]
	if s.pending {
		s.entries = append(s.entries, model.CloneState(pre))
		s.cursor = len(s.entries) - 1
		s.trim()
	} else {
		// pre was derived from entries[cursor] without an operation (for
		// example a selection change); refresh the entry in place.
		s.entries[s.cursor] = model.CloneState(pre)
	}
	s.pending = true
}

// Undo steps back one entry. live is the current state; when it has not been
// recorded yet it is appended first so Redo can return to it. The returned
// state is a fresh copy the caller may own. ok is false when there is nothing
// to undo.
func (s *Store) Undo(live model.FormState) (model.FormState, bool) {
	if !s.CanUndo() {
		return model.FormState{}, false
	}
	if s.pending {
		s.entries = append(s.entries[:s.cursor+1], model.CloneState(live))
		s.cursor = len(s.entries) - 1
		s.pending = false
		s.trim()
	}
	s.cursor--
	return model.CloneState(s.entries[s.cursor]), true
}

// Redo steps forward one entry. ok is false at the end of history.
func (s *Store) Redo() (model.FormState, bool) {
	if !s.CanRedo() {
		return model.FormState{}, false
	}
	s.cursor++
	return model.CloneState(s.entries[s.cursor]), true
}

// CanUndo reports whether Undo would change state.
func (s *Store) CanUndo() bool {
	return s.cursor > 0 || s.pending
}

// CanRedo reports whether Redo would change state.
func (s *Store) CanRedo() bool {
	return !s.pending && s.cursor < len(s.entries)-1
}

// Len returns the number of entries held.
func (s *Store) Len() int {
	return len(s.entries)
}

// Cursor returns the index of the current entry.
func (s *Store) Cursor() int {
	return s.cursor
}

// Limit returns the configured entry cap.
func (s *Store) Limit() int {
	return s.limit
}

// Entry returns a copy of the entry at index i.
func (s *Store) Entry(i int) (model.FormState, bool) {
	if i < 0 || i >= len(s.entries) {
		return model.FormState{}, false
	}
	return model.CloneState(s.entries[i]), true
}

// trim drops the oldest entries past the cap, keeping the cursor on the same
// logical entry.
func (s *Store) trim() {
	overflow := len(s.entries) - s.limit
	if overflow <= 0 {
		return
	}
	copy(s.entries, s.entries[overflow:])
	for i := len(s.entries) - overflow; i < len(s.entries); i++ {
		s.entries[i] = model.FormState{}
	}
	s.entries = s.entries[:len(s.entries)-overflow]
	s.cursor -= overflow
}
