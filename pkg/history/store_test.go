package history

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

func stateWith(labels ...string) model.FormState {
	state := model.NewFormState(model.DefaultFormSettings())
	for i, label := range labels {
		c := model.NewComponent(fmt.Sprintf("text_%d", i), model.FieldTypeText)
		c.Label = label
		state.Components = append(state.Components, c)
	}
	return state
}

// apply mimics a builder operation: snapshot first, then mutate.
func apply(s *Store, live model.FormState, next model.FormState) model.FormState {
	s.Snapshot(live)
	return next
}

func TestStore_UndoRedoInverse(t *testing.T) {
	s0 := stateWith()
	s1 := stateWith("a")
	s2 := stateWith("a", "b")

	store := New(s0)
	live := apply(store, s0, s1)
	live = apply(store, live, s2)

	undone, ok := store.Undo(live)
	if !ok {
		t.Fatalf("expected undo to succeed")
	}
	if diff := cmp.Diff(s1, undone); diff != "" {
		t.Fatalf("undo mismatch (-want +got):\n%s", diff)
	}

	redone, ok := store.Redo()
	if !ok {
		t.Fatalf("expected redo to succeed")
	}
	if diff := cmp.Diff(s2, redone); diff != "" {
		t.Fatalf("redo mismatch (-want +got):\n%s", diff)
	}

	live = redone
	for _, want := range []model.FormState{s1, s0} {
		got, ok := store.Undo(live)
		if !ok {
			t.Fatalf("expected undo to succeed")
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("undo mismatch (-want +got):\n%s", diff)
		}
		live = got
	}
	if _, ok := store.Undo(live); ok {
		t.Fatalf("expected undo at start of history to be a no-op")
	}
	if store.CanUndo() {
		t.Fatalf("expected CanUndo false at start")
	}
}

func TestStore_UndoOnFreshStoreIsNoop(t *testing.T) {
	store := New(stateWith())
	if _, ok := store.Undo(stateWith()); ok {
		t.Fatalf("expected no-op undo")
	}
	if _, ok := store.Redo(); ok {
		t.Fatalf("expected no-op redo")
	}
	if store.Len() != 1 || store.Cursor() != 0 {
		t.Fatalf("unexpected store shape: len=%d cursor=%d", store.Len(), store.Cursor())
	}
}

func TestStore_NewEditPrunesRedoBranch(t *testing.T) {
	store := New(stateWith())
	live := apply(store, stateWith(), stateWith("a"))
	live = apply(store, live, stateWith("a", "b"))

	live, _ = store.Undo(live)
	if !store.CanRedo() {
		t.Fatalf("expected redo to be available after undo")
	}

	_ = apply(store, live, stateWith("a", "c"))
	if store.CanRedo() {
		t.Fatalf("expected redo branch to be pruned")
	}
	if _, ok := store.Redo(); ok {
		t.Fatalf("expected redo to be a no-op after a new edit")
	}
}

func TestStore_CapKeepsFiftyEntries(t *testing.T) {
	store := New(stateWith())
	live := stateWith()
	for i := 0; i < 60; i++ {
		next := model.CloneState(live)
		next.Settings.Title = fmt.Sprintf("title %d", i)
		live = apply(store, live, next)
	}
	if got := store.Len(); got != DefaultLimit {
		t.Fatalf("expected %d entries, got %d", DefaultLimit, got)
	}

	undos := 0
	for {
		prev, ok := store.Undo(live)
		if !ok {
			break
		}
		live = prev
		undos++
	}
	if undos != DefaultLimit-1 {
		t.Fatalf("expected %d undos, got %d", DefaultLimit-1, undos)
	}
	if got := store.Len(); got != DefaultLimit {
		t.Fatalf("expected cap to hold after undo, got %d entries", got)
	}
	// 60 edits produce titles 0..59; recording the live state on the first
	// undo pushes one more entry out, leaving "title 10" as the oldest.
	if got, want := live.Settings.Title, "title 10"; got != want {
		t.Fatalf("oldest reachable title = %q, want %q", got, want)
	}
}

func TestStore_EntriesDoNotAlias(t *testing.T) {
	live := stateWith("a")
	store := New(stateWith())
	store.Snapshot(live)

	live.Components[0].Label = "mutated"
	entry, _ := store.Entry(0)
	if got := entry.Components[0].Label; got != "a" {
		t.Fatalf("entry aliased live state, got %q", got)
	}

	entry.Components[0].Label = "mutated again"
	again, _ := store.Entry(0)
	if got := again.Components[0].Label; got != "a" {
		t.Fatalf("entry aliased returned copy, got %q", got)
	}
}

func TestStore_SelectionRefreshDoesNotGrowHistory(t *testing.T) {
	store := New(stateWith("a"))
	live := stateWith("a")
	live.SelectedID = "text_0"
	live.SelectedID = ""
	live.SelectedID = "text_0"

	_ = apply(store, live, stateWith("a", "b"))
	if got := store.Len(); got != 1 {
		t.Fatalf("expected first edit to reuse the seed entry, got %d entries", got)
	}
	entry, _ := store.Entry(0)
	if entry.SelectedID != "text_0" {
		t.Fatalf("expected seed entry to carry the selection, got %q", entry.SelectedID)
	}
}

func TestStore_ResetAndLimitOption(t *testing.T) {
	store := New(stateWith(), WithLimit(1))
	if store.Limit() != MinLimit {
		t.Fatalf("expected limit raised to %d, got %d", MinLimit, store.Limit())
	}
	live := apply(store, stateWith(), stateWith("a"))
	live = apply(store, live, stateWith("a", "b"))
	live = apply(store, live, stateWith("a", "b", "c"))
	if store.Len() != MinLimit {
		t.Fatalf("expected %d entries, got %d", MinLimit, store.Len())
	}

	store.Reset(live)
	if store.Len() != 1 || store.CanUndo() || store.CanRedo() {
		t.Fatalf("expected reset store, got len=%d", store.Len())
	}
}
