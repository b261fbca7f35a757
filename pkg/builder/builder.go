// Package builder owns the live form being edited. Every structural change
// goes through a Builder method, which records a history snapshot before the
// change is applied and keeps the soft-delete slot consistent with it.
package builder

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/goliatone/go-formbuilder/internal/idgen"
	"github.com/goliatone/go-formbuilder/pkg/history"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/recovery"
	"github.com/goliatone/go-formbuilder/pkg/snapshot"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// ErrUnknownFieldType is returned by AddNew for types outside the palette.
var ErrUnknownFieldType = errors.New("builder: unknown field type")

// Builder is the form state engine. Methods are safe for concurrent use;
// each runs to completion under a single lock.
type Builder struct {
	mu      sync.Mutex
	state   model.FormState
	preview bool

	history *history.Store
	deleted *recovery.Buffer

	logger          *slog.Logger
	now             func() time.Time
	newID           func() string
	initialSettings model.FormSettings
	historyLimit    int
	grace           time.Duration
	scheduler       recovery.Scheduler
	onExpire        func(recovery.Deleted)
}

// New constructs a Builder holding an empty form.
func New(options ...Option) *Builder {
	b := &Builder{
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:             time.Now,
		initialSettings: model.DefaultFormSettings(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	if b.newID == nil {
		b.newID = idgen.UnixMillis(b.now)
	}

	b.state = model.NewFormState(b.initialSettings)
	b.history = history.New(b.state, history.WithLimit(b.historyLimit))
	b.deleted = recovery.New(
		recovery.WithGracePeriod(b.grace),
		recovery.WithScheduler(b.scheduler),
		recovery.WithClock(b.now),
		recovery.WithExpiryHook(b.handleExpiry),
	)
	return b
}

// Add appends c to the form.
func (b *Builder) Add(c model.Component) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.history.Snapshot(b.state)
	b.state.Components = append(b.state.Components, model.CloneComponent(c))
	b.deleted.Clear()
	b.logOp("add", c.ID)
}

// AddNew creates a component of type t with palette defaults, appends it and
// returns a copy. The id is "<type>_<suffix>" and never collides with an
// existing component.
func (b *Builder) AddNew(t model.FieldType) (model.Component, error) {
	if !t.Valid() {
		return model.Component{}, fmt.Errorf("%w: %q", ErrUnknownFieldType, t)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	c := model.NewComponent(b.uniqueIDLocked(t), t)
	b.history.Snapshot(b.state)
	b.state.Components = append(b.state.Components, c)
	b.deleted.Clear()
	b.logOp("add", c.ID)
	return model.CloneComponent(c), nil
}

// Insert places c at index, clamped to the list bounds.
func (b *Builder) Insert(c model.Component, index int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	index = clamp(index, len(b.state.Components))
	b.history.Snapshot(b.state)
	b.state.Components = slices.Insert(b.state.Components, index, model.CloneComponent(c))
	b.deleted.Clear()
	b.logOp("insert", c.ID)
}

// Update merges patch into the component with id. It reports false, and
// changes nothing, when no such component exists.
func (b *Builder) Update(id string, patch model.ComponentPatch) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := b.state.IndexOf(id)
	if idx < 0 {
		return false
	}
	b.history.Snapshot(b.state)
	b.state.Components[idx] = patch.Apply(b.state.Components[idx])
	b.deleted.Clear()
	b.logOp("update", id)
	return true
}

// Remove deletes the component with id and makes it recoverable through
// UndoDelete until the grace period passes. It reports false when absent.
func (b *Builder) Remove(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := b.state.IndexOf(id)
	if idx < 0 {
		return false
	}
	b.history.Snapshot(b.state)
	removed := b.state.Components[idx]
	b.state.Components = slices.Delete(b.state.Components, idx, idx+1)
	if b.state.SelectedID == id {
		b.state.SelectedID = ""
	}
	b.deleted.Record(removed, idx)
	b.logOp("remove", id)
	return true
}

// Reorder replaces the component list wholesale with components.
func (b *Builder) Reorder(components []model.Component) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reorderLocked(components)
}

// Move relocates the component with id to toIndex, clamped, shifting the
// components in between. It reports false when id is absent or the order
// would not change.
func (b *Builder) Move(id string, toIndex int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	from := b.state.IndexOf(id)
	if from < 0 {
		return false
	}
	to := clamp(toIndex, len(b.state.Components)-1)
	if to == from {
		return false
	}

	next := slices.Clone(b.state.Components)
	moved := next[from]
	next = slices.Delete(next, from, from+1)
	next = slices.Insert(next, to, moved)
	b.reorderLocked(next)
	return true
}

func (b *Builder) reorderLocked(components []model.Component) {
	b.history.Snapshot(b.state)
	next := model.CloneComponents(components)
	if next == nil {
		next = []model.Component{}
	}
	b.state.Components = next
	b.deleted.Clear()
	b.logOp("reorder", "")
}

// Select marks the component with id as selected. An empty or unknown id
// clears the selection. Selection is not recorded in history.
func (b *Builder) Select(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if id != "" && b.state.IndexOf(id) < 0 {
		id = ""
	}
	b.state.SelectedID = id
}

// Selected returns the selected component, if any.
func (b *Builder) Selected() (model.Component, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.Selected()
}

// UpdateSettings merges patch into the form settings.
func (b *Builder) UpdateSettings(patch model.SettingsPatch) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.history.Snapshot(b.state)
	b.state.Settings = patch.Apply(b.state.Settings)
	b.deleted.Clear()
	b.logOp("settings", "")
}

// Reset returns to an empty form with fresh history and preview off.
func (b *Builder) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.state = model.NewFormState(b.initialSettings)
	b.history.Reset(b.state)
	b.deleted.Clear()
	b.preview = false
	b.logOp("reset", "")
}

// Undo restores the previous history entry. It reports false when there is
// nothing to undo.
func (b *Builder) Undo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	prev, ok := b.history.Undo(b.state)
	if !ok {
		return false
	}
	b.state = prev
	b.deleted.Clear()
	b.logOp("undo", "")
	return true
}

// Redo re-applies the next history entry. It reports false at the end of
// history.
func (b *Builder) Redo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	next, ok := b.history.Redo()
	if !ok {
		return false
	}
	b.state = next
	b.deleted.Clear()
	b.logOp("redo", "")
	return true
}

// CanUndo reports whether Undo would change the form.
func (b *Builder) CanUndo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history.CanUndo()
}

// CanRedo reports whether Redo would change the form.
func (b *Builder) CanRedo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history.CanRedo()
}

// HistoryLen returns the number of recorded history entries.
func (b *Builder) HistoryLen() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history.Len()
}

// HistoryLimit returns the cap on recorded history entries.
func (b *Builder) HistoryLimit() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history.Limit()
}

// HistoryCursor returns the index of the entry the form was last restored
// from or recorded at.
func (b *Builder) HistoryCursor() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history.Cursor()
}

// HistoryEntry returns a copy of the recorded form at index i, oldest first.
func (b *Builder) HistoryEntry(i int) (model.FormState, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history.Entry(i)
}

// UndoDelete re-inserts the most recently removed component at its original
// position, clamped to the current list length. History is not touched. It
// reports false when nothing is recoverable, or when a component with the
// same id has since been added.
func (b *Builder) UndoDelete() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, ok := b.deleted.Take()
	if !ok {
		return false
	}
	if b.state.IndexOf(entry.Component.ID) >= 0 {
		b.logger.Warn("restore skipped, id in use", "op", "undo-delete", "id", entry.Component.ID)
		return false
	}
	index := clamp(entry.Index, len(b.state.Components))
	b.state.Components = slices.Insert(b.state.Components, index, entry.Component)
	b.logOp("undo-delete", entry.Component.ID)
	return true
}

// ClearRecentlyDeleted discards the recoverable deletion, if any.
func (b *Builder) ClearRecentlyDeleted() {
	b.deleted.Clear()
}

// RecentlyDeleted reports the recoverable deletion, if any.
func (b *Builder) RecentlyDeleted() (recovery.Deleted, bool) {
	return b.deleted.Pending()
}

// SetPreviewMode switches the preview flag.
func (b *Builder) SetPreviewMode(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.preview = on
}

// TogglePreview flips the preview flag and returns the new value.
func (b *Builder) TogglePreview() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.preview = !b.preview
	return b.preview
}

// PreviewMode reports the preview flag.
func (b *Builder) PreviewMode() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.preview
}

// State returns a copy of the live form.
func (b *Builder) State() model.FormState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return model.CloneState(b.state)
}

// Validate checks the live form.
func (b *Builder) Validate() validation.Result {
	b.mu.Lock()
	defer b.mu.Unlock()
	return validation.Validate(b.state)
}

// Document returns the live form as an export document stamped now.
func (b *Builder) Document() snapshot.Document {
	b.mu.Lock()
	defer b.mu.Unlock()
	return snapshot.NewDocument(b.state.Components, b.state.Settings, b.now())
}

// Export renders the live form in the canonical JSON format.
func (b *Builder) Export() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := snapshot.Export(b.state.Components, b.state.Settings, b.now())
	if err != nil {
		return nil, fmt.Errorf("builder: export: %w", err)
	}
	return data, nil
}

// Import replaces the form with the document in raw. On error nothing
// changes. On success the selection is cleared, preview is switched off, any
// recoverable deletion is dropped and history restarts from the imported
// form.
func (b *Builder) Import(raw []byte) error {
	doc, err := snapshot.Decode(raw)
	if err != nil {
		b.logger.Warn("import rejected", "op", "import", "error", err)
		return fmt.Errorf("builder: import: %w", err)
	}
	b.ImportDocument(doc)
	return nil
}

// ImportDocument replaces the form with an already decoded document, with the
// same effects as a successful Import.
func (b *Builder) ImportDocument(doc snapshot.Document) {
	b.mu.Lock()
	defer b.mu.Unlock()

	components := model.CloneComponents(doc.Components)
	if components == nil {
		components = []model.Component{}
	}
	b.state = model.FormState{
		Components: components,
		Settings:   doc.FormSettings,
	}
	b.history.Reset(b.state)
	b.deleted.Clear()
	b.preview = false
	b.logOp("import", "")
}

// Close cancels the pending expiry timer, if any.
func (b *Builder) Close() error {
	b.deleted.Clear()
	return nil
}

func (b *Builder) handleExpiry(d recovery.Deleted) {
	b.logger.Debug("deletion expired", "op", "expire", "id", d.Component.ID)
	if b.onExpire != nil {
		b.onExpire(d)
	}
}

func (b *Builder) uniqueIDLocked(t model.FieldType) string {
	base := fmt.Sprintf("%s_%s", t, b.newID())
	id := base
	for n := 2; b.state.IndexOf(id) >= 0; n++ {
		id = fmt.Sprintf("%s_%d", base, n)
	}
	return id
}

func (b *Builder) logOp(op, id string) {
	b.logger.Debug("form changed",
		"op", op,
		"id", id,
		"components", len(b.state.Components),
		"cursor", b.history.Cursor(),
	)
}

// clamp limits i to [0, upper]. A negative upper yields 0.
func clamp(i, upper int) int {
	if upper < 0 || i < 0 {
		return 0
	}
	if i > upper {
		return upper
	}
	return i
}
