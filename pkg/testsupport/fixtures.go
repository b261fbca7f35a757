package testsupport

import (
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/recovery"
)

// FixedTime is the reference instant used by fixtures and fake clocks.
var FixedTime = time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)

// ContactForm returns a small, valid form used across package tests.
func ContactForm() model.FormState {
	settings := model.DefaultFormSettings()
	settings.Title = "Contact us"
	settings.Description = "We reply within two days"

	return model.FormState{
		Components: []model.Component{
			{
				ID:          "text_1",
				Type:        model.FieldTypeText,
				Label:       "Full name",
				Placeholder: model.StringPtr("Jane Doe"),
				Required:    true,
				ValidationRules: []model.ValidationRule{
					{Kind: model.RuleMinLength, Value: model.NumberValue(2), Message: "Too short"},
				},
			},
			{
				ID:       "email_2",
				Type:     model.FieldTypeEmail,
				Label:    "Email",
				Required: true,
			},
			{
				ID:      "select_3",
				Type:    model.FieldTypeSelect,
				Label:   "Topic",
				Options: []string{"Sales", "Support"},
			},
			{
				ID:    "textarea_4",
				Type:  model.FieldTypeTextarea,
				Label: "Message",
				Rows:  model.IntPtr(5),
			},
		},
		Settings: settings,
	}
}

// MustReadFile loads a fixture from disk, failing the test on error.
func MustReadFile(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}

// AssertState fails the test when got differs structurally from want.
func AssertState(t *testing.T, want, got model.FormState) {
	t.Helper()

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("form state mismatch (-want +got):\n%s", diff)
	}
}

// FakeScheduler is a manual clock implementing recovery.Scheduler. Timers fire
// synchronously from Advance, in deadline order.
type FakeScheduler struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*fakeTimer
}

var _ recovery.Scheduler = (*FakeScheduler)(nil)

// NewFakeScheduler starts the clock at start.
func NewFakeScheduler(start time.Time) *FakeScheduler {
	return &FakeScheduler{now: start}
}

// Now reports the fake clock's time; pass it as a clock option.
func (s *FakeScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// AfterFunc implements recovery.Scheduler.
func (s *FakeScheduler) AfterFunc(d time.Duration, fn func()) recovery.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	timer := &fakeTimer{deadline: s.now.Add(d), fn: fn, seq: s.seq}
	s.timers = append(s.timers, timer)
	return timer
}

// Advance moves the clock forward and fires every timer that became due.
func (s *FakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now = s.now.Add(d)
	var due []*fakeTimer
	remaining := s.timers[:0]
	for _, timer := range s.timers {
		if timer.stopped() {
			continue
		}
		if !timer.deadline.After(s.now) {
			due = append(due, timer)
			continue
		}
		remaining = append(remaining, timer)
	}
	s.timers = remaining
	s.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].seq < due[j].seq
		}
		return due[i].deadline.Before(due[j].deadline)
	})
	for _, timer := range due {
		timer.fire()
	}
}

// Active returns how many timers are scheduled and not stopped.
func (s *FakeScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, timer := range s.timers {
		if !timer.stopped() {
			count++
		}
	}
	return count
}

type fakeTimer struct {
	mu       sync.Mutex
	deadline time.Time
	fn       func()
	seq      int
	done     bool
}

func (t *fakeTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}

func (t *fakeTimer) stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

func (t *fakeTimer) fire() {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return
	}
	t.done = true
	fn := t.fn
	t.mu.Unlock()
	fn()
}
