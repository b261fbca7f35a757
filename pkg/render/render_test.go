package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

type stubRenderer struct {
	name string
	out  []byte
	err  error
	got  model.FormState
}

func (s *stubRenderer) Name() string        { return s.name }
func (s *stubRenderer) ContentType() string { return "text/plain" }
func (s *stubRenderer) Render(_ context.Context, form model.FormState, _ render.RenderOptions) ([]byte, error) {
	s.got = form
	return s.out, s.err
}

func TestRegistry(t *testing.T) {
	html := &stubRenderer{name: "html", out: []byte("<form>")}
	tui := &stubRenderer{name: "tui"}

	registry, err := render.NewRegistry(tui, html)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if diff := cmp.Diff([]string{"html", "tui"}, registry.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	if err := registry.Register(&stubRenderer{name: "html"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(&stubRenderer{}); err == nil {
		t.Fatalf("expected empty name error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}
	if _, err := registry.Get("pdf"); err == nil {
		t.Fatalf("expected missing renderer error")
	}

	form := testsupport.ContactForm()
	out, err := registry.Render(context.Background(), "html", form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "<form>" {
		t.Fatalf("output = %q", out)
	}
	testsupport.AssertState(t, form, html.got)
}

func TestRegistry_RenderWrapsErrors(t *testing.T) {
	boom := errors.New("boom")
	registry, err := render.NewRegistry(&stubRenderer{name: "html", err: boom})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	_, err = registry.Render(context.Background(), "html", model.FormState{}, render.RenderOptions{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestMapErrorPayload(t *testing.T) {
	form := testsupport.ContactForm()

	payload := map[string][]string{
		"text_1":            {"Name is required", " Name is required "},
		"/email_2":          {"Email invalid"},
		"#/body/select_3/0": {"Unknown option"},
		"non_field_errors":  {"Form level error"},
		"/unknown":          {"Falls back to form"},
		"textarea_4":        {"  "},
	}

	mapped := render.MapErrorPayload(form, payload)

	wantFields := map[string][]string{
		"text_1":   {"Name is required"},
		"email_2":  {"Email invalid"},
		"select_3": {"Unknown option"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	wantForm := []string{"Falls back to form", "Form level error"}
	if diff := cmp.Diff(wantForm, mapped.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestSortedHiddenFields(t *testing.T) {
	sorted := render.SortedHiddenFields(map[string]string{
		" version ": "4",
		"_csrf":     "token123",
		"":          "ignored",
	})
	want := []render.HiddenField{
		{Name: "_csrf", Value: "token123"},
		{Name: "version", Value: "4"},
	}
	if diff := cmp.Diff(want, sorted); diff != "" {
		t.Fatalf("hidden fields mismatch (-want +got):\n%s", diff)
	}
}
