package formbuilder_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	formbuilder "github.com/goliatone/go-formbuilder"
	"github.com/goliatone/go-formbuilder/pkg/snapshot"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func TestOpen(t *testing.T) {
	form := testsupport.ContactForm()
	raw, err := snapshot.Export(form.Components, form.Settings, testsupport.FixedTime)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	b, err := formbuilder.Open(raw)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer b.Close()

	if diff := cmp.Diff(form, b.State()); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
	if b.CanUndo() {
		t.Fatalf("opened form should start with empty history")
	}
	if !formbuilder.Validate(b.State()).Valid {
		t.Fatalf("expected contact form to be valid")
	}
}

func TestOpen_Rejects(t *testing.T) {
	if _, err := formbuilder.Open([]byte(`{"formSettings": {}}`)); !errors.Is(err, snapshot.ErrInvalidStructure) {
		t.Fatalf("expected ErrInvalidStructure, got %v", err)
	}
}

func TestGenerateHTML(t *testing.T) {
	out, err := formbuilder.GenerateHTML(context.Background(), testsupport.ContactForm(), formbuilder.RenderOptions{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "Contact us") {
		t.Fatalf("expected title in output:\n%s", out)
	}
}
