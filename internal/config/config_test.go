package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("load empty path: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formbuilder.yaml")
	content := `historyLimit: 20
gracePeriod: 30s
idStrategy: uuid
defaults:
  formSettings:
    title: Untitled survey
    theme: dark
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Default()
	want.HistoryLimit = 20
	want.GracePeriod = Duration(30 * time.Second)
	want.IDStrategy = IDStrategyUUID
	want.Defaults.FormSettings.Title = "Untitled survey"
	want.Defaults.FormSettings.Theme = model.ThemeDark
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad duration":  "gracePeriod: soon\n",
		"zero limit":    "historyLimit: 0\n",
		"bad strategy":  "idStrategy: random\n",
		"bad theme":     "defaults:\n  formSettings:\n    theme: neon\n",
		"not a mapping": "- 1\n- 2\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(input)); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestBuilderOptions(t *testing.T) {
	cfg := Default()
	cfg.HistoryLimit = 3
	cfg.Defaults.FormSettings.Title = "Seeded"

	fixed := time.UnixMilli(1709649000000)
	b := builder.New(cfg.BuilderOptions(func() time.Time { return fixed })...)
	defer b.Close()

	if got := b.State().Settings.Title; got != "Seeded" {
		t.Fatalf("expected seeded title, got %q", got)
	}
	c, err := b.AddNew(model.FieldTypeText)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if c.ID != "text_1709649000000" {
		t.Fatalf("unexpected id %q", c.ID)
	}
	for i := 0; i < 5; i++ {
		if _, err := b.AddNew(model.FieldTypeText); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if got := b.HistoryLen(); got != 3 {
		t.Fatalf("expected history capped at 3, got %d", got)
	}
}

func TestDuration_MarshalYAML(t *testing.T) {
	got, err := Duration(1500 * time.Millisecond).MarshalYAML()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got != "1.5s" {
		t.Fatalf("unexpected duration %v", got)
	}
}
