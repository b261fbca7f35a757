package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/snapshot"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

type harness struct {
	app     *app
	out     *bytes.Buffer
	errOut  *bytes.Buffer
	copied  []string
	dir     string
	answers *scriptedDriver
}

func newHarness(t *testing.T, stdin string) *harness {
	t.Helper()

	h := &harness{
		out:     &bytes.Buffer{},
		errOut:  &bytes.Buffer{},
		dir:     t.TempDir(),
		answers: &scriptedDriver{},
	}
	h.app = newApp(strings.NewReader(stdin), h.out, h.errOut)
	h.app.now = func() time.Time { return testsupport.FixedTime }
	h.app.copyText = func(text string) error {
		h.copied = append(h.copied, text)
		return nil
	}
	h.app.promptsFn = func() tui.PromptDriver { return h.answers }
	return h
}

func (h *harness) run(args ...string) error {
	cmd := h.app.rootCmd()
	cmd.SetArgs(append([]string{"--config", filepath.Join(h.dir, "missing.yaml")}, args...))
	return cmd.ExecuteContext(context.Background())
}

func (h *harness) path(name string) string {
	return filepath.Join(h.dir, name)
}

func writeForm(t *testing.T, path string) {
	t.Helper()

	data, err := snapshot.Export(testsupport.ContactForm().Components, testsupport.ContactForm().Settings, testsupport.FixedTime)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

type scriptedDriver struct {
	inputs   []string
	selects  []int
	texts    []string
	confirms []bool
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	v := d.inputs[0]
	d.inputs = d.inputs[1:]
	return v, nil
}

func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return true, nil
	}
	v := d.confirms[0]
	d.confirms = d.confirms[1:]
	return v, nil
}

func (d *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return 0, errors.New("no select scripted")
	}
	v := d.selects[0]
	d.selects = d.selects[1:]
	return v, nil
}

func (d *scriptedDriver) MultiSelect(context.Context, tui.SelectConfig) ([]int, error) {
	return nil, errors.New("no multiselect scripted")
}

func (d *scriptedDriver) TextArea(context.Context, tui.TextAreaConfig) (string, error) {
	if len(d.texts) == 0 {
		return "", errors.New("no textarea scripted")
	}
	v := d.texts[0]
	d.texts = d.texts[1:]
	return v, nil
}

func (d *scriptedDriver) Info(context.Context, string) error { return nil }

func TestNewAndValidate(t *testing.T) {
	h := newHarness(t, "")
	path := h.path("blank.json")

	require.NoError(t, h.run("new", path))
	assert.Contains(t, h.out.String(), "Form written to "+path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := snapshot.Decode(raw)
	require.NoError(t, err)
	assert.Empty(t, doc.Components)
	assert.Equal(t, "2024-03-05T14:30:00.000Z", doc.Timestamp)

	h.out.Reset()
	err = h.run("validate", path)
	assert.ErrorIs(t, err, errInvalidForm)
	assert.Contains(t, h.out.String(), "Form title is required")
	assert.Contains(t, h.out.String(), "Form must have at least one component")
}

func TestValidate_ValidForm(t *testing.T) {
	h := newHarness(t, "")
	path := h.path("contact.json")
	writeForm(t, path)

	require.NoError(t, h.run("validate", "--json", path))
	assert.JSONEq(t, `{"valid": true, "errors": []}`, h.out.String())
}

func TestLoad_RejectsMalformed(t *testing.T) {
	h := newHarness(t, "")
	path := h.path("broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"components": []}`), 0o644))

	err := h.run("validate", path)
	assert.ErrorIs(t, err, snapshot.ErrInvalidStructure)
}

func TestSchema(t *testing.T) {
	h := newHarness(t, "")
	path := h.path("contact.json")
	writeForm(t, path)

	require.NoError(t, h.run("schema", "--path", "/contact", path))
	out := h.out.String()
	assert.Contains(t, out, `"openapi": "3.0.3"`)
	assert.Contains(t, out, `"/contact"`)
	assert.Contains(t, out, `"text_1"`)
}

func TestExport(t *testing.T) {
	h := newHarness(t, "")
	path := h.path("contact.json")
	writeForm(t, path)

	require.NoError(t, h.run("export", "--clipboard", path))
	require.Len(t, h.copied, 1)
	assert.Contains(t, h.copied[0], `"version": "1.0"`)
	assert.Contains(t, h.out.String(), "Form copied to clipboard")

	h.out.Reset()
	require.NoError(t, h.run("export", "--yaml", path))
	assert.Contains(t, h.out.String(), "formSettings:")

	yamlPath := h.path("contact.yaml")
	require.NoError(t, h.run("export", "--file", yamlPath, path))
	raw, err := os.ReadFile(yamlPath)
	require.NoError(t, err)
	doc, err := snapshot.DecodeYAML(raw)
	require.NoError(t, err)
	assert.Len(t, doc.Components, 4)
}

func TestPreview_HTML(t *testing.T) {
	h := newHarness(t, "")
	path := h.path("contact.json")
	writeForm(t, path)

	require.NoError(t, h.run("preview", path))
	assert.Contains(t, h.out.String(), `<form class="fb-form"`)
	assert.Contains(t, h.out.String(), "Submit Form")
}

func TestPreview_TUI(t *testing.T) {
	h := newHarness(t, "")
	path := h.path("contact.json")
	writeForm(t, path)
	h.answers.inputs = []string{"Jane", "jane@example.com"}
	h.answers.selects = []int{0}
	h.answers.texts = []string{""}

	require.NoError(t, h.run("preview", "--tui", "--format", "pretty", path))
	assert.Equal(t, "email_2=jane@example.com\nselect_3=Sales\ntext_1=Jane\n\n", h.out.String())

	h.out.Reset()
	h.answers.inputs = []string{"Jane", "jane@example.com"}
	h.answers.selects = []int{0}
	h.answers.texts = []string{""}
	h.answers.confirms = []bool{false}
	require.NoError(t, h.run("preview", "--tui", path))
	assert.Contains(t, h.out.String(), "Submission cancelled")
}

func TestEdit_Session(t *testing.T) {
	script := strings.Join([]string{
		`title "Contact us"`,
		`add text Full name`,
		`required text_1709649000000`,
		`rule text_1709649000000 minLength 2 "Too short"`,
		`add select`,
		`options select_1709649000001 Sales Support`,
		`label select_1709649000001 "Topic"`,
		`mv select_1709649000001 0`,
		`list`,
		`validate`,
		`save`,
		`quit`,
	}, "\n")
	h := newHarness(t, script)
	path := h.path("session.json")

	require.NoError(t, h.run("edit", path))
	out := h.out.String()
	assert.Contains(t, out, "added text_1709649000000")
	assert.Contains(t, out, "added select_1709649000001")
	assert.Contains(t, out, `> 0. select_1709649000001 [select] "Topic"`)
	assert.Contains(t, out, `  1. text_1709649000000 [text] "Full name" *`)
	assert.Contains(t, out, "Form is valid")
	assert.Contains(t, out, "saved "+path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := snapshot.Decode(raw)
	require.NoError(t, err)
	require.Len(t, doc.Components, 2)
	assert.Equal(t, "Contact us", doc.FormSettings.Title)
	assert.Equal(t, []string{"Sales", "Support"}, doc.Components[0].Options)
	assert.Equal(t, []model.ValidationRule{
		{Kind: model.RuleMinLength, Value: model.NumberValue(2), Message: "Too short"},
	}, doc.Components[1].ValidationRules)
}

func TestEdit_UndoRedoRestore(t *testing.T) {
	script := strings.Join([]string{
		`undo`,
		`add email`,
		`rm email_1709649000000`,
		`restore`,
		`restore`,
		`ctrl+z`,
		`ctrl+y`,
		`redo`,
		`rm missing`,
		`bogus`,
		`exit`,
	}, "\n")
	h := newHarness(t, script)

	require.NoError(t, h.run("edit"))
	out := h.out.String()
	assert.Contains(t, out, "nothing to undo")
	assert.Contains(t, out, "removed email_1709649000000 (type restore within 10s to bring it back)")
	assert.Contains(t, out, "restored email_1709649000000")
	assert.Contains(t, out, "nothing to restore")
	assert.Contains(t, out, "undone")
	assert.Contains(t, out, "redone")
	assert.Contains(t, out, "nothing to redo")
	assert.Contains(t, out, `error: no component "missing"`)
	assert.Contains(t, out, `error: unknown command "bogus" (type help)`)
}

func TestEdit_LoadExistingAndVerboseLogging(t *testing.T) {
	h := newHarness(t, "list\n")
	path := h.path("contact.json")
	writeForm(t, path)

	require.NoError(t, h.run("--verbose", "edit", path))
	assert.Contains(t, h.out.String(), "Contact us")
	assert.Contains(t, h.out.String(), "3. textarea_4 [textarea]")
	assert.Contains(t, h.out.String(), "history 1/50")
	assert.Contains(t, h.errOut.String(), "op=import")
}

func TestEdit_UsageErrors(t *testing.T) {
	h := newHarness(t, "label\nrequired text_1 maybe\nmv x y\ntheme neon\nadd slider\nhelp\n")

	require.NoError(t, h.run("edit"))
	out := h.out.String()
	assert.Contains(t, out, "error: usage: label <id> <text>")
	assert.Contains(t, out, `error: expected on or off, got "maybe"`)
	assert.Contains(t, out, `error: index must be a number: "y"`)
	assert.Contains(t, out, `error: unknown theme "neon"`)
	assert.Contains(t, out, "Bring back the last removed component")
	assert.Contains(t, out, `error: builder: unknown field type: "slider" (known: text, textarea, select, checkbox, radio, number, email, phone, date, file)`)
	assert.Contains(t, out, "File Upload")
}

func TestEdit_History(t *testing.T) {
	h := newHarness(t, "add text\nadd email Contact\nundo\nhistory\nquit\n")

	require.NoError(t, h.run("edit"))
	out := h.out.String()
	assert.Contains(t, out, "  0. 0 components, \"\"")
	assert.Contains(t, out, "  1. 1 components, \"\"")
	assert.Contains(t, out, "> 2. 2 components, \"\"")
	assert.Contains(t, out, "history 4/50")
}
