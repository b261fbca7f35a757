package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/snapshot"
)

const prompt = "formbuilder> "

var errQuit = errors.New("quit")

type commandFunc func(ctx context.Context, args []string) error

type command struct {
	usage string
	help  string
	min   int
	run   commandFunc
}

// session is one interactive editing loop over a single builder.
type session struct {
	app      *app
	b        *builder.Builder
	out      io.Writer
	path     string
	commands map[string]command
	aliases  map[string]string
}

func newSession(a *app, b *builder.Builder, out io.Writer) *session {
	s := &session{app: a, b: b, out: out}
	s.commands = map[string]command{
		"add":         {usage: "add <type> [label]", help: "Append a component of the given type", min: 1, run: s.add},
		"label":       {usage: "label <id> <text>", help: "Set a component label", min: 2, run: s.label},
		"placeholder": {usage: "placeholder <id> <text>", help: "Set a component placeholder", min: 2, run: s.placeholder},
		"required":    {usage: "required <id> [on|off]", help: "Mark a component required", min: 1, run: s.required},
		"options":     {usage: "options <id> <option>...", help: "Replace a component's options", min: 2, run: s.options},
		"rule":        {usage: "rule <id> <minLength|maxLength|pattern|custom> <value> [message]", help: "Attach a validation rule", min: 3, run: s.rule},
		"rm":          {usage: "rm <id>", help: "Remove a component (restorable for a short while)", min: 1, run: s.remove},
		"mv":          {usage: "mv <id> <index>", help: "Move a component to a position", min: 2, run: s.move},
		"select":      {usage: "select [id]", help: "Select a component, or clear the selection", run: s.selectComponent},
		"title":       {usage: "title <text>", help: "Set the form title", min: 1, run: s.title},
		"describe":    {usage: "describe <text>", help: "Set the form description", min: 1, run: s.describe},
		"theme":       {usage: "theme <light|dark|auto>", help: "Set the form theme", min: 1, run: s.theme},
		"undo":        {usage: "undo", help: "Undo the last change", run: s.undo},
		"redo":        {usage: "redo", help: "Redo the last undone change", run: s.redo},
		"restore":     {usage: "restore", help: "Bring back the last removed component", run: s.restore},
		"preview":     {usage: "preview", help: "Toggle preview mode; prints the HTML preview when enabled", run: s.preview},
		"validate":    {usage: "validate", help: "Check the form is ready to publish", run: s.validate},
		"save":        {usage: "save [path]", help: "Write the form snapshot", run: s.save},
		"load":        {usage: "load <path>", help: "Replace the form with a snapshot", min: 1, run: s.load},
		"reset":       {usage: "reset", help: "Start over with an empty form", run: s.reset},
		"list":        {usage: "list", help: "Show the components", run: s.list},
		"history":     {usage: "history", help: "Show the recorded undo steps", run: s.history},
		"help":        {usage: "help", help: "Show this help", run: s.help},
		"quit":        {usage: "quit", help: "Leave the session", run: s.quit},
	}
	s.aliases = map[string]string{
		"ls":     "list",
		"exit":   "quit",
		"ctrl+z": "undo",
		"ctrl+y": "redo",
		"?":      "help",
	}
	return s
}

func (s *session) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		err := s.exec(ctx, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

func (s *session) exec(ctx context.Context, line string) error {
	words, err := shellquote.Split(line)
	if err != nil {
		return fmt.Errorf("parse command: %w", err)
	}
	if len(words) == 0 {
		return nil
	}

	name := strings.ToLower(words[0])
	if target, ok := s.aliases[name]; ok {
		name = target
	}
	cmd, ok := s.commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q (type help)", words[0])
	}
	args := words[1:]
	if len(args) < cmd.min {
		return fmt.Errorf("usage: %s", cmd.usage)
	}
	return cmd.run(ctx, args)
}

func (s *session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format+"\n", args...)
}

func (s *session) add(_ context.Context, args []string) error {
	c, err := s.b.AddNew(model.FieldType(strings.ToLower(args[0])))
	if errors.Is(err, builder.ErrUnknownFieldType) {
		return fmt.Errorf("%w (known: %s)", err, strings.Join(fieldTypes(), ", "))
	}
	if err != nil {
		return err
	}
	var patch model.ComponentPatch
	if len(args) > 1 {
		label := strings.Join(args[1:], " ")
		patch.Label = &label
	}
	if !patch.Empty() {
		s.b.Update(c.ID, patch)
	}
	s.b.Select(c.ID)
	s.printf("added %s", c.ID)
	return nil
}

func (s *session) label(_ context.Context, args []string) error {
	text := strings.Join(args[1:], " ")
	return s.update(args[0], model.ComponentPatch{Label: &text})
}

func (s *session) placeholder(_ context.Context, args []string) error {
	text := strings.Join(args[1:], " ")
	return s.update(args[0], model.ComponentPatch{Placeholder: &text})
}

func (s *session) required(_ context.Context, args []string) error {
	on := true
	if len(args) > 1 {
		parsed, err := parseSwitch(args[1])
		if err != nil {
			return err
		}
		on = parsed
	}
	return s.update(args[0], model.ComponentPatch{Required: &on})
}

func (s *session) options(_ context.Context, args []string) error {
	options := append([]string(nil), args[1:]...)
	return s.update(args[0], model.ComponentPatch{Options: &options})
}

func (s *session) rule(_ context.Context, args []string) error {
	id := args[0]
	idx := s.b.State().IndexOf(id)
	if idx < 0 {
		return fmt.Errorf("no component %q", id)
	}

	rule := model.ValidationRule{
		Kind:  model.NormalizeRuleKind(args[1]),
		Value: ruleValue(args[2]),
	}
	if len(args) > 3 {
		rule.Message = strings.Join(args[3:], " ")
	}
	rules := append(s.b.State().Components[idx].ValidationRules, rule)
	return s.update(id, model.ComponentPatch{ValidationRules: &rules})
}

func (s *session) update(id string, patch model.ComponentPatch) error {
	if !s.b.Update(id, patch) {
		return fmt.Errorf("no component %q", id)
	}
	s.printf("updated %s", id)
	return nil
}

func (s *session) remove(_ context.Context, args []string) error {
	if !s.b.Remove(args[0]) {
		return fmt.Errorf("no component %q", args[0])
	}
	s.printf("removed %s (type restore within %s to bring it back)", args[0], s.app.cfg.GracePeriod.String())
	return nil
}

func (s *session) move(_ context.Context, args []string) error {
	to, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("index must be a number: %q", args[1])
	}
	if s.b.State().IndexOf(args[0]) < 0 {
		return fmt.Errorf("no component %q", args[0])
	}
	if !s.b.Move(args[0], to) {
		s.printf("%s already at %d", args[0], to)
		return nil
	}
	s.printf("moved %s", args[0])
	return nil
}

func (s *session) selectComponent(_ context.Context, args []string) error {
	if len(args) == 0 {
		s.b.Select("")
		s.printf("selection cleared")
		return nil
	}
	s.b.Select(args[0])
	if _, ok := s.b.Selected(); !ok {
		return fmt.Errorf("no component %q", args[0])
	}
	s.printf("selected %s", args[0])
	return nil
}

func (s *session) title(_ context.Context, args []string) error {
	text := strings.Join(args, " ")
	s.b.UpdateSettings(model.SettingsPatch{Title: &text})
	s.printf("title set")
	return nil
}

func (s *session) describe(_ context.Context, args []string) error {
	text := strings.Join(args, " ")
	s.b.UpdateSettings(model.SettingsPatch{Description: &text})
	s.printf("description set")
	return nil
}

func (s *session) theme(_ context.Context, args []string) error {
	th := model.Theme(strings.ToLower(args[0]))
	if !th.Valid() {
		return fmt.Errorf("unknown theme %q", args[0])
	}
	s.b.UpdateSettings(model.SettingsPatch{Theme: &th})
	s.printf("theme set to %s", th)
	return nil
}

func (s *session) undo(context.Context, []string) error {
	if !s.b.Undo() {
		s.printf("nothing to undo")
		return nil
	}
	s.printf("undone")
	return nil
}

func (s *session) redo(context.Context, []string) error {
	if !s.b.Redo() {
		s.printf("nothing to redo")
		return nil
	}
	s.printf("redone")
	return nil
}

func (s *session) restore(context.Context, []string) error {
	deleted, ok := s.b.RecentlyDeleted()
	if !ok || !s.b.UndoDelete() {
		s.printf("nothing to restore")
		return nil
	}
	s.printf("restored %s", deleted.Component.ID)
	return nil
}

func (s *session) preview(ctx context.Context, _ []string) error {
	if !s.b.TogglePreview() {
		s.printf("preview off")
		return nil
	}
	out, err := s.app.htmlPreview(ctx, s.b)
	if err != nil {
		return err
	}
	s.printf("%s", out)
	return nil
}

func (s *session) validate(context.Context, []string) error {
	result := s.b.Validate()
	printValidation(s.out, result.Valid, result.Errors)
	return nil
}

func (s *session) save(_ context.Context, args []string) error {
	path := s.path
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		path = snapshot.Filename(s.app.now())
	}
	if err := s.app.saveForm(s.b, path); err != nil {
		return err
	}
	s.path = path
	s.printf("saved %s", path)
	return nil
}

func (s *session) load(_ context.Context, args []string) error {
	if err := s.app.loadInto(s.b, args[0]); err != nil {
		return err
	}
	s.path = args[0]
	s.printf("loaded %s (%d components)", args[0], len(s.b.State().Components))
	return nil
}

func (s *session) reset(context.Context, []string) error {
	s.b.Reset()
	s.printf("form reset")
	return nil
}

func (s *session) list(context.Context, []string) error {
	state := s.b.State()
	title := state.Settings.Title
	if title == "" {
		title = "(untitled)"
	}
	s.printf("%s", title)
	if len(state.Components) == 0 {
		s.printf("  no components")
	}
	for i, c := range state.Components {
		marker := " "
		if c.ID == state.SelectedID {
			marker = ">"
		}
		req := ""
		if c.Required {
			req = " *"
		}
		s.printf("%s %d. %s [%s] %q%s", marker, i, c.ID, c.Type, c.Label, req)
	}
	s.printf("history %d/%d", s.b.HistoryLen(), s.b.HistoryLimit())
	return nil
}

func (s *session) history(context.Context, []string) error {
	count, cursor := s.b.HistoryLen(), s.b.HistoryCursor()
	for i := 0; i < count; i++ {
		entry, ok := s.b.HistoryEntry(i)
		if !ok {
			break
		}
		marker := " "
		if i == cursor {
			marker = ">"
		}
		s.printf("%s %d. %d components, %q", marker, i, len(entry.Components), entry.Settings.Title)
	}
	s.printf("history %d/%d", count, s.b.HistoryLimit())
	return nil
}

func (s *session) help(context.Context, []string) error {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd := s.commands[name]
		s.printf("  %-64s %s", cmd.usage, cmd.help)
	}
	s.printf("field types:")
	for _, entry := range model.Palette() {
		s.printf("  %-10s %-12s %s", entry.Type, entry.Name, entry.Description)
	}
	return nil
}

func fieldTypes() []string {
	entries := model.Palette()
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		out = append(out, string(entry.Type))
	}
	return out
}

func (s *session) quit(context.Context, []string) error {
	return errQuit
}

func printValidation(out io.Writer, valid bool, errs []string) {
	if valid {
		fmt.Fprintln(out, "Form is valid")
		return
	}
	fmt.Fprintln(out, "Form has problems:")
	for _, msg := range errs {
		fmt.Fprintf(out, "  - %s\n", msg)
	}
}

func parseSwitch(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "on", "yes", "true", "1":
		return true, nil
	case "off", "no", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", raw)
}

func ruleValue(raw string) model.RuleValue {
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return model.NumberValue(n)
	}
	return model.StringValue(raw)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
