// Package tui walks a form in the terminal: each component becomes a prompt
// and the collected answers are checked against the submission schema before
// they are serialised.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/openapi"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

const (
	dateLayout  = "2006-01-02"
	skipOption  = "(none)"
	submitLabel = "Submit form?"
)

// Renderer implements render.Renderer by prompting for answers.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	confirmSubmit     bool
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer. The survey driver is used unless overridden.
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r
}

func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prompts for every component in order and returns the serialised
// answers. Values in options prefill the prompts; Errors are shown before the
// component they belong to.
func (r *Renderer) Render(ctx context.Context, form model.FormState, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	state := NewState(options.Values, options.Errors)

	if err := r.header(ctx, form, options.FormErrors); err != nil {
		return nil, err
	}
	for _, component := range form.Components {
		if err := r.promptComponent(ctx, state, component); err != nil {
			return nil, err
		}
	}

	if r.confirmSubmit {
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: submitLabel, Default: true})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNotSubmitted
		}
	}

	answers := state.Values()
	if r.submitTransformer != nil {
		transformed, err := r.submitTransformer(answers)
		if err != nil {
			return nil, fmt.Errorf("tui: transform answers: %w", err)
		}
		answers = transformed
	}
	if err := openapi.ValidateSubmission(form, answers); err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	return r.encode(answers)
}

func (r *Renderer) header(ctx context.Context, form model.FormState, formErrors []string) error {
	lines := []string{}
	if title := strings.TrimSpace(form.Settings.Title); title != "" {
		lines = append(lines, title)
	}
	if desc := strings.TrimSpace(form.Settings.Description); desc != "" {
		lines = append(lines, desc)
	}
	if len(form.Components) == 0 {
		lines = append(lines, "No form fields added yet.")
	}
	for _, line := range lines {
		if err := r.info(ctx, line); err != nil {
			return err
		}
	}
	for _, msg := range formErrors {
		if err := r.errorf(ctx, "%s", msg); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) promptComponent(ctx context.Context, state *State, c model.Component) error {
	for _, msg := range state.ErrorsFor(c.ID) {
		if err := r.errorf(ctx, "%s: %s", c.Label, msg); err != nil {
			return err
		}
	}

	switch c.Type {
	case model.FieldTypeSelect, model.FieldTypeRadio:
		return r.promptChoice(ctx, state, c)
	case model.FieldTypeCheckbox:
		return r.promptMulti(ctx, state, c)
	case model.FieldTypeNumber:
		return r.promptNumber(ctx, state, c)
	default:
		return r.promptText(ctx, state, c)
	}
}

func (r *Renderer) promptText(ctx context.Context, state *State, c model.Component) error {
	rules := rulesFor(c)
	def := ""
	if v, ok := state.Value(c.ID); ok {
		def = fmt.Sprint(v)
	}

	for {
		var (
			answer string
			err    error
		)
		if c.Type == model.FieldTypeTextarea {
			answer, err = r.driver.TextArea(ctx, TextAreaConfig{Message: message(c), Default: def, Help: help(c)})
		} else {
			answer, err = r.driver.Input(ctx, InputConfig{Message: message(c), Default: def, Help: help(c)})
		}
		if err != nil {
			return err
		}
		answer = strings.TrimSpace(answer)

		if answer == "" && !c.Required {
			state.Unset(c.ID)
			return nil
		}
		if verr := rules.check(c.Type, answer); verr != nil {
			if err := r.errorf(ctx, "Invalid %s: %v", c.Label, verr); err != nil {
				return err
			}
			def = answer
			continue
		}
		state.Set(c.ID, answer)
		return nil
	}
}

func (r *Renderer) promptNumber(ctx context.Context, state *State, c model.Component) error {
	def := ""
	if v, ok := state.Value(c.ID); ok {
		def = fmt.Sprint(v)
	}

	for {
		answer, err := r.driver.Input(ctx, InputConfig{Message: message(c), Default: def, Help: help(c)})
		if err != nil {
			return err
		}
		answer = strings.TrimSpace(answer)

		if answer == "" {
			if !c.Required {
				state.Unset(c.ID)
				return nil
			}
			if err := r.errorf(ctx, "Invalid %s: %v", c.Label, errRequired); err != nil {
				return err
			}
			continue
		}
		n, perr := strconv.ParseFloat(answer, 64)
		if perr != nil {
			if err := r.errorf(ctx, "Invalid %s: %v", c.Label, errNotNumber); err != nil {
				return err
			}
			def = answer
			continue
		}
		state.Set(c.ID, n)
		return nil
	}
}

func (r *Renderer) promptChoice(ctx context.Context, state *State, c model.Component) error {
	if len(c.Options) == 0 {
		state.Unset(c.ID)
		return r.info(ctx, fmt.Sprintf("%s has no options; skipped", c.Label))
	}

	choices := append([]string(nil), c.Options...)
	if !c.Required {
		choices = append(choices, skipOption)
	}
	def := 0
	if v, ok := state.Value(c.ID); ok {
		if idx := indexOf(c.Options, fmt.Sprint(v)); idx >= 0 {
			def = idx
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{Message: message(c), Options: choices, DefaultIndex: def, Help: help(c)})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(c.Options) {
		state.Unset(c.ID)
		return nil
	}
	state.Set(c.ID, c.Options[idx])
	return nil
}

func (r *Renderer) promptMulti(ctx context.Context, state *State, c model.Component) error {
	if len(c.Options) == 0 {
		state.Unset(c.ID)
		return r.info(ctx, fmt.Sprintf("%s has no options; skipped", c.Label))
	}

	var defaults []int
	if v, ok := state.Value(c.ID); ok {
		defaults = indicesOf(c.Options, toStrings(v))
	}

	for {
		picked, err := r.driver.MultiSelect(ctx, SelectConfig{Message: message(c), Options: c.Options, Defaults: defaults, Help: help(c)})
		if err != nil {
			return err
		}
		if len(picked) == 0 {
			if c.Required {
				if err := r.errorf(ctx, "Invalid %s: %v", c.Label, errNoneSelected); err != nil {
					return err
				}
				continue
			}
			state.Unset(c.ID)
			return nil
		}
		values := make([]any, 0, len(picked))
		for _, idx := range picked {
			values = append(values, c.Options[idx])
		}
		state.Set(c.ID, values)
		return nil
	}
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) errorf(ctx context.Context, format string, args ...any) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+fmt.Sprintf(format, args...))
}

func message(c model.Component) string {
	label := c.Label
	if label == "" {
		label = c.ID
	}
	if c.Required {
		return label + " *"
	}
	return label
}

func help(c model.Component) string {
	if c.Placeholder != nil {
		return *c.Placeholder
	}
	return ""
}

func toStrings(v any) []string {
	switch typed := v.(type) {
	case []string:
		return typed
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		return []string{typed}
	}
	return nil
}

var (
	errRequired     = errors.New("value is required")
	errNotNumber    = errors.New("must be a number")
	errNoneSelected = errors.New("select at least one option")
	errBadDate      = errors.New("use YYYY-MM-DD")
)

// answerRules are the constraints a text answer must meet before it is kept.
type answerRules struct {
	required bool
	minLen   *int
	maxLen   *int
	pattern  *regexp.Regexp
	messages map[model.RuleKind]string
}

func rulesFor(c model.Component) answerRules {
	rules := answerRules{required: c.Required, messages: map[model.RuleKind]string{}}
	for _, rule := range c.ValidationRules {
		switch rule.Kind {
		case model.RuleMinLength:
			if n, ok := rule.Value.Int(); ok {
				rules.minLen = &n
			}
		case model.RuleMaxLength:
			if n, ok := rule.Value.Int(); ok {
				rules.maxLen = &n
			}
		case model.RulePattern:
			re, err := regexp.Compile(rule.Value.String())
			if err != nil || rule.Value.String() == "" {
				continue
			}
			rules.pattern = re
		default:
			continue
		}
		if rule.Message != "" {
			rules.messages[rule.Kind] = rule.Message
		}
	}
	return rules
}

func (r answerRules) check(t model.FieldType, answer string) error {
	if answer == "" {
		if r.required {
			return errRequired
		}
		return nil
	}
	if t == model.FieldTypeDate {
		if _, err := time.Parse(dateLayout, answer); err != nil {
			return errBadDate
		}
	}
	length := utf8.RuneCountInString(answer)
	if r.minLen != nil && length < *r.minLen {
		return r.fail(model.RuleMinLength, "must be at least %d characters", *r.minLen)
	}
	if r.maxLen != nil && length > *r.maxLen {
		return r.fail(model.RuleMaxLength, "must be at most %d characters", *r.maxLen)
	}
	if r.pattern != nil && !r.pattern.MatchString(answer) {
		return r.fail(model.RulePattern, "must match %s", r.pattern.String())
	}
	return nil
}

func (r answerRules) fail(kind model.RuleKind, format string, args ...any) error {
	if msg, ok := r.messages[kind]; ok {
		return errors.New(msg)
	}
	return fmt.Errorf(format, args...)
}

func (r *Renderer) encode(answers map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatJSON:
		return jsonBytes(answers)
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(answers).Encode()), nil
	case OutputFormatPrettyText:
		return prettyPrint(answers), nil
	default:
		return nil, fmt.Errorf("tui: unknown output format %q", r.outputFormat)
	}
}

func jsonBytes(answers map[string]any) ([]byte, error) {
	data, err := json.MarshalIndent(answers, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("tui: encode answers: %w", err)
	}
	return data, nil
}

func flattenForm(answers map[string]any) url.Values {
	values := url.Values{}
	for key, value := range answers {
		for _, item := range scalarStrings(value) {
			values.Add(key, item)
		}
	}
	return values
}

func prettyPrint(answers map[string]any) []byte {
	keys := make([]string, 0, len(answers))
	for key := range answers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%s\n", key, strings.Join(scalarStrings(answers[key]), ", "))
	}
	return []byte(b.String())
}

func scalarStrings(v any) []string {
	switch typed := v.(type) {
	case float64:
		return []string{strconv.FormatFloat(typed, 'f', -1, 64)}
	case []any, []string:
		return toStrings(typed)
	default:
		return []string{fmt.Sprint(typed)}
	}
}
