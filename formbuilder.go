package formbuilder

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/html"
	"github.com/goliatone/go-formbuilder/pkg/snapshot"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// Builder is the form state engine; alias exported via the root package for
// convenience.
type Builder = builder.Builder

// Option configures a Builder.
type Option = builder.Option

// FormState is the structural form aggregate.
type FormState = model.FormState

// Component is a single field definition.
type Component = model.Component

// FormSettings holds the form-level configuration.
type FormSettings = model.FormSettings

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// ValidationResult is the structural report returned by Validate.
type ValidationResult = validation.Result

// New exposes the builder constructor from the top-level module.
func New(options ...Option) *Builder {
	return builder.New(options...)
}

// Open builds an engine seeded with the snapshot in raw. The engine is not
// returned when raw is rejected.
func Open(raw []byte, options ...Option) (*Builder, error) {
	doc, err := snapshot.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("formbuilder: open: %w", err)
	}
	b := builder.New(options...)
	b.ImportDocument(doc)
	return b, nil
}

// Validate checks a form without an engine.
func Validate(state FormState) ValidationResult {
	return validation.Validate(state)
}

// GenerateHTML renders the form preview with the bundled HTML templates. It is
// the simplest entry point for callers that just want markup.
func GenerateHTML(ctx context.Context, state FormState, options RenderOptions, rendererOptions ...html.Option) ([]byte, error) {
	renderer, err := html.New(rendererOptions...)
	if err != nil {
		return nil, fmt.Errorf("formbuilder: html renderer: %w", err)
	}
	return renderer.Render(ctx, state, options)
}
