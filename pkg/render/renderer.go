// Package render defines the preview renderer contract and a registry for
// looking renderers up by name. Renderers only read the form; they never
// mutate the builder.
package render

import (
	"context"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Renderer converts a form into a byte representation (HTML, terminal
// answers, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormState, options RenderOptions) ([]byte, error)
}
