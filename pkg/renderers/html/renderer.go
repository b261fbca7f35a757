// Package html renders the form preview as an HTML fragment. Templates are
// pongo2; author-entered text is stripped of markup before it reaches them.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	rendertemplate "github.com/goliatone/go-formbuilder/pkg/render/template"
	"github.com/goliatone/go-formbuilder/pkg/render/template/pongo"
)

const formTemplate = "templates/form.tmpl"

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme applies a resolved go-theme configuration: its name and variant
// become data attributes and its CSS variables are scoped to the form.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// Renderer implements render.Renderer for HTML previews.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	theme     *theme.RendererConfig
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	engine := cfg.templateRenderer
	if engine == nil {
		pe, err := pongo.New(pongo.WithFS(cfg.templateFS), pongo.WithExtension(".tmpl"))
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure templates: %w", err)
		}
		engine = pe
	}
	return &Renderer{templates: engine, theme: cfg.theme}, nil
}

// Name implements render.Renderer.
func (r *Renderer) Name() string {
	return "html"
}

// ContentType implements render.Renderer.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render implements render.Renderer.
func (r *Renderer) Render(ctx context.Context, form model.FormState, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := r.templates.RenderTemplate(formTemplate, map[string]any{
		"form":  buildFormView(form, options),
		"theme": buildThemeView(r.theme),
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}
