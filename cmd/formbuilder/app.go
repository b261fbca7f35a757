package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/html"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/snapshot"
)

const defaultConfigPath = "formbuilder.yaml"

var errInvalidForm = errors.New("form is not valid")

// app carries the process collaborators shared by every command.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configPath string
	verbose    bool

	cfg    config.Config
	logger *slog.Logger

	now       func() time.Time
	copyText  func(string) error
	promptsFn func() tui.PromptDriver
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{
		in:       in,
		out:      out,
		errOut:   errOut,
		cfg:      config.Default(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
		copyText: clipboard.WriteAll,
		promptsFn: func() tui.PromptDriver {
			return tui.NewSurveyDriver(out)
		},
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "formbuilder",
		Short:         "Author form snapshots from the terminal",
		Long:          `formbuilder creates, edits, validates, previews and exports form snapshots stored as JSON (or YAML) documents.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.PersistentFlags().StringVar(&a.configPath, "config", defaultConfigPath, "Path to the YAML configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log every builder operation to stderr")

	root.AddCommand(
		a.newCmd(),
		a.validateCmd(),
		a.schemaCmd(),
		a.previewCmd(),
		a.exportCmd(),
		a.editCmd(),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))
	return nil
}

func (a *app) newBuilder() *builder.Builder {
	options := a.cfg.BuilderOptions(a.now)
	options = append(options,
		builder.WithClock(a.now),
		builder.WithLogger(a.logger),
	)
	return builder.New(options...)
}

// openForm loads path into a fresh builder. Files ending in .yaml or .yml
// are read as YAML documents.
func (a *app) openForm(path string) (*builder.Builder, error) {
	b := a.newBuilder()
	if err := a.loadInto(b, path); err != nil {
		_ = b.Close()
		return nil, err
	}
	return b, nil
}

func (a *app) loadInto(b *builder.Builder, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if isYAML(path) {
		doc, err := snapshot.DecodeYAML(raw)
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		b.ImportDocument(doc)
		return nil
	}
	if err := b.Import(raw); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func (a *app) saveForm(b *builder.Builder, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = snapshot.EncodeYAML(b.Document())
	} else {
		data, err = b.Export()
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (a *app) htmlPreview(ctx context.Context, b *builder.Builder) ([]byte, error) {
	renderer, err := html.New()
	if err != nil {
		return nil, err
	}
	registry, err := render.NewRegistry(renderer)
	if err != nil {
		return nil, err
	}
	return registry.Render(ctx, renderer.Name(), b.State(), render.RenderOptions{})
}

func (a *app) tuiPreview(ctx context.Context, b *builder.Builder, format tui.OutputFormat) ([]byte, error) {
	renderer := tui.New(
		tui.WithPromptDriver(a.promptsFn()),
		tui.WithOutputFormat(format),
		tui.WithConfirmSubmit(true),
		tui.WithTheme(tui.Theme{ErrorPrefix: "! "}),
	)
	registry, err := render.NewRegistry(renderer)
	if err != nil {
		return nil, err
	}
	return registry.Render(ctx, renderer.Name(), b.State(), render.RenderOptions{})
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
