package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/openapi"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/snapshot"
)

func (a *app) newCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "new [file]",
		Short: "Write an empty form snapshot",
		Long: `Create an empty form using the configured default settings.

Without a file argument the snapshot is written to form-<unix-millis>.json
in the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := a.newBuilder()
			defer b.Close()

			if title != "" {
				b.UpdateSettings(model.SettingsPatch{Title: &title})
			}
			path := snapshot.Filename(a.now())
			if len(args) == 1 {
				path = args[0]
			}
			if err := a.saveForm(b, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Form written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Initial form title")
	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a form snapshot is ready to publish",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.openForm(args[0])
			if err != nil {
				return err
			}
			defer b.Close()

			result := b.Validate()
			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			} else {
				printValidation(out, result.Valid, result.Errors)
			}
			if !result.Valid {
				return errInvalidForm
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func (a *app) schemaCmd() *cobra.Command {
	var (
		path        string
		operationID string
	)

	cmd := &cobra.Command{
		Use:   "schema <file>",
		Short: "Print the OpenAPI document describing form submissions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.openForm(args[0])
			if err != nil {
				return err
			}
			defer b.Close()

			doc := openapi.SubmissionDocument(b.State(),
				openapi.WithPath(path),
				openapi.WithOperationID(operationID),
			)
			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return fmt.Errorf("encode schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Submission path (default /submissions)")
	cmd.Flags().StringVar(&operationID, "operation", "", "Operation id (default submitForm)")
	return cmd
}

func (a *app) previewCmd() *cobra.Command {
	var (
		useTUI bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Render a form as HTML or fill it in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.openForm(args[0])
			if err != nil {
				return err
			}
			defer b.Close()
			b.SetPreviewMode(true)

			var output []byte
			if useTUI {
				output, err = a.tuiPreview(cmd.Context(), b, tui.OutputFormat(format))
				if errors.Is(err, tui.ErrNotSubmitted) {
					fmt.Fprintln(cmd.OutOrStdout(), "Submission cancelled")
					return nil
				}
			} else {
				output, err = a.htmlPreview(cmd.Context(), b)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(output))
			return nil
		},
	}
	cmd.Flags().BoolVar(&useTUI, "tui", false, "Fill the form in the terminal instead of rendering HTML")
	cmd.Flags().StringVar(&format, "format", string(tui.OutputFormatJSON), "Answer format for --tui (json, form, pretty)")
	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	var (
		asYAML      bool
		toClipboard bool
		outPath     string
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Re-export a form in canonical form",
		Long: `Load a snapshot and write it back out with a fresh timestamp.

By default the document goes to stdout. Use --clipboard to copy it to the
system clipboard or --file to write it to disk.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.openForm(args[0])
			if err != nil {
				return err
			}
			defer b.Close()

			data, err := exportBytes(b, asYAML)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case toClipboard:
				if err := a.copyText(string(data)); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				fmt.Fprintln(out, "Form copied to clipboard")
			case outPath != "":
				if err := a.saveForm(b, outPath); err != nil {
					return err
				}
				fmt.Fprintf(out, "Form written to %s\n", outPath)
			default:
				fmt.Fprintln(out, string(data))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Emit YAML instead of JSON")
	cmd.Flags().BoolVar(&toClipboard, "clipboard", false, "Copy the document to the clipboard")
	cmd.Flags().StringVarP(&outPath, "file", "f", "", "Write to file instead of stdout")
	return cmd
}

func (a *app) editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit a form interactively",
		Long: `Start a line-oriented editing session. Type "help" for the command list.

When the file exists it is loaded first; "save" without a path writes back to it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := a.newBuilder()
			defer b.Close()

			s := newSession(a, b, cmd.OutOrStdout())
			if len(args) == 1 {
				s.path = args[0]
				if fileExists(s.path) {
					if err := a.loadInto(b, s.path); err != nil {
						return err
					}
				}
			}
			return s.run(cmd.Context(), cmd.InOrStdin())
		},
	}
}

func exportBytes(b *builder.Builder, asYAML bool) ([]byte, error) {
	if asYAML {
		return snapshot.EncodeYAML(b.Document())
	}
	return b.Export()
}
