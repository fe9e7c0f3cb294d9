package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-report/payload"
	"github.com/goliatone/go-report/report"
)

func newResolveCmd(configPath *string) *cobra.Command {
	var (
		templatePath string
		dataPath     string
		outputPath   string
		document     bool
		title        string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Merge data into a template and print the markup",
		Long: `Resolve --template against --data and print the result. Template faults are
returned as errors instead of the inline error fragment. With --document the
resolved markup is wrapped in the printable document shell.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if templatePath == "" {
				return fmt.Errorf("--template is required")
			}
			markup, err := os.ReadFile(templatePath)
			if err != nil {
				return fmt.Errorf("failed to read template: %w", err)
			}

			data := payload.NewMap()
			if dataPath != "" {
				raw, err := os.ReadFile(dataPath)
				if err != nil {
					return fmt.Errorf("failed to read data: %w", err)
				}
				data, err = payload.Parse(raw)
				if err != nil {
					return report.NewError(report.KindValidation, "invalid data file", err)
				}
			}

			comp, err := loadComponents(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			var out string
			if document {
				out, err = comp.service.Preview(commandContext(cmd), report.Request{
					Title:    title,
					Data:     data,
					Template: report.Template{Markup: string(markup)},
				})
			} else {
				out, err = comp.resolver.Evaluate(string(markup), data)
			}
			if err != nil {
				return err
			}

			if outputPath != "" {
				if err := os.WriteFile(outputPath, []byte(out), 0o644); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
				return nil
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "Template markup file")
	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "JSON data file")
	cmd.Flags().StringVarP(&outputPath, "out", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&document, "document", false, "Wrap the markup in the document shell")
	cmd.Flags().StringVar(&title, "title", "Preview", "Document title used with --document")
	return cmd
}
