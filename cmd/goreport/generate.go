package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-report/report"
)

func newGenerateCmd(configPath *string) *cobra.Command {
	var (
		requestPath string
		outputPath  string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render a report request file to disk",
		Long: `Render the JSON request in --request the same way POST /api/v1/reports/generate
does. Without --out the artifact is written to the current directory using the
suggested file name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if requestPath == "" {
				return fmt.Errorf("--request is required")
			}
			body, err := os.ReadFile(requestPath)
			if err != nil {
				return fmt.Errorf("failed to read request: %w", err)
			}
			req, err := report.DecodeRequest(body)
			if err != nil {
				return err
			}
			if format != "" {
				parsed, ok := report.ParseFormat(format)
				if !ok {
					return fmt.Errorf("invalid format: %s (must be pdf, xlsx or xls)", format)
				}
				req.Format = parsed
			}

			comp, err := loadComponents(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result, err := comp.service.Generate(ctx, req)
			if err != nil {
				for _, detail := range report.FieldErrors(err) {
					fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", detail.Field, detail.Message)
				}
				return err
			}

			out, err := writeArtifact(outputPath, result.Filename, result.Buffer)
			if err != nil {
				return err
			}

			summary := fmt.Sprintf("%s  %s  %d bytes", out, result.ContentType, len(result.Buffer))
			if result.Strategy != "" {
				summary += "  strategy=" + result.Strategy
			}
			if result.Pages > 0 {
				summary += fmt.Sprintf("  pages=%d", result.Pages)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(summary))
			return nil
		},
	}

	cmd.Flags().StringVarP(&requestPath, "request", "r", "", "JSON request file")
	cmd.Flags().StringVarP(&outputPath, "out", "o", "", "Output file path")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Override the request format (pdf, xlsx, xls)")
	return cmd
}

// writeArtifact writes buf to path, or to the suggested name when path is
// empty, and returns where it went.
func writeArtifact(path, suggested string, buf []byte) (string, error) {
	if path == "" {
		path = suggested
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return "", fmt.Errorf("failed to write output: %w", err)
	}
	return path, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
