package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-report/report"
)

func newScreenshotCmd(configPath *string) *cobra.Command {
	var (
		opts       report.ScreenshotOptions
		target     string
		htmlPath   string
		cssPath    string
		outputPath string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "screenshot",
		Short: "Capture a page or HTML file as an image",
		Long: `Capture --url or the markup in --html the same way POST /api/v1/screenshot
does. Capturing needs a render token.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := report.ScreenshotRequest{URL: target}
			if htmlPath != "" {
				markup, err := os.ReadFile(htmlPath)
				if err != nil {
					return fmt.Errorf("failed to read html: %w", err)
				}
				req.HTML = string(markup)
			}
			if cssPath != "" {
				style, err := os.ReadFile(cssPath)
				if err != nil {
					return fmt.Errorf("failed to read css: %w", err)
				}
				req.CSS = string(style)
			}
			opts.Format = report.ImageFormat(format)
			req.Options = opts

			comp, err := loadComponents(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result, err := comp.service.Screenshot(ctx, req)
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
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %d bytes  strategy=%s\n", out, result.ContentType, len(result.Buffer), result.Strategy)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&target, "url", "u", "", "Page to capture")
	flags.StringVar(&htmlPath, "html", "", "HTML file to capture instead of a URL")
	flags.StringVar(&cssPath, "css", "", "CSS file injected into --html")
	flags.StringVarP(&outputPath, "out", "o", "", "Output file path")
	flags.StringVarP(&format, "format", "f", "png", "Image format (png, jpeg, webp)")
	flags.Int64Var(&opts.Width, "width", report.DefaultScreenshotWidth, "Viewport width")
	flags.Int64Var(&opts.Height, "height", report.DefaultScreenshotHeight, "Viewport height")
	flags.BoolVar(&opts.FullPage, "full-page", false, "Capture the full scrollable page")
	flags.IntVar(&opts.Quality, "quality", report.DefaultScreenshotQuality, "JPEG quality")
	flags.Float64Var(&opts.DeviceScaleFactor, "scale", report.DefaultScreenshotScale, "Device scale factor")
	flags.BoolVar(&opts.Mobile, "mobile", false, "Emulate a mobile device")
	return cmd
}
