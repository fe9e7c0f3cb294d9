package main

import (
	"io"
	"strings"

	reportlog "github.com/goliatone/go-report/adapters/logging"
	reportpdf "github.com/goliatone/go-report/adapters/pdf"
	reporttemplate "github.com/goliatone/go-report/adapters/template"
	"github.com/goliatone/go-report/config"
	"github.com/goliatone/go-report/document"
	"github.com/goliatone/go-report/helpers"
	"github.com/goliatone/go-report/report"
	"github.com/goliatone/go-report/resolver"
	"github.com/goliatone/go-report/workbook"
)

// components is everything a command needs, wired from one Config.
type components struct {
	cfg      config.Config
	logger   reportlog.Logger
	locale   helpers.Locale
	resolver *resolver.Resolver
	service  *report.Service
}

func loadComponents(configPath string, logOut io.Writer) (*components, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return buildComponents(cfg, logOut)
}

func buildComponents(cfg config.Config, logOut io.Writer) (*components, error) {
	logger := reportlog.New(logOut, cfg.Log.Level, cfg.Log.Format)

	locale, err := cfg.Locale.Build()
	if err != nil {
		return nil, report.NewError(report.KindValidation, "invalid locale", err)
	}

	lbls, err := cfg.Locale.Labels()
	if err != nil {
		return nil, report.NewError(report.KindInternal, "load report labels", err)
	}

	registry := helpers.NewRegistry(
		helpers.WithLocale(locale),
		helpers.WithLogger(logger.With("scope", "helpers")),
	)
	res := resolver.New(registry,
		resolver.WithStrict(cfg.Template.Strict),
		resolver.WithMaxIterations(cfg.Template.MaxIterations),
		resolver.WithLogger(logger.With("scope", "resolver")),
	)

	assembler := document.Assembler{Locale: &locale, Labels: lbls}
	if path := strings.TrimSpace(cfg.Template.ShellPath); path != "" {
		shell, err := reporttemplate.LoadShell(path)
		if err != nil {
			return nil, err
		}
		if _, err := shell.Preview(); err != nil {
			return nil, err
		}
		assembler.Shell = shell
		logger.Infof("using document shell %s", path)
	}

	pdfCfg := cfg.PDF(&locale, logger.With("scope", "pdf"))
	pdfCfg.Labels = lbls
	chain := reportpdf.NewChain(pdfCfg)
	if strings.TrimSpace(cfg.Render.Token) == "" {
		logger.Infof("no render token configured, documents use the local fallback only and screenshots are disabled")
	}

	service := &report.Service{
		Resolver:    res,
		Assembler:   assembler,
		Documents:   reportpdf.Renderer{Chain: chain, MaxHTMLBytes: cfg.Render.MaxHTMLBytes},
		Workbooks:   workbook.Renderer{
			Builder: workbook.Builder{Locale: &locale, Labels: lbls},
			Logger:  logger.With("scope", "workbook"),
		},
		Screenshots: reportpdf.NewCapturer(pdfCfg),
		Logger:      logger,
	}

	return &components{
		cfg:      cfg,
		logger:   logger,
		locale:   locale,
		resolver: res,
		service:  service,
	}, nil
}
