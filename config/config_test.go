package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	reportpdf "github.com/goliatone/go-report/adapters/pdf"
	"github.com/goliatone/go-report/report"
)

func envMap(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestDefaultsAreValid(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Server.Addr() != "0.0.0.0:3000" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr())
	}
	if cfg.Render.DOMTimeout != 15*time.Second || cfg.Render.FallbackTextLimit != 2000 {
		t.Fatalf("unexpected render defaults %+v", cfg.Render)
	}
}

func TestLoad_YAMLOverDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "HOST", "BROWSERLESS_TOKEN", "REPORT_API_KEYS", "REPORT_AUTH_ENABLED"} {
		t.Setenv(key, "")
	}

	path := filepath.Join(t.TempDir(), "goreport.yaml")
	content := `
server:
  port: "9090"
auth:
  enabled: true
  keys: ["k1", "k2"]
render:
  token: abc
  dom_timeout: 5s
locale:
  language: en-US
  currency_symbol: "$"
  timezone: UTC
template:
  strict: true
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Server.Host != "0.0.0.0" {
		t.Fatalf("unexpected server %+v", cfg.Server)
	}
	if !cfg.Auth.Enabled || len(cfg.Auth.Keys) != 2 {
		t.Fatalf("unexpected auth %+v", cfg.Auth)
	}
	if cfg.Render.Token != "abc" || cfg.Render.DOMTimeout != 5*time.Second {
		t.Fatalf("unexpected render %+v", cfg.Render)
	}
	if cfg.Render.SettleDelay != time.Second {
		t.Fatalf("expected default settle delay, got %v", cfg.Render.SettleDelay)
	}
	if !cfg.Template.Strict || cfg.Template.MaxIterations != 10000 {
		t.Fatalf("unexpected template %+v", cfg.Template)
	}
	if cfg.Locale.CurrencySymbol != "$" {
		t.Fatalf("unexpected locale %+v", cfg.Locale)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if report.KindFromError(err) != report.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Defaults()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"PORT":                       "8081",
		"HOST":                       "127.0.0.1",
		"BROWSERLESS_TOKEN":          " tok ",
		"REPORT_API_KEYS":            "a, b,,",
		"REPORT_VERIFY_OUTPUT":       "false",
		"REPORT_FALLBACK_TEXT_LIMIT": "500",
		"REPORT_LOG_LEVEL":           "debug",
		"REPORT_SCREENSHOT_ENDPOINT": "http://chrome:3000/screenshot",
	}))
	if err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.Server.Addr() != "127.0.0.1:8081" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr())
	}
	if cfg.Render.Token != "tok" || cfg.Render.VerifyOutput || cfg.Render.FallbackTextLimit != 500 {
		t.Fatalf("unexpected render %+v", cfg.Render)
	}
	if !cfg.Auth.Enabled || len(cfg.Auth.Keys) != 2 || cfg.Auth.Keys[1] != "b" {
		t.Fatalf("unexpected auth %+v", cfg.Auth)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level %q", cfg.Log.Level)
	}
	if cfg.Render.ScreenshotEndpoint != "http://chrome:3000/screenshot" {
		t.Fatalf("unexpected screenshot endpoint %q", cfg.Render.ScreenshotEndpoint)
	}
}

func TestApplyEnv_InvalidBool(t *testing.T) {
	cfg := Defaults()
	err := cfg.ApplyEnv(envMap(map[string]string{"REPORT_AUTH_ENABLED": "maybe"}))
	if report.KindFromError(err) != report.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	cfg.Server.Port = "http"
	cfg.Auth.Enabled = true
	cfg.Locale.Timezone = "Nowhere/Land"

	err := cfg.Validate()
	details := report.FieldErrors(err)
	if len(details) != 3 {
		t.Fatalf("expected 3 field errors, got %v", details)
	}
	fields := map[string]bool{}
	for _, d := range details {
		fields[d.Field] = true
	}
	for _, f := range []string{"server.port", "auth.keys", "locale"} {
		if !fields[f] {
			t.Fatalf("missing field error for %s: %v", f, details)
		}
	}
}

func TestPDFConfig(t *testing.T) {
	cfg := Defaults()
	cfg.Render.Token = "tok"
	pdfCfg := cfg.PDF(nil, nil)
	if pdfCfg.Token != "tok" || !pdfCfg.Verify || pdfCfg.TextLimit != 2000 {
		t.Fatalf("unexpected pdf config %+v", pdfCfg)
	}
	if pdfCfg.ScreenshotEndpoint != reportpdf.DefaultScreenshotEndpoint {
		t.Fatalf("unexpected screenshot endpoint %q", pdfCfg.ScreenshotEndpoint)
	}
}
