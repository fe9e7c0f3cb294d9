// Package config loads go-report settings from YAML and the environment.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	reportpdf "github.com/goliatone/go-report/adapters/pdf"
	"github.com/goliatone/go-report/helpers"
	"github.com/goliatone/go-report/labels"
	"github.com/goliatone/go-report/report"
)

// Config holds the service configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Auth     AuthConfig     `yaml:"auth"`
	Render   RenderConfig   `yaml:"render"`
	Locale   LocaleConfig   `yaml:"locale"`
	Template TemplateConfig `yaml:"template"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         string        `yaml:"port"`
	BodyLimit    int           `yaml:"body_limit"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Addr returns host:port for the listener.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// AuthConfig toggles the API key gate.
type AuthConfig struct {
	Enabled bool     `yaml:"enabled"`
	Keys    []string `yaml:"keys"`
}

// RenderConfig tunes the document render chain.
type RenderConfig struct {
	Token              string        `yaml:"token"`
	SessionEndpoint    string        `yaml:"session_endpoint"`
	HTTPEndpoint       string        `yaml:"http_endpoint"`
	ScreenshotEndpoint string        `yaml:"screenshot_endpoint"`
	SessionTimeout     time.Duration `yaml:"session_timeout"`
	HTTPTimeout        time.Duration `yaml:"http_timeout"`
	DOMTimeout         time.Duration `yaml:"dom_timeout"`
	SettleDelay        time.Duration `yaml:"settle_delay"`
	ViewportWidth      int64         `yaml:"viewport_width"`
	ViewportHeight     int64         `yaml:"viewport_height"`
	FallbackTextLimit  int           `yaml:"fallback_text_limit"`
	VerifyOutput       bool          `yaml:"verify_output"`
	MaxHTMLBytes       int64         `yaml:"max_html_bytes"`
}

// LocaleConfig selects number, currency and date conventions.
type LocaleConfig struct {
	Language       string `yaml:"language"`
	CurrencySymbol string `yaml:"currency_symbol"`
	Timezone       string `yaml:"timezone"`
}

// TemplateConfig tunes the template resolver.
type TemplateConfig struct {
	Strict        bool   `yaml:"strict"`
	MaxIterations int    `yaml:"max_iterations"`
	ShellPath     string `yaml:"shell_path"`
}

// LogConfig selects log level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Defaults returns a Config with sensible defaults.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         "3000",
			BodyLimit:    10 * 1024 * 1024,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
		},
		Render: RenderConfig{
			SessionEndpoint:    reportpdf.DefaultSessionEndpoint,
			HTTPEndpoint:       reportpdf.DefaultHTTPEndpoint,
			ScreenshotEndpoint: reportpdf.DefaultScreenshotEndpoint,
			SessionTimeout:     reportpdf.DefaultSessionTimeout,
			HTTPTimeout:        reportpdf.DefaultHTTPTimeout,
			DOMTimeout:         reportpdf.DefaultDOMTimeout,
			SettleDelay:        reportpdf.DefaultSettleDelay,
			ViewportWidth:      reportpdf.DefaultViewportWidth,
			ViewportHeight:     reportpdf.DefaultViewportHeight,
			FallbackTextLimit:  reportpdf.DefaultTextLimit,
			VerifyOutput:       true,
			MaxHTMLBytes:       reportpdf.DefaultMaxHTMLBytes,
		},
		Locale: LocaleConfig{
			Language:       helpers.DefaultLanguage,
			CurrencySymbol: helpers.DefaultCurrencySymbol,
			Timezone:       helpers.DefaultTimezone,
		},
		Template: TemplateConfig{
			MaxIterations: 10000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads a YAML file over the defaults. An empty path yields the
// defaults. Environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, report.NewError(report.KindValidation, "read config", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, report.NewError(report.KindValidation, "parse config "+path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		return nil
	}
	get := func(key string) (string, bool) {
		value, ok := lookup(key)
		if !ok || strings.TrimSpace(value) == "" {
			return "", false
		}
		return strings.TrimSpace(value), true
	}

	if port, ok := get("PORT"); ok {
		c.Server.Port = port
	}
	if host, ok := get("HOST"); ok {
		c.Server.Host = host
	}
	if token, ok := get("BROWSERLESS_TOKEN"); ok {
		c.Render.Token = token
	}
	if endpoint, ok := get("REPORT_SESSION_ENDPOINT"); ok {
		c.Render.SessionEndpoint = endpoint
	}
	if endpoint, ok := get("REPORT_HTTP_ENDPOINT"); ok {
		c.Render.HTTPEndpoint = endpoint
	}
	if endpoint, ok := get("REPORT_SCREENSHOT_ENDPOINT"); ok {
		c.Render.ScreenshotEndpoint = endpoint
	}
	if keys, ok := get("REPORT_API_KEYS"); ok {
		c.Auth.Keys = splitList(keys)
		c.Auth.Enabled = len(c.Auth.Keys) > 0
	}
	if value, ok := get("REPORT_AUTH_ENABLED"); ok {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return envError("REPORT_AUTH_ENABLED", err)
		}
		c.Auth.Enabled = enabled
	}
	if value, ok := get("REPORT_VERIFY_OUTPUT"); ok {
		verify, err := strconv.ParseBool(value)
		if err != nil {
			return envError("REPORT_VERIFY_OUTPUT", err)
		}
		c.Render.VerifyOutput = verify
	}
	if value, ok := get("REPORT_TEMPLATE_STRICT"); ok {
		strict, err := strconv.ParseBool(value)
		if err != nil {
			return envError("REPORT_TEMPLATE_STRICT", err)
		}
		c.Template.Strict = strict
	}
	if value, ok := get("REPORT_FALLBACK_TEXT_LIMIT"); ok {
		limit, err := strconv.Atoi(value)
		if err != nil {
			return envError("REPORT_FALLBACK_TEXT_LIMIT", err)
		}
		c.Render.FallbackTextLimit = limit
	}
	if value, ok := get("REPORT_SHELL_PATH"); ok {
		c.Template.ShellPath = value
	}
	if value, ok := get("REPORT_LOCALE"); ok {
		c.Locale.Language = value
	}
	if value, ok := get("REPORT_CURRENCY_SYMBOL"); ok {
		c.Locale.CurrencySymbol = value
	}
	if value, ok := get("REPORT_TIMEZONE"); ok {
		c.Locale.Timezone = value
	}
	if value, ok := get("REPORT_LOG_LEVEL"); ok {
		c.Log.Level = value
	}
	if value, ok := get("REPORT_LOG_FORMAT"); ok {
		c.Log.Format = value
	}
	return nil
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	var details []report.FieldError
	if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 0 || port > 65535 {
		details = append(details, report.FieldError{Field: "server.port", Message: "must be a port number"})
	}
	if c.Auth.Enabled && len(c.Auth.Keys) == 0 {
		details = append(details, report.FieldError{Field: "auth.keys", Message: "required when auth is enabled"})
	}
	if c.Template.MaxIterations < 0 {
		details = append(details, report.FieldError{Field: "template.max_iterations", Message: "must not be negative"})
	}
	if c.Render.FallbackTextLimit < 0 {
		details = append(details, report.FieldError{Field: "render.fallback_text_limit", Message: "must not be negative"})
	}
	if _, err := c.Locale.Build(); err != nil {
		details = append(details, report.FieldError{Field: "locale", Message: err.Error()})
	}
	if len(details) > 0 {
		return report.NewValidationError(details)
	}
	return nil
}

// Build turns the locale settings into a helpers.Locale.
func (l LocaleConfig) Build() (helpers.Locale, error) {
	return helpers.NewLocale(l.Language, l.CurrencySymbol, l.Timezone)
}

// Labels returns report labels for the configured language.
func (l LocaleConfig) Labels() (*labels.Labels, error) {
	return labels.New(l.Language)
}

// PDF maps render settings onto the strategy chain config.
func (c Config) PDF(locale *helpers.Locale, logger report.Logger) reportpdf.Config {
	return reportpdf.Config{
		Token:              c.Render.Token,
		SessionEndpoint:    c.Render.SessionEndpoint,
		HTTPEndpoint:       c.Render.HTTPEndpoint,
		ScreenshotEndpoint: c.Render.ScreenshotEndpoint,
		SessionTimeout:     c.Render.SessionTimeout,
		HTTPTimeout:        c.Render.HTTPTimeout,
		DOMTimeout:         c.Render.DOMTimeout,
		SettleDelay:        c.Render.SettleDelay,
		ViewportWidth:      c.Render.ViewportWidth,
		ViewportHeight:     c.Render.ViewportHeight,
		TextLimit:          c.Render.FallbackTextLimit,
		Verify:             c.Render.VerifyOutput,
		Locale:             locale,
		Logger:             logger,
	}
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envError(key string, err error) error {
	return report.NewError(report.KindValidation, fmt.Sprintf("invalid %s", key), err)
}
