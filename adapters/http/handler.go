package reporthttp

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-router"

	"github.com/goliatone/go-report/report"
)

// Default route locations.
const (
	DefaultBasePath       = "/api/v1/reports"
	DefaultScreenshotPath = "/api/v1/screenshot"
)

// ReportService is the subset of report.Service the transport needs.
type ReportService interface {
	Generate(ctx context.Context, req report.Request) (report.Result, error)
	Preview(ctx context.Context, req report.Request) (string, error)
	Screenshot(ctx context.Context, req report.ScreenshotRequest) (report.ScreenshotResult, error)
}

var _ ReportService = (*report.Service)(nil)

// Config configures the HTTP adapter.
type Config struct {
	Service        ReportService
	Auth           Authenticator
	BasePath       string
	ScreenshotPath string
	// RequestTimeout bounds the context handed to the service. Zero leaves
	// requests bounded only by BaseContext.
	RequestTimeout time.Duration
	// BaseContext parents every request context. Canceling it aborts
	// in-flight renders.
	BaseContext context.Context
	Logger      report.Logger
}

// Handler exposes report HTTP endpoints.
type Handler struct {
	service        ReportService
	auth           Authenticator
	basePath       string
	screenshotPath string
	timeout        time.Duration
	base           context.Context
	logger         report.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = report.NopLogger{}
	}
	return &Handler{
		service:        cfg.Service,
		auth:           cfg.Auth,
		basePath:       cleanPath(cfg.BasePath, DefaultBasePath),
		screenshotPath: cleanPath(cfg.ScreenshotPath, DefaultScreenshotPath),
		timeout:        cfg.RequestTimeout,
		base:           cfg.BaseContext,
		logger:         logger,
	}
}

func cleanPath(path, fallback string) string {
	path = strings.TrimRight(strings.TrimSpace(path), "/")
	if path == "" {
		return fallback
	}
	return path
}

type routeRegistrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
}

// RegisterRoutes mounts the report endpoints and the health check.
func (h *Handler) RegisterRoutes(r routeRegistrar) {
	r.Get("/healthz", h.health)

	guarded := []router.MiddlewareFunc{h.withRequestContext, h.authenticate}
	r.Post(h.basePath+"/generate", h.generate, guarded...)
	r.Post(h.basePath+"/preview", h.preview, guarded...)
	r.Post(h.screenshotPath, h.screenshot, guarded...)
}

func (h *Handler) health(c router.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) generate(c router.Context) error {
	if h.service == nil {
		return h.writeError(c, report.NewError(report.KindInternal, "report service is not configured", nil))
	}
	req, err := decodeRequest(c)
	if err != nil {
		return h.writeError(c, err)
	}

	result, err := h.service.Generate(c.Context(), req)
	if err != nil {
		return h.writeError(c, err)
	}
	return writeDownload(c, result)
}

func (h *Handler) preview(c router.Context) error {
	if h.service == nil {
		return h.writeError(c, report.NewError(report.KindInternal, "report service is not configured", nil))
	}
	req, err := decodeRequest(c)
	if err != nil {
		return h.writeError(c, err)
	}

	markup, err := h.service.Preview(c.Context(), req)
	if err != nil {
		return h.writeError(c, err)
	}
	c.SetHeader("Content-Type", "text/html; charset=utf-8")
	return c.SendString(markup)
}

func (h *Handler) screenshot(c router.Context) error {
	if h.service == nil {
		return h.writeError(c, report.NewError(report.KindInternal, "report service is not configured", nil))
	}
	body, err := jsonBody(c)
	if err != nil {
		return h.writeError(c, err)
	}
	req, err := report.DecodeScreenshotRequest(body)
	if err != nil {
		return h.writeError(c, err)
	}

	result, err := h.service.Screenshot(c.Context(), req)
	if err != nil {
		return h.writeError(c, err)
	}
	return writeImage(c, result)
}

// withRequestContext swaps the request context for one that ends when the
// timeout elapses or the base context is canceled.
func (h *Handler) withRequestContext(next router.HandlerFunc) router.HandlerFunc {
	return func(c router.Context) error {
		ctx, cancel := h.requestContext(c.Context())
		defer cancel()
		c.SetContext(ctx)
		return next(c)
	}
}

func (h *Handler) requestContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	stop := func() bool { return false }
	if h.base != nil {
		stop = context.AfterFunc(h.base, cancel)
	}
	release := func() {
		stop()
		cancel()
	}
	if h.timeout <= 0 {
		return ctx, release
	}
	timed, cancelTimeout := context.WithTimeout(ctx, h.timeout)
	return timed, func() {
		cancelTimeout()
		release()
	}
}
