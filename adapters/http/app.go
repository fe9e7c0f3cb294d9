package reporthttp

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/goliatone/go-router"

	"github.com/goliatone/go-report/report"
)

// AppConfig configures the fiber application hosting the handler.
type AppConfig struct {
	Name         string
	BodyLimit    int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AccessLog    bool
}

// NewApp builds the router server with the report routes mounted. Request
// contexts default to the write timeout when cfg leaves RequestTimeout unset.
func NewApp(appCfg AppConfig, cfg Config) router.Server[*fiber.App] {
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = appCfg.WriteTimeout
	}
	handler := NewHandler(cfg)

	srv := router.NewFiberAdapter(fiberAppInitializer(appCfg, handler))
	handler.RegisterRoutes(srv.Router())
	return srv
}

func fiberAppInitializer(appCfg AppConfig, handler *Handler) func(*fiber.App) *fiber.App {
	name := appCfg.Name
	if name == "" {
		name = "go-report"
	}
	return func(_ *fiber.App) *fiber.App {
		app := fiber.New(fiber.Config{
			AppName:      name,
			BodyLimit:    appCfg.BodyLimit,
			ReadTimeout:  appCfg.ReadTimeout,
			WriteTimeout: appCfg.WriteTimeout,
			ErrorHandler: handler.fiberError,
		})

		app.Use(recover.New())
		if appCfg.AccessLog {
			app.Use(logger.New(logger.Config{
				Format: "[${time}] ${status} ${method} ${path} ${latency}\n",
			}))
		}
		app.Use(cors.New(cors.Config{
			AllowOrigins:  "*",
			AllowMethods:  "GET,POST,OPTIONS",
			AllowHeaders:  "Content-Type,Authorization,X-API-Key",
			ExposeHeaders: "Content-Disposition,X-Report-ID,X-Generated-At,X-Render-Strategy,X-Page-Count",
		}))
		return app
	}
}

// fiberError renders errors that escape handlers (unknown routes, body
// limits, recovered panics) with the same JSON shape.
func (h *Handler) fiberError(c *fiber.Ctx, err error) error {
	var (
		fe *fiber.Error
		re *report.Error
	)
	if errors.As(err, &fe) {
		switch {
		case fe.Code == fiber.StatusRequestEntityTooLarge:
			err = report.NewValidationError([]report.FieldError{{Field: "body", Message: "request body too large"}})
		case fe.Code < fiber.StatusInternalServerError:
			return c.Status(fe.Code).JSON(ErrorResponse{Error: errorLabel(fe.Code), Message: fe.Message})
		default:
			err = report.NewError(report.KindInternal, "unexpected server error", err)
		}
	} else if !errors.As(err, &re) {
		err = report.NewError(report.KindInternal, "unexpected server error", err)
	}
	status, payload := h.errorResponse(c.Method(), c.Path(), err)
	return c.Status(status).JSON(payload)
}
