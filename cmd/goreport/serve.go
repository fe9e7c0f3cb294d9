package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
	"github.com/spf13/cobra"

	reporthttp "github.com/goliatone/go-report/adapters/http"
	"github.com/goliatone/go-report/config"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the report HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, err := loadComponents(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return serve(cmd.Context(), comp)
		},
	}
}

type server struct {
	addr string
	http router.Server[*fiber.App]
}

// newServer builds the HTTP server. Request contexts derive from base, so
// canceling it aborts renders still in flight.
func newServer(base context.Context, comp *components) *server {
	cfg := comp.cfg
	handlerCfg := reporthttp.Config{
		Service:        comp.service,
		RequestTimeout: cfg.Server.WriteTimeout,
		BaseContext:    base,
		Logger:         comp.logger.With("scope", "http"),
	}
	if cfg.Auth.Enabled {
		handlerCfg.Auth = reporthttp.StaticKeys(cfg.Auth.Keys)
	}
	return &server{
		addr: cfg.Server.Addr(),
		http: reporthttp.NewApp(appConfig(cfg), handlerCfg),
	}
}

func appConfig(cfg config.Config) reporthttp.AppConfig {
	return reporthttp.AppConfig{
		Name:         "go-report",
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		AccessLog:    true,
	}
}

func serve(ctx context.Context, comp *components) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := newServer(ctx, comp)
	errCh := make(chan error, 1)
	go func() {
		comp.logger.Infof("starting server on http://%s", srv.addr)
		comp.logger.Infof("report API: http://%s%s", srv.addr, reporthttp.DefaultBasePath)
		comp.logger.Infof("screenshot API: http://%s%s", srv.addr, reporthttp.DefaultScreenshotPath)
		errCh <- srv.http.Serve(srv.addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	comp.logger.Infof("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.http.Shutdown(shutdownCtx); err != nil {
		comp.logger.Errorf("shutdown error: %v", err)
		return err
	}
	return nil
}
