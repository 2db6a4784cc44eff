package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/greeting-api/internal/http/api"
	"github.com/janisto/greeting-api/internal/http/v1/routes"
	"github.com/janisto/greeting-api/internal/platform/config"
	applog "github.com/janisto/greeting-api/internal/platform/logging"
	appmiddleware "github.com/janisto/greeting-api/internal/platform/middleware"
	"github.com/janisto/greeting-api/internal/platform/respond"
	greetingsvc "github.com/janisto/greeting-api/internal/service/greeting"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	ctx := context.Background()
	if err := applog.Err(); err != nil {
		applog.LogError(ctx, "logger init error", err)
	}
	if err := config.LoadEnvFile(os.Getenv("ENV_FILE")); err != nil {
		applog.LogError(ctx, "env file error", err)
	}

	err := config.NewCommand(Version, run).Run(ctx, os.Args)
	if syncErr := applog.Sync(); syncErr != nil {
		applog.LogError(ctx, "logger sync error", syncErr)
	}
	if err != nil {
		applog.LogError(ctx, "server failed", err)
		os.Exit(1)
	}
}

// newRouter builds the full middleware stack and registers every route.
func newRouter(svc greetingsvc.Service) http.Handler {
	respond.Install()

	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())
	router.Use(
		appmiddleware.Security(api.DocsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP trusts X-Real-IP / X-Forwarded-For; only deploy behind a trusted proxy.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(1<<20),
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	routes.Register(api.New(router, api.NewConfig("Greeting API", Version)), svc)
	return router
}

func run(ctx context.Context, cfg config.Config) error {
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(greetingsvc.NewCounterService()),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return serve(ctx, srv, cfg.ShutdownTimeout)
}

// serve runs srv until ctx is cancelled, then drains in-flight requests for at most shutdownTimeout.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(ctx, "server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
		close(listenErr)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			applog.LogError(ctx, "listen failed", err, zap.String("addr", srv.Addr))
		}
		return err
	case <-ctx.Done():
		applog.LogInfo(context.Background(), "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		applog.LogError(shutdownCtx, "server shutdown error", err)
		return err
	}
	applog.LogInfo(shutdownCtx, "server exited")
	return nil
}
