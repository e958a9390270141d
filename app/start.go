package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second

	fallbackShutdownTimeout = 15 * time.Second
)

// Start serves HTTP until ctx is cancelled, then shuts the server down within
// the configured shutdown timeout.
func (app *App) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", app.Config.HTTP.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", app.Config.HTTP.Address, err)
	}
	return app.Serve(ctx, listener)
}

// Serve is Start on an existing listener.
func (app *App) Serve(ctx context.Context, listener net.Listener) error {
	logger := app.Observability.Logger

	srv := &http.Server{
		Handler:           app.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.InfoContext(ctx, "Starting HTTP server", "address", listener.Addr().String())
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down HTTP server")

		timeout := app.Config.HTTP.ShutdownTimeout
		if timeout <= 0 {
			timeout = fallbackShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down http server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("HTTP server stopped")
	return nil
}
