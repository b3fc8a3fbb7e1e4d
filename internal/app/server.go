package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Start serves HTTP and returns a channel that is closed once a shutdown
// signal arrives. Background work started from a.ctx is cancelled at the
// same time.
func (a *App) Start() <-chan struct{} {
	terminated := make(chan struct{})

	go func() {
		slog.Info("http server listening", "address", a.httpServer.Addr)

		if err := a.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to listen and serve http server", "error", err)
			os.Exit(1)
		}
	}()

	go func() {
		ctx, stop := signal.NotifyContext(a.ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
		defer stop()

		<-ctx.Done()
		a.cancel()
		close(terminated)

		slog.Info("shutdown signal received")
	}()

	return terminated
}

// Serve runs the HTTP server on l. It is used by tests that need a random
// port.
func (a *App) Serve(l net.Listener) <-chan error {
	errChan := make(chan error, 1)

	go func() {
		errChan <- a.httpServer.Serve(l)
		close(errChan)
	}()

	return errChan
}

// Stop drains HTTP, waits for consumers, then runs the closers in order.
// It keeps going past failures so every resource gets a chance to close.
func (a *App) Stop(ctx context.Context) {
	a.cancel()

	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", "HTTP Server", "error", err)
		}
	}

	if a.goroutine != nil {
		slog.InfoContext(ctx, "waiting for background consumers")
		if err := a.goroutine.Wait(); err != nil {
			slog.ErrorContext(ctx, "background consumer stopped with error", "error", err)
		}
	}

	for _, closer := range a.closers {
		start := time.Now()
		if err := closer.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", closer.name, "error", err)
			continue
		}
		slog.InfoContext(ctx, "resource closed", "name", closer.name, "took", time.Since(start).String())
	}

	slog.InfoContext(ctx, "application gracefully shutdown")
}
