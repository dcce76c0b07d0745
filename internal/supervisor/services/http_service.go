// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/clickstream/internal/logging"
)

// DefaultShutdownTimeout bounds connection draining on shutdown.
const DefaultShutdownTimeout = 10 * time.Second

// HTTPServer is the subset of *http.Server the service drives.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServerService runs an HTTP server as a supervised service. Serve
// returns when the server fails or ctx is canceled; on cancellation the
// server is shut down gracefully within the shutdown timeout.
//
//	server := &http.Server{Addr: cfg.Server.Addr(), Handler: router.Handler()}
//	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
type HTTPServerService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
	name            string
}

// NewHTTPServerService wraps server. A non-positive shutdownTimeout uses
// DefaultShutdownTimeout.
func NewHTTPServerService(server HTTPServer, shutdownTimeout time.Duration) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = DefaultShutdownTimeout
	}
	return &HTTPServerService{
		server:          server,
		shutdownTimeout: shutdownTimeout,
		name:            "http-server",
	}
}

// Serve implements suture.Service. http.ErrServerClosed is not a failure.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	if srv, ok := h.server.(*http.Server); ok {
		logging.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
	}

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		// ctx is already canceled; shutdown needs its own deadline.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
		defer cancel()

		if err := h.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}

		<-errCh
		logging.Info().Msg("HTTP server stopped")
		return ctx.Err()
	}
}

// String names the service in supervisor logs.
func (h *HTTPServerService) String() string {
	return h.name
}
