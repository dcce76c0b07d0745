// Clickstream - Purchase Intent Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickstream

package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// mockHTTPServer is a test double for HTTPServer.
type mockHTTPServer struct {
	listenAndServeErr    error
	listenAndServeBlock  bool
	shutdownErr          error
	listenAndServeCount  atomic.Int32
	shutdownCount        atomic.Int32
	listenAndServeCalled chan struct{}
	stopCh               chan struct{}
	stopOnce             sync.Once
}

func newMockHTTPServer() *mockHTTPServer {
	return &mockHTTPServer{
		listenAndServeCalled: make(chan struct{}, 1),
		stopCh:               make(chan struct{}),
	}
}

func (m *mockHTTPServer) ListenAndServe() error {
	m.listenAndServeCount.Add(1)

	select {
	case m.listenAndServeCalled <- struct{}{}:
	default:
	}

	if m.listenAndServeErr != nil {
		return m.listenAndServeErr
	}
	if m.listenAndServeBlock {
		<-m.stopCh
		return http.ErrServerClosed
	}
	return nil
}

func (m *mockHTTPServer) Shutdown(ctx context.Context) error {
	m.shutdownCount.Add(1)
	m.stopOnce.Do(func() { close(m.stopCh) })
	return m.shutdownErr
}

func TestHTTPServerService_Interface(t *testing.T) {
	var _ suture.Service = (*HTTPServerService)(nil)
	var _ HTTPServer = (*http.Server)(nil)
}

func TestNewHTTPServerService_DefaultTimeout(t *testing.T) {
	for _, timeout := range []time.Duration{0, -5 * time.Second} {
		svc := NewHTTPServerService(newMockHTTPServer(), timeout)
		if svc.shutdownTimeout != DefaultShutdownTimeout {
			t.Errorf("timeout %v: got %v, want default", timeout, svc.shutdownTimeout)
		}
	}

	svc := NewHTTPServerService(newMockHTTPServer(), 3*time.Second)
	if svc.shutdownTimeout != 3*time.Second || svc.String() != "http-server" {
		t.Errorf("svc = %+v", svc)
	}
}

func TestHTTPServerService_Serve(t *testing.T) {
	t.Run("shuts down gracefully on context cancellation", func(t *testing.T) {
		server := newMockHTTPServer()
		server.listenAndServeBlock = true
		svc := NewHTTPServerService(server, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()

		select {
		case <-server.listenAndServeCalled:
		case <-time.After(time.Second):
			t.Fatal("server did not start")
		}
		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Serve did not return after context cancellation")
		}

		if server.shutdownCount.Load() != 1 {
			t.Errorf("expected 1 Shutdown call, got %d", server.shutdownCount.Load())
		}
	})

	t.Run("returns error on startup failure", func(t *testing.T) {
		bindErr := errors.New("bind: address already in use")
		server := newMockHTTPServer()
		server.listenAndServeErr = bindErr

		err := NewHTTPServerService(server, time.Second).Serve(context.Background())
		if !errors.Is(err, bindErr) {
			t.Errorf("expected %v, got %v", bindErr, err)
		}
	})

	t.Run("returns shutdown error if shutdown fails", func(t *testing.T) {
		shutdownErr := errors.New("shutdown timeout")
		server := newMockHTTPServer()
		server.listenAndServeBlock = true
		server.shutdownErr = shutdownErr
		svc := NewHTTPServerService(server, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()

		<-server.listenAndServeCalled
		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, shutdownErr) {
				t.Errorf("expected shutdown error, got %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Serve did not return")
		}
	})
}

func TestHTTPServerService_RealServer(t *testing.T) {
	server := &http.Server{
		Addr:              "127.0.0.1:0",
		Handler:           http.NotFoundHandler(),
		ReadHeaderTimeout: time.Second,
	}
	svc := NewHTTPServerService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve = %v, want context.Canceled", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("real server did not stop")
	}
}

func TestHTTPServerService_WithSupervisor(t *testing.T) {
	server := newMockHTTPServer()
	server.listenAndServeBlock = true

	sup := suture.New("test-sup", suture.Spec{
		FailureThreshold: 3,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          2 * time.Second,
	})
	sup.Add(NewHTTPServerService(server, time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	select {
	case <-server.listenAndServeCalled:
	case <-time.After(time.Second):
		t.Fatal("server did not start")
	}

	cancel()
	<-errCh

	if server.shutdownCount.Load() < 1 {
		t.Error("server Shutdown was not called")
	}
}
