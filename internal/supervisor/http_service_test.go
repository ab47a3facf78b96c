// Cinemood - Mood-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"
	"time"
)

// fakeServer implements HTTPServer with controllable behavior.
type fakeServer struct {
	listenErr   error
	shutdownErr error
	started     chan struct{}
	release     chan struct{}
	shutdowns   int
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (f *fakeServer) ListenAndServe() error {
	close(f.started)
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.release
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(context.Context) error {
	f.shutdowns++
	close(f.release)
	return f.shutdownErr
}

func TestHTTPService_GracefulShutdown(t *testing.T) {
	srv := newFakeServer()
	svc := NewHTTPService(srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	<-srv.started
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	if srv.shutdowns != 1 {
		t.Errorf("shutdowns = %d, want 1", srv.shutdowns)
	}
}

func TestHTTPService_ListenFailure(t *testing.T) {
	srv := newFakeServer()
	srv.listenErr = errors.New("address in use")
	svc := NewHTTPService(srv, time.Second)

	err := svc.Serve(context.Background())
	if err == nil || !errors.Is(err, srv.listenErr) {
		t.Errorf("Serve() = %v, want wrapped listen error", err)
	}
}

func TestHTTPService_String(t *testing.T) {
	if got := NewHTTPService(newFakeServer(), 0).String(); got != "http-server" {
		t.Errorf("String() = %q", got)
	}
}

func TestTree_ServesAddedServices(t *testing.T) {
	tree := NewTree(slog.New(slog.DiscardHandler), DefaultTreeConfig())

	srv := newFakeServer()
	tree.AddAPIService(NewHTTPService(srv, time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	select {
	case <-srv.started:
	case <-time.After(2 * time.Second):
		t.Fatal("service was not started")
	}
	cancel()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("tree error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not stop")
	}
}
