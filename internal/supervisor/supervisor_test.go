// FounderBridge - Entrepreneur and Funder Matching Platform
// Copyright 2026 FounderBridge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/founderbridge/founderbridge

package supervisor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

func discardSlog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockHTTPServer implements HTTPServer without opening sockets.
type mockHTTPServer struct {
	started  chan struct{}
	release  chan struct{}
	shutdown atomic.Bool
}

func newMockHTTPServer() *mockHTTPServer {
	return &mockHTTPServer{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (m *mockHTTPServer) ListenAndServe() error {
	close(m.started)
	<-m.release
	return http.ErrServerClosed
}

func (m *mockHTTPServer) Shutdown(ctx context.Context) error {
	m.shutdown.Store(true)
	close(m.release)
	return nil
}

func TestHTTPService_GracefulShutdown(t *testing.T) {
	srv := newMockHTTPServer()
	svc := NewHTTPService(srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	select {
	case <-srv.started:
	case <-time.After(time.Second):
		t.Fatal("server never started")
	}

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	if !srv.shutdown.Load() {
		t.Error("Shutdown was not called")
	}
}

type failingHTTPServer struct{}

func (failingHTTPServer) ListenAndServe() error            { return errors.New("bind: address already in use") }
func (failingHTTPServer) Shutdown(_ context.Context) error { return nil }

func TestHTTPService_StartupFailure(t *testing.T) {
	svc := NewHTTPService(failingHTTPServer{}, time.Second)

	err := svc.Serve(context.Background())
	if err == nil {
		t.Fatal("Serve() = nil, want startup error")
	}
}

func TestHTTPService_String(t *testing.T) {
	svc := NewHTTPService(failingHTTPServer{}, 0)
	if svc.String() != "http-server" {
		t.Errorf("String() = %q", svc.String())
	}
	if svc.shutdownTimeout != 10*time.Second {
		t.Errorf("zero timeout should default to 10s, got %v", svc.shutdownTimeout)
	}
}

// mockGCRunner returns canned results per call.
type mockGCRunner struct {
	calls   atomic.Int64
	results []error
}

func (m *mockGCRunner) RunGC(_ float64) error {
	n := m.calls.Add(1)
	if int(n) > len(m.results) {
		return badger.ErrNoRewrite
	}
	return m.results[n-1]
}

func TestStoreGCService_LoopsUntilNoRewrite(t *testing.T) {
	runner := &mockGCRunner{results: []error{nil, nil, badger.ErrNoRewrite}}
	svc := NewStoreGCService(runner, time.Hour, 0.5, zerolog.Nop())

	svc.runOnce()

	if got := runner.calls.Load(); got != 3 {
		t.Errorf("RunGC called %d times, want 3", got)
	}
}

func TestStoreGCService_StopsOnError(t *testing.T) {
	runner := &mockGCRunner{results: []error{errors.New("disk gone")}}
	svc := NewStoreGCService(runner, time.Hour, 0.5, zerolog.Nop())

	svc.runOnce()

	if got := runner.calls.Load(); got != 1 {
		t.Errorf("RunGC called %d times, want 1", got)
	}
}

func TestStoreGCService_Serve(t *testing.T) {
	runner := &mockGCRunner{}
	svc := NewStoreGCService(runner, 10*time.Millisecond, 0.5, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	// Wait for at least one tick.
	deadline := time.After(time.Second)
	for runner.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("gc never ran")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestStoreGCService_Defaults(t *testing.T) {
	svc := NewStoreGCService(&mockGCRunner{}, 0, 2.0, zerolog.Nop())
	if svc.interval != 10*time.Minute {
		t.Errorf("interval = %v, want 10m", svc.interval)
	}
	if svc.discardRatio != 0.5 {
		t.Errorf("discardRatio = %f, want 0.5", svc.discardRatio)
	}
	if svc.String() != "store-gc" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestTree_RunsChildServices(t *testing.T) {
	tree := NewTree(discardSlog(), DefaultTreeConfig())

	srv := newMockHTTPServer()
	tree.AddAPIService(NewHTTPService(srv, time.Second))

	runner := &mockGCRunner{}
	tree.AddDataService(NewStoreGCService(runner, 5*time.Millisecond, 0.5, zerolog.Nop()))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	select {
	case <-srv.started:
	case err := <-errCh:
		t.Fatalf("supervisor exited early: %v", err)
	case <-time.After(time.Second):
		t.Fatal("http service never started under supervision")
	}

	deadline := time.After(time.Second)
	for runner.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("gc service never ran under supervision")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-errCh:
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor did not stop after cancel")
	}
}

func TestTree_ZeroConfigGetsDefaults(t *testing.T) {
	tree := NewTree(discardSlog(), TreeConfig{})
	if tree.config.FailureThreshold != 5.0 {
		t.Errorf("FailureThreshold = %f, want 5", tree.config.FailureThreshold)
	}
	if tree.config.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", tree.config.ShutdownTimeout)
	}
	if tree.Root() == nil {
		t.Error("Root() = nil")
	}
}
