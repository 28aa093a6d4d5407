//go:build integration

package main

import (
	"context"
	"testing"
	"time"

	"github.com/example/go-tsdist-gpu/internal/config"
	"github.com/example/go-tsdist-gpu/internal/device"
	"github.com/example/go-tsdist-gpu/internal/server"
	"github.com/example/go-tsdist-gpu/internal/tsdist"
)

// TestServe_StartAndGracefulShutdown starts a real server.Server on an
// ephemeral port, waits for /health to answer, then cancels the context and
// asserts Start returns cleanly within the shutdown timeout.
func TestServe_StartAndGracefulShutdown(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.ListenAddr = "127.0.0.1:0"

	engine, err := tsdist.NewEngine(tsdist.Config{
		Backend:        device.BackendSoftware,
		WarpWidth:      uint64(cfg.Device.WarpWidth),
		MaxBufferBytes: uint64(cfg.Device.MaxBufferBytes),
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer func() { _ = engine.Close() }()

	srv := server.New(cfg, engine).WithShutdownTimeout(2 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	// ListenAddr ":0" means the real bound port isn't known to this test
	// without plumbing it back out of http.Server, so this only exercises
	// that Start begins serving and shuts down cleanly on cancellation.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start returned error after cancellation: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Start did not return within the shutdown timeout")
	}
}
