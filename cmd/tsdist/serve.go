package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/go-tsdist-gpu/internal/config"
	"github.com/example/go-tsdist-gpu/internal/device"
	"github.com/example/go-tsdist-gpu/internal/server"
	"github.com/example/go-tsdist-gpu/internal/tsdist"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the distance engine HTTP server",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			backend, err := device.ParseBackend(cfg.Device.Backend)
			if err != nil {
				return err
			}

			engine, err := tsdist.NewEngine(tsdist.Config{
				Backend:        backend,
				WarpWidth:      uint64(cfg.Device.WarpWidth),
				MaxBufferBytes: uint64(cfg.Device.MaxBufferBytes),
			})
			if err != nil {
				return err
			}
			defer func() { _ = engine.Close() }()

			srv := server.New(cfg, engine).
				WithShutdownTimeout(time.Duration(cfg.Server.ShutdownTimeout) * time.Second)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Start(ctx)
		},
	}

	defaults := config.DefaultConfig()
	config.RegisterFlags(cmd.Flags(), defaults)

	return cmd
}
