package device

import (
	"context"
	"log/slog"

	"github.com/example/go-tsdist-gpu/internal/kernel"
	"golang.org/x/sync/errgroup"
)

// Software is the always-available reference backend. It fans out one
// goroutine per (pair, diamond) within a row — the diamonds active in one
// row are data-independent by construction (spec §5), the same guarantee
// that lets real hardware run them as separate SIMT workgroups.
type Software struct{}

// NewSoftware returns the CPU reference device.
func NewSoftware() *Software {
	slog.Info("selected device", "backend", BackendSoftware.String())
	return &Software{}
}

func (s *Software) Name() string { return BackendSoftware.String() }

func (s *Software) RunRow(ctx context.Context, job RowJob) error {
	g, ctx := errgroup.WithContext(ctx)

	for pair := 0; pair < job.PairCount; pair++ {
		d := job.Dispatch(pair)

		for diamond := uint64(0); diamond < job.DiamondsCount; diamond++ {
			diamond := diamond

			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}

				kernel.RunDiamond(d, diamond)

				return nil
			})
		}
	}

	return g.Wait()
}

func (s *Software) Close() error { return nil }
