package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/example/go-tsdist-gpu/internal/bench"
	"github.com/example/go-tsdist-gpu/internal/device"
	"github.com/example/go-tsdist-gpu/internal/measure"
	"github.com/example/go-tsdist-gpu/internal/tsdist"
	"github.com/spf13/cobra"
)

func newBenchCmd() *cobra.Command {
	var (
		measureName string
		aCount      int
		bCount      int
		sampleLen   int
		runs        int
		format      string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark batch distance throughput against synthetic series",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if runs < 1 {
				return fmt.Errorf("--runs must be at least 1")
			}
			if format != "table" && format != "json" {
				return fmt.Errorf("--format must be 'table' or 'json'")
			}

			m, err := resolveMeasure(measureName, cfg.Compute, nil)
			if err != nil {
				return err
			}
			if _, ok := m.(measure.WDTW); ok {
				m = measure.WDTW{Weights: unitWeights(sampleLen)}
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

			as := bench.GenerateSeries(aCount, sampleLen)
			bs := bench.GenerateSeries(bCount, sampleLen)

			results, err := runBench(cmd.Context(), engine, m, as, bs, runs)
			if err != nil {
				return err
			}

			durations := make([]time.Duration, len(results))
			for i, r := range results {
				durations[i] = r.Duration
			}
			stats := bench.ComputeStats(durations)

			switch format {
			case "json":
				bench.FormatJSON(results, stats, os.Stdout)
			default:
				bench.FormatTable(results, stats, os.Stdout)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&measureName, "measure", "dtw", "Distance measure (dtw|wdtw|adtw|erp|lcss|msm|twe)")
	cmd.Flags().IntVar(&aCount, "a-count", 8, "Number of synthetic A series")
	cmd.Flags().IntVar(&bCount, "b-count", 8, "Number of synthetic B series")
	cmd.Flags().IntVar(&sampleLen, "sample-len", 128, "Length of each synthetic series")
	cmd.Flags().IntVar(&runs, "runs", 3, "Number of batch runs")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json")

	return cmd
}

// unitWeights returns a flat weight vector, long enough for any index
// distance between two length-n series, so the WDTW benchmark exercises the
// weighted code path without favoring any particular offset.
func unitWeights(n int) []float32 {
	w := make([]float32, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

func runBench(ctx context.Context, engine *tsdist.Engine, m measure.Measure, as, bs [][]float32, runs int) ([]bench.RunResult, error) {
	results := make([]bench.RunResult, 0, runs)

	cells := int64(0)
	for _, a := range as {
		for _, b := range bs {
			cells += int64(len(a)) * int64(len(b))
		}
	}

	for i := 0; i < runs; i++ {
		start := time.Now()
		if _, err := engine.RunBatch(ctx, m, as, bs); err != nil {
			return nil, fmt.Errorf("run %d failed: %w", i+1, err)
		}
		dur := time.Since(start)

		results = append(results, bench.RunResult{
			Index:          i,
			Cold:           i == 0,
			Duration:       dur,
			Cells:          cells,
			CellsPerSecond: bench.CellsPerSecond(cells, dur),
		})
	}

	return results, nil
}
