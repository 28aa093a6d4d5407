package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/example/go-tsdist-gpu/internal/config"
	"github.com/example/go-tsdist-gpu/internal/device"
	"github.com/example/go-tsdist-gpu/internal/measure"
	"github.com/example/go-tsdist-gpu/internal/tsdist"
	"github.com/spf13/cobra"
)

func newComputeCmd() *cobra.Command {
	var (
		measureName string
		aRaw        string
		bRaw        string
		weightsRaw  string
		format      string
		gapPenalty  float64
		epsilon     float64
		stiffness   float64
		penalty     float64
		adtwWeight  float64
	)

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute an elastic distance between two comma-separated series",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			a, err := parseFloatList(aRaw)
			if err != nil {
				return fmt.Errorf("--a: %w", err)
			}

			b, err := parseFloatList(bRaw)
			if err != nil {
				return fmt.Errorf("--b: %w", err)
			}

			var weights []float32
			if weightsRaw != "" {
				weights, err = parseFloatList(weightsRaw)
				if err != nil {
					return fmt.Errorf("--weights: %w", err)
				}
			}

			overrides := cfg.Compute
			overrides.GapPenalty = gapPenalty
			overrides.Epsilon = epsilon
			overrides.Stiffness = stiffness
			overrides.Penalty = penalty
			overrides.ADTWWeight = adtwWeight

			m, err := resolveMeasure(measureName, overrides, weights)
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

			dist, err := engine.Run(context.Background(), m, a, b)
			if err != nil {
				return err
			}

			return printComputeResult(format, measureName, dist)
		},
	}

	defaults := config.DefaultConfig()

	cmd.Flags().StringVar(&measureName, "measure", "dtw", "Distance measure (dtw|wdtw|adtw|erp|lcss|msm|twe)")
	cmd.Flags().StringVar(&aRaw, "a", "", "Comma-separated first series (required)")
	cmd.Flags().StringVar(&bRaw, "b", "", "Comma-separated second series (required)")
	cmd.Flags().StringVar(&weightsRaw, "weights", "", "Comma-separated WDTW weight vector")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text|json")
	cmd.Flags().Float64Var(&gapPenalty, "gap-penalty", defaults.Compute.GapPenalty, "ERP gap penalty")
	cmd.Flags().Float64Var(&epsilon, "epsilon", defaults.Compute.Epsilon, "LCSS match threshold")
	cmd.Flags().Float64Var(&stiffness, "stiffness", defaults.Compute.Stiffness, "TWE stiffness")
	cmd.Flags().Float64Var(&penalty, "penalty", defaults.Compute.Penalty, "TWE delete penalty")
	cmd.Flags().Float64Var(&adtwWeight, "adtw-weight", defaults.Compute.ADTWWeight, "ADTW additive penalty")

	return cmd
}

func resolveMeasure(name string, c config.ComputeConfig, weights []float32) (measure.Measure, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dtw":
		return measure.DTW{}, nil
	case "wdtw":
		return measure.WDTW{Weights: weights}, nil
	case "adtw":
		return measure.ADTW{W: float32(c.ADTWWeight)}, nil
	case "erp":
		return measure.ERP{GapPenalty: float32(c.GapPenalty)}, nil
	case "lcss":
		return measure.LCSS{Epsilon: float32(c.Epsilon)}, nil
	case "msm":
		return measure.MSM{}, nil
	case "twe":
		return measure.TWE{Stiffness: float32(c.Stiffness), Penalty: float32(c.Penalty)}, nil
	default:
		return nil, fmt.Errorf("unknown measure %q (want dtw|wdtw|adtw|erp|lcss|msm|twe)", name)
	}
}

func parseFloatList(raw string) ([]float32, error) {
	fields := strings.Split(raw, ",")
	out := make([]float32, 0, len(fields))

	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", f, err)
		}
		out = append(out, float32(v))
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("empty series")
	}

	return out, nil
}

func printComputeResult(format, measureName string, dist float32) error {
	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(map[string]any{"measure": measureName, "distance": dist})
	}

	_, err := fmt.Fprintf(os.Stdout, "%s: %g\n", measureName, dist)
	return err
}
