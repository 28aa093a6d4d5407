// Package testutil provides a plain O(n*m) DP matrix reference
// implementation, independent of the ring/diamond/schedule machinery, used
// to cross-validate the execution engine's output.
package testutil

import (
	"github.com/example/go-tsdist-gpu/internal/kernel"
	"github.com/example/go-tsdist-gpu/internal/measure"
	"github.com/example/go-tsdist-gpu/internal/result"
)

// Reference computes m's distance between a and b with a full DP matrix,
// using the same per-cell recurrence the engine dispatches on-device.
// What this checks is the diamond/ring/schedule orchestration, not the
// recurrence formula itself.
func Reference(m measure.Measure, a, b []float32) float32 {
	recurrence, err := kernel.ForMeasure(m)
	if err != nil {
		panic(err)
	}

	n, nb := len(a), len(b)
	dp := make([][]float32, n+1)
	for i := range dp {
		dp[i] = make([]float32, nb+1)
	}

	init := m.InitValue()
	for i := 0; i <= n; i++ {
		for j := 0; j <= nb; j++ {
			if i == 0 && j == 0 {
				continue
			}
			dp[i][j] = init
		}
	}

	params := m.ScalarParams()
	weights := m.VectorParam()

	for i := 1; i <= n; i++ {
		for j := 1; j <= nb; j++ {
			args := kernel.CellArgs{
				X:      dp[i][j-1],
				Y:      dp[i-1][j-1],
				Z:      dp[i-1][j],
				Ai:     a[i-1],
				Bj:     b[j-1],
				I:      int64(i - 1),
				J:      int64(j - 1),
				Params: params,
			}

			if i-1 > 0 {
				args.AiPrev = a[i-2]
			}
			if j-1 > 0 {
				args.BjPrev = b[j-2]
			}
			if weights != nil {
				d := (i - 1) - (j - 1)
				if d < 0 {
					d = -d
				}
				args.WeightAtDist = weights[d]
			}

			dp[i][j] = recurrence(args)
		}
	}

	raw := dp[n][nb]
	if _, ok := m.(measure.LCSS); ok {
		raw = result.LCSS(raw, n, nb)
	}

	return raw
}
