// Package kernel implements the per-cell cost recurrences and the warp
// kernel's inner/outer diamond loop, the host-side simulation of the warp
// compute kernels.
package kernel

import (
	"fmt"

	"github.com/example/go-tsdist-gpu/internal/measure"
)

// CellArgs bundles everything a recurrence needs to compute one diagonal
// cell. X, Y, Z are the three already-computed neighbor cells (the
// insertion-in-B, diagonal-match, and insertion-in-A predecessors
// respectively); Ai/Bj are the current samples, AiPrev/BjPrev the samples
// immediately before them (0 at a sequence boundary); I/J are the 0-based
// DP coordinates.
type CellArgs struct {
	X, Y, Z      float32
	Ai, AiPrev   float32
	Bj, BjPrev   float32
	I, J         int64
	Params       [4]float32
	WeightAtDist float32
}

// RecurrenceFunc computes one diagonal cell's value from its neighbors.
type RecurrenceFunc func(CellArgs) float32

// ForMeasure returns the recurrence matching m's kind.
func ForMeasure(m measure.Measure) (RecurrenceFunc, error) {
	switch m.Kind() {
	case measure.DTWKind:
		return DTW, nil
	case measure.WDTWKind:
		return WDTW, nil
	case measure.ADTWKind:
		return ADTW, nil
	case measure.ERPKind:
		return ERP, nil
	case measure.LCSSKind:
		return LCSS, nil
	case measure.MSMKind:
		return MSM, nil
	case measure.TWEKind:
		return TWE, nil
	default:
		return nil, fmt.Errorf("kernel: no recurrence registered for measure kind %v", m.Kind())
	}
}

func sqDiff(a, b float32) float32 {
	d := a - b
	return d * d
}

func absDiff(a, b float32) float32 {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}

func min3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// DTW: dist(ai,bj) + min(x, y, z).
func DTW(c CellArgs) float32 {
	return sqDiff(c.Ai, c.Bj) + min3(c.X, c.Y, c.Z)
}

// WDTW: dist(ai,bj) * weight(|i-j|) + min(x, y, z).
func WDTW(c CellArgs) float32 {
	return sqDiff(c.Ai, c.Bj)*c.WeightAtDist + min3(c.X, c.Y, c.Z)
}

// ADTW: dist(ai,bj) + min(z+w, x+w, y), where w is an additive penalty on
// the two non-diagonal transitions.
func ADTW(c CellArgs) float32 {
	w := c.Params[0]
	return sqDiff(c.Ai, c.Bj) + min3(c.Z+w, c.X+w, c.Y)
}

// ERP: min(y + |ai-bj|, z + |ai-gap|, x + |bj-gap|).
func ERP(c CellArgs) float32 {
	gap := c.Params[0]
	return min3(
		c.Y+absDiff(c.Ai, c.Bj),
		c.Z+absDiff(c.Ai, gap),
		c.X+absDiff(c.Bj, gap),
	)
}

// LCSS: within epsilon, extend the match count on the diagonal predecessor;
// otherwise carry forward the best of the two non-diagonal neighbors.
func LCSS(c CellArgs) float32 {
	eps := c.Params[0]
	if absDiff(c.Ai, c.Bj) <= eps {
		return c.Y + 1
	}

	if c.X > c.Z {
		return c.X
	}
	return c.Z
}

// MSM: min(y + |ai-bj|, z + cost(ai,ai_prev,bj), x + cost(bj,ai,bj_prev)).
func MSM(c CellArgs) float32 {
	return min3(
		c.Y+absDiff(c.Ai, c.Bj),
		c.Z+msmCost(c.Ai, c.AiPrev, c.Bj),
		c.X+msmCost(c.Bj, c.Ai, c.BjPrev),
	)
}

const msmUnitCost = 1.0

func msmCost(x, y, z float32) float32 {
	lo, hi := y, z
	if hi < lo {
		lo, hi = hi, lo
	}

	a := lo - x
	if a < 0 {
		a = 0
	}

	b := x - hi
	if b < 0 {
		b = 0
	}

	if b > a {
		a = b
	}

	return msmUnitCost + a
}

// TWE: min over deleting from A, deleting from B, or matching, each with a
// stiffness-scaled time-gap penalty.
func TWE(c CellArgs) float32 {
	stiffness := c.Params[0]
	penalty := c.Params[1]
	deleteAddition := penalty + stiffness

	delA := c.Z + absDiff(c.AiPrev, c.Ai) + deleteAddition
	delB := c.X + absDiff(c.BjPrev, c.Bj) + deleteAddition

	timeGap := c.I - c.J
	if timeGap < 0 {
		timeGap = -timeGap
	}

	match := c.Y + absDiff(c.Ai, c.Bj) + absDiff(c.AiPrev, c.BjPrev) + stiffness*2*float32(timeGap)

	return min3(delA, delB, match)
}
