// Package schedule implements the host-side diamond scheduler: the
// row-by-row loop that walks a padded DP matrix as a wavefront of diamonds
// and emits one KernelConstants dispatch per row.
package schedule

import (
	"github.com/example/go-tsdist-gpu/internal/measure"
)

// Plan is the fixed geometry of one scheduler run, derived from the padded
// sequence lengths and the warp width. It does not own mutable scheduling
// state; State does.
type Plan struct {
	W          uint64
	PaddedALen uint64
	PaddedBLen uint64
	ADiamonds  uint64
	BDiamonds  uint64
	Rows       uint64
}

func ceilDiv(n, d uint64) uint64 {
	return (n + d - 1) / d
}

// NewPlan builds the dispatch geometry for padded lengths paddedALen ≤
// paddedBLen (the caller is responsible for the A/B sort, see internal/batch).
func NewPlan(w, paddedALen, paddedBLen uint64) Plan {
	aDiamonds := ceilDiv(paddedALen, w)
	bDiamonds := ceilDiv(paddedBLen, w)

	return Plan{
		W:          w,
		PaddedALen: paddedALen,
		PaddedBLen: paddedBLen,
		ADiamonds:  aDiamonds,
		BDiamonds:  bDiamonds,
		Rows:       ceilDiv(paddedALen+paddedBLen, w) - 1,
	}
}

// State is the scheduler's mutable position: the active diamond count and
// the top-left DP coordinates of the wavefront's leftmost diamond.
type State struct {
	DiamondsCount uint64
	FirstCoord    int64
	AStart        uint64
	BStart        uint64
}

// initialState places a single diamond starting one warp-width before the
// origin, so its midpoint sits on the origin, matching the reference
// scheduler's starting position.
func (p Plan) initialState() State {
	return State{
		DiamondsCount: 1,
		FirstCoord:    -int64(p.W),
		AStart:        0,
		BStart:        0,
	}
}

// advance applies the row-transition rule for the row just dispatched.
func (p Plan) advance(row uint64, s State) State {
	switch {
	case row < p.ADiamonds-1:
		s.DiamondsCount++
		s.FirstCoord -= int64(p.W)
		s.AStart += p.W
	case row < p.BDiamonds-1:
		s.FirstCoord += int64(p.W)
		s.BStart += p.W
	default:
		s.DiamondsCount--
		s.FirstCoord += int64(p.W)
		s.BStart += p.W
	}

	return s
}

// RowParams are the per-run values that stay fixed across every row of one
// dispatch (sample lengths, batch shape, and the measure's scalar params).
type RowParams struct {
	ASampleLen     uint64
	BSampleLen     uint64
	ACount         uint64
	BCount         uint64
	DiagonalStride uint64
	Scalar         [4]float32
}

// RowDispatch is one scheduled row: the diamond count active that row and
// the fully populated KernelConstants to dispatch.
type RowDispatch struct {
	Row           uint64
	DiamondsCount uint64
	Constants     measure.KernelConstants
}

// Dispatches materializes every row of the plan in dispatch order. Rows
// must be issued in this order: row i+1's diagonal reads depend on writes
// row i made, so the caller must not reorder or parallelize across rows.
func (p Plan) Dispatches(rp RowParams) []RowDispatch {
	s := p.initialState()
	out := make([]RowDispatch, 0, p.Rows)

	for row := uint64(0); row < p.Rows; row++ {
		c := measure.KernelConstants{
			FirstCoord:         s.FirstCoord,
			Row:                row,
			DiamondsCount:      s.DiamondsCount,
			AStart:             s.AStart,
			BStart:             s.BStart,
			ALen:               rp.ASampleLen,
			BLen:               rp.BSampleLen,
			ACount:             rp.ACount,
			BCount:             rp.BCount,
			DiagonalStride:     rp.DiagonalStride,
			MaxSubgroupThreads: p.W,
			Param1:             rp.Scalar[0],
			Param2:             rp.Scalar[1],
			Param3:             rp.Scalar[2],
			Param4:             rp.Scalar[3],
			PaddedALen:         p.PaddedALen,
			PaddedBLen:         p.PaddedBLen,
		}

		out = append(out, RowDispatch{Row: row, DiamondsCount: s.DiamondsCount, Constants: c})

		s = p.advance(row, s)
	}

	return out
}
