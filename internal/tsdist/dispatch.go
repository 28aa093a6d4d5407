package tsdist

import (
	"context"
	"fmt"

	"github.com/example/go-tsdist-gpu/internal/batch"
	"github.com/example/go-tsdist-gpu/internal/device"
	"github.com/example/go-tsdist-gpu/internal/kernel"
	"github.com/example/go-tsdist-gpu/internal/measure"
	"github.com/example/go-tsdist-gpu/internal/result"
	"github.com/example/go-tsdist-gpu/internal/ring"
	"github.com/example/go-tsdist-gpu/internal/schedule"
)

// Run computes the scalar distance between a and b under measure m.
func (e *Engine) Run(ctx context.Context, m measure.Measure, a, b []float32) (float32, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, fmt.Errorf("series must be non-empty: %w", ErrInvalidInput)
	}

	if err := measure.Validate(m, len(a), len(b)); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if len(a) > len(b) {
		a, b = b, a
	}

	w := e.cfg.WarpWidth

	paddedALen := batch.PaddedLen(len(a), w)
	paddedBLen := batch.PaddedLen(len(b), w)

	addr := ring.New(int(paddedALen))

	packedA, err := batch.Pack([][]float32{a}, w)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	packedB, err := batch.Pack([][]float32{b}, w)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	diagonal := initDiagonal(m.InitValue(), 1, addr.Size(), addr)

	recurrence, err := kernel.ForMeasure(m)
	if err != nil {
		return 0, err
	}

	plan := schedule.NewPlan(w, paddedALen, paddedBLen)
	rp := schedule.RowParams{
		ASampleLen:     uint64(len(a)),
		BSampleLen:     uint64(len(b)),
		ACount:         1,
		BCount:         1,
		DiagonalStride: uint64(addr.Size()),
		Scalar:         m.ScalarParams(),
	}

	for _, rd := range plan.Dispatches(rp) {
		job := device.RowJob{
			PairCount:     1,
			DiamondsCount: rd.DiamondsCount,
			Dispatch: func(int) kernel.Dispatch {
				return kernel.Dispatch{
					Constants:  rd.Constants,
					Recurrence: recurrence,
					Params:     m.ScalarParams(),
					Weights:    m.VectorParam(),
					A:          packedA.Samples,
					B:          packedB.Samples,
					Diagonal:   ring.NewBuffer(diagonal, 0, addr),
				}
			},
		}

		if err := e.dev.RunRow(ctx, job); err != nil {
			return 0, err
		}
	}

	raw := result.Extract(diagonal, 0, len(a), len(b), addr)
	if _, ok := m.(measure.LCSS); ok {
		raw = result.LCSS(raw, len(a), len(b))
	}

	return raw, nil
}

// RunBatch computes the full a_count×b_count cross-distance matrix between
// collections as and bs under measure m, returned in the caller's
// (as, bs) orientation regardless of the internal A/B sort.
func (e *Engine) RunBatch(ctx context.Context, m measure.Measure, as, bs [][]float32) (batch.Result, error) {
	if len(as) == 0 || len(bs) == 0 {
		return batch.Result{}, fmt.Errorf("collections must be non-empty: %w", ErrInvalidInput)
	}

	if err := measure.Validate(m, len(as[0]), len(bs[0])); err != nil {
		return batch.Result{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	swapped := len(as[0]) > len(bs[0])

	innerA, innerB := as, bs
	if swapped {
		innerA, innerB = bs, as
	}

	w := e.cfg.WarpWidth
	sampleLenA := len(innerA[0])
	sampleLenB := len(innerB[0])

	paddedALen := batch.PaddedLen(sampleLenA, w)
	paddedBLen := batch.PaddedLen(sampleLenB, w)

	addr := ring.New(int(paddedALen))
	diagLen := addr.Size()

	packedB, err := batch.Pack(innerB, w)
	if err != nil {
		return batch.Result{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	packedAAll, err := batch.Pack(innerA, w)
	if err != nil {
		return batch.Result{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	bCount := len(innerB)
	aCountTotal := len(innerA)

	// MaxABatch always clamps to at least 1: a too-small buffer budget is
	// logged and degrades to unbatched A-series, not a hard failure.
	maxABatch := batch.MaxABatch(e.cfg.MaxBufferBytes, diagLen, bCount, aCountTotal)

	recurrence, err := kernel.ForMeasure(m)
	if err != nil {
		return batch.Result{}, err
	}

	plan := schedule.NewPlan(w, paddedALen, paddedBLen)

	var parts []batch.Result

	for _, span := range batch.Split(aCountTotal, maxABatch) {
		start, end := span[0], span[1]
		aSubCount := end - start

		packedA := packedAAll.Subslice(start, aSubCount)

		diagonal := initDiagonal(m.InitValue(), aSubCount*bCount, diagLen, addr)

		rp := schedule.RowParams{
			ASampleLen:     uint64(sampleLenA),
			BSampleLen:     uint64(sampleLenB),
			ACount:         uint64(aSubCount),
			BCount:         uint64(bCount),
			DiagonalStride: uint64(diagLen),
			Scalar:         m.ScalarParams(),
		}

		for _, rd := range plan.Dispatches(rp) {
			job := device.RowJob{
				PairCount:     aSubCount * bCount,
				DiamondsCount: rd.DiamondsCount,
				Dispatch: func(pairIndex int) kernel.Dispatch {
					aIndex := pairIndex / bCount
					bIndex := pairIndex % bCount

					return kernel.Dispatch{
						Constants:  rd.Constants,
						Recurrence: recurrence,
						Params:     m.ScalarParams(),
						Weights:    m.VectorParam(),
						A:          packedA.Samples,
						B:          packedB.Samples,
						AOffset:    aIndex * packedA.PaddedLen,
						BOffset:    bIndex * packedB.PaddedLen,
						Diagonal:   ring.NewBuffer(diagonal, pairIndex*diagLen, addr),
					}
				},
			}

			if err := e.dev.RunRow(ctx, job); err != nil {
				return batch.Result{}, err
			}
		}

		part := batch.NewResult(aSubCount, bCount)
		for i := 0; i < aSubCount; i++ {
			for j := 0; j < bCount; j++ {
				pairOffset := (i*bCount + j) * diagLen

				raw := result.Extract(diagonal, pairOffset, sampleLenA, sampleLenB, addr)
				if _, ok := m.(measure.LCSS); ok {
					raw = result.LCSS(raw, sampleLenA, sampleLenB)
				}

				part.Set(i, j, raw)
			}
		}

		parts = append(parts, part)
	}

	joined := batch.JoinRows(parts)
	if !swapped {
		return joined, nil
	}

	return transpose(joined), nil
}

func transpose(r batch.Result) batch.Result {
	out := batch.NewResult(r.BCount, r.ACount)
	for i := 0; i < r.ACount; i++ {
		for j := 0; j < r.BCount; j++ {
			out.Set(j, i, r.Get(i, j))
		}
	}

	return out
}

func initDiagonal(initVal float32, pairCount, diagLen int, addr ring.Addr) []float32 {
	buf := make([]float32, pairCount*diagLen)

	for p := 0; p < pairCount; p++ {
		seg := ring.NewBuffer(buf, p*diagLen, addr)
		seg.Fill(initVal)
		seg.Set(0, 0)
	}

	return buf
}
