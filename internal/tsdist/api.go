package tsdist

import (
	"context"

	"github.com/example/go-tsdist-gpu/internal/batch"
	"github.com/example/go-tsdist-gpu/internal/measure"
	"gonum.org/v1/gonum/mat"
)

func toDense(r batch.Result) *mat.Dense {
	data := make([]float64, len(r.Values))
	for i, v := range r.Values {
		data[i] = float64(v)
	}

	return mat.NewDense(r.ACount, r.BCount, data)
}

// DTW computes dynamic time warping distance using the package-level
// default software engine.
func DTW(a, b []float32) (float32, error) {
	return defaultEngine().Run(context.Background(), measure.DTW{}, a, b)
}

// DTWBatch computes the DTW cross-distance matrix for two collections.
func DTWBatch(as, bs [][]float32) (*mat.Dense, error) {
	r, err := defaultEngine().RunBatch(context.Background(), measure.DTW{}, as, bs)
	if err != nil {
		return nil, err
	}
	return toDense(r), nil
}

// WDTW computes weighted DTW distance. weights must have length at least
// max(len(a), len(b)).
func WDTW(a, b, weights []float32) (float32, error) {
	return defaultEngine().Run(context.Background(), measure.WDTW{Weights: weights}, a, b)
}

// WDTWBatch computes the WDTW cross-distance matrix.
func WDTWBatch(as, bs [][]float32, weights []float32) (*mat.Dense, error) {
	r, err := defaultEngine().RunBatch(context.Background(), measure.WDTW{Weights: weights}, as, bs)
	if err != nil {
		return nil, err
	}
	return toDense(r), nil
}

// ADTW computes amerced DTW distance with additive penalty w.
func ADTW(a, b []float32, w float32) (float32, error) {
	return defaultEngine().Run(context.Background(), measure.ADTW{W: w}, a, b)
}

// ADTWBatch computes the ADTW cross-distance matrix.
func ADTWBatch(as, bs [][]float32, w float32) (*mat.Dense, error) {
	r, err := defaultEngine().RunBatch(context.Background(), measure.ADTW{W: w}, as, bs)
	if err != nil {
		return nil, err
	}
	return toDense(r), nil
}

// ERP computes edit distance with real penalty using gap penalty g.
func ERP(a, b []float32, gapPenalty float32) (float32, error) {
	return defaultEngine().Run(context.Background(), measure.ERP{GapPenalty: gapPenalty}, a, b)
}

// ERPBatch computes the ERP cross-distance matrix.
func ERPBatch(as, bs [][]float32, gapPenalty float32) (*mat.Dense, error) {
	r, err := defaultEngine().RunBatch(context.Background(), measure.ERP{GapPenalty: gapPenalty}, as, bs)
	if err != nil {
		return nil, err
	}
	return toDense(r), nil
}

// LCSS computes longest common subsequence distance (1 - similarity) with
// match threshold epsilon.
func LCSS(a, b []float32, epsilon float32) (float32, error) {
	return defaultEngine().Run(context.Background(), measure.LCSS{Epsilon: epsilon}, a, b)
}

// LCSSBatch computes the LCSS cross-distance matrix.
func LCSSBatch(as, bs [][]float32, epsilon float32) (*mat.Dense, error) {
	r, err := defaultEngine().RunBatch(context.Background(), measure.LCSS{Epsilon: epsilon}, as, bs)
	if err != nil {
		return nil, err
	}
	return toDense(r), nil
}

// MSM computes move-split-merge distance.
func MSM(a, b []float32) (float32, error) {
	return defaultEngine().Run(context.Background(), measure.MSM{}, a, b)
}

// MSMBatch computes the MSM cross-distance matrix.
func MSMBatch(as, bs [][]float32) (*mat.Dense, error) {
	r, err := defaultEngine().RunBatch(context.Background(), measure.MSM{}, as, bs)
	if err != nil {
		return nil, err
	}
	return toDense(r), nil
}

// TWE computes time warp edit distance with the given stiffness and
// penalty.
func TWE(a, b []float32, stiffness, penalty float32) (float32, error) {
	return defaultEngine().Run(context.Background(), measure.TWE{Stiffness: stiffness, Penalty: penalty}, a, b)
}

// TWEBatch computes the TWE cross-distance matrix.
func TWEBatch(as, bs [][]float32, stiffness, penalty float32) (*mat.Dense, error) {
	r, err := defaultEngine().RunBatch(context.Background(), measure.TWE{Stiffness: stiffness, Penalty: penalty}, as, bs)
	if err != nil {
		return nil, err
	}
	return toDense(r), nil
}
