// Package measure defines the elastic distance measures the execution
// engine can dispatch: a small tagged-variant set mirroring the per-measure
// kernel entry points of the original compute shaders.
package measure

import "math"

// Kind identifies a measure variant independent of its parameters, used as
// half of the pipeline cache key (see internal/device.PipelineKey).
type Kind int

const (
	DTWKind Kind = iota
	WDTWKind
	ADTWKind
	ERPKind
	LCSSKind
	MSMKind
	TWEKind
)

func (k Kind) String() string {
	switch k {
	case DTWKind:
		return "dtw"
	case WDTWKind:
		return "wdtw"
	case ADTWKind:
		return "adtw"
	case ERPKind:
		return "erp"
	case LCSSKind:
		return "lcss"
	case MSMKind:
		return "msm"
	case TWEKind:
		return "twe"
	default:
		return "unknown"
	}
}

// Measure is a distance variant together with its parameters. Concrete
// types carry whatever scalars or weight vectors the recurrence needs; the
// zero value of ScalarParams/VectorParam is used for measures that need
// neither, matching the empty param lists in the original kernel spec.
type Measure interface {
	Kind() Kind
	// EntryPoint names the kernel this measure dispatches to. The pipeline
	// cache is keyed by device.PipelineKey, not by this name.
	EntryPoint() string
	// ScalarParams returns up to four float32 parameters in the fixed slot
	// order the kernel constants layout expects (param1..param4). Unused
	// slots are zero.
	ScalarParams() [4]float32
	// VectorParam returns the measure's per-element weight vector, or nil
	// if the measure has none (only WDTW uses this).
	VectorParam() []float32
	// InitValue is the diagonal fill value for cells outside the DP band.
	InitValue() float32
}

// DTW is dynamic time warping with no parameters.
type DTW struct{}

func (DTW) Kind() Kind                { return DTWKind }
func (DTW) EntryPoint() string        { return "dtw_distance" }
func (DTW) ScalarParams() [4]float32  { return [4]float32{} }
func (DTW) VectorParam() []float32    { return nil }
func (DTW) InitValue() float32        { return float32(math.Inf(1)) }

// WDTW is weighted DTW. Weights must have length at least
// max(len(a), len(b)); the kernel indexes it by |i-j|.
type WDTW struct {
	Weights []float32
}

func (WDTW) Kind() Kind               { return WDTWKind }
func (WDTW) EntryPoint() string       { return "wdtw_distance" }
func (WDTW) ScalarParams() [4]float32 { return [4]float32{} }
func (w WDTW) VectorParam() []float32 { return w.Weights }
func (WDTW) InitValue() float32       { return float32(math.Inf(1)) }

// ADTW is amerced DTW: a constant additive penalty W is folded into the two
// non-diagonal transitions, discouraging warping.
type ADTW struct {
	W float32
}

func (ADTW) Kind() Kind         { return ADTWKind }
func (ADTW) EntryPoint() string { return "adtw_distance" }
func (a ADTW) ScalarParams() [4]float32 {
	return [4]float32{a.W, 0, 0, 0}
}
func (ADTW) VectorParam() []float32 { return nil }
func (ADTW) InitValue() float32     { return float32(math.Inf(1)) }

// ERP is edit distance with real penalty: GapPenalty substitutes for a
// missing sample on either side of a gap transition.
type ERP struct {
	GapPenalty float32
}

func (ERP) Kind() Kind         { return ERPKind }
func (ERP) EntryPoint() string { return "erp_distance" }
func (e ERP) ScalarParams() [4]float32 {
	return [4]float32{e.GapPenalty, 0, 0, 0}
}
func (ERP) VectorParam() []float32 { return nil }
func (ERP) InitValue() float32     { return float32(math.Inf(1)) }

// LCSS is longest common subsequence similarity, thresholded by Epsilon.
// Unlike the other measures its diagonal accumulates a match count, not a
// cost, so its band-exterior fill value is 0 and the final cell needs the
// 1-s/min(|A|,|B|) post-processing in internal/result.
type LCSS struct {
	Epsilon float32
}

func (LCSS) Kind() Kind         { return LCSSKind }
func (LCSS) EntryPoint() string { return "lcss_distance" }
func (l LCSS) ScalarParams() [4]float32 {
	return [4]float32{l.Epsilon, 0, 0, 0}
}
func (LCSS) VectorParam() []float32 { return nil }
func (LCSS) InitValue() float32     { return 0 }

// MSM is move-split-merge with a fixed unit cost per split/merge operation.
type MSM struct{}

func (MSM) Kind() Kind               { return MSMKind }
func (MSM) EntryPoint() string       { return "msm_distance" }
func (MSM) ScalarParams() [4]float32 { return [4]float32{} }
func (MSM) VectorParam() []float32   { return nil }
func (MSM) InitValue() float32       { return float32(math.Inf(1)) }

// TWE is time warp edit distance, with a stiffness term penalizing the time
// gap between matched samples and a constant edit Penalty.
type TWE struct {
	Stiffness float32
	Penalty   float32
}

func (TWE) Kind() Kind         { return TWEKind }
func (TWE) EntryPoint() string { return "twe_distance" }
func (t TWE) ScalarParams() [4]float32 {
	return [4]float32{t.Stiffness, t.Penalty, 0, 0}
}
func (TWE) VectorParam() []float32 { return nil }
func (TWE) InitValue() float32     { return float32(math.Inf(1)) }
