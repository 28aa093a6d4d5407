// Package batch implements padding, packing, and device-buffer-budget
// splitting for the two calling modes (single pair, full cross-batch),
// the host-side counterpart of the original capability-set abstraction
// that let one scheduler serve both modes.
package batch

import "fmt"

// PaddedLen rounds n up to the next multiple of w.
func PaddedLen(n int, w uint64) uint64 {
	if n <= 0 {
		return 0
	}

	nu := uint64(n)
	return ((nu + w - 1) / w) * w
}

// Packed is a row-major concatenation of equal-length, zero-padded series:
// count rows of paddedLen floats each.
type Packed struct {
	Samples   []float32
	Count     int
	SampleLen int
	PaddedLen int
}

// Pack validates that every series has the same length and builds their
// zero-padded, row-major concatenation.
func Pack(series [][]float32, w uint64) (Packed, error) {
	if len(series) == 0 {
		return Packed{}, fmt.Errorf("batch: empty collection")
	}

	n := len(series[0])
	if n == 0 {
		return Packed{}, fmt.Errorf("batch: series must be non-empty")
	}

	for i, s := range series {
		if len(s) != n {
			return Packed{}, fmt.Errorf("batch: series %d has length %d, want %d (all series in one collection must share length)", i, len(s), n)
		}
	}

	padded := int(PaddedLen(n, w))
	out := make([]float32, len(series)*padded)

	for i, s := range series {
		copy(out[i*padded:i*padded+n], s)
	}

	return Packed{Samples: out, Count: len(series), SampleLen: n, PaddedLen: padded}, nil
}

// Subslice returns the rows [start, start+count) of p as a Packed sharing
// sample length and padding, used to build one A-batch. Its Samples alias
// p's backing array; nothing is copied.
func (p Packed) Subslice(start, count int) Packed {
	return Packed{
		Samples:   p.Samples[start*p.PaddedLen : (start+count)*p.PaddedLen],
		Count:     count,
		SampleLen: p.SampleLen,
		PaddedLen: p.PaddedLen,
	}
}
