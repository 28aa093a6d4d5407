// Package result reads the terminal diagonal cell for each pair back from
// a finished scheduler run and applies any measure-specific post-processing.
package result

import "github.com/example/go-tsdist-gpu/internal/ring"

// TerminalCoord returns the signed diagonal coordinate k=b-a of the DP
// cell (aSampleLen, bSampleLen), the bottom-right corner of the matrix.
func TerminalCoord(aSampleLen, bSampleLen int) int64 {
	return int64(bSampleLen) - int64(aSampleLen)
}

// Extract reads the terminal cell of one pair's ring diagonal segment.
func Extract(diagonal []float32, pairOffset int, aSampleLen, bSampleLen int, addr ring.Addr) float32 {
	return diagonal[pairOffset+addr.Index(TerminalCoord(aSampleLen, bSampleLen))]
}

// LCSS converts a raw longest-common-subsequence match count into a
// distance in [0, 1].
func LCSS(matchCount float32, aLen, bLen int) float32 {
	minLen := aLen
	if bLen < minLen {
		minLen = bLen
	}

	if minLen == 0 {
		return 1
	}

	return 1 - matchCount/float32(minLen)
}
