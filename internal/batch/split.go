package batch

import "log/slog"

const floatBytes = 4

// MaxABatch computes how many A-rows can be dispatched together under
// maxBufferBytes, given the per-pair ring diagonal length diagonalLen (in
// floats) and the number of B rows each A row is paired against. It clamps
// to [1, aCount]; a budget too small for even one row logs a warning and
// proceeds one row at a time rather than failing, per the oversized-input
// handling decision in the error design. A zero budget, or a non-positive
// diagonalLen or bCount, means no limit and returns aCount.
func MaxABatch(maxBufferBytes uint64, diagonalLen, bCount, aCount int) int {
	if maxBufferBytes == 0 || diagonalLen <= 0 || bCount <= 0 {
		return max1(aCount)
	}

	perRow := uint64(diagonalLen) * uint64(bCount) * floatBytes
	n := maxBufferBytes / perRow

	if n == 0 {
		slog.Warn("oversized batch: device buffer budget cannot fit one full A-row batch, falling back to one row at a time",
			"max_buffer_bytes", maxBufferBytes, "diagonal_len", diagonalLen, "b_count", bCount)
		return 1
	}

	if n > uint64(aCount) {
		return max1(aCount)
	}

	return int(n)
}

func max1(aCount int) int {
	if aCount < 1 {
		return 1
	}
	return aCount
}

// Split partitions [0, aCount) into consecutive batches of at most
// batchSize rows each.
func Split(aCount, batchSize int) [][2]int {
	if batchSize < 1 {
		batchSize = 1
	}

	var spans [][2]int
	for start := 0; start < aCount; start += batchSize {
		end := start + batchSize
		if end > aCount {
			end = aCount
		}
		spans = append(spans, [2]int{start, end})
	}

	return spans
}
