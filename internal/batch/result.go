package batch

// Result is a flat row-major a_count×b_count matrix of distances. Single
// mode is just the a_count=b_count=1 case; this keeps one representation
// for both of the capability set's ReturnType variants instead of a
// parameterized type per mode.
type Result struct {
	ACount int
	BCount int
	Values []float32
}

// NewResult allocates a zeroed a_count×b_count result.
func NewResult(aCount, bCount int) Result {
	return Result{ACount: aCount, BCount: bCount, Values: make([]float32, aCount*bCount)}
}

// Get reads the (i,j) entry.
func (r Result) Get(i, j int) float32 {
	return r.Values[i*r.BCount+j]
}

// Set writes the (i,j) entry.
func (r Result) Set(i, j int, v float32) {
	r.Values[i*r.BCount+j] = v
}

// Apply maps f over every entry in place and returns r, the flat
// equivalent of the capability set's apply_fn. The engine applies LCSS's
// 1-s/min(|A|,|B|) post-processing per cell and does not call Apply.
func (r Result) Apply(f func(float32) float32) Result {
	for i, v := range r.Values {
		r.Values[i] = f(v)
	}

	return r
}

// JoinRows concatenates A-batch partial results along the A axis, in the
// order they were produced. All parts must share BCount.
func JoinRows(parts []Result) Result {
	if len(parts) == 0 {
		return Result{}
	}

	total := 0
	for _, p := range parts {
		total += p.ACount
	}

	joined := NewResult(total, parts[0].BCount)

	row := 0
	for _, p := range parts {
		copy(joined.Values[row*joined.BCount:(row+p.ACount)*joined.BCount], p.Values)
		row += p.ACount
	}

	return joined
}
