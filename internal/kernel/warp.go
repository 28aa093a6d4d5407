package kernel

import (
	"github.com/example/go-tsdist-gpu/internal/measure"
	"github.com/example/go-tsdist-gpu/internal/ring"
)

// Dispatch bundles everything one diamond's warp kernel invocation needs:
// the row's kernel constants, the chosen measure's recurrence and
// parameters, the sample slices (with their batch-mode offsets already
// applied), and the ring diagonal it reads and writes.
type Dispatch struct {
	Constants  measure.KernelConstants
	Recurrence RecurrenceFunc
	Params     [4]float32
	Weights    []float32
	A, B       []float32
	AOffset    int
	BOffset    int
	Diagonal   ring.Buffer
}

// RunDiamond computes every lane of one diamond, diagonal step by diagonal
// step. A diagonal step's lanes never read a location another lane writes
// in that same step (each lane's write target is two ring slots from its
// neighbors', while each lane only reads one slot to either side of its
// own), so the per-lane loop can run in any order — sequential here,
// matching a single-threaded replay of the lock-step SIMT kernel.
func RunDiamond(d Dispatch, diamondID uint64) {
	c := d.Constants
	w := c.MaxSubgroupThreads

	diagStart := c.FirstCoord + int64(diamondID*w)*2
	dAStart := int64(c.AStart) - int64(diamondID*w)
	dBStart := int64(c.BStart) + int64(diamondID*w)

	aLen := int64(c.ALen) - dAStart
	bLen := int64(c.BLen) - dBStart

	diagCount := w*2 + 1
	if bound := uint64(aLen + bLen + 1); bound < diagCount {
		diagCount = bound
	}

	runInner(d, dAStart, dBStart, diagStart+int64(w), diagCount, w)
}

func runInner(d Dispatch, aStart, bStart, diagMid int64, diagCount, maxSubgroupThreads uint64) {
	i := aStart
	j := bStart
	s := diagMid
	e := diagMid

	for dd := uint64(2); dd < diagCount; dd++ {
		for warp := uint64(0); warp < maxSubgroupThreads; warp++ {
			k := int64(warp)*2 + s
			if k > e {
				continue
			}

			iLane := i - int64(warp)
			jLane := j + int64(warp)

			args := CellArgs{
				X:            d.Diagonal.Get(k - 1),
				Y:            d.Diagonal.Get(k),
				Z:            d.Diagonal.Get(k + 1),
				Ai:           sampleAt(d.A, d.AOffset, iLane),
				AiPrev:       prevSampleAt(d.A, d.AOffset, iLane),
				Bj:           sampleAt(d.B, d.BOffset, jLane),
				BjPrev:       prevSampleAt(d.B, d.BOffset, jLane),
				I:            iLane,
				J:            jLane,
				Params:       d.Params,
				WeightAtDist: weightAt(d.Weights, iLane, jLane),
			}

			d.Diagonal.Set(k, d.Recurrence(args))
		}

		if dd <= maxSubgroupThreads {
			i++
			s--
			e++
		} else {
			j++
			s++
			e--
		}
	}
}

func sampleAt(s []float32, offset int, idx int64) float32 {
	return s[offset+int(idx)]
}

func prevSampleAt(s []float32, offset int, idx int64) float32 {
	if idx <= 0 {
		return 0
	}
	return s[offset+int(idx)-1]
}

func weightAt(weights []float32, i, j int64) float32 {
	d := i - j
	if d < 0 {
		d = -d
	}

	// Padded cells can lie farther off the diagonal than the weight vector
	// reaches; they never feed the terminal cell, so any weight will do.
	if weights == nil || d >= int64(len(weights)) {
		return 0
	}

	return weights[d]
}
