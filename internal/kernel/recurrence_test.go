package kernel

import (
	"math"
	"testing"

	"github.com/example/go-tsdist-gpu/internal/measure"
)

func approxEqual(a, b float32) bool {
	const eps = 1e-5
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func TestForMeasureCoversAllKinds(t *testing.T) {
	measures := []measure.Measure{
		measure.DTW{},
		measure.WDTW{},
		measure.ADTW{},
		measure.ERP{},
		measure.LCSS{},
		measure.MSM{},
		measure.TWE{},
	}

	for _, m := range measures {
		if _, err := ForMeasure(m); err != nil {
			t.Errorf("ForMeasure(%v) = %v, want a registered recurrence", m.Kind(), err)
		}
	}
}

func TestDTWRecurrence(t *testing.T) {
	got := DTW(CellArgs{Ai: 3, Bj: 5, X: 10, Y: 1, Z: 20})
	want := float32(4) + 1 // (3-5)^2=4, min(10,1,20)=1
	if !approxEqual(got, want) {
		t.Errorf("DTW = %v, want %v", got, want)
	}
}

func TestWDTWRecurrenceScalesByWeight(t *testing.T) {
	got := WDTW(CellArgs{Ai: 3, Bj: 5, X: 10, Y: 1, Z: 20, WeightAtDist: 0.5})
	want := float32(4)*0.5 + 1
	if !approxEqual(got, want) {
		t.Errorf("WDTW = %v, want %v", got, want)
	}

	zero := WDTW(CellArgs{Ai: 3, Bj: 5, X: 10, Y: 1, Z: 20, WeightAtDist: 0})
	if !approxEqual(zero, 1) {
		t.Errorf("WDTW with zero weight = %v, want 1 (cost term vanishes)", zero)
	}
}

func TestADTWRecurrencePenalizesNonDiagonal(t *testing.T) {
	args := CellArgs{Ai: 3, Bj: 5, X: 1, Y: 1, Z: 1, Params: [4]float32{2, 0, 0, 0}}
	got := ADTW(args)
	// diagonal (Y) unpenalized, non-diagonal (X, Z) get +2 each: min(1,1+2,1+2) = 1
	want := float32(4) + 1
	if !approxEqual(got, want) {
		t.Errorf("ADTW = %v, want %v", got, want)
	}
}

func TestERPRecurrenceUsesGapPenalty(t *testing.T) {
	args := CellArgs{Ai: 3, Bj: 10, X: 100, Y: 100, Z: 100, Params: [4]float32{0, 0, 0, 0}}
	got := ERP(args)
	// gap=0: min(100+7, 100+3, 100+10) = 103
	want := float32(103)
	if !approxEqual(got, want) {
		t.Errorf("ERP = %v, want %v", got, want)
	}
}

func TestLCSSRecurrenceMatchExtendsDiagonal(t *testing.T) {
	args := CellArgs{Ai: 1.0, Bj: 1.05, Y: 4, X: 2, Z: 3, Params: [4]float32{0.1, 0, 0, 0}}
	got := LCSS(args)
	if !approxEqual(got, 5) {
		t.Errorf("LCSS match = %v, want 5 (Y+1)", got)
	}
}

func TestLCSSRecurrenceMismatchCarriesBestNeighbor(t *testing.T) {
	args := CellArgs{Ai: 1.0, Bj: 5.0, Y: 4, X: 2, Z: 3, Params: [4]float32{0.1, 0, 0, 0}}
	got := LCSS(args)
	if !approxEqual(got, 3) {
		t.Errorf("LCSS mismatch = %v, want 3 (max(X,Z))", got)
	}
}

func TestMSMCostSymmetric(t *testing.T) {
	a := msmCost(5, 1, 9)
	b := msmCost(5, 9, 1)
	if !approxEqual(a, b) {
		t.Errorf("msmCost not symmetric in (y,z): %v vs %v", a, b)
	}
}

func TestMSMCostWithinRangeIsUnitCost(t *testing.T) {
	got := msmCost(5, 1, 9) // x=5 lies within [1,9]
	if !approxEqual(got, msmUnitCost) {
		t.Errorf("msmCost(5,1,9) = %v, want unit cost %v", got, msmUnitCost)
	}
}

func TestMSMCostOutsideRangeAddsDistance(t *testing.T) {
	got := msmCost(20, 1, 9) // x=20 is above both bounds
	want := float32(msmUnitCost) + (20 - 9)
	if !approxEqual(got, want) {
		t.Errorf("msmCost(20,1,9) = %v, want %v", got, want)
	}
}

func TestMSMRecurrencePrefersCheapestTransition(t *testing.T) {
	args := CellArgs{
		Ai: 5, AiPrev: 4, Bj: 5, BjPrev: 4,
		X: 1000, Y: 0, Z: 1000,
	}
	got := MSM(args)
	want := float32(0) // Y + |5-5| = 0, strictly cheapest
	if !approxEqual(got, want) {
		t.Errorf("MSM = %v, want %v", got, want)
	}
}

func TestTWERecurrenceMatchPenalizesTimeGap(t *testing.T) {
	args := CellArgs{
		Ai: 1, AiPrev: 1, Bj: 1, BjPrev: 1,
		I: 10, J: 2,
		Y: 0, X: float32(math.Inf(1)), Z: float32(math.Inf(1)),
		Params: [4]float32{0.5, 1, 0, 0},
	}
	got := TWE(args)
	want := float32(0) + 0 + 0 + 0.5*2*8 // stiffness*2*|I-J|
	if !approxEqual(got, want) {
		t.Errorf("TWE match = %v, want %v", got, want)
	}
}

func TestTWERecurrenceDeletionAddsPenaltyAndStiffness(t *testing.T) {
	args := CellArgs{
		Ai: 5, AiPrev: 2, Bj: 0, BjPrev: 0,
		I: 1, J: 1,
		Y: float32(math.Inf(1)), X: float32(math.Inf(1)), Z: 0,
		Params: [4]float32{0.5, 1, 0, 0},
	}
	got := TWE(args)
	want := float32(0) + 3 + 1.5 // Z + |AiPrev-Ai| + (penalty+stiffness)
	if !approxEqual(got, want) {
		t.Errorf("TWE delete = %v, want %v", got, want)
	}
}
