package schedule

import "testing"

func TestNewPlanGeometry(t *testing.T) {
	p := NewPlan(4, 8, 16)

	if p.ADiamonds != 2 {
		t.Errorf("ADiamonds = %d, want 2", p.ADiamonds)
	}
	if p.BDiamonds != 4 {
		t.Errorf("BDiamonds = %d, want 4", p.BDiamonds)
	}
	// Rows = ceilDiv(8+16, 4) - 1 = 6 - 1 = 5
	if p.Rows != 5 {
		t.Errorf("Rows = %d, want 5", p.Rows)
	}
}

func TestDispatchesRowCountMatchesPlan(t *testing.T) {
	p := NewPlan(4, 8, 16)
	rp := RowParams{ASampleLen: 8, BSampleLen: 16, ACount: 1, BCount: 1, DiagonalStride: 64}

	rows := p.Dispatches(rp)
	if uint64(len(rows)) != p.Rows {
		t.Fatalf("got %d rows, want %d", len(rows), p.Rows)
	}

	for i, rd := range rows {
		if rd.Row != uint64(i) {
			t.Errorf("rows[%d].Row = %d, want %d", i, rd.Row, i)
		}
	}
}

func TestDispatchesStartsWithSingleDiamond(t *testing.T) {
	p := NewPlan(4, 8, 16)
	rp := RowParams{ASampleLen: 8, BSampleLen: 16, ACount: 1, BCount: 1}

	rows := p.Dispatches(rp)
	if rows[0].DiamondsCount != 1 {
		t.Errorf("first row DiamondsCount = %d, want 1", rows[0].DiamondsCount)
	}
	if rows[0].Constants.FirstCoord != -4 {
		t.Errorf("first row FirstCoord = %d, want -int64(W)=-4", rows[0].Constants.FirstCoord)
	}
}

func TestDispatchesWidensThenContracts(t *testing.T) {
	// Square 2x2 diamond grid: ADiamonds==BDiamonds==2, so there is no
	// plateau phase — diamond count should widen to 2 then immediately
	// start contracting back to 0 (Rows = ceilDiv(16,4)-1 = 3).
	p := NewPlan(4, 8, 8)
	rp := RowParams{ASampleLen: 8, BSampleLen: 8, ACount: 1, BCount: 1}

	rows := p.Dispatches(rp)
	counts := make([]uint64, len(rows))
	for i, rd := range rows {
		counts[i] = rd.DiamondsCount
	}

	want := []uint64{1, 2, 1}
	if len(counts) != len(want) {
		t.Fatalf("got %d rows %v, want %d rows %v", len(counts), counts, len(want), want)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("counts[%d] = %d, want %d (full sequence %v)", i, counts[i], want[i], counts)
		}
	}
}

func TestDispatchesPlateauWhenRectangular(t *testing.T) {
	// A wide rectangle (BDiamonds > ADiamonds) should hold DiamondsCount
	// steady at ADiamonds during the plateau phase before contracting.
	p := NewPlan(4, 8, 24) // ADiamonds=2, BDiamonds=6, Rows = ceilDiv(32,4)-1 = 7
	rp := RowParams{ASampleLen: 8, BSampleLen: 24, ACount: 1, BCount: 1}

	rows := p.Dispatches(rp)
	counts := make([]uint64, len(rows))
	for i, rd := range rows {
		counts[i] = rd.DiamondsCount
	}

	want := []uint64{1, 2, 2, 2, 2, 2, 1}
	if len(counts) != len(want) {
		t.Fatalf("got %d rows %v, want %d rows %v", len(counts), counts, len(want), want)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("counts[%d] = %d, want %d (full sequence %v)", i, counts[i], want[i], counts)
		}
	}
}

func TestDispatchesCarriesScalarParamsAndStride(t *testing.T) {
	p := NewPlan(4, 8, 8)
	rp := RowParams{
		ASampleLen:     8,
		BSampleLen:     8,
		ACount:         3,
		BCount:         5,
		DiagonalStride: 128,
		Scalar:         [4]float32{1, 2, 3, 4},
	}

	rows := p.Dispatches(rp)
	for _, rd := range rows {
		c := rd.Constants
		if c.ACount != 3 || c.BCount != 5 {
			t.Errorf("row %d: ACount/BCount = %d/%d, want 3/5", rd.Row, c.ACount, c.BCount)
		}
		if c.DiagonalStride != 128 {
			t.Errorf("row %d: DiagonalStride = %d, want 128", rd.Row, c.DiagonalStride)
		}
		if c.Param1 != 1 || c.Param2 != 2 || c.Param3 != 3 || c.Param4 != 4 {
			t.Errorf("row %d: params = %v, want [1 2 3 4]", rd.Row, [4]float32{c.Param1, c.Param2, c.Param3, c.Param4})
		}
	}
}
