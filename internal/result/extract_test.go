package result

import (
	"testing"

	"github.com/example/go-tsdist-gpu/internal/ring"
)

func TestTerminalCoord(t *testing.T) {
	if got := TerminalCoord(5, 5); got != 0 {
		t.Errorf("TerminalCoord(5,5) = %d, want 0", got)
	}
	if got := TerminalCoord(3, 8); got != 5 {
		t.Errorf("TerminalCoord(3,8) = %d, want 5", got)
	}
	if got := TerminalCoord(8, 3); got != -5 {
		t.Errorf("TerminalCoord(8,3) = %d, want -5", got)
	}
}

func TestExtractReadsTerminalCell(t *testing.T) {
	addr := ring.New(8)
	diag := make([]float32, addr.Size())
	diag[addr.Index(TerminalCoord(3, 5))] = 42

	got := Extract(diag, 0, 3, 5, addr)
	if got != 42 {
		t.Errorf("Extract = %v, want 42", got)
	}
}

func TestExtractHonorsPairOffset(t *testing.T) {
	addr := ring.New(4)
	stride := addr.Size()
	diag := make([]float32, 2*stride)
	diag[stride+addr.Index(TerminalCoord(2, 2))] = 7

	got := Extract(diag, stride, 2, 2, addr)
	if got != 7 {
		t.Errorf("Extract with pairOffset = %v, want 7", got)
	}
}

func TestLCSSDistance(t *testing.T) {
	cases := []struct {
		matches    float32
		aLen, bLen int
		want       float32
	}{
		{0, 5, 5, 1},
		{5, 5, 5, 0},
		{2, 4, 6, 0.5}, // minLen=4, 1 - 2/4
		{0, 0, 0, 1},
	}

	for _, c := range cases {
		got := LCSS(c.matches, c.aLen, c.bLen)
		if got != c.want {
			t.Errorf("LCSS(%v, %d, %d) = %v, want %v", c.matches, c.aLen, c.bLen, got, c.want)
		}
	}
}
