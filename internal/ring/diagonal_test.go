package ring

import "testing"

func TestNextPow2(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{4, 4},
		{5, 8},
		{17, 32},
		{32, 32},
	}

	for _, c := range cases {
		if got := NextPow2(c.n); got != c.want {
			t.Errorf("NextPow2(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}

func TestLengthIsPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 5, 16, 17, 100} {
		l := Length(n)
		if l&(l-1) != 0 {
			t.Errorf("Length(%d) = %d, not a power of two", n, l)
		}
		if l < 2*(n+1) {
			t.Errorf("Length(%d) = %d, too small to hold the widest diamond", n, l)
		}
	}
}

func TestAddrIndexWrapsNegativeCoordinates(t *testing.T) {
	addr := New(16)

	for k := int64(-40); k <= 40; k++ {
		idx := addr.Index(k)
		if idx < 0 || idx >= addr.Size() {
			t.Fatalf("Index(%d) = %d out of range [0, %d)", k, idx, addr.Size())
		}
	}
}

func TestAddrIndexIsPeriodic(t *testing.T) {
	addr := New(16)
	l := int64(addr.Size())

	for k := int64(-5); k <= 5; k++ {
		a := addr.Index(k)
		b := addr.Index(k + l)
		if a != b {
			t.Errorf("Index(%d)=%d != Index(%d)=%d, expected period %d", k, a, k+l, b, l)
		}
	}
}

func TestAddrIndexZeroIsStable(t *testing.T) {
	addr := New(8)
	if addr.Index(0) == addr.Index(1) {
		t.Fatalf("Index(0) and Index(1) collided at %d", addr.Index(0))
	}
}
