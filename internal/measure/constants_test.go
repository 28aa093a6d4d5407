package measure

import "testing"

func TestKernelConstantsRoundTrip(t *testing.T) {
	c := KernelConstants{
		FirstCoord:         -17,
		Row:                3,
		DiamondsCount:      4,
		AStart:             8,
		BStart:             16,
		ALen:               64,
		BLen:               128,
		ACount:             2,
		BCount:             5,
		DiagonalStride:     256,
		MaxSubgroupThreads: 32,
		Param1:             1.5,
		Param2:             -2.25,
		Param3:             0,
		Param4:             3.75,
		PaddedALen:         64,
		PaddedBLen:         128,
	}

	buf := c.MarshalStd430()
	if len(buf) != ConstantsSize {
		t.Fatalf("MarshalStd430 produced %d bytes, want %d", len(buf), ConstantsSize)
	}

	got, err := UnmarshalStd430(buf)
	if err != nil {
		t.Fatalf("UnmarshalStd430: %v", err)
	}

	if got != c {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, c)
	}
}

func TestUnmarshalStd430ShortBuffer(t *testing.T) {
	_, err := UnmarshalStd430(make([]byte, ConstantsSize-1))
	if err == nil {
		t.Fatal("expected error for short buffer, got nil")
	}
}

func TestKernelConstantsNegativeFirstCoord(t *testing.T) {
	c := KernelConstants{FirstCoord: -1}
	buf := c.MarshalStd430()

	got, err := UnmarshalStd430(buf)
	if err != nil {
		t.Fatalf("UnmarshalStd430: %v", err)
	}
	if got.FirstCoord != -1 {
		t.Fatalf("FirstCoord = %d, want -1", got.FirstCoord)
	}
}
