package measure

import "encoding/binary"

// KernelConstants is the per-row push-constant block handed to a kernel
// dispatch. Field order matches the layout the original compute shaders
// bind at push_constant offset 0; keep it stable, since MarshalStd430
// depends on it byte-for-byte.
type KernelConstants struct {
	FirstCoord         int64
	Row                uint64
	DiamondsCount      uint64
	AStart             uint64
	BStart             uint64
	ALen               uint64
	BLen               uint64
	ACount             uint64
	BCount             uint64
	DiagonalStride     uint64
	MaxSubgroupThreads uint64
	Param1             float32
	Param2             float32
	Param3             float32
	Param4             float32
	PaddedALen         uint64
	PaddedBLen         uint64
}

// ConstantsSize is the marshalled size in bytes of KernelConstants.
const ConstantsSize = 8 + 10*8 + 4*4 + 2*8

// MarshalStd430 encodes the constants block in the little-endian, tightly
// packed layout the kernel expects. Every field here is either 8 or 4
// bytes wide and already falls on its own natural alignment boundary in
// this field order, so no padding is inserted.
func (c KernelConstants) MarshalStd430() []byte {
	buf := make([]byte, ConstantsSize)
	o := 0

	putU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[o:], v)
		o += 8
	}
	putF32 := func(v float32) {
		binary.LittleEndian.PutUint32(buf[o:], math32bits(v))
		o += 4
	}

	putU64(uint64(c.FirstCoord))
	putU64(c.Row)
	putU64(c.DiamondsCount)
	putU64(c.AStart)
	putU64(c.BStart)
	putU64(c.ALen)
	putU64(c.BLen)
	putU64(c.ACount)
	putU64(c.BCount)
	putU64(c.DiagonalStride)
	putU64(c.MaxSubgroupThreads)
	putF32(c.Param1)
	putF32(c.Param2)
	putF32(c.Param3)
	putF32(c.Param4)
	putU64(c.PaddedALen)
	putU64(c.PaddedBLen)

	return buf
}

// UnmarshalStd430 decodes a buffer produced by MarshalStd430, for round-trip
// tests.
func UnmarshalStd430(buf []byte) (KernelConstants, error) {
	var c KernelConstants
	if len(buf) < ConstantsSize {
		return c, errShortBuffer
	}

	o := 0

	getU64 := func() uint64 {
		v := binary.LittleEndian.Uint64(buf[o:])
		o += 8
		return v
	}
	getF32 := func() float32 {
		v := bits32float(binary.LittleEndian.Uint32(buf[o:]))
		o += 4
		return v
	}

	c.FirstCoord = int64(getU64())
	c.Row = getU64()
	c.DiamondsCount = getU64()
	c.AStart = getU64()
	c.BStart = getU64()
	c.ALen = getU64()
	c.BLen = getU64()
	c.ACount = getU64()
	c.BCount = getU64()
	c.DiagonalStride = getU64()
	c.MaxSubgroupThreads = getU64()
	c.Param1 = getF32()
	c.Param2 = getF32()
	c.Param3 = getF32()
	c.Param4 = getF32()
	c.PaddedALen = getU64()
	c.PaddedBLen = getU64()

	return c, nil
}
