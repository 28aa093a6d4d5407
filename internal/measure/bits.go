package measure

import (
	"errors"
	"math"
)

var errShortBuffer = errors.New("measure: buffer too short for kernel constants")

func math32bits(v float32) uint32    { return math.Float32bits(v) }
func bits32float(v uint32) float32   { return math.Float32frombits(v) }
