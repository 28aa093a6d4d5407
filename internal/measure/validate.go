package measure

import "fmt"

// Validate checks parameter shapes that are cheap to catch on the host
// before any buffer is allocated, mirroring the original implementation's
// shape checks ahead of device dispatch.
func Validate(m Measure, aLen, bLen int) error {
	w, ok := m.(WDTW)
	if !ok {
		return nil
	}

	need := aLen
	if bLen > need {
		need = bLen
	}

	if len(w.Weights) < need {
		return fmt.Errorf("wdtw: weights length %d is shorter than max(len(a), len(b))=%d", len(w.Weights), need)
	}

	return nil
}
