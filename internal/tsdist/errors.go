package tsdist

import "errors"

// Sentinel errors for the engine's five error kinds. This package returns
// only ErrDeviceInit and ErrInvalidInput; the other three are declared but
// never returned here. Call sites wrap these with context via fmt.Errorf
// and %w; callers should match with errors.Is, not string comparison.
var (
	ErrDeviceInit       = errors.New("device init failure")
	ErrBufferAllocation = errors.New("buffer allocation failure")
	ErrShaderLoad       = errors.New("shader load failure")
	ErrInvalidInput     = errors.New("invalid input")
	ErrOversizedInput   = errors.New("oversized input")
)
