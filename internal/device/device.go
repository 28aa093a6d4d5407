// Package device is the accelerator boundary: everything the design treats
// as an external collaborator (device/queue discovery, descriptor and
// command-buffer allocation) lives behind the Device interface here, with
// exactly one concrete implementation in-tree — a CPU "software" backend
// that replays the same diamond/warp/ring algorithm goroutine-per-diamond.
// A real accelerator backend is a registration away, not a rewrite.
package device

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/go-tsdist-gpu/internal/kernel"
)

// Backend names a device implementation.
type Backend int

const (
	BackendSoftware Backend = iota
	BackendVulkan
)

func (b Backend) String() string {
	switch b {
	case BackendSoftware:
		return "software"
	case BackendVulkan:
		return "vulkan"
	default:
		return "unknown"
	}
}

// ParseBackend normalizes a config/flag value into a Backend.
func ParseBackend(raw string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "software", "cpu":
		return BackendSoftware, nil
	case "vulkan", "gpu":
		return BackendVulkan, nil
	default:
		return 0, fmt.Errorf("device: unknown backend %q (expected software|vulkan)", raw)
	}
}

// RowJob is one scheduler row's worth of work: every pair active this row,
// each fanned out across diamondsCount independent diamonds.
type RowJob struct {
	PairCount     int
	DiamondsCount uint64
	// Dispatch builds the per-pair kernel.Dispatch (its own ring diagonal
	// segment and A/B buffer offsets already applied).
	Dispatch func(pairIndex int) kernel.Dispatch
}

// Device runs scheduler rows. Batch and single mode share the same
// interface; single mode is simply PairCount==1.
type Device interface {
	Name() string
	RunRow(ctx context.Context, job RowJob) error
	Close() error
}

// New constructs the Device for the given backend. Only BackendSoftware has
// a registered implementation; selecting BackendVulkan returns an error a
// caller should treat as the spec's DeviceInitFailure kind.
func New(b Backend) (Device, error) {
	switch b {
	case BackendSoftware:
		return NewSoftware(), nil
	case BackendVulkan:
		return nil, fmt.Errorf("device: backend %q has no registered implementation (accelerator dispatch is outside this engine's scope)", b)
	default:
		return nil, fmt.Errorf("device: unknown backend %v", b)
	}
}
