// Package doctor provides environment preflight checks for tsdist.
package doctor

import (
	"fmt"
	"io"

	"github.com/example/go-tsdist-gpu/internal/device"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// VulkanProbeFunc reports whether a Vulkan loader is present, and which
// library satisfied the probe.
type VulkanProbeFunc func() (found bool, library string)

// Config holds injectable dependencies for each doctor check.
type Config struct {
	// Backend is the configured execution backend (software|vulkan).
	Backend string
	// WarpWidth is the configured diamond warp width.
	WarpWidth int
	// MaxBufferBytes is the configured device diagonal buffer budget.
	MaxBufferBytes int64
	// ProbeVulkan reports Vulkan loader availability. Defaults to
	// device.ProbeVulkanLoader when nil.
	ProbeVulkan VulkanProbeFunc
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	// ---- backend selection --------------------------------------------
	backend, err := device.ParseBackend(cfg.Backend)
	if err != nil {
		res.fail(fmt.Sprintf("backend: %v", err))
		fmt.Fprintf(w, "%s backend: %v\n", FailMark, err)
	} else {
		fmt.Fprintf(w, "%s backend: %s\n", PassMark, backend)
	}

	// ---- Vulkan loader presence ----------------------------------------
	probe := cfg.ProbeVulkan
	if probe == nil {
		probe = device.ProbeVulkanLoader
	}

	found, library := probe()
	switch {
	case found:
		fmt.Fprintf(w, "%s vulkan loader: %s\n", PassMark, library)
	case backend == device.BackendVulkan:
		res.fail("vulkan loader: not found, but backend=vulkan was requested")
		fmt.Fprintf(w, "%s vulkan loader: not found\n", FailMark)
	default:
		fmt.Fprintf(w, "%s vulkan loader: not found (not required by backend=%s)\n", PassMark, backend)
	}

	// ---- warp width ------------------------------------------------------
	if cfg.WarpWidth <= 0 || cfg.WarpWidth&(cfg.WarpWidth-1) != 0 {
		res.fail(fmt.Sprintf("warp width: %d is not a positive power of two", cfg.WarpWidth))
		fmt.Fprintf(w, "%s warp width: %d (must be a positive power of two)\n", FailMark, cfg.WarpWidth)
	} else {
		fmt.Fprintf(w, "%s warp width: %d\n", PassMark, cfg.WarpWidth)
	}

	// ---- buffer budget -----------------------------------------------------
	minBudget := int64(cfg.WarpWidth) * 4
	if cfg.MaxBufferBytes > 0 && cfg.MaxBufferBytes < minBudget {
		res.fail(fmt.Sprintf("max buffer bytes: %d is smaller than one warp-width diagonal (%d bytes)", cfg.MaxBufferBytes, minBudget))
		fmt.Fprintf(w, "%s max buffer bytes: %d (too small, batches will run one row at a time)\n", FailMark, cfg.MaxBufferBytes)
	} else {
		fmt.Fprintf(w, "%s max buffer bytes: %d\n", PassMark, cfg.MaxBufferBytes)
	}

	return res
}
