package config

import (
	"fmt"
	"strings"

	"github.com/example/go-tsdist-gpu/internal/device"
)

// NormalizeBackend lowercases and validates raw against the known device
// backends and returns the canonical backend name (aliases such as "cpu"
// and "gpu" map to "software" and "vulkan"), defaulting to the software
// backend when raw is empty.
func NormalizeBackend(raw string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(raw))
	if backend == "" {
		backend = device.BackendSoftware.String()
	}

	b, err := device.ParseBackend(backend)
	if err != nil {
		return "", fmt.Errorf("invalid backend %q: %w", raw, err)
	}

	return b.String(), nil
}
