// Package tsdist is the library surface: one function pair per elastic
// distance measure, backed by a shared diamond-wavefront execution engine.
package tsdist

import (
	"fmt"
	"sync"

	"github.com/example/go-tsdist-gpu/internal/device"
)

// Config controls device selection and resource budgets for an Engine.
type Config struct {
	Backend        device.Backend
	WarpWidth      uint64
	MaxBufferBytes uint64
}

// DefaultConfig returns the always-available configuration: the software
// backend, a 32-lane warp width, and a 256 MiB device buffer budget.
func DefaultConfig() Config {
	return Config{
		Backend:        device.BackendSoftware,
		WarpWidth:      32,
		MaxBufferBytes: 256 << 20,
	}
}

// Engine owns a device and its pipeline cache across many calls, so repeat
// callers amortize device setup instead of paying it per distance call.
type Engine struct {
	cfg   Config
	dev   device.Device
	cache *device.PipelineCache
}

// NewEngine initializes the device for cfg.Backend and returns a ready
// Engine.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.WarpWidth == 0 {
		cfg.WarpWidth = 32
	}

	dev, err := device.New(cfg.Backend)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeviceInit, err)
	}

	return &Engine{cfg: cfg, dev: dev, cache: device.NewPipelineCache()}, nil
}

// Close releases the underlying device.
func (e *Engine) Close() error {
	return e.dev.Close()
}

var (
	defaultEngineOnce sync.Once
	defaultEngineVal  *Engine
)

// defaultEngine lazily initializes the package-level software engine the
// one-off DTW/WDTW/... convenience functions share, so a caller who never
// needs more than one device doesn't have to construct an Engine.
func defaultEngine() *Engine {
	defaultEngineOnce.Do(func() {
		e, err := NewEngine(DefaultConfig())
		if err != nil {
			panic(fmt.Sprintf("tsdist: default software engine failed to initialize: %v", err))
		}
		defaultEngineVal = e
	})

	return defaultEngineVal
}
