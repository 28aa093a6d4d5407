package device

import (
	"log/slog"
	"sync"

	"github.com/example/go-tsdist-gpu/internal/measure"
)

// PipelineKey is the pipeline cache key: one compiled pipeline per
// (measure, mode) pair, mirroring the two real kernel entry points
// (single_call, batch_call) each measure exposes.
type PipelineKey struct {
	Kind  measure.Kind
	Batch bool
}

// EntryPoint returns the kernel entry point name this key dispatches to.
func (k PipelineKey) EntryPoint() string {
	if k.Batch {
		return k.Kind.String() + "_distance::batch_call"
	}
	return k.Kind.String() + "_distance::single_call"
}

// Pipeline is an opaque handle to a compiled dispatch target. The software
// backend has nothing to compile, so it is just a tag; a Vulkan backend
// would store the real pipeline object here instead.
type Pipeline struct {
	EntryPoint string
}

// PipelineCache caches compiled pipelines by entry-point name for the
// lifetime of the process, never evicting — shader/pipeline compilation is
// assumed expensive relative to dispatch cost.
type PipelineCache struct {
	mu        sync.Mutex
	pipelines map[PipelineKey]*Pipeline
}

// NewPipelineCache returns an empty cache.
func NewPipelineCache() *PipelineCache {
	return &PipelineCache{pipelines: make(map[PipelineKey]*Pipeline)}
}

// Get returns the cached pipeline for key, building it with build on a
// cache miss.
func (c *PipelineCache) Get(key PipelineKey, build func() (*Pipeline, error)) (*Pipeline, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.pipelines[key]; ok {
		return p, nil
	}

	slog.Info("pipeline cache miss", "entry_point", key.EntryPoint())

	p, err := build()
	if err != nil {
		return nil, err
	}

	c.pipelines[key] = p

	return p, nil
}
