package generator

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Arunachalam-140897/DevEngine/pkg/manifest"
)

// Options tune a single generation.
type Options struct {
	// StrictVolumes fails generation on incomplete PersistentVolume configuration.
	StrictVolumes bool
}

// Generator turns a raw JSON request body into manifests.
type Generator interface {
	Generate(ctx context.Context, body []byte, opts Options) (*manifest.Bundle, error)
}

// Registry manages registered generators with thread-safe operations.
type Registry struct {
	generators map[Module]Generator

	mu sync.RWMutex
}

// NewRegistry creates a Registry with every built-in module registered.
func NewRegistry() *Registry {
	return &Registry{
		generators: map[Module]Generator{
			ModuleKubernetes: &Kubernetes{},
		},
	}
}

// Register registers a generator in this registry.
func (r *Registry) Register(m Module, g Generator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generators[m] = g
}

// Get retrieves a generator by module from this registry.
func (r *Registry) Get(m Module) (Generator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.generators[m]
	return g, ok
}

// List returns all registered modules in sorted order.
func (r *Registry) List() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mods := make([]Module, 0, len(r.generators))
	for k := range r.generators {
		mods = append(mods, k)
	}
	sort.Slice(mods, func(i, j int) bool { return mods[i] < mods[j] })
	return mods
}

// Unregister removes a generator from this registry.
func (r *Registry) Unregister(m Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.generators[m]; !ok {
		return fmt.Errorf("module %s not registered", m)
	}

	delete(r.generators, m)
	return nil
}
