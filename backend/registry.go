package backend

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// Registered backend names.
const (
	// NameVulkan selects the Vulkan HAL backend.
	NameVulkan = "vulkan"

	// NameNoop selects the noop HAL backend. It accepts every call and
	// presents nothing, which is useful for tests and headless runs.
	NameNoop = "noop"
)

// Factory returns the HAL backend for a registry entry, or false when the
// backend is not usable in this build.
type Factory func() (hal.Backend, bool)

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	// Priority order for automatic selection (first available wins).
	// The noop backend never wins automatically.
	backendPriority = []string{NameVulkan}
)

func init() {
	Register(NameVulkan, func() (hal.Backend, bool) {
		return hal.GetBackend(gputypes.BackendVulkan)
	})
	Register(NameNoop, func() (hal.Backend, bool) {
		return &noop.API{}, true
	})
}

// Register registers a backend factory with the given name.
// If a backend with the same name is already registered, it is replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the registered backend names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Lookup returns the HAL backend registered under name.
func Lookup(name string) (hal.Backend, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q is not registered", ErrBackendNotAvailable, name)
	}
	b, ok := factory()
	if !ok || b == nil {
		return nil, fmt.Errorf("%w: %q is not compiled in", ErrBackendNotAvailable, name)
	}
	return b, nil
}

// Default returns the first available backend in priority order together
// with its name.
func Default() (string, hal.Backend, error) {
	registryMu.RLock()
	order := append([]string(nil), backendPriority...)
	registryMu.RUnlock()

	for _, name := range order {
		if b, err := Lookup(name); err == nil {
			return name, b, nil
		}
	}
	return "", nil, fmt.Errorf("%w: none of %v", ErrBackendNotAvailable, order)
}

// resolve looks up name, or the default backend when name is empty.
func resolve(name string) (string, hal.Backend, error) {
	if name == "" {
		return Default()
	}
	b, err := Lookup(name)
	return name, b, err
}
