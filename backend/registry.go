package backend

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/wgsafe/native"
)

var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for backend selection (first available wins).
	// Real hardware first, then the noop device, then the recorder.
	backendPriority = []string{BackendVulkan, BackendNoop, BackendTrace}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get returns a native API by name.
// Returns nil if the backend is not registered or cannot start.
func Get(name string) native.API {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil
	}
	return factory()
}

// Open is Get with an error for a missing backend.
func Open(name string) (native.API, error) {
	api := Get(name)
	if api == nil {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrBackendNotAvailable, name, Available())
	}
	return api, nil
}

// Default returns the best available backend based on priority.
// Priority order: vulkan > noop > trace, then any other registered backend.
// Returns nil if no backend can start.
func Default() native.API {
	registryMu.RLock()
	factories := make(map[string]Factory, len(backends))
	for name, f := range backends {
		factories[name] = f
	}
	registryMu.RUnlock()

	for _, name := range backendPriority {
		if factory, ok := factories[name]; ok {
			if api := factory(); api != nil {
				return api
			}
		}
	}

	// Fallback: first available in name order.
	names := make([]string, 0, len(factories))
	for name := range factories {
		if !slices.Contains(backendPriority, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	for _, name := range names {
		if api := factories[name](); api != nil {
			return api
		}
	}

	return nil
}

// MustDefault returns the default backend or panics.
func MustDefault() native.API {
	api := Default()
	if api == nil {
		panic("backend: no backend available")
	}
	return api
}
