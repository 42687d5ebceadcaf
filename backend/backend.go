package backend

import (
	"errors"

	"github.com/gogpu/wgsafe/native"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered or cannot start on this machine.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Backend names registered by this module.
const (
	// BackendVulkan runs on a Vulkan device through gogpu/wgpu.
	BackendVulkan = "vulkan"

	// BackendNoop runs on the gogpu/wgpu noop device. Every call succeeds
	// and nothing is drawn.
	BackendNoop = "noop"

	// BackendTrace validates and records native calls without a device.
	BackendTrace = "trace"
)

// Factory creates a native API. It returns nil when the backend cannot
// run on this machine.
type Factory func() native.API
