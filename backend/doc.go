// Package backend is the registry of native GPU implementations.
//
// Backend packages register a Factory from init(), and programs select
// one by name or take the best available:
//
//	import (
//	    "github.com/gogpu/wgsafe/backend"
//	    _ "github.com/gogpu/wgsafe/backend/trace"
//	    _ "github.com/gogpu/wgsafe/backend/wgpu"
//	)
//
//	api, err := backend.Open(backend.BackendVulkan)
//	if err != nil {
//	    api = backend.MustDefault()
//	}
//	inst := wgsafe.NewInstance(api)
//
// # Backends
//
//   - vulkan: gogpu/wgpu on a Vulkan device
//   - noop: gogpu/wgpu on the noop device, useful for CI
//   - trace: records every native call, see backend/trace
package backend
