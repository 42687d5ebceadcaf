package wgpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/wgsafe/backend"
	"github.com/gogpu/wgsafe/native"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

func init() {
	backend.Register(backend.BackendNoop, func() native.API {
		return New(&noop.API{})
	})
	backend.Register(backend.BackendVulkan, func() native.API {
		api, err := Open(gputypes.BackendVulkan)
		if err == nil {
			err = api.Probe()
		}
		if err != nil {
			slogger().Info("wgpu: vulkan unavailable", "error", err)
			return nil
		}
		return api
	})
}
