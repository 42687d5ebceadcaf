package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/wgsafe/native"
)

// GPUInfo describes the adapter selected for an instance.
type GPUInfo struct {
	// Name is the GPU name (e.g., "NVIDIA GeForce RTX 3080").
	Name string
	// DeviceType is the type of GPU (discrete, integrated, etc.).
	DeviceType gputypes.DeviceType
}

// String returns a human-readable description of the GPU.
func (g *GPUInfo) String() string {
	return fmt.Sprintf("%s (%v)", g.Name, g.DeviceType)
}

func gpuInfo(a *hal.ExposedAdapter) *GPUInfo {
	return &GPUInfo{Name: a.Info.Name, DeviceType: a.Info.DeviceType}
}

// logGPUInfo logs the selected adapter.
func logGPUInfo(a *hal.ExposedAdapter) {
	slogger().Info("wgpu: adapter selected", "gpu", gpuInfo(a).String())
}

// selectAdapter picks an adapter by power preference. High performance
// prefers a discrete GPU, low power an integrated one; either falls back
// to the other kind of hardware GPU and then to the first adapter.
func selectAdapter(adapters []hal.ExposedAdapter, pref gputypes.PowerPreference) *hal.ExposedAdapter {
	first, second := gputypes.DeviceTypeIntegratedGPU, gputypes.DeviceTypeDiscreteGPU
	if pref == gputypes.PowerPreferenceHighPerformance {
		first, second = second, first
	}
	for _, want := range []gputypes.DeviceType{first, second} {
		for i := range adapters {
			if adapters[i].Info.DeviceType == want {
				return &adapters[i]
			}
		}
	}
	return &adapters[0]
}

// AdapterInfo returns information about an adapter ID created by this API.
func (a *API) AdapterInfo(adapter native.ID) (*GPUInfo, error) {
	v, err := a.objs.Lookup(native.KindAdapter, adapter)
	if err != nil {
		return nil, err
	}
	return gpuInfo(&v.(*adapterObj).exposed), nil
}
