//go:build rust

package rust

import (
	"fmt"

	"github.com/go-webgpu/webgpu/wgpu"
)

// Probe loads wgpu-native, requests a high-performance adapter and opens
// a device and queue on it. Everything is released before it returns.
func Probe() (*AdapterInfo, error) {
	if err := wgpu.Init(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLibraryNotFound, err)
	}

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("rust: instance creation failed: %w", err)
	}
	defer instance.Release()

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoGPU, err)
	}
	defer adapter.Release()

	raw, err := adapter.GetInfo()
	if err != nil {
		return nil, fmt.Errorf("rust: adapter info: %w", err)
	}
	info := &AdapterInfo{
		Vendor:       raw.Vendor,
		Architecture: raw.Architecture,
		Device:       raw.Device,
		Description:  raw.Description,
		BackendType:  backendTypeToString(raw.BackendType),
		AdapterType:  adapterTypeToString(raw.AdapterType),
		VendorID:     raw.VendorID,
		DeviceID:     raw.DeviceID,
	}

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		return info, fmt.Errorf("rust: device creation failed: %w", err)
	}
	defer device.Release()

	queue := device.GetQueue()
	if queue == nil {
		return info, fmt.Errorf("rust: queue retrieval failed")
	}
	queue.Release()

	return info, nil
}

func backendTypeToString(bt wgpu.BackendType) string {
	switch bt {
	case wgpu.BackendTypeNull:
		return "Null"
	case wgpu.BackendTypeWebGPU:
		return "WebGPU"
	case wgpu.BackendTypeD3D11:
		return "D3D11"
	case wgpu.BackendTypeD3D12:
		return "D3D12"
	case wgpu.BackendTypeMetal:
		return "Metal"
	case wgpu.BackendTypeVulkan:
		return "Vulkan"
	case wgpu.BackendTypeOpenGL:
		return "OpenGL"
	case wgpu.BackendTypeOpenGLES:
		return "OpenGLES"
	default:
		return "Unknown"
	}
}

func adapterTypeToString(at wgpu.AdapterType) string {
	switch at {
	case wgpu.AdapterTypeDiscreteGPU:
		return "DiscreteGPU"
	case wgpu.AdapterTypeIntegratedGPU:
		return "IntegratedGPU"
	case wgpu.AdapterTypeCPU:
		return "CPU"
	default:
		return "Unknown"
	}
}
