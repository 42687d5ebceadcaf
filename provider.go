package wgsafe

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// ProviderOptions configures NewProvider.
type ProviderOptions struct {
	Adapter AdapterDescriptor
	Device  DeviceDescriptor

	// SurfaceFormat is reported to consumers. Zero means BGRA8Unorm.
	SurfaceFormat gputypes.TextureFormat
}

// Provider owns an adapter, a device and a queue, and exposes them as a
// gpucontext.DeviceProvider so that code written against gpucontext can
// run on a wgsafe device. Consumers recover the typed handles by asserting
// Device() to *Device, Queue() to *Queue and Adapter() to *Adapter.
type Provider struct {
	adapter *Adapter
	device  *Device
	queue   *Queue
	format  gputypes.TextureFormat
}

var (
	_ gpucontext.DeviceProvider = (*Provider)(nil)
	_ gpucontext.Device         = (*Device)(nil)
	_ gpucontext.Queue          = (*Queue)(nil)
	_ gpucontext.Adapter        = (*Adapter)(nil)
)

// NewProvider requests an adapter from inst and opens a device and queue
// on it.
func NewProvider(inst *Instance, opts ProviderOptions) *Provider {
	adapter := inst.RequestAdapter(&opts.Adapter)
	device := adapter.CreateDevice(&opts.Device)
	format := opts.SurfaceFormat
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	return &Provider{
		adapter: adapter,
		device:  device,
		queue:   device.Queue(),
		format:  format,
	}
}

// Device implements gpucontext.DeviceProvider.
func (p *Provider) Device() gpucontext.Device { return p.device }

// Queue implements gpucontext.DeviceProvider.
func (p *Provider) Queue() gpucontext.Queue { return p.queue }

// Adapter implements gpucontext.DeviceProvider.
func (p *Provider) Adapter() gpucontext.Adapter { return p.adapter }

// SurfaceFormat implements gpucontext.DeviceProvider.
func (p *Provider) SurfaceFormat() gputypes.TextureFormat { return p.format }

// AdapterInfo implements gpucontext.DeviceProvider. The native API has no
// adapter info query, so the zero value is returned.
func (p *Provider) AdapterInfo() gpucontext.AdapterInfo {
	var info gpucontext.AdapterInfo
	return info
}

// WGPUDevice returns the typed device.
func (p *Provider) WGPUDevice() *Device { return p.device }

// WGPUQueue returns the typed queue.
func (p *Provider) WGPUQueue() *Queue { return p.queue }

// Destroy releases the queue, device and adapter in that order.
func (p *Provider) Destroy() {
	p.queue.Destroy()
	p.device.Destroy()
	p.adapter.Destroy()
}
