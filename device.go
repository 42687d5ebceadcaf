package wgsafe

import (
	"github.com/gogpu/wgsafe/native"
)

// Device is a logical GPU device and the factory of most resources.
//
// Device implements gpucontext.Device.
type Device struct{ resource }

// Queue returns a new handle to the device queue. Each call yields a
// distinct Queue that must be destroyed on its own.
func (d *Device) Queue() *Queue {
	id := d.api.DeviceGetQueue(d.live())
	return wrap[Queue](d.api, native.KindQueue, id)
}

// Poll processes completed GPU work. With wait set, it blocks until all
// submitted work has finished.
func (d *Device) Poll(wait bool) {
	d.api.DevicePoll(d.live(), wait)
}

// CreateCommandBuffer creates an empty command buffer in the Idle state.
func (d *Device) CreateCommandBuffer(desc *CommandBufferDescriptor) *CommandBuffer {
	id := d.api.DeviceCreateCommandBuffer(d.live(), orZero(desc))
	return wrap[CommandBuffer](d.api, native.KindCommandBuffer, id)
}

// CreateBindGroupLayout creates a bind group layout.
func (d *Device) CreateBindGroupLayout(desc *BindGroupLayoutDescriptor) *BindGroupLayout {
	dev := d.live()
	var id native.ID
	marshalBindGroupLayout(orZero(desc), func(flat *native.BindGroupLayoutDescriptor) {
		id = d.api.DeviceCreateBindGroupLayout(dev, flat)
	})
	return wrap[BindGroupLayout](d.api, native.KindBindGroupLayout, id)
}

// CreateBindGroup creates a bind group. The layout and every texture view
// are borrowed for the duration of the call.
func (d *Device) CreateBindGroup(desc *BindGroupDescriptor) *BindGroup {
	dev := d.live()
	var id native.ID
	marshalBindGroup(orZero(desc), func(flat *native.BindGroupDescriptor) {
		id = d.api.DeviceCreateBindGroup(dev, flat)
	})
	return wrap[BindGroup](d.api, native.KindBindGroup, id)
}

// CreatePipelineLayout creates a pipeline layout from borrowed bind group
// layouts.
func (d *Device) CreatePipelineLayout(desc *PipelineLayoutDescriptor) *PipelineLayout {
	dev := d.live()
	var id native.ID
	marshalPipelineLayout(orZero(desc), func(flat *native.PipelineLayoutDescriptor) {
		id = d.api.DeviceCreatePipelineLayout(dev, flat)
	})
	return wrap[PipelineLayout](d.api, native.KindPipelineLayout, id)
}

// CreateBlendState creates a blend state object.
func (d *Device) CreateBlendState(desc *BlendStateDescriptor) *BlendState {
	id := d.api.DeviceCreateBlendState(d.live(), orZero(desc))
	return wrap[BlendState](d.api, native.KindBlendState, id)
}

// CreateDepthStencilState creates a depth-stencil state object.
func (d *Device) CreateDepthStencilState(desc *DepthStencilStateDescriptor) *DepthStencilState {
	id := d.api.DeviceCreateDepthStencilState(d.live(), orZero(desc))
	return wrap[DepthStencilState](d.api, native.KindDepthStencilState, id)
}

// CreateRenderPipeline creates a render pipeline.
//
// It returns an error wrapping ErrCapacityExceeded when desc has more than
// MaxPipelineStages stages; no native call is made in that case.
func (d *Device) CreateRenderPipeline(desc *RenderPipelineDescriptor) (*RenderPipeline, error) {
	dev := d.live()
	var id native.ID
	err := marshalRenderPipeline(orZero(desc), func(flat *native.RenderPipelineDescriptor) {
		id = d.api.DeviceCreateRenderPipeline(dev, flat)
	})
	if err != nil {
		return nil, err
	}
	return wrap[RenderPipeline](d.api, native.KindRenderPipeline, id), nil
}

// CreateComputePipeline creates a compute pipeline.
func (d *Device) CreateComputePipeline(desc *ComputePipelineDescriptor) *ComputePipeline {
	dev := d.live()
	var id native.ID
	marshalComputePipeline(orZero(desc), func(flat *native.ComputePipelineDescriptor) {
		id = d.api.DeviceCreateComputePipeline(dev, flat)
	})
	return wrap[ComputePipeline](d.api, native.KindComputePipeline, id)
}

// CreateTexture creates a texture.
func (d *Device) CreateTexture(desc *TextureDescriptor) *Texture {
	id := d.api.DeviceCreateTexture(d.live(), orZero(desc))
	return wrap[Texture](d.api, native.KindTexture, id)
}
