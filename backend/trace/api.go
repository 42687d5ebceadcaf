package trace

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/wgsafe/internal/registry"
	"github.com/gogpu/wgsafe/native"
)

var (
	// ErrPassOpen is raised when a command buffer already has a pass
	// recording into it.
	ErrPassOpen = errors.New("trace: command buffer has an open pass")

	// ErrDuplicateSubmit is raised when one submit call names the same
	// command buffer twice.
	ErrDuplicateSubmit = errors.New("trace: command buffer submitted twice")
)

// CreateInstance allocates and records an instance ID.
func (a *API) CreateInstance() native.ID {
	id := a.alloc(native.KindInstance)
	a.record(Call{Op: "CreateInstance", Result: id})
	return id
}

// InstanceGetAdapter records the adapter request and allocates an adapter ID.
func (a *API) InstanceGetAdapter(instance native.ID, desc *native.AdapterDescriptor) native.ID {
	a.check(native.KindInstance, instance)
	id := a.alloc(native.KindAdapter)
	a.record(Call{Op: "InstanceGetAdapter", Receiver: instance, Result: id, Desc: *desc})
	return id
}

// AdapterCreateDevice records the device request and allocates a device ID.
func (a *API) AdapterCreateDevice(adapter native.ID, desc *native.DeviceDescriptor) native.ID {
	a.check(native.KindAdapter, adapter)
	id := a.alloc(native.KindDevice)
	a.record(Call{Op: "AdapterCreateDevice", Receiver: adapter, Result: id, Desc: *desc})
	return id
}

// DeviceCreateShaderModule records a copy of the shader code.
func (a *API) DeviceCreateShaderModule(device native.ID, desc *native.ShaderModuleDescriptor) native.ID {
	a.check(native.KindDevice, device)
	code := slices.Clone(native.Slice(desc.Code.Bytes, desc.Code.Length))
	id := a.alloc(native.KindShaderModule)
	a.record(Call{Op: "DeviceCreateShaderModule", Receiver: device, Result: id, Desc: ShaderModule{Code: code}})
	return id
}

// DeviceGetQueue allocates a new queue ID on every call.
func (a *API) DeviceGetQueue(device native.ID) native.ID {
	a.check(native.KindDevice, device)
	id := a.alloc(native.KindQueue)
	a.record(Call{Op: "DeviceGetQueue", Receiver: device, Result: id})
	return id
}

// DeviceCreateCommandBuffer allocates an idle command buffer.
func (a *API) DeviceCreateCommandBuffer(device native.ID, desc *native.CommandBufferDescriptor) native.ID {
	a.check(native.KindDevice, device)
	id := a.alloc(native.KindCommandBuffer)
	a.record(Call{Op: "DeviceCreateCommandBuffer", Receiver: device, Result: id, Desc: *desc})
	return id
}

// DeviceCreateBindGroupLayout records a copy of the layout slots.
func (a *API) DeviceCreateBindGroupLayout(device native.ID, desc *native.BindGroupLayoutDescriptor) native.ID {
	a.check(native.KindDevice, device)
	rec := BindGroupLayout{Bindings: slices.Clone(native.Slice(desc.Bindings, desc.BindingsLength))}
	id := a.alloc(native.KindBindGroupLayout)
	a.record(Call{Op: "DeviceCreateBindGroupLayout", Receiver: device, Result: id, Desc: rec})
	return id
}

// DeviceCreateBindGroup checks the layout and bound views and records the
// bindings.
func (a *API) DeviceCreateBindGroup(device native.ID, desc *native.BindGroupDescriptor) native.ID {
	a.check(native.KindDevice, device)
	a.check(native.KindBindGroupLayout, desc.Layout)
	rec := BindGroup{Layout: desc.Layout, Bindings: slices.Clone(native.Slice(desc.Bindings, desc.BindingsLength))}
	for _, b := range rec.Bindings {
		a.check(native.KindTextureView, b.TextureView)
	}
	id := a.alloc(native.KindBindGroup)
	a.record(Call{Op: "DeviceCreateBindGroup", Receiver: device, Result: id, IDs: []native.ID{desc.Layout}, Desc: rec})
	return id
}

// DeviceCreatePipelineLayout checks and records the bind group layout IDs.
func (a *API) DeviceCreatePipelineLayout(device native.ID, desc *native.PipelineLayoutDescriptor) native.ID {
	a.check(native.KindDevice, device)
	rec := PipelineLayout{BindGroupLayouts: slices.Clone(native.Slice(desc.BindGroupLayouts, desc.BindGroupLayoutsLength))}
	for _, l := range rec.BindGroupLayouts {
		a.check(native.KindBindGroupLayout, l)
	}
	id := a.alloc(native.KindPipelineLayout)
	a.record(Call{Op: "DeviceCreatePipelineLayout", Receiver: device, Result: id, Desc: rec})
	return id
}

// DeviceCreateBlendState records the blend configuration.
func (a *API) DeviceCreateBlendState(device native.ID, desc *native.BlendStateDescriptor) native.ID {
	a.check(native.KindDevice, device)
	id := a.alloc(native.KindBlendState)
	a.record(Call{Op: "DeviceCreateBlendState", Receiver: device, Result: id, Desc: *desc})
	return id
}

// DeviceCreateDepthStencilState records the depth and stencil configuration.
func (a *API) DeviceCreateDepthStencilState(device native.ID, desc *native.DepthStencilStateDescriptor) native.ID {
	a.check(native.KindDevice, device)
	id := a.alloc(native.KindDepthStencilState)
	a.record(Call{Op: "DeviceCreateDepthStencilState", Receiver: device, Result: id, Desc: *desc})
	return id
}

// DeviceCreateRenderPipeline checks every referenced ID and records the
// flattened pipeline.
func (a *API) DeviceCreateRenderPipeline(device native.ID, desc *native.RenderPipelineDescriptor) native.ID {
	a.check(native.KindDevice, device)
	rec := copyRenderPipeline(desc)
	a.check(native.KindPipelineLayout, rec.Layout)
	for _, s := range rec.Stages {
		a.check(native.KindShaderModule, s.Module)
	}
	for _, b := range rec.BlendStates {
		a.check(native.KindBlendState, b)
	}
	if !rec.DepthStencilState.IsZero() {
		a.check(native.KindDepthStencilState, rec.DepthStencilState)
	}
	id := a.alloc(native.KindRenderPipeline)
	a.record(Call{Op: "DeviceCreateRenderPipeline", Receiver: device, Result: id, IDs: []native.ID{rec.Layout}, Desc: rec})
	return id
}

// DeviceCreateComputePipeline checks the layout and module and records the stage.
func (a *API) DeviceCreateComputePipeline(device native.ID, desc *native.ComputePipelineDescriptor) native.ID {
	a.check(native.KindDevice, device)
	a.check(native.KindPipelineLayout, desc.Layout)
	a.check(native.KindShaderModule, desc.ComputeStage.Module)
	rec := ComputePipeline{Layout: desc.Layout, ComputeStage: copyStage(&desc.ComputeStage)}
	id := a.alloc(native.KindComputePipeline)
	a.record(Call{Op: "DeviceCreateComputePipeline", Receiver: device, Result: id, IDs: []native.ID{desc.Layout}, Desc: rec})
	return id
}

// DeviceCreateTexture records the texture descriptor.
func (a *API) DeviceCreateTexture(device native.ID, desc *native.TextureDescriptor) native.ID {
	a.check(native.KindDevice, device)
	id := a.alloc(native.KindTexture)
	a.record(Call{Op: "DeviceCreateTexture", Receiver: device, Result: id, Desc: *desc})
	return id
}

// DevicePoll records the poll. Submitted work is complete on return.
func (a *API) DevicePoll(device native.ID, wait bool) {
	a.check(native.KindDevice, device)
	var w uint32
	if wait {
		w = 1
	}
	a.record(Call{Op: "DevicePoll", Receiver: device, Args: []uint32{w}})
}

// TextureCreateTextureView records the view descriptor.
func (a *API) TextureCreateTextureView(texture native.ID, desc *native.TextureViewDescriptor) native.ID {
	a.check(native.KindTexture, texture)
	id := a.alloc(native.KindTextureView)
	a.record(Call{Op: "TextureCreateTextureView", Receiver: texture, Result: id, Desc: *desc})
	return id
}

// TextureCreateDefaultTextureView allocates a view of the whole texture.
func (a *API) TextureCreateDefaultTextureView(texture native.ID) native.ID {
	a.check(native.KindTexture, texture)
	id := a.alloc(native.KindTextureView)
	a.record(Call{Op: "TextureCreateDefaultTextureView", Receiver: texture, Result: id})
	return id
}

// CommandBufferBeginRenderPass opens a render pass and records its attachments.
func (a *API) CommandBufferBeginRenderPass(commandBuffer native.ID, desc *native.RenderPassDescriptor) native.ID {
	rec := copyRenderPass(desc)
	for _, c := range rec.ColorAttachments {
		a.check(native.KindTextureView, c.Attachment)
	}
	if ds := rec.DepthStencilAttachment; ds != nil {
		a.check(native.KindTextureView, ds.Attachment)
	}
	id := a.beginPass(native.KindRenderPass, commandBuffer)
	a.record(Call{Op: "CommandBufferBeginRenderPass", Receiver: commandBuffer, Result: id, Desc: rec})
	return id
}

// CommandBufferBeginComputePass opens a compute pass.
func (a *API) CommandBufferBeginComputePass(commandBuffer native.ID) native.ID {
	id := a.beginPass(native.KindComputePass, commandBuffer)
	a.record(Call{Op: "CommandBufferBeginComputePass", Receiver: commandBuffer, Result: id})
	return id
}

// RenderPassSetPipeline records the pipeline bound to an open render pass.
func (a *API) RenderPassSetPipeline(pass, pipeline native.ID) {
	a.check(native.KindRenderPass, pass)
	a.check(native.KindRenderPipeline, pipeline)
	a.record(Call{Op: "RenderPassSetPipeline", Receiver: pass, IDs: []native.ID{pipeline}})
}

// RenderPassSetBindGroup records a bind group at index.
func (a *API) RenderPassSetBindGroup(pass native.ID, index uint32, bindGroup native.ID) {
	a.check(native.KindRenderPass, pass)
	a.check(native.KindBindGroup, bindGroup)
	a.record(Call{Op: "RenderPassSetBindGroup", Receiver: pass, IDs: []native.ID{bindGroup}, Args: []uint32{index}})
}

// RenderPassDraw records a draw.
func (a *API) RenderPassDraw(pass native.ID, vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	a.check(native.KindRenderPass, pass)
	a.record(Call{Op: "RenderPassDraw", Receiver: pass, Args: []uint32{vertexCount, instanceCount, firstVertex, firstInstance}})
}

// RenderPassEndPass closes the pass and returns its command buffer to idle.
func (a *API) RenderPassEndPass(pass native.ID) {
	a.endPass(native.KindRenderPass, pass)
	a.record(Call{Op: "RenderPassEndPass", Receiver: pass})
}

// ComputePassSetBindGroup records a bind group at index.
func (a *API) ComputePassSetBindGroup(pass native.ID, index uint32, bindGroup native.ID) {
	a.check(native.KindComputePass, pass)
	a.check(native.KindBindGroup, bindGroup)
	a.record(Call{Op: "ComputePassSetBindGroup", Receiver: pass, IDs: []native.ID{bindGroup}, Args: []uint32{index}})
}

// ComputePassSetPipeline records the pipeline bound to an open compute pass.
func (a *API) ComputePassSetPipeline(pass, pipeline native.ID) {
	a.check(native.KindComputePass, pass)
	a.check(native.KindComputePipeline, pipeline)
	a.record(Call{Op: "ComputePassSetPipeline", Receiver: pass, IDs: []native.ID{pipeline}})
}

// ComputePassDispatch records a dispatch.
func (a *API) ComputePassDispatch(pass native.ID, x, y, z uint32) {
	a.check(native.KindComputePass, pass)
	a.record(Call{Op: "ComputePassDispatch", Receiver: pass, Args: []uint32{x, y, z}})
}

// ComputePassEndPass closes the pass and returns its command buffer to idle.
func (a *API) ComputePassEndPass(pass native.ID) {
	a.endPass(native.KindComputePass, pass)
	a.record(Call{Op: "ComputePassEndPass", Receiver: pass})
}

// QueueSubmit retires the command buffer IDs in order. Each must be idle.
func (a *API) QueueSubmit(queue native.ID, commandBuffers *native.ID, commandBuffersLength uintptr) {
	a.check(native.KindQueue, queue)
	ids := slices.Clone(native.Slice(commandBuffers, commandBuffersLength))
	for i, id := range ids {
		if slices.Contains(ids[:i], id) {
			panic(fmt.Errorf("%w: %s", ErrDuplicateSubmit, id))
		}
		if obj := a.check(native.KindCommandBuffer, id); !obj.openPass.IsZero() {
			panic(fmt.Errorf("%w: %s", ErrPassOpen, id))
		}
	}
	// Submission transfers ownership: the IDs are retired here.
	for _, id := range ids {
		registry.Must(a.objs.Unregister(native.KindCommandBuffer, id))
	}
	a.record(Call{Op: "QueueSubmit", Receiver: queue, IDs: ids})
}

// Release frees id. Releasing a command buffer with an open pass panics.
func (a *API) Release(kind native.Kind, id native.ID) {
	if kind == native.KindCommandBuffer {
		if obj := a.check(kind, id); !obj.openPass.IsZero() {
			panic(fmt.Errorf("%w: %s", ErrPassOpen, id))
		}
	}
	registry.Must(a.objs.Unregister(kind, id))
	a.record(Call{Op: "Release", Receiver: id, Args: []uint32{uint32(kind)}})
}

func (a *API) beginPass(kind native.Kind, commandBuffer native.ID) native.ID {
	obj := a.check(native.KindCommandBuffer, commandBuffer)
	if !obj.openPass.IsZero() {
		panic(fmt.Errorf("%w: %s", ErrPassOpen, commandBuffer))
	}
	pass := a.objs.Register(kind, object{owner: commandBuffer})
	obj.openPass = pass
	registry.Must(struct{}{}, a.objs.Replace(native.KindCommandBuffer, commandBuffer, obj))
	return pass
}

func (a *API) endPass(kind native.Kind, pass native.ID) {
	p := registry.Must(a.objs.Unregister(kind, pass))
	obj := a.check(native.KindCommandBuffer, p.owner)
	obj.openPass = native.ID{}
	registry.Must(struct{}{}, a.objs.Replace(native.KindCommandBuffer, p.owner, obj))
}
