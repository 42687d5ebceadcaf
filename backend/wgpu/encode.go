package wgpu

import (
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/wgsafe/internal/registry"
	"github.com/gogpu/wgsafe/native"
)

// DeviceCreateCommandBuffer creates an encoder and begins recording.
func (a *API) DeviceCreateCommandBuffer(device native.ID, desc *native.CommandBufferDescriptor) native.ID {
	dev := lookup[*deviceObj](a, native.KindDevice, device)
	label := a.label("command_buffer")
	encoder := must(dev.dev.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label}))
	check(encoder.BeginEncoding(label))
	return a.objs.Register(native.KindCommandBuffer, &commandBufferObj{dev: dev, encoder: encoder})
}

// CommandBufferBeginRenderPass begins a hal render pass on the encoder.
func (a *API) CommandBufferBeginRenderPass(commandBuffer native.ID, desc *native.RenderPassDescriptor) native.ID {
	cb := lookup[*commandBufferObj](a, native.KindCommandBuffer, commandBuffer)

	colors := native.Slice(desc.ColorAttachments, desc.ColorAttachmentsLength)
	rp := &hal.RenderPassDescriptor{
		Label:            a.label("render_pass"),
		ColorAttachments: make([]hal.RenderPassColorAttachment, len(colors)),
	}
	for i, c := range colors {
		rp.ColorAttachments[i] = hal.RenderPassColorAttachment{
			View:       lookup[*viewObj](a, native.KindTextureView, c.Attachment).view,
			LoadOp:     c.LoadOp,
			StoreOp:    c.StoreOp,
			ClearValue: c.ClearColor,
		}
	}
	if ds := desc.DepthStencilAttachment; ds != nil {
		rp.DepthStencilAttachment = &hal.RenderPassDepthStencilAttachment{
			View:              lookup[*viewObj](a, native.KindTextureView, ds.Attachment).view,
			DepthLoadOp:       ds.DepthLoadOp,
			DepthStoreOp:      ds.DepthStoreOp,
			DepthClearValue:   ds.ClearDepth,
			StencilLoadOp:     ds.StencilLoadOp,
			StencilStoreOp:    ds.StencilStoreOp,
			StencilClearValue: ds.ClearStencil,
		}
	}

	pass := cb.encoder.BeginRenderPass(rp)
	return a.objs.Register(native.KindRenderPass, &renderPassObj{pass: pass})
}

// CommandBufferBeginComputePass begins a hal compute pass on the encoder.
func (a *API) CommandBufferBeginComputePass(commandBuffer native.ID) native.ID {
	cb := lookup[*commandBufferObj](a, native.KindCommandBuffer, commandBuffer)
	pass := cb.encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: a.label("compute_pass")})
	return a.objs.Register(native.KindComputePass, &computePassObj{pass: pass})
}

// RenderPassSetPipeline binds a render pipeline.
func (a *API) RenderPassSetPipeline(pass, pipeline native.ID) {
	p := lookup[*renderPassObj](a, native.KindRenderPass, pass)
	p.pass.SetPipeline(lookup[*renderPipelineObj](a, native.KindRenderPipeline, pipeline).pipeline)
}

// RenderPassSetBindGroup binds a bind group at index.
func (a *API) RenderPassSetBindGroup(pass native.ID, index uint32, bindGroup native.ID) {
	p := lookup[*renderPassObj](a, native.KindRenderPass, pass)
	p.pass.SetBindGroup(index, lookup[*bindGroupObj](a, native.KindBindGroup, bindGroup).group, nil)
}

// RenderPassDraw encodes a draw.
func (a *API) RenderPassDraw(pass native.ID, vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p := lookup[*renderPassObj](a, native.KindRenderPass, pass)
	p.pass.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

// RenderPassEndPass ends the hal render pass.
func (a *API) RenderPassEndPass(pass native.ID) {
	p := registry.Must(a.objs.Unregister(native.KindRenderPass, pass)).(*renderPassObj)
	p.pass.End()
}

// ComputePassSetBindGroup binds a bind group at index.
func (a *API) ComputePassSetBindGroup(pass native.ID, index uint32, bindGroup native.ID) {
	p := lookup[*computePassObj](a, native.KindComputePass, pass)
	p.pass.SetBindGroup(index, lookup[*bindGroupObj](a, native.KindBindGroup, bindGroup).group, nil)
}

// ComputePassSetPipeline binds a compute pipeline.
func (a *API) ComputePassSetPipeline(pass, pipeline native.ID) {
	p := lookup[*computePassObj](a, native.KindComputePass, pass)
	p.pass.SetPipeline(lookup[*computePipelineObj](a, native.KindComputePipeline, pipeline).pipeline)
}

// ComputePassDispatch encodes a dispatch.
func (a *API) ComputePassDispatch(pass native.ID, x, y, z uint32) {
	p := lookup[*computePassObj](a, native.KindComputePass, pass)
	p.pass.Dispatch(x, y, z)
}

// ComputePassEndPass ends the hal compute pass.
func (a *API) ComputePassEndPass(pass native.ID) {
	p := registry.Must(a.objs.Unregister(native.KindComputePass, pass)).(*computePassObj)
	p.pass.End()
}
