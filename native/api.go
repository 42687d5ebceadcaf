package native

// API is the flat entry-point table of a native GPU implementation.
//
// Every creation method returns a fresh, non-zero ID. Pointer arguments
// are borrowed for the duration of the call only. Ending a pass releases
// the pass ID; submitting a command buffer transfers its ID to the
// implementation. Any other ID is released exactly once through Release.
type API interface {
	CreateInstance() ID
	InstanceGetAdapter(instance ID, desc *AdapterDescriptor) ID
	AdapterCreateDevice(adapter ID, desc *DeviceDescriptor) ID

	DeviceCreateShaderModule(device ID, desc *ShaderModuleDescriptor) ID
	DeviceGetQueue(device ID) ID
	DeviceCreateCommandBuffer(device ID, desc *CommandBufferDescriptor) ID
	DeviceCreateBindGroupLayout(device ID, desc *BindGroupLayoutDescriptor) ID
	DeviceCreateBindGroup(device ID, desc *BindGroupDescriptor) ID
	DeviceCreatePipelineLayout(device ID, desc *PipelineLayoutDescriptor) ID
	DeviceCreateBlendState(device ID, desc *BlendStateDescriptor) ID
	DeviceCreateDepthStencilState(device ID, desc *DepthStencilStateDescriptor) ID
	DeviceCreateRenderPipeline(device ID, desc *RenderPipelineDescriptor) ID
	DeviceCreateComputePipeline(device ID, desc *ComputePipelineDescriptor) ID
	DeviceCreateTexture(device ID, desc *TextureDescriptor) ID
	DevicePoll(device ID, wait bool)

	TextureCreateTextureView(texture ID, desc *TextureViewDescriptor) ID
	TextureCreateDefaultTextureView(texture ID) ID

	CommandBufferBeginRenderPass(commandBuffer ID, desc *RenderPassDescriptor) ID
	CommandBufferBeginComputePass(commandBuffer ID) ID

	RenderPassSetPipeline(pass, pipeline ID)
	RenderPassSetBindGroup(pass ID, index uint32, bindGroup ID)
	RenderPassDraw(pass ID, vertexCount, instanceCount, firstVertex, firstInstance uint32)
	RenderPassEndPass(pass ID)

	ComputePassSetBindGroup(pass ID, index uint32, bindGroup ID)
	ComputePassSetPipeline(pass, pipeline ID)
	ComputePassDispatch(pass ID, x, y, z uint32)
	ComputePassEndPass(pass ID)

	QueueSubmit(queue ID, commandBuffers *ID, commandBuffersLength uintptr)

	Release(kind Kind, id ID)
}
