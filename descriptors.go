package wgsafe

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/wgsafe/native"
)

// Plain descriptors have the same shape on both sides of the boundary.
type (
	AdapterDescriptor           = native.AdapterDescriptor
	DeviceDescriptor            = native.DeviceDescriptor
	Extensions                  = native.Extensions
	CommandBufferDescriptor     = native.CommandBufferDescriptor
	BindGroupLayoutBinding      = native.BindGroupLayoutBinding
	BlendDescriptor             = native.BlendDescriptor
	BlendStateDescriptor        = native.BlendStateDescriptor
	StencilStateFaceDescriptor  = native.StencilStateFaceDescriptor
	DepthStencilStateDescriptor = native.DepthStencilStateDescriptor
	Attachment                  = native.Attachment
	TextureDescriptor           = native.TextureDescriptor
	TextureViewDescriptor       = native.TextureViewDescriptor

	ShaderStage      = native.ShaderStage
	StencilOperation = native.StencilOperation
	BindingType      = native.BindingType
)

const (
	ShaderStageVertex   = native.ShaderStageVertex
	ShaderStageFragment = native.ShaderStageFragment
	ShaderStageCompute  = native.ShaderStageCompute

	StencilOperationKeep           = native.StencilOperationKeep
	StencilOperationZero           = native.StencilOperationZero
	StencilOperationReplace        = native.StencilOperationReplace
	StencilOperationInvert         = native.StencilOperationInvert
	StencilOperationIncrementClamp = native.StencilOperationIncrementClamp
	StencilOperationDecrementClamp = native.StencilOperationDecrementClamp
	StencilOperationIncrementWrap  = native.StencilOperationIncrementWrap
	StencilOperationDecrementWrap  = native.StencilOperationDecrementWrap

	BindingTypeUniformBuffer  = native.BindingTypeUniformBuffer
	BindingTypeSampler        = native.BindingTypeSampler
	BindingTypeSampledTexture = native.BindingTypeSampledTexture
	BindingTypeStorageBuffer  = native.BindingTypeStorageBuffer
)

// BindGroupLayoutDescriptor lists the slots of a bind group layout.
type BindGroupLayoutDescriptor struct {
	Bindings []BindGroupLayoutBinding
}

// Binding attaches a texture view to one bind group slot.
type Binding struct {
	Binding     uint32
	TextureView *TextureView
}

// BindGroupDescriptor describes a bind group.
type BindGroupDescriptor struct {
	Layout   *BindGroupLayout
	Bindings []Binding
}

// PipelineLayoutDescriptor lists the bind group layouts of a pipeline.
type PipelineLayoutDescriptor struct {
	BindGroupLayouts []*BindGroupLayout
}

// PipelineStageDescriptor names a shader entry point.
type PipelineStageDescriptor struct {
	Module     *ShaderModule
	Stage      ShaderStage
	EntryPoint string
}

// AttachmentsState lists the render targets of a pipeline.
type AttachmentsState struct {
	ColorAttachments []Attachment

	// DepthStencilAttachment is nil when the pipeline renders without a
	// depth target.
	DepthStencilAttachment *Attachment
}

// RenderPipelineDescriptor describes a render pipeline.
// At most two stages are accepted.
type RenderPipelineDescriptor struct {
	Layout            *PipelineLayout
	Stages            []PipelineStageDescriptor
	PrimitiveTopology gputypes.PrimitiveTopology
	AttachmentsState  AttachmentsState
	BlendStates       []*BlendState

	// DepthStencilState is optional.
	DepthStencilState *DepthStencilState
}

// ComputePipelineDescriptor describes a compute pipeline.
type ComputePipelineDescriptor struct {
	Layout       *PipelineLayout
	ComputeStage PipelineStageDescriptor
}

// RenderPassColorAttachmentDescriptor is one color target of a render pass.
type RenderPassColorAttachmentDescriptor struct {
	Attachment *TextureView
	LoadOp     gputypes.LoadOp
	StoreOp    gputypes.StoreOp
	ClearColor gputypes.Color
}

// RenderPassDepthStencilAttachmentDescriptor is the depth target of a
// render pass.
type RenderPassDepthStencilAttachmentDescriptor struct {
	Attachment     *TextureView
	DepthLoadOp    gputypes.LoadOp
	DepthStoreOp   gputypes.StoreOp
	ClearDepth     float32
	StencilLoadOp  gputypes.LoadOp
	StencilStoreOp gputypes.StoreOp
	ClearStencil   uint32
}

// RenderPassDescriptor describes a render pass.
// At most four color attachments are accepted.
type RenderPassDescriptor struct {
	ColorAttachments       []RenderPassColorAttachmentDescriptor
	DepthStencilAttachment *RenderPassDepthStencilAttachmentDescriptor
}
