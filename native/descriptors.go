package native

import "github.com/gogpu/gputypes"

// ShaderStage selects the single pipeline stage a shader entry point runs in.
type ShaderStage uint32

const (
	ShaderStageVertex ShaderStage = iota
	ShaderStageFragment
	ShaderStageCompute
)

// String returns the stage name.
func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "Vertex"
	case ShaderStageFragment:
		return "Fragment"
	case ShaderStageCompute:
		return "Compute"
	default:
		return "Unknown"
	}
}

// Visibility returns the gputypes stage mask for s.
func (s ShaderStage) Visibility() gputypes.ShaderStages {
	switch s {
	case ShaderStageVertex:
		return gputypes.ShaderStageVertex
	case ShaderStageFragment:
		return gputypes.ShaderStageFragment
	default:
		return gputypes.ShaderStageCompute
	}
}

// StencilOperation is the action taken on a stencil value.
type StencilOperation uint32

const (
	StencilOperationKeep StencilOperation = iota
	StencilOperationZero
	StencilOperationReplace
	StencilOperationInvert
	StencilOperationIncrementClamp
	StencilOperationDecrementClamp
	StencilOperationIncrementWrap
	StencilOperationDecrementWrap
)

// BindingType is the resource class a bind group layout slot accepts.
type BindingType uint32

const (
	BindingTypeUniformBuffer BindingType = iota
	BindingTypeSampler
	BindingTypeSampledTexture
	BindingTypeStorageBuffer
)

// AdapterDescriptor selects an adapter.
type AdapterDescriptor struct {
	PowerPreference gputypes.PowerPreference
}

// Extensions lists optional device features.
type Extensions struct {
	AnisotropicFiltering bool
}

// DeviceDescriptor configures device creation.
type DeviceDescriptor struct {
	Extensions Extensions
}

// ByteArray is a borrowed byte sequence.
type ByteArray struct {
	Bytes  *byte
	Length uintptr
}

// ShaderModuleDescriptor carries SPIR-V code.
type ShaderModuleDescriptor struct {
	Code ByteArray
}

// CommandBufferDescriptor configures command buffer creation.
type CommandBufferDescriptor struct{}

// BindGroupLayoutBinding describes one slot of a bind group layout.
type BindGroupLayoutBinding struct {
	Binding    uint32
	Visibility gputypes.ShaderStages
	Type       BindingType
}

// BindGroupLayoutDescriptor lists layout slots.
type BindGroupLayoutDescriptor struct {
	Bindings       *BindGroupLayoutBinding
	BindingsLength uintptr
}

// Binding attaches a texture view to a bind group slot.
type Binding struct {
	Binding     uint32
	TextureView ID
}

// BindGroupDescriptor lists the resources of a bind group.
type BindGroupDescriptor struct {
	Layout         ID
	Bindings       *Binding
	BindingsLength uintptr
}

// PipelineLayoutDescriptor lists the bind group layouts of a pipeline.
type PipelineLayoutDescriptor struct {
	BindGroupLayouts       *ID
	BindGroupLayoutsLength uintptr
}

// BlendDescriptor is one blend equation.
type BlendDescriptor struct {
	SrcFactor gputypes.BlendFactor
	DstFactor gputypes.BlendFactor
	Operation gputypes.BlendOperation
}

// BlendStateDescriptor configures a blend state object.
type BlendStateDescriptor struct {
	BlendEnabled bool
	Alpha        BlendDescriptor
	Color        BlendDescriptor
	WriteMask    gputypes.ColorWriteMask
}

// StencilStateFaceDescriptor is the stencil test of one face.
type StencilStateFaceDescriptor struct {
	Compare     gputypes.CompareFunction
	StencilFail StencilOperation
	DepthFail   StencilOperation
	Pass        StencilOperation
}

// DepthStencilStateDescriptor configures a depth-stencil state object.
type DepthStencilStateDescriptor struct {
	DepthWriteEnabled bool
	DepthCompare      gputypes.CompareFunction
	Front             StencilStateFaceDescriptor
	Back              StencilStateFaceDescriptor
	StencilReadMask   uint32
	StencilWriteMask  uint32
}

// PipelineStageDescriptor names one shader entry point.
// EntryPoint is NUL-terminated.
type PipelineStageDescriptor struct {
	Module     ID
	Stage      ShaderStage
	EntryPoint *byte
}

// Attachment is the format and sample count of a render target.
type Attachment struct {
	Format  gputypes.TextureFormat
	Samples uint32
}

// AttachmentsState lists the render targets of a pipeline.
// DepthStencilAttachment is nil when the pipeline has no depth target.
type AttachmentsState struct {
	ColorAttachments       *Attachment
	ColorAttachmentsLength uintptr
	DepthStencilAttachment *Attachment
}

// RenderPipelineDescriptor configures a render pipeline.
// DepthStencilState is the zero ID when depth testing is off.
type RenderPipelineDescriptor struct {
	Layout            ID
	Stages            *PipelineStageDescriptor
	StagesLength      uintptr
	PrimitiveTopology gputypes.PrimitiveTopology
	AttachmentsState  AttachmentsState
	BlendStates       *ID
	BlendStatesLength uintptr
	DepthStencilState ID
}

// ComputePipelineDescriptor configures a compute pipeline.
type ComputePipelineDescriptor struct {
	Layout       ID
	ComputeStage PipelineStageDescriptor
}

// TextureDescriptor configures a texture.
type TextureDescriptor struct {
	Size      gputypes.Extent3D
	ArraySize uint32
	Dimension gputypes.TextureDimension
	Format    gputypes.TextureFormat
	Usage     gputypes.TextureUsage
}

// TextureViewDescriptor configures a texture view.
type TextureViewDescriptor struct {
	Format         gputypes.TextureFormat
	Dimension      gputypes.TextureViewDimension
	Aspect         gputypes.TextureAspect
	BaseMipLevel   uint32
	LevelCount     uint32
	BaseArrayLayer uint32
	ArrayCount     uint32
}

// RenderPassColorAttachmentDescriptor is one color target of a render pass.
type RenderPassColorAttachmentDescriptor struct {
	Attachment ID
	LoadOp     gputypes.LoadOp
	StoreOp    gputypes.StoreOp
	ClearColor gputypes.Color
}

// RenderPassDepthStencilAttachmentDescriptor is the depth target of a
// render pass.
type RenderPassDepthStencilAttachmentDescriptor struct {
	Attachment     ID
	DepthLoadOp    gputypes.LoadOp
	DepthStoreOp   gputypes.StoreOp
	ClearDepth     float32
	StencilLoadOp  gputypes.LoadOp
	StencilStoreOp gputypes.StoreOp
	ClearStencil   uint32
}

// RenderPassDescriptor configures a render pass.
// DepthStencilAttachment is nil when the pass has no depth target.
type RenderPassDescriptor struct {
	ColorAttachments       *RenderPassColorAttachmentDescriptor
	ColorAttachmentsLength uintptr
	DepthStencilAttachment *RenderPassDepthStencilAttachmentDescriptor
}
