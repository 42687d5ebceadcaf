package wgpu

import (
	"encoding/binary"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/wgsafe/native"
)

// spirvWords converts SPIR-V bytes to little-endian 32-bit words.
// Trailing bytes that do not form a full word are dropped.
func spirvWords(code []byte) []uint32 {
	words := make([]uint32, len(code)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(code[i*4:])
	}
	return words
}

func layoutEntry(b native.BindGroupLayoutBinding) gputypes.BindGroupLayoutEntry {
	entry := gputypes.BindGroupLayoutEntry{
		Binding:    b.Binding,
		Visibility: b.Visibility,
	}
	switch b.Type {
	case native.BindingTypeUniformBuffer:
		entry.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}
	case native.BindingTypeStorageBuffer:
		entry.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}
	case native.BindingTypeSampler:
		entry.Sampler = &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering}
	case native.BindingTypeSampledTexture:
		entry.Texture = &gputypes.TextureBindingLayout{
			SampleType:    gputypes.TextureSampleTypeFloat,
			ViewDimension: gputypes.TextureViewDimension2D,
		}
	}
	return entry
}

func (a *API) textureDesc(d *native.TextureDescriptor) *hal.TextureDescriptor {
	size := hal.Extent3D{
		Width:              d.Size.Width,
		Height:             d.Size.Height,
		DepthOrArrayLayers: max(d.Size.DepthOrArrayLayers, d.ArraySize, 1),
	}
	return &hal.TextureDescriptor{
		Label:         a.label("texture"),
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     d.Dimension,
		Format:        d.Format,
		Usage:         d.Usage,
	}
}

func stencilOp(op native.StencilOperation) hal.StencilOperation {
	switch op {
	case native.StencilOperationZero:
		return hal.StencilOperationZero
	case native.StencilOperationReplace:
		return hal.StencilOperationReplace
	case native.StencilOperationInvert:
		return hal.StencilOperationInvert
	case native.StencilOperationIncrementClamp:
		return hal.StencilOperationIncrementClamp
	case native.StencilOperationDecrementClamp:
		return hal.StencilOperationDecrementClamp
	case native.StencilOperationIncrementWrap:
		return hal.StencilOperationIncrementWrap
	case native.StencilOperationDecrementWrap:
		return hal.StencilOperationDecrementWrap
	default:
		return hal.StencilOperationKeep
	}
}

func stencilFace(f native.StencilStateFaceDescriptor) hal.StencilFaceState {
	compare := f.Compare
	// Zero is the undefined compare function.
	if compare == 0 {
		compare = gputypes.CompareFunctionAlways
	}
	return hal.StencilFaceState{
		Compare:     compare,
		FailOp:      stencilOp(f.StencilFail),
		DepthFailOp: stencilOp(f.DepthFail),
		PassOp:      stencilOp(f.Pass),
	}
}

func blendState(d native.BlendStateDescriptor) *gputypes.BlendState {
	if !d.BlendEnabled {
		return nil
	}
	return &gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: d.Color.SrcFactor,
			DstFactor: d.Color.DstFactor,
			Operation: d.Color.Operation,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: d.Alpha.SrcFactor,
			DstFactor: d.Alpha.DstFactor,
			Operation: d.Alpha.Operation,
		},
	}
}

// renderPipelineDesc folds stage, blend and depth-stencil records into a
// hal pipeline descriptor. Blend states pair with color attachments by
// index; attachments without a blend state write all channels unblended.
func (a *API) renderPipelineDesc(d *native.RenderPipelineDescriptor) *hal.RenderPipelineDescriptor {
	layout := lookup[*pipelineLayoutObj](a, native.KindPipelineLayout, d.Layout)

	out := &hal.RenderPipelineDescriptor{
		Label:  a.label("render_pipeline"),
		Layout: layout.layout,
		Primitive: gputypes.PrimitiveState{
			Topology: d.PrimitiveTopology,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	}

	colors := native.Slice(d.AttachmentsState.ColorAttachments, d.AttachmentsState.ColorAttachmentsLength)
	blends := native.Slice(d.BlendStates, d.BlendStatesLength)
	targets := make([]gputypes.ColorTargetState, len(colors))
	for i, c := range colors {
		targets[i] = gputypes.ColorTargetState{Format: c.Format, WriteMask: gputypes.ColorWriteMaskAll}
		if c.Samples > 1 {
			out.Multisample.Count = c.Samples
		}
		if i < len(blends) {
			b := lookup[*blendObj](a, native.KindBlendState, blends[i])
			targets[i].Blend = blendState(b.desc)
			targets[i].WriteMask = b.desc.WriteMask
		}
	}

	for _, s := range native.Slice(d.Stages, d.StagesLength) {
		module := lookup[*shaderObj](a, native.KindShaderModule, s.Module).module
		entry := native.GoString(s.EntryPoint)
		switch s.Stage {
		case native.ShaderStageVertex:
			out.Vertex = hal.VertexState{Module: module, EntryPoint: entry}
		case native.ShaderStageFragment:
			out.Fragment = &hal.FragmentState{Module: module, EntryPoint: entry, Targets: targets}
		}
	}

	if ds := d.AttachmentsState.DepthStencilAttachment; ds != nil {
		state := &hal.DepthStencilState{
			Format:       ds.Format,
			DepthCompare: gputypes.CompareFunctionAlways,
			StencilFront: stencilFace(native.StencilStateFaceDescriptor{}),
			StencilBack:  stencilFace(native.StencilStateFaceDescriptor{}),
		}
		if !d.DepthStencilState.IsZero() {
			desc := lookup[*depthStencilObj](a, native.KindDepthStencilState, d.DepthStencilState).desc
			state.DepthWriteEnabled = desc.DepthWriteEnabled
			state.DepthCompare = desc.DepthCompare
			state.StencilFront = stencilFace(desc.Front)
			state.StencilBack = stencilFace(desc.Back)
			state.StencilReadMask = desc.StencilReadMask
			state.StencilWriteMask = desc.StencilWriteMask
		}
		out.DepthStencil = state
	}
	return out
}
