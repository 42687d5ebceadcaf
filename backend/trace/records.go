package trace

import (
	"slices"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/wgsafe/native"
)

// Go-owned copies of flattened descriptors, stored in Call.Desc.

// ShaderModule is a copied native.ShaderModuleDescriptor.
type ShaderModule struct {
	Code []byte
}

// BindGroupLayout is a copied native.BindGroupLayoutDescriptor.
type BindGroupLayout struct {
	Bindings []native.BindGroupLayoutBinding
}

// BindGroup is a copied native.BindGroupDescriptor.
type BindGroup struct {
	Layout   native.ID
	Bindings []native.Binding
}

// PipelineLayout is a copied native.PipelineLayoutDescriptor.
type PipelineLayout struct {
	BindGroupLayouts []native.ID
}

// Stage is a copied native.PipelineStageDescriptor.
type Stage struct {
	Module     native.ID
	Stage      native.ShaderStage
	EntryPoint string
}

// RenderPipeline is a copied native.RenderPipelineDescriptor.
type RenderPipeline struct {
	Layout                 native.ID
	Stages                 []Stage
	PrimitiveTopology      gputypes.PrimitiveTopology
	ColorAttachments       []native.Attachment
	DepthStencilAttachment *native.Attachment
	BlendStates            []native.ID
	DepthStencilState      native.ID
}

// ComputePipeline is a copied native.ComputePipelineDescriptor.
type ComputePipeline struct {
	Layout       native.ID
	ComputeStage Stage
}

// RenderPass is a copied native.RenderPassDescriptor.
type RenderPass struct {
	ColorAttachments       []native.RenderPassColorAttachmentDescriptor
	DepthStencilAttachment *native.RenderPassDepthStencilAttachmentDescriptor
}

func copyStage(s *native.PipelineStageDescriptor) Stage {
	return Stage{
		Module:     s.Module,
		Stage:      s.Stage,
		EntryPoint: native.GoString(s.EntryPoint),
	}
}

func copyRenderPipeline(d *native.RenderPipelineDescriptor) RenderPipeline {
	out := RenderPipeline{
		Layout:            d.Layout,
		PrimitiveTopology: d.PrimitiveTopology,
		ColorAttachments:  slices.Clone(native.Slice(d.AttachmentsState.ColorAttachments, d.AttachmentsState.ColorAttachmentsLength)),
		BlendStates:       slices.Clone(native.Slice(d.BlendStates, d.BlendStatesLength)),
		DepthStencilState: d.DepthStencilState,
	}
	for _, s := range native.Slice(d.Stages, d.StagesLength) {
		out.Stages = append(out.Stages, copyStage(&s))
	}
	if ds := d.AttachmentsState.DepthStencilAttachment; ds != nil {
		v := *ds
		out.DepthStencilAttachment = &v
	}
	return out
}

func copyRenderPass(d *native.RenderPassDescriptor) RenderPass {
	out := RenderPass{
		ColorAttachments: slices.Clone(native.Slice(d.ColorAttachments, d.ColorAttachmentsLength)),
	}
	if ds := d.DepthStencilAttachment; ds != nil {
		v := *ds
		out.DepthStencilAttachment = &v
	}
	return out
}
