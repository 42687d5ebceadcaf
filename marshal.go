package wgsafe

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/gogpu/wgsafe/native"
)

// Fixed bounds of the inline native records.
const (
	MaxPipelineStages   = 2
	MaxColorAttachments = 4
)

// Every marshal function builds the flat record, hands it to call and
// keeps its temporaries reachable until call returns. Pooled scratch is
// returned with defer, so it goes back on every exit path.

// idBuffer is resizable scratch for flattened handle lists.
type idBuffer struct {
	ids []native.ID
}

var idPool = sync.Pool{
	New: func() any { return &idBuffer{ids: make([]native.ID, 0, 8)} },
}

func getIDs() *idBuffer {
	b := idPool.Get().(*idBuffer)
	b.ids = b.ids[:0]
	return b
}

func putIDs(b *idBuffer) {
	clear(b.ids)
	idPool.Put(b)
}

func capacityError(what string, n, limit int) error {
	return fmt.Errorf("%w: %d %s, at most %d", ErrCapacityExceeded, n, what, limit)
}

func marshalShaderModule(code []byte, call func(*native.ShaderModuleDescriptor)) {
	var flat native.ShaderModuleDescriptor
	flat.Code.Bytes, flat.Code.Length = native.Ptr(code)
	call(&flat)
	runtime.KeepAlive(code)
}

func marshalBindGroupLayout(d *BindGroupLayoutDescriptor, call func(*native.BindGroupLayoutDescriptor)) {
	var flat native.BindGroupLayoutDescriptor
	flat.Bindings, flat.BindingsLength = native.Ptr(d.Bindings)
	call(&flat)
	runtime.KeepAlive(d)
}

func marshalBindGroup(d *BindGroupDescriptor, call func(*native.BindGroupDescriptor)) {
	bindings := make([]native.Binding, len(d.Bindings))
	for i, b := range d.Bindings {
		bindings[i] = native.Binding{
			Binding:     b.Binding,
			TextureView: borrow(b.TextureView),
		}
	}
	flat := native.BindGroupDescriptor{Layout: borrow(d.Layout)}
	flat.Bindings, flat.BindingsLength = native.Ptr(bindings)
	call(&flat)
	runtime.KeepAlive(bindings)
}

func marshalPipelineLayout(d *PipelineLayoutDescriptor, call func(*native.PipelineLayoutDescriptor)) {
	layouts := getIDs()
	defer putIDs(layouts)
	for _, l := range d.BindGroupLayouts {
		layouts.ids = append(layouts.ids, borrow(l))
	}
	var flat native.PipelineLayoutDescriptor
	flat.BindGroupLayouts, flat.BindGroupLayoutsLength = native.Ptr(layouts.ids)
	call(&flat)
	runtime.KeepAlive(layouts)
}

// flattenStage returns the native stage and the NUL-terminated entry point
// it points into. The caller keeps the buffer alive across the call.
// An entry point with a NUL byte panics with ErrInvalidEntryPoint.
func flattenStage(s *PipelineStageDescriptor) (native.PipelineStageDescriptor, []byte) {
	if strings.IndexByte(s.EntryPoint, 0) >= 0 {
		panic(fmt.Errorf("%w: %q", ErrInvalidEntryPoint, s.EntryPoint))
	}
	entry := native.CString(s.EntryPoint)
	return native.PipelineStageDescriptor{
		Module:     borrow(s.Module),
		Stage:      s.Stage,
		EntryPoint: &entry[0],
	}, entry
}

func marshalRenderPipeline(d *RenderPipelineDescriptor, call func(*native.RenderPipelineDescriptor)) error {
	if len(d.Stages) > MaxPipelineStages {
		return capacityError("pipeline stages", len(d.Stages), MaxPipelineStages)
	}

	var (
		stages  [MaxPipelineStages]native.PipelineStageDescriptor
		entries [MaxPipelineStages][]byte
	)
	for i := range d.Stages {
		stages[i], entries[i] = flattenStage(&d.Stages[i])
	}

	blends := getIDs()
	defer putIDs(blends)
	for _, b := range d.BlendStates {
		blends.ids = append(blends.ids, borrow(b))
	}

	flat := native.RenderPipelineDescriptor{
		Layout:            borrow(d.Layout),
		PrimitiveTopology: d.PrimitiveTopology,
		DepthStencilState: borrowOptional(d.DepthStencilState),
	}
	if n := len(d.Stages); n > 0 {
		flat.Stages = &stages[0]
		flat.StagesLength = uintptr(n)
	}
	flat.BlendStates, flat.BlendStatesLength = native.Ptr(blends.ids)

	colors := d.AttachmentsState.ColorAttachments
	flat.AttachmentsState.ColorAttachments, flat.AttachmentsState.ColorAttachmentsLength = native.Ptr(colors)
	var depth native.Attachment
	if ds := d.AttachmentsState.DepthStencilAttachment; ds != nil {
		depth = *ds
		flat.AttachmentsState.DepthStencilAttachment = &depth
	}

	call(&flat)
	runtime.KeepAlive(&stages)
	runtime.KeepAlive(&entries)
	runtime.KeepAlive(colors)
	runtime.KeepAlive(&depth)
	return nil
}

func marshalComputePipeline(d *ComputePipelineDescriptor, call func(*native.ComputePipelineDescriptor)) {
	stage, entry := flattenStage(&d.ComputeStage)
	flat := native.ComputePipelineDescriptor{
		Layout:       borrow(d.Layout),
		ComputeStage: stage,
	}
	call(&flat)
	runtime.KeepAlive(entry)
}

func marshalRenderPass(d *RenderPassDescriptor, call func(*native.RenderPassDescriptor)) error {
	if len(d.ColorAttachments) > MaxColorAttachments {
		return capacityError("color attachments", len(d.ColorAttachments), MaxColorAttachments)
	}

	var colors [MaxColorAttachments]native.RenderPassColorAttachmentDescriptor
	for i, c := range d.ColorAttachments {
		colors[i] = native.RenderPassColorAttachmentDescriptor{
			Attachment: borrow(c.Attachment),
			LoadOp:     c.LoadOp,
			StoreOp:    c.StoreOp,
			ClearColor: c.ClearColor,
		}
	}

	var flat native.RenderPassDescriptor
	if n := len(d.ColorAttachments); n > 0 {
		flat.ColorAttachments = &colors[0]
		flat.ColorAttachmentsLength = uintptr(n)
	}

	var depth native.RenderPassDepthStencilAttachmentDescriptor
	if ds := d.DepthStencilAttachment; ds != nil {
		depth = native.RenderPassDepthStencilAttachmentDescriptor{
			Attachment:     borrow(ds.Attachment),
			DepthLoadOp:    ds.DepthLoadOp,
			DepthStoreOp:   ds.DepthStoreOp,
			ClearDepth:     ds.ClearDepth,
			StencilLoadOp:  ds.StencilLoadOp,
			StencilStoreOp: ds.StencilStoreOp,
			ClearStencil:   ds.ClearStencil,
		}
		flat.DepthStencilAttachment = &depth
	}

	call(&flat)
	runtime.KeepAlive(&colors)
	runtime.KeepAlive(&depth)
	return nil
}

// marshalSubmit flattens command buffer IDs in argument order.
func marshalSubmit(buffers []*CommandBuffer, call func(*native.ID, uintptr)) {
	buf := getIDs()
	defer putIDs(buf)
	for _, cb := range buffers {
		buf.ids = append(buf.ids, cb.ID())
	}
	p, n := native.Ptr(buf.ids)
	call(p, n)
	runtime.KeepAlive(buf)
}
