package wgsafe

import (
	"fmt"

	"github.com/gogpu/wgsafe/native"
)

// passCore is shared by both pass encoders. parent is non-nil exactly
// while the pass is open.
type passCore struct {
	_      noCopy
	api    native.API
	id     native.ID
	parent *CommandBuffer
}

func (p *passCore) active() native.ID {
	if p.parent == nil {
		panic(fmt.Errorf("%w: %s", ErrPassEnded, p.id))
	}
	return p.id
}

// ID returns the native pass identifier.
func (p *passCore) ID() native.ID { return p.id }

// Ended reports whether EndPass has been called.
func (p *passCore) Ended() bool { return p.parent == nil }

func (p *passCore) detach() *CommandBuffer {
	cb := p.parent
	p.parent = nil
	Logger().Debug("wgsafe: pass ended", "commandBuffer", cb.id, "pass", p.id)
	return cb.endPass()
}

// RenderPass records draw commands into a checked-out CommandBuffer.
//
// Lifecycle:
//  1. Created by CommandBuffer.BeginRenderPass
//  2. SetPipeline, SetBindGroup, Draw
//  3. EndPass returns the CommandBuffer
//
// Any use after EndPass panics with ErrPassEnded.
type RenderPass struct{ passCore }

// SetPipeline binds a render pipeline.
func (p *RenderPass) SetPipeline(pipeline *RenderPipeline) {
	p.api.RenderPassSetPipeline(p.active(), borrow(pipeline))
}

// SetBindGroup binds a bind group at index.
func (p *RenderPass) SetBindGroup(index uint32, group *BindGroup) {
	p.api.RenderPassSetBindGroup(p.active(), index, borrow(group))
}

// Draw records a non-indexed draw.
func (p *RenderPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.api.RenderPassDraw(p.active(), vertexCount, instanceCount, firstVertex, firstInstance)
}

// EndPass ends the pass and returns the CommandBuffer it checked out,
// which is Idle again.
func (p *RenderPass) EndPass() *CommandBuffer {
	p.api.RenderPassEndPass(p.active())
	return p.detach()
}

// ComputePass records dispatches into a checked-out CommandBuffer.
//
// Any use after EndPass panics with ErrPassEnded.
type ComputePass struct{ passCore }

// SetBindGroup binds a bind group at index.
func (p *ComputePass) SetBindGroup(index uint32, group *BindGroup) {
	p.api.ComputePassSetBindGroup(p.active(), index, borrow(group))
}

// SetPipeline binds a compute pipeline.
func (p *ComputePass) SetPipeline(pipeline *ComputePipeline) {
	p.api.ComputePassSetPipeline(p.active(), borrow(pipeline))
}

// Dispatch enqueues x*y*z workgroups.
func (p *ComputePass) Dispatch(x, y, z uint32) {
	p.api.ComputePassDispatch(p.active(), x, y, z)
}

// EndPass ends the pass and returns the CommandBuffer it checked out,
// which is Idle again.
func (p *ComputePass) EndPass() *CommandBuffer {
	p.api.ComputePassEndPass(p.active())
	return p.detach()
}
