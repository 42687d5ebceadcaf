package wgsafe

import (
	"fmt"

	"github.com/gogpu/wgsafe/native"
)

// CommandBufferState is the encoding state of a CommandBuffer.
type CommandBufferState int

const (
	// CommandBufferStateIdle means no pass is open. The buffer can begin a
	// pass, be submitted or be destroyed.
	CommandBufferStateIdle CommandBufferState = iota

	// CommandBufferStateRenderPassOpen means a RenderPass has checked the
	// buffer out.
	CommandBufferStateRenderPassOpen

	// CommandBufferStateComputePassOpen means a ComputePass has checked the
	// buffer out.
	CommandBufferStateComputePassOpen

	// CommandBufferStateSubmitted means the buffer was handed to a queue.
	CommandBufferStateSubmitted

	// CommandBufferStateReleased means the buffer was destroyed.
	CommandBufferStateReleased
)

// String returns the string representation of CommandBufferState.
func (s CommandBufferState) String() string {
	switch s {
	case CommandBufferStateIdle:
		return "Idle"
	case CommandBufferStateRenderPassOpen:
		return "RenderPassOpen"
	case CommandBufferStateComputePassOpen:
		return "ComputePassOpen"
	case CommandBufferStateSubmitted:
		return "Submitted"
	case CommandBufferStateReleased:
		return "Released"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// CommandBuffer records passes for submission to a Queue.
//
// State machine:
//
//	Idle            -> BeginRenderPass  -> RenderPassOpen
//	Idle            -> BeginComputePass -> ComputePassOpen
//	RenderPassOpen  -> RenderPass.EndPass  -> Idle
//	ComputePassOpen -> ComputePass.EndPass -> Idle
//	Idle            -> Queue.Submit     -> Submitted
//	Idle            -> Destroy          -> Released
//
// While a pass is open the pass encoder owns the buffer: every other
// operation panics with ErrCheckedOut. CommandBuffer is not safe for
// concurrent use.
type CommandBuffer struct {
	resource
	state CommandBufferState
}

// State returns the current encoding state.
func (cb *CommandBuffer) State() CommandBufferState { return cb.state }

// idle returns the buffer ID if the buffer can be used, and panics with
// the matching misuse error otherwise.
func (cb *CommandBuffer) idle() native.ID {
	if cb == nil {
		panic(fmt.Errorf("%w: *wgsafe.CommandBuffer", ErrNilHandle))
	}
	switch cb.state {
	case CommandBufferStateRenderPassOpen, CommandBufferStateComputePassOpen:
		panic(fmt.Errorf("%w: %s (%s)", ErrCheckedOut, cb.id, cb.state))
	case CommandBufferStateSubmitted:
		panic(ErrSubmitted)
	case CommandBufferStateReleased:
		panic(fmt.Errorf("%w: %s", ErrReleased, cb.kind))
	}
	return cb.live()
}

// BeginRenderPass checks the buffer out to a new render pass.
//
// It returns an error wrapping ErrCapacityExceeded when desc has more than
// MaxColorAttachments color attachments; the buffer stays Idle and no
// native call is made in that case.
func (cb *CommandBuffer) BeginRenderPass(desc *RenderPassDescriptor) (*RenderPass, error) {
	id := cb.idle()
	var pass native.ID
	err := marshalRenderPass(orZero(desc), func(flat *native.RenderPassDescriptor) {
		pass = cb.api.CommandBufferBeginRenderPass(id, flat)
	})
	if err != nil {
		return nil, err
	}
	cb.state = CommandBufferStateRenderPassOpen
	Logger().Debug("wgsafe: render pass begun", "commandBuffer", id, "pass", pass)
	return &RenderPass{passCore{api: cb.api, id: pass, parent: cb}}, nil
}

// BeginComputePass checks the buffer out to a new compute pass.
func (cb *CommandBuffer) BeginComputePass() *ComputePass {
	id := cb.idle()
	pass := cb.api.CommandBufferBeginComputePass(id)
	cb.state = CommandBufferStateComputePassOpen
	Logger().Debug("wgsafe: compute pass begun", "commandBuffer", id, "pass", pass)
	return &ComputePass{passCore{api: cb.api, id: pass, parent: cb}}
}

// Destroy releases a command buffer that was never submitted. It is a
// no-op after Submit or a previous Destroy and panics while a pass is
// open.
func (cb *CommandBuffer) Destroy() {
	switch cb.state {
	case CommandBufferStateSubmitted, CommandBufferStateReleased:
		return
	case CommandBufferStateRenderPassOpen, CommandBufferStateComputePassOpen:
		panic(fmt.Errorf("%w: %s (%s)", ErrCheckedOut, cb.id, cb.state))
	}
	cb.resource.Destroy()
	cb.state = CommandBufferStateReleased
}

// endPass returns the buffer from a pass encoder.
func (cb *CommandBuffer) endPass() *CommandBuffer {
	cb.state = CommandBufferStateIdle
	return cb
}

// RecordCompute begins a compute pass, runs fn with it, and ends the pass
// even if fn panics. It returns cb for chaining.
//
// Example:
//
//	cb.RecordCompute(func(p *wgsafe.ComputePass) {
//	    p.SetPipeline(pipeline)
//	    p.SetBindGroup(0, group)
//	    p.Dispatch(8, 1, 1)
//	})
func (cb *CommandBuffer) RecordCompute(fn func(*ComputePass)) *CommandBuffer {
	pass := cb.BeginComputePass()
	defer func() {
		if !pass.Ended() {
			pass.EndPass()
		}
	}()
	fn(pass)
	return cb
}

// RecordRender begins a render pass, runs fn with it, and ends the pass
// even if fn panics. The error is the one BeginRenderPass returns.
func (cb *CommandBuffer) RecordRender(desc *RenderPassDescriptor, fn func(*RenderPass)) (*CommandBuffer, error) {
	pass, err := cb.BeginRenderPass(desc)
	if err != nil {
		return cb, err
	}
	defer func() {
		if !pass.Ended() {
			pass.EndPass()
		}
	}()
	fn(pass)
	return cb, nil
}
