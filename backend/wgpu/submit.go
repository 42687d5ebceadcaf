package wgpu

import (
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/wgsafe/internal/registry"
	"github.com/gogpu/wgsafe/native"
)

// submission is work handed to a hal queue that has not been observed
// complete yet.
type submission struct {
	fence   hal.Fence
	buffers []hal.CommandBuffer
}

// fenceValue is signalled by every submission on its own fence.
const fenceValue = 1

// QueueSubmit finishes the encoders and submits them behind a new fence.
func (a *API) QueueSubmit(queue native.ID, commandBuffers *native.ID, commandBuffersLength uintptr) {
	q := lookup[*queueObj](a, native.KindQueue, queue)
	ids := native.Slice(commandBuffers, commandBuffersLength)
	if len(ids) == 0 {
		return
	}

	// Ownership moves here: the IDs are retired before any hal work so a
	// failing submit cannot leave them half-alive.
	encoders := make([]hal.CommandEncoder, len(ids))
	for i, id := range ids {
		cb := registry.Must(a.objs.Unregister(native.KindCommandBuffer, id)).(*commandBufferObj)
		encoders[i] = cb.encoder
	}

	dev := q.dev
	buffers := make([]hal.CommandBuffer, len(encoders))
	for i, enc := range encoders {
		buffers[i] = must(enc.EndEncoding())
	}
	fence := must(dev.dev.CreateFence())
	check(dev.queue.Submit(buffers, fence, fenceValue))

	dev.mu.Lock()
	dev.pending = append(dev.pending, submission{fence: fence, buffers: buffers})
	dev.mu.Unlock()
	slogger().Debug("wgpu: submitted", "commandBuffers", len(buffers))
}

// poll frees every submission whose fence has signalled. With wait set it
// blocks up to the configured timeout per submission.
func (a *API) poll(dev *deviceObj, wait bool) {
	dev.mu.Lock()
	pending := dev.pending
	dev.pending = nil
	dev.mu.Unlock()

	var timeout = a.opts.waitTimeout
	if !wait {
		timeout = 0
	}

	var still []submission
	for _, s := range pending {
		done, err := dev.dev.Wait(s.fence, fenceValue, timeout)
		if err != nil {
			slogger().Warn("wgpu: fence wait failed", "error", err)
		}
		if !done {
			still = append(still, s)
			continue
		}
		for _, buf := range s.buffers {
			dev.dev.FreeCommandBuffer(buf)
		}
		dev.dev.DestroyFence(s.fence)
	}

	if len(still) > 0 {
		if wait {
			slogger().Warn("wgpu: submissions still pending after wait", "count", len(still))
		}
		dev.mu.Lock()
		dev.pending = append(still, dev.pending...)
		dev.mu.Unlock()
	}
}
