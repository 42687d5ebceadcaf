package wgsafe

import (
	"fmt"

	"github.com/gogpu/wgsafe/native"
)

// Submit hands command buffers to the queue in argument order.
//
// Every buffer must be Idle. A buffer with an open pass panics with
// ErrCheckedOut, a buffer listed twice panics with ErrDuplicateSubmit,
// and an already submitted buffer panics with ErrSubmitted. On return
// the buffers are Submitted and their IDs belong to the native layer.
// Submitting nothing is a no-op.
func (q *Queue) Submit(buffers ...*CommandBuffer) {
	queue := q.live()
	if len(buffers) == 0 {
		return
	}
	for i, cb := range buffers {
		cb.idle()
		for _, prev := range buffers[:i] {
			if prev == cb {
				panic(fmt.Errorf("%w: %s", ErrDuplicateSubmit, cb.id))
			}
		}
	}

	marshalSubmit(buffers, func(ids *native.ID, n uintptr) {
		q.api.QueueSubmit(queue, ids, n)
	})

	for _, cb := range buffers {
		cb.forget()
		cb.state = CommandBufferStateSubmitted
	}
	Logger().Debug("wgsafe: submitted", "queue", queue, "commandBuffers", len(buffers))
}
