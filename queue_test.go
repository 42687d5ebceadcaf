package wgsafe

import (
	"testing"

	"github.com/gogpu/wgsafe/native"
)

func TestSubmitPreservesOrder(t *testing.T) {
	f := newFixture(t)
	q := f.device.Queue()
	a := f.device.CreateCommandBuffer(nil)
	b := f.device.CreateCommandBuffer(nil)
	c := f.device.CreateCommandBuffer(nil)
	want := []native.ID{a.ID(), b.ID(), c.ID()}

	q.Submit(a, b, c)

	calls := f.api.CallsOf("QueueSubmit")
	if len(calls) != 1 {
		t.Fatalf("QueueSubmit calls = %d, want 1", len(calls))
	}
	got := calls[0].IDs
	if len(got) != 3 {
		t.Fatalf("submitted %d buffers, want 3", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("buffer %d = %s, want %s", i, got[i], want[i])
		}
	}
	for _, cb := range []*CommandBuffer{a, b, c} {
		if cb.State() != CommandBufferStateSubmitted {
			t.Errorf("state = %s, want Submitted", cb.State())
		}
	}
}

func TestSubmitTransfersOwnership(t *testing.T) {
	f := newFixture(t)
	q := f.device.Queue()
	cb := f.device.CreateCommandBuffer(nil)

	q.Submit(cb)
	// Destroy after submit must not release the ID a second time.
	cb.Destroy()

	if n := len(f.api.CallsOf("Release")); n != 0 {
		t.Errorf("Release calls = %d, want 0", n)
	}
	if f.api.LiveOf(native.KindCommandBuffer) != 0 {
		t.Error("submitted buffer should belong to the native layer")
	}
}

func TestSubmitMisuse(t *testing.T) {
	f := newFixture(t)
	q := f.device.Queue()

	t.Run("duplicate", func(t *testing.T) {
		cb := f.device.CreateCommandBuffer(nil)
		expectPanic(t, ErrDuplicateSubmit, func() { q.Submit(cb, cb) })
		if cb.State() != CommandBufferStateIdle {
			t.Errorf("state = %s, want Idle", cb.State())
		}
	})
	t.Run("resubmit", func(t *testing.T) {
		cb := f.device.CreateCommandBuffer(nil)
		q.Submit(cb)
		expectPanic(t, ErrSubmitted, func() { q.Submit(cb) })
	})
	t.Run("nil", func(t *testing.T) {
		expectPanic(t, ErrNilHandle, func() { q.Submit(nil) })
	})
	t.Run("released queue", func(t *testing.T) {
		q2 := f.device.Queue()
		q2.Destroy()
		expectPanic(t, ErrReleased, func() { q2.Submit(f.device.CreateCommandBuffer(nil)) })
	})
}

func TestSubmitEmpty(t *testing.T) {
	f := newFixture(t)
	q := f.device.Queue()
	q.Submit()
	if n := len(f.api.CallsOf("QueueSubmit")); n != 0 {
		t.Errorf("empty submit made %d native calls", n)
	}
}
