package trace

import (
	"errors"
	"testing"

	"github.com/gogpu/wgsafe/backend"
	"github.com/gogpu/wgsafe/internal/registry"
	"github.com/gogpu/wgsafe/native"
)

func expectPanic(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic wrapping %v", target)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, target) {
			t.Fatalf("panic = %v, want error wrapping %v", r, target)
		}
	}()
	fn()
}

func newDevice(t *testing.T) (*API, native.ID) {
	t.Helper()
	api := New()
	inst := api.CreateInstance()
	adapter := api.InstanceGetAdapter(inst, &native.AdapterDescriptor{})
	return api, api.AdapterCreateDevice(adapter, &native.DeviceDescriptor{})
}

func TestRecordsCalls(t *testing.T) {
	api, dev := newDevice(t)
	q := api.DeviceGetQueue(dev)

	want := []string{"CreateInstance", "InstanceGetAdapter", "AdapterCreateDevice", "DeviceGetQueue"}
	got := api.Ops()
	if len(got) != len(want) {
		t.Fatalf("Ops() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Ops()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	c := api.CallsOf("DeviceGetQueue")[0]
	if c.Receiver != dev || c.Result != q {
		t.Errorf("DeviceGetQueue call = %v", c)
	}
	if c.String() == "" {
		t.Error("Call.String() should not be empty")
	}
}

func TestCheckKind(t *testing.T) {
	api, dev := newDevice(t)
	expectPanic(t, registry.ErrKindMismatch, func() {
		api.DeviceGetQueue(api.DeviceGetQueue(dev))
	})
	expectPanic(t, registry.ErrUnknownID, func() {
		api.DeviceGetQueue(native.NewID(1000))
	})
}

func TestDoubleRelease(t *testing.T) {
	api, dev := newDevice(t)
	tex := api.DeviceCreateTexture(dev, &native.TextureDescriptor{})
	api.Release(native.KindTexture, tex)
	expectPanic(t, registry.ErrUnknownID, func() {
		api.Release(native.KindTexture, tex)
	})
}

func TestPassExclusive(t *testing.T) {
	api, dev := newDevice(t)
	cb := api.DeviceCreateCommandBuffer(dev, &native.CommandBufferDescriptor{})
	pass := api.CommandBufferBeginComputePass(cb)

	expectPanic(t, ErrPassOpen, func() { api.CommandBufferBeginComputePass(cb) })
	expectPanic(t, ErrPassOpen, func() { api.Release(native.KindCommandBuffer, cb) })

	api.ComputePassDispatch(pass, 8, 1, 1)
	api.ComputePassEndPass(pass)
	if api.IsLive(pass) {
		t.Error("pass ID should be released by EndPass")
	}
	if d := api.CallsOf("ComputePassDispatch")[0]; d.Args[0] != 8 || d.Args[1] != 1 || d.Args[2] != 1 {
		t.Errorf("dispatch args = %v", d.Args)
	}

	api.CommandBufferBeginComputePass(cb)
}

func TestSubmitTransfersOwnership(t *testing.T) {
	api, dev := newDevice(t)
	q := api.DeviceGetQueue(dev)
	a := api.DeviceCreateCommandBuffer(dev, &native.CommandBufferDescriptor{})
	b := api.DeviceCreateCommandBuffer(dev, &native.CommandBufferDescriptor{})

	ids := []native.ID{a, a}
	expectPanic(t, ErrDuplicateSubmit, func() { api.QueueSubmit(q, &ids[0], 2) })

	ids = []native.ID{b, a}
	api.QueueSubmit(q, &ids[0], 2)
	if api.LiveOf(native.KindCommandBuffer) != 0 {
		t.Error("submitted command buffers should be retired")
	}
	sub := api.CallsOf("QueueSubmit")[0]
	if len(sub.IDs) != 2 || sub.IDs[0] != b || sub.IDs[1] != a {
		t.Errorf("submit IDs = %v, want [%s %s]", sub.IDs, b, a)
	}
}

func TestRenderPipelineCopy(t *testing.T) {
	api, dev := newDevice(t)
	mod := api.DeviceCreateShaderModule(dev, &native.ShaderModuleDescriptor{})
	layout := api.DeviceCreatePipelineLayout(dev, &native.PipelineLayoutDescriptor{})

	entry := native.CString("vs_main")
	stages := []native.PipelineStageDescriptor{{Module: mod, Stage: native.ShaderStageVertex, EntryPoint: &entry[0]}}
	api.DeviceCreateRenderPipeline(dev, &native.RenderPipelineDescriptor{
		Layout:       layout,
		Stages:       &stages[0],
		StagesLength: 1,
	})

	entry[0] = 'X' // the record must not alias caller memory
	rec := api.CallsOf("DeviceCreateRenderPipeline")[0].Desc.(RenderPipeline)
	if len(rec.Stages) != 1 || rec.Stages[0].EntryPoint != "vs_main" {
		t.Errorf("stages = %+v", rec.Stages)
	}
	if rec.DepthStencilAttachment != nil || !rec.DepthStencilState.IsZero() {
		t.Error("absent depth-stencil should stay absent")
	}
}

func TestReset(t *testing.T) {
	api, _ := newDevice(t)
	api.Reset()
	if len(api.Calls()) != 0 {
		t.Error("Reset should clear the log")
	}
	if api.Live() != 3 {
		t.Errorf("Live() = %d, want 3", api.Live())
	}
}

func TestRegistered(t *testing.T) {
	api, ok := backend.Get(backend.BackendTrace).(*API)
	if !ok {
		t.Fatal("trace backend should be registered as a *trace.API")
	}
	if api.Live() != 0 || len(api.Calls()) != 0 {
		t.Error("each Get should return a fresh recorder")
	}
}
