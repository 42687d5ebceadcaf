package wgsafe

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/wgsafe/backend/trace"
)

// spirvStub is a minimal SPIR-V header (magic, version, generator, bound,
// schema). The trace backend stores it without interpreting it.
var spirvStub = []byte{
	0x03, 0x02, 0x23, 0x07,
	0x00, 0x03, 0x01, 0x00,
	0x00, 0x00, 0x00, 0x00,
	0x01, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
}

type fixture struct {
	api    *trace.API
	inst   *Instance
	device *Device
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	api := trace.New()
	inst := NewInstance(api)
	adapter := inst.RequestAdapter(&AdapterDescriptor{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	device := adapter.CreateDevice(&DeviceDescriptor{})
	return &fixture{api: api, inst: inst, device: device}
}

// view creates a texture and its default view.
func (f *fixture) view(t *testing.T) *TextureView {
	t.Helper()
	tex := f.device.CreateTexture(&TextureDescriptor{
		Size:      gputypes.Extent3D{Width: 64, Height: 64, DepthOrArrayLayers: 1},
		ArraySize: 1,
		Dimension: gputypes.TextureDimension2D,
		Format:    gputypes.TextureFormatRGBA8Unorm,
		Usage:     gputypes.TextureUsageRenderAttachment,
	})
	return tex.CreateDefaultView()
}

// computePipeline creates a pipeline layout, bind group and compute
// pipeline with entry point "main".
func (f *fixture) computePipeline(t *testing.T) (*ComputePipeline, *BindGroup) {
	t.Helper()
	layout := f.device.CreateBindGroupLayout(&BindGroupLayoutDescriptor{
		Bindings: []BindGroupLayoutBinding{{
			Binding:    0,
			Visibility: gputypes.ShaderStageCompute,
			Type:       BindingTypeSampledTexture,
		}},
	})
	group := f.device.CreateBindGroup(&BindGroupDescriptor{
		Layout:   layout,
		Bindings: []Binding{{Binding: 0, TextureView: f.view(t)}},
	})
	pl := f.device.CreatePipelineLayout(&PipelineLayoutDescriptor{
		BindGroupLayouts: []*BindGroupLayout{layout},
	})
	pipeline := f.device.CreateComputePipeline(&ComputePipelineDescriptor{
		Layout: pl,
		ComputeStage: PipelineStageDescriptor{
			Module:     f.device.CreateShaderModule(spirvStub),
			Stage:      ShaderStageCompute,
			EntryPoint: "main",
		},
	})
	return pipeline, group
}

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
