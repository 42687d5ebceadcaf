package wgpu

import (
	"errors"
	"testing"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/wgsafe/backend"
	"github.com/gogpu/wgsafe/internal/registry"
	"github.com/gogpu/wgsafe/native"
)

func newNoopDevice(t *testing.T) (*API, native.ID) {
	t.Helper()
	api := New(&noop.API{}, WithWaitTimeout(time.Second), WithLabelPrefix("test"))
	inst := api.CreateInstance()
	adapter := api.InstanceGetAdapter(inst, &native.AdapterDescriptor{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	return api, api.AdapterCreateDevice(adapter, &native.DeviceDescriptor{})
}

func expectPanic(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, target) {
			t.Fatalf("panic = %v, want error wrapping %v", r, target)
		}
	}()
	fn()
}

func exposed(name string, typ gputypes.DeviceType) hal.ExposedAdapter {
	var a hal.ExposedAdapter
	a.Info.Name = name
	a.Info.DeviceType = typ
	return a
}

func TestSelectAdapter(t *testing.T) {
	adapters := []hal.ExposedAdapter{
		exposed("igpu", gputypes.DeviceTypeIntegratedGPU),
		exposed("dgpu", gputypes.DeviceTypeDiscreteGPU),
		exposed("igpu2", gputypes.DeviceTypeIntegratedGPU),
	}
	// Any preference other than high performance favors integrated GPUs.
	lowPower := gputypes.PowerPreferenceHighPerformance + 1
	tests := []struct {
		name string
		pref gputypes.PowerPreference
		in   []hal.ExposedAdapter
		want string
	}{
		{"high performance", gputypes.PowerPreferenceHighPerformance, adapters, "dgpu"},
		{"low power", lowPower, adapters, "igpu"},
		{"fallback to integrated", gputypes.PowerPreferenceHighPerformance, adapters[2:], "igpu2"},
		{"fallback to discrete", lowPower, adapters[1:2], "dgpu"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := selectAdapter(tt.in, tt.pref).Info.Name; got != tt.want {
				t.Errorf("selectAdapter = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpirvWords(t *testing.T) {
	words := spirvWords([]byte{0x03, 0x02, 0x23, 0x07, 0x01, 0x00, 0x00, 0x00, 0xff})
	if len(words) != 2 || words[0] != 0x07230203 || words[1] != 1 {
		t.Errorf("spirvWords = %#x", words)
	}
}

func TestStencilOp(t *testing.T) {
	if stencilOp(native.StencilOperationKeep) != hal.StencilOperationKeep {
		t.Error("Keep should map to hal Keep")
	}
	if stencilOp(native.StencilOperationInvert) != hal.StencilOperationInvert {
		t.Error("Invert should map to hal Invert")
	}
	if stencilOp(native.StencilOperationIncrementWrap) != hal.StencilOperationIncrementWrap {
		t.Error("IncrementWrap should map to hal IncrementWrap")
	}
	if f := stencilFace(native.StencilStateFaceDescriptor{}); f.Compare != gputypes.CompareFunctionAlways {
		t.Errorf("undefined compare should default to Always, got %v", f.Compare)
	}
}

func TestBlendState(t *testing.T) {
	if blendState(native.BlendStateDescriptor{}) != nil {
		t.Error("disabled blending should map to nil")
	}
	b := blendState(native.BlendStateDescriptor{
		BlendEnabled: true,
		Color:        native.BlendDescriptor{SrcFactor: gputypes.BlendFactorOne, DstFactor: gputypes.BlendFactorOneMinusSrcAlpha, Operation: gputypes.BlendOperationAdd},
	})
	if b == nil || b.Color.SrcFactor != gputypes.BlendFactorOne || b.Color.DstFactor != gputypes.BlendFactorOneMinusSrcAlpha {
		t.Errorf("blendState = %+v", b)
	}
}

func TestLayoutEntry(t *testing.T) {
	tests := []struct {
		typ   native.BindingType
		check func(gputypes.BindGroupLayoutEntry) bool
	}{
		{native.BindingTypeUniformBuffer, func(e gputypes.BindGroupLayoutEntry) bool {
			return e.Buffer != nil && e.Buffer.Type == gputypes.BufferBindingTypeUniform
		}},
		{native.BindingTypeStorageBuffer, func(e gputypes.BindGroupLayoutEntry) bool {
			return e.Buffer != nil && e.Buffer.Type == gputypes.BufferBindingTypeStorage
		}},
		{native.BindingTypeSampler, func(e gputypes.BindGroupLayoutEntry) bool { return e.Sampler != nil }},
		{native.BindingTypeSampledTexture, func(e gputypes.BindGroupLayoutEntry) bool { return e.Texture != nil }},
	}
	for _, tt := range tests {
		e := layoutEntry(native.BindGroupLayoutBinding{Binding: 2, Visibility: gputypes.ShaderStageFragment, Type: tt.typ})
		if e.Binding != 2 || !tt.check(e) {
			t.Errorf("layoutEntry(%d) = %+v", tt.typ, e)
		}
	}
}

func TestNoopComputeSubmit(t *testing.T) {
	api, dev := newNoopDevice(t)

	layout := api.DeviceCreateBindGroupLayout(dev, &native.BindGroupLayoutDescriptor{})
	group := api.DeviceCreateBindGroup(dev, &native.BindGroupDescriptor{Layout: layout})
	ids := []native.ID{layout}
	pl := api.DeviceCreatePipelineLayout(dev, &native.PipelineLayoutDescriptor{BindGroupLayouts: &ids[0], BindGroupLayoutsLength: 1})

	code := []byte{0x03, 0x02, 0x23, 0x07, 0x00, 0x03, 0x01, 0x00}
	module := api.DeviceCreateShaderModule(dev, &native.ShaderModuleDescriptor{
		Code: native.ByteArray{Bytes: &code[0], Length: uintptr(len(code))},
	})
	entry := native.CString("main")
	pipeline := api.DeviceCreateComputePipeline(dev, &native.ComputePipelineDescriptor{
		Layout:       pl,
		ComputeStage: native.PipelineStageDescriptor{Module: module, Stage: native.ShaderStageCompute, EntryPoint: &entry[0]},
	})

	cb := api.DeviceCreateCommandBuffer(dev, &native.CommandBufferDescriptor{})
	pass := api.CommandBufferBeginComputePass(cb)
	api.ComputePassSetPipeline(pass, pipeline)
	api.ComputePassSetBindGroup(pass, 0, group)
	api.ComputePassDispatch(pass, 8, 1, 1)
	api.ComputePassEndPass(pass)

	q := api.DeviceGetQueue(dev)
	subs := []native.ID{cb}
	api.QueueSubmit(q, &subs[0], 1)
	api.DevicePoll(dev, true)

	expectPanic(t, registry.ErrUnknownID, func() { api.Release(native.KindCommandBuffer, cb) })

	for _, r := range []struct {
		kind native.Kind
		id   native.ID
	}{
		{native.KindQueue, q},
		{native.KindComputePipeline, pipeline},
		{native.KindShaderModule, module},
		{native.KindPipelineLayout, pl},
		{native.KindBindGroup, group},
		{native.KindBindGroupLayout, layout},
	} {
		api.Release(r.kind, r.id)
	}
	api.Release(native.KindDevice, dev)
	if n := api.Live(); n != 2 {
		t.Errorf("Live() = %d, want 2 (instance and adapter)", n)
	}
}

func TestNoopRenderPass(t *testing.T) {
	api, dev := newNoopDevice(t)

	tex := api.DeviceCreateTexture(dev, &native.TextureDescriptor{
		Size:      gputypes.Extent3D{Width: 16, Height: 16, DepthOrArrayLayers: 1},
		ArraySize: 1,
		Dimension: gputypes.TextureDimension2D,
		Format:    gputypes.TextureFormatRGBA8Unorm,
		Usage:     gputypes.TextureUsageRenderAttachment,
	})
	view := api.TextureCreateDefaultTextureView(tex)
	depthTex := api.DeviceCreateTexture(dev, &native.TextureDescriptor{
		Size:      gputypes.Extent3D{Width: 16, Height: 16, DepthOrArrayLayers: 1},
		Dimension: gputypes.TextureDimension2D,
		Format:    gputypes.TextureFormatDepth24PlusStencil8,
		Usage:     gputypes.TextureUsageRenderAttachment,
	})
	depthView := api.TextureCreateTextureView(depthTex, &native.TextureViewDescriptor{
		Format:     gputypes.TextureFormatDepth24PlusStencil8,
		Dimension:  gputypes.TextureViewDimension2D,
		Aspect:     gputypes.TextureAspectAll,
		LevelCount: 1,
		ArrayCount: 1,
	})

	code := []byte{0x03, 0x02, 0x23, 0x07}
	module := api.DeviceCreateShaderModule(dev, &native.ShaderModuleDescriptor{Code: native.ByteArray{Bytes: &code[0], Length: 4}})
	pl := api.DeviceCreatePipelineLayout(dev, &native.PipelineLayoutDescriptor{})
	blend := api.DeviceCreateBlendState(dev, &native.BlendStateDescriptor{WriteMask: gputypes.ColorWriteMaskAll})
	dss := api.DeviceCreateDepthStencilState(dev, &native.DepthStencilStateDescriptor{DepthCompare: gputypes.CompareFunctionLess})

	vs, fs := native.CString("vs_main"), native.CString("fs_main")
	stages := []native.PipelineStageDescriptor{
		{Module: module, Stage: native.ShaderStageVertex, EntryPoint: &vs[0]},
		{Module: module, Stage: native.ShaderStageFragment, EntryPoint: &fs[0]},
	}
	colors := []native.Attachment{{Format: gputypes.TextureFormatRGBA8Unorm, Samples: 1}}
	depth := native.Attachment{Format: gputypes.TextureFormatDepth24PlusStencil8, Samples: 1}
	blends := []native.ID{blend}
	pipeline := api.DeviceCreateRenderPipeline(dev, &native.RenderPipelineDescriptor{
		Layout:            pl,
		Stages:            &stages[0],
		StagesLength:      2,
		PrimitiveTopology: gputypes.PrimitiveTopologyTriangleList,
		AttachmentsState: native.AttachmentsState{
			ColorAttachments:       &colors[0],
			ColorAttachmentsLength: 1,
			DepthStencilAttachment: &depth,
		},
		BlendStates:       &blends[0],
		BlendStatesLength: 1,
		DepthStencilState: dss,
	})

	cb := api.DeviceCreateCommandBuffer(dev, &native.CommandBufferDescriptor{})
	rpColors := []native.RenderPassColorAttachmentDescriptor{{
		Attachment: view,
		LoadOp:     gputypes.LoadOpClear,
		StoreOp:    gputypes.StoreOpStore,
		ClearColor: gputypes.Color{A: 1},
	}}
	pass := api.CommandBufferBeginRenderPass(cb, &native.RenderPassDescriptor{
		ColorAttachments:       &rpColors[0],
		ColorAttachmentsLength: 1,
		DepthStencilAttachment: &native.RenderPassDepthStencilAttachmentDescriptor{
			Attachment:   depthView,
			DepthLoadOp:  gputypes.LoadOpClear,
			DepthStoreOp: gputypes.StoreOpStore,
			ClearDepth:   1,
		},
	})
	api.RenderPassSetPipeline(pass, pipeline)
	api.RenderPassDraw(pass, 3, 1, 0, 0)
	api.RenderPassEndPass(pass)

	// An unsubmitted command buffer is discarded on release.
	api.Release(native.KindCommandBuffer, cb)
	api.Release(native.KindRenderPipeline, pipeline)
	api.Release(native.KindTextureView, depthView)
	api.Release(native.KindTextureView, view)
	api.Release(native.KindTexture, depthTex)
	api.Release(native.KindTexture, tex)
	api.DevicePoll(dev, false)
}

func TestReleaseUnknown(t *testing.T) {
	api, _ := newNoopDevice(t)
	expectPanic(t, registry.ErrUnknownID, func() { api.Release(native.KindTexture, native.NewID(999)) })
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open(gputypes.Backend(250)); !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("Open(unknown) error = %v, want ErrBackendUnavailable", err)
	}
}

func TestProbeNoop(t *testing.T) {
	if err := New(&noop.API{}).Probe(); err != nil {
		t.Errorf("Probe() on noop = %v", err)
	}
}

func TestRegistered(t *testing.T) {
	for _, name := range []string{backend.BackendNoop, backend.BackendVulkan} {
		if !backend.IsRegistered(name) {
			t.Errorf("%s backend should be registered", name)
		}
	}
	if _, ok := backend.Get(backend.BackendNoop).(*API); !ok {
		t.Error("noop backend should be a *wgpu.API")
	}
}
