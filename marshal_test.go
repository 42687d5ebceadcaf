package wgsafe

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/wgsafe/backend/trace"
	"github.com/gogpu/wgsafe/native"
)

func TestMarshalRenderPass(t *testing.T) {
	f := newFixture(t)
	views := []*TextureView{f.view(t), f.view(t), f.view(t)}
	depthView := f.view(t)
	clearColor := gputypes.Color{R: 0.1, G: 0.2, B: 0.3, A: 1}

	tests := []struct {
		name  string
		depth *RenderPassDepthStencilAttachmentDescriptor
	}{
		{"without depth", nil},
		{"with depth", &RenderPassDepthStencilAttachmentDescriptor{
			Attachment:     depthView,
			DepthLoadOp:    gputypes.LoadOpClear,
			DepthStoreOp:   gputypes.StoreOpStore,
			ClearDepth:     1,
			StencilLoadOp:  gputypes.LoadOpClear,
			StencilStoreOp: gputypes.StoreOpDiscard,
			ClearStencil:   7,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.api.Reset()
			desc := &RenderPassDescriptor{DepthStencilAttachment: tt.depth}
			for _, v := range views {
				desc.ColorAttachments = append(desc.ColorAttachments, RenderPassColorAttachmentDescriptor{
					Attachment: v,
					LoadOp:     gputypes.LoadOpClear,
					StoreOp:    gputypes.StoreOpStore,
					ClearColor: clearColor,
				})
			}

			cb := f.device.CreateCommandBuffer(nil)
			pass, err := cb.BeginRenderPass(desc)
			if err != nil {
				t.Fatalf("BeginRenderPass: %v", err)
			}
			pass.EndPass()

			rec := f.api.CallsOf("CommandBufferBeginRenderPass")[0].Desc.(trace.RenderPass)
			if len(rec.ColorAttachments) != 3 {
				t.Fatalf("got %d color attachments, want 3", len(rec.ColorAttachments))
			}
			for i, c := range rec.ColorAttachments {
				if c.Attachment != views[i].ID() || c.ClearColor != clearColor {
					t.Errorf("attachment %d = %+v", i, c)
				}
			}
			if tt.depth == nil {
				if rec.DepthStencilAttachment != nil {
					t.Error("absent depth attachment should marshal to nil")
				}
				return
			}
			ds := rec.DepthStencilAttachment
			if ds == nil {
				t.Fatal("depth attachment missing")
			}
			if ds.Attachment != depthView.ID() || ds.ClearDepth != 1 || ds.ClearStencil != 7 {
				t.Errorf("depth attachment = %+v", ds)
			}
		})
	}
}

func TestMarshalRenderPipeline(t *testing.T) {
	f := newFixture(t)
	vs := f.device.CreateShaderModule(spirvStub)
	fs := f.device.CreateShaderModule(spirvStub)
	layouts := []*BindGroupLayout{
		f.device.CreateBindGroupLayout(&BindGroupLayoutDescriptor{}),
		f.device.CreateBindGroupLayout(&BindGroupLayoutDescriptor{}),
	}
	pl := f.device.CreatePipelineLayout(&PipelineLayoutDescriptor{BindGroupLayouts: layouts})
	blend := f.device.CreateBlendState(&BlendStateDescriptor{
		BlendEnabled: true,
		Color: BlendDescriptor{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
		WriteMask: gputypes.ColorWriteMaskAll,
	})
	dss := f.device.CreateDepthStencilState(&DepthStencilStateDescriptor{
		DepthWriteEnabled: true,
		DepthCompare:      gputypes.CompareFunctionLess,
	})

	plRec := f.api.CallsOf("DeviceCreatePipelineLayout")[0].Desc.(trace.PipelineLayout)
	if len(plRec.BindGroupLayouts) != 2 || plRec.BindGroupLayouts[0] != layouts[0].ID() || plRec.BindGroupLayouts[1] != layouts[1].ID() {
		t.Errorf("pipeline layout IDs = %v", plRec.BindGroupLayouts)
	}

	tests := []struct {
		name  string
		depth *Attachment
		dss   *DepthStencilState
	}{
		{"without depth", nil, nil},
		{"with depth", &Attachment{Format: gputypes.TextureFormatDepth24PlusStencil8, Samples: 1}, dss},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.api.Reset()
			_, err := f.device.CreateRenderPipeline(&RenderPipelineDescriptor{
				Layout: pl,
				Stages: []PipelineStageDescriptor{
					{Module: vs, Stage: ShaderStageVertex, EntryPoint: "vs_main"},
					{Module: fs, Stage: ShaderStageFragment, EntryPoint: "fs_main"},
				},
				PrimitiveTopology: gputypes.PrimitiveTopologyTriangleList,
				AttachmentsState: AttachmentsState{
					ColorAttachments:       []Attachment{{Format: gputypes.TextureFormatBGRA8Unorm, Samples: 1}},
					DepthStencilAttachment: tt.depth,
				},
				BlendStates:       []*BlendState{blend},
				DepthStencilState: tt.dss,
			})
			if err != nil {
				t.Fatalf("CreateRenderPipeline: %v", err)
			}

			rec := f.api.CallsOf("DeviceCreateRenderPipeline")[0].Desc.(trace.RenderPipeline)
			if len(rec.Stages) != 2 {
				t.Fatalf("got %d stages, want 2", len(rec.Stages))
			}
			if rec.Stages[0].EntryPoint != "vs_main" || rec.Stages[0].Module != vs.ID() || rec.Stages[0].Stage != ShaderStageVertex {
				t.Errorf("stage 0 = %+v", rec.Stages[0])
			}
			if rec.Stages[1].EntryPoint != "fs_main" || rec.Stages[1].Module != fs.ID() {
				t.Errorf("stage 1 = %+v", rec.Stages[1])
			}
			if len(rec.BlendStates) != 1 || rec.BlendStates[0] != blend.ID() {
				t.Errorf("blend states = %v", rec.BlendStates)
			}
			if len(rec.ColorAttachments) != 1 || rec.ColorAttachments[0].Format != gputypes.TextureFormatBGRA8Unorm {
				t.Errorf("color attachments = %v", rec.ColorAttachments)
			}
			if tt.depth == nil {
				if rec.DepthStencilAttachment != nil || !rec.DepthStencilState.IsZero() {
					t.Error("absent depth should marshal to nil and the zero ID")
				}
				return
			}
			if rec.DepthStencilAttachment == nil || *rec.DepthStencilAttachment != *tt.depth {
				t.Errorf("depth attachment = %v", rec.DepthStencilAttachment)
			}
			if rec.DepthStencilState != dss.ID() {
				t.Errorf("depth-stencil state = %s, want %s", rec.DepthStencilState, dss.ID())
			}
		})
	}
}

func TestMarshalCapacity(t *testing.T) {
	f := newFixture(t)
	mod := f.device.CreateShaderModule(spirvStub)
	pl := f.device.CreatePipelineLayout(nil)
	stage := PipelineStageDescriptor{Module: mod, Stage: ShaderStageVertex, EntryPoint: "main"}

	f.api.Reset()
	p, err := f.device.CreateRenderPipeline(&RenderPipelineDescriptor{
		Layout: pl,
		Stages: []PipelineStageDescriptor{stage, stage, stage},
	})
	if !errors.Is(err, ErrCapacityExceeded) || p != nil {
		t.Errorf("3 stages: got (%v, %v), want ErrCapacityExceeded", p, err)
	}

	v := f.view(t)
	f.api.Reset()
	cb := f.device.CreateCommandBuffer(nil)
	desc := &RenderPassDescriptor{}
	for range MaxColorAttachments + 1 {
		desc.ColorAttachments = append(desc.ColorAttachments, RenderPassColorAttachmentDescriptor{Attachment: v})
	}
	pass, err := cb.BeginRenderPass(desc)
	if !errors.Is(err, ErrCapacityExceeded) || pass != nil {
		t.Errorf("5 color attachments: got (%v, %v), want ErrCapacityExceeded", pass, err)
	}
	if cb.State() != CommandBufferStateIdle {
		t.Errorf("state after capacity error = %s, want Idle", cb.State())
	}

	for _, op := range f.api.Ops() {
		if op == "DeviceCreateRenderPipeline" || op == "CommandBufferBeginRenderPass" {
			t.Errorf("capacity error must not reach the native layer, saw %s", op)
		}
	}
}

func TestMarshalEmpty(t *testing.T) {
	f := newFixture(t)
	f.device.CreatePipelineLayout(&PipelineLayoutDescriptor{})
	f.device.CreateBindGroupLayout(nil)

	pl := f.api.CallsOf("DeviceCreatePipelineLayout")[0].Desc.(trace.PipelineLayout)
	if pl.BindGroupLayouts != nil {
		t.Errorf("empty layout list = %v, want nil", pl.BindGroupLayouts)
	}
	bgl := f.api.CallsOf("DeviceCreateBindGroupLayout")[0].Desc.(trace.BindGroupLayout)
	if bgl.Bindings != nil {
		t.Errorf("empty binding list = %v, want nil", bgl.Bindings)
	}
}

func TestMarshalBindGroup(t *testing.T) {
	f := newFixture(t)
	layout := f.device.CreateBindGroupLayout(&BindGroupLayoutDescriptor{
		Bindings: []BindGroupLayoutBinding{
			{Binding: 0, Visibility: gputypes.ShaderStageFragment, Type: BindingTypeSampledTexture},
			{Binding: 3, Visibility: gputypes.ShaderStageFragment, Type: BindingTypeSampledTexture},
		},
	})
	a, b := f.view(t), f.view(t)
	f.device.CreateBindGroup(&BindGroupDescriptor{
		Layout:   layout,
		Bindings: []Binding{{Binding: 0, TextureView: a}, {Binding: 3, TextureView: b}},
	})

	rec := f.api.CallsOf("DeviceCreateBindGroup")[0].Desc.(trace.BindGroup)
	want := []native.Binding{{Binding: 0, TextureView: a.ID()}, {Binding: 3, TextureView: b.ID()}}
	if rec.Layout != layout.ID() || len(rec.Bindings) != 2 || rec.Bindings[0] != want[0] || rec.Bindings[1] != want[1] {
		t.Errorf("bind group = %+v, want layout %s bindings %v", rec, layout.ID(), want)
	}

	bgl := f.api.CallsOf("DeviceCreateBindGroupLayout")[0].Desc.(trace.BindGroupLayout)
	if len(bgl.Bindings) != 2 || bgl.Bindings[1].Binding != 3 {
		t.Errorf("layout bindings = %+v", bgl.Bindings)
	}
}

func TestMarshalShaderModule(t *testing.T) {
	f := newFixture(t)
	f.device.CreateShaderModule(spirvStub)
	rec := f.api.CallsOf("DeviceCreateShaderModule")[0].Desc.(trace.ShaderModule)
	if string(rec.Code) != string(spirvStub) {
		t.Errorf("shader code = %x, want %x", rec.Code, spirvStub)
	}
}

func TestIDPoolReuse(t *testing.T) {
	b := getIDs()
	b.ids = append(b.ids, native.NewID(1), native.NewID(2))
	putIDs(b)

	b = getIDs()
	defer putIDs(b)
	if len(b.ids) != 0 {
		t.Errorf("pooled buffer len = %d, want 0", len(b.ids))
	}
}

func TestMarshalEntryPointWithNUL(t *testing.T) {
	f := newFixture(t)
	mod := f.device.CreateShaderModule(spirvStub)
	pl := f.device.CreatePipelineLayout(nil)
	bad := "main\x00evil"

	tests := []struct {
		name string
		op   string
		fn   func()
	}{
		{"compute", "DeviceCreateComputePipeline", func() {
			f.device.CreateComputePipeline(&ComputePipelineDescriptor{
				Layout:       pl,
				ComputeStage: PipelineStageDescriptor{Module: mod, Stage: ShaderStageCompute, EntryPoint: bad},
			})
		}},
		{"render", "DeviceCreateRenderPipeline", func() {
			_, _ = f.device.CreateRenderPipeline(&RenderPipelineDescriptor{
				Layout: pl,
				Stages: []PipelineStageDescriptor{
					{Module: mod, Stage: ShaderStageVertex, EntryPoint: "vs_main"},
					{Module: mod, Stage: ShaderStageFragment, EntryPoint: bad},
				},
			})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.api.Reset()
			expectPanic(t, ErrInvalidEntryPoint, tt.fn)
			if n := len(f.api.CallsOf(tt.op)); n != 0 {
				t.Errorf("%s reached the backend %d times", tt.op, n)
			}
		})
	}
}
