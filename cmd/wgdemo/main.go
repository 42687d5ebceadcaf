// Command wgdemo records a compute and a render workload through wgsafe
// and prints the native calls they issue.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/wgsafe"
	"github.com/gogpu/wgsafe/backend"
	"github.com/gogpu/wgsafe/backend/rust"
	"github.com/gogpu/wgsafe/backend/trace"
	"github.com/gogpu/wgsafe/native"

	// Register the hal backends (vulkan, noop).
	_ "github.com/gogpu/wgsafe/backend/wgpu"
)

const computeWGSL = `
@compute @workgroup_size(64)
fn main(@builtin(global_invocation_id) id: vec3<u32>) {
}
`

const triangleWGSL = `
@vertex
fn vs_main(@builtin(vertex_index) i: u32) -> @builtin(position) vec4<f32> {
    let x = f32(i32(i) - 1);
    let y = f32(i32(i & 1u) * 2 - 1);
    return vec4<f32>(x, y, 0.0, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.5, 0.0, 1.0);
}
`

func main() {
	var (
		name     = flag.String("backend", "", "native backend ("+strings.Join(backend.Available(), ", ")+"); empty picks the best available")
		scenario = flag.String("scenario", "all", "scenario to run: compute, render or all")
		size     = flag.Uint("size", 256, "render target size in pixels")
		groups   = flag.Uint("groups", 16, "compute workgroups along x")
		verbose  = flag.Bool("v", false, "debug logging")
		probe    = flag.Bool("probe", false, "report the wgpu-native adapter and exit (needs -tags rust)")
	)
	flag.Parse()

	if *probe {
		info, err := rust.Probe()
		if err != nil {
			log.Fatalf("probe: %v", err)
		}
		fmt.Println(info)
		return
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	wgsafe.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	api, err := openBackend(*name)
	if err != nil {
		log.Fatalf("Failed to open backend: %v", err)
	}

	if err := run(api, *scenario, uint32(*size), uint32(*groups)); err != nil {
		log.Fatalf("%s: %v", *scenario, err)
	}

	if t, ok := api.(*trace.API); ok {
		printTrace(t)
	}
}

func run(api native.API, scenario string, size, groups uint32) error {
	inst := wgsafe.NewInstance(api)
	defer inst.Destroy()

	provider := wgsafe.NewProvider(inst, wgsafe.ProviderOptions{
		Adapter:       wgsafe.AdapterDescriptor{PowerPreference: gputypes.PowerPreferenceHighPerformance},
		SurfaceFormat: gputypes.TextureFormatRGBA8Unorm,
	})
	defer provider.Destroy()

	switch scenario {
	case "compute":
		return runCompute(provider, groups)
	case "render":
		return runRender(provider, size)
	case "all":
		if err := runCompute(provider, groups); err != nil {
			return err
		}
		return runRender(provider, size)
	default:
		return fmt.Errorf("unknown scenario %q", scenario)
	}
}

func openBackend(name string) (native.API, error) {
	if name == "" {
		api := backend.Default()
		if api == nil {
			return nil, backend.ErrBackendNotAvailable
		}
		return api, nil
	}
	return backend.Open(name)
}

func runCompute(p *wgsafe.Provider, groups uint32) error {
	device := p.WGPUDevice()

	module, err := device.CreateShaderModuleWGSL(computeWGSL)
	if err != nil {
		return err
	}
	defer module.Destroy()

	layout := device.CreateBindGroupLayout(&wgsafe.BindGroupLayoutDescriptor{})
	defer layout.Destroy()
	group := device.CreateBindGroup(&wgsafe.BindGroupDescriptor{Layout: layout})
	defer group.Destroy()
	pl := device.CreatePipelineLayout(&wgsafe.PipelineLayoutDescriptor{
		BindGroupLayouts: []*wgsafe.BindGroupLayout{layout},
	})
	defer pl.Destroy()

	pipeline := device.CreateComputePipeline(&wgsafe.ComputePipelineDescriptor{
		Layout: pl,
		ComputeStage: wgsafe.PipelineStageDescriptor{
			Module:     module,
			Stage:      wgsafe.ShaderStageCompute,
			EntryPoint: "main",
		},
	})
	defer pipeline.Destroy()

	cb := device.CreateCommandBuffer(nil).RecordCompute(func(pass *wgsafe.ComputePass) {
		pass.SetPipeline(pipeline)
		pass.SetBindGroup(0, group)
		pass.Dispatch(groups, 1, 1)
	})
	p.WGPUQueue().Submit(cb)
	device.Poll(true)

	log.Printf("compute: dispatched %d workgroups\n", groups)
	return nil
}

func runRender(p *wgsafe.Provider, size uint32) error {
	device := p.WGPUDevice()

	target := device.CreateTexture(&wgsafe.TextureDescriptor{
		Size:      gputypes.Extent3D{Width: size, Height: size, DepthOrArrayLayers: 1},
		ArraySize: 1,
		Dimension: gputypes.TextureDimension2D,
		Format:    p.SurfaceFormat(),
		Usage:     gputypes.TextureUsageRenderAttachment,
	})
	defer target.Destroy()
	view := target.CreateDefaultView()
	defer view.Destroy()

	module, err := device.CreateShaderModuleWGSL(triangleWGSL)
	if err != nil {
		return err
	}
	defer module.Destroy()

	pl := device.CreatePipelineLayout(nil)
	defer pl.Destroy()
	blend := device.CreateBlendState(&wgsafe.BlendStateDescriptor{
		BlendEnabled: true,
		Color: wgsafe.BlendDescriptor{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
		Alpha: wgsafe.BlendDescriptor{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
		WriteMask: gputypes.ColorWriteMaskAll,
	})
	defer blend.Destroy()

	pipeline, err := device.CreateRenderPipeline(&wgsafe.RenderPipelineDescriptor{
		Layout: pl,
		Stages: []wgsafe.PipelineStageDescriptor{
			{Module: module, Stage: wgsafe.ShaderStageVertex, EntryPoint: "vs_main"},
			{Module: module, Stage: wgsafe.ShaderStageFragment, EntryPoint: "fs_main"},
		},
		PrimitiveTopology: gputypes.PrimitiveTopologyTriangleList,
		AttachmentsState: wgsafe.AttachmentsState{
			ColorAttachments: []wgsafe.Attachment{{Format: p.SurfaceFormat(), Samples: 1}},
		},
		BlendStates: []*wgsafe.BlendState{blend},
	})
	if err != nil {
		return err
	}
	defer pipeline.Destroy()

	cb, err := device.CreateCommandBuffer(nil).RecordRender(&wgsafe.RenderPassDescriptor{
		ColorAttachments: []wgsafe.RenderPassColorAttachmentDescriptor{{
			Attachment: view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearColor: gputypes.Color{R: 0.1, G: 0.2, B: 0.4, A: 1},
		}},
	}, func(pass *wgsafe.RenderPass) {
		pass.SetPipeline(pipeline)
		pass.Draw(3, 1, 0, 0)
	})
	if err != nil {
		return err
	}
	p.WGPUQueue().Submit(cb)
	device.Poll(true)

	log.Printf("render: drew one triangle into a %dx%d target\n", size, size)
	return nil
}
