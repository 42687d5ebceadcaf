package wgpu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/wgsafe/internal/registry"
	"github.com/gogpu/wgsafe/native"
)

var (
	// ErrBackendUnavailable is returned by Open when the requested hal
	// backend is not compiled in.
	ErrBackendUnavailable = errors.New("wgpu: hal backend not available")

	// ErrNoAdapter is raised when an instance exposes no adapters.
	ErrNoAdapter = errors.New("wgpu: no GPU adapters found")

	// ErrNative wraps every failure reported by hal.
	ErrNative = errors.New("wgpu: native call failed")
)

// InstanceFactory creates hal instances. hal.Backend values and the
// hal/noop API satisfy it.
type InstanceFactory interface {
	CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error)
}

// API is a native.API backed by hal. It is safe for concurrent use.
type API struct {
	factory InstanceFactory
	opts    options
	objs    registry.Registry[any]
}

var _ native.API = (*API)(nil)

// New creates an API on a hal instance factory.
func New(factory InstanceFactory, opts ...Option) *API {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	a := &API{factory: factory, opts: o}
	if o.logger != nil {
		a.SetLogger(o.logger)
	}
	return a
}

// Open creates an API on a registered hal backend such as
// gputypes.BackendVulkan.
func Open(variant gputypes.Backend, opts ...Option) (*API, error) {
	backend, ok := hal.GetBackend(variant)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, variant)
	}
	return New(backend, opts...), nil
}

type instanceObj struct {
	inst hal.Instance
}

type adapterObj struct {
	exposed hal.ExposedAdapter
}

type deviceObj struct {
	dev   hal.Device
	queue hal.Queue

	mu      sync.Mutex
	pending []submission
}

type queueObj struct {
	dev *deviceObj
}

type textureObj struct {
	dev  *deviceObj
	tex  hal.Texture
	desc native.TextureDescriptor
}

type viewObj struct {
	dev  *deviceObj
	view hal.TextureView
}

type bindGroupLayoutObj struct {
	dev    *deviceObj
	layout hal.BindGroupLayout
}

type bindGroupObj struct {
	dev   *deviceObj
	group hal.BindGroup
}

type shaderObj struct {
	dev    *deviceObj
	module hal.ShaderModule
}

type pipelineLayoutObj struct {
	dev    *deviceObj
	layout hal.PipelineLayout
}

type blendObj struct {
	desc native.BlendStateDescriptor
}

type depthStencilObj struct {
	desc native.DepthStencilStateDescriptor
}

type renderPipelineObj struct {
	dev      *deviceObj
	pipeline hal.RenderPipeline
}

type computePipelineObj struct {
	dev      *deviceObj
	pipeline hal.ComputePipeline
}

type commandBufferObj struct {
	dev     *deviceObj
	encoder hal.CommandEncoder
}

type renderPassObj struct {
	pass hal.RenderPassEncoder
}

type computePassObj struct {
	pass hal.ComputePassEncoder
}

// lookup fetches a typed object or panics.
func lookup[T any](a *API, kind native.Kind, id native.ID) T {
	v := registry.Must(a.objs.Lookup(kind, id))
	obj, ok := v.(T)
	if !ok {
		panic(fmt.Errorf("%w: %s %s holds %T", registry.ErrKindMismatch, kind, id, v))
	}
	return obj
}

// must aborts on a hal error.
func must[T any](v T, err error) T {
	if err != nil {
		panic(fmt.Errorf("%w: %w", ErrNative, err))
	}
	return v
}

// check aborts on a hal error.
func check(err error) {
	if err != nil {
		panic(fmt.Errorf("%w: %w", ErrNative, err))
	}
}

func (a *API) label(what string) string {
	return a.opts.labelPrefix + "_" + what
}

// Live returns the number of objects currently registered.
func (a *API) Live() int { return a.objs.Len() }

// CreateInstance creates a hal instance on the configured backend.
func (a *API) CreateInstance() native.ID {
	inst := must(a.factory.CreateInstance(&hal.InstanceDescriptor{Flags: 0}))
	return a.objs.Register(native.KindInstance, &instanceObj{inst: inst})
}

// InstanceGetAdapter enumerates adapters and picks one by power preference.
func (a *API) InstanceGetAdapter(instance native.ID, desc *native.AdapterDescriptor) native.ID {
	inst := lookup[*instanceObj](a, native.KindInstance, instance)
	adapters := inst.inst.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		panic(ErrNoAdapter)
	}
	selected := selectAdapter(adapters, desc.PowerPreference)
	logGPUInfo(selected)
	return a.objs.Register(native.KindAdapter, &adapterObj{exposed: *selected})
}

// AdapterCreateDevice opens a device and its queue on the adapter.
func (a *API) AdapterCreateDevice(adapter native.ID, desc *native.DeviceDescriptor) native.ID {
	ad := lookup[*adapterObj](a, native.KindAdapter, adapter)
	if desc.Extensions.AnisotropicFiltering {
		slogger().Debug("wgpu: anisotropic filtering is always available, extension ignored")
	}
	open := must(ad.exposed.Adapter.Open(gputypes.Features(0), a.opts.limits))
	return a.objs.Register(native.KindDevice, &deviceObj{dev: open.Device, queue: open.Queue})
}

// DeviceGetQueue returns a new ID for the device queue.
func (a *API) DeviceGetQueue(device native.ID) native.ID {
	dev := lookup[*deviceObj](a, native.KindDevice, device)
	return a.objs.Register(native.KindQueue, &queueObj{dev: dev})
}

// DeviceCreateShaderModule creates a module from SPIR-V bytes.
func (a *API) DeviceCreateShaderModule(device native.ID, desc *native.ShaderModuleDescriptor) native.ID {
	dev := lookup[*deviceObj](a, native.KindDevice, device)
	code := spirvWords(native.Slice(desc.Code.Bytes, desc.Code.Length))
	module := must(dev.dev.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  a.label("shader"),
		Source: hal.ShaderSource{SPIRV: code},
	}))
	return a.objs.Register(native.KindShaderModule, &shaderObj{dev: dev, module: module})
}

// DeviceCreateBindGroupLayout creates a bind group layout from the slot list.
func (a *API) DeviceCreateBindGroupLayout(device native.ID, desc *native.BindGroupLayoutDescriptor) native.ID {
	dev := lookup[*deviceObj](a, native.KindDevice, device)
	bindings := native.Slice(desc.Bindings, desc.BindingsLength)
	entries := make([]gputypes.BindGroupLayoutEntry, len(bindings))
	for i, b := range bindings {
		entries[i] = layoutEntry(b)
	}
	layout := must(dev.dev.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   a.label("bind_group_layout"),
		Entries: entries,
	}))
	return a.objs.Register(native.KindBindGroupLayout, &bindGroupLayoutObj{dev: dev, layout: layout})
}

// DeviceCreateBindGroup binds texture views to the layout slots.
func (a *API) DeviceCreateBindGroup(device native.ID, desc *native.BindGroupDescriptor) native.ID {
	dev := lookup[*deviceObj](a, native.KindDevice, device)
	layout := lookup[*bindGroupLayoutObj](a, native.KindBindGroupLayout, desc.Layout)
	bindings := native.Slice(desc.Bindings, desc.BindingsLength)
	entries := make([]gputypes.BindGroupEntry, len(bindings))
	for i, b := range bindings {
		view := lookup[*viewObj](a, native.KindTextureView, b.TextureView)
		entries[i] = gputypes.BindGroupEntry{
			Binding:  b.Binding,
			Resource: gputypes.TextureViewBinding{TextureView: uintptr(view.view.NativeHandle())},
		}
	}
	group := must(dev.dev.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   a.label("bind_group"),
		Layout:  layout.layout,
		Entries: entries,
	}))
	return a.objs.Register(native.KindBindGroup, &bindGroupObj{dev: dev, group: group})
}

// DeviceCreatePipelineLayout creates a layout over the bind group layouts.
func (a *API) DeviceCreatePipelineLayout(device native.ID, desc *native.PipelineLayoutDescriptor) native.ID {
	dev := lookup[*deviceObj](a, native.KindDevice, device)
	ids := native.Slice(desc.BindGroupLayouts, desc.BindGroupLayoutsLength)
	layouts := make([]hal.BindGroupLayout, len(ids))
	for i, id := range ids {
		layouts[i] = lookup[*bindGroupLayoutObj](a, native.KindBindGroupLayout, id).layout
	}
	layout := must(dev.dev.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            a.label("pipeline_layout"),
		BindGroupLayouts: layouts,
	}))
	return a.objs.Register(native.KindPipelineLayout, &pipelineLayoutObj{dev: dev, layout: layout})
}

// DeviceCreateBlendState stores the blend configuration for later pipelines.
func (a *API) DeviceCreateBlendState(device native.ID, desc *native.BlendStateDescriptor) native.ID {
	lookup[*deviceObj](a, native.KindDevice, device)
	return a.objs.Register(native.KindBlendState, &blendObj{desc: *desc})
}

// DeviceCreateDepthStencilState stores the depth-stencil configuration for later pipelines.
func (a *API) DeviceCreateDepthStencilState(device native.ID, desc *native.DepthStencilStateDescriptor) native.ID {
	lookup[*deviceObj](a, native.KindDevice, device)
	return a.objs.Register(native.KindDepthStencilState, &depthStencilObj{desc: *desc})
}

// DeviceCreateRenderPipeline folds the stored states into a hal render pipeline.
func (a *API) DeviceCreateRenderPipeline(device native.ID, desc *native.RenderPipelineDescriptor) native.ID {
	dev := lookup[*deviceObj](a, native.KindDevice, device)
	halDesc := a.renderPipelineDesc(desc)
	pipeline := must(dev.dev.CreateRenderPipeline(halDesc))
	return a.objs.Register(native.KindRenderPipeline, &renderPipelineObj{dev: dev, pipeline: pipeline})
}

// DeviceCreateComputePipeline creates a compute pipeline.
func (a *API) DeviceCreateComputePipeline(device native.ID, desc *native.ComputePipelineDescriptor) native.ID {
	dev := lookup[*deviceObj](a, native.KindDevice, device)
	layout := lookup[*pipelineLayoutObj](a, native.KindPipelineLayout, desc.Layout)
	module := lookup[*shaderObj](a, native.KindShaderModule, desc.ComputeStage.Module)
	pipeline := must(dev.dev.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  a.label("compute_pipeline"),
		Layout: layout.layout,
		Compute: hal.ComputeState{
			Module:     module.module,
			EntryPoint: native.GoString(desc.ComputeStage.EntryPoint),
		},
	}))
	return a.objs.Register(native.KindComputePipeline, &computePipelineObj{dev: dev, pipeline: pipeline})
}

// DeviceCreateTexture creates a texture.
func (a *API) DeviceCreateTexture(device native.ID, desc *native.TextureDescriptor) native.ID {
	dev := lookup[*deviceObj](a, native.KindDevice, device)
	tex := must(dev.dev.CreateTexture(a.textureDesc(desc)))
	return a.objs.Register(native.KindTexture, &textureObj{dev: dev, tex: tex, desc: *desc})
}

// DevicePoll frees completed submissions. With wait set it blocks until
// they complete or time out.
func (a *API) DevicePoll(device native.ID, wait bool) {
	dev := lookup[*deviceObj](a, native.KindDevice, device)
	a.poll(dev, wait)
}

// TextureCreateTextureView creates a view with the given format and range.
func (a *API) TextureCreateTextureView(texture native.ID, desc *native.TextureViewDescriptor) native.ID {
	tex := lookup[*textureObj](a, native.KindTexture, texture)
	view := must(tex.dev.dev.CreateTextureView(tex.tex, &hal.TextureViewDescriptor{
		Label:           a.label("texture_view"),
		Format:          desc.Format,
		Dimension:       desc.Dimension,
		Aspect:          desc.Aspect,
		BaseMipLevel:    desc.BaseMipLevel,
		MipLevelCount:   desc.LevelCount,
		BaseArrayLayer:  desc.BaseArrayLayer,
		ArrayLayerCount: desc.ArrayCount,
	}))
	return a.objs.Register(native.KindTextureView, &viewObj{dev: tex.dev, view: view})
}

// TextureCreateDefaultTextureView creates a view of the whole texture.
func (a *API) TextureCreateDefaultTextureView(texture native.ID) native.ID {
	tex := lookup[*textureObj](a, native.KindTexture, texture)
	view := must(tex.dev.dev.CreateTextureView(tex.tex, &hal.TextureViewDescriptor{
		Label:  a.label("default_view"),
		Format: tex.desc.Format,
		Aspect: gputypes.TextureAspectAll,
	}))
	return a.objs.Register(native.KindTextureView, &viewObj{dev: tex.dev, view: view})
}

// Probe creates a throwaway instance and checks that it exposes at least
// one adapter.
func (a *API) Probe() error {
	inst, err := a.factory.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNative, err)
	}
	defer inst.Destroy()
	if len(inst.EnumerateAdapters(nil)) == 0 {
		return ErrNoAdapter
	}
	return nil
}
