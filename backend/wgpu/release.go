package wgpu

import (
	"github.com/gogpu/wgsafe/internal/registry"
	"github.com/gogpu/wgsafe/native"
)

// Release destroys the hal object behind id. Blend and depth-stencil
// states only drop their stored data; queues and adapters have no hal
// object of their own.
func (a *API) Release(kind native.Kind, id native.ID) {
	v := registry.Must(a.objs.Unregister(kind, id))
	switch obj := v.(type) {
	case *instanceObj:
		obj.inst.Destroy()
	case *deviceObj:
		a.poll(obj, true)
		obj.dev.Destroy()
	case *textureObj:
		obj.dev.dev.DestroyTexture(obj.tex)
	case *viewObj:
		obj.dev.dev.DestroyTextureView(obj.view)
	case *bindGroupLayoutObj:
		obj.dev.dev.DestroyBindGroupLayout(obj.layout)
	case *bindGroupObj:
		obj.dev.dev.DestroyBindGroup(obj.group)
	case *shaderObj:
		obj.dev.dev.DestroyShaderModule(obj.module)
	case *pipelineLayoutObj:
		obj.dev.dev.DestroyPipelineLayout(obj.layout)
	case *renderPipelineObj:
		obj.dev.dev.DestroyRenderPipeline(obj.pipeline)
	case *computePipelineObj:
		obj.dev.dev.DestroyComputePipeline(obj.pipeline)
	case *commandBufferObj:
		obj.encoder.DiscardEncoding()
	case *adapterObj, *queueObj, *blendObj, *depthStencilObj:
	default:
		slogger().Warn("wgpu: released unexpected object", "kind", kind, "type", v)
	}
	slogger().Debug("wgpu: released", "kind", kind, "id", id)
}
