package native

import "fmt"

// Kind tags the resource class an ID belongs to.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInstance
	KindAdapter
	KindDevice
	KindQueue
	KindTexture
	KindTextureView
	KindBindGroupLayout
	KindBindGroup
	KindShaderModule
	KindPipelineLayout
	KindBlendState
	KindDepthStencilState
	KindRenderPipeline
	KindComputePipeline
	KindCommandBuffer
	KindRenderPass
	KindComputePass

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid:           "Invalid",
	KindInstance:          "Instance",
	KindAdapter:           "Adapter",
	KindDevice:            "Device",
	KindQueue:             "Queue",
	KindTexture:           "Texture",
	KindTextureView:       "TextureView",
	KindBindGroupLayout:   "BindGroupLayout",
	KindBindGroup:         "BindGroup",
	KindShaderModule:      "ShaderModule",
	KindPipelineLayout:    "PipelineLayout",
	KindBlendState:        "BlendState",
	KindDepthStencilState: "DepthStencilState",
	KindRenderPipeline:    "RenderPipeline",
	KindComputePipeline:   "ComputePipeline",
	KindCommandBuffer:     "CommandBuffer",
	KindRenderPass:        "RenderPass",
	KindComputePass:       "ComputePass",
}

// String returns the kind name.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindInstance; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
