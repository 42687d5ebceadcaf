package wgsafe

import (
	"fmt"

	"github.com/gogpu/wgsafe/native"
)

// noCopy makes go vet's copylocks check flag handles copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// resource is the owning core embedded in every handle.
// id is zeroed when the handle gives its ID up, which makes release
// idempotent and turns later use into ErrReleased.
type resource struct {
	_    noCopy
	api  native.API
	kind native.Kind
	id   native.ID
}

func (r *resource) init(api native.API, kind native.Kind, id native.ID) {
	r.api = api
	r.kind = kind
	r.id = id
	Logger().Debug("wgsafe: created", "kind", kind, "id", id)
}

func (r *resource) base() *resource { return r }

// ID returns the native identifier for read-only use. It is the zero ID
// once the handle has been destroyed.
func (r *resource) ID() native.ID { return r.id }

// Released reports whether the handle no longer owns an ID.
func (r *resource) Released() bool { return r.id.IsZero() }

// live returns the owned ID or panics if it has been given up.
func (r *resource) live() native.ID {
	if r.id.IsZero() {
		panic(fmt.Errorf("%w: %s", ErrReleased, r.kind))
	}
	return r.id
}

// Destroy releases the native identifier. Only the first call reaches the
// native layer; later calls do nothing.
func (r *resource) Destroy() {
	if r.id.IsZero() {
		return
	}
	id := r.id
	r.id = native.ID{}
	r.api.Release(r.kind, id)
	Logger().Debug("wgsafe: released", "kind", r.kind, "id", id)
}

// forget drops the ID without releasing it, after ownership moved to the
// native layer.
func (r *resource) forget() native.ID {
	id := r.live()
	r.id = native.ID{}
	return id
}

// handle is satisfied by pointers to every handle type.
type handle[H any] interface {
	*H
	base() *resource
}

// wrap builds a handle owning id.
func wrap[H any, P handle[H]](api native.API, kind native.Kind, id native.ID) P {
	h := P(new(H))
	h.base().init(api, kind, id)
	return h
}

// borrow reads the ID of a handle referenced by a descriptor or call
// argument. Ownership stays with the handle.
func borrow[H any, P handle[H]](h P) native.ID {
	if h == nil {
		var zero H
		panic(fmt.Errorf("%w: %T", ErrNilHandle, &zero))
	}
	return h.base().live()
}

// borrowOptional is borrow with nil mapped to the zero ID.
func borrowOptional[H any, P handle[H]](h P) native.ID {
	if h == nil {
		return native.ID{}
	}
	return borrow[H, P](h)
}

func orZero[T any](p *T) *T {
	if p == nil {
		return new(T)
	}
	return p
}

// Instance is the root of the native object graph.
type Instance struct{ resource }

// Adapter is a physical GPU selected by an Instance.
type Adapter struct{ resource }

// Queue accepts finished command buffers. Every call to Device.Queue
// returns a new Queue handle with its own ID.
type Queue struct{ resource }

// Texture is a GPU image.
type Texture struct{ resource }

// TextureView is a typed window onto a Texture.
type TextureView struct{ resource }

// BindGroupLayout describes the slots of a bind group.
type BindGroupLayout struct{ resource }

// BindGroup is a set of resources bound together.
type BindGroup struct{ resource }

// ShaderModule holds compiled shader code.
type ShaderModule struct{ resource }

// PipelineLayout lists the bind group layouts a pipeline uses.
type PipelineLayout struct{ resource }

// BlendState is a reusable color blend configuration.
type BlendState struct{ resource }

// DepthStencilState is a reusable depth and stencil test configuration.
type DepthStencilState struct{ resource }

// RenderPipeline is a compiled render pipeline.
type RenderPipeline struct{ resource }

// ComputePipeline is a compiled compute pipeline.
type ComputePipeline struct{ resource }
