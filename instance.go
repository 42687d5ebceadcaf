package wgsafe

import (
	"fmt"

	"github.com/gogpu/wgsafe/native"
)

// NewInstance creates an Instance on a native backend.
// If api accepts a logger, it receives the current wgsafe logger and
// follows SetLogger until the Instance is destroyed.
func NewInstance(api native.API) *Instance {
	if api == nil {
		panic(fmt.Errorf("%w: native API", ErrNilHandle))
	}
	trackBackend(api)
	return wrap[Instance](api, native.KindInstance, api.CreateInstance())
}

// Destroy releases the instance. Only the first call has an effect.
func (i *Instance) Destroy() {
	if i.Released() {
		return
	}
	i.resource.Destroy()
	untrackBackend(i.api)
}

// RequestAdapter selects an adapter. A nil descriptor uses defaults.
func (i *Instance) RequestAdapter(desc *AdapterDescriptor) *Adapter {
	id := i.api.InstanceGetAdapter(i.live(), orZero(desc))
	return wrap[Adapter](i.api, native.KindAdapter, id)
}

// CreateDevice opens a logical device. A nil descriptor uses defaults.
func (a *Adapter) CreateDevice(desc *DeviceDescriptor) *Device {
	id := a.api.AdapterCreateDevice(a.live(), orZero(desc))
	return wrap[Device](a.api, native.KindDevice, id)
}

// CreateView creates a view of the texture.
func (t *Texture) CreateView(desc *TextureViewDescriptor) *TextureView {
	id := t.api.TextureCreateTextureView(t.live(), orZero(desc))
	return wrap[TextureView](t.api, native.KindTextureView, id)
}

// CreateDefaultView creates a view covering the whole texture in its own
// format.
func (t *Texture) CreateDefaultView() *TextureView {
	id := t.api.TextureCreateDefaultTextureView(t.live())
	return wrap[TextureView](t.api, native.KindTextureView, id)
}
