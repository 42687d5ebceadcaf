package wgsafe

import (
	"fmt"

	"github.com/gogpu/naga"

	"github.com/gogpu/wgsafe/native"
)

// CreateShaderModule creates a shader module from SPIR-V bytes.
// The bytes are borrowed for the duration of the call.
func (d *Device) CreateShaderModule(spv []byte) *ShaderModule {
	dev := d.live()
	var id native.ID
	marshalShaderModule(spv, func(flat *native.ShaderModuleDescriptor) {
		id = d.api.DeviceCreateShaderModule(dev, flat)
	})
	return wrap[ShaderModule](d.api, native.KindShaderModule, id)
}

// ShaderOption configures WGSL compilation.
type ShaderOption func(*naga.CompileOptions)

// WithShaderDebug emits debug names and line info into the SPIR-V.
func WithShaderDebug(enabled bool) ShaderOption {
	return func(o *naga.CompileOptions) {
		o.Debug = enabled
	}
}

// WithShaderValidation toggles IR validation before code generation.
// Validation is on by default.
func WithShaderValidation(enabled bool) ShaderOption {
	return func(o *naga.CompileOptions) {
		o.Validate = enabled
	}
}

// CompileWGSL translates WGSL source to SPIR-V bytes.
func CompileWGSL(source string, opts ...ShaderOption) ([]byte, error) {
	o := naga.DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	spv, err := naga.CompileWithOptions(source, o)
	if err != nil {
		return nil, fmt.Errorf("wgsafe: compile WGSL: %w", err)
	}
	return spv, nil
}

// CreateShaderModuleWGSL compiles WGSL source and creates a shader module
// from the result. No native call is made if compilation fails.
func (d *Device) CreateShaderModuleWGSL(source string, opts ...ShaderOption) (*ShaderModule, error) {
	d.live()
	spv, err := CompileWGSL(source, opts...)
	if err != nil {
		return nil, err
	}
	Logger().Debug("wgsafe: compiled WGSL", "bytes", len(spv))
	return d.CreateShaderModule(spv), nil
}
