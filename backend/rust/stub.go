//go:build !rust

package rust

// Probe reports ErrNotCompiled; build with -tags rust to probe
// wgpu-native.
func Probe() (*AdapterInfo, error) {
	return nil, ErrNotCompiled
}
