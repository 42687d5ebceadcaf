package rust

import "errors"

var (
	// ErrNotCompiled is returned when the package was built without the
	// rust build tag.
	ErrNotCompiled = errors.New("rust: built without the rust tag")

	// ErrLibraryNotFound is returned when wgpu-native cannot be loaded.
	ErrLibraryNotFound = errors.New("rust: wgpu-native library not found")

	// ErrNoGPU is returned when no adapter is available.
	ErrNoGPU = errors.New("rust: no GPU adapter available")
)
