// Package bindgen derives a C header from the flat native package.
//
// The header declares every exported record and enumeration of the
// package with a type prefix, maps native.ID to the WGPUId handle type
// and turns each method of the API interface into a free function:
//
//	header, err := bindgen.Generate(bindgen.Config{}, "github.com/gogpu/wgsafe/native")
//
// Named types from other packages that records use by value, such as
// gputypes.TextureFormat or gputypes.Extent3D, are emitted as well:
// integer types as typedefs of their underlying C type and structs in
// full.
package bindgen
