// Package native defines the flat, identifier-based GPU interface that the
// safe wgsafe layer drives.
//
// Everything here mirrors a C ABI: resources are referenced by opaque
// [ID] values, arrays travel as a pointer plus a length, strings are
// NUL-terminated byte pointers, and optional records are nil pointers.
// Pointers handed to an [API] method are only valid for the duration of
// that call. Implementations must copy what they need and never retain
// the pointer.
//
// Callers normally never use this package directly. Backends such as
// backend/wgpu and backend/trace implement [API]; the bindgen package
// derives a C header from the declarations in this package.
package native
