// Package rust probes the wgpu-native (Rust) implementation through
// go-webgpu/webgpu.
//
// The native layer of wgsafe mirrors the wgpu-native entry points; this
// package checks that the shared library can be loaded on the current
// machine and reports the adapter it would select. The probe is compiled
// only with the "rust" build tag:
//
//	// Build with: go build -tags rust
//	info, err := rust.Probe()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Println(info)
//
// Without the tag Probe returns ErrNotCompiled.
package rust
