// Package wgsafe is a safe client layer over an identifier-based native
// GPU interface.
//
// The native layer (package native) names every GPU object by an opaque
// ID and takes flat descriptors made of pointers and lengths. wgsafe puts
// three guarantees on top of it:
//
//   - Ownership. Each native ID is wrapped by exactly one handle
//     ([Device], [Texture], [RenderPipeline], ...). Destroy releases the ID
//     exactly once; descriptors only borrow handles.
//   - Marshalling. Descriptors are ordinary Go values with slices, strings
//     and handle pointers. They are flattened into native records that stay
//     valid for exactly one native call.
//   - Encoding order. A [CommandBuffer] can have at most one pass open.
//     Beginning a pass checks the buffer out; EndPass is the only way to get
//     it back, and a checked-out buffer cannot be submitted or destroyed.
//
// Misuse of the state machine or of released handles is a programming
// error and panics with an error wrapping one of the sentinel errors in
// this package. Capacity limits and shader compilation failures are
// returned as errors.
//
// # Quick Start
//
//	api := trace.New() // or backend/wgpu on real hardware
//	inst := wgsafe.NewInstance(api)
//	adapter := inst.RequestAdapter(&wgsafe.AdapterDescriptor{
//	    PowerPreference: gputypes.PowerPreferenceHighPerformance,
//	})
//	device := adapter.CreateDevice(&wgsafe.DeviceDescriptor{})
//
//	cb := device.CreateCommandBuffer(&wgsafe.CommandBufferDescriptor{})
//	pass := cb.BeginComputePass()
//	pass.SetPipeline(pipeline)
//	pass.SetBindGroup(0, bindGroup)
//	pass.Dispatch(8, 1, 1)
//	cb = pass.EndPass()
//
//	device.Queue().Submit(cb)
//
// # Logging
//
// wgsafe is silent by default. Use [SetLogger] to receive handle lifecycle
// events at debug level.
package wgsafe
