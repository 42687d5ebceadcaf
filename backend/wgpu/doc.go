// Package wgpu implements native.API on top of the gogpu/wgpu hardware
// abstraction layer.
//
// Every native ID names an object held in a process-wide registry:
// hal instances, devices, textures, pipelines and so on. Blend and
// depth-stencil states have no hal counterpart; they are stored as data
// and folded into the render pipelines that reference them.
//
// Command buffers map to hal command encoders. Submission finishes
// encoding and submits with a fence; finished command buffers are freed by
// DevicePoll. Native failures panic with a wrapped error, matching the
// abort contract of the native layer.
//
// Usage:
//
//	api, err := wgpu.Open(gputypes.BackendVulkan)
//	if err != nil {
//	    return err
//	}
//	inst := wgsafe.NewInstance(api)
//
// Tests can run the same code on the hal noop backend:
//
//	api := wgpu.New(&noop.API{})
package wgpu
