// Package gralloc selects buffer formats and computes buffer layouts for
// hardware blocks that share graphics buffers: the CPU, the GPU, the
// display processor and its AFBC encoder, the video codec and the camera.
//
// # Overview
//
// Callers describe a buffer by pixel format, usage bitmask and size. The
// usage determines which hardware roles produce and consume the buffer.
// The Allocator intersects the declared capabilities of those roles,
// picks the best compatible format with the richest set of AFBC
// (Arm Frame Buffer Compression) modifiers every role can handle, and
// lays out the planes.
//
// # Quick Start
//
//	import "github.com/gogpu/gralloc"
//
//	a := gralloc.New()
//	buf, err := a.Allocate(gralloc.BufferDescriptor{
//	    Width:  1920,
//	    Height: 1080,
//	    Format: uint32(format.RGBA8888),
//	    Usage:  usage.HWRender | usage.HWComposer | usage.HWTexture,
//	})
//
// # Capabilities
//
// Every role has a declared capability set. Sets come from providers
// registered with the capability package before first use, for example
// the GPU probe in capability/halprobe. Roles without a provider are
// undeclared and do not constrain the others; a buffer is only
// compressed when at least one of its roles is declared.
//
// Pass WithSnapshot to use a fixed snapshot instead of the process-wide
// one.
//
// # Logging
//
// gralloc produces no log output by default. Call SetLogger to enable
// it. Selection traces are logged at debug level, stripped modifiers and
// dimension warnings at warn level.
//
// # Sub-packages
//
//   - format: base formats, modifiers and the format tables
//   - usage: the usage bitmask
//   - capability: roles, capability sets, providers and negotiation
//   - capability/halprobe: GPU capabilities from a wgpu HAL adapter
//   - layout: stride, offset and size computation
package gralloc
