// Package usage defines the buffer usage bitmask callers pass to the
// allocator.
//
// Public bits follow the HAL gralloc usage values. Bits inside PrivateMask
// are allocator-private; they steer layout decisions but never describe a
// producer or consumer.
package usage

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
)

// Usage is a 64-bit buffer usage bitmask.
type Usage uint64

// Public usage bits.
const (
	SWReadNever  Usage = 0x0
	SWReadRarely Usage = 0x2
	SWReadOften  Usage = 0x3
	SWReadMask   Usage = 0xF

	SWWriteNever  Usage = 0x0
	SWWriteRarely Usage = 0x20
	SWWriteOften  Usage = 0x30
	SWWriteMask   Usage = 0xF0

	HWTexture        Usage = 0x100
	HWRender         Usage = 0x200
	HW2D             Usage = 0x400
	HWComposer       Usage = 0x800
	HWFramebuffer    Usage = 0x1000
	ExternalDisplay  Usage = 0x2000
	Protected        Usage = 0x4000
	Cursor           Usage = 0x8000
	HWVideoEncoder   Usage = 0x10000
	HWCameraWrite    Usage = 0x20000
	HWCameraRead     Usage = 0x40000
	RenderScript     Usage = 0x100000
	HWVideoDecoder   Usage = 0x400000
	SensorDirectData Usage = 0x800000
	GPUDataBuffer    Usage = 0x1000000
)

// Decoder is the combination a video decoder sets on its output buffers.
const Decoder = HWTexture | HWComposer | HWVideoDecoder

// PrivateMask covers the vendor-reserved usage ranges.
const PrivateMask Usage = 0xF0000000 | 0xFFFF<<48

// Allocator-private usage bits.
const (
	// NoAFBC forbids compression. Both bits must be set.
	NoAFBC Usage = 1<<29 | 1<<30

	// FrontBuffer requests a layout that is safe to scan out while being
	// written.
	FrontBuffer Usage = 1 << 52

	// ForceBackbuffer opts a framebuffer out of front-buffer handling.
	ForceBackbuffer Usage = 1 << 53

	// AFBCPadding widens compressed allocations to 4 superblocks.
	AFBCPadding Usage = 1 << 54

	// PrivateFormat means the requested format already carries modifiers.
	PrivateFormat Usage = 1 << 55

	// TrustedStride means the caller specified a stride that the video
	// hardware accepts without extra alignment.
	TrustedStride Usage = 1 << 56
)

// Valid is every usage bit the public API accepts.
const Valid = SWReadMask | SWWriteMask | HWTexture | HWRender | HW2D |
	HWComposer | HWFramebuffer | ExternalDisplay | Protected | Cursor |
	HWVideoEncoder | HWCameraWrite | HWCameraRead | RenderScript |
	HWVideoDecoder | SensorDirectData | GPUDataBuffer |
	NoAFBC | FrontBuffer | ForceBackbuffer | AFBCPadding | PrivateFormat |
	TrustedStride

// ErrInvalidUsage is returned for usage masks the allocator rejects.
var ErrInvalidUsage = errors.New("usage: invalid usage")

// Has reports whether all bits of o are set.
func (u Usage) Has(o Usage) bool { return u&o == o }

// Any reports whether at least one bit of o is set.
func (u Usage) Any(o Usage) bool { return u&o != 0 }

// Public returns u without private and protected bits.
func (u Usage) Public() Usage { return u &^ (PrivateMask | Protected) }

// CPUAccess reports whether the CPU reads or writes the buffer.
func (u Usage) CPUAccess() bool { return u.Any(SWReadMask | SWWriteMask) }

// HWAccess reports whether any hardware block other than the CPU
// accesses the buffer.
func (u Usage) HWAccess() bool {
	return u.Any(HWTexture | HWRender | HW2D | HWComposer | HWFramebuffer |
		HWVideoEncoder | HWCameraWrite | HWCameraRead | RenderScript |
		HWVideoDecoder | GPUDataBuffer)
}

// Validate returns ErrInvalidUsage when bits outside Valid are set.
func (u Usage) Validate() error {
	if extra := u &^ Valid; extra != 0 {
		return errors.Wrapf(ErrInvalidUsage, "unrecognized bits 0x%x", uint64(extra))
	}
	return nil
}

var usageNames = []struct {
	bit  Usage
	name string
}{
	{SWReadMask, "SW_READ"},
	{SWWriteMask, "SW_WRITE"},
	{HWTexture, "TEXTURE"},
	{HWRender, "RENDER"},
	{HW2D, "2D"},
	{HWComposer, "COMPOSER"},
	{HWFramebuffer, "FB"},
	{ExternalDisplay, "EXTERNAL_DISP"},
	{Protected, "PROTECTED"},
	{Cursor, "CURSOR"},
	{HWVideoEncoder, "VIDEO_ENCODER"},
	{HWCameraWrite, "CAMERA_WRITE"},
	{HWCameraRead, "CAMERA_READ"},
	{RenderScript, "RENDERSCRIPT"},
	{HWVideoDecoder, "VIDEO_DECODER"},
	{SensorDirectData, "SENSOR_DIRECT_DATA"},
	{GPUDataBuffer, "GPU_DATA_BUFFER"},
	{NoAFBC, "NO_AFBC"},
	{FrontBuffer, "FRONTBUFFER"},
	{ForceBackbuffer, "FORCE_BACKBUFFER"},
	{AFBCPadding, "AFBC_PADDING"},
	{PrivateFormat, "PRIVATE_FORMAT"},
	{TrustedStride, "TRUSTED_STRIDE"},
}

// String lists the named bits that are set, followed by any remainder.
func (u Usage) String() string {
	if u == 0 {
		return "0"
	}
	var parts []string
	rest := u
	for _, n := range usageNames {
		if u.Any(n.bit) && (n.bit != NoAFBC || u.Has(NoAFBC)) {
			parts = append(parts, n.name)
			rest &^= n.bit
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint64(rest)))
	}
	return strings.Join(parts, "|")
}

// TextureUsage translates the GPU-relevant bits into WebGPU texture
// usage flags.
func (u Usage) TextureUsage() gputypes.TextureUsage {
	var t gputypes.TextureUsage
	if u.Any(HWTexture) {
		t |= gputypes.TextureUsageTextureBinding
	}
	if u.Any(HWRender) {
		t |= gputypes.TextureUsageRenderAttachment
	}
	if u.Any(SWReadMask) {
		t |= gputypes.TextureUsageCopySrc
	}
	if u.Any(SWWriteMask) {
		t |= gputypes.TextureUsageCopyDst
	}
	return t
}
