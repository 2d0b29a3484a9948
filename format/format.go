// Package format describes the base pixel formats known to the allocator,
// the compression modifiers that can be applied to them and which hardware
// blocks can read or write each of them.
//
// The descriptor and IP support tables are immutable and ordered. Table
// order matters: format selection breaks ties between equally graded
// candidates by taking the one that appears first.
package format

import (
	"fmt"
	"strings"
)

// BaseFormat identifies a pixel layout without compression modifiers.
//
// Public HAL pixel format values are used unchanged where a HAL value
// exists; 0x100 to 0x1FF are allocator-private formats.
type BaseFormat uint32

const (
	// Undefined is the zero format. Selection returns it on failure.
	Undefined BaseFormat = 0

	RGBA8888 BaseFormat = 0x1
	RGBX8888 BaseFormat = 0x2
	RGB888   BaseFormat = 0x3
	RGB565   BaseFormat = 0x4
	BGRA8888 BaseFormat = 0x5

	// NV16 is semi-planar 4:2:2 with interleaved CbCr.
	NV16 BaseFormat = 0x10

	// RGBA16161616 is 64-bit RGBA with 16 bits per channel.
	RGBA16161616 BaseFormat = 0x16

	RAW16 BaseFormat = 0x20

	// BLOB is an opaque byte buffer. Its height must be 1.
	BLOB BaseFormat = 0x21

	RAW10 BaseFormat = 0x25
	RAW12 BaseFormat = 0x26

	RGBA1010102 BaseFormat = 0x2B

	Depth16          BaseFormat = 0x30
	Depth24          BaseFormat = 0x31
	Depth24Stencil8  BaseFormat = 0x32
	Depth32F         BaseFormat = 0x33
	Depth32FStencil8 BaseFormat = 0x34
	Stencil8         BaseFormat = 0x35

	Y8   BaseFormat = 0x20203859
	Y16  BaseFormat = 0x20363159
	YV12 BaseFormat = 0x32315659

	// NV12 is semi-planar 4:2:0 with interleaved CbCr.
	NV12 BaseFormat = 0x100

	// NV21 is semi-planar 4:2:0 with interleaved CrCb.
	NV21 BaseFormat = 0x101

	// YUV422_8BIT is packed 4:2:2 (YUYV).
	YUV422_8BIT BaseFormat = 0x102

	// Y0L2 is packed 10-bit 4:2:0 in 2x2 tiles.
	Y0L2 BaseFormat = 0x103

	P010 BaseFormat = 0x104
	P210 BaseFormat = 0x105
	Y210 BaseFormat = 0x106
	Y410 BaseFormat = 0x107

	// YUV420_8BIT_I is 8-bit 4:2:0 that only exists in compressed form.
	YUV420_8BIT_I BaseFormat = 0x108

	// YUV420_10BIT_I is 10-bit 4:2:0 that only exists in compressed form.
	YUV420_10BIT_I BaseFormat = 0x109
)

var baseFormatNames = map[BaseFormat]string{
	Undefined:        "UNDEFINED",
	RGBA8888:         "RGBA_8888",
	RGBX8888:         "RGBX_8888",
	RGB888:           "RGB_888",
	RGB565:           "RGB_565",
	BGRA8888:         "BGRA_8888",
	NV16:             "NV16",
	RGBA16161616:     "RGBA_16161616",
	RAW16:            "RAW16",
	BLOB:             "BLOB",
	RAW10:            "RAW10",
	RAW12:            "RAW12",
	RGBA1010102:      "RGBA_1010102",
	Depth16:          "DEPTH_16",
	Depth24:          "DEPTH_24",
	Depth24Stencil8:  "DEPTH_24_STENCIL_8",
	Depth32F:         "DEPTH_32F",
	Depth32FStencil8: "DEPTH_32F_STENCIL_8",
	Stencil8:         "STENCIL_8",
	Y8:               "Y8",
	Y16:              "Y16",
	YV12:             "YV12",
	NV12:             "NV12",
	NV21:             "NV21",
	YUV422_8BIT:      "YUV422_8BIT",
	Y0L2:             "Y0L2",
	P010:             "P010",
	P210:             "P210",
	Y210:             "Y210",
	Y410:             "Y410",
	YUV420_8BIT_I:    "YUV420_8BIT_I",
	YUV420_10BIT_I:   "YUV420_10BIT_I",
}

// String returns the conventional name of the format.
func (f BaseFormat) String() string {
	if name, ok := baseFormatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("0x%X", uint32(f))
}

// IsValid reports whether the format has a descriptor table entry.
func (f BaseFormat) IsValid() bool {
	_, ok := descriptorIndex[f]
	return ok
}

// IsVideo reports whether the video codec produces and consumes f
// directly.
func (f BaseFormat) IsVideo() bool {
	switch f {
	case NV12, NV16, YUV420_8BIT_I, YUV420_10BIT_I, YUV422_8BIT, Y210:
		return true
	}
	return false
}

// ParseBaseFormat looks a format up by name. Matching ignores case and
// treats '-' like '_'. Hexadecimal ids of the form 0x... are accepted too.
func ParseBaseFormat(name string) (BaseFormat, error) {
	key := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
	for f, n := range baseFormatNames {
		if n == key || strings.ReplaceAll(n, "_", "") == key {
			if f == Undefined {
				break
			}
			return f, nil
		}
	}
	var id uint32
	if _, err := fmt.Sscanf(key, "0X%X", &id); err == nil && BaseFormat(id).IsValid() {
		return BaseFormat(id), nil
	}
	return Undefined, wrapf(ErrInvalidFormat, "unknown format name %q", name)
}
