package format

import "strings"

// Support is the set of layouts a hardware block handles for a format.
type Support uint8

const (
	// SupportLinear means uncompressed layouts are handled.
	SupportLinear Support = 1 << iota

	// SupportCompressed means AFBC layouts are handled, including the
	// internal YUV transform.
	SupportCompressed

	// SupportCompressedAltSwizzle means AFBC layouts are handled without
	// the internal YUV transform.
	SupportCompressedAltSwizzle
)

// SupportNone is the empty support set.
const SupportNone Support = 0

// SupportAll has every support bit set.
const SupportAll = SupportLinear | SupportCompressed | SupportCompressedAltSwizzle

// Has reports whether all bits of o are present in s.
func (s Support) Has(o Support) bool { return s&o == o }

// CanCompress reports whether any AFBC layout is handled.
func (s Support) CanCompress() bool {
	return s&(SupportCompressed|SupportCompressedAltSwizzle) != 0
}

// WithoutCompression clears the AFBC bits.
func (s Support) WithoutCompression() Support {
	return s &^ (SupportCompressed | SupportCompressedAltSwizzle)
}

// String returns a "|"-separated list of the set bits.
func (s Support) String() string {
	if s == SupportNone {
		return "NONE"
	}
	var parts []string
	if s&SupportLinear != 0 {
		parts = append(parts, "LIN")
	}
	if s&SupportCompressed != 0 {
		parts = append(parts, "AFBC")
	}
	if s&SupportCompressedAltSwizzle != 0 {
		parts = append(parts, "AFBC_ALT")
	}
	return strings.Join(parts, "|")
}

// IPSupport lists per hardware block and direction which layouts of a
// base format can be handled.
type IPSupport struct {
	ID BaseFormat

	CPUWrite, CPURead Support
	GPUWrite, GPURead Support
	DPUWrite, DPURead Support

	// DPUAEUWrite is the display compression engine, a producer only.
	DPUAEUWrite Support

	VPUWrite, VPURead Support

	// CAMWrite is the camera ISP, a producer only.
	CAMWrite Support
}

const (
	lin     = SupportLinear
	afbc    = SupportCompressed | SupportCompressedAltSwizzle
	alt     = SupportCompressedAltSwizzle
	linAFBC = lin | afbc
)

var ipSupport = [...]IPSupport{
	{ID: RGB565, CPUWrite: lin, CPURead: lin, GPUWrite: linAFBC, GPURead: linAFBC, DPUWrite: lin, DPURead: lin | alt, DPUAEUWrite: afbc},
	{ID: RGB888, CPUWrite: lin, CPURead: lin, GPUWrite: linAFBC, GPURead: linAFBC, DPUWrite: lin, DPURead: lin | alt, DPUAEUWrite: afbc},
	{ID: RGBA8888, CPUWrite: lin, CPURead: lin, GPUWrite: linAFBC, GPURead: linAFBC, DPUWrite: lin, DPURead: linAFBC, DPUAEUWrite: afbc, VPURead: lin},
	{ID: BGRA8888, CPUWrite: lin, CPURead: lin, GPUWrite: linAFBC, GPURead: linAFBC, DPUWrite: lin, DPURead: linAFBC, DPUAEUWrite: afbc, VPURead: lin},
	{ID: RGBX8888, CPUWrite: lin, CPURead: lin, GPUWrite: linAFBC, GPURead: linAFBC, DPUWrite: lin, DPURead: linAFBC, DPUAEUWrite: afbc, VPURead: lin},
	{ID: RGBA1010102, CPUWrite: lin, CPURead: lin, GPUWrite: linAFBC, GPURead: linAFBC, DPUWrite: lin, DPURead: linAFBC, DPUAEUWrite: afbc},
	{ID: RGBA16161616, CPUWrite: lin, CPURead: lin, GPUWrite: linAFBC, GPURead: linAFBC},
	{ID: YUV420_8BIT_I, GPUWrite: afbc, GPURead: afbc, DPURead: afbc, DPUAEUWrite: afbc, VPUWrite: afbc, VPURead: afbc},
	{ID: YUV420_10BIT_I, GPUWrite: afbc, GPURead: afbc, DPURead: afbc, DPUAEUWrite: afbc, VPUWrite: afbc, VPURead: afbc},
	{ID: YUV422_8BIT, CPUWrite: lin, CPURead: lin, GPUWrite: linAFBC, GPURead: linAFBC, DPURead: lin, VPUWrite: lin, VPURead: lin},
	{ID: Y210, CPUWrite: lin, CPURead: lin, GPUWrite: linAFBC, GPURead: linAFBC, DPURead: lin, VPUWrite: linAFBC, VPURead: linAFBC},
	{ID: Y410, CPUWrite: lin, CPURead: lin, GPUWrite: lin, GPURead: lin},
	{ID: Y0L2, CPUWrite: lin, CPURead: lin, GPUWrite: lin, GPURead: lin, VPUWrite: lin, VPURead: lin},
	{ID: NV12, CPUWrite: lin, CPURead: lin, GPUWrite: linAFBC, GPURead: linAFBC, DPURead: linAFBC, VPUWrite: linAFBC, VPURead: linAFBC, CAMWrite: lin},
	{ID: NV21, CPUWrite: lin, CPURead: lin, GPUWrite: lin, GPURead: linAFBC, DPURead: lin, VPUWrite: lin, VPURead: lin, CAMWrite: lin},
	{ID: NV16, CPUWrite: lin, CPURead: lin, GPUWrite: lin, GPURead: lin, DPURead: lin, VPUWrite: lin, VPURead: lin},
	{ID: P010, CPUWrite: lin, CPURead: lin, GPUWrite: lin, GPURead: lin, DPURead: lin, VPUWrite: lin, VPURead: lin},
	{ID: P210, CPUWrite: lin, CPURead: lin, GPUWrite: lin, GPURead: lin, VPUWrite: lin, VPURead: lin},
	{ID: YV12, CPUWrite: lin, CPURead: lin, GPUWrite: linAFBC, GPURead: linAFBC, DPURead: lin, VPUWrite: lin, VPURead: lin, CAMWrite: lin},
	{ID: Y8, CPUWrite: lin, CPURead: lin, GPUWrite: lin, GPURead: lin, CAMWrite: lin},
	{ID: Y16, CPUWrite: lin, CPURead: lin, GPUWrite: lin, GPURead: lin, CAMWrite: lin},
	{ID: RAW16, CPUWrite: lin, CPURead: lin, CAMWrite: lin},
	{ID: RAW12, CPUWrite: lin, CPURead: lin, CAMWrite: lin},
	{ID: RAW10, CPUWrite: lin, CPURead: lin, CAMWrite: lin},
	{ID: BLOB, CPUWrite: lin, CPURead: lin, GPUWrite: lin, GPURead: lin, VPUWrite: lin, VPURead: lin, CAMWrite: lin},
	{ID: Depth16, CPUWrite: lin, CPURead: lin, GPUWrite: lin, GPURead: lin},
	{ID: Depth24, CPUWrite: lin, CPURead: lin, GPUWrite: lin, GPURead: lin},
	{ID: Depth24Stencil8, CPUWrite: lin, CPURead: lin, GPUWrite: lin, GPURead: lin},
	{ID: Depth32F, CPUWrite: lin, CPURead: lin, GPUWrite: lin, GPURead: lin},
	{ID: Depth32FStencil8, CPUWrite: lin, CPURead: lin, GPUWrite: lin, GPURead: lin},
	{ID: Stencil8, CPUWrite: lin, CPURead: lin, GPUWrite: lin, GPURead: lin},
}

var ipSupportIndex = func() map[BaseFormat]int {
	m := make(map[BaseFormat]int, len(ipSupport))
	for i := range ipSupport {
		m[ipSupport[i].ID] = i
	}
	return m
}()

// LookupIP returns the hardware support entry of f.
func LookupIP(f BaseFormat) (IPSupport, bool) {
	i, ok := ipSupportIndex[f]
	if !ok {
		return IPSupport{}, false
	}
	return ipSupport[i], true
}
