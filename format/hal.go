package format

import "github.com/gogpu/gralloc/usage"

// HAL pixel format values that do not map one-to-one onto a base format.
const (
	halYCrCb420SP            uint32 = 0x11
	halYCbCr422I             uint32 = 0x14
	halImplementationDefined uint32 = 0x22
	halYCbCr420888           uint32 = 0x23
	halYCbCrP010             uint32 = 0x36

	// Rockchip vendor extensions.
	halRKYCrCbNV12    uint32 = 0x15
	halRKYCrCbNV12_10 uint32 = 0x17
)

// FromHAL maps a public HAL pixel format to the base format the allocator
// works with. IMPLEMENTATION_DEFINED resolves to NV12 when a video encoder
// or the camera writes the buffer and to RGBX8888 otherwise. The Rockchip
// 10-bit NV12 extension is allocated as P010, which shares its plane
// sizes but not its sample packing.
func FromHAL(hal uint32, u usage.Usage) (BaseFormat, error) {
	switch hal {
	case halYCrCb420SP:
		return NV21, nil
	case halYCbCr422I:
		return YUV422_8BIT, nil
	case halYCbCrP010, halRKYCrCbNV12_10:
		return P010, nil
	case halYCbCr420888, halRKYCrCbNV12:
		return NV12, nil
	case halImplementationDefined:
		if u.Any(usage.HWVideoEncoder | usage.HWCameraWrite) {
			return NV12, nil
		}
		return RGBX8888, nil
	}
	if f := BaseFormat(hal); f != Undefined && f.IsValid() {
		return f, nil
	}
	return Undefined, wrapf(ErrInvalidFormat, "unsupported HAL format 0x%x", hal)
}
