package format

import "iter"

// MaxPlanes is the largest number of planes any format uses.
const MaxPlanes = 3

// Descriptor holds the static layout properties of a base format.
type Descriptor struct {
	// ID is the base format described.
	ID BaseFormat

	// PlaneCount is the number of separately addressed planes (1 to 3).
	PlaneCount uint8

	// Components is the number of components stored in each plane.
	Components [MaxPlanes]uint8

	// BitsPerSample is the precision of a single component.
	BitsPerSample uint8

	// BPP is the bits per pixel of each plane in the linear layout.
	// Zero for planes of formats that cannot be stored linearly.
	BPP [MaxPlanes]uint32

	// BPPCompressed is the bits per pixel of each plane under AFBC.
	// Zero for formats that cannot be compressed.
	BPPCompressed [MaxPlanes]uint32

	// HSub and VSub are the chroma subsampling factors.
	HSub, VSub uint32

	// AlignW and AlignH are the minimum pixel alignment of the luma plane.
	AlignW, AlignH uint32

	// AlignWCPU is the pixel width alignment required for CPU access.
	AlignWCPU uint32

	// TileSize is the side of the square tile pixels are packed in.
	TileSize uint32

	HasAlpha bool
	IsRGB    bool
	IsYUV    bool

	// Linear and Compressed report which layouts the format supports.
	Linear     bool
	Compressed bool

	// YUVTransform reports whether AFBC may apply its internal
	// RGB to YUV transform to this format.
	YUVTransform bool

	// Flex reports whether the format can be described as a flexible
	// YCbCr layout.
	Flex bool
}

// TotalComponents returns the number of components over all planes.
func (d Descriptor) TotalComponents() int {
	n := 0
	for i := 0; i < int(d.PlaneCount); i++ {
		n += int(d.Components[i])
	}
	return n
}

// IsSubsampledYUV reports whether the format is YUV with chroma
// subsampling in either direction.
func (d Descriptor) IsSubsampledYUV() bool {
	return d.IsYUV && (d.HSub > 1 || d.VSub > 1)
}

// BitsPerPixel returns plane 0 bits per pixel, preferring the linear
// value and falling back to the compressed one.
func (d Descriptor) BitsPerPixel() uint32 {
	if d.BPP[0] != 0 {
		return d.BPP[0]
	}
	return d.BPPCompressed[0]
}

var descriptors = [...]Descriptor{
	// 16-bit RGB
	{
		ID: RGB565, PlaneCount: 1, Components: [MaxPlanes]uint8{3}, BitsPerSample: 6,
		BPP: [MaxPlanes]uint32{16}, BPPCompressed: [MaxPlanes]uint32{16},
		HSub: 1, VSub: 1, AlignW: 1, AlignH: 1, AlignWCPU: 1, TileSize: 1,
		IsRGB: true, Linear: true, Compressed: true, YUVTransform: true,
	},
	// 24-bit RGB
	{
		ID: RGB888, PlaneCount: 1, Components: [MaxPlanes]uint8{3}, BitsPerSample: 8,
		BPP: [MaxPlanes]uint32{24}, BPPCompressed: [MaxPlanes]uint32{24},
		HSub: 1, VSub: 1, AlignW: 1, AlignH: 1, AlignWCPU: 1, TileSize: 1,
		IsRGB: true, Linear: true, Compressed: true, YUVTransform: true,
	},
	// 32-bit RGB(A)
	{
		ID: RGBA8888, PlaneCount: 1, Components: [MaxPlanes]uint8{4}, BitsPerSample: 8,
		BPP: [MaxPlanes]uint32{32}, BPPCompressed: [MaxPlanes]uint32{32},
		HSub: 1, VSub: 1, AlignW: 1, AlignH: 1, AlignWCPU: 1, TileSize: 1,
		HasAlpha: true, IsRGB: true, Linear: true, Compressed: true, YUVTransform: true,
	},
	{
		ID: BGRA8888, PlaneCount: 1, Components: [MaxPlanes]uint8{4}, BitsPerSample: 8,
		BPP: [MaxPlanes]uint32{32}, BPPCompressed: [MaxPlanes]uint32{32},
		HSub: 1, VSub: 1, AlignW: 1, AlignH: 1, AlignWCPU: 1, TileSize: 1,
		HasAlpha: true, IsRGB: true, Linear: true, Compressed: true,
	},
	{
		ID: RGBX8888, PlaneCount: 1, Components: [MaxPlanes]uint8{3}, BitsPerSample: 8,
		BPP: [MaxPlanes]uint32{32}, BPPCompressed: [MaxPlanes]uint32{32},
		HSub: 1, VSub: 1, AlignW: 1, AlignH: 1, AlignWCPU: 1, TileSize: 1,
		IsRGB: true, Linear: true, Compressed: true, YUVTransform: true,
	},
	{
		ID: RGBA1010102, PlaneCount: 1, Components: [MaxPlanes]uint8{4}, BitsPerSample: 10,
		BPP: [MaxPlanes]uint32{32}, BPPCompressed: [MaxPlanes]uint32{32},
		HSub: 1, VSub: 1, AlignW: 1, AlignH: 1, AlignWCPU: 1, TileSize: 1,
		HasAlpha: true, IsRGB: true, Linear: true, Compressed: true, YUVTransform: true,
	},
	// 64-bit RGBA
	{
		ID: RGBA16161616, PlaneCount: 1, Components: [MaxPlanes]uint8{4}, BitsPerSample: 16,
		BPP: [MaxPlanes]uint32{64}, BPPCompressed: [MaxPlanes]uint32{64},
		HSub: 1, VSub: 1, AlignW: 1, AlignH: 1, AlignWCPU: 1, TileSize: 1,
		HasAlpha: true, IsRGB: true, Linear: true, Compressed: true, YUVTransform: true,
	},
	// Single plane YUV 4:2:0, compressed only
	{
		ID: YUV420_8BIT_I, PlaneCount: 1, Components: [MaxPlanes]uint8{3}, BitsPerSample: 8,
		BPPCompressed: [MaxPlanes]uint32{12},
		HSub: 2, VSub: 2, AlignW: 2, AlignH: 2, AlignWCPU: 1, TileSize: 1,
		IsYUV: true, Compressed: true,
	},
	{
		ID: YUV420_10BIT_I, PlaneCount: 1, Components: [MaxPlanes]uint8{3}, BitsPerSample: 10,
		BPPCompressed: [MaxPlanes]uint32{15},
		HSub: 2, VSub: 2, AlignW: 2, AlignH: 2, AlignWCPU: 1, TileSize: 1,
		IsYUV: true, Compressed: true,
	},
	// Single plane YUV 4:2:2
	{
		ID: YUV422_8BIT, PlaneCount: 1, Components: [MaxPlanes]uint8{3}, BitsPerSample: 8,
		BPP: [MaxPlanes]uint32{16}, BPPCompressed: [MaxPlanes]uint32{16},
		HSub: 2, VSub: 1, AlignW: 2, AlignH: 1, AlignWCPU: 1, TileSize: 1,
		IsYUV: true, Linear: true, Compressed: true, Flex: true,
	},
	{
		ID: Y210, PlaneCount: 1, Components: [MaxPlanes]uint8{3}, BitsPerSample: 10,
		BPP: [MaxPlanes]uint32{32}, BPPCompressed: [MaxPlanes]uint32{20},
		HSub: 2, VSub: 1, AlignW: 2, AlignH: 1, AlignWCPU: 1, TileSize: 1,
		IsYUV: true, Linear: true, Compressed: true, Flex: true,
	},
	// Single plane YUV 4:4:4
	{
		ID: Y410, PlaneCount: 1, Components: [MaxPlanes]uint8{4}, BitsPerSample: 10,
		BPP: [MaxPlanes]uint32{32},
		HSub: 1, VSub: 1, AlignW: 1, AlignH: 1, AlignWCPU: 1, TileSize: 1,
		HasAlpha: true, IsYUV: true, Linear: true, Flex: true,
	},
	// Packed 10-bit 4:2:0 in 2x2 tiles
	{
		ID: Y0L2, PlaneCount: 1, Components: [MaxPlanes]uint8{4}, BitsPerSample: 10,
		BPP: [MaxPlanes]uint32{16},
		HSub: 2, VSub: 2, AlignW: 2, AlignH: 2, AlignWCPU: 1, TileSize: 2,
		HasAlpha: true, IsYUV: true, Linear: true,
	},
	// Semi-planar YUV
	{
		ID: NV12, PlaneCount: 2, Components: [MaxPlanes]uint8{1, 2}, BitsPerSample: 8,
		BPP: [MaxPlanes]uint32{8, 16}, BPPCompressed: [MaxPlanes]uint32{8, 16},
		HSub: 2, VSub: 2, AlignW: 2, AlignH: 2, AlignWCPU: 16, TileSize: 1,
		IsYUV: true, Linear: true, Compressed: true, Flex: true,
	},
	{
		ID: NV21, PlaneCount: 2, Components: [MaxPlanes]uint8{1, 2}, BitsPerSample: 8,
		BPP: [MaxPlanes]uint32{8, 16}, BPPCompressed: [MaxPlanes]uint32{8, 16},
		HSub: 2, VSub: 2, AlignW: 2, AlignH: 2, AlignWCPU: 16, TileSize: 1,
		IsYUV: true, Linear: true, Compressed: true, Flex: true,
	},
	{
		ID: NV16, PlaneCount: 2, Components: [MaxPlanes]uint8{1, 2}, BitsPerSample: 8,
		BPP: [MaxPlanes]uint32{8, 16}, BPPCompressed: [MaxPlanes]uint32{8, 16},
		HSub: 2, VSub: 1, AlignW: 2, AlignH: 1, AlignWCPU: 16, TileSize: 1,
		IsYUV: true, Linear: true, Compressed: true, Flex: true,
	},
	{
		ID: P010, PlaneCount: 2, Components: [MaxPlanes]uint8{1, 2}, BitsPerSample: 10,
		BPP: [MaxPlanes]uint32{16, 32},
		HSub: 2, VSub: 2, AlignW: 2, AlignH: 2, AlignWCPU: 16, TileSize: 1,
		IsYUV: true, Linear: true, Flex: true,
	},
	{
		ID: P210, PlaneCount: 2, Components: [MaxPlanes]uint8{1, 2}, BitsPerSample: 10,
		BPP: [MaxPlanes]uint32{16, 32},
		HSub: 2, VSub: 1, AlignW: 2, AlignH: 1, AlignWCPU: 16, TileSize: 1,
		IsYUV: true, Linear: true, Flex: true,
	},
	// Planar YUV
	{
		ID: YV12, PlaneCount: 3, Components: [MaxPlanes]uint8{1, 1, 1}, BitsPerSample: 8,
		BPP: [MaxPlanes]uint32{8, 8, 8}, BPPCompressed: [MaxPlanes]uint32{8, 8, 8},
		HSub: 2, VSub: 2, AlignW: 2, AlignH: 2, AlignWCPU: 16, TileSize: 1,
		IsYUV: true, Linear: true, Compressed: true, Flex: true,
	},
	// Luma only
	{
		ID: Y8, PlaneCount: 1, Components: [MaxPlanes]uint8{1}, BitsPerSample: 8,
		BPP: [MaxPlanes]uint32{8},
		HSub: 1, VSub: 1, AlignW: 2, AlignH: 2, AlignWCPU: 16, TileSize: 1,
		IsYUV: true, Linear: true, Flex: true,
	},
	{
		ID: Y16, PlaneCount: 1, Components: [MaxPlanes]uint8{1}, BitsPerSample: 16,
		BPP: [MaxPlanes]uint32{16},
		HSub: 1, VSub: 1, AlignW: 2, AlignH: 2, AlignWCPU: 16, TileSize: 1,
		IsYUV: true, Linear: true, Flex: true,
	},
	// Camera raw and opaque data
	{
		ID: RAW16, PlaneCount: 1, Components: [MaxPlanes]uint8{1}, BitsPerSample: 16,
		BPP: [MaxPlanes]uint32{16},
		HSub: 1, VSub: 1, AlignW: 2, AlignH: 2, AlignWCPU: 16, TileSize: 1,
		Linear: true,
	},
	{
		ID: RAW12, PlaneCount: 1, Components: [MaxPlanes]uint8{1}, BitsPerSample: 12,
		BPP: [MaxPlanes]uint32{12},
		HSub: 1, VSub: 1, AlignW: 4, AlignH: 2, AlignWCPU: 4, TileSize: 1,
		Linear: true,
	},
	{
		ID: RAW10, PlaneCount: 1, Components: [MaxPlanes]uint8{1}, BitsPerSample: 10,
		BPP: [MaxPlanes]uint32{10},
		HSub: 1, VSub: 1, AlignW: 4, AlignH: 2, AlignWCPU: 4, TileSize: 1,
		Linear: true,
	},
	{
		ID: BLOB, PlaneCount: 1, Components: [MaxPlanes]uint8{1}, BitsPerSample: 8,
		BPP: [MaxPlanes]uint32{8},
		HSub: 1, VSub: 1, AlignW: 1, AlignH: 1, AlignWCPU: 1, TileSize: 1,
		Linear: true,
	},
	// Depth and stencil
	{
		ID: Depth16, PlaneCount: 1, Components: [MaxPlanes]uint8{1}, BitsPerSample: 16,
		BPP: [MaxPlanes]uint32{16},
		HSub: 1, VSub: 1, AlignW: 1, AlignH: 1, AlignWCPU: 1, TileSize: 1,
		Linear: true,
	},
	{
		ID: Depth24, PlaneCount: 1, Components: [MaxPlanes]uint8{1}, BitsPerSample: 24,
		BPP: [MaxPlanes]uint32{24},
		HSub: 1, VSub: 1, AlignW: 1, AlignH: 1, AlignWCPU: 1, TileSize: 1,
		Linear: true,
	},
	{
		ID: Depth24Stencil8, PlaneCount: 1, Components: [MaxPlanes]uint8{2}, BitsPerSample: 24,
		BPP: [MaxPlanes]uint32{32},
		HSub: 1, VSub: 1, AlignW: 1, AlignH: 1, AlignWCPU: 1, TileSize: 1,
		Linear: true,
	},
	{
		ID: Depth32F, PlaneCount: 1, Components: [MaxPlanes]uint8{1}, BitsPerSample: 32,
		BPP: [MaxPlanes]uint32{32},
		HSub: 1, VSub: 1, AlignW: 1, AlignH: 1, AlignWCPU: 1, TileSize: 1,
		Linear: true,
	},
	{
		ID: Depth32FStencil8, PlaneCount: 1, Components: [MaxPlanes]uint8{2}, BitsPerSample: 32,
		BPP: [MaxPlanes]uint32{64},
		HSub: 1, VSub: 1, AlignW: 1, AlignH: 1, AlignWCPU: 1, TileSize: 1,
		Linear: true,
	},
	{
		ID: Stencil8, PlaneCount: 1, Components: [MaxPlanes]uint8{1}, BitsPerSample: 8,
		BPP: [MaxPlanes]uint32{8},
		HSub: 1, VSub: 1, AlignW: 1, AlignH: 1, AlignWCPU: 1, TileSize: 1,
		Linear: true,
	},
}

// descriptorIndex maps a base format to its position in descriptors.
var descriptorIndex = func() map[BaseFormat]int {
	m := make(map[BaseFormat]int, len(descriptors))
	for i := range descriptors {
		m[descriptors[i].ID] = i
	}
	return m
}()

// Lookup returns the descriptor of f.
func Lookup(f BaseFormat) (Descriptor, bool) {
	i, ok := descriptorIndex[f]
	if !ok {
		return Descriptor{}, false
	}
	return descriptors[i], true
}

// Descriptors yields every descriptor in table order.
func Descriptors() iter.Seq[Descriptor] {
	return func(yield func(Descriptor) bool) {
		for i := range descriptors {
			if !yield(descriptors[i]) {
				return
			}
		}
	}
}

// Info returns the descriptor of f, or the zero Descriptor when f is not
// in the table.
func (f BaseFormat) Info() Descriptor {
	d, _ := Lookup(f)
	return d
}
