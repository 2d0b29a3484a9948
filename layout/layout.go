// Package layout computes plane strides, offsets and total sizes for
// buffer allocations, both linear and AFBC compressed.
package layout

import (
	"github.com/cockroachdb/errors"
	"github.com/gogpu/gralloc/format"
	"github.com/gogpu/gralloc/internal/align"
)

// Stride and size alignment constants.
const (
	hwStrideAlign    = 64
	hwStrideAlignYUV = 128

	superblockBodyAlign = 128
	headerBytesPerBlock = 16

	planeAlign      = 1024
	planeAlignTiled = 4096

	layerAlign      = 128
	layerAlignTiled = 4096
)

// Request describes one layout computation.
type Request struct {
	Format format.AllocFormat

	Width, Height uint32

	// Layers is the array size. Zero is treated as one.
	Layers uint32

	CPUAccess bool
	HWAccess  bool

	// TrustedStride relaxes hardware stride alignment for video formats.
	TrustedStride bool

	// AFBCPadding widens compressed layouts to four superblocks.
	AFBCPadding bool
}

// Plane is the layout of a single plane.
type Plane struct {
	Offset      uint64
	ByteStride  uint32
	AllocWidth  uint32
	AllocHeight uint32
}

// Result is a computed layout.
type Result struct {
	// PixelStride is the plane 0 stride in pixels for CPU-accessible
	// linear buffers, zero otherwise.
	PixelStride uint32

	// Size is the total allocation size in bytes, including every layer.
	Size uint64

	Planes    []Plane
	AllocType AllocType
}

// Compute lays out req.
func Compute(req Request) (Result, error) {
	d, ok := format.Lookup(req.Format.Base)
	if !ok {
		return Result{}, errors.Wrapf(format.ErrInvalidFormat, "layout: no descriptor for %v", req.Format.Base)
	}
	if d.PlaneCount == 0 || int(d.PlaneCount) > format.MaxPlanes {
		return Result{}, assertionf("layout: %v has %d planes", req.Format.Base, d.PlaneCount)
	}

	t, err := Classify(req.Format, req.AFBCPadding)
	if err != nil {
		return Result{}, err
	}

	planes := make([]Plane, d.PlaneCount)
	var size uint64
	for p := range planes {
		w, h, err := pixelSize(d, t, p, req.Width, req.Height, req.CPUAccess)
		if err != nil {
			return Result{}, err
		}

		pl := Plane{Offset: size, AllocWidth: w, AllocHeight: h}
		var planeSize uint64
		if t.IsCompressed() {
			pl.ByteStride, planeSize, err = compressedPlane(d, t, p, w, h)
		} else {
			pl.ByteStride, pl.AllocWidth, err = linearStride(d, req, p, w, planes)
			planeSize = uint64(pl.ByteStride) * uint64(h)
		}
		if err != nil {
			return Result{}, err
		}

		planes[p] = pl
		size += planeSize
	}

	if req.Layers > 1 {
		if t.IsCompressed() {
			if t.Tiled {
				size = align.Up64(size, layerAlignTiled)
			} else {
				size = align.Up64(size, layerAlign)
			}
		}
		size *= uint64(req.Layers)
	}

	res := Result{Size: size, Planes: planes, AllocType: t}
	if req.CPUAccess && !t.IsCompressed() {
		res.PixelStride = planes[0].ByteStride * 8 / d.BPP[0]
	}
	return res, nil
}

// pixelSize returns the aligned pixel dimensions of a plane.
func pixelSize(d format.Descriptor, t AllocType, plane int, width, height uint32, cpu bool) (uint32, uint32, error) {
	if err := align.CheckPow2(d.AlignW, "format width alignment"); err != nil {
		return 0, 0, logAssertion(err)
	}
	if err := align.CheckPow2(d.AlignH, "format height alignment"); err != nil {
		return 0, 0, logAssertion(err)
	}

	w := align.Up(width, d.AlignW)
	h := align.Up(height, d.AlignH)
	if plane > 0 {
		w /= d.HSub
		h /= d.VSub
	}

	alignW, alignH := uint32(1), uint32(1)
	if t.IsCompressed() {
		sb := Superblock(t, plane)
		if t.Padded && !d.IsYUV {
			alignW = 4 * sb.Width
		}
		tile := sb
		if t.Tiled {
			factor := uint32(8)
			if d.BPPCompressed[plane] > 32 {
				factor = 4
			}
			tile = Rect{sb.Width * factor, sb.Height * factor}
		}
		if t.Primary == Wide && !t.Tiled {
			alignH = max(alignH, 16)
		}
		alignW = max(alignW, tile.Width)
		alignH = max(alignH, tile.Height)
		if cpu {
			alignW = max(alignW, d.AlignWCPU)
		}
	} else if cpu {
		alignW = max(alignW, d.AlignWCPU)
	}
	alignW = max(alignW, d.TileSize)
	alignH = max(alignH, d.TileSize)

	if err := align.CheckPow2(alignW, "pixel width alignment"); err != nil {
		return 0, 0, logAssertion(err)
	}
	if err := align.CheckPow2(alignH, "pixel height alignment"); err != nil {
		return 0, 0, logAssertion(err)
	}
	return align.Up(w, alignW), align.Up(h, alignH), nil
}

// compressedPlane returns the byte stride and size of a compressed plane,
// header included.
func compressedPlane(d format.Descriptor, t AllocType, plane int, w, h uint32) (uint32, uint64, error) {
	bpp := d.BPPCompressed[plane]
	if bpp == 0 {
		return 0, 0, assertionf("layout: %v plane %d has no compressed bpp", d.ID, plane)
	}
	if uint64(w)*uint64(bpp)%8 != 0 {
		return 0, 0, assertionf("layout: %v plane %d width %d is not byte aligned", d.ID, plane, w)
	}
	stride := w * bpp / 8

	boundary := uint64(planeAlign)
	if t.Tiled {
		boundary = planeAlignTiled
	}

	blocks := uint64(w) * uint64(h) / pixelsPerSuperblock
	body := blocks * uint64(align.Up(bpp*pixelsPerSuperblock/8, superblockBodyAlign))
	if plane < int(d.PlaneCount)-1 {
		body = align.Up64(body, boundary)
	}
	if t.FrontBufferSafe {
		body += align.Up64(body, boundary)
	}
	header := align.Up64(blocks*headerBytesPerBlock, boundary)
	return stride, header + body, nil
}

// linearStride returns the byte stride of a linear plane and the width
// it implies.
func linearStride(d format.Descriptor, req Request, plane int, w uint32, prev []Plane) (uint32, uint32, error) {
	bpp := d.BPP[plane]
	if bpp == 0 {
		return 0, 0, assertionf("layout: %v plane %d has no linear bpp", d.ID, plane)
	}
	stride := w * bpp / 8

	var hwAlign, cpuAlign uint32
	if req.HWAccess {
		switch {
		case req.TrustedStride && d.ID.IsVideo():
			hwAlign = 1
		case d.IsYUV:
			hwAlign = hwStrideAlignYUV
		default:
			hwAlign = hwStrideAlign
		}
	}
	if req.CPUAccess {
		cpuAlign = bpp * d.AlignWCPU / 8
	}

	strideAlign := align.LCM(hwAlign, cpuAlign)
	if strideAlign > 0 {
		tile := max(d.TileSize, 1)
		stride = align.Up(stride*tile, strideAlign) / tile
	}

	if d.ID == format.YV12 && req.HWAccess && req.CPUAccess {
		if plane == 0 {
			stride = align.Up(stride, 2*strideAlign)
		} else {
			stride = prev[0].ByteStride / 2
		}
	}
	return stride, stride * 8 / bpp, nil
}

func assertionf(msg string, args ...any) error {
	return logAssertion(errors.AssertionFailedf(msg, args...))
}

func logAssertion(err error) error {
	slogger().Error("layout: internal error", "err", err)
	return err
}
