package gralloc

import (
	"log/slog"

	"github.com/gogpu/gralloc/capability"
	"github.com/gogpu/gralloc/format"
	"github.com/gogpu/gralloc/internal/align"
	"github.com/gogpu/gralloc/internal/selector"
	"github.com/gogpu/gralloc/layout"
	"github.com/gogpu/gralloc/usage"
)

// Video buffers scanned out by the display need this pixel alignment.
const displayVideoWidthAlign = 64

// gpuTileSize is the GPU tile edge compressed GPU output is padded to.
const gpuTileSize = 16

// BufferDescriptor describes a buffer request.
type BufferDescriptor struct {
	Width, Height uint32

	// Layers is the array size. Zero means one.
	Layers uint32

	// Format is a HAL pixel format. With usage.PrivateFormat, and for
	// SelectInternal, it is a format.BaseFormat value instead.
	Format uint32

	// Modifiers requested through the internal path.
	Modifiers format.Modifiers

	Usage usage.Usage
}

// Selection is the result of format selection.
type Selection struct {
	// Format is the format to allocate.
	Format format.AllocFormat

	// InternalFormat is the requested base format carrying the selected
	// modifiers. It differs from Format when the base was remapped.
	InternalFormat format.AllocFormat
}

// Buffer is a fully laid out buffer.
type Buffer struct {
	Format         format.AllocFormat
	InternalFormat format.AllocFormat

	// Width and Height are the requested dimensions.
	Width, Height uint32
	Layers        uint32

	// PixelStride is the plane 0 stride in pixels for CPU-accessible
	// linear buffers, zero otherwise.
	PixelStride uint32

	// Size is the total size in bytes.
	Size uint64

	Planes    []layout.Plane
	AllocType layout.AllocType
	Usage     usage.Usage
}

// Allocator selects formats and lays out buffers. It holds no mutable
// state and is safe for concurrent use.
type Allocator struct {
	resolver *capability.Resolver
	selector *selector.Selector
	log      *slog.Logger
}

// New creates an Allocator.
//
// Without WithSnapshot the process-wide snapshot is used, probing the
// registered providers on first use.
func New(opts ...Option) *Allocator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var snap capability.Snapshot
	if o.snapshot != nil {
		snap = *o.snapshot
	} else {
		snap = capability.Current()
	}

	r := capability.NewResolver(snap, o.display)
	return &Allocator{
		resolver: r,
		selector: selector.New(r, selector.Options{
			FramebufferAFBCDisabled: o.fbNoAFBC,
			ForceFramebufferBGRA:    o.fbForceBGRA,
		}),
		log: o.logger,
	}
}

func (a *Allocator) logger() *slog.Logger {
	if a.log != nil {
		return a.log
	}
	return Logger()
}

// Snapshot returns the capabilities the Allocator negotiates with.
func (a *Allocator) Snapshot() capability.Snapshot {
	return a.resolver.Snapshot()
}

// Select chooses the allocation format for desc.
func (a *Allocator) Select(desc BufferDescriptor) (Selection, error) {
	if desc.Usage.Has(usage.PrivateFormat) {
		return a.selectBase(format.BaseFormat(desc.Format), desc, false)
	}
	base, err := format.FromHAL(desc.Format, desc.Usage)
	if err != nil {
		return Selection{}, err
	}
	return a.selectBase(base, desc, false)
}

// SelectInternal is Select for callers that pass an internal base
// format with explicit modifiers. The modifiers are applied as given;
// capabilities are not consulted.
func (a *Allocator) SelectInternal(desc BufferDescriptor) (Selection, error) {
	return a.selectBase(format.BaseFormat(desc.Format), desc, true)
}

func (a *Allocator) selectBase(base format.BaseFormat, desc BufferDescriptor, internal bool) (Selection, error) {
	f, err := a.selector.Select(selector.Request{
		Base:      base,
		Usage:     desc.Usage,
		Modifiers: desc.Modifiers,
		Internal:  internal,
		Area:      uint64(desc.Width) * uint64(desc.Height),
	})
	if err != nil {
		return Selection{}, err
	}
	return Selection{
		Format:         f,
		InternalFormat: format.AllocFormat{Base: base, Modifiers: f.Modifiers},
	}, nil
}

// Allocate selects a format for desc and lays the buffer out.
func (a *Allocator) Allocate(desc BufferDescriptor) (Buffer, error) {
	sel, err := a.Select(desc)
	if err != nil {
		return Buffer{}, err
	}
	return a.layout(sel, desc)
}

// AllocateInternal is Allocate using SelectInternal.
func (a *Allocator) AllocateInternal(desc BufferDescriptor) (Buffer, error) {
	sel, err := a.SelectInternal(desc)
	if err != nil {
		return Buffer{}, err
	}
	return a.layout(sel, desc)
}

func (a *Allocator) layout(sel Selection, desc BufferDescriptor) (Buffer, error) {
	u := desc.Usage
	padded := u.Has(usage.AFBCPadding)

	t, err := layout.Classify(sel.Format, padded)
	if err != nil {
		return Buffer{}, err
	}
	if err := layout.Validate(sel.Format, t, desc.Height); err != nil {
		return Buffer{}, err
	}

	w, h := a.adjustDimensions(sel.Format, u, desc.Width, desc.Height)
	res, err := layout.Compute(layout.Request{
		Format:        sel.Format,
		Width:         w,
		Height:        h,
		Layers:        desc.Layers,
		CPUAccess:     u.CPUAccess(),
		HWAccess:      u.HWAccess(),
		TrustedStride: u.Has(usage.TrustedStride),
		AFBCPadding:   padded,
	})
	if err != nil {
		return Buffer{}, err
	}

	a.logger().Debug("gralloc: allocated",
		"format", sel.Format, "width", desc.Width, "height", desc.Height,
		"size", res.Size, "pixel_stride", res.PixelStride)

	return Buffer{
		Format:         sel.Format,
		InternalFormat: sel.InternalFormat,
		Width:          desc.Width,
		Height:         desc.Height,
		Layers:         max(desc.Layers, 1),
		PixelStride:    res.PixelStride,
		Size:           res.Size,
		Planes:         res.Planes,
		AllocType:      res.AllocType,
		Usage:          u,
	}, nil
}

// adjustDimensions pads the dimensions of compressed buffers for the
// roles that produce them.
func (a *Allocator) adjustDimensions(f format.AllocFormat, u usage.Usage, width, height uint32) (uint32, uint32) {
	if !f.Modifiers.Has(format.ModCompressed) {
		return width, height
	}
	producers := capability.Producers(u)
	consumers := capability.Consumers(u)

	if consumers.Has(capability.DPU) && producers.Has(capability.VPU) &&
		f.Base.IsVideo() && width%displayVideoWidthAlign != 0 {
		a.logger().Warn("gralloc: video buffer width is not aligned for the display",
			"format", f, "width", width, "align", displayVideoWidthAlign)
	}

	if producers.Has(capability.GPU) {
		width = align.Up(width, gpuTileSize)
		height = align.Up(height, gpuTileSize)
	}
	return width, height
}
