package gralloc

import (
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gralloc/capability"
	"github.com/gogpu/gralloc/format"
	"github.com/gogpu/gralloc/layout"
	"github.com/gogpu/gralloc/usage"
)

// fullSnapshot declares every AFBC feature for every role but the CPU.
func fullSnapshot() capability.Snapshot {
	snap := capability.DefaultSnapshot()
	for _, r := range capability.Roles() {
		if r != capability.CPU {
			snap = snap.With(r, capability.FullAFBC())
		}
	}
	return snap
}

func mods(ms ...format.Modifier) format.Modifiers { return format.NewModifiers(ms...) }

func TestAllocate(t *testing.T) {
	tests := []struct {
		name            string
		snap            capability.Snapshot
		desc            BufferDescriptor
		wantFormat      format.AllocFormat
		wantInternal    format.AllocFormat
		wantPlanes      []layout.Plane
		wantSize        uint64
		wantPixelStride uint32
	}{
		{
			name: "NV12 cpu read write",
			snap: capability.DefaultSnapshot(),
			desc: BufferDescriptor{
				Width: 640, Height: 480,
				Format: uint32(format.NV12),
				Usage:  usage.SWReadOften | usage.SWWriteOften,
			},
			wantFormat:   format.AllocFormat{Base: format.NV12},
			wantInternal: format.AllocFormat{Base: format.NV12},
			wantPlanes: []layout.Plane{
				{Offset: 0, ByteStride: 640, AllocWidth: 640, AllocHeight: 480},
				{Offset: 307200, ByteStride: 640, AllocWidth: 320, AllocHeight: 240},
			},
			wantSize:        460800,
			wantPixelStride: 640,
		},
		{
			name: "NV12 display write-back",
			snap: fullSnapshot(),
			desc: BufferDescriptor{
				Width: 1920, Height: 1080,
				Format: uint32(format.NV12),
				Usage:  usage.HWComposer,
			},
			wantFormat:   format.AllocFormat{Base: format.YUV420_8BIT_I, Modifiers: mods(format.ModCompressed, format.ModTiledHeaders)},
			wantInternal: format.AllocFormat{Base: format.NV12, Modifiers: mods(format.ModCompressed, format.ModTiledHeaders)},
			wantPlanes: []layout.Plane{
				{Offset: 0, ByteStride: 2880, AllocWidth: 1920, AllocHeight: 1152},
			},
			wantSize: 139264 + 3317760,
		},
		{
			name: "RGBA8888 cpu write gpu texture",
			snap: capability.DefaultSnapshot(),
			desc: BufferDescriptor{
				Width: 1920, Height: 1080,
				Format: uint32(format.RGBA8888),
				Usage:  usage.SWWriteOften | usage.HWTexture,
			},
			wantFormat:   format.AllocFormat{Base: format.RGBA8888},
			wantInternal: format.AllocFormat{Base: format.RGBA8888},
			wantPlanes: []layout.Plane{
				{Offset: 0, ByteStride: 7680, AllocWidth: 1920, AllocHeight: 1080},
			},
			wantSize:        7680 * 1080,
			wantPixelStride: 1920,
		},
		{
			name: "RGBA8888 gpu render pads to gpu tiles",
			snap: fullSnapshot(),
			desc: BufferDescriptor{
				Width: 100, Height: 100,
				Format: uint32(format.RGBA8888),
				Usage:  usage.HWRender | usage.HWTexture,
			},
			wantFormat: format.AllocFormat{Base: format.RGBA8888, Modifiers: mods(
				format.ModCompressed, format.ModTiledHeaders, format.ModYUVTransform)},
			wantInternal: format.AllocFormat{Base: format.RGBA8888, Modifiers: mods(
				format.ModCompressed, format.ModTiledHeaders, format.ModYUVTransform)},
			wantPlanes: []layout.Plane{
				{Offset: 0, ByteStride: 512, AllocWidth: 128, AllocHeight: 128},
			},
			wantSize: 4096 + 65536,
		},
		{
			name: "RGBA8888 array layers",
			snap: capability.DefaultSnapshot(),
			desc: BufferDescriptor{
				Width: 64, Height: 64, Layers: 2,
				Format: uint32(format.RGBA8888),
				Usage:  usage.SWWriteOften | usage.HWTexture,
			},
			wantFormat:   format.AllocFormat{Base: format.RGBA8888},
			wantInternal: format.AllocFormat{Base: format.RGBA8888},
			wantPlanes: []layout.Plane{
				{Offset: 0, ByteStride: 256, AllocWidth: 64, AllocHeight: 64},
			},
			wantSize:        2 * 16384,
			wantPixelStride: 64,
		},
		{
			name: "implementation defined for the encoder",
			snap: capability.DefaultSnapshot(),
			desc: BufferDescriptor{
				Width: 64, Height: 64,
				Format: 0x22,
				Usage:  usage.HWRender | usage.HWVideoEncoder,
			},
			wantFormat:   format.AllocFormat{Base: format.NV12},
			wantInternal: format.AllocFormat{Base: format.NV12},
			wantPlanes: []layout.Plane{
				{Offset: 0, ByteStride: 128, AllocWidth: 128, AllocHeight: 64},
				{Offset: 8192, ByteStride: 128, AllocWidth: 64, AllocHeight: 32},
			},
			wantSize: 8192 + 4096,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(WithSnapshot(tt.snap))
			got, err := a.Allocate(tt.desc)
			if err != nil {
				t.Fatalf("Allocate() error = %v", err)
			}
			if got.Format != tt.wantFormat {
				t.Errorf("Format = %v, want %v", got.Format, tt.wantFormat)
			}
			if got.InternalFormat != tt.wantInternal {
				t.Errorf("InternalFormat = %v, want %v", got.InternalFormat, tt.wantInternal)
			}
			if got.Size != tt.wantSize {
				t.Errorf("Size = %d, want %d", got.Size, tt.wantSize)
			}
			if got.PixelStride != tt.wantPixelStride {
				t.Errorf("PixelStride = %d, want %d", got.PixelStride, tt.wantPixelStride)
			}
			if got.Width != tt.desc.Width || got.Height != tt.desc.Height {
				t.Errorf("dimensions = %dx%d, want %dx%d", got.Width, got.Height, tt.desc.Width, tt.desc.Height)
			}
			if len(got.Planes) != len(tt.wantPlanes) {
				t.Fatalf("len(Planes) = %d, want %d", len(got.Planes), len(tt.wantPlanes))
			}
			for i := range tt.wantPlanes {
				if got.Planes[i] != tt.wantPlanes[i] {
					t.Errorf("Planes[%d] = %+v, want %+v", i, got.Planes[i], tt.wantPlanes[i])
				}
			}
		})
	}
}

func TestAllocateErrors(t *testing.T) {
	tests := []struct {
		name    string
		desc    BufferDescriptor
		wantErr error
	}{
		{
			name: "reserved usage bits",
			desc: BufferDescriptor{
				Width: 64, Height: 64,
				Format: uint32(format.RGBA8888),
				Usage:  usage.HWTexture | 1<<40,
			},
			wantErr: ErrInvalidUsage,
		},
		{
			name: "yuv without AFBC",
			desc: BufferDescriptor{
				Width: 64, Height: 64,
				Format: uint32(format.NV12),
				Usage:  usage.HWTexture | usage.NoAFBC,
			},
			wantErr: ErrInvalidUsage,
		},
		{
			name: "unknown format",
			desc: BufferDescriptor{
				Width: 64, Height: 64,
				Format: 0x7777,
				Usage:  usage.HWTexture,
			},
			wantErr: ErrInvalidFormat,
		},
		{
			name: "no producer or consumer",
			desc: BufferDescriptor{
				Width: 64, Height: 64,
				Format: uint32(format.RGBA8888),
				Usage:  usage.HW2D,
			},
			wantErr: ErrNoCompatibleFormat,
		},
		{
			name: "blob with rows",
			desc: BufferDescriptor{
				Width: 4096, Height: 2,
				Format: uint32(format.BLOB),
				Usage:  usage.SWReadOften,
			},
			wantErr: ErrInvalidFormat,
		},
	}

	a := New(WithSnapshot(capability.DefaultSnapshot()))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Allocate(tt.desc)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Allocate() error = %v, want %v", err, tt.wantErr)
			}
			if got.Size != 0 || got.Planes != nil {
				t.Errorf("Allocate() = %+v on error, want zero Buffer", got)
			}
		})
	}
}

func TestAllocateInternal(t *testing.T) {
	a := New(WithSnapshot(capability.DefaultSnapshot()))
	m := mods(format.ModCompressed, format.ModTiledHeaders, format.ModExtraWideBlock)

	got, err := a.AllocateInternal(BufferDescriptor{
		Width: 256, Height: 64,
		Format:    uint32(format.NV12),
		Modifiers: m,
		Usage:     usage.HWTexture,
	})
	if err != nil {
		t.Fatalf("AllocateInternal() error = %v", err)
	}
	if want := (format.AllocFormat{Base: format.NV12, Modifiers: m}); got.Format != want {
		t.Errorf("Format = %v, want %v", got.Format, want)
	}
	if !got.AllocType.MultiPlane {
		t.Error("AllocType.MultiPlane = false, want true")
	}
	if got.Size != 2*36864 {
		t.Errorf("Size = %d, want %d", got.Size, 2*36864)
	}

	_, err = a.AllocateInternal(BufferDescriptor{
		Width: 64, Height: 64,
		Format:    uint32(format.Y410),
		Modifiers: mods(format.ModCompressed),
		Usage:     usage.HWTexture,
	})
	if !errors.Is(err, ErrInvalidModifierCombination) {
		t.Errorf("AllocateInternal(Y410|AFBC) error = %v, want %v", err, ErrInvalidModifierCombination)
	}
}

func TestSelectPrivateFormatUsage(t *testing.T) {
	a := New(WithSnapshot(capability.DefaultSnapshot()))
	sel, err := a.Select(BufferDescriptor{
		Width: 64, Height: 64,
		Format:    uint32(format.RGBA8888),
		Modifiers: mods(format.ModCompressed, format.ModSparse),
		Usage:     usage.HWTexture | usage.PrivateFormat,
	})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	want := format.AllocFormat{Base: format.RGBA8888, Modifiers: mods(format.ModCompressed, format.ModSparse)}
	if sel.Format != want {
		t.Errorf("Select() = %v, want %v", sel.Format, want)
	}
}

func TestAllocateConcurrent(t *testing.T) {
	a := New(WithSnapshot(fullSnapshot()))
	desc := BufferDescriptor{
		Width: 1920, Height: 1080,
		Format: uint32(format.RGBA8888),
		Usage:  usage.HWRender | usage.HWFramebuffer,
	}
	want, err := a.Allocate(desc)
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}

	var wg sync.WaitGroup
	const goroutines = 16
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := a.Allocate(desc)
			if err != nil {
				t.Errorf("Allocate() error = %v", err)
				return
			}
			if got.Format != want.Format || got.Size != want.Size {
				t.Errorf("Allocate() = %v %d, want %v %d", got.Format, got.Size, want.Format, want.Size)
			}
		}()
	}
	wg.Wait()
}

func TestTextureDescriptor(t *testing.T) {
	a := New(WithSnapshot(capability.DefaultSnapshot()))
	buf, err := a.Allocate(BufferDescriptor{
		Width: 1920, Height: 1080,
		Format: uint32(format.RGBA8888),
		Usage:  usage.SWWriteOften | usage.HWTexture,
	})
	if err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}

	td, err := buf.TextureDescriptor()
	if err != nil {
		t.Fatalf("TextureDescriptor() error = %v", err)
	}
	if td.Format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format = %v, want %v", td.Format, gputypes.TextureFormatRGBA8Unorm)
	}
	if td.Size.Width != 1920 || td.Size.Height != 1080 || td.Size.DepthOrArrayLayers != 1 {
		t.Errorf("Size = %+v, want 1920x1080x1", td.Size)
	}
	if want := gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst; td.Usage != want {
		t.Errorf("Usage = %v, want %v", td.Usage, want)
	}
	if td.Dimension != gputypes.TextureDimension2D {
		t.Errorf("Dimension = %v, want 2D", td.Dimension)
	}

	nv12, err := a.Allocate(BufferDescriptor{
		Width: 64, Height: 64,
		Format: uint32(format.NV12),
		Usage:  usage.SWReadOften,
	})
	if err != nil {
		t.Fatalf("Allocate(NV12) error = %v", err)
	}
	if _, err := nv12.TextureDescriptor(); !errors.Is(err, ErrNotTextureCompatible) {
		t.Errorf("TextureDescriptor(NV12) error = %v, want %v", err, ErrNotTextureCompatible)
	}
}
