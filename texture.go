package gralloc

import (
	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gralloc/format"
)

// TextureDescriptor describes b as a HAL texture so a GPU device can import
// it. Only single-plane uncompressed buffers with a GPU texture format have
// an equivalent.
func (b Buffer) TextureDescriptor() (hal.TextureDescriptor, error) {
	if b.AllocType.IsCompressed() || len(b.Planes) != 1 {
		return hal.TextureDescriptor{}, errors.Wrapf(ErrNotTextureCompatible,
			"%v with %d planes", b.Format, len(b.Planes))
	}
	tf := format.TextureFormat(b.Format.Base)
	if tf == gputypes.TextureFormatUndefined {
		return hal.TextureDescriptor{}, errors.Wrapf(ErrNotTextureCompatible,
			"no texture format for %v", b.Format.Base)
	}
	return hal.TextureDescriptor{
		Label: "gralloc " + b.Format.String(),
		Size: hal.Extent3D{
			Width:              b.Width,
			Height:             b.Height,
			DepthOrArrayLayers: b.Layers,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        tf,
		Usage:         b.Usage.TextureUsage(),
	}, nil
}
