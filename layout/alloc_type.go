package layout

import (
	"github.com/cockroachdb/errors"
	"github.com/gogpu/gralloc/format"
)

// BlockType is the primary storage scheme of an allocation.
type BlockType uint8

const (
	// Uncompressed is a linear layout.
	Uncompressed BlockType = iota

	// Basic is AFBC with 16x16 superblocks.
	Basic

	// Wide is AFBC with 32x8 superblocks.
	Wide

	// ExtraWide is AFBC with 64x4 superblocks.
	ExtraWide
)

func (b BlockType) String() string {
	switch b {
	case Uncompressed:
		return "uncompressed"
	case Basic:
		return "afbc"
	case Wide:
		return "afbc-wide"
	case ExtraWide:
		return "afbc-extrawide"
	default:
		return "unknown"
	}
}

// AllocType classifies an allocation format for layout purposes.
type AllocType struct {
	Primary BlockType

	// MultiPlane means each plane is laid out separately. Compressed
	// multi-plane formats only qualify with tiled headers and extra-wide
	// chroma blocks.
	MultiPlane bool

	Tiled           bool
	Padded          bool
	FrontBufferSafe bool
}

// IsCompressed reports whether the layout uses AFBC.
func (t AllocType) IsCompressed() bool { return t.Primary != Uncompressed }

// Classify derives the allocation type of a from its modifiers. padded
// requests superblock padding of compressed layouts.
func Classify(a format.AllocFormat, padded bool) (AllocType, error) {
	d, ok := format.Lookup(a.Base)
	if !ok {
		return AllocType{}, errors.Wrapf(format.ErrInvalidFormat, "layout: no descriptor for %v", a.Base)
	}
	m := a.Modifiers
	t := AllocType{MultiPlane: d.PlaneCount > 1}
	if !m.IsCompressed() {
		return t, nil
	}

	wide := m.Has(format.ModWideBlock)
	extraWide := m.Has(format.ModExtraWideBlock)
	if wide && extraWide && d.PlaneCount == 1 {
		return AllocType{}, errors.Wrapf(format.ErrInvalidModifierCombination,
			"layout: %v uses wide and extra-wide blocks on a single plane", a)
	}

	switch {
	case wide:
		t.Primary = Wide
	case extraWide:
		t.Primary = ExtraWide
	default:
		t.Primary = Basic
	}

	if m.Has(format.ModTiledHeaders) {
		t.Tiled = true
		if d.PlaneCount > 1 && !extraWide {
			t.MultiPlane = false
		}
		t.FrontBufferSafe = m.Has(format.ModDoubleBody)
	} else {
		if extraWide {
			return AllocType{}, errors.Wrapf(format.ErrInvalidModifierCombination,
				"layout: %v uses extra-wide blocks without tiled headers", a)
		}
		t.MultiPlane = false
	}

	t.Padded = padded
	return t, nil
}

// Rect is a size in pixels.
type Rect struct {
	Width, Height uint32
}

// Superblock sizes. Every shape covers 256 pixels.
var (
	superblockBasic     = Rect{16, 16}
	superblockWide      = Rect{32, 8}
	superblockExtraWide = Rect{64, 4}
)

// pixelsPerSuperblock is the area of every superblock shape.
const pixelsPerSuperblock = 256

// Superblock returns the superblock footprint used for plane. Chroma
// planes of multi-plane layouts always use extra-wide blocks.
func Superblock(t AllocType, plane int) Rect {
	if plane > 0 && t.MultiPlane && t.IsCompressed() {
		return superblockExtraWide
	}
	switch t.Primary {
	case Wide:
		return superblockWide
	case ExtraWide:
		return superblockExtraWide
	default:
		return superblockBasic
	}
}

// Validate checks that a classified format can be laid out at the given
// height.
func Validate(a format.AllocFormat, t AllocType, height uint32) error {
	d, ok := format.Lookup(a.Base)
	if !ok {
		return errors.Wrapf(format.ErrInvalidFormat, "layout: no descriptor for %v", a.Base)
	}
	if t.IsCompressed() {
		if !d.Compressed {
			return errors.Wrapf(format.ErrInvalidFormat, "layout: %v cannot be compressed", a.Base)
		}
		if d.PlaneCount > 1 && !t.MultiPlane {
			return errors.Wrapf(format.ErrInvalidModifierCombination,
				"layout: %v cannot be compressed as separate planes", a)
		}
	} else if !d.Linear {
		return errors.Wrapf(format.ErrInvalidFormat, "layout: %v has no linear layout", a.Base)
	}
	if a.Base == format.BLOB && height != 1 {
		return errors.Wrapf(format.ErrInvalidFormat, "layout: BLOB height must be 1, got %d", height)
	}
	return nil
}
