package format

import (
	"fmt"
	"math/bits"
	"strings"
)

// Modifier is one AFBC layout variant bit.
type Modifier uint8

const (
	// ModCompressed enables AFBC with 16x16 superblocks.
	ModCompressed Modifier = iota

	// ModSplitBlock splits each superblock payload into halves.
	ModSplitBlock

	// ModWideBlock uses 32x8 superblocks.
	ModWideBlock

	// ModTiledHeaders groups superblock headers into tiles.
	ModTiledHeaders

	// ModExtraWideBlock uses 64x4 superblocks.
	ModExtraWideBlock

	// ModDoubleBody allocates a second body for front-buffer safe updates.
	ModDoubleBody

	// ModContentHint marks block-content hints in the headers.
	ModContentHint

	// ModYUVTransform enables the internal RGB to YUV transform.
	ModYUVTransform

	// ModSparse reserves full-size bodies for every superblock.
	ModSparse

	modifierCount
)

var modifierNames = [modifierCount]string{
	ModCompressed:     "AFBC",
	ModSplitBlock:     "SPLIT",
	ModWideBlock:      "WIDE",
	ModTiledHeaders:   "TILED",
	ModExtraWideBlock: "EXTRAWIDE",
	ModDoubleBody:     "DOUBLEBODY",
	ModContentHint:    "BCH",
	ModYUVTransform:   "YTR",
	ModSparse:         "SPARSE",
}

// String returns the short name of the modifier.
func (m Modifier) String() string {
	if m >= modifierCount {
		return fmt.Sprintf("Modifier(%d)", uint8(m))
	}
	return modifierNames[m]
}

// Modifiers is a set of Modifier values.
type Modifiers uint16

// NewModifiers returns the set holding ms.
func NewModifiers(ms ...Modifier) Modifiers {
	var s Modifiers
	for _, m := range ms {
		s = s.With(m)
	}
	return s
}

// Has reports whether m is in the set.
func (s Modifiers) Has(m Modifier) bool { return s&(1<<m) != 0 }

// With returns the set with m added.
func (s Modifiers) With(m Modifier) Modifiers { return s | 1<<m }

// Without returns the set with m removed.
func (s Modifiers) Without(m Modifier) Modifiers { return s &^ (1 << m) }

// Len returns the number of modifiers in the set.
func (s Modifiers) Len() int { return bits.OnesCount16(uint16(s)) }

// IsCompressed reports whether any AFBC-enabling modifier is present.
// Structural variants only mean something together with ModCompressed,
// but extra-wide and wide blocks imply compression on their own.
func (s Modifiers) IsCompressed() bool {
	return s.Has(ModCompressed) || s.Has(ModWideBlock) || s.Has(ModExtraWideBlock)
}

// String returns a "|"-separated list of the modifiers in bit order.
func (s Modifiers) String() string {
	var parts []string
	for m := ModCompressed; m < modifierCount; m++ {
		if s.Has(m) {
			parts = append(parts, m.String())
		}
	}
	return strings.Join(parts, "|")
}

// AllocFormat is a base format together with its layout modifiers.
type AllocFormat struct {
	Base      BaseFormat
	Modifiers Modifiers
}

// modifierShift is the bit position of the first modifier in a packed
// allocation format.
const modifierShift = 32

// Pack encodes the format as base | modifiers<<32.
func (a AllocFormat) Pack() uint64 {
	return uint64(a.Base) | uint64(a.Modifiers)<<modifierShift
}

// Unpack decodes a value produced by Pack.
func Unpack(v uint64) AllocFormat {
	return AllocFormat{
		Base:      BaseFormat(uint32(v)),
		Modifiers: Modifiers(v >> modifierShift),
	}
}

// IsUndefined reports whether a is the undefined format.
func (a AllocFormat) IsUndefined() bool { return a.Base == Undefined }

// Grade scores the format for selection: one point for being supported
// plus one per modifier.
func (a AllocFormat) Grade() int { return 1 + a.Modifiers.Len() }

// String renders the base name followed by the modifiers.
func (a AllocFormat) String() string {
	if a.Modifiers == 0 {
		return a.Base.String()
	}
	return a.Base.String() + "|" + a.Modifiers.String()
}
