// Package capability resolves which optional AFBC features the producers
// and consumers of a buffer have in common.
//
// Each hardware role declares a Set of capabilities. The sets are
// gathered once per process into an immutable Snapshot, either from
// registered Providers or from compiled-in defaults, and a Resolver
// intersects them for a given usage.
package capability

import (
	"fmt"
	"math/bits"
	"strings"
)

// Capability is one optional feature a hardware block may declare.
type Capability uint8

const (
	// OptionsPresent marks a set as declared. Roles whose set lacks it
	// do not take part in intersection.
	OptionsPresent Capability = iota

	// PixFmtRGBA1010102 enables the RGBA_1010102 base format.
	PixFmtRGBA1010102

	// PixFmtRGBA16161616 enables the RGBA_16161616 base format.
	PixFmtRGBA16161616

	// AFBCBasic is AFBC with 16x16 superblocks.
	AFBCBasic

	SplitBlock
	WideBlock
	TiledHeaders
	ExtraWideBlock

	// MultiplaneRead is reading separately compressed luma and chroma
	// planes.
	MultiplaneRead

	// DoubleBody is front-buffer safe AFBC.
	DoubleBody

	// WriteNonSparse means the producer can write compact bodies.
	WriteNonSparse

	YUVRead
	YUVWrite

	// AFBCRGBA16161616 enables compression of RGBA_16161616.
	AFBCRGBA16161616

	capabilityCount
)

var capabilityNames = [capabilityCount]string{
	OptionsPresent:     "OPTIONS_PRESENT",
	PixFmtRGBA1010102:  "PIXFMT_RGBA1010102",
	PixFmtRGBA16161616: "PIXFMT_RGBA16161616",
	AFBCBasic:          "AFBC_BASIC",
	SplitBlock:         "AFBC_SPLITBLK",
	WideBlock:          "AFBC_WIDEBLK",
	TiledHeaders:       "AFBC_TILED_HEADERS",
	ExtraWideBlock:     "AFBC_EXTRAWIDEBLK",
	MultiplaneRead:     "AFBC_MULTIPLANE_READ",
	DoubleBody:         "AFBC_DOUBLE_BODY",
	WriteNonSparse:     "AFBC_WRITE_NON_SPARSE",
	YUVRead:            "AFBC_YUV_READ",
	YUVWrite:           "AFBC_YUV_WRITE",
	AFBCRGBA16161616:   "AFBC_RGBA16161616",
}

func (c Capability) String() string {
	if c >= capabilityCount {
		return fmt.Sprintf("Capability(%d)", uint8(c))
	}
	return capabilityNames[c]
}

// Set is a set of capabilities.
type Set uint32

// All is the set holding every capability.
const All Set = 1<<capabilityCount - 1

// AFBCEnableMask is every capability that enables a compressed layout.
// Clearing it from a set turns compression off for that side.
const AFBCEnableMask Set = 1<<AFBCBasic | 1<<SplitBlock | 1<<WideBlock |
	1<<TiledHeaders | 1<<ExtraWideBlock | 1<<MultiplaneRead |
	1<<DoubleBody | 1<<AFBCRGBA16161616

// NewSet returns the set holding cs.
func NewSet(cs ...Capability) Set {
	var s Set
	for _, c := range cs {
		s = s.With(c)
	}
	return s
}

// FullAFBC returns a declared set with every feature, as reported by
// current-generation Mali GPUs and display processors.
func FullAFBC() Set { return All }

// Has reports whether c is in the set.
func (s Set) Has(c Capability) bool { return s&(1<<c) != 0 }

// HasAll reports whether every capability of o is in the set.
func (s Set) HasAll(o Set) bool { return s&o == o }

// With returns the set with c added.
func (s Set) With(c Capability) Set { return s | 1<<c }

// Without returns the set with c removed.
func (s Set) Without(c Capability) Set { return s &^ (1 << c) }

// Intersect returns the capabilities present in both sets.
func (s Set) Intersect(o Set) Set { return s & o }

// Len returns the number of capabilities in the set.
func (s Set) Len() int { return bits.OnesCount32(uint32(s)) }

// String returns a "|"-separated list of the capabilities.
func (s Set) String() string {
	if s == 0 {
		return "NONE"
	}
	var parts []string
	for c := OptionsPresent; c < capabilityCount; c++ {
		if s.Has(c) {
			parts = append(parts, c.String())
		}
	}
	return strings.Join(parts, "|")
}
