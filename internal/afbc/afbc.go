// Package afbc derives and validates AFBC modifier sets.
//
// Validation only removes modifiers, with two exceptions: a wide-block
// format gains split-block when both sides support it, and a producer
// that cannot write compact bodies forces sparse allocation.
package afbc

import (
	"log/slog"

	"github.com/gogpu/gralloc/capability"
	"github.com/gogpu/gralloc/format"
	"github.com/gogpu/gralloc/internal/logging"
)

func slogger() *slog.Logger { return logging.Logger() }

// maxPasses bounds the rule iteration in Fixup. Rules only ever add
// split-block and sparse once, so two passes reach the fixpoint.
const maxPasses = 4

// Fixup strips modifier combinations that are structurally invalid or
// unsupported by either side. The result is a fixpoint: calling Fixup on
// it again returns it unchanged. Sparse is only forced on compressed
// sets; an uncompressed set stays empty.
func Fixup(a format.AllocFormat, pcaps, ccaps capability.Set) format.AllocFormat {
	for range maxPasses {
		next := fixupOnce(a, pcaps, ccaps)
		if next == a {
			break
		}
		a = next
	}
	return a
}

// modifierCaps pairs the modifiers that need explicit support on both
// sides with the capability that grants it.
var modifierCaps = []struct {
	mod  format.Modifier
	need capability.Capability
}{
	{format.ModCompressed, capability.AFBCBasic},
	{format.ModSplitBlock, capability.SplitBlock},
	{format.ModWideBlock, capability.WideBlock},
	{format.ModTiledHeaders, capability.TiledHeaders},
}

func fixupOnce(a format.AllocFormat, pcaps, ccaps capability.Set) format.AllocFormat {
	d := a.Base.Info()
	m := a.Modifiers
	both := pcaps & ccaps

	if m.Has(format.ModDoubleBody) {
		// Front-buffer safe AFBC only uses 16x16 superblocks.
		m = m.Without(format.ModWideBlock).Without(format.ModExtraWideBlock)
	}

	if m.Has(format.ModWideBlock) && m.Has(format.ModSplitBlock) && d.IsSubsampledYUV() {
		slogger().Warn("afbc: split-block is not supported with wide-block YUV",
			"format", a.Base.String())
		m = m.Without(format.ModSplitBlock)
	}

	if m.Has(format.ModWideBlock) && !m.Has(format.ModSplitBlock) && !d.IsSubsampledYUV() &&
		int(d.BitsPerSample)*d.TotalComponents() > 16 && a.Base != format.RGB565 {
		// Wide blocks of formats wider than 16 bits must be split.
		if both.Has(capability.SplitBlock) {
			m = m.With(format.ModSplitBlock)
		} else {
			slogger().Warn("afbc: wide-block needs split-block which is unsupported",
				"format", a.Base.String())
			m = m.Without(format.ModWideBlock)
		}
	}

	if a.Base == format.RGB565 && m.Has(format.ModSplitBlock) {
		slogger().Warn("afbc: split-block is not supported for RGB_565")
		m = m.Without(format.ModSplitBlock)
	}

	for _, mc := range modifierCaps {
		if m.Has(mc.mod) && !both.Has(mc.need) {
			slogger().Warn("afbc: modifier unsupported by producer or consumer",
				"format", a.Base.String(), "modifier", mc.mod.String(),
				"producer", pcaps.String(), "consumer", ccaps.String())
			m = m.Without(mc.mod)
		}
	}

	if m.IsCompressed() && !m.Has(format.ModSparse) && !pcaps.Has(capability.WriteNonSparse) {
		m = m.With(format.ModSparse)
	}

	return format.AllocFormat{Base: a.Base, Modifiers: m}
}

// Request describes the allocation Derive chooses modifiers for.
type Request struct {
	Base format.BaseFormat

	// Support is the IP support of Base across every role involved.
	Support format.Support

	// FrontBuffer requests a front-buffer safe layout.
	FrontBuffer bool

	Producers, Consumers capability.RoleSet

	// ProducerCaps and ConsumerCaps are the refined active sets.
	ProducerCaps, ConsumerCaps capability.Set

	// DisplayCaps is the declared set of the display processor.
	DisplayCaps capability.Set
}

// Derive returns the largest preferred modifier set both sides support,
// passed through Fixup. It never selects extra-wide blocks, and it
// returns Base alone when either side has not declared its capabilities
// or the buffer goes from the video processor back to it.
func Derive(r Request) format.AllocFormat {
	a := format.AllocFormat{Base: r.Base}
	p, c := r.ProducerCaps, r.ConsumerCaps

	transcode := r.Producers.Has(capability.VPU) && r.Consumers.Has(capability.VPU)
	if !(p & c).Has(capability.OptionsPresent) || transcode {
		return Fixup(a, p, c)
	}
	if !p.Has(capability.AFBCBasic) || !c.Has(capability.AFBCBasic) {
		return Fixup(a, p, c)
	}

	m := format.NewModifiers(format.ModCompressed)
	if r.Base.Info().YUVTransform && r.Support.Has(format.SupportCompressed) {
		m = m.With(format.ModYUVTransform)
	}
	if !p.Has(capability.WriteNonSparse) {
		m = m.With(format.ModSparse)
	}
	if p.Has(capability.TiledHeaders) && c.Has(capability.TiledHeaders) {
		m = m.With(format.ModTiledHeaders)
		if r.FrontBuffer && (p & c).Has(capability.DoubleBody) {
			m = m.With(format.ModDoubleBody)
		}
	}

	// GPU to display benefits from larger blocks. All layers are assumed
	// pre-rotated; rotation would need 16x16 superblocks.
	if r.Producers.Has(capability.GPU) && r.Consumers.Has(capability.DPU) &&
		r.DisplayCaps.Has(capability.OptionsPresent) {
		if p.Has(capability.SplitBlock) && c.Has(capability.SplitBlock) {
			m = m.With(format.ModSplitBlock)
		}
		if p.Has(capability.WideBlock) && c.Has(capability.WideBlock) {
			m = m.With(format.ModWideBlock)
		}
	}

	a.Modifiers = m
	return Fixup(a, p, c)
}
