package selector

import (
	"github.com/cockroachdb/errors"
	"github.com/gogpu/gralloc/format"
)

// Compatible reports whether data in format from could be represented
// in format to.
func Compatible(from, to format.Descriptor) bool {
	return to.HSub == from.HSub &&
		to.VSub == from.VSub &&
		to.IsRGB == from.IsRGB &&
		to.IsYUV == from.IsYUV &&
		comparableComponents(from, to)
}

// comparableComponents reports whether two formats carry equivalent
// colour components. Alpha may be dropped for YUV.
func comparableComponents(from, to format.Descriptor) bool {
	switch {
	case from.IsYUV && to.BitsPerSample == from.BitsPerSample:
		if to.TotalComponents() == from.TotalComponents() {
			return true
		}
		// Lets Y0L2 map onto single plane 10-bit YUV420.
		return from.HasAlpha && to.IsYUV && !to.HasAlpha && to.TotalComponents() == 3
	case from.IsRGB:
		return to.TotalComponents() == from.TotalComponents() &&
			to.BPP[0] == from.BPP[0] &&
			to.BitsPerSample == from.BitsPerSample
	default:
		return to.ID == from.ID
	}
}

// multiPlaneCompressed reports whether m describes a multi-plane AFBC
// layout.
func multiPlaneCompressed(m format.Modifiers) bool {
	return m.Has(format.ModCompressed) &&
		m.Has(format.ModExtraWideBlock) &&
		m.Has(format.ModTiledHeaders)
}

// BaseForModifiers returns a base format able to carry m, starting from
// the requested format d. Compressed requests on a format that cannot
// take them fall back to the first compatible format that can.
func BaseForModifiers(d format.Descriptor, m format.Modifiers) (format.BaseFormat, error) {
	if m == 0 {
		return d.ID, nil
	}
	if !m.Has(format.ModCompressed) {
		return format.Undefined, errors.Wrapf(format.ErrInvalidModifierCombination,
			"selector: %v without AFBC", m)
	}

	carries := func(c format.Descriptor) bool {
		return c.Compressed && (c.PlaneCount == 1 || multiPlaneCompressed(m))
	}
	if carries(d) {
		return d.ID, nil
	}
	for c := range format.Descriptors() {
		if Compatible(d, c) && carries(c) {
			slogger().Debug("selector: base format fallback", "from", d.ID, "to", c.ID, "modifiers", m)
			return c.ID, nil
		}
	}
	return format.Undefined, errors.Wrapf(format.ErrInvalidModifierCombination,
		"selector: no base format for %v|%v", d.ID, m)
}
