package capability

import (
	"github.com/gogpu/gralloc/format"
)

// DefaultMinAFBCDisplayPercent is the smallest buffer area, as a
// percentage of the display area, for which the display reads AFBC.
const DefaultMinAFBCDisplayPercent = 75

// Display describes the panel used by the size heuristic in Refine.
// A zero Width or Height disables the heuristic.
type Display struct {
	Width, Height uint32

	// MinAFBCPercent is the threshold below which display consumers
	// lose compression.
	MinAFBCPercent uint32
}

// Resolver intersects the capabilities of the roles taking part in an
// allocation. It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	snap    Snapshot
	display Display
}

// NewResolver returns a Resolver over snap.
func NewResolver(snap Snapshot, display Display) *Resolver {
	if display.MinAFBCPercent == 0 {
		display.MinAFBCPercent = DefaultMinAFBCDisplayPercent
	}
	return &Resolver{snap: snap, display: display}
}

// Snapshot returns the capabilities the resolver works on.
func (r *Resolver) Snapshot() Snapshot { return r.snap }

// intersect ANDs the sets of the roles in rs. The CPU always takes part;
// other roles only when they declare OptionsPresent. Roles that do not
// take part leave the result unconstrained.
func (r *Resolver) intersect(rs RoleSet) Set {
	caps := All
	for _, role := range Roles() {
		if !rs.Has(role) {
			continue
		}
		set := r.snap.For(role)
		if role != CPU && !set.Has(OptionsPresent) {
			continue
		}
		caps &= set
	}
	return caps
}

// Declared reports whether a role of rs other than the CPU declares
// OptionsPresent.
func (r *Resolver) Declared(rs RoleSet) bool {
	for _, role := range Roles() {
		if role != CPU && rs.Has(role) && r.snap.For(role).Has(OptionsPresent) {
			return true
		}
	}
	return false
}

// ProducerCaps returns the capabilities shared by the producers.
// Producers never read, so YUVRead is always cleared. Without producers
// the set is empty.
func (r *Resolver) ProducerCaps(producers RoleSet) Set {
	if producers.IsEmpty() {
		return 0
	}
	return r.intersect(producers).Without(YUVRead)
}

// ConsumerCaps returns the capabilities shared by the consumers.
// Consumers never write, so YUVWrite is always cleared.
func (r *Resolver) ConsumerCaps(consumers RoleSet) Set {
	return r.intersect(consumers).Without(YUVWrite)
}

// Refine applies format and role specific restrictions to the active
// producer and consumer sets. area is the buffer size in pixels.
func (r *Resolver) Refine(d format.Descriptor, producers, consumers RoleSet, pcaps, ccaps Set, area uint64) (Set, Set) {
	pmask, cmask := All, All

	if d.IsSubsampledYUV() {
		pmask = pmask.Without(WideBlock)
		cmask = cmask.Without(WideBlock)
	}

	if d.IsYUV {
		if !pcaps.Has(YUVWrite) {
			pmask &^= AFBCEnableMask
		} else if producers.Has(GPU) {
			// GPUs only write YUV AFBC with 16x16 superblocks.
			pmask = pmask.Without(SplitBlock).Without(WideBlock)
		}
		if !ccaps.Has(YUVRead) {
			cmask &^= AFBCEnableMask
		}
	}

	// The display only splits blocks of 24 and 32-bit RGB.
	if !d.IsRGB || d.BitsPerPixel() < 24 {
		if producers.Has(DPUAEU) {
			pmask = pmask.Without(SplitBlock)
		}
		if consumers.Has(DPU) {
			cmask = cmask.Without(SplitBlock)
		}
	}

	if consumers.Has(DPU) && !r.afbcAllowedOnDisplay(area) {
		cmask &^= AFBCEnableMask
	}

	return pcaps & pmask, ccaps & cmask
}

func (r *Resolver) afbcAllowedOnDisplay(area uint64) bool {
	displayArea := uint64(r.display.Width) * uint64(r.display.Height)
	if displayArea == 0 {
		return true
	}
	return area*100/displayArea >= uint64(r.display.MinAFBCPercent)
}
