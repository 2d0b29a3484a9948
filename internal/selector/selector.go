// Package selector picks the allocation format for a buffer request from
// the format tables and the capabilities of the roles that touch it.
package selector

import (
	"github.com/cockroachdb/errors"
	"github.com/gogpu/gralloc/capability"
	"github.com/gogpu/gralloc/format"
	"github.com/gogpu/gralloc/internal/afbc"
	"github.com/gogpu/gralloc/layout"
	"github.com/gogpu/gralloc/usage"
)

// ErrNoCompatibleFormat is returned when no format satisfies every
// producer and consumer of a request.
var ErrNoCompatibleFormat = errors.New("selector: no compatible format")

// Request is a format selection request.
type Request struct {
	Base  format.BaseFormat
	Usage usage.Usage

	// Modifiers are honoured only for internal requests.
	Modifiers format.Modifiers

	// Internal requests bypass usage validation and capability
	// negotiation. A usage with usage.PrivateFormat is also internal.
	Internal bool

	// Area is the buffer size in pixels, used by the display heuristic.
	Area uint64
}

// Options tune framebuffer handling.
type Options struct {
	// FramebufferAFBCDisabled keeps framebuffer targets uncompressed.
	FramebufferAFBCDisabled bool

	// ForceFramebufferBGRA allocates framebuffer targets as BGRA8888.
	ForceFramebufferBGRA bool
}

// Selector chooses allocation formats. It is safe for concurrent use.
type Selector struct {
	resolver *capability.Resolver
	opts     Options
}

// New returns a Selector negotiating with r.
func New(r *capability.Resolver, opts Options) *Selector {
	return &Selector{resolver: r, opts: opts}
}

// Select returns the allocation format for req.
func (s *Selector) Select(req Request) (format.AllocFormat, error) {
	d, ok := format.Lookup(req.Base)
	if !ok || req.Base == format.Undefined {
		return format.AllocFormat{}, errors.Wrapf(format.ErrInvalidFormat, "selector: requested base %v", req.Base)
	}

	if req.Internal || req.Usage.Has(usage.PrivateFormat) {
		base, err := BaseForModifiers(d, req.Modifiers)
		if err != nil {
			return format.AllocFormat{}, err
		}
		return format.AllocFormat{Base: base, Modifiers: req.Modifiers}, nil
	}

	if err := req.Usage.Validate(); err != nil {
		return format.AllocFormat{}, err
	}

	u := req.Usage
	producers := capability.Producers(u)
	consumers := capability.Consumers(u)
	if producers.IsEmpty() && consumers.IsEmpty() {
		return format.AllocFormat{}, errors.Wrapf(ErrNoCompatibleFormat,
			"selector: usage %v has no producer or consumer", u)
	}
	if u.Has(usage.NoAFBC) && d.IsYUV {
		return format.AllocFormat{}, errors.Wrapf(usage.ErrInvalidUsage,
			"selector: %v cannot be allocated without AFBC", d.ID)
	}

	pcaps := s.resolver.ProducerCaps(producers)
	ccaps := s.resolver.ConsumerCaps(consumers)
	if s.opts.FramebufferAFBCDisabled && u.Any(usage.HWFramebuffer) {
		ccaps = capability.NewSet(capability.OptionsPresent)
	}
	pcaps, ccaps = s.resolver.Refine(d, producers, consumers, pcaps, ccaps, req.Area)

	slogger().Debug("selector: negotiating",
		"base", d.ID, "usage", u,
		"producers", producers, "consumers", consumers,
		"producer_caps", pcaps, "consumer_caps", ccaps)

	n := negotiation{
		s:         s,
		usage:     u,
		producers: producers,
		consumers: consumers,
		pcaps:     pcaps,
		ccaps:     ccaps,
		area:      req.Area,
	}
	a, err := n.best(d)
	if err != nil {
		return format.AllocFormat{}, err
	}

	if s.opts.ForceFramebufferBGRA && u.Any(usage.HWFramebuffer) {
		if a.Base != format.BGRA8888 && u.CPUAccess() {
			return format.AllocFormat{}, errors.Wrapf(ErrNoCompatibleFormat,
				"selector: %v is unsuitable for framebuffer and CPU access", a)
		}
		a = format.AllocFormat{Base: format.BGRA8888}
	}

	slogger().Debug("selector: selected", "requested", d.ID, "format", a)
	return a, nil
}

// negotiation holds the state of one Select call.
type negotiation struct {
	s                    *Selector
	usage                usage.Usage
	producers, consumers capability.RoleSet
	pcaps, ccaps         capability.Set
	area                 uint64
}

// best grades every compatible format and picks the result.
func (n *negotiation) best(req format.Descriptor) (format.AllocFormat, error) {
	var (
		best, requested           format.AllocFormat
		bestGrade, requestedGrade int
		survivors                 int
	)
	for c := range format.Descriptors() {
		if !Compatible(req, c) {
			continue
		}
		a, ok := n.supported(c)
		if !ok {
			continue
		}
		survivors++
		grade := a.Grade()
		slogger().Debug("selector: candidate", "format", a, "grade", grade)
		if grade > bestGrade {
			best, bestGrade = a, grade
		}
		if c.ID == req.ID {
			requested, requestedGrade = a, grade
		}
	}

	cpu := n.producers.Has(capability.CPU) || n.consumers.Has(capability.CPU)
	switch {
	case survivors == 0:
	case survivors == 1:
		return best, nil
	case requestedGrade != bestGrade && !cpu:
		return best, nil
	case requestedGrade != 0:
		return requested, nil
	}
	return format.AllocFormat{}, errors.Wrapf(ErrNoCompatibleFormat,
		"selector: %v for producers %v and consumers %v", req.ID, n.producers, n.consumers)
}

// supported returns the best allocation format for c, or false when no
// role can use c at all.
func (n *negotiation) supported(c format.Descriptor) (format.AllocFormat, bool) {
	ip, ok := format.LookupIP(c.ID)
	if !ok {
		slogger().Error("selector: no IP support entry", "format", c.ID)
		return format.AllocFormat{}, false
	}

	consumers, ccaps := n.consumers, n.ccaps
	sup := n.support(c, ip, consumers, ccaps)
	if sup == format.SupportNone && consumers.Has(capability.GPU) && consumers.Has(capability.DPU) {
		// GPU composition remains possible when the display cannot
		// take the format.
		consumers = consumers.Without(capability.DPU)
		gpuCaps := n.s.resolver.ConsumerCaps(consumers)
		_, gpuCaps = n.s.resolver.Refine(c, n.producers, consumers, n.pcaps, gpuCaps, 0)
		sup = n.support(c, ip, consumers, gpuCaps)
	}
	if sup == format.SupportNone {
		return format.AllocFormat{}, false
	}

	a := format.AllocFormat{Base: c.ID}
	if !sup.CanCompress() {
		return a, true
	}

	derived := afbc.Derive(afbc.Request{
		Base:         c.ID,
		Support:      sup,
		FrontBuffer:  n.usage.Has(usage.FrontBuffer),
		Producers:    n.producers,
		Consumers:    n.consumers,
		ProducerCaps: n.pcaps,
		ConsumerCaps: n.ccaps,
		DisplayCaps:  n.s.resolver.Snapshot().For(capability.DPU),
	})
	if n.usage.Has(usage.NoAFBC) || !derived.Modifiers.IsCompressed() {
		return a, true
	}
	t, err := layout.Classify(derived, n.usage.Has(usage.AFBCPadding))
	if err != nil || (c.PlaneCount > 1 && !t.MultiPlane) {
		return a, true
	}
	return derived, true
}

// support narrows the table support of c by the active capabilities.
func (n *negotiation) support(c format.Descriptor, ip format.IPSupport, consumers capability.RoleSet, ccaps capability.Set) format.Support {
	sup := ipSupport(ip, n.producers, consumers)
	pcaps := n.pcaps
	both := pcaps & ccaps
	r := n.s.resolver

	if sup.CanCompress() {
		switch {
		case !r.Declared(n.producers) && !r.Declared(consumers):
			// Undeclared roles leave the sets unconstrained, not capable.
			sup = sup.WithoutCompression()
		case !c.Compressed || !both.Has(capability.AFBCBasic):
			sup = sup.WithoutCompression()
		case c.PlaneCount > 1 && !multiPlaneSupported(pcaps, ccaps):
			sup = sup.WithoutCompression()
		case c.IsYUV && (!pcaps.Has(capability.YUVWrite) || !ccaps.Has(capability.YUVRead)):
			sup = sup.WithoutCompression()
		case n.usage.Has(usage.FrontBuffer) && !both.Has(capability.DoubleBody):
			sup = sup.WithoutCompression()
		}
	}

	if sup == format.SupportNone || !both.Has(capability.OptionsPresent) {
		return sup
	}
	switch c.ID {
	case format.RGBA1010102:
		if !both.Has(capability.PixFmtRGBA1010102) {
			return format.SupportNone
		}
	case format.RGBA16161616:
		if !both.Has(capability.PixFmtRGBA16161616) {
			return format.SupportNone
		}
		if !both.Has(capability.AFBCRGBA16161616) {
			sup &= format.SupportLinear
		}
	}
	return sup
}

func multiPlaneSupported(pcaps, ccaps capability.Set) bool {
	both := pcaps & ccaps
	return both.Has(capability.AFBCBasic) &&
		both.Has(capability.TiledHeaders) &&
		both.Has(capability.ExtraWideBlock) &&
		both.Has(capability.MultiplaneRead)
}

// ipSupport ANDs the table support of every participating role.
func ipSupport(ip format.IPSupport, producers, consumers capability.RoleSet) format.Support {
	sup := format.SupportAll
	writes := []struct {
		role capability.Role
		sup  format.Support
	}{
		{capability.CPU, ip.CPUWrite},
		{capability.GPU, ip.GPUWrite},
		{capability.DPU, ip.DPUWrite},
		{capability.DPUAEU, ip.DPUAEUWrite},
		{capability.CAM, ip.CAMWrite},
		{capability.VPU, ip.VPUWrite},
	}
	for _, w := range writes {
		if producers.Has(w.role) {
			sup &= w.sup
		}
	}
	reads := []struct {
		role capability.Role
		sup  format.Support
	}{
		{capability.CPU, ip.CPURead},
		{capability.GPU, ip.GPURead},
		{capability.DPU, ip.DPURead},
		{capability.VPU, ip.VPURead},
	}
	for _, r := range reads {
		if consumers.Has(r.role) {
			sup &= r.sup
		}
	}
	return sup
}
