package gralloc

import (
	"log/slog"

	"github.com/gogpu/gralloc/capability"
)

// Option configures an Allocator during creation.
//
// Example:
//
//	// Process-wide capabilities, no display heuristic
//	a := gralloc.New()
//
//	// Fixed capabilities and a 1080p panel
//	a := gralloc.New(
//	    gralloc.WithSnapshot(snap),
//	    gralloc.WithDisplaySize(1920, 1080),
//	)
type Option func(*options)

// options holds optional configuration for Allocator creation.
type options struct {
	snapshot    *capability.Snapshot
	logger      *slog.Logger
	display     capability.Display
	fbNoAFBC    bool
	fbForceBGRA bool
}

// defaultOptions returns the default allocator options.
func defaultOptions() options {
	return options{
		snapshot: nil, // capability.Current() if nil
		logger:   nil, // package logger if nil
		display:  capability.Display{MinAFBCPercent: capability.DefaultMinAFBCDisplayPercent},
	}
}

// WithSnapshot makes the Allocator negotiate with snap instead of the
// process-wide snapshot.
func WithSnapshot(snap capability.Snapshot) Option {
	return func(o *options) {
		o.snapshot = &snap
	}
}

// WithLogger sets the logger for messages the Allocator itself emits.
// Sub-packages keep using the logger installed with SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithDisplaySize enables the display size heuristic: buffers covering
// less than the minimum share of a width x height panel are not
// compressed for the display.
func WithDisplaySize(width, height uint32) Option {
	return func(o *options) {
		o.display.Width = width
		o.display.Height = height
	}
}

// WithMinAFBCDisplayPercent sets the minimum share of the display area,
// in percent, for display compression. The default is
// capability.DefaultMinAFBCDisplayPercent.
func WithMinAFBCDisplayPercent(percent uint32) Option {
	return func(o *options) {
		o.display.MinAFBCPercent = percent
	}
}

// WithFramebufferAFBCDisabled keeps framebuffer targets uncompressed.
func WithFramebufferAFBCDisabled() Option {
	return func(o *options) {
		o.fbNoAFBC = true
	}
}

// WithForceFramebufferBGRA allocates framebuffer targets as BGRA8888 for
// displays that expect that channel order.
func WithForceFramebufferBGRA() Option {
	return func(o *options) {
		o.fbForceBGRA = true
	}
}
