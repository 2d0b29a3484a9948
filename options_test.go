package gralloc

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gralloc/capability"
	"github.com/gogpu/gralloc/format"
	"github.com/gogpu/gralloc/usage"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.snapshot != nil {
		t.Error("default snapshot should be nil")
	}
	if o.display.MinAFBCPercent != capability.DefaultMinAFBCDisplayPercent {
		t.Errorf("MinAFBCPercent = %d, want %d", o.display.MinAFBCPercent, capability.DefaultMinAFBCDisplayPercent)
	}
	if o.fbNoAFBC || o.fbForceBGRA {
		t.Error("framebuffer options should be off by default")
	}
}

func TestWithSnapshot(t *testing.T) {
	snap := fullSnapshot()
	a := New(WithSnapshot(snap))
	if a.Snapshot() != snap {
		t.Error("Snapshot() did not return the snapshot passed to WithSnapshot")
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	a := New(WithSnapshot(capability.DefaultSnapshot()), WithLogger(l))
	if _, err := a.Allocate(BufferDescriptor{
		Width: 64, Height: 64,
		Format: uint32(format.RGBA8888),
		Usage:  usage.HWTexture,
	}); err != nil {
		t.Fatalf("Allocate() error = %v", err)
	}
	if !strings.Contains(buf.String(), "gralloc: allocated") {
		t.Errorf("expected allocation message in log output, got: %s", buf.String())
	}
}

func TestWithDisplaySize(t *testing.T) {
	desc := BufferDescriptor{
		Width: 1000, Height: 1000,
		Format: uint32(format.RGBA8888),
		Usage:  usage.HWRender | usage.HWFramebuffer,
	}

	tests := []struct {
		name           string
		opts           []Option
		wantCompressed bool
	}{
		{"no display", nil, true},
		{"below default share", []Option{WithDisplaySize(1920, 1080)}, false},
		{"above lowered share", []Option{WithDisplaySize(1920, 1080), WithMinAFBCDisplayPercent(40)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(append([]Option{WithSnapshot(fullSnapshot())}, tt.opts...)...)
			sel, err := a.Select(desc)
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			if got := sel.Format.Modifiers.IsCompressed(); got != tt.wantCompressed {
				t.Errorf("Select() = %v, compressed %v, want %v", sel.Format, got, tt.wantCompressed)
			}
		})
	}
}

func TestFramebufferOptions(t *testing.T) {
	desc := BufferDescriptor{
		Width: 1920, Height: 1080,
		Format: uint32(format.RGBA8888),
		Usage:  usage.HWRender | usage.HWFramebuffer,
	}

	a := New(WithSnapshot(fullSnapshot()), WithFramebufferAFBCDisabled())
	sel, err := a.Select(desc)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if want := (format.AllocFormat{Base: format.RGBA8888}); sel.Format != want {
		t.Errorf("WithFramebufferAFBCDisabled: Select() = %v, want %v", sel.Format, want)
	}

	a = New(WithSnapshot(fullSnapshot()), WithForceFramebufferBGRA())
	sel, err = a.Select(desc)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if want := (format.AllocFormat{Base: format.BGRA8888}); sel.Format != want {
		t.Errorf("WithForceFramebufferBGRA: Select() = %v, want %v", sel.Format, want)
	}

	desc.Usage |= usage.SWReadOften
	if _, err := a.Select(desc); !errors.Is(err, ErrNoCompatibleFormat) {
		t.Errorf("WithForceFramebufferBGRA with CPU read: error = %v, want %v", err, ErrNoCompatibleFormat)
	}
}
