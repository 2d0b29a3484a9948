package usage

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		u       Usage
		wantErr bool
	}{
		{"zero", 0, false},
		{"cpu", SWReadOften | SWWriteOften, false},
		{"composer", HWComposer, false},
		{"private", NoAFBC | FrontBuffer, false},
		{"reserved", 1 << 40, true},
		{"vendor", 1 << 60, true},
		{"mixed", HWTexture | 1<<41, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.u.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidUsage) {
				t.Errorf("Validate() error = %v, want ErrInvalidUsage", err)
			}
		})
	}
}

func TestPublic(t *testing.T) {
	u := HWTexture | Protected | FrontBuffer | NoAFBC
	if got := u.Public(); got != HWTexture {
		t.Errorf("Public() = %v, want %v", got, HWTexture)
	}
}

func TestAccess(t *testing.T) {
	if !(SWReadRarely).CPUAccess() {
		t.Error("SWReadRarely.CPUAccess() = false, want true")
	}
	if (HWTexture).CPUAccess() {
		t.Error("HWTexture.CPUAccess() = true, want false")
	}
	if !(HWComposer).HWAccess() {
		t.Error("HWComposer.HWAccess() = false, want true")
	}
	if (SWWriteOften | FrontBuffer).HWAccess() {
		t.Error("SWWriteOften.HWAccess() = true, want false")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		u    Usage
		want string
	}{
		{0, "0"},
		{HWTexture | HWComposer, "TEXTURE|COMPOSER"},
		{NoAFBC, "NO_AFBC"},
		{1 << 29, "0x20000000"},
		{HWRender | 1<<40, "RENDER|0x10000000000"},
	}
	for _, tt := range tests {
		if got := tt.u.String(); got != tt.want {
			t.Errorf("Usage(0x%x).String() = %q, want %q", uint64(tt.u), got, tt.want)
		}
	}
}

func TestTextureUsage(t *testing.T) {
	got := (HWTexture | HWRender | SWReadOften).TextureUsage()
	want := gputypes.TextureUsageTextureBinding | gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc
	if got != want {
		t.Errorf("TextureUsage() = %v, want %v", got, want)
	}
	if got := HWComposer.TextureUsage(); got != 0 {
		t.Errorf("HWComposer.TextureUsage() = %v, want 0", got)
	}
}
