// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package halprobe

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gralloc/capability"
)

type mockDevice struct{}

type mockQueue struct{}

type mockAdapter struct{}

// mockProvider implements gpucontext.DeviceProvider for testing.
type mockProvider struct {
	device gpucontext.Device
	name   string
}

func (m *mockProvider) Device() gpucontext.Device   { return m.device }
func (m *mockProvider) Queue() gpucontext.Queue     { return &mockQueue{} }
func (m *mockProvider) Adapter() gpucontext.Adapter { return &mockAdapter{} }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}
func (m *mockProvider) AdapterInfo() gpucontext.AdapterInfo { return gpucontext.AdapterInfo{} }
func (m *mockProvider) AdapterName() string                 { return m.name }

func TestClassify(t *testing.T) {
	generic := capability.NewSet(capability.OptionsPresent, capability.PixFmtRGBA1010102, capability.PixFmtRGBA16161616)
	tests := []struct {
		name       string
		deviceType gputypes.DeviceType
		want       capability.Set
	}{
		{"Mali-G610", gputypes.DeviceTypeIntegratedGPU, capability.FullAFBC()},
		{"ARM MALI-G52 MC2", gputypes.DeviceTypeIntegratedGPU, capability.FullAFBC()},
		{"Intel(R) UHD Graphics", gputypes.DeviceTypeIntegratedGPU, generic},
		{"NVIDIA GeForce RTX 4070", gputypes.DeviceTypeDiscreteGPU, generic},
		{"", gputypes.DeviceTypeIntegratedGPU, generic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.name, tt.deviceType); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestFromDeviceProvider(t *testing.T) {
	p := FromDeviceProvider(&mockProvider{device: &mockDevice{}, name: "Mali-G610"})
	if p.Name() != Name {
		t.Errorf("Name() = %q, want %q", p.Name(), Name)
	}
	if p.Role() != capability.GPU {
		t.Errorf("Role() = %v, want GPU", p.Role())
	}
	got, err := p.Capabilities(context.Background())
	if err != nil {
		t.Fatalf("Capabilities() error = %v", err)
	}
	if got != capability.FullAFBC() {
		t.Errorf("Capabilities() = %v, want full AFBC", got)
	}
}

func TestFromDeviceProviderNoDevice(t *testing.T) {
	p := FromDeviceProvider(&mockProvider{name: "Mali-G610"})
	_, err := p.Capabilities(context.Background())
	if !errors.Is(err, capability.ErrNotAvailable) {
		t.Errorf("Capabilities() error = %v, want %v", err, capability.ErrNotAvailable)
	}
}

func TestCapabilitiesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := FromDeviceProvider(&mockProvider{device: &mockDevice{}})
	if _, err := p.Capabilities(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Capabilities() error = %v, want %v", err, context.Canceled)
	}
}

func TestSelectAdapter(t *testing.T) {
	if got := selectAdapter(nil); got != nil {
		t.Errorf("selectAdapter(nil) = %v, want nil", got)
	}

	adapters := make([]hal.ExposedAdapter, 2)
	adapters[0].Info.Name = "discrete"
	adapters[0].Info.DeviceType = gputypes.DeviceTypeDiscreteGPU
	adapters[1].Info.Name = "integrated"
	adapters[1].Info.DeviceType = gputypes.DeviceTypeIntegratedGPU
	if got := selectAdapter(adapters); got.Info.Name != "integrated" {
		t.Errorf("selectAdapter() = %q, want integrated", got.Info.Name)
	}
	if got := selectAdapter(adapters[:1]); got.Info.Name != "discrete" {
		t.Errorf("selectAdapter() = %q, want discrete", got.Info.Name)
	}
}

func TestRegister(t *testing.T) {
	t.Cleanup(func() { capability.Unregister(capability.GPU, Name) })

	Register(WithDeviceProvider(&mockProvider{device: &mockDevice{}, name: "Mali-G57"}))
	var found bool
	for _, p := range capability.Providers(capability.GPU) {
		if p.Name() == Name {
			found = true
		}
	}
	if !found {
		t.Error("Register() did not add the probe to the GPU providers")
	}
}
