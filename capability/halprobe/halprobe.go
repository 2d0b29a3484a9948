// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

// Package halprobe reports GPU capabilities discovered through a wgpu HAL
// adapter.
//
// Register the probe before the first allocation:
//
//	halprobe.Register()
//	a := gralloc.New()
//
// Applications that already own a device can describe it instead of
// opening a new HAL instance:
//
//	capability.Register(halprobe.FromDeviceProvider(provider))
package halprobe

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gralloc/capability"
	"github.com/gogpu/gralloc/internal/logging"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// Name is the provider name the probe registers under.
const Name = "halprobe"

func slogger() *slog.Logger { return logging.Logger() }

// Option configures a Probe.
type Option func(*options)

type options struct {
	backend  gputypes.Backend
	provider gpucontext.DeviceProvider
}

func defaultOptions() options {
	return options{backend: gputypes.BackendVulkan}
}

// WithBackend selects the HAL backend to enumerate. The default is Vulkan.
func WithBackend(b gputypes.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithDeviceProvider describes the device of an existing provider
// instead of enumerating adapters.
func WithDeviceProvider(p gpucontext.DeviceProvider) Option {
	return func(o *options) {
		o.provider = p
	}
}

// Probe is a capability.Provider for the GPU role.
type Probe struct {
	opts options
}

var _ capability.Provider = (*Probe)(nil)

// New creates a Probe.
func New(opts ...Option) *Probe {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Probe{opts: o}
}

// FromDeviceProvider creates a Probe describing the device of p.
//
// p may implement AdapterName() string to expose the adapter name;
// without it the device is treated as a generic GPU.
func FromDeviceProvider(p gpucontext.DeviceProvider) *Probe {
	return New(WithDeviceProvider(p))
}

// Register registers a Probe built from opts with the capability
// registry.
func Register(opts ...Option) {
	capability.Register(New(opts...))
}

// Name implements capability.Provider.
func (p *Probe) Name() string { return Name }

// Role implements capability.Provider.
func (p *Probe) Role() capability.Role { return capability.GPU }

// Capabilities implements capability.Provider.
func (p *Probe) Capabilities(ctx context.Context) (capability.Set, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if p.opts.provider != nil {
		return fromProvider(p.opts.provider)
	}
	return p.enumerate()
}

func fromProvider(dp gpucontext.DeviceProvider) (capability.Set, error) {
	if dp.Device() == nil {
		return 0, errors.Wrap(capability.ErrNotAvailable, "halprobe: provider has no device")
	}
	var name string
	if n, ok := dp.(interface{ AdapterName() string }); ok {
		name = n.AdapterName()
	}
	var dt gputypes.DeviceType
	caps := Classify(name, dt)
	slogger().Info("halprobe: device provider", "adapter", name, "caps", caps.String())
	return caps, nil
}

func (p *Probe) enumerate() (capability.Set, error) {
	backend, ok := hal.GetBackend(p.opts.backend)
	if !ok {
		return 0, errors.Wrapf(capability.ErrNotAvailable, "halprobe: backend %v not available", p.opts.backend)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return 0, errors.Wrap(err, "halprobe: create instance")
	}
	defer instance.Destroy()

	adapters := instance.EnumerateAdapters(nil)
	selected := selectAdapter(adapters)
	if selected == nil {
		return 0, errors.Wrap(capability.ErrNotAvailable, "halprobe: no GPU adapters found")
	}

	caps := Classify(selected.Info.Name, selected.Info.DeviceType)
	slogger().Info("halprobe: adapter selected", "adapter", selected.Info.Name, "caps", caps.String())
	return caps, nil
}

// selectAdapter prefers an integrated GPU, then a discrete one, then the
// first adapter.
func selectAdapter(adapters []hal.ExposedAdapter) *hal.ExposedAdapter {
	if len(adapters) == 0 {
		return nil
	}
	for _, want := range []gputypes.DeviceType{gputypes.DeviceTypeIntegratedGPU, gputypes.DeviceTypeDiscreteGPU} {
		for i := range adapters {
			if adapters[i].Info.DeviceType == want {
				return &adapters[i]
			}
		}
	}
	return &adapters[0]
}

// Classify returns the capability set of an adapter. Mali GPUs read and
// write every AFBC feature; other GPUs take part in negotiation with
// uncompressed buffers and the extended pixel formats.
func Classify(name string, deviceType gputypes.DeviceType) capability.Set {
	if strings.Contains(strings.ToLower(name), "mali") {
		return capability.FullAFBC()
	}
	if deviceType == gputypes.DeviceTypeDiscreteGPU {
		slogger().Debug("halprobe: discrete adapter, no AFBC", "adapter", name)
	}
	return capability.NewSet(
		capability.OptionsPresent,
		capability.PixFmtRGBA1010102,
		capability.PixFmtRGBA16161616,
	)
}
