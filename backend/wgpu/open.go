package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// ErrNoHAL is returned by FromProvider when the provider does not expose a
// hal.Device.
var ErrNoHAL = errors.New("wgpu: provider does not expose HAL types")

// FromProvider wraps the device of a host application (for example a gogpu
// window). The provider must implement HalDevice() any returning a
// hal.Device; the pipelines target the provider's surface format unless
// WithFormat says otherwise. The device stays owned by the provider.
func FromProvider(provider gpucontext.DeviceProvider, opts ...Option) (*Device, error) {
	type halProvider interface {
		HalDevice() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	all := append([]Option{WithFormat(provider.SurfaceFormat())}, opts...)
	return New(device, all...), nil
}

// OpenNoop opens a device on the noop HAL backend. Every HAL call succeeds
// without a GPU, which makes it suitable for headless runs and tests; shader
// checking still happens in the naga front end.
func OpenNoop(opts ...Option) (*Device, error) {
	return openAPI(&noop.API{}, nil, opts)
}

// Open opens a device on a registered HAL backend, preferring a discrete or
// integrated GPU. Close destroys the device and its instance.
func Open(backend gputypes.Backend, opts ...Option) (*Device, error) {
	api, ok := hal.GetBackend(backend)
	if !ok {
		return nil, fmt.Errorf("wgpu: backend %v not available", backend)
	}
	return openAPI(api, &hal.InstanceDescriptor{Flags: 0}, opts)
}

// instanceCreator is the part of a HAL backend needed to open a device.
type instanceCreator interface {
	CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error)
}

func openAPI(api instanceCreator, desc *hal.InstanceDescriptor, opts []Option) (*Device, error) {
	instance, err := api.CreateInstance(desc)
	if err != nil {
		return nil, fmt.Errorf("wgpu: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: no GPU adapters found")
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: open device: %w", err)
	}

	d := New(openDev.Device, opts...)
	d.instance = instance
	d.ownsDevice = true
	d.log().Debug("wgpu: opened device", "adapter", selected.Info.Name)
	return d, nil
}
