package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ContextFromProvider builds a Context on a device shared with a host
// application. The provider must duck-type HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue.
func ContextFromProvider(provider any) (*Context, error) {
	hp, ok := provider.(interface {
		HalDevice() any
		HalQueue() any
	})
	if !ok {
		return nil, fmt.Errorf("gpu: provider does not expose HalDevice/HalQueue")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok {
		return nil, fmt.Errorf("gpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok {
		return nil, fmt.Errorf("gpu: provider HalQueue is not hal.Queue")
	}
	return NewContext(device, queue), nil
}

// OpenContext opens a device on the given backend and wraps it in a
// Context. It prefers discrete and integrated GPUs over software
// adapters. The caller owns the returned device through the context's
// lifetime.
func OpenContext(backendType gputypes.Backend) (*Context, error) {
	backend, ok := hal.GetBackend(backendType)
	if !ok {
		return nil, fmt.Errorf("gpu: backend %v not available", backendType)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return nil, fmt.Errorf("gpu: no adapters found")
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
		return nil, fmt.Errorf("open device: %w", err)
	}
	slogger().Info("gpu context opened", "adapter", selected.Info.Name)
	return NewContext(openDev.Device, openDev.Queue), nil
}
