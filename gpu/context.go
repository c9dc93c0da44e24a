package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// pipelineKey identifies one compiled pipeline family. Pipelines are
// specialized per target format and sample count, so surfaces with
// different configurations never share a cache slot by accident.
type pipelineKey struct {
	name    string
	format  gputypes.TextureFormat
	samples uint32
}

// Context owns the device-level resources shared between surfaces: the
// pipeline cache keyed by shader name, target format and sample count.
type Context struct {
	device    hal.Device
	queue     hal.Queue
	pipelines map[pipelineKey]*Pipeline
}

// NewContext wraps an open device and queue.
func NewContext(device hal.Device, queue hal.Queue) *Context {
	return &Context{
		device:    device,
		queue:     queue,
		pipelines: make(map[pipelineKey]*Pipeline),
	}
}

// Device returns the underlying hal device.
func (c *Context) Device() hal.Device {
	return c.device
}

// Queue returns the underlying hal queue.
func (c *Context) Queue() hal.Queue {
	return c.queue
}

// LoadPipeline compiles the named pipeline for the given target
// configuration if it is not already cached. Calling it again with the
// same key is a no-op.
func (c *Context) LoadPipeline(name string, format gputypes.TextureFormat, samples uint32) error {
	key := pipelineKey{name: name, format: format, samples: samples}
	if _, ok := c.pipelines[key]; ok {
		return nil
	}
	p, err := newPipeline(c.device, name, format, samples)
	if err != nil {
		return err
	}
	c.pipelines[key] = p
	slogger().Debug("pipeline loaded", "name", name, "format", format, "samples", samples)
	return nil
}

// GetPipeline returns a previously loaded pipeline. Requesting one that
// was never loaded is a programming error.
func (c *Context) GetPipeline(name string, format gputypes.TextureFormat, samples uint32) *Pipeline {
	key := pipelineKey{name: name, format: format, samples: samples}
	p, ok := c.pipelines[key]
	if !ok {
		panic(fmt.Sprintf("gpu: pipeline %q not loaded for format %v samples %d", name, format, samples))
	}
	return p
}

// Destroy releases every cached pipeline. The device and queue are not
// owned by the context and stay open.
func (c *Context) Destroy() {
	for key, p := range c.pipelines {
		p.Destroy()
		delete(c.pipelines, key)
	}
}
