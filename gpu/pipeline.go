package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Pipeline names. Each name maps to one embedded shader and one family
// of render pipeline variants.
const (
	PipelineStencil        = "stencil"
	PipelineSolid          = "solid"
	PipelineLinearGradient = "linear_gradient"
	PipelineRadialGradient = "radial_gradient"
	PipelineTexture        = "texture"
)

// vertexStride is the byte stride per vertex: 2 x float32 (x, y).
const vertexStride = 8

// Pipeline bundles the render pipeline variants of one shader, one per
// stencil policy it participates in, plus the shared layouts.
type Pipeline struct {
	name          string
	device        hal.Device
	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	sampler       hal.Sampler
	variants      map[StencilPolicy]hal.RenderPipeline
}

// newPipeline compiles the named shader and creates every variant for
// the target format and sample count. The stencil pipeline carries the
// mask and clip policies with color writes disabled; every other
// pipeline carries the cover policies with premultiplied blending.
func newPipeline(device hal.Device, name string, format gputypes.TextureFormat, samples uint32) (*Pipeline, error) {
	src, err := shaderSource(name)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		name:     name,
		device:   device,
		variants: make(map[StencilPolicy]hal.RenderPipeline),
	}

	p.shader, err = createShaderModule(device, name+"_shader", src)
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("compile %s shader: %w", name, err)
	}

	entries := []gputypes.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
	}
	if name == PipelineTexture {
		entries = append(entries,
			gputypes.BindGroupLayoutEntry{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			gputypes.BindGroupLayoutEntry{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		)
	}

	p.uniformLayout, err = device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   name + "_uniform_layout",
		Entries: entries,
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("create %s bind group layout: %w", name, err)
	}

	p.pipeLayout, err = device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            name + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout},
	})
	if err != nil {
		p.Destroy()
		return nil, fmt.Errorf("create %s pipeline layout: %w", name, err)
	}

	if name == PipelineTexture {
		p.sampler, err = device.CreateSampler(&hal.SamplerDescriptor{
			Label:        "texture_sampler",
			AddressModeU: gputypes.AddressModeClampToEdge,
			AddressModeV: gputypes.AddressModeClampToEdge,
			AddressModeW: gputypes.AddressModeClampToEdge,
			MagFilter:    gputypes.FilterModeLinear,
			MinFilter:    gputypes.FilterModeLinear,
			MipmapFilter: gputypes.FilterModeLinear,
		})
		if err != nil {
			p.Destroy()
			return nil, fmt.Errorf("create texture sampler: %w", err)
		}
	}

	vertexBufferLayout := []gputypes.VertexBufferLayout{
		{
			ArrayStride: vertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{
					Format:         gputypes.VertexFormatFloat32x2,
					Offset:         0,
					ShaderLocation: 0,
				},
			},
		},
	}

	multisample := gputypes.MultisampleState{
		Count: samples,
		Mask:  0xFFFFFFFF,
	}

	primitive := gputypes.PrimitiveState{
		Topology: gputypes.PrimitiveTopologyTriangleList,
		CullMode: gputypes.CullModeNone,
	}

	writesColor := name != PipelineStencil
	premulBlend := gputypes.BlendStatePremultiplied()

	for _, policy := range allPolicies(writesColor) {
		target := gputypes.ColorTargetState{
			Format:    format,
			WriteMask: gputypes.ColorWriteMaskNone,
		}
		if writesColor {
			target.Blend = &premulBlend
			target.WriteMask = gputypes.ColorWriteMaskAll
		}

		variant, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
			Label:  fmt.Sprintf("%s_%s_pipeline", name, policy),
			Layout: p.pipeLayout,
			Vertex: hal.VertexState{
				Module:     p.shader,
				EntryPoint: "vs_main",
				Buffers:    vertexBufferLayout,
			},
			Fragment: &hal.FragmentState{
				Module:     p.shader,
				EntryPoint: "fs_main",
				Targets:    []gputypes.ColorTargetState{target},
			},
			DepthStencil: policy.DepthStencilState(),
			Multisample:  multisample,
			Primitive:    primitive,
		})
		if err != nil {
			p.Destroy()
			return nil, fmt.Errorf("create %s pipeline variant %s: %w", name, policy, err)
		}
		p.variants[policy] = variant
	}

	return p, nil
}

// Variant returns the render pipeline for the given policy. Asking for
// a policy the pipeline does not carry is a programming error.
func (p *Pipeline) Variant(policy StencilPolicy) hal.RenderPipeline {
	variant, ok := p.variants[policy]
	if !ok {
		panic(fmt.Sprintf("gpu: pipeline %q has no %s variant", p.name, policy))
	}
	return variant
}

// BindGroupLayout returns the layout bind groups for this pipeline must
// follow.
func (p *Pipeline) BindGroupLayout() hal.BindGroupLayout {
	return p.uniformLayout
}

// Sampler returns the shared sampler, non-nil only for the texture
// pipeline.
func (p *Pipeline) Sampler() hal.Sampler {
	return p.sampler
}

// Destroy releases all pipeline resources in reverse creation order.
// Safe to call on a partially constructed pipeline.
func (p *Pipeline) Destroy() {
	if p.device == nil {
		return
	}
	for policy, variant := range p.variants {
		if variant != nil {
			p.device.DestroyRenderPipeline(variant)
		}
		delete(p.variants, policy)
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.uniformLayout != nil {
		p.device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}
