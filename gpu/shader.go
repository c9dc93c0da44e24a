package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/stencil.wgsl
var stencilShaderSource string

//go:embed shaders/solid.wgsl
var solidShaderSource string

//go:embed shaders/linear_gradient.wgsl
var linearGradientShaderSource string

//go:embed shaders/radial_gradient.wgsl
var radialGradientShaderSource string

//go:embed shaders/texture.wgsl
var textureShaderSource string

// shaderSource returns the embedded WGSL for a pipeline name.
func shaderSource(name string) (string, error) {
	switch name {
	case PipelineStencil:
		return stencilShaderSource, nil
	case PipelineSolid:
		return solidShaderSource, nil
	case PipelineLinearGradient:
		return linearGradientShaderSource, nil
	case PipelineRadialGradient:
		return radialGradientShaderSource, nil
	case PipelineTexture:
		return textureShaderSource, nil
	default:
		return "", fmt.Errorf("gpu: unknown shader %q", name)
	}
}

// compileToSPIRV compiles WGSL source to SPIR-V words.
func compileToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// createShaderModule compiles src ahead of time with naga and hands the
// device SPIR-V. Backends that cannot consume SPIR-V, or sources naga
// rejects, fall back to the device's own WGSL frontend.
func createShaderModule(device hal.Device, label, src string) (hal.ShaderModule, error) {
	words, err := compileToSPIRV(src)
	if err != nil {
		slogger().Warn("shader precompile failed, passing WGSL to device",
			"shader", label, "error", err)
		return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
			Label:  label,
			Source: hal.ShaderSource{WGSL: src},
		})
	}
	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{SPIRV: words},
	})
}
