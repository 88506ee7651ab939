package gpucore

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

//go:embed shaders/text.wgsl
var textShaderWGSL string

// TextShaderWGSL returns the WGSL source of the text shader.
//
// Bindings (group 0): 0 uniforms {viewport, origin, color}, 1 atlas
// texture, 2 sampler. The fragment stage multiplies the color by the atlas
// alpha.
func TextShaderWGSL() string {
	return textShaderWGSL
}

// CompileTextShader compiles the text shader to SPIR-V words.
func CompileTextShader() ([]uint32, error) {
	spirvBytes, err := naga.Compile(textShaderWGSL)
	if err != nil {
		return nil, fmt.Errorf("gpucore: compile text shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirvCode, nil
}
