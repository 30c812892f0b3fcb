// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucore

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

//go:embed shaders/fill.wgsl
var fillShaderWGSL string

//go:embed shaders/tile.wgsl
var tileShaderWGSL string

// CompileShaderToSPIRV compiles WGSL source to a SPIR-V uint32 word slice
// via naga, the shader cross-compiler used throughout the gogpu stack.
func CompileShaderToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("gpucore: compile shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("gpucore: SPIR-V byte length %d is not a multiple of 4", len(spirvBytes))
	}

	spirv := make([]uint32, len(spirvBytes)/4)
	for i := range spirv {
		spirv[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirv, nil
}

// compiledShaders holds the fill and tile shader modules created by
// loadShaders; both are zero until init() runs them through the adapter.
type compiledShaders struct {
	fill ShaderModuleID
	tile ShaderModuleID
}

// loadShaders compiles the fill and tile stage WGSL sources to SPIR-V and
// creates shader modules on the adapter. Only called when the pipeline is
// running the GPU path; the CPU fallback never touches naga or the
// adapter's shader module API.
func loadShaders(adapter GPUAdapter) (compiledShaders, error) {
	fillSPIRV, err := CompileShaderToSPIRV(fillShaderWGSL)
	if err != nil {
		return compiledShaders{}, fmt.Errorf("gpucore: fill shader: %w", err)
	}
	fillID, err := adapter.CreateShaderModule(fillSPIRV, "pathfinder.fill")
	if err != nil {
		return compiledShaders{}, fmt.Errorf("gpucore: create fill shader module: %w", err)
	}

	tileSPIRV, err := CompileShaderToSPIRV(tileShaderWGSL)
	if err != nil {
		return compiledShaders{}, fmt.Errorf("gpucore: tile shader: %w", err)
	}
	tileID, err := adapter.CreateShaderModule(tileSPIRV, "pathfinder.tile")
	if err != nil {
		return compiledShaders{}, fmt.Errorf("gpucore: create tile shader module: %w", err)
	}

	return compiledShaders{fill: fillID, tile: tileID}, nil
}
