// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucore

// GPUAdapter abstracts over GPU backend implementations so the pipeline
// stages in this package can create shader resources without depending on
// a specific backend (gogpu/wgpu, gogpu/gogpu, ...).
type GPUAdapter interface {
	// SupportsCompute reports whether the adapter can run compute shaders.
	// When false, HybridPipeline falls back to CPU execution of all stages.
	SupportsCompute() bool

	// CreateShaderModule creates a shader module from SPIR-V words.
	CreateShaderModule(spirv []uint32, label string) (ShaderModuleID, error)

	// DestroyShaderModule releases a shader module created by CreateShaderModule.
	DestroyShaderModule(id ShaderModuleID)
}
