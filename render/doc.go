// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides the integration layer between pathfinder and GPU
// frameworks.
//
// This package defines the abstractions for device integration: a GPU
// device handed in by a host application (like gogpu.App), render targets,
// and the Renderer interface.
//
// # Key Principle
//
// The GPU device comes from the host application; this package does not
// create one. This follows the Vello/femtovg/Skia pattern where the rendering
// library is injected with GPU resources rather than managing them itself.
//
// # Core Interfaces
//
//   - DeviceHandle: Provides GPU device access from the host application
//   - RenderTarget: Defines where rendering output goes (Pixmap, Texture, Surface)
//   - Renderer: Executes drawing commands to a target
//
// This package declares the Renderer interface only; it contains no Renderer
// implementation. CPU rendering of a scene is done by scene.Renderer, which
// draws into a *pathfinder.Pixmap rather than a RenderTarget.
//
// # RenderTarget Implementations
//
//   - PixmapTarget: CPU-backed *image.RGBA target
//   - TextureTarget: GPU texture target (stub)
//   - SurfaceTarget: Window surface from host (stub)
//
// # Usage
//
//	// Create CPU-backed target
//	target := render.NewPixmapTarget(800, 600)
//
//	// Render with any render.Renderer implementation
//	err := renderer.Render(target, scene)
//
//	// Get rendered image
//	img := target.Image()
//
// # Thread Safety
//
// Renderers are NOT thread-safe. Each renderer should be used from a single
// goroutine, or external synchronization must be used.
//
// # References
//
//   - Vello DeviceProvider pattern: https://github.com/AhornGraphics/vello
//   - femtovg Renderer trait: https://github.com/AhornGraphics/femtovg
//   - Skia GrDirectContext: https://skia.org/docs/user/api/
package render
