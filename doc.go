// Package pathfinder provides the geometry and data-model primitives that
// back a GPU-accelerated 2D vector rasterizer: points, affine transforms,
// Bezier curves with flattening and monotonic splitting, paths, paint
// descriptors, strokes, dashing and gradients.
//
// # Overview
//
// This package is the leaf layer of the rasterizer: it has no dependency on
// the tiling, scene or GPU packages built on top of it. Curves are flattened
// with an error-bound tolerance (see [Path.Flatten]) and strokes are
// converted to fill outlines before any tile-space work happens.
//
// # Layering
//
//   - pathfinder (this package): points, matrices, curves, paths, paint,
//     stroke-to-fill, dash, gradients.
//   - scene: retained-mode scene graph built from these primitives, encoded
//     for the tiler.
//   - internal/tile: CPU tiling prepass (path tagging, coarse binning,
//     per-tile command lists, fine rasterization).
//   - internal/blend, internal/filter: compositing and filter math consumed
//     by the fine stage and the GPU tile shader.
//   - render, gpucore: device abstraction and pipeline orchestration handed
//     to an external GPU backend.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left.
//   - X increases right, Y increases down.
//   - Angles in radians, 0 is along +X, increasing clockwise (screen space).
package pathfinder
