// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Compositing helpers for multi-path rendering.
// Implements premultiplied source-over blending matching Vello's fine.rs.

package tile

// blendSourceOver composites src over dst using premultiplied alpha source-over.
// srcColor is the path color in straight alpha RGBA.
// alpha is the path coverage value (0.0-1.0) from the rasterizer.
// dst is the current pixel color in straight alpha RGBA.
// Returns the blended color in straight alpha RGBA.
func blendSourceOver(srcColor [4]uint8, alpha float32, dst [4]uint8) [4]uint8 {
	if alpha <= 0 {
		return dst
	}
	if alpha > 1.0 {
		alpha = 1.0
	}

	srcA := alpha * float32(srcColor[3]) / 255.0

	srcR := float32(srcColor[0]) / 255.0 * srcA
	srcG := float32(srcColor[1]) / 255.0 * srcA
	srcB := float32(srcColor[2]) / 255.0 * srcA

	dstA := float32(dst[3]) / 255.0
	dstR := float32(dst[0]) / 255.0 * dstA
	dstG := float32(dst[1]) / 255.0 * dstA
	dstB := float32(dst[2]) / 255.0 * dstA

	inv := 1.0 - srcA
	outA := srcA + dstA*inv
	if outA <= 0 {
		return [4]uint8{}
	}
	// Convert the premultiplied result back to straight alpha.
	outR := (srcR + dstR*inv) / outA
	outG := (srcG + dstG*inv) / outA
	outB := (srcB + dstB*inv) / outA

	return [4]uint8{
		uint8(outR*255.0 + 0.5),
		uint8(outG*255.0 + 0.5),
		uint8(outB*255.0 + 0.5),
		uint8(outA*255.0 + 0.5),
	}
}
