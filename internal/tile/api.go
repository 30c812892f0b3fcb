// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Exported entry points into the pipeline stages that are otherwise kept
// package-private so callers outside this package (the parallel tile
// renderer) can drive the pathtag/draw reduce-scan and fine stages
// directly instead of going through the single-threaded Rasterizer.

package tile

// PathtagReduceScan runs the path tag monoid reduce+scan passes over a
// packed scene. It returns nothing: the scan result is discarded. The draw
// monoids and draw info buffer needed by CoarseRasterize come from
// DrawReduceScan.
func PathtagReduceScan(scene *PackedScene) {
	reduced := pathtagReduce(scene)
	pathtagScan(scene, reduced)
}

// DrawReduceScan runs the draw tag monoid reduce+scan passes, returning
// one DrawMonoid per draw object and the extracted draw info buffer
// (currently packed solid colors).
func DrawReduceScan(scene *PackedScene) (drawMonoids []DrawMonoid, info []uint32) {
	reduced := drawReduce(scene)
	return drawLeafScan(scene, reduced)
}

// FineRasterizeTile executes a single tile's PTCL command list and returns
// its premultiplied RGBA pixels. Safe to call concurrently across tiles:
// each call only reads the shared segments slice and writes to its own
// stack-allocated output array.
func FineRasterizeTile(ptcl *PTCL, segments []PathSegment, bgColor [4]float32) [TileWidth * TileHeight][4]float32 {
	return fineRasterizeTile(ptcl, segments, bgColor)
}

// PremulToStraightU8 converts a premultiplied float32 RGBA pixel to
// straight-alpha uint8, as used when copying fine-rasterized tiles into an
// 8-bit-per-channel target buffer.
func PremulToStraightU8(pm [4]float32) [4]uint8 {
	return premulToStraightU8(pm)
}
