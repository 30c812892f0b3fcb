// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// GPU upload wire formats for fills, draw tiles and alpha atlas coordinates.
//
// The fine/coarse stages in this package keep their working data as PTCL
// command streams (ptcl.go) because that is how the CPU port of the tiling
// pipeline is structured. This file is the boundary layer: it packs that
// same information into the fixed-width records an external GPU backend
// expects to upload into storage buffers, and unpacks them back for
// round-trip tests and CPU read-back.

package tile

// FillRecord is a clipped edge segment inside one screen tile: two 8.8
// fixed-point endpoints plus a link to the next fill in the same tile's
// linked list. Wire layout: 3 x u32 = {from_x:u16|from_y:u16,
// to_x:u16|to_y:u16, next_fill_id:u32}.
type FillRecord struct {
	FromX, FromY Fixed88
	ToX, ToY     Fixed88
	NextFillID   uint32
}

// Fixed88 is an 8.8 fixed-point coordinate, origin at the tile's upper-left
// corner, range [-32768, 32768) pixels.
type Fixed88 int16

// ToFixed88 converts a tile-local pixel coordinate to 8.8 fixed point.
func ToFixed88(px float32) Fixed88 {
	return Fixed88(px * 256)
}

// Float32 converts an 8.8 fixed-point coordinate back to a pixel float.
func (f Fixed88) Float32() float32 {
	return float32(f) / 256
}

// PackFillRecord serializes a FillRecord into its 3xu32 wire form.
func PackFillRecord(r FillRecord) [3]uint32 {
	return [3]uint32{
		uint32(uint16(r.FromX)) | uint32(uint16(r.FromY))<<16,
		uint32(uint16(r.ToX)) | uint32(uint16(r.ToY))<<16,
		r.NextFillID,
	}
}

// UnpackFillRecord reverses PackFillRecord.
func UnpackFillRecord(words [3]uint32) FillRecord {
	return FillRecord{
		FromX:      Fixed88(uint16(words[0])),
		FromY:      Fixed88(uint16(words[0] >> 16)),
		ToX:        Fixed88(uint16(words[1])),
		ToY:        Fixed88(uint16(words[1] >> 16)),
		NextFillID: words[2],
	}
}

// TileCtrl packs the control bits carried alongside a draw tile: paint
// index, tile control flags (fill rule, clip mode, ...) and the tile's
// signed backdrop.
type TileCtrl struct {
	PaintID  uint16
	CtrlBits uint8
	Backdrop int8
}

// DrawTileRecord is one (path, screen-tile) pair with non-empty
// contribution. Wire layout: 4 x u32 = {next_tile_id, first_fill_id,
// backdrop_delta:i8<<24|alpha_tile_id:u24, ctrl}.
type DrawTileRecord struct {
	NextTileID    uint32
	FirstFillID   uint32
	BackdropDelta int8
	AlphaTileID   uint32 // 24 bits; AlphaTileIDSolid means "solid, no atlas slot"
	Ctrl          TileCtrl
}

// AlphaTileIDSolid is the sentinel AlphaTileID value (2^24-1, i.e. the
// "-1" of a 24-bit field) meaning the draw tile is solid: it has no alpha
// atlas slot and the tile shader should use the backdrop as constant
// coverage instead of sampling the mask.
const AlphaTileIDSolid uint32 = 0xFFFFFF

// PackDrawTileRecord serializes a DrawTileRecord into its 4xu32 wire form.
func PackDrawTileRecord(r DrawTileRecord) [4]uint32 {
	word2 := uint32(uint8(r.BackdropDelta))<<24 | (r.AlphaTileID & 0xFFFFFF)
	ctrl := uint32(r.Ctrl.PaintID) | uint32(r.Ctrl.CtrlBits)<<16 | uint32(uint8(r.Ctrl.Backdrop))<<24
	return [4]uint32{r.NextTileID, r.FirstFillID, word2, ctrl}
}

// UnpackDrawTileRecord reverses PackDrawTileRecord.
func UnpackDrawTileRecord(words [4]uint32) DrawTileRecord {
	return DrawTileRecord{
		NextTileID:    words[0],
		FirstFillID:   words[1],
		BackdropDelta: int8(uint8(words[2] >> 24)),
		AlphaTileID:   words[2] & 0xFFFFFF,
		Ctrl: TileCtrl{
			PaintID:  uint16(words[3]),
			CtrlBits: uint8(words[3] >> 16),
			Backdrop: int8(uint8(words[3] >> 24)),
		},
	}
}

// IsSolid reports whether the draw tile carries a constant backdrop
// coverage rather than an alpha atlas mask.
func (r DrawTileRecord) IsSolid() bool {
	return r.AlphaTileID == AlphaTileIDSolid
}

// AlphaAtlasCoord is the (x, y) texel origin of a 16x16 alpha atlas tile.
type AlphaAtlasCoord struct {
	X, Y uint32
}

// PackAlphaTileID encodes an atlas coordinate into the 24-bit alpha tile
// id layout: x = id & 0xFF, y = ((id>>8) & 0xFF) + (((id>>16) & 0xFF) << 8).
func PackAlphaTileID(c AlphaAtlasCoord) uint32 {
	yLow := c.Y & 0xFF
	yHigh := (c.Y >> 8) & 0xFF
	return (c.X & 0xFF) | (yLow << 8) | (yHigh << 16)
}

// UnpackAlphaTileID reverses PackAlphaTileID.
func UnpackAlphaTileID(id uint32) AlphaAtlasCoord {
	x := id & 0xFF
	y := ((id >> 8) & 0xFF) | (((id >> 16) & 0xFF) << 8)
	return AlphaAtlasCoord{X: x, Y: y}
}

// MetadataTexelsPerPaint is the fixed number of consecutive RGBA8 texels
// reserved per paint in the metadata texture: color transform row 0,
// offsets, base color, filter params 0..4, extra.
const MetadataTexelsPerPaint = 10
