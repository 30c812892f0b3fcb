package pathfinder

import "errors"

// Package errors for the rasterizer.
var (
	// ErrInvalidPath is returned when a fill or stroke operation is given a
	// nil or otherwise unusable path, pixmap, or paint.
	ErrInvalidPath = errors.New("pathfinder: invalid path")

	// ErrPaintIndexOutOfRange is returned when a brush or filter reference
	// resolves to an index outside its encoding's side array.
	ErrPaintIndexOutOfRange = errors.New("pathfinder: paint index out of range")

	// ErrResourceExhausted is returned when a render exceeds a configured
	// resource bound (tile count, worker queue depth, GPU buffer size). It
	// is non-fatal: the caller may retry with a smaller scene or a larger
	// bound.
	ErrResourceExhausted = errors.New("pathfinder: resource exhausted")

	// ErrDeviceLost is returned when the bound GPU device becomes
	// unavailable mid-render. The Scene remains valid; GPU buffers tied to
	// the lost device do not.
	ErrDeviceLost = errors.New("pathfinder: GPU device lost")
)
