package pathfinder

// Pattern represents a fill or stroke source sampled per-pixel by the
// software rasterizer and by filter compositing.
type Pattern interface {
	// ColorAt returns the color at the given point, in path-local space.
	ColorAt(x, y float64) RGBA
}

// SolidPattern is a constant-color Pattern.
type SolidPattern struct {
	Color RGBA
}

// NewSolidPattern creates a solid color pattern.
func NewSolidPattern(color RGBA) *SolidPattern {
	return &SolidPattern{Color: color}
}

// ColorAt implements Pattern.
func (p *SolidPattern) ColorAt(x, y float64) RGBA {
	return p.Color
}
