package pathfinder

import (
	"github.com/gogpu/pathfinder/internal/path"
	"github.com/gogpu/pathfinder/internal/raster"
	"github.com/gogpu/pathfinder/internal/stroke"
)

// RenderMode selects the anti-aliasing algorithm used by SoftwareRenderer.
type RenderMode int

const (
	// RenderModeSupersampled uses 4x supersampling for anti-aliasing (default).
	RenderModeSupersampled RenderMode = iota

	// RenderModeAnalytic uses exact geometric coverage calculation, when an
	// AnalyticFillerInterface has been injected via SetAnalyticFiller.
	RenderModeAnalytic
)

// AnalyticFillerInterface allows an external analytic coverage filler (the GPU
// fill stage's CPU-side counterpart) to be injected without this package
// depending on it directly.
type AnalyticFillerInterface interface {
	Fill(p *Path, fillRule FillRule, callback func(y int, iter func(yield func(x int, alpha uint8) bool)))
	Reset()
}

// SoftwareRenderer is the CPU fallback rasterizer used by the tile renderer
// when no GPU device is bound. It walks a Path's flattened edges with a
// scanline-and-active-edge-table algorithm and blends coverage into a
// *Pixmap, matching the exact-area trapezoidal coverage the GPU fill stage
// computes, to 4x supersampled precision.
type SoftwareRenderer struct {
	rasterizer *raster.Rasterizer

	mode RenderMode

	analyticFiller AnalyticFillerInterface

	width, height int
}

// NewSoftwareRenderer creates a new software renderer for the given pixmap
// dimensions. Default mode is RenderModeSupersampled.
func NewSoftwareRenderer(width, height int) *SoftwareRenderer {
	return &SoftwareRenderer{
		rasterizer: raster.NewRasterizer(width, height),
		mode:       RenderModeSupersampled,
		width:      width,
		height:     height,
	}
}

// Resize rebuilds the renderer's internal rasterizer for new pixmap
// dimensions, allowing a pooled SoftwareRenderer to be reused across tiles
// of different sizes.
func (r *SoftwareRenderer) Resize(width, height int) {
	if r.width == width && r.height == height {
		return
	}
	r.rasterizer = raster.NewRasterizer(width, height)
	r.width = width
	r.height = height
}

// SetRenderMode sets the anti-aliasing mode.
func (r *SoftwareRenderer) SetRenderMode(mode RenderMode) {
	r.mode = mode
}

// RenderMode returns the current anti-aliasing mode.
func (r *SoftwareRenderer) RenderMode() RenderMode {
	return r.mode
}

// SetAnalyticFiller configures the analytic filler used by RenderModeAnalytic.
func (r *SoftwareRenderer) SetAnalyticFiller(filler AnalyticFillerInterface) {
	r.analyticFiller = filler
	if filler != nil {
		r.mode = RenderModeAnalytic
	}
}

// pixmapAdapter adapts *Pixmap to raster.Pixmap/raster.AAPixmap.
type pixmapAdapter struct {
	pixmap *Pixmap
}

func (p *pixmapAdapter) Width() int  { return p.pixmap.Width() }
func (p *pixmapAdapter) Height() int { return p.pixmap.Height() }

func (p *pixmapAdapter) SetPixel(x, y int, c raster.RGBA) {
	p.pixmap.SetPixel(x, y, RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
}

// BlendPixelAlpha implements raster.AAPixmap, blending a color with the
// existing pixel at the given supersampled coverage alpha.
func (p *pixmapAdapter) BlendPixelAlpha(x, y int, c raster.RGBA, alpha uint8) {
	if alpha == 0 {
		return
	}
	if x < 0 || x >= p.pixmap.Width() || y < 0 || y >= p.pixmap.Height() {
		return
	}
	if alpha == 255 {
		p.pixmap.SetPixel(x, y, RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		return
	}

	existing := p.pixmap.GetPixel(x, y)
	srcAlpha := c.A * float64(alpha) / 255.0
	invSrcAlpha := 1.0 - srcAlpha

	outA := srcAlpha + existing.A*invSrcAlpha
	if outA > 0 {
		outR := (c.R*srcAlpha + existing.R*existing.A*invSrcAlpha) / outA
		outG := (c.G*srcAlpha + existing.G*existing.A*invSrcAlpha) / outA
		outB := (c.B*srcAlpha + existing.B*existing.A*invSrcAlpha) / outA
		p.pixmap.SetPixel(x, y, RGBA{R: outR, G: outG, B: outB, A: outA})
	}
}

// convertToPathElements converts a *Path's elements to internal/path elements
// for flattening.
func convertToPathElements(p *Path) []path.PathElement {
	var elements []path.PathElement
	for _, elem := range p.Elements() {
		switch e := elem.(type) {
		case MoveTo:
			elements = append(elements, path.MoveTo{Point: path.Point{X: e.Point.X, Y: e.Point.Y}})
		case LineTo:
			elements = append(elements, path.LineTo{Point: path.Point{X: e.Point.X, Y: e.Point.Y}})
		case QuadTo:
			elements = append(elements, path.QuadTo{
				Control: path.Point{X: e.Control.X, Y: e.Control.Y},
				Point:   path.Point{X: e.Point.X, Y: e.Point.Y},
			})
		case CubicTo:
			elements = append(elements, path.CubicTo{
				Control1: path.Point{X: e.Control1.X, Y: e.Control1.Y},
				Control2: path.Point{X: e.Control2.X, Y: e.Control2.Y},
				Point:    path.Point{X: e.Point.X, Y: e.Point.Y},
			})
		case Close:
			elements = append(elements, path.Close{})
		}
	}
	return elements
}

func convertToRasterPoints(points []path.Point) []raster.Point {
	result := make([]raster.Point, len(points))
	for i, p := range points {
		result[i] = raster.Point{X: p.X, Y: p.Y}
	}
	return result
}

// Fill rasterizes p into pixmap using paint's pattern and fill rule. The
// rendering algorithm is selected by the renderer's current RenderMode.
func (r *SoftwareRenderer) Fill(pixmap *Pixmap, p *Path, paint *Paint) error {
	if pixmap == nil || p == nil || paint == nil {
		return ErrInvalidPath
	}
	switch r.mode {
	case RenderModeAnalytic:
		if r.analyticFiller != nil {
			return r.fillAnalytic(pixmap, p, paint)
		}
		return r.fillSupersampled(pixmap, p, paint)
	default:
		return r.fillSupersampled(pixmap, p, paint)
	}
}

func (r *SoftwareRenderer) fillAnalytic(pixmap *Pixmap, p *Path, paint *Paint) error {
	color := r.getColorFromPaint(paint)

	r.analyticFiller.Reset()
	r.analyticFiller.Fill(p, paint.FillRule, func(y int, iter func(yield func(x int, alpha uint8) bool)) {
		r.blendAlphaRunsFromIter(pixmap, y, iter, color)
	})

	return nil
}

func (r *SoftwareRenderer) fillSupersampled(pixmap *Pixmap, p *Path, paint *Paint) error {
	elements := convertToPathElements(p)
	flattened := path.Flatten(elements)
	rasterPoints := convertToRasterPoints(flattened)

	color := r.getColorFromPaint(paint)

	fillRule := raster.FillRuleNonZero
	if paint.FillRule == FillRuleEvenOdd {
		fillRule = raster.FillRuleEvenOdd
	}

	adapter := &pixmapAdapter{pixmap: pixmap}
	r.rasterizer.FillAA(adapter, rasterPoints, fillRule, raster.RGBA{
		R: color.R, G: color.G, B: color.B, A: color.A,
	})

	return nil
}

// getColorFromPaint extracts the solid color from paint, defaulting to Black
// for non-solid patterns (gradients/images are resolved upstream by the
// scene brush conversion before reaching SoftwareRenderer).
func (r *SoftwareRenderer) getColorFromPaint(paint *Paint) RGBA {
	solid, ok := paint.Pattern.(*SolidPattern)
	if !ok {
		return Black
	}
	return solid.Color
}

func (r *SoftwareRenderer) blendAlphaRunsFromIter(pixmap *Pixmap, y int, iter func(yield func(x int, alpha uint8) bool), color RGBA) {
	if y < 0 || y >= pixmap.Height() {
		return
	}

	iter(func(x int, alpha uint8) bool {
		if alpha == 0 {
			return true
		}
		if x < 0 || x >= pixmap.Width() {
			return true
		}

		if alpha == 255 && color.A == 1.0 {
			pixmap.SetPixel(x, y, color)
			return true
		}

		existing := pixmap.GetPixel(x, y)
		srcAlpha := color.A * float64(alpha) / 255.0
		invSrcAlpha := 1.0 - srcAlpha

		outA := srcAlpha + existing.A*invSrcAlpha
		if outA > 0 {
			outR := (color.R*srcAlpha + existing.R*existing.A*invSrcAlpha) / outA
			outG := (color.G*srcAlpha + existing.G*existing.A*invSrcAlpha) / outA
			outB := (color.B*srcAlpha + existing.B*existing.A*invSrcAlpha) / outA
			pixmap.SetPixel(x, y, RGBA{R: outR, G: outG, B: outB, A: outA})
		}
		return true
	})
}

// Stroke expands p into a fill outline per paint's line width/cap/join/miter
// limit, then fills the outline — strokes get the same anti-aliasing as
// fills for free.
func (r *SoftwareRenderer) Stroke(pixmap *Pixmap, p *Path, paint *Paint) error {
	if pixmap == nil || p == nil || paint == nil {
		return ErrInvalidPath
	}
	strokeElements := convertToStrokeElements(p)

	style := stroke.Stroke{
		Width:      paint.LineWidth,
		Cap:        convertLineCapToStroke(paint.LineCap),
		Join:       convertLineJoinToStroke(paint.LineJoin),
		MiterLimit: paint.MiterLimit,
	}
	if style.MiterLimit <= 0 {
		style.MiterLimit = 4.0
	}

	expander := stroke.NewStrokeExpander(style)
	expander.SetTolerance(0.1)

	expanded := expander.Expand(strokeElements)
	strokePath := convertStrokeElementsToPath(expanded)

	return r.Fill(pixmap, strokePath, paint)
}

func convertToStrokeElements(p *Path) []stroke.PathElement {
	var elements []stroke.PathElement
	for _, elem := range p.Elements() {
		switch e := elem.(type) {
		case MoveTo:
			elements = append(elements, stroke.MoveTo{Point: stroke.Point{X: e.Point.X, Y: e.Point.Y}})
		case LineTo:
			elements = append(elements, stroke.LineTo{Point: stroke.Point{X: e.Point.X, Y: e.Point.Y}})
		case QuadTo:
			elements = append(elements, stroke.QuadTo{
				Control: stroke.Point{X: e.Control.X, Y: e.Control.Y},
				Point:   stroke.Point{X: e.Point.X, Y: e.Point.Y},
			})
		case CubicTo:
			elements = append(elements, stroke.CubicTo{
				Control1: stroke.Point{X: e.Control1.X, Y: e.Control1.Y},
				Control2: stroke.Point{X: e.Control2.X, Y: e.Control2.Y},
				Point:    stroke.Point{X: e.Point.X, Y: e.Point.Y},
			})
		case Close:
			elements = append(elements, stroke.Close{})
		}
	}
	return elements
}

func convertStrokeElementsToPath(elements []stroke.PathElement) *Path {
	p := NewPath()
	for _, elem := range elements {
		switch e := elem.(type) {
		case stroke.MoveTo:
			p.MoveTo(e.Point.X, e.Point.Y)
		case stroke.LineTo:
			p.LineTo(e.Point.X, e.Point.Y)
		case stroke.QuadTo:
			p.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case stroke.CubicTo:
			p.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case stroke.Close:
			p.Close()
		}
	}
	return p
}

func convertLineCapToStroke(cap LineCap) stroke.LineCap {
	switch cap {
	case LineCapRound:
		return stroke.LineCapRound
	case LineCapSquare:
		return stroke.LineCapSquare
	default:
		return stroke.LineCapButt
	}
}

func convertLineJoinToStroke(join LineJoin) stroke.LineJoin {
	switch join {
	case LineJoinRound:
		return stroke.LineJoinRound
	case LineJoinBevel:
		return stroke.LineJoinBevel
	default:
		return stroke.LineJoinMiter
	}
}
