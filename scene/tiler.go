package scene

import (
	"github.com/gogpu/pathfinder"
	intpath "github.com/gogpu/pathfinder/internal/path"
	"github.com/gogpu/pathfinder/internal/stroke"
	"github.com/gogpu/pathfinder/internal/tile"
)

// buildPathDefs walks a flattened scene Encoding in draw order and produces
// one tile.PathDef per fill or stroke operation: a flattened, transformed
// polyline soup plus fill rule and resolved paint color, ready for the
// tiling prepass's scene encoding stage.
//
// Layers, clips, images and brush references beyond solid color are not
// meaningful to the CPU tiling prepass and are skipped; non-solid brushes
// (gradients, images) resolve to opaque black.
func buildPathDefs(enc *Encoding) []tile.PathDef {
	if enc == nil || enc.IsEmpty() {
		return nil
	}

	var defs []tile.PathDef
	var currentPath *Path
	currentTransform := IdentityAffine()

	dec := NewDecoder(enc)
	for dec.Next() {
		switch dec.Tag() {
		case TagTransform:
			currentTransform = dec.Transform()

		case TagBeginPath:
			currentPath = NewPath()

		case TagMoveTo:
			x, y := dec.MoveTo()
			if currentPath != nil {
				currentPath.MoveTo(x, y)
			}

		case TagLineTo:
			x, y := dec.LineTo()
			if currentPath != nil {
				currentPath.LineTo(x, y)
			}

		case TagQuadTo:
			cx, cy, x, y := dec.QuadTo()
			if currentPath != nil {
				currentPath.QuadTo(cx, cy, x, y)
			}

		case TagCubicTo:
			c1x, c1y, c2x, c2y, x, y := dec.CubicTo()
			if currentPath != nil {
				currentPath.CubicTo(c1x, c1y, c2x, c2y, x, y)
			}

		case TagClosePath:
			if currentPath != nil {
				currentPath.Close()
			}

		case TagEndPath:
			// Nothing to do; Fill/Stroke consume currentPath directly.

		case TagFill:
			brush, style := dec.Fill()
			if currentPath != nil && !currentPath.IsEmpty() {
				lines := flattenFillPath(currentPath, currentTransform)
				if len(lines) > 0 {
					defs = append(defs, tile.PathDef{
						Lines:    lines,
						FillRule: convertFillRule(style),
						Color:    resolveColor(brush),
					})
				}
			}

		case TagStroke:
			brush, style := dec.Stroke()
			if currentPath != nil && !currentPath.IsEmpty() {
				lines := flattenStrokePath(currentPath, currentTransform, style)
				if len(lines) > 0 {
					defs = append(defs, tile.PathDef{
						Lines:    lines,
						FillRule: tile.FillRuleNonZero,
						Color:    resolveColor(brush),
					})
				}
			}

		case TagPushLayer:
			_, _, _ = dec.PushLayer()

		case TagPopLayer, TagBeginClip, TagEndClip:
			// Layer/clip composition happens at the compositing stage, not
			// in the tiling prepass.

		case TagImage:
			_, _ = dec.Image()

		case TagBrush:
			_, _, _, _ = dec.Brush()
		}
	}

	return defs
}

// flattenFillPath transforms and flattens a path's curves into a line soup
// suitable for the tiling prepass.
func flattenFillPath(p *Path, xf Affine) []tile.LineSoup {
	elems := scenePathToElements(p, xf)
	edges := intpath.CollectEdges(elems)
	return edgesToLineSoup(edges)
}

// flattenStrokePath expands a stroked path into its fill outline (via the
// kurbo-style stroke expander), then flattens the outline the same way a
// filled path would be.
func flattenStrokePath(p *Path, xf Affine, style *StrokeStyle) []tile.LineSoup {
	if style == nil {
		style = DefaultStrokeStyle()
	}

	elems := scenePathToElements(p, xf)
	strokeElems := toStrokeElements(elems)

	expander := stroke.NewStrokeExpander(convertStrokeStyle(style))
	outline := expander.Expand(strokeElems)

	edges := intpath.CollectEdges(toPathElements(outline))
	return edgesToLineSoup(edges)
}

// scenePathToElements converts a scene.Path's verbs/points into transformed
// internal/path elements, applying xf to every coordinate.
func scenePathToElements(p *Path, xf Affine) []intpath.PathElement {
	pts := p.Points()
	idx := 0
	elems := make([]intpath.PathElement, 0, len(p.Verbs()))

	pt := func(i int) intpath.Point {
		x, y := xf.TransformPoint(pts[i], pts[i+1])
		return intpath.Point{X: float64(x), Y: float64(y)}
	}

	for _, verb := range p.Verbs() {
		switch verb {
		case VerbMoveTo:
			elems = append(elems, intpath.MoveTo{Point: pt(idx)})
			idx += 2
		case VerbLineTo:
			elems = append(elems, intpath.LineTo{Point: pt(idx)})
			idx += 2
		case VerbQuadTo:
			ctrl := pt(idx)
			end := pt(idx + 2)
			elems = append(elems, intpath.QuadTo{Control: ctrl, Point: end})
			idx += 4
		case VerbCubicTo:
			c1 := pt(idx)
			c2 := pt(idx + 2)
			end := pt(idx + 4)
			elems = append(elems, intpath.CubicTo{Control1: c1, Control2: c2, Point: end})
			idx += 6
		case VerbClose:
			elems = append(elems, intpath.Close{})
		}
	}

	return elems
}

// toStrokeElements re-types internal/path elements as internal/stroke
// elements. The two packages define identical element shapes independently
// to avoid an import cycle between path flattening and stroke expansion.
func toStrokeElements(elems []intpath.PathElement) []stroke.PathElement {
	out := make([]stroke.PathElement, len(elems))
	for i, e := range elems {
		switch v := e.(type) {
		case intpath.MoveTo:
			out[i] = stroke.MoveTo{Point: stroke.Point{X: v.Point.X, Y: v.Point.Y}}
		case intpath.LineTo:
			out[i] = stroke.LineTo{Point: stroke.Point{X: v.Point.X, Y: v.Point.Y}}
		case intpath.QuadTo:
			out[i] = stroke.QuadTo{
				Control: stroke.Point{X: v.Control.X, Y: v.Control.Y},
				Point:   stroke.Point{X: v.Point.X, Y: v.Point.Y},
			}
		case intpath.CubicTo:
			out[i] = stroke.CubicTo{
				Control1: stroke.Point{X: v.Control1.X, Y: v.Control1.Y},
				Control2: stroke.Point{X: v.Control2.X, Y: v.Control2.Y},
				Point:    stroke.Point{X: v.Point.X, Y: v.Point.Y},
			}
		case intpath.Close:
			out[i] = stroke.Close{}
		}
	}
	return out
}

// toPathElements re-types internal/stroke elements (the expander's fill
// outline) back into internal/path elements for edge collection.
func toPathElements(elems []stroke.PathElement) []intpath.PathElement {
	out := make([]intpath.PathElement, len(elems))
	for i, e := range elems {
		switch v := e.(type) {
		case stroke.MoveTo:
			out[i] = intpath.MoveTo{Point: intpath.Point{X: v.Point.X, Y: v.Point.Y}}
		case stroke.LineTo:
			out[i] = intpath.LineTo{Point: intpath.Point{X: v.Point.X, Y: v.Point.Y}}
		case stroke.QuadTo:
			out[i] = intpath.QuadTo{
				Control: intpath.Point{X: v.Control.X, Y: v.Control.Y},
				Point:   intpath.Point{X: v.Point.X, Y: v.Point.Y},
			}
		case stroke.CubicTo:
			out[i] = intpath.CubicTo{
				Control1: intpath.Point{X: v.Control1.X, Y: v.Control1.Y},
				Control2: intpath.Point{X: v.Control2.X, Y: v.Control2.Y},
				Point:    intpath.Point{X: v.Point.X, Y: v.Point.Y},
			}
		case stroke.Close:
			out[i] = intpath.Close{}
		}
	}
	return out
}

func convertStrokeStyle(style *StrokeStyle) stroke.Stroke {
	s := stroke.DefaultStroke()
	s.Width = float64(style.Width)
	s.MiterLimit = float64(style.MiterLimit)

	switch style.Cap {
	case LineCapButt:
		s.Cap = stroke.LineCapButt
	case LineCapRound:
		s.Cap = stroke.LineCapRound
	case LineCapSquare:
		s.Cap = stroke.LineCapSquare
	}

	switch style.Join {
	case LineJoinMiter:
		s.Join = stroke.LineJoinMiter
	case LineJoinRound:
		s.Join = stroke.LineJoinRound
	case LineJoinBevel:
		s.Join = stroke.LineJoinBevel
	}

	return s
}

func convertFillRule(style FillStyle) tile.FillRule {
	if style == FillEvenOdd {
		return tile.FillRuleEvenOdd
	}
	return tile.FillRuleNonZero
}

func edgesToLineSoup(edges []intpath.Edge) []tile.LineSoup {
	if len(edges) == 0 {
		return nil
	}
	lines := make([]tile.LineSoup, len(edges))
	for i, e := range edges {
		lines[i] = tile.LineSoup{
			P0: [2]float32{float32(e.P0.X), float32(e.P0.Y)},
			P1: [2]float32{float32(e.P1.X), float32(e.P1.Y)},
		}
	}
	return lines
}

// resolveColor extracts a straight-alpha RGBA byte color from a brush.
// Gradients and images fall back to opaque black: the tiling prepass only
// carries a single solid color per draw, matching the GPU paint stage's
// "Color" draw tag.
func resolveColor(brush Brush) [4]uint8 {
	if brush.Kind != BrushSolid {
		return [4]uint8{0, 0, 0, 255}
	}
	return rgbaToBytes(brush.Color)
}

func rgbaToBytes(c pathfinder.RGBA) [4]uint8 {
	return [4]uint8{
		clampByte(c.R),
		clampByte(c.G),
		clampByte(c.B),
		clampByte(c.A),
	}
}

func clampByte(v float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(v*255.0 + 0.5)
}
