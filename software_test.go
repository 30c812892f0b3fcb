package pathfinder

import "testing"

// rectPath builds a closed axis-aligned rectangle path from (x0,y0) to (x1,y1).
func rectPath(x0, y0, x1, y1 float64) *Path {
	p := NewPath()
	p.MoveTo(x0, y0)
	p.LineTo(x1, y0)
	p.LineTo(x1, y1)
	p.LineTo(x0, y1)
	p.Close()
	return p
}

// TestSoftwareRendererExactAreaSeam fills two adjacent opaque rectangles that
// share a vertical edge at an integer pixel boundary and checks that the
// shared column is neither double-covered nor left as a gap: every pixel in
// the combined region ends up fully opaque white, matching the boundary's
// coverage summing to exactly 1.0 on both sides of the seam.
func TestSoftwareRendererExactAreaSeam(t *testing.T) {
	pm := NewPixmap(20, 10)
	r := NewSoftwareRenderer(20, 10)

	paint := NewPaint()
	paint.Pattern = NewSolidPattern(White)

	left := rectPath(0, 0, 10, 10)
	right := rectPath(10, 0, 20, 10)

	if err := r.Fill(pm, left, paint); err != nil {
		t.Fatalf("Fill(left) error: %v", err)
	}
	if err := r.Fill(pm, right, paint); err != nil {
		t.Fatalf("Fill(right) error: %v", err)
	}

	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			c := pm.GetPixel(x, y)
			if c.A != 1.0 {
				t.Fatalf("pixel (%d,%d) alpha = %v, want 1.0 (no seam gap)", x, y, c.A)
			}
			if c.R != 1.0 || c.G != 1.0 || c.B != 1.0 {
				t.Fatalf("pixel (%d,%d) = %+v, want opaque white", x, y, c)
			}
		}
	}
}

// TestSoftwareRendererExactAreaSeamDisjoint checks the column just outside
// the combined rectangles stays untouched, confirming the seam test above
// isn't passing because the whole pixmap got filled by accident.
func TestSoftwareRendererExactAreaSeamDisjoint(t *testing.T) {
	pm := NewPixmap(25, 10)
	r := NewSoftwareRenderer(25, 10)

	paint := NewPaint()
	paint.Pattern = NewSolidPattern(White)

	left := rectPath(0, 0, 10, 10)
	right := rectPath(10, 0, 20, 10)

	_ = r.Fill(pm, left, paint)
	_ = r.Fill(pm, right, paint)

	for y := 0; y < 10; y++ {
		c := pm.GetPixel(22, y)
		if c.A != 0 {
			t.Errorf("pixel (22,%d) alpha = %v, want 0 (outside both rectangles)", y, c.A)
		}
	}
}

// TestSoftwareRendererDegenerateFillNoOp exercises the zero-area path that
// Path.BoundingBox also guards against in the tile renderer: a path whose
// points all collapse onto a single line contributes no coverage.
func TestSoftwareRendererDegenerateFillNoOp(t *testing.T) {
	pm := NewPixmap(10, 10)
	r := NewSoftwareRenderer(10, 10)

	paint := NewPaint()
	paint.Pattern = NewSolidPattern(White)

	p := NewPath()
	p.MoveTo(5, 5)
	p.LineTo(5, 5)
	p.Close()

	if err := r.Fill(pm, p, paint); err != nil {
		t.Fatalf("Fill(degenerate) error: %v", err)
	}

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c := pm.GetPixel(x, y); c.A != 0 {
				t.Errorf("pixel (%d,%d) = %+v, want untouched transparent", x, y, c)
			}
		}
	}
}
