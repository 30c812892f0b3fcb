package pathfinder

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/gogpu/pathfinder/internal/cache"
)

// RampResolution is the number of texels baked into a gradient ramp. The
// GPU tile stage samples this 1-D ramp instead of re-evaluating color
// stops per pixel; a metadata entry carries the ramp's atlas row alongside
// the gradient geometry.
const RampResolution = 256

// rampCache memoizes baked ramps by a hash of their color stops so that
// redrawing the same gradient brush across frames doesn't re-run the
// stop search and linear-sRGB interpolation every time.
var rampCache = cache.New[uint64, [RampResolution]RGBA](512)

// hashStops computes a stable hash of a sorted color-stop list for ramp
// cache keys. Stops are assumed already sorted (callers pass sortStops'
// output).
func hashStops(stops []ColorStop) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = h.Write(buf[:])
	}
	for _, s := range stops {
		writeFloat(s.Offset)
		writeFloat(s.Color.R)
		writeFloat(s.Color.G)
		writeFloat(s.Color.B)
		writeFloat(s.Color.A)
	}
	return h.Sum64()
}

// BakeRamp evaluates stops at RampResolution evenly spaced positions in
// [0, 1] and caches the result. Gradient brushes call this once per
// distinct stop set instead of interpolating per sample.
func BakeRamp(stops []ColorStop) [RampResolution]RGBA {
	sorted := sortStops(stops)
	key := hashStops(sorted)

	return rampCache.GetOrCreate(key, func() [RampResolution]RGBA {
		var ramp [RampResolution]RGBA
		for i := 0; i < RampResolution; i++ {
			t := float64(i) / float64(RampResolution-1)
			ramp[i] = colorAtOffset(sorted, t, ExtendPad)
		}
		return ramp
	})
}

// SampleRamp looks up a baked ramp at normalized position t, applying the
// given extend mode to t before indexing the fixed [0, 1] ramp.
func SampleRamp(ramp [RampResolution]RGBA, t float64, mode ExtendMode) RGBA {
	t = applyExtendMode(t, mode)
	idx := int(t*float64(RampResolution-1) + 0.5)
	if idx < 0 {
		idx = 0
	}
	if idx >= RampResolution {
		idx = RampResolution - 1
	}
	return ramp[idx]
}
