package field

import (
	"math"

	"github.com/iburimskiy/ambient-field/internal/config"
)

// Viewport is the logical size of the drawing area and its pixel scale.
type Viewport struct {
	Width, Height float64
	Scale         float64
}

func newViewport(width, height, ratio float64) Viewport {
	return Viewport{
		Width:  math.Max(0, width),
		Height: math.Max(0, height),
		Scale:  ClampScale(ratio),
	}
}

// ClampScale limits the device pixel ratio to [1,2]. A missing (zero) or
// NaN ratio counts as 1.
func ClampScale(ratio float64) float64 {
	if math.IsNaN(ratio) || ratio < config.MinPixelRatio {
		return config.MinPixelRatio
	}
	return math.Min(config.MaxPixelRatio, ratio)
}

// Empty reports whether either dimension is zero.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// BackingSize is the surface resolution in device pixels.
func (v Viewport) BackingSize() (int, int) {
	return int(math.Floor(v.Width * v.Scale)), int(math.Floor(v.Height * v.Scale))
}

// ParticleCount is the population for this viewport: area/17000 with a
// floor of 72, or none at all for an empty viewport.
func (v Viewport) ParticleCount() int {
	if v.Empty() {
		return 0
	}
	n := int(math.Floor(v.Width * v.Height / config.AreaPerParticle))
	return max(config.MinParticles, n)
}

// BlobCount is 3 for any visible viewport.
func (v Viewport) BlobCount() int {
	if v.Empty() {
		return 0
	}
	return config.BlobCount
}

// InQuietZone reports whether (x,y) lies strictly inside the centered
// region kept dim for foreground legibility.
func (v Viewport) InQuietZone(x, y float64) bool {
	return x > v.Width*config.QuietLeft && x < v.Width*config.QuietRight &&
		y > v.Height*config.QuietTop && y < v.Height*config.QuietBottom
}
