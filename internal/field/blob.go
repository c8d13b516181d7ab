package field

import (
	"math/rand/v2"

	"github.com/iburimskiy/ambient-field/internal/config"
	"github.com/iburimskiy/ambient-field/internal/palette"
)

var (
	blobBlue   = palette.RGB(46, 153, 255)
	blobViolet = palette.RGB(115, 87, 255)
)

// Blob is a large soft glow drifting behind the particles.
type Blob struct {
	X, Y   float64
	Radius float64
	VX, VY float64
	Color  palette.RGBA
	Alpha  float64
}

// blobColor alternates blue and violet by creation index.
func blobColor(i int) palette.RGBA {
	if i%2 == 0 {
		return blobBlue
	}
	return blobViolet
}

func spawnBlobs(rng *rand.Rand, vp Viewport) []Blob {
	n := vp.BlobCount()
	out := make([]Blob, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Blob{
			X:      uniform(rng, vp.Width*0.1, vp.Width*0.9),
			Y:      uniform(rng, vp.Height*0.1, vp.Height*0.9),
			Radius: uniform(rng, config.BlobMinRadius, config.BlobMaxRadius),
			VX:     uniform(rng, -config.BlobMaxSpeed, config.BlobMaxSpeed),
			VY:     uniform(rng, -config.BlobMaxSpeed, config.BlobMaxSpeed),
			Color:  blobColor(i),
			Alpha:  uniform(rng, config.BlobMinAlpha, config.BlobMaxAlpha),
		})
	}
	return out
}

// drift moves b by its constant velocity and wraps it around the viewport
// with a fixed margin on every side.
func (b *Blob) drift(vp Viewport) {
	b.X = wrap(b.X+b.VX, vp.Width, config.BlobMargin)
	b.Y = wrap(b.Y+b.VY, vp.Height, config.BlobMargin)
}

func wrap(v, dim, margin float64) float64 {
	if v < -margin {
		return dim + margin
	}
	if v > dim+margin {
		return -margin
	}
	return v
}

// glow is the radial fill drawn for b.
func (b Blob) glow() palette.Gradient {
	return palette.Fade(b.Color, b.Alpha)
}
