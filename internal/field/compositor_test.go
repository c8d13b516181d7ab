package field

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParticleStyle_QuietZoneCenter(t *testing.T) {
	for _, size := range [][2]float64{{1000, 800}, {320, 240}, {2560, 1440}} {
		vp := newViewport(size[0], size[1], 1)
		alpha, r := particleStyle(vp, vp.Width/2, vp.Height/2, 2.5)
		assert.Equal(t, 0.38, alpha)
		assert.InDelta(t, 2.0, r, 1e-12)
	}
}

func TestParticleStyle_Outside(t *testing.T) {
	vp := newViewport(1000, 800, 1)
	alpha, r := particleStyle(vp, 20, 20, 2.5)
	assert.Equal(t, 0.92, alpha)
	assert.Equal(t, 2.5, r)
}

func TestLinkAlpha(t *testing.T) {
	vp := newViewport(1000, 800, 1)

	alpha, ok := linkAlpha(vp, point{x: 10, y: 10}, point{x: 20, y: 10})
	require.True(t, ok)
	assert.InDelta(t, (1-100.0/12500)*0.13, alpha, 1e-12)

	alpha, ok = linkAlpha(vp, point{x: 495, y: 400}, point{x: 505, y: 400})
	require.True(t, ok)
	assert.InDelta(t, (1-100.0/12500)*0.13*0.2, alpha, 1e-12)

	// d² == threshold is not linked.
	_, ok = linkAlpha(vp, point{x: 0, y: 0}, point{x: 100, y: 50})
	assert.False(t, ok)
}

func TestDrawLinks_AllPairs(t *testing.T) {
	vp := newViewport(1000, 800, 1)
	s := &recordingSurface{}
	pts := []point{{x: 10, y: 10}, {x: 20, y: 10}, {x: 30, y: 10}, {x: 900, y: 700}}

	n := drawLinks(s, vp, pts)
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, s.count("line"))
	for _, o := range s.ops {
		assert.Equal(t, 0.7, o.args[4])
		assert.Equal(t, linkColor.R, o.color.R)
	}
}

func TestBandCenter(t *testing.T) {
	vp := newViewport(1000, 800, 1)
	assert.InDelta(t, 400, bandCenter(vp, 0), 1e-9)

	peak := (math.Pi / 2) / 0.6 * 1000
	assert.InDelta(t, 800, bandCenter(vp, peak), 1e-6)

	trough := (3 * math.Pi / 2) / 0.6 * 1000
	assert.InDelta(t, 0, bandCenter(vp, trough), 1e-6)
}

func TestDrawBand_Geometry(t *testing.T) {
	vp := newViewport(1000, 800, 1)
	s := &recordingSurface{}
	drawBand(s, vp, 0)

	require.Len(t, s.ops, 1)
	o := s.ops[0]
	assert.Equal(t, "linear", o.kind)
	assert.Equal(t, []float64{0, 320, 1000, 160, 0, 320, 0, 480}, o.args)
	assert.InDelta(t, 0.05, o.grad.At(0.5).A, 1e-12)
	assert.InDelta(t, 0, o.grad.At(0).A, 1e-12)
	assert.InDelta(t, 0, o.grad.At(1).A, 1e-12)
}

func TestPaint_LayerOrder(t *testing.T) {
	s := &recordingSurface{}
	host := newFakeHost(1000, 800, 1, s)
	r := Mount(host, "ambient-field", WithSeed(7))
	require.NotNil(t, r)

	host.step(16)
	require.NotEmpty(t, s.ops)

	// background, 3 glows, links, particles, band
	assert.Equal(t, "linear", s.ops[0].kind)
	assert.Equal(t, []float64{0, 0, 1000, 800, 0, 0, 1000, 800}, s.ops[0].args)
	for i := 1; i <= 3; i++ {
		assert.Equal(t, "radial", s.ops[i].kind)
	}
	assert.Equal(t, "linear", s.ops[len(s.ops)-1].kind)

	rest := s.ops[4 : len(s.ops)-1]
	seenCircle := false
	for _, o := range rest {
		switch o.kind {
		case "circle":
			seenCircle = true
		case "line":
			if seenCircle {
				t.Fatal("line drawn after particles")
			}
		default:
			t.Fatalf("unexpected %s op between glows and band", o.kind)
		}
	}
	assert.Equal(t, 72, s.count("circle"))
	assert.Equal(t, r.Stats().LastLinks, s.count("line"))
}

func TestPaint_GlowMatchesBlob(t *testing.T) {
	s := &recordingSurface{}
	host := newFakeHost(1000, 800, 1, s)
	r := Mount(host, "ambient-field", WithSeed(11))
	require.NotNil(t, r)

	host.step(16)
	blobs := r.Blobs()
	for i, b := range blobs {
		o := s.ops[1+i]
		assert.Equal(t, []float64{b.X, b.Y, b.Radius}, o.args)
		assert.InDelta(t, b.Alpha, o.grad.At(0).A, 1e-12)
		assert.InDelta(t, 0, o.grad.At(1).A, 1e-12)
		assert.Equal(t, b.Color.R, o.grad.At(0).R)
	}
}

func TestPaint_SyntheticCenterParticle(t *testing.T) {
	s := &recordingSurface{}
	host := newFakeHost(1000, 800, 1, s)
	r := Mount(host, "ambient-field", WithSeed(5))
	require.NotNil(t, r)

	r.particles = []Particle{{X: 500, Y: 400, R: 3}}
	host.move(10, 10) // far outside the influence radius
	host.step(16)

	require.Equal(t, 1, s.count("circle"))
	for _, o := range s.ops {
		if o.kind != "circle" {
			continue
		}
		assert.Equal(t, 500.0, o.args[0])
		assert.Equal(t, 400.0, o.args[1])
		assert.InDelta(t, 2.4, o.args[2], 1e-12)
		assert.Equal(t, 0.38, o.color.A)
	}
}
