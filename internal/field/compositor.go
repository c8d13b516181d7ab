package field

import (
	"math"

	"github.com/iburimskiy/ambient-field/internal/config"
	"github.com/iburimskiy/ambient-field/internal/palette"
)

var (
	backgroundGradient = palette.Gradient{
		{Offset: 0, Color: palette.MustHex("#07142c")},
		{Offset: 0.55, Color: palette.MustHex("#0e2048")},
		{Offset: 1, Color: palette.MustHex("#1a1a4b")},
	}

	linkColor     = palette.RGB(176, 230, 255)
	particleColor = palette.RGB(224, 248, 255)
	bandColor     = palette.RGB(120, 199, 255)

	bandGradient = palette.Gradient{
		{Offset: 0, Color: bandColor.WithAlpha(0)},
		{Offset: 0.5, Color: bandColor.WithAlpha(config.BandAlpha)},
		{Offset: 1, Color: bandColor.WithAlpha(0)},
	}
)

// point is a particle's post-step position and radius.
type point struct {
	x, y, r float64
}

// paint composites one frame. Later layers occlude earlier ones.
func (r *Renderer) paint(now float64) {
	s, vp := r.surface, r.vp

	s.FillLinear(Rect{W: vp.Width, H: vp.Height}, 0, 0, vp.Width, vp.Height, backgroundGradient)

	for i := range r.blobs {
		b := &r.blobs[i]
		b.drift(vp)
		s.FillRadial(b.X, b.Y, b.Radius, b.glow())
	}

	r.projected = r.projected[:0]
	for i := range r.particles {
		p := &r.particles[i]
		p.step(vp, r.pointer)
		r.projected = append(r.projected, point{x: p.X, y: p.Y, r: p.R})
	}

	r.stats.LastLinks = drawLinks(s, vp, r.projected)

	for _, p := range r.projected {
		alpha, radius := particleStyle(vp, p.x, p.y, p.r)
		s.FillCircle(p.x, p.y, radius, particleColor.WithAlpha(alpha))
	}

	drawBand(s, vp, now)
}

// drawLinks strokes a line between every pair closer than the link
// threshold and returns how many were drawn.
func drawLinks(s Surface, vp Viewport, pts []point) int {
	links := 0
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			a, b := pts[i], pts[j]
			alpha, ok := linkAlpha(vp, a, b)
			if !ok {
				continue
			}
			s.StrokeLine(a.x, a.y, b.x, b.y, config.LinkWidth, linkColor.WithAlpha(alpha))
			links++
		}
	}
	return links
}

// linkAlpha fades linearly with squared distance and is cut to a fifth when
// the midpoint lies in the quiet zone.
func linkAlpha(vp Viewport, a, b point) (float64, bool) {
	dx := a.x - b.x
	dy := a.y - b.y
	d2 := dx*dx + dy*dy
	if d2 >= config.ParticleLinkD2 {
		return 0, false
	}
	alpha := (1 - d2/config.ParticleLinkD2) * config.LinkAlpha
	if vp.InQuietZone((a.x+b.x)*0.5, (a.y+b.y)*0.5) {
		alpha *= config.QuietLinkFactor
	}
	return alpha, true
}

func particleStyle(vp Viewport, x, y, r float64) (alpha, radius float64) {
	if vp.InQuietZone(x, y) {
		return config.QuietAlpha, r * config.QuietRadiusScale
	}
	return config.ParticleAlpha, r
}

// bandCenter oscillates over the full height at a fixed angular rate.
func bandCenter(vp Viewport, now float64) float64 {
	t := now * 0.001
	return (math.Sin(t*config.BandRate) + 1) * 0.5 * vp.Height
}

func drawBand(s Surface, vp Viewport, now float64) {
	y := bandCenter(vp, now)
	top, bottom := y-config.BandHalfHeight, y+config.BandHalfHeight
	s.FillLinear(Rect{X: 0, Y: top, W: vp.Width, H: bottom - top}, 0, top, 0, bottom, bandGradient)
}
