// Package palette holds the color and gradient primitives shared by the
// renderer and its surfaces.
package palette

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBA is an 8-bit color with a straight (non-premultiplied) alpha in [0,1].
type RGBA struct {
	R, G, B uint8
	A       float64
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// MustHex parses "#rrggbb" and panics on malformed input. Only for literals.
func MustHex(s string) RGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("palette: " + err.Error())
	}
	r, g, b := c.RGB255()
	return RGBA{R: r, G: g, B: b, A: 1}
}

// WithAlpha returns c with its alpha replaced.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = a
	return c
}

// NRGBA converts to the image/color straight-alpha representation.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(Clamp01(c.A)*255 + 0.5)}
}

func (c RGBA) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Blend interpolates a→b by f in RGB space, alpha linearly.
func Blend(a, b RGBA, f float64) RGBA {
	f = Clamp01(f)
	c := a.colorful().BlendRgb(b.colorful(), f)
	r, g, bl := c.Clamped().RGB255()
	return RGBA{R: r, G: g, B: bl, A: a.A + (b.A-a.A)*f}
}

// Stop is one color stop of a gradient.
type Stop struct {
	Offset float64
	Color  RGBA
}

// Gradient is an ordered list of stops with ascending offsets in [0,1].
type Gradient []Stop

// At evaluates the gradient at t. Values outside the stop range take the
// nearest end color.
func (g Gradient) At(t float64) RGBA {
	if len(g) == 0 {
		return RGBA{}
	}
	t = Clamp01(t)
	if t <= g[0].Offset {
		return g[0].Color
	}
	for i := 1; i < len(g); i++ {
		if t > g[i].Offset {
			continue
		}
		a, b := g[i-1], g[i]
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return Blend(a.Color, b.Color, (t-a.Offset)/span)
	}
	return g[len(g)-1].Color
}

// Fade is a two-stop gradient from c at alpha a to fully transparent.
func Fade(c RGBA, a float64) Gradient {
	return Gradient{
		{Offset: 0, Color: c.WithAlpha(a)},
		{Offset: 1, Color: c.WithAlpha(0)},
	}
}

// Clamp01 clamps v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
