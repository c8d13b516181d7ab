// Package raster is a software field.Surface backed by an *image.RGBA.
// Shapes go through golang.org/x/image/vector; gradients are evaluated
// per device pixel.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"github.com/iburimskiy/ambient-field/internal/field"
	"github.com/iburimskiy/ambient-field/internal/palette"
)

// Surface implements field.Surface.
type Surface struct {
	img   *image.RGBA
	z     *vector.Rasterizer
	scale float64
}

var _ field.Surface = (*Surface)(nil)

// New returns an empty surface; call Resize before drawing.
func New() *Surface {
	return &Surface{
		img:   image.NewRGBA(image.Rectangle{}),
		z:     vector.NewRasterizer(0, 0),
		scale: 1,
	}
}

func (s *Surface) Resize(width, height int) {
	width, height = max(0, width), max(0, height)
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	s.z.Reset(width, height)
}

func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) SetScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	s.scale = scale
}

// Image is the backing image. It is replaced on Resize.
func (s *Surface) Image() *image.RGBA { return s.img }

// WritePNG encodes the current frame.
func (s *Surface) WritePNG(w io.Writer) error {
	if err := png.Encode(w, s.img); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	return nil
}

// device converts a logical rectangle to the clipped device rectangle.
func (s *Surface) device(r field.Rect) image.Rectangle {
	dr := image.Rect(
		int(math.Floor(r.X*s.scale)),
		int(math.Floor(r.Y*s.scale)),
		int(math.Ceil((r.X+r.W)*s.scale)),
		int(math.Ceil((r.Y+r.H)*s.scale)),
	)
	return dr.Intersect(s.img.Bounds())
}

func (s *Surface) FillLinear(r field.Rect, x0, y0, x1, y1 float64, g palette.Gradient) {
	dr := s.device(r)
	if dr.Empty() {
		return
	}
	dx, dy := x1-x0, y1-y0
	src := &gradientSource{scale: s.scale, eval: func(x, y float64) palette.RGBA {
		l2 := dx*dx + dy*dy
		if l2 == 0 {
			return g.At(0)
		}
		return g.At(((x-x0)*dx + (y-y0)*dy) / l2)
	}}
	draw.Draw(s.img, dr, src, dr.Min, draw.Over)
}

func (s *Surface) FillRadial(cx, cy, radius float64, g palette.Gradient) {
	if radius <= 0 {
		return
	}
	dr := s.device(field.Rect{X: cx - radius, Y: cy - radius, W: 2 * radius, H: 2 * radius})
	if dr.Empty() {
		return
	}
	src := &gradientSource{scale: s.scale, eval: func(x, y float64) palette.RGBA {
		return g.At(math.Hypot(x-cx, y-cy) / radius)
	}}
	draw.Draw(s.img, dr, src, dr.Min, draw.Over)
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c palette.RGBA) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 || width <= 0 {
		return
	}
	// Normal offset of half the stroke width.
	nx, ny := -dy/l*width/2, dx/l*width/2
	s.fillPolygon(c,
		[2]float64{x0 + nx, y0 + ny},
		[2]float64{x1 + nx, y1 + ny},
		[2]float64{x1 - nx, y1 - ny},
		[2]float64{x0 - nx, y0 - ny},
	)
}

func (s *Surface) FillCircle(cx, cy, r float64, c palette.RGBA) {
	if r <= 0 {
		return
	}
	n := max(16, int(2*math.Pi*r*s.scale/2))
	pts := make([][2]float64, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = [2]float64{cx + r*math.Cos(a), cy + r*math.Sin(a)}
	}
	s.fillPolygon(c, pts...)
}

// fillPolygon rasterizes only the polygon's device bounding box. The mask
// keeps the box's full right and bottom extent: the rasterizer clamps x past
// its width into the next row.
func (s *Surface) fillPolygon(c palette.RGBA, pts ...[2]float64) {
	b := s.img.Bounds()
	if b.Empty() || len(pts) < 3 || c.A <= 0 {
		return
	}
	box := polygonBounds(pts, s.scale)
	dr := box.Intersect(b)
	if dr.Empty() {
		return
	}
	ox, oy := float64(dr.Min.X), float64(dr.Min.Y)
	s.z.Reset(box.Max.X-dr.Min.X, box.Max.Y-dr.Min.Y)
	s.z.MoveTo(float32(pts[0][0]*s.scale-ox), float32(pts[0][1]*s.scale-oy))
	for _, p := range pts[1:] {
		s.z.LineTo(float32(p[0]*s.scale-ox), float32(p[1]*s.scale-oy))
	}
	s.z.ClosePath()
	s.z.Draw(s.img, dr, image.NewUniform(c.NRGBA()), image.Point{})
}

// polygonBounds is the smallest device-pixel rectangle covering pts.
func polygonBounds(pts [][2]float64, scale float64) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	return image.Rect(
		int(math.Floor(minX*scale)),
		int(math.Floor(minY*scale)),
		int(math.Ceil(maxX*scale)),
		int(math.Ceil(maxY*scale)),
	)
}

// gradientSource is an unbounded image whose color at a device pixel is
// eval at the pixel center in logical coordinates.
type gradientSource struct {
	scale float64
	eval  func(x, y float64) palette.RGBA
}

func (g *gradientSource) ColorModel() color.Model { return color.NRGBAModel }

func (g *gradientSource) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (g *gradientSource) At(x, y int) color.Color {
	return g.eval((float64(x)+0.5)/g.scale, (float64(y)+0.5)/g.scale).NRGBA()
}
