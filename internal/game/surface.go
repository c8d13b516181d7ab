package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/ambient-field/internal/field"
	"github.com/iburimskiy/ambient-field/internal/palette"
)

var whitePixel *ebiten.Image

// white returns a 1x1 white sub-image at (1,1) used as the triangle source.
func white() *ebiten.Image {
	if whitePixel == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whitePixel = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whitePixel
}

// Surface is the offscreen GPU image the renderer paints into. Game.Draw
// stretches it over the window.
type Surface struct {
	img           *ebiten.Image
	width, height int
	scale         float64
}

var _ field.Surface = (*Surface)(nil)

func NewSurface() *Surface {
	return &Surface{scale: 1}
}

func (s *Surface) Resize(width, height int) {
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	s.width, s.height = max(0, width), max(0, height)
	if s.width > 0 && s.height > 0 {
		s.img = ebiten.NewImage(s.width, s.height)
	}
}

func (s *Surface) Size() (int, int) { return s.width, s.height }

func (s *Surface) SetScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	s.scale = scale
}

// Image is nil while the surface has no area.
func (s *Surface) Image() *ebiten.Image { return s.img }

func (s *Surface) triangles(vs []ebiten.Vertex, is []uint16) {
	if s.img == nil {
		return
	}
	op := &ebiten.DrawTrianglesOptions{ColorScaleMode: ebiten.ColorScaleModeStraightAlpha}
	s.img.DrawTriangles(vs, is, white(), op)
}

func (s *Surface) FillLinear(r field.Rect, x0, y0, x1, y1 float64, g palette.Gradient) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	s.triangles(linearMesh(r, x0, y0, x1, y1, g, s.scale))
}

func (s *Surface) FillRadial(cx, cy, radius float64, g palette.Gradient) {
	if radius <= 0 {
		return
	}
	s.triangles(radialMesh(cx, cy, radius, g, s.scale))
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c palette.RGBA) {
	if s.img == nil {
		return
	}
	sc := s.scale
	vector.StrokeLine(s.img, float32(x0*sc), float32(y0*sc), float32(x1*sc), float32(y1*sc), float32(width*sc), c.NRGBA(), true)
}

func (s *Surface) FillCircle(cx, cy, r float64, c palette.RGBA) {
	if s.img == nil {
		return
	}
	sc := s.scale
	vector.DrawFilledCircle(s.img, float32(cx*sc), float32(cy*sc), float32(r*sc), c.NRGBA(), true)
}
