package game

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/ambient-field/internal/field"
	"github.com/iburimskiy/ambient-field/internal/palette"
)

const radialSides = 48

// vertex is a solid-colored vertex that samples the center of the white
// source pixel.
func vertex(x, y float64, c palette.RGBA) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1.5,
		SrcY:   1.5,
		ColorR: float32(c.R) / 255,
		ColorG: float32(c.G) / 255,
		ColorB: float32(c.B) / 255,
		ColorA: float32(palette.Clamp01(c.A)),
	}
}

// linearMesh cuts r into slabs bounded by the isolines of g's stop offsets
// along (x0,y0)→(x1,y1). Color is linear in t inside each slab, so vertex
// interpolation lands on every stop exactly.
func linearMesh(r field.Rect, x0, y0, x1, y1 float64, g palette.Gradient, scale float64) ([]ebiten.Vertex, []uint16) {
	dx, dy := x1-x0, y1-y0
	l2 := dx*dx + dy*dy
	param := func(p [2]float64) float64 {
		if l2 == 0 {
			return 0
		}
		return ((p[0]-x0)*dx + (p[1]-y0)*dy) / l2
	}

	rect := [][2]float64{{r.X, r.Y}, {r.X + r.W, r.Y}, {r.X + r.W, r.Y + r.H}, {r.X, r.Y + r.H}}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range rect {
		lo, hi = math.Min(lo, param(p)), math.Max(hi, param(p))
	}

	// Past either end the color is constant, so 0 and 1 are cuts too.
	cuts := []float64{lo}
	offsets := []float64{0}
	for _, st := range g {
		offsets = append(offsets, st.Offset)
	}
	for _, off := range append(offsets, 1) {
		if off > cuts[len(cuts)-1] && off < hi {
			cuts = append(cuts, off)
		}
	}
	cuts = append(cuts, hi)

	var vs []ebiten.Vertex
	var is []uint16
	last := len(cuts) - 2
	for i := 0; i <= last; i++ {
		poly := rect
		if i > 0 {
			poly = clipParam(poly, param, cuts[i], 1)
		}
		if i < last {
			poly = clipParam(poly, param, cuts[i+1], -1)
		}
		if len(poly) < 3 {
			continue
		}
		base := uint16(len(vs))
		for _, p := range poly {
			vs = append(vs, vertex(p[0]*scale, p[1]*scale, g.At(param(p))))
		}
		for k := 1; k < len(poly)-1; k++ {
			is = append(is, base, base+uint16(k), base+uint16(k+1))
		}
	}
	return vs, is
}

// clipParam keeps the part of the convex polygon pts where
// sign*(t(p)-cut) >= 0.
func clipParam(pts [][2]float64, t func([2]float64) float64, cut, sign float64) [][2]float64 {
	var out [][2]float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		dp, dq := sign*(t(p)-cut), sign*(t(q)-cut)
		if dp >= 0 {
			out = append(out, p)
		}
		if (dp >= 0) != (dq >= 0) {
			f := dp / (dp - dq)
			out = append(out, [2]float64{p[0] + f*(q[0]-p[0]), p[1] + f*(q[1]-p[1])})
		}
	}
	return out
}

// radialMesh builds concentric rings at each stop offset so color is
// interpolated linearly with distance from the center.
func radialMesh(cx, cy, radius float64, g palette.Gradient, scale float64) ([]ebiten.Vertex, []uint16) {
	offsets := []float64{1}
	if len(g) > 1 {
		offsets = offsets[:0]
		for _, s := range g[1:] {
			if s.Offset > 0 {
				offsets = append(offsets, math.Min(1, s.Offset))
			}
		}
	}

	vs := []ebiten.Vertex{vertex(cx*scale, cy*scale, g.At(0))}
	for _, off := range offsets {
		c := g.At(off)
		for k := 0; k < radialSides; k++ {
			a := 2 * math.Pi * float64(k) / radialSides
			vs = append(vs, vertex((cx+radius*off*math.Cos(a))*scale, (cy+radius*off*math.Sin(a))*scale, c))
		}
	}

	var is []uint16
	// center fan
	for k := 0; k < radialSides; k++ {
		is = append(is, 0, uint16(1+k), uint16(1+(k+1)%radialSides))
	}
	// bands between consecutive rings
	for ring := 1; ring < len(offsets); ring++ {
		inner := uint16(1 + (ring-1)*radialSides)
		outer := uint16(1 + ring*radialSides)
		for k := 0; k < radialSides; k++ {
			n := uint16((k + 1) % radialSides)
			a, b := inner+uint16(k), inner+n
			c, d := outer+uint16(k), outer+n
			is = append(is, a, c, b, b, c, d)
		}
	}
	return vs, is
}
