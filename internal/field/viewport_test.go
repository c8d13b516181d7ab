package field

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampScale(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 1},
		{0.5, 1},
		{1, 1},
		{1.25, 1.25},
		{2, 2},
		{3, 2},
		{math.NaN(), 1},
		{math.Inf(1), 2},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ClampScale(c.in), "ratio %v", c.in)
	}
}

func TestViewport_ParticleCount(t *testing.T) {
	cases := []struct {
		w, h float64
		want int
	}{
		{1000, 800, 72},
		{100, 100, 72},
		{1920, 1080, 121},
		{3840, 2160, 487},
		{0, 600, 0},
		{800, 0, 0},
	}
	for _, c := range cases {
		vp := newViewport(c.w, c.h, 1)
		assert.Equal(t, c.want, vp.ParticleCount(), "%vx%v", c.w, c.h)
	}
}

func TestViewport_BlobCount(t *testing.T) {
	assert.Equal(t, 3, newViewport(1, 1, 1).BlobCount())
	assert.Equal(t, 0, newViewport(0, 0, 1).BlobCount())
}

func TestViewport_BackingSize(t *testing.T) {
	w, h := newViewport(101, 51, 1.5).BackingSize()
	assert.Equal(t, 151, w)
	assert.Equal(t, 76, h)

	w, h = newViewport(1000, 800, 3).BackingSize()
	assert.Equal(t, 2000, w)
	assert.Equal(t, 1600, h)
}

func TestViewport_NegativeDimensionsAreEmpty(t *testing.T) {
	vp := newViewport(-10, 400, 1)
	assert.True(t, vp.Empty())
	assert.Equal(t, 0.0, vp.Width)
}

func TestViewport_QuietZone(t *testing.T) {
	vp := newViewport(1000, 800, 1)
	assert.True(t, vp.InQuietZone(500, 400))
	assert.True(t, vp.InQuietZone(271, 113))
	// Edges are excluded.
	assert.False(t, vp.InQuietZone(270, 400))
	assert.False(t, vp.InQuietZone(730, 400))
	assert.False(t, vp.InQuietZone(500, 112))
	assert.False(t, vp.InQuietZone(500, 656))
	assert.False(t, vp.InQuietZone(10, 10))
}
