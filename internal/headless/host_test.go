package headless

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/ambient-field/internal/field"
	"github.com/iburimskiy/ambient-field/internal/raster"
)

const frame = 16 * time.Millisecond

func TestHost_NoContainer(t *testing.T) {
	h := New()
	assert.Nil(t, field.Mount(h, "ambient-field"))
	assert.Zero(t, h.Listeners())
	assert.Zero(t, h.Pending())
}

func TestHost_StepFiresQueuedOnly(t *testing.T) {
	h := New()
	calls := 0
	var rearm func(float64)
	rearm = func(float64) {
		calls++
		h.RequestFrame(rearm)
	}
	h.RequestFrame(rearm)

	assert.Equal(t, 1, h.Step(frame))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, h.Pending())
	assert.InDelta(t, 16, h.Now(), 1e-9)
}

func TestHost_CancelFrame(t *testing.T) {
	h := New()
	id := h.RequestFrame(func(float64) { t.Fatal("cancelled frame fired") })
	h.CancelFrame(id)
	h.CancelFrame(id)
	assert.Zero(t, h.Step(frame))
}

func TestHost_SubscriptionsDetach(t *testing.T) {
	h := New()
	moves := 0
	sub := h.Subscribe(field.EventPointerMove, func(e field.Event) {
		moves++
		assert.Equal(t, 3.0, e.X)
	})
	h.MovePointer(3, 4)
	sub.Unsubscribe()
	sub.Unsubscribe()
	h.MovePointer(3, 4)
	assert.Equal(t, 1, moves)
	assert.Zero(t, h.Listeners())
}

func TestRenderer_OnRasterSurface(t *testing.T) {
	s := raster.New()
	h := New(WithViewport(160, 100, 2), WithSurface("ambient-field", s))
	r := field.Mount(h, "ambient-field", field.WithSeed(42))
	require.NotNil(t, r)

	w, hh := s.Size()
	assert.Equal(t, 320, w)
	assert.Equal(t, 200, hh)

	h.MovePointer(80, 50)
	h.Run(30, frame)
	assert.Equal(t, 30, r.Stats().Frames)
	assert.Zero(t, r.Stats().Faults)
	assert.True(t, r.Pointer().Active)

	// The background is opaque everywhere.
	img := s.Image()
	for _, p := range [][2]int{{0, 0}, {319, 199}, {160, 100}} {
		assert.Equal(t, uint8(255), img.RGBAAt(p[0], p[1]).A)
	}

	// Two seconds without movement turn the pointer off.
	h.Advance(2 * time.Second)
	h.Step(frame)
	assert.False(t, r.Pointer().Active)

	h.Resize(1000, 800, 1)
	assert.Len(t, r.Particles(), 72)
	w, hh = s.Size()
	assert.Equal(t, 1000, w)
	assert.Equal(t, 800, hh)

	r.Unmount()
	assert.Zero(t, h.Listeners())
	assert.Zero(t, h.Pending())
	assert.Zero(t, h.Step(frame))
}
