// Package field implements the ambient field renderer: drifting points
// joined by proximity lines, soft glow blobs, a slow scan band, and
// pointer-reactive particle motion, repainted on every host frame.
package field

import (
	"math/rand/v2"

	"go.uber.org/zap"
)

// State is the renderer lifecycle state.
type State int

const (
	Unmounted State = iota
	Mounted
)

func (s State) String() string {
	if s == Mounted {
		return "mounted"
	}
	return "unmounted"
}

// Stats counts what the renderer has done since it was mounted.
type Stats struct {
	Frames    int // frames painted to completion
	Resizes   int
	LastLinks int // proximity lines drawn in the latest frame
	Faults    int // frames that panicked and were recovered
}

// Option configures a Renderer at mount time.
type Option func(*Renderer)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(r *Renderer) {
		if log != nil {
			r.log = log
		}
	}
}

// WithRand sets the random source used to place particles and blobs.
func WithRand(rng *rand.Rand) Option {
	return func(r *Renderer) {
		if rng != nil {
			r.rng = rng
		}
	}
}

// WithSeed makes entity placement deterministic.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Renderer owns the surface, the simulated particles and blobs, and the
// pointer state. It is not safe for concurrent use; the host drives it
// from a single goroutine.
type Renderer struct {
	host    Host
	surface Surface
	log     *zap.Logger
	rng     *rand.Rand

	state     State
	vp        Viewport
	particles []Particle
	blobs     []Blob
	pointer   Pointer
	projected []point

	subs  []Subscription
	loop  *frameLoop
	stats Stats
}

// Mount attaches a renderer to the host container named id and starts the
// frame loop. If the host has no such container Mount does nothing and
// returns nil; every method is safe to call on that nil renderer.
func Mount(host Host, id string, opts ...Option) *Renderer {
	r := &Renderer{
		host: host,
		log:  zap.NewNop(),
		rng:  rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(r)
	}

	surface, ok := host.Container(id)
	if !ok || surface == nil {
		r.log.Debug("mount point absent, renderer not started", zap.String("container", id))
		return nil
	}
	r.surface = surface
	r.state = Mounted

	r.subs = []Subscription{
		host.Subscribe(EventResize, func(Event) { r.Resize() }),
		host.Subscribe(EventPointerMove, func(e Event) { r.pointer.move(e.X, e.Y, r.host.Now()) }),
		host.Subscribe(EventPointerLeave, func(Event) { r.pointer.leave() }),
	}
	r.Resize()

	r.loop = newFrameLoop(host, r.frame, r.recovered)
	r.loop.start()
	r.log.Debug("renderer mounted", zap.String("container", id))
	return r
}

// Resize re-reads the viewport, resynchronizes the surface resolution and
// regenerates every particle and blob. Prior motion is discarded.
func (r *Renderer) Resize() {
	if r == nil || r.state != Mounted {
		return
	}
	w, h := r.host.Viewport()
	r.vp = newViewport(w, h, r.host.DevicePixelRatio())
	r.applyBacking()

	r.particles = spawnParticles(r.rng, r.vp)
	r.blobs = spawnBlobs(r.rng, r.vp)
	r.stats.Resizes++

	r.log.Debug("viewport reset",
		zap.Float64("width", r.vp.Width),
		zap.Float64("height", r.vp.Height),
		zap.Float64("scale", r.vp.Scale),
		zap.Int("particles", len(r.particles)),
		zap.Int("blobs", len(r.blobs)),
	)
}

func (r *Renderer) applyBacking() {
	bw, bh := r.vp.BackingSize()
	r.surface.Resize(bw, bh)
	r.surface.SetScale(r.vp.Scale)
}

// syncBacking corrects a surface whose resolution drifted from the viewport.
func (r *Renderer) syncBacking() {
	bw, bh := r.vp.BackingSize()
	if sw, sh := r.surface.Size(); sw != bw || sh != bh {
		r.applyBacking()
	}
}

func (r *Renderer) frame(now float64) {
	r.pointer.expire(now)
	r.syncBacking()
	r.paint(now)
	r.stats.Frames++
}

func (r *Renderer) recovered(v any) {
	r.stats.Faults++
	r.log.Error("frame panicked, continuing",
		zap.Any("panic", v),
		zap.Int("frame", r.stats.Frames+r.stats.Faults),
	)
}

// Unmount stops the frame loop and detaches every listener. Calling it
// again, or on a nil renderer, is a no-op.
func (r *Renderer) Unmount() {
	if r == nil || r.state != Mounted {
		return
	}
	r.state = Unmounted
	r.loop.cancel()
	for _, s := range r.subs {
		s.Unsubscribe()
	}
	r.subs = nil
	r.log.Debug("renderer unmounted", zap.Int("frames", r.stats.Frames))
}

// The accessors below, like Resize and Unmount, accept the nil renderer
// Mount returns for an absent container and report zero values.

func (r *Renderer) State() State {
	if r == nil {
		return Unmounted
	}
	return r.state
}

func (r *Renderer) Viewport() Viewport {
	if r == nil {
		return Viewport{}
	}
	return r.vp
}

func (r *Renderer) Pointer() Pointer {
	if r == nil {
		return Pointer{}
	}
	return r.pointer
}

func (r *Renderer) Stats() Stats {
	if r == nil {
		return Stats{}
	}
	return r.stats
}

// Particles returns a copy of the current particle set.
func (r *Renderer) Particles() []Particle {
	if r == nil {
		return nil
	}
	return append([]Particle(nil), r.particles...)
}

// Blobs returns a copy of the current blob set.
func (r *Renderer) Blobs() []Blob {
	if r == nil {
		return nil
	}
	return append([]Blob(nil), r.blobs...)
}
