package field

import (
	"math"
	"math/rand/v2"

	"github.com/iburimskiy/ambient-field/internal/config"
)

// Particle is one drifting point of the field.
type Particle struct {
	X, Y   float64
	VX, VY float64
	R      float64
}

// Speed is the magnitude of the particle's velocity.
func (p Particle) Speed() float64 {
	return math.Hypot(p.VX, p.VY)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func spawnParticles(rng *rand.Rand, vp Viewport) []Particle {
	n := vp.ParticleCount()
	out := make([]Particle, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Particle{
			X:  uniform(rng, 0, vp.Width),
			Y:  uniform(rng, 0, vp.Height),
			VX: uniform(rng, config.ParticleMinVX, config.ParticleMaxVX),
			VY: uniform(rng, config.ParticleMinVY, config.ParticleMaxVY),
			R:  uniform(rng, config.ParticleMinR, config.ParticleMaxR),
		})
	}
	return out
}

// step advances p by one tick: pointer attraction, integration, edge
// reflection, speed clamp and damping, in that order.
func (p *Particle) step(vp Viewport, ptr Pointer) {
	if ptr.Active {
		dx := ptr.X - p.X
		dy := ptr.Y - p.Y
		d2 := dx*dx + dy*dy
		if d2 < config.PointerInfluenceD {
			force := (1 - d2/config.PointerInfluenceD) * config.PointerForce
			p.VX += dx * force * config.PointerGain
			p.VY += dy * force * config.PointerGain
		}
	}

	p.X += p.VX
	p.Y += p.VY

	// Bounce off the edges; position is left as is.
	if p.X < 0 || p.X > vp.Width {
		p.VX = -p.VX
	}
	if p.Y < 0 || p.Y > vp.Height {
		p.VY = -p.VY
	}

	limit := config.MaxSpeedIdle
	if ptr.Active {
		limit = config.MaxSpeedActive
	}
	if speed := p.Speed(); speed > limit {
		ratio := limit / speed
		p.VX *= ratio
		p.VY *= ratio
	}

	p.VX *= config.Damping
	p.VY *= config.Damping
}
