package entity

import (
	"math"
	"math/rand"
)

// Particle is an entity drifting with a constant velocity
type Particle struct {
	*Entity
	VX, VY float64
	Base   float64
}

// NewParticle places a particle fully inside w x h
func NewParticle(rng *rand.Rand, w, h float64) *Particle {
	r := rng.Float64()*15 + 8
	x := rng.Float64()*(w-2*r) + r
	y := rng.Float64()*(h-2*r) + r
	p := &Particle{
		Entity: New(x, y, r, ParticleDamping),
		VX:     (rng.Float64() - 0.5) * 0.3,
		VY:     (rng.Float64() - 0.5) * 0.3,
		Base:   r,
	}
	return p
}

// Step advances the position; the velocity flips when the rim crosses an
// edge of w x h
func (p *Particle) Step(w, h float64) {
	x := p.Cur.X + p.VX
	y := p.Cur.Y + p.VY
	r := p.Cur.Radius
	if x+r > w || x-r < 0 {
		p.VX = -p.VX
	}
	if y+r > h || y-r < 0 {
		p.VY = -p.VY
	}
	p.Place(x, y)
}

// Hover grows the particle when (x, y) is inside it
func (p *Particle) Hover(x, y float64) {
	if math.Hypot(p.Cur.X-x, p.Cur.Y-y) < p.Cur.Radius {
		p.Target.Radius = p.Base * 1.3
		return
	}
	p.Target.Radius = p.Base
}
