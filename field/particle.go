package field

import "math/rand/v2"

// Particle is a single drifting point of the field
type Particle struct {
	X, Y        float64 // position in CSS pixels
	VX, VY      float64 // velocity in CSS pixels per frame
	Radius      float64
	BaseOpacity float64 // opacity the particle fades in to
	Opacity     float64
}

// newParticle places a particle uniformly inside a w×h surface
func newParticle(rng *rand.Rand, w, h float64) Particle {
	return Particle{
		X:           rng.Float64() * w,
		Y:           rng.Float64() * h,
		VX:          (rng.Float64() - 0.5) * initialSpeed,
		VY:          (rng.Float64() - 0.5) * initialSpeed,
		Radius:      rng.Float64()*radiusSpan + radiusMin,
		BaseOpacity: rng.Float64()*baseOpacitySpan + baseOpacityMin,
		Opacity:     0,
	}
}

// step advances the particle one frame away from the pointer at (mx, my)
// and wraps it inside the w×h surface plus the edge band.
func (p *Particle) step(mx, my, w, h float64) {
	// Pointer repulsion
	dx := p.X - mx
	dy := p.Y - my
	dist := hypot(dx, dy)
	if dist < interactionRadius && dist > 0 {
		force := (interactionRadius - dist) / interactionRadius
		p.VX += dx / dist * force * repulsionStrength
		p.VY += dy / dist * force * repulsionStrength
	}

	p.VX *= damping
	p.VY *= damping

	p.X += p.VX
	p.Y += p.VY

	// Fade in, never past the base opacity
	if p.Opacity < p.BaseOpacity {
		p.Opacity += fadeStep
		if p.Opacity > p.BaseOpacity {
			p.Opacity = p.BaseOpacity
		}
	}

	p.X = wrap(p.X, w)
	p.Y = wrap(p.Y, h)
}

// wrap teleports a coordinate that left [-edgeBand, size+edgeBand] to the opposite edge
func wrap(v, size float64) float64 {
	if v < -edgeBand {
		return size + edgeBand
	}
	if v > size+edgeBand {
		return -edgeBand
	}
	return v
}
