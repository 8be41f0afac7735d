package forcegraph

import "math"

// Particle is a single floating background particle.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Alpha  float64
	Phase  float64 // twinkle phase offset
}

// ParticleField manages the ambient background particles. Spawning is fully
// deterministic in the particle index, so two fields built from the same
// style and size are identical.
type ParticleField struct {
	Particles []Particle
	width     float64
	height    float64
}

// NewParticleField spawns style.Count particles over a width x height area.
func NewParticleField(style ParticleStyle, width, height float64) *ParticleField {
	particles := make([]Particle, 0, style.Count)
	for i := 0; i < style.Count; i++ {
		seed := float64(i)
		angle := pseudoRandom(seed*3.7) * 2 * math.Pi
		speed := style.Speed * (0.5 + pseudoRandom(seed*4.1)*0.5)
		particles = append(particles, Particle{
			X:     pseudoRandom(seed*1.1) * width,
			Y:     pseudoRandom(seed*2.3) * height,
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle) * speed,
			Size:  style.SizeMin + pseudoRandom(seed*5.3)*(style.SizeMax-style.SizeMin),
			Alpha: style.Opacity * (0.3 + pseudoRandom(seed*6.7)*0.7),
			Phase: pseudoRandom(seed*7.9) * 2 * math.Pi,
		})
	}
	return &ParticleField{Particles: particles, width: width, height: height}
}

// pseudoRandom hashes a seed into [0, 1).
func pseudoRandom(seed float64) float64 {
	x := math.Sin(seed*12.9898+seed*78.233) * 43758.5453
	return x - math.Floor(x)
}

// Update advances particle positions, wrapping them around the screen edges
// with a 10px margin.
func (f *ParticleField) Update(dt float64) {
	for i := range f.Particles {
		p := &f.Particles[i]
		p.X += p.VX * dt * 60.0
		p.Y += p.VY * dt * 60.0
		p.Phase += dt * 2.0

		if p.X < -10.0 {
			p.X = f.width + 10.0
		} else if p.X > f.width+10.0 {
			p.X = -10.0
		}
		if p.Y < -10.0 {
			p.Y = f.height + 10.0
		} else if p.Y > f.height+10.0 {
			p.Y = -10.0
		}
	}
}

// Resize rescales particle positions proportionally to the new bounds.
func (f *ParticleField) Resize(width, height float64) {
	scaleX := width / f.width
	scaleY := height / f.height
	for i := range f.Particles {
		f.Particles[i].X *= scaleX
		f.Particles[i].Y *= scaleY
	}
	f.width = width
	f.height = height
}

// TwinkleAlpha returns the draw alpha for a particle at a point in time. The
// twinkle multiplier stays within [0.6, 1.0] so particles never fully vanish.
func (f *ParticleField) TwinkleAlpha(p Particle, time float64) float64 {
	twinkle := (math.Sin(time*1.5+p.Phase)*0.5+0.5)*0.4 + 0.6
	return p.Alpha * twinkle
}
