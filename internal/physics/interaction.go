package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultInteractionCoefficient = 0.05
	DefaultEquilibriumDistance    = 50.0
	interactionEpsilon            = 1e-4
)

// Interaction is a pairwise force law applied across a particle population.
type Interaction interface {
	Apply(particles []Particle)
}

// Spring is a linear restoring force toward an equilibrium separation:
// attractive beyond Equilibrium, repulsive inside it.
type Spring struct {
	Coefficient float32
	Equilibrium float32
}

func DefaultSpring() Spring {
	return Spring{
		Coefficient: DefaultInteractionCoefficient,
		Equilibrium: DefaultEquilibriumDistance,
	}
}

// Force returns the force exerted on the particle at a by the particle at b.
// The force on b is the exact negation. ok is false for coincident particles.
func (s Spring) Force(a, b mgl32.Vec2) (f mgl32.Vec2, ok bool) {
	diff := b.Sub(a)
	distance := float32(math.Sqrt(float64(diff.Dot(diff))))
	if distance < interactionEpsilon {
		return mgl32.Vec2{}, false
	}
	direction := diff.Mul(1 / distance)
	magnitude := s.Coefficient * (distance - s.Equilibrium)
	return direction.Mul(magnitude), true
}

// Apply visits every unordered pair once, i < j.
func (s Spring) Apply(particles []Particle) {
	for i := 0; i < len(particles); i++ {
		pi := &particles[i]
		for j := i + 1; j < len(particles); j++ {
			pj := &particles[j]
			f, ok := s.Force(pi.Position, pj.Position)
			if !ok {
				continue
			}
			pi.ApplyForce(f)
			pj.ApplyForce(f.Mul(-1))
		}
	}
}
