package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/particles/internal/dynamo"
)

const (
	// MaxForce bounds each force component before it reaches the
	// accumulator. It is a numerical guard against near-coincident pairs, not
	// a physical limit.
	MaxForce float32 = 1000

	// MaxSpeed caps |velocity| after integration so one frame can never move
	// a particle further than MaxSpeed*dt.
	MaxSpeed float32 = 1000

	DefaultDamping     float32 = 0.98
	DefaultRestitution float32 = 0.8
)

// Particle is a circular point mass. Mass, radius, damping and restitution
// are fixed at construction; Acceleration only carries forces accumulated
// during the current frame and is cleared by Update.
type Particle struct {
	Position     mgl32.Vec2
	Velocity     mgl32.Vec2
	Acceleration mgl32.Vec2
	Color        uint32

	mass        float32
	radius      float32
	damping     float32
	restitution float32
}

type Option func(*Particle)

// WithDamping sets the per-step velocity multiplier, in (0, 1].
func WithDamping(d float32) Option {
	return func(p *Particle) { p.damping = d }
}

// WithRestitution sets the collision elasticity, in [0, 1].
func WithRestitution(e float32) Option {
	return func(p *Particle) { p.restitution = e }
}

func WithVelocity(v mgl32.Vec2) Option {
	return func(p *Particle) { p.Velocity = v }
}

// NewParticle builds a particle at rest at position. It fails for a
// non-positive mass or radius and for coefficients outside their ranges.
func NewParticle(position mgl32.Vec2, mass, radius float32, color uint32, opts ...Option) (Particle, error) {
	p := Particle{
		Position:    position,
		Color:       color,
		mass:        mass,
		radius:      radius,
		damping:     DefaultDamping,
		restitution: DefaultRestitution,
	}
	for _, opt := range opts {
		opt(&p)
	}

	switch {
	case !positive(mass):
		return Particle{}, dynamo.Invalid("mass", float64(mass), dynamo.ErrInvalidMass)
	case !positive(radius):
		return Particle{}, dynamo.Invalid("radius", float64(radius), dynamo.ErrInvalidRadius)
	case !(p.damping > 0 && p.damping <= 1):
		return Particle{}, dynamo.Invalid("damping", float64(p.damping), dynamo.ErrParameterBounds)
	case !(p.restitution >= 0 && p.restitution <= 1):
		return Particle{}, dynamo.Invalid("restitution", float64(p.restitution), dynamo.ErrParameterBounds)
	}
	return p, nil
}

func positive(v float32) bool {
	return v > 0 && !math.IsInf(float64(v), 0)
}

func (p *Particle) Mass() float32        { return p.mass }
func (p *Particle) Radius() float32      { return p.radius }
func (p *Particle) Damping() float32     { return p.damping }
func (p *Particle) Restitution() float32 { return p.restitution }

// ApplyForce accumulates f/mass into the acceleration after clamping each
// component of f to ±MaxForce.
func (p *Particle) ApplyForce(f mgl32.Vec2) {
	f = dynamo.ClampComponents(f, MaxForce)
	p.Acceleration = p.Acceleration.Add(f.Mul(1 / p.mass))
}

// Update damps the velocity, integrates one step of dt under the accumulated
// acceleration, caps the speed and clears the acceleration.
func (p *Particle) Update(integ dynamo.Integrator, dt float32) {
	p.Velocity = p.Velocity.Mul(p.damping)

	next := integ.Step(dynamo.State{Position: p.Position, Velocity: p.Velocity}, p.Acceleration, dt)
	p.Position = next.Position
	p.Velocity = dynamo.ClampLength(next.Velocity, MaxSpeed)

	p.Acceleration = mgl32.Vec2{}
}

func (p *Particle) KineticEnergy() float32 {
	return 0.5 * p.mass * p.Velocity.Dot(p.Velocity)
}

func (p *Particle) Momentum() mgl32.Vec2 {
	return p.Velocity.Mul(p.mass)
}

func (p *Particle) Speed() float32 {
	return p.Velocity.Len()
}

func (p *Particle) IsValid() bool {
	return dynamo.IsFinite(p.Position) && dynamo.IsFinite(p.Velocity)
}
