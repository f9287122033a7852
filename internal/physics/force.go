package physics

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/particles/internal/dynamo"
)

const (
	DefaultGravityStrength = 9.8
	DefaultMinDistanceSq   = 1.0
)

// Force maps a particle's kinematic state to a force vector. Implementations
// are pure: they must not mutate their inputs or themselves. point is the
// optional external attraction point (the cursor) and may be nil.
type Force interface {
	Apply(position, velocity mgl32.Vec2, mass float32, point *mgl32.Vec2) mgl32.Vec2
}

// Gravity is a uniform pull scaled by mass.
type Gravity struct {
	Strength  float32
	Direction mgl32.Vec2
}

func DefaultGravity() Gravity {
	return Gravity{Strength: DefaultGravityStrength, Direction: mgl32.Vec2{0, 1}}
}

func (g Gravity) Apply(_, _ mgl32.Vec2, mass float32, _ *mgl32.Vec2) mgl32.Vec2 {
	return g.Direction.Mul(g.Strength * mass)
}

// Wind is a uniform pull independent of mass.
type Wind struct {
	Strength  float32
	Direction mgl32.Vec2
}

func (w Wind) Apply(_, _ mgl32.Vec2, _ float32, _ *mgl32.Vec2) mgl32.Vec2 {
	return w.Direction.Mul(w.Strength)
}

// PointAttractor pulls particles toward the external point with magnitude
// Strength*mass/distance. Inside MinDistanceSq, or exactly on the point, it
// contributes nothing.
type PointAttractor struct {
	Strength      float32
	MinDistanceSq float32
}

func NewPointAttractor(strength float32) PointAttractor {
	return PointAttractor{Strength: strength, MinDistanceSq: DefaultMinDistanceSq}
}

func (a PointAttractor) Apply(position, _ mgl32.Vec2, mass float32, point *mgl32.Vec2) mgl32.Vec2 {
	if point == nil {
		return mgl32.Vec2{}
	}
	diff := point.Sub(position)
	d2 := dynamo.LengthSq(diff)
	if d2 == 0 || !(d2 >= a.MinDistanceSq) {
		return mgl32.Vec2{}
	}
	d := float32(math.Sqrt(float64(d2)))
	magnitude := a.Strength * mass / d
	return diff.Mul(magnitude / d)
}

// Turbulence is a position-keyed gust field. A 2D Perlin noise sample at
// position*Scale picks a heading; the force has constant magnitude Strength
// and ignores mass and velocity.
type Turbulence struct {
	Strength float32
	Scale    float64
	noise    *perlin.Perlin
}

func NewTurbulence(strength float32, scale float64, seed int64) Turbulence {
	return Turbulence{
		Strength: strength,
		Scale:    scale,
		noise:    perlin.NewPerlin(2, 2, 3, seed),
	}
}

// Heading returns the gust angle in radians at position.
func (t Turbulence) Heading(position mgl32.Vec2) float64 {
	n := t.noise.Noise2D(float64(position[0])*t.Scale, float64(position[1])*t.Scale)
	return (n + 1) * math.Pi
}

func (t Turbulence) Apply(position, _ mgl32.Vec2, _ float32, _ *mgl32.Vec2) mgl32.Vec2 {
	if t.noise == nil {
		return mgl32.Vec2{}
	}
	sin, cos := dynamo.FastSinCos(t.Heading(position))
	return mgl32.Vec2{cos, sin}.Mul(t.Strength)
}
