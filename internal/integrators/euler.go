package integrators

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/particles/internal/dynamo"
)

// SemiImplicitEuler updates velocity first and then moves the position with
// the new velocity, which keeps orbits and springs from gaining energy the
// way explicit Euler does.
type SemiImplicitEuler struct{}

func NewEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (e *SemiImplicitEuler) Name() string { return "euler" }

func (e *SemiImplicitEuler) Step(x dynamo.State, acc mgl32.Vec2, dt float32) dynamo.State {
	v := x.Velocity.Add(acc.Mul(dt))
	return dynamo.State{
		Position: x.Position.Add(v.Mul(dt)),
		Velocity: v,
	}
}
