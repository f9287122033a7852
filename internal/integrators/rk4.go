package integrators

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/particles/internal/dynamo"
)

// RK4 is a fourth-order Runge-Kutta step over (position, velocity).
//
// The acceleration comes from the force pass at the start of the frame and is
// not re-sampled at the intermediate stages, so the step is exact for
// constant acceleration but not for forces that depend on the mid-step state.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) Step(x dynamo.State, acc mgl32.Vec2, dt float32) dynamo.State {
	half := dt * 0.5

	k1 := derive(x, acc)
	k2 := derive(x.Advance(k1, half), acc)
	k3 := derive(x.Advance(k2, half), acc)
	k4 := derive(x.Advance(k3, dt), acc)

	dt6 := dt / 6.0
	return dynamo.State{
		Position: x.Position.Add(k1.DP.Add(k2.DP.Mul(2)).Add(k3.DP.Mul(2)).Add(k4.DP).Mul(dt6)),
		Velocity: x.Velocity.Add(k1.DV.Add(k2.DV.Mul(2)).Add(k3.DV.Mul(2)).Add(k4.DV).Mul(dt6)),
	}
}

func derive(x dynamo.State, acc mgl32.Vec2) dynamo.Derivative {
	return dynamo.Derivative{DP: x.Velocity, DV: acc}
}
