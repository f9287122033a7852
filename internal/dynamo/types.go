package dynamo

import "github.com/go-gl/mathgl/mgl32"

// State is the kinematic state of a point mass.
type State struct {
	Position mgl32.Vec2
	Velocity mgl32.Vec2
}

// Derivative is dState/dt: velocity and acceleration.
type Derivative struct {
	DP mgl32.Vec2
	DV mgl32.Vec2
}

// Advance returns s + d*dt.
func (s State) Advance(d Derivative, dt float32) State {
	return State{
		Position: s.Position.Add(d.DP.Mul(dt)),
		Velocity: s.Velocity.Add(d.DV.Mul(dt)),
	}
}

func (s State) IsValid() bool {
	return IsFinite(s.Position) && IsFinite(s.Velocity)
}

// Integrator advances a state by dt. The acceleration is evaluated once by the
// caller and held constant for the whole step.
type Integrator interface {
	Name() string
	Step(x State, acc mgl32.Vec2, dt float32) State
}
