// Package dynamo provides the kinematic primitives shared by the particle
// engine.
//
// The package defines the types every other layer builds on:
//
//   - [State]: position and velocity of a point mass
//   - [Derivative]: time derivative of a [State]
//   - [Integrator]: advances a [State] under a constant acceleration
//
// Vector math uses float32 [mgl32.Vec2] throughout. Helpers in vec.go
// implement the stability guards (componentwise force clamp, speed clamp)
// applied by the physics layer.
//
// # Example
//
//	integ := integrators.NewRK4()
//	x := dynamo.State{Position: mgl32.Vec2{400, 300}}
//	x = integ.Step(x, mgl32.Vec2{0, 9.8}, 1.0/60)
package dynamo
