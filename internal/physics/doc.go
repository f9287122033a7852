// Package physics implements the particle engine: external force fields,
// the pairwise spring interaction, per-particle integration and collision
// resolution.
//
//   - [Force]: pure per-particle force ([Gravity], [Wind], [PointAttractor], [Turbulence])
//   - [Interaction]: pairwise law over a population ([Spring])
//   - [Particle]: kinematic state, force accumulation and integration
//   - [ResolveCollision], [Particle.ResolveBoundary]: impulse-based contacts
//
// Pairwise operations take the population as a slice and touch two elements
// by index with i < j, so the two particles of a pair are always distinct.
//
// # Stability guards
//
// Forces are clamped componentwise to [MaxForce] before they are accumulated
// and speed is capped to [MaxSpeed] after integration. Both are numerical
// guards that keep a degenerate frame from producing NaN or Inf.
package physics
