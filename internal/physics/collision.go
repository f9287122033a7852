package physics

import "math"

// CorrectionPercent is the share of the remaining overlap removed per frame.
const CorrectionPercent = 0.2

// ResolveCollision applies an impulse and a positional correction to an
// overlapping pair that is still approaching. Coincident centers are skipped
// since the contact normal is undefined. It reports whether the pair was
// resolved.
func ResolveCollision(a, b *Particle) bool {
	diff := a.Position.Sub(b.Position)
	distance := float32(math.Sqrt(float64(diff.Dot(diff))))
	minDistance := a.radius + b.radius
	if distance >= minDistance || distance == 0 {
		return false
	}

	normal := diff.Mul(1 / distance)
	velAlongNormal := a.Velocity.Sub(b.Velocity).Dot(normal)
	if velAlongNormal > 0 {
		return false
	}

	restitution := min(a.restitution, b.restitution)
	invMassSum := 1/a.mass + 1/b.mass

	impulse := normal.Mul(-(1 + restitution) * velAlongNormal / invMassSum)
	a.Velocity = a.Velocity.Add(impulse.Mul(1 / a.mass))
	b.Velocity = b.Velocity.Sub(impulse.Mul(1 / b.mass))

	correction := normal.Mul(CorrectionPercent * (minDistance - distance) / invMassSum)
	a.Position = a.Position.Add(correction.Mul(1 / a.mass))
	b.Position = b.Position.Sub(correction.Mul(1 / b.mass))
	return true
}

// ResolveBoundary keeps the particle inside [0,width]x[0,height]. An axis that
// crosses a wall is clamped to radius from it and its velocity component is
// reflected and scaled by the restitution. It reports whether a wall was hit.
func (p *Particle) ResolveBoundary(width, height float32) bool {
	hitX := reflectAxis(&p.Position[0], &p.Velocity[0], p.radius, width, p.restitution)
	hitY := reflectAxis(&p.Position[1], &p.Velocity[1], p.radius, height, p.restitution)
	return hitX || hitY
}

func reflectAxis(pos, vel *float32, radius, extent, restitution float32) bool {
	switch {
	case *pos-radius < 0:
		*pos = radius
	case *pos+radius > extent:
		*pos = extent - radius
	default:
		return false
	}
	*vel = -*vel * restitution
	return true
}

// ResolveCollisions runs ResolveCollision over every unordered pair, i < j,
// and returns the number of pairs resolved.
func ResolveCollisions(particles []Particle) int {
	n := 0
	for i := 0; i < len(particles); i++ {
		for j := i + 1; j < len(particles); j++ {
			if ResolveCollision(&particles[i], &particles[j]) {
				n++
			}
		}
	}
	return n
}
