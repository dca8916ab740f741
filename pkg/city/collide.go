package city

import "math"

// resolveCollisions reduces pairwise footprint overlap by direct
// positional correction: any two bodies closer than the sum of their radii
// plus padding are each moved half the overlap apart along the separating
// direction. Corrections bypass velocity entirely.
//
// The pass count is a bounded-effort trade-off. A handful of passes
// shrinks residual overlap substantially but does not guarantee
// elimination; the outer simulation loop re-runs the passes every
// iteration, which is what converges the city in practice.
func resolveCollisions(bodies []*body, padding float64, passes int) {
	for range passes {
		for i := 0; i < len(bodies); i++ {
			for j := i + 1; j < len(bodies); j++ {
				a, b := bodies[i], bodies[j]

				dx := b.pos.X - a.pos.X
				dz := b.pos.Z - a.pos.Z
				distSq := dx*dx + dz*dz

				minDist := a.radius + b.radius + padding
				if distSq >= minDist*minDist {
					continue
				}

				dist := math.Sqrt(distSq)
				if dist < 1e-9 {
					// Coincident bodies have no separating direction;
					// the repulsion tie-break splits them next iteration.
					continue
				}

				half := (minDist - dist) / 2
				ux, uz := dx/dist, dz/dist
				a.pos.X -= ux * half
				a.pos.Z -= uz * half
				b.pos.X += ux * half
				b.pos.Z += uz * half
			}
		}
	}
}
