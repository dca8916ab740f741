package city

import (
	"math"
	"math/rand/v2"

	"github.com/skylinehq/skyline/pkg/layout"
)

// Force model constants. Repulsion, attraction, and padding are bases that
// get scaled by the spacing multiplier; the rest apply as-is.
const (
	timeStep = 0.1
	damping  = 0.9

	repulsionBase  = 2000.0
	attractionBase = 0.01
	paddingBase    = 15.0

	// degenerateDistSq is the squared-distance floor below which two
	// bodies are treated as coincident and pushed apart along a random
	// direction instead of a normalized separation.
	degenerateDistSq = 1e-4

	collisionPasses = 2
)

// spacingMultiplier scales force strengths and padding so effective
// spacing grows sub-linearly with city size.
func spacingMultiplier(n int) float64 {
	return max(1, math.Log(float64(n))*0.5)
}

// simulate runs the fixed-iteration force loop over bodies, mutating
// position and velocity in place. Each iteration accumulates pairwise
// repulsion and parent attraction, integrates with explicit Euler steps
// and multiplicative damping, pins Y back to the ground plane, and then
// runs the collision passes. There is no convergence check: the loop
// always runs the full budget regardless of residual overlap.
func simulate(bodies []*body, iterations int, rng *rand.Rand, progress func(done, total int)) {
	n := len(bodies)
	if n == 0 || iterations <= 0 {
		return
	}

	mult := spacingMultiplier(n)
	repulsion := repulsionBase * mult
	attraction := attractionBase / mult
	padding := paddingBase * mult

	// Resolve parents once; bodies never change identity mid-run.
	byID := make(map[string]*body, n)
	for _, b := range bodies {
		byID[b.id] = b
	}
	parents := make([]*body, n)
	for i, b := range bodies {
		if b.parentID != "" {
			parents[i] = byID[b.parentID]
		}
	}

	forces := make([]layout.Vec3, n)

	for iter := 0; iter < iterations; iter++ {
		for i := range forces {
			forces[i] = layout.Vec3{}
		}

		// Repulsion over all unordered pairs, applied symmetrically.
		// Only pairs within twice their clearance distance interact.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx := bodies[i].pos.X - bodies[j].pos.X
				dz := bodies[i].pos.Z - bodies[j].pos.Z
				distSq := dx*dx + dz*dz

				var ux, uz float64
				if distSq < degenerateDistSq {
					ux, uz = randomDirection(rng)
				} else {
					dist := math.Sqrt(distSq)
					ux, uz = dx/dist, dz/dist
				}

				minDist := bodies[i].radius + bodies[j].radius + padding
				if distSq < 4*minDist*minDist {
					f := repulsion / (distSq + 0.1)
					forces[i].X += ux * f
					forces[i].Z += uz * f
					forces[j].X -= ux * f
					forces[j].Z -= uz * f
				}
			}
		}

		// Attraction toward the parent's current position; the root is
		// pulled toward the origin with the same strength.
		for i, b := range bodies {
			var target layout.Vec3
			if parents[i] != nil {
				target = parents[i].pos
			}
			forces[i].X += (target.X - b.pos.X) * attraction
			forces[i].Z += (target.Z - b.pos.Z) * attraction
		}

		// Integrate and pin bodies to the ground plane.
		for i, b := range bodies {
			b.vel.X += forces[i].X * timeStep
			b.vel.Z += forces[i].Z * timeStep
			b.vel.X *= damping
			b.vel.Z *= damping
			b.pos.X += b.vel.X * timeStep
			b.pos.Z += b.vel.Z * timeStep
			b.pos.Y = 0
		}

		resolveCollisions(bodies, padding, collisionPasses)

		if progress != nil {
			progress(iter+1, iterations)
		}
	}
}

// randomDirection returns a uniformly distributed unit vector on the
// ground plane.
func randomDirection(rng *rand.Rand) (x, z float64) {
	angle := rng.Float64() * 2 * math.Pi
	return math.Cos(angle), math.Sin(angle)
}
