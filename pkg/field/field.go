// Package field provides scene-level distance queries over the full
// obstacle set: the nearest obstacle scan and the summed repulsive field.
package field

import (
	"github.com/opd-ai/go-dotsim/pkg/obstacle"
	"github.com/opd-ai/go-dotsim/pkg/physics"
)

// Scene is an ordered, immutable collection of obstacles inside a world
// rectangle. It is rebuilt wholesale on reset, never mutated obstacle by
// obstacle during a run; iteration order is insertion order, which makes
// every query deterministic.
type Scene struct {
	Bounds    obstacle.Bounds
	Obstacles []obstacle.Obstacle
}

// NewScene creates a scene over the given world bounds.
func NewScene(bounds obstacle.Bounds, obstacles []obstacle.Obstacle) *Scene {
	return &Scene{
		Bounds:    bounds,
		Obstacles: obstacles,
	}
}

// Nearest returns the smallest signed distance over all obstacles and the
// normal of the obstacle achieving it. The scan uses strict less-than, so
// on exact ties the first obstacle in scene order wins.
func (s *Scene) Nearest(p physics.Vector2D) (float64, physics.Vector2D) {
	minDist := obstacle.FarDistance
	var minNormal physics.Vector2D
	for _, obs := range s.Obstacles {
		d, n := obs.DistanceNormal(p)
		if d < minDist {
			minDist = d
			minNormal = n
		}
	}
	return minDist, minNormal
}

// Sample is the result of a repulsive-field query: the summed repulsion
// vector plus the nearest obstacle's distance and normal, gathered in the
// same pass for laws that only need the closest surface.
type Sample struct {
	Repulsion   physics.Vector2D
	MinDistance float64
	MinNormal   physics.Vector2D
}

// Repulsion accumulates the artificial repulsive force of every obstacle
// at p. A penetrating obstacle (d <= 0) contributes a hard push of maxMag
// along its normal; an obstacle within rang contributes
// gain*(1/d - 1/rang)/d^2 clamped to [0, maxMag]. Contributions superpose
// vectorially, so the total can exceed maxMag even though each obstacle's
// share is capped.
func (s *Scene) Repulsion(p physics.Vector2D, gain, rang, maxMag float64) Sample {
	sample := Sample{MinDistance: obstacle.FarDistance}
	for _, obs := range s.Obstacles {
		d, n := obs.DistanceNormal(p)
		if d < sample.MinDistance {
			sample.MinDistance = d
			sample.MinNormal = n
		}
		if d <= 0 {
			sample.Repulsion = sample.Repulsion.Add(n.Scale(maxMag))
			continue
		}
		if d < rang {
			mag := gain * (1/d - 1/rang) / (d * d)
			mag = physics.Clamp(mag, 0, maxMag)
			sample.Repulsion = sample.Repulsion.Add(n.Scale(mag))
		}
	}
	return sample
}

// Clearance returns the smallest placement distance from p to any
// obstacle, with the query body expanded by extra. It feeds scene
// generation only and produces no normal.
func (s *Scene) Clearance(p physics.Vector2D, extra float64) float64 {
	minDist := obstacle.FarDistance
	for _, obs := range s.Obstacles {
		if d := obs.PlacementDistance(p, extra); d < minDist {
			minDist = d
		}
	}
	return minDist
}
