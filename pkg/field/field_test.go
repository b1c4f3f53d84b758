package field

import (
	"math"
	"testing"

	"github.com/opd-ai/go-dotsim/pkg/obstacle"
	"github.com/opd-ai/go-dotsim/pkg/physics"
)

const agentRadius = 12.0

func testBounds() obstacle.Bounds {
	return obstacle.Bounds{Width: 900, Height: 600}
}

func TestScene_Nearest(t *testing.T) {
	t.Run("picks_minimum_distance", func(t *testing.T) {
		sc := NewScene(testBounds(), []obstacle.Obstacle{
			obstacle.NewCircle(physics.Vector2D{X: 100, Y: 0}, 10, agentRadius),
			obstacle.NewCircle(physics.Vector2D{X: 40, Y: 0}, 10, agentRadius),
		})
		d, n := sc.Nearest(physics.Vector2D{X: 0, Y: 0})
		if math.Abs(d-18) > 1e-9 {
			t.Errorf("distance = %v, expected 18", d)
		}
		if n != (physics.Vector2D{X: -1, Y: 0}) {
			t.Errorf("normal = %v, expected (-1, 0)", n)
		}
	})

	t.Run("tie_keeps_first_in_scene_order", func(t *testing.T) {
		// Both circles are exactly 38 away from the origin; the first
		// one's normal must win.
		sc := NewScene(testBounds(), []obstacle.Obstacle{
			obstacle.NewCircle(physics.Vector2D{X: -60, Y: 0}, 10, agentRadius),
			obstacle.NewCircle(physics.Vector2D{X: 60, Y: 0}, 10, agentRadius),
		})
		_, n := sc.Nearest(physics.Vector2D{X: 0, Y: 0})
		if n != (physics.Vector2D{X: 1, Y: 0}) {
			t.Errorf("normal = %v, expected the first obstacle's (1, 0)", n)
		}
	})

	t.Run("empty_scene_returns_far_distance", func(t *testing.T) {
		sc := NewScene(testBounds(), nil)
		d, _ := sc.Nearest(physics.Vector2D{X: 1, Y: 1})
		if d != obstacle.FarDistance {
			t.Errorf("distance = %v, expected %v", d, obstacle.FarDistance)
		}
	})
}

func TestScene_Repulsion(t *testing.T) {
	const (
		gain   = 6000.0
		rang   = 160.0
		maxMag = 600.0
	)

	t.Run("outside_range_contributes_nothing", func(t *testing.T) {
		sc := NewScene(testBounds(), []obstacle.Obstacle{
			obstacle.NewCircle(physics.Vector2D{X: 500, Y: 0}, 10, agentRadius),
		})
		sample := sc.Repulsion(physics.Vector2D{X: 0, Y: 0}, gain, rang, maxMag)
		if sample.Repulsion != (physics.Vector2D{}) {
			t.Errorf("repulsion = %v, expected zero", sample.Repulsion)
		}
	})

	t.Run("within_range_matches_formula", func(t *testing.T) {
		// Circle surface (expanded) sits 78 away from the query point.
		sc := NewScene(testBounds(), []obstacle.Obstacle{
			obstacle.NewCircle(physics.Vector2D{X: 100, Y: 0}, 10, agentRadius),
		})
		sample := sc.Repulsion(physics.Vector2D{X: 0, Y: 0}, gain, rang, maxMag)

		d := 100.0 - (10 + agentRadius)
		want := gain * (1/d - 1/rang) / (d * d)
		got := sample.Repulsion.Length()
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("repulsion magnitude = %v, expected %v", got, want)
		}
		// Push is away from the obstacle.
		if sample.Repulsion.X >= 0 {
			t.Errorf("repulsion = %v, expected to point along -X", sample.Repulsion)
		}
	})

	t.Run("penetration_pushes_at_cap", func(t *testing.T) {
		sc := NewScene(testBounds(), []obstacle.Obstacle{
			obstacle.NewCircle(physics.Vector2D{X: 15, Y: 0}, 10, agentRadius),
		})
		sample := sc.Repulsion(physics.Vector2D{X: 0, Y: 0}, gain, rang, maxMag)
		if math.Abs(sample.Repulsion.Length()-maxMag) > 1e-9 {
			t.Errorf("repulsion magnitude = %v, expected cap %v", sample.Repulsion.Length(), maxMag)
		}
	})

	t.Run("superposition_can_exceed_cap", func(t *testing.T) {
		// Two penetrating obstacles on the same side push in the same
		// direction; their hard pushes add beyond the per-obstacle cap.
		sc := NewScene(testBounds(), []obstacle.Obstacle{
			obstacle.NewCircle(physics.Vector2D{X: 15, Y: 1}, 10, agentRadius),
			obstacle.NewCircle(physics.Vector2D{X: 15, Y: -1}, 10, agentRadius),
		})
		sample := sc.Repulsion(physics.Vector2D{X: 0, Y: 0}, gain, rang, maxMag)
		if sample.Repulsion.Length() <= maxMag {
			t.Errorf("summed repulsion = %v, expected > %v", sample.Repulsion.Length(), maxMag)
		}
	})

	t.Run("tracks_nearest_obstacle", func(t *testing.T) {
		sc := NewScene(testBounds(), []obstacle.Obstacle{
			obstacle.NewCircle(physics.Vector2D{X: 300, Y: 0}, 10, agentRadius),
			obstacle.NewCircle(physics.Vector2D{X: 0, Y: 50}, 10, agentRadius),
		})
		sample := sc.Repulsion(physics.Vector2D{X: 0, Y: 0}, gain, rang, maxMag)
		if math.Abs(sample.MinDistance-28) > 1e-9 {
			t.Errorf("min distance = %v, expected 28", sample.MinDistance)
		}
		if sample.MinNormal != (physics.Vector2D{X: 0, Y: -1}) {
			t.Errorf("min normal = %v, expected (0, -1)", sample.MinNormal)
		}
	})
}

func TestScene_Clearance(t *testing.T) {
	sc := NewScene(testBounds(), []obstacle.Obstacle{
		obstacle.NewWall(obstacle.SideLeft, testBounds(), agentRadius),
		obstacle.NewCircle(physics.Vector2D{X: 100, Y: 100}, 20, agentRadius),
	})

	d := sc.Clearance(physics.Vector2D{X: 100, Y: 50}, 5)
	// Circle clearance: 50 - (20 + 5) = 25; left wall: 100 - 5 = 95.
	if math.Abs(d-25) > 1e-9 {
		t.Errorf("clearance = %v, expected 25", d)
	}
}
