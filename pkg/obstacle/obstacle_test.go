package obstacle

import (
	"math"
	"testing"

	"github.com/opd-ai/go-dotsim/pkg/physics"
)

const agentRadius = 12.0

func assertUnit(t *testing.T, n physics.Vector2D) {
	t.Helper()
	if math.Abs(n.Length()-1) > 1e-9 {
		t.Errorf("normal %v is not unit length (|n| = %v)", n, n.Length())
	}
}

func TestCircle_DistanceNormal(t *testing.T) {
	circle := NewCircle(physics.Vector2D{X: 0, Y: 0}, 10, agentRadius)

	t.Run("penetrating_fixture", func(t *testing.T) {
		// d = 20 - (10 + 12) = -2
		d, n := circle.DistanceNormal(physics.Vector2D{X: 20, Y: 0})
		if math.Abs(d-(-2)) > 1e-9 {
			t.Errorf("distance = %v, expected -2", d)
		}
		if n != (physics.Vector2D{X: 1, Y: 0}) {
			t.Errorf("normal = %v, expected (1, 0)", n)
		}
	})

	t.Run("outside_expanded_radius", func(t *testing.T) {
		points := []physics.Vector2D{
			{X: 50, Y: 0},
			{X: 0, Y: -40},
			{X: 30, Y: 30},
			{X: -23, Y: 0.5},
		}
		for _, p := range points {
			d, n := circle.DistanceNormal(p)
			if d <= 0 {
				t.Errorf("distance at %v = %v, expected > 0", p, d)
			}
			assertUnit(t, n)
		}
	})

	t.Run("center_coincidence_fallback", func(t *testing.T) {
		d, n := circle.DistanceNormal(physics.Vector2D{X: 1e-7, Y: 0})
		if d != -10 {
			t.Errorf("degenerate distance = %v, expected -10", d)
		}
		if n != (physics.Vector2D{X: 1, Y: 0}) {
			t.Errorf("degenerate normal = %v, expected (1, 0)", n)
		}
	})

	t.Run("placement_distance_ignores_agent_radius", func(t *testing.T) {
		d := circle.PlacementDistance(physics.Vector2D{X: 20, Y: 0}, 5)
		if math.Abs(d-5) > 1e-9 {
			t.Errorf("placement distance = %v, expected 5", d)
		}
	})
}

func TestWall_DistanceNormal(t *testing.T) {
	bounds := Bounds{Width: 900, Height: 600}
	p := physics.Vector2D{X: 100, Y: 50}

	tests := []struct {
		name     string
		side     Side
		expected float64
		normal   physics.Vector2D
	}{
		{"left", SideLeft, 100 - agentRadius, physics.Vector2D{X: 1, Y: 0}},
		{"right", SideRight, 800 - agentRadius, physics.Vector2D{X: -1, Y: 0}},
		{"top", SideTop, 50 - agentRadius, physics.Vector2D{X: 0, Y: 1}},
		{"bottom", SideBottom, 550 - agentRadius, physics.Vector2D{X: 0, Y: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wall := NewWall(tt.side, bounds, agentRadius)
			d, n := wall.DistanceNormal(p)
			if math.Abs(d-tt.expected) > 1e-9 {
				t.Errorf("distance = %v, expected %v", d, tt.expected)
			}
			if n != tt.normal {
				t.Errorf("normal = %v, expected %v", n, tt.normal)
			}
		})
	}
}

func TestWall_PlacementDistance(t *testing.T) {
	bounds := Bounds{Width: 900, Height: 600}
	wall := NewWall(SideRight, bounds, agentRadius)

	d := wall.PlacementDistance(physics.Vector2D{X: 880, Y: 10}, 15)
	if math.Abs(d-5) > 1e-9 {
		t.Errorf("placement distance = %v, expected 5", d)
	}
}

func TestRect_DistanceNormal(t *testing.T) {
	rect := NewRect(physics.Vector2D{X: 0, Y: 0}, 10, 10, agentRadius)

	t.Run("outside_fixture", func(t *testing.T) {
		// Expanded right edge sits at x = 22; d = 40 - 22 = 18.
		d, n := rect.DistanceNormal(physics.Vector2D{X: 40, Y: 0})
		if d <= 0 {
			t.Fatalf("distance = %v, expected > 0", d)
		}
		if math.Abs(d-18) > 1e-9 {
			t.Errorf("distance = %v, expected 18", d)
		}
		if math.Abs(n.X-1) > 1e-9 || math.Abs(n.Y) > 1e-9 {
			t.Errorf("normal = %v, expected (1, 0)", n)
		}
	})

	t.Run("inside_negative_with_unit_normal", func(t *testing.T) {
		points := []physics.Vector2D{
			{X: 5, Y: 5},
			{X: -10, Y: 5},
			{X: 5, Y: 21},
			{X: 0, Y: 0},
		}
		for _, p := range points {
			d, n := rect.DistanceNormal(p)
			if d >= 0 {
				t.Errorf("distance at %v = %v, expected < 0", p, d)
			}
			assertUnit(t, n)
		}
	})

	t.Run("nearest_edge_selects_normal", func(t *testing.T) {
		tests := []struct {
			name   string
			point  physics.Vector2D
			dist   float64
			normal physics.Vector2D
		}{
			// Expanded bounds are [-12, 22] x [-12, 22].
			{"near_left", physics.Vector2D{X: -10, Y: 5}, -2, physics.Vector2D{X: -1, Y: 0}},
			{"near_right", physics.Vector2D{X: 20, Y: 5}, -2, physics.Vector2D{X: 1, Y: 0}},
			{"near_top", physics.Vector2D{X: 5, Y: -9}, -3, physics.Vector2D{X: 0, Y: -1}},
			{"near_bottom", physics.Vector2D{X: 5, Y: 20}, -2, physics.Vector2D{X: 0, Y: 1}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				d, n := rect.DistanceNormal(tt.point)
				if math.Abs(d-tt.dist) > 1e-9 {
					t.Errorf("distance = %v, expected %v", d, tt.dist)
				}
				if n != tt.normal {
					t.Errorf("normal = %v, expected %v", n, tt.normal)
				}
			})
		}
	})

	t.Run("tie_breaks_to_left_first", func(t *testing.T) {
		// Dead center of the expanded square: all four edge distances
		// are equal, so the left edge wins.
		d, n := rect.DistanceNormal(physics.Vector2D{X: 5, Y: 5})
		if math.Abs(d-(-17)) > 1e-9 {
			t.Errorf("distance = %v, expected -17", d)
		}
		if n != (physics.Vector2D{X: -1, Y: 0}) {
			t.Errorf("normal = %v, expected (-1, 0)", n)
		}
	})

	t.Run("placement_distance_zero_inside", func(t *testing.T) {
		if d := rect.PlacementDistance(physics.Vector2D{X: 5, Y: 5}, 2); d != 0 {
			t.Errorf("placement distance = %v, expected 0", d)
		}
		d := rect.PlacementDistance(physics.Vector2D{X: 20, Y: 5}, 2)
		if math.Abs(d-8) > 1e-9 {
			t.Errorf("placement distance = %v, expected 8", d)
		}
	})
}

func TestSegment_DistanceNormal(t *testing.T) {
	seg := NewSegment(physics.Vector2D{X: 0, Y: 0}, physics.Vector2D{X: 100, Y: 0}, agentRadius)

	t.Run("perpendicular_to_midpoint", func(t *testing.T) {
		d, n := seg.DistanceNormal(physics.Vector2D{X: 50, Y: 30})
		if math.Abs(d-(30-agentRadius)) > 1e-9 {
			t.Errorf("distance = %v, expected %v", d, 30-agentRadius)
		}
		// Normal is perpendicular to the segment direction.
		if math.Abs(n.Dot(physics.Vector2D{X: 1, Y: 0})) > 1e-9 {
			t.Errorf("normal %v is not perpendicular to the segment", n)
		}
		assertUnit(t, n)
	})

	t.Run("beyond_endpoint_clamps", func(t *testing.T) {
		d, n := seg.DistanceNormal(physics.Vector2D{X: 103, Y: 4})
		if math.Abs(d-(5-agentRadius)) > 1e-9 {
			t.Errorf("distance = %v, expected %v", d, 5-agentRadius)
		}
		assertUnit(t, n)
	})

	t.Run("zero_length_acts_as_point", func(t *testing.T) {
		point := NewSegment(physics.Vector2D{X: 10, Y: 10}, physics.Vector2D{X: 10, Y: 10}, agentRadius)
		d, n := point.DistanceNormal(physics.Vector2D{X: 10, Y: 40})
		if math.Abs(d-(30-agentRadius)) > 1e-9 {
			t.Errorf("distance = %v, expected %v", d, 30-agentRadius)
		}
		if n != (physics.Vector2D{X: 0, Y: 1}) {
			t.Errorf("normal = %v, expected (0, 1)", n)
		}
	})

	t.Run("placement_distance", func(t *testing.T) {
		d := seg.PlacementDistance(physics.Vector2D{X: 50, Y: 30}, 10)
		if math.Abs(d-20) > 1e-9 {
			t.Errorf("placement distance = %v, expected 20", d)
		}
	})
}

func TestShapeDescriptors(t *testing.T) {
	circle := NewCircle(physics.Vector2D{X: 1, Y: 2}, 3, agentRadius)
	if s := circle.Shape(); s.Kind != KindCircle || s.Radius != 3 {
		t.Errorf("circle descriptor = %+v", s)
	}

	wall := NewWall(SideTop, Bounds{Width: 10, Height: 10}, agentRadius)
	if s := wall.Shape(); s.Kind != KindWall || s.Side != SideTop {
		t.Errorf("wall descriptor = %+v", s)
	}

	rect := NewRect(physics.Vector2D{X: 1, Y: 1}, 4, 5, agentRadius)
	if s := rect.Shape(); s.Kind != KindRect || s.Width != 4 || s.Height != 5 {
		t.Errorf("rect descriptor = %+v", s)
	}

	seg := NewSegment(physics.Vector2D{}, physics.Vector2D{X: 1, Y: 1}, agentRadius)
	if s := seg.Shape(); s.Kind != KindSegment || s.B != (physics.Vector2D{X: 1, Y: 1}) {
		t.Errorf("segment descriptor = %+v", s)
	}
}
