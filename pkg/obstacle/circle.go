// pkg/obstacle/circle.go
package obstacle

import "github.com/opd-ai/go-dotsim/pkg/physics"

// Circle is a circular obstacle expanded by the agent radius.
type Circle struct {
	Center  physics.Vector2D
	Radius  float64
	inflate float64
}

// NewCircle creates a circle obstacle whose distance queries are expanded
// by agentRadius.
func NewCircle(center physics.Vector2D, radius, agentRadius float64) *Circle {
	return &Circle{
		Center:  center,
		Radius:  radius,
		inflate: agentRadius,
	}
}

// DistanceNormal implements Obstacle. When the query point coincides with
// the center (closer than 1e-6) there is no meaningful normal; the fallback
// is -Radius with a fixed unit normal along +X.
func (c *Circle) DistanceNormal(p physics.Vector2D) (float64, physics.Vector2D) {
	offset := p.Sub(c.Center)
	dist := offset.Length()
	if dist < 1e-6 {
		return -c.Radius, physics.Vector2D{X: 1, Y: 0}
	}
	return dist - (c.Radius + c.inflate), offset.Scale(1 / dist)
}

// PlacementDistance implements Obstacle.
func (c *Circle) PlacementDistance(p physics.Vector2D, extra float64) float64 {
	return p.Distance(c.Center) - (c.Radius + extra)
}

// Shape implements Obstacle.
func (c *Circle) Shape() ShapeDescriptor {
	return ShapeDescriptor{
		Kind:   KindCircle,
		Center: c.Center,
		Radius: c.Radius,
	}
}
