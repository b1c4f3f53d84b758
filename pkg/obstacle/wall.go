// pkg/obstacle/wall.go
package obstacle

import "github.com/opd-ai/go-dotsim/pkg/physics"

// Side selects which half-plane of the world rectangle a wall bounds.
type Side int

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Wall is one of the four axis-aligned half-planes bounding the scene.
// Its normal is the fixed inward unit vector for that side.
type Wall struct {
	Side    Side
	bounds  Bounds
	inflate float64
}

// NewWall creates a boundary wall for the given side of the world.
func NewWall(side Side, bounds Bounds, agentRadius float64) *Wall {
	return &Wall{
		Side:    side,
		bounds:  bounds,
		inflate: agentRadius,
	}
}

// DistanceNormal implements Obstacle. The distance is the perpendicular
// distance from p to the boundary line offset inward by the agent radius.
func (w *Wall) DistanceNormal(p physics.Vector2D) (float64, physics.Vector2D) {
	switch w.Side {
	case SideLeft:
		return p.X - w.inflate, physics.Vector2D{X: 1, Y: 0}
	case SideRight:
		return (w.bounds.Width - p.X) - w.inflate, physics.Vector2D{X: -1, Y: 0}
	case SideTop:
		return p.Y - w.inflate, physics.Vector2D{X: 0, Y: 1}
	case SideBottom:
		return (w.bounds.Height - p.Y) - w.inflate, physics.Vector2D{X: 0, Y: -1}
	default:
		return FarDistance, physics.Vector2D{}
	}
}

// PlacementDistance implements Obstacle.
func (w *Wall) PlacementDistance(p physics.Vector2D, extra float64) float64 {
	switch w.Side {
	case SideLeft:
		return p.X - extra
	case SideRight:
		return (w.bounds.Width - p.X) - extra
	case SideTop:
		return p.Y - extra
	case SideBottom:
		return (w.bounds.Height - p.Y) - extra
	default:
		return FarDistance
	}
}

// Shape implements Obstacle.
func (w *Wall) Shape() ShapeDescriptor {
	return ShapeDescriptor{
		Kind: KindWall,
		Side: w.Side,
	}
}
