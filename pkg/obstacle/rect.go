// pkg/obstacle/rect.go
package obstacle

import "github.com/opd-ai/go-dotsim/pkg/physics"

// Rect is an axis-aligned rectangular obstacle. Distance queries treat it
// as expanded by the agent radius on all four sides.
type Rect struct {
	Origin  physics.Vector2D // top-left corner
	Width   float64
	Height  float64
	inflate float64
}

// NewRect creates an axis-aligned rectangle obstacle from its top-left
// corner and dimensions.
func NewRect(origin physics.Vector2D, width, height, agentRadius float64) *Rect {
	return &Rect{
		Origin:  origin,
		Width:   width,
		Height:  height,
		inflate: agentRadius,
	}
}

// DistanceNormal implements Obstacle. Inside the expanded rectangle the
// distance is the negated distance to the nearest expanded edge, with the
// normal pointing out through that edge. Ties resolve to the first side
// checked, in left, right, top, bottom order. Outside, the point is
// clamped to the boundary and the normal points from the clamped point
// back to p (zero vector only when p lies exactly on the boundary).
func (r *Rect) DistanceNormal(p physics.Vector2D) (float64, physics.Vector2D) {
	left := r.Origin.X - r.inflate
	right := r.Origin.X + r.Width + r.inflate
	top := r.Origin.Y - r.inflate
	bottom := r.Origin.Y + r.Height + r.inflate

	insideX := left <= p.X && p.X <= right
	insideY := top <= p.Y && p.Y <= bottom

	if insideX && insideY {
		dLeft := p.X - left
		dRight := right - p.X
		dTop := p.Y - top
		dBottom := bottom - p.Y

		dmin := dLeft
		if dRight < dmin {
			dmin = dRight
		}
		if dTop < dmin {
			dmin = dTop
		}
		if dBottom < dmin {
			dmin = dBottom
		}
		switch dmin {
		case dLeft:
			return -dLeft, physics.Vector2D{X: -1, Y: 0}
		case dRight:
			return -dRight, physics.Vector2D{X: 1, Y: 0}
		case dTop:
			return -dTop, physics.Vector2D{X: 0, Y: -1}
		default:
			return -dBottom, physics.Vector2D{X: 0, Y: 1}
		}
	}

	clamped := physics.Vector2D{
		X: physics.Clamp(p.X, left, right),
		Y: physics.Clamp(p.Y, top, bottom),
	}
	offset := p.Sub(clamped)
	return offset.Length(), offset.Normalize()
}

// PlacementDistance implements Obstacle. Points inside the expanded
// rectangle clamp to themselves and report zero clearance.
func (r *Rect) PlacementDistance(p physics.Vector2D, extra float64) float64 {
	clamped := physics.Vector2D{
		X: physics.Clamp(p.X, r.Origin.X-extra, r.Origin.X+r.Width+extra),
		Y: physics.Clamp(p.Y, r.Origin.Y-extra, r.Origin.Y+r.Height+extra),
	}
	return p.Distance(clamped)
}

// Shape implements Obstacle.
func (r *Rect) Shape() ShapeDescriptor {
	return ShapeDescriptor{
		Kind:   KindRect,
		Origin: r.Origin,
		Width:  r.Width,
		Height: r.Height,
	}
}
