// pkg/obstacle/segment.go
package obstacle

import "github.com/opd-ai/go-dotsim/pkg/physics"

// Segment is a thin line-segment obstacle between two endpoints. A
// zero-length segment degrades to a point obstacle at A.
type Segment struct {
	A       physics.Vector2D
	B       physics.Vector2D
	inflate float64
}

// NewSegment creates a line segment obstacle from A to B.
func NewSegment(a, b physics.Vector2D, agentRadius float64) *Segment {
	return &Segment{
		A:       a,
		B:       b,
		inflate: agentRadius,
	}
}

// closest returns the point on the segment nearest to p, with the
// projection parameter clamped to [0, 1].
func (s *Segment) closest(p physics.Vector2D) physics.Vector2D {
	ab := s.B.Sub(s.A)
	lenSq := ab.LengthSquared()
	if lenSq < 1e-8 {
		return s.A
	}
	t := physics.Clamp(p.Sub(s.A).Dot(ab)/lenSq, 0, 1)
	return s.A.Add(ab.Scale(t))
}

// DistanceNormal implements Obstacle. The segment behaves like a point
// obstacle at the clamped projection of p, with the distance reduced by
// the agent radius.
func (s *Segment) DistanceNormal(p physics.Vector2D) (float64, physics.Vector2D) {
	offset := p.Sub(s.closest(p))
	return offset.Length() - s.inflate, offset.Normalize()
}

// PlacementDistance implements Obstacle.
func (s *Segment) PlacementDistance(p physics.Vector2D, extra float64) float64 {
	return p.Distance(s.closest(p)) - extra
}

// Shape implements Obstacle.
func (s *Segment) Shape() ShapeDescriptor {
	return ShapeDescriptor{
		Kind: KindSegment,
		A:    s.A,
		B:    s.B,
	}
}
