// Package obstacle defines the static obstacle variants of the scene and
// the signed-distance capability the control laws are built on. Every
// variant reports a distance already expanded by the agent radius supplied
// at construction, so a negative distance means body-to-body penetration.
package obstacle

import "github.com/opd-ai/go-dotsim/pkg/physics"

// FarDistance is returned for queries that cannot resolve to a surface,
// such as a wall with an unknown side. It is large enough to never win a
// nearest-obstacle scan.
const FarDistance = 1e9

// Bounds describes the world rectangle the scene lives in. The origin is
// the top-left corner; Y grows downward.
type Bounds struct {
	Width  float64
	Height float64
}

// Obstacle is the shared capability set of all obstacle variants.
type Obstacle interface {
	// DistanceNormal returns the signed distance from p to the obstacle
	// surface, expanded by the agent radius baked in at construction,
	// and the unit normal pointing from the nearest surface point toward
	// free space. Negative distance means penetration.
	DistanceNormal(p physics.Vector2D) (float64, physics.Vector2D)

	// PlacementDistance returns the unexpanded clearance from p to the
	// obstacle, with the body expanded by extra instead of the agent
	// radius. Used only for placement checks during scene generation;
	// it produces no normal.
	PlacementDistance(p physics.Vector2D, extra float64) float64

	// Shape returns a geometry descriptor for renderers and telemetry.
	Shape() ShapeDescriptor
}

// ShapeKind identifies the concrete geometry of a ShapeDescriptor.
type ShapeKind int

const (
	KindCircle ShapeKind = iota
	KindWall
	KindRect
	KindSegment
)

// ShapeDescriptor carries the raw geometry of an obstacle without the
// agent-radius expansion. Only the fields relevant to Kind are set.
type ShapeDescriptor struct {
	Kind   ShapeKind
	Center physics.Vector2D // circle
	Radius float64          // circle
	Origin physics.Vector2D // rect top-left
	Width  float64          // rect
	Height float64          // rect
	A      physics.Vector2D // segment endpoints
	B      physics.Vector2D
	Side   Side // wall
}
