// pkg/sim/scene.go
package sim

import (
	"github.com/opd-ai/go-dotsim/pkg/event"
	"github.com/opd-ai/go-dotsim/pkg/field"
	"github.com/opd-ai/go-dotsim/pkg/obstacle"
	"github.com/opd-ai/go-dotsim/pkg/physics"
)

// Reference world the fixed obstacle layout was authored for. Layout
// coordinates scale with the configured world size.
const (
	referenceWidth  = 900.0
	referenceHeight = 600.0
)

// circleEdgeMargin keeps randomly placed circles away from the walls.
const circleEdgeMargin = 50.0

// agentEdgeMargin keeps the agent spawn away from the walls.
const agentEdgeMargin = 10.0

// ResetScene regenerates the obstacle layout and re-places the agent.
// The previous scene is replaced wholesale.
func (s *Simulation) ResetScene() {
	s.mu.Lock()
	ev := s.resetSceneLocked()
	s.mu.Unlock()

	s.bus.Publish(ev)
}

// resetSceneLocked rebuilds the scene: four boundary walls, the fixed
// rectangle and segment layout, up to the configured number of random
// circles, and finally the agent placement. It returns the scene event
// for the caller to publish once the lock is released.
func (s *Simulation) resetSceneLocked() *event.SceneEvent {
	bounds := obstacle.Bounds{Width: s.cfg.WorldWidth, Height: s.cfg.WorldHeight}
	r := s.agent.Radius

	obstacles := []obstacle.Obstacle{
		obstacle.NewWall(obstacle.SideLeft, bounds, r),
		obstacle.NewWall(obstacle.SideRight, bounds, r),
		obstacle.NewWall(obstacle.SideTop, bounds, r),
		obstacle.NewWall(obstacle.SideBottom, bounds, r),
	}
	if s.cfg.Scene.FixedRects {
		obstacles = append(obstacles, s.fixedRects(r)...)
	}
	if s.cfg.Scene.FixedSegments {
		obstacles = append(obstacles, s.fixedSegments(r)...)
	}

	s.scene = field.NewScene(bounds, obstacles)
	s.spawnRandomCircles()
	s.placeAgent()

	return event.NewSceneEvent(s, len(s.scene.Obstacles), s.agent.Position.X, s.agent.Position.Y)
}

// scalePoint maps a reference-layout coordinate onto the configured world.
func (s *Simulation) scalePoint(x, y float64) physics.Vector2D {
	return physics.Vector2D{
		X: x * s.cfg.WorldWidth / referenceWidth,
		Y: y * s.cfg.WorldHeight / referenceHeight,
	}
}

// fixedRects returns the table-like rectangle blocks of the layout.
func (s *Simulation) fixedRects(agentRadius float64) []obstacle.Obstacle {
	sx := s.cfg.WorldWidth / referenceWidth
	sy := s.cfg.WorldHeight / referenceHeight
	return []obstacle.Obstacle{
		obstacle.NewRect(s.scalePoint(120, 380), 240*sx, 40*sy, agentRadius),
		obstacle.NewRect(s.scalePoint(520, 120), 220*sx, 40*sy, agentRadius),
		obstacle.NewRect(s.scalePoint(420, 260), 40*sx, 200*sy, agentRadius),
	}
}

// fixedSegments returns the thin rails and diagonal lines of the layout.
func (s *Simulation) fixedSegments(agentRadius float64) []obstacle.Obstacle {
	return []obstacle.Obstacle{
		obstacle.NewSegment(s.scalePoint(80, 140), s.scalePoint(300, 140), agentRadius),
		obstacle.NewSegment(s.scalePoint(600, 460), s.scalePoint(820, 520), agentRadius),
		obstacle.NewSegment(s.scalePoint(200, 50), s.scalePoint(400, 250), agentRadius),
		obstacle.NewSegment(s.scalePoint(650, 300), s.scalePoint(750, 100), agentRadius),
		obstacle.NewSegment(s.scalePoint(100, 480), s.scalePoint(350, 350), agentRadius),
	}
}

// spawnRandomCircles places up to the configured number of random circles,
// each keeping the configured clearance from every obstacle already in the
// scene. Each circle gets a bounded number of attempts; when one cannot be
// placed the remaining ones are skipped. This is an expected, silent
// outcome, not an error.
func (s *Simulation) spawnRandomCircles() {
	sc := s.cfg.Scene
	for i := 0; i < sc.RandomCircles; i++ {
		placed := false
		for attempt := 0; attempt < sc.CircleAttempts; attempt++ {
			radius := sc.MinCircleRadius + s.rng.Float64()*(sc.MaxCircleRadius-sc.MinCircleRadius)

			spanX := s.cfg.WorldWidth - 2*(radius+circleEdgeMargin)
			spanY := s.cfg.WorldHeight - 2*(radius+circleEdgeMargin)
			if spanX <= 0 || spanY <= 0 {
				continue
			}
			center := physics.Vector2D{
				X: radius + circleEdgeMargin + s.rng.Float64()*spanX,
				Y: radius + circleEdgeMargin + s.rng.Float64()*spanY,
			}

			if s.scene.Clearance(center, radius) >= sc.Clearance {
				s.scene.Obstacles = append(s.scene.Obstacles,
					obstacle.NewCircle(center, radius, s.agent.Radius))
				placed = true
				break
			}
		}
		if !placed {
			break
		}
	}
}

// placeAgent finds a collision-free spawn position for the agent within
// the attempt budget, falling back to the world center when every attempt
// fails.
func (s *Simulation) placeAgent() {
	sc := s.cfg.Scene
	margin := s.agent.Radius + agentEdgeMargin

	for attempt := 0; attempt < sc.AgentAttempts; attempt++ {
		spanX := s.cfg.WorldWidth - 2*margin
		spanY := s.cfg.WorldHeight - 2*margin
		if spanX <= 0 || spanY <= 0 {
			break
		}
		p := physics.Vector2D{
			X: margin + s.rng.Float64()*spanX,
			Y: margin + s.rng.Float64()*spanY,
		}
		if s.scene.Clearance(p, s.agent.Radius) >= sc.Clearance {
			s.agent.Position = p
			return
		}
	}

	// Deterministic fallback when no clear spot was found.
	s.agent.Position = physics.Vector2D{
		X: s.cfg.WorldWidth * 0.5,
		Y: s.cfg.WorldHeight * 0.5,
	}
}
