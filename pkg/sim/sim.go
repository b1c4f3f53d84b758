// Package sim owns the simulation aggregate: the agent, the obstacle
// scene, the control parameters, and the fixed-timestep integrator that
// advances them. A Simulation is an explicitly owned value; multiple
// independent instances can run side by side.
package sim

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/opd-ai/go-dotsim/pkg/config"
	"github.com/opd-ai/go-dotsim/pkg/control"
	"github.com/opd-ai/go-dotsim/pkg/event"
	"github.com/opd-ai/go-dotsim/pkg/field"
	"github.com/opd-ai/go-dotsim/pkg/physics"
)

// ErrNonFinite is returned when a step is given NaN or infinite input.
// The step rejects it before mutating any state.
var ErrNonFinite = errors.New("non-finite input")

// ErrInvalidTimeStep is returned for a zero or negative dt.
var ErrInvalidTimeStep = errors.New("time step must be positive")

// Integration constants.
const (
	// penetrationIterations is the fixed relaxation budget for pushing
	// the agent out of overlapping obstacles. Three passes let a point
	// pinned in a concave corner converge toward a feasible position;
	// pathological configurations may not fully resolve.
	penetrationIterations = 3
	// clearanceMargin is the extra push past the surface applied when
	// resolving a penetration.
	clearanceMargin = 0.1
)

// Agent is the point agent's mutable state. It is mutated once per step
// by the integrator and nowhere else.
type Agent struct {
	Position physics.Vector2D
	Velocity physics.Vector2D
	Radius   float64
}

// Simulation aggregates one agent, one scene, and the active control law.
// All mutating entry points hold the internal mutex for the full call, so
// a caller that adds a render or input goroutine gets the documented
// "one mutex around the whole step" contract for free.
type Simulation struct {
	mu sync.Mutex

	cfg    *config.SimConfig
	scene  *field.Scene
	agent  Agent
	params control.Params
	mode   control.Mode
	rng    *rand.Rand
	bus    *event.Bus

	tick      uint64
	time      float64
	inContact bool
}

// New creates a simulation from the given configuration and generates the
// initial scene. A zero seed selects a random layout; any other seed makes
// scene generation reproducible.
func New(cfg *config.SimConfig) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}

	seed := uint64(cfg.Scene.Seed)
	if cfg.Scene.Seed == 0 {
		seed = rand.Uint64()
	}

	s := &Simulation{
		cfg:    cfg,
		params: cfg.Params(),
		mode:   control.SpeedScaling,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		bus:    event.NewBus(),
	}
	s.agent.Radius = cfg.AgentRadius
	s.resetSceneLocked()
	return s, nil
}

// EventBus returns the simulation's event bus.
func (s *Simulation) EventBus() *event.Bus {
	return s.bus
}

// Scene returns the current scene. The scene is replaced wholesale by
// ResetScene and never mutated in place, so holding a reference across
// steps is safe.
func (s *Simulation) Scene() *field.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene
}

// Agent returns a snapshot of the agent state.
func (s *Simulation) Agent() Agent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agent
}

// Params returns a snapshot of the control parameters.
func (s *Simulation) Params() control.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// Mode returns the active control law.
func (s *Simulation) Mode() control.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Tick returns the number of completed steps.
func (s *Simulation) Tick() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

// Time returns the accumulated simulation time in seconds.
func (s *Simulation) Time() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.time
}

// SetMode selects the control law applied on subsequent steps.
func (s *Simulation) SetMode(m control.Mode) {
	s.mu.Lock()
	previous := s.mode
	s.mode = m
	s.mu.Unlock()

	if previous != m {
		s.bus.Publish(event.NewModeEvent(s, int(previous), int(m)))
	}
}

// SetStopDistance forwards to the validated parameter setter and returns
// the accepted stop and slow distances.
func (s *Simulation) SetStopDistance(v float64) (stop, slow float64) {
	s.mu.Lock()
	stop, slow = s.params.SetStopDistance(v)
	gain := s.params.RepulsionGain
	s.mu.Unlock()

	s.bus.Publish(event.NewParamsEvent(s, stop, slow, gain))
	return stop, slow
}

// SetSlowDistance forwards to the validated parameter setter and returns
// the accepted value.
func (s *Simulation) SetSlowDistance(v float64) float64 {
	s.mu.Lock()
	slow := s.params.SetSlowDistance(v)
	stop := s.params.StopDistance
	gain := s.params.RepulsionGain
	s.mu.Unlock()

	s.bus.Publish(event.NewParamsEvent(s, stop, slow, gain))
	return slow
}

// SetRepulsionGain forwards to the validated parameter setter and returns
// the accepted value.
func (s *Simulation) SetRepulsionGain(v float64) float64 {
	s.mu.Lock()
	gain := s.params.SetRepulsionGain(v)
	stop := s.params.StopDistance
	slow := s.params.SlowDistance
	s.mu.Unlock()

	s.bus.Publish(event.NewParamsEvent(s, stop, slow, gain))
	return gain
}

// NearestObstacleDistance returns the signed distance from the agent to
// the closest obstacle. Read-only; used for HUD and telemetry.
func (s *Simulation) NearestObstacleDistance() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, _ := s.scene.Nearest(s.agent.Position)
	return d
}

// Step advances the simulation by one fixed timestep. cmdDir is the
// commanded acceleration direction (it is normalized internally, so only
// its direction matters; the zero vector means no input). Non-finite
// input or a non-positive dt is rejected before any state changes.
func (s *Simulation) Step(cmdDir physics.Vector2D, dt float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !cmdDir.IsFinite() {
		return fmt.Errorf("%w: command direction (%g, %g)", ErrNonFinite, cmdDir.X, cmdDir.Y)
	}
	if math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: dt", ErrNonFinite)
	}
	if dt <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidTimeStep, dt)
	}

	// Integrate the commanded acceleration into the velocity.
	cmd := cmdDir.Normalize().Scale(s.params.Acceleration)
	vel := s.agent.Velocity.Add(cmd.Scale(dt))

	// Soft friction when there is no input, so the agent coasts to rest.
	if cmd.Length() < 1e-6 {
		vel = vel.Scale(s.cfg.Friction)
	}

	// Field query at the pre-move position feeds the active control law.
	sample := s.scene.Repulsion(
		s.agent.Position,
		s.params.RepulsionGain,
		s.params.RepulsionRange,
		s.params.MaxRepulsion,
	)
	next := control.Apply(s.mode, s.scene, s.agent.Position, vel, sample, &s.params)

	pos := s.agent.Position.Add(next.Scale(dt))
	pos = s.correctPenetration(pos)

	// Belt-and-suspenders clamp against boundary drift.
	pos.X = physics.Clamp(pos.X, s.agent.Radius, s.cfg.WorldWidth-s.agent.Radius)
	pos.Y = physics.Clamp(pos.Y, s.agent.Radius, s.cfg.WorldHeight-s.agent.Radius)

	s.agent.Position = pos
	s.agent.Velocity = next
	s.tick++
	s.time += dt

	s.publishContactTransition()
	return nil
}

// correctPenetration runs the fixed-budget relaxation that pushes a
// penetrating position out along each offending obstacle's normal. It is
// a relaxation, not an exact solve; a position that is already free is
// returned unchanged.
func (s *Simulation) correctPenetration(p physics.Vector2D) physics.Vector2D {
	for i := 0; i < penetrationIterations; i++ {
		for _, obs := range s.scene.Obstacles {
			d, n := obs.DistanceNormal(p)
			if d < 0 {
				p = p.Add(n.Scale(-d + clearanceMargin))
			}
		}
	}
	return p
}

// publishContactTransition emits ContactEntered/ContactExited when the
// agent crosses the stop-distance threshold. Called with the lock held;
// handlers must not call back into the simulation.
func (s *Simulation) publishContactTransition() {
	d, _ := s.scene.Nearest(s.agent.Position)
	contact := d < s.params.StopDistance
	if contact == s.inContact {
		return
	}
	s.inContact = contact

	eventType := event.ContactExited
	if contact {
		eventType = event.ContactEntered
	}
	s.bus.Publish(event.NewContactEvent(eventType, s, d))
}
