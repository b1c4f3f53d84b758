// Package control implements the four collision-avoidance control laws
// that turn the current velocity and distance-field data into a corrected,
// collision-aware velocity. The laws are stateless; the active one is
// selected per step by Mode and nothing carries over between modes.
package control

import (
	"fmt"

	"github.com/opd-ai/go-dotsim/pkg/field"
	"github.com/opd-ai/go-dotsim/pkg/physics"
)

// Mode selects which control law runs each step.
type Mode int

const (
	SpeedScaling Mode = iota + 1
	RepulsiveField
	ProjectNormal
	DampedBarrier
)

// String returns the display label of the mode.
func (m Mode) String() string {
	switch m {
	case SpeedScaling:
		return "Speed Scaling"
	case RepulsiveField:
		return "Repulsive Field"
	case ProjectNormal:
		return "Project Normal"
	case DampedBarrier:
		return "Damped Barrier"
	default:
		return "Unknown"
	}
}

// ModeFromString parses a mode name as used on the command line.
func ModeFromString(s string) (Mode, error) {
	switch s {
	case "speed-scaling", "1":
		return SpeedScaling, nil
	case "repulsive-field", "2":
		return RepulsiveField, nil
	case "project-normal", "3":
		return ProjectNormal, nil
	case "damped-barrier", "4":
		return DampedBarrier, nil
	default:
		return 0, fmt.Errorf("unknown control mode %q", s)
	}
}

// slowFactor maps a signed distance onto [0, 1]: 0 at the stop threshold
// and below, 1 at the slow threshold and beyond. When the two thresholds
// coincide the denominator degrades to a tiny epsilon instead of dividing
// by zero.
func slowFactor(d float64, p *Params) float64 {
	den := p.SlowDistance - p.StopDistance
	if den < 1e-6 {
		den = 1e-6
	}
	return physics.Clamp((d-p.StopDistance)/den, 0, 1)
}

// Apply runs the control law selected by mode on velocity v at position
// pos, using the distance-field sample taken at pos, and returns the
// corrected velocity. The result is always clamped to p.MaxSpeed by
// normalizing and rescaling.
func Apply(mode Mode, sc *field.Scene, pos, v physics.Vector2D, sample field.Sample, p *Params) physics.Vector2D {
	next := v

	switch mode {
	case SpeedScaling:
		// Scale the whole velocity down as the nearest surface approaches.
		next = v.Scale(slowFactor(sample.MinDistance, p))

	case RepulsiveField:
		// Add the summed repulsion straight onto the velocity.
		next = v.Add(sample.Repulsion)

	case ProjectNormal:
		// Cancel the inward velocity component against every obstacle
		// within the slow distance, in scene order. Each projection sees
		// the velocity already corrected by the previous ones, which is
		// what keeps concave corners sealed when two surfaces both claim
		// an inward component.
		for _, obs := range sc.Obstacles {
			d, n := obs.DistanceNormal(pos)
			if d < p.SlowDistance {
				into := -next.Dot(n)
				if into > 0 {
					next = next.Add(n.Scale(into))
				}
			}
		}

	case DampedBarrier:
		// Throttle only the component along the nearest obstacle's
		// normal; tangential sliding stays at full speed.
		s := slowFactor(sample.MinDistance, p)
		vn := sample.MinNormal.Scale(v.Dot(sample.MinNormal))
		vt := v.Sub(vn)
		next = vn.Scale(s).Add(vt)
	}

	if next.Length() > p.MaxSpeed {
		next = next.Normalize().Scale(p.MaxSpeed)
	}
	return next
}
