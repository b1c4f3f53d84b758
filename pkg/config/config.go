// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/opd-ai/go-dotsim/pkg/control"
)

// SimConfig contains configuration for a dot simulation
type SimConfig struct {
	WorldWidth  float64       `json:"worldWidth"`
	WorldHeight float64       `json:"worldHeight"`
	TimeStep    float64       `json:"timeStep"`
	AgentRadius float64       `json:"agentRadius"`
	Friction    float64       `json:"friction"`
	Control     ControlConfig `json:"control"`
	Scene       SceneConfig   `json:"scene"`
}

// ControlConfig contains the control-law thresholds and limits
type ControlConfig struct {
	StopDistance   float64 `json:"stopDistance"`
	SlowDistance   float64 `json:"slowDistance"`
	RepulsionGain  float64 `json:"repulsionGain"`
	RepulsionRange float64 `json:"repulsionRange"`
	MaxRepulsion   float64 `json:"maxRepulsion"`
	MaxSpeed       float64 `json:"maxSpeed"`
	Acceleration   float64 `json:"acceleration"`
}

// SceneConfig contains the obstacle-generation settings
type SceneConfig struct {
	RandomCircles   int     `json:"randomCircles"`
	MinCircleRadius float64 `json:"minCircleRadius"`
	MaxCircleRadius float64 `json:"maxCircleRadius"`
	Clearance       float64 `json:"clearance"`
	CircleAttempts  int     `json:"circleAttempts"`
	AgentAttempts   int     `json:"agentAttempts"`
	Seed            int64   `json:"seed"`
	FixedRects      bool    `json:"fixedRects"`
	FixedSegments   bool    `json:"fixedSegments"`
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*SimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config SimConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *SimConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the reference-scenario configuration: a 900x600
// world at 60 steps per second with an agent of radius 12.
func DefaultConfig() *SimConfig {
	return &SimConfig{
		WorldWidth:  900,
		WorldHeight: 600,
		TimeStep:    1.0 / 60.0,
		AgentRadius: 12,
		Friction:    0.92,
		Control: ControlConfig{
			StopDistance:   1.0,
			SlowDistance:   30.0,
			RepulsionGain:  6000.0,
			RepulsionRange: 160.0,
			MaxRepulsion:   600.0,
			MaxSpeed:       240.0,
			Acceleration:   900.0,
		},
		Scene: SceneConfig{
			RandomCircles:   6,
			MinCircleRadius: 20,
			MaxCircleRadius: 60,
			Clearance:       2.0,
			CircleAttempts:  200,
			AgentAttempts:   500,
			FixedRects:      true,
			FixedSegments:   true,
		},
	}
}

// Validate checks the configuration for values the simulation cannot run
// with. It returns the first problem found.
func (c *SimConfig) Validate() error {
	if c.WorldWidth <= 0 || c.WorldHeight <= 0 {
		return fmt.Errorf("world dimensions must be positive, got %gx%g", c.WorldWidth, c.WorldHeight)
	}
	if c.TimeStep <= 0 {
		return fmt.Errorf("time step must be positive, got %g", c.TimeStep)
	}
	if c.AgentRadius <= 0 {
		return fmt.Errorf("agent radius must be positive, got %g", c.AgentRadius)
	}
	if c.Friction <= 0 || c.Friction > 1 {
		return fmt.Errorf("friction must be in (0, 1], got %g", c.Friction)
	}
	if c.Control.StopDistance < control.MinStopDistance {
		return fmt.Errorf("stop distance must be at least %g, got %g",
			control.MinStopDistance, c.Control.StopDistance)
	}
	if c.Control.SlowDistance < c.Control.StopDistance+control.SlowStopMargin {
		return fmt.Errorf("slow distance %g must be at least stop distance + %g",
			c.Control.SlowDistance, control.SlowStopMargin)
	}
	if c.Control.RepulsionGain < 0 {
		return fmt.Errorf("repulsion gain must be non-negative, got %g", c.Control.RepulsionGain)
	}
	if c.Control.RepulsionRange <= 0 || c.Control.MaxRepulsion <= 0 {
		return fmt.Errorf("repulsion range and cap must be positive")
	}
	if c.Control.MaxSpeed <= 0 || c.Control.Acceleration <= 0 {
		return fmt.Errorf("max speed and acceleration must be positive")
	}
	if c.Scene.RandomCircles < 0 {
		return fmt.Errorf("random circle count must be non-negative, got %d", c.Scene.RandomCircles)
	}
	if c.Scene.MinCircleRadius <= 0 || c.Scene.MaxCircleRadius < c.Scene.MinCircleRadius {
		return fmt.Errorf("circle radius range [%g, %g] is invalid",
			c.Scene.MinCircleRadius, c.Scene.MaxCircleRadius)
	}
	if c.Scene.Clearance < 0 {
		return fmt.Errorf("clearance must be non-negative, got %g", c.Scene.Clearance)
	}
	return nil
}

// Params converts the control section into a control.Params value.
func (c *SimConfig) Params() control.Params {
	return control.Params{
		StopDistance:   c.Control.StopDistance,
		SlowDistance:   c.Control.SlowDistance,
		RepulsionGain:  c.Control.RepulsionGain,
		RepulsionRange: c.Control.RepulsionRange,
		MaxRepulsion:   c.Control.MaxRepulsion,
		MaxSpeed:       c.Control.MaxSpeed,
		Acceleration:   c.Control.Acceleration,
	}
}
