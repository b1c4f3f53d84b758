// pkg/config/env_config.go
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variable names recognized by ApplyEnvironmentOverrides.
const (
	EnvWorldWidth    = "DOTSIM_WORLD_WIDTH"
	EnvWorldHeight   = "DOTSIM_WORLD_HEIGHT"
	EnvTimeStep      = "DOTSIM_TIME_STEP"
	EnvAgentRadius   = "DOTSIM_AGENT_RADIUS"
	EnvSeed          = "DOTSIM_SEED"
	EnvRandomCircles = "DOTSIM_RANDOM_CIRCLES"
)

// ApplyEnvironmentOverrides overlays DOTSIM_* environment variables onto
// an already-loaded configuration and re-validates the result. Unset
// variables leave the corresponding field untouched.
func ApplyEnvironmentOverrides(c *SimConfig) error {
	if err := overrideFloat(EnvWorldWidth, &c.WorldWidth); err != nil {
		return err
	}
	if err := overrideFloat(EnvWorldHeight, &c.WorldHeight); err != nil {
		return err
	}
	if err := overrideFloat(EnvTimeStep, &c.TimeStep); err != nil {
		return err
	}
	if err := overrideFloat(EnvAgentRadius, &c.AgentRadius); err != nil {
		return err
	}
	if err := overrideInt64(EnvSeed, &c.Scene.Seed); err != nil {
		return err
	}
	if err := overrideInt(EnvRandomCircles, &c.Scene.RandomCircles); err != nil {
		return err
	}

	if err := c.Validate(); err != nil {
		return fmt.Errorf("environment overrides produced invalid config: %w", err)
	}
	return nil
}

// overrideFloat replaces *target with the parsed value of the named
// environment variable, if set.
func overrideFloat(name string, target *float64) error {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", name, err)
	}
	*target = v
	return nil
}

// overrideInt replaces *target with the parsed value of the named
// environment variable, if set.
func overrideInt(name string, target *int) error {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", name, err)
	}
	*target = v
	return nil
}

// overrideInt64 replaces *target with the parsed value of the named
// environment variable, if set.
func overrideInt64(name string, target *int64) error {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", name, err)
	}
	*target = v
	return nil
}
