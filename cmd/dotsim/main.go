// cmd/dotsim/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/opd-ai/go-dotsim/pkg/config"
	"github.com/opd-ai/go-dotsim/pkg/control"
	"github.com/opd-ai/go-dotsim/pkg/event"
	"github.com/opd-ai/go-dotsim/pkg/logging"
	"github.com/opd-ai/go-dotsim/pkg/physics"
	"github.com/opd-ai/go-dotsim/pkg/render"
	"github.com/opd-ai/go-dotsim/pkg/sim"
	"github.com/opd-ai/go-dotsim/pkg/telemetry"
)

// waypointReachDistance is how close the scripted driver gets to a
// waypoint before steering to the next one.
const waypointReachDistance = 40.0

var (
	configPath    string
	modeName      string
	steps         int
	telemetryPath string
	showRender    bool
	renderEvery   int
)

var rootCmd = &cobra.Command{
	Use:   "dotsim",
	Short: "Collision-aware dot simulation driver",
	Long: "dotsim runs a point agent through a scene of static obstacles " +
		"under one of four collision-avoidance control laws and records " +
		"per-step telemetry.",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scripted simulation",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimulation(cmd.Context())
	},
}

var defaultConfigCmd = &cobra.Command{
	Use:   "defaultconfig",
	Short: "Write the default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SaveConfig(config.DefaultConfig(), configPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote default configuration to %s\n", configPath)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json", "path to configuration file")
	runCmd.Flags().StringVar(&modeName, "mode", "speed-scaling",
		"control law: speed-scaling, repulsive-field, project-normal, damped-barrier")
	runCmd.Flags().IntVar(&steps, "steps", 3600, "number of fixed timesteps to simulate")
	runCmd.Flags().StringVar(&telemetryPath, "telemetry", "logs/vel_dist.csv", "telemetry CSV output path")
	runCmd.Flags().BoolVar(&showRender, "render", false, "draw ASCII frames to the terminal")
	runCmd.Flags().IntVar(&renderEvery, "render-every", 6, "steps between rendered frames")
	rootCmd.AddCommand(runCmd, defaultConfigCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig loads the configuration file, falling back to defaults when
// it does not exist, and applies environment overrides.
func loadConfig(ctx context.Context, logger *logging.Logger) (*config.SimConfig, error) {
	var cfg *config.SimConfig

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using defaults",
			"config_path", configPath,
		)
		cfg = config.DefaultConfig()
	} else {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
	}

	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runSimulation drives a simulation through a scripted waypoint tour for
// the configured number of steps, recording telemetry each step.
func runSimulation(ctx context.Context) error {
	logger := logging.NewLogger()

	cfg, err := loadConfig(ctx, logger)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err)
		return err
	}

	mode, err := control.ModeFromString(modeName)
	if err != nil {
		return err
	}

	simulation, err := sim.New(cfg)
	if err != nil {
		return err
	}
	simulation.SetMode(mode)

	recorder, err := telemetry.NewFileRecorder(telemetryPath)
	if err != nil {
		logger.Error(ctx, "Failed to create telemetry recorder", err)
		return err
	}
	defer recorder.Close()

	ctx = logging.WithCorrelationID(ctx, recorder.RunID())
	subscribeEventLogging(ctx, simulation.EventBus(), logger)

	var renderer render.Renderer = render.NewNullRenderer()
	if showRender {
		renderer = render.NewTerminalRenderer(90, 30, os.Stdout)
	}

	logger.Info(ctx, "Starting simulation",
		"mode", mode.String(),
		"steps", steps,
		"world_width", cfg.WorldWidth,
		"world_height", cfg.WorldHeight,
	)

	waypoints := tourWaypoints(cfg)
	current := 0

	for step := 0; step < steps; step++ {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Simulation interrupted", "completed_steps", step)
			return nil
		default:
		}

		agent := simulation.Agent()
		if agent.Position.Distance(waypoints[current]) < waypointReachDistance {
			current = (current + 1) % len(waypoints)
		}
		dir := waypoints[current].Sub(agent.Position).Normalize()

		if err := simulation.Step(dir, cfg.TimeStep); err != nil {
			logger.Error(ctx, "Simulation step failed", err, "step", step)
			return err
		}

		agent = simulation.Agent()
		dist := simulation.NearestObstacleDistance()
		cmdSpeed := dir.Length() * cfg.Control.Acceleration
		if err := recorder.Record(
			simulation.Time(),
			int(simulation.Mode()),
			dist,
			agent.Velocity.Length(),
			cmdSpeed,
			agent.Position,
		); err != nil {
			return err
		}

		if showRender && step%renderEvery == 0 {
			drawFrame(renderer, simulation, dist)
			time.Sleep(time.Duration(float64(renderEvery) * cfg.TimeStep * float64(time.Second)))
		}
	}

	logger.Info(ctx, "Simulation finished",
		"steps", steps,
		"sim_time", simulation.Time(),
		"telemetry_path", telemetryPath,
	)
	return nil
}

// tourWaypoints returns the scripted target positions, one near each
// world corner.
func tourWaypoints(cfg *config.SimConfig) []physics.Vector2D {
	return []physics.Vector2D{
		{X: cfg.WorldWidth * 0.15, Y: cfg.WorldHeight * 0.15},
		{X: cfg.WorldWidth * 0.85, Y: cfg.WorldHeight * 0.15},
		{X: cfg.WorldWidth * 0.85, Y: cfg.WorldHeight * 0.85},
		{X: cfg.WorldWidth * 0.15, Y: cfg.WorldHeight * 0.85},
	}
}

// drawFrame renders one frame of the current simulation state.
func drawFrame(renderer render.Renderer, simulation *sim.Simulation, dist float64) {
	agent := simulation.Agent()
	mode := simulation.Mode()
	params := simulation.Params()

	renderer.Clear()
	renderer.RenderScene(simulation.Scene())
	renderer.RenderAgent(agent.Position, agent.Radius)
	renderer.RenderHUD(render.HUD{
		ModeID:    int(mode),
		ModeLabel: mode.String(),
		Distance:  dist,
		Contact:   dist < params.StopDistance,
	})
	renderer.Present()
}

// subscribeEventLogging forwards simulation events to the structured log.
func subscribeEventLogging(ctx context.Context, bus *event.Bus, logger *logging.Logger) {
	bus.Subscribe(event.SceneReset, func(e event.Event) {
		if se, ok := e.(*event.SceneEvent); ok {
			logger.Info(ctx, "Scene regenerated",
				"obstacle_count", se.ObstacleCount,
				"spawn_x", se.SpawnX,
				"spawn_y", se.SpawnY,
			)
		}
	})
	bus.Subscribe(event.ModeChanged, func(e event.Event) {
		if me, ok := e.(*event.ModeEvent); ok {
			logger.Info(ctx, "Control mode changed",
				"previous", me.Previous,
				"current", me.Current,
			)
		}
	})
	bus.Subscribe(event.ParamsChanged, func(e event.Event) {
		if pe, ok := e.(*event.ParamsEvent); ok {
			logger.Debug(ctx, "Parameters changed",
				"stop_distance", pe.StopDistance,
				"slow_distance", pe.SlowDistance,
				"repulsion_gain", pe.RepulsionGain,
			)
		}
	})
	bus.Subscribe(event.ContactEntered, func(e event.Event) {
		if ce, ok := e.(*event.ContactEvent); ok {
			logger.Warn(ctx, "Agent entered contact zone", "distance", ce.Distance)
		}
	})
	bus.Subscribe(event.ContactExited, func(e event.Event) {
		if ce, ok := e.(*event.ContactEvent); ok {
			logger.Debug(ctx, "Agent left contact zone", "distance", ce.Distance)
		}
	})
}
