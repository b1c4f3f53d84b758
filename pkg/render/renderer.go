// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-dotsim/pkg/field"
	"github.com/opd-ai/go-dotsim/pkg/logging"
	"github.com/opd-ai/go-dotsim/pkg/physics"
)

// HUD carries the per-frame status line data.
type HUD struct {
	ModeID    int
	ModeLabel string
	Distance  float64
	Contact   bool
}

// Renderer is the presentation surface consumed by the demo driver. The
// simulation core never calls it; it is the external collaborator layer.
type Renderer interface {
	Clear()
	RenderScene(sc *field.Scene)
	RenderAgent(pos physics.Vector2D, radius float64)
	RenderHUD(hud HUD)
	Present()
}

// NullRenderer is a no-op Renderer that traces calls at debug level.
type NullRenderer struct {
	logger *logging.Logger
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer() *NullRenderer {
	return &NullRenderer{
		logger: logging.NewLogger(),
	}
}

// Clear implements Renderer.
func (d *NullRenderer) Clear() {}

// RenderScene implements Renderer.
func (d *NullRenderer) RenderScene(sc *field.Scene) {
	if sc == nil {
		d.logger.Debug(context.Background(), "RenderScene called with nil scene")
		return
	}
	d.logger.Debug(context.Background(), "RenderScene called",
		"obstacle_count", len(sc.Obstacles),
	)
}

// RenderAgent implements Renderer.
func (d *NullRenderer) RenderAgent(pos physics.Vector2D, radius float64) {
	d.logger.Debug(context.Background(), "RenderAgent called",
		"x", pos.X,
		"y", pos.Y,
		"radius", radius,
	)
}

// RenderHUD implements Renderer.
func (d *NullRenderer) RenderHUD(hud HUD) {
	d.logger.Debug(context.Background(), "RenderHUD called",
		"mode", hud.ModeLabel,
		"distance", hud.Distance,
	)
}

// Present implements Renderer.
func (d *NullRenderer) Present() {}
