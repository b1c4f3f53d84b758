// pkg/render/terminal.go
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/opd-ai/go-dotsim/pkg/field"
	"github.com/opd-ai/go-dotsim/pkg/physics"
)

// TerminalRenderer provides a simple ASCII-based rendering for terminals.
// The world is rasterized into a character buffer; obstacles fill cells
// whose centers fall on or inside a shape.
type TerminalRenderer struct {
	width  int
	height int
	buffer [][]rune
	scale  physics.Vector2D
	out    io.Writer
	hud    []string
}

// NewTerminalRenderer creates a terminal renderer with the given character
// dimensions, writing frames to out.
func NewTerminalRenderer(width, height int, out io.Writer) *TerminalRenderer {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}
	return &TerminalRenderer{
		width:  width,
		height: height,
		buffer: buffer,
		out:    out,
	}
}

// Clear implements Renderer.
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}
	r.hud = r.hud[:0]
}

// cellCenter maps a buffer cell to its world-space center.
func (r *TerminalRenderer) cellCenter(x, y int) physics.Vector2D {
	return physics.Vector2D{
		X: (float64(x) + 0.5) * r.scale.X,
		Y: (float64(y) + 0.5) * r.scale.Y,
	}
}

// RenderScene implements Renderer. Every obstacle variant is drawn
// through its placement-distance capability: a cell is filled when its
// center is within half a cell of the raw shape surface.
func (r *TerminalRenderer) RenderScene(sc *field.Scene) {
	if sc == nil || r.width == 0 || r.height == 0 {
		return
	}
	r.scale = physics.Vector2D{
		X: sc.Bounds.Width / float64(r.width),
		Y: sc.Bounds.Height / float64(r.height),
	}
	halfCell := (r.scale.X + r.scale.Y) / 4

	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			p := r.cellCenter(x, y)
			for _, obs := range sc.Obstacles {
				if obs.PlacementDistance(p, 0) <= halfCell {
					r.buffer[y][x] = '#'
					break
				}
			}
		}
	}
}

// RenderAgent implements Renderer.
func (r *TerminalRenderer) RenderAgent(pos physics.Vector2D, radius float64) {
	if r.scale.X == 0 || r.scale.Y == 0 {
		return
	}
	x := int(pos.X / r.scale.X)
	y := int(pos.Y / r.scale.Y)
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = '@'
	}
}

// RenderHUD implements Renderer.
func (r *TerminalRenderer) RenderHUD(hud HUD) {
	r.hud = append(r.hud, fmt.Sprintf("Mode %d: %s   |   d = %.1f", hud.ModeID, hud.ModeLabel, hud.Distance))
	if hud.Contact {
		r.hud = append(r.hud, "Contact zone")
	}
}

// Present implements Renderer.
func (r *TerminalRenderer) Present() {
	// Clear terminal
	fmt.Fprint(r.out, "\033[H\033[2J")

	fmt.Fprintln(r.out, "+"+strings.Repeat("-", r.width)+"+")
	for y := range r.buffer {
		fmt.Fprintln(r.out, "|"+string(r.buffer[y])+"|")
	}
	fmt.Fprintln(r.out, "+"+strings.Repeat("-", r.width)+"+")

	for _, line := range r.hud {
		fmt.Fprintln(r.out, line)
	}
}
