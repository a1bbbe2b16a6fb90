// Package renderer draws the live view of a running simulation: cells shaded
// by free carbon, organisms as dots, and a small control panel.
package renderer

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/trophic/sim"
	"github.com/pthm-cable/trophic/species"
)

// Viewer renders the world into the raylib window.
type Viewer struct {
	width, height  int32
	scaleX, scaleY float64

	paused bool
	speed  float32 // steps per frame
}

// NewViewer sizes the view to the domain.
func NewViewer(width, height int32, e *sim.Engine) *Viewer {
	d := e.Domain()
	return &Viewer{
		width:   width,
		height:  height,
		scaleX:  float64(width) / d.XLength,
		scaleY:  float64(height) / d.YLength,
		speed:   1,
	}
}

// Paused reports whether stepping is suspended.
func (v *Viewer) Paused() bool { return v.paused }

// StepsPerFrame returns how many simulation steps run per drawn frame.
func (v *Viewer) StepsPerFrame() int {
	n := int(v.speed)
	if n < 1 {
		n = 1
	}
	return n
}

// Draw renders one frame and processes the control panel.
func (v *Viewer) Draw(e *sim.Engine) {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 12, G: 16, B: 20, A: 255})

	v.drawCells(e)
	v.drawOrganisms(e)
	v.drawHUD(e)

	rl.EndDrawing()
}

// drawCells shades each cell by its free-carbon pool relative to the current
// maximum.
func (v *Viewer) drawCells(e *sim.Engine) {
	cells := e.Cells()
	maxFree := 0.0
	for i := range cells {
		if cells[i].FreeCarbon > maxFree {
			maxFree = cells[i].FreeCarbon
		}
	}
	if maxFree <= 0 {
		return
	}

	for i := range cells {
		c := &cells[i]
		shade := uint8(40 + 120*c.FreeCarbon/maxFree)
		rl.DrawRectangle(
			int32(c.X0*v.scaleX),
			int32(c.Y0*v.scaleY),
			int32((c.X1-c.X0)*v.scaleX)+1,
			int32((c.Y1-c.Y0)*v.scaleY)+1,
			rl.Color{R: 20, G: shade, B: 60, A: 255},
		)
	}
}

func (v *Viewer) drawOrganisms(e *sim.Engine) {
	e.VisitOrganisms(func(x, y float64, g *species.Genotype) {
		var color rl.Color
		switch {
		case g.Kingdom == species.KingdomPlant:
			color = rl.Color{R: 80, G: 220, B: 100, A: 255}
		case g.Diet == species.DietCarnivore:
			color = rl.Color{R: 230, G: 70, B: 60, A: 255}
		default:
			color = rl.Color{R: 235, G: 180, B: 60, A: 255}
		}
		rl.DrawCircle(int32(x*v.scaleX), int32(y*v.scaleY), 3, color)
	})
}

func (v *Viewer) drawHUD(e *sim.Engine) {
	census := e.Census()
	animals, plants := 0, 0
	for id, n := range census {
		if e.Table().Get(id).Kingdom == species.KingdomAnimal {
			animals += n
		} else {
			plants += n
		}
	}

	label := fmt.Sprintf("step %d | animals %d | plants %d", e.Tick(), animals, plants)
	rl.DrawText(label, 10, 10, 20, rl.RayWhite)

	pauseText := "Pause"
	if v.paused {
		pauseText = "Resume"
	}
	if gui.Button(rl.Rectangle{X: 10, Y: 40, Width: 90, Height: 26}, pauseText) {
		v.paused = !v.paused
	}
	v.speed = gui.SliderBar(
		rl.Rectangle{X: 110, Y: 40, Width: 140, Height: 26},
		"", fmt.Sprintf("%dx", v.StepsPerFrame()),
		v.speed, 1, 20,
	)
}
