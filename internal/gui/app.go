// Package gui is the raylib front end: a window at viewport size that
// draws each body as a filled circle with a fading trail, steps the engine
// once per frame, and inserts a body on left click. It only ever reads
// engine snapshots; all simulation state lives in the engine.
package gui

import (
	"fmt"

	"github.com/Fer14/gravitybox/internal/config"
	"github.com/Fer14/gravitybox/internal/engine"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const trailCapacity = 100

var (
	colBg      = rl.NewColor(10, 10, 10, 255)
	colText    = rl.NewColor(140, 140, 140, 255)
	colWarning = rl.NewColor(230, 200, 60, 255)

	palette = []rl.Color{
		rl.NewColor(116, 148, 196, 255),
		rl.NewColor(106, 77, 97, 255),
		rl.NewColor(195, 212, 7, 255),
		rl.NewColor(217, 237, 146, 255),
		rl.NewColor(93, 115, 126, 255),
		rl.NewColor(30, 96, 145, 255),
		rl.NewColor(143, 45, 86, 255),
		rl.NewColor(116, 0, 184, 255),
		rl.NewColor(56, 4, 14, 255),
		rl.NewColor(62, 63, 63, 255),
	}
)

// App owns the window loop and the per-body trails.
type App struct {
	cfg     *config.Config
	eng     *engine.Engine
	trails  [][]engine.Vec2
	paused  bool
	warning string
}

func NewApp(cfg *config.Config, eng *engine.Engine) *App {
	a := &App{cfg: cfg, eng: eng}
	a.syncTrails()
	return a
}

// Run opens the window and blocks until it is closed.
func (a *App) Run() {
	rl.InitWindow(int32(a.cfg.Width), int32(a.cfg.Height), "gravitybox")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(a.cfg.FrameRate))

	for !rl.WindowShouldClose() {
		a.handleInput()
		if !a.paused {
			a.step()
		}
		a.drawFrame()
	}
}

func (a *App) handleInput() {
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		pos := rl.GetMousePosition()
		if a.eng.AddAt(float64(pos.X), float64(pos.Y)) {
			a.warning = ""
			a.syncTrails()
		} else {
			a.warning = "body limit reached"
		}
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.paused = !a.paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.eng.Reset()
		a.trails = nil
		a.warning = ""
		a.syncTrails()
	}
}

func (a *App) syncTrails() {
	for len(a.trails) < a.eng.Len() {
		a.trails = append(a.trails, make([]engine.Vec2, 0, trailCapacity))
	}
}

func (a *App) step() {
	if err := a.eng.Step(a.cfg.Dt()); err != nil {
		return
	}
	for i, b := range a.eng.Bodies() {
		a.trails[i] = append(a.trails[i], b.Pos)
		if len(a.trails[i]) > trailCapacity {
			a.trails[i] = a.trails[i][1:]
		}
	}
}

func (a *App) drawFrame() {
	rl.BeginDrawing()
	rl.ClearBackground(colBg)

	for i, trail := range a.trails {
		color := palette[i%len(palette)]
		for _, p := range trail {
			rl.DrawCircle(int32(p.X), int32(p.Y), 1, rl.Fade(color, 0.5))
		}
	}

	for i, b := range a.eng.Bodies() {
		color := palette[i%len(palette)]
		rl.DrawCircle(int32(b.Pos.X), int32(b.Pos.Y), float32(b.Radius), color)
	}

	status := fmt.Sprintf("bodies %d/%d", a.eng.Len(), a.cfg.MaxBodies)
	if a.paused {
		status += "  [paused]"
	}
	rl.DrawText(status, 10, 10, 18, colText)
	if a.warning != "" {
		rl.DrawText(a.warning, 10, 34, 18, colWarning)
	}

	rl.EndDrawing()
}

// Run opens the sandbox window for the given configuration.
func Run(cfg *config.Config, eng *engine.Engine) {
	NewApp(cfg, eng).Run()
}
