// Package gui runs a level in a raylib window.
package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/rebound/internal/automation"
	"github.com/san-kum/rebound/internal/config"
	"github.com/san-kum/rebound/internal/entity"
	"github.com/san-kum/rebound/internal/input"
	"github.com/san-kum/rebound/internal/logging"
	"github.com/san-kum/rebound/internal/render"
	"github.com/san-kum/rebound/internal/sim"
)

var (
	ColBg      = rl.Black
	ColPlayer  = rl.Blue
	ColCrate   = rl.NewColor(255, 136, 0, 255)
	ColTerrain = rl.NewColor(170, 170, 170, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColSelect  = rl.White
)

const telemetryLen = 200

type Options struct {
	Config *config.Config
	// Script replays a scenario instead of reading the keyboard.
	Script *automation.Scenario
}

type App struct {
	cfg    *config.Config
	script *automation.Scenario
	src    input.Source

	sim       *sim.Simulator
	report    sim.FrameReport
	paused    bool
	quit      bool
	telemetry []float64
}

func initWindow(r config.RenderConfig) {
	rl.InitWindow(int32(r.Width), int32(r.Height), r.Title)
	rl.SetTargetFPS(int32(r.FPS))
	rl.SetExitKey(0)
}

func NewApp(opts Options) (*App, error) {
	a := &App{cfg: opts.Config, script: opts.Script}
	if a.script != nil {
		a.src = a.script
	} else {
		a.src = newKeyboard()
	}
	if err := a.reset(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) reset() error {
	store, err := a.cfg.NewStore()
	if err != nil {
		return err
	}
	a.sim = sim.New(store, a.src)
	a.report = sim.FrameReport{}
	a.telemetry = make([]float64, 0, telemetryLen)
	return nil
}

// Run opens the window and steps one frame per display frame until the
// window closes. It must be called from the main goroutine.
func Run(opts Options) error {
	a, err := NewApp(opts)
	if err != nil {
		return err
	}
	initWindow(a.cfg.Render)
	defer rl.CloseWindow()

	logging.Infof("gui: %s %dx%d", a.cfg.Name, a.cfg.Render.Width, a.cfg.Render.Height)
	for !rl.WindowShouldClose() && !a.quit {
		if err := a.Update(); err != nil {
			return err
		}
		a.Draw()
	}
	return nil
}

func (a *App) Update() error {
	switch {
	case rl.IsKeyPressed(rl.KeyQ), rl.IsKeyPressed(rl.KeyEscape):
		a.quit = true
		return nil
	case rl.IsKeyPressed(rl.KeySpace):
		a.paused = !a.paused
	case rl.IsKeyPressed(rl.KeyR):
		return a.reset()
	case rl.IsKeyPressed(rl.KeyX):
		a.despawnCrate()
	}

	if a.paused && !rl.IsKeyPressed(rl.KeyPeriod) {
		return nil
	}
	report, err := a.sim.Next()
	if err != nil {
		return err
	}
	a.report = report

	store := a.sim.Store()
	if v, ok := store.Velocity.Get(store.Player); ok {
		a.telemetry = append(a.telemetry, v.Len())
		if len(a.telemetry) > telemetryLen {
			a.telemetry = a.telemetry[1:]
		}
	}
	return nil
}

func (a *App) despawnCrate() {
	store := a.sim.Store()
	for key, t := range store.Types.Iter() {
		if t == entity.Crate {
			store.Destroy(key)
			return
		}
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	store := a.sim.Store()
	a.drawSprites(render.Snapshot(store, store.Params.PixelsPerUnit))
	a.drawHUD()

	rl.EndDrawing()
}

func (a *App) drawSprites(sprites []render.Sprite) {
	for _, sp := range sprites {
		rec := rl.NewRectangle(float32(sp.Rect.X), float32(sp.Rect.Y), float32(sp.Rect.W), float32(sp.Rect.H))
		switch sp.Type {
		case entity.Player:
			rl.DrawRectangleRec(rec, ColPlayer)
		case entity.Crate:
			rl.DrawRectangleRec(rec, ColCrate)
		default:
			rl.DrawRectangleLinesEx(rec, 1, ColTerrain)
		}
	}
}

func (a *App) drawHUD() {
	drawText("rebound", 30, 30, 24, ColSelect)
	drawText(":: "+a.cfg.Name, 140, 34, 16, ColText)

	status, col := "RUNNING", ColSelect
	if a.paused {
		status, col = "PAUSED", ColTextDim
	}
	if a.script != nil {
		status += " (script)"
	}
	w, h := a.cfg.Render.Width, a.cfg.Render.Height
	drawText(status, w-160, 30, 16, col)

	store := a.sim.Store()
	pos, _ := store.Position(store.Player)
	drawText(fmt.Sprintf("frame %d  pos %s  contacts %d", a.sim.Frame(), pos, a.report.TerrainContacts), 30, 60, 14, ColText)

	a.drawTelemetry(30, h-90, 300, 40)
	drawText("[ARROWS/WASD] MOVE  [SPACE] PAUSE  [.] STEP  [R] RESET  [X] DESPAWN  [Q] QUIT", 30, h-30, 14, ColTextDim)
	drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), w-100, h-30, 14, ColTextDim)
}

func (a *App) drawTelemetry(x, y, width, height int) {
	if len(a.telemetry) < 2 {
		return
	}
	limit := a.sim.Store().Params.VelocityCap.Len()
	if limit <= 0 {
		limit = 1
	}

	points := make([]rl.Vector2, len(a.telemetry))
	for i, v := range a.telemetry {
		px := float32(x) + float32(i)/float32(telemetryLen)*float32(width)
		py := float32(y+height) - float32(min(v/limit, 1))*float32(height)
		points[i] = rl.NewVector2(px, py)
	}
	rl.DrawLineStrip(points, ColText)
	drawText(fmt.Sprintf("v %.3f", a.telemetry[len(a.telemetry)-1]), x+width+10, y+height-10, 14, ColText)
}

func drawText(text string, x, y, size int, color rl.Color) {
	rl.DrawText(text, int32(x), int32(y), int32(size), color)
}
