package render

import (
	"fmt"
	"log/slog"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/critters/camera"
	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/sim"
	"github.com/pthm-cable/critters/world"
)

const (
	tileSize          = 12 // Pixels per tile at zoom 1
	maxStepsPerUpdate = 10
	panelWidth        = 240
)

// Options configures a Viewer.
type Options struct {
	StepsPerUpdate int
	// Recorder, if set, receives every tick report.
	Recorder *sim.Recorder
}

// Viewer draws one simulation and drives it at the configured tick rate.
type Viewer struct {
	sim      *sim.Simulation
	camera   *camera.Camera
	widgets  *Widgets
	recorder *sim.Recorder

	dt         float64
	tickMillis float64
	elapsed    float64 // Wall-clock milliseconds not yet turned into ticks

	paused         bool
	stepsPerUpdate int
	showWeather    bool
	showInspector  bool
	power          world.Power

	selected    ecs.Entity
	hasSelected bool

	lastReport   sim.Report
	screenWidth  float32
	screenHeight float32
}

// NewViewer creates a viewer for s. The raylib window must already be open.
func NewViewer(s *sim.Simulation, opts Options) *Viewer {
	cfg := config.Cfg()
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	return &Viewer{
		sim:            s,
		camera:         camera.New(w, h, float32(s.World.Grid.Size), tileSize),
		widgets:        NewWidgets(),
		recorder:       opts.Recorder,
		dt:             cfg.Derived.DT,
		tickMillis:     float64(cfg.World.TickMillis),
		stepsPerUpdate: min(steps, maxStepsPerUpdate),
		showWeather:    true,
		showInspector:  true,
		screenWidth:    w,
		screenHeight:   h,
	}
}

// Run loops until the window closes or maxTicks is reached (0 = unlimited).
func (v *Viewer) Run(maxTicks int) {
	for !rl.WindowShouldClose() {
		v.Update()
		v.Draw()

		if maxTicks > 0 && int(v.sim.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", v.sim.Tick())
			return
		}
	}
}

// Update handles input and advances the simulation by whole ticks of
// elapsed wall time, scaled by the speed setting.
func (v *Viewer) Update() {
	v.sim.Perf().RecordFrame()
	v.handleInput()

	if v.paused {
		v.elapsed = 0
		return
	}

	v.elapsed += float64(rl.GetFrameTime()) * 1000 * float64(v.stepsPerUpdate)
	for n := 0; v.elapsed >= v.tickMillis && n < maxStepsPerUpdate; n++ {
		v.elapsed -= v.tickMillis
		v.step()
	}
	// Drop backlog the frame could not absorb.
	v.elapsed = min(v.elapsed, v.tickMillis)
}

func (v *Viewer) step() {
	v.lastReport = v.sim.Step(v.dt)
	if v.recorder != nil {
		if err := v.recorder.Record(v.lastReport); err != nil {
			slog.Error("record tick", "error", err)
		}
	}
}

// Draw renders the world, creatures, HUD and inspector.
func (v *Viewer) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 12, G: 20, B: 35, A: 255})

	v.drawTiles()
	if v.showWeather {
		v.drawWeather()
	}
	v.drawCreatures()

	v.drawHUD()
	v.drawControls()
	if v.showInspector {
		v.drawInspector()
	}

	rl.EndDrawing()
}

// tilePixels returns the on-screen size of one tile.
func (v *Viewer) tilePixels() float32 {
	x0, _ := v.camera.WorldToScreen(0, 0)
	x1, _ := v.camera.WorldToScreen(1, 0)
	return x1 - x0
}

func (v *Viewer) drawTiles() {
	g := v.sim.World.Grid
	px := v.tilePixels()
	size := int32(px) + 1
	minX, minY, maxX, maxY := v.camera.VisibleTiles()

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			t := g.At(x, y)
			sx, sy := v.camera.WorldToScreen(float32(x), float32(y))
			rl.DrawRectangle(int32(sx), int32(sy), size, size, TileColor(t))

			if t.Vegetation != world.VegetationNone && int(t.Vegetation) < len(vegetationColors) && px >= 6 {
				rl.DrawCircle(int32(sx+px/2), int32(sy+px/2), px*0.3, vegetationColors[t.Vegetation])
			}
		}
	}
}

func (v *Viewer) drawWeather() {
	px := v.tilePixels()
	for _, ev := range v.sim.World.Weather {
		cx, cy := v.camera.WorldToScreen(float32(ev.CenterX), float32(ev.CenterY))
		r := float32(ev.Radius) * px
		col := weatherColor(ev.Kind)
		rl.DrawCircle(int32(cx), int32(cy), r, col)
		col.A = 160
		rl.DrawCircleLines(int32(cx), int32(cy), r, col)
	}
}

func (v *Viewer) drawCreatures() {
	px := v.tilePixels()
	types := v.sim.World.Types

	for _, c := range v.sim.Creatures() {
		ct, ok := types.Lookup(c.Org.TypeID)
		if !ok {
			continue
		}
		radius := float32(c.EffectiveSize(ct)) * 0.35
		if !v.camera.IsVisible(float32(c.Pos.X), float32(c.Pos.Y), radius) {
			continue
		}

		sx, sy := v.camera.WorldToScreen(float32(c.Pos.X), float32(c.Pos.Y))
		r := max(radius*px, 2)
		rl.DrawCircle(int32(sx), int32(sy), r, typeColor(ct.ID))
		if col, ok := stateColor(c.Beh.State); ok {
			rl.DrawCircleLines(int32(sx), int32(sy), r+1, col)
		}
		if ct.IsPredator {
			rl.DrawCircleLines(int32(sx), int32(sy), r+2, rl.Maroon)
		}

		if v.hasSelected && c.Entity == v.selected {
			rl.DrawCircleLines(int32(sx), int32(sy), r+5, rl.White)
			if c.Beh.Target.Valid {
				tx, ty := v.camera.WorldToScreen(float32(c.Beh.Target.X), float32(c.Beh.Target.Y))
				rl.DrawLine(int32(sx), int32(sy), int32(tx), int32(ty), rl.Fade(rl.White, 0.5))
			}
		}
	}
}

func (v *Viewer) drawHUD() {
	s := v.sim
	rl.DrawText("Critters", 10, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Creatures: %d | Types: %d | Weather: %d", s.Population(), s.World.Types.Len(), len(s.World.Weather)),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Season: %.2f | Speed: %dx | FPS: %d", s.Tick(), v.lastReport.Season, v.stepsPerUpdate, rl.GetFPS()),
		10, 55, 16, rl.LightGray,
	)

	status := "Running"
	if v.paused {
		status = "PAUSED"
	}
	rl.DrawText(fmt.Sprintf("%s | Power: %s", status, v.power), 10, 75, 16, rl.Yellow)

	if tx, ty, ok := v.mouseTile(); ok {
		t := s.World.Grid.At(tx, ty)
		info := fmt.Sprintf("(%d,%d) %s food %.1f temp %.1f moist %.2f", tx, ty, t.Biome, t.Food, t.Temp, t.Moist)
		if t.IsWater() {
			info += fmt.Sprintf(" depth %.1f oxygen %.2f", t.Depth, t.Oxygen)
		}
		rl.DrawText(info, 10, int32(v.screenHeight)-24, 14, rl.LightGray)
	}

	rl.DrawText("[SPACE] Pause  [</>] Speed  [1-4] Power  [RMB] Apply  [N] Spawn  [W] Weather  [I] Inspector  [F5] Snapshot",
		10, int32(v.screenHeight)-44, 12, rl.Gray)
}

// drawControls draws the raygui pause button and speed slider.
func (v *Viewer) drawControls() {
	x := v.screenWidth - 2*panelWidth/3 - 10
	if v.showInspector {
		x -= panelWidth + 10
	}
	label := "Pause"
	if v.paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: 10, Width: 80, Height: 24}, label) {
		v.paused = !v.paused
	}
	speed := gui.SliderBar(
		rl.Rectangle{X: x, Y: 40, Width: 2 * panelWidth / 3, Height: 16},
		"", fmt.Sprintf("%dx", v.stepsPerUpdate),
		float32(v.stepsPerUpdate), 1, maxStepsPerUpdate,
	)
	v.stepsPerUpdate = max(1, min(int(speed+0.5), maxStepsPerUpdate))
}
