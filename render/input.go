package render

import (
	"context"
	"errors"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/critters/sim"
	"github.com/pthm-cable/critters/world"
)

// terraformStep is the height change of one terraform click.
const terraformStep = 0.1

var powerKeys = []struct {
	key   int32
	power world.Power
}{
	{rl.KeyOne, world.PowerTerraform},
	{rl.KeyTwo, world.PowerFertility},
	{rl.KeyThree, world.PowerRainstorm},
	{rl.KeyFour, world.PowerHeatwave},
}

// handleInput processes keyboard and mouse input.
func (v *Viewer) handleInput() {
	v.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		v.paused = !v.paused
	}

	// Speed control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && v.stepsPerUpdate > 1 {
		v.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && v.stepsPerUpdate < maxStepsPerUpdate {
		v.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyW) {
		v.showWeather = !v.showWeather
	}
	if rl.IsKeyPressed(rl.KeyI) {
		v.showInspector = !v.showInspector
	}
	if rl.IsKeyPressed(rl.KeyF5) && v.recorder != nil {
		v.recorder.SaveSnapshot(nil)
	}

	for _, pk := range powerKeys {
		if rl.IsKeyPressed(pk.key) {
			v.power = pk.power
		}
	}

	v.handleCameraInput()
	v.handleMouse()
}

// handleResize checks for window resize and propagates new dimensions.
func (v *Viewer) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == v.screenWidth && h == v.screenHeight {
		return
	}
	v.screenWidth = w
	v.screenHeight = h
	v.camera.Resize(w, h)
}

// handleCameraInput processes camera pan/zoom controls.
func (v *Viewer) handleCameraInput() {
	const panSpeed = 10 // screen pixels per frame

	if rl.IsKeyDown(rl.KeyRight) {
		v.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		v.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		v.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		v.camera.Pan(0, -panSpeed)
	}

	// Zoom controls: mouse wheel or +/- keys
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.camera.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		v.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		v.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		v.camera.Reset()
	}
}

// handleMouse selects creatures, applies powers and spawns.
func (v *Viewer) handleMouse() {
	mouse := rl.GetMousePosition()

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !v.overPanel(mouse) {
		wx, wy := v.camera.ScreenToWorld(mouse.X, mouse.Y)
		v.selectAt(float64(wx), float64(wy))
	}

	tx, ty, ok := v.mouseTile()
	if !ok {
		return
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		amount := 0.0
		if v.power == world.PowerTerraform {
			amount = terraformStep
			if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
				amount = -terraformStep
			}
		}
		v.sim.World.Grid.Apply(v.power, tx, ty, amount)
		slog.Debug("power applied", "power", v.power.String(), "x", tx, "y", ty)
	}

	// Spawn another creature of the selected creature's type.
	if rl.IsKeyPressed(rl.KeyN) && v.hasSelected {
		c, alive := v.sim.Creature(v.selected)
		if !alive {
			return
		}
		if _, err := v.sim.Spawn(c.Org.TypeID, float64(tx), float64(ty)); err != nil {
			level := slog.LevelError
			if errors.Is(err, sim.ErrSpawnLimit) {
				level = slog.LevelWarn
			}
			slog.Log(context.Background(), level, "spawn failed", "error", err)
		}
	}
}

// mouseTile returns the tile under the cursor.
func (v *Viewer) mouseTile() (int, int, bool) {
	mouse := rl.GetMousePosition()
	if v.overPanel(mouse) {
		return 0, 0, false
	}
	return v.camera.ScreenToTile(mouse.X, mouse.Y)
}

// overPanel reports whether the point is over the inspector panel.
func (v *Viewer) overPanel(p rl.Vector2) bool {
	return v.showInspector && v.hasSelected && p.X >= v.screenWidth-panelWidth-float32(v.widgets.Theme.Padding)
}
