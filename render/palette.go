package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/world"
)

var biomeColors = [...]rl.Color{
	world.BiomeWater:    {R: 30, G: 80, B: 150, A: 255},
	world.BiomeBeach:    {R: 220, G: 205, B: 150, A: 255},
	world.BiomeGrass:    {R: 90, G: 160, B: 70, A: 255},
	world.BiomeForest:   {R: 40, G: 110, B: 50, A: 255},
	world.BiomeMountain: {R: 130, G: 125, B: 120, A: 255},
}

// TileColor shades the biome colour: water darkens with depth, land
// brightens with available food.
func TileColor(t *world.Tile) rl.Color {
	c := rl.Magenta
	if int(t.Biome) < len(biomeColors) {
		c = biomeColors[t.Biome]
	}
	if t.IsWater() {
		return shade(c, 1-float32(min(t.Depth, 10))/20)
	}
	if maxFood := t.Biome.MaxFood(); maxFood > 0 {
		return shade(c, 0.75+0.25*float32(min(t.Food/maxFood, 1)))
	}
	return c
}

func shade(c rl.Color, f float32) rl.Color {
	return rl.Color{
		R: uint8(float32(c.R) * f),
		G: uint8(float32(c.G) * f),
		B: uint8(float32(c.B) * f),
		A: c.A,
	}
}

var vegetationColors = [...]rl.Color{
	world.VegetationBush: {R: 60, G: 130, B: 40, A: 255},
	world.VegetationTree: {R: 20, G: 70, B: 25, A: 255},
	world.VegetationRock: {R: 95, G: 90, B: 85, A: 255},
}

var weatherColors = [...]rl.Color{
	world.WeatherHeatwave: {R: 255, G: 120, B: 40, A: 50},
	world.WeatherColdsnap: {R: 160, G: 210, B: 255, A: 50},
	world.WeatherRain:     {R: 60, G: 110, B: 255, A: 50},
	world.WeatherDrought:  {R: 200, G: 160, B: 60, A: 50},
}

func weatherColor(k world.WeatherKind) rl.Color {
	if int(k) < len(weatherColors) {
		return weatherColors[k]
	}
	return rl.Blank
}

// typeColor gives each creature type a stable hue derived from its id.
func typeColor(id world.TypeID) rl.Color {
	hue := float32(uint16(id[0])<<8|uint16(id[1])) / 65535 * 360
	return rl.ColorFromHSV(hue, 0.55, 0.95)
}

// stateColor marks states worth spotting at a glance; ok is false for the rest.
func stateColor(s components.State) (c rl.Color, ok bool) {
	switch s {
	case components.StateFlee:
		return rl.Red, true
	case components.StateEat:
		return rl.Yellow, true
	case components.StateSeekMate, components.StateCourtship, components.StateReproduce:
		return rl.Pink, true
	case components.StateRest:
		return rl.DarkBlue, true
	case components.StateSurfaceForAir:
		return rl.SkyBlue, true
	}
	return rl.Color{}, false
}
