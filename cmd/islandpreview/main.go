// Island generation preview tool - interactive visualization with sliders.
//
// Usage: go run ./cmd/islandpreview
package main

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/critters/render"
	"github.com/pthm-cable/critters/world"
	"github.com/pthm-cable/critters/worldgen"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

// previewParams holds the slider-controlled generation settings.
type previewParams struct {
	Size       int
	IslandSize float32
	Seed       int64
	Climate    int // index into worldgen.ClimateNames()
}

func defaultParams() previewParams {
	return previewParams{Size: 64, IslandSize: 0.5, Seed: 12345, Climate: 1}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Island Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	climates := worldgen.ClimateNames()
	params := defaultParams()
	for i, name := range climates {
		if name == "temperate" {
			params.Climate = i
		}
	}

	var (
		grid    *world.Grid
		texture rl.Texture2D
		texSize int
	)
	needsRegen := true
	defer func() {
		if texSize > 0 {
			rl.UnloadTexture(texture)
		}
	}()

	for !rl.WindowShouldClose() {
		if needsRegen {
			climate, _ := worldgen.ClimateByName(climates[params.Climate])
			grid = worldgen.Generate(worldgen.Params{
				Seed:       params.Seed,
				Size:       params.Size,
				IslandSize: float64(params.IslandSize),
				Climate:    climate,
			})
			if texSize != params.Size {
				if texSize > 0 {
					rl.UnloadTexture(texture)
				}
				img := rl.GenImageColor(params.Size, params.Size, rl.Black)
				texture = rl.LoadTextureFromImage(img)
				rl.UnloadImage(img)
				texSize = params.Size
			}
			updateTexture(texture, grid)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(texSize), Height: float32(texSize)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Draw stats
		counts, food := biomeStats(grid)
		statsY := int32(previewSize + 25)
		total := float32(len(grid.Tiles))
		rl.DrawText(fmt.Sprintf("Water: %.0f%%  Beach: %.0f%%  Grass: %.0f%%  Forest: %.0f%%  Mountain: %.0f%%",
			100*float32(counts[world.BiomeWater])/total,
			100*float32(counts[world.BiomeBeach])/total,
			100*float32(counts[world.BiomeGrass])/total,
			100*float32(counts[world.BiomeForest])/total,
			100*float32(counts[world.BiomeMountain])/total,
		), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Total food: %.0f", food), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Island Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// Size slider
		rl.DrawText("Size (tiles per side)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSize := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"16", "256",
			float32(params.Size), 16, 256,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Size), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newSize) != params.Size {
			params.Size = int(newSize)
			needsRegen = true
		}
		panelY += 35

		// Island size slider
		rl.DrawText("Island size (land radius)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newIsland := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.05", "1.0",
			params.IslandSize, 0.05, 1.0,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.IslandSize), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newIsland != params.IslandSize {
			params.IslandSize = newIsland
			needsRegen = true
		}
		panelY += 35

		// Seed slider
		rl.DrawText("Seed", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSeed := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "99999",
			float32(params.Seed), 0, 99999,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Seed), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int64(newSeed) != params.Seed {
			params.Seed = int64(newSeed)
			needsRegen = true
		}
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Climate: "+climates[params.Climate]) {
			params.Climate = (params.Climate + 1) % len(climates)
			needsRegen = true
		}

		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			climate := params.Climate
			params = defaultParams()
			params.Climate = climate
			needsRegen = true
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(params, climates) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		// Instructions
		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		if rl.IsKeyPressed(rl.KeyC) {
			text := ""
			for _, line := range yamlLines(params, climates) {
				text += line + "\n"
			}
			rl.SetClipboardText(text)
		}

		rl.EndDrawing()
	}
}

func yamlLines(p previewParams, climates []string) []string {
	return []string{
		"world:",
		fmt.Sprintf("  size: %d", p.Size),
		fmt.Sprintf("  island_size: %.2f", p.IslandSize),
		fmt.Sprintf("  climate: %s", climates[p.Climate]),
	}
}

// biomeStats counts tiles per biome and sums starting food.
func biomeStats(g *world.Grid) (counts [world.BiomeMountain + 1]int, food float64) {
	g.Each(func(_, _ int, t *world.Tile) {
		if int(t.Biome) < len(counts) {
			counts[t.Biome]++
		}
		food += t.Food
	})
	return counts, food
}

// updateTexture updates the GPU texture from the tile colours.
func updateTexture(texture rl.Texture2D, g *world.Grid) {
	pixels := make([]rl.Color, len(g.Tiles))
	g.Each(func(x, y int, t *world.Tile) {
		pixels[y*g.Size+x] = render.TileColor(t)
	})
	rl.UpdateTexture(texture, pixels)
}
