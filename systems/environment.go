package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/world"
)

// EnvironmentReport is the outcome of one environment step.
type EnvironmentReport struct {
	Season  float64              // -1..1, sine of the year phase
	Weather []world.WeatherEvent // Active events after ageing
}

// Season returns the seasonal factor for an accumulated world time.
func Season(t, yearLength float64) float64 {
	phase := math.Mod(t, yearLength) / yearLength
	return math.Sin(phase * math.Pi * 2)
}

// UpdateEnvironment advances world time, spawns and ages weather, then
// updates climate, food and vegetation of every tile.
func UpdateEnvironment(w *world.World, dt float64, rng *rand.Rand) EnvironmentReport {
	if w == nil || w.Grid == nil {
		return EnvironmentReport{}
	}
	cfg := config.Cfg().Environment

	w.Time += dt
	season := Season(w.Time, cfg.YearLength)

	if chance(rng, cfg.WeatherChance, dt) {
		w.Weather = append(w.Weather, spawnWeather(w.Grid.Size, rng))
	}
	ageWeather(w, dt)

	w.Grid.Each(func(x, y int, t *world.Tile) {
		applyClimate(t, float64(x), float64(y), season, w.Weather, dt, &cfg)
		if t.IsWater() {
			updateWaterTile(t, dt, &cfg)
			return
		}
		if t.Biome != world.BiomeMountain {
			updateLandTile(t, dt, rng, &cfg)
		}
	})

	return EnvironmentReport{Season: season, Weather: w.Weather}
}

func spawnWeather(size int, rng *rand.Rand) world.WeatherEvent {
	return world.WeatherEvent{
		Kind:      world.WeatherKind(rng.Intn(4)),
		CenterX:   float64(rng.Intn(size)),
		CenterY:   float64(rng.Intn(size)),
		Radius:    float64(5 + rng.Intn(10)),
		Intensity: 0.5 + rng.Float64()*0.5,
		Duration:  float64(200 + rng.Intn(500)),
	}
}

// ageWeather ages events and drops those past their duration, in place.
func ageWeather(w *world.World, dt float64) {
	kept := w.Weather[:0]
	for _, ev := range w.Weather {
		ev.Age += dt
		if ev.Expired() {
			continue
		}
		kept = append(kept, ev)
	}
	w.Weather = kept
}

// applyClimate resets temperature and moisture from the base values and season,
// then layers active weather on top.
func applyClimate(t *world.Tile, x, y, season float64, weather []world.WeatherEvent, dt float64, cfg *config.EnvironmentConfig) {
	t.Temp = t.TempBase + season*cfg.SeasonTempSwing
	t.Moist = clamp01(t.MoistBase + season*cfg.SeasonMoistSwing)

	for i := range weather {
		inf := weather[i].Influence(x, y)
		if inf <= 0 {
			continue
		}
		switch weather[i].Kind {
		case world.WeatherHeatwave:
			t.Temp += inf * 15
			t.Moist = math.Max(0, t.Moist-inf*0.3)
		case world.WeatherColdsnap:
			t.Temp -= inf * 15
		case world.WeatherRain:
			t.Moist = math.Min(1, t.Moist+inf*0.4)
			t.Food = math.Min(cfg.RainFoodCap, t.Food+inf*0.5*dt)
		case world.WeatherDrought:
			t.Moist = math.Max(0, t.Moist-inf*0.3)
		}
	}
}

func updateLandTile(t *world.Tile, dt float64, rng *rand.Rand, cfg *config.EnvironmentConfig) {
	regen := cfg.LandRegenRate * dt * (0.5 + t.Moist)
	t.Food = math.Min(t.Food+regen, t.Biome.MaxFood())

	if t.Vegetation == world.VegetationNone && t.Food > 10 {
		switch t.Biome {
		case world.BiomeGrass:
			if chance(rng, 0.0001*t.Moist, dt) && rng.Float64() < 0.3 {
				t.Vegetation = world.VegetationBush
				t.Food += 3
			}
		case world.BiomeForest:
			if chance(rng, 0.0002*t.Moist, dt) {
				if rng.Float64() < 0.7 {
					t.Vegetation = world.VegetationTree
					t.Food += 5
				} else {
					t.Vegetation = world.VegetationBush
					t.Food += 3
				}
			}
		}
	}

	// Rocks are permanent.
	if t.Vegetation == world.VegetationBush || t.Vegetation == world.VegetationTree {
		if (t.Temp < -10 || t.Temp > 45 || t.Moist < 0.1) && chance(rng, cfg.VegetationDieoff, dt) {
			t.Vegetation = world.VegetationNone
			t.Food = math.Max(0, t.Food-5)
		}
	}
}

func updateWaterTile(t *world.Tile, dt float64, cfg *config.EnvironmentConfig) {
	t.Food = math.Min(t.Food+cfg.WaterRegenRate*dt, cfg.WaterFoodCap)
	t.WaterTemp = t.Temp * 0.9

	depthFactor := math.Max(0.5, 1-t.Depth*0.05)
	t.Oxygen = math.Min(1, t.Oxygen+cfg.OxygenRegenRate*dt*depthFactor)
}
