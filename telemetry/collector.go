package telemetry

import (
	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/world"
)

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	births int
	deaths [components.CauseTemperature + 1]int
}

// NewCollector creates a new stats collector flushing every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowDurationTicks: int32(windowTicks)}
}

// RecordBirths records n births.
func (c *Collector) RecordBirths(n int) {
	c.births += n
}

// RecordDeath records a death event.
func (c *Collector) RecordDeath(cause components.DeathCause) {
	if int(cause) < len(c.deaths) {
		c.deaths[cause]++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}

// Flush produces a WindowStats from the window's counters plus a sample
// of the live creatures and tiles, then resets counters for the next window.
func (c *Collector) Flush(currentTick int32, creatures []components.Creature, w *world.World) WindowStats {
	stats := WindowStats{
		WindowStartTick:  c.windowStartTick,
		WindowEndTick:    currentTick,
		Births:           c.births,
		DeathsOldAge:     c.deaths[components.CauseOldAge],
		DeathsStarvation: c.deaths[components.CauseStarvation],
		DeathsHealth:     c.deaths[components.CauseHealth],
		DeathsStranded:   c.deaths[components.CauseStranded],
		DeathsTemp:       c.deaths[components.CauseTemperature],
	}
	for _, n := range c.deaths {
		stats.Deaths += n
	}

	hunger := make([]float64, 0, len(creatures))
	energy := make([]float64, 0, len(creatures))
	age := make([]float64, 0, len(creatures))
	species := make(map[world.TypeID]struct{})

	for i := range creatures {
		cr := &creatures[i]
		if !cr.Alive() {
			continue
		}
		stats.Population++
		hunger = append(hunger, cr.Vit.Hunger)
		energy = append(energy, cr.Vit.Energy)
		age = append(age, cr.Vit.Age)
		stats.MaxGeneration = max(stats.MaxGeneration, cr.Org.Generation)

		if _, seen := species[cr.Org.TypeID]; seen {
			continue
		}
		species[cr.Org.TypeID] = struct{}{}
		if w == nil {
			continue
		}
		if ct, ok := w.Types.Lookup(cr.Org.TypeID); ok {
			if ct.IsHybrid {
				stats.Hybrids++
			}
			if ct.Aquatic() {
				stats.Aquatic++
			}
		}
	}
	stats.Species = len(species)

	h := Summarize(hunger)
	stats.HungerMean, stats.HungerStd = h.Mean, h.Std
	stats.HungerP10, stats.HungerP50, stats.HungerP90 = h.P10, h.P50, h.P90

	e := Summarize(energy)
	stats.EnergyMean, stats.EnergyStd = e.Mean, e.Std
	stats.EnergyP10, stats.EnergyP50, stats.EnergyP90 = e.P10, e.P50, e.P90

	a := Summarize(age)
	stats.AgeMean, stats.AgeP90 = a.Mean, a.P90

	if w != nil && w.Grid != nil {
		stats.WorldTime = w.Time
		stats.WeatherLive = len(w.Weather)
		var temp float64
		w.Grid.Each(func(_, _ int, t *world.Tile) {
			stats.TotalFood += t.Food
			temp += t.Temp
		})
		if n := len(w.Grid.Tiles); n > 0 {
			stats.MeanTemp = temp / float64(n)
		}
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.births = 0
	clear(c.deaths[:])

	return stats
}
