package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	WorldTime       float64 `csv:"world_time"`

	// Population at window end
	Population int `csv:"population"`
	Species    int `csv:"species"`
	Hybrids    int `csv:"hybrids"`
	Aquatic    int `csv:"aquatic"`

	// Events during window
	Births           int `csv:"births"`
	Deaths           int `csv:"deaths"`
	DeathsOldAge     int `csv:"deaths_old_age"`
	DeathsStarvation int `csv:"deaths_starvation"`
	DeathsHealth     int `csv:"deaths_health"`
	DeathsStranded   int `csv:"deaths_stranded"`
	DeathsTemp       int `csv:"deaths_temperature"`

	// Hunger distribution (sampled at window end)
	HungerMean float64 `csv:"hunger_mean"`
	HungerStd  float64 `csv:"hunger_std"`
	HungerP10  float64 `csv:"hunger_p10"`
	HungerP50  float64 `csv:"hunger_p50"`
	HungerP90  float64 `csv:"hunger_p90"`

	// Energy distribution
	EnergyMean float64 `csv:"energy_mean"`
	EnergyStd  float64 `csv:"energy_std"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	// Age distribution
	AgeMean float64 `csv:"age_mean"`
	AgeP90  float64 `csv:"age_p90"`

	MaxGeneration int `csv:"max_generation"`

	// Environment
	TotalFood   float64 `csv:"total_food"`
	MeanTemp    float64 `csv:"mean_temp"`
	WeatherLive int     `csv:"weather_events"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// Summarize calculates population mean, std and percentiles.
func Summarize(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	var d Distribution
	d.Mean, d.Std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	d.P10 = Percentile(sorted, 0.10)
	d.P50 = Percentile(sorted, 0.50)
	d.P90 = Percentile(sorted, 0.90)
	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("world_time", s.WorldTime),
		slog.Int("population", s.Population),
		slog.Int("species", s.Species),
		slog.Int("hybrids", s.Hybrids),
		slog.Int("aquatic", s.Aquatic),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Int("deaths_old_age", s.DeathsOldAge),
		slog.Int("deaths_starvation", s.DeathsStarvation),
		slog.Int("deaths_health", s.DeathsHealth),
		slog.Int("deaths_stranded", s.DeathsStranded),
		slog.Int("deaths_temperature", s.DeathsTemp),
		slog.Float64("hunger_mean", s.HungerMean),
		slog.Float64("hunger_p50", s.HungerP50),
		slog.Float64("hunger_p90", s.HungerP90),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_p10", s.EnergyP10),
		slog.Float64("age_mean", s.AgeMean),
		slog.Int("max_generation", s.MaxGeneration),
		slog.Float64("total_food", s.TotalFood),
		slog.Float64("mean_temp", s.MeanTemp),
		slog.Int("weather_events", s.WeatherLive),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
