package world

import (
	"fmt"
	"math"
	"slices"
)

// WeatherKind is the type of a weather event.
type WeatherKind uint8

const (
	WeatherHeatwave WeatherKind = iota
	WeatherColdsnap
	WeatherRain
	WeatherDrought
)

var weatherNames = [...]string{"heatwave", "coldsnap", "rain", "drought"}

func (k WeatherKind) String() string {
	if int(k) < len(weatherNames) {
		return weatherNames[k]
	}
	return "unknown"
}

// MarshalText encodes the kind by name.
func (k WeatherKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a weather kind name.
func (k *WeatherKind) UnmarshalText(b []byte) error {
	i := slices.Index(weatherNames[:], string(b))
	if i < 0 {
		return fmt.Errorf("unknown weather %q", b)
	}
	*k = WeatherKind(i)
	return nil
}

// WeatherEvent is a circular region of altered climate.
type WeatherEvent struct {
	Kind      WeatherKind `json:"type"`
	CenterX   float64     `json:"centerX"`
	CenterY   float64     `json:"centerY"`
	Radius    float64     `json:"radius"`
	Intensity float64     `json:"intensity"`
	Duration  float64     `json:"duration"`
	Age       float64     `json:"age"`
}

// Influence returns the event's strength at tile (x, y), or 0 outside the radius.
func (e *WeatherEvent) Influence(x, y float64) float64 {
	d := math.Hypot(x-e.CenterX, y-e.CenterY)
	if d >= e.Radius {
		return 0
	}
	return (e.Radius - d) / e.Radius * e.Intensity
}

// Expired reports whether the event has outlived its duration.
func (e *WeatherEvent) Expired() bool {
	return e.Age > e.Duration
}
