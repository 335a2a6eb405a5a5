package systems

import (
	"math"
	"math/rand"
)

// Clamp functions for common value ranges

// clampFloat clamps a value between min and max.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a value to the [0, 1] range.
func clamp01(v float64) float64 {
	return clampFloat(v, 0, 1)
}

// Distance functions

// distanceSq returns the squared distance between two points.
func distanceSq(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

// distance returns the Euclidean distance between two points.
func distance(x1, y1, x2, y2 float64) float64 {
	return math.Sqrt(distanceSq(x1, y1, x2, y2))
}

// velocityMagnitude returns the magnitude of a velocity vector.
func velocityMagnitude(vx, vy float64) float64 {
	return math.Hypot(vx, vy)
}

// tileCenter returns the centre of the tile containing coordinate v.
func tileCenter(v float64) float64 {
	return math.Floor(v) + 0.5
}

// chance reports whether a per-dt probability fires this tick.
func chance(r *rand.Rand, perDT, dt float64) bool {
	return r.Float64() < perDT*dt
}
