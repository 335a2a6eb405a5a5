package components

// Position represents an entity's world position in tile units.
type Position struct {
	X, Y float64
}

// Velocity represents an entity's velocity in tiles per dt.
type Velocity struct {
	X, Y float64
}
