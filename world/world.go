package world

// World is the mutable state shared by every system of one simulation.
type World struct {
	Grid    *Grid
	Types   *TypeRegistry
	Weather []WeatherEvent
	Time    float64 // Accumulated dt
}

// New creates a world around an existing grid.
func New(grid *Grid) *World {
	return &World{
		Grid:  grid,
		Types: NewTypeRegistry(),
	}
}

// Size returns the grid side length as a float.
func (w *World) Size() float64 {
	if w == nil || w.Grid == nil {
		return 0
	}
	return float64(w.Grid.Size)
}
