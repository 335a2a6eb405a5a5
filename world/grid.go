package world

import "math"

// Grid is a square, row-major tile grid.
type Grid struct {
	Size  int
	Tiles []Tile
}

// NewGrid allocates a size×size grid of zero tiles.
func NewGrid(size int) *Grid {
	if size < 1 {
		size = 1
	}
	return &Grid{
		Size:  size,
		Tiles: make([]Tile, size*size),
	}
}

// clamp restricts a tile index to [0, Size-1].
func (g *Grid) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i >= g.Size {
		return g.Size - 1
	}
	return i
}

// At returns the tile at integer coordinates, clamped to the grid.
func (g *Grid) At(x, y int) *Tile {
	x, y = g.clamp(x), g.clamp(y)
	return &g.Tiles[y*g.Size+x]
}

// TileAt returns the tile containing the continuous position (x, y).
// Positions outside the grid resolve to the nearest edge tile.
func (g *Grid) TileAt(x, y float64) *Tile {
	return g.At(int(math.Floor(x)), int(math.Floor(y)))
}

// InBounds reports whether integer coordinates lie on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Size && y < g.Size
}

// Each calls fn for every tile with its coordinates.
func (g *Grid) Each(fn func(x, y int, t *Tile)) {
	for y := 0; y < g.Size; y++ {
		row := y * g.Size
		for x := 0; x < g.Size; x++ {
			fn(x, y, &g.Tiles[row+x])
		}
	}
}
