// Package systems implements the per-tick simulation rules.
package systems

import (
	"math"

	"github.com/pthm-cable/critters/components"
)

// Neighbor holds a nearby creature with precomputed spatial data.
type Neighbor struct {
	C      *components.Creature
	DX, DY float64 // Delta from query origin
	DistSq float64 // Squared distance (avoid sqrt in hot path)
}

// Dist returns the distance to the neighbor.
func (n Neighbor) Dist() float64 {
	return math.Sqrt(n.DistSq)
}

// SpatialGrid provides fast neighbor lookups over a bounded, non-wrapping world.
// It indexes creature views built for the current tick.
//
// Buckets are assigned from start-of-tick positions and are not updated as
// creatures move during the pass. Distances are measured from live positions.
// A creature that moved less than one cell since insertion is still found.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]*components.Creature
}

// NewSpatialGrid creates a spatial grid covering a size×size world.
func NewSpatialGrid(size, cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = 4
	}
	cols := int(size/cellSize) + 1
	rows := cols

	cells := make([][]*components.Creature, cols*rows)
	for i := range cells {
		cells[i] = make([]*components.Creature, 0, 8) // pre-allocate small capacity
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all creatures from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds a creature view at its current position.
func (g *SpatialGrid) Insert(c *components.Creature) {
	idx := g.cellIndex(c.Pos.X, c.Pos.Y)
	g.cells[idx] = append(g.cells[idx], c)
}

// QueryRadiusInto appends every creature within radius of (x, y) to dst,
// skipping exclude. Dead creatures are still returned; callers filter.
// Reuse dst across calls to avoid allocations.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, x, y, radius float64, exclude *components.Creature) []Neighbor {
	// One spare ring of cells finds creatures that moved since insertion.
	cellRadius := int(math.Ceil(radius/g.cellSize)) + 1

	centerCol := int(x / g.cellSize)
	centerRow := int(y / g.cellSize)

	radiusSq := radius * radius

	for dr := -cellRadius; dr <= cellRadius; dr++ {
		row := centerRow + dr
		if row < 0 || row >= g.rows {
			continue
		}
		for dc := -cellRadius; dc <= cellRadius; dc++ {
			col := centerCol + dc
			if col < 0 || col >= g.cols {
				continue
			}

			for _, c := range g.cells[row*g.cols+col] {
				if c == exclude {
					continue
				}
				dx := c.Pos.X - x
				dy := c.Pos.Y - y
				distSq := dx*dx + dy*dy
				if distSq <= radiusSq {
					dst = append(dst, Neighbor{C: c, DX: dx, DY: dy, DistSq: distSq})
				}
			}
		}
	}

	return dst
}

// cellIndex returns the flat index for a world position.
func (g *SpatialGrid) cellIndex(x, y float64) int {
	col := int(x / g.cellSize)
	row := int(y / g.cellSize)

	// Clamp to valid range
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return row*g.cols + col
}
