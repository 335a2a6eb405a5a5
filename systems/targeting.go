package systems

import (
	"math"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/world"
)

// tileScore ranks a candidate tile; lower is better. ok=false rejects the tile.
type tileScore func(t *world.Tile, dist float64) (score float64, ok bool)

// searchTiles returns the centre of the best-scoring tile whose centre lies
// within radius of (x, y). Ties on score go to the nearer tile.
func searchTiles(g *world.Grid, x, y, radius float64, score tileScore) (tx, ty float64, found bool) {
	if g == nil || radius <= 0 {
		return 0, 0, false
	}
	r := int(math.Ceil(radius))
	cx, cy := int(math.Floor(x)), int(math.Floor(y))

	bestScore := math.Inf(1)
	bestDist := math.Inf(1)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			ix, iy := cx+dx, cy+dy
			if !g.InBounds(ix, iy) {
				continue
			}
			centerX, centerY := float64(ix)+0.5, float64(iy)+0.5
			d := distance(x, y, centerX, centerY)
			if d > radius {
				continue
			}
			s, ok := score(g.At(ix, iy), d)
			if !ok {
				continue
			}
			if s < bestScore || (s == bestScore && d < bestDist) {
				bestScore, bestDist = s, d
				tx, ty, found = centerX, centerY, true
			}
		}
	}
	return tx, ty, found
}

// habitatMatch reports whether a tile belongs to the type's habitat.
func habitatMatch(ct *world.CreatureType, t *world.Tile) bool {
	return ct.Aquatic() == t.IsWater()
}

// FindFoodTile returns the centre of the nearest tile in the creature's
// habitat holding more than the minimum food. Equal distances prefer more food.
func FindFoodTile(c *components.Creature, ct *world.CreatureType, g *world.Grid) (float64, float64, bool) {
	minFood := config.Cfg().Feeding.MinTileFood
	return searchTiles(g, c.Pos.X, c.Pos.Y, math.Max(1, SenseRange(c, ct)), func(t *world.Tile, d float64) (float64, bool) {
		if t.Food <= minFood || !habitatMatch(ct, t) {
			return 0, false
		}
		// Distance dominates; food breaks ties between equally distant tiles.
		return d - t.Food*1e-6, true
	})
}

// FindSurfaceTile returns the nearest water tile shallower than the surface depth.
func FindSurfaceTile(g *world.Grid, x, y float64) (float64, float64, bool) {
	cfg := config.Cfg().Movement
	return searchTiles(g, x, y, float64(cfg.SurfaceSearchRadius), func(t *world.Tile, d float64) (float64, bool) {
		if !t.IsWater() || t.Depth >= cfg.ShallowDepth {
			return 0, false
		}
		return d, true
	})
}

// FindDepthTile returns the water tile whose depth is closest to the preferred depth.
func FindDepthTile(c *components.Creature, ct *world.CreatureType, g *world.Grid) (float64, float64, bool) {
	return searchTiles(g, c.Pos.X, c.Pos.Y, math.Max(1, SenseRange(c, ct)), func(t *world.Tile, _ float64) (float64, bool) {
		if !t.IsWater() {
			return 0, false
		}
		return math.Abs(t.Depth - ct.PreferredDepth), true
	})
}

// FindShelterTile returns the habitat tile with the most comfortable temperature.
// Aquatic types compare water temperature, land types air temperature.
func FindShelterTile(c *components.Creature, ct *world.CreatureType, g *world.Grid) (float64, float64, bool) {
	return searchTiles(g, c.Pos.X, c.Pos.Y, math.Max(1, SenseRange(c, ct)), func(t *world.Tile, _ float64) (float64, bool) {
		if !habitatMatch(ct, t) {
			return 0, false
		}
		if ct.Aquatic() {
			return math.Abs(t.WaterTemp - ct.PreferredWaterTemp), true
		}
		return math.Abs(t.Temp - ct.PreferredTemp), true
	})
}

// FindMate returns the nearest fertile creature among neighbors within radius.
func FindMate(c *components.Creature, neighbors []Neighbor, types *world.TypeRegistry, radius float64) (*components.Creature, float64) {
	var best *components.Creature
	bestDist := math.Inf(1)
	radiusSq := radius * radius
	for _, nb := range neighbors {
		if nb.DistSq > radiusSq || nb.C == c {
			continue
		}
		ot, ok := types.Lookup(nb.C.Org.TypeID)
		if !ok || !IsFertile(nb.C, ot) {
			continue
		}
		if d := nb.Dist(); d < bestDist {
			best, bestDist = nb.C, d
		}
	}
	return best, bestDist
}

// fleePoint returns a point FleeDistance away from the threat, on the far side of the creature.
func fleePoint(c *components.Creature, n Needs, size float64) (float64, float64) {
	dx, dy := c.Pos.X-n.ThreatX, c.Pos.Y-n.ThreatY
	d := math.Hypot(dx, dy)
	if d < 1e-9 {
		dx, dy, d = 1, 0, 1
	}
	dist := config.Cfg().Movement.FleeDistance
	x := clampFloat(c.Pos.X+dx/d*dist, 0, size-0.001)
	y := clampFloat(c.Pos.Y+dy/d*dist, 0, size-0.001)
	return x, y
}

// ResolveTarget sets the movement target for the creature's current state
// and refreshes the NearMate flag used by the next state selection.
// SURFACE_FOR_AIR targets are resolved by UpdateMovement.
func ResolveTarget(c *components.Creature, ct *world.CreatureType, w *world.World, n Needs, neighbors []Neighbor) {
	if c == nil || ct == nil || w == nil || !c.Alive() {
		return
	}
	beh := c.Beh
	mateRange := config.Cfg().Reproduction.MateRange

	beh.NearMate = false
	switch beh.State {
	case components.StateSeekFood:
		if x, y, ok := FindFoodTile(c, ct, w.Grid); ok {
			beh.Target.Set(x, y)
		} else {
			beh.Target.Clear()
		}

	case components.StateEat:
		beh.Target.Clear()

	case components.StateSeekMate, components.StateCourtship:
		if !IsFertile(c, ct) {
			beh.Target.Clear()
			return
		}
		mate, d := FindMate(c, neighbors, w.Types, SenseRange(c, ct))
		if mate == nil {
			beh.Target.Clear()
			return
		}
		beh.Target.Set(mate.Pos.X, mate.Pos.Y)
		beh.NearMate = d < mateRange

	case components.StateSeekDepth:
		if x, y, ok := FindDepthTile(c, ct, w.Grid); ok {
			beh.Target.Set(x, y)
		} else {
			beh.Target.Clear()
		}

	case components.StateSeekShelter:
		if x, y, ok := FindShelterTile(c, ct, w.Grid); ok {
			beh.Target.Set(x, y)
		} else {
			beh.Target.Clear()
		}

	case components.StateFlee:
		if n.HasThreat {
			x, y := fleePoint(c, n, w.Size())
			beh.Target.Set(x, y)
		}

	case components.StateSurfaceForAir:
		// Resolved during movement.

	default:
		beh.Target.Clear()
	}
}
