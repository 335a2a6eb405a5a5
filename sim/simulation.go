// Package sim runs the per-tick creature simulation for one world.
package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/events"
	"github.com/pthm-cable/critters/systems"
	"github.com/pthm-cable/critters/telemetry"
	"github.com/pthm-cable/critters/world"
)

// ErrSpawnLimit is returned when a type has used up its manual spawns.
var ErrSpawnLimit = errors.New("spawn limit reached")

// GridCellSize is the spatial index cell size in tiles.
const GridCellSize = 4.0

// Report is the outcome of one tick.
type Report struct {
	Tick    int32
	Season  float64
	Weather []world.WeatherEvent
	Events  []events.Event
}

// Simulation owns one world: tile grid, type registry, ECS creature store,
// weather and a seeded random source.
type Simulation struct {
	ecs   *ecs.World
	World *world.World
	rng   *rand.Rand
	seed  int64
	queue *events.Queue

	mapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Organism,
		components.Vitals,
		components.Behavior,
	]
	filter *ecs.Filter5[
		components.Position,
		components.Velocity,
		components.Organism,
		components.Vitals,
		components.Behavior,
	]

	// Individual component mappers for lookups
	posMap *ecs.Map1[components.Position]
	velMap *ecs.Map1[components.Velocity]
	orgMap *ecs.Map1[components.Organism]
	vitMap *ecs.Map1[components.Vitals]
	behMap *ecs.Map1[components.Behavior]

	grid      *systems.SpatialGrid
	views     []components.Creature
	neighbors []systems.Neighbor
	births    []systems.Offspring
	tallies   map[world.TypeID]systems.TypeTally

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	stats     []telemetry.WindowStats
	log       *slog.Logger

	tick int32
}

// New creates a simulation around w with a deterministic random source.
func New(w *world.World, seed int64) *Simulation {
	ew := ecs.NewWorld()
	s := &Simulation{
		ecs:   ew,
		World: w,
		rng:   rand.New(rand.NewSource(seed)),
		seed:  seed,
		queue: events.NewQueue(),
		mapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Organism,
			components.Vitals,
			components.Behavior,
		](ew),
		filter: ecs.NewFilter5[
			components.Position,
			components.Velocity,
			components.Organism,
			components.Vitals,
			components.Behavior,
		](ew),
		posMap:    ecs.NewMap1[components.Position](ew),
		velMap:    ecs.NewMap1[components.Velocity](ew),
		orgMap:    ecs.NewMap1[components.Organism](ew),
		vitMap:    ecs.NewMap1[components.Vitals](ew),
		behMap:    ecs.NewMap1[components.Behavior](ew),
		tallies:   make(map[world.TypeID]systems.TypeTally),
		collector: telemetry.NewCollector(config.Cfg().Telemetry.StatsWindow),
		perf:      telemetry.NewPerfCollector(60),
		log:       slog.Default().With("seed", seed),
	}
	s.grid = systems.NewSpatialGrid(w.Size(), GridCellSize)
	return s
}

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() int32 { return s.tick }

// Rand exposes the simulation's random source for fixture setup.
func (s *Simulation) Rand() *rand.Rand { return s.rng }

// Collector returns the telemetry collector.
func (s *Simulation) Collector() *telemetry.Collector { return s.collector }

// Perf returns the step timing collector.
func (s *Simulation) Perf() *telemetry.PerfCollector { return s.perf }

// DrainStats returns window stats flushed since the last call.
func (s *Simulation) DrainStats() []telemetry.WindowStats {
	out := s.stats
	s.stats = nil
	return out
}

// Step advances the world by dt: environment first, then every live
// creature in store order, then deferred births, removals and evolution.
// Newborns become visible from the next tick.
func (s *Simulation) Step(dt float64) Report {
	w := s.World
	s.queue.SetTick(s.tick)
	s.perf.StartTick()

	s.perf.StartPhase(telemetry.PhaseEnvironment)
	env := systems.UpdateEnvironment(w, dt, s.rng)

	s.perf.StartPhase(telemetry.PhaseSpatialGrid)
	s.collectViews()
	s.grid.Clear()
	for i := range s.views {
		s.grid.Insert(&s.views[i])
	}

	s.perf.StartPhase(telemetry.PhaseCreatures)
	clear(s.tallies)
	s.births = s.births[:0]
	updated := len(s.views)
	for i := range s.views {
		s.updateCreature(&s.views[i], dt)
	}

	s.perf.StartPhase(telemetry.PhaseBirths)
	for _, b := range s.births {
		s.spawn(b)
	}
	s.collector.RecordBirths(len(s.births))

	s.perf.StartPhase(telemetry.PhaseCleanup)
	s.removeDead()

	s.perf.StartPhase(telemetry.PhaseEvolution)
	s.evolve(dt)

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.tick++
	if s.collector.ShouldFlush(s.tick) {
		stats := s.collector.Flush(s.tick, s.Creatures(), w)
		s.stats = append(s.stats, stats)
		s.log.Debug("window", "stats", stats)
	}
	s.perf.EndTick(updated)

	weather := make([]world.WeatherEvent, len(env.Weather))
	copy(weather, env.Weather)
	return Report{
		Tick:    s.tick,
		Season:  env.Season,
		Weather: weather,
		Events:  s.queue.Drain(),
	}
}

// collectViews snapshots component pointers for every live entity.
// No structural change happens until the pass completes.
func (s *Simulation) collectViews() {
	s.views = s.views[:0]
	query := s.filter.Query()
	for query.Next() {
		pos, vel, org, vit, beh := query.Get()
		s.views = append(s.views, components.Creature{
			Entity: query.Entity(),
			Pos:    pos,
			Vel:    vel,
			Org:    org,
			Vit:    vit,
			Beh:    beh,
		})
	}
}

// updateCreature runs needs, behaviour, movement, feeding and lifecycle for one creature.
func (s *Simulation) updateCreature(c *components.Creature, dt float64) {
	if !c.Alive() {
		return
	}
	w := s.World
	ct, ok := w.Types.Lookup(c.Org.TypeID)
	if !ok {
		return
	}

	tile := w.Grid.TileAt(c.Pos.X, c.Pos.Y)
	radius := math.Max(systems.DetectionRadius(c, ct), systems.SenseRange(c, ct))
	s.neighbors = s.grid.QueryRadiusInto(s.neighbors[:0], c.Pos.X, c.Pos.Y, radius, c)

	needs := systems.EvaluateNeeds(c, ct, tile, s.neighbors, w.Types, dt)
	systems.SelectState(c, needs.Urgencies, s.queue)
	systems.ResolveTarget(c, ct, w, needs, s.neighbors)
	systems.ApplyStateEffects(c, ct, dt, s.queue)
	systems.UpdateMovement(c, ct, w, dt, s.rng)

	tile = w.Grid.TileAt(c.Pos.X, c.Pos.Y)
	systems.Graze(c, ct, tile, dt, s.rng)
	systems.UpdateLifecycle(c, ct, dt)

	if systems.IsFertile(c, ct) {
		mateRange := config.Cfg().Reproduction.MateRange
		s.neighbors = s.grid.QueryRadiusInto(s.neighbors[:0], c.Pos.X, c.Pos.Y, mateRange+GridCellSize, c)
		if mate, _ := systems.FindMate(c, s.neighbors, w.Types, mateRange); mate != nil {
			mateType, _ := w.Types.Lookup(mate.Org.TypeID)
			if baby, ok := systems.AttemptReproduction(c, ct, mate, mateType, w, s.rng, s.queue); ok {
				s.births = append(s.births, baby)
				s.tally(baby.Org.TypeID, 1, 0)
				if ct.ID != mateType.ID {
					s.log.Info("hybrid born", "type", baby.Org.TypeID.String(), "parent1", ct.Name, "parent2", mateType.Name)
				}
			}
		}
	}

	if cause, died := systems.CheckDeath(c, ct, tile, s.rng); died {
		s.queue.Push(events.Death{Creature: c.Org.ID, Type: ct.ID, Cause: cause})
		s.collector.RecordDeath(cause)
	} else {
		s.tally(ct.ID, 0, 1)
	}
}

// tally credits births and survivors to a type for this tick's evolution
// scoring. Births count toward the offspring's type, which for hybrids is
// neither parent's.
func (s *Simulation) tally(id world.TypeID, births, count int) {
	t := s.tallies[id]
	t.Births += births
	t.Count += count
	s.tallies[id] = t
}

// removeDead removes flagged creatures after the pass.
func (s *Simulation) removeDead() {
	// First pass: collect dead entities (must complete before modifying)
	var toRemove []ecs.Entity
	for i := range s.views {
		if s.views[i].Vit.Dead {
			toRemove = append(toRemove, s.views[i].Entity)
		}
	}
	// Views hold pointers into storage that removal invalidates.
	s.views = s.views[:0]

	// Second pass: remove entities
	for _, e := range toRemove {
		if s.ecs.Alive(e) {
			s.ecs.RemoveEntity(e)
		}
	}
}

// evolve clones types whose evolution score crossed the threshold and
// spawns founders of each clone at existing members' positions.
func (s *Simulation) evolve(dt float64) {
	evolved := systems.EvolveTypes(s.World.Types, s.tallies, dt, s.rng)
	if len(evolved) == 0 {
		return
	}
	founders := config.Cfg().Evolution.Founders

	for _, ev := range evolved {
		var sites []components.Position
		query := s.filter.Query()
		for query.Next() {
			pos, _, org, _, _ := query.Get()
			if org.TypeID == ev.Source.ID && len(sites) < founders {
				sites = append(sites, *pos)
			}
		}

		for _, p := range sites {
			s.spawn(systems.NewCreature(ev.Evolved, p.X, p.Y, 0.3, s.rng))
		}

		s.queue.Push(events.SpeciesEvolved{
			Type:       ev.Evolved.ID,
			Name:       ev.Evolved.Name,
			ParentType: ev.Source.ID,
			Generation: ev.Evolved.Generation,
			Founders:   len(sites),
		})
		s.log.Info("species evolved",
			"name", ev.Evolved.Name,
			"from", ev.Source.Name,
			"generation", ev.Evolved.Generation,
			"founders", len(sites))
	}
}

// spawn materializes an offspring as an entity.
func (s *Simulation) spawn(o systems.Offspring) ecs.Entity {
	vel := components.Velocity{}
	return s.mapper.NewEntity(&o.Pos, &vel, &o.Org, &o.Vit, &o.Beh)
}

// RegisterType adds a creature type, assigning an id if it has none.
// The evolution score is reset and a default spawn limit applied.
func (s *Simulation) RegisterType(ct *world.CreatureType) (*world.CreatureType, error) {
	if ct == nil {
		return nil, fmt.Errorf("register type: %w", world.ErrTypeNotFound)
	}
	if ct.ID.IsNil() {
		ct.ID = world.NewTypeID(s.rng)
	}
	ct.EvoScore = 0
	if ct.SpawnLimit <= 0 {
		ct.SpawnLimit = config.Cfg().Population.SpawnLimit
	}
	if err := s.World.Types.Register(ct); err != nil {
		return nil, err
	}
	return ct, nil
}

// Spawn places a fresh creature of typeID at the centre of the tile
// containing (x, y). Manual spawns count against the type's spawn limit.
func (s *Simulation) Spawn(typeID world.TypeID, x, y float64) (ecs.Entity, error) {
	ct, err := s.World.Types.Get(typeID)
	if err != nil {
		return ecs.Entity{}, fmt.Errorf("spawn: %w", err)
	}
	if ct.Spawned >= ct.SpawnLimit {
		return ecs.Entity{}, fmt.Errorf("spawn %s (%d/%d): %w", ct.Name, ct.Spawned, ct.SpawnLimit, ErrSpawnLimit)
	}
	e := s.place(ct, x, y, 0.1)
	ct.Spawned++
	return e, nil
}

// place spawns a creature at a tile centre without touching spawn limits.
func (s *Simulation) place(ct *world.CreatureType, x, y, hunger float64) ecs.Entity {
	g := s.World.Grid
	tx := math.Floor(clampTile(x, g.Size)) + 0.5
	ty := math.Floor(clampTile(y, g.Size)) + 0.5

	o := systems.NewCreature(ct, tx, ty, hunger, s.rng)
	info := systems.StageFor(0, ct)
	o.Beh.LifeStage = info.Stage
	o.Beh.SizeMultiplier = info.SizeMul
	o.Beh.SpeedMultiplier = info.SpeedMul
	return s.spawn(o)
}

func clampTile(v float64, size int) float64 {
	return math.Max(0, math.Min(float64(size)-1, v))
}

// Creatures returns views of all live creatures. The views are only
// valid until the next Step, Spawn or removal.
func (s *Simulation) Creatures() []components.Creature {
	var out []components.Creature
	query := s.filter.Query()
	for query.Next() {
		pos, vel, org, vit, beh := query.Get()
		out = append(out, components.Creature{
			Entity: query.Entity(),
			Pos:    pos,
			Vel:    vel,
			Org:    org,
			Vit:    vit,
			Beh:    beh,
		})
	}
	return out
}

// Creature returns a view of one entity, if it is still alive.
func (s *Simulation) Creature(e ecs.Entity) (components.Creature, bool) {
	if !s.ecs.Alive(e) {
		return components.Creature{}, false
	}
	return components.Creature{
		Entity: e,
		Pos:    s.posMap.Get(e),
		Vel:    s.velMap.Get(e),
		Org:    s.orgMap.Get(e),
		Vit:    s.vitMap.Get(e),
		Beh:    s.behMap.Get(e),
	}, true
}

// Snapshot captures the current world and live creatures.
func (s *Simulation) Snapshot() *telemetry.Snapshot {
	return telemetry.BuildSnapshot(s.seed, s.tick, s.World, s.Creatures())
}

// Seed returns the seed the simulation was created with.
func (s *Simulation) Seed() int64 { return s.seed }

// Population returns the number of live creatures.
func (s *Simulation) Population() int {
	query := s.filter.Query()
	n := query.Count()
	query.Close()
	return n
}
