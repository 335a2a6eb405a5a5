package telemetry

import (
	"log/slog"
	"time"
)

// Phase identifies one stage of a simulation step.
type Phase uint8

// Step phases in execution order.
const (
	PhaseEnvironment Phase = iota
	PhaseSpatialGrid
	PhaseCreatures
	PhaseBirths
	PhaseCleanup
	PhaseEvolution
	PhaseTelemetry
	numPhases
)

var phaseNames = [numPhases]string{
	"environment", "spatial_grid", "creatures", "births", "cleanup", "evolution", "telemetry",
}

func (p Phase) String() string {
	if p < numPhases {
		return phaseNames[p]
	}
	return "unknown"
}

// PhaseTimes holds one duration per phase.
type PhaseTimes [numPhases]time.Duration

// PerfSample is the timing of one tick.
type PerfSample struct {
	Tick      time.Duration
	Phases    PhaseTimes
	Creatures int // Creatures updated during the tick
}

// PerfCollector keeps a ring of recent tick samples.
type PerfCollector struct {
	samples []PerfSample
	next    int
	filled  int

	current    PerfSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	lastFrame     time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over the last windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{samples: make([]PerfSample, windowSize)}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = PerfSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase, p.phaseStart, p.inPhase = phase, now, true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && p.phase < numPhases {
		p.current.Phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// EndTick records the tick. creatures is the number of creatures updated.
func (p *PerfCollector) EndTick(creatures int) {
	now := time.Now()
	p.closePhase(now)
	p.current.Tick = now.Sub(p.tickStart)
	p.current.Creatures = creatures

	p.samples[p.next] = p.current
	p.next = (p.next + 1) % len(p.samples)
	p.filled = min(p.filled+1, len(p.samples))
}

// RecordFrame marks a rendered frame; the viewer calls it once per frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frameDuration = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the sample window.
type PerfStats struct {
	AvgTick time.Duration
	MinTick time.Duration
	MaxTick time.Duration

	PhaseAvg PhaseTimes
	PhasePct [numPhases]float64 // Share of the average tick

	TicksPerSecond     float64
	CreaturesPerSecond float64 // Creature updates per second of step time
	AvgCreatures       float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats computes averages over the filled part of the window.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	s.FrameDuration = p.frameDuration
	if p.frameDuration > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.filled == 0 {
		return s
	}

	var total time.Duration
	var phaseSum PhaseTimes
	var creatures int
	for i, sm := range p.samples[:p.filled] {
		total += sm.Tick
		creatures += sm.Creatures
		if i == 0 || sm.Tick < s.MinTick {
			s.MinTick = sm.Tick
		}
		s.MaxTick = max(s.MaxTick, sm.Tick)
		for ph, d := range sm.Phases {
			phaseSum[ph] += d
		}
	}

	n := time.Duration(p.filled)
	s.AvgTick = total / n
	s.AvgCreatures = float64(creatures) / float64(p.filled)
	for ph := range phaseSum {
		s.PhaseAvg[ph] = phaseSum[ph] / n
		if s.AvgTick > 0 {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) / float64(s.AvgTick) * 100
		}
	}
	if s.AvgTick > 0 {
		secs := s.AvgTick.Seconds()
		s.TicksPerSecond = 1 / secs
		s.CreaturesPerSecond = s.AvgCreatures / secs
	}
	return s
}

// LogStats logs the summary at Info.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// LogValue implements slog.LogValuer. Phases under 0.1% are omitted.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("min_tick_us", s.MinTick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
		slog.Int("creatures_per_sec", int(s.CreaturesPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for ph, pct := range s.PhasePct {
		if pct > 0.1 {
			attrs = append(attrs, slog.Float64(Phase(ph).String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is the perf.csv row.
type PerfStatsCSV struct {
	WindowEnd       int32   `csv:"window_end"`
	AvgTickUS       int64   `csv:"avg_tick_us"`
	MinTickUS       int64   `csv:"min_tick_us"`
	MaxTickUS       int64   `csv:"max_tick_us"`
	TicksPerSec     float64 `csv:"ticks_per_sec"`
	CreaturesPerSec float64 `csv:"creatures_per_sec"`
	FPS             float64 `csv:"fps"`
	EnvironmentPct  float64 `csv:"environment_pct"`
	SpatialGridPct  float64 `csv:"spatial_grid_pct"`
	CreaturesPct    float64 `csv:"creatures_pct"`
	BirthsPct       float64 `csv:"births_pct"`
	CleanupPct      float64 `csv:"cleanup_pct"`
	EvolutionPct    float64 `csv:"evolution_pct"`
	TelemetryPct    float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:       windowEnd,
		AvgTickUS:       s.AvgTick.Microseconds(),
		MinTickUS:       s.MinTick.Microseconds(),
		MaxTickUS:       s.MaxTick.Microseconds(),
		TicksPerSec:     s.TicksPerSecond,
		CreaturesPerSec: s.CreaturesPerSecond,
		FPS:             s.FPS,
		EnvironmentPct:  s.PhasePct[PhaseEnvironment],
		SpatialGridPct:  s.PhasePct[PhaseSpatialGrid],
		CreaturesPct:    s.PhasePct[PhaseCreatures],
		BirthsPct:       s.PhasePct[PhaseBirths],
		CleanupPct:      s.PhasePct[PhaseCleanup],
		EvolutionPct:    s.PhasePct[PhaseEvolution],
		TelemetryPct:    s.PhasePct[PhaseTelemetry],
	}
}
