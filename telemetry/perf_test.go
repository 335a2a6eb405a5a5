package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_PhaseTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseEnvironment)
		time.Sleep(20 * time.Microsecond)
		pc.StartPhase(PhaseCreatures)
		time.Sleep(300 * time.Microsecond)
		pc.EndTick(40)
	}

	stats := pc.Stats()
	if stats.AvgTick <= 0 || stats.MinTick > stats.MaxTick {
		t.Fatalf("bad tick timing: avg %v min %v max %v", stats.AvgTick, stats.MinTick, stats.MaxTick)
	}
	if stats.PhaseAvg[PhaseCreatures] < 300*time.Microsecond {
		t.Errorf("creatures phase = %v, want >= 300µs", stats.PhaseAvg[PhaseCreatures])
	}
	if stats.PhasePct[PhaseCreatures] <= stats.PhasePct[PhaseEnvironment] {
		t.Errorf("slow phase %.1f%% should exceed fast phase %.1f%%",
			stats.PhasePct[PhaseCreatures], stats.PhasePct[PhaseEnvironment])
	}
	if stats.PhaseAvg[PhaseBirths] != 0 {
		t.Error("untimed phases should stay zero")
	}
	if stats.AvgCreatures != 40 {
		t.Errorf("avg creatures = %v, want 40", stats.AvgCreatures)
	}
	if stats.CreaturesPerSecond <= stats.TicksPerSecond {
		t.Error("creature throughput should scale ticks per second by the population")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(3)

	for i := 1; i <= 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseSpatialGrid)
		pc.EndTick(i)
	}

	// Only ticks 8, 9 and 10 remain.
	stats := pc.Stats()
	if stats.AvgCreatures != 9 {
		t.Errorf("avg creatures = %v, want 9", stats.AvgCreatures)
	}
	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollector_Empty(t *testing.T) {
	stats := NewPerfCollector(0).Stats()
	if stats.AvgTick != 0 || stats.TicksPerSecond != 0 || stats.FPS != 0 {
		t.Errorf("empty collector should report zeros, got %+v", stats)
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("frame duration = %v, want >= 15ms", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("fps = %v, want in (0, 70]", stats.FPS)
	}
}

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseEnvironment, "environment"},
		{PhaseSpatialGrid, "spatial_grid"},
		{PhaseTelemetry, "telemetry"},
		{numPhases, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d) = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	var s PerfStats
	s.AvgTick = 1500 * time.Microsecond
	s.CreaturesPerSecond = 12000
	s.PhasePct[PhaseEnvironment] = 20
	s.PhasePct[PhaseCreatures] = 70
	s.PhasePct[PhaseCleanup] = 10

	row := s.ToCSV(600)
	if row.WindowEnd != 600 || row.AvgTickUS != 1500 {
		t.Errorf("window_end/avg_tick_us = %d/%d, want 600/1500", row.WindowEnd, row.AvgTickUS)
	}
	if row.EnvironmentPct != 20 || row.CreaturesPct != 70 || row.CleanupPct != 10 {
		t.Errorf("phase pct not carried over: %+v", row)
	}
	if row.EvolutionPct != 0 || row.CreaturesPerSec != 12000 {
		t.Errorf("unexpected row %+v", row)
	}
}
