package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/render"
	"github.com/pthm-cable/critters/sim"
	"github.com/pthm-cable/critters/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	worlds := flag.Int("worlds", 1, "Independent worlds to run in parallel (headless only)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in ticks (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Initial viewer speed multiplier")

	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level: %v\n", err)
		os.Exit(2)
	}
	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	if *headless {
		if err := runHeadless(rngSeed, max(*worlds, 1), *maxTicks, *outputDir, *snapshotDir, *logStats); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("simulation failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Critters")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	s, rec, closeOut, err := newWorld(rngSeed, *outputDir, *snapshotDir, *logStats)
	if err != nil {
		slog.Error("failed to create world", "error", err)
		return
	}
	defer closeOut()

	v := render.NewViewer(s, render.Options{StepsPerUpdate: *stepsPerUpdate, Recorder: rec})
	v.Run(*maxTicks)
}

// newWorld builds one simulation with its recorder. The returned func closes
// the world's output files.
func newWorld(seed int64, outputDir, snapshotDir string, logStats bool) (*sim.Simulation, *sim.Recorder, func(), error) {
	s, err := sim.NewFromConfig(seed)
	if err != nil {
		return nil, nil, nil, err
	}

	out, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := out.WriteConfig(config.Cfg()); err != nil {
		out.Close()
		return nil, nil, nil, err
	}

	rec := sim.NewRecorder(s, out, snapshotDir, logStats)
	return s, rec, func() {
		if err := out.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}, nil
}

// runHeadless steps n worlds in parallel until maxTicks or an interrupt.
// World i uses seed+i and, when several worlds run, its own world_<i>
// subdirectory for output and snapshots.
func runHeadless(seed int64, n, maxTicks int, outputDir, snapshotDir string, logStats bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sims := make([]*sim.Simulation, n)
	recs := make([]*sim.Recorder, n)
	for i := range n {
		out, snaps := outputDir, snapshotDir
		if n > 1 {
			sub := fmt.Sprintf("world_%d", i)
			if out != "" {
				out = filepath.Join(out, sub)
			}
			if snaps != "" {
				snaps = filepath.Join(snaps, sub)
			}
		}

		s, rec, closeOut, err := newWorld(seed+int64(i), out, snaps, logStats)
		if err != nil {
			return fmt.Errorf("world %d: %w", i, err)
		}
		defer closeOut()
		sims[i], recs[i] = s, rec
	}

	steps := maxTicks
	if steps <= 0 {
		steps = math.MaxInt
	}

	slog.Info("starting headless simulation",
		"seed", seed,
		"worlds", n,
		"max_ticks", maxTicks,
		"stats_window", config.Cfg().Telemetry.StatsWindow,
	)

	start := time.Now()
	err := sim.RunWorlds(ctx, sims, steps, config.Cfg().Derived.DT, func(i int, r sim.Report) error {
		return recs[i].Record(r)
	})

	for i, s := range sims {
		slog.Info("world finished",
			"world", i,
			"tick", s.Tick(),
			"population", s.Population(),
			"types", s.World.Types.Len(),
		)
	}
	slog.Info("headless run complete", "elapsed", time.Since(start).String())
	return err
}
