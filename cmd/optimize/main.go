// Package main searches simulation parameters with CMA-ES for settings that
// keep several creature species alive together.
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/telemetry"
)

type options struct {
	configPath string
	outputDir  string
	maxTicks   int
	seeds      int
	seedBase   int64
	maxEvals   int
	population int
	stepSize   float64
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Base config YAML file (empty = use defaults)")
	flag.StringVar(&opts.outputDir, "output", "", "Output directory for results (required)")
	flag.IntVar(&opts.maxTicks, "max-ticks", 60000, "Tick cap per simulation run")
	flag.IntVar(&opts.seeds, "seeds", 3, "Worlds per evaluation")
	flag.Int64Var(&opts.seedBase, "seed-base", 42, "Seed of the first world; others step by 1000")
	flag.IntVar(&opts.maxEvals, "max-evals", 200, "Maximum number of evaluations")
	flag.IntVar(&opts.population, "population", 0, "CMA-ES population size (0 = 4 + 3 ln n)")
	flag.Float64Var(&opts.stepSize, "step", 0.3, "Initial CMA-ES step size in normalized units")
	flag.Parse()

	// Worlds log founders and evolution at Info; keep the console for progress.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "optimize:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if opts.outputDir == "" {
		return errors.New("-output is required")
	}
	if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := config.Init(opts.configPath); err != nil {
		return err
	}
	baseCfg := config.Cfg()

	params := NewParamVector()
	seeds := make([]int64, max(opts.seeds, 1))
	for i := range seeds {
		seeds[i] = opts.seedBase + int64(i)*1000
	}
	evaluator := NewFitnessEvaluator(params, int32(opts.maxTicks), seeds, baseCfg)

	elog, err := newEvalLog(filepath.Join(opts.outputDir, "optimize_log.csv"), params, opts.maxEvals)
	if err != nil {
		return err
	}
	defer elog.close()

	popSize := opts.population
	if popSize <= 0 {
		popSize = 4 + int(3*math.Log(float64(params.Dim())))
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			used := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(used)
			elog.record(used, fitness, evaluator.LastQuality())
			return fitness
		},
	}
	settings := &optimize.Settings{FuncEvaluations: opts.maxEvals}
	method := &optimize.CmaEsChol{InitStepSize: opts.stepSize, Population: popSize}

	fmt.Printf("CMA-ES: %d parameters, population %d, %d evaluations, %d worlds × %d ticks each\n",
		params.Dim(), popSize, opts.maxEvals, len(seeds), opts.maxTicks)

	initX := params.Normalize(params.Clamp(params.ExtractFromConfig(baseCfg)))
	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		slog.Warn("optimization ended early", "error", err)
	}

	best := elog.best
	if best == nil {
		if result == nil {
			return errors.New("no evaluations completed")
		}
		best = params.Clamp(params.Denormalize(result.X))
	}

	fmt.Printf("\nDone: %d evaluations in %s, best fitness %.0f\n",
		elog.count, formatDuration(time.Since(elog.start)), elog.bestFitness)
	for i, spec := range params.Specs {
		fmt.Printf("  %-20s %-32s %.6f\n", spec.Name, spec.Path, best[i])
	}

	return saveBest(opts, params, best, evaluator.BestSnapshot())
}

// saveBest writes the winning config and the final world of its best run.
func saveBest(opts options, params *ParamVector, best []float64, snap *telemetry.Snapshot) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("reloading config: %w", err)
	}
	params.ApplyToConfig(cfg, best)

	path := filepath.Join(opts.outputDir, "best_config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		return err
	}
	fmt.Println("best config:", path)

	if snap != nil {
		path, err := telemetry.SaveSnapshot(snap, opts.outputDir)
		if err != nil {
			return err
		}
		fmt.Println("best run snapshot:", path)
	}
	return nil
}

// evalLog appends one CSV row per evaluation and prints progress.
type evalLog struct {
	f   *os.File
	w   *csv.Writer
	max int

	start       time.Time
	count       int
	bestFitness float64
	best        []float64
}

func newEvalLog(path string, params *ParamVector, maxEvals int) (*evalLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating eval log: %w", err)
	}
	w := csv.NewWriter(f)

	header := []string{"eval", "fitness", "quality"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	return &evalLog{f: f, w: w, max: maxEvals, start: time.Now(), bestFitness: math.Inf(1)}, nil
}

func (l *evalLog) record(used []float64, fitness, quality float64) {
	l.count++
	if fitness < l.bestFitness {
		l.bestFitness = fitness
		l.best = append(l.best[:0], used...)
	}

	row := []string{
		strconv.Itoa(l.count),
		strconv.FormatFloat(fitness, 'f', 2, 64),
		strconv.FormatFloat(quality, 'f', 4, 64),
	}
	for _, v := range used {
		row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
	}
	if err := l.w.Write(row); err != nil {
		slog.Error("eval log write failed", "error", err)
	}
	l.w.Flush()

	elapsed := time.Since(l.start)
	eta := time.Duration(l.max-l.count) * (elapsed / time.Duration(l.count))
	fmt.Printf("eval %d/%d: survived %.0f ticks, quality %.2f (best %.0f) | %s elapsed, ETA %s\n",
		l.count, l.max, survivalTicks(fitness, quality), quality, l.bestFitness,
		formatDuration(elapsed), formatDuration(eta))
}

func (l *evalLog) close() {
	l.w.Flush()
	if err := l.f.Close(); err != nil {
		slog.Error("closing eval log", "error", err)
	}
}

// survivalTicks inverts computeFitness for progress output.
func survivalTicks(fitness, quality float64) float64 {
	return -fitness / (1 + 0.2*quality)
}

// formatDuration renders d as 1h02m03s or 2m03s.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
