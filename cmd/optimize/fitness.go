package main

import (
	"context"
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/critters/config"
	"github.com/pthm-cable/critters/sim"
	"github.com/pthm-cable/critters/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	statsWindow int

	// Best run tracking
	mu           sync.Mutex
	bestFitness  float64
	bestSnapshot *telemetry.Snapshot
	lastQuality  float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 300,
		bestFitness: math.Inf(1),
	}
}

// BestSnapshot returns the final state of the best seed of the best evaluation.
func (fe *FitnessEvaluator) BestSnapshot() *telemetry.Snapshot {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestSnapshot
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// A world is functionally extinct once it has had fewer than minSpecies
// living species for extinctionGraceWindows consecutive stats windows.
const (
	minSpecies             = 2
	extinctionGraceWindows = 3
)

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int32                   // ticks before functional extinction (or maxTicks if survived)
	windowStats   []telemetry.WindowStats // every flushed window
	snapshot      *telemetry.Snapshot
}

// Evaluate computes fitness for a parameter vector (lower = better).
// All seeds run in parallel under one config; fitness is the mean over seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	cfg.Telemetry.StatsWindow = fe.statsWindow
	config.Set(cfg)

	results, err := fe.runSeeds()
	if err != nil {
		fmt.Printf("evaluation failed: %v\n", err)
		return 0
	}

	var totalFitness, totalQuality float64
	bestSeedFitness := math.Inf(1)
	var bestSeedSnapshot *telemetry.Snapshot
	for _, r := range results {
		quality := computeQuality(r.windowStats)
		fitness := computeFitness(r.survivalTicks, quality)
		totalFitness += fitness
		totalQuality += quality
		if fitness < bestSeedFitness {
			bestSeedFitness = fitness
			bestSeedSnapshot = r.snapshot
		}
	}

	n := float64(len(results))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestSnapshot = bestSeedSnapshot
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runSeeds runs one world per seed until functional extinction or maxTicks.
func (fe *FitnessEvaluator) runSeeds() ([]*runResult, error) {
	sims := make([]*sim.Simulation, len(fe.seeds))
	results := make([]*runResult, len(fe.seeds))
	below := make([]int, len(fe.seeds))

	for i, seed := range fe.seeds {
		s, err := sim.NewFromConfig(seed)
		if err != nil {
			return nil, err
		}
		sims[i] = s
		results[i] = &runResult{survivalTicks: fe.maxTicks}
	}

	dt := config.Cfg().Derived.DT
	err := sim.RunWorlds(context.Background(), sims, int(fe.maxTicks), dt, func(i int, r sim.Report) error {
		res := results[i]
		for _, stats := range sims[i].DrainStats() {
			res.windowStats = append(res.windowStats, stats)

			if stats.Population > 0 && stats.Species >= minSpecies {
				below[i] = 0
				continue
			}
			below[i]++
			if stats.Population == 0 || below[i] >= extinctionGraceWindows {
				res.survivalTicks = r.Tick
				return sim.ErrStopWorld
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i, s := range sims {
		results[i].snapshot = s.Snapshot()
	}
	return results, nil
}

// copyConfig copies the base config so evaluations never share state.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Species = append([]config.SpeciesConfig(nil), fe.baseConfig.Species...)
	return &cfg
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalTicks × (1.0 + 0.2 × quality))
// Survival dominates; quality adds up to 20% bonus to differentiate
// configs with similar survival.
func computeFitness(survivalTicks int32, quality float64) float64 {
	return -(float64(survivalTicks) * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightDiversity = 0.35
	qualityWeightStability = 0.25
	qualityWeightHunger    = 0.20
	qualityWeightBirths    = 0.20

	qualityWarmupWindows = 2 // skip first N windows (warmup)
	qualityTargetSpecies = 5 // species count that earns a full diversity score
)

// computeQuality computes ecosystem quality ∈ [0, 1] from window stats.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	var diversitySum, hungerSum, birthSum float64
	pops := make([]float64, 0, len(valid))

	for _, w := range valid {
		if w.Population == 0 {
			continue
		}
		pops = append(pops, float64(w.Population))

		// 1. Living species, saturating at the target
		diversitySum += math.Min(float64(w.Species)/qualityTargetSpecies, 1)

		// 2. Median hunger near the comfortable middle of the scale
		hungerSum += math.Exp(-math.Pow((w.HungerP50-0.5)/0.5, 2))

		// 3. Births per creature per window
		birthSum += 1 - math.Exp(-float64(w.Births)/float64(w.Population))
	}

	if len(pops) == 0 {
		return 0
	}
	n := float64(len(pops))

	// 4. Population stability (coefficient of variation across windows)
	stabilityScore := 0.0
	if len(pops) >= 2 {
		mean, std := stat.PopMeanStdDev(pops, nil)
		if mean > 0 {
			cv := std / mean
			stabilityScore = math.Exp(-cv * cv)
		}
	}

	quality := qualityWeightDiversity*diversitySum/n +
		qualityWeightStability*stabilityScore +
		qualityWeightHunger*hungerSum/n +
		qualityWeightBirths*birthSum/n

	return clamp01(quality)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
