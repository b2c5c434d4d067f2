package main

import (
	"context"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/grandfishing/config"
	"github.com/pthm-cable/grandfishing/game"
	"github.com/pthm-cable/grandfishing/telemetry"
)

// FitnessEvaluator runs headless simulations and scores how close the
// fleet's clearance time lands to the target.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    uint64
	targetTicks float64
	seeds       []int64
	baseConfig  *config.Config

	mu         sync.Mutex
	lastReport evalReport
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, targetTicks, maxTicks uint64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		targetTicks: float64(targetTicks),
		seeds:       seeds,
		baseConfig:  baseCfg,
	}
}

// evalReport summarises one evaluation across seeds.
type evalReport struct {
	meanClear float64 // ticks until the fleet was gone (maxTicks if never)
	stdClear  float64
	uncleared int     // seeds that hit maxTicks with ships still at sea
	quality   float64 // mean share of hauls that landed fish
}

// LastReport returns the summary of the most recent evaluation.
func (fe *FitnessEvaluator) LastReport() evalReport {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastReport
}

// runResult holds the results from a single simulation run.
type runResult struct {
	clearTicks  uint64
	cleared     bool
	windowStats []telemetry.WindowStats
}

// Quality contributes at most this much to the fitness.
const qualityWeight = 0.1

// Evaluate computes fitness for a parameter vector (lower = better). The
// main term is the squared relative error of the mean clearance tick.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]runResult, len(fe.seeds))
	errs := make([]error, len(fe.seeds))

	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx], errs[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	clear := make([]float64, 0, len(results))
	var report evalReport
	var qualitySum float64
	for i, r := range results {
		if errs[i] != nil {
			return math.Inf(1)
		}
		clear = append(clear, float64(r.clearTicks))
		if !r.cleared {
			report.uncleared++
		}
		qualitySum += haulQuality(r.windowStats)
	}
	report.meanClear, report.stdClear = stat.PopMeanStdDev(clear, nil)
	report.quality = qualitySum / float64(len(results))

	fe.mu.Lock()
	fe.lastReport = report
	fe.mu.Unlock()

	relErr := (report.meanClear - fe.targetTicks) / fe.targetTicks
	return relErr*relErr + qualityWeight*(1-report.quality)
}

// runSimulation executes a single headless run until the fleet is gone or
// maxTicks is reached.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) (runResult, error) {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	var result runResult
	g, err := game.NewGameWithOptions(cfg, game.Options{
		Seed:     seed,
		MaxTicks: fe.maxTicks,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		return result, err
	}

	err = g.RunHeadless(context.Background())
	result.clearTicks = g.TicksRun()
	result.cleared = g.Live() == 0

	// Unload flushes the last partial window into result.
	g.Unload()
	return result, err
}

// copyConfig returns an independent copy of the base config. Config holds
// only values, so a struct copy is deep.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// haulQuality is the share of hauls that brought up fish, over all windows.
func haulQuality(windows []telemetry.WindowStats) float64 {
	var hauls, empty int
	for _, w := range windows {
		hauls += w.Hauls
		empty += w.EmptyHauls
	}
	if hauls == 0 {
		return 0
	}
	return 1 - float64(empty)/float64(hauls)
}
