package markov

import (
	"math"
	"sort"

	"github.com/ciphernom/rektcast/internal/domain/models"
	"github.com/ciphernom/rektcast/internal/services/features"
)

type simResult struct {
	steps  []models.SimulationStep
	sample [][]float64
}

// simulate draws price trajectories under the current transition matrix and
// per-state return moments, then folds them into per-step percentile
// statistics. Simulation cost is bounded structurally by the path cap;
// there is no cancellation inside the loop.
func (f *Forecaster) simulate(steps int, currentPrice float64, paths int) simResult {
	if steps <= 0 {
		return simResult{}
	}
	if paths <= 0 {
		paths = f.cfg.DefaultPaths
	}
	if paths > f.cfg.MaxPaths {
		paths = f.cfg.MaxPaths
	}

	tm := f.TransitionMatrix()

	// prices[t] holds the cross-path values at step t+1
	prices := make([][]float64, steps)
	for t := range prices {
		prices[t] = make([]float64, paths)
	}
	sampleN := f.cfg.SamplePathsKept
	if sampleN > paths {
		sampleN = paths
	}
	sample := make([][]float64, 0, sampleN)

	for p := 0; p < paths; p++ {
		state := f.sampleCategorical(f.current[:])
		price := currentPrice
		var path []float64
		if p < sampleN {
			path = make([]float64, 0, steps+1)
			path = append(path, price)
		}
		for t := 0; t < steps; t++ {
			state = f.sampleCategorical(tm[state][:])
			noise := f.gaussian() * f.stdReturn[state]
			price *= math.Exp(f.meanReturn[state] + noise)
			prices[t][p] = price
			if path != nil {
				path = append(path, price)
			}
		}
		if path != nil {
			sample = append(sample, path)
		}
	}

	out := make([]models.SimulationStep, steps)
	for t := range prices {
		sort.Float64s(prices[t])
		qs := features.PercentilesSorted(prices[t], 5, 25, 50, 75, 95)
		out[t] = models.SimulationStep{
			Step:    t + 1,
			Lower5:  qs[0],
			Lower25: qs[1],
			Median:  qs[2],
			Upper75: qs[3],
			Upper95: qs[4],
			Mean:    features.Mean(prices[t]),
		}
	}
	return simResult{steps: out, sample: sample}
}

// sampleCategorical draws an index from a weight row by cumulative sum over
// one uniform draw.
func (f *Forecaster) sampleCategorical(weights []float64) models.ReturnState {
	u := f.rng.Float64()
	cum := 0.0
	for i, w := range weights {
		cum += w
		if u < cum {
			return models.ReturnState(i)
		}
	}
	return models.ReturnState(len(weights) - 1)
}

// gaussian draws a standard normal sample via the Box-Muller transform.
func (f *Forecaster) gaussian() float64 {
	u1 := f.rng.Float64()
	for u1 <= 0 {
		u1 = f.rng.Float64()
	}
	u2 := f.rng.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
