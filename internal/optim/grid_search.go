// Package optim sweeps scene and cycle parameters over a grid, scoring
// each combination by a simulation metric. Used by the sweep command to
// find, say, the contact stiffness that maximizes lift height.
package optim

import (
	"context"
	"math"

	"grasplab/internal/experiment"
)

// BuildFunc wires a run for one parameter combination.
type BuildFunc func(params map[string]float64) (*experiment.Setup, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64

	// Maximize scores higher metric values as better. Default is minimize.
	Maximize bool
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Range returns n evenly spaced values from lo to hi inclusive.
func Range(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	vals := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range vals {
		vals[i] = lo + float64(i)*step
	}
	return vals
}

// Search runs every combination and returns the best parameter set with
// its metric value. Combinations whose build or run fails are skipped;
// canceling ctx stops the sweep early with the best result so far.
func (g *GridSearch) Search(ctx context.Context, build BuildFunc, metricName string) (map[string]float64, float64, error) {
	best := math.Inf(1)
	if g.Maximize {
		best = math.Inf(-1)
	}
	var bestParams map[string]float64

	g.searchRecursive(ctx, 0, make(map[string]float64), build, metricName, &best, &bestParams)

	if bestParams == nil {
		return nil, best, ctx.Err()
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build BuildFunc,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) {
	if ctx.Err() != nil {
		return
	}

	if depth == len(g.paramNames) {
		setup, err := build(current)
		if err != nil {
			return
		}
		result, err := setup.Run(ctx)
		if err != nil {
			return
		}

		val := result.Metrics[metricName]
		better := val < *best
		if g.Maximize {
			better = val > *best
		}
		if better {
			*best = val
			*bestParams = make(map[string]float64, len(current))
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return
	}

	for _, val := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[g.paramNames[depth]] = val
		g.searchRecursive(ctx, depth+1, next, build, metricName, best, bestParams)
	}
}
