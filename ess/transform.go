package ess

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/uyouii/mcmc-diagnostics/model"
)

// rankNormalize replaces every draw with its normal score: average
// ranks over the pooled draws mapped through the inverse standard
// normal CDF with the Blom offset (r - 3/8) / (S + 1/4).
func rankNormalize(matrix *model.ChainMatrix) *model.ChainMatrix {
	flat := matrix.Flatten()
	ranks := averageRanks(flat)

	normal := distuv.UnitNormal
	total := float64(len(flat))

	zscores := make([]float64, len(flat))
	for i, r := range ranks {
		zscores[i] = normal.Quantile((r - 0.375) / (total + 0.25))
	}

	return matrix.ApplyIndexed(func(idx int, v float64) float64 {
		return zscores[idx]
	})
}

// averageRanks returns 1-based ranks of the values, ties sharing the
// average of the ranks they span.
func averageRanks(values []float64) []float64 {
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return values[order[i]] < values[order[j]]
	})

	ranks := make([]float64, len(values))
	for i := 0; i < len(order); {
		j := i
		for j+1 < len(order) && values[order[j+1]] == values[order[i]] {
			j++
		}
		// ranks i+1 .. j+1 collapse to their average
		avg := float64(i+j+2) / 2
		for k := i; k <= j; k++ {
			ranks[order[k]] = avg
		}
		i = j + 1
	}
	return ranks
}

// centeredSquares maps every draw to its squared deviation from the
// pooled mean, the transform behind the sd variant.
func centeredSquares(matrix *model.ChainMatrix) *model.ChainMatrix {
	mean := stat.Mean(matrix.Flatten(), nil)
	return matrix.Apply(func(v float64) float64 {
		diff := v - mean
		return diff * diff
	})
}

// foldAboutMedian maps every draw to its absolute deviation from the
// pooled median.
func foldAboutMedian(matrix *model.ChainMatrix) *model.ChainMatrix {
	median := pooledQuantile(matrix, 0.5)
	return matrix.Apply(func(v float64) float64 {
		return math.Abs(v - median)
	})
}

// dichotomize maps the draws to the indicator of falling at or below
// the pooled p-quantile.
func dichotomize(matrix *model.ChainMatrix, p float64) *model.ChainMatrix {
	threshold := pooledQuantile(matrix, p)
	return matrix.Apply(func(v float64) float64 {
		if v <= threshold {
			return 1
		}
		return 0
	})
}

func pooledQuantile(matrix *model.ChainMatrix, p float64) float64 {
	flat := matrix.Flatten()
	sort.Float64s(flat)
	return stat.Quantile(p, stat.Empirical, flat, nil)
}
