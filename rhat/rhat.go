package rhat

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/uyouii/mcmc-diagnostics/common"
	"github.com/uyouii/mcmc-diagnostics/model"
)

// RHat computes the split-chain Gelman-Rubin potential scale
// reduction factor. Each of the M chains is split into halves,
// giving 2M chains of N/2 draws, then
//
//	B = N'/(M'-1) * sum_m (mean_m - grandMean)^2
//	W = (1/M') * sum_m withinVariance_m
//	V = (N'-1)/N' * W + B/N'
//	RHat = sqrt(V / W)
//
// Values near 1.0 indicate the chains agree, values at or above
// 1.01 signal the chains have not converged and callers should
// surface that rather than ignore it.
//
// Fails with ErrorInvalidShape when a chain has fewer than 4 draws
// (halving leaves too little to estimate a within-chain variance)
// and ErrorDegenerateChain when every chain is constant (W = 0).
func RHat(matrix *model.ChainMatrix) (float64, error) {
	if matrix.IsEmpty() {
		return 0, common.ErrorInvalidShape
	}

	split, err := matrix.SplitChains()
	if err != nil {
		return 0, err
	}

	numChains := split.NumChains()
	numDraws := split.NumDraws()

	chainMeans := split.ChainMeans()
	grandMean := stat.Mean(chainMeans, nil)

	between := 0.0
	for _, mean := range chainMeans {
		diff := mean - grandMean
		between += diff * diff
	}
	between *= float64(numDraws) / float64(numChains-1)

	within := 0.0
	for m := 0; m < numChains; m++ {
		within += stat.Variance(split.Chain(m), nil)
	}
	within /= float64(numChains)

	if within == 0 {
		return 0, common.ErrorDegenerateChain
	}

	pooled := float64(numDraws-1)/float64(numDraws)*within +
		between/float64(numDraws)

	return math.Sqrt(pooled / within), nil
}
