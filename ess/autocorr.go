package ess

import (
	"gonum.org/v1/gonum/stat"

	"github.com/uyouii/mcmc-diagnostics/common"
	"github.com/uyouii/mcmc-diagnostics/model"
)

// autocorrelation estimates the normalized autocorrelation of the
// parameter for lags t = 0 .. N-1, jointly across chains: per chain
// autocovariances are averaged at each lag and divided by the pooled
// variance estimate varPlus = W*(N-1)/N + B/N. Mixing in the between
// chain variance lets unmixed chains push the autocorrelation up
// instead of hiding inside their own chain means.
func autocorrelation(matrix *model.ChainMatrix) ([]float64, error) {
	numChains := matrix.NumChains()
	numDraws := matrix.NumDraws()

	chainMeans := matrix.ChainMeans()

	withinVars := make([]float64, numChains)
	for m := 0; m < numChains; m++ {
		withinVars[m] = stat.Variance(matrix.Chain(m), nil)
	}
	w := stat.Mean(withinVars, nil)

	varPlus := w * float64(numDraws-1) / float64(numDraws)
	if numChains > 1 {
		// B/N is exactly the sample variance of the chain means
		varPlus += stat.Variance(chainMeans, nil)
	}

	if varPlus <= 0 {
		return nil, common.ErrorDegenerateChain
	}

	meanAutocovs := meanAutocovariances(matrix, chainMeans)

	rho := make([]float64, numDraws)
	for t := 0; t < numDraws; t++ {
		rho[t] = 1 - (w-meanAutocovs[t])/varPlus
	}

	return rho, nil
}

// meanAutocovariances returns, for each lag, the per chain biased
// (divide by N) autocovariance averaged over chains.
func meanAutocovariances(matrix *model.ChainMatrix, chainMeans []float64) []float64 {
	numChains := matrix.NumChains()
	numDraws := matrix.NumDraws()

	res := make([]float64, numDraws)
	for m := 0; m < numChains; m++ {
		chain := matrix.Chain(m)
		mean := chainMeans[m]
		for t := 0; t < numDraws; t++ {
			sum := 0.0
			for n := 0; n+t < numDraws; n++ {
				sum += (chain[n] - mean) * (chain[n+t] - mean)
			}
			res[t] += sum / float64(numDraws)
		}
	}

	for t := 0; t < numDraws; t++ {
		res[t] /= float64(numChains)
	}
	return res
}

// geyerTau turns an autocorrelation profile into the integrated
// autocorrelation time using Geyer's initial positive sequence:
// paired lag sums P_k = rho[2k] + rho[2k+1] are accumulated from
// k = 0 upward until the first non positive pair, then
// tau = -1 + 2 * sum(P_k). If the very first pair is non positive
// tau is -1 and the caller is expected to clamp.
func geyerTau(rho []float64) float64 {
	sum := 0.0
	found := false

	for k := 0; 2*k+1 < len(rho); k++ {
		pair := rho[2*k] + rho[2*k+1]
		if pair <= 0 {
			break
		}
		sum += pair
		found = true
	}

	if !found {
		return -1
	}
	return -1 + 2*sum
}
