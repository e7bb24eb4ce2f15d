package mcse

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/uyouii/mcmc-diagnostics/common"
	"github.com/uyouii/mcmc-diagnostics/model"
)

// MCSE estimates the Monte Carlo standard error of the posterior
// mean by batch means: the flattened draws (chains concatenated row
// major) are cut into numBatches contiguous equal-size batches and
// the sample standard deviation of the batch means is divided by
// sqrt(numBatches).
//
// When the draw count is not divisible by numBatches the trailing
// remainder draws are dropped; callers holding exact draw counts
// should pick a divisor.
//
// Fails with ErrorInvalidShape when numBatches < 2 or numBatches
// exceeds the total draw count.
func MCSE(matrix *model.ChainMatrix, numBatches int) (float64, error) {
	if matrix.IsEmpty() {
		return 0, common.ErrorInvalidShape
	}
	if numBatches < 2 || numBatches > matrix.TotalDraws() {
		return 0, common.ErrorInvalidShape
	}

	means := batchMeans(matrix.Flatten(), numBatches)
	sd := stat.StdDev(means, nil)

	return sd / math.Sqrt(float64(numBatches)), nil
}

func batchMeans(draws []float64, numBatches int) []float64 {
	batchSize := len(draws) / numBatches

	means := make([]float64, numBatches)
	for b := 0; b < numBatches; b++ {
		batch := draws[b*batchSize : (b+1)*batchSize]
		means[b] = stat.Mean(batch, nil)
	}
	return means
}
