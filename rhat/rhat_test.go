package rhat_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uyouii/mcmc-diagnostics/common"
	"github.com/uyouii/mcmc-diagnostics/model"
	"github.com/uyouii/mcmc-diagnostics/rhat"
)

func uniformMatrix(t *testing.T, chains, draws int, seed int64) *model.ChainMatrix {
	t.Helper()

	rng := rand.New(rand.NewSource(seed))
	values := make([][]float64, chains)
	for m := range values {
		values[m] = make([]float64, draws)
		for n := range values[m] {
			values[m][n] = rng.Float64()
		}
	}

	matrix, err := model.NewChainMatrix(values)
	require.NoError(t, err)
	return matrix
}

// TestRHat_DegenerateConstantChains: identical constant chains have
// zero within chain variance, the statistic is undefined.
func TestRHat_DegenerateConstantChains(t *testing.T) {
	matrix, err := model.NewChainMatrix([][]float64{
		{2, 2, 2, 2},
		{2, 2, 2, 2},
	})
	require.NoError(t, err)

	_, err = rhat.RHat(matrix)
	assert.ErrorIs(t, err, common.ErrorDegenerateChain)
}

// TestRHat_TooFewDraws: fewer than 4 draws per chain cannot be
// split into usable halves.
func TestRHat_TooFewDraws(t *testing.T) {
	matrix, err := model.NewChainMatrix([][]float64{
		{1, 2, 3},
		{4, 5, 6},
	})
	require.NoError(t, err)

	_, err = rhat.RHat(matrix)
	assert.ErrorIs(t, err, common.ErrorInvalidShape)
}

// TestRHat_ShiftAndScaleInvariance: adding a constant to every draw
// or multiplying by a positive factor scales B and W identically,
// the ratio must not move.
func TestRHat_ShiftAndScaleInvariance(t *testing.T) {
	matrix := uniformMatrix(t, 2, 500, 42)

	base, err := rhat.RHat(matrix)
	require.NoError(t, err)

	shifted, err := rhat.RHat(matrix.Apply(func(v float64) float64 { return v + 1234.5 }))
	require.NoError(t, err)
	assert.InDelta(t, base, shifted, 1e-9, "additive shift must not change r-hat")

	scaled, err := rhat.RHat(matrix.Apply(func(v float64) float64 { return v * 37.0 }))
	require.NoError(t, err)
	assert.InDelta(t, base, scaled, 1e-9, "positive scaling must not change r-hat")
}

// TestRHat_IIDUniformNearOne: well mixed chains sit at 1.0.
func TestRHat_IIDUniformNearOne(t *testing.T) {
	matrix := uniformMatrix(t, 2, 500, 42)

	got, err := rhat.RHat(matrix)
	require.NoError(t, err)

	assert.Less(t, got, 1.01, "iid chains must pass the convergence threshold")
	assert.Greater(t, got, 0.9)
}

// TestRHat_UnmixedRamp: non overlapping ramp chains disagree badly,
// the statistic must fire well above the threshold.
func TestRHat_UnmixedRamp(t *testing.T) {
	chains, draws := 2, 500
	total := chains * draws

	values := make([][]float64, chains)
	for m := range values {
		values[m] = make([]float64, draws)
		for n := range values[m] {
			idx := m*draws + n
			values[m][n] = float64(idx) / float64(total-1)
		}
	}
	matrix, err := model.NewChainMatrix(values)
	require.NoError(t, err)

	got, err := rhat.RHat(matrix)
	require.NoError(t, err)

	assert.Greater(t, got, 2.0, "unmixed chains must give a large r-hat")
}

// TestRHat_Deterministic: repeated calls are bit identical.
func TestRHat_Deterministic(t *testing.T) {
	matrix := uniformMatrix(t, 4, 100, 9)

	first, err := rhat.RHat(matrix)
	require.NoError(t, err)
	second, err := rhat.RHat(matrix)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRHat_NilMatrix(t *testing.T) {
	_, err := rhat.RHat(nil)
	assert.ErrorIs(t, err, common.ErrorInvalidShape)
}
