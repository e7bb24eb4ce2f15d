package model

import (
	"fmt"

	"github.com/uyouii/mcmc-diagnostics/common"
)

// ChainMatrix holds draws of one scalar parameter from M independent
// markov chains, shape (M chains, N draws per chain).
// The matrix is read only after construction, every transform
// returns a new matrix.
type ChainMatrix struct {
	values [][]float64
	chains int
	draws  int
}

// NewChainMatrix deep copies values and validates the shape:
// at least 1 chain, at least 2 draws, all chains the same length.
func NewChainMatrix(values [][]float64) (*ChainMatrix, error) {
	chains := len(values)
	if chains < 1 {
		return nil, common.ErrorInvalidShape
	}

	draws := len(values[0])
	if draws < 2 {
		return nil, common.ErrorInvalidShape
	}

	copied := make([][]float64, chains)
	for m := range values {
		if len(values[m]) != draws {
			return nil, common.ErrorInvalidShape
		}
		copied[m] = make([]float64, draws)
		copy(copied[m], values[m])
	}

	return &ChainMatrix{
		values: copied,
		chains: chains,
		draws:  draws,
	}, nil
}

func (c *ChainMatrix) NumChains() int {
	return c.chains
}

func (c *ChainMatrix) NumDraws() int {
	return c.draws
}

func (c *ChainMatrix) TotalDraws() int {
	return c.chains * c.draws
}

func (c *ChainMatrix) At(m, n int) float64 {
	return c.values[m][n]
}

// Chain returns a copy of chain m.
func (c *ChainMatrix) Chain(m int) []float64 {
	res := make([]float64, c.draws)
	copy(res, c.values[m])
	return res
}

// SplitChains splits each chain into its first and second halves,
// treated as independent chains, giving a (2M, N/2) matrix.
// An odd trailing draw is truncated from every chain first.
// Fails when the halves would be shorter than 2 draws.
func (c *ChainMatrix) SplitChains() (*ChainMatrix, error) {
	half := c.draws / 2
	if half < 2 {
		return nil, common.ErrorInvalidShape
	}

	values := make([][]float64, 0, 2*c.chains)
	for m := 0; m < c.chains; m++ {
		values = append(values, c.values[m][:half], c.values[m][half:2*half])
	}

	return NewChainMatrix(values)
}

// ChainMeans returns the length-M sequence of per chain means.
func (c *ChainMatrix) ChainMeans() []float64 {
	res := make([]float64, c.chains)
	for m := 0; m < c.chains; m++ {
		sum := 0.0
		for _, v := range c.values[m] {
			sum += v
		}
		res[m] = sum / float64(c.draws)
	}
	return res
}

// Flatten concatenates the chains row major into one sequence
// of M*N draws.
func (c *ChainMatrix) Flatten() []float64 {
	res := make([]float64, 0, c.chains*c.draws)
	for m := 0; m < c.chains; m++ {
		res = append(res, c.values[m]...)
	}
	return res
}

// Apply maps f over every draw and returns the result as a new
// matrix with the same shape.
func (c *ChainMatrix) Apply(f func(float64) float64) *ChainMatrix {
	values := make([][]float64, c.chains)
	for m := 0; m < c.chains; m++ {
		values[m] = make([]float64, c.draws)
		for n := 0; n < c.draws; n++ {
			values[m][n] = f(c.values[m][n])
		}
	}
	return &ChainMatrix{
		values: values,
		chains: c.chains,
		draws:  c.draws,
	}
}

// ApplyIndexed maps f over every draw with its flattened row major
// index, for transforms that depend on a draw's position.
func (c *ChainMatrix) ApplyIndexed(f func(idx int, v float64) float64) *ChainMatrix {
	values := make([][]float64, c.chains)
	for m := 0; m < c.chains; m++ {
		values[m] = make([]float64, c.draws)
		for n := 0; n < c.draws; n++ {
			values[m][n] = f(m*c.draws+n, c.values[m][n])
		}
	}
	return &ChainMatrix{
		values: values,
		chains: c.chains,
		draws:  c.draws,
	}
}

func (c *ChainMatrix) IsEmpty() bool {
	if c == nil {
		return true
	}
	return c.chains == 0
}

func (c *ChainMatrix) DebugString() string {
	res := fmt.Sprintf("chains: %+v, drawsPerChain: %+v", c.chains, c.draws)
	return res
}
