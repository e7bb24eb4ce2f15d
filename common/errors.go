package common

import "errors"

var (
	ErrorInvalidValue = errors.New("invalid value")

	// the input matrix rank or size violates a precondition:
	// fewer than 2 draws, fewer than 1 chain, ragged rows,
	// or a batch count that cannot partition the draws
	ErrorInvalidShape = errors.New("invalid chain matrix shape")

	// zero within-chain variance, the diagnostic is undefined
	ErrorDegenerateChain = errors.New("degenerate constant chain")
)
