package ess

const (
	// floor for the integrated autocorrelation time, caps the
	// reported ESS at the total draw count
	MinTau = 1.0

	TailLowerQuantile = 0.05
	TailUpperQuantile = 0.95
)

func getMinTau() float64 {
	return MinTau
}

func getTailLowerQuantile() float64 {
	return TailLowerQuantile
}

func getTailUpperQuantile() float64 {
	return TailUpperQuantile
}
