package diagnostics

const (
	// summary rows at or above this r-hat are logged as convergence
	// failures
	RHatWarnThreshold = 1.01

	DefaultSummaryWorkers = 4

	SummaryRoundDigits = 3
)

func getRHatWarnThreshold() float64 {
	return RHatWarnThreshold
}

func getSummaryWorkers() int {
	return DefaultSummaryWorkers
}
