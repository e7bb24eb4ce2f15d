package model

// ESSVariant names the transform applied to the draws before the
// core effective sample size estimator runs.
type ESSVariant string

const (
	ESSIdentity ESSVariant = "identity"
	ESSMean     ESSVariant = "mean"
	ESSSd       ESSVariant = "sd"
	ESSMedian   ESSVariant = "median"
	ESSMad      ESSVariant = "mad"
	ESSZScale   ESSVariant = "z-scale"
	ESSFolded   ESSVariant = "folded"
	ESSBulk     ESSVariant = "bulk"
	ESSTail     ESSVariant = "tail"
)

// DiagnosticResult pairs one scalar diagnostic with the variant tag
// of the transform it was computed under.
type DiagnosticResult struct {
	Variant ESSVariant `json:"variant,omitempty"`
	Value   float64    `json:"value"`
}

// ParameterSummary is one summary row for a named scalar parameter.
type ParameterSummary struct {
	Name    string  `json:"name"`
	Mean    float64 `json:"mean"`
	Sd      float64 `json:"sd"`
	Mcse    float64 `json:"mcse"`
	ESSBulk float64 `json:"ess_bulk"`
	ESSTail float64 `json:"ess_tail"`
	RHat    float64 `json:"r_hat"`
}

// Converged reports whether the row passes the r-hat threshold.
// Values at or above the threshold signal the chains have not mixed.
func (s *ParameterSummary) Converged(threshold float64) bool {
	if s == nil {
		return false
	}
	return s.RHat < threshold
}
