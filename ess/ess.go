package ess

import (
	"github.com/uyouii/mcmc-diagnostics/common"
	"github.com/uyouii/mcmc-diagnostics/model"
)

// ESS estimates the effective sample size of the raw draws:
// N_eff = M*N / tau, with tau the integrated autocorrelation time
// truncated by Geyer's initial positive sequence rule.
// Deterministic: the same matrix always gives the same value.
func ESS(matrix *model.ChainMatrix) (float64, error) {
	if matrix.IsEmpty() {
		return 0, common.ErrorInvalidShape
	}

	rho, err := autocorrelation(matrix)
	if err != nil {
		return 0, err
	}

	tau := geyerTau(rho)
	// a non positive initial pair leaves tau at -1, clamp before
	// dividing
	if tau < getMinTau() {
		tau = getMinTau()
	}

	return float64(matrix.TotalDraws()) / tau, nil
}

// ESSWithVariant applies the named pre transform to the draws and
// runs the same core estimator on the result.
func ESSWithVariant(matrix *model.ChainMatrix, variant model.ESSVariant) (float64, error) {
	if matrix.IsEmpty() {
		return 0, common.ErrorInvalidShape
	}

	switch variant {
	case model.ESSIdentity, model.ESSMean, "":
		return ESS(matrix)
	case model.ESSZScale:
		return ESS(rankNormalize(matrix))
	case model.ESSBulk:
		split, err := matrix.SplitChains()
		if err != nil {
			return 0, err
		}
		return ESS(rankNormalize(split))
	case model.ESSSd:
		return ESS(centeredSquares(matrix))
	case model.ESSMedian:
		return ESS(dichotomize(matrix, 0.5))
	case model.ESSMad:
		return ESS(foldAboutMedian(matrix))
	case model.ESSFolded:
		return ESS(rankNormalize(foldAboutMedian(matrix)))
	case model.ESSTail:
		return tailESS(matrix)
	default:
		return 0, common.ErrorInvalidValue
	}
}

// ESSAllVariants runs every named variant on the matrix and tags
// each scalar with the transform it was diagnosed under, in the
// order the variants are declared.
func ESSAllVariants(matrix *model.ChainMatrix) ([]model.DiagnosticResult, error) {
	variants := []model.ESSVariant{
		model.ESSIdentity, model.ESSMean, model.ESSSd, model.ESSMedian,
		model.ESSMad, model.ESSZScale, model.ESSFolded, model.ESSBulk,
		model.ESSTail,
	}

	res := make([]model.DiagnosticResult, 0, len(variants))
	for _, variant := range variants {
		value, err := ESSWithVariant(matrix, variant)
		if err != nil {
			return nil, err
		}
		res = append(res, model.DiagnosticResult{
			Variant: variant,
			Value:   value,
		})
	}
	return res, nil
}

// tailESS diagnoses both tails through quantile indicators and
// reports the worse of the two.
func tailESS(matrix *model.ChainMatrix) (float64, error) {
	lower, err := ESS(dichotomize(matrix, getTailLowerQuantile()))
	if err != nil {
		return 0, err
	}
	upper, err := ESS(dichotomize(matrix, getTailUpperQuantile()))
	if err != nil {
		return 0, err
	}

	if lower < upper {
		return lower, nil
	}
	return upper, nil
}
