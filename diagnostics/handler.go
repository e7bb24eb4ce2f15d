package diagnostics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/uyouii/mcmc-diagnostics/ess"
	"github.com/uyouii/mcmc-diagnostics/mcse"
	"github.com/uyouii/mcmc-diagnostics/model"
	"github.com/uyouii/mcmc-diagnostics/rhat"
	"github.com/uyouii/mcmc-diagnostics/utils"
)

// each scalar parameter is diagnosed independently, there is no
// shared state between them, so the summary fans the parameters out
// on a small worker pool and only collects rows at the end

// SummarizeParameters diagnoses every named parameter and returns
// one summary row each, sorted by parameter name. Parameters whose
// diagnostics are undefined (constant chains, too few draws) are
// logged and skipped, never reported with partial numbers.
func SummarizeParameters(ctx context.Context,
	params map[string]*model.ChainMatrix) ([]model.ParameterSummary, error) {
	logger := utils.GetLogger(ctx)

	defer func() {
		if err := recover(); err != nil {
			logger.Error("SummarizeParameters recover panic error!", zap.Any("err", err),
				zap.String("panic info", utils.GetPanicInfo()))
		}
	}()

	if len(params) == 0 {
		return nil, nil
	}

	var mu sync.Mutex
	rows := []model.ParameterSummary{}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(getSummaryWorkers())

	for name, matrix := range params {
		name, matrix := name, matrix
		group.Go(func() error {
			row, err := summarizeParameter(groupCtx, name, matrix)
			if err != nil {
				logger.Error("skip parameter, diagnostics undefined",
					zap.String("parameter", name), zap.Error(err))
				return nil
			}

			mu.Lock()
			rows = append(rows, *row)
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Name < rows[j].Name
	})

	logger.Info(fmt.Sprintf("summarized %v of %v parameters", len(rows), len(params)))

	return rows, nil
}

func summarizeParameter(ctx context.Context, name string,
	matrix *model.ChainMatrix) (*model.ParameterSummary, error) {
	logger := utils.GetLogger(ctx)

	if matrix.IsEmpty() {
		return nil, fmt.Errorf("parameter %v: empty chain matrix", name)
	}

	flat := matrix.Flatten()
	mean := stat.Mean(flat, nil)
	sd := stat.StdDev(flat, nil)

	mcseValue, err := mcse.MCSE(matrix, defaultBatchCount(matrix.TotalDraws()))
	if err != nil {
		return nil, err
	}

	essBulk, err := ess.ESSWithVariant(matrix, model.ESSBulk)
	if err != nil {
		return nil, err
	}

	essTail, err := ess.ESSWithVariant(matrix, model.ESSTail)
	if err != nil {
		return nil, err
	}

	rhatValue, err := rhat.RHat(matrix)
	if err != nil {
		return nil, err
	}

	if rhatValue >= getRHatWarnThreshold() {
		logger.Warn("parameter has not converged",
			zap.String("parameter", name),
			zap.Float64("rhat", rhatValue),
			zap.Float64("threshold", getRHatWarnThreshold()),
			zap.String("matrix", matrix.DebugString()))
	}

	return &model.ParameterSummary{
		Name:    name,
		Mean:    utils.FormatFloat(mean, SummaryRoundDigits),
		Sd:      utils.FormatFloat(sd, SummaryRoundDigits),
		Mcse:    utils.FormatFloat(mcseValue, SummaryRoundDigits),
		ESSBulk: utils.FormatFloat(essBulk, SummaryRoundDigits),
		ESSTail: utils.FormatFloat(essTail, SummaryRoundDigits),
		RHat:    utils.FormatFloat(rhatValue, SummaryRoundDigits),
	}, nil
}

// defaultBatchCount picks roughly sqrt(n) batches, the usual batch
// means tradeoff between batch length and batch count.
func defaultBatchCount(totalDraws int) int {
	return utils.IntMax(2, int(math.Floor(math.Sqrt(float64(totalDraws)))))
}
