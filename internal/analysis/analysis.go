// Package analysis executes the experiments a config declares against a
// loaded record store and bundles their numeric outputs for reporting and
// persistence. Each experiment is a pure function of its sample and
// parameters, so they run independently through the worker pool.
package analysis

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/sdendorfer/nasbudget/internal/config"
	"github.com/sdendorfer/nasbudget/internal/record"
	"github.com/sdendorfer/nasbudget/internal/runner"
	"github.com/sdendorfer/nasbudget/internal/stats"
)

// SuccessSummary is one dataset/threshold cell of a success experiment,
// with a result row per configured repeat count.
type SuccessSummary struct {
	Dataset   string                   `json:"dataset"`
	Threshold float64                  `json:"threshold"`
	Results   []stats.EstimationResult `json:"results"`
}

// CLTSummary is the normal approximation of one dataset metric plus the
// empirical histogram and scaled density overlay for the comparison figure.
type CLTSummary struct {
	Dataset   string                   `json:"dataset"`
	Metric    string                   `json:"metric"`
	Params    stats.NormalApproxParams `json:"params"`
	StdErr    float64                  `json:"std_err"`
	Histogram stats.Histogram          `json:"histogram"`
	Overlay   []float64                `json:"overlay"`
}

// BudgetSummary is one two-strategy budget comparison: the expected-best-
// accuracy curves and each strategy's expected cost to reach the target.
// A nil cost means the target is unreachable from that strategy's sample
// (the expectation is infinite, which JSON cannot carry).
type BudgetSummary struct {
	Name           string            `json:"name"`
	StrategyA      string            `json:"strategy_a"`
	StrategyB      string            `json:"strategy_b"`
	TargetAccuracy float64           `json:"target_accuracy"`
	CurveA         stats.BudgetCurve `json:"curve_a"`
	CurveB         stats.BudgetCurve `json:"curve_b"`
	CostToTargetA  *float64          `json:"cost_to_target_a"`
	CostToTargetB  *float64          `json:"cost_to_target_b"`
}

// Bundle is everything one analysis run produced.
type Bundle struct {
	Success []SuccessSummary `json:"success"`
	CLT     []CLTSummary     `json:"clt"`
	Budget  []BudgetSummary  `json:"budget"`
}

// Run executes every configured experiment against the store, fanning the
// independent jobs across at most parallel workers. A failed experiment
// fails the whole run; there is no partial-result mode.
func Run(store *record.Store, cfg *config.Config, parallel int, log *slog.Logger) (*Bundle, error) {
	bundle := &Bundle{
		CLT:    make([]CLTSummary, len(cfg.Experiments.CLT)),
		Budget: make([]BudgetSummary, len(cfg.Experiments.Budget)),
	}

	// One summary slot per dataset/threshold pair, preallocated so jobs
	// write disjoint indices without locking.
	type successCell struct {
		exp       config.SuccessExperiment
		threshold float64
	}
	var cells []successCell
	for _, e := range cfg.Experiments.Success {
		for _, t := range e.Thresholds {
			cells = append(cells, successCell{exp: e, threshold: t})
		}
	}
	bundle.Success = make([]SuccessSummary, len(cells))

	var jobs []runner.Job

	for i, cell := range cells {
		i, cell := i, cell
		jobs = append(jobs, runner.Job{
			Name: fmt.Sprintf("success %s@%v", cell.exp.Dataset, cell.threshold),
			Run: func() error {
				sample, err := store.Sample(cell.exp.Dataset)
				if err != nil {
					return err
				}
				summary := SuccessSummary{Dataset: cell.exp.Dataset, Threshold: cell.threshold}
				for _, n := range cell.exp.Repeats {
					result, err := stats.Estimate(sample, cell.threshold, n)
					if err != nil {
						return err
					}
					summary.Results = append(summary.Results, result)
				}
				bundle.Success[i] = summary
				log.Debug("success experiment done", "dataset", cell.exp.Dataset, "threshold", cell.threshold)
				return nil
			},
		})
	}

	for i, e := range cfg.Experiments.CLT {
		i, e := i, e
		jobs = append(jobs, runner.Job{
			Name: fmt.Sprintf("clt %s/%s", e.Dataset, e.Metric),
			Run: func() error {
				sample, err := store.Sample(e.Dataset)
				if err != nil {
					return err
				}
				metric, err := stats.ParseMetric(e.Metric)
				if err != nil {
					return err
				}
				params, err := stats.Approximate(sample, metric)
				if err != nil {
					return err
				}
				hist, err := stats.NewHistogram(sample, metric, e.Bins)
				if err != nil {
					return err
				}
				bundle.CLT[i] = CLTSummary{
					Dataset:   e.Dataset,
					Metric:    e.Metric,
					Params:    params,
					StdErr:    params.StdErr(),
					Histogram: hist,
					Overlay:   hist.Overlay(params),
				}
				log.Debug("clt experiment done", "dataset", e.Dataset, "metric", e.Metric)
				return nil
			},
		})
	}

	for i, e := range cfg.Experiments.Budget {
		i, e := i, e
		jobs = append(jobs, runner.Job{
			Name: fmt.Sprintf("budget %s", e.Name),
			Run: func() error {
				summary, err := runBudget(store, e)
				if err != nil {
					return err
				}
				bundle.Budget[i] = *summary
				log.Debug("budget experiment done", "name", e.Name)
				return nil
			},
		})
	}

	if errs := runner.RunPool(parallel, jobs); len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return bundle, nil
}

func runBudget(store *record.Store, e config.BudgetExperiment) (*BudgetSummary, error) {
	sampleA, err := store.Sample(e.StrategyA)
	if err != nil {
		return nil, err
	}
	sampleB, err := store.Sample(e.StrategyB)
	if err != nil {
		return nil, err
	}

	grid := e.BudgetGrid
	if len(grid) == 0 {
		if e.Grid == nil {
			return nil, fmt.Errorf("budget experiment %q: no budget grid", e.Name)
		}
		grid = e.Grid.Points()
	}

	opts := stats.CompareOpts{Repetitions: e.Repetitions, Seed: e.Seed}
	curveA, curveB, err := stats.Compare(sampleA, sampleB, e.TargetAccuracy, grid, opts)
	if err != nil {
		return nil, err
	}
	costA, err := stats.ExpectedCostToTarget(sampleA, e.TargetAccuracy)
	if err != nil {
		return nil, err
	}
	costB, err := stats.ExpectedCostToTarget(sampleB, e.TargetAccuracy)
	if err != nil {
		return nil, err
	}

	return &BudgetSummary{
		Name:           e.Name,
		StrategyA:      e.StrategyA,
		StrategyB:      e.StrategyB,
		TargetAccuracy: e.TargetAccuracy,
		CurveA:         curveA,
		CurveB:         curveB,
		CostToTargetA:  finiteCost(costA),
		CostToTargetB:  finiteCost(costB),
	}, nil
}

func finiteCost(cost float64) *float64 {
	if math.IsInf(cost, 1) {
		return nil
	}
	return &cost
}
