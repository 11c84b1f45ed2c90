package stats

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sdendorfer/nasbudget/internal/record"
)

// BudgetPoint is the expected best accuracy a strategy reaches when allowed
// to spend the given cumulative budget on repeated runs.
type BudgetPoint struct {
	Budget               float64 `json:"budget"`
	ExpectedBestAccuracy float64 `json:"expected_best_accuracy"`
}

// BudgetCurve is ordered by ascending budget and is non-decreasing in
// expected best accuracy: under a keep-best-of-repeats policy more budget
// can only help.
type BudgetCurve []BudgetPoint

// CompareOpts controls the Monte Carlo simulation in Compare.
type CompareOpts struct {
	// Repetitions is the number of simulated experiment repetitions each
	// budget is averaged over.
	Repetitions int
	// Seed makes the simulation reproducible across invocations.
	Seed int64
}

const (
	DefaultRepetitions = 1000
	DefaultSeed        = 1

	// maxDrawsPerRep bounds a single repetition's run draws so a sample of
	// free (zero-cost) runs cannot loop forever inside one budget.
	maxDrawsPerRep = 1 << 20
)

// Compare estimates, for two strategies, the expected best accuracy reached
// at each budget in grid under a keep-best-of-repeats policy: runs are drawn
// from the strategy's empirical distribution with replacement while the
// cumulative cost stays within the budget, tracking the best accuracy seen.
// The target accuracy does not cut the simulation short; it parameterizes
// the ExpectedCostToTarget comparison alongside the curves.
//
// Each repetition draws a single run sequence and evaluates every budget as
// a prefix of it, so best-so-far accuracy cannot decrease along the grid;
// averaging preserves that, making each returned curve monotonically
// non-decreasing by construction.
func Compare(a, b record.Sample, target float64, grid []float64, opts CompareOpts) (BudgetCurve, BudgetCurve, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, nil, fmt.Errorf("%w: both strategy samples must be non-empty", ErrInsufficientData)
	}
	if target < 0 || target > 1 {
		return nil, nil, fmt.Errorf("%w: target accuracy %v outside [0,1]", ErrInvalidParameter, target)
	}
	if len(grid) == 0 {
		return nil, nil, fmt.Errorf("%w: empty budget grid", ErrInvalidParameter)
	}
	for i, budget := range grid {
		if budget < 0 {
			return nil, nil, fmt.Errorf("%w: negative budget %v", ErrInvalidParameter, budget)
		}
		if i > 0 && budget < grid[i-1] {
			return nil, nil, fmt.Errorf("%w: budget grid not sorted ascending at index %d", ErrInvalidParameter, i)
		}
	}
	if opts.Repetitions == 0 {
		opts.Repetitions = DefaultRepetitions
	}
	if opts.Repetitions < 1 {
		return nil, nil, fmt.Errorf("%w: repetitions must be at least 1, got %d", ErrInvalidParameter, opts.Repetitions)
	}
	if opts.Seed == 0 {
		opts.Seed = DefaultSeed
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	curveA := simulateCurve(a, grid, opts.Repetitions, rng)
	curveB := simulateCurve(b, grid, opts.Repetitions, rng)
	return curveA, curveB, nil
}

func simulateCurve(sample record.Sample, grid []float64, reps int, rng *rand.Rand) BudgetCurve {
	sums := make([]float64, len(grid))

	for rep := 0; rep < reps; rep++ {
		var (
			spent   float64
			best    float64
			draws   int
			pending *record.RunRecord
		)
		for i, budget := range grid {
			for draws < maxDrawsPerRep {
				r := pending
				if r == nil {
					next := sample[rng.Intn(len(sample))]
					r = &next
					draws++
				}
				if spent+r.Cost > budget {
					// Too expensive for this budget; retry at the next one.
					pending = r
					break
				}
				pending = nil
				spent += r.Cost
				if r.Accuracy > best {
					best = r.Accuracy
				}
			}
			sums[i] += best
		}
	}

	curve := make(BudgetCurve, len(grid))
	for i, budget := range grid {
		curve[i] = BudgetPoint{Budget: budget, ExpectedBestAccuracy: sums[i] / float64(reps)}
	}
	return curve
}

// ExpectedCostToTarget is the expected cumulative cost of repeating runs
// until one reaches the target accuracy, by Wald's identity: the mean
// per-run cost divided by the single-run success probability, both taken
// from the empirical distribution. Returns +Inf when no sampled run reaches
// the target, since under this model the policy never terminates.
func ExpectedCostToTarget(sample record.Sample, target float64) (float64, error) {
	est, err := Estimate(sample, target, 1)
	if err != nil {
		return 0, err
	}
	if est.ProbabilitySingle == 0 {
		return math.Inf(1), nil
	}
	var total float64
	for _, r := range sample {
		total += r.Cost
	}
	meanCost := total / float64(len(sample))
	return meanCost / est.ProbabilitySingle, nil
}
