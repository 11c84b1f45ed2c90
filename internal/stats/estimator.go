package stats

import (
	"fmt"
	"math"

	"github.com/sdendorfer/nasbudget/internal/record"
)

// EstimationResult holds the empirical success probabilities for a target
// accuracy: the chance a single run clears it, and the chance at least one
// of N independent repeated runs does.
type EstimationResult struct {
	ProbabilitySingle     float64 `json:"probability_single"`
	ProbabilityAtLeastOne float64 `json:"probability_at_least_one_of_n"`
	N                     int     `json:"n"`
}

// Estimate computes the empirical probability that a single run reaches
// threshold, and the implied probability that at least one of n repeated
// runs does. The single-run probability is a plain point estimate with no
// smoothing; the n-run probability assumes the repeats are independent,
// which is a modeling assumption inherited from the data, not something
// verified here.
func Estimate(sample record.Sample, threshold float64, n int) (EstimationResult, error) {
	if len(sample) == 0 {
		return EstimationResult{}, fmt.Errorf("%w: empty sample", ErrInsufficientData)
	}
	if threshold < 0 || threshold > 1 {
		return EstimationResult{}, fmt.Errorf("%w: threshold %v outside [0,1]", ErrInvalidParameter, threshold)
	}
	if n < 1 {
		return EstimationResult{}, fmt.Errorf("%w: n must be at least 1, got %d", ErrInvalidParameter, n)
	}

	hits := 0
	for _, r := range sample {
		if r.Accuracy >= threshold {
			hits++
		}
	}
	p := float64(hits) / float64(len(sample))

	return EstimationResult{
		ProbabilitySingle:     p,
		ProbabilityAtLeastOne: AtLeastOne(p, n),
		N:                     n,
	}, nil
}

// AtLeastOne returns 1-(1-p)^n, the probability that at least one of n
// independent trials with per-trial success probability p succeeds.
func AtLeastOne(p float64, n int) float64 {
	switch {
	case p <= 0:
		return 0
	case p >= 1:
		return 1
	}
	return 1 - math.Pow(1-p, float64(n))
}
