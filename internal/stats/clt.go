package stats

import (
	"fmt"
	"math"

	moremath "github.com/aclements/go-moremath/stats"

	"github.com/sdendorfer/nasbudget/internal/record"
)

// Metric selects which RunRecord field a statistic is computed over.
type Metric string

const (
	MetricAccuracy Metric = "accuracy"
	MetricCost     Metric = "cost"
)

// ParseMetric converts a user-supplied metric name into a Metric.
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricAccuracy, MetricCost:
		return Metric(s), nil
	}
	return "", fmt.Errorf("%w: unknown metric %q (want accuracy or cost)", ErrInvalidParameter, s)
}

// NormalApproxParams are the parameters of the normal approximation to a
// sample's metric, used to overlay a normal curve against the empirical
// histogram. StdDev is the unbiased sample standard deviation.
type NormalApproxParams struct {
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"std_dev"`
	SampleSize int     `json:"sample_size"`
}

// StdErr is the standard error of the sample mean, StdDev/sqrt(n). Under
// the central limit theorem the sampling distribution of the mean is
// approximately N(Mean, StdErr) when SampleSize is large enough; nothing
// here can check that it is.
func (p NormalApproxParams) StdErr() float64 {
	return p.StdDev / math.Sqrt(float64(p.SampleSize))
}

// Density evaluates the normal probability density N(Mean, StdDev) at x.
// A zero StdDev (constant sample) yields 0 everywhere except Mean, where
// the density is degenerate; callers overlaying a curve should special-case
// it.
func (p NormalApproxParams) Density(x float64) float64 {
	if p.StdDev == 0 {
		return 0
	}
	z := (x - p.Mean) / p.StdDev
	return math.Exp(-0.5*z*z) / (p.StdDev * math.Sqrt(2*math.Pi))
}

// Approximate computes the sample mean and unbiased standard deviation of
// the chosen metric. Fails when fewer than two records are present, since
// the sample standard deviation is undefined.
func Approximate(sample record.Sample, metric Metric) (NormalApproxParams, error) {
	values, err := metricValues(sample, metric)
	if err != nil {
		return NormalApproxParams{}, err
	}
	if len(values) < 2 {
		return NormalApproxParams{}, fmt.Errorf("%w: need at least 2 records for a standard deviation, got %d",
			ErrInsufficientData, len(values))
	}

	samp := moremath.Sample{Xs: values}
	sd := samp.StdDev()
	if math.IsNaN(sd) {
		sd = 0
	}
	return NormalApproxParams{
		Mean:       samp.Mean(),
		StdDev:     sd,
		SampleSize: len(values),
	}, nil
}

func metricValues(sample record.Sample, metric Metric) ([]float64, error) {
	if _, err := ParseMetric(string(metric)); err != nil {
		return nil, err
	}
	values := make([]float64, len(sample))
	for i, r := range sample {
		switch metric {
		case MetricAccuracy:
			values[i] = r.Accuracy
		case MetricCost:
			values[i] = r.Cost
		}
	}
	return values, nil
}
