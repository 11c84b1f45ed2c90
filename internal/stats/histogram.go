package stats

import (
	"fmt"

	moremath "github.com/aclements/go-moremath/stats"

	"github.com/sdendorfer/nasbudget/internal/record"
)

// HistogramBin is one half-open bucket [Lo, Hi) of an empirical histogram;
// the final bin is closed on the right so the maximum value is counted.
type HistogramBin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

// Histogram is a fixed-bin empirical histogram of a sample metric.
type Histogram struct {
	Bins []HistogramBin `json:"bins"`
}

// NewHistogram buckets the chosen metric of the sample into binCount
// equal-width bins spanning the observed range. A constant-valued sample
// collapses into a single bin.
func NewHistogram(sample record.Sample, metric Metric, binCount int) (Histogram, error) {
	values, err := metricValues(sample, metric)
	if err != nil {
		return Histogram{}, err
	}
	if len(values) == 0 {
		return Histogram{}, fmt.Errorf("%w: empty sample", ErrInsufficientData)
	}
	if binCount < 1 {
		return Histogram{}, fmt.Errorf("%w: bin count must be at least 1, got %d", ErrInvalidParameter, binCount)
	}

	samp := moremath.Sample{Xs: values}
	lo, hi := samp.Bounds()
	if lo == hi {
		return Histogram{Bins: []HistogramBin{{Lo: lo, Hi: hi, Count: len(values)}}}, nil
	}

	width := (hi - lo) / float64(binCount)
	bins := make([]HistogramBin, binCount)
	for i := range bins {
		bins[i].Lo = lo + float64(i)*width
		bins[i].Hi = lo + float64(i+1)*width
	}
	bins[binCount-1].Hi = hi

	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= binCount {
			idx = binCount - 1
		}
		bins[idx].Count++
	}
	return Histogram{Bins: bins}, nil
}

// Centers returns the midpoint of each bin, the x positions a plotting
// layer would draw an overlay curve at.
func (h Histogram) Centers() []float64 {
	centers := make([]float64, len(h.Bins))
	for i, b := range h.Bins {
		centers[i] = (b.Lo + b.Hi) / 2
	}
	return centers
}

// Overlay evaluates the normal density at each bin center, scaled to the
// histogram's count axis (density times total count times bin width), so
// the curve and the bars share a y axis.
func (h Histogram) Overlay(p NormalApproxParams) []float64 {
	total := 0
	for _, b := range h.Bins {
		total += b.Count
	}
	overlay := make([]float64, len(h.Bins))
	for i, b := range h.Bins {
		width := b.Hi - b.Lo
		center := (b.Lo + b.Hi) / 2
		overlay[i] = p.Density(center) * float64(total) * width
	}
	return overlay
}
