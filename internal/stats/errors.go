package stats

import "errors"

var (
	// ErrInsufficientData means the sample is too small or empty for the
	// requested statistic.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidParameter means a caller-supplied parameter is out of
	// range, e.g. a threshold outside [0,1] or an unsorted budget grid.
	ErrInvalidParameter = errors.New("invalid parameter")
)
