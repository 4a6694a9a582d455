package swing

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// seriesStats summarises a motion-energy series. Detector thresholds are
// expressed relative to these observed statistics rather than fixed
// magnitudes, so detection is scale-invariant across differently normalised
// inputs.
type seriesStats struct {
	Min    float64
	Max    float64
	Range  float64
	Mean   float64
	Median float64
}

func summarize(series MotionEnergySeries) seriesStats {
	if len(series) == 0 {
		return seriesStats{}
	}
	s := seriesStats{
		Min:  floats.Min(series),
		Max:  floats.Max(series),
		Mean: stat.Mean(series, nil),
	}
	s.Range = s.Max - s.Min

	sorted := append([]float64(nil), series...)
	sort.Float64s(sorted)
	s.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return s
}
