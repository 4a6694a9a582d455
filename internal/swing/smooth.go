package swing

// Smooth applies a symmetric moving average with the given half-window (the
// number of neighbour frames averaged on each side, clamped to [1,3]) and
// returns a new series. Single-frame pose-estimation noise otherwise creates
// spurious local extrema that break every threshold rule downstream.
//
// The pipeline smooths exactly once and feeds the same smoothed series to
// every sub-detector; detectors must never disagree because they smoothed
// differently.
func Smooth(series MotionEnergySeries, window int) MotionEnergySeries {
	n := len(series)
	out := make(MotionEnergySeries, n)
	if n == 0 {
		return out
	}
	if window < 1 {
		window = 1
	}
	if window > 3 {
		window = 3
	}
	for i := 0; i < n; i++ {
		lo := i - window
		if lo < 0 {
			lo = 0
		}
		hi := i + window
		if hi > n-1 {
			hi = n - 1
		}
		var sum float64
		for k := lo; k <= hi; k++ {
			sum += series[k]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}
