package swing

import "math"

// fallbackProportions place the first five phases at fixed fractions of the
// clip duration; finish pins to the final frame. Used when the clip is too
// short or too still for motion-based discrimination: an approximate answer
// is more useful to the caller than a hard failure.
var fallbackProportions = [NumPhases - 1]float64{0.05, 0.35, 0.55, 0.75, 0.95}

// proportionalIndices returns the fixed-proportion phase indices for a
// sequence of n frames. The result still passes through enforceOrder, which
// keeps it valid for very small n.
func proportionalIndices(n int) [NumPhases]int {
	var out [NumPhases]int
	if n <= 0 {
		return out
	}
	for i, f := range fallbackProportions {
		out[i] = int(math.Round(f * float64(n-1)))
	}
	out[NumPhases-1] = n - 1
	return out
}
