package swing

// enforceOrder clamps the six indices into [0, n-1] and repairs
// monotonicity violations by nudging, never by re-running detection: the
// sub-detectors are locally optimal but not globally coordinated, and this
// pass is the single backstop that makes the ordering contract
// unconditional, including for adversarial inputs such as all-identical
// frames.
//
// Two passes: first each index is capped so its successors keep headroom
// (a detector that picks a frame near the end would otherwise drag every
// later phase into a saturated tie), then a left-to-right pass pushes each
// index just past its predecessor. With at least NumPhases frames the result
// is strictly increasing; below that the indices saturate at n-1 and stay
// non-decreasing.
func enforceOrder(indices [NumPhases]int, n int) [NumPhases]int {
	last := n - 1
	if last < 0 {
		last = 0
	}
	for i := range indices {
		limit := last - (len(indices) - 1 - i)
		if limit < 0 {
			limit = 0
		}
		if indices[i] > limit {
			indices[i] = limit
		}
		if indices[i] < 0 {
			indices[i] = 0
		}
	}
	for i := 1; i < len(indices); i++ {
		if indices[i] <= indices[i-1] {
			next := indices[i-1] + 1
			if next > last {
				next = last
			}
			indices[i] = next
		}
	}
	return indices
}
