package swing

import (
	"math"

	"github.com/fairway-data/swing.report/internal/config"
	"github.com/fairway-data/swing.report/internal/pose"
)

// detectParams are the resolved tuning values the sub-detectors consume.
// Resolving once up front keeps the detectors pure functions of their
// arguments.
type detectParams struct {
	earlyFraction float64
	earlyCap      int
	driftWeight   float64
	riseEps       float64
	topSearchFrac float64
	topPlateauEps float64
	topWindowFrac float64
	descentEps    float64
	impactFloor   float64
	finishFrac    float64
}

func resolveParams(cfg *config.TuningConfig) detectParams {
	return detectParams{
		earlyFraction: cfg.GetEarlyWindowFraction(),
		earlyCap:      cfg.GetEarlyWindowCap(),
		driftWeight:   cfg.GetHandDriftWeight(),
		riseEps:       cfg.GetRiseEpsilon(),
		topSearchFrac: cfg.GetTopSearchFraction(),
		topPlateauEps: cfg.GetTopPlateauEpsilon(),
		topWindowFrac: cfg.GetTopWindowFraction(),
		descentEps:    cfg.GetDescentEpsilon(),
		impactFloor:   cfg.GetImpactVelocityFloor(),
		finishFrac:    cfg.GetFinishWindowFraction(),
	}
}

// handYSeries extracts per-frame hand height (normalised y, smaller is
// physically higher) using one proxy joint pair for the whole sequence
// (wrists, falling to shoulders then hips only when the higher tier never
// appears). ok marks frames where the chosen pair is present; a dropout
// frame contributes nothing rather than a reading from a lower tier at a
// different body height.
func handYSeries(frames []pose.Frame) (ys []float64, ok []bool) {
	ys = make([]float64, len(frames))
	ok = make([]bool, len(frames))
	group, found := pose.HandProxyJoints(frames)
	if !found {
		return ys, ok
	}
	for i, f := range frames {
		if kp, present := f.Joints.Midpoint(group...); present {
			ys[i] = kp.Y
			ok[i] = true
		}
	}
	return ys, ok
}

// handXSeries is the horizontal counterpart of handYSeries.
func handXSeries(frames []pose.Frame) (xs []float64, ok []bool) {
	xs = make([]float64, len(frames))
	ok = make([]bool, len(frames))
	group, found := pose.HandProxyJoints(frames)
	if !found {
		return xs, ok
	}
	for i, f := range frames {
		if kp, present := f.Joints.Midpoint(group...); present {
			xs[i] = kp.X
			ok[i] = true
		}
	}
	return xs, ok
}

// spread returns max-min over the valid entries of a series, 0 when fewer
// than two entries are valid.
func spread(vals []float64, ok []bool) float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	n := 0
	for i, v := range vals {
		if !ok[i] {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		n++
	}
	if n < 2 {
		return 0
	}
	return hi - lo
}

// finishWindow returns the length of the trailing search window, at least
// two frames so ties can resolve toward the later one.
func finishWindow(n int, frac float64) int {
	w := int(math.Round(float64(n) * frac))
	if w < 2 {
		w = 2
	}
	if w > n {
		w = n
	}
	return w
}

// detectAddress picks the stillest frame in the early window. Pure
// zero-energy ties are common at the start of a clip, so a low-weight
// horizontal hand-drift term breaks them.
func detectAddress(frames []pose.Frame, smoothed MotionEnergySeries, st seriesStats, p detectParams) int {
	n := len(frames)
	win := int(math.Round(float64(n) * p.earlyFraction))
	if win < 2 {
		win = 2
	}
	if win > p.earlyCap {
		win = p.earlyCap
	}
	if win > n {
		win = n
	}

	xs, xok := handXSeries(frames)
	var refX float64
	haveRef := false
	for i := 0; i < win; i++ {
		if xok[i] {
			refX = xs[i]
			haveRef = true
			break
		}
	}

	den := st.Range
	if den <= 0 {
		den = 1
	}
	best, bestScore := 0, math.Inf(1)
	for i := 0; i < win; i++ {
		score := (smoothed[i] - st.Min) / den
		if haveRef && xok[i] {
			score += p.driftWeight * math.Abs(xs[i]-refX)
		}
		if score < bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// detectTop finds the highest hand position (minimum normalised y) within
// the leading search fraction of the sequence, then extends the pick forward
// across any epsilon-plateau: a short pause at the top still counts as top,
// biased toward its end where the downswing is about to begin. The trailing
// part of the sequence is excluded so a follow-through artifact cannot claim
// the slot.
func detectTop(frames []pose.Frame, p detectParams) int {
	n := len(frames)
	limit := int(math.Round(float64(n) * p.topSearchFrac))
	if limit < 1 {
		limit = 1
	}
	if limit > n {
		limit = n
	}

	ys, ok := handYSeries(frames)
	minIdx, minY := -1, math.Inf(1)
	for i := 0; i < limit; i++ {
		if ok[i] && ys[i] < minY {
			minIdx, minY = i, ys[i]
		}
	}
	if minIdx < 0 {
		// No proxy joint anywhere; the middle of the search range is the
		// least-wrong guess and the order enforcer keeps it consistent.
		return limit / 2
	}

	eps := p.topPlateauEps * spread(ys, ok)
	top := minIdx
	for i := minIdx + 1; i < limit; i++ {
		if !ok[i] || ys[i] > minY+eps {
			break
		}
		top = i
	}
	return top
}

// detectBackswing scans forward from address for the first rise of the hands
// that is sustained into the following frame; single-frame spikes are pose
// jitter, not the start of a swing. When no clear rising edge exists it
// falls back to the frame with the sharpest change of hand angular velocity
// about the shoulder midpoint, then to address+1.
func detectBackswing(frames []pose.Frame, address, top int, p detectParams) int {
	ys, ok := handYSeries(frames)
	eps := p.riseEps * spread(ys, ok)

	if address >= 0 && address < len(ys) && ok[address] {
		base := ys[address]
		for i := address + 1; i < top; i++ {
			if !ok[i] || i+1 >= len(ys) || !ok[i+1] {
				continue
			}
			// Hands rising means y decreasing.
			if base-ys[i] > eps && base-ys[i+1] > eps {
				return i
			}
		}
	}

	if i := maxAngularVelocityChange(frames, address, top); i >= 0 {
		return i
	}
	return address + 1
}

// maxAngularVelocityChange returns the index in (lo, hi) with the largest
// single-step change of hand angular velocity about the shoulder midpoint,
// or -1 when the joints needed are never simultaneously present.
func maxAngularVelocityChange(frames []pose.Frame, lo, hi int) int {
	group, found := pose.HandProxyJoints(frames)
	if !found {
		return -1
	}
	angles := make([]float64, len(frames))
	valid := make([]bool, len(frames))
	for i, f := range frames {
		hand, okHand := f.Joints.Midpoint(group...)
		pivot, okPivot := f.Joints.Midpoint(pose.LeftShoulder, pose.RightShoulder)
		if !okHand || !okPivot {
			continue
		}
		angles[i] = math.Atan2(hand.Y-pivot.Y, hand.X-pivot.X)
		valid[i] = true
	}

	best, bestDelta := -1, 0.0
	for i := lo + 1; i < hi; i++ {
		if i < 2 || !valid[i] || !valid[i-1] || !valid[i-2] {
			continue
		}
		w1 := wrapAngle(angles[i-1] - angles[i-2])
		w2 := wrapAngle(angles[i] - angles[i-1])
		if d := math.Abs(w2 - w1); d > bestDelta {
			best, bestDelta = i, d
		}
	}
	return best
}

// wrapAngle maps an angle difference into (-π, π].
func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// detectDownswing locates the first genuine descent after top. Within a
// short transition window past top a net descent alone qualifies: players
// pause there, and any drop is more likely the real trigger than noise.
// Beyond the window a candidate must be a sustained step down that is not
// reversed in the next sample and is carried by above-median motion energy.
// Defaults to top+1; the order enforcer guarantees downswing < impact.
func detectDownswing(frames []pose.Frame, smoothed MotionEnergySeries, st seriesStats, top int, p detectParams) int {
	n := len(frames)
	if top >= n-1 {
		return n - 1
	}

	ys, ok := handYSeries(frames)
	eps := p.descentEps * spread(ys, ok)
	loose := eps / 2
	window := top + int(math.Round(float64(n)*p.topWindowFrac))

	if ok[top] {
		for i := top + 1; i < n-1; i++ {
			if !ok[i] {
				continue
			}
			if i <= window {
				// Hands descending means y increasing.
				if ys[i]-ys[top] > loose {
					return i
				}
				continue
			}
			if !ok[i-1] || !ok[i+1] {
				continue
			}
			step := ys[i] - ys[i-1]
			reversed := ys[i+1] < ys[i]
			if step > eps && !reversed && smoothed[i] > st.Median {
				return i
			}
		}
	}
	return top + 1
}

// detectImpact looks for the kinematic speed extremum just before the hands
// change direction: the first hand x-velocity sign reversal after the
// downswing whose post-reversal magnitude clears an absolute floor. Without
// a clean reversal it takes the fastest frame in range; without any lateral
// hand signal at all it takes the smoothed-energy peak. The search stops
// short of the finish window so follow-through motion cannot claim the slot.
func detectImpact(frames []pose.Frame, smoothed MotionEnergySeries, downswing int, p detectParams) int {
	n := len(frames)
	end := n - finishWindow(n, p.finishFrac)
	start := downswing + 1
	if start < 1 {
		start = 1
	}
	if start > n-1 {
		start = n - 1
	}
	if end <= start {
		end = start + 1
		if end > n {
			end = n
		}
	}

	xs, ok := handXSeries(frames)
	vel := make([]float64, n)
	vok := make([]bool, n)
	for i := 1; i < n; i++ {
		if ok[i] && ok[i-1] {
			vel[i] = xs[i] - xs[i-1]
			vok[i] = true
		}
	}

	// First clean sign reversal with a meaningful post-reversal magnitude.
	for i := start; i+1 < end; i++ {
		if !vok[i] || !vok[i+1] || vel[i] == 0 || vel[i+1] == 0 {
			continue
		}
		if (vel[i] > 0) != (vel[i+1] > 0) && math.Abs(vel[i+1]) > p.impactFloor {
			return i
		}
	}

	// No reversal: the fastest pre-reversal frame.
	best, bestMag := -1, p.impactFloor
	for i := start; i < end; i++ {
		if vok[i] && math.Abs(vel[i]) > bestMag {
			best, bestMag = i, math.Abs(vel[i])
		}
	}
	if best >= 0 {
		return best
	}

	// No usable lateral signal: peak residual energy in range.
	best = start
	for i := start; i < end && i < len(smoothed); i++ {
		if smoothed[i] > smoothed[best] {
			best = i
		}
	}
	return best
}

// detectFinish picks the stillest frame of the trailing window, the point
// where the body has stabilised after the swing, preferring the later frame
// on ties.
func detectFinish(smoothed MotionEnergySeries, impact int, p detectParams) int {
	n := len(smoothed)
	if n == 0 {
		return 0
	}
	start := n - finishWindow(n, p.finishFrac)
	if start <= impact {
		start = impact + 1
	}
	if start > n-1 {
		start = n - 1
	}
	best := start
	for i := start; i < n; i++ {
		if smoothed[i] <= smoothed[best] {
			best = i
		}
	}
	return best
}
