package swing

import (
	"testing"

	"github.com/fairway-data/swing.report/internal/config"
	"github.com/fairway-data/swing.report/internal/pose"
)

func defaultParams() detectParams {
	return resolveParams(config.EmptyTuningConfig())
}

// framesFromWrists builds a frame per (x, y) pair with both wrists at that
// position, which makes the hand point exactly the supplied trajectory.
func framesFromWrists(xs, ys []float64) []pose.Frame {
	frames := make([]pose.Frame, len(ys))
	for i := range frames {
		x := 0.5
		if xs != nil {
			x = xs[i]
		}
		frames[i].Index = i
		frames[i].Joints.Set(pose.LeftWrist, pose.Keypoint{X: x, Y: ys[i]})
		frames[i].Joints.Set(pose.RightWrist, pose.Keypoint{X: x, Y: ys[i]})
	}
	return frames
}

func constSeries(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func TestDetectAddress_MinimumEnergyInEarlyWindow(t *testing.T) {
	n := 40
	smoothed := make(MotionEnergySeries, n)
	for i := range smoothed {
		smoothed[i] = 0.8
	}
	copy(smoothed, []float64{0.5, 0.4, 0.3, 0.1, 0.2, 0.3})

	frames := framesFromWrists(nil, constSeries(n, 0.7)) // no hand drift
	got := detectAddress(frames, smoothed, summarize(smoothed), defaultParams())
	if got != 3 {
		t.Errorf("address = %d, want 3 (energy minimum in early window)", got)
	}
}

func TestDetectAddress_HandDriftBreaksTies(t *testing.T) {
	n := 40
	smoothed := make(MotionEnergySeries, n) // zero energy everywhere early
	for i := 6; i < n; i++ {
		smoothed[i] = 0.5
	}
	xs := constSeries(n, 0.5)
	// Hands drift away from the opening stance except at frame 2.
	xs[0], xs[1], xs[2], xs[3], xs[4], xs[5] = 0.5, 0.53, 0.5, 0.55, 0.56, 0.58

	frames := framesFromWrists(xs, constSeries(n, 0.7))
	got := detectAddress(frames, smoothed, summarize(smoothed), defaultParams())
	// Frames 0 and 2 tie on energy and drift; the earlier one wins.
	if got != 0 {
		t.Errorf("address = %d, want 0 (drift tie resolved to first)", got)
	}
}

func TestDetectTop_PlateauExtendsToEnd(t *testing.T) {
	ys := []float64{
		0.80, 0.75, 0.70, 0.64, 0.58, 0.52, 0.46, 0.40, 0.35, 0.31,
		0.300, 0.301, 0.305, 0.312, 0.330, 0.40, 0.50, 0.60, 0.70, 0.80,
	}
	frames := framesFromWrists(nil, ys)
	got := detectTop(frames, defaultParams())
	// Spread 0.5, plateau epsilon 0.03*0.5 = 0.015: frames 10-13 sit within
	// the band and the pick biases to its end.
	if got != 13 {
		t.Errorf("top = %d, want 13 (end of plateau)", got)
	}
}

func TestDetectTop_IgnoresLateFollowThrough(t *testing.T) {
	n := 40
	ys := constSeries(n, 0.6)
	ys[15] = 0.30 // genuine top
	ys[38] = 0.10 // follow-through artifact in the excluded tail
	frames := framesFromWrists(nil, ys)
	got := detectTop(frames, defaultParams())
	if got != 15 {
		t.Errorf("top = %d, want 15 (tail beyond 75%% excluded)", got)
	}
}

func TestDetectTop_WristDropoutFramesExcluded(t *testing.T) {
	// Wrists vanish for two early frames while the higher-up shoulders stay
	// visible; the hand-height series must skip those frames rather than
	// read the shoulder height as a false minimum.
	const n = 40
	ys := make([]float64, n)
	for i := 0; i <= 20; i++ {
		ys[i] = 0.80 - 0.0175*float64(i)
	}
	for i := 21; i < n; i++ {
		ys[i] = 0.45 + 0.0175*float64(i-20)
	}
	frames := framesFromWrists(nil, ys)
	for i := range frames {
		frames[i].Joints.Set(pose.LeftShoulder, pose.Keypoint{X: 0.42, Y: 0.38})
		frames[i].Joints.Set(pose.RightShoulder, pose.Keypoint{X: 0.58, Y: 0.38})
	}
	for _, i := range []int{4, 5} {
		var js pose.JointSet
		js.Set(pose.LeftShoulder, pose.Keypoint{X: 0.42, Y: 0.38})
		js.Set(pose.RightShoulder, pose.Keypoint{X: 0.58, Y: 0.38})
		frames[i].Joints = js
	}

	got := detectTop(frames, defaultParams())
	if got != 20 {
		t.Errorf("top = %d, want 20 (dropout frames 4-5 must not win)", got)
	}
}

func TestDetectTop_ShoulderFallbackWhenWristsAbsent(t *testing.T) {
	n := 20
	frames := make([]pose.Frame, n)
	for i := range frames {
		y := 0.5
		if i == 8 {
			y = 0.3
		}
		frames[i].Joints.Set(pose.LeftShoulder, pose.Keypoint{X: 0.4, Y: y})
		frames[i].Joints.Set(pose.RightShoulder, pose.Keypoint{X: 0.6, Y: y})
	}
	got := detectTop(frames, defaultParams())
	if got != 8 {
		t.Errorf("top = %d, want 8 via shoulder fallback", got)
	}
}

func TestDetectBackswing_FirstSustainedRise(t *testing.T) {
	ys := []float64{
		0.80, 0.80, 0.80, 0.80, 0.80, 0.76, 0.72, 0.60, 0.45, 0.35, 0.30,
	}
	frames := framesFromWrists(nil, ys)
	got := detectBackswing(frames, 2, 10, defaultParams())
	// Spread 0.5, rise epsilon 0.05*0.5 = 0.025; the first drop from the
	// address height that clears it and holds into the next frame is 5.
	if got != 5 {
		t.Errorf("backswing = %d, want 5", got)
	}
}

func TestDetectBackswing_SingleFrameSpikeRejected(t *testing.T) {
	ys := []float64{
		0.80, 0.80, 0.80, 0.70, 0.80, 0.80, 0.72, 0.60, 0.45, 0.35, 0.30,
	}
	frames := framesFromWrists(nil, ys)
	got := detectBackswing(frames, 0, 10, defaultParams())
	// Frame 3 rises but frame 4 snaps back: jitter. Frame 6 sustains.
	if got != 6 {
		t.Errorf("backswing = %d, want 6 (spike at 3 rejected)", got)
	}
}

func TestDetectBackswing_DefaultsToAddressPlusOne(t *testing.T) {
	frames := framesFromWrists(nil, constSeries(12, 0.6))
	got := detectBackswing(frames, 2, 8, defaultParams())
	if got != 3 {
		t.Errorf("backswing = %d, want 3 (address+1 fallback on flat input)", got)
	}
}

func TestDetectDownswing_WithinTopWindowLooseRule(t *testing.T) {
	n := 40
	ys := constSeries(n, 0.6)
	for i := 0; i <= 20; i++ {
		ys[i] = 0.6 - 0.015*float64(i) // descend to 0.3 at the top
	}
	ys[20], ys[21] = 0.30, 0.30
	for i := 22; i < n; i++ {
		ys[i] = 0.30 + 0.03*float64(i-21)
	}
	frames := framesFromWrists(nil, ys)
	smoothed := make(MotionEnergySeries, n)
	got := detectDownswing(frames, smoothed, summarize(smoothed), 20, defaultParams())
	// Within the transition window any net descent past the loose epsilon
	// qualifies; frame 21 is flat, frame 22 descends.
	if got != 22 {
		t.Errorf("downswing = %d, want 22", got)
	}
}

func TestDetectDownswing_OutsideWindowNeedsEnergy(t *testing.T) {
	n := 40
	top := 10
	ys := constSeries(n, 0.30)
	for i := 0; i < top; i++ {
		ys[i] = 0.6 - 0.03*float64(i)
	}
	for i := 31; i < n; i++ {
		ys[i] = 0.30 + 0.03*float64(i-30)
	}
	smoothed := make(MotionEnergySeries, n)
	for i := 28; i < n; i++ {
		smoothed[i] = 1.0 // above-median energy carries the late descent
	}
	frames := framesFromWrists(nil, ys)
	got := detectDownswing(frames, smoothed, summarize(smoothed), top, defaultParams())
	// The transition window ends at top+6; the hands stay level until the
	// sustained, energetic descent starting at 31.
	if got != 31 {
		t.Errorf("downswing = %d, want 31", got)
	}
}

func TestDetectDownswing_DefaultTopPlusOne(t *testing.T) {
	frames := framesFromWrists(nil, constSeries(30, 0.5))
	smoothed := make(MotionEnergySeries, 30)
	got := detectDownswing(frames, smoothed, summarize(smoothed), 12, defaultParams())
	if got != 13 {
		t.Errorf("downswing = %d, want 13 (top+1 default)", got)
	}
}

func TestDetectImpact_VelocitySignReversal(t *testing.T) {
	n := 40
	k := 25
	xs := make([]float64, n)
	// x rises with growing speed to a peak at k, then falls: the velocity
	// sign flips between k and k+1.
	for i := 1; i < n; i++ {
		if i <= k {
			xs[i] = xs[i-1] + 0.005*float64(i)
		} else {
			xs[i] = xs[i-1] - 0.08
		}
	}
	for i := range xs { // keep coordinates in [0,1]
		xs[i] = 0.1 + xs[i]*0.25
	}
	frames := framesFromWrists(xs, constSeries(n, 0.5))
	smoothed := make(MotionEnergySeries, n)
	got := detectImpact(frames, smoothed, 20, defaultParams())
	if got != k {
		t.Errorf("impact = %d, want %d (sign reversal)", got, k)
	}
}

func TestDetectImpact_NoReversalTakesFastestFrame(t *testing.T) {
	n := 40
	xs := make([]float64, n)
	for i := 1; i < n; i++ {
		step := 0.004
		if i == 28 {
			step = 0.05 // fastest single step
		}
		xs[i] = xs[i-1] + step
	}
	frames := framesFromWrists(xs, constSeries(n, 0.5))
	smoothed := make(MotionEnergySeries, n)
	got := detectImpact(frames, smoothed, 20, defaultParams())
	if got != 28 {
		t.Errorf("impact = %d, want 28 (max |velocity| fallback)", got)
	}
}

func TestDetectImpact_NoLateralSignalTakesEnergyPeak(t *testing.T) {
	n := 40
	frames := framesFromWrists(nil, constSeries(n, 0.5)) // x constant
	smoothed := make(MotionEnergySeries, n)
	smoothed[30] = 0.9
	got := detectImpact(frames, smoothed, 20, defaultParams())
	if got != 30 {
		t.Errorf("impact = %d, want 30 (energy-peak fallback)", got)
	}
}

func TestDetectFinish_TiesBreakLater(t *testing.T) {
	n := 40
	smoothed := make(MotionEnergySeries, n)
	for i := range smoothed {
		smoothed[i] = 0.5
	}
	copy(smoothed[34:], []float64{0.3, 0.2, 0.2, 0.5, 0.2, 0.2})
	got := detectFinish(smoothed, 30, defaultParams())
	if got != 39 {
		t.Errorf("finish = %d, want 39 (tie toward later frame)", got)
	}
}

func TestDetectFinish_StartsAfterImpact(t *testing.T) {
	n := 40
	smoothed := make(MotionEnergySeries, n)
	smoothed[20] = 0.0 // stillest frame overall, but before impact
	for i := 21; i < n; i++ {
		smoothed[i] = 0.5 - 0.01*float64(i-21)
	}
	got := detectFinish(smoothed, 36, defaultParams())
	if got <= 36 {
		t.Errorf("finish = %d, must come after impact 36", got)
	}
}
