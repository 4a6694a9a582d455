package pose

import "math"

// Synthetic trajectory shape. The curve is an arbitrary smooth swing-like
// arc: the wrists rise to a single highest point mid-clip and sweep across
// the frame, while shoulders and hips sway slightly. Its only job is to give
// the motion-energy stage a non-degenerate signal with one clear hand-height
// minimum; it carries no information about the actual video.
const (
	syntheticHandBaseY  = 0.62
	syntheticHandLiftY  = 0.28
	syntheticHandSweepX = 0.22
	syntheticWristGapX  = 0.04
	syntheticSwayX      = 0.03
)

// SyntheticFrames builds the deterministic fallback frame sequence keyed by
// each sample's timestamp. Identical samples always produce identical
// frames: no randomness, no wall clock. Callers receive these only together
// with ProvenanceSynthetic.
func SyntheticFrames(samples []Sample) []Frame {
	n := len(samples)
	frames := make([]Frame, n)
	if n == 0 {
		return frames
	}

	duration := samples[n-1].TimestampSec - samples[0].TimestampSec
	for i, s := range samples {
		// Normalised progress through the clip. Falls back to index spacing
		// when timestamps are absent or constant.
		var t float64
		if duration > 0 {
			t = (s.TimestampSec - samples[0].TimestampSec) / duration
		} else if n > 1 {
			t = float64(i) / float64(n-1)
		}

		handY := syntheticHandBaseY - syntheticHandLiftY*math.Sin(math.Pi*t)
		handX := 0.5 + syntheticHandSweepX*math.Sin(2*math.Pi*t)
		sway := syntheticSwayX * math.Sin(math.Pi*t)

		f := Frame{Index: i, TimestampSec: s.TimestampSec, Image: s.Image}
		f.Joints.Set(LeftWrist, Keypoint{X: handX - syntheticWristGapX/2, Y: handY})
		f.Joints.Set(RightWrist, Keypoint{X: handX + syntheticWristGapX/2, Y: handY})
		f.Joints.Set(LeftShoulder, Keypoint{X: 0.42 + sway, Y: 0.38})
		f.Joints.Set(RightShoulder, Keypoint{X: 0.58 + sway, Y: 0.38})
		f.Joints.Set(LeftHip, Keypoint{X: 0.45 + sway/2, Y: 0.62})
		f.Joints.Set(RightHip, Keypoint{X: 0.55 + sway/2, Y: 0.62})
		frames[i] = f
	}
	return frames
}
