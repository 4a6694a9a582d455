package pose

import (
	"image"
	"math"
)

// Provenance records where a frame sequence's joint data came from. Callers
// must be able to tell a synthetic fallback apart from real estimator
// output, so the tag travels with every adapted sequence.
type Provenance string

const (
	// ProvenanceEstimator marks joints produced by the upstream vision
	// service.
	ProvenanceEstimator Provenance = "estimator"
	// ProvenanceSynthetic marks the deterministic fallback trajectory
	// substituted when the estimator produced no usable joints at all. It is
	// a safety valve for downstream motion-energy computation, not a pose
	// estimate.
	ProvenanceSynthetic Provenance = "synthetic"
)

// Point is a raw estimator coordinate pair. A nil *Point in a sample's pose
// map means the joint was not detected in that frame.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sample is one per-frame record as delivered by the upstream frame
// extraction and pose estimation collaborators. Pose keys use whatever
// joint-name spelling the estimator emits; coordinates may fall outside
// [0,1] or be NaN on estimator glitches.
type Sample struct {
	Index        int               `json:"idx"`
	TimestampSec float64           `json:"timestampSec"`
	Pose         map[string]*Point `json:"pose,omitempty"`
	Confidence   float64           `json:"confidence,omitempty"`
	Image        image.Image       `json:"-"`
}

// Adapt normalises upstream samples into canonical frames: joint names are
// resolved against the canonical vocabulary, coordinates clamped into
// [0,1]², and nil or non-finite points dropped. Frame.Index is the position
// in the supplied sequence regardless of the upstream idx field.
//
// When not a single usable joint exists across all samples, Adapt
// substitutes the deterministic trajectory from SyntheticFrames so the
// motion-energy stage is never degenerate, and reports ProvenanceSynthetic.
func Adapt(samples []Sample) ([]Frame, Provenance) {
	frames := make([]Frame, len(samples))
	usable := 0
	for i, s := range samples {
		f := Frame{Index: i, TimestampSec: s.TimestampSec, Image: s.Image}
		for name, pt := range s.Pose {
			if pt == nil {
				continue
			}
			j, ok := ParseJoint(name)
			if !ok {
				continue
			}
			x, okX := clamp01(pt.X)
			y, okY := clamp01(pt.Y)
			if !okX || !okY {
				continue
			}
			f.Joints.Set(j, Keypoint{X: x, Y: y, Confidence: s.Confidence})
			usable++
		}
		frames[i] = f
	}
	if usable == 0 {
		return SyntheticFrames(samples), ProvenanceSynthetic
	}
	return frames, ProvenanceEstimator
}

// clamp01 clamps v into [0,1]; ok is false for NaN or infinite input.
func clamp01(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if v < 0 {
		return 0, true
	}
	if v > 1 {
		return 1, true
	}
	return v, true
}
