package pose

import (
	"math"
	"testing"
)

func TestAdapt_NormalisesNamesAndCoordinates(t *testing.T) {
	samples := []Sample{
		{
			Index:        7, // upstream idx is untrusted; position wins
			TimestampSec: 0.0,
			Pose: map[string]*Point{
				"left_wrist":    {X: 0.25, Y: 0.5},
				"RIGHT_WRIST":   {X: 1.7, Y: -0.3}, // clamps into [0,1]
				"leftShoulder":  {X: 0.4, Y: 0.35},
				"nose":          {X: 0.5, Y: 0.1}, // outside vocabulary
				"rightElbow":    nil,              // undetected
				"leftHip":       {X: math.NaN(), Y: 0.6},
				"rightAnkle":    {X: 0.5, Y: math.Inf(1)},
				"rightShoulder": {X: 0.6, Y: 0.35},
			},
		},
	}

	frames, provenance := Adapt(samples)
	if provenance != ProvenanceEstimator {
		t.Fatalf("provenance = %v, want estimator", provenance)
	}
	if len(frames) != 1 {
		t.Fatalf("len(frames) = %d, want 1", len(frames))
	}

	f := frames[0]
	if f.Index != 0 {
		t.Errorf("Index = %d, want 0 (sequence position)", f.Index)
	}

	if kp, ok := f.Joints.Get(LeftWrist); !ok || kp.X != 0.25 || kp.Y != 0.5 {
		t.Errorf("leftWrist = (%v, %v, ok=%v), want (0.25, 0.5, true)", kp.X, kp.Y, ok)
	}
	if kp, ok := f.Joints.Get(RightWrist); !ok || kp.X != 1.0 || kp.Y != 0.0 {
		t.Errorf("rightWrist should clamp to (1, 0), got (%v, %v, ok=%v)", kp.X, kp.Y, ok)
	}
	for _, j := range []Joint{RightElbow, LeftHip, RightAnkle} {
		if f.Joints.Has(j) {
			t.Errorf("%v should have been dropped", j)
		}
	}
	if f.Joints.Count() != 4 {
		t.Errorf("Count = %d, want 4", f.Joints.Count())
	}
}

func TestAdapt_SyntheticFallbackWhenNoJoints(t *testing.T) {
	samples := make([]Sample, 10)
	for i := range samples {
		samples[i] = Sample{Index: i, TimestampSec: float64(i) * 0.05}
	}

	frames, provenance := Adapt(samples)
	if provenance != ProvenanceSynthetic {
		t.Fatalf("provenance = %v, want synthetic", provenance)
	}
	if len(frames) != len(samples) {
		t.Fatalf("len(frames) = %d, want %d", len(frames), len(samples))
	}
	for i, f := range frames {
		if !f.Joints.Has(LeftWrist) || !f.Joints.Has(RightWrist) {
			t.Fatalf("frame %d: synthetic trajectory must carry wrists", i)
		}
	}
}

func TestAdapt_NilPoseDoesNotTriggerSyntheticWhenOthersUsable(t *testing.T) {
	samples := []Sample{
		{TimestampSec: 0},
		{TimestampSec: 0.1, Pose: map[string]*Point{"leftWrist": {X: 0.5, Y: 0.5}}},
	}
	_, provenance := Adapt(samples)
	if provenance != ProvenanceEstimator {
		t.Errorf("provenance = %v, want estimator: one usable joint suffices", provenance)
	}
}

func TestAdapt_Empty(t *testing.T) {
	frames, provenance := Adapt(nil)
	if len(frames) != 0 {
		t.Errorf("len(frames) = %d, want 0", len(frames))
	}
	if provenance != ProvenanceSynthetic {
		t.Errorf("provenance = %v, want synthetic for empty input", provenance)
	}
}
