package pose

import "image"

// Keypoint is a normalised 2D joint position: x and y in [0,1], origin at the
// top-left of the frame. Confidence is the estimator's detection confidence
// when supplied, 0 otherwise.
type Keypoint struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence,omitempty"`
}

// JointSet stores one keypoint per canonical joint with explicit presence
// tagging. A joint the estimator did not detect is absent; it never reads
// back as (0,0), which would bias every downstream score toward the image
// origin.
type JointSet struct {
	points  [NumJoints]Keypoint
	present [NumJoints]bool
}

// Set records a keypoint for the given joint. Out-of-range joints are
// ignored.
func (s *JointSet) Set(j Joint, kp Keypoint) {
	if j < 0 || j >= NumJoints {
		return
	}
	s.points[j] = kp
	s.present[j] = true
}

// Get returns the keypoint for the joint and whether it is present.
func (s JointSet) Get(j Joint) (Keypoint, bool) {
	if j < 0 || j >= NumJoints || !s.present[j] {
		return Keypoint{}, false
	}
	return s.points[j], true
}

// Has reports whether the joint is present.
func (s JointSet) Has(j Joint) bool {
	return j >= 0 && j < NumJoints && s.present[j]
}

// Count returns the number of joints present.
func (s JointSet) Count() int {
	n := 0
	for _, p := range s.present {
		if p {
			n++
		}
	}
	return n
}

// Midpoint returns the mean position of the given joints, using only those
// present. ok is false when none of them are present.
func (s JointSet) Midpoint(joints ...Joint) (Keypoint, bool) {
	var sumX, sumY float64
	n := 0
	for _, j := range joints {
		kp, ok := s.Get(j)
		if !ok {
			continue
		}
		sumX += kp.X
		sumY += kp.Y
		n++
	}
	if n == 0 {
		return Keypoint{}, false
	}
	return Keypoint{X: sumX / float64(n), Y: sumY / float64(n)}, true
}

// handProxyTiers orders the joint pairs that can stand in for hand position.
var handProxyTiers = [][]Joint{
	{LeftWrist, RightWrist},
	{LeftShoulder, RightShoulder},
	{LeftHip, RightHip},
}

// HandProxyJoints selects the joint pair that proxies hand position for an
// entire frame sequence: wrists when any frame carries one, else shoulders,
// else hips. The tier is fixed per sequence: a transient wrist dropout reads
// as a frame with no hand point, it never switches mid-sequence to a pair
// sitting at a different body height. ok is false when no tier joint appears
// in any frame.
func HandProxyJoints(frames []Frame) ([]Joint, bool) {
	for _, tier := range handProxyTiers {
		for _, f := range frames {
			if f.Joints.Has(tier[0]) || f.Joints.Has(tier[1]) {
				return tier, true
			}
		}
	}
	return nil, false
}

// Frame is one time-ordered element of the input sequence. Index is the
// 0-based position in the sequence and TimestampSec is non-decreasing across
// a sequence.
type Frame struct {
	Index        int
	TimestampSec float64
	Joints       JointSet

	// Image is the opaque per-frame payload. The core never inspects it
	// except in the pixel-difference motion signal source.
	Image image.Image
}
