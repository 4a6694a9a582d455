// Package style classifies a segmented swing as torso-dominant,
// arm-dominant or mixed. It is a deliberately simple weighted-vote consumer
// of the phase frames produced by the swing package: two independent signed
// votes over the joints at top, downswing and impact, combined into a
// 3-way label with a confidence tier.
package style

import (
	"math"

	"github.com/fairway-data/swing.report/internal/pose"
	"github.com/fairway-data/swing.report/internal/swing"
)

// Style is the 3-way swing style classification.
type Style string

const (
	StyleTorsoDominant Style = "torso_dominant"
	StyleArmDominant   Style = "arm_dominant"
	StyleMixed         Style = "mixed"
)

// Confidence grades how strongly the votes support the classification.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// downgrade lowers the tier by one step; low stays low.
func (c Confidence) downgrade() Confidence {
	switch c {
	case ConfidenceHigh:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Assessment is the classifier output.
type Assessment struct {
	Style      Style      `json:"style"`
	Confidence Confidence `json:"confidence"`
	// Evidence holds at most two short observations explaining the votes.
	Evidence []string `json:"evidence,omitempty"`
}

// Input carries the three phase frames the classifier consumes plus an
// external stability hint.
type Input struct {
	Top       pose.Frame
	Downswing pose.Frame
	Impact    pose.Frame

	// FaceAngleUnstable is a hint from the vision service that the player's
	// facing direction jittered across the clip; it costs one confidence
	// tier because both votes read body orientation.
	FaceAngleUnstable bool
}

// FromResult builds the classifier input from a segmentation result. ok is
// false when the result carries no phase frames (empty input upstream).
func FromResult(res swing.Result, faceAngleUnstable bool) (Input, bool) {
	top, ok1 := res.PhaseFrames[swing.PhaseTop]
	down, ok2 := res.PhaseFrames[swing.PhaseDownswing]
	impact, ok3 := res.PhaseFrames[swing.PhaseImpact]
	if !ok1 || !ok2 || !ok3 {
		return Input{}, false
	}
	return Input{
		Top:               top,
		Downswing:         down,
		Impact:            impact,
		FaceAngleUnstable: faceAngleUnstable,
	}, true
}

// Classify combines the rotation-lead and hand-extension votes. Positive
// votes favour torso dominance, negative favour arm dominance; a vote that
// cannot be computed from the available joints abstains rather than biasing
// the outcome.
func Classify(in Input) Assessment {
	v1, e1, ok1 := rotationVote(in.Top, in.Downswing)
	v2, e2, ok2 := extensionVote(in.Impact)

	sum := v1 + v2
	var a Assessment
	switch {
	case sum > 0:
		a.Style = StyleTorsoDominant
	case sum < 0:
		a.Style = StyleArmDominant
	default:
		a.Style = StyleMixed
	}

	fired := 0
	if ok1 && v1 != 0 {
		fired++
	}
	if ok2 && v2 != 0 {
		fired++
	}
	switch {
	case fired == 2 && v1 == v2:
		a.Confidence = ConfidenceHigh
	case fired >= 1 && sum != 0:
		a.Confidence = ConfidenceMedium
	default:
		a.Confidence = ConfidenceLow
	}
	if in.FaceAngleUnstable {
		a.Confidence = a.Confidence.downgrade()
	}

	if e1 != "" {
		a.Evidence = append(a.Evidence, e1)
	}
	if e2 != "" && len(a.Evidence) < 2 {
		a.Evidence = append(a.Evidence, e2)
	}
	return a
}

// Vote thresholds. The 1.25 dominance ratio means one signal must beat the
// other by a quarter before the vote fires; dropScale makes a full-body hand
// drop (~0.4 normalised units) comparable to a quarter shoulder turn.
const (
	dominanceRatio = 1.25
	dropScale      = (math.Pi / 2) / 0.4

	extendedRatio  = 1.35
	connectedRatio = 0.9
)

// rotationVote compares shoulder-line rotation against normalised hand drop
// over the top → downswing transition. Torso-led swings rotate first; arm-led
// swings drop the hands first.
func rotationVote(top, down pose.Frame) (vote int, evidence string, ok bool) {
	a1, ok1 := shoulderAngle(top.Joints)
	a2, ok2 := shoulderAngle(down.Joints)
	group, found := pose.HandProxyJoints([]pose.Frame{top, down})
	if !ok1 || !ok2 || !found {
		return 0, "", false
	}
	h1, okh1 := top.Joints.Midpoint(group...)
	h2, okh2 := down.Joints.Midpoint(group...)
	if !okh1 || !okh2 {
		return 0, "", false
	}

	rotation := math.Abs(wrapAngle(a2 - a1))
	drop := math.Abs(h2.Y-h1.Y) * dropScale

	switch {
	case rotation > drop*dominanceRatio:
		return +1, "shoulder rotation leads the transition from the top", true
	case drop > rotation*dominanceRatio:
		return -1, "hand drop leads the transition from the top", true
	}
	return 0, "", true
}

// extensionVote measures how far the wrists sit from the torso at impact,
// relative to torso length. It requires actual wrists: a midpoint fallback
// would place the hands on the torso and fake a connected swing.
func extensionVote(impact pose.Frame) (vote int, evidence string, ok bool) {
	hands, okHands := impact.Joints.Midpoint(pose.LeftWrist, pose.RightWrist)
	shoulders, okS := impact.Joints.Midpoint(pose.LeftShoulder, pose.RightShoulder)
	hips, okH := impact.Joints.Midpoint(pose.LeftHip, pose.RightHip)
	if !okHands || !okS || !okH {
		return 0, "", false
	}
	torso := math.Hypot(shoulders.X-hips.X, shoulders.Y-hips.Y)
	if torso <= 0 {
		return 0, "", false
	}

	ratio := math.Hypot(hands.X-hips.X, hands.Y-hips.Y) / torso
	switch {
	case ratio > extendedRatio:
		return -1, "hands released well away from the torso at impact", true
	case ratio < connectedRatio:
		return +1, "hands stay connected to the torso at impact", true
	}
	return 0, "", true
}

func shoulderAngle(js pose.JointSet) (float64, bool) {
	l, okL := js.Get(pose.LeftShoulder)
	r, okR := js.Get(pose.RightShoulder)
	if !okL || !okR {
		return 0, false
	}
	return math.Atan2(r.Y-l.Y, r.X-l.X), true
}

func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
