// Package pose defines the canonical frame and keypoint data model shared by
// the swing segmentation pipeline, plus the adapter that normalises
// heterogeneous upstream pose-estimator output into it.
package pose

import (
	"fmt"
	"strings"
)

// Joint identifies one of the canonical body joints tracked by the upstream
// pose estimator. The vocabulary is the MediaPipe landmark subset the
// estimator reports.
type Joint int

const (
	LeftShoulder Joint = iota
	RightShoulder
	LeftElbow
	RightElbow
	LeftWrist
	RightWrist
	LeftHip
	RightHip
	LeftKnee
	RightKnee
	LeftAnkle
	RightAnkle

	// NumJoints is the size of the canonical joint vocabulary.
	NumJoints
)

var jointNames = [NumJoints]string{
	"leftShoulder",
	"rightShoulder",
	"leftElbow",
	"rightElbow",
	"leftWrist",
	"rightWrist",
	"leftHip",
	"rightHip",
	"leftKnee",
	"rightKnee",
	"leftAnkle",
	"rightAnkle",
}

// String returns the canonical (camelCase) wire name of the joint.
func (j Joint) String() string {
	if j < 0 || j >= NumJoints {
		return fmt.Sprintf("joint(%d)", int(j))
	}
	return jointNames[j]
}

// jointsByKey maps case- and separator-insensitive joint names to the enum,
// so "leftWrist", "left_wrist" and "LEFT_WRIST" all resolve to LeftWrist.
var jointsByKey = func() map[string]Joint {
	m := make(map[string]Joint, NumJoints)
	for j := Joint(0); j < NumJoints; j++ {
		m[jointKey(jointNames[j])] = j
	}
	return m
}()

func jointKey(name string) string {
	name = strings.ReplaceAll(name, "_", "")
	name = strings.ReplaceAll(name, "-", "")
	return strings.ToLower(name)
}

// ParseJoint resolves an upstream joint name to the canonical enum. It
// accepts camelCase, snake_case and SCREAMING_SNAKE spellings; unknown names
// report ok=false rather than an error so adapters can skip them.
func ParseJoint(name string) (Joint, bool) {
	j, ok := jointsByKey[jointKey(name)]
	return j, ok
}
