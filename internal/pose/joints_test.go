package pose

import "testing"

func TestParseJoint_Spellings(t *testing.T) {
	cases := []struct {
		name string
		want Joint
	}{
		{"leftWrist", LeftWrist},
		{"left_wrist", LeftWrist},
		{"LEFT_WRIST", LeftWrist},
		{"RightShoulder", RightShoulder},
		{"right-shoulder", RightShoulder},
		{"leftAnkle", LeftAnkle},
	}
	for _, c := range cases {
		got, ok := ParseJoint(c.name)
		if !ok {
			t.Errorf("ParseJoint(%q) not recognised", c.name)
			continue
		}
		if got != c.want {
			t.Errorf("ParseJoint(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestParseJoint_Unknown(t *testing.T) {
	for _, name := range []string{"", "nose", "leftToe", "wrist"} {
		if _, ok := ParseJoint(name); ok {
			t.Errorf("ParseJoint(%q) should not resolve", name)
		}
	}
}

func TestJointString_RoundTrip(t *testing.T) {
	for j := Joint(0); j < NumJoints; j++ {
		parsed, ok := ParseJoint(j.String())
		if !ok || parsed != j {
			t.Errorf("round trip failed for %v", j)
		}
	}
}
