// Package swing segments a time-ordered frame sequence into the six
// canonical golf-swing phases: address, backswing, top, downswing, impact
// and finish. The pipeline is pure and synchronous (motion energy,
// smoothing, six sub-detectors, then order enforcement) and always returns
// six in-bounds indices, degrading to a fixed-proportion fallback rather
// than failing on poor input.
package swing

import "fmt"

// Phase names the six canonical swing checkpoints, in temporal order.
type Phase int

const (
	PhaseAddress Phase = iota
	PhaseBackswing
	PhaseTop
	PhaseDownswing
	PhaseImpact
	PhaseFinish

	// NumPhases is the number of canonical phases.
	NumPhases
)

var phaseNames = [NumPhases]string{
	"address",
	"backswing",
	"top",
	"downswing",
	"impact",
	"finish",
}

// String returns the lowercase wire name of the phase.
func (p Phase) String() string {
	if p < 0 || p >= NumPhases {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Phases lists the canonical phases in temporal order.
func Phases() [NumPhases]Phase {
	return [NumPhases]Phase{
		PhaseAddress, PhaseBackswing, PhaseTop,
		PhaseDownswing, PhaseImpact, PhaseFinish,
	}
}

// PhaseIndices are the six selected frame indices. After order enforcement
// they are in bounds and strictly increasing for any input of at least six
// frames; shorter inputs saturate at the last frame.
type PhaseIndices struct {
	Address   int `json:"address"`
	Backswing int `json:"backswing"`
	Top       int `json:"top"`
	Downswing int `json:"downswing"`
	Impact    int `json:"impact"`
	Finish    int `json:"finish"`
}

// Array returns the indices in phase order.
func (pi PhaseIndices) Array() [NumPhases]int {
	return [NumPhases]int{
		pi.Address, pi.Backswing, pi.Top,
		pi.Downswing, pi.Impact, pi.Finish,
	}
}

// At returns the index selected for the given phase.
func (pi PhaseIndices) At(p Phase) int {
	return pi.Array()[p]
}

func indicesFromArray(a [NumPhases]int) PhaseIndices {
	return PhaseIndices{
		Address:   a[PhaseAddress],
		Backswing: a[PhaseBackswing],
		Top:       a[PhaseTop],
		Downswing: a[PhaseDownswing],
		Impact:    a[PhaseImpact],
		Finish:    a[PhaseFinish],
	}
}
