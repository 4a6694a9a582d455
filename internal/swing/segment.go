package swing

import (
	"github.com/fairway-data/swing.report/internal/config"
	"github.com/fairway-data/swing.report/internal/pose"
)

// Options configure a segmentation call. The zero value uses tuning defaults
// and automatic signal-source selection.
type Options struct {
	// Tuning overrides detection thresholds; nil uses the defaults.
	Tuning *config.TuningConfig
	// Source forces a motion signal source; nil selects automatically
	// (joints when present, else pixels).
	Source MotionSignalSource
	// Synthetic should carry the keypoint adapter's provenance: true when
	// the frames hold the synthetic fallback trajectory rather than real
	// estimator output. It is copied through to the result untouched.
	Synthetic bool
}

// Result is the output of one segmentation call. Indices always hold six
// in-bounds frame indices, strictly increasing whenever the input has at
// least six frames; input quality is reported through the flags, never
// through an error.
type Result struct {
	Indices PhaseIndices
	// PhaseFrames maps each phase to the frame selected for it. Empty only
	// for empty input.
	PhaseFrames map[Phase]pose.Frame

	// Energy and Smoothed are the raw and conditioned motion-energy series,
	// exposed for diagnostics and tuning tools.
	Energy   MotionEnergySeries
	Smoothed MotionEnergySeries

	// SignalSource names the motion source that ran ("joints" or "pixels").
	SignalSource string
	// FallbackUsed is true when the fixed-proportion indices were returned
	// because the clip was too short or its motion too uniform.
	FallbackUsed bool
	// Synthetic is true when the input frames carry the adapter's synthetic
	// trajectory instead of real pose data.
	Synthetic bool
}

// Segment assigns the six canonical phase indices to a frame sequence. It is
// pure and deterministic (identical input yields identical output) and
// never fails: every input shape, including empty, static or joint-free
// sequences, produces six valid ordered indices with quality flagged on the
// result.
func Segment(frames []pose.Frame, opts Options) Result {
	cfg := opts.Tuning
	if cfg == nil {
		cfg = config.EmptyTuningConfig()
	}

	res := Result{
		Synthetic:   opts.Synthetic,
		PhaseFrames: make(map[Phase]pose.Frame, NumPhases),
	}

	n := len(frames)
	if n == 0 {
		res.FallbackUsed = true
		res.Indices = indicesFromArray(enforceOrder(proportionalIndices(0), 0))
		return res
	}

	src := opts.Source
	if src == nil {
		src = ChooseSource(frames, cfg.GetPixelStride())
	}
	res.SignalSource = src.Name()
	res.Energy = src.Series(frames)
	res.Smoothed = Smooth(res.Energy, cfg.GetSmoothingHalfWindow())
	st := summarize(res.Smoothed)

	// Energies are non-negative, so Range <= Max always and an all-zero
	// series counts as degenerate.
	degenerate := st.Range <= cfg.GetEnergyEpsilon()*st.Max

	var indices [NumPhases]int
	if n < cfg.GetMinFrames() || degenerate {
		res.FallbackUsed = true
		indices = proportionalIndices(n)
	} else {
		p := resolveParams(cfg)
		address := detectAddress(frames, res.Smoothed, st, p)
		top := detectTop(frames, p)
		backswing := detectBackswing(frames, address, top, p)
		downswing := detectDownswing(frames, res.Smoothed, st, top, p)
		impact := detectImpact(frames, res.Smoothed, downswing, p)
		finish := detectFinish(res.Smoothed, impact, p)
		indices = [NumPhases]int{address, backswing, top, downswing, impact, finish}
	}

	res.Indices = indicesFromArray(enforceOrder(indices, n))
	for _, p := range Phases() {
		res.PhaseFrames[p] = frames[res.Indices.At(p)]
	}
	return res
}

// SegmentSamples adapts raw estimator samples and segments them in one call,
// propagating the adapter's provenance into the result. This is the entry
// point the request handler uses when it holds upstream output rather than
// canonical frames.
func SegmentSamples(samples []pose.Sample, opts Options) Result {
	frames, provenance := pose.Adapt(samples)
	opts.Synthetic = provenance == pose.ProvenanceSynthetic
	return Segment(frames, opts)
}
