package swing

import (
	"image"
	"math"

	"github.com/fairway-data/swing.report/internal/pose"
)

// MotionEnergySeries is one scalar of inter-frame movement per frame.
// Element 0 is always zero: there is no previous frame to diff against.
// Invariant: len(series) == len(frames).
type MotionEnergySeries []float64

// MotionSignalSource converts a frame sequence into a motion-energy series.
// The pixel-diff and joint-displacement heuristics sit behind one interface
// selected at configuration time, so exactly one of them runs for a given
// video and every downstream stage is source-agnostic.
type MotionSignalSource interface {
	// Name identifies the source in results and logs.
	Name() string
	// Series computes the per-frame motion energy. The returned slice always
	// has the same length as frames.
	Series(frames []pose.Frame) MotionEnergySeries
}

// JointDisplacementSource sums Euclidean joint-to-joint displacement between
// consecutive frames over the canonical joint set. A joint missing from
// either frame contributes nothing; it never null-propagates or reads as the
// origin.
type JointDisplacementSource struct{}

// Name implements MotionSignalSource.
func (JointDisplacementSource) Name() string { return "joints" }

// Series implements MotionSignalSource.
func (JointDisplacementSource) Series(frames []pose.Frame) MotionEnergySeries {
	energy := make(MotionEnergySeries, len(frames))
	for i := 1; i < len(frames); i++ {
		var sum float64
		for j := pose.Joint(0); j < pose.NumJoints; j++ {
			cur, ok := frames[i].Joints.Get(j)
			if !ok {
				continue
			}
			prev, ok := frames[i-1].Joints.Get(j)
			if !ok {
				continue
			}
			sum += math.Hypot(cur.X-prev.X, cur.Y-prev.Y)
		}
		energy[i] = sum
	}
	return energy
}

// PixelDiffSource computes the mean absolute per-channel difference between
// consecutive frame images, sampling every Stride-th pixel in both
// dimensions. Downstream use is threshold comparison only, so the sparse
// sample is sufficient and keeps per-video cost bounded regardless of the
// source resolution.
type PixelDiffSource struct {
	// Stride is the pixel sampling stride; values below 1 fall back to 8.
	Stride int
}

// Name implements MotionSignalSource.
func (PixelDiffSource) Name() string { return "pixels" }

// Series implements MotionSignalSource.
func (s PixelDiffSource) Series(frames []pose.Frame) MotionEnergySeries {
	stride := s.Stride
	if stride < 1 {
		stride = 8
	}
	energy := make(MotionEnergySeries, len(frames))
	for i := 1; i < len(frames); i++ {
		energy[i] = pixelDiff(frames[i-1].Image, frames[i].Image, stride)
	}
	return energy
}

// pixelDiff returns the mean absolute per-channel difference over the shared
// bounds of two images, normalised to [0,1]. Nil images diff to zero.
func pixelDiff(a, b image.Image, stride int) float64 {
	if a == nil || b == nil {
		return 0
	}
	ab, bb := a.Bounds(), b.Bounds()
	w := min(ab.Dx(), bb.Dx())
	h := min(ab.Dy(), bb.Dy())
	if w <= 0 || h <= 0 {
		return 0
	}

	var total float64
	var n int
	for y := 0; y < h; y += stride {
		for x := 0; x < w; x += stride {
			ar, ag, abl, _ := a.At(ab.Min.X+x, ab.Min.Y+y).RGBA()
			br, bg, bbl, _ := b.At(bb.Min.X+x, bb.Min.Y+y).RGBA()
			total += absDiff(ar, br) + absDiff(ag, bg) + absDiff(abl, bbl)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	// RGBA channels are 16-bit.
	return total / float64(n*3) / 65535.0
}

func absDiff(a, b uint32) float64 {
	if a > b {
		return float64(a - b)
	}
	return float64(b - a)
}

// ChooseSource selects the motion signal source for a sequence: joints when
// any frame carries at least one joint, pixels when only images are
// available. A sequence with neither gets the joint source, whose all-zero
// series then routes the pipeline into the degenerate-motion fallback.
func ChooseSource(frames []pose.Frame, pixelStride int) MotionSignalSource {
	for _, f := range frames {
		if f.Joints.Count() > 0 {
			return JointDisplacementSource{}
		}
	}
	for _, f := range frames {
		if f.Image != nil {
			return PixelDiffSource{Stride: pixelStride}
		}
	}
	return JointDisplacementSource{}
}
