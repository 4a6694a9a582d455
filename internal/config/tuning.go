package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig holds the named detection thresholds for swing phase
// segmentation. Every value here is an empirically tuned constant with no
// first-principles derivation, so all of them are exposed as overridable
// parameters instead of being buried in the detector code.
//
// All fields are optional pointers so partial JSON configs are safe; the
// Get* methods supply defaults for anything unset.
type TuningConfig struct {
	// Signal conditioning
	SmoothingHalfWindow *int     `json:"smoothing_half_window,omitempty"`
	PixelStride         *int     `json:"pixel_stride,omitempty"`
	MinFrames           *int     `json:"min_frames,omitempty"`
	EnergyEpsilon       *float64 `json:"energy_epsilon,omitempty"` // relative to max energy

	// Address
	EarlyWindowFraction *float64 `json:"early_window_fraction,omitempty"`
	EarlyWindowCap      *int     `json:"early_window_cap,omitempty"`
	HandDriftWeight     *float64 `json:"hand_drift_weight,omitempty"`

	// Backswing
	RiseEpsilon *float64 `json:"rise_epsilon,omitempty"` // relative to hand-height spread

	// Top
	TopSearchFraction *float64 `json:"top_search_fraction,omitempty"`
	TopPlateauEpsilon *float64 `json:"top_plateau_epsilon,omitempty"` // relative to hand-height spread

	// Downswing
	TopWindowFraction *float64 `json:"top_window_fraction,omitempty"`
	DescentEpsilon    *float64 `json:"descent_epsilon,omitempty"` // relative to hand-height spread

	// Impact
	ImpactVelocityFloor *float64 `json:"impact_velocity_floor,omitempty"` // absolute, normalised units/frame

	// Finish
	FinishWindowFraction *float64 `json:"finish_window_fraction,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields unset; every Get*
// method then answers with its default.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. The file must have
// a .json extension and stay under the max file size. Fields omitted from
// the JSON retain their defaults, so partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that any set fields hold usable values.
func (c *TuningConfig) Validate() error {
	if c.SmoothingHalfWindow != nil {
		if *c.SmoothingHalfWindow < 1 || *c.SmoothingHalfWindow > 3 {
			return fmt.Errorf("smoothing_half_window must be between 1 and 3, got %d", *c.SmoothingHalfWindow)
		}
	}
	if c.PixelStride != nil && *c.PixelStride < 1 {
		return fmt.Errorf("pixel_stride must be positive, got %d", *c.PixelStride)
	}
	if c.MinFrames != nil && *c.MinFrames < 6 {
		// Six distinct indices cannot fit into fewer than six frames.
		return fmt.Errorf("min_frames must be at least 6, got %d", *c.MinFrames)
	}
	fractions := map[string]*float64{
		"early_window_fraction":  c.EarlyWindowFraction,
		"top_search_fraction":    c.TopSearchFraction,
		"top_window_fraction":    c.TopWindowFraction,
		"finish_window_fraction": c.FinishWindowFraction,
	}
	for name, f := range fractions {
		if f != nil && (*f <= 0 || *f > 1) {
			return fmt.Errorf("%s must be in (0, 1], got %f", name, *f)
		}
	}
	nonNegatives := map[string]*float64{
		"energy_epsilon":        c.EnergyEpsilon,
		"rise_epsilon":          c.RiseEpsilon,
		"top_plateau_epsilon":   c.TopPlateauEpsilon,
		"descent_epsilon":       c.DescentEpsilon,
		"hand_drift_weight":     c.HandDriftWeight,
		"impact_velocity_floor": c.ImpactVelocityFloor,
	}
	for name, f := range nonNegatives {
		if f != nil && *f < 0 {
			return fmt.Errorf("%s must be non-negative, got %f", name, *f)
		}
	}
	return nil
}

// GetSmoothingHalfWindow returns the number of neighbour frames averaged on
// each side of a sample when smoothing the motion-energy series.
func (c *TuningConfig) GetSmoothingHalfWindow() int {
	if c.SmoothingHalfWindow == nil {
		return 2
	}
	return *c.SmoothingHalfWindow
}

// GetPixelStride returns the pixel sampling stride for the pixel-difference
// signal source.
func (c *TuningConfig) GetPixelStride() int {
	if c.PixelStride == nil {
		return 8
	}
	return *c.PixelStride
}

// GetMinFrames returns the minimum frame count for motion-based detection;
// shorter clips take the fixed-proportion fallback.
func (c *TuningConfig) GetMinFrames() int {
	if c.MinFrames == nil {
		return 6
	}
	return *c.MinFrames
}

// GetEnergyEpsilon returns the degenerate-motion threshold: when the
// smoothed energy range is below this fraction of the maximum, the clip is
// treated as static.
func (c *TuningConfig) GetEnergyEpsilon() float64 {
	if c.EnergyEpsilon == nil {
		return 0.02
	}
	return *c.EnergyEpsilon
}

// GetEarlyWindowFraction returns the fraction of the sequence searched for
// the address frame.
func (c *TuningConfig) GetEarlyWindowFraction() float64 {
	if c.EarlyWindowFraction == nil {
		return 0.15
	}
	return *c.EarlyWindowFraction
}

// GetEarlyWindowCap returns the absolute cap on the address search window.
func (c *TuningConfig) GetEarlyWindowCap() int {
	if c.EarlyWindowCap == nil {
		return 20
	}
	return *c.EarlyWindowCap
}

// GetHandDriftWeight returns the weight of the horizontal hand-drift term in
// the address score. Kept low: drift only breaks zero-energy ties.
func (c *TuningConfig) GetHandDriftWeight() float64 {
	if c.HandDriftWeight == nil {
		return 0.25
	}
	return *c.HandDriftWeight
}

// GetRiseEpsilon returns the backswing rising-edge threshold as a fraction
// of the observed hand-height spread.
func (c *TuningConfig) GetRiseEpsilon() float64 {
	if c.RiseEpsilon == nil {
		return 0.05
	}
	return *c.RiseEpsilon
}

// GetTopSearchFraction returns the leading fraction of the sequence searched
// for the top; the rest is excluded so a follow-through artifact cannot
// claim it.
func (c *TuningConfig) GetTopSearchFraction() float64 {
	if c.TopSearchFraction == nil {
		return 0.75
	}
	return *c.TopSearchFraction
}

// GetTopPlateauEpsilon returns the epsilon band, as a fraction of the
// hand-height spread, within which a pause at the top still counts as top.
func (c *TuningConfig) GetTopPlateauEpsilon() float64 {
	if c.TopPlateauEpsilon == nil {
		return 0.03
	}
	return *c.TopPlateauEpsilon
}

// GetTopWindowFraction returns the transition-window length past top, as a
// fraction of the sequence, inside which looser downswing thresholds apply.
func (c *TuningConfig) GetTopWindowFraction() float64 {
	if c.TopWindowFraction == nil {
		return 0.15
	}
	return *c.TopWindowFraction
}

// GetDescentEpsilon returns the downswing descent threshold as a fraction of
// the observed hand-height spread.
func (c *TuningConfig) GetDescentEpsilon() float64 {
	if c.DescentEpsilon == nil {
		return 0.04
	}
	return *c.DescentEpsilon
}

// GetImpactVelocityFloor returns the absolute post-reversal hand x-velocity
// magnitude (normalised units per frame) an impact candidate must exceed.
func (c *TuningConfig) GetImpactVelocityFloor() float64 {
	if c.ImpactVelocityFloor == nil {
		return 0.012
	}
	return *c.ImpactVelocityFloor
}

// GetFinishWindowFraction returns the trailing fraction of the sequence
// searched for the finish frame.
func (c *TuningConfig) GetFinishWindowFraction() float64 {
	if c.FinishWindowFraction == nil {
		return 0.15
	}
	return *c.FinishWindowFraction
}
