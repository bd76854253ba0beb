package hough

import (
	"errors"
	"fmt"
)

// Auto selects the runtime-computed default for Config.Threshold: half of
// the accumulator's global maximum vote count.
const Auto = -1

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the detection parameters. The zero value is not usable;
// start from DefaultConfig.
type Config struct {
	// ThetaMin and ThetaMax bound the searched normal angles in degrees;
	// ThetaStep is the angular quantization. ThetaMin must be strictly
	// less than ThetaMax.
	ThetaMin  float64 `json:"theta_min"`
	ThetaMax  float64 `json:"theta_max"`
	ThetaStep float64 `json:"theta_step"`

	// RhoResolution is the rho quantization in pixels.
	RhoResolution float64 `json:"rho_resolution"`

	// NHoodSize is the suppression window (rows, cols) zeroed around each
	// selected peak. Both values must be positive and odd. {0, 0} selects
	// the default: the smallest odd integers at least 1/50th of the
	// accumulator dimensions, with a floor of 1.
	NHoodSize [2]int `json:"nhood_size"`

	// NumPeaks caps the number of peaks selected per run.
	NumPeaks int `json:"num_peaks"`

	// Threshold is the minimum vote count a peak must exceed. Auto (-1)
	// selects half the accumulator's global maximum.
	Threshold float64 `json:"threshold"`

	// FillGap is the largest gap, in pixels along the line direction,
	// bridged into a single segment.
	FillGap float64 `json:"fill_gap"`

	// MinLength is the shortest segment length kept in the output.
	MinLength float64 `json:"min_length"`

	// NumLines, when positive, switches to the fixed-count convenience
	// mode: before running, Threshold becomes 0, FillGap becomes the
	// image diagonal and NumPeaks becomes NumLines.
	NumLines int `json:"num_lines,omitempty"`

	// Workers above 1 parallelizes voting and segment extraction.
	// 0 or 1 runs everything on the calling goroutine.
	Workers int `json:"workers,omitempty"`
}

// DefaultConfig returns the standard parameter set: theta from -90 to 89
// degrees in 1-degree steps, 1-pixel rho bins, a single peak with the
// computed threshold, FillGap 20 and MinLength 40.
func DefaultConfig() Config {
	return Config{
		ThetaMin:      -90,
		ThetaMax:      89,
		ThetaStep:     1,
		RhoResolution: 1,
		NumPeaks:      1,
		Threshold:     Auto,
		FillGap:       20,
		MinLength:     40,
	}
}

// Validate rejects invalid parameter combinations before any computation.
// All failures wrap ErrInvalidConfig.
func (c Config) Validate() error {
	if c.ThetaMin >= c.ThetaMax {
		return fmt.Errorf("%w: theta range [%g, %g] is empty", ErrInvalidConfig, c.ThetaMin, c.ThetaMax)
	}
	if c.ThetaStep <= 0 {
		return fmt.Errorf("%w: theta step %g must be positive", ErrInvalidConfig, c.ThetaStep)
	}
	if c.RhoResolution <= 0 {
		return fmt.Errorf("%w: rho resolution %g must be positive", ErrInvalidConfig, c.RhoResolution)
	}
	if c.NHoodSize != [2]int{0, 0} {
		for _, n := range c.NHoodSize {
			if n < 1 || n%2 == 0 {
				return fmt.Errorf("%w: neighborhood size %v must be positive odd integers", ErrInvalidConfig, c.NHoodSize)
			}
		}
	}
	if c.NumPeaks < 1 {
		return fmt.Errorf("%w: num peaks %d must be at least 1", ErrInvalidConfig, c.NumPeaks)
	}
	if c.Threshold < 0 && c.Threshold != Auto {
		return fmt.Errorf("%w: threshold %g must not be negative", ErrInvalidConfig, c.Threshold)
	}
	if c.FillGap < 0 {
		return fmt.Errorf("%w: fill gap %g must not be negative", ErrInvalidConfig, c.FillGap)
	}
	if c.MinLength < 0 {
		return fmt.Errorf("%w: min length %g must not be negative", ErrInvalidConfig, c.MinLength)
	}
	if c.NumLines < 0 {
		return fmt.Errorf("%w: num lines %d must not be negative", ErrInvalidConfig, c.NumLines)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d must not be negative", ErrInvalidConfig, c.Workers)
	}
	return nil
}
