package hough

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

// crossedLines draws a horizontal run at y=30 and a vertical run at x=60.
func crossedLines() *BinaryImage {
	img := NewBinaryImage(100, 100)
	for x := 10; x <= 89; x++ {
		img.Set(x, 30, true)
	}
	for y := 10; y <= 89; y++ {
		img.Set(60, y, true)
	}
	return img
}

func TestDetectTwoAngledLines(t *testing.T) {
	// One vertical run (normal at 0 degrees) and one line whose normal
	// sits at 30 degrees.
	img := verticalRun(100, 100, 30, 20, 79)
	for i := 0; i < 80; i++ {
		x := int(math.Round(80 - 0.5*float64(i)))
		y := int(math.Round(10 + 0.8660254037844386*float64(i)))
		img.Set(x, y, true)
	}

	cfg := DefaultConfig()
	cfg.NumPeaks = 2
	cfg.Threshold = 20
	cfg.FillGap = 20
	cfg.MinLength = 30

	res := detectOrFatal(t, img, cfg)
	if len(res.Peaks) != 2 {
		t.Fatalf("got %d peaks, want 2", len(res.Peaks))
	}
	if len(res.Segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(res.Segments))
	}
	diff := math.Abs(res.Segments[0].Theta - res.Segments[1].Theta)
	if math.Abs(diff-30) > cfg.ThetaStep {
		t.Errorf("segment thetas %g and %g: separation %g, want ≈30",
			res.Segments[0].Theta, res.Segments[1].Theta, diff)
	}
}

func TestDetectIdempotent(t *testing.T) {
	img := crossedLines()
	cfg := DefaultConfig()
	cfg.NumPeaks = 2
	cfg.Threshold = 20

	a := detectOrFatal(t, img, cfg)
	b := detectOrFatal(t, img, cfg)
	if !reflect.DeepEqual(a, b) {
		t.Error("repeated Detect with unchanged inputs produced different results")
	}
}

func TestDetectNumLinesMode(t *testing.T) {
	img := crossedLines()
	cfg := DefaultConfig()
	cfg.NumLines = 2

	res := detectOrFatal(t, img, cfg)
	if len(res.Peaks) != 2 {
		t.Fatalf("got %d peaks, want 2", len(res.Peaks))
	}
	if len(res.Segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(res.Segments))
	}
	for _, seg := range res.Segments {
		if math.Abs(seg.Length-79) > 1 {
			t.Errorf("segment length %g, want ≈79 (full run)", seg.Length)
		}
	}
}

func TestDetectPeakInvariants(t *testing.T) {
	img := crossedLines()
	cfg := DefaultConfig()
	cfg.NumPeaks = 10
	cfg.Threshold = 25

	res := detectOrFatal(t, img, cfg)
	if len(res.Peaks) > cfg.NumPeaks {
		t.Errorf("got %d peaks, more than NumPeaks %d", len(res.Peaks), cfg.NumPeaks)
	}
	for _, p := range res.Peaks {
		if float64(p.Votes) <= cfg.Threshold {
			t.Errorf("peak %+v does not exceed threshold %g", p, cfg.Threshold)
		}
	}
}

func TestDetectEmptyResult(t *testing.T) {
	res := detectOrFatal(t, NewBinaryImage(50, 50), DefaultConfig())
	if len(res.Peaks) != 0 || len(res.Segments) != 0 {
		t.Errorf("empty image produced %d peaks, %d segments", len(res.Peaks), len(res.Segments))
	}
}

func TestDetectConfigValidation(t *testing.T) {
	img := crossedLines()
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"theta range empty", func(c *Config) { c.ThetaMin, c.ThetaMax = 45, 45 }},
		{"theta step zero", func(c *Config) { c.ThetaStep = 0 }},
		{"rho resolution zero", func(c *Config) { c.RhoResolution = 0 }},
		{"even nhood", func(c *Config) { c.NHoodSize = [2]int{4, 3} }},
		{"negative nhood", func(c *Config) { c.NHoodSize = [2]int{-1, 3} }},
		{"zero peaks", func(c *Config) { c.NumPeaks = 0 }},
		{"negative threshold", func(c *Config) { c.Threshold = -2 }},
		{"negative fill gap", func(c *Config) { c.FillGap = -1 }},
		{"negative min length", func(c *Config) { c.MinLength = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if _, err := Detect(img, cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Detect error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

type recordingTuner struct {
	calls int
	last  *BinaryImage
}

func (r *recordingTuner) Inspect(img *BinaryImage) {
	r.calls++
	r.last = img
}

func TestSessionLifecycle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumPeaks = 2
	cfg.Threshold = 20

	s := NewSession(cfg)
	if _, err := s.Detect(); !errors.Is(err, ErrNoImage) {
		t.Fatalf("Detect without image: err = %v, want ErrNoImage", err)
	}

	img := crossedLines()
	s.SetImage(img)
	res, err := s.Detect()
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if s.Last() != res {
		t.Error("Last() does not return the cached result")
	}

	// Editing a parameter returns the session to the configured state.
	cfg.MinLength = 10
	s.SetConfig(cfg)
	if s.Last() != nil {
		t.Error("SetConfig did not invalidate the cached result")
	}
	if _, err := s.Detect(); err != nil {
		t.Fatalf("re-detect failed: %v", err)
	}

	s.SetImage(NewBinaryImage(10, 10))
	if s.Last() != nil {
		t.Error("SetImage did not invalidate the cached result")
	}
}

func TestSessionTunerHandoff(t *testing.T) {
	s := NewSession(DefaultConfig())
	img := horizontalRun(100, 100, 50, 20, 79)
	s.SetImage(img)

	tuner := &recordingTuner{}
	s.SetTuner(tuner)

	if _, err := s.Detect(); err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if tuner.calls != 1 || tuner.last != img {
		t.Errorf("tuner received %d calls (last=%p), want exactly one with the session image", tuner.calls, tuner.last)
	}
}
