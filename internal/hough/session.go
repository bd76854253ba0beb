package hough

import "errors"

// ErrNoImage is returned by Session.Detect before an image has been set.
var ErrNoImage = errors.New("no image configured")

// Result bundles the artifacts of one detection run.
type Result struct {
	Accumulator *Accumulator `json:"accumulator"`
	Peaks       []Peak       `json:"peaks"`
	Segments    []Segment    `json:"segments"`
}

// Tuner receives the binary image about to be processed. It is a
// fire-and-forget handoff for interactive tuning tools; the detector never
// queries it.
type Tuner interface {
	Inspect(img *BinaryImage)
}

// Detect runs the full pipeline: transform, peak selection, segment
// extraction. It is a pure function of its inputs; calling it twice with
// unchanged inputs yields identical results.
//
// When cfg.NumLines is positive the fixed-count convenience mode rewrites
// the configuration first: Threshold 0, FillGap the image diagonal and
// NumPeaks equal to NumLines.
func Detect(img *BinaryImage, cfg Config) (*Result, error) {
	if img == nil {
		return nil, ErrNoImage
	}
	if cfg.NumLines > 0 {
		cfg.Threshold = 0
		cfg.FillGap = float64(img.Diagonal())
		cfg.NumPeaks = cfg.NumLines
	}
	acc, err := Transform(img, cfg)
	if err != nil {
		return nil, err
	}
	peaks := FindPeaks(acc, cfg)
	segments := ExtractSegments(img, acc, peaks, cfg)
	return &Result{Accumulator: acc, Peaks: peaks, Segments: segments}, nil
}

// Session holds a configuration, a source image and the most recent Result.
// Editing either input drops the cached result; Detect always recomputes
// from scratch. A Session is reusable indefinitely and is not safe for
// concurrent use.
type Session struct {
	cfg   Config
	img   *BinaryImage
	tuner Tuner
	last  *Result
}

// NewSession creates a session with the given configuration and no image.
func NewSession(cfg Config) *Session {
	return &Session{cfg: cfg}
}

// SetImage replaces the source image and invalidates the cached result.
func (s *Session) SetImage(img *BinaryImage) {
	s.img = img
	s.last = nil
}

// SetConfig replaces the configuration and invalidates the cached result.
func (s *Session) SetConfig(cfg Config) {
	s.cfg = cfg
	s.last = nil
}

// SetTuner installs an interactive tuning hook. The tuner is handed the
// binary image at the start of every Detect call.
func (s *Session) SetTuner(t Tuner) {
	s.tuner = t
}

// Config returns the current configuration.
func (s *Session) Config() Config { return s.cfg }

// Detect recomputes the accumulator, peaks and segments from the current
// image and configuration, caches the result and returns it.
func (s *Session) Detect() (*Result, error) {
	if s.img == nil {
		return nil, ErrNoImage
	}
	if s.tuner != nil {
		s.tuner.Inspect(s.img)
	}
	res, err := Detect(s.img, s.cfg)
	if err != nil {
		return nil, err
	}
	s.last = res
	return res, nil
}

// Last returns the result of the most recent Detect, or nil if no detection
// has run since the image or configuration changed.
func (s *Session) Last() *Result { return s.last }
