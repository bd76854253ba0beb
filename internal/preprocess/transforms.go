package preprocess

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
)

// Grayscale converts an image to grayscale using luminance weights.
type Grayscale struct{}

func (Grayscale) Name() string { return "grayscale" }

func (Grayscale) Apply(img image.Image) (image.Image, error) {
	return imaging.Grayscale(img), nil
}

// GaussianBlur smooths an image before edge detection to reduce noise.
type GaussianBlur struct {
	Sigma float64
}

func (GaussianBlur) Name() string { return "blur" }

func (t GaussianBlur) Apply(img image.Image) (image.Image, error) {
	if t.Sigma <= 0 {
		return nil, fmt.Errorf("blur sigma %g must be positive", t.Sigma)
	}
	return imaging.Blur(img, t.Sigma), nil
}

// Invert flips every channel, turning dark-on-light drawings into the
// light-on-dark convention the detector expects.
type Invert struct{}

func (Invert) Name() string { return "invert" }

func (Invert) Apply(img image.Image) (image.Image, error) {
	return imaging.Invert(img), nil
}

// Resize scales an image to the given dimensions with Lanczos resampling.
type Resize struct {
	Width, Height int
}

func (Resize) Name() string { return "resize" }

func (t Resize) Apply(img image.Image) (image.Image, error) {
	if t.Width < 1 || t.Height < 1 {
		return nil, fmt.Errorf("resize dimensions %dx%d must be positive", t.Width, t.Height)
	}
	return imaging.Resize(img, t.Width, t.Height, imaging.Lanczos), nil
}

// Binarize thresholds an image to pure black and white. With Auto set the
// level is computed by Otsu's method; otherwise Level is used directly.
type Binarize struct {
	Level uint8
	Auto  bool
}

func (Binarize) Name() string { return "binarize" }

func (t Binarize) Apply(img image.Image) (image.Image, error) {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("cannot binarize empty %dx%d image", bounds.Dx(), bounds.Dy())
	}
	level := t.Level
	if t.Auto {
		level = otsuLevel(img)
	}
	return segment.Threshold(img, level), nil
}
