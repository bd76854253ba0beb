package preprocess

import (
	"errors"
	"fmt"
	"image"

	"github.com/rs/zerolog"

	"github.com/ironsheep/hough-lines/internal/hough"
)

// ErrNotBinary is returned when a pipeline cannot produce a binary image
// even after the default binarization fallback.
var ErrNotBinary = errors.New("pipeline output is not binary")

// Transform maps an image to an image. Implementations must not modify
// their input.
type Transform interface {
	Name() string
	Apply(img image.Image) (image.Image, error)
}

// Pipeline applies an ordered list of transforms and converts the result to
// a binary image.
type Pipeline struct {
	steps []Transform
	log   zerolog.Logger
}

// NewPipeline creates a pipeline with the given steps. Step failures are
// reported as warnings through log.
func NewPipeline(log zerolog.Logger, steps ...Transform) *Pipeline {
	return &Pipeline{steps: steps, log: log}
}

// Add appends a step to the pipeline.
func (p *Pipeline) Add(t Transform) {
	p.steps = append(p.steps, t)
}

// StepNames lists the pipeline's steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name()
	}
	return names
}

// Run applies every step left to right. A failing step is skipped with a
// warning and the previous image carries forward. If the final image is not
// binary, the default Otsu binarization is applied; if that also fails to
// produce a binary image, Run returns an error wrapping ErrNotBinary.
func (p *Pipeline) Run(img image.Image) (*hough.BinaryImage, error) {
	current := img
	for _, step := range p.steps {
		out, err := step.Apply(current)
		if err != nil {
			p.log.Warn().Str("step", step.Name()).Err(err).Msg("preprocessing step skipped")
			continue
		}
		current = out
	}

	if !IsBinary(current) {
		fallback := Binarize{Auto: true}
		out, err := fallback.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("%w: default binarization failed: %v", ErrNotBinary, err)
		}
		if !IsBinary(out) {
			return nil, fmt.Errorf("%w: even after default binarization", ErrNotBinary)
		}
		current = out
	}
	return hough.FromImage(current), nil
}

// IsBinary reports whether every pixel is pure black or pure white. An
// empty image is not binary.
func IsBinary(img image.Image) bool {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return false
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if (r != 0 || g != 0 || b != 0) && (r != 0xffff || g != 0xffff || b != 0xffff) {
				return false
			}
		}
	}
	return true
}
