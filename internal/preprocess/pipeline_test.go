package preprocess

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// grayRamp creates a horizontal 0..255 luminance gradient, which is
// decidedly not binary.
func grayRamp(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 255 / (w - 1))})
		}
	}
	return img
}

// whiteLineOnBlack creates a black image with a white horizontal line.
func whiteLineOnBlack(w, h, y int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.SetGray(x, y, color.Gray{Y: 255})
	}
	return img
}

// failingTransform always errors, for fault-isolation tests.
type failingTransform struct{}

func (failingTransform) Name() string { return "failing" }

func (failingTransform) Apply(image.Image) (image.Image, error) {
	return nil, fmt.Errorf("synthetic failure")
}

func TestIsBinary(t *testing.T) {
	if IsBinary(grayRamp(10, 10)) {
		t.Error("gradient image reported as binary")
	}
	if !IsBinary(whiteLineOnBlack(10, 10, 5)) {
		t.Error("black/white image reported as non-binary")
	}
	if IsBinary(image.NewGray(image.Rect(0, 0, 0, 0))) {
		t.Error("empty image reported as binary")
	}
}

func TestPipelineSkipsFailingStep(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	p := NewPipeline(log, failingTransform{}, Binarize{Auto: true})
	bin, err := p.Run(whiteLineOnBlack(50, 50, 25))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if bin.Count() == 0 {
		t.Error("expected foreground pixels to survive the failing step")
	}
	if !strings.Contains(buf.String(), "failing") {
		t.Errorf("expected a warning naming the skipped step, got: %s", buf.String())
	}
}

func TestPipelineDefaultBinarization(t *testing.T) {
	// No binarize step; the gradient output triggers the Otsu fallback.
	p := NewPipeline(zerolog.Nop(), Grayscale{})
	bin, err := p.Run(grayRamp(64, 64))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	// Otsu splits the gradient roughly down the middle: the bright half
	// becomes foreground.
	if bin.Count() == 0 || bin.Count() == 64*64 {
		t.Errorf("fallback binarization produced %d foreground pixels of %d", bin.Count(), 64*64)
	}
}

func TestPipelineFatalOnEmptyImage(t *testing.T) {
	p := NewPipeline(zerolog.Nop())
	_, err := p.Run(image.NewGray(image.Rect(0, 0, 0, 0)))
	if !errors.Is(err, ErrNotBinary) {
		t.Errorf("Run error = %v, want ErrNotBinary", err)
	}
}

func TestPipelineStepNames(t *testing.T) {
	p := NewPipeline(zerolog.Nop(), Grayscale{}, GaussianBlur{Sigma: 1.4}, EdgeDetect{Low: 50, High: 150})
	want := []string{"grayscale", "blur", "edges"}
	got := p.StepNames()
	if len(got) != len(want) {
		t.Fatalf("StepNames = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("step %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestOtsuLevelSeparatesBimodal(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			v := uint8(30)
			if x >= 10 {
				v = 220
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}

	level := otsuLevel(img)
	if level <= 30 || level > 220 {
		t.Errorf("otsu level = %d, want a value separating 30 from 220", level)
	}

	out, err := Binarize{Auto: true}.Apply(img)
	if err != nil {
		t.Fatalf("Binarize failed: %v", err)
	}
	if !IsBinary(out) {
		t.Error("auto binarization did not produce a binary image")
	}
}

func TestEdgeDetectProducesBinaryEdges(t *testing.T) {
	// A filled white square on black: edges should trace its boundary.
	img := image.NewGray(image.Rect(0, 0, 80, 80))
	for y := 20; y < 60; y++ {
		for x := 20; x < 60; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	out, err := EdgeDetect{Low: 50, High: 150}.Apply(img)
	if err != nil {
		t.Fatalf("EdgeDetect failed: %v", err)
	}
	if !IsBinary(out) {
		t.Error("edge output is not binary")
	}

	edgePixels := 0
	bounds := out.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if r, _, _, _ := out.At(x, y).RGBA(); r == 0xffff {
				edgePixels++
			}
		}
	}
	if edgePixels < 100 {
		t.Errorf("only %d edge pixels for a 40x40 square boundary", edgePixels)
	}
}

func TestEdgeDetectRejectsBadThresholds(t *testing.T) {
	if _, err := (EdgeDetect{Low: 200, High: 100}).Apply(grayRamp(10, 10)); err == nil {
		t.Error("expected error for low > high")
	}
}
