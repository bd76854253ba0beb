package preprocess

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// EdgeDetect performs Canny-style edge detection, producing a binary image
// with edges in white. Low and High are the hysteresis thresholds on the
// 0-255 scale; weak edges between them survive only when connected to a
// strong edge.
type EdgeDetect struct {
	Low, High int
}

func (EdgeDetect) Name() string { return "edges" }

func (t EdgeDetect) Apply(img image.Image) (image.Image, error) {
	if t.Low < 0 || t.High > 255 || t.Low > t.High {
		return nil, fmt.Errorf("edge thresholds [%d, %d] must satisfy 0 <= low <= high <= 255", t.Low, t.High)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("cannot detect edges in empty %dx%d image", w, h)
	}

	gray := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			rf := float64(r>>8) / 255
			gf := float64(g>>8) / 255
			bf := float64(b>>8) / 255
			gray[y*w+x] = 0.299*rf + 0.587*gf + 0.114*bf
		}
	}

	blurred := blur5(gray, w, h)
	magnitude, direction := sobel(blurred, w, h)
	suppressed := thinEdges(magnitude, direction, w, h)

	// Hysteresis thresholding.
	low := float64(t.Low) / 255
	high := float64(t.High) / 255
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := suppressed[y*w+x]
			if v < low {
				continue
			}
			if v >= high || hasStrongNeighbor(suppressed, w, h, x, y, high) {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out, nil
}

// blur5 applies a 5x5 Gaussian kernel (sigma ~1.4) with replicated borders.
func blur5(src []float64, w, h int) []float64 {
	kernel := [5][5]float64{
		{1, 4, 7, 4, 1},
		{4, 16, 26, 16, 4},
		{7, 26, 41, 26, 7},
		{4, 16, 26, 16, 4},
		{1, 4, 7, 4, 1},
	}
	const kernelSum = 273.0

	dst := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for ky := -2; ky <= 2; ky++ {
				for kx := -2; kx <= 2; kx++ {
					py := clamp(y+ky, 0, h-1)
					px := clamp(x+kx, 0, w-1)
					sum += src[py*w+px] * kernel[ky+2][kx+2]
				}
			}
			dst[y*w+x] = sum / kernelSum
		}
	}
	return dst
}

// sobel computes the gradient magnitude and direction at every pixel.
func sobel(src []float64, w, h int) (magnitude, direction []float64) {
	sobelX := [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY := [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}

	magnitude = make([]float64, w*h)
	direction = make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, h-1)
					px := clamp(x+kx, 0, w-1)
					gx += src[py*w+px] * sobelX[ky+1][kx+1]
					gy += src[py*w+px] * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y*w+x] = math.Sqrt(gx*gx + gy*gy)
			direction[y*w+x] = math.Atan2(gy, gx)
		}
	}
	return magnitude, direction
}

// thinEdges keeps only pixels that are local maxima along their gradient
// direction (non-maximum suppression). Border pixels are dropped.
func thinEdges(magnitude, direction []float64, w, h int) []float64 {
	out := make([]float64, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			angle := direction[y*w+x]
			mag := magnitude[y*w+x]

			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1, n2 = magnitude[y*w+x-1], magnitude[y*w+x+1]
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1, n2 = magnitude[(y-1)*w+x+1], magnitude[(y+1)*w+x-1]
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1, n2 = magnitude[(y-1)*w+x], magnitude[(y+1)*w+x]
			default:
				n1, n2 = magnitude[(y-1)*w+x-1], magnitude[(y+1)*w+x+1]
			}

			if mag >= n1 && mag >= n2 {
				out[y*w+x] = mag
			}
		}
	}
	return out
}

func hasStrongNeighbor(suppressed []float64, w, h, x, y int, high float64) bool {
	for ky := -1; ky <= 1; ky++ {
		for kx := -1; kx <= 1; kx++ {
			py := clamp(y+ky, 0, h-1)
			px := clamp(x+kx, 0, w-1)
			if suppressed[py*w+px] >= high {
				return true
			}
		}
	}
	return false
}

// clamp constrains v to [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
