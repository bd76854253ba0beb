package hough

import (
	"image"
	"math"
)

// Point represents a 2D pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// BinaryImage is a W×H grid of booleans with the origin at the top-left
// pixel. True marks a foreground (edge) pixel. The detection functions treat
// it as immutable; Set is only for construction.
type BinaryImage struct {
	w, h int
	bits []bool
}

// NewBinaryImage creates an all-background image of the given size.
func NewBinaryImage(w, h int) *BinaryImage {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &BinaryImage{w: w, h: h, bits: make([]bool, w*h)}
}

// FromImage converts an image to a BinaryImage. A pixel is foreground when
// its luminance is at least mid-gray, so both bool masks rendered as white
// on black and 0/255 grayscale edge maps convert losslessly.
func FromImage(img image.Image) *BinaryImage {
	bounds := img.Bounds()
	bin := NewBinaryImage(bounds.Dx(), bounds.Dy())
	for y := 0; y < bin.h; y++ {
		for x := 0; x < bin.w; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// ITU-R BT.601 luminance on 16-bit channels.
			lum := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
			bin.bits[y*bin.w+x] = lum >= 32768
		}
	}
	return bin
}

// Width returns the image width in pixels.
func (b *BinaryImage) Width() int { return b.w }

// Height returns the image height in pixels.
func (b *BinaryImage) Height() int { return b.h }

// At reports whether (x, y) is a foreground pixel. Out-of-bounds
// coordinates are background.
func (b *BinaryImage) At(x, y int) bool {
	if x < 0 || x >= b.w || y < 0 || y >= b.h {
		return false
	}
	return b.bits[y*b.w+x]
}

// Set marks (x, y) as foreground or background. Out-of-bounds coordinates
// are ignored.
func (b *BinaryImage) Set(x, y int, v bool) {
	if x < 0 || x >= b.w || y < 0 || y >= b.h {
		return
	}
	b.bits[y*b.w+x] = v
}

// Diagonal returns the image diagonal ⌈√(W²+H²)⌉, the largest possible
// absolute rho value.
func (b *BinaryImage) Diagonal() int {
	return int(math.Ceil(math.Sqrt(float64(b.w*b.w + b.h*b.h))))
}

// Count returns the number of foreground pixels.
func (b *BinaryImage) Count() int {
	n := 0
	for _, v := range b.bits {
		if v {
			n++
		}
	}
	return n
}
