package hough

import (
	"math"
	"sort"
	"sync"
)

// Segment is a detected line segment between two pixels, tagged with the
// (theta, rho) peak that produced it.
type Segment struct {
	Point1 Point   `json:"point1"`
	Point2 Point   `json:"point2"`
	Theta  float64 `json:"theta"` // degrees
	Rho    float64 `json:"rho"`
	Length float64 `json:"length"`
}

// linePixel is a foreground pixel on a peak's line together with its scalar
// position along the line direction.
type linePixel struct {
	pos  float64
	x, y int
}

// ExtractSegments reconstructs discrete segments from the pixels belonging
// to each peak. Output order is peak-list order; within a peak, segments
// appear in scan order along the line. A peak yields zero segments when all
// of its pixel groups fall short of MinLength, and may yield several when
// the pixels along its line are not contiguous.
func ExtractSegments(img *BinaryImage, acc *Accumulator, peaks []Peak, cfg Config) []Segment {
	perPeak := make([][]Segment, len(peaks))

	extract := func(i int) {
		p := peaks[i]
		perPeak[i] = segmentsForPeak(img, acc.Theta[p.ThetaIndex], acc.Rho[p.RhoIndex], cfg)
	}

	if cfg.Workers > 1 && len(peaks) > 1 {
		// Workers fill pre-assigned slots so output order stays
		// deterministic.
		var wg sync.WaitGroup
		sem := make(chan struct{}, cfg.Workers)
		for i := range peaks {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int) {
				defer wg.Done()
				extract(i)
				<-sem
			}(i)
		}
		wg.Wait()
	} else {
		for i := range peaks {
			extract(i)
		}
	}

	segments := make([]Segment, 0, len(peaks))
	for _, segs := range perPeak {
		segments = append(segments, segs...)
	}
	return segments
}

// segmentsForPeak collects the pixels whose quantized rho falls in the
// peak's bin, sorts them along the line direction and splits them at gaps
// wider than FillGap.
func segmentsForPeak(img *BinaryImage, thetaDeg, rho float64, cfg Config) []Segment {
	rad := thetaDeg * math.Pi / 180
	cosT, sinT := math.Cos(rad), math.Sin(rad)
	halfBin := cfg.RhoResolution / 2

	var pixels []linePixel
	for y := 0; y < img.h; y++ {
		for x := 0; x < img.w; x++ {
			if !img.bits[y*img.w+x] {
				continue
			}
			fx, fy := float64(x), float64(y)
			if math.Abs(fx*cosT+fy*sinT-rho) > halfBin {
				continue
			}
			// Position along the direction vector (-sin, cos).
			pixels = append(pixels, linePixel{pos: -fx*sinT + fy*cosT, x: x, y: y})
		}
	}
	if len(pixels) == 0 {
		return nil
	}
	sort.SliceStable(pixels, func(i, j int) bool { return pixels[i].pos < pixels[j].pos })

	var segments []Segment
	start := 0
	for i := 1; i <= len(pixels); i++ {
		if i < len(pixels) && pixels[i].pos-pixels[i-1].pos <= cfg.FillGap {
			continue
		}
		if seg, ok := makeSegment(pixels[start], pixels[i-1], thetaDeg, rho, cfg.MinLength); ok {
			segments = append(segments, seg)
		}
		start = i
	}
	return segments
}

// makeSegment builds a Segment between two endpoint pixels, rejecting it
// when shorter than minLength.
func makeSegment(a, b linePixel, thetaDeg, rho, minLength float64) (Segment, bool) {
	dx := float64(b.x - a.x)
	dy := float64(b.y - a.y)
	length := math.Sqrt(dx*dx + dy*dy)
	if length < minLength {
		return Segment{}, false
	}
	return Segment{
		Point1: Point{X: a.x, Y: a.y},
		Point2: Point{X: b.x, Y: b.y},
		Theta:  thetaDeg,
		Rho:    rho,
		Length: length,
	}, true
}
