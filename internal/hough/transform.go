package hough

import (
	"math"
	"sync"
)

// Accumulator is the (rho, theta) vote matrix. Votes is a flat row-major
// buffer with one row per rho bin and one column per theta bin, paired with
// the quantized Rho and Theta vectors the bins correspond to.
type Accumulator struct {
	Votes []int     `json:"votes"`
	Rho   []float64 `json:"rho"`
	Theta []float64 `json:"theta"` // degrees
}

// Rows returns the number of rho bins.
func (a *Accumulator) Rows() int { return len(a.Rho) }

// Cols returns the number of theta bins.
func (a *Accumulator) Cols() int { return len(a.Theta) }

// At returns the vote count of cell (rho bin r, theta bin t).
func (a *Accumulator) At(r, t int) int {
	return a.Votes[r*len(a.Theta)+t]
}

// Max returns the global maximum vote count, 0 for an empty accumulator.
func (a *Accumulator) Max() int {
	best := 0
	for _, v := range a.Votes {
		if v > best {
			best = v
		}
	}
	return best
}

// Transform builds the Hough accumulator for a binary image. Every
// foreground pixel (x, y) votes for each theta bin at the rho bin nearest
// x*cos(theta) + y*sin(theta). An all-background image yields an all-zero
// accumulator.
func Transform(img *BinaryImage, cfg Config) (*Accumulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	theta := thetaVector(cfg.ThetaMin, cfg.ThetaMax, cfg.ThetaStep)
	rho, mid := rhoVector(img.Diagonal(), cfg.RhoResolution)

	sin := make([]float64, len(theta))
	cos := make([]float64, len(theta))
	for i, deg := range theta {
		rad := deg * math.Pi / 180
		sin[i] = math.Sin(rad)
		cos[i] = math.Cos(rad)
	}

	acc := &Accumulator{
		Votes: make([]int, len(rho)*len(theta)),
		Rho:   rho,
		Theta: theta,
	}

	if cfg.Workers <= 1 || img.h < 2 {
		vote(img, 0, img.h, sin, cos, mid, cfg.RhoResolution, len(rho), acc.Votes)
		return acc, nil
	}

	// Partitioned accumulation: each worker votes a band of rows into its
	// own buffer; the merged sum is order-independent.
	workers := cfg.Workers
	if workers > img.h {
		workers = img.h
	}
	partial := make([][]int, workers)
	chunk := (img.h + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		y0 := w * chunk
		y1 := y0 + chunk
		if y1 > img.h {
			y1 = img.h
		}
		partial[w] = make([]int, len(acc.Votes))
		wg.Add(1)
		go func(buf []int, y0, y1 int) {
			defer wg.Done()
			vote(img, y0, y1, sin, cos, mid, cfg.RhoResolution, len(rho), buf)
		}(partial[w], y0, y1)
	}
	wg.Wait()
	for _, buf := range partial {
		for i, v := range buf {
			acc.Votes[i] += v
		}
	}
	return acc, nil
}

// vote scatters the foreground pixels of rows [y0, y1) into votes.
func vote(img *BinaryImage, y0, y1 int, sin, cos []float64, mid int, rhoRes float64, rows int, votes []int) {
	cols := len(sin)
	for y := y0; y < y1; y++ {
		for x := 0; x < img.w; x++ {
			if !img.bits[y*img.w+x] {
				continue
			}
			fx, fy := float64(x), float64(y)
			for t := 0; t < cols; t++ {
				rho := fx*cos[t] + fy*sin[t]
				r := int(math.Round(rho/rhoRes)) + mid
				if r >= 0 && r < rows {
					votes[r*cols+t]++
				}
			}
		}
	}
}

// thetaVector lists min, min+step, ... up to and including max. A small
// epsilon keeps the endpoint when floating-point steps land a hair past it.
func thetaVector(min, max, step float64) []float64 {
	n := int(math.Floor((max-min)/step+1e-9)) + 1
	v := make([]float64, n)
	for i := range v {
		v[i] = min + float64(i)*step
	}
	return v
}

// rhoVector lists the integer multiples of res covering [-diag, diag],
// centered on zero. mid is the index of rho = 0.
func rhoVector(diag int, res float64) (rho []float64, mid int) {
	mid = int(math.Ceil(float64(diag) / res))
	rho = make([]float64, 2*mid+1)
	for i := range rho {
		rho[i] = float64(i-mid) * res
	}
	return rho, mid
}
