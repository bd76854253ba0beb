package hough

import "math"

// Peak is an accumulator cell selected as a dominant line hypothesis.
type Peak struct {
	RhoIndex   int `json:"rho_index"`
	ThetaIndex int `json:"theta_index"`
	Votes      int `json:"votes"`
}

// FindPeaks extracts up to cfg.NumPeaks peaks from the accumulator in
// discovery order. Each iteration takes the current global maximum (first
// occurrence in row-major order on ties), stops if it does not exceed the
// threshold, and otherwise zeroes the surrounding NHoodSize window before
// the next search. The accumulator itself is not modified.
func FindPeaks(acc *Accumulator, cfg Config) []Peak {
	rows, cols := acc.Rows(), acc.Cols()
	if rows == 0 || cols == 0 {
		return nil
	}

	threshold := cfg.Threshold
	if threshold == Auto {
		threshold = 0.5 * float64(acc.Max())
	}
	nhood := cfg.NHoodSize
	if nhood == [2]int{0, 0} {
		nhood = defaultNHood(rows, cols)
	}

	scratch := make([]int, len(acc.Votes))
	copy(scratch, acc.Votes)

	peaks := make([]Peak, 0, cfg.NumPeaks)
	for len(peaks) < cfg.NumPeaks {
		best, bestIdx := 0, -1
		for i, v := range scratch {
			if v > best {
				best, bestIdx = v, i
			}
		}
		if bestIdx < 0 || float64(best) <= threshold {
			break
		}
		r, t := bestIdx/cols, bestIdx%cols
		peaks = append(peaks, Peak{RhoIndex: r, ThetaIndex: t, Votes: best})
		suppress(scratch, rows, cols, r, t, nhood)
	}
	return peaks
}

// suppress zeroes the nhood window centered on (r, t), clipped to the
// accumulator bounds.
func suppress(votes []int, rows, cols, r, t int, nhood [2]int) {
	hr, hc := nhood[0]/2, nhood[1]/2
	r0, r1 := max(r-hr, 0), min(r+hr, rows-1)
	t0, t1 := max(t-hc, 0), min(t+hc, cols-1)
	for rr := r0; rr <= r1; rr++ {
		for tt := t0; tt <= t1; tt++ {
			votes[rr*cols+tt] = 0
		}
	}
}

// defaultNHood is the smallest odd window at least 1/50th of the
// accumulator in each dimension, never smaller than 1×1.
func defaultNHood(rows, cols int) [2]int {
	return [2]int{oddAtLeast(float64(rows) / 50), oddAtLeast(float64(cols) / 50)}
}

// oddAtLeast returns the smallest odd integer >= v, with a floor of 1.
func oddAtLeast(v float64) int {
	n := int(math.Ceil(v))
	if n < 1 {
		return 1
	}
	if n%2 == 0 {
		n++
	}
	return n
}
