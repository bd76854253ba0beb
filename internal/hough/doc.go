// Package hough detects straight line segments in binary images using the
// Hough transform.
//
// The detection pipeline has three stages:
//
//  1. Transform: every foreground pixel votes for all lines passing through
//     it in a quantized (rho, theta) parameter space, producing an
//     Accumulator of vote counts.
//
//  2. FindPeaks: dominant cells are extracted from the accumulator one at a
//     time; after each selection a neighborhood window around the peak is
//     zeroed so nearby redundant hypotheses are suppressed.
//
//  3. ExtractSegments: for each peak, the foreground pixels belonging to
//     that accumulator cell are projected onto the line direction, sorted,
//     and grouped into segments, bridging gaps up to FillGap and discarding
//     segments shorter than MinLength.
//
// # Parameterization
//
// A line is represented as rho = x*cos(theta) + y*sin(theta), where rho is
// the perpendicular distance from the image origin and theta is the angle of
// the line's normal in degrees. The origin is the top-left pixel, X grows
// rightward and Y grows downward.
//
// # Usage
//
// The package-level Detect function is pure: the same image and Config
// always produce an identical Result. A Session wraps Detect with the source
// image, the current Config and the most recent Result for callers that
// tweak parameters and re-run.
//
//	bin := hough.FromImage(edges)
//	cfg := hough.DefaultConfig()
//	cfg.NumPeaks = 5
//	res, err := hough.Detect(bin, cfg)
//
// # Performance
//
// Voting is O(P*T) for P foreground pixels and T angles and dominates the
// run time. Setting Config.Workers above 1 partitions the vote scatter and
// the per-peak segment extraction across goroutines; results are identical
// to the serial path because vote addition is commutative and segment output
// slots are pre-assigned. Peak selection is inherently sequential and always
// runs on one goroutine.
package hough
