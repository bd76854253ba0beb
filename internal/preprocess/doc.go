// Package preprocess prepares arbitrary images for line detection.
//
// A Pipeline is an ordered list of Transform steps, each mapping an image to
// an image. Steps run left to right with per-step fault isolation: a failing
// step is logged and skipped rather than aborting the run. If the final
// image is not binary, a default Otsu binarization is applied; only when
// that fallback also fails does Run return an error.
//
// Built-in transforms cover grayscale conversion, Gaussian blur, inversion,
// resizing, Canny edge detection and thresholding. The Registry constructs
// them by name from JSON arguments so callers can assemble pipelines from
// configuration.
package preprocess
