// Package render turns detected line segments into drawable overlays.
//
// It is a one-way consumer of detection output: Overlays produces one
// opaque Drawable per segment, in segment order, and Compose flattens
// drawables onto a copy of a base image. Nothing here is referenced by the
// detector.
package render
