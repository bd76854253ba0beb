package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/hough-lines/internal/hough"
)

// Style configures segment overlays. Color is a hex string like "#FF0000";
// when Palette is set each segment instead gets its own hue. StrokeWidth
// below 1 draws single-pixel lines.
type Style struct {
	Color       string `json:"color"`
	StrokeWidth int    `json:"stroke_width"`
	Palette     bool   `json:"palette,omitempty"`
}

// DefaultStyle draws 1-pixel red lines.
func DefaultStyle() Style {
	return Style{Color: "#FF0000", StrokeWidth: 1}
}

// Drawable is an opaque overlay handle that can paint itself onto an image.
type Drawable interface {
	Draw(dst draw.Image)
	Bounds() image.Rectangle
}

// lineDrawable rasterizes one segment as a stroked line.
type lineDrawable struct {
	p1, p2 image.Point
	col    color.RGBA
	width  int
}

// Overlays converts segments into drawables, one per segment in the same
// order.
func Overlays(segments []hough.Segment, style Style) ([]Drawable, error) {
	hex := style.Color
	if hex == "" {
		hex = DefaultStyle().Color
	}
	base, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid overlay color %q: %w", style.Color, err)
	}
	width := style.StrokeWidth
	if width < 1 {
		width = 1
	}

	drawables := make([]Drawable, len(segments))
	for i, seg := range segments {
		col := base
		if style.Palette {
			// Golden-angle hue steps keep neighboring segments apart.
			col = colorful.Hsv(math.Mod(float64(i)*137.5, 360), 0.85, 0.9)
		}
		r, g, b := col.RGB255()
		drawables[i] = &lineDrawable{
			p1:    image.Point{X: seg.Point1.X, Y: seg.Point1.Y},
			p2:    image.Point{X: seg.Point2.X, Y: seg.Point2.Y},
			col:   color.RGBA{R: r, G: g, B: b, A: 255},
			width: width,
		}
	}
	return drawables, nil
}

// Compose copies the base image and paints every drawable onto it in order.
func Compose(base image.Image, drawables []Drawable) *image.RGBA {
	bounds := base.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, base, bounds.Min, draw.Src)
	for _, d := range drawables {
		d.Draw(out)
	}
	return out
}

func (l *lineDrawable) Bounds() image.Rectangle {
	r := image.Rectangle{Min: l.p1, Max: l.p2}.Canon()
	pad := l.width / 2
	return r.Inset(-pad - 1)
}

// Draw walks the segment in sub-pixel steps, stamping a width-sized disc at
// each step.
func (l *lineDrawable) Draw(dst draw.Image) {
	dx := float64(l.p2.X - l.p1.X)
	dy := float64(l.p2.Y - l.p1.Y)
	steps := int(math.Max(math.Abs(dx), math.Abs(dy))) * 2
	if steps < 1 {
		steps = 1
	}
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		x := float64(l.p1.X) + t*dx
		y := float64(l.p1.Y) + t*dy
		l.stamp(dst, int(math.Round(x)), int(math.Round(y)))
	}
}

func (l *lineDrawable) stamp(dst draw.Image, cx, cy int) {
	bounds := dst.Bounds()
	r := l.width / 2
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
				continue
			}
			ddx, ddy := x-cx, y-cy
			if ddx*ddx+ddy*ddy > r*r {
				continue
			}
			dst.Set(x, y, l.col)
		}
	}
}
