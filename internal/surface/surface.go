// Package surface defines the drawing host the animation core paints onto.
// Implementations live in raster (gogpu/gg) and vector (svgo); Recorder
// captures calls for tests.
package surface

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"
)

// Filter is a colour transform applied to pictures
type Filter int

const (
	FilterNone Filter = iota
	FilterGrayscale
	// FilterSilhouette is grayscale followed by zero brightness:
	// only the alpha shape of the picture survives, painted black.
	FilterSilhouette
)

func (f Filter) String() string {
	switch f {
	case FilterGrayscale:
		return "grayscale"
	case FilterSilhouette:
		return "silhouette"
	default:
		return "none"
	}
}

// Clip is the shape a picture is cut to
type Clip int

const (
	ClipNone Clip = iota
	ClipCircle
)

// Style describes how a draw call is painted. A zero Fill or Stroke alpha
// disables that part.
type Style struct {
	Fill      color.NRGBA
	Stroke    color.NRGBA
	LineWidth float64
	Opacity   float64
	Filter    Filter
	Clip      Clip
	FontSize  float64
}

// Filled is a solid fill style
func Filled(c color.NRGBA, opacity float64) Style {
	return Style{Fill: c, Opacity: opacity}
}

// Stroked is an outline style
func Stroked(c color.NRGBA, width, opacity float64) Style {
	return Style{Stroke: c, LineWidth: width, Opacity: opacity}
}

// Alpha returns the effective alpha of c under the style opacity, in [0, 1]
func (s Style) Alpha(c color.NRGBA) float64 {
	return float64(c.A) / 255 * s.Opacity
}

// Picture is a shared, read-only image resource. Raster hosts read the
// pixels, retained hosts reference it by Href.
type Picture interface {
	Image() image.Image
	Href() string
}

// Surface accepts the draw calls of one frame. Clear removes everything
// drawn for the previous frame.
type Surface interface {
	Size() (w, h float64)
	Clear(bg color.NRGBA)
	Circle(x, y, r float64, st Style)
	Image(pic Picture, x, y, w, h float64, st Style)
	Path(pts []gg.Point, closed bool, st Style)
	Line(x1, y1, x2, y2 float64, st Style)
	// Text draws a single line centered on (x, y)
	Text(s string, x, y float64, st Style)
}

// Common palette
var (
	Ink       = color.NRGBA{R: 0x2c, G: 0x3e, B: 0x50, A: 0xff}
	Slate     = color.NRGBA{R: 0x95, G: 0xa5, B: 0xa6, A: 0xff}
	Paper     = color.NRGBA{R: 0xfa, G: 0xf8, B: 0xf3, A: 0xff}
	White     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Black     = color.NRGBA{A: 0xff}
	Highlight = color.NRGBA{R: 0xc0, G: 0x39, B: 0x2b, A: 0xff}
)
