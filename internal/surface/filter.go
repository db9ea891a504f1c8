package surface

import (
	"image"
	"image/color"
	"math"
)

// Apply returns a filtered copy of img. FilterNone returns img unchanged.
func Apply(f Filter, img image.Image) image.Image {
	if f == FilterNone || img == nil {
		return img
	}

	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			switch f {
			case FilterSilhouette:
				c = color.NRGBA{A: c.A}
			case FilterGrayscale:
				l := uint8(math.Round(0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)))
				c = color.NRGBA{R: l, G: l, B: l, A: c.A}
			}
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}

// CircleCrop cuts the centered square of img to its inscribed circle.
// Pixels outside the circle become transparent; the edge is antialiased
// over one pixel.
func CircleCrop(img image.Image) *image.NRGBA {
	b := img.Bounds()
	side := b.Dx()
	if b.Dy() < side {
		side = b.Dy()
	}
	ox := b.Min.X + (b.Dx()-side)/2
	oy := b.Min.Y + (b.Dy()-side)/2

	out := image.NewNRGBA(image.Rect(0, 0, side, side))
	r := float64(side) / 2
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			d := math.Hypot(float64(x)+0.5-r, float64(y)+0.5-r)
			cover := r - d + 0.5
			if cover <= 0 {
				continue
			}
			c := color.NRGBAModel.Convert(img.At(ox+x, oy+y)).(color.NRGBA)
			if cover < 1 {
				c.A = uint8(float64(c.A) * cover)
			}
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}
