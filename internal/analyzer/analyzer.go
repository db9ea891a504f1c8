// Package analyzer finds where the ink is on a scanned or rendered page,
// so document pages can be shown without their blank margins.
package analyzer

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

var ErrUnknownDetector = errors.New("unknown detector")

// Block is a connected region of content
type Block struct {
	Rect image.Rectangle
	Area int // pixels marked as content
}

// Detector finds content blocks in an image
type Detector interface {
	Detect(img image.Image) []Block
}

// NewDetector returns a detector by name. "none" returns nil, which
// disables trimming.
func NewDetector(name string) (Detector, error) {
	switch name {
	case "edges", "":
		return NewEdgeDetector(), nil
	case "none":
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownDetector, name)
}

// Bounds returns the union of every detected block grown by pad pixels and
// clipped to the image. ok is false for a blank image.
func Bounds(d Detector, img image.Image, pad int) (r image.Rectangle, ok bool) {
	for _, b := range d.Detect(img) {
		r = r.Union(b.Rect)
	}
	if r.Empty() {
		return img.Bounds(), false
	}
	return r.Inset(-pad).Intersect(img.Bounds()), true
}

// Trim crops img to its content. Blank images come back unchanged.
func Trim(d Detector, img image.Image, pad int) image.Image {
	r, ok := Bounds(d, img, pad)
	if !ok || r == img.Bounds() {
		return img
	}
	if sub, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		return sub.SubImage(r)
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), img, r.Min, draw.Src)
	return out
}
