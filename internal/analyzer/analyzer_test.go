package analyzer

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"
)

// page draws dark rectangles on a white page
func page(w, h int, blocks ...image.Rectangle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	ink := image.NewUniform(color.RGBA{R: 20, G: 20, B: 20, A: 255})
	for _, b := range blocks {
		draw.Draw(img, b, ink, image.Point{}, draw.Src)
	}
	return img
}

func TestEdgeDetector(t *testing.T) {
	img := page(200, 300, image.Rect(40, 50, 160, 120), image.Rect(40, 200, 100, 260))
	blocks := NewEdgeDetector().Detect(img)
	if len(blocks) != 2 {
		t.Fatalf("Expected 2 blocks, got %d: %v", len(blocks), blocks)
	}
	for i, b := range blocks {
		t.Logf("Block %d: %v (area %d)", i, b.Rect, b.Area)
	}
	// Edges sit on the rectangle borders, grown by the reach
	if !blocks[0].Rect.Overlaps(image.Rect(40, 50, 160, 120)) {
		t.Errorf("First block %v misses the first rectangle", blocks[0].Rect)
	}
}

func TestEdgeDetectorIgnoresSpecks(t *testing.T) {
	img := page(200, 200, image.Rect(100, 100, 102, 102))
	if blocks := NewEdgeDetector().Detect(img); len(blocks) != 0 {
		t.Errorf("Expected a speck to be ignored, got %v", blocks)
	}
}

func TestTrim(t *testing.T) {
	content := image.Rect(40, 50, 160, 120)
	img := page(200, 300, content)
	d := NewEdgeDetector()

	r, ok := Bounds(d, img, 10)
	if !ok {
		t.Fatal("Expected content")
	}
	if !r.In(img.Bounds()) || !content.In(r) {
		t.Errorf("Bounds %v must hold %v inside the page", r, content)
	}

	trimmed := Trim(d, img, 10)
	if trimmed.Bounds() != r {
		t.Errorf("Expected trimmed bounds %v, got %v", r, trimmed.Bounds())
	}

	blank := page(100, 100)
	if got := Trim(d, blank, 10); got != image.Image(blank) {
		t.Error("Blank pages must come back unchanged")
	}
}

func TestNewDetector(t *testing.T) {
	tests := []struct {
		name    string
		wantNil bool
		wantErr error
	}{
		{"edges", false, nil},
		{"", false, nil},
		{"none", true, nil},
		{"ocr", true, ErrUnknownDetector},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDetector(tt.name)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
			if (d == nil) != tt.wantNil {
				t.Errorf("Unexpected detector %v", d)
			}
		})
	}
}
