package analyzer

import (
	"image"
	"image/draw"
	"math"
)

// EdgeDetector marks pixels with a strong Sobel gradient, grows them so
// nearby glyphs merge into lines and paragraphs, and reports the connected
// regions
type EdgeDetector struct {
	MinArea   int     // smaller blocks are noise
	Threshold float64 // gradient magnitude
	Reach     int     // dilation radius in pixels
}

func NewEdgeDetector() *EdgeDetector {
	return &EdgeDetector{MinArea: 500, Threshold: 30, Reach: 4}
}

func (d *EdgeDetector) Detect(img image.Image) []Block {
	gray := grayscale(img)
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	if w < 3 || h < 3 {
		return nil
	}
	mask := d.edges(gray, w, h)
	mask = grow(mask, w, h, d.Reach)
	return d.components(mask, w, h, gray.Rect.Min)
}

func grayscale(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	g := image.NewGray(b)
	draw.Draw(g, b, img, b.Min, draw.Src)
	return g
}

// edges returns a w*h mask of pixels whose gradient exceeds the threshold
func (d *EdgeDetector) edges(g *image.Gray, w, h int) []bool {
	mask := make([]bool, w*h)
	at := func(x, y int) float64 {
		return float64(g.Pix[y*g.Stride+x])
	}
	limit := d.Threshold * d.Threshold
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1) -
				at(x-1, y-1) - 2*at(x-1, y) - at(x-1, y+1)
			gy := at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1) -
				at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1)
			mask[y*w+x] = gx*gx+gy*gy > limit
		}
	}
	return mask
}

// grow dilates the mask by r with a square kernel, one axis at a time
func grow(mask []bool, w, h, r int) []bool {
	if r <= 0 {
		return mask
	}
	row := make([]bool, w*h)
	for y := 0; y < h; y++ {
		last := math.MinInt / 2
		for x := 0; x < w; x++ {
			if mask[y*w+x] {
				last = x
			}
			row[y*w+x] = x-last <= r
		}
		last = math.MaxInt / 2
		for x := w - 1; x >= 0; x-- {
			if mask[y*w+x] {
				last = x
			}
			if last-x <= r {
				row[y*w+x] = true
			}
		}
	}

	out := make([]bool, w*h)
	for x := 0; x < w; x++ {
		last := math.MinInt / 2
		for y := 0; y < h; y++ {
			if row[y*w+x] {
				last = y
			}
			out[y*w+x] = y-last <= r
		}
		last = math.MaxInt / 2
		for y := h - 1; y >= 0; y-- {
			if row[y*w+x] {
				last = y
			}
			if last-y <= r {
				out[y*w+x] = true
			}
		}
	}
	return out
}

// components labels 4-connected regions of the mask
func (d *EdgeDetector) components(mask []bool, w, h int, origin image.Point) []Block {
	seen := make([]bool, w*h)
	var blocks []Block
	var queue []int

	for start := range mask {
		if !mask[start] || seen[start] {
			continue
		}
		seen[start] = true
		queue = append(queue[:0], start)
		minX, minY, maxX, maxY := w, h, -1, -1
		area := 0

		for len(queue) > 0 {
			i := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			x, y := i%w, i/w
			area++
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)

			for _, n := range [4]int{i - 1, i + 1, i - w, i + w} {
				if n < 0 || n >= len(mask) || seen[n] || !mask[n] {
					continue
				}
				// no wrapping across row ends
				if (n == i-1 && x == 0) || (n == i+1 && x == w-1) {
					continue
				}
				seen[n] = true
				queue = append(queue, n)
			}
		}

		if area < d.MinArea {
			continue
		}
		blocks = append(blocks, Block{
			Rect: image.Rect(minX, minY, maxX+1, maxY+1).Add(origin),
			Area: area,
		})
	}
	return blocks
}
