// Package vector records frames as SVG documents with ajstarks/svgo.
// Pictures are referenced by Href, so a document stays small and the
// browser does the decoding.
package vector

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/gogpu/gg"

	"github.com/ivlev/scroll2video/internal/surface"
)

const filterDefs = `<filter id="grayscale"><feColorMatrix type="saturate" values="0"/></filter>
<filter id="silhouette"><feColorMatrix type="matrix" values="0 0 0 0 0  0 0 0 0 0  0 0 0 0 0  0 0 0 1 0"/></filter>
`

// Document is a surface.Surface that writes one SVG document per frame
type Document struct {
	buf    bytes.Buffer
	canvas *svg.SVG
	w, h   int
	clips  int
	open   bool
}

// New creates an empty document of the given size
func New(width, height int) *Document {
	d := &Document{w: width, h: height}
	d.canvas = svg.New(&d.buf)
	return d
}

// Resize changes the size used by the next Clear
func (d *Document) Resize(width, height int) {
	d.w, d.h = width, height
}

func (d *Document) Size() (float64, float64) {
	return float64(d.w), float64(d.h)
}

// Clear starts a fresh document
func (d *Document) Clear(bg color.NRGBA) {
	d.buf.Reset()
	d.clips = 0
	d.canvas.Start(d.w, d.h)
	d.canvas.Def()
	fmt.Fprint(d.canvas.Writer, filterDefs)
	d.canvas.DefEnd()
	d.canvas.Rect(0, 0, d.w, d.h, fill(bg, 1))
	d.open = true
}

func (d *Document) Circle(x, y, r float64, st surface.Style) {
	if !d.open || r <= 0 || st.Opacity <= 0 {
		return
	}
	d.canvas.Circle(px(x), px(y), px(r), paint(st)...)
}

func (d *Document) Image(pic surface.Picture, x, y, w, h float64, st surface.Style) {
	if !d.open || pic == nil || st.Opacity <= 0.001 {
		return
	}
	href := pic.Href()
	if href == "" {
		return
	}

	attrs := []string{fmt.Sprintf(`opacity="%.3f"`, st.Opacity), `preserveAspectRatio="xMidYMid slice"`}
	if st.Filter != surface.FilterNone {
		attrs = append(attrs, fmt.Sprintf(`filter="url(#%s)"`, st.Filter))
	}
	if st.Clip == surface.ClipCircle {
		d.clips++
		id := fmt.Sprintf("clip%d", d.clips)
		d.canvas.Def()
		d.canvas.ClipPath(fmt.Sprintf(`id="%s"`, id))
		d.canvas.Circle(px(x+w/2), px(y+h/2), px(math.Min(w, h)/2))
		d.canvas.ClipEnd()
		d.canvas.DefEnd()
		attrs = append(attrs, fmt.Sprintf(`clip-path="url(#%s)"`, id))
	}
	d.canvas.Image(px(x), px(y), px(w), px(h), href, attrs...)
}

func (d *Document) Path(pts []gg.Point, closed bool, st surface.Style) {
	if !d.open || len(pts) < 2 || st.Opacity <= 0 {
		return
	}
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = px(p.X), px(p.Y)
	}
	if closed {
		d.canvas.Polygon(xs, ys, paint(st)...)
		return
	}
	st.Fill = color.NRGBA{}
	d.canvas.Polyline(xs, ys, paint(st)...)
}

func (d *Document) Line(x1, y1, x2, y2 float64, st surface.Style) {
	if !d.open || st.Opacity <= 0 || st.Stroke.A == 0 {
		return
	}
	d.canvas.Line(px(x1), px(y1), px(x2), px(y2), stroke(st)...)
}

func (d *Document) Text(s string, x, y float64, st surface.Style) {
	if !d.open || s == "" || st.Opacity <= 0 {
		return
	}
	size := st.FontSize
	if size <= 0 {
		size = 28
	}
	col := st.Fill
	if col.A == 0 {
		col = surface.Ink
	}
	d.canvas.Text(px(x), px(y), s,
		`text-anchor="middle"`,
		`dominant-baseline="middle"`,
		`font-family="sans-serif"`,
		fmt.Sprintf(`font-size="%.0f"`, size),
		fill(col, st.Opacity))
}

// Finish closes the document and returns its bytes. The slice is only
// valid until the next Clear.
func (d *Document) Finish() []byte {
	if !d.open {
		d.Clear(surface.White)
	}
	d.canvas.End()
	d.open = false
	return d.buf.Bytes()
}

func paint(st surface.Style) []string {
	attrs := []string{`fill="none"`}
	if st.Fill.A > 0 {
		attrs[0] = fill(st.Fill, st.Opacity)
	}
	if st.Stroke.A > 0 && st.LineWidth > 0 {
		attrs = append(attrs, stroke(st)...)
	}
	return attrs
}

func stroke(st surface.Style) []string {
	w := st.LineWidth
	if w <= 0 {
		w = 1
	}
	return []string{
		fmt.Sprintf(`stroke="%s"`, hex(st.Stroke)),
		fmt.Sprintf(`stroke-opacity="%.3f"`, st.Alpha(st.Stroke)),
		fmt.Sprintf(`stroke-width="%.1f"`, w),
	}
}

func fill(c color.NRGBA, opacity float64) string {
	return fmt.Sprintf(`fill="%s" fill-opacity="%.3f"`, hex(c), float64(c.A)/255*opacity)
}

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func px(v float64) int {
	return int(math.Round(v))
}
