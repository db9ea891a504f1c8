package surface

import (
	"image/color"

	"github.com/gogpu/gg"
)

type offsetSurface struct {
	dst    Surface
	dx, dy float64
}

// Offset returns a surface that translates every draw call by (dx, dy).
// Sticky section layers are drawn through it.
func Offset(dst Surface, dx, dy float64) Surface {
	if dx == 0 && dy == 0 {
		return dst
	}
	return &offsetSurface{dst: dst, dx: dx, dy: dy}
}

func (o *offsetSurface) Size() (float64, float64) { return o.dst.Size() }

func (o *offsetSurface) Clear(bg color.NRGBA) { o.dst.Clear(bg) }

func (o *offsetSurface) Circle(x, y, r float64, st Style) {
	o.dst.Circle(x+o.dx, y+o.dy, r, st)
}

func (o *offsetSurface) Image(pic Picture, x, y, w, h float64, st Style) {
	o.dst.Image(pic, x+o.dx, y+o.dy, w, h, st)
}

func (o *offsetSurface) Path(pts []gg.Point, closed bool, st Style) {
	moved := make([]gg.Point, len(pts))
	for i, p := range pts {
		moved[i] = gg.Pt(p.X+o.dx, p.Y+o.dy)
	}
	o.dst.Path(moved, closed, st)
}

func (o *offsetSurface) Line(x1, y1, x2, y2 float64, st Style) {
	o.dst.Line(x1+o.dx, y1+o.dy, x2+o.dx, y2+o.dy, st)
}

func (o *offsetSurface) Text(s string, x, y float64, st Style) {
	o.dst.Text(s, x+o.dx, y+o.dy, st)
}
