package surface

import (
	"image/color"

	"github.com/gogpu/gg"
)

// Call is one recorded draw call
type Call struct {
	Op     string
	X, Y   float64
	W, H   float64
	R      float64
	Points int
	Text   string
	Pic    Picture
	Style  Style
}

// Recorder is a surface that keeps the draw calls of the current frame
type Recorder struct {
	W, H   float64
	Calls  []Call
	Clears int
	BG     color.NRGBA
}

// NewRecorder creates a recorder of the given size
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

// Clear drops the calls of the previous frame
func (r *Recorder) Clear(bg color.NRGBA) {
	r.Calls = r.Calls[:0]
	r.Clears++
	r.BG = bg
}

func (r *Recorder) Circle(x, y, rad float64, st Style) {
	r.Calls = append(r.Calls, Call{Op: "circle", X: x, Y: y, R: rad, Style: st})
}

func (r *Recorder) Image(pic Picture, x, y, w, h float64, st Style) {
	r.Calls = append(r.Calls, Call{Op: "image", X: x, Y: y, W: w, H: h, Pic: pic, Style: st})
}

func (r *Recorder) Path(pts []gg.Point, closed bool, st Style) {
	op := "polyline"
	if closed {
		op = "path"
	}
	c := Call{Op: op, Points: len(pts), Style: st}
	if len(pts) > 0 {
		c.X, c.Y = pts[0].X, pts[0].Y
	}
	r.Calls = append(r.Calls, c)
}

func (r *Recorder) Line(x1, y1, x2, y2 float64, st Style) {
	r.Calls = append(r.Calls, Call{Op: "line", X: x1, Y: y1, W: x2 - x1, H: y2 - y1, Style: st})
}

func (r *Recorder) Text(s string, x, y float64, st Style) {
	r.Calls = append(r.Calls, Call{Op: "text", X: x, Y: y, Text: s, Style: st})
}

// Count returns the number of recorded calls with the given op
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Texts returns every text drawn this frame
func (r *Recorder) Texts() []string {
	var out []string
	for _, c := range r.Calls {
		if c.Op == "text" {
			out = append(out, c.Text)
		}
	}
	return out
}
