// Package morph turns vector outlines into equal-length point sets and
// interpolates between them.
package morph

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/ivlev/scroll2video/internal/progress"
)

// Candidates is the number of rotation offsets Align tries
const Candidates = 20

// Flattening tolerance in path units
const tolerance = 0.25

// Points is an ordered outline, implicitly closed
type Points []gg.Point

// SamplePoints walks the outline of p and returns n points spaced i*L/n
// along its arc length, starting at the first vertex. Every subpath is
// closed; jumps between subpaths do not count toward the length.
func SamplePoints(p *gg.Path, n int) Points {
	if p == nil || n <= 0 {
		return nil
	}

	var segs [][2]gg.Point
	for _, poly := range polylines(p) {
		for i := 1; i < len(poly); i++ {
			segs = append(segs, [2]gg.Point{poly[i-1], poly[i]})
		}
	}
	if len(segs) == 0 {
		return nil
	}

	total := 0.0
	for _, s := range segs {
		total += s[0].Distance(s[1])
	}

	out := make(Points, 0, n)
	if total == 0 {
		for i := 0; i < n; i++ {
			out = append(out, segs[0][0])
		}
		return out
	}

	seg, walked := 0, 0.0
	for i := 0; i < n; i++ {
		d := float64(i) * total / float64(n)
		for seg < len(segs)-1 && walked+segs[seg][0].Distance(segs[seg][1]) < d {
			walked += segs[seg][0].Distance(segs[seg][1])
			seg++
		}
		a, b := segs[seg][0], segs[seg][1]
		l := a.Distance(b)
		t := 0.0
		if l > 0 {
			t = math.Min(1, (d-walked)/l)
		}
		out = append(out, a.Lerp(b, t))
	}
	return out
}

// polylines flattens every subpath of p separately and closes it. A
// segment right after a close starts a new subpath at the closed one's
// first point.
func polylines(p *gg.Path) [][]gg.Point {
	var (
		out   []gg.Point
		all   [][]gg.Point
		sub   *gg.Path
		start gg.Point
		begun bool
	)
	open := func() *gg.Path {
		if sub == nil && begun {
			sub = gg.NewPath()
			sub.MoveTo(start.X, start.Y)
		}
		return sub
	}
	flush := func() {
		if sub == nil {
			return
		}
		sub.Close()
		out = sub.Flatten(tolerance)
		if len(out) > 1 {
			all = append(all, out)
		}
		sub = nil
	}

	for _, el := range p.Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			flush()
			start, begun = e.Point, true
			open()
		case gg.LineTo:
			if cur := open(); cur != nil {
				cur.LineTo(e.Point.X, e.Point.Y)
			}
		case gg.QuadTo:
			if cur := open(); cur != nil {
				cur.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
			}
		case gg.CubicTo:
			if cur := open(); cur != nil {
				cur.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
			}
		case gg.Close:
			flush()
		}
	}
	flush()
	return all
}

// Align searches Candidates rotation offsets into dst and returns dst
// rotated by the one closest to src (summed point-wise distance), with
// that offset. The earliest offset wins ties.
func Align(src, dst Points) (Points, int) {
	n := len(dst)
	if n == 0 || len(src) == 0 {
		return Rotate(dst, 0), 0
	}

	step := n / Candidates
	if step < 1 {
		step = 1
	}

	best, bestDist := 0, math.Inf(1)
	for k := 0; k < Candidates && k*step < n; k++ {
		off := k * step
		d := 0.0
		for i := range src {
			d += src[i].Distance(dst[(i+off)%n])
		}
		if d < bestDist {
			best, bestDist = off, d
		}
	}
	return Rotate(dst, best), best
}

// Rotate returns a copy of p whose i-th point is p[(i+off) mod n]
func Rotate(p Points, off int) Points {
	n := len(p)
	out := make(Points, n)
	if n == 0 {
		return out
	}
	off = ((off % n) + n) % n
	for i := range out {
		out[i] = p[(i+off)%n]
	}
	return out
}

// Morph interpolates a toward b point by point. t is clamped to [0, 1];
// the ends return exact copies of a and b.
func Morph(a, b Points, t float64) Points {
	t = progress.Clamp01(t)
	out := make(Points, len(a))
	switch t {
	case 0:
		copy(out, a)
	case 1:
		copy(out, b)
	default:
		for i := range a {
			out[i] = gg.Pt(progress.Lerp(a[i].X, b[i].X, t), progress.Lerp(a[i].Y, b[i].Y, t))
		}
	}
	return out
}

// Bounds returns the bounding box of p
func Bounds(p Points) gg.Rect {
	if len(p) == 0 {
		return gg.Rect{}
	}
	r := gg.Rect{Min: p[0], Max: p[0]}
	for _, q := range p[1:] {
		r.Min.X = math.Min(r.Min.X, q.X)
		r.Min.Y = math.Min(r.Min.Y, q.Y)
		r.Max.X = math.Max(r.Max.X, q.X)
		r.Max.Y = math.Max(r.Max.Y, q.Y)
	}
	return r
}

// Fit scales p uniformly into box and centers it there
func Fit(p Points, box gg.Rect) Points {
	b := Bounds(p)
	bw, bh := b.Max.X-b.Min.X, b.Max.Y-b.Min.Y
	tw, th := box.Max.X-box.Min.X, box.Max.Y-box.Min.Y

	scale := 1.0
	switch {
	case bw > 0 && bh > 0:
		scale = math.Min(tw/bw, th/bh)
	case bw > 0:
		scale = tw / bw
	case bh > 0:
		scale = th / bh
	}
	ox := box.Min.X + (tw-bw*scale)/2
	oy := box.Min.Y + (th-bh*scale)/2

	out := make(Points, len(p))
	for i, q := range p {
		out[i] = gg.Pt((q.X-b.Min.X)*scale+ox, (q.Y-b.Min.Y)*scale+oy)
	}
	return out
}

// Transform scales p around the origin, then moves it by (dx, dy)
func Transform(p Points, scale, dx, dy float64) Points {
	out := make(Points, len(p))
	for i, q := range p {
		out[i] = gg.Pt(q.X*scale+dx, q.Y*scale+dy)
	}
	return out
}
