package morph

import (
	"fmt"
	"strconv"

	"github.com/gogpu/gg"
)

// ParsePathData builds a gg path from SVG path data. Supported commands are
// M L H V C S Q T Z, absolute and relative. Arcs are rejected.
func ParsePathData(d string) (*gg.Path, error) {
	sc := &pathScanner{s: d}
	p := gg.NewPath()

	var (
		cur, start, ctrl gg.Point
		cmd, last        byte
		started          bool
	)

	for {
		sc.skip()
		if sc.done() {
			break
		}
		if c := sc.peek(); isCommand(c) {
			cmd = c
			sc.pos++
		} else if cmd == 0 {
			return nil, fmt.Errorf("path data must start with a command at %d", sc.pos)
		} else if cmd == 'M' {
			cmd = 'L'
		} else if cmd == 'm' {
			cmd = 'l'
		} else if cmd == 'Z' || cmd == 'z' {
			return nil, fmt.Errorf("unexpected number after close at %d", sc.pos)
		}

		rel := cmd >= 'a'
		var base gg.Point
		if rel {
			base = cur
		}
		if cmd != 'M' && cmd != 'm' && !started {
			return nil, fmt.Errorf("command %q before moveto", cmd)
		}

		switch cmd {
		case 'M', 'm':
			pt, err := sc.point(base)
			if err != nil {
				return nil, err
			}
			p.MoveTo(pt.X, pt.Y)
			cur, start, started = pt, pt, true
		case 'L', 'l':
			pt, err := sc.point(base)
			if err != nil {
				return nil, err
			}
			p.LineTo(pt.X, pt.Y)
			cur = pt
		case 'H', 'h':
			x, err := sc.number()
			if err != nil {
				return nil, err
			}
			cur = gg.Pt(x+base.X, cur.Y)
			p.LineTo(cur.X, cur.Y)
		case 'V', 'v':
			y, err := sc.number()
			if err != nil {
				return nil, err
			}
			cur = gg.Pt(cur.X, y+base.Y)
			p.LineTo(cur.X, cur.Y)
		case 'C', 'c', 'S', 's':
			c1 := mirror(cur, ctrl, last, "CcSs")
			if cmd == 'C' || cmd == 'c' {
				var err error
				if c1, err = sc.point(base); err != nil {
					return nil, err
				}
			}
			c2, err := sc.point(base)
			if err != nil {
				return nil, err
			}
			pt, err := sc.point(base)
			if err != nil {
				return nil, err
			}
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
			cur, ctrl = pt, c2
		case 'Q', 'q', 'T', 't':
			c1 := mirror(cur, ctrl, last, "QqTt")
			if cmd == 'Q' || cmd == 'q' {
				var err error
				if c1, err = sc.point(base); err != nil {
					return nil, err
				}
			}
			pt, err := sc.point(base)
			if err != nil {
				return nil, err
			}
			p.QuadraticTo(c1.X, c1.Y, pt.X, pt.Y)
			cur, ctrl = pt, c1
		case 'Z', 'z':
			p.Close()
			cur = start
		default:
			return nil, fmt.Errorf("unsupported path command %q", cmd)
		}
		last = cmd
	}

	if !started {
		return nil, fmt.Errorf("empty path data")
	}
	return p, nil
}

// mirror reflects the previous control point for the smooth curve forms
func mirror(cur, ctrl gg.Point, last byte, family string) gg.Point {
	for i := 0; i < len(family); i++ {
		if last == family[i] {
			return gg.Pt(2*cur.X-ctrl.X, 2*cur.Y-ctrl.Y)
		}
	}
	return cur
}

func isCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's', 'Q', 'q', 'T', 't', 'Z', 'z', 'A', 'a':
		return true
	}
	return false
}

type pathScanner struct {
	s   string
	pos int
}

func (sc *pathScanner) done() bool { return sc.pos >= len(sc.s) }

func (sc *pathScanner) peek() byte { return sc.s[sc.pos] }

func (sc *pathScanner) skip() {
	for !sc.done() {
		switch sc.peek() {
		case ' ', '\t', '\n', '\r', ',':
			sc.pos++
		default:
			return
		}
	}
}

// number reads one float in the compact SVG grammar, where "1-2" and
// "0.5.5" are two numbers each.
func (sc *pathScanner) number() (float64, error) {
	sc.skip()
	begin := sc.pos
	if !sc.done() && (sc.peek() == '-' || sc.peek() == '+') {
		sc.pos++
	}
	digits, dot := false, false
scan:
	for !sc.done() {
		c := sc.peek()
		switch {
		case c >= '0' && c <= '9':
			digits = true
		case c == '.' && !dot:
			dot = true
		case (c == 'e' || c == 'E') && digits:
			sc.pos++
			if !sc.done() && (sc.peek() == '-' || sc.peek() == '+') {
				sc.pos++
			}
			continue
		default:
			break scan
		}
		sc.pos++
	}
	if !digits {
		return 0, fmt.Errorf("expected number at %d", begin)
	}
	v, err := strconv.ParseFloat(sc.s[begin:sc.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q: %w", sc.s[begin:sc.pos], err)
	}
	return v, nil
}

func (sc *pathScanner) point(base gg.Point) (gg.Point, error) {
	x, err := sc.number()
	if err != nil {
		return gg.Point{}, err
	}
	y, err := sc.number()
	if err != nil {
		return gg.Point{}, err
	}
	return gg.Pt(x+base.X, y+base.Y), nil
}
