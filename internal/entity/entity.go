// Package entity holds the eased drawable state shared by every section:
// circles and portraits that chase a target position, radius and alpha.
package entity

import (
	"image/color"
	"math"

	"github.com/ivlev/scroll2video/internal/surface"
)

// Mode selects how a portrait is painted
type Mode int

const (
	Normal Mode = iota
	Silhouette
)

func (m Mode) filter() surface.Filter {
	if m == Silhouette {
		return surface.FilterSilhouette
	}
	return surface.FilterNone
}

// Damping is the fraction of the remaining distance covered per update
type Damping struct {
	Position float64
	Radius   float64
	Alpha    float64
}

var (
	GridDamping     = Damping{Position: 0.1, Radius: 0.05, Alpha: 0.05}
	ParticleDamping = Damping{Position: 1, Radius: 0.1, Alpha: 1}
)

// Sprite is a picture that may still be loading
type Sprite interface {
	surface.Picture
	Ready() bool
}

// State is one set of animated values
type State struct {
	X, Y   float64
	Radius float64
	Alpha  float64
}

// Entity is a circle (or circular portrait) whose current state eases
// toward its target state once per update.
type Entity struct {
	Cur     State
	Target  State
	Mode    Mode
	Sprite  Sprite
	Color   color.NRGBA
	Damping Damping
}

// New creates a settled, fully opaque entity
func New(x, y, r float64, d Damping) *Entity {
	s := State{X: x, Y: y, Radius: r, Alpha: 1}
	return &Entity{Cur: s, Target: s, Damping: d, Color: surface.Slate}
}

// MoveTo sets the target position
func (e *Entity) MoveTo(x, y float64) {
	e.Target.X, e.Target.Y = x, y
}

// Place jumps to a position without easing
func (e *Entity) Place(x, y float64) {
	e.Target.X, e.Target.Y = x, y
	e.Cur.X, e.Cur.Y = x, y
}

// Set replaces the targets for radius and alpha
func (e *Entity) Set(radius, alpha float64) {
	e.Target.Radius, e.Target.Alpha = radius, alpha
}

// Update moves every current value toward its target
func (e *Entity) Update() {
	e.Cur.X = approach(e.Cur.X, e.Target.X, e.Damping.Position)
	e.Cur.Y = approach(e.Cur.Y, e.Target.Y, e.Damping.Position)
	e.Cur.Radius = approach(e.Cur.Radius, e.Target.Radius, e.Damping.Radius)
	e.Cur.Alpha = approach(e.Cur.Alpha, e.Target.Alpha, e.Damping.Alpha)
}

// Settled reports whether every value is within eps of its target
func (e *Entity) Settled(eps float64) bool {
	return math.Abs(e.Cur.X-e.Target.X) <= eps &&
		math.Abs(e.Cur.Y-e.Target.Y) <= eps &&
		math.Abs(e.Cur.Radius-e.Target.Radius) <= eps &&
		math.Abs(e.Cur.Alpha-e.Target.Alpha) <= eps
}

// Draw paints the entity at its current state. Portraits that have not
// finished loading are skipped for this frame.
func (e *Entity) Draw(dst surface.Surface) {
	c := e.Cur
	if c.Alpha <= 0.001 || c.Radius <= 0 {
		return
	}
	if e.Sprite != nil {
		if !e.Sprite.Ready() {
			return
		}
		dst.Image(e.Sprite, c.X-c.Radius, c.Y-c.Radius, 2*c.Radius, 2*c.Radius, surface.Style{
			Opacity: c.Alpha,
			Filter:  e.Mode.filter(),
			Clip:    surface.ClipCircle,
		})
		return
	}

	col := e.Color
	if e.Mode == Silhouette {
		col = surface.Black
	}
	dst.Circle(c.X, c.Y, c.Radius, surface.Filled(col, c.Alpha))
}

func approach(cur, target, k float64) float64 {
	if k >= 1 {
		return target
	}
	if k <= 0 {
		return cur
	}
	return cur + (target-cur)*k
}
