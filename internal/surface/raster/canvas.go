// Package raster paints frames with the gogpu/gg software rasterizer
package raster

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ivlev/scroll2video/internal/surface"
)

const defaultFontSize = 28

type pictureKey struct {
	img    image.Image
	filter surface.Filter
	clip   surface.Clip
}

// Canvas is a surface.Surface backed by a gg.Context
type Canvas struct {
	dc      *gg.Context
	font    *text.FontSource
	faces   map[float64]text.Face
	buffers map[pictureKey]*gg.ImageBuf
	err     error
}

// New creates a canvas of the given pixel size with the Go Regular font loaded
func New(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	font, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	return &Canvas{
		dc:      gg.NewContext(width, height),
		font:    font,
		faces:   make(map[float64]text.Face),
		buffers: make(map[pictureKey]*gg.ImageBuf),
	}, nil
}

// Resize reallocates the pixel buffer
func (c *Canvas) Resize(width, height int) error {
	return c.dc.Resize(width, height)
}

// Context exposes the underlying gg context
func (c *Canvas) Context() *gg.Context {
	return c.dc
}

// Err returns the first rasterization error since the last Clear
func (c *Canvas) Err() error {
	return c.err
}

func (c *Canvas) Size() (float64, float64) {
	return float64(c.dc.Width()), float64(c.dc.Height())
}

func (c *Canvas) Clear(bg color.NRGBA) {
	c.err = nil
	c.dc.ResetClip()
	c.dc.ClearPath()
	c.dc.ClearWithColor(gg.FromColor(bg))
}

func (c *Canvas) Circle(x, y, r float64, st surface.Style) {
	if r <= 0 || st.Opacity <= 0 {
		return
	}
	c.dc.DrawCircle(x, y, r)
	c.paint(st)
}

func (c *Canvas) Path(pts []gg.Point, closed bool, st surface.Style) {
	if len(pts) < 2 || st.Opacity <= 0 {
		return
	}
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	if closed {
		c.dc.ClosePath()
	} else {
		st.Fill = color.NRGBA{}
	}
	c.paint(st)
}

func (c *Canvas) Line(x1, y1, x2, y2 float64, st surface.Style) {
	if st.Opacity <= 0 || st.Stroke.A == 0 {
		return
	}
	c.dc.DrawLine(x1, y1, x2, y2)
	c.paint(surface.Style{Stroke: st.Stroke, LineWidth: st.LineWidth, Opacity: st.Opacity})
}

// paint fills and/or strokes the current path and clears it
func (c *Canvas) paint(st surface.Style) {
	hasFill := st.Fill.A > 0
	hasStroke := st.Stroke.A > 0 && st.LineWidth > 0

	if hasFill {
		c.dc.SetColor(toRGBA(st.Fill, st.Opacity))
		var err error
		if hasStroke {
			err = c.dc.FillPreserve()
		} else {
			err = c.dc.Fill()
		}
		c.keep(err)
	}
	if hasStroke {
		c.dc.SetColor(toRGBA(st.Stroke, st.Opacity))
		c.dc.SetLineWidth(st.LineWidth)
		c.keep(c.dc.Stroke())
	}
	c.dc.ClearPath()
}

func (c *Canvas) Image(pic surface.Picture, x, y, w, h float64, st surface.Style) {
	// DrawImageEx treats opacity 0 as "unset", so fully transparent draws are skipped here
	if pic == nil || st.Opacity <= 0.001 || w <= 0 || h <= 0 {
		return
	}
	src := pic.Image()
	if src == nil {
		return
	}

	buf := c.buffer(pictureKey{img: src, filter: st.Filter, clip: st.Clip})
	c.dc.DrawImageEx(buf, gg.DrawImageOptions{
		X:             x,
		Y:             y,
		DstWidth:      w,
		DstHeight:     h,
		Interpolation: gg.InterpBilinear,
		Opacity:       st.Opacity,
		BlendMode:     gg.BlendNormal,
	})
}

// buffer returns the filtered, clipped variant of a picture. Variants are
// built once per source image; the source itself is never modified.
func (c *Canvas) buffer(key pictureKey) *gg.ImageBuf {
	if buf, ok := c.buffers[key]; ok {
		return buf
	}
	img := surface.Apply(key.filter, key.img)
	if key.clip == surface.ClipCircle {
		img = surface.CircleCrop(img)
	}
	buf := gg.ImageBufFromImage(img)
	c.buffers[key] = buf
	return buf
}

func (c *Canvas) Text(s string, x, y float64, st surface.Style) {
	if s == "" || st.Opacity <= 0 {
		return
	}
	size := st.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	face, ok := c.faces[size]
	if !ok {
		face = c.font.Face(size)
		c.faces[size] = face
	}
	col := st.Fill
	if col.A == 0 {
		col = surface.Ink
	}
	c.dc.SetFont(face)
	c.dc.SetColor(toRGBA(col, st.Opacity))
	c.dc.DrawStringAnchored(s, x, y, 0.5, 0.5)
}

// CopyTo copies the frame into dst, which must have the canvas size
func (c *Canvas) CopyTo(dst *image.RGBA) error {
	c.keep(c.dc.FlushGPU())
	data := c.dc.ResizeTarget().Data()
	if len(dst.Pix) != len(data) {
		return fmt.Errorf("frame buffer size mismatch: %d != %d", len(dst.Pix), len(data))
	}
	copy(dst.Pix, data)
	return nil
}

// Snapshot returns a copy of the current frame
func (c *Canvas) Snapshot() *image.RGBA {
	c.keep(c.dc.FlushGPU())
	return c.dc.ResizeTarget().ToImage()
}

// EncodePNG writes the current frame as PNG
func (c *Canvas) EncodePNG(w io.Writer) error {
	c.keep(c.dc.FlushGPU())
	return c.dc.EncodePNG(w)
}

func (c *Canvas) keep(err error) {
	if err != nil && c.err == nil {
		c.err = err
	}
}

func toRGBA(col color.NRGBA, opacity float64) color.Color {
	a := float64(col.A) / 255 * opacity
	if a > 1 {
		a = 1
	}
	return color.NRGBA{R: col.R, G: col.G, B: col.B, A: uint8(a*255 + 0.5)}
}
