package section

import (
	"github.com/ivlev/scroll2video/internal/progress"
	"github.com/ivlev/scroll2video/internal/story"
	"github.com/ivlev/scroll2video/internal/surface"
)

// Caption is a block of centered text whose opacity follows a schedule
type Caption struct {
	Key   string
	Lines []string
	Fade  progress.Schedule
	Size  float64
	Color surface.Style
}

// newCaption builds a caption with its built-in text and fade, then
// applies the story override for key if there is one.
func newCaption(spec story.SectionSpec, key string, lines []string, at, opacity []float64) *Caption {
	c := &Caption{
		Key:   key,
		Lines: lines,
		Fade:  progress.New(at, opacity),
		Size:  22,
		Color: surface.Filled(surface.Ink, 1),
	}
	if o, ok := spec.Caption(key); ok {
		if len(o.Lines) > 0 {
			c.Lines = o.Lines
		}
		if len(o.At) > 0 && len(o.At) == len(o.Opacity) {
			c.Fade = progress.New(o.At, o.Opacity)
		}
	}
	return c
}

// Opacity samples the fade schedule
func (c *Caption) Opacity(x float64) float64 {
	return progress.Clamp01(c.Fade.Sample(x))
}

// Draw paints the lines centered on (x, y)
func (c *Caption) Draw(dst surface.Surface, x, y, opacity float64) {
	if opacity <= 0.001 || len(c.Lines) == 0 {
		return
	}
	lh := c.Size * 1.5
	top := y - lh*float64(len(c.Lines)-1)/2
	st := c.Color
	st.Opacity = opacity
	st.FontSize = c.Size
	for i, line := range c.Lines {
		dst.Text(line, x, top+float64(i)*lh, st)
	}
}
