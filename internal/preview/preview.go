// Package preview plays a story interactively in the terminal. Frames are
// painted by the raster surface and shown as half-block cells.
package preview

import (
	"context"
	"fmt"
	"image"
	"log"

	"github.com/charmbracelet/harmonica"
	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"

	"github.com/ivlev/scroll2video/internal/asset"
	"github.com/ivlev/scroll2video/internal/engine"
	"github.com/ivlev/scroll2video/internal/scroll"
	"github.com/ivlev/scroll2video/internal/section"
	"github.com/ivlev/scroll2video/internal/story"
	"github.com/ivlev/scroll2video/internal/surface/raster"
	"github.com/ivlev/scroll2video/internal/system"
)

// Pixels rendered per terminal cell
const (
	CellWidth  = 8
	CellHeight = 16
)

// Scroll steps in viewport heights
const (
	lineStep  = 0.1
	wheelStep = 0.15
	pageStep  = 1.0
)

// Preview is an interactive terminal player
type Preview struct {
	Story  *story.Story
	Assets *asset.Store
	FPS    int
	Sound  bool

	screen tcell.Screen
	scene  *engine.Scene
	canvas *raster.Canvas
	pool   *system.ImagePool
	frame  *image.RGBA
	cells  *image.RGBA
	click  *clicker

	spring      harmonica.Spring
	pos, vel    float64
	target      float64
	cols, rows  int
	flips, page int
}

func New(st *story.Story, assets *asset.Store, fps int) *Preview {
	if fps <= 0 {
		fps = 30
	}
	return &Preview{Story: st, Assets: assets, FPS: fps, Sound: true, pool: system.NewImagePool()}
}

// Run opens the terminal and blocks until the user quits or ctx is done
func (p *Preview) Run(ctx context.Context) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	if p.Sound {
		p.click, err = newClicker()
		if err != nil {
			// Без звука превью работает так же
			log.Printf("[!] Звук недоступен: %v", err)
		}
		defer p.click.Close()
	}
	return p.run(ctx, screen)
}

func (p *Preview) run(ctx context.Context, screen tcell.Screen) error {
	p.screen = screen
	scene, err := engine.NewScene(p.Story, p.Assets)
	if err != nil {
		return err
	}
	p.scene = scene
	scene.OnFlip = p.flipped

	cols, rows := screen.Size()
	vp := p.viewport(cols, rows)
	p.canvas, err = raster.New(int(vp.Width), int(vp.Height))
	if err != nil {
		return err
	}
	p.resize(cols, rows)
	p.spring = harmonica.NewSpring(harmonica.FPS(p.FPS), 6.0, 1.0)

	scene.Mount(vp)
	defer scene.Unmount()

	events := make(chan engine.Event, 16)
	loop := engine.NewLoop(scene, p.canvas, p.FPS)
	loop.Handle = p.handle
	loop.Before = p.step
	loop.After = p.show
	loop.Start(ctx, events)

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			e := translate(ev)
			if e == nil {
				continue
			}
			select {
			case events <- e:
			case <-loop.Done():
				return
			}
		}
	}()

	<-loop.Done()
	return loop.Stop()
}

// viewport is the pixel size rendered for a terminal; the last row holds
// the status line
func (p *Preview) viewport(cols, rows int) scroll.Viewport {
	cols = max(cols, 1)
	rows = max(rows-1, 1)
	return scroll.Viewport{Width: float64(cols * CellWidth), Height: float64(rows * CellHeight)}
}

func (p *Preview) resize(cols, rows int) {
	p.cols, p.rows = cols, rows
	vp := p.viewport(cols, rows)
	if err := p.canvas.Resize(int(vp.Width), int(vp.Height)); err != nil {
		log.Printf("[!] Ошибка изменения размера: %v", err)
	}
	if p.frame != nil {
		p.pool.Put(p.frame)
	}
	p.frame = p.pool.Get(image.Rect(0, 0, int(vp.Width), int(vp.Height)))
	p.cells = image.NewRGBA(image.Rect(0, 0, max(cols, 1), max(rows-1, 1)*2))
}

// translate maps terminal input onto loop events. Keys and the wheel pass
// through untouched and are handled by handle.
func translate(ev tcell.Event) engine.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		if e.Key() == tcell.KeyEscape || e.Key() == tcell.KeyCtrlC ||
			(e.Key() == tcell.KeyRune && e.Rune() == 'q') {
			return engine.QuitEvent{}
		}
		return e
	case *tcell.EventMouse:
		if e.Buttons()&(tcell.WheelUp|tcell.WheelDown) != 0 {
			return e
		}
		x, y := e.Position()
		return engine.PointerEvent{X: float64(x*CellWidth + CellWidth/2), Y: float64(y*CellHeight + CellHeight/2)}
	case *tcell.EventResize:
		cols, rows := e.Size()
		return resizeEvent{cols: cols, rows: rows}
	}
	return nil
}

type resizeEvent struct{ cols, rows int }

func (p *Preview) handle(ev engine.Event) bool {
	vh := p.viewport(p.cols, p.rows).Height
	switch e := ev.(type) {
	case resizeEvent:
		old := vh
		p.resize(e.cols, e.rows)
		vp := p.viewport(e.cols, e.rows)
		p.scene.Resize(vp)
		p.pos = p.pos / old * vp.Height
		p.target = p.target / old * vp.Height
		p.vel = 0
		p.screen.Sync()
	case *tcell.EventKey:
		p.key(e)
	case *tcell.EventMouse:
		if e.Buttons()&tcell.WheelUp != 0 {
			p.nudge(-wheelStep)
		} else {
			p.nudge(wheelStep)
		}
	}
	return true
}

func (p *Preview) key(e *tcell.EventKey) {
	switch e.Key() {
	case tcell.KeyUp:
		p.nudge(-lineStep)
	case tcell.KeyDown:
		p.nudge(lineStep)
	case tcell.KeyPgUp:
		p.nudge(-pageStep)
	case tcell.KeyPgDn:
		p.nudge(pageStep)
	case tcell.KeyHome:
		p.target = 0
	case tcell.KeyEnd:
		p.target = p.scene.Layout().MaxScroll()
	case tcell.KeyRune:
		if e.Rune() == ' ' {
			p.nudge(pageStep)
		}
	}
}

// nudge moves the scroll target by dv viewport heights
func (p *Preview) nudge(dv float64) {
	l := p.scene.Layout()
	p.target += dv * l.Viewport().Height
	p.target = min(max(p.target, 0), l.MaxScroll())
}

// step moves the scroll toward the target on the spring
func (p *Preview) step(section.Tick) {
	p.pos, p.vel = p.spring.Update(p.pos, p.vel, p.target)
	p.scene.SetScroll(p.pos)
}

func (p *Preview) flipped(page int) {
	p.flips++
	p.page = page
	p.click.Play()
}

func (p *Preview) show(section.Tick) {
	if err := p.canvas.Err(); err != nil {
		log.Printf("[!] Ошибка отрисовки: %v", err)
	}
	if err := p.canvas.CopyTo(p.frame); err != nil {
		return
	}
	xdraw.ApproxBiLinear.Scale(p.cells, p.cells.Bounds(), p.frame, p.frame.Bounds(), xdraw.Src, nil)
	drawCells(p.screen, p.cells)
	drawStatus(p.screen, p.status(), p.cols, p.rows-1)
	p.screen.Show()
}

func (p *Preview) status() string {
	vh := p.scene.Layout().Viewport().Height
	s := fmt.Sprintf(" %.2f vh", p.scene.Scroll()/vh)
	if i := p.scene.Current(); i >= 0 {
		spec := p.Story.Sections[i]
		name := spec.Name
		if name == "" {
			name = spec.Kind
		}
		s += fmt.Sprintf(" | %d/%d %s", i+1, len(p.Story.Sections), name)
	}
	if p.flips > 0 {
		s += fmt.Sprintf(" | page %d", p.page)
	}
	return s + " | arrows, wheel, PgUp/PgDn, q"
}

// drawCells paints img two pixel rows per cell: the upper half block
// takes the top pixel as foreground and the bottom one as background
func drawCells(screen tcell.Screen, img *image.RGBA) {
	b := img.Bounds()
	for row := 0; row < b.Dy()/2; row++ {
		for x := 0; x < b.Dx(); x++ {
			fg, bg := cellColors(img, x, row)
			screen.SetContent(x, row, '▀', nil, tcell.StyleDefault.Foreground(fg).Background(bg))
		}
	}
}

func cellColors(img *image.RGBA, x, row int) (fg, bg tcell.Color) {
	b := img.Bounds()
	top := img.RGBAAt(b.Min.X+x, b.Min.Y+2*row)
	bottom := img.RGBAAt(b.Min.X+x, b.Min.Y+2*row+1)
	fg = tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))
	bg = tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B))
	return fg, bg
}

func drawStatus(screen tcell.Screen, s string, cols, row int) {
	style := tcell.StyleDefault.Reverse(true)
	runes := []rune(s)
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		screen.SetContent(x, row, r, nil, style)
	}
}
