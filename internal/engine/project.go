package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/scroll2video/internal/asset"
	"github.com/ivlev/scroll2video/internal/config"
	"github.com/ivlev/scroll2video/internal/scroll"
	"github.com/ivlev/scroll2video/internal/story"
	"github.com/ivlev/scroll2video/internal/surface/raster"
	"github.com/ivlev/scroll2video/internal/system"
	"github.com/ivlev/scroll2video/internal/video"
)

// SecondsPerViewport paces a generated timeline when no duration is given
const SecondsPerViewport = 2.0

// How long a render waits for pictures before drawing without them
var assetTimeout = 30 * time.Second

var BenchmarkLog = "benchmark.log"

var ErrEmptyStory = errors.New("story has no sections")

// Project renders a story offline: a deterministic clock walks the
// timeline, every frame is painted by gg and handed to the sink.
type Project struct {
	Config *config.Config
	Story  *story.Story
	Assets *asset.Store
	Sink   video.FrameSink

	pool  *system.ImagePool
	scale float64
}

func NewProject(cfg *config.Config, st *story.Story, assets *asset.Store, sink video.FrameSink) *Project {
	return &Project{
		Config: cfg,
		Story:  st,
		Assets: assets,
		Sink:   sink,
		pool:   system.NewImagePool(),
		scale:  1,
	}
}

func (p *Project) Run(ctx context.Context) error {
	startTime := time.Now()
	cfg := p.Config
	st := p.Story

	if len(st.Sections) == 0 {
		return ErrEmptyStory
	}
	if cfg.Seed != 0 {
		st.Seed = cfg.Seed
	}
	if cfg.FPS <= 0 {
		cfg.FPS = st.FPS
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = st.Width, st.Height
	}

	duration := p.resolveTimeline()
	frames := int(math.Round(duration * float64(cfg.FPS)))
	if frames < 1 {
		return fmt.Errorf("длительность %.2fs не дает ни одного кадра", duration)
	}

	fmt.Println("--- [PROJECT: SCROLL ENGINE] ---")
	fmt.Printf("[*] История: %s | Секций: %d\n", st.Title, len(st.Sections))
	fmt.Printf("[*] Разрешение: %dx%d @ %d FPS | Кадров: %d (%.2fs)\n", cfg.Width, cfg.Height, cfg.FPS, frames, duration)
	fmt.Println("-----------------------------")

	// Sections request their pictures while mounting
	scene, err := NewScene(st, p.Assets)
	if err != nil {
		return err
	}
	vp := scroll.Viewport{Width: float64(cfg.Width), Height: float64(cfg.Height)}
	scene.Mount(vp)
	defer scene.Unmount()
	waitAssets(ctx, p.Assets, assetTimeout)

	canvas, err := raster.New(cfg.Width, cfg.Height)
	if err != nil {
		return err
	}

	if err := p.Sink.Begin(ctx, cfg.Params(frames)); err != nil {
		return fmt.Errorf("ошибка запуска вывода: %w", err)
	}

	workers := max(cfg.Workers, 1)
	ch := make(chan video.Frame, workers)
	g, gctx := errgroup.WithContext(ctx)
	clock := Clock{FPS: cfg.FPS}
	renderStart := time.Now()

	// 1. Рендер: сцена шагает строго по порядку кадров
	g.Go(func() error {
		defer close(ch)
		rect := image.Rect(0, 0, cfg.Width, cfg.Height)
		for i := 0; i < frames; i++ {
			tick := clock.Tick(i)
			scene.SetScrollVH(p.scrollAt(tick.Time))
			scene.Frame(tick, canvas)
			if err := canvas.Err(); err != nil {
				return fmt.Errorf("кадр %d: %w", i, err)
			}

			buf := p.pool.Get(rect)
			if err := canvas.CopyTo(buf); err != nil {
				p.pool.Put(buf)
				return err
			}
			select {
			case ch <- video.NewFrame(i, tick.Time, buf, p.pool.Put):
			case <-gctx.Done():
				p.pool.Put(buf)
				return gctx.Err()
			}
			if (i+1)%cfg.FPS == 0 || i+1 == frames {
				fmt.Printf("[>] Кадры: %d/%d\n", i+1, frames)
			}
		}
		return nil
	})

	// 2. Вывод: энкодер или PNG-последовательность
	g.Go(func() error {
		for f := range ch {
			if err := p.Sink.WriteFrame(gctx, f); err != nil {
				return err
			}
		}
		return nil
	})

	runErr := g.Wait()
	renderEnd := time.Now()
	for f := range ch {
		f.Release()
	}
	closeErr := p.Sink.Close()
	if runErr != nil {
		return runErr
	}
	if closeErr != nil {
		return fmt.Errorf("ошибка завершения вывода: %w", closeErr)
	}

	if cfg.ShowStats {
		p.report(frames, time.Since(startTime), renderEnd.Sub(renderStart))
	}
	return nil
}

// resolveTimeline returns the render length. A story without a timeline
// gets a generated one; a story timeline is stretched to the requested
// duration.
func (p *Project) resolveTimeline() float64 {
	st := p.Story
	cfg := p.Config
	p.scale = 1

	if len(st.Timeline) == 0 {
		duration := cfg.Duration
		if duration <= 0 {
			total := 0.0
			for _, h := range st.Heights() {
				total += h
			}
			duration = total * SecondsPerViewport
		}
		st.Timeline = story.GenerateTimeline(st.Heights(), duration, cfg.Hold)
		fmt.Printf("[*] Таймлайн сгенерирован: %d ключевых кадров на %.2fs\n", len(st.Timeline), duration)
		return duration
	}

	storyDur := st.Duration()
	if cfg.Duration <= 0 || storyDur <= 0 {
		return storyDur
	}
	p.scale = storyDur / cfg.Duration
	fmt.Printf("[*] Таймлайн масштабирован под длительность (x%.3f): %.2fs\n", 1/p.scale, cfg.Duration)
	return cfg.Duration
}

// waitAssets blocks until every requested picture finished loading or
// timeout passes, then reports the store state. A nil store is a no-op.
func waitAssets(ctx context.Context, assets *asset.Store, timeout time.Duration) {
	if assets == nil {
		return
	}
	wctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := assets.Wait(wctx); err != nil {
		log.Printf("[!] Не все ресурсы успели загрузиться: %v", err)
	}
	total, ready, failed := assets.Stats()
	fmt.Printf("[*] Ресурсы: %d готово, %d с ошибкой, всего %d\n", ready, failed, total)
}

// scrollAt maps render time to the story scroll position in viewport heights
func (p *Project) scrollAt(t float64) float64 {
	return p.Story.ScrollAt(t * p.scale)
}

func (p *Project) report(frames int, total, render time.Duration) {
	cfg := p.Config
	fps := float64(frames) / total.Seconds()

	stats, err := system.ProcessStats()
	if err != nil {
		log.Printf("[!] Не удалось получить статистику процесса: %v", err)
	}

	fmt.Printf("--- [PERFORMANCE REPORT] ---\n"+
		"Build: %s\n"+
		"Total Time: %.2fs\n"+
		"Rendering: %.2fs\n"+
		"Effective FPS: %.2f\n"+
		"%s\n"+
		"----------------------------\n",
		cfg.BuildVersion, total.Seconds(), render.Seconds(), fps, stats)

	logEntry := fmt.Sprintf("[%s] Build: %s | Story: %s | Frames: %d | Total: %.2fs | Render: %.2fs | FPS: %.2f | %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		cfg.BuildVersion,
		filepath.Base(cfg.StoryPath),
		frames,
		total.Seconds(),
		render.Seconds(),
		fps,
		stats,
	)

	f, err := os.OpenFile(BenchmarkLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Printf("[!] Не удалось записать %s: %v\n", BenchmarkLog, err)
		return
	}
	f.WriteString(logEntry)
	f.Close()
}
