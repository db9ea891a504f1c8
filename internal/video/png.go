package video

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/scroll2video/internal/config"
)

// PNGWriter writes the frames as a numbered PNG sequence, encoding up to
// Workers frames at once
type PNGWriter struct {
	Dir     string
	Workers int

	g       *errgroup.Group
	ctx     context.Context
	written int
}

func NewPNGWriter(dir string, workers int) *PNGWriter {
	return &PNGWriter{Dir: dir, Workers: workers}
}

// FramePath is the file frame i is written to
func (w *PNGWriter) FramePath(i int) string {
	return filepath.Join(w.Dir, fmt.Sprintf("frame_%05d.png", i))
}

func (w *PNGWriter) Begin(ctx context.Context, _ config.FrameParams) error {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", w.Dir, err)
	}
	w.g, w.ctx = errgroup.WithContext(ctx)
	workers := w.Workers
	if workers < 1 {
		workers = 1
	}
	w.g.SetLimit(workers)
	w.written = 0
	return nil
}

// WriteFrame queues the frame and blocks while all workers are busy
func (w *PNGWriter) WriteFrame(ctx context.Context, f Frame) error {
	if w.g == nil {
		f.Release()
		return fmt.Errorf("png writer not started")
	}
	if err := w.ctx.Err(); err != nil {
		f.Release()
		return err
	}
	w.written++
	w.g.Go(func() error {
		defer f.Release()
		path := w.FramePath(f.Index)
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := png.Encode(file, f.Image); err != nil {
			file.Close()
			return fmt.Errorf("encode %s: %w", path, err)
		}
		return file.Close()
	})
	return nil
}

// Close waits for the queued frames and returns the first failure
func (w *PNGWriter) Close() error {
	if w.g == nil {
		return nil
	}
	err := w.g.Wait()
	w.g = nil
	return err
}

// Written is the number of frames accepted since Begin
func (w *PNGWriter) Written() int { return w.written }
