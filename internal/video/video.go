package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os/exec"

	"github.com/ivlev/scroll2video/internal/config"
	"github.com/ivlev/scroll2video/internal/effects"
)

// Frame is one rendered frame on its way to a sink. The sink calls Release
// once it no longer reads Image.
type Frame struct {
	Index int
	Time  float64
	Image *image.RGBA
	done  func(*image.RGBA)
}

func NewFrame(index int, t float64, img *image.RGBA, release func(*image.RGBA)) Frame {
	return Frame{Index: index, Time: t, Image: img, done: release}
}

func (f Frame) Release() {
	if f.done != nil {
		f.done(f.Image)
	}
}

// FrameSink receives frames in index order
type FrameSink interface {
	Begin(ctx context.Context, params config.FrameParams) error
	WriteFrame(ctx context.Context, f Frame) error
	Close() error
}

// FFmpegEncoder pipes raw RGBA frames into a single ffmpeg process
type FFmpegEncoder struct {
	Output string
	Effect effects.Effect

	cmd   *exec.Cmd
	stdin io.WriteCloser
	log   bytes.Buffer
	size  image.Point
}

func NewFFmpegEncoder(output string, eff effects.Effect) *FFmpegEncoder {
	if eff == nil {
		eff = &effects.DefaultEffect{}
	}
	return &FFmpegEncoder{Output: output, Effect: eff}
}

func (e *FFmpegEncoder) Begin(ctx context.Context, params config.FrameParams) error {
	args := e.buildFFmpegArgs(params)
	e.cmd = exec.CommandContext(ctx, "ffmpeg", args...)
	e.cmd.Stdout = &e.log
	e.cmd.Stderr = &e.log
	e.size = image.Pt(params.Width, params.Height)

	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe error: %w", err)
	}
	e.stdin = stdin

	if err := e.cmd.Start(); err != nil {
		return fmt.Errorf("ffmpeg start error: %w", err)
	}
	return nil
}

func (e *FFmpegEncoder) buildFFmpegArgs(params config.FrameParams) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", params.Width, params.Height),
		"-framerate", fmt.Sprintf("%d", params.FPS),
		"-i", "-",
	}
	if params.AudioPath != "" {
		args = append(args, "-i", params.AudioPath)
	}

	args = append(args, "-vf", e.Effect.GenerateFilter(params))
	if params.AudioPath != "" {
		args = append(args, "-map", "0:v", "-map", "1:a", "-shortest")
	}
	args = append(args,
		"-r", fmt.Sprintf("%d", params.FPS),
		"-pix_fmt", "yuv420p",
		"-c:v", params.VideoEncoder,
	)

	// Качество в зависимости от энкодера
	switch params.VideoEncoder {
	case "h264_videotoolbox":
		bitrate := params.Quality * 100
		args = append(args, "-b:v", fmt.Sprintf("%dk", bitrate))
	case "h264_nvenc":
		args = append(args, "-cq", fmt.Sprintf("%d", params.Quality))
	default: // libx264
		args = append(args, "-crf", fmt.Sprintf("%d", params.Quality), "-preset", "medium")
	}

	args = append(args, e.Output)
	return args
}

func (e *FFmpegEncoder) WriteFrame(ctx context.Context, f Frame) error {
	defer f.Release()
	if e.stdin == nil {
		return fmt.Errorf("encoder not started")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.Image.Rect.Size() != e.size {
		return fmt.Errorf("frame %d is %v, encoder expects %v", f.Index, f.Image.Rect.Size(), e.size)
	}
	if err := writeRawRGBA(e.stdin, f.Image); err != nil {
		return fmt.Errorf("write raw error at frame %d: %w", f.Index, err)
	}
	return nil
}

// Close ends the stream and waits for ffmpeg to finish the file
func (e *FFmpegEncoder) Close() error {
	if e.cmd == nil {
		return nil
	}
	e.stdin.Close()
	err := e.cmd.Wait()
	e.cmd, e.stdin = nil, nil
	if err != nil {
		return fmt.Errorf("ffmpeg wait error: %w\nLog: %s", err, e.log.String())
	}
	return nil
}

func writeRawRGBA(w io.Writer, img *image.RGBA) error {
	width := img.Rect.Dx() * 4
	if img.Stride == width {
		_, err := w.Write(img.Pix[:width*img.Rect.Dy()])
		return err
	}
	for y := 0; y < img.Rect.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+width]
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
