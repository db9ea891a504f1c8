package effects

import (
	"fmt"
	"strings"

	"github.com/ivlev/scroll2video/internal/config"
)

// Effect builds the ffmpeg video filter applied to the frame stream
type Effect interface {
	GenerateFilter(params config.FrameParams) string
}

// DefaultEffect fits the frames into the output size and fades the whole
// clip in and out
type DefaultEffect struct{}

func (e *DefaultEffect) GenerateFilter(p config.FrameParams) string {
	filters := []string{
		fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease", p.Width, p.Height),
		fmt.Sprintf("pad=%d:%d:(ow-iw)/2:(oh-ih)/2", p.Width, p.Height),
	}

	fade := p.FadeDuration
	// Переход не может занимать больше трети ролика
	if fade > p.Duration/3 {
		fade = p.Duration / 3
	}
	if fade > 0 {
		filters = append(filters,
			fmt.Sprintf("fade=t=in:st=0:d=%f", fade),
			fmt.Sprintf("fade=t=out:st=%f:d=%f", p.Duration-fade, fade),
		)
	}

	filters = append(filters, "format=yuv420p")
	return strings.Join(filters, ",")
}
