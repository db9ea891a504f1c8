package preview

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// clicker plays a short tick for every page flip. A nil clicker is silent.
type clicker struct{}

func newClicker() (*clicker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &clicker{}, nil
}

func (c *clicker) Play() {
	if c == nil {
		return
	}
	sine, err := generators.SineTone(sampleRate, 1320)
	if err != nil {
		return
	}
	tick := beep.Take(sampleRate.N(35*time.Millisecond), sine)
	speaker.Play(&effects.Volume{Streamer: tick, Base: 2, Volume: -2})
}

func (c *clicker) Close() {
	if c == nil {
		return
	}
	speaker.Close()
}
