package config

type Config struct {
	StoryPath  string
	AssetDir   string
	OutputPath string
	PNGDir     string

	Width    int
	Height   int
	FPS      int
	Duration float64 // 0 takes the story timeline length
	Hold     float64 // rest at the top and bottom of a generated timeline

	VideoEncoder string
	Quality      int
	Workers      int
	Seed         int64 // 0 keeps the story seed
	FadeDuration float64
	AudioPath    string

	ShowStats        bool
	Preview          bool
	ServeAddr        string
	GenerateTimeline bool
	Debug            bool
	BuildVersion     string
}

// FrameParams is what an output stage needs to know about the frame stream
type FrameParams struct {
	Width, Height int
	FPS           int
	Frames        int
	Duration      float64
	FadeDuration  float64
	VideoEncoder  string
	Quality       int
	AudioPath     string
}

// Params derives the frame stream parameters for a render of n frames
func (c *Config) Params(n int) FrameParams {
	return FrameParams{
		Width:        c.Width,
		Height:       c.Height,
		FPS:          c.FPS,
		Frames:       n,
		Duration:     float64(n) / float64(c.FPS),
		FadeDuration: c.FadeDuration,
		VideoEncoder: c.VideoEncoder,
		Quality:      c.Quality,
		AudioPath:    c.AudioPath,
	}
}
