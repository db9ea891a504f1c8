// Package story describes a scrollytelling document: the stack of
// sections, their captions and the scroll timeline that drives an offline
// render.
package story

import (
	"strconv"
)

// Section kinds understood by the renderer
const (
	KindOpening  = "opening"
	KindSystems  = "systems"
	KindGwageo   = "gwageo"
	KindPareto   = "pareto"
	KindEra      = "era"
	KindFlipbook = "flipbook"
)

var Kinds = []string{KindOpening, KindSystems, KindGwageo, KindPareto, KindEra, KindFlipbook}

// Story is a complete scroll document
type Story struct {
	Version  string        `yaml:"version"`
	Title    string        `yaml:"title"`
	Width    int           `yaml:"width"`
	Height   int           `yaml:"height"`
	FPS      int           `yaml:"fps"`
	Seed     int64         `yaml:"seed"`
	Assets   Assets        `yaml:"assets"`
	Sections []SectionSpec `yaml:"sections"`
	Timeline []Keyframe    `yaml:"timeline,omitempty"`
}

// Assets names the portrait set sections pick from
type Assets struct {
	Pattern string `yaml:"pattern"` // e.g. "gen:portrait:%d" or "union/Union-%d.png"
	Count   int    `yaml:"count"`
}

// SectionSpec is one full-viewport section of the stack
type SectionSpec struct {
	Kind     string            `yaml:"kind"`
	Name     string            `yaml:"name,omitempty"`
	Height   float64           `yaml:"height"` // in viewport heights
	Captions []Caption         `yaml:"captions,omitempty"`
	Options  map[string]string `yaml:"options,omitempty"`
}

// Caption overrides the text (and optionally the fade schedule) of one of
// the section's captions
type Caption struct {
	Key     string    `yaml:"key"`
	Lines   []string  `yaml:"lines"`
	At      []float64 `yaml:"at,omitempty"`
	Opacity []float64 `yaml:"opacity,omitempty"`
}

// Keyframe pins the scroll position (in viewport heights) at a time
type Keyframe struct {
	Time   float64 `yaml:"time"`             // seconds
	Scroll float64 `yaml:"scroll"`           // viewport heights
	Easing string  `yaml:"easing,omitempty"` // easing into this keyframe
}

// Option returns a string option or def
func (s SectionSpec) Option(key, def string) string {
	if v, ok := s.Options[key]; ok && v != "" {
		return v
	}
	return def
}

// IntOption returns an integer option or def when missing or malformed
func (s SectionSpec) IntOption(key string, def int) int {
	v, ok := s.Options[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Caption looks up a caption override by key
func (s SectionSpec) Caption(key string) (Caption, bool) {
	for _, c := range s.Captions {
		if c.Key == key {
			return c, true
		}
	}
	return Caption{}, false
}

// ApplyDefaults fills zero fields with the renderer defaults
func (s *Story) ApplyDefaults() {
	if s.Version == "" {
		s.Version = "1.0"
	}
	if s.Width == 0 {
		s.Width = 1280
	}
	if s.Height == 0 {
		s.Height = 720
	}
	if s.FPS == 0 {
		s.FPS = 30
	}
	if s.Assets.Pattern == "" {
		s.Assets.Pattern = "gen:portrait:%d"
	}
	if s.Assets.Count == 0 {
		s.Assets.Count = 49
	}
}

// Heights returns the section heights in viewport heights
func (s *Story) Heights() []float64 {
	out := make([]float64, len(s.Sections))
	for i, sec := range s.Sections {
		out[i] = sec.Height
	}
	return out
}

// Duration is the time of the last keyframe
func (s *Story) Duration() float64 {
	if len(s.Timeline) == 0 {
		return 0
	}
	return s.Timeline[len(s.Timeline)-1].Time
}
