package story

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriteRead(t *testing.T) {
	s := Default()
	s.Sections[1].Captions = []Caption{
		{Key: "lottery", Lines: []string{"Draw lots"}, At: []float64{0.8, 1.5, 2.0, 2.5}, Opacity: []float64{0, 1, 1, 0}},
	}

	path := filepath.Join(t.TempDir(), "story.yaml")
	if err := Write(s, path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.Title != s.Title || got.Seed != s.Seed {
		t.Errorf("Header mismatch: %+v", got)
	}
	if len(got.Sections) != len(s.Sections) {
		t.Fatalf("Section count mismatch: %d != %d", len(got.Sections), len(s.Sections))
	}
	if c, ok := got.Sections[1].Caption("lottery"); !ok || c.Lines[0] != "Draw lots" {
		t.Errorf("Caption override lost: %+v", got.Sections[1].Captions)
	}
	if got.Sections[4].IntOption("count", 0) != 16 {
		t.Errorf("Option lost: %v", got.Sections[4].Options)
	}
	if len(got.Timeline) != len(s.Timeline) {
		t.Errorf("Timeline length mismatch: %d != %d", len(got.Timeline), len(s.Timeline))
	}
}

func TestReadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "min.yaml")
	data := "sections:\n  - kind: opening\n    height: 1\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if s.Width != 1280 || s.Height != 720 || s.FPS != 30 {
		t.Errorf("Defaults not applied: %dx%d@%d", s.Width, s.Height, s.FPS)
	}
	if s.Assets.Pattern != "gen:portrait:%d" || s.Assets.Count != 49 {
		t.Errorf("Asset defaults not applied: %+v", s.Assets)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Story)
		wantErr string
	}{
		{"default is valid", func(s *Story) {}, ""},
		{"unknown kind", func(s *Story) { s.Sections[0].Kind = "carousel" }, "unknown kind"},
		{"zero height", func(s *Story) { s.Sections[2].Height = 0 }, "height must be positive"},
		{"no sections", func(s *Story) { s.Sections = nil }, "no sections"},
		{"timeline order", func(s *Story) { s.Timeline[2].Time = s.Timeline[1].Time }, "is not after"},
		{"caption schedule", func(s *Story) {
			s.Sections[1].Captions = []Caption{{Key: "x", At: []float64{0.5, 0.2}, Opacity: []float64{0, 1}}}
		}, "not greater"},
		{"caption lengths", func(s *Story) {
			s.Sections[1].Captions = []Caption{{Key: "x", At: []float64{0.5}, Opacity: []float64{0, 1}}}
		}, "breakpoints"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(s)
			err := s.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestScrollAt(t *testing.T) {
	s := &Story{Timeline: []Keyframe{
		{Time: 0, Scroll: 0},
		{Time: 2, Scroll: 0},
		{Time: 4, Scroll: 2},
		{Time: 6, Scroll: 3, Easing: "ease-in-out"},
	}}

	tests := []struct {
		t    float64
		want float64
	}{
		{-1, 0},
		{1, 0},
		{3, 1},
		{5, 2.5},
		{6, 3},
		{10, 3},
	}
	for _, tt := range tests {
		if got := s.ScrollAt(tt.t); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ScrollAt(%.1f) = %f, want %f", tt.t, got, tt.want)
		}
	}

	if (&Story{}).ScrollAt(3) != 0 {
		t.Error("Empty timeline should stay at the top")
	}
}

func TestGenerateTimeline(t *testing.T) {
	heights := []float64{1, 3, 2}
	tl := GenerateTimeline(heights, 20, 2)

	if tl[0].Time != 0 || tl[0].Scroll != 0 {
		t.Errorf("Timeline should start at the top: %+v", tl[0])
	}
	last := tl[len(tl)-1]
	if last.Time != 20 || last.Scroll != 5 {
		t.Errorf("Timeline should end at the bottom (5vh) at 20s: %+v", last)
	}
	for i := 1; i < len(tl); i++ {
		if tl[i].Time <= tl[i-1].Time {
			t.Errorf("Keyframe %d not after %d: %+v", i, i-1, tl)
		}
		if tl[i].Scroll < tl[i-1].Scroll {
			t.Errorf("Scroll must not go back at %d", i)
		}
	}
	s := &Story{Timeline: tl}
	if s.ScrollAt(1) != 0 {
		t.Error("Intro hold should rest at the top")
	}
	if s.ScrollAt(19) != 5 {
		t.Error("Outro hold should rest at the bottom")
	}
	for i, k := range tl {
		t.Logf("Keyframe %d: %.2fs -> %.2fvh %s", i, k.Time, k.Scroll, k.Easing)
	}

	short := GenerateTimeline(heights, 1, 2)
	if short[len(short)-1].Time != 1 {
		t.Errorf("Too short duration should drop the holds: %+v", short)
	}
}

func TestFindLatest(t *testing.T) {
	dir := t.TempDir()
	files := []string{"a.yaml", "b.yaml", "c.yml"}
	for i, name := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		mod := time.Now().Add(time.Duration(i) * time.Hour)
		if err := os.Chtimes(path, mod, mod); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "z.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	latest, err := FindLatest(dir)
	if err != nil {
		t.Fatalf("FindLatest failed: %v", err)
	}
	if filepath.Base(latest) != "c.yml" {
		t.Errorf("Expected c.yml, got %s", latest)
	}

	if _, err := FindLatest(t.TempDir()); !errors.Is(err, ErrNoStory) {
		t.Errorf("Expected ErrNoStory, got %v", err)
	}

	path := GeneratePath("stories")
	if !strings.HasPrefix(path, filepath.Join("stories", "story_")) || filepath.Ext(path) != ".yaml" {
		t.Errorf("Unexpected generated path %s", path)
	}
}

func TestDemoStory(t *testing.T) {
	s, err := Read(filepath.Join("..", "..", "stories", "demo.yaml"))
	if err != nil {
		t.Fatalf("demo story: %v", err)
	}
	if len(s.Sections) != len(Kinds) {
		t.Errorf("Expected every kind once, got %d sections", len(s.Sections))
	}
	total := 0.0
	for _, h := range s.Heights() {
		total += h
	}
	if end := s.ScrollAt(s.Duration()); end != total-1 {
		t.Errorf("Expected the timeline to end at the bottom (%f), got %f", total-1, end)
	}
}
