package asset

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func waitStore(t *testing.T, s *Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Wait(ctx); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
}

func TestGetIsCachedAndAsync(t *testing.T) {
	s := NewStore("", 2)
	defer s.Close()

	a := s.Get("gen:portrait:3")
	b := s.Get("gen:portrait:3")
	if a != b {
		t.Error("Same id should return the same handle")
	}

	waitStore(t, s)
	if !a.Ready() {
		t.Fatalf("Portrait should be ready, err=%v", a.Err())
	}
	if got := a.Image().Bounds().Dx(); got != portraitSize {
		t.Errorf("Expected %dpx portrait, got %d", portraitSize, got)
	}
	if !strings.HasPrefix(a.Href(), "data:image/png;base64,") {
		t.Errorf("Unexpected href prefix: %.30s", a.Href())
	}
}

func TestSchemes(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 7, 9))
	f, err := os.Create(filepath.Join(dir, "Union-1.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	s := NewStore(dir, 4)
	defer s.Close()

	tests := []struct {
		id    string
		ready bool
		width int
	}{
		{"gen:portrait:1", true, portraitSize},
		{"gen:page:2", true, pageWidth},
		{"qr:https://example.com/scroll", true, qrSize},
		{"Union-1.png", true, 7},
		{"file:Union-1.png", true, 7},
		{"missing.png", false, 0},
		{"gen:planet:1", false, 0},
		{"ftp:thing", false, 0},
		{"pdf:book.pdf", false, 0},
	}

	handles := make([]*Handle, len(tests))
	for i, tt := range tests {
		handles[i] = s.Get(tt.id)
		if handles[i].Ready() && handles[i].Image() == nil {
			t.Errorf("%s: ready handle without image", tt.id)
		}
	}
	waitStore(t, s)

	for i, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			h := handles[i]
			if h.Ready() != tt.ready {
				t.Fatalf("Ready() = %v, err = %v", h.Ready(), h.Err())
			}
			if !tt.ready {
				if h.Err() == nil {
					t.Error("Failed load should keep its error")
				}
				if h.Image() != nil || h.Href() != "" {
					t.Error("Unready handle must not expose a picture")
				}
				return
			}
			if w := h.Image().Bounds().Dx(); w != tt.width {
				t.Errorf("Expected width %d, got %d", tt.width, w)
			}
		})
	}

	if !errors.Is(s.Get("ftp:thing").Err(), ErrUnknownScheme) {
		t.Errorf("Expected ErrUnknownScheme, got %v", s.Get("ftp:thing").Err())
	}

	total, ready, failed := s.Stats()
	t.Logf("Assets: %d total, %d ready, %d failed", total, ready, failed)
	if ready != 5 || failed != 4 {
		t.Errorf("Unexpected stats: %d/%d/%d", total, ready, failed)
	}
}

func TestIndexed(t *testing.T) {
	s := NewStore("", 1)
	defer s.Close()
	s.SetPattern("gen:portrait:%d", 49)

	if h := s.Indexed(12); h.ID() != "gen:portrait:12" {
		t.Errorf("Unexpected id %q", h.ID())
	}
	if s.Count() != 49 {
		t.Errorf("Expected count 49, got %d", s.Count())
	}

	s.SetPattern("Union.png", 0)
	if h := s.Indexed(3); h.ID() != "Union.png" {
		t.Errorf("Pattern without a verb should be used as is, got %q", h.ID())
	}
	waitStore(t, s)
}

func TestWaitHonoursContext(t *testing.T) {
	s := NewStore("", 1)
	defer s.Close()

	// hold the only loader slot so nothing can finish
	s.sem <- struct{}{}
	s.Get("gen:portrait:1")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := s.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline error, got %v", err)
	}
	<-s.sem
}

func TestPortraitDeterministic(t *testing.T) {
	a := Portrait(8).(*image.RGBA)
	b := Portrait(8).(*image.RGBA)
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatal("Generated portraits must be deterministic")
		}
	}
}
