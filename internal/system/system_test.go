package system

import (
	"image"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestPickEncoder(t *testing.T) {
	tests := []struct {
		list string
		want string
	}{
		{" V....D h264_videotoolbox  VideoToolbox H.264 Encoder\n V....D libx264", "h264_videotoolbox"},
		{" V....D h264_nvenc  NVIDIA NVENC H.264 encoder\n V....D libx264", "h264_nvenc"},
		{" V....D libx264  libx264 H.264", "libx264"},
		{"", "libx264"},
	}
	for _, tt := range tests {
		if got := pickEncoder(tt.list); got != tt.want {
			t.Errorf("pickEncoder(%q) = %s, want %s", tt.list, got, tt.want)
		}
	}
}

func TestBestEncoderProbedOnce(t *testing.T) {
	calls := 0
	saved := listEncoders
	listEncoders = func() ([]byte, error) {
		calls++
		return []byte(" V....D h264_nvenc NVIDIA NVENC H.264 encoder"), nil
	}
	bestEncoder = sync.OnceValue(probeEncoder)
	t.Cleanup(func() {
		listEncoders = saved
		bestEncoder = sync.OnceValue(probeEncoder)
	})

	for i := 0; i < 3; i++ {
		if got := GetBestH264Encoder(); got != "h264_nvenc" {
			t.Errorf("Expected h264_nvenc, got %s", got)
		}
	}
	if calls != 1 {
		t.Errorf("Expected one ffmpeg probe, got %d", calls)
	}
}

func TestFindLatest(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().Add(-time.Hour)
	for i, name := range []string{"a.mp3", "b.WAV", "notes.txt"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		stamp := old.Add(time.Duration(i) * time.Minute)
		if err := os.Chtimes(path, stamp, stamp); err != nil {
			t.Fatal(err)
		}
	}

	got, err := FindLatestAudio(dir)
	if err != nil {
		t.Fatalf("FindLatestAudio: %v", err)
	}
	if filepath.Base(got) != "b.WAV" {
		t.Errorf("Expected b.WAV, got %s", got)
	}

	if _, err := FindLatest(dir, ".pdf"); err == nil {
		t.Error("Expected an error when nothing matches")
	}
}

func TestImagePoolReuse(t *testing.T) {
	pool := NewImagePool()
	rect := image.Rect(0, 0, 4, 3)

	img := pool.Get(rect)
	if img.Rect != rect || len(img.Pix) != 4*3*4 {
		t.Fatalf("Unexpected buffer %v with %d bytes", img.Rect, len(img.Pix))
	}
	pool.Put(img)

	// A buffer of a size never requested is dropped, not pooled
	pool.Put(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	if got := pool.Get(image.Rect(0, 0, 1, 1)); got.Rect.Dx() != 1 {
		t.Errorf("Unexpected buffer size %v", got.Rect)
	}
}

func TestDefaultQuality(t *testing.T) {
	if DefaultQuality("libx264") != 23 || DefaultQuality("h264_nvenc") != 28 || DefaultQuality("h264_videotoolbox") != 75 {
		t.Error("Unexpected default quality table")
	}
}
