package server

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ivlev/scroll2video/internal/asset"
	"github.com/ivlev/scroll2video/internal/story"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func get(t *testing.T, r http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := New(story.Default(), nil).Router()
	w := get(t, r, "/health")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "ok") {
		t.Errorf("Unexpected response %d %s", w.Code, w.Body.String())
	}
}

func TestStoryInfo(t *testing.T) {
	st := story.Default()
	r := New(st, nil).Router()
	w := get(t, r, "/story")
	if w.Code != http.StatusOK {
		t.Fatalf("Unexpected status %d", w.Code)
	}

	var info storyInfo
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatal(err)
	}
	if len(info.Sections) != len(st.Sections) {
		t.Fatalf("Expected %d sections, got %d", len(st.Sections), len(info.Sections))
	}
	total := 0.0
	for i, sec := range info.Sections {
		if sec.Offset != total {
			t.Errorf("Section %d: expected offset %f, got %f", i, total, sec.Offset)
		}
		total += sec.Height
	}
	if info.Document != total {
		t.Errorf("Expected document height %f, got %f", total, info.Document)
	}
}

func TestFramePNG(t *testing.T) {
	r := New(story.Default(), nil).Router()
	w := get(t, r, "/frame.png?y=2&w=64&h=48&settle=2")
	if w.Code != http.StatusOK {
		t.Fatalf("Unexpected status %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Unexpected content type %q", ct)
	}
	img, err := png.Decode(w.Body)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("Unexpected size %v", b)
	}
}

func TestFrameSVG(t *testing.T) {
	r := New(story.Default(), nil).Router()
	w := get(t, r, "/frame.svg?y=0&w=200&h=120&settle=1")
	if w.Code != http.StatusOK {
		t.Fatalf("Unexpected status %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "<svg") || !strings.Contains(body, "</svg>") {
		t.Errorf("Expected a complete svg document, got %.80s", body)
	}
}

func TestFrameReproducible(t *testing.T) {
	r := New(story.Default(), nil).Router()
	url := "/frame.svg?y=4&w=200&h=120&settle=3"
	a := get(t, r, url).Body.String()
	b := get(t, r, url).Body.String()
	if a != b {
		t.Error("Expected identical frames for identical requests")
	}
}

func TestFrameWaitsForAssets(t *testing.T) {
	assets := asset.NewStore("", 2)
	defer assets.Close()
	r := New(story.Default(), assets).Router()

	// The era chart enters the viewport with a portrait on every point
	url := "/frame.svg?y=23.8&w=320&h=200&settle=1"
	first := get(t, r, url)
	if first.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", first.Code)
	}
	if !strings.Contains(first.Body.String(), "data:image/png") {
		t.Error("Expected the first frame to embed the loaded portraits")
	}
	if second := get(t, r, url); second.Body.String() != first.Body.String() {
		t.Error("Expected the first and a later frame to match")
	}
}

func TestFrameBadQuery(t *testing.T) {
	r := New(story.Default(), nil).Router()
	for _, url := range []string{
		"/frame.png?w=5",
		"/frame.png?h=99999",
		"/frame.png?y=-1",
		"/frame.svg?settle=abc",
	} {
		t.Run(url, func(t *testing.T) {
			w := get(t, r, url)
			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", w.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body["error"] == "" {
				t.Errorf("Expected a JSON error, got %s", w.Body.String())
			}
		})
	}
}
