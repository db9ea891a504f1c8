// Package server renders single frames of a story over HTTP
package server

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ivlev/scroll2video/internal/asset"
	"github.com/ivlev/scroll2video/internal/engine"
	"github.com/ivlev/scroll2video/internal/scroll"
	"github.com/ivlev/scroll2video/internal/story"
	"github.com/ivlev/scroll2video/internal/surface"
	"github.com/ivlev/scroll2video/internal/surface/raster"
	"github.com/ivlev/scroll2video/internal/surface/vector"
)

// How long a frame request waits for the pictures of its scene
var AssetTimeout = 10 * time.Second

// Frame size and settle limits
const (
	MinSize   = 16
	MaxSize   = 4096
	MaxSettle = 600
)

// Server serves frames of one story. Every request mounts its own scene,
// so requests never share state besides the read-only asset store.
type Server struct {
	Story  *story.Story
	Assets *asset.Store
}

func New(st *story.Story, assets *asset.Store) *Server {
	return &Server{Story: st, Assets: assets}
}

// Router registers the routes on a fresh gin engine
func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/story", s.StoryInfo)
	r.GET("/frame.png", s.FramePNG)
	r.GET("/frame.svg", s.FrameSVG)
	return r
}

// Run blocks serving on addr
func (s *Server) Run(addr string) error {
	fmt.Printf("[*] Сервер кадров: http://%s\n", addr)
	return s.Router().Run(addr)
}

type sectionInfo struct {
	Index  int     `json:"index"`
	Kind   string  `json:"kind"`
	Name   string  `json:"name,omitempty"`
	Offset float64 `json:"offset"`
	Height float64 `json:"height"`
}

type storyInfo struct {
	Title    string        `json:"title"`
	Seed     int64         `json:"seed"`
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	FPS      int           `json:"fps"`
	Document float64       `json:"document"`
	Duration float64       `json:"duration"`
	Sections []sectionInfo `json:"sections"`
}

// StoryInfo returns the section stack. Offsets and heights are in viewport
// heights.
func (s *Server) StoryInfo(c *gin.Context) {
	st := s.Story
	layout := scroll.NewLayout(scroll.Viewport{Width: float64(st.Width), Height: float64(st.Height)}, st.Heights()...)
	info := storyInfo{
		Title:    st.Title,
		Seed:     st.Seed,
		Width:    st.Width,
		Height:   st.Height,
		FPS:      st.FPS,
		Document: layout.Height() / float64(st.Height),
		Duration: st.Duration(),
	}
	for i, spec := range st.Sections {
		info.Sections = append(info.Sections, sectionInfo{
			Index:  i,
			Kind:   spec.Kind,
			Name:   spec.Name,
			Offset: layout.OffsetVH(i),
			Height: spec.Height,
		})
	}
	c.JSON(http.StatusOK, info)
}

// frameRequest is the query of a frame: scroll in viewport heights, pixel
// size and the number of frames stepped at that scroll before drawing
type frameRequest struct {
	Y      float64
	W, H   int
	Settle int
}

func (s *Server) parseFrame(c *gin.Context) (frameRequest, error) {
	req := frameRequest{W: s.Story.Width, H: s.Story.Height, Settle: s.Story.FPS}
	var err error
	if v := c.Query("y"); v != "" {
		if req.Y, err = strconv.ParseFloat(v, 64); err != nil || req.Y < 0 {
			return req, fmt.Errorf("invalid y %q", v)
		}
	}
	for _, p := range []struct {
		key      string
		dst      *int
		min, max int
	}{
		{"w", &req.W, MinSize, MaxSize},
		{"h", &req.H, MinSize, MaxSize},
		{"settle", &req.Settle, 1, MaxSettle},
	} {
		v := c.Query(p.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < p.min || n > p.max {
			return req, fmt.Errorf("%s must be an integer in [%d, %d]", p.key, p.min, p.max)
		}
		*p.dst = n
	}
	return req, nil
}

// render steps a fresh scene at the requested scroll and paints the last
// frame onto dst
func (s *Server) render(ctx context.Context, req frameRequest, dst surface.Surface) error {
	scene, err := engine.NewScene(s.Story, s.Assets)
	if err != nil {
		return err
	}
	scene.Mount(scroll.Viewport{Width: float64(req.W), Height: float64(req.H)})
	defer scene.Unmount()

	if s.Assets != nil {
		wctx, cancel := context.WithTimeout(ctx, AssetTimeout)
		err := s.Assets.Wait(wctx)
		cancel()
		if err != nil {
			log.Printf("[!] Кадр рисуется без части ресурсов: %v", err)
		}
	}
	scene.SetScrollVH(req.Y)

	clock := engine.Clock{FPS: max(s.Story.FPS, 1)}
	for i := 0; i < req.Settle; i++ {
		scene.Frame(clock.Tick(i), dst)
	}
	return nil
}

func (s *Server) FramePNG(c *gin.Context) {
	req, err := s.parseFrame(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	canvas, err := raster.New(req.W, req.H)
	if err == nil {
		err = s.render(c.Request.Context(), req, canvas)
	}
	var buf bytes.Buffer
	if err == nil {
		err = canvas.EncodePNG(&buf)
	}
	if err == nil {
		err = canvas.Err()
	}
	if err != nil {
		log.Printf("[!] Ошибка рендера кадра: %v", err)
		RespondError(c, http.StatusInternalServerError, "не удалось отрисовать кадр")
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) FrameSVG(c *gin.Context) {
	req, err := s.parseFrame(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	doc := vector.New(req.W, req.H)
	if err := s.render(c.Request.Context(), req, doc); err != nil {
		log.Printf("[!] Ошибка рендера кадра: %v", err)
		RespondError(c, http.StatusInternalServerError, "не удалось отрисовать кадр")
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", doc.Finish())
}
