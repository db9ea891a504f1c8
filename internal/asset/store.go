// Package asset loads the pictures sections draw: portraits, book pages
// and QR cards. Loading is asynchronous; a handle is usable the moment it
// is returned and becomes drawable once Ready reports true.
package asset

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/scroll2video/internal/analyzer"
)

var ErrUnknownScheme = errors.New("unknown asset scheme")

const DefaultDPI = 96

// Margin kept around the content of a trimmed page, in pixels
const pagePad = 12

// Handle is a shared, read-only picture
type Handle struct {
	id    string
	ready atomic.Bool
	done  chan struct{}
	img   image.Image
	err   error

	hrefOnce sync.Once
	href     string
}

func newHandle(id string) *Handle {
	return &Handle{id: id, done: make(chan struct{})}
}

func (h *Handle) ID() string { return h.id }

// Ready reports whether the picture finished loading successfully
func (h *Handle) Ready() bool { return h.ready.Load() }

// Image returns the decoded picture, or nil while not ready
func (h *Handle) Image() image.Image {
	if !h.Ready() {
		return nil
	}
	return h.img
}

// Href returns the picture as an inline PNG data URI for retained hosts
func (h *Handle) Href() string {
	if !h.Ready() {
		return ""
	}
	h.hrefOnce.Do(func() {
		var buf bytes.Buffer
		if err := png.Encode(&buf, h.img); err != nil {
			log.Printf("[!] Не удалось закодировать %s: %v", h.id, err)
			return
		}
		h.href = "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	})
	return h.href
}

// Err returns the load error once loading finished
func (h *Handle) Err() error {
	select {
	case <-h.done:
		return h.err
	default:
		return nil
	}
}

// Done is closed when loading finished, successfully or not
func (h *Handle) Done() <-chan struct{} { return h.done }

func (h *Handle) finish(img image.Image, err error) {
	h.img, h.err = img, err
	if err == nil && img != nil {
		h.ready.Store(true)
	}
	close(h.done)
}

// Store caches handles by id. Loads run in the background, at most
// Workers at a time.
type Store struct {
	dir     string
	pattern string
	count   int
	dpi     int
	trim    analyzer.Detector

	mu      sync.Mutex
	handles map[string]*Handle
	sem     chan struct{}
	loaders sync.WaitGroup
	pages   *pageCache
}

// NewStore creates a store that resolves relative paths against dir
func NewStore(dir string, workers int) *Store {
	if workers < 1 {
		workers = 1
	}
	return &Store{
		dir:     dir,
		pattern: "gen:portrait:%d",
		count:   50,
		dpi:     DefaultDPI,
		handles: make(map[string]*Handle),
		sem:     make(chan struct{}, workers),
		pages:   newPageCache(),
	}
}

// SetPattern sets the id template used by Indexed and the number of
// pictures behind it
func (s *Store) SetPattern(pattern string, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pattern != "" {
		s.pattern = pattern
	}
	if count > 0 {
		s.count = count
	}
}

// SetDPI sets the resolution for document pages
func (s *Store) SetDPI(dpi int) {
	if dpi > 0 {
		s.dpi = dpi
	}
}

// SetTrim crops document pages to the content found by d; nil keeps the
// whole page
func (s *Store) SetTrim(d analyzer.Detector) {
	s.trim = d
}

// Count is the number of pictures behind the pattern
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Get returns the handle for id and starts loading it on first use.
// It never blocks on the load.
func (s *Store) Get(id string) *Handle {
	s.mu.Lock()
	h, ok := s.handles[id]
	if !ok {
		h = newHandle(id)
		s.handles[id] = h
		s.loaders.Add(1)
		go s.load(h)
	}
	s.mu.Unlock()
	return h
}

// Indexed resolves n through the pattern, e.g. 7 -> "gen:portrait:7"
func (s *Store) Indexed(n int) *Handle {
	s.mu.Lock()
	pattern := s.pattern
	s.mu.Unlock()
	if !strings.Contains(pattern, "%") {
		return s.Get(pattern)
	}
	return s.Get(fmt.Sprintf(pattern, n))
}

// Wait blocks until every requested handle finished loading or ctx ends.
// Failed loads are not an error here: they were reported when they
// happened and their handles stay unready.
func (s *Store) Wait(ctx context.Context) error {
	s.mu.Lock()
	pending := make([]*Handle, 0, len(s.handles))
	for _, h := range s.handles {
		pending = append(pending, h)
	}
	s.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	for _, h := range pending {
		g.Go(func() error {
			select {
			case <-h.Done():
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}
	return g.Wait()
}

// Stats returns the number of requested, ready and failed handles
func (s *Store) Stats() (total, ready, failed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.handles {
		total++
		if h.Ready() {
			ready++
		} else if h.Err() != nil {
			failed++
		}
	}
	return
}

// Close waits for running loads and releases open documents
func (s *Store) Close() error {
	s.loaders.Wait()
	return s.pages.close()
}

func (s *Store) load(h *Handle) {
	defer s.loaders.Done()
	s.sem <- struct{}{}
	defer func() { <-s.sem }()

	img, err := s.decode(h.id)
	if err != nil {
		log.Printf("[!] Не удалось загрузить %s: %v", h.id, err)
	}
	h.finish(img, err)
}

func (s *Store) decode(id string) (image.Image, error) {
	scheme, rest, ok := strings.Cut(id, ":")
	if !ok || len(scheme) == 1 {
		// plain path (a one-letter scheme is a Windows drive)
		return loadFile(s.resolve(id))
	}

	switch scheme {
	case "gen":
		kind, num, _ := strings.Cut(rest, ":")
		n, err := strconv.Atoi(num)
		if err != nil {
			return nil, fmt.Errorf("bad generated asset %q: %w", id, err)
		}
		switch kind {
		case "portrait":
			return Portrait(n), nil
		case "page":
			return Page(n)
		}
		return nil, fmt.Errorf("%w: gen:%s", ErrUnknownScheme, kind)
	case "qr":
		return QRCode(rest)
	case "pdf":
		path, num, ok := strings.Cut(rest, "#")
		if !ok {
			return nil, fmt.Errorf("pdf asset %q needs a #page suffix", id)
		}
		n, err := strconv.Atoi(num)
		if err != nil {
			return nil, fmt.Errorf("bad page number in %q: %w", id, err)
		}
		img, err := s.pages.render(s.resolve(path), n, s.dpi)
		if err != nil || s.trim == nil {
			return img, err
		}
		return analyzer.Trim(s.trim, img, pagePad), nil
	case "file":
		return loadFile(s.resolve(rest))
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownScheme, scheme)
}

func (s *Store) resolve(path string) string {
	if filepath.IsAbs(path) || s.dir == "" {
		return path
	}
	return filepath.Join(s.dir, path)
}
