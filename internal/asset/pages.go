package asset

import (
	"errors"
	"image"
	"sync"

	"github.com/ivlev/scroll2video/internal/source"
)

// pageCache keeps one open page source per document path
type pageCache struct {
	mu   sync.Mutex
	docs map[string]source.Pages
}

func newPageCache() *pageCache {
	return &pageCache{docs: make(map[string]source.Pages)}
}

// render draws page n (1-based) of the document at path
func (c *pageCache) render(path string, n, dpi int) (image.Image, error) {
	c.mu.Lock()
	doc, ok := c.docs[path]
	if !ok {
		var err error
		doc, err = source.Open(path)
		if err != nil {
			c.mu.Unlock()
			return nil, err
		}
		c.docs[path] = doc
	}
	c.mu.Unlock()

	return doc.Render(n-1, dpi)
}

func (c *pageCache) close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var errs []error
	for path, doc := range c.docs {
		if err := doc.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(c.docs, path)
	}
	return errors.Join(errs...)
}
