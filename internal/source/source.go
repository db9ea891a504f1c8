// Package source rasterizes page documents (PDF files, image folders)
// one page at a time for the flip-book.
package source

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

type Pages interface {
	PageCount() int
	Render(index int, dpi int) (image.Image, error)
	Close() error
}

// Open picks the page source for path: a directory of images or a PDF
func Open(path string) (Pages, error) {
	if isDir(path) {
		return NewFolder(path)
	}
	return NewPDF(path)
}

// PDF renders pages with MuPDF. The document kept open answers page
// counts; every render opens its own handle so renders may run in
// parallel.
type PDF struct {
	doc  *fitz.Document
	path string
}

func NewPDF(path string) (*PDF, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf %s: %w", path, err)
	}
	return &PDF{doc: doc, path: path}, nil
}

func (p *PDF) PageCount() int {
	return p.doc.NumPage()
}

func (p *PDF) Render(index int, dpi int) (image.Image, error) {
	if index < 0 || index >= p.PageCount() {
		return nil, fmt.Errorf("page %d out of range (%d pages)", index, p.PageCount())
	}
	doc, err := fitz.New(p.path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()
	return doc.ImageDPI(index, float64(dpi))
}

func (p *PDF) Close() error {
	return p.doc.Close()
}
