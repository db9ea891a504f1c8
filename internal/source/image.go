package source

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "golang.org/x/image/webp"
)

var imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".webp": true}

// Folder serves the images of a directory as pages, sorted by name
type Folder struct {
	paths []string
}

func NewFolder(dir string) (*Folder, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return &Folder{paths: paths}, nil
}

func (f *Folder) PageCount() int {
	return len(f.paths)
}

func (f *Folder) Render(index int, _ int) (image.Image, error) {
	if index < 0 || index >= len(f.paths) {
		return nil, fmt.Errorf("page %d out of range (%d pages)", index, len(f.paths))
	}
	return Decode(f.paths[index])
}

func (f *Folder) Close() error {
	return nil
}

// Decode reads a png, jpeg or webp file
func Decode(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
