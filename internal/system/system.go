package system

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"
)

var audioExtensions = []string{".mp3", ".wav", ".m4a", ".ogg", ".aac", ".flac"}

// Файлов открыто сразу много: PNG-воркеры и загрузчики ресурсов
const openFiles = 4096

// InitResourceLimits raises the soft open file limit toward openFiles
func InitResourceLimits() {
	var lim syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &lim); err != nil {
		log.Printf("[!] Не удалось получить лимит файлов: %v", err)
		return
	}
	if lim.Cur >= openFiles {
		return
	}

	lim.Cur = min(uint64(openFiles), lim.Max)
	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &lim); err != nil {
		log.Printf("[!] Не удалось установить лимит файлов: %v", err)
		return
	}
	fmt.Printf("[*] Лимит открытых файлов: %d\n", lim.Cur)
}

// FindLatest returns the newest file in dir with one of the extensions
func FindLatest(dir string, extensions ...string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var newest string
	var newestMod time.Time
	for _, e := range entries {
		if e.IsDir() || !hasExtension(e.Name(), extensions) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if mod := info.ModTime(); newest == "" || mod.After(newestMod) {
			newest, newestMod = filepath.Join(dir, e.Name()), mod
		}
	}

	if newest == "" {
		return "", fmt.Errorf("в папке %s не найдено файлов %s", dir, strings.Join(extensions, ", "))
	}
	return newest, nil
}

func FindLatestAudio(dir string) (string, error) {
	return FindLatest(dir, audioExtensions...)
}

func hasExtension(name string, extensions []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// GetAudioDuration asks ffprobe for the length of an audio file in seconds
func GetAudioDuration(path string) (float64, error) {
	out, err := exec.Command("ffprobe", "-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1", path).CombinedOutput()
	text := strings.TrimSpace(string(out))
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w: %s", path, err, text)
	}
	duration, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: bad duration %q", path, text)
	}
	return duration, nil
}

// listEncoders asks ffmpeg for its encoder list
var listEncoders = func() ([]byte, error) {
	return exec.Command("ffmpeg", "-hide_banner", "-encoders").CombinedOutput()
}

var bestEncoder = sync.OnceValue(probeEncoder)

// GetBestH264Encoder prefers VideoToolbox, then NVENC, then libx264.
// ffmpeg is asked once per process.
func GetBestH264Encoder() string {
	return bestEncoder()
}

func probeEncoder() string {
	out, err := listEncoders()
	if err != nil {
		return "libx264"
	}
	return pickEncoder(string(out))
}

func pickEncoder(list string) string {
	for _, name := range []string{"h264_videotoolbox", "h264_nvenc"} {
		if strings.Contains(list, name) {
			return name
		}
	}
	return "libx264"
}

// DefaultQuality is the quality setting each encoder starts from
func DefaultQuality(encoder string) int {
	switch encoder {
	case "h264_videotoolbox":
		return 75 // Хорошее качество для VideoToolbox
	case "h264_nvenc":
		return 28 // Эквивалент CRF для NVENC
	default:
		return 23 // Стандартный CRF для x264
	}
}
