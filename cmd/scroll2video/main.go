package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/gogpu/gg"

	"github.com/ivlev/scroll2video/internal/analyzer"
	"github.com/ivlev/scroll2video/internal/asset"
	"github.com/ivlev/scroll2video/internal/config"
	"github.com/ivlev/scroll2video/internal/effects"
	"github.com/ivlev/scroll2video/internal/engine"
	"github.com/ivlev/scroll2video/internal/preview"
	"github.com/ivlev/scroll2video/internal/server"
	"github.com/ivlev/scroll2video/internal/story"
	"github.com/ivlev/scroll2video/internal/system"
	"github.com/ivlev/scroll2video/internal/video"
)

// Задается при сборке: -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	// Создаем нужные директории, если их нет
	dirs := []string{"stories", "assets", "input/audio", "output"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	storyPtr := flag.String("story", "", "Путь к YAML истории (по умолчанию: самый свежий файл в stories/, иначе встроенная история)")
	assetsPtr := flag.String("assets", "assets", "Папка с портретами и страницами")
	outputPtr := flag.String("out", "", "Путь к видео (если пусто, генерируется автоматически в output/)")
	pngPtr := flag.String("png", "", "Писать PNG-последовательность в папку вместо видео")
	durationPtr := flag.Float64("duration", 0, "Общая длительность видео (если 0, берется из таймлайна истории)")
	holdPtr := flag.Float64("hold", 1.5, "Пауза в начале и в конце сгенерированного таймлайна (сек)")
	widthPtr := flag.Int("width", 0, "Ширина (0 - из истории)")
	heightPtr := flag.Int("height", 0, "Высота (0 - из истории)")
	fpsPtr := flag.Int("fps", 0, "FPS (0 - из истории)")
	presetPtr := flag.String("preset", "", "Пресет формата: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
	workersPtr := flag.Int("workers", system.DefaultWorkers(), "Потоки")
	seedPtr := flag.Int64("seed", 0, "Зерно случайного выбора (0 - из истории)")
	fadePtr := flag.Float64("fade", 0.5, "Затемнение в начале и в конце видео (сек)")
	dpiPtr := flag.Int("dpi", asset.DefaultDPI, "DPI для страниц PDF")
	trimPtr := flag.String("trim", "edges", "Обрезка полей страниц PDF: edges, none")
	audioPtr := flag.String("audio", "", "Путь к аудио (по умолчанию: самый свежий файл в input/audio/)")
	audioSyncPtr := flag.Bool("audio-sync", true, "Синхронизировать длительность видео с аудио")
	qualityPtr := flag.Int("quality", 0, "Качество видео (0 - авто, x264: CRF 1-51, VideoToolbox: битрейт = Q*100кбит/с)")
	statsPtr := flag.Bool("stats", false, "Показать отчет о производительности и дописать его в benchmark.log")
	previewPtr := flag.Bool("preview", false, "Интерактивный просмотр в терминале")
	servePtr := flag.String("serve", "", "Отдавать кадры по HTTP на адресе (например, :8080)")
	genPtr := flag.Bool("gen-timeline", false, "Сгенерировать таймлайн и записать историю в YAML")
	debugPtr := flag.Bool("debug", false, "Подробный лог рендера")

	flag.Parse()

	if *debugPtr {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		slog.SetDefault(logger)
		gg.SetLogger(logger)
	}

	width, height := *widthPtr, *heightPtr
	switch *presetPtr {
	case "16:9":
		width, height = 1280, 720
	case "9:16":
		width, height = 720, 1280
	case "4:5":
		width, height = 1080, 1350
	}

	cfg := &config.Config{
		StoryPath:        *storyPtr,
		AssetDir:         *assetsPtr,
		OutputPath:       *outputPtr,
		PNGDir:           *pngPtr,
		Width:            width,
		Height:           height,
		FPS:              *fpsPtr,
		Duration:         *durationPtr,
		Hold:             *holdPtr,
		Workers:          *workersPtr,
		Seed:             *seedPtr,
		FadeDuration:     *fadePtr,
		ShowStats:        *statsPtr,
		Preview:          *previewPtr,
		ServeAddr:        *servePtr,
		GenerateTimeline: *genPtr,
		Debug:            *debugPtr,
		BuildVersion:     version,
	}

	st := loadStory(cfg)
	if cfg.Seed != 0 {
		st.Seed = cfg.Seed
	}

	if cfg.GenerateTimeline {
		writeTimeline(cfg, st)
		return
	}

	store := asset.NewStore(cfg.AssetDir, cfg.Workers)
	store.SetPattern(st.Assets.Pattern, st.Assets.Count)
	store.SetDPI(*dpiPtr)
	detector, err := analyzer.NewDetector(*trimPtr)
	if err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}
	store.SetTrim(detector)
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case cfg.ServeAddr != "":
		if err := server.New(st, store).Run(cfg.ServeAddr); err != nil {
			log.Fatalf("[-] Ошибка сервера: %v", err)
		}
		return
	case cfg.Preview:
		fps := cfg.FPS
		if fps <= 0 {
			fps = st.FPS
		}
		if err := preview.New(st, store, fps).Run(ctx); err != nil {
			log.Fatalf("[-] Ошибка превью: %v", err)
		}
		return
	}

	// Обработка аудио
	audioPath := *audioPtr
	if audioPath == "" {
		latest, err := system.FindLatestAudio("input/audio")
		if err == nil {
			audioPath = latest
			fmt.Printf("[*] Выбрано аудио: %s\n", audioPath)
		}
	}
	cfg.AudioPath = audioPath

	if audioPath != "" && *audioSyncPtr && cfg.Duration == 0 {
		audioDur, err := system.GetAudioDuration(audioPath)
		if err == nil {
			cfg.Duration = audioDur
			fmt.Printf("[*] Длительность видео установлена по аудио: %.2fs\n", cfg.Duration)
		} else {
			log.Printf("[!] Не удалось получить длительность аудио: %v", err)
		}
	}

	var sink video.FrameSink
	var pngs *video.PNGWriter
	if cfg.PNGDir != "" {
		pngs = video.NewPNGWriter(cfg.PNGDir, cfg.Workers)
		sink = pngs
	} else {
		if cfg.OutputPath == "" {
			cfg.OutputPath = outputName(cfg.StoryPath)
		}

		cfg.VideoEncoder = system.GetBestH264Encoder()
		if cfg.VideoEncoder != "libx264" {
			fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", cfg.VideoEncoder)
		}
		cfg.Quality = *qualityPtr
		if cfg.Quality == 0 {
			cfg.Quality = system.DefaultQuality(cfg.VideoEncoder)
		}
		sink = video.NewFFmpegEncoder(cfg.OutputPath, &effects.DefaultEffect{})
	}

	project := engine.NewProject(cfg, st, store, sink)
	if err := project.Run(ctx); err != nil {
		log.Fatalf("[-] Ошибка проекта: %v", err)
	}

	if pngs != nil {
		fmt.Printf("[+++] Успех! Кадров: %d в %s\n", pngs.Written(), cfg.PNGDir)
	} else {
		fmt.Printf("[+++] Успех! Результат: %s\n", cfg.OutputPath)
	}
}

// loadStory reads -story, or the newest story in stories/, or falls back to
// the built-in one
func loadStory(cfg *config.Config) *story.Story {
	if cfg.StoryPath == "" {
		latest, err := story.FindLatest("stories")
		if errors.Is(err, story.ErrNoStory) {
			fmt.Println("[*] Историй нет, используется встроенная")
			return story.Default()
		}
		if err != nil {
			log.Fatalf("[-] Ошибка: %v", err)
		}
		cfg.StoryPath = latest
		fmt.Printf("[*] Выбрана история: %s\n", cfg.StoryPath)
	}

	st, err := story.Read(cfg.StoryPath)
	if err != nil {
		log.Fatalf("[-] Ошибка загрузки истории: %v", err)
	}
	return st
}

func writeTimeline(cfg *config.Config, st *story.Story) {
	duration := cfg.Duration
	if duration <= 0 {
		for _, h := range st.Heights() {
			duration += h * engine.SecondsPerViewport
		}
	}
	st.Timeline = story.GenerateTimeline(st.Heights(), duration, cfg.Hold)

	path := cfg.StoryPath
	if path == "" {
		path = story.GeneratePath("stories")
	}
	if err := story.Write(st, path); err != nil {
		log.Fatalf("[-] Ошибка записи истории: %v", err)
	}
	fmt.Printf("[+] Таймлайн (%d ключевых кадров, %.2fs) записан в %s\n", len(st.Timeline), duration, path)
}

func outputName(storyPath string) string {
	nameOnly := "story"
	if storyPath != "" {
		baseName := filepath.Base(storyPath)
		nameOnly = strings.TrimSuffix(baseName, filepath.Ext(baseName))
	}
	cleanName := strings.ReplaceAll(nameOnly, " ", "_")
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join("output", fmt.Sprintf("%s_%s.mp4", cleanName, timestamp))
}
