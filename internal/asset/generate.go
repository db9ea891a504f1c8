package asset

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ivlev/scroll2video/internal/source"
)

const (
	portraitSize = 128
	pageWidth    = 480
	pageHeight   = 640
	qrSize       = 256
)

var portraitColors = []color.NRGBA{
	{R: 0xd9, G: 0x8c, B: 0x5f, A: 0xff},
	{R: 0x5f, G: 0x8f, B: 0xd9, A: 0xff},
	{R: 0x7b, G: 0xb6, B: 0x6e, A: 0xff},
	{R: 0xc9, G: 0x6e, B: 0xb6, A: 0xff},
	{R: 0xe0, G: 0xc0, B: 0x4e, A: 0xff},
	{R: 0x6e, G: 0xc4, B: 0xc0, A: 0xff},
	{R: 0xa0, G: 0x7a, B: 0x5a, A: 0xff},
}

// Portrait draws a deterministic stand-in face for index n
func Portrait(n int) image.Image {
	if n < 0 {
		n = -n
	}
	bg := portraitColors[n%len(portraitColors)]
	skin := portraitColors[(n/len(portraitColors)+3)%len(portraitColors)]

	dc := gg.NewContext(portraitSize, portraitSize)
	dc.ClearWithColor(gg.FromColor(bg))

	// shoulders
	dc.SetColor(color.NRGBA{R: 0x2c, G: 0x3e, B: 0x50, A: 0xff})
	dc.DrawEllipse(portraitSize/2, portraitSize*1.05, portraitSize*0.42, portraitSize*0.34)
	_ = dc.Fill()

	// head, slightly offset per index so neighbours differ
	dx := float64(n%5-2) * 2
	dc.SetColor(skin)
	dc.DrawCircle(portraitSize/2+dx, portraitSize*0.42, portraitSize*0.2)
	_ = dc.Fill()

	return dc.Image()
}

var (
	fontOnce sync.Once
	fontSrc  *text.FontSource
	fontErr  error
)

func pageFont() (*text.FontSource, error) {
	fontOnce.Do(func() {
		fontSrc, fontErr = text.NewFontSource(goregular.TTF)
	})
	return fontSrc, fontErr
}

// Page draws a numbered book page with ruled lines
func Page(n int) (image.Image, error) {
	font, err := pageFont()
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	dc := gg.NewContext(pageWidth, pageHeight)
	dc.ClearWithColor(gg.FromColor(color.NRGBA{R: 0xfb, G: 0xf7, B: 0xee, A: 0xff}))

	dc.SetColor(color.NRGBA{R: 0xd8, G: 0xd0, B: 0xc0, A: 0xff})
	dc.SetLineWidth(1)
	for y := 140.0; y < pageHeight-60; y += 28 {
		dc.DrawLine(48, y, pageWidth-48, y)
		_ = dc.Stroke()
	}

	dc.SetColor(color.NRGBA{R: 0x2c, G: 0x3e, B: 0x50, A: 0xff})
	dc.SetFont(font.Face(36))
	dc.DrawStringAnchored(fmt.Sprintf("%d", n), pageWidth/2, 80, 0.5, 0.5)
	dc.SetFont(font.Face(16))
	dc.DrawStringAnchored(fmt.Sprintf("- %d -", n), pageWidth/2, pageHeight-30, 0.5, 0.5)

	return dc.Image(), nil
}

// QRCode renders content as a square QR card
func QRCode(content string) (image.Image, error) {
	if content == "" {
		return nil, fmt.Errorf("empty qr content")
	}
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr: %w", err)
	}
	return q.Image(qrSize), nil
}

func loadFile(path string) (image.Image, error) {
	return source.Decode(path)
}
