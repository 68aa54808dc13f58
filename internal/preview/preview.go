package preview

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/garnizeh/portfolio/pkg/upload"
)

const (
	DefaultSize    = 320
	DefaultQuality = 80
)

// Renderer turns a staged file into a displayable preview URL.
type Renderer interface {
	Render(f upload.File) (string, error)
}

// Thumbnailer renders JPEG data URLs scaled to fit a square box.
type Thumbnailer struct {
	size    int
	quality int
}

func NewThumbnailer(size, quality int) *Thumbnailer {
	if size <= 0 {
		size = DefaultSize
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &Thumbnailer{size: size, quality: quality}
}

func (t *Thumbnailer) Render(f upload.File) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(f.Data))
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", f.Name, err)
	}

	scaled := t.fit(img)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: t.quality}); err != nil {
		return "", fmt.Errorf("encode %s: %w", f.Name, err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// fit scales img down to the box keeping the aspect ratio; smaller images are left alone.
func (t *Thumbnailer) fit(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= t.size && h <= t.size {
		return img
	}

	ratio := float64(w) / float64(h)
	nw, nh := t.size, t.size
	if ratio > 1 {
		nh = int(float64(t.size) / ratio)
	} else {
		nw = int(float64(t.size) * ratio)
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
