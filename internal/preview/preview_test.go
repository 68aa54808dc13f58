package preview_test

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/garnizeh/portfolio/internal/preview"
	"github.com/garnizeh/portfolio/pkg/upload"
)

func pngFile(t *testing.T, w, h int) upload.File {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return upload.File{Name: "img.png", ContentType: "image/png", Data: buf.Bytes()}
}

func decodeDataURL(t *testing.T, u string) image.Image {
	t.Helper()
	const prefix = "data:image/jpeg;base64,"
	if !strings.HasPrefix(u, prefix) {
		t.Fatalf("unexpected data url prefix: %.40s", u)
	}
	b, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(u, prefix))
	if err != nil {
		t.Fatalf("base64: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("jpeg decode: %v", err)
	}
	return img
}

func TestThumbnailer_ScalesDown(t *testing.T) {
	th := preview.NewThumbnailer(100, 0)
	u, err := th.Render(pngFile(t, 400, 200))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	b := decodeDataURL(t, u).Bounds()
	if b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("expected 100x50 thumbnail, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestThumbnailer_KeepsSmallImages(t *testing.T) {
	th := preview.NewThumbnailer(0, 0)
	u, err := th.Render(pngFile(t, 40, 30))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	b := decodeDataURL(t, u).Bounds()
	if b.Dx() != 40 || b.Dy() != 30 {
		t.Fatalf("expected 40x30, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestThumbnailer_RejectsNonImages(t *testing.T) {
	th := preview.NewThumbnailer(0, 0)
	if _, err := th.Render(upload.File{Name: "notes.txt", Data: []byte("hello")}); err == nil {
		t.Fatalf("expected decode error")
	}
}
