package pdfme

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/lvillar/pdfme/backend/recorder"
	"github.com/lvillar/pdfme/databind"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		img.Set(x, x, color.RGBA{R: 200, A: 255})
	}
	return img
}

func dataURI(t *testing.T, mime string, encode func(*bytes.Buffer) error) string {
	t.Helper()
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestImageDataURI(t *testing.T) {
	pngURI := dataURI(t, "image/png", func(b *bytes.Buffer) error { return png.Encode(b, testImage()) })
	bmpURI := dataURI(t, "image/bmp", func(b *bytes.Buffer) error { return bmp.Encode(b, testImage()) })

	tests := []struct {
		name string
		src  string
	}{
		{"png", pngURI},
		{"bmp transcoded", bmpURI},
		{"sniffed", strings.Replace(pngURI, "image/png", "", 1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := recorder.New()
			ctx := NewRenderContext(rec, nil)
			e := Element{"type": "image", "content": tc.src, "position": map[string]any{"x": 5.0, "y": 6.0}, "width": 20.0, "height": 20.0}

			res, err := ImageRenderer{}.Render(ctx, e)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if res != (RenderResult{X: 5, Y: 6, Width: 20, Height: 20}) {
				t.Fatalf("result = %+v", res)
			}

			path := rec.Find("PlaceImage")[0].Args[0].(string)
			if filepath.Ext(path) != ".png" {
				t.Fatalf("temp file %s does not have a .png extension", path)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatalf("temp file: %v", err)
			}
			_, err = png.Decode(f)
			f.Close()
			if err != nil {
				t.Fatalf("temp file is not a PNG: %v", err)
			}

			if err := ctx.cleanup(); err != nil {
				t.Fatalf("cleanup: %v", err)
			}
			if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
				t.Fatalf("temp file %s survived cleanup", path)
			}
		})
	}
}

func TestImageSourceResolution(t *testing.T) {
	data := databind.Record{"logo": "/srv/logo.png", "empty": ""}
	tests := []struct {
		name string
		elem Element
		want string
	}{
		{"named", Element{"name": "logo", "content": "/static.png"}, "/srv/logo.png"},
		{"content", Element{"content": "/static.png", "src": "/legacy.png"}, "/static.png"},
		{"legacy src", Element{"src": "/legacy.png"}, "/legacy.png"},
		{"empty named value falls back to src", Element{"name": "empty", "src": "/legacy.png"}, "/legacy.png"},
		{"url", Element{"content": "https://example.com/a.png"}, "https://example.com/a.png"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.elem["type"] = "image"
			rec, _, err := renderOne(t, ImageRenderer{}, tc.elem, data)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if got := rec.Find("PlaceImage")[0].Args[0]; got != tc.want {
				t.Fatalf("source = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestImageEmptySource(t *testing.T) {
	rec, res, err := renderOne(t, ImageRenderer{}, Element{"type": "image", "width": 10.0, "height": 5.0}, nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(rec.Calls) != 0 {
		t.Fatalf("calls = %v", rec.Calls)
	}
	if res.Width != 10 || res.Height != 5 {
		t.Fatalf("result = %+v", res)
	}
}

func TestImageBadDataURI(t *testing.T) {
	for _, src := range []string{
		"data:image/png;base64",
		"data:image/png;base64,!!!not base64!!!",
		"data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte("<svg/>")),
	} {
		_, _, err := renderOne(t, ImageRenderer{}, Element{"type": "image", "content": src}, nil)
		var inv *InvalidTemplateError
		if !errors.As(err, &inv) {
			t.Errorf("src %.30q: err = %v, want *InvalidTemplateError", src, err)
		}
	}
}

func TestImagePlainDataURIPassesThrough(t *testing.T) {
	src := "data:text/plain,hello"
	rec, _, err := renderOne(t, ImageRenderer{}, Element{"type": "image", "content": src}, nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got := rec.Find("PlaceImage")[0].Args[0]; got != src {
		t.Fatalf("source = %v", got)
	}
}
