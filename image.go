package pdfme

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// ImageRenderer places a raster image. The source is a file path, an
// http(s) URL or a base64 data URI.
type ImageRenderer struct{}

func (ImageRenderer) Render(ctx *RenderContext, e Element) (RenderResult, error) {
	a := ReadAttrs(e)
	x, y := a.Position()
	w := a.Length("width", 0)
	h := a.Length("height", 0)
	if err := a.Err(); err != nil {
		return RenderResult{}, err
	}
	res := RenderResult{X: x, Y: y, Width: w, Height: h}

	src := ctx.ResolveContent(e)
	if src == "" {
		src = ctx.ResolveText(a.String("src"))
	}
	if src == "" {
		return res, nil
	}
	path, err := ctx.materializeImage(src)
	if err != nil {
		return RenderResult{}, err
	}
	ctx.Backend().PlaceImage(path, x, y, w, h)
	return res, nil
}

// materializeImage turns a base64 data URI into a temporary file and
// returns its path. Any other source is returned unchanged.
func (c *RenderContext) materializeImage(src string) (string, error) {
	if !strings.HasPrefix(src, "data:") {
		return src, nil
	}
	meta, payload, ok := strings.Cut(src[len("data:"):], ",")
	if !ok {
		return "", invalidf("malformed data URI")
	}
	params := strings.Split(meta, ";")
	base64Encoded := false
	for _, p := range params[1:] {
		if p == "base64" {
			base64Encoded = true
		}
	}
	if !base64Encoded {
		return src, nil
	}

	data, err := decodeBase64(payload)
	if err != nil {
		return "", &InvalidTemplateError{Reason: "decoding image data URI", Err: err}
	}
	ext, data, err := normalizeImage(strings.ToLower(params[0]), data)
	if err != nil {
		return "", &InvalidTemplateError{Reason: "decoding image data URI", Err: err}
	}
	return c.TempFile("pdfme-image-*."+ext, data)
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
	if strings.HasSuffix(s, "=") {
		return base64.StdEncoding.DecodeString(s)
	}
	return base64.RawStdEncoding.DecodeString(s)
}

// normalizeImage returns the file extension for an image payload,
// transcoding formats the backend cannot place to PNG.
func normalizeImage(mimeType string, data []byte) (string, []byte, error) {
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	var decode func([]byte) (image.Image, error)
	switch mimeType {
	case "image/png":
		return "png", data, nil
	case "image/jpeg", "image/jpg":
		return "jpg", data, nil
	case "image/gif":
		return "gif", data, nil
	case "image/bmp", "image/x-ms-bmp":
		decode = func(b []byte) (image.Image, error) { return bmp.Decode(bytes.NewReader(b)) }
	case "image/tiff":
		decode = func(b []byte) (image.Image, error) { return tiff.Decode(bytes.NewReader(b)) }
	case "image/webp":
		decode = func(b []byte) (image.Image, error) { return webp.Decode(bytes.NewReader(b)) }
	default:
		return "", nil, fmt.Errorf("unsupported image type %q", mimeType)
	}

	img, err := decode(data)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", mimeType, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", nil, err
	}
	return "png", buf.Bytes(), nil
}
