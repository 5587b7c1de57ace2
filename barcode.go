package pdfme

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/datamatrix"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/qr"

	"github.com/lvillar/pdfme/backend"
	"github.com/lvillar/pdfme/layout"
)

// BarcodeKinds lists the barcode element types. All but pdf417 are
// rasterized here; pdf417 needs a backend.BarcodeDrawer.
var BarcodeKinds = []string{"qrcode", "code128", "code39", "ean13", "ean8", "datamatrix", "pdf417"}

// barcodeDPI is the resolution barcodes are rasterized at.
const barcodeDPI = 300

// BarcodeRenderer draws the element content as a barcode of Kind.
type BarcodeRenderer struct {
	Kind string
}

func (r BarcodeRenderer) Render(ctx *RenderContext, e Element) (RenderResult, error) {
	a := ReadAttrs(e)
	x, y := a.Position()
	w := a.Length("width", 0)
	h := a.Length("height", 0)
	if err := a.Err(); err != nil {
		return RenderResult{}, err
	}
	if w <= 0 || h <= 0 {
		return RenderResult{}, invalidf("%s requires width and height", r.Kind)
	}
	res := RenderResult{X: x, Y: y, Width: w, Height: h}

	content := ctx.ResolveContent(e)
	if content == "" {
		return res, nil
	}

	b := ctx.Backend()
	if d, ok := b.(backend.BarcodeDrawer); ok && d.CanDrawBarcode(r.Kind) {
		d.DrawBarcode(r.Kind, content, x, y, w, h)
		return res, nil
	}

	bc, err := encodeBarcode(r.Kind, content)
	if err != nil {
		if errors.Is(err, ErrUnsupported) {
			return RenderResult{}, fmt.Errorf("%s barcode: %w", r.Kind, err)
		}
		return RenderResult{}, &InvalidTemplateError{Reason: "encoding " + r.Kind, Err: err}
	}
	scaled, err := barcode.Scale(bc, layout.MMToPixels(w, barcodeDPI), layout.MMToPixels(h, barcodeDPI))
	if err != nil {
		return RenderResult{}, &InvalidTemplateError{Reason: "scaling " + r.Kind, Err: err}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return RenderResult{}, err
	}
	path, err := ctx.TempFile("pdfme-"+r.Kind+"-*.png", buf.Bytes())
	if err != nil {
		return RenderResult{}, err
	}
	b.PlaceImage(path, x, y, w, h)
	return res, nil
}

func encodeBarcode(kind, content string) (barcode.Barcode, error) {
	var (
		bc  barcode.Barcode
		err error
	)
	switch kind {
	case "qrcode":
		bc, err = qr.Encode(content, qr.M, qr.Auto)
	case "code128":
		bc, err = code128.Encode(content)
	case "code39":
		bc, err = code39.Encode(content, false, true)
	case "ean13":
		if n := len(content); n != 12 && n != 13 {
			return nil, fmt.Errorf("ean13 needs 12 or 13 digits, got %d", n)
		}
		bc, err = ean.Encode(content)
	case "ean8":
		if n := len(content); n != 7 && n != 8 {
			return nil, fmt.Errorf("ean8 needs 7 or 8 digits, got %d", n)
		}
		bc, err = ean.Encode(content)
	case "datamatrix":
		bc, err = datamatrix.Encode(content)
	default:
		return nil, ErrUnsupported
	}
	return bc, err
}
