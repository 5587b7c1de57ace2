// Package fpdf implements backend.Backend on top of gofpdf.
//
// Page backgrounds taken from existing PDFs are imported with gofpdi and
// PDF417 barcodes are drawn through gofpdf's barcode contrib package.
// Remote image sources (http and https URLs) are fetched with an
// http.Client and registered with the document before placement.
package fpdf

import (
	"bytes"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	fpdfbarcode "github.com/jung-kurt/gofpdf/contrib/barcode"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"

	"github.com/lvillar/pdfme/backend"
	"github.com/lvillar/pdfme/color"
)

// Option configures a Backend.
type Option func(*Backend)

// WithHTTPClient sets the client used to fetch remote images.
func WithHTTPClient(c *http.Client) Option {
	return func(b *Backend) {
		b.client = c
	}
}

// WithPDF417 sets the column count and security level used for PDF417
// barcodes. The defaults are 10 columns and security level 5.
func WithPDF417(columns, securityLevel int) Option {
	return func(b *Backend) {
		b.pdf417Cols = columns
		b.pdf417Level = securityLevel
	}
}

// Backend draws onto a gofpdf document in millimeter units.
type Backend struct {
	pdf      *gofpdf.Fpdf
	client   *http.Client
	importer *gofpdi.Importer

	// translate converts UTF-8 to cp1252 for the core fonts.
	translate func(string) string
	utf8Fonts map[string]bool
	family    string

	backgrounds map[string]int

	pdf417Cols  int
	pdf417Level int
}

// New returns a Backend. The document is created by Open.
func New(opts ...Option) *Backend {
	b := &Backend{
		client:      &http.Client{Timeout: 30 * time.Second},
		utf8Fonts:   make(map[string]bool),
		backgrounds: make(map[string]int),
		pdf417Cols:  10,
		pdf417Level: 5,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Factory returns a backend.Factory producing Backends with opts.
func Factory(opts ...Option) backend.Factory {
	return func() backend.Backend {
		return New(opts...)
	}
}

// PDF exposes the underlying gofpdf document, nil before Open.
func (b *Backend) PDF() *gofpdf.Fpdf {
	return b.pdf
}

// Open creates the document.
func (b *Backend) Open(cfg backend.DocumentConfig) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		SizeStr:        "A4",
		FontDirStr:     cfg.FontDir,
	})
	pdf.SetCompression(cfg.Compress)
	pdf.SetCatalogSort(true)
	if !cfg.CreationDate.IsZero() {
		pdf.SetCreationDate(cfg.CreationDate)
	}
	if cfg.Title != "" {
		pdf.SetTitle(cfg.Title, true)
	}
	if cfg.Author != "" {
		pdf.SetAuthor(cfg.Author, true)
	}
	if cfg.Subject != "" {
		pdf.SetSubject(cfg.Subject, true)
	}
	if cfg.Creator != "" {
		pdf.SetCreator(cfg.Creator, true)
	}

	// Templates position text boxes exactly; no inner cell padding.
	pdf.SetCellMargin(0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	for _, f := range cfg.Fonts {
		pdf.AddUTF8Font(f.Family, f.Style, f.Path)
		b.utf8Fonts[strings.ToLower(f.Family)] = true
	}

	b.pdf = pdf
	b.importer = gofpdi.NewImporter()
	b.translate = pdf.UnicodeTranslatorFromDescriptor("")
}

// AddPage opens a new page with the given geometry. Pages without margins
// disable automatic page breaks so elements keep absolute coordinates.
func (b *Backend) AddPage(g backend.PageGeometry) {
	if b.pdf == nil {
		b.Open(backend.DocumentConfig{})
	}

	orientation := strings.ToUpper(g.Orientation)
	if orientation == "" {
		orientation = "P"
	}

	m := g.Margins
	b.pdf.SetMargins(m.Left, m.Top, m.Right)
	b.pdf.SetAutoPageBreak(!m.IsZero(), m.Bottom)

	// gofpdf swaps the sides of landscape pages; explicit sizes are taken
	// as the final sheet dimensions.
	size := b.pdf.GetPageSizeStr("A4")
	if g.Width > 0 && g.Height > 0 {
		size = gofpdf.SizeType{Wd: g.Width, Ht: g.Height}
		orientation = "P"
	}
	b.pdf.AddPageFormat(orientation, size)

	if g.Background != "" {
		b.drawBackground(g.Background)
	}
}

func (b *Backend) drawBackground(src string) {
	tpl, ok := b.backgrounds[src]
	if !ok {
		if _, err := os.Stat(src); err != nil {
			b.pdf.SetError(fmt.Errorf("fpdf: base pdf: %w", err))
			return
		}
		var err error
		tpl, err = b.importPage(src)
		if err != nil {
			b.pdf.SetError(err)
			return
		}
		b.backgrounds[src] = tpl
	}
	w, h := b.pdf.GetPageSize()
	b.importer.UseImportedTemplate(b.pdf, tpl, 0, 0, w, h)
}

// importPage imports page 1 of src. gofpdi panics on unreadable input.
func (b *Backend) importPage(src string) (tpl int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fpdf: importing base pdf %s: %v", src, r)
		}
	}()
	return b.importer.ImportPage(b.pdf, src, 1, "/MediaBox"), nil
}

func (b *Backend) SetDrawColor(c color.RGB) { b.pdf.SetDrawColor(c.R, c.G, c.B) }
func (b *Backend) SetFillColor(c color.RGB) { b.pdf.SetFillColor(c.R, c.G, c.B) }
func (b *Backend) SetTextColor(c color.RGB) { b.pdf.SetTextColor(c.R, c.G, c.B) }
func (b *Backend) SetLineWidth(width float64) { b.pdf.SetLineWidth(width) }
func (b *Backend) SetAlpha(alpha float64)     { b.pdf.SetAlpha(alpha, "Normal") }

// SetSpacing writes the character spacing operator directly; gofpdf has
// no setter for it.
func (b *Backend) SetSpacing(pt float64) {
	b.pdf.RawWriteStr(fmt.Sprintf("%.3f Tc", pt))
}

func (b *Backend) TransformBegin()                     { b.pdf.TransformBegin() }
func (b *Backend) TransformRotate(angle, x, y float64) { b.pdf.TransformRotate(angle, x, y) }
func (b *Backend) TransformEnd()                       { b.pdf.TransformEnd() }

func (b *Backend) DrawLine(x1, y1, x2, y2 float64) { b.pdf.Line(x1, y1, x2, y2) }

func (b *Backend) DrawRect(x, y, w, h float64, style backend.PaintStyle) {
	b.pdf.Rect(x, y, w, h, string(style))
}

func (b *Backend) DrawEllipse(x, y, rx, ry float64, style backend.PaintStyle) {
	b.pdf.Ellipse(x, y, rx, ry, 0, string(style))
}

// PlaceImage draws a local image file or a remote http(s) image.
func (b *Backend) PlaceImage(src string, x, y, w, h float64) {
	if isRemote(src) {
		if err := b.registerRemote(src); err != nil {
			b.pdf.SetError(err)
			return
		}
	}
	b.pdf.ImageOptions(src, x, y, w, h, false, gofpdf.ImageOptions{ReadDpi: true}, 0, "")
}

func (b *Backend) registerRemote(url string) error {
	if b.pdf.GetImageInfo(url) != nil {
		return nil
	}
	resp, err := b.client.Get(url)
	if err != nil {
		return fmt.Errorf("fpdf: fetching image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fpdf: fetching image %s: %s", url, resp.Status)
	}

	imageType := imageTypeFromMIME(resp.Header.Get("Content-Type"))
	if imageType == "" {
		imageType = imageTypeFromPath(url)
	}
	if imageType == "" {
		return fmt.Errorf("fpdf: image %s: unknown image type", url)
	}

	b.pdf.RegisterImageOptionsReader(url, gofpdf.ImageOptions{ImageType: imageType, ReadDpi: true}, resp.Body)
	return b.pdf.Error()
}

// SetFont selects a font. Families registered through DocumentConfig.Fonts
// take UTF-8 text; core fonts get cp1252 translation.
func (b *Backend) SetFont(family, style string, size float64) {
	b.pdf.SetFont(family, style, size)
	b.family = strings.ToLower(family)
}

func (b *Backend) MoveTo(x, y float64) { b.pdf.SetXY(x, y) }

func (b *Backend) DrawTextBlock(w, lineHeight float64, text string, border bool, align backend.Align, fill bool) float64 {
	if !b.utf8Fonts[b.family] {
		text = b.translate(text)
	}
	borderStr := ""
	if border {
		borderStr = "1"
	}
	b.pdf.MultiCell(w, lineHeight, text, borderStr, string(align), fill)
	return b.pdf.GetY()
}

// CanDrawBarcode reports support for "pdf417".
func (b *Backend) CanDrawBarcode(kind string) bool {
	return kind == "pdf417"
}

func (b *Backend) DrawBarcode(kind, content string, x, y, w, h float64) {
	if !b.CanDrawBarcode(kind) {
		b.pdf.SetError(fmt.Errorf("fpdf: unsupported barcode %q", kind))
		return
	}
	key := fpdfbarcode.RegisterPdf417(b.pdf, content, b.pdf417Cols, b.pdf417Level)
	fpdfbarcode.Barcode(b.pdf, key, x, y, w, h, false)
}

func (b *Backend) Err() error {
	if b.pdf == nil {
		return nil
	}
	return b.pdf.Error()
}

func (b *Backend) Output() ([]byte, error) {
	if b.pdf == nil {
		return nil, fmt.Errorf("fpdf: document not opened")
	}
	var buf bytes.Buffer
	if err := b.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

func imageTypeFromMIME(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	switch mt {
	case "image/png":
		return "png"
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/gif":
		return "gif"
	}
	return ""
}

func imageTypeFromPath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	switch ext := strings.ToLower(strings.TrimPrefix(path.Ext(p), ".")); ext {
	case "png", "gif", "jpg":
		return ext
	case "jpeg":
		return "jpg"
	}
	return ""
}

var (
	_ backend.Backend       = (*Backend)(nil)
	_ backend.BarcodeDrawer = (*Backend)(nil)
)
