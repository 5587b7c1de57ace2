// Package backend defines the Document Backend: the drawing capability a
// template generator calls into. Implementations own PDF byte-stream
// construction, font handling, page breaking and compression.
//
// All lengths are millimeters unless noted otherwise. Drawing methods do
// not return errors; like gofpdf, a backend records the first failure and
// reports it from Err and Output.
package backend

import (
	"time"

	"github.com/lvillar/pdfme/color"
)

// PaintStyle selects how a closed shape is painted.
type PaintStyle string

// Paint styles.
const (
	Stroke        PaintStyle = "D"
	Fill          PaintStyle = "F"
	FillAndStroke PaintStyle = "FD"
)

// Align is a horizontal text alignment code.
type Align string

// Text alignments.
const (
	AlignLeft    Align = "L"
	AlignCenter  Align = "C"
	AlignRight   Align = "R"
	AlignJustify Align = "J"
)

// Neutral paint state. Renderers restore these values after an element so
// that siblings never inherit stale state.
var (
	DefaultDrawColor = color.Black
	DefaultFillColor = color.Black
	DefaultTextColor = color.Black
)

// DefaultLineWidth is the stroke width a backend starts with.
const DefaultLineWidth = 0.2

// Margins are page margins in mm.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// IsZero reports whether all margins are zero.
func (m Margins) IsZero() bool {
	return m == Margins{}
}

// PageGeometry describes a page to open.
type PageGeometry struct {
	// Width and Height are the sheet size. Zero means the backend default.
	Width, Height float64
	// Orientation is "P" or "L". Empty means portrait.
	Orientation string
	Margins     Margins
	// Background is the path of a PDF whose first page is drawn beneath
	// the page content. Empty means a blank page.
	Background string
}

// FontSource registers a TrueType font file under a family and style.
type FontSource struct {
	Family string
	Style  string
	Path   string
}

// DocumentConfig configures a new document.
type DocumentConfig struct {
	Title   string
	Author  string
	Subject string
	Creator string

	// CreationDate fixes the document creation date. Zero uses the
	// current time.
	CreationDate time.Time

	// Compress enables stream compression.
	Compress bool

	FontDir string
	Fonts   []FontSource
}

// Backend is the capability interface used by element renderers.
type Backend interface {
	Open(cfg DocumentConfig)
	AddPage(g PageGeometry)

	SetDrawColor(c color.RGB)
	SetFillColor(c color.RGB)
	SetTextColor(c color.RGB)
	SetLineWidth(width float64)
	// SetAlpha sets the opacity, 0 transparent to 1 opaque.
	SetAlpha(alpha float64)
	// SetSpacing sets the extra space between characters, in points.
	SetSpacing(pt float64)

	TransformBegin()
	// TransformRotate rotates by angle degrees, counter-clockwise, around (x, y).
	TransformRotate(angle, x, y float64)
	TransformEnd()

	DrawLine(x1, y1, x2, y2 float64)
	DrawRect(x, y, w, h float64, style PaintStyle)
	// DrawEllipse draws an ellipse centered at (x, y) with radii rx and ry.
	DrawEllipse(x, y, rx, ry float64, style PaintStyle)
	// PlaceImage draws the image at src, a file path or URL. A zero width
	// or height is derived from the image aspect ratio.
	PlaceImage(src string, x, y, w, h float64)

	// SetFont selects a font; size is in points.
	SetFont(family, style string, size float64)
	MoveTo(x, y float64)
	// DrawTextBlock flows text from the cursor into a block of width w,
	// wrapping lines, and returns the cursor Y after the block.
	DrawTextBlock(w, lineHeight float64, text string, border bool, align Align, fill bool) float64

	// Err returns the first error recorded by the backend, if any.
	Err() error
	// Output finalizes the document and returns its bytes.
	Output() ([]byte, error)
}

// BarcodeDrawer is implemented by backends that draw some barcode
// symbologies natively.
type BarcodeDrawer interface {
	// CanDrawBarcode reports whether the symbology is supported.
	CanDrawBarcode(kind string) bool
	DrawBarcode(kind, content string, x, y, w, h float64)
}

// Factory creates a fresh backend for one generation call.
type Factory func() Backend
