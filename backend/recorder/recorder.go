// Package recorder provides a backend.Backend that records every call
// instead of drawing. It is meant for tests of renderers and generators.
package recorder

import (
	"fmt"
	"math"
	"strings"

	"github.com/lvillar/pdfme/backend"
	"github.com/lvillar/pdfme/color"
	"github.com/lvillar/pdfme/layout"
)

// Call is one recorded backend invocation.
type Call struct {
	Method string
	Args   []any
}

func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprint(a)
	}
	return c.Method + "(" + strings.Join(parts, ", ") + ")"
}

// Backend records calls. Output returns a fixed stub document.
type Backend struct {
	Calls []Call
	// Fail, when set, is reported by Err and Output.
	Fail error
	// Barcodes lists the symbologies reported by CanDrawBarcode.
	Barcodes []string

	fontSize float64
	cursorY  float64
}

// New returns an empty recorder.
func New() *Backend {
	return &Backend{fontSize: 12}
}

// StubDocument is the document body returned by Output.
const StubDocument = "%PDF-1.3\n%recorded\n%%EOF\n"

func (b *Backend) record(method string, args ...any) {
	b.Calls = append(b.Calls, Call{Method: method, Args: args})
}

// Methods returns the recorded method names in order.
func (b *Backend) Methods() []string {
	out := make([]string, len(b.Calls))
	for i, c := range b.Calls {
		out[i] = c.Method
	}
	return out
}

// Count returns how many times method was called.
func (b *Backend) Count(method string) int {
	n := 0
	for _, c := range b.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// Find returns the recorded calls of method.
func (b *Backend) Find(method string) []Call {
	var out []Call
	for _, c := range b.Calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Reset drops all recorded calls.
func (b *Backend) Reset() {
	b.Calls = nil
}

func (b *Backend) Open(cfg backend.DocumentConfig) { b.record("Open", cfg) }
func (b *Backend) AddPage(g backend.PageGeometry)  { b.record("AddPage", g) }

func (b *Backend) SetDrawColor(c color.RGB)   { b.record("SetDrawColor", c) }
func (b *Backend) SetFillColor(c color.RGB)   { b.record("SetFillColor", c) }
func (b *Backend) SetTextColor(c color.RGB)   { b.record("SetTextColor", c) }
func (b *Backend) SetLineWidth(width float64) { b.record("SetLineWidth", width) }
func (b *Backend) SetAlpha(alpha float64)     { b.record("SetAlpha", alpha) }
func (b *Backend) SetSpacing(pt float64)      { b.record("SetSpacing", pt) }

func (b *Backend) TransformBegin()                     { b.record("TransformBegin") }
func (b *Backend) TransformRotate(angle, x, y float64) { b.record("TransformRotate", angle, x, y) }
func (b *Backend) TransformEnd()                       { b.record("TransformEnd") }

func (b *Backend) DrawLine(x1, y1, x2, y2 float64) { b.record("DrawLine", x1, y1, x2, y2) }

func (b *Backend) DrawRect(x, y, w, h float64, style backend.PaintStyle) {
	b.record("DrawRect", x, y, w, h, style)
}

func (b *Backend) DrawEllipse(x, y, rx, ry float64, style backend.PaintStyle) {
	b.record("DrawEllipse", x, y, rx, ry, style)
}

func (b *Backend) PlaceImage(src string, x, y, w, h float64) {
	b.record("PlaceImage", src, x, y, w, h)
}

func (b *Backend) SetFont(family, style string, size float64) {
	b.fontSize = size
	b.record("SetFont", family, style, size)
}

func (b *Backend) MoveTo(x, y float64) {
	b.cursorY = y
	b.record("MoveTo", x, y)
}

// DrawTextBlock advances the cursor by one line per estimated line of
// text, or one line when the width is zero.
func (b *Backend) DrawTextBlock(w, lineHeight float64, text string, border bool, align backend.Align, fill bool) float64 {
	b.record("DrawTextBlock", w, lineHeight, text, border, align, fill)
	lines := 1
	if w > 0 {
		lines = int(math.Max(1, float64(layout.EstimateLines(text, w, b.fontSize))))
	}
	b.cursorY += float64(lines) * lineHeight
	return b.cursorY
}

func (b *Backend) CanDrawBarcode(kind string) bool {
	for _, k := range b.Barcodes {
		if k == kind {
			return true
		}
	}
	return false
}

func (b *Backend) DrawBarcode(kind, content string, x, y, w, h float64) {
	b.record("DrawBarcode", kind, content, x, y, w, h)
}

func (b *Backend) Err() error { return b.Fail }

func (b *Backend) Output() ([]byte, error) {
	b.record("Output")
	if b.Fail != nil {
		return nil, b.Fail
	}
	return []byte(StubDocument), nil
}

var (
	_ backend.Backend       = (*Backend)(nil)
	_ backend.BarcodeDrawer = (*Backend)(nil)
)
