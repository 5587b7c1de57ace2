// Package table lays out and draws tables onto a document backend.
//
// Tables are positioned absolutely: they start at the configured position,
// take the configured width and grow downward. Row heights are estimated
// from character counts, the same approximation text elements use, since
// no font metrics are available to the template layer.
package table

import (
	"github.com/lvillar/pdfme/backend"
	"github.com/lvillar/pdfme/color"
)

// FontSpec defines font properties for text rendering.
type FontSpec struct {
	Family string
	Style  string  // "", "B", "I", "BI"
	Size   float64 // in points
}

// DefaultFont is used for cells when no font is configured.
var DefaultFont = FontSpec{Family: "Helvetica", Size: 10}

// Padding defines spacing inside a cell.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// UniformPadding creates a Padding with the same value on all sides.
func UniformPadding(v float64) Padding {
	return Padding{Top: v, Right: v, Bottom: v, Left: v}
}

// BorderStyle defines the appearance of cell borders.
type BorderStyle struct {
	Width float64
	Color color.RGB
}

// CellStyle defines the visual appearance of a cell.
type CellStyle struct {
	FillColor *color.RGB
	TextColor *color.RGB
	Font      *FontSpec
	Align     backend.Align
}

// AlternateStyle defines alternating row colors.
type AlternateStyle struct {
	Even CellStyle
	Odd  CellStyle
}

// TableStyle defines the overall appearance of a table.
type TableStyle struct {
	Border        *BorderStyle
	AlternateRows *AlternateStyle
	HeaderStyle   *CellStyle
	CellPadding   Padding
	CellFont      *FontSpec
	// LineHeight is a multiplier of the font size. Zero means 1.
	LineHeight float64
}
