// Package layout holds the unit conversions and the approximate text
// measurements used to place elements without consulting font metrics.
package layout

import (
	"math"
	"unicode/utf8"
)

// PtToMM converts typographic points to millimeters.
const PtToMM = 0.3528

// avgCharWidth is the assumed glyph width as a fraction of the font size.
const avgCharWidth = 0.6

// MinLineHeight is the smallest line height, in mm, handed to a backend.
const MinLineHeight = 0.1

// LineHeight returns the line height in mm for a font size in points and
// a line height multiplier. The result is never below MinLineHeight.
func LineHeight(fontSize, multiplier float64) float64 {
	return math.Max(MinLineHeight, fontSize*PtToMM*multiplier)
}

// CharsPerLine estimates how many characters of the given font size fit
// in width mm. It is at least 1.
func CharsPerLine(width, fontSize float64) float64 {
	return math.Max(1, width/(fontSize*PtToMM*avgCharWidth))
}

// EstimateLines estimates the number of lines text wraps to in a box of
// width mm. It counts characters, not glyph advances, so it is only an
// approximation.
func EstimateLines(text string, width, fontSize float64) int {
	n := utf8.RuneCountInString(text)
	return int(math.Ceil(float64(n) / CharsPerLine(width, fontSize)))
}

// VAlign is a vertical alignment inside a box.
type VAlign string

// Vertical alignments.
const (
	Top    VAlign = "top"
	Middle VAlign = "middle"
	Bottom VAlign = "bottom"
)

// ParseVAlign maps a template value to a VAlign. Unknown values are Top.
func ParseVAlign(s string) VAlign {
	switch VAlign(s) {
	case Middle:
		return Middle
	case Bottom:
		return Bottom
	default:
		return Top
	}
}

// VerticalOffset returns how far below the top of a boxHeight tall box a
// block of blockHeight starts for the given alignment.
//
// The offset is floored at 0: a block taller than its box starts at the
// box top and overflows downward, where the unclamped formula would move
// it up by the overflow (half of it for Middle).
func VerticalOffset(v VAlign, boxHeight, blockHeight float64) float64 {
	var off float64
	switch v {
	case Middle:
		off = (boxHeight - blockHeight) / 2
	case Bottom:
		off = boxHeight - blockHeight
	}
	return math.Max(0, off)
}

// MMToPixels converts mm to pixels at dpi, rounding up to at least one pixel.
func MMToPixels(mm, dpi float64) int {
	return int(math.Max(1, math.Ceil(mm/25.4*dpi)))
}
