package pdfme

import (
	"math"
	"strings"

	"github.com/lvillar/pdfme/layout"
)

// Text defaults.
const (
	DefaultFontName = "Helvetica"
	DefaultFontSize = 12.0
)

// TextRenderer draws a block of wrapped text.
//
// With a verticalAlignment of middle or bottom, the estimated block is
// placed inside the element height using layout.VerticalOffset. Text that
// does not fit starts at the element top instead of above it, and the
// result height grows to cover the overflow.
type TextRenderer struct{}

type textFont struct {
	family string
	style  string
	size   float64
}

func readTextFont(a *Attrs) textFont {
	f := textFont{family: a.String("fontName", "fontFamily"), size: DefaultFontSize}
	if f.family == "" {
		f.family = DefaultFontName
	}
	f.size = a.FontSize(f.size)

	var style strings.Builder
	for _, flag := range []struct {
		key  string
		code byte
	}{{"bold", 'B'}, {"italic", 'I'}, {"underline", 'U'}, {"strikethrough", 'S'}} {
		if a.Bool(flag.key) {
			style.WriteByte(flag.code)
		}
	}
	f.style = style.String()
	if legacy, ok := a.OptString("fontStyle"); ok {
		f.style = strings.ToUpper(legacy)
	}
	return f
}

func (TextRenderer) Render(ctx *RenderContext, e Element) (RenderResult, error) {
	a := ReadAttrs(e)
	x, y := a.Position()
	w := a.Length("width", 0)
	h := a.Length("height", 0)
	font := readTextFont(a)
	fg, hasFg := a.Color("fontColor", "color")
	bg, hasBg := a.Color("backgroundColor")
	align := a.Alignment()
	valign := layout.ParseVAlign(a.String("verticalAlignment"))
	mult := a.Float("lineHeight", 1)
	spacing, hasSpacing := a.OptFloat("characterSpacing")
	border := a.Bool("border")
	if err := a.Err(); err != nil {
		return RenderResult{}, err
	}
	content := ctx.ResolveContent(e)

	b := ctx.Backend()
	paint := newPaintGuard(b)
	defer paint.Restore()

	b.SetFont(font.family, font.style, font.size)
	if hasFg {
		paint.TextColor(fg)
	}
	if hasBg {
		paint.FillColor(bg)
	}
	if hasSpacing {
		paint.Spacing(spacing)
	}

	lineHeight := layout.LineHeight(font.size, mult)
	top := y
	if w > 0 && h > 0 && valign != layout.Top {
		lines := layout.EstimateLines(content, w, font.size)
		top += layout.VerticalOffset(valign, h, float64(lines)*lineHeight)
	}
	b.MoveTo(x, top)
	endY := b.DrawTextBlock(w, lineHeight, content, border, align, hasBg)

	return RenderResult{X: x, Y: y, Width: w, Height: math.Max(h, endY-y)}, nil
}
