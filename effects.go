package pdfme

import (
	"github.com/lvillar/pdfme/backend"
	"github.com/lvillar/pdfme/color"
)

// renderWithEffects applies the element's opacity and rotation around
// draw. Rotation pivots on the center of the declared box; positive
// angles turn clockwise on the page.
func renderWithEffects(b backend.Backend, e Element, draw func() (RenderResult, error)) (RenderResult, error) {
	a := ReadAttrs(e)
	opacity, hasOpacity := a.OptFloat("opacity")
	rotate, hasRotate := a.OptFloat("rotate")
	if err := a.Err(); err != nil {
		return RenderResult{}, err
	}
	if hasOpacity && (opacity < 0 || opacity > 1) {
		return RenderResult{}, invalidf("opacity %g outside [0, 1]", opacity)
	}

	if hasOpacity {
		b.SetAlpha(opacity)
		defer b.SetAlpha(1)
	}
	if hasRotate {
		box := ResultOf(e)
		b.TransformBegin()
		b.TransformRotate(-rotate, box.X+box.Width/2, box.Y+box.Height/2)
		defer b.TransformEnd()
	}
	return draw()
}

// paintGuard tracks the paint state a renderer changes and puts it back
// to the neutral defaults.
type paintGuard struct {
	b                       backend.Backend
	draw, fill, text, width bool
	spacing                 bool
}

func newPaintGuard(b backend.Backend) *paintGuard {
	return &paintGuard{b: b}
}

func (g *paintGuard) DrawColor(c color.RGB) {
	g.b.SetDrawColor(c)
	g.draw = true
}

func (g *paintGuard) FillColor(c color.RGB) {
	g.b.SetFillColor(c)
	g.fill = true
}

func (g *paintGuard) TextColor(c color.RGB) {
	g.b.SetTextColor(c)
	g.text = true
}

func (g *paintGuard) LineWidth(w float64) {
	g.b.SetLineWidth(w)
	g.width = true
}

func (g *paintGuard) Spacing(pt float64) {
	g.b.SetSpacing(pt)
	g.spacing = true
}

// Restore resets every value changed through the guard.
func (g *paintGuard) Restore() {
	if g.draw {
		g.b.SetDrawColor(backend.DefaultDrawColor)
	}
	if g.fill {
		g.b.SetFillColor(backend.DefaultFillColor)
	}
	if g.text {
		g.b.SetTextColor(backend.DefaultTextColor)
	}
	if g.width {
		g.b.SetLineWidth(backend.DefaultLineWidth)
	}
	if g.spacing {
		g.b.SetSpacing(0)
	}
	*g = paintGuard{b: g.b}
}

// shapePaint applies the fill, stroke and stroke width shared by closed
// shapes and returns the paint style to draw with.
func shapePaint(a *Attrs, g *paintGuard) backend.PaintStyle {
	fill, hasFill := a.Color("color", "fillColor")
	stroke, hasStroke := a.Color("borderColor")
	width, hasWidth := a.OptLength("borderWidth")
	if a.Err() != nil {
		return backend.Stroke
	}
	if hasFill {
		g.FillColor(fill)
	}
	if hasStroke {
		g.DrawColor(stroke)
	}
	if hasWidth {
		g.LineWidth(width)
	}
	switch {
	case hasFill && hasStroke:
		return backend.FillAndStroke
	case hasFill:
		return backend.Fill
	default:
		return backend.Stroke
	}
}
