package pdfme

import "math"

// RectangleRenderer draws a filled and/or stroked rectangle.
type RectangleRenderer struct{}

func (RectangleRenderer) Render(ctx *RenderContext, e Element) (RenderResult, error) {
	a := ReadAttrs(e)
	x, y := a.Position()
	if !a.Has("width") || !a.Has("height") {
		return RenderResult{}, invalidf("rectangle requires width and height")
	}
	w := a.Length("width", 0)
	h := a.Length("height", 0)
	if err := a.Err(); err != nil {
		return RenderResult{}, err
	}

	paint := newPaintGuard(ctx.Backend())
	defer paint.Restore()
	style := shapePaint(a, paint)
	if err := a.Err(); err != nil {
		return RenderResult{}, err
	}
	ctx.Backend().DrawRect(x, y, w, h, style)
	return RenderResult{X: x, Y: y, Width: w, Height: h}, nil
}

// EllipseRenderer draws an ellipse inscribed in the element box.
type EllipseRenderer struct{}

func (EllipseRenderer) Render(ctx *RenderContext, e Element) (RenderResult, error) {
	a := ReadAttrs(e)
	x, y := a.Position()
	if !a.Has("width") || !a.Has("height") {
		return RenderResult{}, invalidf("ellipse requires width and height")
	}
	w := a.Length("width", 0)
	h := a.Length("height", 0)
	if err := a.Err(); err != nil {
		return RenderResult{}, err
	}

	paint := newPaintGuard(ctx.Backend())
	defer paint.Restore()
	style := shapePaint(a, paint)
	if err := a.Err(); err != nil {
		return RenderResult{}, err
	}
	ctx.Backend().DrawEllipse(x+w/2, y+h/2, w/2, h/2, style)
	return RenderResult{X: x, Y: y, Width: w, Height: h}, nil
}

// LineRenderer draws a straight line from the element position to x2,y2,
// or to the position offset by width and height.
type LineRenderer struct{}

func (LineRenderer) Render(ctx *RenderContext, e Element) (RenderResult, error) {
	a := ReadAttrs(e)
	x1, y1 := a.Position()
	var x2, y2 float64
	if a.Has("x2") || a.Has("y2") {
		x2 = a.Float("x2", x1)
		y2 = a.Float("y2", y1)
	} else {
		x2 = x1 + a.Float("width", 0)
		y2 = y1 + a.Float("height", 0)
	}
	stroke, hasStroke := a.Color("color")
	width, hasWidth := a.OptLength("borderWidth")
	if !hasWidth {
		width, hasWidth = a.OptLength("lineWidth")
	}
	if err := a.Err(); err != nil {
		return RenderResult{}, err
	}

	b := ctx.Backend()
	paint := newPaintGuard(b)
	defer paint.Restore()
	if hasStroke {
		paint.DrawColor(stroke)
	}
	if hasWidth {
		paint.LineWidth(width)
	}
	b.DrawLine(x1, y1, x2, y2)

	return RenderResult{
		X:      math.Min(x1, x2),
		Y:      math.Min(y1, y2),
		Width:  math.Abs(x2 - x1),
		Height: math.Abs(y2 - y1),
	}, nil
}
