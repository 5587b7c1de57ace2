package pdfme

// ChainGap is the vertical gap, in mm, NextY leaves below the previous
// element.
const ChainGap = 2.0

// RenderResult is the box an element occupied, in mm. Values are copied,
// never shared.
type RenderResult struct {
	X, Y          float64
	Width, Height float64
}

// Bottom returns the Y coordinate of the lower edge.
func (r RenderResult) Bottom() float64 {
	return r.Y + r.Height
}

// Right returns the X coordinate of the right edge.
func (r RenderResult) Right() float64 {
	return r.X + r.Width
}

// ResultOf returns the box an element declares through its position,
// width and height attributes. Malformed attributes read as zero.
func ResultOf(e Element) RenderResult {
	a := ReadAttrs(e)
	x, y := a.Position()
	return RenderResult{X: x, Y: y, Width: a.Float("width", 0), Height: a.Float("height", 0)}
}
