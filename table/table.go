package table

import (
	"math"

	"github.com/lvillar/pdfme/backend"
	"github.com/lvillar/pdfme/color"
	"github.com/lvillar/pdfme/layout"
)

// Surface is the part of backend.Backend a table draws with.
type Surface interface {
	SetDrawColor(c color.RGB)
	SetFillColor(c color.RGB)
	SetTextColor(c color.RGB)
	SetLineWidth(width float64)
	DrawRect(x, y, w, h float64, style backend.PaintStyle)
	SetFont(family, style string, size float64)
	MoveTo(x, y float64)
	DrawTextBlock(w, lineHeight float64, text string, border bool, align backend.Align, fill bool) float64
}

// ColumnDef defines the properties of a table column.
type ColumnDef struct {
	Width float64 // Fixed width. 0 means auto/fill.
	// Align applies to body cells of the column and takes precedence over
	// the body style. Header cells keep the header alignment.
	Align backend.Align
}

// Table is a table builder drawing onto a Surface.
type Table struct {
	surface    Surface
	columns    []ColumnDef
	rows       []*Row
	headerRows int
	style      TableStyle
	x, y       float64
	tableWidth float64
}

// New creates a new Table drawing onto s.
func New(s Surface) *Table {
	return &Table{
		surface: s,
		style: TableStyle{
			CellPadding: UniformPadding(1),
		},
	}
}

// SetColumns sets column definitions for the table.
func (t *Table) SetColumns(cols ...ColumnDef) *Table {
	t.columns = cols
	return t
}

// Percentages converts column percentages into widths that share total.
// Percentages that do not add up to 100 are scaled to fit. A non-positive
// sum yields zero (auto) widths.
func Percentages(total float64, pcts ...float64) []float64 {
	sum := 0.0
	for _, p := range pcts {
		sum += p
	}
	widths := make([]float64, len(pcts))
	if sum <= 0 {
		return widths
	}
	for i, p := range pcts {
		widths[i] = total * p / sum
	}
	return widths
}

// SetStyle sets the table-wide style.
func (t *Table) SetStyle(s TableStyle) *Table {
	t.style = s
	return t
}

// SetPosition sets the top-left corner of the table.
func (t *Table) SetPosition(x, y float64) *Table {
	t.x = x
	t.y = y
	return t
}

// SetWidth sets the total table width.
func (t *Table) SetWidth(w float64) *Table {
	t.tableWidth = w
	return t
}

// HeaderRows returns the number of header rows.
func (t *Table) HeaderRows() int {
	return t.headerRows
}

// AddRow adds a new data row to the table and returns it for chaining.
func (t *Table) AddRow() *Row {
	r := &Row{}
	t.rows = append(t.rows, r)
	return r
}

// AddHeaderRow adds a new header row and returns it for chaining.
// Header rows always precede data rows.
func (t *Table) AddHeaderRow() *Row {
	r := &Row{isHeader: true}
	insertIdx := 0
	for i, existing := range t.rows {
		if !existing.isHeader {
			insertIdx = i
			break
		}
		insertIdx = i + 1
	}
	t.rows = append(t.rows, nil)
	copy(t.rows[insertIdx+1:], t.rows[insertIdx:])
	t.rows[insertIdx] = r
	t.headerRows++
	return r
}

// Render draws the table and returns its total height.
func (t *Table) Render() float64 {
	widths := t.calculateWidths()
	if len(widths) == 0 {
		return 0
	}

	y := t.y
	bodyIdx := 0
	for _, r := range t.rows {
		idx := -1
		if !r.isHeader {
			idx = bodyIdx
			bodyIdx++
		}
		y += t.renderRow(r, widths, y, idx)
	}

	t.surface.SetDrawColor(backend.DefaultDrawColor)
	t.surface.SetFillColor(backend.DefaultFillColor)
	t.surface.SetTextColor(backend.DefaultTextColor)
	if t.style.Border != nil && t.style.Border.Width > 0 {
		t.surface.SetLineWidth(backend.DefaultLineWidth)
	}

	return y - t.y
}

// calculateWidths computes final column widths: fixed columns keep their
// width and auto columns share what is left of the table width.
func (t *Table) calculateWidths() []float64 {
	numCols := len(t.columns)
	if numCols == 0 {
		if len(t.rows) > 0 {
			numCols = len(t.rows[0].cells)
		}
		if numCols == 0 {
			return nil
		}
		t.columns = make([]ColumnDef, numCols)
	}

	widths := make([]float64, numCols)
	fixedTotal := 0.0
	autoCount := 0
	for i, col := range t.columns {
		if col.Width > 0 {
			widths[i] = col.Width
			fixedTotal += col.Width
		} else {
			autoCount++
		}
	}

	if autoCount > 0 {
		autoWidth := math.Max(0, t.tableWidth-fixedTotal) / float64(autoCount)
		for i, col := range t.columns {
			if col.Width <= 0 {
				widths[i] = autoWidth
			}
		}
	}

	return widths
}

func (t *Table) lineHeight(font FontSpec) float64 {
	mult := t.style.LineHeight
	if mult <= 0 {
		mult = 1
	}
	return layout.LineHeight(font.Size, mult)
}

// calculateRowHeight computes the height needed for a row based on cell content.
func (t *Table) calculateRowHeight(r *Row, widths []float64) float64 {
	padding := t.style.CellPadding
	font := t.rowStyle(r.isHeader, 0).fontOr(t.baseFont())
	maxH := 0.0

	for col, text := range r.cells {
		if col >= len(widths) {
			break
		}
		contentW := math.Max(1, widths[col]-padding.Left-padding.Right)
		lines := math.Max(1, float64(layout.EstimateLines(text, contentW, font.Size)))
		maxH = math.Max(maxH, lines*t.lineHeight(font)+padding.Top+padding.Bottom)
	}

	return maxH
}

func (t *Table) baseFont() FontSpec {
	if t.style.CellFont != nil {
		return *t.style.CellFont
	}
	return DefaultFont
}

// renderRow draws a row with its top edge at y and returns its height.
func (t *Table) renderRow(r *Row, widths []float64, y float64, bodyIdx int) float64 {
	rowH := t.calculateRowHeight(r, widths)
	padding := t.style.CellPadding
	style := t.rowStyle(r.isHeader, bodyIdx)
	font := style.fontOr(t.baseFont())

	if t.style.Border != nil {
		t.surface.SetDrawColor(t.style.Border.Color)
		if t.style.Border.Width > 0 {
			t.surface.SetLineWidth(t.style.Border.Width)
		}
	}

	x := t.x
	for col, text := range r.cells {
		if col >= len(widths) {
			break
		}
		cellW := widths[col]

		if style.FillColor != nil {
			t.surface.SetFillColor(*style.FillColor)
			t.surface.DrawRect(x, y, cellW, rowH, backend.Fill)
		}
		t.surface.DrawRect(x, y, cellW, rowH, backend.Stroke)

		textColor := backend.DefaultTextColor
		if style.TextColor != nil {
			textColor = *style.TextColor
		}
		t.surface.SetTextColor(textColor)
		t.surface.SetFont(font.Family, font.Style, font.Size)

		t.surface.MoveTo(x+padding.Left, y+padding.Top)
		t.surface.DrawTextBlock(cellW-padding.Left-padding.Right, t.lineHeight(font), text, false, t.cellAlign(style, r.isHeader, col), false)

		x += cellW
	}

	return rowH
}

func (t *Table) cellAlign(style CellStyle, isHeader bool, col int) backend.Align {
	if !isHeader && col < len(t.columns) && t.columns[col].Align != "" {
		return t.columns[col].Align
	}
	if style.Align != "" {
		return style.Align
	}
	return backend.AlignLeft
}

// rowStyle merges the table font with the header style or, for body rows,
// the alternate row style selected by bodyIdx.
func (t *Table) rowStyle(isHeader bool, bodyIdx int) CellStyle {
	var result CellStyle
	if t.style.CellFont != nil {
		result.Font = t.style.CellFont
	}

	if isHeader {
		if t.style.HeaderStyle != nil {
			mergeStyle(&result, t.style.HeaderStyle)
		}
		return result
	}

	if t.style.AlternateRows != nil && bodyIdx >= 0 {
		if bodyIdx%2 == 0 {
			mergeStyle(&result, &t.style.AlternateRows.Even)
		} else {
			mergeStyle(&result, &t.style.AlternateRows.Odd)
		}
	}
	return result
}

func (s CellStyle) fontOr(def FontSpec) FontSpec {
	if s.Font == nil {
		return def
	}
	f := *s.Font
	if f.Family == "" {
		f.Family = def.Family
	}
	if f.Size <= 0 {
		f.Size = def.Size
	}
	return f
}

// mergeStyle copies non-nil fields from src to dst.
func mergeStyle(dst, src *CellStyle) {
	if src.FillColor != nil {
		dst.FillColor = src.FillColor
	}
	if src.TextColor != nil {
		dst.TextColor = src.TextColor
	}
	if src.Font != nil {
		dst.Font = src.Font
	}
	if src.Align != "" {
		dst.Align = src.Align
	}
}
