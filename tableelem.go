package pdfme

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/lvillar/pdfme/backend"
	"github.com/lvillar/pdfme/databind"
	"github.com/lvillar/pdfme/table"
)

// TableRenderer draws a table whose body rows come from the bound field
// or the static content: a list of rows or a JSON string encoding one.
type TableRenderer struct{}

func (TableRenderer) Render(ctx *RenderContext, e Element) (RenderResult, error) {
	a := ReadAttrs(e)
	x, y := a.Position()
	w := a.Length("width", 0)
	h := a.Length("height", 0)
	head := a.Strings("head")
	pcts := a.Floats("headWidthPercentages")
	style := readTableStyle(a)
	colAlign := readColumnAlignment(a)
	if err := a.Err(); err != nil {
		return RenderResult{}, err
	}
	if w <= 0 {
		return RenderResult{}, invalidf("table requires a width")
	}
	rows, err := tableRows(ctx, e)
	if err != nil {
		return RenderResult{}, err
	}

	cols := len(head)
	if cols == 0 && len(rows) > 0 {
		cols = len(rows[0])
	}
	if cols == 0 {
		return RenderResult{X: x, Y: y, Width: w, Height: h}, nil
	}

	defs := make([]table.ColumnDef, cols)
	if len(pcts) == cols {
		for i, cw := range table.Percentages(w, pcts...) {
			defs[i].Width = cw
		}
	}
	for i, align := range colAlign {
		if i < cols {
			defs[i].Align = align
		}
	}
	t := table.New(ctx.Backend()).SetPosition(x, y).SetWidth(w).SetStyle(style).SetColumns(defs...)
	if len(head) > 0 {
		hr := t.AddHeaderRow()
		for _, c := range head {
			hr.AddCell(ctx.ResolveText(c))
		}
	}
	for _, row := range rows {
		r := t.AddRow()
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = ctx.ResolveText(row[i])
			}
			r.AddCell(cell)
		}
	}

	drawn := t.Render()
	return RenderResult{X: x, Y: y, Width: w, Height: math.Max(h, drawn)}, nil
}

func readTableStyle(a *Attrs) table.TableStyle {
	font := table.FontSpec{
		Family: a.String("fontName"),
		Size:   a.FontSize(table.DefaultFont.Size),
	}
	if font.Family == "" {
		font.Family = table.DefaultFont.Family
	}
	style := table.TableStyle{
		CellPadding: table.UniformPadding(a.Length("cellPadding", 1)),
		CellFont:    &font,
		LineHeight:  a.Float("lineHeight", 1),
	}

	ts := a.Sub("tableStyles")
	borderColor, hasBorderColor := ts.Color("borderColor")
	borderWidth, hasBorderWidth := ts.OptLength("borderWidth")
	a.Merge(ts)
	if hasBorderColor || hasBorderWidth {
		style.Border = &table.BorderStyle{Width: borderWidth, Color: borderColor}
	}

	hs := a.Sub("headStyles")
	header := readCellStyle(hs, font)
	header.Font.Style = "B"
	a.Merge(hs)
	style.HeaderStyle = &header

	bs := a.Sub("bodyStyles")
	body := readCellStyle(bs, font)
	alt := body
	if c, ok := bs.Color("alternateBackgroundColor"); ok {
		alt.FillColor = &c
	}
	a.Merge(bs)
	style.AlternateRows = &table.AlternateStyle{Even: body, Odd: alt}
	return style
}

func readCellStyle(a *Attrs, base table.FontSpec) table.CellStyle {
	var s table.CellStyle
	if c, ok := a.Color("fontColor"); ok {
		s.TextColor = &c
	}
	if c, ok := a.Color("backgroundColor"); ok {
		s.FillColor = &c
	}
	font := base
	font.Size = a.FontSize(base.Size)
	s.Font = &font
	s.Align = alignOrEmpty(a)
	return s
}

// readColumnAlignment reads columnStyles.alignment, an object keyed by
// zero-based column index: {"alignment": {"2": "right"}}.
func readColumnAlignment(a *Attrs) map[int]backend.Align {
	cs := a.Sub("columnStyles")
	byCol := cs.Sub("alignment")
	cs.Merge(byCol)
	a.Merge(cs)
	if a.Err() != nil || len(byCol.e) == 0 {
		return nil
	}
	out := make(map[int]backend.Align, len(byCol.e))
	for key := range byCol.e {
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 {
			a.fail(invalidf("columnStyles.alignment: %q is not a column index", key))
			return nil
		}
		out[i] = ReadAttrs(Element{"alignment": byCol.e[key]}).Alignment()
	}
	return out
}

func alignOrEmpty(a *Attrs) backend.Align {
	if a.String("alignment", "align") == "" {
		return ""
	}
	return a.Alignment()
}

// tableRows returns the body rows: the bound field when present, else the
// static content. Rows may be lists of scalars or a JSON string of them.
func tableRows(ctx *RenderContext, e Element) ([][]string, error) {
	var raw any
	if v, ok := ctx.Data()[e.Name()]; ok && e.Name() != "" {
		raw = v
	} else if v, ok := e["content"]; ok {
		raw = v
	}
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		var rows [][]any
		if err := json.Unmarshal([]byte(v), &rows); err != nil {
			return nil, &InvalidTemplateError{Reason: "table content is not a JSON array of rows", Err: err}
		}
		return stringifyRows(rows)
	case []any:
		rows := make([][]any, len(v))
		for i, r := range v {
			cells, ok := r.([]any)
			if !ok {
				return nil, invalidf("table row %d is not a list", i+1)
			}
			rows[i] = cells
		}
		return stringifyRows(rows)
	case [][]string:
		return v, nil
	default:
		return nil, invalidf("table content: want rows, got %T", raw)
	}
}

func stringifyRows(rows [][]any) ([][]string, error) {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = make([]string, len(r))
		for j, c := range r {
			s, ok := databind.Stringify(c)
			if !ok {
				return nil, invalidf("table cell %d,%d is not a scalar", i+1, j+1)
			}
			out[i][j] = s
		}
	}
	return out, nil
}
