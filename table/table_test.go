package table_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lvillar/pdfme/backend"
	"github.com/lvillar/pdfme/backend/recorder"
	"github.com/lvillar/pdfme/color"
	"github.com/lvillar/pdfme/layout"
	"github.com/lvillar/pdfme/table"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBasicTable(t *testing.T) {
	rec := recorder.New()

	tb := table.New(rec)
	tb.SetPosition(10, 20).SetWidth(160)
	tb.SetColumns(table.ColumnDef{Width: 40}, table.ColumnDef{Width: 60}, table.ColumnDef{Width: 30}, table.ColumnDef{Width: 30})

	h := tb.AddHeaderRow()
	h.AddCell("ID")
	h.AddCell("Name")
	h.AddCell("Qty")
	h.AddCell("Price")

	r := tb.AddRow()
	r.AddCell("1")
	r.AddCell("Widget")
	r.AddCell("10")
	r.AddCell("$5.00")

	height := tb.Render()

	// One line per row at 10pt plus 1mm padding above and below.
	rowH := layout.LineHeight(10, 1) + 2
	if !approx(height, 2*rowH) {
		t.Fatalf("height = %v, want %v", height, 2*rowH)
	}

	if got := rec.Count("DrawTextBlock"); got != 8 {
		t.Fatalf("DrawTextBlock calls = %d, want 8", got)
	}
	if got := rec.Count("DrawRect"); got != 8 {
		t.Fatalf("DrawRect calls = %d, want 8 (borders only)", got)
	}

	moves := rec.Find("MoveTo")
	var xs []float64
	for _, m := range moves[:4] {
		xs = append(xs, m.Args[0].(float64))
	}
	if diff := cmp.Diff([]float64{11, 51, 111, 141}, xs); diff != "" {
		t.Fatalf("cell x positions mismatch (-want +got):\n%s", diff)
	}
	if y := moves[4].Args[1].(float64); !approx(y, 20+rowH+1) {
		t.Fatalf("second row text y = %v, want %v", y, 20+rowH+1)
	}
}

func TestAutoWidthColumns(t *testing.T) {
	rec := recorder.New()

	tb := table.New(rec)
	tb.SetWidth(90)
	tb.SetColumns(table.ColumnDef{}, table.ColumnDef{Width: 30}, table.ColumnDef{})

	r := tb.AddRow()
	r.AddCell("Auto 1")
	r.AddCell("Fixed")
	r.AddCell("Auto 2")
	tb.Render()

	var widths []float64
	for _, c := range rec.Find("DrawRect") {
		widths = append(widths, c.Args[2].(float64))
	}
	if diff := cmp.Diff([]float64{30, 30, 30}, widths); diff != "" {
		t.Fatalf("column widths mismatch (-want +got):\n%s", diff)
	}
}

func TestPercentages(t *testing.T) {
	tests := []struct {
		name  string
		total float64
		pcts  []float64
		want  []float64
	}{
		{"exact", 200, []float64{25, 25, 50}, []float64{50, 50, 100}},
		{"scaled", 90, []float64{1, 2}, []float64{30, 60}},
		{"zero sum", 90, []float64{0, 0}, []float64{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, table.Percentages(tt.total, tt.pcts...)); diff != "" {
				t.Fatalf("widths mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAlternatingRows(t *testing.T) {
	rec := recorder.New()
	even := color.RGB{R: 240, G: 240, B: 240}
	odd := color.RGB{R: 255, G: 255, B: 255}

	tb := table.New(rec)
	tb.SetWidth(60).SetColumns(table.ColumnDef{Width: 60})
	tb.SetStyle(table.TableStyle{
		AlternateRows: &table.AlternateStyle{
			Even: table.CellStyle{FillColor: &even},
			Odd:  table.CellStyle{FillColor: &odd},
		},
	})
	for i := 0; i < 4; i++ {
		tb.AddRow().AddCell(fmt.Sprintf("Row %d", i))
	}
	tb.Render()

	var fills []color.RGB
	for _, c := range rec.Find("SetFillColor") {
		fills = append(fills, c.Args[0].(color.RGB))
	}
	want := []color.RGB{even, odd, even, odd, backend.DefaultFillColor}
	if diff := cmp.Diff(want, fills); diff != "" {
		t.Fatalf("fill colors mismatch (-want +got):\n%s", diff)
	}
}

func TestWrappedCellGrowsRow(t *testing.T) {
	rec := recorder.New()

	tb := table.New(rec)
	tb.SetStyle(table.TableStyle{})
	tb.SetWidth(20).SetColumns(table.ColumnDef{Width: 20})
	// 10pt glyphs are ~2.1mm wide: 20mm holds 9 characters.
	tb.AddRow().AddCell("0123456789012345678")

	height := tb.Render()
	if want := 3 * layout.LineHeight(10, 1); !approx(height, want) {
		t.Fatalf("height = %v, want %v", height, want)
	}
}

func TestStyledCells(t *testing.T) {
	rec := recorder.New()
	headFill := color.RGB{R: 0, G: 51, B: 102}

	tb := table.New(rec)
	tb.SetWidth(120).SetColumns(table.ColumnDef{Width: 60}, table.ColumnDef{Width: 60, Align: backend.AlignRight})
	tb.SetStyle(table.TableStyle{
		Border: &table.BorderStyle{Width: 0.5, Color: color.RGB{R: 180, G: 180, B: 180}},
		HeaderStyle: &table.CellStyle{
			FillColor: &headFill,
			TextColor: &color.White,
			Font:      &table.FontSpec{Style: "B", Size: 11},
		},
	})

	h := tb.AddHeaderRow()
	h.AddCell("Product")
	h.AddCell("Price")
	tb.AddRow().AddCell("Widget").AddCell("$5.00")
	tb.Render()

	fonts := rec.Find("SetFont")
	if got := fonts[0].Args; got[0] != "Helvetica" || got[1] != "B" || got[2] != 11.0 {
		t.Fatalf("header font = %v", got)
	}
	blocks := rec.Find("DrawTextBlock")
	if align := blocks[3].Args[4].(backend.Align); align != backend.AlignRight {
		t.Fatalf("price alignment = %q", align)
	}
	if align := blocks[1].Args[4].(backend.Align); align != backend.AlignLeft {
		t.Fatalf("header alignment = %q, column alignment applies to body cells only", align)
	}
	if got := rec.Find("SetLineWidth"); len(got) == 0 || got[len(got)-1].Args[0] != backend.DefaultLineWidth {
		t.Fatalf("line width not restored: %v", got)
	}
}

func TestHeaderRowsPrecedeBody(t *testing.T) {
	rec := recorder.New()

	tb := table.New(rec)
	tb.SetWidth(50)
	tb.AddRow().AddCell("body")
	tb.AddHeaderRow().AddCell("head")
	tb.Render()

	blocks := rec.Find("DrawTextBlock")
	if blocks[0].Args[2] != "head" || blocks[1].Args[2] != "body" {
		t.Fatalf("unexpected order: %v", blocks)
	}
	if tb.HeaderRows() != 1 {
		t.Fatalf("HeaderRows = %d", tb.HeaderRows())
	}
}

func TestEmptyTable(t *testing.T) {
	rec := recorder.New()

	tb := table.New(rec)
	if h := tb.Render(); h != 0 {
		t.Fatalf("empty table height = %v", h)
	}
	if len(rec.Calls) != 0 {
		t.Fatalf("empty table drew %v", rec.Calls)
	}
}
