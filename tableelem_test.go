package pdfme

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lvillar/pdfme/backend"
	"github.com/lvillar/pdfme/color"
	"github.com/lvillar/pdfme/databind"
	"github.com/lvillar/pdfme/layout"
)

func tableTexts(t *testing.T, e Element, data databind.Record) []any {
	t.Helper()
	rec, _, err := renderOne(t, TableRenderer{}, e, data)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	var texts []any
	for _, c := range rec.Find("DrawTextBlock") {
		texts = append(texts, c.Args[2])
	}
	return texts
}

func TestTableRowsSources(t *testing.T) {
	data := databind.Record{
		"items":    []any{[]any{"Widget", 2.0}, []any{"Gadget", 1.0}},
		"currency": "EUR",
	}
	tests := []struct {
		name string
		elem Element
		want []any
	}{
		{
			name: "bound rows",
			elem: Element{"name": "items", "head": []any{"Item", "Qty"}},
			want: []any{"Item", "Qty", "Widget", "2", "Gadget", "1"},
		},
		{
			name: "json content",
			elem: Element{"head": []any{"Item", "Price"}, "content": `[["Tea","3 {{currency}}"]]`},
			want: []any{"Item", "Price", "Tea", "3 EUR"},
		},
		{
			name: "list content without head",
			elem: Element{"content": []any{[]any{"a", "b"}, []any{"c"}}},
			want: []any{"a", "b", "c", ""},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.elem["type"] = "table"
			tc.elem["width"] = 100.0
			if diff := cmp.Diff(tc.want, tableTexts(t, tc.elem, data)); diff != "" {
				t.Fatalf("cell texts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTableGeometry(t *testing.T) {
	e := Element{
		"type":                 "table",
		"position":             map[string]any{"x": 10.0, "y": 50.0},
		"width":                100.0,
		"height":               5.0,
		"head":                 []any{"A", "B"},
		"headWidthPercentages": []any{30.0, 70.0},
		"content":              []any{[]any{"1", "2"}},
		"cellPadding":          2.0,
		"fontSize":             10.0,
	}
	rec, res, err := renderOne(t, TableRenderer{}, e, nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	var widths []float64
	for _, c := range rec.Find("DrawRect") {
		widths = append(widths, c.Args[2].(float64))
	}
	if diff := cmp.Diff([]float64{30, 70, 30, 70}, widths); diff != "" {
		t.Fatalf("cell widths mismatch (-want +got):\n%s", diff)
	}
	rowH := layout.LineHeight(10, 1) + 4
	if math.Abs(res.Height-2*rowH) > 1e-9 || res.Y != 50 || res.Width != 100 {
		t.Fatalf("result = %+v, want height %v", res, 2*rowH)
	}
}

func TestTableStyles(t *testing.T) {
	e := Element{
		"type":    "table",
		"width":   60.0,
		"head":    []any{"H"},
		"content": []any{[]any{"r1"}, []any{"r2"}},
		"headStyles": map[string]any{
			"backgroundColor": "#2980ba",
			"fontColor":       "#ffffff",
		},
		"bodyStyles": map[string]any{
			"alternateBackgroundColor": "#f5f5f5",
		},
		"tableStyles": map[string]any{"borderColor": "#000000", "borderWidth": 0.3},
	}
	rec, _, err := renderOne(t, TableRenderer{}, e, nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	var fills []color.RGB
	for _, c := range rec.Find("SetFillColor") {
		fills = append(fills, c.Args[0].(color.RGB))
	}
	want := []color.RGB{{R: 0x29, G: 0x80, B: 0xba}, {R: 0xf5, G: 0xf5, B: 0xf5}, color.Black}
	if diff := cmp.Diff(want, fills); diff != "" {
		t.Fatalf("fills mismatch (-want +got):\n%s", diff)
	}
	if got := rec.Find("SetFont")[0].Args[1]; got != "B" {
		t.Errorf("header style = %v, want bold", got)
	}
	if got := rec.Find("SetLineWidth"); len(got) != 4 {
		t.Errorf("SetLineWidth calls = %v", got)
	}
}

func TestTableInvalid(t *testing.T) {
	for _, e := range []Element{
		{"type": "table", "content": `[["a"]]`},
		{"type": "table", "width": 50.0, "content": `not json`},
		{"type": "table", "width": 50.0, "content": []any{"flat"}},
		{"type": "table", "width": 50.0, "head": "A,B"},
		{"type": "table", "width": 50.0, "headStyles": map[string]any{"fontColor": "nope"}},
	} {
		_, _, err := renderOne(t, TableRenderer{}, e, nil)
		var inv *InvalidTemplateError
		var perr *ColorParseError
		if !errors.As(err, &inv) && !errors.As(err, &perr) {
			t.Errorf("Render(%v) err = %v", e, err)
		}
	}
}

func TestTableEmpty(t *testing.T) {
	rec, res, err := renderOne(t, TableRenderer{}, Element{"type": "table", "width": 50.0, "height": 7.0}, nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(rec.Calls) != 0 || res.Height != 7 {
		t.Fatalf("calls = %v, result = %+v", rec.Calls, res)
	}
}

func TestTableFontSizeMustBePositive(t *testing.T) {
	tests := []struct {
		name string
		elem Element
	}{
		{"table", Element{"fontSize": -5.0}},
		{"zero", Element{"fontSize": 0.0}},
		{"head", Element{"headStyles": map[string]any{"fontSize": -1.0}}},
		{"body", Element{"bodyStyles": map[string]any{"fontSize": 0}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.elem["type"] = "table"
			tc.elem["width"] = 100.0
			tc.elem["content"] = []any{[]any{"a", "b"}}
			rec, _, err := renderOne(t, TableRenderer{}, tc.elem, nil)
			var inv *InvalidTemplateError
			if !errors.As(err, &inv) {
				t.Fatalf("err = %v, want *InvalidTemplateError", err)
			}
			if n := rec.Count("SetFont"); n != 0 {
				t.Fatalf("SetFont called %d times before the error", n)
			}
		})
	}
}

func TestTableColumnAlignment(t *testing.T) {
	e := Element{
		"type":    "table",
		"width":   90.0,
		"head":    []any{"Item", "Qty", "Price"},
		"content": []any{[]any{"Tea", "2", "3.00"}},
		"bodyStyles": map[string]any{
			"alignment": "center",
		},
		"columnStyles": map[string]any{
			"alignment": map[string]any{"2": "right"},
		},
	}
	rec, _, err := renderOne(t, TableRenderer{}, e, nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	var aligns []any
	for _, c := range rec.Find("DrawTextBlock") {
		aligns = append(aligns, c.Args[4])
	}
	want := []any{
		backend.AlignLeft, backend.AlignLeft, backend.AlignLeft,
		backend.AlignCenter, backend.AlignCenter, backend.AlignRight,
	}
	if diff := cmp.Diff(want, aligns); diff != "" {
		t.Fatalf("alignments mismatch (-want +got):\n%s", diff)
	}
}

func TestTableColumnAlignmentInvalid(t *testing.T) {
	for _, cs := range []any{
		"right",
		map[string]any{"alignment": "right"},
		map[string]any{"alignment": map[string]any{"first": "right"}},
		map[string]any{"alignment": map[string]any{"-1": "right"}},
	} {
		e := Element{"type": "table", "width": 50.0, "content": []any{[]any{"a"}}, "columnStyles": cs}
		_, _, err := renderOne(t, TableRenderer{}, e, nil)
		var inv *InvalidTemplateError
		if !errors.As(err, &inv) {
			t.Errorf("columnStyles %v: err = %v", cs, err)
		}
	}
}
