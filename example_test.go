package pdfme_test

import (
	"bytes"
	"fmt"

	"github.com/lvillar/pdfme"
	"github.com/lvillar/pdfme/backend"
	"github.com/lvillar/pdfme/databind"
)

func ExampleGenerator_Generate() {
	template := `{
		"basePdf": {"width": 210, "height": 297, "padding": [10, 10, 10, 10]},
		"title": "Invoice #1234",
		"schemas": [[
			{"type": "rectangle", "position": {"x": 10, "y": 10}, "width": 190, "height": 20, "color": "#2980ba"},
			{"type": "text", "name": "heading", "position": {"x": 14, "y": 14}, "width": 180, "height": 12,
			 "fontSize": 20, "fontColor": "#fff", "bold": true, "verticalAlignment": "middle"},
			{"type": "text", "content": "Bill to: {{ customer.name }}", "position": {"x": 10, "y": 40}, "width": 190},
			{"type": "table", "name": "lines", "position": {"x": 10, "y": 50}, "width": 190,
			 "head": ["Item", "Qty", "Price"], "headWidthPercentages": [60, 15, 25],
			 "headStyles": {"backgroundColor": "#2980ba", "fontColor": "#ffffff"}},
			{"type": "qrcode", "content": "https://example.com/invoices/1234", "position": {"x": 170, "y": 250}, "width": 30, "height": 30}
		]]
	}`

	tpl, err := pdfme.ParseTemplate([]byte(template), "invoice.json")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	data := databind.Record{
		"heading":  "Invoice #1234",
		"customer": map[string]any{"name": "John Doe"},
		"lines":    []any{[]any{"Premium Widget", 10, "$50.00"}, []any{"Installation", 1, "$50.00"}},
	}

	var buf bytes.Buffer
	if err := pdfme.New().GenerateTo(&buf, tpl, []databind.Record{data}); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Generated PDF: %d bytes\n", buf.Len())
	// Output pattern: Generated PDF: NNNN bytes
}

func ExampleRegistry_RegisterFunc() {
	reg := pdfme.DefaultRegistry()

	// A note placed below whatever was drawn before it.
	reg.RegisterFunc("note", func(ctx *pdfme.RenderContext, e pdfme.Element) (pdfme.RenderResult, error) {
		box := pdfme.ResultOf(e)
		y := ctx.NextY(box.Y)
		b := ctx.Backend()
		b.SetFont("Helvetica", "I", 9)
		b.MoveTo(box.X, y)
		end := b.DrawTextBlock(box.Width, 4, ctx.ResolveContent(e), false, backend.AlignLeft, false)
		return pdfme.RenderResult{X: box.X, Y: y, Width: box.Width, Height: end - y}, nil
	})

	tpl := &pdfme.Template{Pages: []pdfme.Page{{Elements: []pdfme.Element{
		{"type": "text", "content": "Title", "position": map[string]any{"x": 10.0, "y": 10.0}, "width": 100.0, "height": 8.0},
		{"type": "note", "content": "Generated for {{ user }}", "position": map[string]any{"x": 10.0}, "width": 100.0},
	}}}}

	out, err := pdfme.New(pdfme.WithRegistry(reg)).Generate(tpl, []databind.Record{{"user": "Ada"}})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Generated PDF: %d bytes\n", len(out))
	// Output pattern: Generated PDF: NNNN bytes
}
