package pdfme

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/lvillar/pdfme/backend"
	"github.com/lvillar/pdfme/databind"
)

func TestParseTemplateForms(t *testing.T) {
	jsonSrc := `{
		"basePdf": {"width": 210, "height": 297, "padding": [10, 20, 30, 40]},
		"schemas": [[{"type": "text", "name": "a"}], {"elements": [{"type": "line"}]}],
		"sampleData": [{"a": "x"}]
	}`
	yamlSrc := `
baseDocument:
  width: 210
  height: 297
  padding: {top: 10, right: 20, bottom: 30, left: 40}
pages:
  - - type: text
      name: a
  - elements:
      - type: line
sampledata:
  - a: x
`
	for name, src := range map[string]string{"json": jsonSrc, "yaml": yamlSrc} {
		t.Run(name, func(t *testing.T) {
			tpl, err := ParseTemplate([]byte(src), name)
			if err != nil {
				t.Fatalf("ParseTemplate failed: %v", err)
			}
			want := &Template{
				BaseDocument: BaseDocument{Width: 210, Height: 297, Padding: &Padding{10, 20, 30, 40}},
				Pages: []Page{
					{Elements: []Element{{"type": "text", "name": "a"}}},
					{Elements: []Element{{"type": "line"}}},
				},
				SampleData: []databind.Record{{"a": "x"}},
			}
			if diff := cmp.Diff(want, tpl); diff != "" {
				t.Fatalf("template mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPaddingForms(t *testing.T) {
	tests := []struct {
		src  string
		want Padding
	}{
		{`5`, Padding{5, 5, 5, 5}},
		{`[5]`, Padding{5, 5, 5, 5}},
		{`[1, 2, 3, 4]`, Padding{1, 2, 3, 4}},
		{`{"top": 1, "left": 4}`, Padding{Top: 1, Left: 4}},
	}
	for _, tc := range tests {
		var p Padding
		if err := p.UnmarshalJSON([]byte(tc.src)); err != nil {
			t.Fatalf("UnmarshalJSON(%s) failed: %v", tc.src, err)
		}
		if p != tc.want {
			t.Errorf("UnmarshalJSON(%s) = %v, want %v", tc.src, p, tc.want)
		}
	}

	var p Padding
	if err := p.UnmarshalJSON([]byte(`[1, 2]`)); err == nil {
		t.Fatal("two-value padding accepted")
	}
}

func TestBaseDocumentString(t *testing.T) {
	tpl, err := ParseTemplate([]byte(`{"basePdf": "forms/w9.pdf", "schemas": [[]]}`), "t")
	if err != nil {
		t.Fatalf("ParseTemplate failed: %v", err)
	}
	if tpl.BaseDocument.PDF != "forms/w9.pdf" {
		t.Fatalf("background = %q", tpl.BaseDocument.PDF)
	}

	tpl, err = ParseTemplate([]byte(`{"basePdf": "BLANK_PDF", "schemas": [[]]}`), "t")
	if err != nil {
		t.Fatalf("ParseTemplate failed: %v", err)
	}
	if tpl.BaseDocument.PDF != "" {
		t.Fatalf("BLANK_PDF produced background %q", tpl.BaseDocument.PDF)
	}
}

func TestGeometry(t *testing.T) {
	g, err := BaseDocument{Orientation: "landscape", PDF: "bg.pdf"}.Geometry()
	if err != nil {
		t.Fatalf("Geometry failed: %v", err)
	}
	want := backend.PageGeometry{Orientation: "L", Background: "bg.pdf"}
	if diff := cmp.Diff(want, g); diff != "" {
		t.Fatalf("geometry mismatch (-want +got):\n%s", diff)
	}
	if !g.Margins.IsZero() {
		t.Fatal("absent padding produced margins")
	}

	for _, d := range []BaseDocument{{Width: 100}, {Height: 100}, {Width: -1, Height: -1}} {
		_, err := d.Geometry()
		var inv *InvalidTemplateError
		if !errors.As(err, &inv) {
			t.Errorf("Geometry(%+v) err = %v", d, err)
		}
	}
}

func TestParseTemplateErrors(t *testing.T) {
	for _, src := range []string{"", "   ", "{", "pages: [unclosed"} {
		if _, err := ParseTemplate([]byte(src), "bad"); err == nil {
			t.Errorf("ParseTemplate(%q) succeeded", src)
		}
	}
}

func TestParseData(t *testing.T) {
	records, err := ParseData([]byte(`{"name": "Ada", "order": {"id": 7}}`), "data.json")
	if err != nil {
		t.Fatalf("ParseData failed: %v", err)
	}
	want := []databind.Record{{"name": "Ada", "order": map[string]any{"id": 7.0}}}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}

	records, err = ParseData([]byte("- name: Ada\n- name: Bob\n"), "data.yaml")
	if err != nil {
		t.Fatalf("ParseData failed: %v", err)
	}
	if len(records) != 2 || records[1]["name"] != "Bob" {
		t.Fatalf("records = %v", records)
	}

	if _, err := ParseData([]byte(`[1, 2]`), "bad.json"); err == nil {
		t.Fatal("ParseData accepted a list of numbers")
	}
}

func TestLoadTemplateFS(t *testing.T) {
	fsys := fstest.MapFS{
		"invoice.yaml": {Data: []byte("pages:\n  - - type: text\n      content: hi\n")},
	}
	tpl, err := LoadTemplateFS(fsys, "invoice.yaml")
	if err != nil {
		t.Fatalf("LoadTemplateFS failed: %v", err)
	}
	if got := tpl.Pages[0].Elements[0].Content(); got != "hi" {
		t.Fatalf("content = %q", got)
	}
	if _, err := LoadTemplateFS(fsys, "missing.yaml"); err == nil {
		t.Fatal("missing file loaded")
	}
}

func TestValidate(t *testing.T) {
	tpl := &Template{Pages: []Page{{}, {Elements: []Element{{"type": "text"}, {"type": ""}}}}}
	err := tpl.Validate()
	var inv *InvalidTemplateError
	if !errors.As(err, &inv) || inv.Page != 2 || inv.Element != 2 {
		t.Fatalf("Validate = %v", err)
	}
}
