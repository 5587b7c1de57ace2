// Package pdfme turns declarative page templates and a data record into
// PDF documents.
//
// A template lists pages of absolutely positioned elements. Each element
// names a type that selects a Renderer from a Registry; renderers resolve
// their attributes and content, draw through a backend.Backend and report
// the box they occupied so later elements can chain below them.
//
// Example JSON:
//
//	{
//	  "basePdf": {"width": 210, "height": 297, "padding": [10, 10, 10, 10]},
//	  "schemas": [[
//	    {"type": "text", "name": "title", "position": {"x": 10, "y": 10},
//	     "width": 190, "height": 12, "fontSize": 20},
//	    {"type": "text", "content": "Dear {{ customer.name }},",
//	     "position": {"x": 10, "y": 30}, "width": 190}
//	  ]],
//	  "sampledata": [{"title": "Invoice"}]
//	}
package pdfme

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/lvillar/pdfme/backend"
	"github.com/lvillar/pdfme/databind"
)

// Template is the top-level description of a document.
type Template struct {
	BaseDocument BaseDocument      `json:"baseDocument"`
	Pages        []Page            `json:"pages"`
	SampleData   []databind.Record `json:"sampledata,omitempty"`
	Title        string            `json:"title,omitempty"`
	Author       string            `json:"author,omitempty"`
	Subject      string            `json:"subject,omitempty"`
}

// UnmarshalJSON accepts basePdf and schemas as aliases of baseDocument
// and pages.
func (t *Template) UnmarshalJSON(data []byte) error {
	type plain Template
	var raw struct {
		plain
		BasePdf *BaseDocument `json:"basePdf"`
		Schemas []Page        `json:"schemas"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Template(raw.plain)
	if t.BaseDocument == (BaseDocument{}) && raw.BasePdf != nil {
		t.BaseDocument = *raw.BasePdf
	}
	if len(t.Pages) == 0 {
		t.Pages = raw.Schemas
	}
	return nil
}

// Validate checks that every element carries a type.
func (t *Template) Validate() error {
	if t == nil {
		return invalidf("nil template")
	}
	for pi, p := range t.Pages {
		for ei, e := range p.Elements {
			if e.Type() == "" {
				return &InvalidTemplateError{Page: pi + 1, Element: ei + 1, Reason: "element has no type"}
			}
		}
	}
	return nil
}

// BaseDocument describes the sheet every page is drawn on.
type BaseDocument struct {
	// Width and Height are the page size in mm. Both zero means A4.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	// Padding becomes the page margins.
	Padding *Padding `json:"padding,omitempty"`
	// Orientation is "P" (portrait) or "L" (landscape).
	Orientation string `json:"orientation,omitempty"`
	// PDF is the path of a document whose first page is the background
	// of every page.
	PDF string `json:"pdf,omitempty"`
}

// UnmarshalJSON also accepts a bare string, the path of a background PDF.
// The pdfme placeholder "BLANK_PDF" means no background.
func (d *BaseDocument) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var path string
		if err := json.Unmarshal(data, &path); err != nil {
			return err
		}
		*d = BaseDocument{}
		if path != "BLANK_PDF" {
			d.PDF = path
		}
		return nil
	}
	type plain BaseDocument
	return json.Unmarshal(data, (*plain)(d))
}

// Geometry converts the base document to the page geometry handed to the
// backend.
func (d BaseDocument) Geometry() (backend.PageGeometry, error) {
	g := backend.PageGeometry{Background: d.PDF}
	switch {
	case d.Width < 0 || d.Height < 0:
		return g, invalidf("negative page size %gx%g", d.Width, d.Height)
	case (d.Width > 0) != (d.Height > 0):
		return g, invalidf("page size needs both width and height, got %gx%g", d.Width, d.Height)
	}
	g.Width, g.Height = d.Width, d.Height

	switch d.Orientation {
	case "", "P", "p", "portrait":
		g.Orientation = "P"
	case "L", "l", "landscape":
		g.Orientation = "L"
	default:
		return g, invalidf("unknown orientation %q", d.Orientation)
	}

	if d.Padding != nil {
		p := *d.Padding
		if p.Top < 0 || p.Right < 0 || p.Bottom < 0 || p.Left < 0 {
			return g, invalidf("negative padding %v", p)
		}
		g.Margins = backend.Margins(p)
	}
	return g, nil
}

// Padding is the space between the sheet edge and the content area, in mm.
type Padding struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// UnmarshalJSON accepts a number (all sides), an array of one or four
// numbers in top, right, bottom, left order, or an object.
func (p *Padding) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '[':
		var vs []float64
		if err := json.Unmarshal(data, &vs); err != nil {
			return fmt.Errorf("padding: %w", err)
		}
		switch len(vs) {
		case 1:
			*p = Padding{vs[0], vs[0], vs[0], vs[0]}
		case 4:
			*p = Padding{vs[0], vs[1], vs[2], vs[3]}
		default:
			return fmt.Errorf("padding: want 1 or 4 values, got %d", len(vs))
		}
	case '{':
		var obj struct {
			Top    float64 `json:"top"`
			Right  float64 `json:"right"`
			Bottom float64 `json:"bottom"`
			Left   float64 `json:"left"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("padding: %w", err)
		}
		*p = Padding(obj)
	default:
		var v float64
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("padding: %w", err)
		}
		*p = Padding{v, v, v, v}
	}
	return nil
}

// Page is an ordered list of elements. The order is the paint order.
// In object form a page may override the base document's size,
// orientation and padding.
type Page struct {
	Elements    []Element `json:"elements"`
	Width       float64   `json:"width,omitempty"`
	Height      float64   `json:"height,omitempty"`
	Orientation string    `json:"orientation,omitempty"`
	Padding     *Padding  `json:"padding,omitempty"`
}

// Geometry returns the page geometry: base with this page's overrides
// applied.
func (p Page) Geometry(base BaseDocument) (backend.PageGeometry, error) {
	if p.Width != 0 || p.Height != 0 {
		base.Width, base.Height = p.Width, p.Height
	}
	if p.Orientation != "" {
		base.Orientation = p.Orientation
	}
	if p.Padding != nil {
		base.Padding = p.Padding
	}
	return base.Geometry()
}

// UnmarshalJSON accepts either an array of elements or an object with an
// elements field.
func (p *Page) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &p.Elements)
	}
	type plain Page
	return json.Unmarshal(data, (*plain)(p))
}
