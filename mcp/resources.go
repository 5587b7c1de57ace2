package mcp

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/lvillar/pdfme"
)

// elementDocs describes the attributes read by the built-in renderers.
var elementDocs = map[string]string{
	"text":      "content, position{x,y}, width, height, fontName, fontSize, fontColor, backgroundColor, alignment, verticalAlignment, lineHeight, characterSpacing, bold, italic, underline, strikethrough",
	"rectangle": "position{x,y}, width, height, color, borderColor, borderWidth",
	"ellipse":   "position{x,y}, width, height, color, borderColor, borderWidth",
	"line":      "position{x,y}, x2, y2 (or width, height), color, borderWidth",
	"image":     "content (path, URL or data URI), src, position{x,y}, width, height",
	"table":     "content (rows), head, headWidthPercentages, position{x,y}, width, height, fontName, fontSize, cellPadding, tableStyles, headStyles, bodyStyles, columnStyles.alignment",
}

const barcodeDoc = "content, position{x,y}, width, height"

// RegisterDefaultResources adds the template resources to the server.
// Resources use the pdfme:// scheme. A nil generator means pdfme.New().
func RegisterDefaultResources(s *Server, g *pdfme.Generator) {
	if g == nil {
		g = pdfme.New()
	}

	s.AddResource(Resource{
		URI:         "pdfme://element-types",
		Name:        "Element Types",
		Description: "The element types the generator can render, with the attributes each one reads.",
		MIMEType:    "application/json",
		Handler: func(uri string) ([]ResourceContent, error) {
			return handleElementTypesResource(g, uri)
		},
	})

	s.AddResource(Resource{
		URI:         "pdfme://template",
		Name:        "Template",
		Description: "Load a JSON or YAML template file and return it in normalized JSON form. Pass the file path as a query parameter: pdfme://template?path=/path/to/template.json",
		MIMEType:    "application/json",
		Handler:     handleTemplateResource,
	})
}

func extractPathFromURI(uri string) string {
	// Parse path from URI like pdfme://template?path=/foo/bar.json
	idx := strings.Index(uri, "path=")
	if idx < 0 {
		return ""
	}
	path := uri[idx+5:]
	if unescaped, err := url.QueryUnescape(path); err == nil {
		return unescaped
	}
	return path
}

func handleElementTypesResource(g *pdfme.Generator, uri string) ([]ResourceContent, error) {
	type elementType struct {
		Type       string `json:"type"`
		Attributes string `json:"attributes,omitempty"`
	}

	var list []elementType
	for _, typ := range g.Registry().Types() {
		doc, ok := elementDocs[typ]
		if !ok && isBarcodeKind(typ) {
			doc = barcodeDoc
		}
		list = append(list, elementType{Type: typ, Attributes: doc})
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return nil, err
	}
	return []ResourceContent{{
		URI:      uri,
		MIMEType: "application/json",
		Text:     string(data),
	}}, nil
}

func handleTemplateResource(uri string) ([]ResourceContent, error) {
	path := extractPathFromURI(uri)
	if path == "" {
		return nil, fmt.Errorf("missing 'path' parameter in URI")
	}

	tpl, err := pdfme.LoadTemplateFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}
	if err := tpl.Validate(); err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(tpl, "", "  ")
	if err != nil {
		return nil, err
	}
	return []ResourceContent{{
		URI:      uri,
		MIMEType: "application/json",
		Text:     string(data),
	}}, nil
}

func isBarcodeKind(typ string) bool {
	for _, k := range pdfme.BarcodeKinds {
		if k == typ {
			return true
		}
	}
	return false
}
