package mcp

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/lvillar/pdfme"
	"github.com/lvillar/pdfme/databind"
)

// RegisterDefaultTools adds the template tools to the server. A nil
// generator means pdfme.New().
func RegisterDefaultTools(s *Server, g *pdfme.Generator) {
	if g == nil {
		g = pdfme.New()
	}
	s.AddTool(generatePDFTool(g))
	s.AddTool(validateTemplateTool(g))
	s.AddTool(resolveTextTool())
	s.AddTool(listElementTypesTool(g))
}

func generatePDFTool(g *pdfme.Generator) Tool {
	return Tool{
		Name:        "generate_pdf",
		Description: "Generate a PDF from a pdfme template and an optional data record. Placeholders such as {{customer.name}} in element content are filled from the data. Returns the PDF as base64.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"template": map[string]interface{}{
					"description": "Template object with baseDocument and pages, or the template as a JSON/YAML string",
				},
				"data": map[string]interface{}{
					"description": "Data record object, a list of records (only the first is used), or a JSON/YAML string",
				},
				"outputPath": map[string]interface{}{
					"type":        "string",
					"description": "Optional file path to save the PDF. If omitted, returns base64.",
				},
			},
			"required": []string{"template"},
		},
		Handler: func(args map[string]interface{}) (ToolResult, error) {
			return handleGeneratePDF(g, args)
		},
	}
}

func handleGeneratePDF(g *pdfme.Generator, args map[string]interface{}) (ToolResult, error) {
	tpl, err := templateArg(args)
	if err != nil {
		return ToolResult{}, err
	}
	records, err := dataArg(args)
	if err != nil {
		return ToolResult{}, err
	}

	var buf bytes.Buffer
	if err := g.GenerateTo(&buf, tpl, records); err != nil {
		return ToolResult{}, fmt.Errorf("rendering PDF: %w", err)
	}

	if outputPath, ok := args["outputPath"].(string); ok && outputPath != "" {
		if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
			return ToolResult{}, fmt.Errorf("writing file: %w", err)
		}
		return ToolResult{
			Content: []ContentBlock{{
				Type: "text",
				Text: fmt.Sprintf("PDF generated successfully: %s (%d bytes, %d pages)", outputPath, buf.Len(), len(tpl.Pages)),
			}},
		}, nil
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	return ToolResult{
		Content: []ContentBlock{{
			Type: "text",
			Text: fmt.Sprintf("PDF generated successfully (%d bytes, %d pages). Base64 data:\n%s", buf.Len(), len(tpl.Pages), encoded),
		}},
	}, nil
}

func validateTemplateTool(g *pdfme.Generator) Tool {
	return Tool{
		Name:        "validate_template",
		Description: "Check a pdfme template without rendering it: every element needs a type, page geometry must be consistent. Element types without a renderer are reported; they are skipped during generation.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"template": map[string]interface{}{
					"description": "Template object, or the template as a JSON/YAML string",
				},
			},
			"required": []string{"template"},
		},
		Handler: func(args map[string]interface{}) (ToolResult, error) {
			return handleValidateTemplate(g, args)
		},
	}
}

func handleValidateTemplate(g *pdfme.Generator, args map[string]interface{}) (ToolResult, error) {
	tpl, err := templateArg(args)
	if err != nil {
		return ToolResult{}, err
	}
	if err := tpl.Validate(); err != nil {
		return ToolResult{}, err
	}
	for i, p := range tpl.Pages {
		if _, err := p.Geometry(tpl.BaseDocument); err != nil {
			return ToolResult{}, fmt.Errorf("page %d: %w", i+1, err)
		}
	}

	var result strings.Builder
	fmt.Fprintf(&result, "Template is valid: %d pages\n", len(tpl.Pages))
	reg := g.Registry()
	for i, p := range tpl.Pages {
		for j, e := range p.Elements {
			if !reg.Has(e.Type()) {
				fmt.Fprintf(&result, "page %d element %d: no renderer for type %q, it will be skipped\n", i+1, j+1, e.Type())
			}
		}
	}
	return ToolResult{
		Content: []ContentBlock{{Type: "text", Text: result.String()}},
	}, nil
}

func resolveTextTool() Tool {
	return Tool{
		Name:        "resolve_text",
		Description: "Substitute {{path}} placeholders in a text with values from a data record. Paths use dots to reach nested fields.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Text containing placeholders, e.g. 'Dear {{customer.name}}'",
				},
				"data": map[string]interface{}{
					"description": "Data record object, or a JSON/YAML string",
				},
				"missing": map[string]interface{}{
					"type":        "string",
					"description": "Replacement for placeholders whose path does not resolve. Defaults to empty.",
				},
			},
			"required": []string{"text"},
		},
		Handler: handleResolveText,
	}
}

func handleResolveText(args map[string]interface{}) (ToolResult, error) {
	text, ok := args["text"].(string)
	if !ok {
		return ToolResult{}, fmt.Errorf("missing 'text' argument")
	}
	records, err := dataArg(args)
	if err != nil {
		return ToolResult{}, err
	}
	var rec databind.Record
	if len(records) > 0 {
		rec = records[0]
	}
	missing, _ := args["missing"].(string)

	r := databind.Resolver{Missing: missing}
	return ToolResult{
		Content: []ContentBlock{{Type: "text", Text: r.Substitute(rec, text)}},
	}, nil
}

func listElementTypesTool(g *pdfme.Generator) Tool {
	return Tool{
		Name:        "list_element_types",
		Description: "List the element types the generator can render.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
		Handler: func(args map[string]interface{}) (ToolResult, error) {
			types := g.Registry().Types()
			return ToolResult{
				Content: []ContentBlock{{Type: "text", Text: strings.Join(types, "\n")}},
			}, nil
		},
	}
}

// templateArg decodes the "template" argument, given either as a JSON
// object or as a JSON/YAML document string.
func templateArg(args map[string]interface{}) (*pdfme.Template, error) {
	raw, ok := args["template"]
	if !ok || raw == nil {
		return nil, fmt.Errorf("missing 'template' argument")
	}
	data, err := documentBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("encoding template: %w", err)
	}
	return pdfme.ParseTemplate(data, "template")
}

// dataArg decodes the optional "data" argument. An absent argument yields
// no records.
func dataArg(args map[string]interface{}) ([]databind.Record, error) {
	raw, ok := args["data"]
	if !ok || raw == nil {
		return nil, nil
	}
	data, err := documentBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("encoding data: %w", err)
	}
	return pdfme.ParseData(data, "data")
}

func documentBytes(v interface{}) ([]byte, error) {
	if s, ok := v.(string); ok {
		return []byte(s), nil
	}
	return json.Marshal(v)
}
