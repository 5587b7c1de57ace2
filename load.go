package pdfme

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lvillar/pdfme/databind"
)

// ParseTemplate decodes a JSON or YAML template. source names the input
// in error messages.
func ParseTemplate(data []byte, source string) (*Template, error) {
	var tpl Template
	if err := decodeDocument(data, source, &tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// LoadTemplateFile reads and parses a template file.
func LoadTemplateFile(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pdfme: read %s: %w", path, err)
	}
	return ParseTemplate(data, path)
}

// LoadTemplateFS reads and parses a template from fsys.
func LoadTemplateFS(fsys fs.FS, name string) (*Template, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("pdfme: read %s: %w", name, err)
	}
	return ParseTemplate(data, name)
}

// ParseData decodes JSON or YAML data records: a single object or a list
// of objects.
func ParseData(data []byte, source string) ([]databind.Record, error) {
	var raw any
	if err := decodeDocument(data, source, &raw); err != nil {
		return nil, err
	}
	switch v := raw.(type) {
	case map[string]any:
		return []databind.Record{v}, nil
	case []any:
		records := make([]databind.Record, 0, len(v))
		for i, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("pdfme: parse %s: record %d is not an object", source, i+1)
			}
			records = append(records, m)
		}
		return records, nil
	default:
		return nil, fmt.Errorf("pdfme: parse %s: want an object or a list of objects", source)
	}
}

// LoadDataFile reads and parses a data file.
func LoadDataFile(path string) ([]databind.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pdfme: read %s: %w", path, err)
	}
	return ParseData(data, path)
}

// decodeDocument decodes JSON, falling back to YAML. YAML is converted to
// JSON first so that the JSON decoding rules of the target apply.
func decodeDocument(data []byte, source string, v any) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("pdfme: file %s is empty", source)
	}
	jsonErr := json.Unmarshal(data, v)
	if jsonErr == nil {
		return nil
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("pdfme: parse %s: invalid JSON (%v) or YAML (%v)", source, jsonErr, err)
	}
	converted, err := json.Marshal(jsonCompatible(doc))
	if err != nil {
		return fmt.Errorf("pdfme: parse %s: %w", source, err)
	}
	if err := json.Unmarshal(converted, v); err != nil {
		return fmt.Errorf("pdfme: parse %s: %w", source, err)
	}
	return nil
}

// jsonCompatible rewrites YAML mappings with non-string keys.
func jsonCompatible(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, item := range x {
			x[k] = jsonCompatible(item)
		}
		return x
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, item := range x {
			m[fmt.Sprint(k)] = jsonCompatible(item)
		}
		return m
	case []any:
		for i, item := range x {
			x[i] = jsonCompatible(item)
		}
		return x
	default:
		return v
	}
}
