// Package databind resolves element content from a data record.
//
// Two independent modes are supported. Named-field resolution looks up an
// element's name at the top level of the record. Placeholder substitution
// replaces {{ dot.path }} tokens inside free text by walking nested
// mappings. Neither mode ever fails: missing values resolve to a default.
package databind

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Record maps field names to scalars or nested mappings.
type Record map[string]any

// placeholderRe matches {{ path }} tokens. Whitespace around the path is
// ignored; the path itself is restricted to letters, digits, '_' and '.'.
var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_.]+)\s*\}\}`)

// Resolver carries the resolution defaults. The zero value resolves
// missing values to the empty string.
type Resolver struct {
	// Missing is substituted for placeholders whose path does not resolve.
	Missing string
}

// Named returns the stringified value of name in the top level of rec.
// When name is empty or absent from rec, fallback is returned.
func (r Resolver) Named(rec Record, name, fallback string) string {
	if name == "" {
		return fallback
	}
	v, ok := rec[name]
	if !ok {
		return fallback
	}
	s, _ := Stringify(v)
	return s
}

// Substitute replaces every {{ path }} token in text with the value found
// at path in rec. Unresolvable paths and non-scalar values yield
// r.Missing and "" respectively.
func (r Resolver) Substitute(rec Record, text string) string {
	if !strings.Contains(text, "{{") {
		return text
	}
	return placeholderRe.ReplaceAllStringFunc(text, func(tok string) string {
		path := placeholderRe.FindStringSubmatch(tok)[1]
		v, ok := ValueFromPath(rec, path)
		if !ok {
			return r.Missing
		}
		s, _ := Stringify(v)
		return s
	})
}

// Placeholders returns the paths referenced by text, in order of
// appearance. Duplicates are kept.
func Placeholders(text string) []string {
	matches := placeholderRe.FindAllStringSubmatch(text, -1)
	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, m[1])
	}
	return paths
}

// ValueFromPath walks rec through the dot-separated segments of path.
// It reports false when a segment is missing or an intermediate value is
// not a mapping.
func ValueFromPath(rec Record, path string) (any, bool) {
	var cur any = map[string]any(rec)
	for _, seg := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		v, ok := m[seg]
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// Stringify renders a scalar value as text. It reports false for values
// that are not scalars (mappings, slices), which render as "".
func Stringify(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", true
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.Itoa(x), true
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", x), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case fmt.Stringer:
		return x.String(), true
	default:
		return "", false
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Record:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	default:
		return nil, false
	}
}
