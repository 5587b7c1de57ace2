package pdfme

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/lvillar/pdfme/backend"
	"github.com/lvillar/pdfme/color"
	"github.com/lvillar/pdfme/databind"
)

// Element is one element descriptor: a type tag plus type-specific
// attributes, as decoded from the template.
type Element map[string]any

// Type returns the element type tag.
func (e Element) Type() string {
	s, _ := e["type"].(string)
	return s
}

// Name returns the data field the element is bound to, if any.
func (e Element) Name() string {
	s, _ := e["name"].(string)
	return s
}

// Has reports whether the attribute is present and not null.
func (e Element) Has(key string) bool {
	v, ok := e[key]
	return ok && v != nil
}

// Content returns the static content, falling back to the legacy text
// attribute.
func (e Element) Content() string {
	for _, key := range []string{"content", "text"} {
		if v, ok := e[key]; ok && v != nil {
			if s, ok := databind.Stringify(v); ok {
				return s
			}
		}
	}
	return ""
}

// Attrs reads typed attributes from an element. The first malformed
// attribute is remembered and reported by Err; reads after it return
// their defaults.
type Attrs struct {
	e   Element
	err error
}

// ReadAttrs returns an attribute reader for e.
func ReadAttrs(e Element) *Attrs {
	return &Attrs{e: e}
}

// Err returns the first attribute error, an *InvalidTemplateError or a
// *ColorParseError.
func (a *Attrs) Err() error {
	return a.err
}

func (a *Attrs) fail(err error) {
	if a.err == nil {
		a.err = err
	}
}

func (a *Attrs) lookup(key string) (any, bool) {
	if a.err != nil {
		return nil, false
	}
	v, ok := a.e[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Has reports whether the attribute is present.
func (a *Attrs) Has(key string) bool {
	return a.e.Has(key)
}

// OptFloat returns a numeric attribute and whether it was present.
func (a *Attrs) OptFloat(key string) (float64, bool) {
	v, ok := a.lookup(key)
	if !ok {
		return 0, false
	}
	f, ok := toFloat(v)
	if !ok {
		a.fail(invalidf("attribute %q: want a number, got %T", key, v))
		return 0, false
	}
	return f, true
}

// Float returns a numeric attribute or def when absent.
func (a *Attrs) Float(key string, def float64) float64 {
	if f, ok := a.OptFloat(key); ok {
		return f
	}
	return def
}

// OptLength is OptFloat for sizes: negative values are an error.
func (a *Attrs) OptLength(key string) (float64, bool) {
	f, ok := a.OptFloat(key)
	if ok && f < 0 {
		a.fail(invalidf("attribute %q: negative value %g", key, f))
		return 0, false
	}
	return f, ok
}

// Length returns a non-negative size attribute or def when absent.
func (a *Attrs) Length(key string, def float64) float64 {
	if f, ok := a.OptLength(key); ok {
		return f
	}
	return def
}

// FontSize returns the fontSize attribute in points, or def when absent.
// Zero and negative sizes are an error.
func (a *Attrs) FontSize(def float64) float64 {
	size, ok := a.OptFloat("fontSize")
	if !ok {
		return def
	}
	if size <= 0 {
		a.fail(invalidf("fontSize must be positive, got %g", size))
		return def
	}
	return size
}

// Position returns the top-left corner from position{x,y}, falling back
// to flat x and y attributes. Missing coordinates are 0. The position may
// be decoded JSON or a Go map of numbers.
func (a *Attrs) Position() (x, y float64) {
	v, ok := a.lookup("position")
	if !ok {
		return a.coord(a.e, "x"), a.coord(a.e, "y")
	}
	m, ok := asObject(v)
	if !ok {
		a.fail(invalidf("attribute \"position\": want an object, got %T", v))
		return 0, 0
	}
	return a.coord(m, "x"), a.coord(m, "y")
}

func (a *Attrs) coord(m map[string]any, key string) float64 {
	v, ok := m[key]
	if !ok || v == nil || a.err != nil {
		return 0
	}
	f, ok := toFloat(v)
	if !ok {
		a.fail(invalidf("coordinate %q: want a number, got %T", key, v))
		return 0
	}
	if f < 0 {
		a.fail(invalidf("coordinate %q: negative value %g", key, f))
		return 0
	}
	return f
}

// OptString returns a string attribute and whether it was present.
// Numbers and booleans are stringified.
func (a *Attrs) OptString(key string) (string, bool) {
	v, ok := a.lookup(key)
	if !ok {
		return "", false
	}
	s, ok := databind.Stringify(v)
	if !ok {
		a.fail(invalidf("attribute %q: want a string, got %T", key, v))
		return "", false
	}
	return s, true
}

// String returns the first present string attribute among keys, or "".
func (a *Attrs) String(keys ...string) string {
	for _, key := range keys {
		if s, ok := a.OptString(key); ok {
			return s
		}
	}
	return ""
}

// Bool returns a boolean attribute. Numbers count as true when non-zero.
func (a *Attrs) Bool(key string) bool {
	v, ok := a.lookup(key)
	if !ok {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	if f, ok := toFloat(v); ok {
		return f != 0
	}
	a.fail(invalidf("attribute %q: want a boolean, got %T", key, v))
	return false
}

// Color returns the first present color among keys. Empty strings count
// as absent.
func (a *Attrs) Color(keys ...string) (color.RGB, bool) {
	for _, key := range keys {
		v, ok := a.lookup(key)
		if !ok {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		c, err := color.Normalize(v)
		if err != nil {
			a.fail(err)
			return color.RGB{}, false
		}
		return c, true
	}
	return color.RGB{}, false
}

// Alignment returns the horizontal alignment from alignment (left, center,
// right, justify) or the legacy align code. Unknown values mean left.
func (a *Attrs) Alignment() backend.Align {
	s := strings.ToLower(strings.TrimSpace(a.String("alignment", "align")))
	switch s {
	case "center", "c":
		return backend.AlignCenter
	case "right", "r":
		return backend.AlignRight
	case "justify", "j":
		return backend.AlignJustify
	default:
		return backend.AlignLeft
	}
}

// Strings returns a list of strings. Scalar items are stringified.
func (a *Attrs) Strings(key string) []string {
	v, ok := a.lookup(key)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		a.fail(invalidf("attribute %q: want a list, got %T", key, v))
		return nil
	}
	out := make([]string, len(items))
	for i, it := range items {
		s, ok := databind.Stringify(it)
		if !ok {
			a.fail(invalidf("attribute %q: item %d is not a scalar", key, i))
			return nil
		}
		out[i] = s
	}
	return out
}

// Floats returns a list of numbers.
func (a *Attrs) Floats(key string) []float64 {
	v, ok := a.lookup(key)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		a.fail(invalidf("attribute %q: want a list, got %T", key, v))
		return nil
	}
	out := make([]float64, len(items))
	for i, it := range items {
		f, ok := toFloat(it)
		if !ok {
			a.fail(invalidf("attribute %q: item %d is not a number", key, i))
			return nil
		}
		out[i] = f
	}
	return out
}

// Sub returns a reader over a nested object attribute. An absent
// attribute yields a reader over an empty element. Errors are shared with
// the parent reader.
func (a *Attrs) Sub(key string) *Attrs {
	v, ok := a.lookup(key)
	if !ok {
		return &Attrs{e: Element{}, err: a.err}
	}
	m, ok := asObject(v)
	if !ok {
		a.fail(invalidf("attribute %q: want an object, got %T", key, v))
		return &Attrs{e: Element{}, err: a.err}
	}
	return &Attrs{e: Element(m)}
}

// asObject accepts the object shapes an element may carry: decoded JSON
// and the map types Go callers build by hand.
func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Element:
		return m, true
	case map[string]float64:
		return widen(m), true
	case map[string]int:
		return widen(m), true
	case map[string]string:
		return widen(m), true
	default:
		return nil, false
	}
}

func widen[V any](m map[string]V) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Merge folds the error of a sub-reader into a.
func (a *Attrs) Merge(sub *Attrs) {
	if sub.err != nil {
		a.fail(sub.err)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
