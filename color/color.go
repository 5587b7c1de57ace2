// Package color normalizes template color values into RGB triples.
//
// Templates express colors either as hex strings ("#RGB", "#RRGGBB", with
// or without the leading '#', any case) or as a three element numeric
// triple such as [255, 128, 0]. Both forms normalize to an RGB value whose
// channels are integers in [0,255].
package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGB is a color with 8-bit channels.
type RGB struct {
	R, G, B int
}

// Common colors.
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// Hex returns the color as a lowercase "#rrggbb" string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseError reports a color value that could not be normalized.
type ParseError struct {
	Value  any
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("color: cannot parse %#v: %s", e.Value, e.Reason)
}

// Normalize converts a hex string or a numeric triple into an RGB value.
func Normalize(v any) (RGB, error) {
	switch c := v.(type) {
	case RGB:
		return c, checkChannels(v, c.R, c.G, c.B)
	case *RGB:
		if c == nil {
			return RGB{}, &ParseError{Value: v, Reason: "nil color"}
		}
		return *c, checkChannels(v, c.R, c.G, c.B)
	case string:
		return ParseHex(c)
	case [3]int:
		return RGB{c[0], c[1], c[2]}, checkChannels(v, c[0], c[1], c[2])
	case []int:
		if len(c) != 3 {
			return RGB{}, &ParseError{Value: v, Reason: "triple must have 3 elements"}
		}
		return RGB{c[0], c[1], c[2]}, checkChannels(v, c[0], c[1], c[2])
	case []float64:
		items := make([]any, len(c))
		for i, f := range c {
			items[i] = f
		}
		return fromSlice(v, items)
	case []any:
		return fromSlice(v, c)
	default:
		return RGB{}, &ParseError{Value: v, Reason: fmt.Sprintf("unsupported type %T", v)}
	}
}

// ParseHex parses "#RGB" or "#RRGGBB". The leading '#' is optional and
// digits are case-insensitive.
func ParseHex(s string) (RGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3:
		hex = Expand(hex)
	case 6:
	default:
		return RGB{}, &ParseError{Value: s, Reason: "hex color must have 3 or 6 digits"}
	}

	var ch [3]int
	for i := range ch {
		n, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGB{}, &ParseError{Value: s, Reason: "invalid hex digit"}
		}
		ch[i] = int(n)
	}
	return RGB{ch[0], ch[1], ch[2]}, nil
}

// Expand turns a 3-digit hex code into its 6-digit form by duplicating
// each digit ("abc" becomes "aabbcc"). Other inputs are returned as is.
func Expand(hex string) string {
	if len(hex) != 3 {
		return hex
	}
	var b strings.Builder
	b.Grow(6)
	for i := 0; i < 3; i++ {
		b.WriteByte(hex[i])
		b.WriteByte(hex[i])
	}
	return b.String()
}

func fromSlice(orig any, items []any) (RGB, error) {
	if len(items) != 3 {
		return RGB{}, &ParseError{Value: orig, Reason: "triple must have 3 elements"}
	}
	var ch [3]int
	for i, item := range items {
		n, ok := channel(item)
		if !ok {
			return RGB{}, &ParseError{Value: orig, Reason: fmt.Sprintf("channel %d is not an integer", i)}
		}
		ch[i] = n
	}
	return RGB{ch[0], ch[1], ch[2]}, checkChannels(orig, ch[0], ch[1], ch[2])
}

func channel(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint8:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func checkChannels(orig any, chans ...int) error {
	for _, c := range chans {
		if c < 0 || c > 255 {
			return &ParseError{Value: orig, Reason: "channel out of range [0,255]"}
		}
	}
	return nil
}
