package pdfme

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lvillar/pdfme/color"
)

// Sentinel errors.
var (
	// ErrUnsupported is returned when an element needs a capability the
	// backend does not offer.
	ErrUnsupported = errors.New("pdfme: unsupported operation")
)

// ColorParseError reports a malformed color value.
type ColorParseError = color.ParseError

// RendererNotFoundError is returned by Registry.Get for an unregistered
// element type. Generation never returns it: unknown types are skipped.
type RendererNotFoundError struct {
	Type string
}

func (e *RendererNotFoundError) Error() string {
	return fmt.Sprintf("pdfme: no renderer registered for type %q", e.Type)
}

// InvalidTemplateError reports a structural problem with a template:
// a missing element type, missing or negative geometry, or an attribute
// of the wrong kind. Page and Element are 1-based; zero means the error is
// not tied to a page or element.
type InvalidTemplateError struct {
	Page    int
	Element int
	Type    string
	Reason  string
	Err     error
}

func (e *InvalidTemplateError) Error() string {
	var b strings.Builder
	b.WriteString("pdfme: invalid template")
	if e.Page > 0 {
		fmt.Fprintf(&b, ": page %d", e.Page)
		if e.Element > 0 {
			fmt.Fprintf(&b, " element %d", e.Element)
		}
		if e.Type != "" {
			fmt.Fprintf(&b, " (%s)", e.Type)
		}
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *InvalidTemplateError) Unwrap() error {
	return e.Err
}

// invalidf creates an InvalidTemplateError not yet tied to an element.
func invalidf(format string, args ...any) *InvalidTemplateError {
	return &InvalidTemplateError{Reason: fmt.Sprintf(format, args...)}
}

// locate attaches page, element and type information to err.
func locate(err error, page, elem int, typ string) error {
	var inv *InvalidTemplateError
	if errors.As(err, &inv) {
		if inv.Page == 0 {
			inv.Page, inv.Element, inv.Type = page, elem, typ
		}
		return err
	}
	return fmt.Errorf("pdfme: page %d element %d (%s): %w", page, elem, typ, err)
}
