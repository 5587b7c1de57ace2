package pdfme

import (
	"errors"
	"os"

	"github.com/lvillar/pdfme/backend"
	"github.com/lvillar/pdfme/databind"
	"github.com/lvillar/pdfme/logging"
)

// RenderContext carries the per-call state shared by the renderers of one
// generation: the backend, the active data record and the box of the most
// recently rendered element.
type RenderContext struct {
	backend  backend.Backend
	data     databind.Record
	resolver databind.Resolver
	registry *Registry
	logger   logging.Logger

	last    RenderResult
	hasLast bool
	temps   []string
}

// NewRenderContext returns a context drawing onto b with data as the
// active record. Generators create one per call; tests of custom
// renderers can create their own.
func NewRenderContext(b backend.Backend, data databind.Record) *RenderContext {
	if data == nil {
		data = databind.Record{}
	}
	return &RenderContext{
		backend:  b,
		data:     data,
		registry: DefaultRegistry(),
		logger:   logging.NopLogger{},
	}
}

// Backend returns the backend elements draw onto.
func (c *RenderContext) Backend() backend.Backend {
	return c.backend
}

// Data returns the active data record.
func (c *RenderContext) Data() databind.Record {
	return c.data
}

// Registry returns the registry elements are dispatched through.
func (c *RenderContext) Registry() *Registry {
	return c.registry
}

// Logger returns the generation logger.
func (c *RenderContext) Logger() logging.Logger {
	return c.logger
}

// ResolveText substitutes {{ path }} placeholders in text.
func (c *RenderContext) ResolveText(text string) string {
	return c.resolver.Substitute(c.data, text)
}

// ValueFromPath returns the raw value at a dot path of the record.
func (c *RenderContext) ValueFromPath(path string) (any, bool) {
	return databind.ValueFromPath(c.data, path)
}

// ResolveContent returns the text an element displays: the named field
// when the element's name is bound in the record, otherwise its static
// content with placeholders substituted.
func (c *RenderContext) ResolveContent(e Element) string {
	return c.resolver.Named(c.data, e.Name(), c.ResolveText(e.Content()))
}

// LastResult returns the box of the previous element on the page, if any.
func (c *RenderContext) LastResult() (RenderResult, bool) {
	return c.last, c.hasLast
}

// SetLastResult records the box of the element just rendered.
func (c *RenderContext) SetLastResult(r RenderResult) {
	c.last, c.hasLast = r, true
}

// NextY returns the Y coordinate ChainGap below the previous element, or
// fallback when nothing has been rendered yet.
func (c *RenderContext) NextY(fallback float64) float64 {
	if !c.hasLast {
		return fallback
	}
	return c.last.Bottom() + ChainGap
}

// TempFile writes data to a new temporary file and returns its path.
// pattern follows os.CreateTemp. The file lives until the generation
// call returns.
func (c *RenderContext) TempFile(pattern string, data []byte) (string, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}
	c.temps = append(c.temps, f.Name())
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return f.Name(), nil
}

// cleanup removes the temporary files created during the call.
func (c *RenderContext) cleanup() error {
	var errs []error
	for _, path := range c.temps {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	c.temps = nil
	return errors.Join(errs...)
}
