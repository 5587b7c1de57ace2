package pdfme

import (
	"sort"
	"sync"
)

// Renderer draws one element type.
type Renderer interface {
	Render(ctx *RenderContext, e Element) (RenderResult, error)
}

// RendererFunc adapts a function to the Renderer interface. It is the
// extension point for element types the library does not know.
type RendererFunc func(ctx *RenderContext, e Element) (RenderResult, error)

// Render calls f(ctx, e).
func (f RendererFunc) Render(ctx *RenderContext, e Element) (RenderResult, error) {
	return f(ctx, e)
}

// Registry maps element type tags to renderers. It is safe for
// concurrent use.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// DefaultRegistry returns a new registry holding the built-in renderers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("text", TextRenderer{})
	r.Register("rectangle", RectangleRenderer{})
	r.Register("ellipse", EllipseRenderer{})
	r.Register("line", LineRenderer{})
	r.Register("image", ImageRenderer{})
	r.Register("table", TableRenderer{})
	for _, kind := range BarcodeKinds {
		r.Register(kind, BarcodeRenderer{Kind: kind})
	}
	return r
}

// Register binds typ to rd, replacing any previous binding.
func (r *Registry) Register(typ string, rd Renderer) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[typ] = rd
	return r
}

// RegisterFunc binds typ to fn.
func (r *Registry) RegisterFunc(typ string, fn func(ctx *RenderContext, e Element) (RenderResult, error)) *Registry {
	return r.Register(typ, RendererFunc(fn))
}

// Has reports whether typ has a renderer.
func (r *Registry) Has(typ string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.renderers[typ]
	return ok
}

// Get returns the renderer for typ or a *RendererNotFoundError.
func (r *Registry) Get(typ string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rd, ok := r.renderers[typ]
	if !ok {
		return nil, &RendererNotFoundError{Type: typ}
	}
	return rd, nil
}

// Types returns the registered type tags in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.renderers))
	for t := range r.renderers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c := NewRegistry()
	for t, rd := range r.renderers {
		c.renderers[t] = rd
	}
	return c
}
