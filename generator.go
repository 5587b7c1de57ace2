package pdfme

import (
	"bytes"
	"fmt"
	"io"

	"github.com/lvillar/pdfme/backend"
	"github.com/lvillar/pdfme/backend/fpdf"
	"github.com/lvillar/pdfme/databind"
	"github.com/lvillar/pdfme/logging"
)

// Generator renders templates to PDF. It is immutable after New and safe
// for concurrent use; each call creates its own backend.
type Generator struct {
	registry *Registry
	factory  backend.Factory
	document backend.DocumentConfig
	resolver databind.Resolver
	logger   logging.Logger
}

// New creates a Generator. Without options it draws with gofpdf, uses the
// built-in renderers and compresses streams.
func New(opts ...Option) *Generator {
	cfg := &config{
		document: backend.DocumentConfig{Creator: "pdfme", Compress: true},
		logger:   logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.registry == nil {
		cfg.registry = DefaultRegistry()
	}
	if cfg.factory == nil {
		cfg.factory = fpdf.Factory(cfg.backendOpts...)
	}
	return &Generator{
		registry: cfg.registry,
		factory:  cfg.factory,
		document: cfg.document,
		resolver: databind.Resolver{Missing: cfg.missing},
		logger:   cfg.logger,
	}
}

// Registry returns the generator's renderer registry.
func (g *Generator) Registry() *Registry {
	return g.registry
}

// Generate renders tpl with the first of records, or the template's
// first sample record when records is empty. A template without pages
// yields empty output. On error no bytes are returned.
func (g *Generator) Generate(tpl *Template, records []databind.Record) ([]byte, error) {
	if err := tpl.Validate(); err != nil {
		return nil, err
	}
	if len(tpl.Pages) == 0 {
		g.logger.Debug("template has no pages")
		return []byte{}, nil
	}

	geoms := make([]backend.PageGeometry, len(tpl.Pages))
	for i, p := range tpl.Pages {
		geom, err := p.Geometry(tpl.BaseDocument)
		if err != nil {
			return nil, locate(err, i+1, 0, "")
		}
		geoms[i] = geom
	}

	b := g.factory()
	b.Open(g.documentConfig(tpl))

	ctx := &RenderContext{
		backend:  b,
		data:     activeRecord(tpl, records),
		resolver: g.resolver,
		registry: g.registry,
		logger:   g.logger,
	}
	defer func() {
		if err := ctx.cleanup(); err != nil {
			g.logger.Warn("removing temporary files", logging.Error("err", err))
		}
	}()

	for pi, page := range tpl.Pages {
		b.AddPage(geoms[pi])
		for ei, e := range page.Elements {
			if err := g.renderElement(ctx, e, pi+1, ei+1); err != nil {
				return nil, err
			}
		}
	}

	out, err := b.Output()
	if err != nil {
		return nil, fmt.Errorf("pdfme: output: %w", err)
	}
	g.logger.Debug("document generated",
		logging.Int("pages", len(tpl.Pages)),
		logging.Int("bytes", len(out)))
	return out, nil
}

// GenerateTo renders tpl like Generate and writes the document to w.
func (g *Generator) GenerateTo(w io.Writer, tpl *Template, records []databind.Record) error {
	out, err := g.Generate(tpl, records)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, bytes.NewReader(out))
	return err
}

func (g *Generator) renderElement(ctx *RenderContext, e Element, page, index int) error {
	typ := e.Type()
	if !g.registry.Has(typ) {
		g.logger.Debug("skipping element of unknown type",
			logging.String("type", typ),
			logging.Int("page", page),
			logging.Int("element", index))
		return nil
	}
	r, err := g.registry.Get(typ)
	if err != nil {
		return locate(err, page, index, typ)
	}

	b := ctx.Backend()
	res, err := renderWithEffects(b, e, func() (RenderResult, error) {
		return r.Render(ctx, e)
	})
	if err != nil {
		return locate(err, page, index, typ)
	}
	if err := b.Err(); err != nil {
		return locate(err, page, index, typ)
	}
	ctx.SetLastResult(res)
	g.logger.Debug("rendered element",
		logging.String("type", typ),
		logging.Int("page", page),
		logging.Int("element", index),
		logging.Float("y", res.Y),
		logging.Float("height", res.Height))
	return nil
}

func (g *Generator) documentConfig(tpl *Template) backend.DocumentConfig {
	cfg := g.document
	cfg.Fonts = append([]backend.FontSource(nil), g.document.Fonts...)
	if tpl.Title != "" {
		cfg.Title = tpl.Title
	}
	if tpl.Author != "" {
		cfg.Author = tpl.Author
	}
	if tpl.Subject != "" {
		cfg.Subject = tpl.Subject
	}
	return cfg
}

func activeRecord(tpl *Template, records []databind.Record) databind.Record {
	switch {
	case len(records) > 0 && records[0] != nil:
		return records[0]
	case len(records) == 0 && len(tpl.SampleData) > 0 && tpl.SampleData[0] != nil:
		return tpl.SampleData[0]
	default:
		return databind.Record{}
	}
}

// Generate renders tpl with a Generator using the default options.
func Generate(tpl *Template, records []databind.Record) ([]byte, error) {
	return New().Generate(tpl, records)
}
