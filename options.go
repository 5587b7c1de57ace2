package pdfme

import (
	"net/http"
	"time"

	"github.com/lvillar/pdfme/backend"
	"github.com/lvillar/pdfme/backend/fpdf"
	"github.com/lvillar/pdfme/logging"
)

// Option is a functional option for configuring a Generator via New.
type Option func(*config)

type config struct {
	registry    *Registry
	factory     backend.Factory
	document    backend.DocumentConfig
	missing     string
	logger      logging.Logger
	backendOpts []fpdf.Option // default backend only
}

// WithRegistry sets the renderer registry. The default is DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(c *config) {
		c.registry = r
	}
}

// WithBackend sets the factory used to create a backend for each
// generation call. The default draws with gofpdf.
func WithBackend(f backend.Factory) Option {
	return func(c *config) {
		c.factory = f
	}
}

// WithCompression enables or disables stream compression. Compression is
// on by default.
func WithCompression(on bool) Option {
	return func(c *config) {
		c.document.Compress = on
	}
}

// WithFontDir sets the directory font files are resolved against.
func WithFontDir(dir string) Option {
	return func(c *config) {
		c.document.FontDir = dir
	}
}

// WithFonts registers TrueType fonts available to text elements by family.
func WithFonts(fonts ...backend.FontSource) Option {
	return func(c *config) {
		c.document.Fonts = append(c.document.Fonts, fonts...)
	}
}

// WithCreationDate fixes the document creation date. With a fixed date,
// identical inputs produce identical bytes.
func WithCreationDate(t time.Time) Option {
	return func(c *config) {
		c.document.CreationDate = t
	}
}

// WithMetadata sets the default document title, author and subject.
// Values set on the Template take precedence.
func WithMetadata(title, author, subject string) Option {
	return func(c *config) {
		c.document.Title = title
		c.document.Author = author
		c.document.Subject = subject
	}
}

// WithMissingValue sets the text substituted for placeholders whose path
// does not resolve. The default is the empty string.
func WithMissingValue(s string) Option {
	return func(c *config) {
		c.missing = s
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithHTTPClient sets the client the default backend fetches remote
// images with. It has no effect together with WithBackend.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		c.backendOpts = append(c.backendOpts, fpdf.WithHTTPClient(client))
	}
}

// WithPDF417 sets the column count and security level of pdf417 barcodes
// drawn by the default backend. It has no effect together with
// WithBackend.
func WithPDF417(columns, securityLevel int) Option {
	return func(c *config) {
		c.backendOpts = append(c.backendOpts, fpdf.WithPDF417(columns, securityLevel))
	}
}
