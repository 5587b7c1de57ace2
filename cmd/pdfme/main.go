// Command pdfme renders a JSON or YAML template to PDF.
//
//	pdfme -template invoice.json -data order.json -out invoice.pdf
//
// Without -data the template's sample data is used. Without -out the PDF is
// written to stdout.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/lvillar/pdfme"
	"github.com/lvillar/pdfme/backend"
	"github.com/lvillar/pdfme/databind"
	"github.com/lvillar/pdfme/logging"
)

// fontFlags collects -font family[:style]=path values.
type fontFlags []backend.FontSource

func (f *fontFlags) String() string {
	parts := make([]string, len(*f))
	for i, src := range *f {
		parts[i] = src.Family + ":" + src.Style + "=" + src.Path
	}
	return strings.Join(parts, ",")
}

func (f *fontFlags) Set(v string) error {
	name, path, ok := strings.Cut(v, "=")
	if !ok || name == "" || path == "" {
		return fmt.Errorf("want family[:style]=path, got %q", v)
	}
	family, style, _ := strings.Cut(name, ":")
	*f = append(*f, backend.FontSource{Family: family, Style: strings.ToUpper(style), Path: path})
	return nil
}

func main() {
	templatePath := flag.String("template", "", "template file (JSON or YAML)")
	dataPath := flag.String("data", "", "data file: one record or a list of records (JSON or YAML)")
	output := flag.String("out", "", "output file (stdout if empty)")
	compress := flag.Bool("compress", true, "compress page streams")
	fontDir := flag.String("font-dir", "", "directory font files are resolved against")
	missing := flag.String("missing", "", "replacement for placeholders without a value")
	verbose := flag.Bool("v", false, "log debug messages to stderr")
	var fonts fontFlags
	flag.Var(&fonts, "font", "register a TrueType font as family[:style]=path (repeatable)")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("pdfme: ")
	if *templatePath == "" {
		flag.Usage()
		os.Exit(2)
	}
	logger := logging.NewStd(log.New(os.Stderr, "", log.LstdFlags), *verbose)

	tpl, err := pdfme.LoadTemplateFile(*templatePath)
	if err != nil {
		log.Fatalf("Failed to load template: %v", err)
	}

	var records []databind.Record
	if *dataPath != "" {
		records, err = pdfme.LoadDataFile(*dataPath)
		if err != nil {
			log.Fatalf("Failed to load data: %v", err)
		}
	}

	gen := pdfme.New(
		pdfme.WithCompression(*compress),
		pdfme.WithFontDir(*fontDir),
		pdfme.WithFonts(fonts...),
		pdfme.WithMissingValue(*missing),
		pdfme.WithLogger(logger),
	)

	pdf, err := gen.Generate(tpl, records)
	if err != nil {
		log.Fatalf("Failed to generate PDF: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, pdf, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		logger.Info("PDF written", logging.String("path", *output), logging.Int("bytes", len(pdf)))
		return
	}
	if _, err := os.Stdout.Write(pdf); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
}
