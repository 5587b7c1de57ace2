// Command pdfme-mcp is an MCP (Model Context Protocol) server that exposes
// template-driven PDF generation to AI assistants.
//
// # Installation
//
//	go install github.com/lvillar/pdfme/cmd/pdfme-mcp@latest
//
// # Configuration for Claude Desktop
//
// Add to ~/.config/claude/claude_desktop_config.json:
//
//	{
//	  "mcpServers": {
//	    "pdfme": {
//	      "command": "pdfme-mcp"
//	    }
//	  }
//	}
//
// # Available Tools
//
//   - generate_pdf: Render a template with a data record
//   - validate_template: Check a template without rendering
//   - resolve_text: Fill {{path}} placeholders from a data record
//   - list_element_types: List the renderable element types
//
// # Available Resources
//
//   - pdfme://element-types : Element types and their attributes
//   - pdfme://template?path=... : A template file in normalized JSON form
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lvillar/pdfme"
	"github.com/lvillar/pdfme/logging"
	"github.com/lvillar/pdfme/mcp"
)

func main() {
	fontDir := flag.String("font-dir", "", "directory font files are resolved against")
	verbose := flag.Bool("v", false, "log requests to stderr")
	flag.Parse()

	// stdout carries the protocol; logs go to stderr.
	logger := logging.NewStd(log.New(os.Stderr, "pdfme-mcp: ", log.LstdFlags), *verbose)
	gen := pdfme.New(pdfme.WithFontDir(*fontDir), pdfme.WithLogger(logger))

	server := mcp.NewServer()
	server.SetLogger(logger)

	mcp.RegisterDefaultTools(server, gen)
	mcp.RegisterDefaultResources(server, gen)

	if err := server.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "pdfme-mcp: %v\n", err)
		os.Exit(1)
	}
}
