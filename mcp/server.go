// Package mcp implements a Model Context Protocol (MCP) server that exposes
// pdfme template generation as tools and resources for AI assistants.
//
// The server speaks newline-delimited JSON-RPC 2.0 over stdio, protocol
// revision 2024-11-05, with the tools and resources capabilities.
//
// # Usage with Claude Desktop
//
// Add to your claude_desktop_config.json:
//
//	{
//	  "mcpServers": {
//	    "pdfme": {
//	      "command": "pdfme-mcp"
//	    }
//	  }
//	}
package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/lvillar/pdfme/logging"
)

const (
	protocolVersion = "2024-11-05"
	serverName      = "pdfme-mcp"
	serverVersion   = "1.0.0"
)

// JSON-RPC error codes.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

// Server is an MCP server holding the registered tools and resources.
type Server struct {
	tools     map[string]Tool
	resources map[string]Resource
	methods   map[string]method
	input     io.Reader
	output    io.Writer
	logger    logging.Logger
	mu        sync.Mutex
}

// Tool defines an MCP tool that can be called by the client.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
	Handler     ToolHandler            `json:"-"`
}

// ToolHandler executes a tool with the given arguments. A returned error
// is reported to the client as a tool result flagged isError.
type ToolHandler func(args map[string]interface{}) (ToolResult, error)

// ToolResult is the result returned by a tool execution.
type ToolResult struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

// ContentBlock is a text item of a tool result.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Resource defines an MCP resource. Query parameters of a read request
// are passed to the handler with the URI.
type Resource struct {
	URI         string          `json:"uri"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	MIMEType    string          `json:"mimeType,omitempty"`
	Handler     ResourceHandler `json:"-"`
}

// ResourceHandler reads a resource and returns its content.
type ResourceHandler func(uri string) ([]ResourceContent, error)

// ResourceContent is the textual content of a read resource.
type ResourceContent struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mimeType,omitempty"`
	Text     string `json:"text"`
}

type jsonrpcRequest struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

// isNotification reports whether the request carries no id. Notifications
// are never answered.
func (r jsonrpcRequest) isNotification() bool {
	return r.ID == nil
}

type jsonrpcResponse struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id"`
	Result  interface{}      `json:"result,omitempty"`
	Error   *jsonrpcError    `json:"error,omitempty"`
}

type jsonrpcError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *jsonrpcError) Error() string {
	return fmt.Sprintf("jsonrpc %d: %s", e.Code, e.Message)
}

// method handles one request and returns its result, or a *jsonrpcError.
type method func(params json.RawMessage) (interface{}, *jsonrpcError)

// NewServer creates a new MCP server reading from stdin and writing to stdout.
func NewServer() *Server {
	return NewServerWithIO(os.Stdin, os.Stdout)
}

// NewServerWithIO creates a new MCP server on the given streams.
func NewServerWithIO(in io.Reader, out io.Writer) *Server {
	s := &Server{
		tools:     make(map[string]Tool),
		resources: make(map[string]Resource),
		input:     in,
		output:    out,
		logger:    logging.NopLogger{},
	}
	s.methods = map[string]method{
		"initialize":     s.initialize,
		"ping":           func(json.RawMessage) (interface{}, *jsonrpcError) { return struct{}{}, nil },
		"tools/list":     s.listTools,
		"tools/call":     s.callTool,
		"resources/list": s.listResources,
		"resources/read": s.readResource,
	}
	return s
}

// SetLogger sets the logger requests and failures are reported to.
func (s *Server) SetLogger(l logging.Logger) {
	s.logger = l
}

// AddTool registers a tool with the server.
func (s *Server) AddTool(t Tool) {
	s.tools[t.Name] = t
}

// AddResource registers a resource under its URI without query string.
func (s *Server) AddResource(r Resource) {
	s.resources[r.URI] = r
}

// Run processes newline-delimited messages until EOF. It stops early
// when a response cannot be written.
func (s *Server) Run() error {
	scanner := bufio.NewScanner(s.input)
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req jsonrpcRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warn("unparseable request", logging.Error("err", err))
			if werr := s.respond(nil, nil, &jsonrpcError{Code: codeParseError, Message: "Parse error", Data: err.Error()}); werr != nil {
				return werr
			}
			continue
		}

		if err := s.handle(req); err != nil {
			return err
		}
	}

	return scanner.Err()
}

// handle dispatches req and writes its response. Notifications, including
// every notifications/* method, are handled silently.
func (s *Server) handle(req jsonrpcRequest) error {
	s.logger.Debug("request", logging.String("method", req.Method))

	if req.isNotification() || strings.HasPrefix(req.Method, "notifications/") {
		if req.ID != nil {
			s.logger.Warn("notification sent with an id", logging.String("method", req.Method))
		}
		return nil
	}

	m, ok := s.methods[req.Method]
	if !ok {
		return s.respond(req.ID, nil, &jsonrpcError{Code: codeMethodNotFound, Message: "Method not found", Data: req.Method})
	}
	result, rpcErr := m(req.Params)
	return s.respond(req.ID, result, rpcErr)
}

func (s *Server) initialize(json.RawMessage) (interface{}, *jsonrpcError) {
	return map[string]interface{}{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]interface{}{
			"tools":     map[string]interface{}{},
			"resources": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    serverName,
			"version": serverVersion,
		},
	}, nil
}

func (s *Server) listTools(json.RawMessage) (interface{}, *jsonrpcError) {
	tools := make([]Tool, 0, len(s.tools))
	for _, name := range sortedKeys(s.tools) {
		tools = append(tools, s.tools[name])
	}
	return map[string]interface{}{"tools": tools}, nil
}

func (s *Server) callTool(raw json.RawMessage) (interface{}, *jsonrpcError) {
	var params struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, &jsonrpcError{Code: codeInvalidParams, Message: "Invalid params", Data: err.Error()}
	}

	tool, ok := s.tools[params.Name]
	if !ok {
		return nil, &jsonrpcError{Code: codeInvalidParams, Message: "Unknown tool", Data: params.Name}
	}

	result, err := tool.Handler(params.Arguments)
	if err != nil {
		s.logger.Info("tool failed", logging.String("tool", params.Name), logging.Error("err", err))
		return ToolResult{
			Content: []ContentBlock{{Type: "text", Text: fmt.Sprintf("Error: %v", err)}},
			IsError: true,
		}, nil
	}
	return result, nil
}

func (s *Server) listResources(json.RawMessage) (interface{}, *jsonrpcError) {
	resources := make([]Resource, 0, len(s.resources))
	for _, uri := range sortedKeys(s.resources) {
		resources = append(resources, s.resources[uri])
	}
	return map[string]interface{}{"resources": resources}, nil
}

func (s *Server) readResource(raw json.RawMessage) (interface{}, *jsonrpcError) {
	var params struct {
		URI string `json:"uri"`
	}
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, &jsonrpcError{Code: codeInvalidParams, Message: "Invalid params", Data: err.Error()}
	}

	base, _, _ := strings.Cut(params.URI, "?")
	resource, ok := s.resources[base]
	if !ok {
		return nil, &jsonrpcError{Code: codeInvalidParams, Message: "Unknown resource", Data: params.URI}
	}

	contents, err := resource.Handler(params.URI)
	if err != nil {
		s.logger.Info("resource failed", logging.String("uri", params.URI), logging.Error("err", err))
		return nil, &jsonrpcError{Code: codeInternalError, Message: "Resource error", Data: err.Error()}
	}
	return map[string]interface{}{"contents": contents}, nil
}

// respond writes one response line. A result that cannot be encoded is
// reported to the client as an internal error.
func (s *Server) respond(id *json.RawMessage, result interface{}, rpcErr *jsonrpcError) error {
	resp := jsonrpcResponse{JSONRPC: "2.0", ID: id, Result: result}
	if rpcErr != nil {
		resp.Result = nil
		resp.Error = rpcErr
	}

	data, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("encoding response", logging.Error("err", err))
		data, err = json.Marshal(jsonrpcResponse{
			JSONRPC: "2.0",
			ID:      id,
			Error:   &jsonrpcError{Code: codeInternalError, Message: "Internal error", Data: err.Error()},
		})
		if err != nil {
			return fmt.Errorf("mcp: encoding response: %w", err)
		}
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.output.Write(data); err != nil {
		return fmt.Errorf("mcp: writing response: %w", err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
