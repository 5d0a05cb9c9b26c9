package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/leofalp/perplexity-mcp/internal/jsonschema"
	"github.com/leofalp/perplexity-mcp/providers/observability"
	slogobs "github.com/leofalp/perplexity-mcp/providers/observability/slog"
	"github.com/leofalp/perplexity-mcp/providers/tool"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"

	defaultName            = "Perplexity Research"
	defaultShutdownTimeout = 5 * time.Second
)

// Options customizes the server identity reported to hosts.
type Options struct {
	Name         string
	Version      string
	Instructions string
	// ShutdownTimeout bounds the graceful shutdown of the HTTP transport.
	ShutdownTimeout time.Duration
}

// Server bridges a tool catalog to the MCP Go SDK.
type Server struct {
	mcp             *mcp.Server
	observer        observability.Provider
	handlers        map[string]mcp.ToolHandler
	shutdownTimeout time.Duration
}

// New registers every tool in catalog with a new MCP server. A nil observer
// logs through slog.Default. It fails if a tool schema cannot be compiled.
func New(catalog *tool.Catalog, observer observability.Provider, opts *Options) (*Server, error) {
	if catalog == nil {
		return nil, errors.New("server: nil catalog")
	}
	if observer == nil {
		observer = slogobs.New(nil)
	}
	if opts == nil {
		opts = &Options{}
	}

	name := opts.Name
	if name == "" {
		name = defaultName
	}
	version := opts.Version
	if version == "" {
		version = "dev"
	}

	s := &Server{
		mcp: mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, &mcp.ServerOptions{
			Instructions: opts.Instructions,
		}),
		observer:        observer,
		handlers:        make(map[string]mcp.ToolHandler),
		shutdownTimeout: defaultShutdownTimeout,
	}
	if opts.ShutdownTimeout > 0 {
		s.shutdownTimeout = opts.ShutdownTimeout
	}

	for _, t := range catalog.List() {
		if err := s.register(t); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Server) register(t tool.GenericTool) error {
	info := t.ToolInfo()
	if info.Parameters == nil {
		return fmt.Errorf("server: tool %s has no parameter schema", info.Name)
	}

	schema, err := json.Marshal(info.Parameters)
	if err != nil {
		return fmt.Errorf("server: marshaling schema of %s: %w", info.Name, err)
	}
	validator, err := jsonschema.NewValidator(info.Parameters)
	if err != nil {
		return fmt.Errorf("server: tool %s: %w", info.Name, err)
	}

	handler := s.toolHandler(t, validator)
	s.handlers[info.Name] = handler
	s.mcp.AddTool(&mcp.Tool{
		Name:        info.Name,
		Description: info.Description,
		InputSchema: json.RawMessage(schema),
	}, handler)
	return nil
}

// toolHandler validates arguments, calls t and wraps its output. Tool
// failures are reported as error results, never as protocol errors.
func (s *Server) toolHandler(t tool.GenericTool, validator *jsonschema.Validator) mcp.ToolHandler {
	name := t.ToolInfo().Name

	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		callID := uuid.NewString()
		ctx, span := s.observer.StartSpan(ctx, observability.SpanToolCall,
			observability.String(observability.AttrToolName, name),
			observability.String(observability.AttrToolCallID, callID),
		)
		defer span.End()

		var raw json.RawMessage
		if req != nil && req.Params != nil {
			raw = req.Params.Arguments
		}

		args, err := normalizeArguments(raw)
		if err != nil {
			return s.fail(ctx, span, name, callID, fmt.Sprintf("invalid arguments for %s: %v", name, err)), nil
		}

		violations, err := validator.Validate(args)
		if err != nil {
			return s.fail(ctx, span, name, callID, fmt.Sprintf("invalid arguments for %s: %v", name, err)), nil
		}
		if len(violations) > 0 {
			return s.fail(ctx, span, name, callID, fmt.Sprintf("invalid arguments for %s: %s", name, strings.Join(violations, "; "))), nil
		}

		output, err := t.Call(ctx, string(args))
		if err != nil {
			span.RecordError(err)
			return s.fail(ctx, span, name, callID, err.Error()), nil
		}

		span.SetStatus(observability.StatusOK, "")
		span.SetAttributes(observability.Bool(observability.AttrToolIsError, false))
		s.observer.Debug(ctx, "tool call completed",
			observability.String(observability.AttrToolName, name),
			observability.String(observability.AttrToolCallID, callID),
			observability.Int(observability.AttrToolOutputSize, len(output)),
		)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: output}},
		}, nil
	}
}

func (s *Server) fail(ctx context.Context, span observability.Span, name, callID, msg string) *mcp.CallToolResult {
	span.SetStatus(observability.StatusError, msg)
	span.SetAttributes(observability.Bool(observability.AttrToolIsError, true))
	s.observer.Warn(ctx, "tool call failed",
		observability.String(observability.AttrToolName, name),
		observability.String(observability.AttrToolCallID, callID),
		observability.String(observability.AttrToolError, msg),
	)
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}

// normalizeArguments returns raw as a JSON object with null members removed,
// so an explicit null is treated like an omitted optional argument. Empty
// input becomes {}.
func normalizeArguments(raw json.RawMessage) ([]byte, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return []byte("{}"), nil
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var args map[string]any
	if err := decoder.Decode(&args); err != nil {
		return nil, fmt.Errorf("arguments must be a JSON object: %w", err)
	}
	if args == nil {
		return []byte("{}"), nil
	}

	for key, value := range args {
		if value == nil {
			delete(args, key)
		}
	}
	return json.Marshal(args)
}

// Run serves until ctx is cancelled or the transport fails. transport is
// "stdio" or "http"; addr is only used by the HTTP transport.
func (s *Server) Run(ctx context.Context, transport, addr string) error {
	switch transport {
	case "", TransportStdio:
		s.observer.Info(ctx, "serving MCP over stdio")
		err := s.mcp.Run(ctx, &mcp.StdioTransport{})
		if err != nil && ctx.Err() != nil {
			return nil
		}
		return err
	case TransportHTTP:
		return s.serveHTTP(ctx, addr)
	default:
		return fmt.Errorf("server: unknown transport %q", transport)
	}
}

// Handler returns the streamable HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
}

func (s *Server) serveHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.observer.Info(ctx, "serving MCP over streamable HTTP", observability.String("addr", addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: http transport: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	s.observer.Info(ctx, "shutting down HTTP transport")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
