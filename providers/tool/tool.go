package tool

import (
	"context"
	"encoding/json"
	"time"

	"github.com/leofalp/perplexity-mcp/core/parse"
	"github.com/leofalp/perplexity-mcp/internal/jsonschema"
	"github.com/leofalp/perplexity-mcp/providers/observability"
)

// Tool represents a typed, callable tool. It binds a name and description to
// a strongly-typed Go function and derives the JSON schema of its input (I)
// via reflection.
type Tool[I, O any] struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
	Function    func(ctx context.Context, input I) (O, error)
}

// Info is the metadata advertised to the host for one tool.
type Info struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
}

// GenericTool is the type-erased interface for all tools.
// It abstracts over the concrete generic type parameters of [Tool] so that tools
// can be stored, dispatched, and introspected without knowing their exact input/output types.
type GenericTool interface {
	// ToolInfo returns the name, description and parameter schema of the tool.
	ToolInfo() Info

	// Call invokes the tool with a JSON-encoded input string. String outputs
	// are returned verbatim; any other output is JSON-encoded.
	Call(ctx context.Context, inputJson string) (string, error)
}

// funcToolOptions holds optional configuration for a tool created via [NewTool].
type funcToolOptions struct {
	Description string
}

// WithDescription sets a human-readable description for the tool.
// Hosts surface this description to the calling model to help it decide
// when and how to invoke the tool.
func WithDescription(description string) func(tool *funcToolOptions) {
	return func(s *funcToolOptions) {
		s.Description = description
	}
}

// NewTool constructs a new [Tool] with the given name and handler function.
// The parameter schema is derived from I; NewTool panics if I carries a
// malformed jsonschema tag.
//
// Example:
//
//	searchTool := tool.NewTool("search", client.Search,
//	    tool.WithDescription("Returns a list of web sources."),
//	)
func NewTool[I, O any](name string, function func(ctx context.Context, input I) (O, error), options ...func(tool *funcToolOptions)) *Tool[I, O] {
	toolOptions := &funcToolOptions{}
	for _, option := range options {
		option(toolOptions)
	}

	return &Tool[I, O]{
		Name:        name,
		Description: toolOptions.Description,
		Parameters:  jsonschema.MustGenerateJSONSchema[I](),
		Function:    function,
	}
}

// ToolInfo returns the [Info] used to advertise this tool.
func (t *Tool[I, O]) ToolInfo() Info {
	return Info{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  t.Parameters,
	}
}

// Call invokes the tool's underlying function with the given JSON-encoded input.
// Observability span events are emitted at the start and end of execution
// when a span is present in ctx.
func (t *Tool[I, O]) Call(ctx context.Context, inputJson string) (string, error) {
	span := observability.SpanFromContext(ctx)

	if span != nil {
		span.AddEvent(observability.EventToolExecutionStart,
			observability.String(observability.AttrToolName, t.Name),
			observability.String(observability.AttrToolInput, inputJson),
		)
		defer span.AddEvent(observability.EventToolExecutionEnd)
	}

	start := time.Now()

	parsedInput, err := parse.ParseStringAs[I](inputJson)
	if err != nil {
		if span != nil {
			span.RecordError(err)
			span.SetAttributes(observability.String(observability.AttrToolError, err.Error()))
		}
		return "", err
	}

	output, err := t.Function(ctx, parsedInput)
	duration := time.Since(start)

	if err != nil {
		if span != nil {
			span.RecordError(err)
			span.SetAttributes(
				observability.String(observability.AttrToolError, err.Error()),
				observability.Duration(observability.AttrToolDuration, duration),
			)
		}
		return "", err
	}

	result, err := encodeOutput(output)
	if err != nil {
		if span != nil {
			span.RecordError(err)
		}
		return "", err
	}

	if span != nil {
		span.SetAttributes(
			observability.Int(observability.AttrToolOutputSize, len(result)),
			observability.Duration(observability.AttrToolDuration, duration),
		)
	}

	return result, nil
}

func encodeOutput(output any) (string, error) {
	if s, ok := output.(string); ok {
		return s, nil
	}
	outputBytes, err := json.Marshal(output)
	if err != nil {
		return "", err
	}
	return string(outputBytes), nil
}
