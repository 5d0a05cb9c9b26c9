package observability

// Semantic conventions for observability attributes.

// --- Tool Execution Attributes ---

const (
	// AttrToolName is the name of the tool being executed
	AttrToolName = "tool.name"

	// AttrToolInput is the tool input (serialized)
	AttrToolInput = "tool.input"

	// AttrToolOutputSize is the size in bytes of the tool output
	AttrToolOutputSize = "tool.output.size"

	// AttrToolDuration is the execution duration
	AttrToolDuration = "tool.duration"

	// AttrToolError is the error message if tool execution failed
	AttrToolError = "tool.error"

	// AttrToolIsError reports whether the call ended in an error result
	AttrToolIsError = "tool.is_error"

	// AttrToolCallID identifies a single tool invocation across log lines
	AttrToolCallID = "tool.call_id"
)

// --- Provider Attributes ---

const (
	// AttrProviderEndpoint is the API path called ("/search" or "/chat/completions")
	AttrProviderEndpoint = "provider.endpoint"

	// AttrProviderModel is the model identifier sent to the chat endpoint
	AttrProviderModel = "provider.model"
)

// --- HTTP Attributes ---

const (
	// AttrHTTPMethod is the HTTP method (GET, POST, etc.)
	AttrHTTPMethod = "http.method"

	// AttrHTTPStatusCode is the HTTP response status code
	AttrHTTPStatusCode = "http.status_code"

	// AttrHTTPURL is the full request URL
	AttrHTTPURL = "http.url"

	// AttrHTTPRequestBodySize is the request body size in bytes
	AttrHTTPRequestBodySize = "http.request.body.size"

	// AttrHTTPResponseBodySize is the response body size in bytes
	AttrHTTPResponseBodySize = "http.response.body.size"

	// AttrHTTPDuration is the round-trip time of one request
	AttrHTTPDuration = "http.request.duration"
)

// --- General Attributes ---

const (
	// AttrError is the error message
	AttrError = "error"

	// AttrStatus is the operation status
	AttrStatus = "status"

	// AttrStatusDescription is the status description
	AttrStatusDescription = "status_description"
)

// --- Span Names ---

const (
	// SpanToolCall is the span name for one MCP tool call
	SpanToolCall = "mcp.tool_call"
)

// --- Event Names ---

const (
	// EventToolExecutionStart marks the start of tool execution
	EventToolExecutionStart = "tool.execution.start"

	// EventToolExecutionEnd marks the end of tool execution
	EventToolExecutionEnd = "tool.execution.end"

	EventHTTPRequestPrepared  = "http.request.prepared"
	EventHTTPRequestError     = "http.request.error"
	EventHTTPResponseReceived = "http.response.received"
)
