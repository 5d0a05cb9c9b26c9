// Package observability defines the tracing and structured-logging interfaces
// and semantic conventions used by the tool framework, the HTTP helper and
// the MCP bridge.
//
// The central entry point is [Provider], which composes [Tracer] and [Logger]
// into a single injectable dependency. An active [Span] travels through a
// [context.Context] via [ContextWithSpan] and is retrieved with
// [SpanFromContext]; code that finds no span simply skips instrumentation.
//
// semconv.go holds the attribute-key, span-name and event-name constants.
package observability
