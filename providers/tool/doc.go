// Package tool provides the foundational types for defining tools that an
// external agent can call.
//
// A tool wraps a typed Go function together with its name, description, and
// an input schema derived from the input type's struct tags. Use [NewTool] to
// create one and [WithDescription] to document it. [GenericTool] hides the
// type parameters so heterogeneous tools can be stored in a [Catalog] and
// dispatched by name with JSON-encoded arguments.
package tool
