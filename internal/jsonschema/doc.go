// Package jsonschema generates JSON Schema documents from Go types using
// reflection and validates JSON documents against them.
//
// Schemas are derived from `json` and `jsonschema` struct tags; see
// [GenerateJSONSchema] for the supported tag grammar. Generated schemas are
// what the MCP bridge advertises as a tool's input schema, and [Validator]
// checks incoming tool arguments against that same schema before dispatch.
package jsonschema
