package jsonschema

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Validator checks JSON documents against a compiled schema. It is safe for
// concurrent use.
type Validator struct {
	compiled *gojsonschema.Schema
}

// NewValidator compiles schema once so it can be reused for every call.
func NewValidator(schema *Schema) (*Validator, error) {
	if schema == nil {
		return nil, fmt.Errorf("nil schema")
	}

	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}

	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}

	return &Validator{compiled: compiled}, nil
}

// Validate checks document against the schema. It returns one description
// per violation (nil when valid) and an error only if the document could not
// be evaluated at all, for example because it is not JSON.
func (v *Validator) Validate(document []byte) ([]string, error) {
	result, err := v.compiled.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return nil, fmt.Errorf("validating document: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		violations = append(violations, e.String())
	}
	return violations, nil
}
