package parse

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ParseStringAs parses content into a value of type T.
//
// String targets receive content verbatim. Every other type is decoded as
// JSON; blank content yields the zero value, which is how hosts send a call
// without arguments. When strict decoding fails the content is repaired with
// jsonrepair and decoded again, and as a last resort schema-wrapped values
// are unwrapped.
//
// Example usage:
//
//	type Args struct {
//	    Query string `json:"query"`
//	}
//
//	args, err := ParseStringAs[Args](`{"query":"golang"}`)
//	args, err = ParseStringAs[Args](`{query: 'golang',}`) // repaired
func ParseStringAs[T any](content string) (T, error) {
	var result T

	if reflect.TypeFor[T]().Kind() == reflect.String {
		reflect.ValueOf(&result).Elem().SetString(content)
		return result, nil
	}

	if strings.TrimSpace(content) == "" {
		return result, nil
	}

	err := json.Unmarshal([]byte(content), &result)
	if err == nil {
		return result, nil
	}

	repairedJSON, repairErr := jsonrepair.JSONRepair(content)
	if repairErr != nil {
		return result, fmt.Errorf("failed to unmarshal content as %T and failed to repair JSON: unmarshal error: %w, repair error: %v", result, err, repairErr)
	}

	var repaired T
	if err = json.Unmarshal([]byte(repairedJSON), &repaired); err == nil {
		return repaired, nil
	}

	// This handles cases where LLMs confuse JSON schema with actual data.
	if unwrapped, unwrapErr := unwrapSchemaValues(repairedJSON); unwrapErr == nil {
		var unwrappedResult T
		if unwrapErr = json.Unmarshal([]byte(unwrapped), &unwrappedResult); unwrapErr == nil {
			return unwrappedResult, nil
		}
	}

	return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w (repaired: %s)", result, err, repairedJSON)
}

// unwrapSchemaValues replaces every {"type": ..., "value": v} object with v.
//
// Example input:
//
//	{"query": {"type": "string", "value": "golang"}, "max_results": {"type": "integer", "value": 5}}
//
// Example output:
//
//	{"max_results":5,"query":"golang"}
func unwrapSchemaValues(jsonStr string) (string, error) {
	var data interface{}
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return "", err
	}

	result, err := json.Marshal(recursiveUnwrap(data))
	if err != nil {
		return "", err
	}
	return string(result), nil
}

// recursiveUnwrap recursively processes data structures to unwrap schema-like values
func recursiveUnwrap(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		if _, hasType := v["type"]; hasType {
			if value, hasValue := v["value"]; hasValue && len(v) == 2 {
				return recursiveUnwrap(value)
			}
		}

		result := make(map[string]interface{}, len(v))
		for key, val := range v {
			result[key] = recursiveUnwrap(val)
		}
		return result

	case []interface{}:
		result := make([]interface{}, len(v))
		for i, val := range v {
			result[i] = recursiveUnwrap(val)
		}
		return result

	default:
		return data
	}
}
