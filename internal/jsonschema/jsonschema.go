package jsonschema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Schema represents the structure of JSON Schema used for defining tool arguments.
// Only the subset of keywords produced by [GenerateJSONSchema] is modelled.
type Schema struct {
	// Type specifies the data type (e.g., "object", "array", "string", "number")
	Type        string   `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	Required    []string `json:"required,omitempty"`
	// Properties of the arguments, each with its own schema
	Properties map[string]*Schema `json:"properties,omitempty"`
	// For array types, defines the schema of items in the array
	Items *Schema `json:"items,omitempty"`
	// AdditionalProperties controls whether properties not defined in Properties are allowed
	AdditionalProperties any `json:"additionalProperties,omitempty"`
	// Default value for the parameter
	Default any `json:"default,omitempty"`
	// Enum contains the list of allowed values for the parameter
	Enum    []any    `json:"enum,omitempty"`
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`
}

// GenerateJSONSchema generates a JSON schema for T.
//
// Struct fields are named after their json tag and are required unless they
// are pointers, carry omitempty, or are skipped with json:"-". The jsonschema
// tag customizes a field with comma-separated directives:
//
//   - description=xxx (commas inside the text are kept)
//   - enum=a,enum=b (values are converted to the field's kind)
//   - default=xxx
//   - minimum=1,maximum=20
//   - required
//
// An error is returned when a tag value cannot be converted to the field type.
func GenerateJSONSchema[T any]() (*Schema, error) {
	return generate(reflect.TypeFor[T]())
}

// MustGenerateJSONSchema is like [GenerateJSONSchema] but panics on error.
// Tool input types are static, so a bad tag is a programming error.
func MustGenerateJSONSchema[T any]() *Schema {
	schema, err := GenerateJSONSchema[T]()
	if err != nil {
		panic(err)
	}
	return schema
}

func generate(t reflect.Type) (*Schema, error) {
	switch t.Kind() {
	case reflect.Ptr:
		return generate(t.Elem())
	case reflect.Struct:
		return generateStruct(t)
	case reflect.Slice, reflect.Array:
		items, err := generate(t.Elem())
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "array", Items: items}, nil
	case reflect.Map:
		values, err := generate(t.Elem())
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "object", AdditionalProperties: values}, nil
	default:
		return &Schema{Type: primitiveType(t.Kind())}, nil
	}
}

func generateStruct(t reflect.Type) (*Schema, error) {
	schema := &Schema{Type: "object", Properties: map[string]*Schema{}}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, omitEmpty, skip := jsonFieldName(field)
		if skip {
			continue
		}

		fieldSchema, err := generate(field.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}

		requiredByTag, err := applyTag(field.Type, field.Tag.Get("jsonschema"), fieldSchema)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}

		schema.Properties[name] = fieldSchema
		if (field.Type.Kind() != reflect.Ptr && !omitEmpty) || requiredByTag {
			schema.Required = append(schema.Required, name)
		}
	}

	return schema, nil
}

// jsonFieldName returns the wire name of a struct field.
func jsonFieldName(field reflect.StructField) (name string, omitEmpty bool, skip bool) {
	jsonTag := field.Tag.Get("json")
	if jsonTag == "-" {
		return "", false, true
	}

	name = field.Name
	if jsonTag == "" {
		return name, false, false
	}

	parts := strings.Split(jsonTag, ",")
	if parts[0] != "" {
		name = parts[0]
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" || opt == "omitzero" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

func primitiveType(kind reflect.Kind) string {
	switch kind {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	default:
		return "object"
	}
}

var tagKeys = []string{"description", "enum", "default", "minimum", "maximum"}

// splitTag splits a jsonschema tag into directives. A comma only starts a new
// directive when what follows is a known key or "required"; otherwise it is
// part of the previous value, so descriptions may contain commas.
func splitTag(tag string) []string {
	var directives []string
	for _, item := range strings.Split(tag, ",") {
		if len(directives) == 0 || isDirective(item) {
			directives = append(directives, item)
			continue
		}
		directives[len(directives)-1] += "," + item
	}
	return directives
}

func isDirective(item string) bool {
	if strings.TrimSpace(item) == "required" {
		return true
	}
	for _, key := range tagKeys {
		if strings.HasPrefix(item, key+"=") {
			return true
		}
	}
	return false
}

// applyTag applies the jsonschema tag directives to schema and reports
// whether the field was explicitly marked as required.
func applyTag(fieldType reflect.Type, tag string, schema *Schema) (bool, error) {
	if tag == "" {
		return false, nil
	}

	for fieldType.Kind() == reflect.Ptr {
		fieldType = fieldType.Elem()
	}

	isRequiredByTag := false
	for _, directive := range splitTag(tag) {
		key, value, hasValue := strings.Cut(directive, "=")
		if !hasValue {
			if strings.TrimSpace(key) == "required" {
				isRequiredByTag = true
			}
			continue
		}

		switch key {
		case "description":
			schema.Description = value
		case "enum":
			v, err := convertValue(fieldType, value)
			if err != nil {
				return false, fmt.Errorf("enum value %q: %w", value, err)
			}
			schema.Enum = append(schema.Enum, v)
		case "default":
			target := fieldType
			if target.Kind() == reflect.Slice || target.Kind() == reflect.Array {
				target = target.Elem()
			}
			v, err := convertValue(target, value)
			if err != nil {
				return false, fmt.Errorf("default value %q: %w", value, err)
			}
			schema.Default = v
		case "minimum", "maximum":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return false, fmt.Errorf("parse %s value %q: %w", key, value, err)
			}
			if key == "minimum" {
				schema.Minimum = &v
			} else {
				schema.Maximum = &v
			}
		}
	}

	return isRequiredByTag, nil
}

// convertValue converts a tag literal into a value of the field's kind so the
// marshaled schema carries numbers and booleans, not strings.
func convertValue(fieldType reflect.Type, value string) (any, error) {
	switch fieldType.Kind() {
	case reflect.String:
		return value, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.ParseInt(value, 10, 64)
	case reflect.Float32, reflect.Float64:
		return strconv.ParseFloat(value, 64)
	case reflect.Bool:
		return strconv.ParseBool(value)
	default:
		return nil, fmt.Errorf("unsupported field type %v", fieldType)
	}
}

// JsonString converts the Schema to its JSON representation.
// If indent is true, the JSON is formatted with two-space indentation.
func (s *Schema) JsonString(indent ...bool) (string, error) {
	var (
		jsonBytes []byte
		err       error
	)
	if len(indent) > 0 && indent[0] {
		jsonBytes, err = json.MarshalIndent(s, "", "  ")
	} else {
		jsonBytes, err = json.Marshal(s)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema to JSON: %w", err)
	}
	return string(jsonBytes), nil
}

// String returns the compact JSON representation of the schema.
func (s *Schema) String() string {
	jsonStr, err := s.JsonString()
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return jsonStr
}
