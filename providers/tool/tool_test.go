package tool

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/leofalp/perplexity-mcp/providers/observability"
)

// testSpan is a minimal observability.Span implementation that records events
// and attributes for assertion purposes.
type testSpan struct {
	events     []string
	attributes []observability.Attribute
	errs       []error
}

func (s *testSpan) End() {}

func (s *testSpan) SetAttributes(attrs ...observability.Attribute) {
	s.attributes = append(s.attributes, attrs...)
}

func (s *testSpan) SetStatus(code observability.StatusCode, description string) {}

func (s *testSpan) RecordError(err error) {
	s.errs = append(s.errs, err)
}

func (s *testSpan) AddEvent(name string, attrs ...observability.Attribute) {
	s.events = append(s.events, name)
}

type calcInput struct {
	Value int `json:"value" jsonschema:"description=Number to double,minimum=0"`
}

type calcOutput struct {
	Result int `json:"result"`
}

func double(ctx context.Context, input calcInput) (calcOutput, error) {
	return calcOutput{Result: input.Value * 2}, nil
}

func TestNewTool_DefaultNoDescription(t *testing.T) {
	calcTool := NewTool("calc", double)

	info := calcTool.ToolInfo()
	if info.Name != "calc" {
		t.Errorf("expected name %q, got %q", "calc", info.Name)
	}
	if info.Description != "" {
		t.Errorf("expected empty description, got %q", info.Description)
	}
}

func TestNewTool_WithDescription(t *testing.T) {
	calcTool := NewTool("calc", double, WithDescription("Doubles a number"))

	if got := calcTool.ToolInfo().Description; got != "Doubles a number" {
		t.Errorf("expected description %q, got %q", "Doubles a number", got)
	}
}

func TestNewTool_ParametersFromInputType(t *testing.T) {
	info := NewTool("calc", double).ToolInfo()

	if info.Parameters == nil {
		t.Fatal("expected parameters schema, got nil")
	}
	if info.Parameters.Type != "object" {
		t.Errorf("expected object schema, got %q", info.Parameters.Type)
	}
	value, ok := info.Parameters.Properties["value"]
	if !ok {
		t.Fatalf("expected property %q, got %v", "value", info.Parameters.Properties)
	}
	if value.Type != "integer" {
		t.Errorf("expected integer property, got %q", value.Type)
	}
	if value.Description != "Number to double" {
		t.Errorf("unexpected description: %q", value.Description)
	}
	if value.Minimum == nil || *value.Minimum != 0 {
		t.Errorf("expected minimum 0, got %v", value.Minimum)
	}
}

func TestCall_Success(t *testing.T) {
	outputJSON, err := NewTool("calc", double).Call(context.Background(), `{"value":42}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result calcOutput
	if err := json.Unmarshal([]byte(outputJSON), &result); err != nil {
		t.Fatalf("failed to unmarshal output JSON: %v", err)
	}
	if result.Result != 84 {
		t.Errorf("expected Result 84, got %d", result.Result)
	}
}

func TestCall_StringOutputVerbatim(t *testing.T) {
	echo := NewTool("echo", func(ctx context.Context, input calcInput) (string, error) {
		return "line one\nline \"two\"", nil
	})

	got, err := echo.Call(context.Background(), `{"value":1}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "line one\nline \"two\"" {
		t.Errorf("expected verbatim string output, got %q", got)
	}
}

func TestCall_EmptyInputUsesZeroValue(t *testing.T) {
	got, err := NewTool("calc", double).Call(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"result":0}` {
		t.Errorf("expected zero result, got %s", got)
	}
}

func TestCall_HandlerError(t *testing.T) {
	calcTool := NewTool("calc", func(ctx context.Context, input calcInput) (calcOutput, error) {
		return calcOutput{}, errors.New("boom")
	})

	outputJSON, err := calcTool.Call(context.Background(), `{"value":1}`)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if outputJSON != "" {
		t.Errorf("expected empty output on error, got %q", outputJSON)
	}
	if err.Error() != "boom" {
		t.Errorf("expected error message %q, got %q", "boom", err.Error())
	}
}

// Plain text without brackets is used because the parser repairs anything
// that looks like JSON.
func TestCall_InputParseError(t *testing.T) {
	outputJSON, err := NewTool("calc", double).Call(context.Background(), "not json at all")
	if err == nil {
		t.Fatal("expected error for invalid JSON input, got nil")
	}
	if outputJSON != "" {
		t.Errorf("expected empty output on parse error, got %q", outputJSON)
	}
}

func TestCall_WithSpan_Success(t *testing.T) {
	span := &testSpan{}
	ctx := observability.ContextWithSpan(context.Background(), span)

	if _, err := NewTool("calc", double).Call(ctx, `{"value":10}`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(span.events) != 2 {
		t.Fatalf("expected 2 span events, got %d: %v", len(span.events), span.events)
	}
	if span.events[0] != observability.EventToolExecutionStart {
		t.Errorf("expected first event %q, got %q", observability.EventToolExecutionStart, span.events[0])
	}
	if span.events[1] != observability.EventToolExecutionEnd {
		t.Errorf("expected last event %q, got %q", observability.EventToolExecutionEnd, span.events[1])
	}

	foundSize := false
	for _, attr := range span.attributes {
		if attr.Key == observability.AttrToolOutputSize {
			foundSize = true
		}
	}
	if !foundSize {
		t.Errorf("expected %q attribute, got %v", observability.AttrToolOutputSize, span.attributes)
	}
}

func TestCall_WithSpan_RecordsError(t *testing.T) {
	span := &testSpan{}
	ctx := observability.ContextWithSpan(context.Background(), span)

	calcTool := NewTool("calc", func(ctx context.Context, input calcInput) (calcOutput, error) {
		return calcOutput{}, errors.New("boom")
	})
	if _, err := calcTool.Call(ctx, `{"value":1}`); err == nil {
		t.Fatal("expected error, got nil")
	}

	if len(span.errs) != 1 {
		t.Fatalf("expected 1 recorded error, got %d", len(span.errs))
	}
	if span.events[len(span.events)-1] != observability.EventToolExecutionEnd {
		t.Errorf("expected end event even on failure, got %v", span.events)
	}
}
