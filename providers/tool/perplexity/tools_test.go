package perplexity

import (
	"context"
	"net/http"
	"slices"
	"testing"
)

func TestTools_Names(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")

	var names []string
	for _, tl := range Tools(client) {
		info := tl.ToolInfo()
		if info.Description == "" {
			t.Errorf("tool %q: expected description", info.Name)
		}
		if info.Parameters == nil {
			t.Errorf("tool %q: expected parameters", info.Name)
		}
		names = append(names, info.Name)
	}

	want := []string{"search", "ask", "ask_more"}
	if !slices.Equal(names, want) {
		t.Errorf("expected %v, got %v", want, names)
	}
}

func TestSearchTool_Schema(t *testing.T) {
	params := NewSearchTool(newTestClient(t, "http://127.0.0.1:1")).ToolInfo().Parameters

	if !slices.Equal(params.Required, []string{"query"}) {
		t.Errorf("expected only query required, got %v", params.Required)
	}
	for _, name := range []string{"query", "max_results", "recency", "domain_filter"} {
		if _, ok := params.Properties[name]; !ok {
			t.Errorf("expected property %q", name)
		}
	}
	if got := params.Properties["recency"].Enum; len(got) != 3 {
		t.Errorf("expected 3 recency values, got %v", got)
	}
	if params.Properties["domain_filter"].Type != "array" {
		t.Errorf("expected domain_filter array, got %q", params.Properties["domain_filter"].Type)
	}
}

func TestAskTool_Schema(t *testing.T) {
	params := NewAskTool(newTestClient(t, "http://127.0.0.1:1")).ToolInfo().Parameters

	if !slices.Equal(params.Required, []string{"query"}) {
		t.Errorf("expected only query required, got %v", params.Required)
	}
	effort := params.Properties["reasoning_effort"]
	if effort.Default != "medium" {
		t.Errorf("expected default medium, got %v", effort.Default)
	}
	if params.Properties["return_images"].Type != "boolean" {
		t.Errorf("expected boolean return_images, got %q", params.Properties["return_images"].Type)
	}
}

func TestAskMoreTool_CallThroughGenericInterface(t *testing.T) {
	server, rec := newTestServer(t, http.StatusOK, `{"choices":[{"message":{"content":"ok"}}]}`)
	askMore := NewAskMoreTool(newTestClient(t, server.URL))

	got, err := askMore.Call(context.Background(), `{"query":"q","search_mode":"academic"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("expected verbatim content, got %q", got)
	}
	if rec.body["model"] != "sonar-pro" || rec.body["search_mode"] != "academic" {
		t.Errorf("unexpected payload %v", rec.body)
	}
}
