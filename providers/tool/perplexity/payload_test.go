package perplexity

import (
	"errors"
	"reflect"
	"testing"

	"github.com/leofalp/perplexity-mcp/internal/utils"
)

func TestBuildSearchPayload_MinimalHasOnlyQueryAndMaxResults(t *testing.T) {
	tests := []struct {
		name  string
		input SearchInput
	}{
		{"nil filter", SearchInput{Query: "golang"}},
		{"empty filter", SearchInput{Query: "golang", DomainFilter: []string{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := BuildSearchPayload(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := map[string]any{"query": "golang", "max_results": 10}
			if !reflect.DeepEqual(payload, want) {
				t.Errorf("expected %v, got %v", want, payload)
			}
		})
	}
}

func TestBuildSearchPayload_AllFields(t *testing.T) {
	payload, err := BuildSearchPayload(SearchInput{
		Query:        "golang",
		MaxResults:   utils.Ptr(3),
		Recency:      utils.Ptr(RecencyWeek),
		DomainFilter: []string{"go.dev", "-reddit.com"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]any{
		"query":                 "golang",
		"max_results":           3,
		"search_recency_filter": "week",
		"search_domain_filter":  []string{"go.dev", "-reddit.com"},
	}
	if !reflect.DeepEqual(payload, want) {
		t.Errorf("expected %v, got %v", want, payload)
	}
}

func TestBuildSearchPayload_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input SearchInput
	}{
		{"empty query", SearchInput{Query: ""}},
		{"blank query", SearchInput{Query: "   \t"}},
		{"bad recency", SearchInput{Query: "q", Recency: utils.Ptr(Recency("year"))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildSearchPayload(tt.input); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestBuildSearchPayload_MaxResultsPassThrough(t *testing.T) {
	for _, n := range []int{0, -5, 1, 50} {
		payload, err := BuildSearchPayload(SearchInput{Query: "q", MaxResults: utils.Ptr(n)})
		if err != nil {
			t.Fatalf("max_results %d: unexpected error: %v", n, err)
		}
		if payload["max_results"] != n {
			t.Errorf("max_results %d: expected value sent unchanged, got %v", n, payload["max_results"])
		}
	}
}

func TestBuildSearchPayload_EmptyQueryError(t *testing.T) {
	_, err := BuildSearchPayload(SearchInput{Query: " "})
	if !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestBuildChatPayload_ModelByVariant(t *testing.T) {
	inputs := []AskInput{
		{Query: "q"},
		{Query: "q", ReasoningEffort: utils.Ptr(ReasoningHigh), SearchMode: utils.Ptr(SearchModeSEC), ReturnImages: true},
		{Query: "q", Recency: utils.Ptr(RecencyDay), DomainFilter: []string{"x.org"}, ReturnRelatedQuestions: true},
	}

	for _, input := range inputs {
		standard, err := BuildChatPayload(VariantStandard, input, DefaultModels())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if standard["model"] != "sonar" {
			t.Errorf("expected standard model %q, got %v", "sonar", standard["model"])
		}

		deep, err := BuildChatPayload(VariantDeep, input, DefaultModels())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deep["model"] != "sonar-pro" {
			t.Errorf("expected deep model %q, got %v", "sonar-pro", deep["model"])
		}
	}
}

func TestBuildChatPayload_Defaults(t *testing.T) {
	payload, err := BuildChatPayload(VariantStandard, AskInput{Query: "what is go?"}, DefaultModels())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]any{
		"model":            "sonar",
		"messages":         []map[string]string{{"role": "user", "content": "what is go?"}},
		"reasoning_effort": "medium",
	}
	if !reflect.DeepEqual(payload, want) {
		t.Errorf("expected %v, got %v", want, payload)
	}
}

func TestBuildChatPayload_AllFields(t *testing.T) {
	payload, err := BuildChatPayload(VariantDeep, AskInput{
		Query:                  "q",
		ReasoningEffort:        utils.Ptr(ReasoningLow),
		SearchMode:             utils.Ptr(SearchModeAcademic),
		Recency:                utils.Ptr(RecencyMonth),
		DomainFilter:           []string{"arxiv.org"},
		ReturnImages:           true,
		ReturnRelatedQuestions: true,
	}, Models{Standard: "a", Deep: "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]any{
		"model":                    "b",
		"messages":                 []map[string]string{{"role": "user", "content": "q"}},
		"reasoning_effort":         "low",
		"search_mode":              "academic",
		"search_recency_filter":    "month",
		"search_domain_filter":     []string{"arxiv.org"},
		"return_images":            true,
		"return_related_questions": true,
	}
	if !reflect.DeepEqual(payload, want) {
		t.Errorf("expected %v, got %v", want, payload)
	}
}

func TestBuildChatPayload_FalseFlagsOmitted(t *testing.T) {
	payload, err := BuildChatPayload(VariantStandard, AskInput{Query: "q"}, DefaultModels())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, key := range []string{"return_images", "return_related_questions", "search_mode", "search_recency_filter", "search_domain_filter"} {
		if _, ok := payload[key]; ok {
			t.Errorf("expected key %q to be omitted", key)
		}
	}
}

func TestBuildChatPayload_Errors(t *testing.T) {
	tests := []struct {
		name    string
		variant Variant
		input   AskInput
	}{
		{"empty query", VariantStandard, AskInput{}},
		{"bad effort", VariantStandard, AskInput{Query: "q", ReasoningEffort: utils.Ptr(ReasoningEffort("max"))}},
		{"bad mode", VariantStandard, AskInput{Query: "q", SearchMode: utils.Ptr(SearchMode("news"))}},
		{"bad recency", VariantDeep, AskInput{Query: "q", Recency: utils.Ptr(Recency("hour"))}},
		{"unknown variant", Variant(7), AskInput{Query: "q"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildChatPayload(tt.variant, tt.input, DefaultModels()); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
