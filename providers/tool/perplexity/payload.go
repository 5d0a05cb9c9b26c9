package perplexity

import (
	"errors"
	"fmt"
	"strings"
)

const defaultMaxResults = 10

// ErrEmptyQuery is returned when a query is empty or only whitespace.
var ErrEmptyQuery = errors.New("query must not be empty")

// BuildSearchPayload builds the request body for the search endpoint.
// Optional keys are only present when the corresponding input is set.
func BuildSearchPayload(input SearchInput) (map[string]any, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, ErrEmptyQuery
	}

	// A present value is sent unchanged, zero included; the API judges it.
	maxResults := defaultMaxResults
	if input.MaxResults != nil {
		maxResults = *input.MaxResults
	}

	payload := map[string]any{
		"query":       input.Query,
		"max_results": maxResults,
	}

	if input.Recency != nil {
		if !input.Recency.valid() {
			return nil, fmt.Errorf("invalid recency %q: must be one of day, week, month", *input.Recency)
		}
		payload["search_recency_filter"] = string(*input.Recency)
	}

	if len(input.DomainFilter) > 0 {
		payload["search_domain_filter"] = input.DomainFilter
	}

	return payload, nil
}

// BuildChatPayload builds the request body for the chat completions endpoint.
// The model is chosen by variant; reasoning_effort is always sent.
func BuildChatPayload(variant Variant, input AskInput, models Models) (map[string]any, error) {
	model, err := models.forVariant(variant)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Query) == "" {
		return nil, ErrEmptyQuery
	}

	effort := ReasoningMedium
	if input.ReasoningEffort != nil {
		if !input.ReasoningEffort.valid() {
			return nil, fmt.Errorf("invalid reasoning_effort %q: must be one of low, medium, high", *input.ReasoningEffort)
		}
		effort = *input.ReasoningEffort
	}

	payload := map[string]any{
		"model": model,
		"messages": []map[string]string{
			{"role": "user", "content": input.Query},
		},
		"reasoning_effort": string(effort),
	}

	if input.SearchMode != nil {
		if !input.SearchMode.valid() {
			return nil, fmt.Errorf("invalid search_mode %q: must be one of web, academic, sec", *input.SearchMode)
		}
		payload["search_mode"] = string(*input.SearchMode)
	}

	if input.Recency != nil {
		if !input.Recency.valid() {
			return nil, fmt.Errorf("invalid recency %q: must be one of day, week, month", *input.Recency)
		}
		payload["search_recency_filter"] = string(*input.Recency)
	}

	if len(input.DomainFilter) > 0 {
		payload["search_domain_filter"] = input.DomainFilter
	}
	if input.ReturnImages {
		payload["return_images"] = true
	}
	if input.ReturnRelatedQuestions {
		payload["return_related_questions"] = true
	}

	return payload, nil
}

func (m Models) forVariant(variant Variant) (string, error) {
	switch variant {
	case VariantStandard:
		return m.Standard, nil
	case VariantDeep:
		return m.Deep, nil
	default:
		return "", fmt.Errorf("unknown variant %d", int(variant))
	}
}
