package perplexity

import (
	"context"
	"errors"
	"fmt"
)

// Search runs a web search and returns the formatted results. Failures are
// reported in the returned string; the error is always nil.
func (c *Client) Search(ctx context.Context, input SearchInput) (string, error) {
	payload, err := BuildSearchPayload(input)
	if err != nil {
		return searchFailure(err), nil
	}

	resp, err := c.search(ctx, payload)
	if err != nil {
		return searchFailure(err), nil
	}

	return FormatSearchResults(resp.Results), nil
}

// Ask answers a question with the standard model.
func (c *Client) Ask(ctx context.Context, input AskInput) (string, error) {
	return c.answer(ctx, VariantStandard, input), nil
}

// AskMore answers a question with the deep model. It is otherwise
// identical to [Client.Ask].
func (c *Client) AskMore(ctx context.Context, input AskInput) (string, error) {
	return c.answer(ctx, VariantDeep, input), nil
}

func (c *Client) answer(ctx context.Context, variant Variant, input AskInput) string {
	payload, err := BuildChatPayload(variant, input, c.models)
	if err != nil {
		return chatFailure(err)
	}

	resp, err := c.chat(ctx, payload)
	if err != nil {
		return chatFailure(err)
	}

	return FormatChatResponse(*resp)
}

func searchFailure(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("Search API error: %d - %s", apiErr.StatusCode, apiErr.Body)
	}
	return fmt.Sprintf("Search failed: %s", err.Error())
}

func chatFailure(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("Chat API error: %d - %s", apiErr.StatusCode, apiErr.Body)
	}
	return fmt.Sprintf("Request failed: %s", err.Error())
}
