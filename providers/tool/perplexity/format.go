package perplexity

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/leofalp/perplexity-mcp/internal/utils"
)

const (
	noResultsMessage = "No search results found."
	defaultTitle     = "No title"
	defaultURL       = "No URL"
	maxImages        = 5

	sourcesHeader          = "\n\n📚 Sources:"
	imagesHeader           = "\n\n🖼️ Related Images:"
	relatedQuestionsHeader = "\n\n❓ Related Questions:"
)

// FormatSearchResults renders search results as numbered blocks separated by
// blank lines. It is a pure function of its input.
func FormatSearchResults(results []SearchResult) string {
	if len(results) == 0 {
		return noResultsMessage
	}

	lines := make([]string, 0, len(results)*4)
	for i, r := range results {
		lines = append(lines,
			fmt.Sprintf("%d. %s", i+1, utils.Deref(r.Title, defaultTitle)),
			fmt.Sprintf("   URL: %s", utils.Deref(r.URL, defaultURL)),
		)
		if snippet := utils.Deref(r.Snippet, ""); snippet != "" {
			lines = append(lines, "   "+snippet)
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// FormatChatResponse renders the answer content followed by the sources,
// images (at most five) and related questions sections, each only when
// non-empty. It is a pure function of its input.
func FormatChatResponse(resp ChatResponse) string {
	content := ""
	if len(resp.Choices) > 0 {
		content = utils.Deref(resp.Choices[0].Message.Content, "")
	}

	lines := []string{content}

	if len(resp.Citations) > 0 {
		lines = append(lines, sourcesHeader)
		for i, citation := range resp.Citations {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, renderEntry(citation, "url")))
		}
	}

	if len(resp.Images) > 0 {
		lines = append(lines, imagesHeader)
		for _, image := range resp.Images[:min(len(resp.Images), maxImages)] {
			lines = append(lines, "- "+renderEntry(image, "image_url", "url"))
		}
	}

	if len(resp.RelatedQuestions) > 0 {
		lines = append(lines, relatedQuestionsHeader)
		for _, question := range resp.RelatedQuestions {
			lines = append(lines, "- "+renderEntry(question))
		}
	}

	return strings.Join(lines, "\n")
}

// renderEntry renders a JSON string as its text, an object as the first
// non-empty string field among keys, and anything else as compact JSON.
func renderEntry(raw json.RawMessage, keys ...string) string {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return string(raw)
	}

	switch v := value.(type) {
	case string:
		return v
	case map[string]any:
		for _, key := range keys {
			if s, ok := v[key].(string); ok && s != "" {
				return s
			}
		}
	}

	return utils.CompactJSON(raw)
}
