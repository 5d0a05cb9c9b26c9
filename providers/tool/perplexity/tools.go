package perplexity

import (
	"github.com/leofalp/perplexity-mcp/providers/tool"
)

const (
	SearchToolName  = "search"
	AskToolName     = "ask"
	AskMoreToolName = "ask_more"
)

const searchDescription = `Returns a list of web sources with URLs, titles, and snippets - like getting raw Google results.

Use when you need:
- Specific documents or links to reference
- Multiple sources to evaluate
- Discovery: seeing what's available on a topic

Examples:
- Find official documentation sites
- Look for recent articles on a topic (use recency filter)
- Filter to trusted domains like .edu or .gov sites
- Exclude social media sites from results`

const askDescription = `Returns an AI-synthesized answer from web search with citations. Fast and cost-effective.

Special capabilities:
- Academic mode: Search scholarly papers and research publications
- SEC mode: Search financial filings and regulatory documents
- Recency filtering: Focus on results from the past day, week, or month
- Domain filtering: Include or exclude specific websites
- Images: Get related images in the response
- Related questions: Receive follow-up question suggestions

Example use cases:
- Quick facts and explanations about any topic
- Recent news and developments (use recency filter)
- Academic research questions (use academic mode)
- Company financial information (use SEC mode)
- Visual content needs (enable images)`

const askMoreDescription = `Like 'ask' but significantly MORE comprehensive and detailed. Slower and more expensive.

Use when: Standard 'ask' doesn't provide enough depth or you need thorough investigation.

Same parameters as 'ask' (search_mode, domain_filter, recency, etc.) but with deeper analysis.`

// NewSearchTool creates the search tool backed by client.
func NewSearchTool(client *Client) *tool.Tool[SearchInput, string] {
	return tool.NewTool[SearchInput, string](
		SearchToolName,
		client.Search,
		tool.WithDescription(searchDescription),
	)
}

// NewAskTool creates the ask tool backed by client.
func NewAskTool(client *Client) *tool.Tool[AskInput, string] {
	return tool.NewTool[AskInput, string](
		AskToolName,
		client.Ask,
		tool.WithDescription(askDescription),
	)
}

// NewAskMoreTool creates the ask_more tool backed by client.
func NewAskMoreTool(client *Client) *tool.Tool[AskInput, string] {
	return tool.NewTool[AskInput, string](
		AskMoreToolName,
		client.AskMore,
		tool.WithDescription(askMoreDescription),
	)
}

// Tools returns all tools backed by client, ready for a [tool.Catalog].
func Tools(client *Client) []tool.GenericTool {
	return []tool.GenericTool{
		NewSearchTool(client),
		NewAskTool(client),
		NewAskMoreTool(client),
	}
}
