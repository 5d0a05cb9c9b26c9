// Package perplexity implements the search, ask and ask_more tools on top of
// the Perplexity API.
//
// Each tool turns its typed input into a request body ([BuildSearchPayload],
// [BuildChatPayload]), sends exactly one request through a [Client], and
// renders the response as plain text ([FormatSearchResults],
// [FormatChatResponse]). Tool handlers never return a Go error: every failure
// becomes a one-line diagnostic string such as
//
//	Chat API error: 429 - {"error":"rate limited"}
//
// so the host always receives a completed tool result.
//
// Usage:
//
//	client, err := perplexity.NewClient(os.Getenv("PERPLEXITY_API_KEY"))
//	if err != nil {
//	    return err
//	}
//	catalog := tool.NewCatalogWithTools(perplexity.Tools(client)...)
package perplexity
