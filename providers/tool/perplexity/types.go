package perplexity

import "encoding/json"

// Recency restricts sources to a recent time window.
type Recency string

const (
	RecencyDay   Recency = "day"
	RecencyWeek  Recency = "week"
	RecencyMonth Recency = "month"
)

func (r Recency) valid() bool {
	switch r {
	case RecencyDay, RecencyWeek, RecencyMonth:
		return true
	}
	return false
}

// ReasoningEffort controls how much reasoning the answer model applies.
type ReasoningEffort string

const (
	ReasoningLow    ReasoningEffort = "low"
	ReasoningMedium ReasoningEffort = "medium"
	ReasoningHigh   ReasoningEffort = "high"
)

func (r ReasoningEffort) valid() bool {
	switch r {
	case ReasoningLow, ReasoningMedium, ReasoningHigh:
		return true
	}
	return false
}

// SearchMode selects the source corpus for answers.
type SearchMode string

const (
	SearchModeWeb      SearchMode = "web"
	SearchModeAcademic SearchMode = "academic"
	SearchModeSEC      SearchMode = "sec"
)

func (m SearchMode) valid() bool {
	switch m {
	case SearchModeWeb, SearchModeAcademic, SearchModeSEC:
		return true
	}
	return false
}

// Variant selects the model tier used to answer a question.
type Variant int

const (
	// VariantStandard is the fast model used by the ask tool.
	VariantStandard Variant = iota
	// VariantDeep is the more thorough model used by the ask_more tool.
	VariantDeep
)

func (v Variant) String() string {
	switch v {
	case VariantStandard:
		return "standard"
	case VariantDeep:
		return "deep"
	default:
		return "unknown"
	}
}

// Models maps each variant to a model identifier.
type Models struct {
	Standard string
	Deep     string
}

// DefaultModels returns the model identifiers used when none are configured.
func DefaultModels() Models {
	return Models{Standard: "sonar", Deep: "sonar-pro"}
}

// === TOOL INPUTS ===

// SearchInput represents the input parameters for the search tool.
// Optional parameters are pointers or empty slices; nil means "not sent".
type SearchInput struct {
	Query        string   `json:"query" jsonschema:"description=Search query to find relevant sources"`
	MaxResults   *int     `json:"max_results,omitempty" jsonschema:"description=Maximum number of results to return (default: 10),default=10"`
	Recency      *Recency `json:"recency,omitempty" jsonschema:"description=Filter sources by time: 'day' or 'week' or 'month',enum=day,enum=week,enum=month"`
	DomainFilter []string `json:"domain_filter,omitempty" jsonschema:"description=List of domains to include (e.g. ['wikipedia.org']) or exclude (prefix with '-' e.g. ['-reddit.com'])"`
}

// AskInput represents the input parameters shared by the ask and ask_more tools.
type AskInput struct {
	Query                  string           `json:"query" jsonschema:"description=Question or topic to get an AI answer about"`
	ReasoningEffort        *ReasoningEffort `json:"reasoning_effort,omitempty" jsonschema:"description=How much reasoning to apply: 'low' (faster) or 'medium' (balanced) or 'high' (more thorough),enum=low,enum=medium,enum=high,default=medium"`
	SearchMode             *SearchMode      `json:"search_mode,omitempty" jsonschema:"description=Search type: 'web' (default) or 'academic' (scholarly sources) or 'sec' (SEC filings),enum=web,enum=academic,enum=sec"`
	Recency                *Recency         `json:"recency,omitempty" jsonschema:"description=Filter sources by time: 'day' or 'week' or 'month',enum=day,enum=week,enum=month"`
	DomainFilter           []string         `json:"domain_filter,omitempty" jsonschema:"description=Include/exclude specific domains (e.g. ['wikipedia.org'] or ['-reddit.com'])"`
	ReturnImages           bool             `json:"return_images,omitempty" jsonschema:"description=Include related images in the response"`
	ReturnRelatedQuestions bool             `json:"return_related_questions,omitempty" jsonschema:"description=Include follow-up question suggestions"`
}

// === API RESPONSES ===

// SearchResult is one entry of a search response. Every field may be
// missing, which is distinct from present but empty.
type SearchResult struct {
	Title   *string `json:"title"`
	URL     *string `json:"url"`
	Snippet *string `json:"snippet"`
}

type searchAPIResponse struct {
	Results []SearchResult `json:"results"`
}

// ChatResponse is the subset of a chat completion response that is rendered.
// Citations, images and related questions are kept raw because the API has
// returned both plain strings and objects for them.
type ChatResponse struct {
	Choices          []ChatChoice      `json:"choices"`
	Citations        []json.RawMessage `json:"citations,omitempty"`
	Images           []json.RawMessage `json:"images,omitempty"`
	RelatedQuestions []json.RawMessage `json:"related_questions,omitempty"`
}

// ChatChoice is a single completion choice.
type ChatChoice struct {
	Message ChatMessage `json:"message"`
}

// ChatMessage is the message of a completion choice.
type ChatMessage struct {
	Role    string  `json:"role,omitempty"`
	Content *string `json:"content"`
}
