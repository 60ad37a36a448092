package insight

// Insight is one cultural recommendation returned by the insight service.
// The service answers with either Name or Title, and either Confidence or
// Score, depending on the endpoint.
type Insight struct {
	Name        string  `json:"name,omitempty"`
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`
	Score       float64 `json:"score,omitempty"`
	Popularity  float64 `json:"popularity,omitempty"`
}

// Label returns Name, or Title when Name is empty.
func (i Insight) Label() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Title
}

// Result is the outcome of Fetch. Live is false when Insights came from the
// mock generator.
type Result struct {
	Insights []Insight
	Live     bool
}

// Top returns at most n insights.
func (r Result) Top(n int) []Insight {
	if len(r.Insights) <= n {
		return r.Insights
	}
	return r.Insights[:n]
}

// Topic is a suggested course topic for the recommended and trending lists.
type Topic struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence,omitempty"`
	Popularity  float64 `json:"popularity,omitempty"`
}

type recommendationRequest struct {
	Type    string         `json:"type"`
	Context map[string]any `json:"context"`
	Filter  requestFilter  `json:"filter"`
}

type requestFilter struct {
	Limit     int     `json:"limit"`
	Diversity float64 `json:"diversity"`
}

type resultsEnvelope struct {
	Results []Insight `json:"results"`
}
