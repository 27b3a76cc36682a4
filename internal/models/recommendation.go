package models

// ComboItem is one line of a recommended combo
type ComboItem struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Note     string `json:"note,omitempty"`
}

// Recommendation is a single combo offered to the guest
type Recommendation struct {
	Title             string      `json:"title"`
	Tags              []string    `json:"tags"`
	Items             []ComboItem `json:"items"`
	EstimatePerPerson string      `json:"estimatePerPerson"`
	EstimateTotal     string      `json:"estimateTotal"`
	Rationale         string      `json:"rationale"`
}

// HasTag checks if the recommendation carries a tag
func (r *Recommendation) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Response is the combo endpoint payload. An empty list is a valid outcome.
type Response struct {
	Recommendations []Recommendation `json:"recommendations"`
	Strategy        string           `json:"strategy,omitempty"`
}

// Recommendation tags marking which strategy produced a combo
const (
	TagGenerated = "generated"
	TagRuleBased = "rule-based"
	TagLLM       = "llm"
)

// UnknownEstimate is shown when a price estimate cannot be computed
const UnknownEstimate = "—"
