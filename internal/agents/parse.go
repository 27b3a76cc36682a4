package agents

import (
	"strings"

	"github.com/tidwall/gjson"

	"comboplanner/internal/models"
)

// ParseRecommendations extracts recommendations from raw model output. A
// document carrying an "error" marker is reported as an upstream failure.
func ParseRecommendations(raw string) ([]models.Recommendation, error) {
	raw = stripFences(raw)
	if raw == "" || !gjson.Valid(raw) {
		return nil, ErrInvalidResponse
	}

	if marker := gjson.Get(raw, "error"); marker.Exists() && marker.String() != "" {
		return nil, &UpstreamError{Reason: marker.String()}
	}

	list := gjson.Get(raw, "recommendations")
	if !list.IsArray() {
		return nil, ErrInvalidResponse
	}

	recs := make([]models.Recommendation, 0, len(list.Array()))
	list.ForEach(func(_, r gjson.Result) bool {
		rec := models.Recommendation{
			Title:             r.Get("title").String(),
			Tags:              stringArray(r.Get("tags")),
			EstimatePerPerson: r.Get("estimatePerPerson").String(),
			EstimateTotal:     r.Get("estimateTotal").String(),
			Rationale:         r.Get("rationale").String(),
		}
		r.Get("items").ForEach(func(_, it gjson.Result) bool {
			name := strings.TrimSpace(it.Get("name").String())
			if name == "" {
				return true
			}
			rec.Items = append(rec.Items, models.ComboItem{
				Category: it.Get("category").String(),
				Name:     name,
				Note:     it.Get("note").String(),
			})
			return true
		})
		recs = append(recs, rec)
		return true
	})
	return recs, nil
}

func stringArray(r gjson.Result) []string {
	out := []string{}
	for _, v := range r.Array() {
		if s := v.String(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// stripFences removes a markdown code fence some models wrap JSON in.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	return strings.TrimSpace(raw)
}
