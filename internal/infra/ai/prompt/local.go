package prompt

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BuildLocalBrief produces a brief in the same schema as the AI analyst,
// built mechanically from the stored payload. Used when no AI provider is
// configured. It never prints; it only returns the JSON string.
func BuildLocalBrief(analysisJSON string) string {
	type Highlight struct {
		Pattern     string `json:"pattern"`
		Severity    string `json:"severity"`
		Explanation string `json:"explanation"`
	}

	type Output struct {
		RiskScore         int         `json:"risk_score"`
		Narrative         string      `json:"narrative"`
		Highlights        []Highlight `json:"highlights"`
		RecommendedAction string      `json:"recommended_action"`
	}

	var in struct {
		RiskScore int `json:"risk_score"`
		Patterns  []struct {
			Type        string `json:"type"`
			Description string `json:"description"`
			Severity    string `json:"severity"`
		} `json:"patterns"`
	}
	out := Output{Highlights: []Highlight{}}
	if err := json.Unmarshal([]byte(analysisJSON), &in); err != nil {
		out.Narrative = "analysis payload could not be parsed; no explanation available"
		b, _ := json.Marshal(out)
		return string(b)
	}

	out.RiskScore = in.RiskScore
	highCount := 0
	var names []string
	for _, p := range in.Patterns {
		if strings.EqualFold(p.Severity, "high") {
			highCount++
		}
		names = append(names, p.Type)
		out.Highlights = append(out.Highlights, Highlight{
			Pattern:     p.Type,
			Severity:    strings.ToLower(p.Severity),
			Explanation: p.Description,
		})
	}

	switch {
	case len(in.Patterns) == 0:
		out.Narrative = fmt.Sprintf("No anomaly patterns detected; risk score %d.", in.RiskScore)
		out.RecommendedAction = "no action required"
	case highCount > 0:
		out.Narrative = fmt.Sprintf("Risk score %d driven by %d pattern(s) including %d high-severity signal(s): %s.",
			in.RiskScore, len(in.Patterns), highCount, strings.Join(names, ", "))
		out.RecommendedAction = "escalate for manual review"
	default:
		out.Narrative = fmt.Sprintf("Risk score %d from %d lower-severity pattern(s): %s.",
			in.RiskScore, len(in.Patterns), strings.Join(names, ", "))
		out.RecommendedAction = "monitor; review if repeated"
	}

	b, _ := json.Marshal(out)
	return string(b)
}
