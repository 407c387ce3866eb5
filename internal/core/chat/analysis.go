package chat

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/postxindia/postx-backend/internal/core/address"
)

// ComplaintAnalysis is the model's triage of a customer complaint.
type ComplaintAnalysis struct {
	Sentiment    float64 `json:"sentiment"` // 0 very negative, 1 very positive
	Category     string  `json:"category"`  // delivery_delay, package_damage, missing_item, service_quality, other
	Priority     string  `json:"priority"`  // low, medium, high, urgent
	AutoResponse string  `json:"autoResponse"`
}

func defaultAnalysis() *ComplaintAnalysis {
	return &ComplaintAnalysis{
		Sentiment:    0.5,
		Category:     "other",
		Priority:     "medium",
		AutoResponse: "Thank you for your complaint. We are reviewing your issue and will respond shortly.",
	}
}

// ComplaintAnalyzer triages complaints with a language model.
type ComplaintAnalyzer struct {
	model address.TextGenerator
}

// NewComplaintAnalyzer creates a new complaint analyzer
func NewComplaintAnalyzer(model address.TextGenerator) *ComplaintAnalyzer {
	return &ComplaintAnalyzer{model: model}
}

// Analyze scores and categorizes a complaint. Any model failure degrades to
// a neutral default instead of erroring; complaint intake never blocks on
// the model.
func (a *ComplaintAnalyzer) Analyze(ctx context.Context, complaintText string) *ComplaintAnalysis {
	prompt := fmt.Sprintf(`Analyze this postal service complaint and provide:
1. Sentiment score (0-1, where 0 is very negative, 1 is very positive)
2. Category (delivery_delay, package_damage, missing_item, service_quality, other)
3. Priority (low, medium, high, urgent)
4. Auto-response suggestion

Complaint: %q

Respond in JSON format:
{
  "sentiment": 0.5,
  "category": "category_name",
  "priority": "priority_level",
  "autoResponse": "suggested response text"
}`, complaintText)

	response, err := a.model.GenerateResponse(ctx, "", prompt)
	if err != nil {
		log.Warn().Err(err).Msg("complaint analysis failed, using defaults")
		return defaultAnalysis()
	}

	obj, ok := address.ExtractJSONObject(response)
	if !ok {
		return defaultAnalysis()
	}

	var analysis ComplaintAnalysis
	if err := json.Unmarshal([]byte(obj), &analysis); err != nil {
		return defaultAnalysis()
	}

	return &analysis
}
