package sorting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/postxindia/postx-backend/internal/core/address"
)

// ErrClassification is returned when the model response contains no
// parseable JSON object.
var ErrClassification = errors.New("sorting classification failed")

// Priority classes and delivery zones the model is asked to choose from.
// The classifier deliberately does not re-validate the model's choice; the
// response is passed through as returned.
const (
	PriorityExpress  = "express"
	PriorityStandard = "standard"
	PriorityEconomy  = "economy"
)

// Decision maps an address to a sorting center and route. Immutable once
// produced.
type Decision struct {
	SortingCenter         string `json:"sortingCenter"`
	RouteCode             string `json:"routeCode"` // STATE-CITY-###
	Priority              string `json:"priority"`  // express, standard, economy
	EstimatedDeliveryDays int    `json:"estimatedDeliveryDays"`
	Zone                  string `json:"zone"` // Metro, Urban, Rural, Remote
}

// Classifier predicts the sorting center and route for an address using a
// language model.
type Classifier struct {
	model address.TextGenerator
}

// NewClassifier creates a new sorting classifier
func NewClassifier(model address.TextGenerator) *Classifier {
	return &Classifier{model: model}
}

// Classify determines the sorting decision for a parsed address.
func (c *Classifier) Classify(ctx context.Context, addr *address.StructuredAddress) (*Decision, error) {
	prompt := fmt.Sprintf(`You are an AI sorting system for India Post. Based on this address, determine the optimal sorting center and route:

PIN Code: %s
City: %s
State: %s

Provide a JSON response with:
- sortingCenter: Name of the nearest regional sorting center
- routeCode: Route identifier (format: STATE-CITY-###)
- priority: "express", "standard", or "economy"
- estimatedDeliveryDays: Number (1-7)
- zone: Delivery zone (Metro/Urban/Rural/Remote)

Return only valid JSON.`, addr.Pincode, addr.City, addr.State)

	response, err := c.model.GenerateResponse(ctx, "", prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassification, err)
	}

	obj, ok := address.ExtractJSONObject(response)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object in model response", ErrClassification)
	}

	var decision Decision
	if err := json.Unmarshal([]byte(obj), &decision); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassification, err)
	}

	return &decision, nil
}
