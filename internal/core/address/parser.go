package address

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrParse is returned when no structured address can be obtained from the
// OCR text, or when the result fails postal-code validation.
var ErrParse = errors.New("address parse failed")

// parseConfidence is a nominal score assigned to every successful parse.
// Neither model reports a usable confidence for this task.
const parseConfidence = 0.90

var pincodeRe = regexp.MustCompile(`\d{6}`)

// StructuredAddress is a parsed Indian postal address. Built once by the
// parser and read-only thereafter; Pincode always matches ^\d{6}$.
type StructuredAddress struct {
	RecipientName string  `json:"recipientName"`
	Street        string  `json:"street"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	Pincode       string  `json:"pincode"`
	Landmark      string  `json:"landmark,omitempty"`
	Confidence    float64 `json:"confidence"`
	IsHandwritten bool    `json:"isHandwritten"`
	FullAddress   string  `json:"fullAddress"`
}

// JSONGenerator is a model endpoint with a strict JSON-only response mode.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// TextGenerator is a free-text model endpoint.
type TextGenerator interface {
	GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// Parser turns raw OCR text into a StructuredAddress. The primary model is
// called in JSON mode; any failure falls back to the secondary model's prose
// reply, mined for an embedded JSON object.
type Parser struct {
	primary  JSONGenerator
	fallback TextGenerator
}

// NewParser creates a new address parser
func NewParser(primary JSONGenerator, fallback TextGenerator) *Parser {
	return &Parser{
		primary:  primary,
		fallback: fallback,
	}
}

// model output before validation; pincode stays raw because models return it
// as either a string or a number
type rawAddress struct {
	RecipientName string          `json:"recipientName"`
	Street        string          `json:"street"`
	City          string          `json:"city"`
	State         string          `json:"state"`
	Pincode       json.RawMessage `json:"pincode"`
	Landmark      string          `json:"landmark"`
	IsHandwritten bool            `json:"isHandwritten"`
}

// Parse extracts address components from OCR text.
func (p *Parser) Parse(ctx context.Context, ocrText string) (*StructuredAddress, error) {
	raw, err := p.parsePrimary(ctx, ocrText)
	if err != nil {
		log.Warn().Err(err).Msg("primary address parsing failed, using fallback model")
		raw, err = p.parseFallback(ctx, ocrText)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
	}

	// Accept the first 6-digit run anywhere in the returned pincode field.
	pincode := pincodeRe.FindString(string(raw.Pincode))
	if pincode == "" {
		return nil, fmt.Errorf("%w: valid 6-digit PIN code not found", ErrParse)
	}

	fullAddress := strings.TrimSpace(fmt.Sprintf("%s, %s, %s - %s", raw.Street, raw.City, raw.State, pincode))

	return &StructuredAddress{
		RecipientName: raw.RecipientName,
		Street:        raw.Street,
		City:          raw.City,
		State:         raw.State,
		Pincode:       pincode,
		Landmark:      raw.Landmark,
		Confidence:    parseConfidence,
		IsHandwritten: raw.IsHandwritten,
		FullAddress:   fullAddress,
	}, nil
}

func (p *Parser) parsePrimary(ctx context.Context, ocrText string) (*rawAddress, error) {
	systemPrompt := "You are an expert at parsing Indian postal addresses. Extract structured information and return ONLY valid JSON."
	userPrompt := fmt.Sprintf(`Parse this text from a mail envelope and extract address components:

%q

Return JSON with: recipientName, street, city, state, pincode (exactly 6 digits), landmark (optional), isHandwritten (boolean).`, ocrText)

	response, err := p.primary.GenerateJSON(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	var raw rawAddress
	if err := json.Unmarshal([]byte(cleanModelJSON(response)), &raw); err != nil {
		return nil, fmt.Errorf("malformed JSON from primary model: %w", err)
	}

	return &raw, nil
}

func (p *Parser) parseFallback(ctx context.Context, ocrText string) (*rawAddress, error) {
	prompt := fmt.Sprintf(`Analyze this text extracted from a mail envelope and extract the address components in JSON format:

Text: %q

Return a JSON object with these fields:
- recipientName: Full name of the recipient
- street: Street address
- city: City name
- state: State name
- pincode: 6-digit PIN code (must be exactly 6 digits)
- landmark: Any landmark mentioned (optional)
- isHandwritten: true if text appears handwritten, false if printed

Be strict about PIN code validation. It must be exactly 6 digits. Return only valid JSON.`, ocrText)

	response, err := p.fallback.GenerateResponse(ctx, "", prompt)
	if err != nil {
		return nil, err
	}

	obj, ok := ExtractJSONObject(response)
	if !ok {
		return nil, errors.New("no JSON object in fallback model response")
	}

	var raw rawAddress
	if err := json.Unmarshal([]byte(obj), &raw); err != nil {
		return nil, fmt.Errorf("malformed JSON from fallback model: %w", err)
	}

	return &raw, nil
}

// cleanModelJSON strips markdown code fences some models wrap around JSON
// even in JSON mode.
func cleanModelJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
