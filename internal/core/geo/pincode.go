package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrPincodeNotFound is returned when the lookup service reports no post
// offices for a PIN code.
var ErrPincodeNotFound = errors.New("no post offices found for pincode")

// PostOffice is one entry returned by the PIN code directory.
type PostOffice struct {
	Name     string `json:"name"`
	Pincode  string `json:"pincode"`
	District string `json:"district"`
	State    string `json:"state"`
}

// PincodeClient looks up post offices by 6-digit PIN code using the
// postalpincode.in directory API.
type PincodeClient struct {
	baseURL string
	client  *http.Client
}

// NewPincodeClient creates a new PIN code directory client
func NewPincodeClient(baseURL string) *PincodeClient {
	return &PincodeClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// postalpincode.in response structure
type pincodeResponse []struct {
	Message    string `json:"Message"`
	Status     string `json:"Status"`
	PostOffice []struct {
		Name     string `json:"Name"`
		Pincode  string `json:"Pincode"`
		District string `json:"District"`
		State    string `json:"State"`
	} `json:"PostOffice"`
}

// Lookup returns the post offices registered under the given PIN code.
// A lookup that succeeds at the HTTP level but reports no match returns
// ErrPincodeNotFound.
func (c *PincodeClient) Lookup(ctx context.Context, pincode string) ([]PostOffice, error) {
	reqURL := fmt.Sprintf("%s/pincode/%s", c.baseURL, url.PathEscape(pincode))
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pincode lookup failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pincode lookup error (status: %d): %s", resp.StatusCode, string(body))
	}

	var pinResp pincodeResponse
	if err := json.Unmarshal(body, &pinResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(pinResp) == 0 || pinResp[0].Status != "Success" {
		return nil, fmt.Errorf("%w: %s", ErrPincodeNotFound, pincode)
	}

	offices := make([]PostOffice, 0, len(pinResp[0].PostOffice))
	for _, po := range pinResp[0].PostOffice {
		offices = append(offices, PostOffice{
			Name:     po.Name,
			Pincode:  po.Pincode,
			District: po.District,
			State:    po.State,
		})
	}

	if len(offices) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrPincodeNotFound, pincode)
	}

	return offices, nil
}
