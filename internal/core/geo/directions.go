package geo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Route is a driving route between two points.
type Route struct {
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
	// Polyline is ordered (lat, lon), start to destination.
	Polyline []Point `json:"polyline"`
}

// DirectionsClient requests driving routes from the OpenRouteService
// directions API.
type DirectionsClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewDirectionsClient creates a new OpenRouteService directions client
func NewDirectionsClient(apiKey, baseURL string) *DirectionsClient {
	return &DirectionsClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// OpenRouteService request/response structures
type orsRequest struct {
	// Coordinates are (lon, lat) pairs, per GeoJSON convention
	Coordinates [][2]float64 `json:"coordinates"`
}

type orsResponse struct {
	Features []struct {
		Properties struct {
			Segments []struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"segments"`
		} `json:"properties"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// DrivingRoute requests a driving-car route from start to end.
func (c *DirectionsClient) DrivingRoute(ctx context.Context, start, end Point) (*Route, error) {
	reqBody := orsRequest{
		Coordinates: [][2]float64{
			{start.Lon, start.Lat},
			{end.Lon, end.Lat},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/v2/directions/driving-car/geojson"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directions error (status: %d): %s", resp.StatusCode, string(body))
	}

	var orsResp orsResponse
	if err := json.Unmarshal(body, &orsResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(orsResp.Features) == 0 || len(orsResp.Features[0].Properties.Segments) == 0 {
		return nil, fmt.Errorf("no route in directions response")
	}

	feature := orsResp.Features[0]
	segment := feature.Properties.Segments[0]

	// ORS geometry is (lon, lat); flip to (lat, lon) for callers
	polyline := make([]Point, 0, len(feature.Geometry.Coordinates))
	for _, coord := range feature.Geometry.Coordinates {
		if len(coord) < 2 {
			continue
		}
		polyline = append(polyline, Point{Lat: coord[1], Lon: coord[0]})
	}

	return &Route{
		DistanceMeters:  segment.Distance,
		DurationSeconds: segment.Duration,
		Polyline:        polyline,
	}, nil
}
