package route

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/postxindia/postx-backend/internal/core/geo"
	"github.com/postxindia/postx-backend/internal/core/pipeline"
)

// Stage identifies where in the smart-route sequence a request currently is;
// failures carry the stage they occurred in.
type Stage string

const (
	StageAwaitingLocation Stage = "awaiting_location"
	StageRunningPipeline  Stage = "running_ocr_pipeline"
	StageFetchingOffices  Stage = "fetching_post_offices"
	StageGeocoding        Stage = "geocoding_candidates"
	StageRanking          Stage = "ranking_by_distance"
	StageRequestingRoute  Stage = "requesting_route"
	StageComplete         Stage = "complete"
)

var (
	// ErrInvalidLocation is returned when the caller-supplied coordinates are
	// not finite numbers.
	ErrInvalidLocation = errors.New("invalid user location")

	// ErrNoGeocodableOffice is returned when no candidate post office could
	// be geocoded.
	ErrNoGeocodableOffice = errors.New("could not geocode any post offices")
)

// maxGeocodeCandidates caps the concurrent geocoding fan-out.
const maxGeocodeCandidates = 5

// StageError wraps a failure with the stage it occurred in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Candidate is a post office with its geocoded position and distance from
// the user. Transient, per-request only.
type Candidate struct {
	Name       string  `json:"name"`
	Pincode    string  `json:"pincode"`
	District   string  `json:"district"`
	State      string  `json:"state"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	DistanceKm float64 `json:"distance"`
}

// Plan is the aggregate smart-route result. Routing is nil when the
// directions service failed; that degradation is not an error.
type Plan struct {
	*pipeline.Result
	PostOffices       []Candidate `json:"postOffices"`
	NearestPostOffice *Candidate  `json:"nearestPostOffice"`
	Routing           *geo.Route  `json:"routing"`
	UserLocation      geo.Point   `json:"userLocation"`
	TotalElapsedMs    int64       `json:"totalElapsedMs"`
}

// MailPipeline runs the OCR/parse/classify pipeline.
type MailPipeline interface {
	Process(ctx context.Context, image []byte, ocrProvider string) (*pipeline.Result, error)
}

// OfficeLookup finds post offices by PIN code.
type OfficeLookup interface {
	Lookup(ctx context.Context, pincode string) ([]geo.PostOffice, error)
}

// RouteRequester requests a driving route between two points.
type RouteRequester interface {
	DrivingRoute(ctx context.Context, start, end geo.Point) (*geo.Route, error)
}

// Planner computes the nearest post office for a processed mail item and a
// driving route to it.
type Planner struct {
	pipeline   MailPipeline
	lookup     OfficeLookup
	geocoder   geo.Geocoder
	directions RouteRequester
}

// NewPlanner creates a new smart mail route planner
func NewPlanner(mailPipeline MailPipeline, lookup OfficeLookup, geocoder geo.Geocoder, directions RouteRequester) *Planner {
	return &Planner{
		pipeline:   mailPipeline,
		lookup:     lookup,
		geocoder:   geocoder,
		directions: directions,
	}
}

// Process runs the full smart-route sequence: pipeline, office lookup,
// concurrent geocoding, distance ranking, and route request.
func (p *Planner) Process(ctx context.Context, image []byte, ocrProvider string, userLat, userLon float64) (*Plan, error) {
	startTime := time.Now()

	if !isFinite(userLat) || !isFinite(userLon) {
		return nil, &StageError{Stage: StageAwaitingLocation, Err: ErrInvalidLocation}
	}
	user := geo.Point{Lat: userLat, Lon: userLon}

	result, err := p.pipeline.Process(ctx, image, ocrProvider)
	if err != nil {
		return nil, &StageError{Stage: StageRunningPipeline, Err: err}
	}

	log.Info().Str("pincode", result.Address.Pincode).Msg("fetching post offices")
	offices, err := p.lookup.Lookup(ctx, result.Address.Pincode)
	if err != nil {
		return nil, &StageError{Stage: StageFetchingOffices, Err: err}
	}

	candidates := p.geocodeOffices(ctx, offices, user)
	if len(candidates) == 0 {
		return nil, &StageError{Stage: StageRanking, Err: ErrNoGeocodableOffice}
	}

	// Rank nearest-first; ties keep geocoding (input) order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].DistanceKm < candidates[j].DistanceKm
	})
	nearest := candidates[0]

	// A routing failure degrades to a nil route, never a failed request.
	routing, err := p.directions.DrivingRoute(ctx, user, geo.Point{Lat: nearest.Lat, Lon: nearest.Lon})
	if err != nil {
		log.Warn().Err(err).Str("office", nearest.Name).Msg("route request failed, continuing without routing")
		routing = nil
	}

	return &Plan{
		Result:            result,
		PostOffices:       candidates,
		NearestPostOffice: &nearest,
		Routing:           routing,
		UserLocation:      user,
		TotalElapsedMs:    time.Since(startTime).Milliseconds(),
	}, nil
}

// geocodeOffices geocodes up to maxGeocodeCandidates offices concurrently.
// A failed geocode drops that candidate; survivors keep input order.
func (p *Planner) geocodeOffices(ctx context.Context, offices []geo.PostOffice, user geo.Point) []Candidate {
	if len(offices) > maxGeocodeCandidates {
		offices = offices[:maxGeocodeCandidates]
	}

	results := make([]*Candidate, len(offices))
	var wg sync.WaitGroup

	for i, office := range offices {
		wg.Add(1)
		go func(i int, office geo.PostOffice) {
			defer wg.Done()

			query := fmt.Sprintf("%s, %s, %s, India", office.Name, office.District, office.State)
			point, err := p.geocoder.Geocode(ctx, query)
			if err != nil {
				log.Warn().Err(err).Str("office", office.Name).Msg("geocoding failed, dropping candidate")
				return
			}

			results[i] = &Candidate{
				Name:       office.Name,
				Pincode:    office.Pincode,
				District:   office.District,
				State:      office.State,
				Lat:        point.Lat,
				Lon:        point.Lon,
				DistanceKm: geo.DistanceKm(user.Lat, user.Lon, point.Lat, point.Lon),
			}
		}(i, office)
	}

	wg.Wait()

	candidates := make([]Candidate, 0, len(results))
	for _, c := range results {
		if c != nil {
			candidates = append(candidates, *c)
		}
	}
	return candidates
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
