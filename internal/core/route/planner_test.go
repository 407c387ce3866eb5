package route

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postxindia/postx-backend/internal/core/address"
	"github.com/postxindia/postx-backend/internal/core/geo"
	"github.com/postxindia/postx-backend/internal/core/ocr"
	"github.com/postxindia/postx-backend/internal/core/pipeline"
	"github.com/postxindia/postx-backend/internal/core/sorting"
)

type stubPipeline struct {
	result *pipeline.Result
	err    error
}

func (s *stubPipeline) Process(ctx context.Context, image []byte, ocrProvider string) (*pipeline.Result, error) {
	return s.result, s.err
}

type stubLookup struct {
	offices []geo.PostOffice
	err     error
}

func (s *stubLookup) Lookup(ctx context.Context, pincode string) ([]geo.PostOffice, error) {
	return s.offices, s.err
}

// stubGeocoder resolves office names to fixed points; unknown names fail.
// Safe for concurrent use.
type stubGeocoder struct {
	mu      sync.Mutex
	points  map[string]geo.Point
	queries []string
}

func (s *stubGeocoder) Geocode(ctx context.Context, addr string) (*geo.Point, error) {
	s.mu.Lock()
	s.queries = append(s.queries, addr)
	s.mu.Unlock()

	for name, point := range s.points {
		if strings.HasPrefix(addr, name) {
			return &geo.Point{Lat: point.Lat, Lon: point.Lon}, nil
		}
	}
	return nil, errors.New("no geocoding result")
}

type stubDirections struct {
	route  *geo.Route
	err    error
	gotEnd geo.Point
}

func (s *stubDirections) DrivingRoute(ctx context.Context, start, end geo.Point) (*geo.Route, error) {
	s.gotEnd = end
	return s.route, s.err
}

func pipelineResult() *pipeline.Result {
	return &pipeline.Result{
		Address: &address.StructuredAddress{City: "Bengaluru", State: "Karnataka", Pincode: "560001"},
		Sorting: &sorting.Decision{RouteCode: "KA-BLR-001"},
		OCR:     &ocr.Result{Provider: ocr.SelectorMistral},
	}
}

func offices(names ...string) []geo.PostOffice {
	out := make([]geo.PostOffice, 0, len(names))
	for _, name := range names {
		out = append(out, geo.PostOffice{Name: name, Pincode: "560001", District: "Bengaluru", State: "Karnataka"})
	}
	return out
}

func TestPlannerProcess(t *testing.T) {
	ctx := context.Background()
	user := geo.Point{Lat: 12.9716, Lon: 77.5946}

	t.Run("ranks candidates nearest first", func(t *testing.T) {
		geocoder := &stubGeocoder{points: map[string]geo.Point{
			"Far Office":  {Lat: 13.30, Lon: 77.90},
			"Near Office": {Lat: 12.98, Lon: 77.60},
			"Mid Office":  {Lat: 13.10, Lon: 77.70},
		}}
		directions := &stubDirections{route: &geo.Route{DistanceMeters: 1500}}
		p := NewPlanner(
			&stubPipeline{result: pipelineResult()},
			&stubLookup{offices: offices("Far Office", "Near Office", "Mid Office")},
			geocoder,
			directions,
		)

		plan, err := p.Process(ctx, []byte("img"), ocr.SelectorMistral, user.Lat, user.Lon)
		require.NoError(t, err)
		require.Len(t, plan.PostOffices, 3)
		assert.Equal(t, "Near Office", plan.PostOffices[0].Name)
		assert.Equal(t, "Mid Office", plan.PostOffices[1].Name)
		assert.Equal(t, "Far Office", plan.PostOffices[2].Name)
		assert.Equal(t, "Near Office", plan.NearestPostOffice.Name)

		// route is requested to the winning candidate
		assert.InDelta(t, 12.98, directions.gotEnd.Lat, 1e-9)
		assert.NotNil(t, plan.Routing)
		assert.Equal(t, user, plan.UserLocation)
	})

	t.Run("delhi candidates rank by haversine distance", func(t *testing.T) {
		delhiUser := geo.Point{Lat: 28.6139, Lon: 77.2090}
		geocoder := &stubGeocoder{points: map[string]geo.Point{
			"Pitampura": {Lat: 28.70, Lon: 77.10},
			"Lodi Road": {Lat: 28.60, Lon: 77.20},
		}}
		p := NewPlanner(
			&stubPipeline{result: pipelineResult()},
			&stubLookup{offices: offices("Pitampura", "Lodi Road")},
			geocoder,
			&stubDirections{route: &geo.Route{}},
		)

		plan, err := p.Process(ctx, []byte("img"), ocr.SelectorMistral, delhiUser.Lat, delhiUser.Lon)
		require.NoError(t, err)
		require.Len(t, plan.PostOffices, 2)
		assert.Equal(t, "Lodi Road", plan.PostOffices[0].Name)
		assert.Equal(t, "Pitampura", plan.PostOffices[1].Name)
		assert.InDelta(t, 1.77787, plan.PostOffices[0].DistanceKm, 1e-3)
		assert.InDelta(t, 14.30997, plan.PostOffices[1].DistanceKm, 1e-3)
	})

	t.Run("failed geocodes drop candidates but do not fail the plan", func(t *testing.T) {
		geocoder := &stubGeocoder{points: map[string]geo.Point{
			"B Office": {Lat: 12.98, Lon: 77.60},
			"D Office": {Lat: 13.10, Lon: 77.70},
		}}
		p := NewPlanner(
			&stubPipeline{result: pipelineResult()},
			&stubLookup{offices: offices("A Office", "B Office", "C Office", "D Office", "E Office")},
			geocoder,
			&stubDirections{route: &geo.Route{}},
		)

		plan, err := p.Process(ctx, []byte("img"), ocr.SelectorMistral, user.Lat, user.Lon)
		require.NoError(t, err)
		require.Len(t, plan.PostOffices, 2)
		assert.Equal(t, "B Office", plan.PostOffices[0].Name)
	})

	t.Run("geocoding caps the candidate fan-out", func(t *testing.T) {
		geocoder := &stubGeocoder{points: map[string]geo.Point{
			"PO1": {Lat: 12.98, Lon: 77.60},
		}}
		p := NewPlanner(
			&stubPipeline{result: pipelineResult()},
			&stubLookup{offices: offices("PO1", "PO2", "PO3", "PO4", "PO5", "PO6", "PO7")},
			geocoder,
			&stubDirections{route: &geo.Route{}},
		)

		_, err := p.Process(ctx, []byte("img"), ocr.SelectorMistral, user.Lat, user.Lon)
		require.NoError(t, err)
		assert.Len(t, geocoder.queries, maxGeocodeCandidates)
	})

	t.Run("all geocodes failing is ErrNoGeocodableOffice", func(t *testing.T) {
		p := NewPlanner(
			&stubPipeline{result: pipelineResult()},
			&stubLookup{offices: offices("A Office", "B Office")},
			&stubGeocoder{},
			&stubDirections{},
		)

		_, err := p.Process(ctx, []byte("img"), ocr.SelectorMistral, user.Lat, user.Lon)
		assert.ErrorIs(t, err, ErrNoGeocodableOffice)

		var stageErr *StageError
		require.ErrorAs(t, err, &stageErr)
		assert.Equal(t, StageRanking, stageErr.Stage)
	})

	t.Run("routing failure degrades to nil route", func(t *testing.T) {
		geocoder := &stubGeocoder{points: map[string]geo.Point{
			"Near Office": {Lat: 12.98, Lon: 77.60},
		}}
		p := NewPlanner(
			&stubPipeline{result: pipelineResult()},
			&stubLookup{offices: offices("Near Office")},
			geocoder,
			&stubDirections{err: errors.New("directions quota exceeded")},
		)

		plan, err := p.Process(ctx, []byte("img"), ocr.SelectorMistral, user.Lat, user.Lon)
		require.NoError(t, err)
		assert.Nil(t, plan.Routing)
		assert.Equal(t, "Near Office", plan.NearestPostOffice.Name)
	})

	t.Run("non-finite user location is rejected", func(t *testing.T) {
		p := NewPlanner(&stubPipeline{}, &stubLookup{}, &stubGeocoder{}, &stubDirections{})

		for _, coords := range [][2]float64{
			{math.NaN(), 77.59},
			{12.97, math.NaN()},
			{math.Inf(1), 77.59},
		} {
			_, err := p.Process(ctx, []byte("img"), ocr.SelectorMistral, coords[0], coords[1])
			assert.ErrorIs(t, err, ErrInvalidLocation)

			var stageErr *StageError
			require.ErrorAs(t, err, &stageErr)
			assert.Equal(t, StageAwaitingLocation, stageErr.Stage)
		}
	})

	t.Run("pipeline failure carries its stage", func(t *testing.T) {
		p := NewPlanner(
			&stubPipeline{err: ocr.ErrExhausted},
			&stubLookup{}, &stubGeocoder{}, &stubDirections{},
		)

		_, err := p.Process(ctx, []byte("img"), ocr.SelectorMistral, user.Lat, user.Lon)
		assert.ErrorIs(t, err, ocr.ErrExhausted)

		var stageErr *StageError
		require.ErrorAs(t, err, &stageErr)
		assert.Equal(t, StageRunningPipeline, stageErr.Stage)
	})

	t.Run("office lookup failure carries its stage", func(t *testing.T) {
		p := NewPlanner(
			&stubPipeline{result: pipelineResult()},
			&stubLookup{err: geo.ErrPincodeNotFound},
			&stubGeocoder{}, &stubDirections{},
		)

		_, err := p.Process(ctx, []byte("img"), ocr.SelectorMistral, user.Lat, user.Lon)
		assert.ErrorIs(t, err, geo.ErrPincodeNotFound)

		var stageErr *StageError
		require.ErrorAs(t, err, &stageErr)
		assert.Equal(t, StageFetchingOffices, stageErr.Stage)
	})
}
