package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominatimGeocoder(t *testing.T) {
	t.Run("parses string coordinates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NotEmpty(t, r.Header.Get("User-Agent"))
			assert.Equal(t, "Bangalore GPO, Bengaluru, Karnataka, India", r.URL.Query().Get("q"))
			assert.Equal(t, "json", r.URL.Query().Get("format"))
			w.Write([]byte(`[{"lat":"12.9762","lon":"77.6033","display_name":"Bangalore GPO"}]`))
		}))
		defer server.Close()

		g := NewNominatimGeocoder(server.URL)
		point, err := g.Geocode(context.Background(), "Bangalore GPO, Bengaluru, Karnataka, India")
		require.NoError(t, err)
		assert.InDelta(t, 12.9762, point.Lat, 1e-9)
		assert.InDelta(t, 77.6033, point.Lon, 1e-9)
	})

	t.Run("no result is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		g := NewNominatimGeocoder(server.URL)
		_, err := g.Geocode(context.Background(), "nowhere at all")
		assert.Error(t, err)
	})

	t.Run("malformed coordinate is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"lat":"not-a-number","lon":"77.6033"}]`))
		}))
		defer server.Close()

		g := NewNominatimGeocoder(server.URL)
		_, err := g.Geocode(context.Background(), "somewhere")
		assert.Error(t, err)
	})
}
