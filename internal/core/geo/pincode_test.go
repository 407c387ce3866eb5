package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPincodeClientLookup(t *testing.T) {
	t.Run("success maps post offices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/pincode/560001", r.URL.Path)
			w.Write([]byte(`[{"Message":"Number of pincode(s) found:2","Status":"Success","PostOffice":[
				{"Name":"Bangalore GPO","Pincode":"560001","District":"Bengaluru","State":"Karnataka"},
				{"Name":"HighCourt","Pincode":"560001","District":"Bengaluru","State":"Karnataka"}
			]}]`))
		}))
		defer server.Close()

		client := NewPincodeClient(server.URL)
		offices, err := client.Lookup(context.Background(), "560001")
		require.NoError(t, err)
		require.Len(t, offices, 2)
		assert.Equal(t, "Bangalore GPO", offices[0].Name)
		assert.Equal(t, "560001", offices[0].Pincode)
		assert.Equal(t, "Bengaluru", offices[0].District)
		assert.Equal(t, "Karnataka", offices[0].State)
	})

	t.Run("error status returns not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"Message":"No records found","Status":"Error","PostOffice":null}]`))
		}))
		defer server.Close()

		client := NewPincodeClient(server.URL)
		_, err := client.Lookup(context.Background(), "000000")
		assert.ErrorIs(t, err, ErrPincodeNotFound)
	})

	t.Run("success with empty offices returns not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"Message":"","Status":"Success","PostOffice":[]}]`))
		}))
		defer server.Close()

		client := NewPincodeClient(server.URL)
		_, err := client.Lookup(context.Background(), "110001")
		assert.ErrorIs(t, err, ErrPincodeNotFound)
	})

	t.Run("http error is not ErrPincodeNotFound", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewPincodeClient(server.URL)
		_, err := client.Lookup(context.Background(), "560001")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrPincodeNotFound)
	})
}
