package openmeteo

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/climate-advisor/internal/domain/climate"
)

func TestGeocodingSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Berlin", r.URL.Query().Get("name"))
		require.Equal(t, "10", r.URL.Query().Get("count"))
		require.Equal(t, "en", r.URL.Query().Get("language"))
		_, _ = io.WriteString(w, `{"results":[
			{"name":"Berlin","country":"Germany","admin1":"Land Berlin","latitude":52.52,"longitude":13.41,"timezone":"Europe/Berlin"},
			{"name":"Berlin","country":"United States","admin1":"New Hampshire","latitude":44.47,"longitude":-71.18}
		]}`)
	}))
	defer server.Close()

	client := NewGeocodingClient(server.URL, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	places, err := client.Search(context.Background(), "Berlin", 10)
	require.NoError(t, err)
	require.Len(t, places, 2)
	require.Equal(t, climate.Place{
		Name:     "Berlin",
		Country:  "Germany",
		Admin1:   "Land Berlin",
		Lat:      52.52,
		Lon:      13.41,
		Timezone: "Europe/Berlin",
		Display:  "Berlin, Land Berlin - Germany",
	}, places[0])
	require.Equal(t, climate.DefaultTimezone, places[1].Timezone)
}

func TestGeocodingSearchNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"generationtime_ms":0.2}`)
	}))
	defer server.Close()

	client := NewGeocodingClient(server.URL, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	places, err := client.Search(context.Background(), "zzzz", 10)
	require.NoError(t, err)
	require.Empty(t, places)
}

func TestGeocodingSearchUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewGeocodingClient(server.URL, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := client.Search(context.Background(), "Paris", 10)
	require.ErrorIs(t, err, ErrUpstream)
	require.Contains(t, err.Error(), "status=503")
}
