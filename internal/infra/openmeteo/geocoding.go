package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/yanqian/climate-advisor/internal/domain/climate"
)

const defaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

// GeocodingClient searches places through the Open-Meteo geocoding API.
type GeocodingClient struct {
	baseURL string
	http    *resty.Client
	logger  *slog.Logger
}

// NewGeocodingClient builds a client; an empty URL uses the public endpoint.
func NewGeocodingClient(baseURL string, timeout time.Duration, logger *slog.Logger) *GeocodingClient {
	endpoint := strings.TrimSpace(baseURL)
	if endpoint == "" {
		endpoint = defaultGeocodingURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &GeocodingClient{
		baseURL: strings.TrimRight(endpoint, "/"),
		http:    newRestyClient(timeout),
		logger:  logger.With("component", "openmeteo.geocoding"),
	}
}

// Search returns at most count places matching query.
func (c *GeocodingClient) Search(ctx context.Context, query string, count int) ([]climate.Place, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"name":     query,
			"count":    strconv.Itoa(count),
			"language": "en",
			"format":   "json",
		}).
		Get(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: geocoding request failed: %v", ErrUpstream, err)
	}
	if !resp.IsSuccess() {
		return nil, upstreamStatusError("geocoding", resp)
	}

	var payload geocodingResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("%w: decode geocoding: %v", ErrMalformed, err)
	}
	c.logger.Debug("geocoding results", "query", query, "results", len(payload.Results))

	places := make([]climate.Place, 0, len(payload.Results))
	for _, r := range payload.Results {
		tz := r.Timezone
		if tz == "" {
			tz = climate.DefaultTimezone
		}
		places = append(places, climate.Place{
			Name:     r.Name,
			Country:  r.Country,
			Admin1:   r.Admin1,
			Lat:      r.Latitude,
			Lon:      r.Longitude,
			Timezone: tz,
			Display:  fmt.Sprintf("%s, %s - %s", r.Name, r.Admin1, r.Country),
		})
	}
	return places, nil
}

type geocodingResponse struct {
	Results []geocodingResult `json:"results"`
}

type geocodingResult struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}
