package climate

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// FetchRequest asks a provider for the daily series of a resolved location.
// The raw caller inputs are kept so caches can key on exactly what was asked.
type FetchRequest struct {
	Zone        string
	Latitude    *float64
	Longitude   *float64
	Timezone    *string
	HorizonDays int
	Location    Location
}

// CacheKey is deterministic for identical inputs. Name based and coordinate based
// requests never share a key even when they resolve to the same place.
func (r FetchRequest) CacheKey() string {
	parts := []string{
		strings.ToLower(strings.TrimSpace(r.Zone)),
		strconv.Itoa(r.HorizonDays),
		formatOptionalFloat(r.Latitude),
		formatOptionalFloat(r.Longitude),
		formatOptionalString(r.Timezone),
	}
	return strings.Join(parts, "|")
}

// ForecastProvider returns the normalized daily series for a request.
type ForecastProvider interface {
	Fetch(ctx context.Context, req FetchRequest) (Series, error)
}

// Geocoder searches places by free text.
type Geocoder interface {
	Search(ctx context.Context, query string, count int) ([]Place, error)
}

func formatOptionalFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatOptionalString(v *string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%q", *v)
}
