package climate

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	apperrors "github.com/yanqian/climate-advisor/pkg/errors"
)

type catalogEntry struct {
	lat float64
	lon float64
	tz  string
}

var zoneCatalog = map[string]catalogEntry{
	"new-york":    {lat: 40.7128, lon: -74.0060, tz: "America/New_York"},
	"los-angeles": {lat: 34.0522, lon: -118.2437, tz: "America/Los_Angeles"},
	"chicago":     {lat: 41.8781, lon: -87.6298, tz: "America/Chicago"},
	"miami":       {lat: 25.7617, lon: -80.1918, tz: "America/New_York"},
	"seattle":     {lat: 47.6062, lon: -122.3321, tz: "America/Los_Angeles"},
}

// Zones lists the catalog sorted by id.
func Zones() []Zone {
	out := make([]Zone, 0, len(zoneCatalog))
	for id := range zoneCatalog {
		out = append(out, Zone{ID: id, Name: TitleCase(id)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ResolveLocation maps a zone name or explicit coordinates to a Location.
// Coordinates win over the catalog when both latitude and longitude are present.
func ResolveLocation(zone string, lat, lon *float64, tz *string) (Location, error) {
	if lat != nil && lon != nil {
		if *lat < -90 || *lat > 90 {
			return Location{}, apperrors.Wrap(apperrors.CodeInvalidInput, "latitude must be between -90 and 90", nil)
		}
		if *lon < -180 || *lon > 180 {
			return Location{}, apperrors.Wrap(apperrors.CodeInvalidInput, "longitude must be between -180 and 180", nil)
		}
		timezone := DefaultTimezone
		if tz != nil && strings.TrimSpace(*tz) != "" {
			timezone = strings.TrimSpace(*tz)
		}
		id := strings.TrimSpace(zone)
		name := TitleCase(id)
		if id == "" {
			id = fmt.Sprintf("%.4f,%.4f", *lat, *lon)
			name = fmt.Sprintf("%.4f, %.4f", *lat, *lon)
		}
		return Location{
			ID:        id,
			Name:      name,
			Latitude:  *lat,
			Longitude: *lon,
			Timezone:  timezone,
		}, nil
	}

	key := normalizeZone(zone)
	if key == "" {
		return Location{}, apperrors.Wrap(apperrors.CodeInvalidInput, "zone or coordinates (lat, lon) are required", nil)
	}
	entry, ok := zoneCatalog[key]
	if !ok {
		return Location{}, apperrors.Wrap(apperrors.CodeUnknownZone, fmt.Sprintf("zone '%s' not available and no coordinates provided", strings.TrimSpace(zone)), nil)
	}
	timezone := entry.tz
	if timezone == "" {
		timezone = DefaultTimezone
	}
	return Location{
		ID:        key,
		Name:      TitleCase(key),
		Latitude:  entry.lat,
		Longitude: entry.lon,
		Timezone:  timezone,
	}, nil
}

// TitleCase turns "new-york" into "New York".
func TitleCase(id string) string {
	words := strings.Fields(strings.ReplaceAll(strings.TrimSpace(id), "-", " "))
	return cases.Title(language.English).String(strings.Join(words, " "))
}

func normalizeZone(zone string) string {
	return strings.ToLower(strings.TrimSpace(zone))
}
