package climate

import (
	"time"

	"github.com/yanqian/climate-advisor/pkg/util"
)

// Energy thresholds shared by the metrics engine and the chart renderer.
const (
	ComfortThreshold   = 24.0
	ExtremeThreshold   = 35.0
	HighDemandTemp     = 32.0
	HighDemandHumidity = 60.0
	OptimalCloudCover  = 40.0
)

// Horizon bounds accepted by the pipeline.
const (
	MinHorizonDays     = 7
	MaxHorizonDays     = 365
	DefaultHorizonDays = 30
)

// DefaultTimezone lets the forecast provider infer the zone from the coordinates.
const DefaultTimezone = "auto"

// Location is a resolved point on the map.
type Location struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// Label is the human readable name used in prompts and chart titles.
func (l Location) Label() string {
	if l.Name != "" {
		return l.Name
	}
	return TitleCase(l.ID)
}

// DailyRecord is one normalized forecast day.
type DailyRecord struct {
	Date             time.Time `json:"date"`
	AvgTemp          float64   `json:"avg_temp"`
	MaxTemp          float64   `json:"max_temp"`
	RelativeHumidity float64   `json:"relative_humidity"`
	SolarRadiation   float64   `json:"solar_radiation"`
	CloudCover       float64   `json:"cloud_cover"`
	WindSpeed        float64   `json:"wind_speed"`
}

// Series is the daily forecast for a location over the requested window.
// Days are strictly increasing; calendar days the provider did not deliver are listed in Gaps.
type Series struct {
	Location Location
	Start    time.Time
	End      time.Time
	Days     []DailyRecord
	Gaps     []time.Time
}

// Clone returns a copy whose slices do not alias the receiver.
func (s Series) Clone() Series {
	out := s
	out.Days = append([]DailyRecord(nil), s.Days...)
	out.Gaps = append([]time.Time(nil), s.Gaps...)
	return out
}

// Quality summarizes how much of the requested window the provider delivered.
func (s Series) Quality() DataQuality {
	expected := 0
	if !s.Start.IsZero() && !s.End.IsZero() && !s.End.Before(s.Start) {
		expected = int(s.End.Sub(s.Start).Hours()/24) + 1
	}
	missing := make([]string, 0, len(s.Gaps))
	for _, gap := range s.Gaps {
		missing = append(missing, gap.Format(util.DateLayout))
	}
	return DataQuality{
		ExpectedDays: expected,
		ReceivedDays: len(s.Days),
		MissingDates: missing,
		Complete:     len(missing) == 0 && len(s.Days) == expected,
	}
}

// DataQuality is surfaced to callers instead of silently dropping provider gaps.
type DataQuality struct {
	ExpectedDays int      `json:"expectedDays"`
	ReceivedDays int      `json:"receivedDays"`
	MissingDates []string `json:"missingDates"`
	Complete     bool     `json:"complete"`
}

// ChartKind identifies a rendered chart.
type ChartKind string

const (
	ChartTemperature ChartKind = "temperature"
	ChartSolar       ChartKind = "solar"
)

// ChartArtifact is a base64 encoded PNG.
type ChartArtifact struct {
	Kind  ChartKind `json:"kind"`
	Image string    `json:"image"`
}

// Zone is a catalog entry exposed to clients.
type Zone struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Place is a geocoding search hit.
type Place struct {
	Name     string  `json:"name"`
	Country  string  `json:"country"`
	Admin1   string  `json:"admin1"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Timezone string  `json:"tz"`
	Display  string  `json:"display"`
}
