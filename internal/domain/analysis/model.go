package analysis

import (
	"strings"

	"github.com/yanqian/climate-advisor/internal/domain/climate"
	"github.com/yanqian/climate-advisor/pkg/metrics"
)

// DefaultZone is analyzed when a request names neither a zone nor coordinates.
const DefaultZone = "new-york"

// Request is the payload accepted by Analyze and Export.
// Zona is accepted as an alias of Zone for older web clients.
type Request struct {
	UserType string   `json:"user_type"`
	Zone     string   `json:"zone"`
	Zona     string   `json:"zona"`
	Days     *int     `json:"days"`
	Lat      *float64 `json:"lat"`
	Lon      *float64 `json:"lon"`
	TZ       *string  `json:"tz"`
}

// ZoneName returns the requested zone, preferring "zone" over "zona".
func (r Request) ZoneName() string {
	if z := strings.TrimSpace(r.Zone); z != "" {
		return z
	}
	return strings.TrimSpace(r.Zona)
}

// Parameters echoes the validated request.
type Parameters struct {
	UserType string `json:"user_type"`
	Zone     string `json:"zone"`
	Days     int    `json:"days"`
}

// Charts holds base64 PNGs keyed by kind.
type Charts struct {
	Temperature string `json:"temperature"`
	Solar       string `json:"solar"`
}

// Response is serialized back to API consumers.
type Response struct {
	Success          bool                  `json:"success"`
	RequestID        string                `json:"requestId"`
	Timestamp        string                `json:"timestamp"`
	Parameters       Parameters            `json:"parameters"`
	Location         climate.Location      `json:"location"`
	Metrics          climate.EnergyMetrics `json:"metrics"`
	Suggestion       string                `json:"suggestion"`
	SuggestionSource string                `json:"suggestionSource"`
	TokenUsage       *metrics.TokenUsage   `json:"tokenUsage,omitempty"`
	DataQuality      climate.DataQuality   `json:"dataQuality"`
	Charts           Charts                `json:"charts"`
}

// ExportFile is a CSV download.
type ExportFile struct {
	Filename string
	Content  []byte
}
