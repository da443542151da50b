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
	"github.com/yanqian/climate-advisor/pkg/util"
)

const (
	defaultClimateURL   = "https://climate-api.open-meteo.com/v1/climate"
	defaultClimateModel = "MRI_AGCM3_2_S"
	userAgent           = "climate-advisor/1.0"
)

const (
	fieldAvgTemp    = "temperature_2m_mean"
	fieldMaxTemp    = "temperature_2m_max"
	fieldHumidity   = "relative_humidity_2m_mean"
	fieldRadiation  = "shortwave_radiation_sum"
	fieldCloudCover = "cloud_cover_mean"
	fieldWindSpeed  = "wind_speed_10m_mean"
)

var dailyFields = []string{fieldAvgTemp, fieldMaxTemp, fieldHumidity, fieldRadiation, fieldCloudCover, fieldWindSpeed}

// ForecastClient fetches daily climate projections from the Open-Meteo climate API.
type ForecastClient struct {
	baseURL string
	model   string
	http    *resty.Client
	logger  *slog.Logger
	now     func() time.Time
}

// NewForecastClient builds a client; empty values fall back to the public endpoint and model.
func NewForecastClient(baseURL, model string, timeout time.Duration, logger *slog.Logger) *ForecastClient {
	endpoint := strings.TrimSpace(baseURL)
	if endpoint == "" {
		endpoint = defaultClimateURL
	}
	if strings.TrimSpace(model) == "" {
		model = defaultClimateModel
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ForecastClient{
		baseURL: strings.TrimRight(endpoint, "/"),
		model:   model,
		http:    newRestyClient(timeout),
		logger:  logger.With("component", "openmeteo.forecast"),
		now:     util.NowUTC,
	}
}

// Fetch requests [today, today+horizon] inclusive, so a complete answer has horizon+1 days.
func (c *ForecastClient) Fetch(ctx context.Context, req climate.FetchRequest) (climate.Series, error) {
	start := util.DateUTC(c.now())
	end := start.AddDate(0, 0, req.HorizonDays)
	loc := req.Location

	timezone := loc.Timezone
	if timezone == "" {
		timezone = climate.DefaultTimezone
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"latitude":   strconv.FormatFloat(loc.Latitude, 'f', -1, 64),
			"longitude":  strconv.FormatFloat(loc.Longitude, 'f', -1, 64),
			"start_date": start.Format(util.DateLayout),
			"end_date":   end.Format(util.DateLayout),
			"models":     c.model,
			"daily":      strings.Join(dailyFields, ","),
			"timezone":   timezone,
		}).
		Get(c.baseURL)
	if err != nil {
		return climate.Series{}, fmt.Errorf("%w: forecast request failed: %v", ErrUpstream, err)
	}
	if !resp.IsSuccess() {
		return climate.Series{}, upstreamStatusError("forecast", resp)
	}

	c.logger.Info("forecast received", "location", loc.ID, "status", resp.StatusCode(), "bytes", len(resp.Body()), "latency_ms", resp.Time().Milliseconds())

	var payload forecastResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return climate.Series{}, fmt.Errorf("%w: decode forecast: %v", ErrMalformed, err)
	}

	series, err := normalizeDaily(payload.Daily, start, end)
	if err != nil {
		return climate.Series{}, err
	}
	series.Location = loc
	if len(series.Gaps) > 0 {
		c.logger.Warn("forecast has gaps", "location", loc.ID, "missing", len(series.Gaps), "received", len(series.Days))
	}
	return series, nil
}

type forecastResponse struct {
	Daily *dailyBlock `json:"daily"`
}

type dailyBlock struct {
	Time       []string   `json:"time"`
	AvgTemp    []*float64 `json:"temperature_2m_mean"`
	MaxTemp    []*float64 `json:"temperature_2m_max"`
	Humidity   []*float64 `json:"relative_humidity_2m_mean"`
	Radiation  []*float64 `json:"shortwave_radiation_sum"`
	CloudCover []*float64 `json:"cloud_cover_mean"`
	WindSpeed  []*float64 `json:"wind_speed_10m_mean"`
}

func (d *dailyBlock) columns() map[string][]*float64 {
	return map[string][]*float64{
		fieldAvgTemp:    d.AvgTemp,
		fieldMaxTemp:    d.MaxTemp,
		fieldHumidity:   d.Humidity,
		fieldRadiation:  d.Radiation,
		fieldCloudCover: d.CloudCover,
		fieldWindSpeed:  d.WindSpeed,
	}
}

// normalizeDaily turns the parallel arrays into records. Days carrying a null in any
// field, and calendar days the provider skipped, become gaps.
func normalizeDaily(daily *dailyBlock, start, end time.Time) (climate.Series, error) {
	if daily == nil {
		return climate.Series{}, fmt.Errorf("%w: daily block missing", ErrMalformed)
	}
	if daily.Time == nil {
		return climate.Series{}, fmt.Errorf("%w: daily.time missing", ErrMalformed)
	}
	columns := daily.columns()
	for _, name := range dailyFields {
		values := columns[name]
		if values == nil {
			return climate.Series{}, fmt.Errorf("%w: daily.%s missing", ErrMalformed, name)
		}
		if len(values) != len(daily.Time) {
			return climate.Series{}, fmt.Errorf("%w: daily.%s has %d values for %d dates", ErrMalformed, name, len(values), len(daily.Time))
		}
	}

	days := make([]climate.DailyRecord, 0, len(daily.Time))
	delivered := make(map[time.Time]struct{}, len(daily.Time))
	var previous time.Time
	for i, raw := range daily.Time {
		date, err := time.Parse(util.DateLayout, raw)
		if err != nil {
			return climate.Series{}, fmt.Errorf("%w: bad date %q: %v", ErrMalformed, raw, err)
		}
		if i > 0 && !date.After(previous) {
			return climate.Series{}, fmt.Errorf("%w: dates not increasing at %s", ErrMalformed, raw)
		}
		previous = date

		if !allPresent(columns, i) {
			continue
		}
		delivered[date] = struct{}{}
		days = append(days, climate.DailyRecord{
			Date:             date,
			AvgTemp:          *daily.AvgTemp[i],
			MaxTemp:          *daily.MaxTemp[i],
			RelativeHumidity: *daily.Humidity[i],
			SolarRadiation:   *daily.Radiation[i],
			CloudCover:       *daily.CloudCover[i],
			WindSpeed:        *daily.WindSpeed[i],
		})
	}
	if len(days) == 0 {
		return climate.Series{}, fmt.Errorf("%w: no complete forecast days", ErrMalformed)
	}

	var gaps []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if _, ok := delivered[d]; !ok {
			gaps = append(gaps, d)
		}
	}

	return climate.Series{
		Start: start,
		End:   end,
		Days:  days,
		Gaps:  gaps,
	}, nil
}

func allPresent(columns map[string][]*float64, i int) bool {
	for _, values := range columns {
		if values[i] == nil {
			return false
		}
	}
	return true
}
