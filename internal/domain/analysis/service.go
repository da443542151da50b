package analysis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/yanqian/climate-advisor/internal/domain/advisor"
	"github.com/yanqian/climate-advisor/internal/domain/climate"
	"github.com/yanqian/climate-advisor/internal/infra/openmeteo"
	apperrors "github.com/yanqian/climate-advisor/pkg/errors"
	"github.com/yanqian/climate-advisor/pkg/util"
)

const (
	minQueryLength   = 2
	geocodingResults = 10
)

// Service exposes the climate analysis pipeline.
type Service interface {
	Analyze(ctx context.Context, req Request) (Response, error)
	Zones() []climate.Zone
	SearchLocations(ctx context.Context, query string) ([]climate.Place, error)
	Export(ctx context.Context, req Request) (ExportFile, error)
}

// ChartRenderer draws the response charts.
type ChartRenderer interface {
	Render(series climate.Series, label string) ([]climate.ChartArtifact, error)
}

type service struct {
	forecast climate.ForecastProvider
	geocoder climate.Geocoder
	advisor  advisor.Service
	charts   ChartRenderer
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires the pipeline orchestrator.
func NewService(forecast climate.ForecastProvider, geocoder climate.Geocoder, adv advisor.Service, charts ChartRenderer, logger *slog.Logger) Service {
	return &service{
		forecast: forecast,
		geocoder: geocoder,
		advisor:  adv,
		charts:   charts,
		logger:   logger.With("component", "analysis.service"),
		now:      util.NowUTC,
	}
}

type validated struct {
	category advisor.Category
	zone     string
	days     int
	location climate.Location
	fetch    climate.FetchRequest
}

// validate checks every input before any external call is made.
func (s *service) validate(req Request, needCategory bool) (validated, error) {
	var v validated
	if needCategory {
		category := advisor.Category(strings.ToLower(strings.TrimSpace(req.UserType)))
		if category == "" {
			category = advisor.CategoryHome
		}
		if category != advisor.CategoryHome && category != advisor.CategoryIndustry {
			return v, apperrors.Wrap(apperrors.CodeInvalidInput, "user_type must be 'home' or 'industry'", nil)
		}
		v.category = category
	}

	v.days = climate.DefaultHorizonDays
	if req.Days != nil {
		v.days = *req.Days
	}
	if v.days < climate.MinHorizonDays || v.days > climate.MaxHorizonDays {
		return v, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("days must be between %d and %d", climate.MinHorizonDays, climate.MaxHorizonDays), nil)
	}

	v.zone = req.ZoneName()
	hasCoords := req.Lat != nil && req.Lon != nil
	if v.zone == "" && !hasCoords {
		v.zone = DefaultZone
	}
	loc, err := climate.ResolveLocation(v.zone, req.Lat, req.Lon, req.TZ)
	if err != nil {
		return v, err
	}
	v.location = loc
	v.fetch = climate.FetchRequest{
		Zone:        v.zone,
		Latitude:    req.Lat,
		Longitude:   req.Lon,
		Timezone:    req.TZ,
		HorizonDays: v.days,
		Location:    loc,
	}
	return v, nil
}

// Analyze runs the full pipeline. The caller's cancellation is not propagated: once
// accepted, a request runs to completion or failure.
func (s *service) Analyze(ctx context.Context, req Request) (Response, error) {
	requestID := util.RequestIDFrom(ctx)
	v, err := s.validate(req, true)
	if err != nil {
		return Response{}, err
	}
	ctx = context.WithoutCancel(ctx)

	series, err := s.fetch(ctx, v.fetch)
	if err != nil {
		return Response{}, err
	}
	energy := climate.ComputeMetrics(series.Days)
	label := v.location.Label()

	var (
		advisory  advisor.Advisory
		artifacts []climate.ChartArtifact
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		advisory = s.advisor.Generate(gctx, advisor.Input{
			Metrics:       energy,
			Category:      v.category,
			LocationLabel: label,
			HorizonDays:   v.days,
		})
		return nil
	})
	g.Go(func() error {
		out, err := s.charts.Render(series, label)
		if err != nil {
			return err
		}
		artifacts = out
		return nil
	})
	if err := g.Wait(); err != nil {
		if apperrors.CodeOf(err) == "" {
			err = apperrors.Wrap(apperrors.CodeChartRenderFailed, "failed to render charts", err)
		}
		return Response{}, err
	}

	resp := Response{
		Success:   true,
		RequestID: requestID,
		Timestamp: s.now().Format(time.RFC3339),
		Parameters: Parameters{
			UserType: string(v.category),
			Zone:     v.zone,
			Days:     v.days,
		},
		Location:         v.location,
		Metrics:          energy,
		Suggestion:       advisory.Text,
		SuggestionSource: advisory.Source,
		TokenUsage:       advisory.TokenUsage,
		DataQuality:      series.Quality(),
	}
	for _, a := range artifacts {
		switch a.Kind {
		case climate.ChartTemperature:
			resp.Charts.Temperature = a.Image
		case climate.ChartSolar:
			resp.Charts.Solar = a.Image
		}
	}

	s.logger.Info("analysis completed",
		"request_id", requestID,
		"location", v.location.ID,
		"category", v.category,
		"days", v.days,
		"received_days", len(series.Days),
		"suggestion_source", advisory.Source,
	)
	return resp, nil
}

func (s *service) Zones() []climate.Zone {
	return climate.Zones()
}

func (s *service) SearchLocations(ctx context.Context, query string) ([]climate.Place, error) {
	q := strings.TrimSpace(query)
	if utf8.RuneCountInString(q) < minQueryLength {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "Search term must have at least 2 characters", nil)
	}
	places, err := s.geocoder.Search(ctx, q, geocodingResults)
	if err != nil {
		return nil, mapUpstreamError("location search failed", err)
	}
	return places, nil
}

func (s *service) Export(ctx context.Context, req Request) (ExportFile, error) {
	v, err := s.validate(req, false)
	if err != nil {
		return ExportFile{}, err
	}
	series, err := s.fetch(context.WithoutCancel(ctx), v.fetch)
	if err != nil {
		return ExportFile{}, err
	}

	var buf bytes.Buffer
	if err := climate.WriteCSV(&buf, series.Days); err != nil {
		return ExportFile{}, fmt.Errorf("encode export: %w", err)
	}
	file := ExportFile{
		Filename: climate.ExportFilename(v.zone, v.days, s.now()),
		Content:  buf.Bytes(),
	}
	s.logger.Info("export generated", "location", v.location.ID, "days", v.days, "rows", len(series.Days), "filename", file.Filename)
	return file, nil
}

func (s *service) fetch(ctx context.Context, req climate.FetchRequest) (climate.Series, error) {
	series, err := s.forecast.Fetch(ctx, req)
	if err != nil {
		s.logger.Warn("forecast fetch failed", "location", req.Location.ID, "days", req.HorizonDays, "error", err)
		return climate.Series{}, mapUpstreamError("forecast unavailable", err)
	}
	return series, nil
}

// mapUpstreamError translates provider failures into app errors; app errors pass through.
func mapUpstreamError(message string, err error) error {
	if apperrors.CodeOf(err) != "" {
		return err
	}
	if errors.Is(err, openmeteo.ErrMalformed) {
		return apperrors.Wrap(apperrors.CodeMalformedResponse, message, err)
	}
	return apperrors.Wrap(apperrors.CodeUpstreamUnavailable, message, err)
}
