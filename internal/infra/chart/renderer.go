package chart

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"log/slog"
	"math"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/yanqian/climate-advisor/internal/domain/climate"
	apperrors "github.com/yanqian/climate-advisor/pkg/errors"
	"github.com/yanqian/climate-advisor/pkg/util"
)

const (
	width      = 1200
	height     = 600
	trendDays  = 7
	axisMargin = 2.0
)

var (
	colorMaxTemp   = drawing.ColorFromHex("E74C3C")
	colorTrend     = drawing.ColorFromHex("C0392B")
	colorComfort   = drawing.ColorFromHex("27AE60")
	colorExtreme   = drawing.ColorFromHex("E67E22")
	colorRadiation = drawing.ColorFromHex("F39C12")
	colorCloud     = drawing.ColorFromHex("7F8C8D")
	colorCanvas    = drawing.ColorWhite
)

// Renderer draws the thermal and solar charts as base64 PNGs.
type Renderer struct {
	logger *slog.Logger
}

// NewRenderer constructs a chart renderer.
func NewRenderer(logger *slog.Logger) *Renderer {
	return &Renderer{logger: logger.With("component", "chart.renderer")}
}

// Render draws both charts. Rendering is CPU bound and does not block on I/O.
func (r *Renderer) Render(series climate.Series, label string) ([]climate.ChartArtifact, error) {
	if len(series.Days) == 0 {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "cannot chart an empty series", nil)
	}

	thermal, err := encode(thermalChart(series.Days, label))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeChartRenderFailed, "render temperature chart", err)
	}
	solar, err := encode(solarChart(series.Days, label))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeChartRenderFailed, "render solar chart", err)
	}
	r.logger.Debug("charts rendered", "location", label, "days", len(series.Days))
	return []climate.ChartArtifact{
		{Kind: climate.ChartTemperature, Image: thermal},
		{Kind: climate.ChartSolar, Image: solar},
	}, nil
}

func thermalChart(days []climate.DailyRecord, label string) gochart.Chart {
	dates := make([]time.Time, len(days))
	maxTemps := make([]float64, len(days))
	avgTemps := make([]float64, len(days))
	shade := make([]float64, len(days))
	low, high := climate.ComfortThreshold, climate.ExtremeThreshold
	for i, d := range days {
		dates[i] = d.Date
		maxTemps[i] = d.MaxTemp
		avgTemps[i] = d.AvgTemp
		shade[i] = math.Max(d.MaxTemp, climate.ComfortThreshold)
		low = math.Min(low, math.Min(d.MaxTemp, d.AvgTemp))
		high = math.Max(high, d.MaxTemp)
	}

	// The translucent fill runs from max(temp, comfort) down to the axis floor; the
	// opaque mask then repaints everything below the comfort line.
	series := []gochart.Series{
		gochart.TimeSeries{
			Name:    "High AC Consumption Zone",
			XValues: dates,
			YValues: shade,
			Style: gochart.Style{
				StrokeColor: colorMaxTemp.WithAlpha(51),
				FillColor:   colorMaxTemp.WithAlpha(51),
			},
		},
		gochart.TimeSeries{
			XValues: dates,
			YValues: constant(len(days), climate.ComfortThreshold),
			Style: gochart.Style{
				StrokeColor: colorCanvas,
				FillColor:   colorCanvas,
			},
		},
		gochart.TimeSeries{
			Name:    fmt.Sprintf("Comfort Threshold (%.0f°C)", climate.ComfortThreshold),
			XValues: dates,
			YValues: constant(len(days), climate.ComfortThreshold),
			Style: gochart.Style{
				StrokeColor:     colorComfort,
				StrokeWidth:     2,
				StrokeDashArray: []float64{2, 4},
			},
		},
		gochart.TimeSeries{
			Name:    fmt.Sprintf("Extreme Heat (%.0f°C)", climate.ExtremeThreshold),
			XValues: dates,
			YValues: constant(len(days), climate.ExtremeThreshold),
			Style: gochart.Style{
				StrokeColor:     colorExtreme,
				StrokeWidth:     2,
				StrokeDashArray: []float64{2, 4},
			},
		},
		gochart.TimeSeries{
			Name:    "Maximum Temperature",
			XValues: dates,
			YValues: maxTemps,
			Style: gochart.Style{
				StrokeColor: colorMaxTemp.WithAlpha(178),
				StrokeWidth: 2,
			},
		},
	}
	if trendX, trendY := trend(dates, avgTemps); len(trendX) > 0 {
		series = append(series, gochart.TimeSeries{
			Name:    fmt.Sprintf("Trend (%d days)", trendDays),
			XValues: trendX,
			YValues: trendY,
			Style: gochart.Style{
				StrokeColor:     colorTrend,
				StrokeWidth:     2,
				StrokeDashArray: []float64{6, 4},
			},
		})
	}

	graph := baseChart(fmt.Sprintf("Thermal Profile - %s: Energy Demand Prediction", label), dates)
	graph.YAxis = gochart.YAxis{
		Name:  "Temperature (°C)",
		Range: &gochart.ContinuousRange{Min: math.Floor(low - axisMargin), Max: math.Ceil(high + axisMargin)},
	}
	graph.Series = series
	withLegend(&graph)
	return graph
}

func solarChart(days []climate.DailyRecord, label string) gochart.Chart {
	dates := make([]time.Time, len(days))
	radiation := make([]float64, len(days))
	cloud := make([]float64, len(days))
	peak := 0.0
	for i, d := range days {
		dates[i] = d.Date
		radiation[i] = d.SolarRadiation
		cloud[i] = d.CloudCover
		peak = math.Max(peak, d.SolarRadiation)
	}
	if peak <= 0 {
		peak = 1
	}

	graph := baseChart(fmt.Sprintf("Solar Generation Potential - %s", label), dates)
	graph.YAxis = gochart.YAxis{
		Name:  "Solar Radiation (MJ/m²)",
		Range: &gochart.ContinuousRange{Min: 0, Max: math.Ceil(peak * 1.1)},
	}
	graph.YAxisSecondary = gochart.YAxis{
		Name:  "Cloud Cover (%)",
		Range: &gochart.ContinuousRange{Min: 0, Max: 100},
	}
	graph.Series = []gochart.Series{
		gochart.TimeSeries{
			Name:    "Cloud Coverage",
			YAxis:   gochart.YAxisSecondary,
			XValues: dates,
			YValues: cloud,
			Style: gochart.Style{
				StrokeColor: colorCloud.WithAlpha(120),
				FillColor:   colorCloud.WithAlpha(77),
			},
		},
		gochart.TimeSeries{
			Name:    "Available Solar Radiation",
			XValues: dates,
			YValues: radiation,
			Style: gochart.Style{
				StrokeColor: colorRadiation,
				StrokeWidth: 2,
			},
		},
	}
	withLegend(&graph)
	return graph
}

func baseChart(title string, dates []time.Time) gochart.Chart {
	first, last := dates[0], dates[len(dates)-1]
	if !last.After(first) {
		last = first.AddDate(0, 0, 1)
	}
	return gochart.Chart{
		Title:  title,
		Width:  width,
		Height: height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 60, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: gochart.XAxis{
			Name:           "Date",
			ValueFormatter: gochart.TimeValueFormatterWithFormat(util.DateLayout),
			Range: &gochart.ContinuousRange{
				Min: gochart.TimeToFloat64(first),
				Max: gochart.TimeToFloat64(last),
			},
		},
	}
}

// withLegend attaches a legend listing only named series.
func withLegend(graph *gochart.Chart) {
	view := *graph
	view.Series = nil
	for _, s := range graph.Series {
		if s.GetName() != "" {
			view.Series = append(view.Series, s)
		}
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&view)}
}

// trend is the trailing mean of values; days without a full window are omitted.
func trend(dates []time.Time, values []float64) ([]time.Time, []float64) {
	means, ok := climate.RollingMean(values, trendDays)
	var xs []time.Time
	var ys []float64
	for i := range means {
		if ok[i] {
			xs = append(xs, dates[i])
			ys = append(ys, means[i])
		}
	}
	return xs, ys
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func encode(graph gochart.Chart) (string, error) {
	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
