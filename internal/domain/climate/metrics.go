package climate

import "math"

// EnergyMetrics are the derived energy indices for one forecast window.
type EnergyMetrics struct {
	AvgTemp           float64 `json:"avg_temp"`
	MaxTemp           float64 `json:"max_temp"`
	MinTemp           float64 `json:"min_temp"`
	CDDTotal          float64 `json:"cdd_total"`
	ExtremeHeatDays   int     `json:"extreme_heat_days"`
	ComfortableDays   int     `json:"comfortable_days"`
	AvgRadiation      float64 `json:"avg_radiation"`
	AvgSolarPotential float64 `json:"avg_solar_potential"`
	OptimalSolarDays  int     `json:"optimal_solar_days"`
	AvgHumidity       float64 `json:"avg_humidity"`
	HighDemandDays    int     `json:"high_demand_days"`
}

// ComputeMetrics derives the energy indices. An empty input yields the zero value.
func ComputeMetrics(days []DailyRecord) EnergyMetrics {
	if len(days) == 0 {
		return EnergyMetrics{}
	}

	var (
		m                                   EnergyMetrics
		sumTemp, sumRad, sumSolar, sumHumid float64
		cdd                                 float64
		peak                                = math.Inf(-1)
		lowest                              = math.Inf(1)
	)
	for _, d := range days {
		sumTemp += d.AvgTemp
		sumRad += d.SolarRadiation
		sumHumid += d.RelativeHumidity
		sumSolar += SolarPotential(d)
		cdd += CoolingDegrees(d.AvgTemp)

		peak = math.Max(peak, d.MaxTemp)
		lowest = math.Min(lowest, d.AvgTemp)

		if d.MaxTemp > ExtremeThreshold {
			m.ExtremeHeatDays++
		}
		if d.MaxTemp <= ComfortThreshold {
			m.ComfortableDays++
		}
		if d.CloudCover < OptimalCloudCover {
			m.OptimalSolarDays++
		}
		if d.MaxTemp > HighDemandTemp && d.RelativeHumidity > HighDemandHumidity {
			m.HighDemandDays++
		}
	}

	n := float64(len(days))
	m.AvgTemp = round1(sumTemp / n)
	m.MaxTemp = round1(peak)
	m.MinTemp = round1(lowest)
	m.CDDTotal = round1(cdd)
	m.AvgRadiation = round1(sumRad / n)
	m.AvgSolarPotential = round1(sumSolar / n)
	m.AvgHumidity = round1(sumHumid / n)
	return m
}

// CoolingDegrees is the cooling demand contribution of one day.
func CoolingDegrees(avgTemp float64) float64 {
	return math.Max(avgTemp-ComfortThreshold, 0)
}

// SolarPotential is radiation reduced by cloud obstruction.
func SolarPotential(d DailyRecord) float64 {
	return d.SolarRadiation * (1 - d.CloudCover/100)
}

// RollingMean returns the trailing mean over window values. Entries without a full
// window are reported as absent (ok=false) rather than as a number.
func RollingMean(values []float64, window int) ([]float64, []bool) {
	means := make([]float64, len(values))
	ok := make([]bool, len(values))
	if window <= 0 {
		return means, ok
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			means[i] = sum / float64(window)
			ok[i] = true
		}
	}
	return means, ok
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
