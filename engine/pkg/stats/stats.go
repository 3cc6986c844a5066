package stats

import (
	"math"
	"sort"

	"glycostats/engine/defs"
	"glycostats/engine/pkg/datum"
	"glycostats/engine/pkg/timeutil"

	"github.com/montanaflynn/stats"
)

const (
	minReadings = 3

	gmiMinDays     = 14
	gmiMinCoverage = 0.7
	gmiIntercept   = 3.31
	gmiSlope       = 0.02392
)

// BgReading is satisfied by defs.Cbg and defs.Smbg.
type BgReading interface {
	datum.Timed
	GetValue() float64
	GetLocalDate() string
}

type AverageGlucoseStatistics struct {
	AverageGlucose float64 `json:"averageGlucose"`
	Total          int     `json:"total"`
}

type CoefficientOfVariationStatistics struct {
	CoefficientOfVariation float64 `json:"coefficientOfVariation"`
	InsufficientData       bool    `json:"insufficientData"`
	Total                  int     `json:"total"`
}

type GlucoseManagementIndicatorStatistics struct {
	GlucoseManagementIndicator float64 `json:"glucoseManagementIndicator"`
	InsufficientData           bool    `json:"insufficientData"`
}

type StandardDeviationStatistics struct {
	AverageGlucose    float64 `json:"averageGlucose"`
	Total             int     `json:"total"`
	InsufficientData  bool    `json:"insufficientData"`
	StandardDeviation float64 `json:"standardDeviation"`
}

func values[T BgReading](data []T) stats.Float64Data {
	vs := make(stats.Float64Data, len(data))
	for i, d := range data {
		vs[i] = d.GetValue()
	}
	return vs
}

// mean is NaN for no values.
func mean(vs stats.Float64Data) float64 {
	m, err := stats.Mean(vs)
	if err != nil {
		return math.NaN()
	}
	return m
}

// sampleDeviation uses the n-1 divisor.
func sampleDeviation(vs stats.Float64Data) float64 {
	sd, err := stats.StandardDeviationSample(vs)
	if err != nil {
		return math.NaN()
	}
	return sd
}

// AverageGlucoseData is the mean reading value in the window, NaN without
// readings.
func AverageGlucoseData[T BgReading](data []T, filter defs.DateFilter) AverageGlucoseStatistics {
	filtered := datum.FilterOnDate(data, filter)
	return AverageGlucoseStatistics{
		AverageGlucose: mean(values(filtered)),
		Total:          len(filtered),
	}
}

// CoefficientOfVariationData averages the daily coefficients of variation
// (percent) over the days holding at least three readings.
func CoefficientOfVariationData[T BgReading](data []T, filter defs.DateFilter) CoefficientOfVariationStatistics {
	filtered := datum.FilterOnDate(data, filter)
	insufficient := CoefficientOfVariationStatistics{
		CoefficientOfVariation: math.NaN(),
		InsufficientData:       true,
		Total:                  len(filtered),
	}
	if len(filtered) < minReadings {
		return insufficient
	}

	days := make(map[string]stats.Float64Data)
	for _, d := range filtered {
		days[d.GetLocalDate()] = append(days[d.GetLocalDate()], d.GetValue())
	}

	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	coefficients := make(stats.Float64Data, 0, len(days))
	for _, date := range dates {
		vs := days[date]
		if len(vs) < minReadings {
			continue
		}
		coefficients = append(coefficients, sampleDeviation(vs)/mean(vs)*100)
	}
	if len(coefficients) == 0 {
		return insufficient
	}

	return CoefficientOfVariationStatistics{
		CoefficientOfVariation: mean(coefficients),
		Total:                  len(filtered),
	}
}

// GlucoseManagementIndicatorData needs a window of at least 14 days and
// sampled time covering at least 70% of 14 days.
func GlucoseManagementIndicatorData(cbgs []defs.Cbg, unit defs.BgUnit, filter defs.DateFilter) GlucoseManagementIndicatorStatistics {
	insufficient := GlucoseManagementIndicatorStatistics{
		GlucoseManagementIndicator: math.NaN(),
		InsufficientData:           true,
	}
	if timeutil.DiffDays(filter.Start, filter.End) < gmiMinDays {
		return insufficient
	}

	filtered := datum.FilterOnDate(cbgs, filter)
	if float64(cbgDuration(filtered)) < gmiMinDays*float64(timeutil.MsInDay)*gmiMinCoverage {
		return insufficient
	}

	avg := mean(values(filtered))
	if unit != defs.MgdL {
		avg = defs.ToMgdl(avg, unit)
	}
	return GlucoseManagementIndicatorStatistics{
		GlucoseManagementIndicator: gmiIntercept + gmiSlope*avg,
	}
}

// StandardDeviationData is the sample standard deviation of every reading
// in the window, needing at least three of them.
func StandardDeviationData[T BgReading](data []T, filter defs.DateFilter) StandardDeviationStatistics {
	avg := AverageGlucoseData(data, filter)
	if avg.Total < minReadings {
		return StandardDeviationStatistics{
			AverageGlucose:    avg.AverageGlucose,
			Total:             avg.Total,
			InsufficientData:  true,
			StandardDeviation: math.NaN(),
		}
	}

	return StandardDeviationStatistics{
		AverageGlucose:    avg.AverageGlucose,
		Total:             avg.Total,
		StandardDeviation: sampleDeviation(values(datum.FilterOnDate(data, filter))),
	}
}
