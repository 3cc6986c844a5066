package engine

import (
	"context"
	"fmt"
	"time"

	"glycostats/engine/defs"
	"glycostats/engine/pkg/carbs"
	"glycostats/engine/pkg/datum"
	"glycostats/engine/pkg/insulin"
	"glycostats/engine/pkg/stats"
	"glycostats/engine/pkg/timeutil"

	"go.uber.org/zap"
)

type Report struct {
	Filter   defs.DateFilter `json:"filter"`
	NumDays  int             `json:"numDays"`
	WeekDays []time.Weekday  `json:"weekDays"`
	Unit     defs.BgUnit     `json:"unit"`
	Bounds   defs.BgBounds   `json:"bounds"`

	TimeInRange                stats.CbgRangeStatistics                   `json:"timeInRange"`
	TimeInTightRange           stats.TightRangeStatistics                 `json:"timeInTightRange"`
	ReadingsInRange            stats.CbgRangeStatistics                   `json:"readingsInRange"`
	SensorUsage                stats.SensorUsageStatistics                `json:"sensorUsage"`
	AverageGlucose             stats.AverageGlucoseStatistics             `json:"averageGlucose"`
	SmbgAverageGlucose         stats.AverageGlucoseStatistics             `json:"smbgAverageGlucose"`
	CoefficientOfVariation     stats.CoefficientOfVariationStatistics     `json:"coefficientOfVariation"`
	GlucoseManagementIndicator stats.GlucoseManagementIndicatorStatistics `json:"glucoseManagementIndicator"`
	StandardDeviation          stats.StandardDeviationStatistics          `json:"standardDeviation"`

	Carbs       carbs.CarbsStatistics    `json:"carbs"`
	RescueCarbs []carbs.RescueCarbsRange `json:"rescueCarbs"`

	BasalDuration insulin.BasalDurationStatistics         `json:"basalDuration"`
	Insulin       insulin.TotalInsulinAndWeightStatistics `json:"insulin"`
	ManualBoluses []insulin.ManualBolusRange              `json:"manualBoluses"`

	Modes         datum.ModeDurations `json:"modes"`
	SensorWarmups int                 `json:"sensorWarmups"`
	Skipped       int                 `json:"skipped"`
}

// Reporter loads the records of a window and computes every statistic over
// them.
type Reporter struct {
	Source   Source
	Bounds   defs.BgBounds
	Unit     defs.BgUnit
	Timezone string

	Logger *zap.Logger
}

func NewReporter(source Source, cfg defs.Config) (*Reporter, error) {
	b, err := GlucoseBounds(cfg.Glucose)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve glucose bounds: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{
		Source:   source,
		Bounds:   b,
		Unit:     cfg.Glucose.Unit,
		Timezone: cfg.Timezone,
		Logger:   logger,
	}, nil
}

func (r *Reporter) Generate(ctx context.Context, filter defs.DateFilter) (*Report, error) {
	if filter.End <= filter.Start {
		return nil, fmt.Errorf("empty date range: %d to %d", filter.Start, filter.End)
	}

	raws, err := r.Source.ReadData(ctx, filter.Start, filter.End)
	if err != nil {
		return nil, fmt.Errorf("unable to read data: %w", err)
	}
	data := decodeAll(raws, r.Logger)
	ds := datum.Split(data)
	for i := range ds.Cbg {
		ds.Cbg[i].Bg = toUnit(ds.Cbg[i].Bg, r.Unit)
	}
	for i := range ds.Smbg {
		ds.Smbg[i].Bg = toUnit(ds.Smbg[i].Bg, r.Unit)
	}

	numDays := timeutil.NumDays(filter.Start, filter.End)
	r.Logger.Debug("generating report",
		zap.Int64("start", filter.Start),
		zap.Int64("end", filter.End),
		zap.Int("days", numDays),
		zap.Int("records", len(data)),
		zap.Int("skipped", len(raws)-len(data)),
	)

	weekDays := filter.WeekDays
	if len(weekDays) == 0 {
		weekDays = timeutil.WeekDaysInRange(filter.Start, filter.End, r.Timezone)
	}

	rep := &Report{
		Filter:   filter,
		NumDays:  numDays,
		WeekDays: weekDays,
		Unit:     r.Unit,
		Bounds:   r.Bounds,
		Skipped:  len(raws) - len(data),
	}

	if rep.TimeInRange, err = stats.TimeInRangeData(ds.Cbg, r.Bounds, numDays, filter); err != nil {
		return nil, fmt.Errorf("unable to compute time in range: %w", err)
	}
	if rep.ReadingsInRange, err = stats.ReadingsInRangeData(ds.Smbg, r.Bounds, numDays, filter); err != nil {
		return nil, fmt.Errorf("unable to compute readings in range: %w", err)
	}
	rep.TimeInTightRange = stats.TimeInTightRangeData(ds.Cbg, numDays, filter)
	rep.SensorUsage = stats.SensorUsage(ds.Cbg, filter)
	rep.AverageGlucose = stats.AverageGlucoseData(ds.Cbg, filter)
	rep.SmbgAverageGlucose = stats.AverageGlucoseData(ds.Smbg, filter)
	rep.CoefficientOfVariation = stats.CoefficientOfVariationData(ds.Cbg, filter)
	rep.GlucoseManagementIndicator = stats.GlucoseManagementIndicatorData(ds.Cbg, r.Unit, filter)
	rep.StandardDeviation = stats.StandardDeviationData(ds.Cbg, filter)

	rep.Carbs = carbs.CarbsData(ds.Meals, numDays, filter)
	rep.RescueCarbs = carbs.RescueCarbsRangeData(ds.Meals, filter)

	rep.BasalDuration = insulin.AutomatedAndManualBasalDuration(ds.Basals, filter)
	rep.Insulin = insulin.TotalInsulinAndWeightData(ds.Basals, ds.Boluses, ds.Wizards, ds.PumpSettings, numDays, filter)
	rep.ManualBoluses = insulin.ManualBolusRangeData(ds.Boluses, ds.Wizards, filter)

	rep.Modes = datum.ModeDurationsData(ds.DeviceEvents, filter)
	rep.SensorWarmups = len(datum.FilterOnDate(datum.FilterDeviceEvents(ds.DeviceEvents, defs.WarmupEvent), filter))

	return rep, nil
}

// toUnit expresses a reading in unit, the one the bounds are given in.
func toUnit(bg defs.Bg, unit defs.BgUnit) defs.Bg {
	if bg.Units == unit {
		return bg
	}
	bg.Value = defs.FromMgdl(defs.ToMgdl(bg.Value, bg.Units), unit)
	bg.Units = unit
	return bg
}
