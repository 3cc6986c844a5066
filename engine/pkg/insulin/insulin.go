package insulin

import (
	"math"
	"strconv"

	"glycostats/engine/defs"
	"glycostats/engine/pkg/datum"
	"glycostats/engine/pkg/timeutil"

	mapset "github.com/deckarep/golang-set/v2"
)

const (
	weightParameter = "WEIGHT"

	// Automated basal has to cover more than this share of the window for
	// the total insulin to be extrapolated.
	estimationThreshold = 0.8
)

type BolusCategory int

const (
	ManualBolus BolusCategory = iota
	MealBolus
	PenBolus
	CorrectiveBolus
)

// Category sorts a bolus. Pen injections come first, then boluses a wizard
// points to, then automated corrections.
func Category(b defs.Bolus, mealBolusIDs mapset.Set[string]) BolusCategory {
	switch {
	case b.SubType == defs.PenBolus:
		return PenBolus
	case mealBolusIDs.Contains(b.ID):
		return MealBolus
	case b.Prescriptor == defs.AutoPrescriptor:
		return CorrectiveBolus
	default:
		return ManualBolus
	}
}

type BasalDurationStatistics struct {
	AutomatedBasalDuration int64 `json:"automatedBasalDuration"`
	ManualBasalDuration    int64 `json:"manualBasalDuration"`
	AutomatedPercentage    int   `json:"automatedPercentage"`
	ManualPercentage       int   `json:"manualPercentage"`
}

// AutomatedAndManualBasalDuration splits the basal time of the window by
// delivery type. Without any basal time every field is zero.
func AutomatedAndManualBasalDuration(basals []defs.Basal, filter defs.DateFilter) BasalDurationStatistics {
	var bd BasalDurationStatistics
	for _, b := range datum.FilterOnDate(basals, filter) {
		if b.DeliveryType == defs.AutomatedDelivery {
			bd.AutomatedBasalDuration += b.Milliseconds()
		} else {
			bd.ManualBasalDuration += b.Milliseconds()
		}
	}

	total := bd.AutomatedBasalDuration + bd.ManualBasalDuration
	if total == 0 {
		return BasalDurationStatistics{}
	}
	bd.AutomatedPercentage = int(math.Round(float64(bd.AutomatedBasalDuration) / float64(total) * 100))
	bd.ManualPercentage = int(math.Round(float64(bd.ManualBasalDuration) / float64(total) * 100))
	return bd
}

type BasalBolusStatistics struct {
	TotalBasal                      float64 `json:"totalBasal"`
	TotalBolus                      float64 `json:"totalBolus"`
	TotalMealBoluses                float64 `json:"totalMealBoluses"`
	TotalManualBoluses              float64 `json:"totalManualBoluses"`
	TotalPenBoluses                 float64 `json:"totalPenBoluses"`
	TotalCorrectiveBolusesAndBasals float64 `json:"totalCorrectiveBolusesAndBasals"`
	TotalInsulin                    float64 `json:"totalInsulin"`
	EstimatedTotalInsulin           float64 `json:"estimatedTotalInsulin"`
}

// BasalBolusData totals the insulin delivered in the window. Over more than
// one day the totals are daily averages. With no records or no days every
// field is zero.
func BasalBolusData(basals []defs.Basal, boluses []defs.Bolus, wizards []defs.Wizard, numDays int, filter defs.DateFilter) BasalBolusStatistics {
	if (len(basals) == 0 && len(boluses) == 0) || numDays <= 0 {
		return BasalBolusStatistics{}
	}

	var bb BasalBolusStatistics
	for _, b := range datum.FilterOnDate(basals, filter) {
		bb.TotalBasal += b.Rate * float64(b.Milliseconds()) / float64(timeutil.MsInHour)
	}

	mealBolusIDs := datum.WizardBolusIDs(datum.DeduplicateWizards(wizards, boluses))
	for _, b := range datum.FilterOnDate(boluses, filter) {
		switch Category(b, mealBolusIDs) {
		case MealBolus:
			bb.TotalMealBoluses += b.Normal
		case PenBolus:
			bb.TotalPenBoluses += b.Normal
		case CorrectiveBolus:
			bb.TotalCorrectiveBolusesAndBasals += b.Normal
		case ManualBolus:
			bb.TotalManualBoluses += b.Normal
		}
		bb.TotalBolus += b.Normal
	}
	bb.TotalCorrectiveBolusesAndBasals += bb.TotalBasal
	bb.TotalInsulin = bb.TotalBasal + bb.TotalBolus

	window := filter.End - filter.Start
	automated := AutomatedAndManualBasalDuration(basals, filter).AutomatedBasalDuration
	if float64(automated) > estimationThreshold*float64(window) {
		bb.EstimatedTotalInsulin = bb.TotalInsulin * float64(window) / float64(automated) / float64(numDays)
	}

	if numDays > 1 {
		days := float64(numDays)
		bb.TotalBasal /= days
		bb.TotalBolus /= days
		bb.TotalMealBoluses /= days
		bb.TotalManualBoluses /= days
		bb.TotalPenBoluses /= days
		bb.TotalCorrectiveBolusesAndBasals /= days
		bb.TotalInsulin /= days
	}
	return bb
}

type ManualBolusRange struct {
	Range          timeutil.HourRange `json:"range"`
	ConfirmedDose  float64            `json:"confirmedDose"`
	InjectionCount int                `json:"injectionCount"`
}

// ManualBolusRangeData buckets the manual boluses of the window by local
// time of day.
func ManualBolusRangeData(boluses []defs.Bolus, wizards []defs.Wizard, filter defs.DateFilter) []ManualBolusRange {
	mealBolusIDs := datum.WizardBolusIDs(datum.DeduplicateWizards(wizards, boluses))

	ranges := timeutil.HourRanges()
	result := make([]ManualBolusRange, timeutil.HourRangeCount)
	for i := range result {
		result[i].Range = ranges[i]
	}

	for _, b := range datum.FilterOnDate(boluses, filter) {
		if Category(b, mealBolusIDs) != ManualBolus {
			continue
		}
		r := &result[timeutil.HourRangeIndex(b.Epoch, b.Timezone)]
		r.ConfirmedDose += b.Normal
		r.InjectionCount++
	}
	return result
}

type Weight struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

type TotalInsulinAndWeightStatistics struct {
	TotalInsulin BasalBolusStatistics `json:"totalInsulin"`
	Weight       *Weight              `json:"weight"`
}

// TotalInsulinAndWeightData adds the weight of the latest pump settings to
// the insulin totals. Weight is nil when no settings carry one.
func TotalInsulinAndWeightData(basals []defs.Basal, boluses []defs.Bolus, wizards []defs.Wizard,
	settings []defs.PumpSettings, numDays int, filter defs.DateFilter) TotalInsulinAndWeightStatistics {
	return TotalInsulinAndWeightStatistics{
		TotalInsulin: BasalBolusData(basals, boluses, wizards, numDays, filter),
		Weight:       weight(settings),
	}
}

func weight(settings []defs.PumpSettings) *Weight {
	ps, ok := datum.MostRecentPumpSettings(settings)
	if !ok {
		return nil
	}
	for _, p := range ps.Payload.Parameters {
		if p.Name != weightParameter {
			continue
		}
		v, err := strconv.ParseFloat(p.Value, 64)
		if err != nil {
			return nil
		}
		return &Weight{Value: v, Unit: p.Unit}
	}
	return nil
}
