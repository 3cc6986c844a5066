package carbs

import (
	"glycostats/engine/defs"
	"glycostats/engine/pkg/datum"
	"glycostats/engine/pkg/timeutil"
)

type CarbsStatistics struct {
	MealCarbs     float64 `json:"mealCarbs"`
	RescueCarbs   float64 `json:"rescueCarbs"`
	TotalCarbs    float64 `json:"totalCarbs"`
	MealEntries   int     `json:"mealEntries"`
	RescueEntries int     `json:"rescueEntries"`
}

// CarbsData splits the carbohydrates of the window between declared meals
// and rescue carbs. Over more than one day the amounts are daily averages,
// the entry counts stay raw.
func CarbsData(meals []defs.Meal, numDays int, filter defs.DateFilter) CarbsStatistics {
	var cs CarbsStatistics
	for _, m := range datum.FilterOnDate(meals, filter) {
		switch m.SubType {
		case defs.RescueCarbs:
			cs.RescueCarbs += m.Nutrition.Carbohydrate.Net
			cs.RescueEntries++
		case defs.DeclaredMeal:
			cs.MealCarbs += m.Nutrition.Carbohydrate.Net
			cs.MealEntries++
		}
	}

	if numDays > 1 {
		cs.MealCarbs /= float64(numDays)
		cs.RescueCarbs /= float64(numDays)
	}
	cs.TotalCarbs = cs.MealCarbs + cs.RescueCarbs
	return cs
}

type RescueCarbsRange struct {
	Range                   timeutil.HourRange `json:"range"`
	AverageRecommendedCarbs float64            `json:"averageRecommendedCarbs"`
	ModifiedCount           int                `json:"modifiedCount"`
	AverageConfirmedCarbs   float64            `json:"averageConfirmedCarbs"`
	RescueCarbsCount        int                `json:"rescueCarbsCount"`
}

type rangeAccumulator struct {
	recommended      float64
	recommendedCount int
	confirmed        float64
	modified         int
	count            int
}

// RescueCarbsRangeData buckets the rescue carbs of the window by local time
// of day. Empty buckets are all zero.
func RescueCarbsRangeData(meals []defs.Meal, filter defs.DateFilter) []RescueCarbsRange {
	var acc [timeutil.HourRangeCount]rangeAccumulator
	for _, m := range datum.FilterOnDate(meals, filter) {
		if m.SubType != defs.RescueCarbs {
			continue
		}

		a := &acc[timeutil.HourRangeIndex(m.Epoch, m.Timezone)]
		a.count++
		if m.PrescribedNutrition != nil {
			a.recommended += m.PrescribedNutrition.Carbohydrate.Net
			a.recommendedCount++
		}
		if m.Modified() {
			a.modified++
			a.confirmed += m.Nutrition.Carbohydrate.Net
		}
	}

	ranges := timeutil.HourRanges()
	result := make([]RescueCarbsRange, timeutil.HourRangeCount)
	for i, a := range acc {
		result[i] = RescueCarbsRange{
			Range:                   ranges[i],
			AverageRecommendedCarbs: average(a.recommended, a.recommendedCount),
			ModifiedCount:           a.modified,
			AverageConfirmedCarbs:   average(a.confirmed, a.modified),
			RescueCarbsCount:        a.count,
		}
	}
	return result
}

func average(sum float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
