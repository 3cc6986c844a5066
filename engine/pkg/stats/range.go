package stats

import (
	"strings"

	"glycostats/engine/defs"
	"glycostats/engine/pkg/datum"
	"glycostats/engine/pkg/timeutil"
)

const (
	libreDevicePrefix = "AbbottFreeStyleLibre"

	libreSampleDuration   = 15 * timeutil.MsInMinute
	defaultSampleDuration = 5 * timeutil.MsInMinute

	tightRangeLowerMgdl = 70
	tightRangeUpperMgdl = 140
)

// CbgRangeStatistics is shared by time in range (milliseconds) and readings
// in range (counts).
type CbgRangeStatistics struct {
	VeryLow  float64 `json:"veryLow"`
	Low      float64 `json:"low"`
	Target   float64 `json:"target"`
	High     float64 `json:"high"`
	VeryHigh float64 `json:"veryHigh"`
	Total    float64 `json:"total"`
}

func (s *CbgRangeStatistics) add(class BgClass, v float64) {
	switch class {
	case VeryLow:
		s.VeryLow += v
	case Low:
		s.Low += v
	case Target:
		s.Target += v
	case High:
		s.High += v
	case VeryHigh:
		s.VeryHigh += v
	}
	s.Total += v
}

func (s *CbgRangeStatistics) scale(f func(float64) float64) {
	s.VeryLow = f(s.VeryLow)
	s.Low = f(s.Low)
	s.Target = f(s.Target)
	s.High = f(s.High)
	s.VeryHigh = f(s.VeryHigh)
}

type TightRangeStatistics struct {
	Value float64 `json:"value"`
	Total float64 `json:"total"`
}

type SensorUsageStatistics struct {
	SensorUsage float64 `json:"sensorUsage"`
	Total       float64 `json:"total"`
}

// CbgSampleDuration is the time in milliseconds one reading of deviceName
// stands for.
func CbgSampleDuration(deviceName string) int64 {
	if strings.HasPrefix(deviceName, libreDevicePrefix) {
		return libreSampleDuration
	}
	return defaultSampleDuration
}

func cbgDuration(cbgs []defs.Cbg) int64 {
	var total int64
	for _, c := range cbgs {
		total += CbgSampleDuration(c.DeviceName)
	}
	return total
}

// TimeInRangeData sums sampled time per five-way class. Over more than one
// day every class becomes its share of total projected onto one day, total
// stays the raw sampled time.
func TimeInRangeData(cbgs []defs.Cbg, bounds defs.BgBounds, numDays int, filter defs.DateFilter) (CbgRangeStatistics, error) {
	var s CbgRangeStatistics
	for _, c := range datum.FilterOnDate(cbgs, filter) {
		class, err := ClassifyBgValue(bounds, c.Value, FiveWay)
		if err != nil {
			return CbgRangeStatistics{}, err
		}
		s.add(class, float64(CbgSampleDuration(c.DeviceName)))
	}

	if numDays > 1 {
		total := s.Total
		s.scale(func(v float64) float64 {
			return v / total * float64(timeutil.MsInDay)
		})
	}
	return s, nil
}

// ReadingsInRangeData counts readings per five-way class. Over more than
// one day every class becomes a daily average, total stays the raw count.
func ReadingsInRangeData(smbgs []defs.Smbg, bounds defs.BgBounds, numDays int, filter defs.DateFilter) (CbgRangeStatistics, error) {
	var s CbgRangeStatistics
	for _, r := range datum.FilterOnDate(smbgs, filter) {
		class, err := ClassifyBgValue(bounds, r.Value, FiveWay)
		if err != nil {
			return CbgRangeStatistics{}, err
		}
		s.add(class, 1)
	}

	if numDays > 1 {
		days := float64(numDays)
		s.scale(func(v float64) float64 {
			return v / days
		})
	}
	return s, nil
}

// TimeInTightRangeData sums sampled time spent within 70-140 mg/dL, whatever
// the patient bounds are.
func TimeInTightRangeData(cbgs []defs.Cbg, numDays int, filter defs.DateFilter) TightRangeStatistics {
	var s TightRangeStatistics
	for _, c := range datum.FilterOnDate(cbgs, filter) {
		d := float64(CbgSampleDuration(c.DeviceName))
		mgdl := defs.ToMgdl(c.Value, c.Units)
		if mgdl >= tightRangeLowerMgdl && mgdl <= tightRangeUpperMgdl {
			s.Value += d
		}
		s.Total += d
	}

	if numDays > 1 {
		s.Value = s.Value / s.Total * float64(timeutil.MsInDay)
	}
	return s
}

// SensorUsage compares sampled time with the wall clock span of the filter.
func SensorUsage(cbgs []defs.Cbg, filter defs.DateFilter) SensorUsageStatistics {
	return SensorUsageStatistics{
		SensorUsage: float64(cbgDuration(datum.FilterOnDate(cbgs, filter))),
		Total:       float64(filter.End - filter.Start),
	}
}
