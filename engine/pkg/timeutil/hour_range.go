package timeutil

import "fmt"

const (
	HourRangeCount = 8
	hoursPerRange  = 24 / HourRangeCount
)

// HourRange is a three hour window of the local day, [StartHour, EndHour).
type HourRange struct {
	StartHour int `json:"startHour"`
	EndHour   int `json:"endHour"`
}

func (hr HourRange) String() string {
	return fmt.Sprintf("%02dh-%02dh", hr.StartHour, hr.EndHour)
}

func HourRanges() [HourRangeCount]HourRange {
	var ranges [HourRangeCount]HourRange
	for i := range ranges {
		ranges[i] = HourRange{StartHour: i * hoursPerRange, EndHour: (i + 1) * hoursPerRange}
	}
	return ranges
}

// HourRangeIndex is the index in HourRanges of the local hour of epoch.
func HourRangeIndex(epoch int64, tz string) int {
	return LocalHour(epoch, tz) / hoursPerRange
}
