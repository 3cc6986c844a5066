package datum

import (
	"time"

	"glycostats/engine/defs"
	"glycostats/engine/pkg/timeutil"
)

// Timed is satisfied by every record through its embedded defs.BaseDatum.
type Timed interface {
	GetEpoch() int64
	GetTimezone() string
}

// FilterOnDate keeps the records in [filter.Start, filter.End) whose local
// weekday is one of filter.WeekDays. No weekdays means no weekday
// restriction, which is what the window itself implies.
func FilterOnDate[T Timed](data []T, filter defs.DateFilter) []T {
	var weekDays map[time.Weekday]bool
	if len(filter.WeekDays) > 0 {
		weekDays = make(map[time.Weekday]bool, len(filter.WeekDays))
		for _, wd := range filter.WeekDays {
			weekDays[wd] = true
		}
	}

	filtered := make([]T, 0, len(data))
	for _, d := range data {
		epoch := d.GetEpoch()
		if epoch < filter.Start || epoch >= filter.End {
			continue
		}
		if weekDays != nil && !weekDays[timeutil.Weekday(epoch, d.GetTimezone())] {
			continue
		}
		filtered = append(filtered, d)
	}
	return filtered
}

// Dataset holds the records of a load split by type.
type Dataset struct {
	Cbg          []defs.Cbg
	Smbg         []defs.Smbg
	Basals       []defs.Basal
	Boluses      []defs.Bolus
	Meals        []defs.Meal
	Wizards      []defs.Wizard
	DeviceEvents []defs.DeviceEvent
	PumpSettings []defs.PumpSettings
	Others       []defs.Other
}

func Split(data []defs.Datum) Dataset {
	var ds Dataset
	for _, d := range data {
		switch v := d.(type) {
		case defs.Cbg:
			ds.Cbg = append(ds.Cbg, v)
		case defs.Smbg:
			ds.Smbg = append(ds.Smbg, v)
		case defs.Basal:
			ds.Basals = append(ds.Basals, v)
		case defs.Bolus:
			ds.Boluses = append(ds.Boluses, v)
		case defs.Meal:
			ds.Meals = append(ds.Meals, v)
		case defs.Wizard:
			ds.Wizards = append(ds.Wizards, v)
		case defs.DeviceEvent:
			ds.DeviceEvents = append(ds.DeviceEvents, v)
		case defs.PumpSettings:
			ds.PumpSettings = append(ds.PumpSettings, v)
		case defs.Other:
			ds.Others = append(ds.Others, v)
		}
	}
	return ds
}

// MostRecentPumpSettings returns the settings with the latest epoch.
func MostRecentPumpSettings(settings []defs.PumpSettings) (defs.PumpSettings, bool) {
	if len(settings) == 0 {
		return defs.PumpSettings{}, false
	}
	latest := settings[0]
	for _, ps := range settings[1:] {
		if ps.Epoch > latest.Epoch {
			latest = ps
		}
	}
	return latest, true
}
