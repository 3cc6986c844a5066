package datum

import "glycostats/engine/defs"

type ModeDurations struct {
	Confidential int64 `json:"confidential"`
	Warmup       int64 `json:"warmup"`
	Zen          int64 `json:"zen"`
}

func FilterDeviceEvents(events []defs.DeviceEvent, subType defs.DeviceEventSubType) []defs.DeviceEvent {
	filtered := make([]defs.DeviceEvent, 0)
	for _, e := range events {
		if e.SubType == subType {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// ModeDurationsData sums the time spent in each device mode, clipped to the
// filter window.
func ModeDurationsData(events []defs.DeviceEvent, filter defs.DateFilter) ModeDurations {
	var md ModeDurations
	for _, e := range events {
		start := max(e.Epoch, filter.Start)
		end := min(e.Epoch+e.Milliseconds(), filter.End)
		if end <= start {
			continue
		}

		switch e.SubType {
		case defs.ConfidentialEvent:
			md.Confidential += end - start
		case defs.WarmupEvent:
			md.Warmup += end - start
		case defs.ZenEvent:
			md.Zen += end - start
		case defs.DeviceParameterEvent, defs.ReservoirChangeEvent:
		}
	}
	return md
}
