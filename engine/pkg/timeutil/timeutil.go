package timeutil

import (
	"math"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

const (
	MsInMinute int64 = 60 * 1000
	MsInHour         = 60 * MsInMinute
	MsInDay          = 24 * MsInHour

	locationCacheSize = 64
)

var locations, _ = lru.New(locationCacheSize)

// Location resolves an IANA name, falling back to UTC for empty or unknown
// zones.
func Location(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	if loc, ok := locations.Get(tz); ok {
		return loc.(*time.Location)
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	locations.Add(tz, loc)
	return loc
}

func EpochToTime(epoch int64, tz string) time.Time {
	return time.UnixMilli(epoch).In(Location(tz))
}

// EpochToISO renders epoch as a UTC ISO-8601 string with milliseconds.
func EpochToISO(epoch int64) string {
	return time.UnixMilli(epoch).UTC().Format("2006-01-02T15:04:05.000Z")
}

func ISOToEpoch(iso string) (int64, error) {
	t, err := time.Parse(time.RFC3339Nano, iso)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

// DiffDays is the number of whole days between start and end.
func DiffDays(start, end int64) int {
	return int(math.Floor(float64(end-start) / float64(MsInDay)))
}

// NumDays is the number of days the window touches, partial days included.
func NumDays(start, end int64) int {
	if end <= start {
		return 0
	}
	return int(math.Ceil(float64(end-start) / float64(MsInDay)))
}

func Weekday(epoch int64, tz string) time.Weekday {
	return EpochToTime(epoch, tz).Weekday()
}

func LocalHour(epoch int64, tz string) int {
	return EpochToTime(epoch, tz).Hour()
}

// LocalDate is the day bucket key used by glucose readings.
func LocalDate(epoch int64, tz string) string {
	return EpochToTime(epoch, tz).Format("2006-01-02")
}

// MsPer24 is the number of milliseconds elapsed since local midnight.
func MsPer24(epoch int64, tz string) int64 {
	t := EpochToTime(epoch, tz)
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return t.Sub(midnight).Milliseconds()
}

// WeekDaysInRange lists the weekdays covered by [start, end) in tz, in
// first-seen order.
func WeekDaysInRange(start, end int64, tz string) []time.Weekday {
	days := make([]time.Weekday, 0, 7)
	if end <= start {
		return days
	}

	seen := make(map[time.Weekday]bool, 7)
	loc := Location(tz)
	t := time.UnixMilli(start).In(loc)
	last := time.UnixMilli(end - 1).In(loc)
	for !t.After(last) && len(days) < 7 {
		if wd := t.Weekday(); !seen[wd] {
			seen[wd] = true
			days = append(days, wd)
		}
		t = time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, loc)
	}
	return days
}
