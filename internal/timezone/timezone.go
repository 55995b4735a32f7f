package timezone

import "time"

const DefaultTimezone = "Europe/Paris"

const DateLayout = "2006-01-02"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz, falling back to DefaultTimezone and then UTC.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// DayBounds returns [start, end) of the calendar day containing t, in t's location.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// ParseDay parses a YYYY-MM-DD date in loc. An empty string means the day of now.
func ParseDay(value string, loc *time.Location, now time.Time) (time.Time, error) {
	if value == "" {
		return now.In(loc), nil
	}
	return time.ParseInLocation(DateLayout, value, loc)
}
