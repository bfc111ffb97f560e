package timezone

import (
	"errors"
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "America/Sao_Paulo"

const dateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ParseBound parses a filter bound given either as RFC3339 or as a bare
// YYYY-MM-DD date in loc. A bare date used as an upper bound covers the
// whole day, so the returned instant is the last nanosecond of that day.
func ParseBound(value string, loc *time.Location, upper bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	d, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	if upper {
		return d.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
	}
	return d, nil
}
