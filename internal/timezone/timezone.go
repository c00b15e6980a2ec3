package timezone

import "time"

const DefaultTimezone = "Asia/Kolkata"

const DateLayout = "2006-01-02"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location falls back to DefaultTimezone, then UTC.
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

func NowIn(loc *time.Location) time.Time {
	return time.Now().In(loc)
}

// Today is the current calendar date in loc as YYYY-MM-DD.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// ParseDate validates a YYYY-MM-DD calendar date and returns it normalised.
func ParseDate(s string) (string, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", err
	}
	return d.Format(DateLayout), nil
}
