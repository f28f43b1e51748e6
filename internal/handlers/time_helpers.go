package handlers

import (
	"errors"
	"time"
)

// Accepted datetime layouts, most specific first. Clients send anything
// from full RFC3339 down to a bare date (datetime-local inputs omit the
// zone and the seconds).
var scheduledTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseScheduledTime(s string) (time.Time, error) {
	for _, layout := range scheduledTimeLayouts {
		if layout == time.RFC3339 {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized datetime format: " + s)
}
