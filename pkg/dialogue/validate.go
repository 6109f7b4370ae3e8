package dialogue

import (
	"strings"
	"time"
)

// parseTripDate validates a user-supplied date answer.
// It accepts only YYYY-MM-DD and rejects dates before today (local calendar
// date). Unparseable input and past dates are both reported as a plain false;
// callers emit one combined error message for either case.
func parseTripDate(text string, today time.Time) (time.Time, bool) {
	d, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(text), today.Location())
	if err != nil {
		return time.Time{}, false
	}
	if d.Before(dateOnly(today)) {
		return time.Time{}, false
	}
	return d, true
}

// dateOnly truncates a timestamp to its local calendar date.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
