package invoice

import (
	"fmt"
	"time"
)

// dateLayouts are the accepted textual forms of a job's issue date.
var dateLayouts = []string{"2006-01-02", "2006/01/02", "20060102"}

// ParseDate parses a job issue date.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// AddBusinessDays advances t by n weekdays, naive of holidays. Calendar
// advances landing on Saturday or Sunday do not consume one of the n
// days. For n <= 0 the result is t.
func AddBusinessDays(t time.Time, n int) time.Time {
	for n > 0 {
		t = t.AddDate(0, 0, 1)
		if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		n--
	}
	return t
}
