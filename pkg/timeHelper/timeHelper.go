package timehelper

import (
	"fmt"
	"strings"
	"time"
)

// Layouts tried for dates without a zone. Such dates are read as UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func GetTodaysDateString() string {
	return time.Now().UTC().Format("2006-01-02")
}

// ParseRaceDate parses an ISO-8601 date. A trailing Z or an explicit offset
// is honoured; anything without a zone is taken as UTC. The result is UTC.
func ParseRaceDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format %q", value)
}

// NormalizeDate turns a stored date of any supported encoding into a UTC
// instant. Missing or unparseable values fall back to now.
func NormalizeDate(value interface{}, now time.Time) time.Time {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return now.UTC()
		}
		return v.UTC()
	case *time.Time:
		if v == nil || v.IsZero() {
			return now.UTC()
		}
		return v.UTC()
	case string:
		t, err := ParseRaceDate(v)
		if err != nil {
			return now.UTC()
		}
		return t
	default:
		return now.UTC()
	}
}

// FormatRaceDate is the storage encoding of a race date.
func FormatRaceDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
