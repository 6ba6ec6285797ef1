package parser

import (
	"strings"
	"time"
	_ "time/tzdata"
)

// atomLayout renders UTC as +00:00 rather than Z.
const atomLayout = "2006-01-02T15:04:05-07:00"

var zonedLayouts = []string{
	time.RFC3339,
	"02-Jan-2006 15:04:05 -0700",
	"02-Jan-2006 15:04:05 -07:00",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02 15:04:05-07:00",
	"Mon Jan 02 15:04:05 -0700 2006",
	"02/Jan/2006:15:04:05 -0700",
}

// Layouts without zone information; the zone comes from a trailing
// location name or defaults to UTC.
var localLayouts = []string{
	"02-Jan-2006 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02 15:04:05",
	"Mon Jan 02 15:04:05 2006",
	"Mon Jan 02 15:04:05.000000 2006",
	"02-Jan-2006 15:04",
	"2006-01-02 15:04",
}

// NormalizeTimestamp converts the contents of a log line's bracket into ATOM
// form, or returns raw unchanged when it cannot be parsed.
func NormalizeTimestamp(raw string) string {
	t, ok := parseTimestamp(strings.TrimSpace(raw))
	if !ok {
		return raw
	}
	return t.Format(atomLayout)
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	if i := strings.LastIndexByte(s, ' '); i > 0 {
		if loc, ok := loadZone(s[i+1:]); ok {
			if t, ok := parseLocal(strings.TrimSpace(s[:i]), loc); ok {
				return t, true
			}
		}
	}

	return parseLocal(s, time.UTC)
}

func parseLocal(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func loadZone(name string) (*time.Location, bool) {
	if !isZoneName(name) || name == "Local" {
		return nil, false
	}
	for _, utc := range []string{"UTC", "GMT", "Z"} {
		if strings.EqualFold(name, utc) {
			return time.UTC, true
		}
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, false
	}
	return loc, true
}

func isZoneName(name string) bool {
	if name == "" || strings.Contains(name, "..") {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '/', r == '_', r == '-', r == '+':
		default:
			return false
		}
	}
	return true
}
