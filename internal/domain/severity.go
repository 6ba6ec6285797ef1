package domain

import "strings"

type Severity string

const (
	SeverityFatal   Severity = "fatal"
	SeverityWarning Severity = "warning"
	SeverityNotice  Severity = "notice"
	SeverityOther   Severity = "other"
)

// SeverityOf buckets a record's classification tag. Tags are words taken from
// the log text, so anything unrecognized is SeverityOther.
func SeverityOf(tags string) Severity {
	lower := strings.ToLower(tags)
	switch {
	case strings.Contains(lower, "fatal"), strings.Contains(lower, "error"):
		return SeverityFatal
	case strings.Contains(lower, "warning"):
		return SeverityWarning
	case strings.Contains(lower, "notice"), strings.Contains(lower, "deprecated"),
		strings.Contains(lower, "strict"):
		return SeverityNotice
	default:
		return SeverityOther
	}
}
