package utils

import "time"

// ParseDate parses a YYYY-MM-DD string. Returns nil when the string is
// empty or malformed.
func ParseDate(dateStr string) *time.Time {
	if dateStr == "" {
		return nil
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil
	}

	return &date
}
