package report

import (
	"strconv"
	"strings"
	"time"
)

// TimestampLayout renders as "19 October 2026, 03:04 PM".
const TimestampLayout = "02 January 2006, 03:04 PM"

// FormatConfidence prints a percentage the way the result page shows it: shortest form, always with a decimal point.
func FormatConfidence(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatTimestamp formats t with TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
