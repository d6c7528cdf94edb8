package format

import (
	"fmt"
	"strings"
	"time"
)

// API timestamps arrive as OffsetDateTime strings; dates as ISO days.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseAPITime parses a timestamp string from the booking API.
func ParseAPITime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("format: empty timestamp")
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("format: unrecognized timestamp %q", value)
}

// ParseAPIDate parses an ISO calendar date (the requestedDate field).
func ParseAPIDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(value))
}

// Date renders a short pt-PT date, e.g. "05/01/2024".
func Date(t time.Time) string {
	return t.Format("02/01/2006")
}

// DateTime renders a pt-PT date with time, e.g. "05/01/2024, 10:00:00".
func DateTime(t time.Time) string {
	return t.Format("02/01/2006, 15:04:05")
}

var weekdaysPT = [...]string{
	"domingo", "segunda-feira", "terça-feira", "quarta-feira",
	"quinta-feira", "sexta-feira", "sábado",
}

var monthsPT = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// LongDate renders the full pt-PT form used on the booking detail
// page, e.g. "sexta-feira, 5 de janeiro de 2024".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d",
		weekdaysPT[t.Weekday()], t.Day(), monthsPT[t.Month()-1], t.Year())
}
