package booking

import (
	"strings"

	"zeromonos.org/zeromonos-web/internal/format"
)

// HistoryEntry is one parsed audit line, ready for display.
type HistoryEntry struct {
	Timestamp   string
	StatusLabel string
}

// ParseHistoryLine interprets the server's "<timestamp> - <STATUS>"
// audit format. The line is split once on the first " - "; the left
// part is reformatted when it parses as a timestamp and kept verbatim
// otherwise; the right part goes through the status label table. A
// line without the separator yields the whole text as timestamp and an
// empty status label. Malformed input never panics: the format is an
// implicit contract with the server, not a guarantee.
func ParseHistoryLine(line string) HistoryEntry {
	left, right, found := strings.Cut(line, " - ")
	entry := HistoryEntry{Timestamp: left}
	if ts, err := format.ParseAPITime(left); err == nil {
		entry.Timestamp = format.DateTime(ts)
	}
	if !found {
		return entry
	}
	entry.StatusLabel = Status(strings.TrimSpace(right)).Label()
	return entry
}

// ParseHistory maps every audit line of a booking.
func ParseHistory(lines []string) []HistoryEntry {
	if len(lines) == 0 {
		return nil
	}
	entries := make([]HistoryEntry, 0, len(lines))
	for _, line := range lines {
		entries = append(entries, ParseHistoryLine(line))
	}
	return entries
}
