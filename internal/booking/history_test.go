package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHistoryLine(t *testing.T) {
	entry := ParseHistoryLine("2024-01-05T10:00:00 - ASSIGNED")
	assert.Equal(t, "05/01/2024, 10:00:00", entry.Timestamp)
	assert.Equal(t, "Atribuída", entry.StatusLabel)
}

func TestParseHistoryLineUnknownStatus(t *testing.T) {
	entry := ParseHistoryLine("2024-01-05T10:00:00 - REOPENED")
	assert.Equal(t, "05/01/2024, 10:00:00", entry.Timestamp)
	assert.Equal(t, "REOPENED", entry.StatusLabel)
}

func TestParseHistoryLineUnparseableTimestampKeptVerbatim(t *testing.T) {
	entry := ParseHistoryLine("ontem - RECEIVED")
	assert.Equal(t, "ontem", entry.Timestamp)
	assert.Equal(t, "Recebida", entry.StatusLabel)
}

func TestParseHistoryLineWithoutSeparator(t *testing.T) {
	entry := ParseHistoryLine("linha sem separador")
	assert.Equal(t, "linha sem separador", entry.Timestamp)
	assert.Empty(t, entry.StatusLabel)
}

func TestParseHistory(t *testing.T) {
	entries := ParseHistory([]string{
		"2024-01-05T09:00:00 - RECEIVED",
		"2024-01-05T10:00:00 - ASSIGNED",
	})
	require.Len(t, entries, 2)
	assert.Equal(t, "Recebida", entries[0].StatusLabel)
	assert.Equal(t, "Atribuída", entries[1].StatusLabel)

	assert.Nil(t, ParseHistory(nil))
	assert.Nil(t, ParseHistory([]string{}))
}
