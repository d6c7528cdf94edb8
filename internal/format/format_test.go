package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAPITimeLayouts(t *testing.T) {
	for _, value := range []string{
		"2024-01-05T10:00:00.123456789Z",
		"2024-01-05T10:00:00Z",
		"2024-01-05T10:00:00",
		"2024-01-05 10:00:00",
	} {
		ts, err := ParseAPITime(value)
		require.NoError(t, err, value)
		assert.Equal(t, 2024, ts.Year(), value)
		assert.Equal(t, 10, ts.Hour(), value)
	}
}

func TestParseAPITimeRejectsGarbage(t *testing.T) {
	_, err := ParseAPITime("amanhã de manhã")
	assert.Error(t, err)
}

func TestParseAPIDate(t *testing.T) {
	d, err := ParseAPIDate("2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, time.January, d.Month())

	_, err = ParseAPIDate("05/01/2024")
	assert.Error(t, err)
}

func TestDateAndDateTime(t *testing.T) {
	ts := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "05/01/2024", Date(ts))
	assert.Equal(t, "05/01/2024, 10:00:00", DateTime(ts))
}

func TestLongDatePortuguese(t *testing.T) {
	ts := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "sexta-feira, 5 de janeiro de 2024", LongDate(ts))

	ts = time.Date(2024, 8, 11, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "domingo, 11 de agosto de 2024", LongDate(ts))
}
