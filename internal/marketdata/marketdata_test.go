package marketdata

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwtly10/sweepbook/internal/types"
)

func TestSet_NormalizeSortsAndDedupes(t *testing.T) {
	set := NewSet()
	t1 := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 1, 2, 10, 5, 0, 0, time.UTC)

	set.Add(types.Candle{Timestamp: t2, Open: 2, Close: 2})
	set.Add(types.Candle{Timestamp: t1, Open: 1, Close: 1})
	set.Add(types.Candle{Timestamp: t2, Open: 9, Close: 9}) // duplicate, dropped
	set.Normalize()

	series := set.Day(t1)
	require.Len(t, series, 2)
	assert.Equal(t, t1, series[0].Timestamp)
	assert.Equal(t, t2, series[1].Timestamp)
	assert.Equal(t, 2.0, series[1].Open) // first occurrence kept
}

func TestSet_DatesBetween(t *testing.T) {
	set := NewSet()
	for d := 1; d <= 5; d++ {
		set.Add(types.Candle{Timestamp: time.Date(2024, 1, d, 10, 0, 0, 0, time.UTC), Open: 1, Close: 1})
	}
	set.Normalize()

	dates := set.DatesBetween(
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
	)
	// end date is exclusive
	require.Len(t, dates, 2)
	assert.Equal(t, 2, dates[0].Day())
	assert.Equal(t, 3, dates[1].Day())
}

func TestReadCSV(t *testing.T) {
	input := strings.Join([]string{
		"timestamp,open,high,low,close,volume",
		"2024-01-02 10:00:00,100,105,99,104,1500",
		"2024-01-02 10:05:00,104,106,103,105,1200",
		"2024-01-03 10:00:00,105,107,104,106,900",
	}, "\n")

	set, err := readCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())
	assert.Len(t, set.Dates(), 2)

	series := set.Day(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	require.Len(t, series, 2)
	assert.Equal(t, 100.0, series[0].Open)
	assert.Equal(t, 1500.0, series[0].Volume)
}

func TestReadCSV_NoHeader(t *testing.T) {
	set, err := readCSV(strings.NewReader("2024-01-02T10:00:00Z,100,105,99,104\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())
}

func TestReadCSV_BadPrice(t *testing.T) {
	input := "timestamp,open,high,low,close\n2024-01-02 10:00:00,abc,105,99,104\n"
	_, err := readCSV(strings.NewReader(input))
	assert.Error(t, err)
}

func TestReadCSV_BadTimestampMidFile(t *testing.T) {
	input := "2024-01-02 10:00:00,100,105,99,104\nnot-a-date,100,105,99,104\n"
	_, err := readCSV(strings.NewReader(input))
	assert.Error(t, err)
}
