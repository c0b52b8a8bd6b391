// Package marketdata holds date-indexed candle collections and loads them
// from CSV files. Each day's series is time-sorted and deduplicated on load;
// consumers treat that ordering as a precondition and never re-check it.
package marketdata

import (
	"sort"
	"time"

	"github.com/jwtly10/sweepbook/internal/types"
)

// Series is the time-sorted candles of a single trading day.
type Series []types.Candle

// Set groups candles by trading day.
type Set struct {
	days map[time.Time]Series
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{days: make(map[time.Time]Series)}
}

// Day truncates t to its UTC date.
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Add appends a candle to its day's series. Call Normalize after a bulk load.
func (s *Set) Add(c types.Candle) {
	day := Day(c.Timestamp)
	s.days[day] = append(s.days[day], c)
}

// Normalize time-sorts every series and drops duplicate timestamps, keeping
// the first occurrence.
func (s *Set) Normalize() {
	for day, series := range s.days {
		sort.SliceStable(series, func(i, j int) bool {
			return series[i].Timestamp.Before(series[j].Timestamp)
		})
		deduped := series[:0]
		for i, c := range series {
			if i > 0 && c.Timestamp.Equal(series[i-1].Timestamp) {
				continue
			}
			deduped = append(deduped, c)
		}
		s.days[day] = deduped
	}
}

// Day returns the series for the given date, nil when the date has no data.
func (s *Set) Day(date time.Time) Series {
	return s.days[Day(date)]
}

// Dates returns every date with data, ascending.
func (s *Set) Dates() []time.Time {
	out := make([]time.Time, 0, len(s.days))
	for day := range s.days {
		out = append(out, day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// DatesBetween returns the dates with data in [start, end), ascending. The
// end date is exclusive.
func (s *Set) DatesBetween(start, end time.Time) []time.Time {
	startDay, endDay := Day(start), Day(end)
	var out []time.Time
	for _, day := range s.Dates() {
		if day.Before(startDay) || !day.Before(endDay) {
			continue
		}
		out = append(out, day)
	}
	return out
}

// Len returns the total candle count.
func (s *Set) Len() int {
	n := 0
	for _, series := range s.days {
		n += len(series)
	}
	return n
}
