package marketdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/jwtly10/sweepbook/internal/logging"
	"github.com/jwtly10/sweepbook/internal/types"
)

var dataLog = logging.New("data")

// timestamp layouts accepted in CSV files, tried in order
var csvLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// LoadCSV reads candles from a CSV file with columns
// timestamp,open,high,low,close[,volume]. A header row is skipped when the
// first field does not parse as a timestamp.
func LoadCSV(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening candle data: %w", err)
	}
	defer f.Close()

	set, err := readCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	dataLog.Info("loaded candles", "path", path, "count", set.Len(), "days", len(set.Dates()))
	return set, nil
}

func readCSV(r io.Reader) (*Set, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	set := NewSet()
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+1, err)
		}
		line++

		if len(record) < 5 {
			return nil, fmt.Errorf("line %d: expected at least 5 fields, got %d", line, len(record))
		}

		ts, err := parseTimestamp(record[0])
		if err != nil {
			if line == 1 {
				// header row
				continue
			}
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		c := types.Candle{Timestamp: ts}
		for i, dst := range []*float64{&c.Open, &c.High, &c.Low, &c.Close} {
			v, err := strconv.ParseFloat(record[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad price %q: %w", line, record[i+1], err)
			}
			*dst = v
		}
		if len(record) > 5 && record[5] != "" {
			v, err := strconv.ParseFloat(record[5], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad volume %q: %w", line, record[5], err)
			}
			c.Volume = v
		}

		set.Add(c)
	}

	set.Normalize()
	return set, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range csvLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}
