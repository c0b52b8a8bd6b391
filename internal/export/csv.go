// Package export writes sweep results to files for analysis in external
// tooling such as spreadsheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/jwtly10/sweepbook/internal/simulation"
)

var header = []string{
	"date",
	"description",
	"hits",
	"misses",
	"win_pct",
	"points_gained",
	"points_lost",
	"points",
	"net_profit",
	"profitability",
	"retention",
	"avg_duration_min",
}

// WriteCSV writes one row per run, days in order, runs in grid order.
func WriteCSV(w io.Writer, res *simulation.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, day := range res.Days {
		for _, r := range day.Runs {
			row := []string{
				day.Date.Format(time.DateOnly),
				r.Description,
				strconv.Itoa(r.Hits),
				strconv.Itoa(r.Misses),
				strconv.Itoa(r.WinPercentage),
				formatFloat(r.PointsGained),
				formatFloat(r.PointsLost),
				formatFloat(r.Points),
				formatFloat(r.NetProfit),
				formatFloat(r.Profitability),
				strconv.Itoa(r.Retention),
				strconv.FormatInt(r.AvgTradeDurationMin, 10),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing row for %s: %w", day.Date.Format(time.DateOnly), err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the results to path, creating or truncating it.
func WriteCSVFile(path string, res *simulation.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteCSV(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
