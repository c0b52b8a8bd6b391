package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwtly10/sweepbook/internal/backtest"
	"github.com/jwtly10/sweepbook/internal/simulation"
)

func TestWriteCSV(t *testing.T) {
	res := &simulation.Result{
		Days: []simulation.DayResult{
			{
				Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
				Runs: []backtest.RunResult{
					{
						Description:         "base 9:30 @ 1",
						Hits:                2,
						Misses:              2,
						WinPercentage:       50,
						PointsGained:        16,
						PointsLost:          6,
						Points:              10,
						NetProfit:           56,
						Profitability:       2.67,
						Retention:           73,
						AvgTradeDurationMin: 37,
					},
					{Description: "base 9:30 @ 1.1"},
				},
			},
			{
				Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
				Runs: []backtest.RunResult{{Description: "base 9:30 @ 1"}},
			},
		},
	}

	var buf strings.Builder
	require.NoError(t, WriteCSV(&buf, res))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "date,description,hits,misses,win_pct,points_gained,points_lost,points,net_profit,profitability,retention,avg_duration_min", lines[0])
	assert.Equal(t, "2024-01-02,base 9:30 @ 1,2,2,50,16,6,10,56,2.67,73,37", lines[1])
	assert.Equal(t, "2024-01-02,base 9:30 @ 1.1,0,0,0,0,0,0,0,0,0,0", lines[2])
	assert.Equal(t, "2024-01-03,base 9:30 @ 1,0,0,0,0,0,0,0,0,0,0", lines[3])
}

func TestWriteCSVFile(t *testing.T) {
	path := t.TempDir() + "/out.csv"
	res := &simulation.Result{
		Days: []simulation.DayResult{{
			Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			Runs: []backtest.RunResult{{Description: "base"}},
		}},
	}

	require.NoError(t, WriteCSVFile(path, res))
	assert.FileExists(t, path)
}
