package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/jwtly10/sweepbook/internal/export"
	"github.com/jwtly10/sweepbook/internal/marketdata"
	"github.com/jwtly10/sweepbook/internal/simulation"
	"github.com/jwtly10/sweepbook/internal/strategy"
)

func main() {
	app := &cli.App{
		Name:  "sweepbook",
		Usage: "replay reversal strategies over historic candles, one day or a whole grid at a time",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "strategy configuration file (JSON)", Required: true},
			&cli.StringFlag{Name: "data", Usage: "candle data file (CSV)", Required: true},
			&cli.StringFlag{Name: "start", Usage: "first day to replay (YYYY-MM-DD), default first day in the data"},
			&cli.StringFlag{Name: "end", Usage: "day to stop before (YYYY-MM-DD), default just past the last day in the data"},
			&cli.BoolFlag{Name: "grid", Usage: "sweep the session start and variance grid instead of a single run per day"},
			&cli.StringFlag{Name: "grid-start", Value: "9:30", Usage: "earliest session start to try (HH:MM)"},
			&cli.StringFlag{Name: "grid-end", Value: "10:30", Usage: "latest session start to try (HH:MM)"},
			&cli.IntFlag{Name: "grid-step", Value: 5, Usage: "minutes between session starts"},
			&cli.Float64Flag{Name: "variance-from", Value: 1.0, Usage: "lowest limit multiplier to try"},
			&cli.Float64Flag{Name: "variance-to", Value: 1.0, Usage: "highest limit multiplier to try"},
			&cli.Float64Flag{Name: "variance-step", Value: 0.05, Usage: "limit multiplier increment"},
			&cli.IntFlag{Name: "workers", Value: 1, Usage: "concurrent backtests"},
			&cli.StringFlag{Name: "out", Usage: "write per-run results to this CSV file"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("sweep failed", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	configs, err := strategy.LoadFile(c.String("config"))
	if err != nil {
		return err
	}

	data, err := marketdata.LoadCSV(c.String("data"))
	if err != nil {
		return err
	}
	if data.Len() == 0 {
		return fmt.Errorf("no candles in %s", c.String("data"))
	}

	start, end, err := dateRange(c, data)
	if err != nil {
		return err
	}
	slog.Info("replaying",
		"start", start.Format(time.DateOnly), "end", end.Format(time.DateOnly),
		"days", int(end.Sub(start).Hours()/24), "daysWithData", len(data.DatesBetween(start, end)))

	var res *simulation.Result
	if c.Bool("grid") {
		res, err = gridSweep(c, configs, data, start, end)
	} else {
		s := &simulation.Sweep{Configs: configs, Data: data, Start: start, End: end, Workers: c.Int("workers")}
		res, err = s.Run()
	}
	if err != nil {
		return err
	}

	printSummary(res)

	if out := c.String("out"); out != "" {
		if err := export.WriteCSVFile(out, res); err != nil {
			return err
		}
		slog.Info("results written", "path", out)
	}
	return nil
}

func gridSweep(c *cli.Context, configs *strategy.Versioned, data *marketdata.Set, start, end time.Time) (*simulation.Result, error) {
	fromH, fromM, err := parseClock(c.String("grid-start"))
	if err != nil {
		return nil, err
	}
	toH, toM, err := parseClock(c.String("grid-end"))
	if err != nil {
		return nil, err
	}

	g := &simulation.GridSweep{
		Configs: configs,
		Data:    data,
		Start:   start,
		End:     end,
		Times: simulation.TimeAxis{
			FromHour: fromH, FromMinute: fromM,
			ToHour: toH, ToMinute: toM,
			StepMinutes: c.Int("grid-step"),
		},
		Variance: simulation.VarianceAxis{
			From: c.Float64("variance-from"),
			To:   c.Float64("variance-to"),
			Step: c.Float64("variance-step"),
		},
		Workers: c.Int("workers"),
	}
	return g.Run()
}

func dateRange(c *cli.Context, data *marketdata.Set) (time.Time, time.Time, error) {
	dates := data.Dates()
	start := dates[0]
	end := dates[len(dates)-1].AddDate(0, 0, 1)

	var err error
	if s := c.String("start"); s != "" {
		if start, err = time.Parse(time.DateOnly, s); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parsing --start: %w", err)
		}
	}
	if s := c.String("end"); s != "" {
		if end, err = time.Parse(time.DateOnly, s); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parsing --end: %w", err)
		}
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start %s is not before end %s", start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	return start, end, nil
}

func parseClock(s string) (int, int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, 0, fmt.Errorf("parsing time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("time %q out of range", s)
	}
	return h, m, nil
}

// printSummary aggregates each run's description across the replayed days and
// prints the totals in grid order.
func printSummary(res *simulation.Result) {
	type total struct {
		desc      string
		hits      int
		misses    int
		netProfit float64
		points    float64
	}

	order := []string{}
	totals := map[string]*total{}
	for _, day := range res.Days {
		for _, r := range day.Runs {
			t, ok := totals[r.Description]
			if !ok {
				t = &total{desc: r.Description}
				totals[r.Description] = t
				order = append(order, r.Description)
			}
			t.hits += r.Hits
			t.misses += r.Misses
			t.netProfit += r.NetProfit
			t.points += r.Points
		}
	}

	fmt.Printf("%-40s %6s %6s %10s %12s\n", "run", "hits", "misses", "points", "net profit")
	for _, desc := range order {
		t := totals[desc]
		fmt.Printf("%-40s %6d %6d %10.2f %12.2f\n", t.desc, t.hits, t.misses, t.points, t.netProfit)
	}
}
