// Package simulation drives backtests over calendar ranges and parameter
// grids, producing per-day results for every configuration variant.
package simulation

import (
	"fmt"
	"sync"
	"time"

	"github.com/jwtly10/sweepbook/internal/backtest"
	"github.com/jwtly10/sweepbook/internal/logging"
	"github.com/jwtly10/sweepbook/internal/marketdata"
	"github.com/jwtly10/sweepbook/internal/mathutil"
	"github.com/jwtly10/sweepbook/internal/strategy"
)

var simLog = logging.New("sim")

// DayResult holds the runs produced for a single trading day. A sweep
// produces one run per day; a grid sweep produces one per grid point.
type DayResult struct {
	Date time.Time
	Runs []backtest.RunResult
}

// Result is the outcome of a sweep over [Start, End).
type Result struct {
	Start time.Time
	End   time.Time
	Days  []DayResult
}

// Sweep replays each day in [Start, End) against the configuration that was
// effective on that day.
type Sweep struct {
	Configs *strategy.Versioned
	Data    *marketdata.Set
	Start   time.Time
	End     time.Time

	// Workers bounds run concurrency. Zero or negative means sequential.
	Workers int
}

// Run executes the sweep. It fails on the first day with no effective
// configuration.
func (s *Sweep) Run() (*Result, error) {
	dates := calendarDays(s.Start, s.End)
	res := &Result{Start: s.Start, End: s.End, Days: make([]DayResult, len(dates))}

	jobs := make([]job, 0, len(dates))
	for i, d := range dates {
		cfg, err := s.Configs.Resolve(d)
		if err != nil {
			return nil, fmt.Errorf("resolving configuration for %s: %w", d.Format(time.DateOnly), err)
		}
		res.Days[i] = DayResult{Date: d, Runs: make([]backtest.RunResult, 1)}
		jobs = append(jobs, job{day: i, run: 0, cfg: cfg, date: d})
	}

	if err := s.execute(jobs, res); err != nil {
		return nil, err
	}
	return res, nil
}

// TimeAxis steps the session start across a window of the trading day.
type TimeAxis struct {
	FromHour    int
	FromMinute  int
	ToHour      int
	ToMinute    int
	StepMinutes int
}

func (a TimeAxis) points() []sessionStart {
	var pts []sessionStart
	from := a.FromHour*60 + a.FromMinute
	to := a.ToHour*60 + a.ToMinute
	for m := from; m <= to; m += a.StepMinutes {
		pts = append(pts, sessionStart{hour: m / 60, minute: m % 60})
	}
	return pts
}

type sessionStart struct {
	hour, minute int
}

// VarianceAxis steps the limit multiplier across [From, To].
type VarianceAxis struct {
	From float64
	To   float64
	Step float64
}

func (a VarianceAxis) points() []float64 {
	var pts []float64
	for v := a.From; v <= a.To; v = mathutil.Add(v, a.Step) {
		pts = append(pts, v)
	}
	return pts
}

// GridSweep replays each day once per (session start, variance) grid point.
// The grid order is fixed: days ascending, then session starts, then
// variances, so identical inputs always produce identical output.
type GridSweep struct {
	Configs  *strategy.Versioned
	Data     *marketdata.Set
	Start    time.Time
	End      time.Time
	Times    TimeAxis
	Variance VarianceAxis

	Workers int
}

// Run executes every grid point. Like Sweep.Run it fails fast on a missing
// configuration, before any backtest starts.
func (g *GridSweep) Run() (*Result, error) {
	starts := g.Times.points()
	variances := g.Variance.points()
	if len(starts) == 0 || len(variances) == 0 {
		return nil, fmt.Errorf("empty grid: %d session starts, %d variances", len(starts), len(variances))
	}

	dates := calendarDays(g.Start, g.End)
	res := &Result{Start: g.Start, End: g.End, Days: make([]DayResult, len(dates))}
	simLog.Debug("grid sweep", "days", len(dates), "starts", len(starts), "variances", len(variances))

	var jobs []job
	for i, d := range dates {
		base, err := g.Configs.Resolve(d)
		if err != nil {
			return nil, fmt.Errorf("resolving configuration for %s: %w", d.Format(time.DateOnly), err)
		}
		res.Days[i] = DayResult{Date: d, Runs: make([]backtest.RunResult, len(starts)*len(variances))}
		run := 0
		for _, st := range starts {
			for _, v := range variances {
				jobs = append(jobs, job{day: i, run: run, cfg: variant(base, st, v), date: d})
				run++
			}
		}
	}

	if err := (&Sweep{Data: g.Data, Workers: g.Workers}).execute(jobs, res); err != nil {
		return nil, err
	}
	return res, nil
}

// variant copies base with the grid point's session start and variance
// applied, tagging the description so results stay attributable.
func variant(base strategy.Config, st sessionStart, variance float64) strategy.Config {
	p := *base.Reversal
	p.SessionStartHour = st.hour
	p.SessionStartMinute = st.minute
	p.Variance = variance
	cfg := base
	cfg.Reversal = &p
	cfg.Description = fmt.Sprintf("%s %d:%02d @ %v", base.Description, st.hour, st.minute, variance)
	return cfg
}

// calendarDays steps every calendar day in [start, end), whether or not
// candle data exists for it. Days without data still get a result entry; the
// engine reports them as all-zero runs.
func calendarDays(start, end time.Time) []time.Time {
	var days []time.Time
	for d := marketdata.Day(start); d.Before(marketdata.Day(end)); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

type job struct {
	day  int
	run  int
	cfg  strategy.Config
	date time.Time
}

// execute runs each job's single-day backtest, writing into its reserved
// result slot so ordering is independent of scheduling.
func (s *Sweep) execute(jobs []job, res *Result) error {
	do := func(j job) error {
		strat, err := strategy.NewReversal(j.cfg)
		if err != nil {
			return fmt.Errorf("building strategy for %s: %w", j.date.Format(time.DateOnly), err)
		}
		eng := backtest.NewEngine(strat)
		res.Days[j.day].Runs[j.run] = eng.Run(j.date, j.date.AddDate(0, 0, 1), s.Data)
		return nil
	}

	if s.Workers <= 1 {
		for _, j := range jobs {
			if err := do(j); err != nil {
				return err
			}
		}
		return nil
	}

	ch := make(chan job)
	errs := make([]error, s.Workers)
	var wg sync.WaitGroup
	for w := 0; w < s.Workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for j := range ch {
				if err := do(j); err != nil && errs[w] == nil {
					errs[w] = err
				}
			}
		}(w)
	}
	for _, j := range jobs {
		ch <- j
	}
	close(ch)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
