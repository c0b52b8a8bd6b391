package strategy

import (
	"errors"
	"sort"
	"time"
)

// ErrNoConfiguration is returned when no configuration is effective on or
// before the queried date.
var ErrNoConfiguration = errors.New("no configuration effective for date")

type versionEntry struct {
	effective time.Time
	cfg       Config
}

// Versioned maps effective dates to configuration snapshots with
// last-value-carried-forward resolution.
type Versioned struct {
	entries []versionEntry // sorted ascending by effective date
}

// NewVersioned returns an empty versioned configuration set.
func NewVersioned() *Versioned {
	return &Versioned{}
}

// Set registers cfg as effective from the given date, replacing any existing
// entry for the same date.
func (v *Versioned) Set(effective time.Time, cfg Config) {
	for i := range v.entries {
		if v.entries[i].effective.Equal(effective) {
			v.entries[i].cfg = cfg
			return
		}
	}
	v.entries = append(v.entries, versionEntry{effective: effective, cfg: cfg})
	sort.Slice(v.entries, func(i, j int) bool {
		return v.entries[i].effective.Before(v.entries[j].effective)
	})
}

// Len returns the number of configuration snapshots.
func (v *Versioned) Len() int { return len(v.entries) }

// Resolve returns the configuration with the latest effective date not after
// date. Querying before the earliest entry is a configuration error.
func (v *Versioned) Resolve(date time.Time) (Config, error) {
	// first entry strictly after date
	idx := sort.Search(len(v.entries), func(i int) bool {
		return v.entries[i].effective.After(date)
	})
	if idx == 0 {
		return Config{}, ErrNoConfiguration
	}
	return v.entries[idx-1].cfg, nil
}
