package strategy

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type configFile struct {
	Configurations []configFileEntry `json:"configurations"`
}

type configFileEntry struct {
	Effective string `json:"effective"`
	Config
}

// LoadFile reads a versioned configuration set from a JSON file. Every entry
// is validated eagerly; a malformed entry fails the whole load.
func LoadFile(path string) (*Versioned, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return loadConfigs(data)
}

func loadConfigs(data []byte) (*Versioned, error) {
	var file configFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if len(file.Configurations) == 0 {
		return nil, fmt.Errorf("config file: %w", errMissingParams)
	}

	v := NewVersioned()
	for i, entry := range file.Configurations {
		effective, err := time.Parse(time.DateOnly, entry.Effective)
		if err != nil {
			return nil, fmt.Errorf("configuration %d: bad effective date %q: %w", i, entry.Effective, err)
		}
		if err := entry.Config.Validate(); err != nil {
			return nil, fmt.Errorf("configuration %d (effective %s): %w", i, entry.Effective, err)
		}
		v.Set(effective.UTC(), entry.Config)
	}
	return v, nil
}
