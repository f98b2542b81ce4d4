// Package universe resolves the scan universe and the local code→name
// map the ranking table uses before any scraping.
package universe

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/moriq/kabuscan/internal/strategyconfig"
	"github.com/moriq/kabuscan/pkg/logger"
)

// Codes returns the configured ticker universe
func Codes(cfg *strategyconfig.Config) []string {
	return cfg.Universe.Codes
}

// LoadNameMap reads the local code→name JSON file ("7203": "トヨタ自動車").
// A missing file is not an error: names then resolve through the market
// provider's scrape path instead.
func LoadNameMap(path string, log *logger.Logger) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("path", path).Debug("No local name map, resolving names remotely")
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read name map: %w", err)
	}

	names := map[string]string{}
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("failed to parse name map %s: %w", path, err)
	}

	log.WithField("count", len(names)).Debug("Loaded local name map")
	return names, nil
}
