package config

import (
	"fmt"
	"strings"

	"github.com/larsivik/snomed-catalog/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Pipeline.Limit < 0 {
		return fmt.Errorf("pipeline.limit must be >= 0 (got %d)", c.Pipeline.Limit)
	}

	filter, err := ParseIDFilter(c.Pipeline.IDFilterRaw)
	if err != nil {
		return fmt.Errorf("pipeline.id_filter: %w", err)
	}
	c.Pipeline.IDFilter = filter

	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

// ParseIDFilter parses a comma-separated list of concept identifiers
// (e.g. "10000006,20000004"). An empty string returns a nil slice.
func ParseIDFilter(raw string) ([]domain.SCTID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]domain.SCTID, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := domain.ParseSCTID(p)
		if err != nil {
			return nil, fmt.Errorf("invalid concept identifier %q: %w", p, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
