package config

import (
	"encoding/json"
	"fmt"
	"os"

	"pv-feasibility/internal/model"
)

// LoadSeriesJSON reads an hourly series from a JSON file containing a
// single array of numbers, one per hour of a non-leap year.
func LoadSeriesJSON(path string) (model.HourlySeries, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read series %s: %w", path, err)
	}
	var values []float64
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("parse series %s: %w", path, err)
	}
	if len(values) != model.HoursPerYear {
		return nil, fmt.Errorf("%w: %s has %d samples, expected %d",
			model.ErrShapeMismatch, path, len(values), model.HoursPerYear)
	}
	return values, nil
}
